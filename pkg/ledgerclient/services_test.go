// Copyright © 2024 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledgerclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/kaleido-io/ledgerclient/internal/confutil"
	"github.com/kaleido-io/ledgerclient/pkg/contractarg"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/kaleido-io/ledgerclient/pkg/ldtypes"
	"github.com/kaleido-io/ledgerclient/pkg/rpcmsgs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectGRPC(t *testing.T) {
	ctx := context.Background()
	conf, _ := newTestConfig(t, true)
	conf.Ledger.Host = confutil.P("127.0.0.1")
	conf.Auditor.Host = confutil.P("127.0.0.1")

	// connections are established on first use
	services, err := Connect(ctx, conf)
	require.NoError(t, err)
	assert.NotNil(t, services.Ledger)
	assert.NotNil(t, services.LedgerPrivileged)
	assert.NotNil(t, services.Auditor)
	assert.NotNil(t, services.AuditorPrivileged)
	assert.Len(t, services.callers, 4)

	c, err := NewClient(ctx, conf, services)
	require.NoError(t, err)
	require.NoError(t, c.Close())
	assert.Empty(t, services.callers)
}

func TestConnectNoAuditor(t *testing.T) {
	ctx := context.Background()
	conf, _ := newTestConfig(t, false)
	services, err := Connect(ctx, conf)
	require.NoError(t, err)
	defer services.Close()
	assert.Nil(t, services.Auditor)
	assert.Len(t, services.callers, 2)
}

func TestConnectBadAuditorTransport(t *testing.T) {
	ctx := context.Background()
	conf, _ := newTestConfig(t, true)
	conf.Auditor.Transport = confutil.P("carrier-pigeon")
	_, err := Connect(ctx, conf)
	assert.Regexp(t, "LC010005.*auditor.*transport=carrier-pigeon", err)
}

type testGateway struct {
	ledgerProofs  []*rpcmsgs.AssetProof
	auditorProofs []*rpcmsgs.AssetProof
	executed      rpcmsgs.ContractExecutionRequest
	validated     rpcmsgs.ExecutionValidationRequest
}

func gatewayJSON(t *testing.T, w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func (g *testGateway) start(t *testing.T) *httptest.Server {
	r := mux.NewRouter()
	r.HandleFunc("/rpc.Auditor/OrderExecution", func(w http.ResponseWriter, req *http.Request) {
		gatewayJSON(t, w, &rpcmsgs.ExecutionOrderingResponse{Signature: []byte("auditor-ordered")})
	}).Methods(http.MethodPost)
	r.HandleFunc("/rpc.Ledger/ExecuteContract", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&g.executed))
		gatewayJSON(t, w, &rpcmsgs.ContractExecutionResponse{ContractResult: `{"ok":true}`, Proofs: g.ledgerProofs})
	}).Methods(http.MethodPost)
	r.HandleFunc("/rpc.Auditor/ValidateExecution", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&g.validated))
		gatewayJSON(t, w, &rpcmsgs.ContractExecutionResponse{ContractResult: `{"ok":true}`, Proofs: g.auditorProofs})
	}).Methods(http.MethodPost)
	r.HandleFunc("/rpc.Ledger/ListContracts", func(w http.ResponseWriter, req *http.Request) {
		status, _ := (&rpcmsgs.Status{Code: int32(ldtypes.StatusCertificateNotFound), Message: "holder1 is not registered"}).MarshalBinary()
		w.Header().Set(rpcmsgs.StatusMetadataKey, base64.StdEncoding.EncodeToString(status))
		w.WriteHeader(http.StatusInternalServerError)
	}).Methods(http.MethodPost)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func newGatewayClient(t *testing.T, url string) (context.Context, *Client) {
	ctx := context.Background()
	conf, _ := newTestConfig(t, true)
	conf.Ledger.Transport = confutil.P(ldconf.TransportHTTP)
	conf.Ledger.URL = confutil.P(url)
	conf.Auditor.Transport = confutil.P(ldconf.TransportHTTP)
	conf.Auditor.URL = confutil.P(url)
	services, err := Connect(ctx, conf)
	require.NoError(t, err)
	c, err := NewClient(ctx, conf, services)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return ctx, c
}

func TestGatewayExecuteContract(t *testing.T) {
	g := &testGateway{
		ledgerProofs: []*rpcmsgs.AssetProof{
			{AssetID: "a1", Age: 3, Nonce: "n", Input: "{}", Hash: []byte{0xaa}, PrevHash: []byte{0x01}, Signature: []byte("l")},
		},
		auditorProofs: []*rpcmsgs.AssetProof{
			{AssetID: "a1", Age: 3, Nonce: "n", Input: "{}", Hash: []byte{0xaa}, PrevHash: []byte{0x01}, Signature: []byte("a")},
		},
	}
	server := g.start(t)
	ctx, c := newGatewayClient(t, server.URL)

	result, err := c.ExecuteContract(ctx, "c1", contractarg.JSON(map[string]any{"k": "v"}), WithNonce("n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("auditor-ordered"), g.executed.AuditorSignature)
	require.NotNil(t, g.validated.Request)
	assert.Equal(t, "n", g.validated.Request.Nonce)
	require.Len(t, g.validated.Proofs, 1)
	assert.Equal(t, []byte{0xaa}, g.validated.Proofs[0].Hash)

	require.Len(t, result.LedgerProofs, 1)
	require.Len(t, result.AuditorProofs, 1)
	assert.True(t, result.LedgerProofs[0].Equal(result.AuditorProofs[0]))
	assert.Equal(t, []byte("a"), result.AuditorProofs[0].Signature())
	assert.Equal(t, []byte{0x01}, result.LedgerProofs[0].PrevHash())
}

func TestGatewayExecuteContractInconsistent(t *testing.T) {
	g := &testGateway{
		ledgerProofs:  []*rpcmsgs.AssetProof{{AssetID: "a1", Age: 3, Hash: []byte{0xaa}}},
		auditorProofs: []*rpcmsgs.AssetProof{{AssetID: "a1", Age: 3, Hash: []byte{0xbb}}},
	}
	server := g.start(t)
	ctx, c := newGatewayClient(t, server.URL)

	_, err := c.ExecuteContract(ctx, "c1", contractarg.String("x"))
	assert.Equal(t, ldtypes.StatusInconsistentStates, ldtypes.CodeOf(err))
}

func TestGatewayStatusHeader(t *testing.T) {
	server := (&testGateway{}).start(t)
	ctx, c := newGatewayClient(t, server.URL)

	_, err := c.ListContracts(ctx, "")
	var ce *ldtypes.ClientError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ldtypes.StatusCertificateNotFound, ce.Code())
	assert.Equal(t, "holder1 is not registered", ce.Message())
}
