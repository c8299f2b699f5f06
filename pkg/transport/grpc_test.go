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

package transport

import (
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/kaleido-io/ledgerclient/internal/confutil"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/kaleido-io/ledgerclient/pkg/rpcmsgs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type grpcHandler func(stream grpc.ServerStream, req json.RawMessage) (any, error)

func newTestGRPCServer(t *testing.T, handlers map[string]grpcHandler) (int, func()) {
	server := grpc.NewServer(
		grpc.ForceServerCodec(JSONCodec()),
		grpc.UnknownServiceHandler(func(_ any, stream grpc.ServerStream) error {
			fm, _ := grpc.MethodFromServerStream(stream)
			h, ok := handlers[fm]
			if !ok {
				return status.Errorf(codes.Unimplemented, "no handler for %s", fm)
			}
			var req json.RawMessage
			if err := stream.RecvMsg(&req); err != nil {
				return err
			}
			res, err := h(stream, req)
			if err != nil {
				return err
			}
			return stream.SendMsg(res)
		}),
	)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = server.Serve(l)
	}()
	return l.Addr().(*net.TCPAddr).Port, server.Stop
}

func statusTrailer(code int32, message string) metadata.MD {
	b, _ := (&rpcmsgs.Status{Code: code, Message: message}).MarshalBinary()
	return metadata.Pairs(rpcmsgs.StatusMetadataKey, string(b))
}

func grpcEndpoint(port int) *ldconf.EndpointConfig {
	return &ldconf.EndpointConfig{
		Host:           confutil.P("127.0.0.1"),
		Port:           confutil.P(port),
		PrivilegedPort: confutil.P(port),
	}
}

func TestGRPCLedgerCalls(t *testing.T) {
	ctx := context.Background()
	var received rpcmsgs.ContractExecutionRequest
	port, done := newTestGRPCServer(t, map[string]grpcHandler{
		"/rpc.Ledger/ExecuteContract": func(_ grpc.ServerStream, req json.RawMessage) (any, error) {
			if err := json.Unmarshal(req, &received); err != nil {
				return nil, err
			}
			return &rpcmsgs.ContractExecutionResponse{
				ContractResult: `{"ok":true}`,
				Proofs:         []*rpcmsgs.AssetProof{{AssetID: "foo", Age: 1, Hash: []byte{0, 0, 0}, Nonce: "n"}},
			}, nil
		},
		"/rpc.Ledger/ListContracts": func(_ grpc.ServerStream, _ json.RawMessage) (any, error) {
			return &rpcmsgs.ContractsListingResponse{JSON: `{"c1":{}}`}, nil
		},
		"/rpc.Ledger/RegisterContract": func(_ grpc.ServerStream, _ json.RawMessage) (any, error) {
			return &rpcmsgs.Empty{}, nil
		},
		"/rpc.Ledger/ValidateLedger": func(_ grpc.ServerStream, _ json.RawMessage) (any, error) {
			return &rpcmsgs.LedgerValidationResponse{StatusCode: 200, Proof: &rpcmsgs.AssetProof{AssetID: "a"}}, nil
		},
	})
	defer done()

	c, err := NewCaller(ctx, "ledger", grpcEndpoint(port), ldconf.EndpointDefaults, false)
	require.NoError(t, err)
	defer c.Close()
	ledger := NewLedgerClient(c)

	fnArg := "{}"
	res, err := ledger.ExecuteContract(ctx, &rpcmsgs.ContractExecutionRequest{
		ContractID:       "c1",
		FunctionArgument: &fnArg,
		Signature:        []byte{0x30},
		Nonce:            "n",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, res.ContractResult)
	require.Len(t, res.Proofs, 1)
	assert.Equal(t, []byte{0, 0, 0}, res.Proofs[0].Hash)
	assert.Equal(t, "c1", received.ContractID)
	assert.Equal(t, []byte{0x30}, received.Signature)

	list, err := ledger.ListContracts(ctx, &rpcmsgs.ContractsListingRequest{})
	require.NoError(t, err)
	assert.Equal(t, `{"c1":{}}`, list.JSON)

	require.NoError(t, ledger.RegisterContract(ctx, &rpcmsgs.ContractRegistrationRequest{}))

	v, err := ledger.ValidateLedger(ctx, &rpcmsgs.LedgerValidationRequest{})
	require.NoError(t, err)
	assert.Equal(t, int32(200), v.StatusCode)
}

func TestGRPCStatusTrailer(t *testing.T) {
	ctx := context.Background()
	port, done := newTestGRPCServer(t, map[string]grpcHandler{
		"/rpc.LedgerPrivileged/RegisterCert": func(stream grpc.ServerStream, _ json.RawMessage) (any, error) {
			stream.SetTrailer(statusTrailer(405, "certificate already registered"))
			return nil, status.Error(codes.AlreadyExists, "certificate already registered")
		},
		"/rpc.LedgerPrivileged/RegisterFunction": func(stream grpc.ServerStream, _ json.RawMessage) (any, error) {
			md := statusTrailer(407, "one")
			md.Append(rpcmsgs.StatusMetadataKey, "two")
			stream.SetTrailer(md)
			return nil, status.Error(codes.Internal, "pop")
		},
	})
	defer done()

	c, err := NewCaller(ctx, "ledger", grpcEndpoint(port), ldconf.EndpointDefaults, true)
	require.NoError(t, err)
	defer c.Close()
	privileged := NewLedgerPrivilegedClient(c)

	err = privileged.RegisterCert(ctx, &rpcmsgs.CertificateRegistrationRequest{})
	assert.Regexp(t, "LC010401.*RegisterCert", err)
	st, ok := StatusFromError(ctx, err)
	require.True(t, ok)
	assert.Equal(t, int32(405), st.Code)
	assert.Equal(t, "certificate already registered", st.Message)

	// more than one value under the key is not usable
	err = privileged.RegisterFunction(ctx, &rpcmsgs.FunctionRegistrationRequest{})
	assert.Error(t, err)
	_, ok = StatusFromError(ctx, err)
	assert.False(t, ok)
}

func TestGRPCNoStatus(t *testing.T) {
	ctx := context.Background()
	port, done := newTestGRPCServer(t, map[string]grpcHandler{})
	defer done()

	c, err := NewCaller(ctx, "auditor", grpcEndpoint(port), &ldconf.ClientDefaults.Auditor.EndpointConfig, false)
	require.NoError(t, err)
	defer c.Close()

	_, err = NewAuditorClient(c).OrderExecution(ctx, &rpcmsgs.ContractExecutionRequest{})
	assert.Regexp(t, "LC010401.*OrderExecution", err)
	_, ok := StatusFromError(ctx, err)
	assert.False(t, ok)
}

func TestGRPCAuditorCalls(t *testing.T) {
	ctx := context.Background()
	var validation rpcmsgs.ExecutionValidationRequest
	port, done := newTestGRPCServer(t, map[string]grpcHandler{
		"/rpc.Auditor/OrderExecution": func(_ grpc.ServerStream, _ json.RawMessage) (any, error) {
			return &rpcmsgs.ExecutionOrderingResponse{Signature: []byte("auditor")}, nil
		},
		"/rpc.Auditor/ValidateExecution": func(_ grpc.ServerStream, req json.RawMessage) (any, error) {
			if err := json.Unmarshal(req, &validation); err != nil {
				return nil, err
			}
			return &rpcmsgs.ContractExecutionResponse{ContractResult: "r", Proofs: validation.Proofs}, nil
		},
		"/rpc.Auditor/RegisterContract": func(_ grpc.ServerStream, _ json.RawMessage) (any, error) {
			return &rpcmsgs.Empty{}, nil
		},
		"/rpc.Auditor/ValidateLedger": func(_ grpc.ServerStream, _ json.RawMessage) (any, error) {
			return &rpcmsgs.LedgerValidationResponse{StatusCode: 404}, nil
		},
		"/rpc.AuditorPrivileged/RegisterCert": func(_ grpc.ServerStream, _ json.RawMessage) (any, error) {
			return &rpcmsgs.Empty{}, nil
		},
	})
	defer done()

	c, err := NewCaller(ctx, "auditor", grpcEndpoint(port), &ldconf.ClientDefaults.Auditor.EndpointConfig, false)
	require.NoError(t, err)
	defer c.Close()
	auditor := NewAuditorClient(c)

	order, err := auditor.OrderExecution(ctx, &rpcmsgs.ContractExecutionRequest{ContractID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, []byte("auditor"), order.Signature)

	res, err := auditor.ValidateExecution(ctx, &rpcmsgs.ExecutionValidationRequest{
		Request: &rpcmsgs.ContractExecutionRequest{ContractID: "c1"},
		Proofs:  []*rpcmsgs.AssetProof{{AssetID: "a1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", validation.Request.ContractID)
	assert.Equal(t, "a1", res.Proofs[0].AssetID)

	require.NoError(t, auditor.RegisterContract(ctx, &rpcmsgs.ContractRegistrationRequest{}))
	v, err := auditor.ValidateLedger(ctx, &rpcmsgs.LedgerValidationRequest{})
	require.NoError(t, err)
	assert.Equal(t, int32(404), v.StatusCode)

	require.NoError(t, NewAuditorPrivilegedClient(c).RegisterCert(ctx, &rpcmsgs.CertificateRegistrationRequest{}))
}

func TestNewCallerErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewCaller(ctx, "ledger", &ldconf.EndpointConfig{Transport: confutil.P("carrier-pigeon")}, ldconf.EndpointDefaults, false)
	assert.Regexp(t, "LC010005.*carrier-pigeon", err)

	_, err = NewCaller(ctx, "ledger", &ldconf.EndpointConfig{Port: confutil.P(70000)}, ldconf.EndpointDefaults, false)
	assert.Regexp(t, "LC010005.*port=70000", err)

	_, err = NewCaller(ctx, "ledger", &ldconf.EndpointConfig{
		TLS: ldconf.TLSConfig{Enabled: true, CA: "not a cert"},
	}, ldconf.EndpointDefaults, false)
	assert.Regexp(t, "LC010406", err)
}

func TestGRPCTLSCredentials(t *testing.T) {
	c, err := NewCaller(context.Background(), "ledger", &ldconf.EndpointConfig{
		TLS: ldconf.TLSConfig{Enabled: true},
	}, ldconf.EndpointDefaults, false)
	require.NoError(t, err)
	assert.Equal(t, "localhost:50051", c.(*grpcCaller).target)
	require.NoError(t, c.Close())
}

func TestStatusFromErrorNotTransport(t *testing.T) {
	_, ok := StatusFromError(context.Background(), assert.AnError)
	assert.False(t, ok)

	_, ok = StatusFromError(context.Background(), &Error{Err: assert.AnError})
	assert.False(t, ok)

	_, ok = StatusFromError(context.Background(), &Error{Err: assert.AnError, Properties: map[string][]byte{}})
	assert.False(t, ok)

	_, ok = StatusFromError(context.Background(), &Error{Err: assert.AnError, Properties: map[string][]byte{
		rpcmsgs.StatusMetadataKey: {0xff},
	}})
	assert.False(t, ok)
}

func TestCodecErrors(t *testing.T) {
	codec := JSONCodec()
	assert.Equal(t, "json", codec.Name())

	_, err := codec.Marshal(map[string]any{"c": make(chan int)})
	assert.Regexp(t, "LC010404", err)

	var res rpcmsgs.Empty
	err = codec.Unmarshal([]byte("!json"), &res)
	assert.Regexp(t, "LC010405", err)
}
