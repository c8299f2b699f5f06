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

package main

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/kaleido-io/ledgerclient/internal/confutil"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/kaleido-io/ledgerclient/pkg/rpcmsgs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLedger struct {
	registeredFunction rpcmsgs.FunctionRegistrationRequest
	registeredContract rpcmsgs.ContractRegistrationRequest
	executed           rpcmsgs.ContractExecutionRequest
}

func (l *testLedger) start(t *testing.T) string {
	reply := func(w http.ResponseWriter, body any) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}
	r := mux.NewRouter()
	r.HandleFunc("/rpc.LedgerPrivileged/RegisterFunction", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&l.registeredFunction))
		reply(w, &rpcmsgs.Empty{})
	}).Methods(http.MethodPost)
	r.HandleFunc("/rpc.Ledger/RegisterContract", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&l.registeredContract))
		reply(w, &rpcmsgs.Empty{})
	}).Methods(http.MethodPost)
	r.HandleFunc("/rpc.Ledger/ListContracts", func(w http.ResponseWriter, req *http.Request) {
		reply(w, &rpcmsgs.ContractsListingResponse{JSON: `{"c1":{"contract_name":"C1"}}`})
	}).Methods(http.MethodPost)
	r.HandleFunc("/rpc.Ledger/ExecuteContract", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&l.executed))
		reply(w, &rpcmsgs.ContractExecutionResponse{
			ContractResult: `{"balance":10}`,
			Proofs:         []*rpcmsgs.AssetProof{{AssetID: "a1", Age: 1, Hash: []byte{1}}},
		})
	}).Methods(http.MethodPost)
	r.HandleFunc("/rpc.Ledger/ValidateLedger", func(w http.ResponseWriter, req *http.Request) {
		reply(w, &rpcmsgs.LedgerValidationResponse{StatusCode: 200, Proof: &rpcmsgs.AssetProof{AssetID: "a1", Age: 4}})
	}).Methods(http.MethodPost)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server.URL
}

func writeTestConfig(t *testing.T, url string, confMods ...func(conf *ldconf.ClientConfig)) string {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	conf := &ldconf.ClientConfig{
		Certificate: ldconf.CertificateConfig{
			HolderID:      confutil.P("holder1"),
			PrivateKeyPEM: confutil.P(string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))),
		},
		Ledger: ldconf.EndpointConfig{
			Transport: confutil.P(ldconf.TransportHTTP),
			URL:       confutil.P(url),
		},
		Log: ldconf.LogConfig{Level: confutil.P("error")},
	}
	for _, mod := range confMods {
		mod(conf)
	}
	// JSON is a subset of YAML
	b, err := json.Marshal(conf)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, b, 0644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecuteCommand(t *testing.T) {
	l := &testLedger{}
	config := writeTestConfig(t, l.start(t))

	code, stdout, stderr := runCLI(t, "--config", config, "execute", "transfer", `{"amount":10}`, "--nonce", "n1", "--function-id", "fn1")
	require.Equal(t, 0, code, stderr)

	var out executionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, `{"balance":10}`, out.ContractResult)
	require.Len(t, out.LedgerProofs, 1)
	assert.Empty(t, out.AuditorProofs)

	assert.Equal(t, "n1", l.executed.Nonce)
	assert.Equal(t, []string{"fn1"}, l.executed.FunctionIDs)
	assert.Equal(t, "V2\x01n1\x03fn1\x03{\"amount\":10}", l.executed.ContractArgument)
	assert.Equal(t, "{}", *l.executed.FunctionArgument)
}

func TestExecuteCommandStringArgument(t *testing.T) {
	l := &testLedger{}
	config := writeTestConfig(t, l.start(t))

	code, _, stderr := runCLI(t, "-c", config, "execute", "greet", "{not json}", "--string", "--function-arg", "x")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "x", *l.executed.FunctionArgument)
	assert.Regexp(t, "\x03\x03\\{not json\\}$", l.executed.ContractArgument)

	code, _, stderr = runCLI(t, "-c", config, "execute", "greet", "{not json}")
	assert.Equal(t, 1, code)
	assert.Regexp(t, "LC010603", stderr)
}

func TestRegisterCommands(t *testing.T) {
	l := &testLedger{}
	config := writeTestConfig(t, l.start(t))
	bytecode := filepath.Join(t.TempDir(), "code.bin")
	require.NoError(t, os.WriteFile(bytecode, []byte{0xca, 0xfe}, 0644))

	code, _, stderr := runCLI(t, "-c", config, "register-function", "fn1", "com.example.Fn", bytecode)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, []byte{0xca, 0xfe}, l.registeredFunction.FunctionByteCode)

	code, _, stderr = runCLI(t, "-c", config, "register-contract", "c1", "com.example.C1", bytecode, "--contract-properties", `{"a":1}`)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, `{"a":1}`, l.registeredContract.ContractProperties)
	assert.NotEmpty(t, l.registeredContract.Signature)

	code, _, stderr = runCLI(t, "-c", config, "register-contract", "c1", "com.example.C1", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, 1, code)
	assert.Regexp(t, `Error \[CLIENT_IO_ERROR\]: LC010601`, stderr)
}

func TestListAndValidateCommands(t *testing.T) {
	l := &testLedger{}
	config := writeTestConfig(t, l.start(t))

	code, stdout, stderr := runCLI(t, "-c", config, "list-contracts")
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, `{"c1":{"contract_name":"C1"}}`, stdout)

	code, stdout, stderr = runCLI(t, "-c", config, "validate", "a1", "--end-age", "4")
	require.Equal(t, 0, code, stderr)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "OK", out["code"])
	assert.NotContains(t, out, "auditorProof")

	code, _, stderr = runCLI(t, "-c", config, "validate", "a1", "--start-age", "5", "--end-age", "4")
	assert.Equal(t, 1, code)
	assert.Regexp(t, `Error \[CLIENT_RUNTIME_ERROR\]: LC010503`, stderr)
}

func TestMetricsOut(t *testing.T) {
	l := &testLedger{}
	config := writeTestConfig(t, l.start(t))
	metricsFile := filepath.Join(t.TempDir(), "metrics.prom")

	code, _, stderr := runCLI(t, "-c", config, "--metrics-out", metricsFile, "list-contracts")
	require.Equal(t, 0, code, stderr)
	b, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), `ledger_client_calls_total{code="OK",operation="list_contracts"} 1`)
}

func TestConfigRequired(t *testing.T) {
	code, _, stderr := runCLI(t, "list-contracts")
	assert.Equal(t, 1, code)
	assert.Regexp(t, "LC010600", stderr)

	code, _, stderr = runCLI(t, "-c", "a.yaml", "-p", "b.json", "list-contracts")
	assert.Equal(t, 1, code)
	assert.Regexp(t, "LC010600", stderr)

	code, _, stderr = runCLI(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "list-contracts")
	assert.Equal(t, 1, code)
	assert.Regexp(t, "LC010000", stderr)
}

func TestPropertiesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"scalar.dl.client.cert_holder_id": 12}`), 0644))
	code, _, stderr := runCLI(t, "-p", path, "list-contracts")
	assert.Equal(t, 1, code)
	assert.Regexp(t, "LC010003.*cert_holder_id", stderr)
}

func TestProofsCommand(t *testing.T) {
	l := &testLedger{}
	dbFile := filepath.Join(t.TempDir(), "proofs.db")
	config := writeTestConfig(t, l.start(t), func(conf *ldconf.ClientConfig) {
		conf.ProofStore.Enabled = confutil.P(true)
		conf.ProofStore.SQLite.DSN = dbFile
	})

	code, _, stderr := runCLI(t, "-c", config, "execute", "transfer", `{"amount":10}`)
	require.Equal(t, 0, code, stderr)

	code, stdout, stderr := runCLI(t, "-c", config, "proofs", "a1")
	require.Equal(t, 0, code, stderr)
	var out []*recordedProofOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "ledger", string(out[0].Source))
	assert.Equal(t, uint32(1), out[0].Proof.Age)
	assert.Equal(t, []byte{1}, out[0].Proof.Hash)
}

func TestProofsCommandDisabled(t *testing.T) {
	config := writeTestConfig(t, "http://localhost:1")

	code, _, stderr := runCLI(t, "-c", config, "proofs", "a1")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "LC010604")
}
