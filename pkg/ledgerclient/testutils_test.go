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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"testing"

	"github.com/kaleido-io/ledgerclient/internal/confutil"
	"github.com/kaleido-io/ledgerclient/mocks/transportmocks"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/kaleido-io/ledgerclient/pkg/rpcmsgs"
	"github.com/kaleido-io/ledgerclient/pkg/transport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type testMocks struct {
	ledger            *transportmocks.LedgerClient
	ledgerPrivileged  *transportmocks.LedgerPrivilegedClient
	auditor           *transportmocks.AuditorClient
	auditorPrivileged *transportmocks.AuditorPrivilegedClient
	key               *ecdsa.PrivateKey
	conf              *ldconf.ClientConfig
}

// services returns the mocks as client services, leaving the Auditor out unless asked
func (tm *testMocks) services(auditor bool) *Services {
	services := &Services{
		Ledger:           tm.ledger,
		LedgerPrivileged: tm.ledgerPrivileged,
	}
	if auditor {
		services.Auditor = tm.auditor
		services.AuditorPrivileged = tm.auditorPrivileged
	}
	return services
}

func newTestKey(t *testing.T) (*ecdsa.PrivateKey, string) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	return key, string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))
}

func newTestConfig(t *testing.T, auditor bool) (*ldconf.ClientConfig, *ecdsa.PrivateKey) {
	key, keyPEM := newTestKey(t)
	conf := &ldconf.ClientConfig{
		Certificate: ldconf.CertificateConfig{
			HolderID:      confutil.P("holder1"),
			Version:       confutil.P(2),
			CertPEM:       confutil.P("-----BEGIN CERTIFICATE-----\n-----END CERTIFICATE-----\n"),
			PrivateKeyPEM: confutil.P(keyPEM),
		},
	}
	conf.Auditor.Enabled = confutil.P(auditor)
	return conf, key
}

// newTestClient builds a client over strict mocks. Every call the client makes must be
// expected by the test, and every expectation must be met by the end of the test.
func newTestClient(t *testing.T, auditor bool, confMods ...func(conf *ldconf.ClientConfig)) (context.Context, *Client, *testMocks) {
	ctx := context.Background()
	conf, key := newTestConfig(t, auditor)
	for _, mod := range confMods {
		mod(conf)
	}
	tm := &testMocks{
		ledger:            transportmocks.NewLedgerClient(t),
		ledgerPrivileged:  transportmocks.NewLedgerPrivilegedClient(t),
		auditor:           transportmocks.NewAuditorClient(t),
		auditorPrivileged: transportmocks.NewAuditorPrivilegedClient(t),
		key:               key,
		conf:              conf,
	}
	c, err := NewClient(ctx, conf, tm.services(auditor), WithMetricsRegistry(prometheus.NewRegistry()))
	require.NoError(t, err)
	return ctx, c, tm
}

func statusError(t *testing.T, code int32, message string) error {
	b, err := (&rpcmsgs.Status{Code: code, Message: message}).MarshalBinary()
	require.NoError(t, err)
	return &transport.Error{
		Method:     "/rpc.Ledger/Test",
		Err:        fmt.Errorf("pop"),
		Properties: map[string][]byte{rpcmsgs.StatusMetadataKey: b},
	}
}
