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

package signer

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"sync"
	"testing"

	"github.com/kaleido-io/ledgerclient/internal/confutil"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T, curve elliptic.Curve) *ecdsa.PrivateKey {
	key, err := ecdsa.GenerateKey(curve, rand.Reader)
	require.NoError(t, err)
	return key
}

func sec1PEM(t *testing.T, key *ecdsa.PrivateKey) string {
	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))
}

func pkcs8PEM(t *testing.T, key any) string {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

func verify(t *testing.T, key *ecdsa.PrivateKey, content, sig []byte) bool {
	digest := sha256.Sum256(content)
	return ecdsa.VerifyASN1(&key.PublicKey, digest[:], sig)
}

func TestNativeSignerSEC1(t *testing.T) {
	ctx := context.Background()
	key := newTestKey(t, elliptic.P256())

	s, err := NewSigner(ctx, ldconf.SignerBackendNative, sec1PEM(t, key))
	require.NoError(t, err)

	content := []byte("canonical bytes")
	sig, err := s.Sign(ctx, content)
	require.NoError(t, err)
	assert.Equal(t, byte(0x30), sig[0])
	assert.True(t, verify(t, key, content, sig))
	assert.False(t, verify(t, key, []byte("other"), sig))
}

func TestNativeSignerPKCS8(t *testing.T) {
	ctx := context.Background()
	key := newTestKey(t, elliptic.P256())

	s, err := NewSigner(ctx, ldconf.SignerBackendNative, pkcs8PEM(t, key))
	require.NoError(t, err)

	sig, err := s.Sign(ctx, []byte{})
	require.NoError(t, err)
	assert.True(t, verify(t, key, []byte{}, sig))
}

func TestPlatformSigner(t *testing.T) {
	ctx := context.Background()
	key := newTestKey(t, elliptic.P256())

	s, err := NewSigner(ctx, ldconf.SignerBackendPlatform, sec1PEM(t, key))
	require.NoError(t, err)

	content := []byte("canonical bytes")
	sig, err := s.Sign(ctx, content)
	require.NoError(t, err)
	assert.True(t, verify(t, key, content, sig))
}

func TestSignerConcurrentUse(t *testing.T) {
	ctx := context.Background()
	key := newTestKey(t, elliptic.P256())
	s, err := NewSigner(ctx, ldconf.SignerBackendNative, sec1PEM(t, key))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			content := []byte(fmt.Sprintf("content %d", i))
			sig, err := s.Sign(ctx, content)
			assert.NoError(t, err)
			assert.True(t, verify(t, key, content, sig))
		}(i)
	}
	wg.Wait()
}

func TestUnknownBackend(t *testing.T) {
	_, err := NewSigner(context.Background(), "hsm", "")
	assert.Regexp(t, "LC010208", err)
}

func TestKeyErrorsAreCached(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{ldconf.SignerBackendNative, ldconf.SignerBackendPlatform} {
		s, err := NewSigner(ctx, backend, "not a pem")
		require.NoError(t, err)

		_, err1 := s.Sign(ctx, []byte("a"))
		assert.Regexp(t, "LC010201", err1)
		_, err2 := s.Sign(ctx, []byte("b"))
		assert.Equal(t, err1, err2)
	}
}

func TestParsePrivateKeyPEMErrors(t *testing.T) {
	ctx := context.Background()

	_, err := ParsePrivateKeyPEM(ctx, "")
	assert.Regexp(t, "LC010201", err)

	_, err = ParsePrivateKeyPEM(ctx, string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte{0x01}})))
	assert.Regexp(t, "LC010202.*CERTIFICATE", err)

	_, err = ParsePrivateKeyPEM(ctx, string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: []byte{0x01}})))
	assert.Regexp(t, "LC010200", err)

	_, err = ParsePrivateKeyPEM(ctx, string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte{0x01}})))
	assert.Regexp(t, "LC010200", err)

	_, err = ParsePrivateKeyPEM(ctx, sec1PEM(t, newTestKey(t, elliptic.P384())))
	assert.Regexp(t, "LC010203.*P-384", err)

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	_, err = ParsePrivateKeyPEM(ctx, pkcs8PEM(t, rsaKey))
	assert.Regexp(t, "LC010202", err)
}

func TestPKCS8FromPEM(t *testing.T) {
	ctx := context.Background()
	key := newTestKey(t, elliptic.P256())

	der, err := PKCS8FromPEM(ctx, sec1PEM(t, key))
	require.NoError(t, err)
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	require.NoError(t, err)
	assert.True(t, key.Equal(parsed))

	_, err = PKCS8FromPEM(ctx, "")
	assert.Regexp(t, "LC010201", err)
}

type testPrimitive struct {
	importErr error
	sig       []byte
	signErr   error
	imported  []byte
}

func (p *testPrimitive) ImportPKCS8(ctx context.Context, pkcs8 []byte) (P1363Key, error) {
	p.imported = pkcs8
	if p.importErr != nil {
		return nil, p.importErr
	}
	return p, nil
}

func (p *testPrimitive) SignP1363(ctx context.Context, content []byte) ([]byte, error) {
	return p.sig, p.signErr
}

func TestPlatformSignerCustomPrimitive(t *testing.T) {
	ctx := context.Background()
	key := newTestKey(t, elliptic.P256())
	raw := make([]byte, 64)
	raw[0] = 0x80
	raw[63] = 0x01
	p := &testPrimitive{sig: raw}

	s, err := NewSigner(ctx, ldconf.SignerBackendPlatform, sec1PEM(t, key), WithP1363Primitive(p))
	require.NoError(t, err)
	sig, err := s.Sign(ctx, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, byte(0x30), sig[0])
	assert.NotEmpty(t, p.imported)

	back, err := DERToP1363(ctx, sig)
	require.NoError(t, err)
	assert.Equal(t, raw, back)
}

func TestPlatformSignerPrimitiveErrors(t *testing.T) {
	ctx := context.Background()
	pemKey := sec1PEM(t, newTestKey(t, elliptic.P256()))

	s, err := NewSigner(ctx, ldconf.SignerBackendPlatform, pemKey, WithP1363Primitive(&testPrimitive{importErr: fmt.Errorf("pop")}))
	require.NoError(t, err)
	_, err = s.Sign(ctx, []byte("x"))
	assert.Regexp(t, "pop", err)

	s, err = NewSigner(ctx, ldconf.SignerBackendPlatform, pemKey, WithP1363Primitive(&testPrimitive{signErr: fmt.Errorf("snap")}))
	require.NoError(t, err)
	_, err = s.Sign(ctx, []byte("x"))
	assert.Regexp(t, "snap", err)

	s, err = NewSigner(ctx, ldconf.SignerBackendPlatform, pemKey, WithP1363Primitive(&testPrimitive{sig: make([]byte, 63)}))
	require.NoError(t, err)
	_, err = s.Sign(ctx, []byte("x"))
	assert.Regexp(t, "LC010205", err)
}

func TestDefaultPrimitiveImportErrors(t *testing.T) {
	ctx := context.Background()
	_, err := DefaultP1363Primitive.ImportPKCS8(ctx, []byte{0x01})
	assert.Regexp(t, "LC010200", err)

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(rsaKey)
	require.NoError(t, err)
	_, err = DefaultP1363Primitive.ImportPKCS8(ctx, der)
	assert.Regexp(t, "LC010202", err)
}

func TestFactorySharesSigners(t *testing.T) {
	ctx := context.Background()
	f, err := NewFactory(ctx, &ldconf.SignerConfig{})
	require.NoError(t, err)
	assert.Equal(t, ldconf.SignerBackendNative, f.Backend())

	pem1 := sec1PEM(t, newTestKey(t, elliptic.P256()))
	pem2 := sec1PEM(t, newTestKey(t, elliptic.P256()))

	s1, err := f.SignerFor(ctx, pem1)
	require.NoError(t, err)
	s1b, err := f.SignerFor(ctx, pem1)
	require.NoError(t, err)
	s2, err := f.SignerFor(ctx, pem2)
	require.NoError(t, err)

	assert.Same(t, s1, s1b)
	assert.NotSame(t, s1, s2)
}

func TestFactoryBadBackend(t *testing.T) {
	_, err := NewFactory(context.Background(), &ldconf.SignerConfig{Backend: confutil.P("tpm")})
	assert.Regexp(t, "LC010006", err)
}

func TestSharedFactory(t *testing.T) {
	ctx := context.Background()
	f1, err := SharedFactory(ctx, &ldconf.SignerConfig{})
	require.NoError(t, err)
	f2, err := SharedFactory(ctx, &ldconf.SignerConfig{Backend: confutil.P(ldconf.SignerBackendNative)})
	require.NoError(t, err)
	assert.Same(t, f1, f2)

	f3, err := SharedFactory(ctx, &ldconf.SignerConfig{Cache: ldconf.CacheConfig{Capacity: confutil.P(3)}})
	require.NoError(t, err)
	assert.NotSame(t, f1, f3)

	keyPEM := sec1PEM(t, newTestKey(t, elliptic.P256()))
	s1, err := f1.SignerFor(ctx, keyPEM)
	require.NoError(t, err)
	s2, err := f2.SignerFor(ctx, keyPEM)
	require.NoError(t, err)
	assert.Same(t, s1, s2)

	_, err = SharedFactory(ctx, &ldconf.SignerConfig{Backend: confutil.P("tpm")})
	assert.Regexp(t, "LC010006", err)
}
