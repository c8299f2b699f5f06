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

// Package signer produces DER encoded ECDSA P-256 / SHA-256 signatures over canonical request bytes.
package signer

import (
	"context"
	"sync"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
)

// Signer is safe for concurrent use once constructed
type Signer interface {
	Sign(ctx context.Context, content []byte) ([]byte, error)
}

type Option func(*options)

type options struct {
	primitive P1363Primitive
}

// WithP1363Primitive replaces the signing primitive used by the platform backend
func WithP1363Primitive(p P1363Primitive) Option {
	return func(o *options) {
		o.primitive = p
	}
}

// NewSigner selects the backend explicitly. The key is not decoded until the first signature.
func NewSigner(ctx context.Context, backend string, privateKeyPEM string, opts ...Option) (Signer, error) {
	o := &options{primitive: DefaultP1363Primitive}
	for _, opt := range opts {
		opt(o)
	}
	switch backend {
	case ldconf.SignerBackendNative:
		return &nativeSigner{pem: privateKeyPEM}, nil
	case ldconf.SignerBackendPlatform:
		return &platformSigner{pem: privateKeyPEM, primitive: o.primitive}, nil
	default:
		return nil, i18n.NewError(ctx, msgs.MsgSignerUnknownBackend, backend)
	}
}

// lazyKey decodes once, and remembers a failure as well as a success
type lazyKey[K any] struct {
	once sync.Once
	key  K
	err  error
}

func (l *lazyKey[K]) get(load func() (K, error)) (K, error) {
	l.once.Do(func() {
		l.key, l.err = load()
	})
	return l.key, l.err
}
