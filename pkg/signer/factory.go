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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/cache"
	"github.com/kaleido-io/ledgerclient/internal/confutil"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
)

// Factory hands out signers for a configured backend, sharing decoded keys
// between callers that present the same key material.
type Factory struct {
	backend string
	opts    []Option
	signers cache.Cache[string, Signer]
}

var (
	sharedLock      sync.Mutex
	sharedFactories = map[string]*Factory{}
)

// SharedFactory returns the process wide factory for the backend and cache size in the
// configuration, so every client presenting the same key reuses one decoded signer.
func SharedFactory(ctx context.Context, conf *ldconf.SignerConfig) (*Factory, error) {
	backend, err := validBackend(ctx, conf)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s/%d", backend, confutil.IntMin(conf.Cache.Capacity, 1, *ldconf.ClientDefaults.Signer.Cache.Capacity))

	sharedLock.Lock()
	defer sharedLock.Unlock()
	if f, ok := sharedFactories[key]; ok {
		return f, nil
	}
	f, err := NewFactory(ctx, conf)
	if err != nil {
		return nil, err
	}
	sharedFactories[key] = f
	return f, nil
}

func validBackend(ctx context.Context, conf *ldconf.SignerConfig) (string, error) {
	backend := (&ldconf.ClientConfig{Signer: *conf}).SignerBackend()
	if backend != ldconf.SignerBackendNative && backend != ldconf.SignerBackendPlatform {
		return "", i18n.NewError(ctx, msgs.MsgConfigSignerBackendInvalid, backend)
	}
	return backend, nil
}

// NewFactory builds a factory with its own cache. Use SharedFactory unless the
// options must apply to only some clients.
func NewFactory(ctx context.Context, conf *ldconf.SignerConfig, opts ...Option) (*Factory, error) {
	backend, err := validBackend(ctx, conf)
	if err != nil {
		return nil, err
	}
	return &Factory{
		backend: backend,
		opts:    opts,
		signers: cache.NewCache[string, Signer](&conf.Cache, &ldconf.ClientDefaults.Signer.Cache),
	}, nil
}

func (f *Factory) Backend() string {
	return f.backend
}

func (f *Factory) SignerFor(ctx context.Context, privateKeyPEM string) (Signer, error) {
	hash := sha256.Sum256([]byte(privateKeyPEM))
	cacheKey := f.backend + ":" + hex.EncodeToString(hash[:])
	if s, ok := f.signers.Get(cacheKey); ok {
		return s, nil
	}
	s, err := NewSigner(ctx, f.backend, privateKeyPEM, f.opts...)
	if err != nil {
		return nil, err
	}
	f.signers.Set(cacheKey, s)
	return s, nil
}
