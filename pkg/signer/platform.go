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
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/log"
)

// P1363Primitive is a platform signing facility that imports PKCS#8 keys and
// produces fixed-width r||s ECDSA P-256 / SHA-256 signatures.
type P1363Primitive interface {
	ImportPKCS8(ctx context.Context, pkcs8 []byte) (P1363Key, error)
}

type P1363Key interface {
	SignP1363(ctx context.Context, content []byte) ([]byte, error)
}

var DefaultP1363Primitive P1363Primitive = &goP1363Primitive{}

type goP1363Primitive struct{}

type goP1363Key struct {
	key *ecdsa.PrivateKey
}

func (p *goP1363Primitive) ImportPKCS8(ctx context.Context, pkcs8 []byte) (P1363Key, error) {
	k, err := x509.ParsePKCS8PrivateKey(pkcs8)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgSignerKeyLoadFailed)
	}
	key, ok := k.(*ecdsa.PrivateKey)
	if !ok {
		return nil, i18n.NewError(ctx, msgs.MsgSignerUnsupportedKeyBlock, pemTypePKCS8)
	}
	return &goP1363Key{key: key}, nil
}

func (k *goP1363Key) SignP1363(ctx context.Context, content []byte) ([]byte, error) {
	digest := sha256.Sum256(content)
	r, s, err := ecdsa.Sign(rand.Reader, k.key, digest[:])
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgSignerSignFailed)
	}
	sig := make([]byte, p1363Len)
	r.FillBytes(sig[:p256ScalarLen])
	s.FillBytes(sig[p256ScalarLen:])
	return sig, nil
}

type platformSigner struct {
	pem       string
	primitive P1363Primitive
	key       lazyKey[P1363Key]
}

func (s *platformSigner) Sign(ctx context.Context, content []byte) ([]byte, error) {
	key, err := s.key.get(func() (P1363Key, error) {
		log.L(ctx).Debugf("Importing private key into platform signer")
		pkcs8, err := PKCS8FromPEM(ctx, s.pem)
		if err != nil {
			return nil, err
		}
		return s.primitive.ImportPKCS8(ctx, pkcs8)
	})
	if err != nil {
		return nil, err
	}
	raw, err := key.SignP1363(ctx, content)
	if err != nil {
		return nil, err
	}
	return P1363ToDER(ctx, raw)
}
