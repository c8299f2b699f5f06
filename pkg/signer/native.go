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

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/log"
)

type nativeSigner struct {
	pem string
	key lazyKey[*ecdsa.PrivateKey]
}

func (s *nativeSigner) Sign(ctx context.Context, content []byte) ([]byte, error) {
	key, err := s.key.get(func() (*ecdsa.PrivateKey, error) {
		log.L(ctx).Debugf("Loading private key for native signer")
		return ParsePrivateKeyPEM(ctx, s.pem)
	})
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(content)
	sig, err := ecdsa.SignASN1(rand.Reader, key, digest[:])
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgSignerSignFailed)
	}
	return sig, nil
}
