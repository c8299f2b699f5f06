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
	"crypto/x509"
	"encoding/pem"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
)

const (
	pemTypeSEC1  = "EC PRIVATE KEY"
	pemTypePKCS8 = "PRIVATE KEY"
)

// ParsePrivateKeyPEM accepts a SEC1 or PKCS#8 PEM block holding a P-256 key
func ParsePrivateKeyPEM(ctx context.Context, keyPEM string) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(keyPEM))
	if block == nil {
		return nil, i18n.NewError(ctx, msgs.MsgSignerNoPEMBlock)
	}

	var key *ecdsa.PrivateKey
	switch block.Type {
	case pemTypeSEC1:
		k, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgSignerKeyLoadFailed)
		}
		key = k
	case pemTypePKCS8:
		k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgSignerKeyLoadFailed)
		}
		ecKey, ok := k.(*ecdsa.PrivateKey)
		if !ok {
			return nil, i18n.NewError(ctx, msgs.MsgSignerUnsupportedKeyBlock, block.Type)
		}
		key = ecKey
	default:
		return nil, i18n.NewError(ctx, msgs.MsgSignerUnsupportedKeyBlock, block.Type)
	}

	if key.Curve != elliptic.P256() {
		return nil, i18n.NewError(ctx, msgs.MsgSignerUnsupportedCurve, key.Curve.Params().Name)
	}
	return key, nil
}

// PKCS8FromPEM re-encodes the key as PKCS#8 DER, the format platform primitives import
func PKCS8FromPEM(ctx context.Context, keyPEM string) ([]byte, error) {
	key, err := ParsePrivateKeyPEM(ctx, keyPEM)
	if err != nil {
		return nil, err
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgSignerPKCS8ConvertFailed)
	}
	return der, nil
}
