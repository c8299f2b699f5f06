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
	"math/big"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

const (
	p256ScalarLen = 32
	p1363Len      = 2 * p256ScalarLen
)

// P1363ToDER converts a raw r||s signature into an ASN.1 SEQUENCE of two INTEGERs.
// Integers are minimally encoded, with a leading zero when the high bit is set.
func P1363ToDER(ctx context.Context, sig []byte) ([]byte, error) {
	if len(sig) != p1363Len {
		return nil, i18n.NewError(ctx, msgs.MsgSignerP1363Length, p1363Len, len(sig))
	}
	r := new(big.Int).SetBytes(sig[:p256ScalarLen])
	s := new(big.Int).SetBytes(sig[p256ScalarLen:])

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(r)
		b.AddASN1BigInt(s)
	})
	der, err := b.Bytes()
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgSignerDERInvalid)
	}
	return der, nil
}

func DERToP1363(ctx context.Context, der []byte) ([]byte, error) {
	r, s := new(big.Int), new(big.Int)
	var inner cryptobyte.String
	input := cryptobyte.String(der)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() {
		return nil, i18n.NewError(ctx, msgs.MsgSignerDERInvalid)
	}
	if r.Sign() < 0 || s.Sign() < 0 || r.BitLen() > 8*p256ScalarLen || s.BitLen() > 8*p256ScalarLen {
		return nil, i18n.NewError(ctx, msgs.MsgSignerDERInvalid)
	}
	out := make([]byte, p1363Len)
	r.FillBytes(out[:p256ScalarLen])
	s.FillBytes(out[p256ScalarLen:])
	return out, nil
}
