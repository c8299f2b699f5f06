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

// Package requests holds the builders that validate, populate and sign the wire requests.
// A builder only ever returns a fully populated request, or an error.
package requests

import (
	"context"
	"math"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/signer"
)

// validator keeps the first illegal argument, so a build can read every field then check once
type validator struct {
	ctx context.Context
	err error
}

func newValidator(ctx context.Context) *validator {
	return &validator{ctx: ctx}
}

func (v *validator) illegal(field string) {
	if v.err == nil {
		v.err = i18n.NewError(v.ctx, msgs.MsgIllegalArgument, field)
	}
}

func (v *validator) str(field string, s *string) string {
	if s == nil {
		v.illegal(field)
		return ""
	}
	return *s
}

func (v *validator) optStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (v *validator) uint32(field string, n *int) uint32 {
	if n == nil {
		v.illegal(field)
		return 0
	}
	return v.optUint32(field, n)
}

func (v *validator) optUint32(field string, n *int) uint32 {
	if n == nil {
		return 0
	}
	if *n < 0 || int64(*n) > math.MaxUint32 {
		v.illegal(field)
		return 0
	}
	return uint32(*n)
}

func (v *validator) bytes(field string, b []byte) []byte {
	if b == nil {
		v.illegal(field)
	}
	return b
}

func sign(ctx context.Context, s signer.Signer, kind string, content []byte) ([]byte, error) {
	if s == nil {
		return nil, i18n.NewError(ctx, msgs.MsgSignerRequired, kind)
	}
	return s.Sign(ctx, content)
}
