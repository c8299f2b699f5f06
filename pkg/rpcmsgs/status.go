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

package rpcmsgs

import (
	"context"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"google.golang.org/protobuf/encoding/protowire"
)

// StatusMetadataKey is the trailer/header carrying a protobuf encoded Status on failure
const StatusMetadataKey = "rpc.status-bin"

// Status is the out-of-band failure detail returned by the services.
// Wire form is protobuf: int32 code = 1; string message = 2.
type Status struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

const (
	statusFieldCode    protowire.Number = 1
	statusFieldMessage protowire.Number = 2
)

func (s *Status) MarshalBinary() ([]byte, error) {
	var b []byte
	if s.Code != 0 {
		b = protowire.AppendTag(b, statusFieldCode, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(int64(s.Code)))
	}
	if s.Message != "" {
		b = protowire.AppendTag(b, statusFieldMessage, protowire.BytesType)
		b = protowire.AppendString(b, s.Message)
	}
	return b, nil
}

func UnmarshalStatus(ctx context.Context, b []byte) (*Status, error) {
	s := &Status{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, i18n.WrapError(ctx, protowire.ParseError(n), msgs.MsgStatusDecodeFailed)
		}
		b = b[n:]
		switch {
		case num == statusFieldCode && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			s.Code = int32(v)
		case num == statusFieldMessage && typ == protowire.BytesType:
			s.Message, n = protowire.ConsumeString(b)
		default:
			// unknown fields are skipped
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, i18n.WrapError(ctx, protowire.ParseError(n), msgs.MsgStatusDecodeFailed)
		}
		b = b[n:]
	}
	return s, nil
}
