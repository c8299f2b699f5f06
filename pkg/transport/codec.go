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

package transport

import (
	"context"
	"encoding/json"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"google.golang.org/grpc/encoding"
)

const CodecName = "json"

// jsonCodec carries the rpcmsgs structs over gRPC, in place of generated protobuf types
type jsonCodec struct{}

func (jsonCodec) Name() string {
	return CodecName
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, i18n.WrapError(context.Background(), err, msgs.MsgTransportCodecMarshal, v, CodecName)
	}
	return b, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return i18n.WrapError(context.Background(), err, msgs.MsgTransportCodecUnmarshal, v, CodecName)
	}
	return nil
}

// JSONCodec is exported for servers (and test servers) that speak the same wire format
func JSONCodec() encoding.Codec {
	return jsonCodec{}
}
