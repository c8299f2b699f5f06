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
	"errors"

	"github.com/kaleido-io/ledgerclient/pkg/log"
	"github.com/kaleido-io/ledgerclient/pkg/rpcmsgs"
	"google.golang.org/grpc/metadata"
)

// Error is returned by every Caller. It keeps whatever status metadata the
// server attached, in the shape the transport delivered it.
type Error struct {
	Method string
	Err    error
	// gRPC trailers, where each key can carry several values
	Trailer metadata.MD
	// decoded gateway headers, with at most one value per key
	Properties map[string][]byte
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusFromError finds the binary status the server attached to a failed call.
// A trailer must carry exactly one value under the status key to be used.
func StatusFromError(ctx context.Context, err error) (*rpcmsgs.Status, bool) {
	var te *Error
	if !errors.As(err, &te) {
		return nil, false
	}

	var raw []byte
	if te.Trailer != nil {
		values := te.Trailer.Get(rpcmsgs.StatusMetadataKey)
		if len(values) != 1 {
			return nil, false
		}
		raw = []byte(values[0])
	} else if te.Properties != nil {
		b, ok := te.Properties[rpcmsgs.StatusMetadataKey]
		if !ok {
			return nil, false
		}
		raw = b
	} else {
		return nil, false
	}

	status, decodeErr := rpcmsgs.UnmarshalStatus(ctx, raw)
	if decodeErr != nil {
		log.L(ctx).Warnf("Ignoring undecodable status on %s: %s", te.Method, decodeErr)
		return nil, false
	}
	return status, true
}
