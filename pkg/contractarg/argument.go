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

// Package contractarg formats the contract argument string that is signed and sent with an execution request.
package contractarg

import (
	"bytes"
	"context"
	"encoding/json"
	"maps"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
)

const (
	formatVersion   = "V2"
	sepVersion      = "\x01"
	sepFunctionIDs  = "\x02"
	sepSection      = "\x03"
	functionsKey    = "_functions_"
	deprecatedNonce = "nonce"
)

type Kind int

const (
	KindString Kind = iota
	KindJSON
)

// Argument is either a plain string, or a structured value encoded as JSON
type Argument struct {
	kind  Kind
	str   string
	value any
}

func String(s string) Argument {
	return Argument{kind: KindString, str: s}
}

func JSON(v any) Argument {
	return Argument{kind: KindJSON, value: v}
}

// EmptyLike is the default function argument matching the kind of a contract argument
func EmptyLike(a Argument) Argument {
	if a.kind == KindJSON {
		return JSON(map[string]any{})
	}
	return String("")
}

func (a Argument) Kind() Kind {
	return a.kind
}

func (a Argument) Value() any {
	if a.kind == KindJSON {
		return a.value
	}
	return a.str
}

func (a Argument) Encode(ctx context.Context) (string, error) {
	if a.kind == KindString {
		return a.str, nil
	}
	return encodeJSON(ctx, a.value)
}

// Format produces "V2" 0x01 nonce 0x03 ids 0x03 argument, where ids are joined with 0x02.
// Function ids that are not strings are dropped.
func Format(ctx context.Context, nonce string, functionIDs []any, arg Argument) (string, error) {
	encoded, err := arg.Encode(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(functionIDs))
	for _, id := range functionIDs {
		if s, ok := id.(string); ok {
			ids = append(ids, s)
		}
	}
	var sb strings.Builder
	sb.WriteString(formatVersion)
	sb.WriteString(sepVersion)
	sb.WriteString(nonce)
	sb.WriteString(sepSection)
	sb.WriteString(strings.Join(ids, sepFunctionIDs))
	sb.WriteString(sepSection)
	sb.WriteString(encoded)
	return sb.String(), nil
}

// FormatDeprecated is the pre-V2 format, with the nonce as a property of the object.
// The supplied object is not modified.
//
// Deprecated: use Format
func FormatDeprecated(ctx context.Context, object map[string]any, nonce string) (string, error) {
	withNonce := maps.Clone(object)
	if withNonce == nil {
		withNonce = map[string]any{}
	}
	withNonce[deprecatedNonce] = nonce
	return encodeJSON(ctx, withNonce)
}

// FunctionIDs returns the "_functions_" array of the object, or an empty list if there is none
func FunctionIDs(ctx context.Context, object map[string]any) ([]any, error) {
	v, ok := object[functionsKey]
	if !ok {
		return []any{}, nil
	}
	switch ids := v.(type) {
	case []any:
		return ids, nil
	case []string:
		out := make([]any, len(ids))
		for i, id := range ids {
			out[i] = id
		}
		return out, nil
	default:
		return nil, i18n.NewError(ctx, msgs.MsgArgumentNotArray)
	}
}

// FunctionIDsOf applies FunctionIDs to a structured argument
func FunctionIDsOf(ctx context.Context, arg Argument) ([]any, error) {
	object, ok := arg.value.(map[string]any)
	if arg.kind != KindJSON || !ok {
		return nil, i18n.NewError(ctx, msgs.MsgArgumentNotObject)
	}
	return FunctionIDs(ctx, object)
}

func encodeJSON(ctx context.Context, v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", i18n.WrapError(ctx, err, msgs.MsgArgumentEncodeFailed)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
