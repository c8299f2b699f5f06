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

package contractarg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	ctx := context.Background()

	s, err := Format(ctx, "nonce", []any{"f1", "f2"}, String("stringArgument"))
	require.NoError(t, err)
	assert.Equal(t, "V2\x01nonce\x03f1\x02f2\x03stringArgument", s)

	s, err = Format(ctx, "nonce", []any{"f1", "f2"}, JSON(map[string]any{"foo": "bar"}))
	require.NoError(t, err)
	assert.Equal(t, "V2\x01nonce\x03f1\x02f2\x03{\"foo\":\"bar\"}", s)

	s, err = Format(ctx, "nonce", []any{"f1", nil, 42, map[string]any{}, "f2"}, JSON(map[string]any{"foo": "bar"}))
	require.NoError(t, err)
	assert.Equal(t, "V2\x01nonce\x03f1\x02f2\x03{\"foo\":\"bar\"}", s)

	s, err = Format(ctx, "", nil, String(""))
	require.NoError(t, err)
	assert.Equal(t, "V2\x01\x03\x03", s)
}

func TestFormatNoHTMLEscape(t *testing.T) {
	s, err := JSON(map[string]any{"q": "<a&b>"}).Encode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"q":"<a&b>"}`, s)
}

func TestFormatEncodeError(t *testing.T) {
	_, err := Format(context.Background(), "n", nil, JSON(map[string]any{"c": make(chan int)}))
	assert.Regexp(t, "LC010101", err)
}

func TestFormatDeprecated(t *testing.T) {
	ctx := context.Background()
	object := map[string]any{"foo": "bar"}

	s, err := FormatDeprecated(ctx, object, "nonce")
	require.NoError(t, err)
	assert.Equal(t, `{"foo":"bar","nonce":"nonce"}`, s)
	assert.NotContains(t, object, "nonce")

	s, err = FormatDeprecated(ctx, nil, "n")
	require.NoError(t, err)
	assert.Equal(t, `{"nonce":"n"}`, s)
}

func TestFunctionIDs(t *testing.T) {
	ctx := context.Background()

	ids, err := FunctionIDs(ctx, map[string]any{"foo": "bar"})
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = FunctionIDs(ctx, map[string]any{"_functions_": []any{"f1", "f2"}})
	require.NoError(t, err)
	assert.Equal(t, []any{"f1", "f2"}, ids)

	ids, err = FunctionIDs(ctx, map[string]any{"_functions_": []string{"f1"}})
	require.NoError(t, err)
	assert.Equal(t, []any{"f1"}, ids)

	_, err = FunctionIDs(ctx, map[string]any{"_functions_": "not-array"})
	assert.Regexp(t, "LC010100", err)
}

func TestFunctionIDsOf(t *testing.T) {
	ctx := context.Background()

	ids, err := FunctionIDsOf(ctx, JSON(map[string]any{"_functions_": []any{"f1"}}))
	require.NoError(t, err)
	assert.Equal(t, []any{"f1"}, ids)

	_, err = FunctionIDsOf(ctx, String("x"))
	assert.Regexp(t, "LC010102", err)

	_, err = FunctionIDsOf(ctx, JSON([]any{1}))
	assert.Regexp(t, "LC010102", err)
}

func TestArgumentKinds(t *testing.T) {
	assert.Equal(t, KindString, String("a").Kind())
	assert.Equal(t, "a", String("a").Value())
	assert.Equal(t, KindJSON, JSON(1).Kind())
	assert.Equal(t, 1, JSON(1).Value())

	assert.Equal(t, KindJSON, EmptyLike(JSON(nil)).Kind())
	assert.Equal(t, map[string]any{}, EmptyLike(JSON(nil)).Value())
	assert.Equal(t, String(""), EmptyLike(String("x")))
}
