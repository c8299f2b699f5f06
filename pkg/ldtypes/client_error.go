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

package ldtypes

import (
	"context"
	"errors"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
)

// ClientError is the only error type surfaced by the client API.
// Message is the detail reported by the server for server statuses, and the
// formatted catalogue text otherwise.
type ClientError struct {
	code    StatusCode
	message string
	err     error
}

func NewClientError(ctx context.Context, code StatusCode, key i18n.ErrorMessageKey, inserts ...interface{}) *ClientError {
	err := i18n.NewError(ctx, key, inserts...)
	return &ClientError{code: code, message: err.Error(), err: err}
}

func WrapClientError(ctx context.Context, code StatusCode, cause error, key i18n.ErrorMessageKey, inserts ...interface{}) *ClientError {
	err := i18n.WrapError(ctx, cause, key, inserts...)
	return &ClientError{code: code, message: err.Error(), err: err}
}

// ServerError records a status reported by the Ledger or Auditor
func ServerError(ctx context.Context, code StatusCode, serverMessage string) *ClientError {
	return &ClientError{
		code:    code,
		message: serverMessage,
		err:     i18n.NewError(ctx, msgs.MsgClientServerStatus, code, serverMessage),
	}
}

func (e *ClientError) Code() StatusCode { return e.code }

func (e *ClientError) Message() string { return e.message }

func (e *ClientError) Error() string { return e.err.Error() }

func (e *ClientError) Unwrap() error { return e.err }

// CodeOf returns the status code of the first ClientError in the chain,
// or CLIENT_RUNTIME_ERROR for anything else
func CodeOf(err error) StatusCode {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.code
	}
	if err == nil {
		return StatusOK
	}
	return StatusClientRuntimeError
}
