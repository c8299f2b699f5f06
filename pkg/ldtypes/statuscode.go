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
	"strconv"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
)

// StatusCode is the result classification shared by the services and the client
type StatusCode int32

const (
	StatusOK                           StatusCode = 200
	StatusInvalidHash                  StatusCode = 300
	StatusInvalidPrevHash              StatusCode = 301
	StatusInvalidContract              StatusCode = 302
	StatusInvalidOutput                StatusCode = 303
	StatusInvalidNonce                 StatusCode = 304
	StatusInconsistentStates           StatusCode = 305
	StatusInvalidSignature             StatusCode = 400
	StatusUnloadableKey                StatusCode = 401
	StatusUnloadableContract           StatusCode = 402
	StatusCertificateNotFound          StatusCode = 403
	StatusContractNotFound             StatusCode = 404
	StatusCertificateAlreadyRegistered StatusCode = 405
	StatusFunctionNotFound             StatusCode = 406
	StatusUnloadableFunction           StatusCode = 407
	StatusInvalidFunction              StatusCode = 408
	StatusContractContextualError      StatusCode = 409
	StatusAssetNotFound                StatusCode = 410
	StatusInvalidRequest               StatusCode = 414
	StatusDatabaseError                StatusCode = 500
	StatusUnknownTransactionStatus     StatusCode = 501
	StatusRuntimeError                 StatusCode = 502
	StatusUnavailable                  StatusCode = 503
	StatusConflict                     StatusCode = 504
	StatusClientIOError                StatusCode = 600
	StatusClientDatabaseError          StatusCode = 601
	StatusClientRuntimeError           StatusCode = 602
)

var statusCodeNames = map[StatusCode]string{
	StatusOK:                           "OK",
	StatusInvalidHash:                  "INVALID_HASH",
	StatusInvalidPrevHash:              "INVALID_PREV_HASH",
	StatusInvalidContract:              "INVALID_CONTRACT",
	StatusInvalidOutput:                "INVALID_OUTPUT",
	StatusInvalidNonce:                 "INVALID_NONCE",
	StatusInconsistentStates:           "INCONSISTENT_STATES",
	StatusInvalidSignature:             "INVALID_SIGNATURE",
	StatusUnloadableKey:                "UNLOADABLE_KEY",
	StatusUnloadableContract:           "UNLOADABLE_CONTRACT",
	StatusCertificateNotFound:          "CERTIFICATE_NOT_FOUND",
	StatusContractNotFound:             "CONTRACT_NOT_FOUND",
	StatusCertificateAlreadyRegistered: "CERTIFICATE_ALREADY_REGISTERED",
	StatusFunctionNotFound:             "FUNCTION_NOT_FOUND",
	StatusUnloadableFunction:           "UNLOADABLE_FUNCTION",
	StatusInvalidFunction:              "INVALID_FUNCTION",
	StatusContractContextualError:      "CONTRACT_CONTEXTUAL_ERROR",
	StatusAssetNotFound:                "ASSET_NOT_FOUND",
	StatusInvalidRequest:               "INVALID_REQUEST",
	StatusDatabaseError:                "DATABASE_ERROR",
	StatusUnknownTransactionStatus:     "UNKNOWN_TRANSACTION_STATUS",
	StatusRuntimeError:                 "RUNTIME_ERROR",
	StatusUnavailable:                  "UNAVAILABLE",
	StatusConflict:                     "CONFLICT",
	StatusClientIOError:                "CLIENT_IO_ERROR",
	StatusClientDatabaseError:          "CLIENT_DATABASE_ERROR",
	StatusClientRuntimeError:           "CLIENT_RUNTIME_ERROR",
}

func (sc StatusCode) String() string {
	if name, ok := statusCodeNames[sc]; ok {
		return name
	}
	return strconv.Itoa(int(sc))
}

func ParseStatusCode(ctx context.Context, name string) (StatusCode, error) {
	for sc, n := range statusCodeNames {
		if n == name {
			return sc, nil
		}
	}
	return 0, i18n.NewError(ctx, msgs.MsgInvalidStatusCodeName, name)
}

func (sc StatusCode) MarshalText() ([]byte, error) {
	return []byte(sc.String()), nil
}
