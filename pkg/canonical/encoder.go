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

// Package canonical produces the byte sequences that requests are signed over.
// Fields are concatenated in a fixed order per request kind with no delimiters
// or length prefixes.
package canonical

import "encoding/binary"

type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 256)}
}

// String appends the UTF-8 bytes of s. An empty string contributes nothing.
func (e *Encoder) String(s string) *Encoder {
	e.buf = append(e.buf, s...)
	return e
}

func (e *Encoder) Uint32(v uint32) *Encoder {
	e.buf = binary.BigEndian.AppendUint32(e.buf, v)
	return e
}

func (e *Encoder) Bytes(b []byte) *Encoder {
	e.buf = append(e.buf, b...)
	return e
}

func (e *Encoder) Result() []byte {
	return e.buf
}

func ContractRegistration(contractID, binaryName string, bytecode []byte, properties, certHolderID string, certVersion uint32) []byte {
	return NewEncoder().
		String(contractID).
		String(binaryName).
		Bytes(bytecode).
		String(properties).
		String(certHolderID).
		Uint32(certVersion).
		Result()
}

func ContractsListing(contractID, certHolderID string, certVersion uint32) []byte {
	return NewEncoder().
		String(contractID).
		String(certHolderID).
		Uint32(certVersion).
		Result()
}

func LedgerValidation(assetID string, startAge, endAge uint32, certHolderID string, certVersion uint32) []byte {
	return NewEncoder().
		String(assetID).
		Uint32(startAge).
		Uint32(endAge).
		String(certHolderID).
		Uint32(certVersion).
		Result()
}

func ContractExecution(contractID, contractArgument, certHolderID string, certVersion uint32, functionArgument string) []byte {
	return NewEncoder().
		String(contractID).
		String(contractArgument).
		String(certHolderID).
		Uint32(certVersion).
		String(functionArgument).
		Result()
}
