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

// Package rpcmsgs holds the wire messages exchanged with the Ledger and Auditor services.
// Requests are only created by the builders in pkg/requests.
package rpcmsgs

type CertificateRegistrationRequest struct {
	CertHolderID string `json:"certHolderId"`
	CertVersion  uint32 `json:"certVersion"`
	CertPEM      string `json:"certPem"`
}

type FunctionRegistrationRequest struct {
	FunctionID         string `json:"functionId"`
	FunctionBinaryName string `json:"functionBinaryName"`
	FunctionByteCode   []byte `json:"functionByteCode"`
}

type ContractRegistrationRequest struct {
	ContractID         string `json:"contractId"`
	ContractBinaryName string `json:"contractBinaryName"`
	ContractByteCode   []byte `json:"contractByteCode"`
	ContractProperties string `json:"contractProperties,omitempty"`
	CertHolderID       string `json:"certHolderId"`
	CertVersion        uint32 `json:"certVersion"`
	Signature          []byte `json:"signature"`
}

type ContractsListingRequest struct {
	CertHolderID string `json:"certHolderId"`
	CertVersion  uint32 `json:"certVersion"`
	ContractID   string `json:"contractId,omitempty"`
	Signature    []byte `json:"signature"`
}

type ContractsListingResponse struct {
	JSON string `json:"json"`
}

type LedgerValidationRequest struct {
	AssetID      string `json:"assetId"`
	StartAge     uint32 `json:"startAge"`
	EndAge       uint32 `json:"endAge"`
	CertHolderID string `json:"certHolderId"`
	CertVersion  uint32 `json:"certVersion"`
	Signature    []byte `json:"signature"`
}

type LedgerValidationResponse struct {
	StatusCode int32       `json:"statusCode"`
	Proof      *AssetProof `json:"proof,omitempty"`
}

type ContractExecutionRequest struct {
	ContractID       string   `json:"contractId"`
	ContractArgument string   `json:"contractArgument"`
	CertHolderID     string   `json:"certHolderId"`
	CertVersion      uint32   `json:"certVersion"`
	FunctionArgument *string  `json:"functionArgument,omitempty"`
	Signature        []byte   `json:"signature"`
	AuditorSignature []byte   `json:"auditorSignature,omitempty"`
	UseFunctionIDs   bool     `json:"useFunctionIds"`
	FunctionIDs      []string `json:"functionIds"`
	Nonce            string   `json:"nonce"`
}

type ContractExecutionResponse struct {
	ContractResult string        `json:"contractResult"`
	FunctionResult string        `json:"functionResult"`
	Proofs         []*AssetProof `json:"proofs"`
}

type ExecutionOrderingResponse struct {
	Signature []byte `json:"signature"`
}

type ExecutionValidationRequest struct {
	Request *ContractExecutionRequest `json:"request"`
	Proofs  []*AssetProof             `json:"proofs"`
}

type RequestProofRegistrationRequest struct {
	ContractID       string `json:"contractId"`
	ContractArgument string `json:"contractArgument"`
	CertHolderID     string `json:"certHolderId"`
	CertVersion      uint32 `json:"certVersion"`
	Signature        []byte `json:"signature"`
}

type AssetProof struct {
	AssetID   string `json:"assetId"`
	Age       uint32 `json:"age"`
	Nonce     string `json:"nonce"`
	Input     string `json:"input"`
	Hash      []byte `json:"hash"`
	PrevHash  []byte `json:"prevHash"`
	Signature []byte `json:"signature"`
}

type Empty struct{}
