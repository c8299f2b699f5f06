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

// ContractExecutionResult keeps the proofs from each party in separate slices.
// AuditorProofs is empty when no Auditor took part.
type ContractExecutionResult struct {
	ContractResult string        `json:"contractResult"`
	FunctionResult string        `json:"functionResult"`
	LedgerProofs   []*AssetProof `json:"-"`
	AuditorProofs  []*AssetProof `json:"-"`
}

func NewContractExecutionResult(contractResult, functionResult string, ledgerProofs, auditorProofs []*AssetProof) *ContractExecutionResult {
	return &ContractExecutionResult{
		ContractResult: contractResult,
		FunctionResult: functionResult,
		LedgerProofs:   append(make([]*AssetProof, 0, len(ledgerProofs)), ledgerProofs...),
		AuditorProofs:  append(make([]*AssetProof, 0, len(auditorProofs)), auditorProofs...),
	}
}

type LedgerValidationResult struct {
	Code         StatusCode  `json:"code"`
	LedgerProof  *AssetProof `json:"-"`
	AuditorProof *AssetProof `json:"-"`
}
