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

// Package consistency compares what the Ledger and the Auditor each report for the same request.
package consistency

import (
	"slices"

	"github.com/kaleido-io/ledgerclient/pkg/ldtypes"
)

// Executions holds when both parties agree on the contract result, and the Auditor
// proofs pair one to one with the Ledger proofs on asset id, age and hash.
// It stops at the first mismatch.
func Executions(ledgerResult, auditorResult string, ledgerProofs, auditorProofs []*ldtypes.AssetProof) bool {
	if ledgerResult != auditorResult {
		return false
	}
	if len(ledgerProofs) != len(auditorProofs) {
		return false
	}

	unmatched := make(map[string][]*ldtypes.AssetProof, len(ledgerProofs))
	for _, p := range ledgerProofs {
		if p == nil {
			return false
		}
		unmatched[p.ID()] = append(unmatched[p.ID()], p)
	}
	for _, a := range auditorProofs {
		if a == nil {
			return false
		}
		candidates := unmatched[a.ID()]
		i := slices.IndexFunc(candidates, func(l *ldtypes.AssetProof) bool {
			return l.Age() == a.Age() && l.HashEquals(a.Hash())
		})
		if i < 0 {
			return false
		}
		// each Ledger proof vouches for one Auditor proof only
		unmatched[a.ID()] = slices.Delete(candidates, i, i+1)
	}
	return true
}

// Proofs holds when both proofs exist and carry the same hash
func Proofs(ledger, auditor *ldtypes.AssetProof) bool {
	return ledger != nil && auditor != nil && ledger.HashEquals(auditor.Hash())
}

// LedgerValidation combines the two independent validation results. A disagreement is
// reported as an INCONSISTENT_STATES result code carrying both proofs, not as an error.
func LedgerValidation(ledger, auditor *ldtypes.LedgerValidationResult) *ldtypes.LedgerValidationResult {
	if ledger.Code == ldtypes.StatusOK &&
		auditor.Code == ldtypes.StatusOK &&
		Proofs(ledger.LedgerProof, auditor.AuditorProof) {
		return &ldtypes.LedgerValidationResult{
			Code:         ldtypes.StatusOK,
			LedgerProof:  ledger.LedgerProof,
			AuditorProof: auditor.AuditorProof,
		}
	}
	return &ldtypes.LedgerValidationResult{
		Code:         ldtypes.StatusInconsistentStates,
		LedgerProof:  ledger.LedgerProof,
		AuditorProof: auditor.AuditorProof,
	}
}
