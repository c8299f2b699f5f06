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

package requests

import (
	"context"

	"github.com/kaleido-io/ledgerclient/pkg/canonical"
	"github.com/kaleido-io/ledgerclient/pkg/rpcmsgs"
	"github.com/kaleido-io/ledgerclient/pkg/signer"
)

type LedgerValidationRequestBuilder struct {
	signer       signer.Signer
	assetID      *string
	startAge     *int
	endAge       *int
	certHolderID *string
	certVersion  *int
}

func NewLedgerValidationRequestBuilder(s signer.Signer) *LedgerValidationRequestBuilder {
	return &LedgerValidationRequestBuilder{signer: s}
}

func (b *LedgerValidationRequestBuilder) AssetID(id string) *LedgerValidationRequestBuilder {
	b.assetID = &id
	return b
}

func (b *LedgerValidationRequestBuilder) StartAge(age int) *LedgerValidationRequestBuilder {
	b.startAge = &age
	return b
}

func (b *LedgerValidationRequestBuilder) EndAge(age int) *LedgerValidationRequestBuilder {
	b.endAge = &age
	return b
}

func (b *LedgerValidationRequestBuilder) CertHolderID(id string) *LedgerValidationRequestBuilder {
	b.certHolderID = &id
	return b
}

func (b *LedgerValidationRequestBuilder) CertVersion(version int) *LedgerValidationRequestBuilder {
	b.certVersion = &version
	return b
}

func (b *LedgerValidationRequestBuilder) Build(ctx context.Context) (_ *rpcmsgs.LedgerValidationRequest, err error) {
	v := newValidator(ctx)
	req := &rpcmsgs.LedgerValidationRequest{
		AssetID:      v.str("assetId", b.assetID),
		StartAge:     v.uint32("startAge", b.startAge),
		EndAge:       v.uint32("endAge", b.endAge),
		CertHolderID: v.str("certHolderId", b.certHolderID),
		CertVersion:  v.uint32("certVersion", b.certVersion),
	}
	if v.err != nil {
		return nil, v.err
	}
	req.Signature, err = sign(ctx, b.signer, "LedgerValidationRequest", canonical.LedgerValidation(
		req.AssetID, req.StartAge, req.EndAge, req.CertHolderID, req.CertVersion,
	))
	if err != nil {
		return nil, err
	}
	return req, nil
}

type ContractExecutionRequestBuilder struct {
	signer           signer.Signer
	contractID       *string
	contractArgument *string
	certHolderID     *string
	certVersion      *int
	functionArgument *string
	nonce            string
	functionIDs      []string
	useFunctionIDs   bool
}

func NewContractExecutionRequestBuilder(s signer.Signer) *ContractExecutionRequestBuilder {
	return &ContractExecutionRequestBuilder{signer: s}
}

func (b *ContractExecutionRequestBuilder) ContractID(id string) *ContractExecutionRequestBuilder {
	b.contractID = &id
	return b
}

// ContractArgument is the formatted argument string, including the nonce
func (b *ContractExecutionRequestBuilder) ContractArgument(argument string) *ContractExecutionRequestBuilder {
	b.contractArgument = &argument
	return b
}

func (b *ContractExecutionRequestBuilder) CertHolderID(id string) *ContractExecutionRequestBuilder {
	b.certHolderID = &id
	return b
}

func (b *ContractExecutionRequestBuilder) CertVersion(version int) *ContractExecutionRequestBuilder {
	b.certVersion = &version
	return b
}

func (b *ContractExecutionRequestBuilder) FunctionArgument(argument string) *ContractExecutionRequestBuilder {
	b.functionArgument = &argument
	return b
}

func (b *ContractExecutionRequestBuilder) Nonce(nonce string) *ContractExecutionRequestBuilder {
	b.nonce = nonce
	return b
}

// FunctionIDs sets the functions to invoke, and marks the request as routed by function id when there are any
func (b *ContractExecutionRequestBuilder) FunctionIDs(ids ...string) *ContractExecutionRequestBuilder {
	b.functionIDs = ids
	b.useFunctionIDs = len(ids) > 0
	return b
}

func (b *ContractExecutionRequestBuilder) Build(ctx context.Context) (_ *rpcmsgs.ContractExecutionRequest, err error) {
	v := newValidator(ctx)
	req := &rpcmsgs.ContractExecutionRequest{
		ContractID:       v.str("contractId", b.contractID),
		ContractArgument: v.str("contractArgument", b.contractArgument),
		CertHolderID:     v.str("certHolderId", b.certHolderID),
		CertVersion:      v.uint32("certVersion", b.certVersion),
		Nonce:            b.nonce,
		UseFunctionIDs:   b.useFunctionIDs,
		FunctionIDs:      append([]string{}, b.functionIDs...),
	}
	if b.functionArgument != nil {
		fnArg := *b.functionArgument
		req.FunctionArgument = &fnArg
	}
	if v.err != nil {
		return nil, v.err
	}
	req.Signature, err = sign(ctx, b.signer, "ContractExecutionRequest", canonical.ContractExecution(
		req.ContractID, req.ContractArgument, req.CertHolderID, req.CertVersion, v.optStr(req.FunctionArgument),
	))
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ExecutionValidationRequestBuilder pairs a signed execution request with the proofs the Ledger returned for it
type ExecutionValidationRequestBuilder struct {
	request *rpcmsgs.ContractExecutionRequest
	proofs  []*rpcmsgs.AssetProof
}

func NewExecutionValidationRequestBuilder() *ExecutionValidationRequestBuilder {
	return &ExecutionValidationRequestBuilder{}
}

func (b *ExecutionValidationRequestBuilder) Request(req *rpcmsgs.ContractExecutionRequest) *ExecutionValidationRequestBuilder {
	b.request = req
	return b
}

func (b *ExecutionValidationRequestBuilder) Proofs(proofs []*rpcmsgs.AssetProof) *ExecutionValidationRequestBuilder {
	b.proofs = proofs
	return b
}

func (b *ExecutionValidationRequestBuilder) Build(ctx context.Context) (*rpcmsgs.ExecutionValidationRequest, error) {
	v := newValidator(ctx)
	if b.request == nil {
		v.illegal("request")
		return nil, v.err
	}
	return &rpcmsgs.ExecutionValidationRequest{
		Request: b.request,
		Proofs:  append([]*rpcmsgs.AssetProof{}, b.proofs...),
	}, nil
}
