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

type CertificateRegistrationRequestBuilder struct {
	certHolderID *string
	certVersion  *int
	certPEM      *string
}

func NewCertificateRegistrationRequestBuilder() *CertificateRegistrationRequestBuilder {
	return &CertificateRegistrationRequestBuilder{}
}

func (b *CertificateRegistrationRequestBuilder) CertHolderID(id string) *CertificateRegistrationRequestBuilder {
	b.certHolderID = &id
	return b
}

func (b *CertificateRegistrationRequestBuilder) CertVersion(version int) *CertificateRegistrationRequestBuilder {
	b.certVersion = &version
	return b
}

func (b *CertificateRegistrationRequestBuilder) CertPEM(pem string) *CertificateRegistrationRequestBuilder {
	b.certPEM = &pem
	return b
}

func (b *CertificateRegistrationRequestBuilder) Build(ctx context.Context) (*rpcmsgs.CertificateRegistrationRequest, error) {
	v := newValidator(ctx)
	req := &rpcmsgs.CertificateRegistrationRequest{
		CertHolderID: v.str("certHolderId", b.certHolderID),
		CertVersion:  v.uint32("certVersion", b.certVersion),
		CertPEM:      v.str("certPem", b.certPEM),
	}
	if v.err != nil {
		return nil, v.err
	}
	return req, nil
}

type FunctionRegistrationRequestBuilder struct {
	functionID         *string
	functionBinaryName *string
	functionByteCode   []byte
}

func NewFunctionRegistrationRequestBuilder() *FunctionRegistrationRequestBuilder {
	return &FunctionRegistrationRequestBuilder{}
}

func (b *FunctionRegistrationRequestBuilder) FunctionID(id string) *FunctionRegistrationRequestBuilder {
	b.functionID = &id
	return b
}

func (b *FunctionRegistrationRequestBuilder) FunctionBinaryName(name string) *FunctionRegistrationRequestBuilder {
	b.functionBinaryName = &name
	return b
}

func (b *FunctionRegistrationRequestBuilder) FunctionByteCode(code []byte) *FunctionRegistrationRequestBuilder {
	b.functionByteCode = code
	return b
}

func (b *FunctionRegistrationRequestBuilder) Build(ctx context.Context) (*rpcmsgs.FunctionRegistrationRequest, error) {
	v := newValidator(ctx)
	req := &rpcmsgs.FunctionRegistrationRequest{
		FunctionID:         v.str("functionId", b.functionID),
		FunctionBinaryName: v.str("functionBinaryName", b.functionBinaryName),
		FunctionByteCode:   v.bytes("functionByteCode", b.functionByteCode),
	}
	if v.err != nil {
		return nil, v.err
	}
	return req, nil
}

type ContractRegistrationRequestBuilder struct {
	signer             signer.Signer
	contractID         *string
	contractBinaryName *string
	contractByteCode   []byte
	contractProperties *string
	certHolderID       *string
	certVersion        *int
}

func NewContractRegistrationRequestBuilder(s signer.Signer) *ContractRegistrationRequestBuilder {
	return &ContractRegistrationRequestBuilder{signer: s}
}

func (b *ContractRegistrationRequestBuilder) ContractID(id string) *ContractRegistrationRequestBuilder {
	b.contractID = &id
	return b
}

func (b *ContractRegistrationRequestBuilder) ContractBinaryName(name string) *ContractRegistrationRequestBuilder {
	b.contractBinaryName = &name
	return b
}

func (b *ContractRegistrationRequestBuilder) ContractByteCode(code []byte) *ContractRegistrationRequestBuilder {
	b.contractByteCode = code
	return b
}

// ContractProperties is the JSON encoded properties object, and is optional
func (b *ContractRegistrationRequestBuilder) ContractProperties(properties string) *ContractRegistrationRequestBuilder {
	b.contractProperties = &properties
	return b
}

func (b *ContractRegistrationRequestBuilder) CertHolderID(id string) *ContractRegistrationRequestBuilder {
	b.certHolderID = &id
	return b
}

func (b *ContractRegistrationRequestBuilder) CertVersion(version int) *ContractRegistrationRequestBuilder {
	b.certVersion = &version
	return b
}

func (b *ContractRegistrationRequestBuilder) Build(ctx context.Context) (_ *rpcmsgs.ContractRegistrationRequest, err error) {
	v := newValidator(ctx)
	req := &rpcmsgs.ContractRegistrationRequest{
		ContractID:         v.str("contractId", b.contractID),
		ContractBinaryName: v.str("contractBinaryName", b.contractBinaryName),
		ContractByteCode:   v.bytes("contractByteCode", b.contractByteCode),
		ContractProperties: v.optStr(b.contractProperties),
		CertHolderID:       v.str("certHolderId", b.certHolderID),
		CertVersion:        v.uint32("certVersion", b.certVersion),
	}
	if v.err != nil {
		return nil, v.err
	}
	req.Signature, err = sign(ctx, b.signer, "ContractRegistrationRequest", canonical.ContractRegistration(
		req.ContractID, req.ContractBinaryName, req.ContractByteCode, req.ContractProperties, req.CertHolderID, req.CertVersion,
	))
	if err != nil {
		return nil, err
	}
	return req, nil
}

type ContractsListingRequestBuilder struct {
	signer       signer.Signer
	certHolderID *string
	certVersion  *int
	contractID   *string
}

func NewContractsListingRequestBuilder(s signer.Signer) *ContractsListingRequestBuilder {
	return &ContractsListingRequestBuilder{signer: s}
}

func (b *ContractsListingRequestBuilder) CertHolderID(id string) *ContractsListingRequestBuilder {
	b.certHolderID = &id
	return b
}

func (b *ContractsListingRequestBuilder) CertVersion(version int) *ContractsListingRequestBuilder {
	b.certVersion = &version
	return b
}

// ContractID restricts the listing to one contract. Unset lists all of them.
func (b *ContractsListingRequestBuilder) ContractID(id string) *ContractsListingRequestBuilder {
	b.contractID = &id
	return b
}

func (b *ContractsListingRequestBuilder) Build(ctx context.Context) (_ *rpcmsgs.ContractsListingRequest, err error) {
	v := newValidator(ctx)
	req := &rpcmsgs.ContractsListingRequest{
		CertHolderID: v.str("certHolderId", b.certHolderID),
		CertVersion:  v.uint32("certVersion", b.certVersion),
		ContractID:   v.optStr(b.contractID),
	}
	if v.err != nil {
		return nil, v.err
	}
	req.Signature, err = sign(ctx, b.signer, "ContractsListingRequest",
		canonical.ContractsListing(req.ContractID, req.CertHolderID, req.CertVersion))
	if err != nil {
		return nil, err
	}
	return req, nil
}

// RequestProofRegistrationRequestBuilder composes fields that were already signed elsewhere
type RequestProofRegistrationRequestBuilder struct {
	contractID       string
	contractArgument string
	certHolderID     string
	certVersion      *int
	signature        []byte
}

func NewRequestProofRegistrationRequestBuilder() *RequestProofRegistrationRequestBuilder {
	return &RequestProofRegistrationRequestBuilder{}
}

func (b *RequestProofRegistrationRequestBuilder) ContractID(id string) *RequestProofRegistrationRequestBuilder {
	b.contractID = id
	return b
}

func (b *RequestProofRegistrationRequestBuilder) ContractArgument(argument string) *RequestProofRegistrationRequestBuilder {
	b.contractArgument = argument
	return b
}

func (b *RequestProofRegistrationRequestBuilder) CertHolderID(id string) *RequestProofRegistrationRequestBuilder {
	b.certHolderID = id
	return b
}

func (b *RequestProofRegistrationRequestBuilder) CertVersion(version int) *RequestProofRegistrationRequestBuilder {
	b.certVersion = &version
	return b
}

func (b *RequestProofRegistrationRequestBuilder) Signature(signature []byte) *RequestProofRegistrationRequestBuilder {
	b.signature = signature
	return b
}

func (b *RequestProofRegistrationRequestBuilder) Build(ctx context.Context) (*rpcmsgs.RequestProofRegistrationRequest, error) {
	v := newValidator(ctx)
	req := &rpcmsgs.RequestProofRegistrationRequest{
		ContractID:       b.contractID,
		ContractArgument: b.contractArgument,
		CertHolderID:     b.certHolderID,
		CertVersion:      v.optUint32("certVersion", b.certVersion),
		Signature:        b.signature,
	}
	if v.err != nil {
		return nil, v.err
	}
	return req, nil
}
