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

package ledgerclient

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/contractarg"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/kaleido-io/ledgerclient/pkg/ldtypes"
	"github.com/kaleido-io/ledgerclient/pkg/requests"
	"github.com/kaleido-io/ledgerclient/pkg/rpcmsgs"
	"github.com/kaleido-io/ledgerclient/pkg/transport"
)

func (c *Client) createCertificateRegistrationRequest(ctx context.Context) (*rpcmsgs.CertificateRegistrationRequest, error) {
	const kind = "CertificateRegistrationRequest"
	if err := c.conf.Require(ctx, ldconf.PropCertPEM, ldconf.PropCertHolderID, ldconf.PropCertVersion); err != nil {
		return nil, buildError(ctx, kind, err)
	}
	req, err := requests.NewCertificateRegistrationRequestBuilder().
		CertHolderID(c.conf.CertHolderID()).
		CertVersion(c.conf.CertVersion()).
		CertPEM(c.conf.CertPEM()).
		Build(ctx)
	if err != nil {
		return nil, buildError(ctx, kind, err)
	}
	return req, nil
}

func (c *Client) createFunctionRegistrationRequest(ctx context.Context, id, name string, bytecode []byte) (*rpcmsgs.FunctionRegistrationRequest, error) {
	if bytecode == nil {
		return nil, ldtypes.NewClientError(ctx, ldtypes.StatusClientIOError, msgs.MsgClientBytecodeMissing, "functionBytes")
	}
	req, err := requests.NewFunctionRegistrationRequestBuilder().
		FunctionID(id).
		FunctionBinaryName(name).
		FunctionByteCode(bytecode).
		Build(ctx)
	if err != nil {
		return nil, buildError(ctx, "FunctionRegistrationRequest", err)
	}
	return req, nil
}

func (c *Client) createContractRegistrationRequest(ctx context.Context, id, name string, bytecode []byte, properties map[string]any) (*rpcmsgs.ContractRegistrationRequest, error) {
	const kind = "ContractRegistrationRequest"
	if bytecode == nil {
		return nil, ldtypes.NewClientError(ctx, ldtypes.StatusClientIOError, msgs.MsgClientBytecodeMissing, "contractBytes")
	}
	s, err := c.signingIdentity(ctx, kind)
	if err != nil {
		return nil, err
	}
	builder := requests.NewContractRegistrationRequestBuilder(s).
		ContractID(id).
		ContractBinaryName(name).
		ContractByteCode(bytecode).
		CertHolderID(c.conf.CertHolderID()).
		CertVersion(c.conf.CertVersion())
	if properties != nil {
		b, err := json.Marshal(properties)
		if err != nil {
			return nil, ldtypes.WrapClientError(ctx, ldtypes.StatusRuntimeError, err, msgs.MsgPropertiesEncode)
		}
		builder.ContractProperties(string(b))
	}
	req, err := builder.Build(ctx)
	if err != nil {
		return nil, buildError(ctx, kind, err)
	}
	return req, nil
}

func (c *Client) createContractsListingRequest(ctx context.Context, contractID string) (*rpcmsgs.ContractsListingRequest, error) {
	const kind = "ContractsListingRequest"
	s, err := c.signingIdentity(ctx, kind)
	if err != nil {
		return nil, err
	}
	builder := requests.NewContractsListingRequestBuilder(s).
		CertHolderID(c.conf.CertHolderID()).
		CertVersion(c.conf.CertVersion())
	if contractID != "" {
		builder.ContractID(contractID)
	}
	req, err := builder.Build(ctx)
	if err != nil {
		return nil, buildError(ctx, kind, err)
	}
	return req, nil
}

func (c *Client) createLedgerValidationRequest(ctx context.Context, assetID string, startAge, endAge int) (*rpcmsgs.LedgerValidationRequest, error) {
	const kind = "LedgerValidationRequest"
	s, err := c.signingIdentity(ctx, kind)
	if err != nil {
		return nil, err
	}
	req, err := requests.NewLedgerValidationRequestBuilder(s).
		AssetID(assetID).
		StartAge(startAge).
		EndAge(endAge).
		CertHolderID(c.conf.CertHolderID()).
		CertVersion(c.conf.CertVersion()).
		Build(ctx)
	if err != nil {
		return nil, buildError(ctx, kind, err)
	}
	return req, nil
}

func (c *Client) createContractExecutionRequest(ctx context.Context, contractID string, argument, functionArgument contractarg.Argument, functionID, nonce string) (*rpcmsgs.ContractExecutionRequest, error) {
	const kind = "ContractExecutionRequest"
	s, err := c.signingIdentity(ctx, kind)
	if err != nil {
		return nil, err
	}

	var functionIDs []string
	if functionID != "" {
		functionIDs = []string{functionID}
	}
	formatted, err := contractarg.Format(ctx, nonce, stringsToAny(functionIDs), argument)
	if err != nil {
		return nil, buildError(ctx, kind, err)
	}
	encodedFunctionArgument, err := functionArgument.Encode(ctx)
	if err != nil {
		return nil, buildError(ctx, kind, err)
	}

	req, err := requests.NewContractExecutionRequestBuilder(s).
		ContractID(contractID).
		ContractArgument(formatted).
		FunctionArgument(encodedFunctionArgument).
		CertHolderID(c.conf.CertHolderID()).
		CertVersion(c.conf.CertVersion()).
		FunctionIDs(functionIDs...).
		Nonce(nonce).
		Build(ctx)
	if err != nil {
		return nil, buildError(ctx, kind, err)
	}
	return req, nil
}

func (c *Client) createExecutionValidationRequest(ctx context.Context, req *rpcmsgs.ContractExecutionRequest, proofs []*rpcmsgs.AssetProof) (*rpcmsgs.ExecutionValidationRequest, error) {
	validationReq, err := requests.NewExecutionValidationRequestBuilder().
		Request(req).
		Proofs(proofs).
		Build(ctx)
	if err != nil {
		return nil, buildError(ctx, "ExecutionValidationRequest", err)
	}
	return validationReq, nil
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func serialize(ctx context.Context, kind string, req any, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	b, err := transport.JSONCodec().Marshal(req)
	if err != nil {
		return nil, ldtypes.WrapClientError(ctx, ldtypes.StatusClientRuntimeError, err, msgs.MsgClientSerializeFailed, kind)
	}
	return b, nil
}

// CreateSerializedCertificateRegistrationRequest returns the encoded request without sending it
func (c *Client) CreateSerializedCertificateRegistrationRequest(ctx context.Context) ([]byte, error) {
	req, err := c.createCertificateRegistrationRequest(ctx)
	return serialize(ctx, "CertificateRegistrationRequest", req, err)
}

func (c *Client) CreateSerializedFunctionRegistrationRequest(ctx context.Context, id, name string, bytecode []byte) ([]byte, error) {
	req, err := c.createFunctionRegistrationRequest(ctx, id, name, bytecode)
	return serialize(ctx, "FunctionRegistrationRequest", req, err)
}

func (c *Client) CreateSerializedContractRegistrationRequest(ctx context.Context, id, name string, bytecode []byte, properties map[string]any) ([]byte, error) {
	req, err := c.createContractRegistrationRequest(ctx, id, name, bytecode, properties)
	return serialize(ctx, "ContractRegistrationRequest", req, err)
}

func (c *Client) CreateSerializedContractsListingRequest(ctx context.Context, contractID string) ([]byte, error) {
	req, err := c.createContractsListingRequest(ctx, contractID)
	return serialize(ctx, "ContractsListingRequest", req, err)
}

// CreateSerializedLedgerValidationRequest does not check the age range, leaving that to the server
func (c *Client) CreateSerializedLedgerValidationRequest(ctx context.Context, assetID string, startAge, endAge int) ([]byte, error) {
	req, err := c.createLedgerValidationRequest(ctx, assetID, startAge, endAge)
	return serialize(ctx, "LedgerValidationRequest", req, err)
}

// CreateSerializedContractExecutionRequest signs an execution with a fresh nonce and no function id
func (c *Client) CreateSerializedContractExecutionRequest(ctx context.Context, contractID string, argument, functionArgument contractarg.Argument) ([]byte, error) {
	req, err := c.createContractExecutionRequest(ctx, contractID, argument, functionArgument, "", uuid.NewString())
	return serialize(ctx, "ContractExecutionRequest", req, err)
}
