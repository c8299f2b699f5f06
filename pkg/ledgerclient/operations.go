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
	"math"

	"github.com/google/uuid"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/consistency"
	"github.com/kaleido-io/ledgerclient/pkg/contractarg"
	"github.com/kaleido-io/ledgerclient/pkg/ldtypes"
	"github.com/kaleido-io/ledgerclient/pkg/log"
	"golang.org/x/sync/errgroup"
)

const (
	MinAge = 0
	MaxAge = math.MaxInt32
)

const (
	opRegisterCertificate = "register_certificate"
	opRegisterFunction    = "register_function"
	opRegisterContract    = "register_contract"
	opListContracts       = "list_contracts"
	opValidateLedger      = "validate_ledger"
	opExecuteContract     = "execute_contract"
	opRecordProofs        = "record_proofs"
)

func (c *Client) RegisterCertificate(ctx context.Context) error {
	return c.observe(ctx, opRegisterCertificate, func(ctx context.Context) error {
		req, err := c.createCertificateRegistrationRequest(ctx)
		if err != nil {
			return err
		}
		if c.auditorEnabled {
			if err := c.services.AuditorPrivileged.RegisterCert(ctx, req); err != nil {
				return translateError(ctx, err)
			}
		}
		return translateError(ctx, c.services.LedgerPrivileged.RegisterCert(ctx, req))
	})
}

func (c *Client) RegisterFunction(ctx context.Context, id, name string, bytecode []byte) error {
	return c.observe(ctx, opRegisterFunction, func(ctx context.Context) error {
		req, err := c.createFunctionRegistrationRequest(ctx, id, name, bytecode)
		if err != nil {
			return err
		}
		return translateError(ctx, c.services.LedgerPrivileged.RegisterFunction(ctx, req))
	})
}

// RegisterContract registers with the Auditor before the Ledger when the auditor is enabled.
// Properties are optional.
func (c *Client) RegisterContract(ctx context.Context, id, name string, bytecode []byte, properties map[string]any) error {
	return c.observe(ctx, opRegisterContract, func(ctx context.Context) error {
		req, err := c.createContractRegistrationRequest(ctx, id, name, bytecode, properties)
		if err != nil {
			return err
		}
		if c.auditorEnabled {
			if err := c.services.Auditor.RegisterContract(ctx, req); err != nil {
				return translateError(ctx, err)
			}
		}
		return translateError(ctx, c.services.Ledger.RegisterContract(ctx, req))
	})
}

// ListContracts returns the contracts registered by the certificate holder, or just
// the one named when contractID is not empty
func (c *Client) ListContracts(ctx context.Context, contractID string) (contracts map[string]any, err error) {
	err = c.observe(ctx, opListContracts, func(ctx context.Context) error {
		req, err := c.createContractsListingRequest(ctx, contractID)
		if err != nil {
			return err
		}
		res, err := c.services.Ledger.ListContracts(ctx, req)
		if err != nil {
			return translateError(ctx, err)
		}
		if err := json.Unmarshal([]byte(res.JSON), &contracts); err != nil {
			return ldtypes.WrapClientError(ctx, ldtypes.StatusClientIOError, err, msgs.MsgClientListParseFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// ValidateLedger validates every age of the asset
func (c *Client) ValidateLedger(ctx context.Context, assetID string) (*ldtypes.LedgerValidationResult, error) {
	return c.ValidateLedgerRange(ctx, assetID, MinAge, MaxAge)
}

// ValidateLedgerRange validates the ages of the asset from startAge to endAge inclusive.
//
// With linearizable validation the check is ordered through the Auditor as a contract
// execution. Otherwise the Ledger and Auditor validate in parallel, and a disagreement
// is reported with the INCONSISTENT_STATES code on the result rather than as an error.
func (c *Client) ValidateLedgerRange(ctx context.Context, assetID string, startAge, endAge int) (result *ldtypes.LedgerValidationResult, err error) {
	err = c.observe(ctx, opValidateLedger, func(ctx context.Context) error {
		ctx = log.WithLogField(ctx, "asset", assetID)
		if !(endAge >= startAge && startAge >= MinAge && endAge <= MaxAge) {
			return ldtypes.NewClientError(ctx, ldtypes.StatusClientRuntimeError, msgs.MsgClientInvalidAges, startAge, endAge)
		}
		if c.conf.LinearizableValidationEnabled() {
			result, err = c.validateLedgerWithContractExecution(ctx, assetID, startAge, endAge)
			return err
		}
		result, err = c.validateLedger(ctx, assetID, startAge, endAge)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) validateLedgerWithContractExecution(ctx context.Context, assetID string, startAge, endAge int) (*ldtypes.LedgerValidationResult, error) {
	argument := contractarg.JSON(map[string]any{
		"asset_id":  assetID,
		"start_age": startAge,
		"end_age":   endAge,
	})
	executed, err := c.executeContract(ctx, c.conf.LinearizableValidationContractID(), argument, &executeOptions{})
	if err != nil {
		return nil, err
	}
	result := &ldtypes.LedgerValidationResult{Code: ldtypes.StatusOK}
	if len(executed.LedgerProofs) > 0 {
		result.LedgerProof = executed.LedgerProofs[0]
	}
	if len(executed.AuditorProofs) > 0 {
		result.AuditorProof = executed.AuditorProofs[0]
	}
	return result, nil
}

func (c *Client) validateLedger(ctx context.Context, assetID string, startAge, endAge int) (*ldtypes.LedgerValidationResult, error) {
	req, err := c.createLedgerValidationRequest(ctx, assetID, startAge, endAge)
	if err != nil {
		return nil, err
	}

	if !c.auditorEnabled {
		res, err := c.services.Ledger.ValidateLedger(ctx, req)
		if err != nil {
			return nil, translateError(ctx, err)
		}
		result := &ldtypes.LedgerValidationResult{
			Code:        ldtypes.StatusCode(res.StatusCode),
			LedgerProof: ldtypes.AssetProofFromWire(res.Proof),
		}
		if result.Code == ldtypes.StatusOK {
			if err := c.recordProofs(ctx, nonNil(result.LedgerProof), nil); err != nil {
				return nil, err
			}
		}
		return result, nil
	}

	var ledgerResult, auditorResult *ldtypes.LedgerValidationResult
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := c.services.Ledger.ValidateLedger(gCtx, req)
		if err != nil {
			return translateError(ctx, err)
		}
		ledgerResult = &ldtypes.LedgerValidationResult{
			Code:        ldtypes.StatusCode(res.StatusCode),
			LedgerProof: ldtypes.AssetProofFromWire(res.Proof),
		}
		return nil
	})
	g.Go(func() error {
		res, err := c.services.Auditor.ValidateLedger(gCtx, req)
		if err != nil {
			return translateError(ctx, err)
		}
		auditorResult = &ldtypes.LedgerValidationResult{
			Code:         ldtypes.StatusCode(res.StatusCode),
			AuditorProof: ldtypes.AssetProofFromWire(res.Proof),
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := consistency.LedgerValidation(ledgerResult, auditorResult)
	if result.Code == ldtypes.StatusInconsistentStates {
		log.L(ctx).Errorf("Ledger (status=%s proof=%s) and Auditor (status=%s proof=%s) disagree",
			ledgerResult.Code, ledgerResult.LedgerProof, auditorResult.Code, auditorResult.AuditorProof)
		c.metrics.IncInconsistencies(ctx, opValidateLedger)
	}
	if result.Code == ldtypes.StatusOK {
		if err := c.recordProofs(ctx, nonNil(result.LedgerProof), nonNil(result.AuditorProof)); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func nonNil(p *ldtypes.AssetProof) []*ldtypes.AssetProof {
	if p == nil {
		return nil
	}
	return []*ldtypes.AssetProof{p}
}

type ExecuteOption func(*executeOptions)

type executeOptions struct {
	functionID       string
	functionArgument *contractarg.Argument
	nonce            string
}

// WithFunction runs the function after the contract. The function argument must be
// the same kind as the contract argument. An empty id sends only the argument.
func WithFunction(id string, argument contractarg.Argument) ExecuteOption {
	return func(o *executeOptions) {
		o.functionID = id
		o.functionArgument = &argument
	}
}

// WithNonce replaces the random nonce that identifies the execution
func WithNonce(nonce string) ExecuteOption {
	return func(o *executeOptions) {
		o.nonce = nonce
	}
}

// ExecuteContract orders the execution with the Auditor, executes it on the Ledger,
// and has the Auditor validate what the Ledger did. Any disagreement fails the call
// with INCONSISTENT_STATES. Nothing is retried.
func (c *Client) ExecuteContract(ctx context.Context, contractID string, argument contractarg.Argument, opts ...ExecuteOption) (result *ldtypes.ContractExecutionResult, err error) {
	o := &executeOptions{}
	for _, opt := range opts {
		opt(o)
	}
	err = c.observe(ctx, opExecuteContract, func(ctx context.Context) error {
		result, err = c.executeContract(ctx, contractID, argument, o)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) executeContract(ctx context.Context, contractID string, argument contractarg.Argument, o *executeOptions) (*ldtypes.ContractExecutionResult, error) {
	functionArgument := contractarg.EmptyLike(argument)
	if o.functionArgument != nil {
		functionArgument = *o.functionArgument
	}
	if functionArgument.Kind() != argument.Kind() {
		return nil, ldtypes.NewClientError(ctx, ldtypes.StatusClientRuntimeError, msgs.MsgClientArgumentKindMismatch)
	}
	nonce := o.nonce
	if nonce == "" {
		nonce = uuid.NewString()
	}
	ctx = log.WithLogField(ctx, "contract", contractID)
	ctx = log.WithLogField(ctx, "nonce", nonce)

	req, err := c.createContractExecutionRequest(ctx, contractID, argument, functionArgument, o.functionID, nonce)
	if err != nil {
		return nil, err
	}

	if c.auditorEnabled {
		ordered, err := c.services.Auditor.OrderExecution(ctx, req)
		if err != nil {
			return nil, translateError(ctx, err)
		}
		req.AuditorSignature = ordered.Signature
		log.L(ctx).Debugf("Execution ordered by the Auditor")
	}

	ledgerRes, err := c.services.Ledger.ExecuteContract(ctx, req)
	if err != nil {
		return nil, translateError(ctx, err)
	}
	ledgerProofs := ldtypes.AssetProofsFromWire(ledgerRes.Proofs)
	if !c.auditorEnabled {
		if err := c.recordProofs(ctx, ledgerProofs, nil); err != nil {
			return nil, err
		}
		return ldtypes.NewContractExecutionResult(ledgerRes.ContractResult, ledgerRes.FunctionResult, ledgerProofs, nil), nil
	}

	validationReq, err := c.createExecutionValidationRequest(ctx, req, ledgerRes.Proofs)
	if err != nil {
		return nil, err
	}
	auditorRes, err := c.services.Auditor.ValidateExecution(ctx, validationReq)
	if err != nil {
		return nil, translateError(ctx, err)
	}
	auditorProofs := ldtypes.AssetProofsFromWire(auditorRes.Proofs)

	if !consistency.Executions(ledgerRes.ContractResult, auditorRes.ContractResult, ledgerProofs, auditorProofs) {
		log.L(ctx).Errorf("Ledger and Auditor results do not match: ledger=%d proofs auditor=%d proofs", len(ledgerProofs), len(auditorProofs))
		c.metrics.IncInconsistencies(ctx, opExecuteContract)
		return nil, translateError(ctx, ldtypes.NewClientError(ctx, ldtypes.StatusInconsistentStates, msgs.MsgClientInconsistentStates))
	}
	if err := c.recordProofs(ctx, ledgerProofs, auditorProofs); err != nil {
		return nil, err
	}
	return ldtypes.NewContractExecutionResult(ledgerRes.ContractResult, ledgerRes.FunctionResult, ledgerProofs, auditorProofs), nil
}
