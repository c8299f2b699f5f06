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

package transport

import (
	"context"

	"github.com/kaleido-io/ledgerclient/pkg/rpcmsgs"
)

//go:generate mockery --name=^(Ledger|LedgerPrivileged|Auditor|AuditorPrivileged)Client$ --output=../../mocks/transportmocks --outpkg=transportmocks --boilerplate-file=../../.mockery-header.txt

type LedgerClient interface {
	RegisterContract(ctx context.Context, req *rpcmsgs.ContractRegistrationRequest) error
	ListContracts(ctx context.Context, req *rpcmsgs.ContractsListingRequest) (*rpcmsgs.ContractsListingResponse, error)
	ValidateLedger(ctx context.Context, req *rpcmsgs.LedgerValidationRequest) (*rpcmsgs.LedgerValidationResponse, error)
	ExecuteContract(ctx context.Context, req *rpcmsgs.ContractExecutionRequest) (*rpcmsgs.ContractExecutionResponse, error)
}

type LedgerPrivilegedClient interface {
	RegisterCert(ctx context.Context, req *rpcmsgs.CertificateRegistrationRequest) error
	RegisterFunction(ctx context.Context, req *rpcmsgs.FunctionRegistrationRequest) error
}

type AuditorClient interface {
	RegisterContract(ctx context.Context, req *rpcmsgs.ContractRegistrationRequest) error
	ValidateLedger(ctx context.Context, req *rpcmsgs.LedgerValidationRequest) (*rpcmsgs.LedgerValidationResponse, error)
	OrderExecution(ctx context.Context, req *rpcmsgs.ContractExecutionRequest) (*rpcmsgs.ExecutionOrderingResponse, error)
	ValidateExecution(ctx context.Context, req *rpcmsgs.ExecutionValidationRequest) (*rpcmsgs.ContractExecutionResponse, error)
}

type AuditorPrivilegedClient interface {
	RegisterCert(ctx context.Context, req *rpcmsgs.CertificateRegistrationRequest) error
}

type ledgerClient struct{ c Caller }

func NewLedgerClient(c Caller) LedgerClient {
	return &ledgerClient{c: c}
}

func (l *ledgerClient) RegisterContract(ctx context.Context, req *rpcmsgs.ContractRegistrationRequest) error {
	return l.c.Call(ctx, ServiceLedger, "RegisterContract", req, &rpcmsgs.Empty{})
}

func (l *ledgerClient) ListContracts(ctx context.Context, req *rpcmsgs.ContractsListingRequest) (*rpcmsgs.ContractsListingResponse, error) {
	res := &rpcmsgs.ContractsListingResponse{}
	if err := l.c.Call(ctx, ServiceLedger, "ListContracts", req, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (l *ledgerClient) ValidateLedger(ctx context.Context, req *rpcmsgs.LedgerValidationRequest) (*rpcmsgs.LedgerValidationResponse, error) {
	res := &rpcmsgs.LedgerValidationResponse{}
	if err := l.c.Call(ctx, ServiceLedger, "ValidateLedger", req, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (l *ledgerClient) ExecuteContract(ctx context.Context, req *rpcmsgs.ContractExecutionRequest) (*rpcmsgs.ContractExecutionResponse, error) {
	res := &rpcmsgs.ContractExecutionResponse{}
	if err := l.c.Call(ctx, ServiceLedger, "ExecuteContract", req, res); err != nil {
		return nil, err
	}
	return res, nil
}

type ledgerPrivilegedClient struct{ c Caller }

func NewLedgerPrivilegedClient(c Caller) LedgerPrivilegedClient {
	return &ledgerPrivilegedClient{c: c}
}

func (l *ledgerPrivilegedClient) RegisterCert(ctx context.Context, req *rpcmsgs.CertificateRegistrationRequest) error {
	return l.c.Call(ctx, ServiceLedgerPrivileged, "RegisterCert", req, &rpcmsgs.Empty{})
}

func (l *ledgerPrivilegedClient) RegisterFunction(ctx context.Context, req *rpcmsgs.FunctionRegistrationRequest) error {
	return l.c.Call(ctx, ServiceLedgerPrivileged, "RegisterFunction", req, &rpcmsgs.Empty{})
}

type auditorClient struct{ c Caller }

func NewAuditorClient(c Caller) AuditorClient {
	return &auditorClient{c: c}
}

func (a *auditorClient) RegisterContract(ctx context.Context, req *rpcmsgs.ContractRegistrationRequest) error {
	return a.c.Call(ctx, ServiceAuditor, "RegisterContract", req, &rpcmsgs.Empty{})
}

func (a *auditorClient) ValidateLedger(ctx context.Context, req *rpcmsgs.LedgerValidationRequest) (*rpcmsgs.LedgerValidationResponse, error) {
	res := &rpcmsgs.LedgerValidationResponse{}
	if err := a.c.Call(ctx, ServiceAuditor, "ValidateLedger", req, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (a *auditorClient) OrderExecution(ctx context.Context, req *rpcmsgs.ContractExecutionRequest) (*rpcmsgs.ExecutionOrderingResponse, error) {
	res := &rpcmsgs.ExecutionOrderingResponse{}
	if err := a.c.Call(ctx, ServiceAuditor, "OrderExecution", req, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (a *auditorClient) ValidateExecution(ctx context.Context, req *rpcmsgs.ExecutionValidationRequest) (*rpcmsgs.ContractExecutionResponse, error) {
	res := &rpcmsgs.ContractExecutionResponse{}
	if err := a.c.Call(ctx, ServiceAuditor, "ValidateExecution", req, res); err != nil {
		return nil, err
	}
	return res, nil
}

type auditorPrivilegedClient struct{ c Caller }

func NewAuditorPrivilegedClient(c Caller) AuditorPrivilegedClient {
	return &auditorPrivilegedClient{c: c}
}

func (a *auditorPrivilegedClient) RegisterCert(ctx context.Context, req *rpcmsgs.CertificateRegistrationRequest) error {
	return a.c.Call(ctx, ServiceAuditorPrivileged, "RegisterCert", req, &rpcmsgs.Empty{})
}
