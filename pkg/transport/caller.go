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
	"fmt"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/confutil"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
)

const (
	ServiceLedger            = "rpc.Ledger"
	ServiceLedgerPrivileged  = "rpc.LedgerPrivileged"
	ServiceAuditor           = "rpc.Auditor"
	ServiceAuditorPrivileged = "rpc.AuditorPrivileged"
)

// Caller performs a single unary call of a service method
type Caller interface {
	Call(ctx context.Context, service, method string, req, res any) error
	Close() error
}

func fullMethod(service, method string) string {
	return fmt.Sprintf("/%s/%s", service, method)
}

// NewCaller connects to the endpoint using the configured transport. The privileged
// flag selects the privileged port for gRPC, while a gateway serves both from one URL.
func NewCaller(ctx context.Context, name string, conf, defs *ldconf.EndpointConfig, privileged bool) (Caller, error) {
	transport := confutil.StringNotEmpty(conf.Transport, *defs.Transport)
	switch transport {
	case ldconf.TransportGRPC:
		return newGRPCCaller(ctx, name, conf, defs, privileged)
	case ldconf.TransportHTTP:
		return newHTTPCaller(ctx, name, conf, defs)
	default:
		return nil, i18n.NewError(ctx, msgs.MsgConfigEndpointInvalid, name, fmt.Sprintf("transport=%s", transport))
	}
}
