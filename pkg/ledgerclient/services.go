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
	"errors"

	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/kaleido-io/ledgerclient/pkg/log"
	"github.com/kaleido-io/ledgerclient/pkg/transport"
)

// Services are the remote endpoints a Client talks to. The Auditor pair is only
// required when the auditor is enabled.
type Services struct {
	Ledger            transport.LedgerClient
	LedgerPrivileged  transport.LedgerPrivilegedClient
	Auditor           transport.AuditorClient
	AuditorPrivileged transport.AuditorPrivilegedClient

	callers []transport.Caller
}

// Connect creates the callers for every service the configuration needs.
// The returned Services own the callers, and Close releases them.
func Connect(ctx context.Context, conf *ldconf.ClientConfig) (_ *Services, err error) {
	s := &Services{}
	defer func() {
		if err != nil {
			_ = s.Close()
		}
	}()

	ledger, err := s.newCaller(ctx, "ledger", &conf.Ledger, ldconf.EndpointDefaults, false)
	if err != nil {
		return nil, err
	}
	ledgerPrivileged, err := s.newCaller(ctx, "ledger", &conf.Ledger, ldconf.EndpointDefaults, true)
	if err != nil {
		return nil, err
	}
	s.Ledger = transport.NewLedgerClient(ledger)
	s.LedgerPrivileged = transport.NewLedgerPrivilegedClient(ledgerPrivileged)

	if conf.AuditorEnabled() {
		auditorDefaults := &ldconf.ClientDefaults.Auditor.EndpointConfig
		auditor, err := s.newCaller(ctx, "auditor", &conf.Auditor.EndpointConfig, auditorDefaults, false)
		if err != nil {
			return nil, err
		}
		auditorPrivileged, err := s.newCaller(ctx, "auditor", &conf.Auditor.EndpointConfig, auditorDefaults, true)
		if err != nil {
			return nil, err
		}
		s.Auditor = transport.NewAuditorClient(auditor)
		s.AuditorPrivileged = transport.NewAuditorPrivilegedClient(auditorPrivileged)
	}
	return s, nil
}

func (s *Services) newCaller(ctx context.Context, name string, conf, defs *ldconf.EndpointConfig, privileged bool) (transport.Caller, error) {
	c, err := transport.NewCaller(ctx, name, conf, defs, privileged)
	if err != nil {
		return nil, err
	}
	s.callers = append(s.callers, c)
	return c, nil
}

func (s *Services) Close() error {
	var errs []error
	for _, c := range s.callers {
		if err := c.Close(); err != nil {
			log.L(context.Background()).Warnf("Failed to close connection: %s", err)
			errs = append(errs, err)
		}
	}
	s.callers = nil
	return errors.Join(errs...)
}
