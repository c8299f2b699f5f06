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

// Package ledgerclient drives requests against a Ledger, and when one is configured
// an Auditor that independently corroborates what the Ledger reports.
package ledgerclient

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kaleido-io/ledgerclient/internal/metrics"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/kaleido-io/ledgerclient/pkg/ldtypes"
	"github.com/kaleido-io/ledgerclient/pkg/log"
	"github.com/kaleido-io/ledgerclient/pkg/proofstore"
	"github.com/kaleido-io/ledgerclient/pkg/signer"
	"github.com/kaleido-io/ledgerclient/pkg/transport"
	"github.com/prometheus/client_golang/prometheus"
)

type Client struct {
	conf           *ldconf.ClientConfig
	services       *Services
	auditorEnabled bool
	metrics        metrics.ClientMetrics
	signers        *signer.Factory
	proofs         proofstore.Store

	signerOnce   sync.Once
	signer       signer.Signer
	signerErr    error
	customSigner bool
}

type Option func(*clientOptions)

type clientOptions struct {
	registerer prometheus.Registerer
	signer     signer.Signer
	signers    *signer.Factory
	signerOpts []signer.Option
	proofs     proofstore.Store
}

// WithMetricsRegistry records client metrics on the supplied registry, regardless of
// whether metrics are enabled in the configuration
func WithMetricsRegistry(registerer prometheus.Registerer) Option {
	return func(o *clientOptions) {
		o.registerer = registerer
	}
}

// WithSigner replaces the signer built from the configured private key
func WithSigner(s signer.Signer) Option {
	return func(o *clientOptions) {
		o.signer = s
	}
}

// WithSignerFactory draws signers from the supplied factory, instead of the one shared
// by every client in the process
func WithSignerFactory(f *signer.Factory) Option {
	return func(o *clientOptions) {
		o.signers = f
	}
}

// WithSignerOptions gives the client a factory of its own, built with the options
func WithSignerOptions(opts ...signer.Option) Option {
	return func(o *clientOptions) {
		o.signerOpts = append(o.signerOpts, opts...)
	}
}

// WithProofStore records every accepted proof, and fails any later call that returns a
// different proof for an asset age already recorded. The store is closed with the client.
func WithProofStore(store proofstore.Store) Option {
	return func(o *clientOptions) {
		o.proofs = store
	}
}

func NewClient(ctx context.Context, conf *ldconf.ClientConfig, services *Services, opts ...Option) (*Client, error) {
	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if services == nil || services.Ledger == nil || services.LedgerPrivileged == nil {
		return nil, ldtypes.NewClientError(ctx, ldtypes.StatusClientRuntimeError, msgs.MsgClientLedgerRequired)
	}
	auditorEnabled := conf.AuditorEnabled()
	if auditorEnabled && (services.Auditor == nil || services.AuditorPrivileged == nil) {
		return nil, ldtypes.NewClientError(ctx, ldtypes.StatusClientRuntimeError, msgs.MsgClientAuditorRequired)
	}

	signers, err := signerFactory(ctx, conf, o)
	if err != nil {
		return nil, ldtypes.WrapClientError(ctx, ldtypes.StatusClientRuntimeError, err, msgs.MsgClientBuildFailed, "signer")
	}

	c := &Client{
		conf:           conf,
		services:       services,
		auditorEnabled: auditorEnabled,
		signers:        signers,
		metrics:        metrics.Disabled(),
		proofs:         o.proofs,
	}
	if o.signer != nil {
		c.signer = o.signer
		c.customSigner = true
	}

	registerer := o.registerer
	if registerer == nil && conf.MetricsEnabled() {
		registerer = prometheus.DefaultRegisterer
	}
	if registerer != nil {
		c.metrics = metrics.InitMetrics(ctx, registerer)
	}

	log.L(ctx).Debugf("Client created auditor=%t linearizable=%t signer=%s", auditorEnabled, conf.LinearizableValidationEnabled(), signers.Backend())
	return c, nil
}

func signerFactory(ctx context.Context, conf *ldconf.ClientConfig, o *clientOptions) (*signer.Factory, error) {
	switch {
	case o.signers != nil:
		return o.signers, nil
	case len(o.signerOpts) > 0:
		return signer.NewFactory(ctx, &conf.Signer, o.signerOpts...)
	default:
		return signer.SharedFactory(ctx, &conf.Signer)
	}
}

// Close releases the connections of the services, and the proof store
func (c *Client) Close() error {
	if c.proofs != nil {
		c.proofs.Close()
	}
	return c.services.Close()
}

func (c *Client) AuditorEnabled() bool {
	return c.auditorEnabled
}

func (c *Client) getSigner(ctx context.Context) (signer.Signer, error) {
	c.signerOnce.Do(func() {
		if c.signer == nil {
			c.signer, c.signerErr = c.signers.SignerFor(ctx, c.conf.PrivateKeyPEM())
		}
	})
	return c.signer, c.signerErr
}

// signingIdentity checks the properties needed for a signed request, and returns the signer
func (c *Client) signingIdentity(ctx context.Context, kind string) (signer.Signer, error) {
	required := []string{ldconf.PropCertHolderID, ldconf.PropCertVersion}
	if !c.customSigner {
		required = append(required, ldconf.PropPrivateKeyPEM)
	}
	if err := c.conf.Require(ctx, required...); err != nil {
		return nil, buildError(ctx, kind, err)
	}
	s, err := c.getSigner(ctx)
	if err != nil {
		return nil, buildError(ctx, kind, err)
	}
	return s, nil
}

// recordProofs pins accepted proofs in the proof store, when there is one
func (c *Client) recordProofs(ctx context.Context, ledgerProofs, auditorProofs []*ldtypes.AssetProof) error {
	if c.proofs == nil {
		return nil
	}
	err := c.proofs.RecordProofs(ctx, proofstore.SourceLedger, ledgerProofs)
	if err == nil {
		err = c.proofs.RecordProofs(ctx, proofstore.SourceAuditor, auditorProofs)
	}
	if ldtypes.CodeOf(err) == ldtypes.StatusInconsistentStates {
		c.metrics.IncInconsistencies(ctx, opRecordProofs)
	}
	return err
}

func buildError(ctx context.Context, kind string, err error) error {
	var ce *ldtypes.ClientError
	if errors.As(err, &ce) {
		return ce
	}
	return ldtypes.WrapClientError(ctx, ldtypes.StatusRuntimeError, err, msgs.MsgClientBuildFailed, kind)
}

// observe runs one client operation with its own log context, and records the outcome
func (c *Client) observe(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx = log.WithLogField(ctx, "op", op)
	start := time.Now()
	log.L(ctx).Debugf("Starting")
	err := fn(ctx)
	code := ldtypes.CodeOf(err)
	c.metrics.RecordCall(ctx, op, code.String(), time.Since(start))
	if err != nil {
		log.L(ctx).Debugf("Failed status=%s: %s", code, err)
		return err
	}
	log.L(ctx).Debugf("Completed in %s", time.Since(start))
	return nil
}

// translateError turns a failed call into a ClientError. A status attached by the
// server wins, an inconsistency detected locally passes through, and anything else
// leaves the outcome of the transaction unknown.
func translateError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if status, ok := transport.StatusFromError(ctx, err); ok {
		log.L(ctx).Warnf("Request failed with status %d: %s", status.Code, status.Message)
		return ldtypes.ServerError(ctx, ldtypes.StatusCode(status.Code), status.Message)
	}
	var ce *ldtypes.ClientError
	if errors.As(err, &ce) && ce.Code() == ldtypes.StatusInconsistentStates {
		return ce
	}
	log.L(ctx).Warnf("Request failed without a status: %s", err)
	return ldtypes.WrapClientError(ctx, ldtypes.StatusUnknownTransactionStatus, err, msgs.MsgClientUnknownTxStatus)
}
