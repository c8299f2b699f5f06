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

package ldconf

import (
	"context"
	"os"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/confutil"
	"github.com/kaleido-io/ledgerclient/internal/msgs"

	"sigs.k8s.io/yaml" // supports the json tags on our structs
)

type ClientConfig struct {
	Certificate CertificateConfig `json:"certificate"`
	Signer      SignerConfig      `json:"signer"`
	Ledger      EndpointConfig    `json:"ledger"`
	Auditor     AuditorConfig     `json:"auditor"`
	Log         LogConfig         `json:"log"`
	Metrics     MetricsConfig     `json:"metrics"`
	ProofStore  ProofStoreConfig  `json:"proofStore"`
}

type CertificateConfig struct {
	// the identity of the certificate holder embedded in every signed request
	HolderID *string `json:"holderId"`
	// the key epoch of the certificate holder
	Version *int `json:"version"`
	// the PEM certificate, only needed to register the certificate
	CertPEM *string `json:"certPem"`
	// the SEC1 (EC PRIVATE KEY) or PKCS#8 PEM private key used for signing
	PrivateKeyPEM *string `json:"privateKeyPem"`
}

const (
	SignerBackendNative   = "native"
	SignerBackendPlatform = "platform"
)

type SignerConfig struct {
	// 'native' signs with Go's ECDSA directly, 'platform' imports PKCS#8 into a P1363 signing primitive
	Backend *string     `json:"backend"`
	Cache   CacheConfig `json:"cache"`
}

type CacheConfig struct {
	Capacity *int `json:"capacity"`
}

const (
	TransportGRPC = "grpc"
	TransportHTTP = "http"
)

type EndpointConfig struct {
	// 'grpc' (default) or 'http' for a JSON gateway
	Transport *string `json:"transport"`
	Host      *string `json:"host"`
	Port      *int    `json:"port"`
	// the port serving the privileged services (certificate and function registration)
	PrivilegedPort *int `json:"privilegedPort"`
	// base URL of the JSON gateway when transport is 'http'
	URL               *string   `json:"url"`
	TLS               TLSConfig `json:"tls"`
	RequestTimeout    *string   `json:"requestTimeout"`
	ConnectionTimeout *string   `json:"connectionTimeout"`
}

type AuditorConfig struct {
	Enabled                *bool                        `json:"enabled"`
	EndpointConfig         `json:",inline"`
	LinearizableValidation LinearizableValidationConfig `json:"linearizableValidation"`
}

type LinearizableValidationConfig struct {
	Enabled *bool `json:"enabled"`
	// the contract executed to validate an asset when linearizable validation is enabled
	ContractID *string `json:"contractId"`
}

type MetricsConfig struct {
	Enabled *bool `json:"enabled"`
}

var EndpointDefaults = &EndpointConfig{
	Transport:         confutil.P(TransportGRPC),
	Host:              confutil.P("localhost"),
	Port:              confutil.P(50051),
	PrivilegedPort:    confutil.P(50052),
	RequestTimeout:    confutil.P("60s"),
	ConnectionTimeout: confutil.P("30s"),
}

var ClientDefaults = &ClientConfig{
	Certificate: CertificateConfig{
		Version: confutil.P(1),
	},
	Signer: SignerConfig{
		Backend: confutil.P(SignerBackendNative),
		Cache: CacheConfig{
			Capacity: confutil.P(16),
		},
	},
	Ledger: *EndpointDefaults,
	Auditor: AuditorConfig{
		Enabled: confutil.P(false),
		EndpointConfig: EndpointConfig{
			Transport:         confutil.P(TransportGRPC),
			Host:              confutil.P("localhost"),
			Port:              confutil.P(40051),
			PrivilegedPort:    confutil.P(40052),
			RequestTimeout:    confutil.P("60s"),
			ConnectionTimeout: confutil.P("30s"),
		},
		LinearizableValidation: LinearizableValidationConfig{
			Enabled:    confutil.P(false),
			ContractID: confutil.P("validate-ledger"),
		},
	},
	Log: *LogDefaults,
	Metrics: MetricsConfig{
		Enabled: confutil.P(false),
	},
	ProofStore: *ProofStoreDefaults,
}

func (c *ClientConfig) AuditorEnabled() bool {
	return confutil.Bool(c.Auditor.Enabled, *ClientDefaults.Auditor.Enabled)
}

func (c *ClientConfig) LinearizableValidationEnabled() bool {
	return c.AuditorEnabled() &&
		confutil.Bool(c.Auditor.LinearizableValidation.Enabled, *ClientDefaults.Auditor.LinearizableValidation.Enabled)
}

func (c *ClientConfig) LinearizableValidationContractID() string {
	return confutil.StringNotEmpty(c.Auditor.LinearizableValidation.ContractID, *ClientDefaults.Auditor.LinearizableValidation.ContractID)
}

func (c *ClientConfig) MetricsEnabled() bool {
	return confutil.Bool(c.Metrics.Enabled, *ClientDefaults.Metrics.Enabled)
}

func (c *ClientConfig) CertHolderID() string {
	return confutil.StringOrEmpty(c.Certificate.HolderID, "")
}

func (c *ClientConfig) CertVersion() int {
	return confutil.Int(c.Certificate.Version, *ClientDefaults.Certificate.Version)
}

func (c *ClientConfig) CertPEM() string {
	return confutil.StringOrEmpty(c.Certificate.CertPEM, "")
}

func (c *ClientConfig) PrivateKeyPEM() string {
	return confutil.StringOrEmpty(c.Certificate.PrivateKeyPEM, "")
}

func (c *ClientConfig) SignerBackend() string {
	return confutil.StringNotEmpty(c.Signer.Backend, *ClientDefaults.Signer.Backend)
}

// Require checks the named properties are present, returning an error naming the first
// one that is missing.
func (c *ClientConfig) Require(ctx context.Context, fields ...string) error {
	for _, f := range fields {
		var present bool
		switch f {
		case PropCertHolderID:
			present = c.Certificate.HolderID != nil
		case PropCertVersion:
			present = c.Certificate.Version != nil || ClientDefaults.Certificate.Version != nil
		case PropCertPEM:
			present = c.Certificate.CertPEM != nil && *c.Certificate.CertPEM != ""
		case PropPrivateKeyPEM:
			present = c.Certificate.PrivateKeyPEM != nil && *c.Certificate.PrivateKeyPEM != ""
		default:
			present = true
		}
		if !present {
			return i18n.NewError(ctx, msgs.MsgConfigPropertyRequired, f)
		}
	}
	return nil
}

func ReadAndParseYAMLFile(ctx context.Context, filePath string, config interface{}) error {
	// Note we use the YAML parser (like Kubernetes) that handles json tags
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return i18n.NewError(ctx, msgs.MsgConfigFileMissing, filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return i18n.NewError(ctx, msgs.MsgConfigFileReadError, filePath, err.Error())
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return i18n.NewError(ctx, msgs.MsgConfigFileParseError, err.Error())
	}

	return nil
}
