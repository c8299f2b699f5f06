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
	"encoding/json"
	"os"
	"strconv"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
)

// Flat property keys, compatible with the properties files used by other ledger clients
const (
	PropCertHolderID                  = "scalar.dl.client.cert_holder_id"
	PropCertVersion                   = "scalar.dl.client.cert_version"
	PropCertPEM                       = "scalar.dl.client.cert_pem"
	PropPrivateKeyPEM                 = "scalar.dl.client.private_key_pem"
	PropServerHost                    = "scalar.dl.client.server.host"
	PropServerPort                    = "scalar.dl.client.server.port"
	PropServerPrivilegedPort          = "scalar.dl.client.server.privileged_port"
	PropServerURL                     = "scalar.dl.client.server.url"
	PropTLSEnabled                    = "scalar.dl.client.tls.enabled"
	PropTLSCARootCertPEM              = "scalar.dl.client.tls.ca_root_cert_pem"
	PropAuditorEnabled                = "scalar.dl.client.auditor.enabled"
	PropAuditorHost                   = "scalar.dl.client.auditor.host"
	PropAuditorPort                   = "scalar.dl.client.auditor.port"
	PropAuditorPrivilegedPort         = "scalar.dl.client.auditor.privileged_port"
	PropAuditorURL                    = "scalar.dl.client.auditor.url"
	PropAuditorTLSEnabled             = "scalar.dl.client.auditor.tls.enabled"
	PropAuditorTLSCARootCertPEM       = "scalar.dl.client.auditor.tls.ca_root_cert_pem"
	PropAuditorLinearizableEnabled    = "scalar.dl.client.auditor.linearizable_validation.enable"
	PropAuditorLinearizableContractID = "scalar.dl.client.auditor.linearizable_validation.contract_id"
	PropSignerBackend                 = "scalar.dl.client.signer.backend"
)

type propKind int

const (
	propString propKind = iota
	propNumber
	propBoolean
)

func (k propKind) String() string {
	switch k {
	case propNumber:
		return "number"
	case propBoolean:
		return "boolean"
	default:
		return "string"
	}
}

type propSetter struct {
	kind propKind
	set  func(c *ClientConfig, v any)
}

func setString(target func(c *ClientConfig) **string) propSetter {
	return propSetter{kind: propString, set: func(c *ClientConfig, v any) { s := v.(string); *target(c) = &s }}
}

func setInt(target func(c *ClientConfig) **int) propSetter {
	return propSetter{kind: propNumber, set: func(c *ClientConfig, v any) { i := v.(int); *target(c) = &i }}
}

func setBool(target func(c *ClientConfig) **bool) propSetter {
	return propSetter{kind: propBoolean, set: func(c *ClientConfig, v any) { b := v.(bool); *target(c) = &b }}
}

var propertySetters = map[string]propSetter{
	PropCertHolderID:   setString(func(c *ClientConfig) **string { return &c.Certificate.HolderID }),
	PropCertVersion:    setInt(func(c *ClientConfig) **int { return &c.Certificate.Version }),
	PropCertPEM:        setString(func(c *ClientConfig) **string { return &c.Certificate.CertPEM }),
	PropPrivateKeyPEM:  setString(func(c *ClientConfig) **string { return &c.Certificate.PrivateKeyPEM }),
	PropServerHost:     setString(func(c *ClientConfig) **string { return &c.Ledger.Host }),
	PropServerPort:     setInt(func(c *ClientConfig) **int { return &c.Ledger.Port }),
	PropServerURL:      setString(func(c *ClientConfig) **string { return &c.Ledger.URL }),
	PropSignerBackend:  setString(func(c *ClientConfig) **string { return &c.Signer.Backend }),
	PropAuditorEnabled: setBool(func(c *ClientConfig) **bool { return &c.Auditor.Enabled }),
	PropAuditorHost:    setString(func(c *ClientConfig) **string { return &c.Auditor.Host }),
	PropAuditorPort:    setInt(func(c *ClientConfig) **int { return &c.Auditor.Port }),
	PropAuditorURL:     setString(func(c *ClientConfig) **string { return &c.Auditor.URL }),
	PropServerPrivilegedPort: setInt(func(c *ClientConfig) **int {
		return &c.Ledger.PrivilegedPort
	}),
	PropAuditorPrivilegedPort: setInt(func(c *ClientConfig) **int {
		return &c.Auditor.PrivilegedPort
	}),
	PropAuditorLinearizableEnabled: setBool(func(c *ClientConfig) **bool {
		return &c.Auditor.LinearizableValidation.Enabled
	}),
	PropAuditorLinearizableContractID: setString(func(c *ClientConfig) **string {
		return &c.Auditor.LinearizableValidation.ContractID
	}),
	PropTLSEnabled: {kind: propBoolean, set: func(c *ClientConfig, v any) {
		c.Ledger.TLS.Enabled = v.(bool)
	}},
	PropTLSCARootCertPEM: {kind: propString, set: func(c *ClientConfig, v any) {
		c.Ledger.TLS.CA = v.(string)
		c.Ledger.TLS.Enabled = true
	}},
	PropAuditorTLSEnabled: {kind: propBoolean, set: func(c *ClientConfig, v any) {
		c.Auditor.TLS.Enabled = v.(bool)
	}},
	PropAuditorTLSCARootCertPEM: {kind: propString, set: func(c *ClientConfig, v any) {
		c.Auditor.TLS.CA = v.(string)
		c.Auditor.TLS.Enabled = true
	}},
}

// FromProperties maps a flat property map onto a ClientConfig.
// Values can be the native JSON types, or strings as found in a Java-style properties file.
// Unknown keys are ignored.
func FromProperties(ctx context.Context, props map[string]any) (*ClientConfig, error) {
	conf := &ClientConfig{}
	for key, value := range props {
		setter, ok := propertySetters[key]
		if !ok || value == nil {
			continue
		}
		v, ok := coerceProperty(setter.kind, value)
		if !ok {
			return nil, i18n.NewError(ctx, msgs.MsgConfigPropertyInvalidType, key, setter.kind)
		}
		setter.set(conf, v)
	}
	return conf, nil
}

// ReadPropertiesFile loads a JSON object of flat properties from a file
func ReadPropertiesFile(ctx context.Context, filePath string) (*ClientConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, i18n.NewError(ctx, msgs.MsgConfigFileReadError, filePath, err.Error())
	}
	var props map[string]any
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, i18n.NewError(ctx, msgs.MsgConfigPropertiesFileError, filePath, err.Error())
	}
	return FromProperties(ctx, props)
}

func coerceProperty(kind propKind, value any) (any, bool) {
	switch kind {
	case propNumber:
		switch n := value.(type) {
		case int:
			return n, true
		case int32:
			return int(n), true
		case int64:
			return int(n), true
		case float64:
			if n != float64(int(n)) {
				return nil, false
			}
			return int(n), true
		case json.Number:
			i, err := strconv.Atoi(n.String())
			return i, err == nil
		case string:
			i, err := strconv.Atoi(n)
			return i, err == nil
		}
	case propBoolean:
		switch b := value.(type) {
		case bool:
			return b, true
		case string:
			parsed, err := strconv.ParseBool(b)
			return parsed, err == nil
		}
	default:
		s, ok := value.(string)
		return s, ok
	}
	return nil, false
}
