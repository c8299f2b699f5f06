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

package tlsconf

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"os"
	"regexp"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/kaleido-io/ledgerclient/pkg/log"
)

// BuildClientTLSConfig returns nil when TLS is not enabled
func BuildClientTLSConfig(ctx context.Context, config *ldconf.TLSConfig) (*tls.Config, error) {
	if !config.Enabled {
		return nil, nil
	}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		VerifyPeerCertificate: func(_ [][]byte, verifiedChains [][]*x509.Certificate) error {
			if len(verifiedChains) > 0 && len(verifiedChains[0]) > 0 {
				cert := verifiedChains[0][0]
				log.L(ctx).Debugf("Server certificate provided Subject=%s Issuer=%s Expiry=%s", cert.Subject, cert.Issuer, cert.NotAfter)
			} else {
				log.L(ctx).Debugf("Server certificate unverified")
			}
			return nil
		},
	}

	var err error
	var rootCAs *x509.CertPool
	switch {
	case config.CAFile != "":
		rootCAs = x509.NewCertPool()
		var caBytes []byte
		caBytes, err = os.ReadFile(config.CAFile)
		if err == nil && !rootCAs.AppendCertsFromPEM(caBytes) {
			err = i18n.NewError(ctx, msgs.MsgTransportTLSInvalidCA)
		}
	case config.CA != "":
		rootCAs = x509.NewCertPool()
		if !rootCAs.AppendCertsFromPEM([]byte(config.CA)) {
			err = i18n.NewError(ctx, msgs.MsgTransportTLSInvalidCA)
		}
	default:
		rootCAs, err = x509.SystemCertPool()
	}
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgTransportTLSConfig)
	}
	tlsConfig.RootCAs = rootCAs

	// mutual TLS when the ledger requires a client certificate
	var cert *tls.Certificate
	if config.CertFile != "" && config.KeyFile != "" {
		c, err := tls.LoadX509KeyPair(config.CertFile, config.KeyFile)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgTransportTLSKeyPair)
		}
		cert = &c
	} else if config.Cert != "" && config.Key != "" {
		c, err := tls.X509KeyPair([]byte(config.Cert), []byte(config.Key))
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgTransportTLSKeyPair)
		}
		cert = &c
	}
	if cert != nil {
		tlsConfig.GetClientCertificate = func(cri *tls.CertificateRequestInfo) (*tls.Certificate, error) {
			log.L(ctx).Debugf("Supplying client certificate")
			return cert, nil
		}
	}

	if len(config.RequiredDNAttributes) > 0 {
		if tlsConfig.VerifyPeerCertificate, err = buildDNValidator(ctx, config.RequiredDNAttributes); err != nil {
			return nil, err
		}
	}

	tlsConfig.InsecureSkipVerify = config.InsecureSkipHostVerify

	return tlsConfig, nil
}

var SubjectDNKnownAttributes = map[string]func(pkix.Name) []string{
	"C": func(n pkix.Name) []string {
		return n.Country
	},
	"O": func(n pkix.Name) []string {
		return n.Organization
	},
	"OU": func(n pkix.Name) []string {
		return n.OrganizationalUnit
	},
	"CN": func(n pkix.Name) []string {
		if n.CommonName == "" {
			return []string{}
		}
		return []string{n.CommonName}
	},
	"SERIALNUMBER": func(n pkix.Name) []string {
		if n.SerialNumber == "" {
			return []string{}
		}
		return []string{n.SerialNumber}
	},
	"L": func(n pkix.Name) []string {
		return n.Locality
	},
	"ST": func(n pkix.Name) []string {
		return n.Province
	},
}

// buildDNValidator checks the leaf certificate the ledger presents against the required subject attributes
func buildDNValidator(ctx context.Context, requiredDNAttributes map[string]string) (func(rawCerts [][]byte, verifiedChains [][]*x509.Certificate) error, error) {
	validators := make(map[string]*regexp.Regexp)
	for attr, validatorString := range requiredDNAttributes {
		attr = strings.ToUpper(attr)
		if _, knownAttr := SubjectDNKnownAttributes[attr]; !knownAttr {
			return nil, i18n.NewError(ctx, msgs.MsgTransportTLSDNAttr, attr)
		}
		validatorString = "^" + strings.TrimSuffix(strings.TrimPrefix(validatorString, "^"), "$") + "$"
		validator, err := regexp.Compile(validatorString)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgTransportTLSDNRegexp, attr)
		}
		validators[attr] = validator
	}
	return func(_ [][]byte, verifiedChains [][]*x509.Certificate) error {
		if len(verifiedChains) == 0 || len(verifiedChains[0]) == 0 {
			log.L(ctx).Errorf("Failed TLS DN check: no verified certificate chain")
			return i18n.NewError(ctx, msgs.MsgTransportTLSNoPeerCert)
		}
		cert := verifiedChains[0][0]
		log.L(ctx).Debugf("Performing TLS DN check on '%s'", cert.Subject)
		for attr, validator := range validators {
			matched := false
			for _, value := range SubjectDNKnownAttributes[attr](cert.Subject) {
				matched = matched || validator.MatchString(value)
			}
			if !matched {
				log.L(ctx).Errorf("Failed TLS DN check: does not match %s =~ /%s/", attr, validator.String())
				return i18n.NewError(ctx, msgs.MsgTransportTLSDNMismatch)
			}
		}
		return nil
	}, nil
}
