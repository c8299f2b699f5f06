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

package msgs

import (
	"fmt"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/text/language"
)

const ledgerClientPrefix = "LC01"

var registered = false
var ffe = func(key, translation string, statusHint ...int) i18n.ErrorMessageKey {
	if !registered {
		i18n.RegisterPrefix(ledgerClientPrefix, "Ledger Client")
		registered = true
	}
	if !strings.HasPrefix(key, ledgerClientPrefix) {
		panic(fmt.Errorf("must have prefix '%s': %s", ledgerClientPrefix, key))
	}
	return i18n.FFE(language.AmericanEnglish, key, translation, statusHint...)
}

var (
	// Config LC0100XX
	MsgConfigFileMissing          = ffe("LC010000", "Config file not found at path: %s")
	MsgConfigFileReadError        = ffe("LC010001", "Failed to read config file %s with error: %s")
	MsgConfigFileParseError       = ffe("LC010002", "Failed to parse config file: %s")
	MsgConfigPropertyInvalidType  = ffe("LC010003", "In the client properties: '%s' must be of type %s")
	MsgConfigPropertyRequired     = ffe("LC010004", "In the client properties: must have required property '%s'")
	MsgConfigEndpointInvalid      = ffe("LC010005", "Endpoint configuration for %s is invalid: %s")
	MsgConfigSignerBackendInvalid = ffe("LC010006", "Signer backend '%s' is not supported")
	MsgConfigPropertiesFileError  = ffe("LC010008", "Failed to parse properties file %s: %s")

	// Types and encoding LC0101XX
	MsgArgumentNotArray      = ffe("LC010100", "argument._functions_ must be an array")
	MsgArgumentEncodeFailed  = ffe("LC010101", "Failed to encode contract argument as JSON")
	MsgArgumentNotObject     = ffe("LC010102", "argument must be an object")
	MsgStatusDecodeFailed    = ffe("LC010103", "Failed to decode binary status metadata")
	MsgInvalidStatusCodeName = ffe("LC010104", "Unknown status code name '%s'")

	// Signer LC0102XX
	MsgSignerKeyLoadFailed       = ffe("LC010200", "Failed to load private key")
	MsgSignerNoPEMBlock          = ffe("LC010201", "Private key is not PEM encoded")
	MsgSignerUnsupportedKeyBlock = ffe("LC010202", "Unsupported private key PEM block type '%s'")
	MsgSignerUnsupportedCurve    = ffe("LC010203", "Private key must be on curve P-256 (found %s)")
	MsgSignerSignFailed          = ffe("LC010204", "Failed to sign the request")
	MsgSignerP1363Length         = ffe("LC010205", "P1363 signature must be %d bytes (found %d)")
	MsgSignerDERInvalid          = ffe("LC010206", "Signature is not a valid DER encoded ECDSA signature")
	MsgSignerPKCS8ConvertFailed  = ffe("LC010207", "Failed to convert private key to PKCS#8")
	MsgSignerUnknownBackend      = ffe("LC010208", "Unknown signer backend '%s'")

	// Requests LC0103XX
	MsgIllegalArgument  = ffe("LC010300", "Specified argument is illegal. field=%s")
	MsgSignerRequired   = ffe("LC010301", "A signer is required to build a %s")
	MsgPropertiesEncode = ffe("LC010302", "Failed to encode contract properties as JSON")

	// Transport LC0104XX
	MsgTransportConnectFailed  = ffe("LC010400", "Failed to create connection to %s")
	MsgTransportCallFailed     = ffe("LC010401", "Call %s failed")
	MsgTransportHTTPStatus     = ffe("LC010402", "Call %s failed with HTTP status %d: %s")
	MsgTransportInvalidURL     = ffe("LC010403", "Invalid gateway URL '%s'")
	MsgTransportCodecMarshal   = ffe("LC010404", "Failed to marshal %T with the %s codec")
	MsgTransportCodecUnmarshal = ffe("LC010405", "Failed to unmarshal %T with the %s codec")
	MsgTransportTLSConfig      = ffe("LC010406", "Invalid TLS configuration")
	MsgTransportTLSInvalidCA   = ffe("LC010407", "Invalid CA certificates")
	MsgTransportTLSKeyPair     = ffe("LC010408", "Invalid certificate and key pair")
	MsgTransportTLSDNAttr      = ffe("LC010409", "Unknown DN attribute '%s'")
	MsgTransportTLSDNRegexp    = ffe("LC010410", "Invalid regular expression for DN attribute '%s'")
	MsgTransportTLSDNMismatch  = ffe("LC010411", "Certificate subject does not meet requirements")
	MsgTransportTLSNoPeerCert  = ffe("LC010412", "No peer certificate was presented")

	// Client LC0105XX
	MsgClientServerStatus         = ffe("LC010500", "Request failed with status %s: %s")
	MsgClientUnknownTxStatus      = ffe("LC010501", "Transaction status is unknown")
	MsgClientInconsistentStates   = ffe("LC010502", "The results from Ledger and Auditor don't match")
	MsgClientInvalidAges          = ffe("LC010503", "invalid ages are specified start=%d end=%d")
	MsgClientBytecodeMissing      = ffe("LC010504", "parameter %s is not a byte array")
	MsgClientArgumentKindMismatch = ffe("LC010505", "contract argument and function argument must be the same type")
	MsgClientBuildFailed          = ffe("LC010506", "Failed to build %s")
	MsgClientListParseFailed      = ffe("LC010507", "Failed to parse contract list response")
	MsgClientAuditorRequired      = ffe("LC010508", "Auditor services are required when the auditor is enabled")
	MsgClientLedgerRequired       = ffe("LC010509", "Ledger services are required")
	MsgClientSerializeFailed      = ffe("LC010510", "Failed to serialize %s")

	// CLI LC0106XX
	MsgCLIConfigRequired      = ffe("LC010600", "Exactly one of --config or --properties must be set")
	MsgCLIFileReadFailed      = ffe("LC010601", "Failed to read %s")
	MsgCLIMetricsWriteFailed  = ffe("LC010602", "Failed to write metrics to %s")
	MsgCLIInvalidJSONArgument = ffe("LC010603", "Argument '%s' is not valid JSON")
	MsgCLIProofStoreDisabled  = ffe("LC010604", "The proof store is not enabled in the configuration")

	// Persistence LC0107XX
	MsgPersistenceInvalidType          = ffe("LC010700", "Invalid proof store database type: %s")
	MsgPersistenceMissingDSN           = ffe("LC010701", "Missing database connection Data Source Name (DSN) config")
	MsgPersistenceInitFailed           = ffe("LC010702", "Database init failed")
	MsgPersistenceMigrationFailed      = ffe("LC010703", "Database migration failed")
	MsgPersistenceErrorInDBTransaction = ffe("LC010704", "Database transaction failed: %v")
	MsgProofStoreWriteFailed           = ffe("LC010705", "Failed to record proofs for asset %s")
	MsgProofStoreReadFailed            = ffe("LC010706", "Failed to read recorded proofs for asset %s")
	MsgProofStoreProofMismatch         = ffe("LC010707", "The %s proof for asset %s age %d does not match the proof recorded earlier")
)
