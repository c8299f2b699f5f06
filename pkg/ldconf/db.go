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

import "github.com/kaleido-io/ledgerclient/internal/confutil"

// ProofStoreConfig configures the local database that pins every proof the client
// has accepted, so a later answer that rewrites history can be detected
type ProofStoreConfig struct {
	Enabled  *bool          `json:"enabled"`
	Type     string         `json:"type"` // sqlite (default) or postgres
	SQLite   SQLiteConfig   `json:"sqlite"`
	Postgres PostgresConfig `json:"postgres"`
}

type SQLiteConfig struct {
	SQLDBConfig `json:",inline"`
}

type PostgresConfig struct {
	SQLDBConfig `json:",inline"`
}

type SQLDBConfig struct {
	DSN             string  `json:"dsn"`
	MaxOpenConns    *int    `json:"maxOpenConns"`
	MaxIdleConns    *int    `json:"maxIdleConns"`
	ConnMaxIdleTime *string `json:"connMaxIdleTime"`
	ConnMaxLifetime *string `json:"connMaxLifetime"`
	AutoMigrate     *bool   `json:"autoMigrate"`
	DebugQueries    bool    `json:"debugQueries"`
	StatementCache  *bool   `json:"statementCache"`
}

var ProofStoreDefaults = &ProofStoreConfig{
	Enabled: confutil.P(false),
	Type:    "sqlite",
}

func (c *ClientConfig) ProofStoreEnabled() bool {
	return confutil.Bool(c.ProofStore.Enabled, *ProofStoreDefaults.Enabled)
}
