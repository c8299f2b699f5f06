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

package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/kaleido-io/ledgerclient/pkg/ledgerclient"
	"github.com/kaleido-io/ledgerclient/pkg/log"
	"github.com/kaleido-io/ledgerclient/pkg/proofstore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	out            io.Writer
	configFile     string
	propertiesFile string
	metricsFile    string
}

func newRootCommand(out io.Writer) *cobra.Command {
	o := &rootOptions{out: out}
	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Ledger client",
		Long: `ledgerctl registers certificates, functions and contracts with a Ledger, executes
contracts, and validates assets. When an Auditor is enabled in the configuration every
execution and validation is cross-checked with it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&o.configFile, "config", "c", "", "YAML client configuration file")
	root.PersistentFlags().StringVarP(&o.propertiesFile, "properties", "p", "", "JSON file of flat scalar.dl.client.* properties")
	root.PersistentFlags().StringVar(&o.metricsFile, "metrics-out", "", "write client metrics in the Prometheus text format to this file")

	root.AddCommand(
		o.registerCertCommand(),
		o.registerFunctionCommand(),
		o.registerContractCommand(),
		o.listContractsCommand(),
		o.executeCommand(),
		o.validateCommand(),
		o.proofsCommand(),
	)
	return root
}

func (o *rootOptions) loadConfig(ctx context.Context) (*ldconf.ClientConfig, error) {
	switch {
	case o.configFile != "" && o.propertiesFile == "":
		conf := &ldconf.ClientConfig{}
		if err := ldconf.ReadAndParseYAMLFile(ctx, o.configFile, conf); err != nil {
			return nil, err
		}
		return conf, nil
	case o.propertiesFile != "" && o.configFile == "":
		return ldconf.ReadPropertiesFile(ctx, o.propertiesFile)
	default:
		return nil, i18n.NewError(ctx, msgs.MsgCLIConfigRequired)
	}
}

// withClient connects a client for the duration of one command, and prints what it returns
func (o *rootOptions) withClient(cmd *cobra.Command, fn func(ctx context.Context, c *ledgerclient.Client) (any, error)) error {
	ctx := cmd.Context()
	conf, err := o.loadConfig(ctx)
	if err != nil {
		return err
	}
	log.InitConfig(&conf.Log)

	services, err := ledgerclient.Connect(ctx, conf)
	if err != nil {
		return err
	}
	var opts []ledgerclient.Option
	registry := prometheus.NewRegistry()
	if o.metricsFile != "" {
		opts = append(opts, ledgerclient.WithMetricsRegistry(registry))
	}
	var store proofstore.Store
	if conf.ProofStoreEnabled() {
		if store, err = proofstore.New(ctx, &conf.ProofStore); err != nil {
			_ = services.Close()
			return err
		}
		opts = append(opts, ledgerclient.WithProofStore(store))
	}
	c, err := ledgerclient.NewClient(ctx, conf, services, opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		_ = services.Close()
		return err
	}
	defer c.Close()

	result, err := fn(ctx, c)
	if o.metricsFile != "" {
		if writeErr := prometheus.WriteToTextfile(o.metricsFile, registry); writeErr != nil {
			log.L(ctx).Errorf("%s", i18n.WrapError(ctx, writeErr, msgs.MsgCLIMetricsWriteFailed, o.metricsFile))
		}
	}
	if err != nil {
		return err
	}
	return o.print(result)
}

func (o *rootOptions) print(result any) error {
	if result == nil {
		return nil
	}
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
