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
	"os"
	"strings"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/pkg/contractarg"
	"github.com/kaleido-io/ledgerclient/pkg/ldtypes"
	"github.com/kaleido-io/ledgerclient/pkg/ledgerclient"
	"github.com/kaleido-io/ledgerclient/pkg/log"
	"github.com/kaleido-io/ledgerclient/pkg/proofstore"
	"github.com/kaleido-io/ledgerclient/pkg/rpcmsgs"
	"github.com/spf13/cobra"
)

type executionOutput struct {
	ContractResult string                `json:"contractResult"`
	FunctionResult string                `json:"functionResult,omitempty"`
	LedgerProofs   []*rpcmsgs.AssetProof `json:"ledgerProofs"`
	AuditorProofs  []*rpcmsgs.AssetProof `json:"auditorProofs"`
}

type validationOutput struct {
	Code         ldtypes.StatusCode  `json:"code"`
	LedgerProof  *rpcmsgs.AssetProof `json:"ledgerProof,omitempty"`
	AuditorProof *rpcmsgs.AssetProof `json:"auditorProof,omitempty"`
}

func (o *rootOptions) registerCertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register-cert",
		Short: "Register the configured certificate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClient(cmd, func(ctx context.Context, c *ledgerclient.Client) (any, error) {
				return nil, c.RegisterCertificate(ctx)
			})
		},
	}
}

func (o *rootOptions) registerFunctionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register-function <id> <binary-name> <file>",
		Short: "Register a function",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			bytecode, err := readFile(cmd.Context(), args[2])
			if err != nil {
				return err
			}
			return o.withClient(cmd, func(ctx context.Context, c *ledgerclient.Client) (any, error) {
				return nil, c.RegisterFunction(ctx, args[0], args[1], bytecode)
			})
		},
	}
}

func (o *rootOptions) registerContractCommand() *cobra.Command {
	var properties string
	cmd := &cobra.Command{
		Use:   "register-contract <id> <binary-name> <file>",
		Short: "Register a contract",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			bytecode, err := readFile(cmd.Context(), args[2])
			if err != nil {
				return err
			}
			var props map[string]any
			if properties != "" {
				if err := json.Unmarshal([]byte(properties), &props); err != nil {
					return i18n.WrapError(cmd.Context(), err, msgs.MsgCLIInvalidJSONArgument, properties)
				}
			}
			return o.withClient(cmd, func(ctx context.Context, c *ledgerclient.Client) (any, error) {
				return nil, c.RegisterContract(ctx, args[0], args[1], bytecode, props)
			})
		},
	}
	cmd.Flags().StringVar(&properties, "contract-properties", "", "JSON object of contract properties")
	return cmd
}

func (o *rootOptions) listContractsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-contracts [id]",
		Short: "List the contracts registered by the certificate holder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contractID := ""
			if len(args) > 0 {
				contractID = args[0]
			}
			return o.withClient(cmd, func(ctx context.Context, c *ledgerclient.Client) (any, error) {
				return c.ListContracts(ctx, contractID)
			})
		},
	}
}

func (o *rootOptions) executeCommand() *cobra.Command {
	var functionID, functionArg, nonce string
	var asString bool
	cmd := &cobra.Command{
		Use:   "execute <contract-id> <argument>",
		Short: "Execute a contract",
		Long: `Execute a contract. An argument that starts with '{' or '[' is sent as JSON,
anything else as a plain string. Use --string to always send plain strings.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			argument, err := parseArgument(cmd.Context(), args[1], asString)
			if err != nil {
				return err
			}
			var opts []ledgerclient.ExecuteOption
			if functionID != "" || cmd.Flags().Changed("function-arg") {
				fnArg := contractarg.EmptyLike(argument)
				if cmd.Flags().Changed("function-arg") {
					if fnArg, err = parseArgument(cmd.Context(), functionArg, asString); err != nil {
						return err
					}
				}
				opts = append(opts, ledgerclient.WithFunction(functionID, fnArg))
			}
			if nonce != "" {
				opts = append(opts, ledgerclient.WithNonce(nonce))
			}
			return o.withClient(cmd, func(ctx context.Context, c *ledgerclient.Client) (any, error) {
				result, err := c.ExecuteContract(ctx, args[0], argument, opts...)
				if err != nil {
					return nil, err
				}
				return &executionOutput{
					ContractResult: result.ContractResult,
					FunctionResult: result.FunctionResult,
					LedgerProofs:   ldtypes.AssetProofsToWire(result.LedgerProofs),
					AuditorProofs:  ldtypes.AssetProofsToWire(result.AuditorProofs),
				}, nil
			})
		},
	}
	cmd.Flags().StringVar(&functionID, "function-id", "", "function to run after the contract")
	cmd.Flags().StringVar(&functionArg, "function-arg", "", "argument for the function, of the same kind as the contract argument")
	cmd.Flags().StringVar(&nonce, "nonce", "", "nonce identifying the execution (default a random UUID)")
	cmd.Flags().BoolVar(&asString, "string", false, "send the arguments as plain strings")
	return cmd
}

func (o *rootOptions) validateCommand() *cobra.Command {
	var startAge, endAge int
	cmd := &cobra.Command{
		Use:   "validate <asset-id>",
		Short: "Validate the integrity of an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClient(cmd, func(ctx context.Context, c *ledgerclient.Client) (any, error) {
				result, err := c.ValidateLedgerRange(ctx, args[0], startAge, endAge)
				if err != nil {
					return nil, err
				}
				out := &validationOutput{Code: result.Code}
				if result.LedgerProof != nil {
					out.LedgerProof = result.LedgerProof.ToWire()
				}
				if result.AuditorProof != nil {
					out.AuditorProof = result.AuditorProof.ToWire()
				}
				return out, nil
			})
		},
	}
	cmd.Flags().IntVar(&startAge, "start-age", ledgerclient.MinAge, "first age to validate")
	cmd.Flags().IntVar(&endAge, "end-age", ledgerclient.MaxAge, "last age to validate")
	return cmd
}

type recordedProofOutput struct {
	Source  proofstore.Source   `json:"source"`
	Proof   *rpcmsgs.AssetProof `json:"proof"`
	Created string              `json:"created"`
}

func (o *rootOptions) proofsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "proofs <asset-id>",
		Short: "List the proofs of an asset recorded in the local proof store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conf, err := o.loadConfig(ctx)
			if err != nil {
				return err
			}
			log.InitConfig(&conf.Log)
			if !conf.ProofStoreEnabled() {
				return i18n.NewError(ctx, msgs.MsgCLIProofStoreDisabled)
			}
			store, err := proofstore.New(ctx, &conf.ProofStore)
			if err != nil {
				return err
			}
			defer store.Close()
			recorded, err := store.ListProofs(ctx, args[0])
			if err != nil {
				return err
			}
			out := make([]*recordedProofOutput, len(recorded))
			for i, r := range recorded {
				out[i] = &recordedProofOutput{
					Source:  r.Source,
					Proof:   r.Proof.ToWire(),
					Created: r.Created.UTC().Format(time.RFC3339Nano),
				}
			}
			return o.print(out)
		},
	}
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, ldtypes.WrapClientError(ctx, ldtypes.StatusClientIOError, err, msgs.MsgCLIFileReadFailed, path)
	}
	return b, nil
}

func parseArgument(ctx context.Context, s string, asString bool) (contractarg.Argument, error) {
	trimmed := strings.TrimSpace(s)
	if asString || !(strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) {
		return contractarg.String(s), nil
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return contractarg.Argument{}, i18n.WrapError(ctx, err, msgs.MsgCLIInvalidJSONArgument, s)
	}
	return contractarg.JSON(v), nil
}
