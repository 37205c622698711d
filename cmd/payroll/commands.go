// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
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
	"fmt"
	"os"

	"github.com/Confidential-Secret-Vault/app/internal/bootstrap"
	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/internal/validator"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var buildStack = bootstrap.Build

type rootOptions struct {
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "payroll",
		Short:         "Confidential payroll payment lifecycle client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Path to the YAML config file")

	root.AddCommand(
		newServeCommand(opts),
		newSendCommand(opts),
		newBatchCommand(opts),
		newPaymentsCommand(opts),
		newDecryptCommand(opts),
		newClaimCommand(opts),
		newViewCommand(opts),
		newStatsCommand(opts),
	)
	return root
}

// runOnce builds the client for a single workflow, and prints its result as JSON
func runOnce(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, s *bootstrap.Stack) (any, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	conf, err := bootstrap.LoadConfig(ctx, opts.configFile)
	if err != nil {
		return err
	}
	s, err := buildStack(ctx, conf)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := fn(ctx, s)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON/RPC front door and metrics server until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bootstrap.NewInstance(opts.configFile).Run() != bootstrap.RC_OK {
				return i18n.NewError(context.Background(), msgs.MsgBootstrapServeFailed)
			}
			return nil
		},
	}
}

func newSendCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send <recipient> <amount> <memo>",
		Short: "Encrypt and send a single payment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, opts, func(ctx context.Context, s *bootstrap.Stack) (any, error) {
				return s.Client.SendPayment(ctx, s.Connection, args[0], args[1], args[2])
			})
		},
	}
}

func readBatchFile(ctx context.Context, filename string) ([]*payrollapi.BatchEntry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgBootstrapBatchFileRead, filename)
	}
	var entries []*payrollapi.BatchEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgBootstrapBatchFileParse, filename)
	}
	return entries, nil
}

func newBatchCommand(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "batch --file <entries.yaml>",
		Short: "Send up to 50 payments in one transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := readBatchFile(context.Background(), file)
			if err != nil {
				return err
			}
			return runOnce(cmd, opts, func(ctx context.Context, s *bootstrap.Stack) (any, error) {
				return s.Client.BatchSend(ctx, s.Connection, entries)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON list of {address,amount,memo} entries")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newPaymentsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "payments",
		Short: "List the payments received by the configured account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd, opts, func(ctx context.Context, s *bootstrap.Stack) (any, error) {
				return s.Client.LoadMyPayments(ctx, s.Connection)
			})
		},
	}
}

func newDecryptCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <paymentId>",
		Short: "Reveal the amount of one of your payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := validator.ParsePaymentID(context.Background(), args[0])
			if err != nil {
				return err
			}
			return runOnce(cmd, opts, func(ctx context.Context, s *bootstrap.Stack) (any, error) {
				return s.Client.DecryptPayment(ctx, s.Connection, id)
			})
		},
	}
}

func newClaimCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "claim <paymentId>",
		Short: "Claim one of your payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := validator.ParsePaymentID(context.Background(), args[0])
			if err != nil {
				return err
			}
			return runOnce(cmd, opts, func(ctx context.Context, s *bootstrap.Stack) (any, error) {
				return s.Client.ClaimPayment(ctx, s.Connection, id)
			})
		},
	}
}

type viewResult struct {
	Payment *payrollapi.PaymentRecord `json:"payment"`
	Amount  *payrollapi.DecryptResult `json:"amount,omitempty"`
}

func newViewCommand(opts *rootOptions) *cobra.Command {
	var decrypt bool
	cmd := &cobra.Command{
		Use:   "view <recipient> <paymentId>",
		Short: "Look up any payment by recipient and ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, opts, func(ctx context.Context, s *bootstrap.Stack) (any, error) {
				rec, err := s.Client.ViewPayment(ctx, s.Connection, args[0], args[1])
				if err != nil {
					return nil, err
				}
				res := &viewResult{Payment: rec}
				if decrypt {
					if res.Amount, err = s.Client.DecryptViewedPayment(ctx, s.Connection); err != nil {
						return nil, err
					}
				}
				return res, nil
			})
		},
	}
	cmd.Flags().BoolVarP(&decrypt, "decrypt", "d", false, "Also reveal the amount")
	return cmd
}

func newStatsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show payment counts for the configured account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd, opts, func(ctx context.Context, s *bootstrap.Stack) (any, error) {
				return s.Client.LoadStats(ctx, s.Connection)
			})
		},
	}
}
