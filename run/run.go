// Copyright 2025 The ts-observing-environment Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package run builds the manage_obs_env root command.
package run

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tribeiro/ts-observing-environment/commands"
	"github.com/tribeiro/ts-observing-environment/internal/errors"
	"github.com/tribeiro/ts-observing-environment/internal/printer"
	"github.com/tribeiro/ts-observing-environment/internal/util/cmdutil"
)

// GetMain returns the manage_obs_env root command.
func GetMain(ctx context.Context) *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:          "manage_obs_env",
		Short:        "Manage the observing environment",
		Long: `Manage the observing environment: a fixed set of repositories cloned under a
single destination directory, kept in a reproducible configuration.`,
		SilenceUsage: true,
		// We handle all errors in main after return from cobra so we can
		// adjust the error message coming from libraries
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := cmd.Flags().GetBool("help")
			if err != nil {
				return err
			}
			if h {
				return cmd.Help()
			}
			return cmd.Usage()
		},
	}

	// accept the underscore flag spelling of the previous tool
	cmd.SetGlobalNormalizationFunc(normalizeFlagName)

	cmd.PersistentFlags().String("env-path", cmdutil.DefaultEnvPath,
		"path to the observing environment")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", printer.Debug.String(),
		"log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&cmdutil.StackOnError, "stack-trace", false,
		"print a stack-trace on failure")

	// wire the global printer
	pr := printer.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), printer.Debug)

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		const op errors.Op = "run.PersistentPreRunE"
		lvl, err := printer.ParseLevel(logLevel)
		if err != nil {
			return errors.E(op, errors.InvalidParam, err)
		}
		pr.SetLevel(lvl)
		return nil
	}

	// create context with associated printer
	ctx = printer.WithContext(ctx, pr)

	cmd.InitDefaultHelpCmd()
	cmd.AddCommand(commands.GetObsEnvCommands(ctx, "manage_obs_env")...)

	if _, err := exec.LookPath("git"); err != nil {
		fmt.Fprintf(os.Stderr, "manage_obs_env requires that `git` is installed and on the PATH")
		os.Exit(1)
	}

	return cmd
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}
