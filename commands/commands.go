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

// Package commands assembles the manage_obs_env command set.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/tribeiro/ts-observing-environment/internal/cmdcheckout"
	"github.com/tribeiro/ts-observing-environment/internal/cmdconfig"
	"github.com/tribeiro/ts-observing-environment/internal/cmdreset"
	"github.com/tribeiro/ts-observing-environment/internal/cmdsetup"
	"github.com/tribeiro/ts-observing-environment/internal/cmdversions"
)

// GetObsEnvCommands returns the set of manage_obs_env commands to be
// registered on the root command.
func GetObsEnvCommands(ctx context.Context, name string) []*cobra.Command {
	c := []*cobra.Command{
		cmdsetup.NewCommand(ctx, name),
		cmdconfig.NewCommand(ctx, name),
		cmdreset.NewCommand(ctx, name),
		cmdversions.NewCurrentCommand(ctx, name),
		cmdversions.NewBaseCommand(ctx, name),
		cmdcheckout.NewBranchCommand(ctx, name),
		cmdcheckout.NewVersionCommand(ctx, name),
	}

	// apply cross-cutting concerns to commands
	NormalizeCommand(c...)
	return c
}

// NormalizeCommand will modify commands to be consistent, e.g. not printing
// usage on runtime failures.
func NormalizeCommand(c ...*cobra.Command) {
	for i := range c {
		cmd := c[i]
		cmd.SilenceUsage = true
		NormalizeCommand(cmd.Commands()...)
	}
}
