// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/kicksaw/sfictl/internal/config"
	"github.com/kicksaw/sfictl/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	sd, _ := os.Getwd()

	// A missing config file is fine, flag defaults carry the commands.
	cfg, _ := config.Load() //nolint
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "sfictl",
		Usage: "Salesforce integration project provisioning",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "sfictl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		repoCreateCommandBuilder(meta),
		branchesCreateCommandBuilder(meta),
		repoWithBranchesCommandBuilder(meta),
		accessSetupCommandBuilder(meta),
		teamsListCommandBuilder(meta),
		protectionSetupCommandBuilder(meta),
		repoDeleteCommandBuilder(meta),
		oidcRoleCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
