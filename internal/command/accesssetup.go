// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/kicksaw/sfictl/internal/console"
	"github.com/kicksaw/sfictl/internal/gh"
	"github.com/kicksaw/sfictl/internal/meta"
)

// accessSetupCommandAction applies the access configuration to an existing
// repository.
func accessSetupCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	client, err := newGitHubClient(cmd)
	if err != nil {
		return err
	}

	org := cmd.String("org")
	repoName := cmd.String("repo-name")

	if _, err := gh.GetRepo(ctx, client, org, repoName); err != nil {
		return err
	}

	entries, err := accessOverride(cmd)
	if err != nil {
		return err
	}

	if err := gh.SetupRepositoryAccess(ctx, client, org, repoName, entries); err != nil {
		return err
	}

	console.SuccessPanel("Setup Complete",
		fmt.Sprintf("✓ Access rights successfully configured for repository '%s'",
			console.Highlight(repoName)))
	return nil
}

func accessSetupCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "access-setup",
		Usage:     "set up access rights for an existing repository",
		UsageText: "sfictl access-setup --repo-name NAME [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewOrgFlag("access-setup", meta.Config.Source),
			NewTokenFlag("access-setup", meta.Config.Source),
			NewRepoNameFlag(),
			accessConfigFlag,
		},
		Action: accessSetupCommandAction,
	}
}
