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

// protectionSetupCommandAction applies branch protection rules to an
// existing repository.
func protectionSetupCommandAction(ctx context.Context, cmd *cli.Command) error {
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

	configs, err := protectionOverride(cmd)
	if err != nil {
		return err
	}

	if err := gh.SetupBranchProtection(ctx, client, org, repoName, configs); err != nil {
		return err
	}

	console.SuccessPanel("Setup Complete",
		fmt.Sprintf("✓ Branch protection rules successfully configured for repository '%s'",
			console.Highlight(repoName)))
	return nil
}

func protectionSetupCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "protection-setup",
		Usage:     "set up branch protection rules for an existing repository",
		UsageText: "sfictl protection-setup --repo-name NAME [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewOrgFlag("protection-setup", meta.Config.Source),
			NewTokenFlag("protection-setup", meta.Config.Source),
			NewRepoNameFlag(),
			protectionConfigFlag,
		},
		Action: protectionSetupCommandAction,
	}
}
