// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/kicksaw/sfictl/internal/console"
	"github.com/kicksaw/sfictl/internal/gh"
	"github.com/kicksaw/sfictl/internal/meta"
)

// branchesCreateCommandAction creates the requested branches in an existing
// repository, then optionally applies branch protection and sets the
// repository variables.
func branchesCreateCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	client, err := newGitHubClient(cmd)
	if err != nil {
		return err
	}

	org := cmd.String("org")
	repoName := cmd.String("repo-name")

	repo, err := gh.GetRepo(ctx, client, org, repoName)
	if err != nil {
		return err
	}

	branches := branchList(cmd)
	if len(branches) == 0 {
		return errors.New("no valid branches specified")
	}

	if err := gh.CreateBranches(ctx, client, org, repoName, cmd.String("source-branch"), branches); err != nil {
		return err
	}
	console.Successf("Branch creation completed for repository: %s", repo.GetHTMLURL())

	if cmd.Bool("setup-protection") {
		configs, err := protectionOverride(cmd)
		if err != nil {
			return err
		}
		gh.WaitWithSpinner(repoInitializationWait,
			"Waiting for branch initialization before setting up protection...")
		if err := gh.SetupBranchProtection(ctx, client, org, repoName, configs); err != nil {
			return err
		}
	}

	console.SuccessPanel("Setup Complete",
		fmt.Sprintf("✓ Branches successfully created in repository: %s", repo.GetHTMLURL()))

	gh.SetRepoVariables(ctx, client, org, repoName, repoVariables(cmd))
	return nil
}

func branchesCreateCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "branches-create",
		Usage:     "create branches in an existing repository",
		UsageText: "sfictl branches-create --repo-name NAME [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewOrgFlag("branches-create", meta.Config.Source),
			NewTokenFlag("branches-create", meta.Config.Source),
			NewRepoNameFlag(),
			sourceBranchFlag,
			branchesFlag,
			setupProtectionFlag,
			protectionConfigFlag,
			NewAWSRegionFlag("branches-create", meta.Config.Source),
			NewAWSAccountIDFlag("branches-create", meta.Config.Source),
		},
		Action: branchesCreateCommandAction,
	}
}
