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

// repoWithBranchesCommandAction combines repo-create and branches-create:
// create the repository, grant access, create the environment branches, then
// protect them.
func repoWithBranchesCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	client, err := newGitHubClient(cmd)
	if err != nil {
		return err
	}

	org := cmd.String("org")
	repoName := cmd.String("repo-name")

	branches := branchList(cmd)
	if len(branches) == 0 {
		return errors.New("no valid branches specified")
	}

	console.Panel("Repository Creation",
		fmt.Sprintf("Creating repository '%s' in organization '%s'...",
			console.Highlight(repoName), console.Highlight(org)))

	repo, err := gh.CreateRepo(ctx, client, org, repoName, cmd.String("description"))
	if err != nil {
		return err
	}
	console.Successf("Repository created successfully: %s", repo.GetHTMLURL())

	gh.SetRepoVariables(ctx, client, org, repoName, repoVariables(cmd))

	if cmd.Bool("setup-access") {
		entries, err := accessOverride(cmd)
		if err != nil {
			return err
		}
		gh.WaitWithSpinner(repoInitializationWait,
			"Waiting for repository initialization before setting up access...")
		if err := gh.SetupRepositoryAccess(ctx, client, org, repoName, entries); err != nil {
			return err
		}
	}

	gh.WaitWithSpinner(repoInitializationWait,
		"Waiting for repository initialization before creating branches...")

	if err := gh.CreateBranches(ctx, client, org, repoName, "main", branches); err != nil {
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
		fmt.Sprintf("✓ Repository '%s' successfully created with branches and protection rules",
			console.Highlight(repoName)))

	gh.SetRepoVariables(ctx, client, org, repoName, repoVariables(cmd))
	return nil
}

func repoWithBranchesCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "repo-with-branches",
		Usage:     "create a repository with environment branches",
		UsageText: "sfictl repo-with-branches --repo-name NAME [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewOrgFlag("repo-with-branches", meta.Config.Source),
			NewTokenFlag("repo-with-branches", meta.Config.Source),
			NewRepoNameFlag(),
			descriptionFlag,
			branchesFlag,
			setupAccessFlag,
			accessConfigFlag,
			setupProtectionFlag,
			protectionConfigFlag,
			NewAWSRegionFlag("repo-with-branches", meta.Config.Source),
			NewAWSAccountIDFlag("repo-with-branches", meta.Config.Source),
		},
		Action: repoWithBranchesCommandAction,
	}
}
