// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/kicksaw/sfictl/internal/console"
	"github.com/kicksaw/sfictl/internal/gh"
	"github.com/kicksaw/sfictl/internal/meta"
)

// repoInitializationWait gives GitHub time to finish initializing a new
// repository before follow-up API calls land.
const repoInitializationWait = 3 * time.Second

// repoCreateCommandAction creates a private, auto-initialized repository,
// sets the Actions variables, and optionally applies access and protection.
func repoCreateCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	client, err := newGitHubClient(cmd)
	if err != nil {
		return err
	}

	org := cmd.String("org")
	repoName := cmd.String("repo-name")

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

	if cmd.Bool("setup-protection") {
		configs, err := protectionOverride(cmd)
		if err != nil {
			return err
		}
		gh.WaitWithSpinner(repoInitializationWait,
			"Waiting for repository initialization before setting up branch protection...")
		if err := gh.SetupBranchProtection(ctx, client, org, repoName, configs); err != nil {
			return err
		}
	}

	console.SuccessPanel("Setup Complete",
		fmt.Sprintf("✓ Repository '%s' successfully created", console.Highlight(repoName)))
	return nil
}

func repoCreateCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "repo-create",
		Usage:     "create a GitHub repository in the organization",
		UsageText: "sfictl repo-create --repo-name NAME [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewOrgFlag("repo-create", meta.Config.Source),
			NewTokenFlag("repo-create", meta.Config.Source),
			NewRepoNameFlag(),
			descriptionFlag,
			setupAccessFlag,
			accessConfigFlag,
			setupProtectionFlag,
			protectionConfigFlag,
			NewAWSRegionFlag("repo-create", meta.Config.Source),
			NewAWSAccountIDFlag("repo-create", meta.Config.Source),
		},
		Action: repoCreateCommandAction,
	}
}
