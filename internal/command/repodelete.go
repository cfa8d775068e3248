// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/kicksaw/sfictl/internal/console"
	"github.com/kicksaw/sfictl/internal/gh"
	"github.com/kicksaw/sfictl/internal/meta"
)

// confirmDeletion prompts for the repository name and reports whether the
// input matched exactly.
func confirmDeletion(repoName string) bool {
	fmt.Printf("To confirm deletion, type the repository name '%s': ", repoName)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == repoName
}

// repoDeleteCommandAction permanently deletes a repository after an exact
// name confirmation.
func repoDeleteCommandAction(ctx context.Context, cmd *cli.Command) error {
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

	console.ErrorPanel("⚠️ DANGER: Repository Deletion ⚠️",
		fmt.Sprintf("WARNING: You are about to delete the repository '%s' from organization '%s'.\n"+
			"This action is IRREVERSIBLE and all repository data will be permanently lost.",
			console.Highlight(repoName), console.Highlight(org)))

	if cmd.Bool("confirm") && !confirmDeletion(repoName) {
		console.Warnf("Deletion cancelled: Repository name did not match.")
		return fmt.Errorf("deletion of %s/%s not confirmed", org, repoName)
	}

	console.Infof("Deleting repository '%s'...", console.Highlight(repoName))
	if err := gh.DeleteRepo(ctx, client, org, repoName); err != nil {
		return err
	}

	console.SuccessPanel("Deletion Complete",
		fmt.Sprintf("✓ Repository '%s' has been permanently deleted from organization '%s'",
			console.Highlight(repoName), console.Highlight(org)))
	return nil
}

func repoDeleteCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "repo-delete",
		Usage:     "delete a repository from the organization",
		UsageText: "sfictl repo-delete --repo-name NAME [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewOrgFlag("repo-delete", meta.Config.Source),
			NewTokenFlag("repo-delete", meta.Config.Source),
			NewRepoNameFlag(),
			confirmFlag,
		},
		Action: repoDeleteCommandAction,
	}
}
