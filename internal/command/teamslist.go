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

// descriptionColumnWidth caps team descriptions in the listing table.
const descriptionColumnWidth = 50

// truncateDescription shortens a team description to fit the table column.
func truncateDescription(description string) string {
	if len(description) > descriptionColumnWidth {
		return description[:descriptionColumnWidth-3] + "..."
	}
	return description
}

// teamsListCommandAction prints a table of the organization's teams. The slug
// column is what access configurations refer to.
func teamsListCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	client, err := newGitHubClient(cmd)
	if err != nil {
		return err
	}

	org := cmd.String("org")

	console.Panel("Team Listing",
		fmt.Sprintf("Teams in organization '%s'", console.Highlight(org)))

	teams, err := gh.ListTeams(ctx, client, org)
	if err != nil {
		return err
	}

	if len(teams) == 0 {
		console.Warnf("No teams found.")
		return nil
	}

	rows := make([][]string, 0, len(teams))
	for _, team := range teams {
		rows = append(rows, []string{
			team.GetName(),
			team.GetSlug(),
			truncateDescription(team.GetDescription()),
		})
	}

	console.Table([]string{"Team Name", "Slug", "Description"}, rows)
	console.Infof("\nUse the 'slug' value in the access configuration.")
	return nil
}

func teamsListCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "teams-list",
		Usage:     "list all teams in the organization",
		UsageText: "sfictl teams-list [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewOrgFlag("teams-list", meta.Config.Source),
			NewTokenFlag("teams-list", meta.Config.Source),
		},
		Action: teamsListCommandAction,
	}
}
