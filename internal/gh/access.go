// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"

	"github.com/kicksaw/sfictl/internal/console"
)

// AccessEntry grants a team or user a permission on a repository.
type AccessEntry struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Permission string `json:"permission"`
}

// DefaultAccessConfig is the access applied to new repositories when no
// override is given.
func DefaultAccessConfig() []AccessEntry {
	return []AccessEntry{
		{Name: "engineering", Type: "team", Permission: "maintain"},
		{Name: "gigic31", Type: "user", Permission: "admin"},
		{Name: "kicksaw", Type: "team", Permission: "read"},
		{Name: "tsabat", Type: "user", Permission: "admin"},
	}
}

// ParseAccessConfig decodes a JSON access configuration override.
func ParseAccessConfig(raw string) ([]AccessEntry, error) {
	var entries []AccessEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("invalid JSON in access config: %w", err)
	}
	return entries, nil
}

// normalizePermission maps the friendly permission names used in access
// configs to the names the GitHub API expects.
func normalizePermission(permission string) string {
	switch permission {
	case "read":
		return "pull"
	case "write":
		return "push"
	default:
		return permission
	}
}

// SetupRepositoryAccess grants each configured team or user its permission on
// the repository. Failures are reported per entry and never abort the loop.
func SetupRepositoryAccess(ctx context.Context, client *github.Client, org, repo string, entries []AccessEntry) error {
	if entries == nil {
		entries = DefaultAccessConfig()
	}

	console.Panel("Repository Access", "Setting up repository access rights...")

	teams, err := ListTeams(ctx, client, org)
	if err != nil {
		console.Warnf("Could not fetch teams from organization: %v", err)
	}
	bySlug := make(map[string]*github.Team, len(teams))
	for _, team := range teams {
		bySlug[team.GetSlug()] = team
	}
	console.Infof("Found %s teams in organization '%s'", console.Highlight(fmt.Sprint(len(bySlug))), console.Highlight(org))

	for _, entry := range entries {
		permission := normalizePermission(entry.Permission)

		switch entry.Type {
		case "team":
			slug := strings.ToLower(entry.Name)
			if _, ok := bySlug[slug]; !ok {
				available := "none found"
				if len(bySlug) > 0 {
					slugs := make([]string, 0, len(bySlug))
					for s := range bySlug {
						slugs = append(slugs, s)
					}
					available = strings.Join(slugs, ", ")
				}
				console.Errorf("Team '%s' not found in organization '%s'. Available teams: %s", entry.Name, org, available)
				continue
			}

			_, err := client.Teams.AddTeamRepoBySlug(ctx, org, slug, org, repo, &github.TeamAddTeamRepoOptions{
				Permission: permission,
			})
			if err != nil {
				console.Errorf("Failed to grant access to team '@%s/%s': %v", org, entry.Name, err)
				continue
			}
			console.Successf("Granted %s access to team '@%s/%s'", entry.Permission, org, entry.Name)

		case "user":
			if _, _, err := client.Users.Get(ctx, entry.Name); err != nil {
				if isNotFound(err) {
					console.Errorf("User '%s' not found", entry.Name)
				} else {
					console.Errorf("Failed to grant access to user '%s': %v", entry.Name, err)
				}
				continue
			}

			_, _, err := client.Repositories.AddCollaborator(ctx, org, repo, entry.Name, &github.RepositoryAddCollaboratorOptions{
				Permission: permission,
			})
			if err != nil {
				console.Errorf("Failed to grant access to user '%s': %v", entry.Name, err)
				continue
			}
			console.Successf("Granted %s access to user '%s'", entry.Permission, entry.Name)

		default:
			console.Errorf("Unknown entry type '%s' for '%s'", entry.Type, entry.Name)
		}
	}

	return nil
}
