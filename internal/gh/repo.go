// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package gh

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"

	"github.com/kicksaw/sfictl/internal/console"
)

// branchCreationPause spaces out ref creations to stay clear of secondary
// rate limits.
const branchCreationPause = 500 * time.Millisecond

// CreateRepo creates a private, auto-initialized repository in the
// organization with issues, wiki, and projects enabled.
func CreateRepo(ctx context.Context, client *github.Client, org, name, description string) (*github.Repository, error) {
	repo, _, err := client.Repositories.Create(ctx, org, &github.Repository{
		Name:        github.Ptr(name),
		Description: github.Ptr(description),
		Private:     github.Ptr(true),
		HasIssues:   github.Ptr(true),
		HasWiki:     github.Ptr(true),
		HasProjects: github.Ptr(true),
		AutoInit:    github.Ptr(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create repository %s/%s: %w", org, name, err)
	}
	return repo, nil
}

// GetRepo fetches an existing organization repository.
func GetRepo(ctx context.Context, client *github.Client, org, name string) (*github.Repository, error) {
	repo, _, err := client.Repositories.Get(ctx, org, name)
	if err != nil {
		return nil, fmt.Errorf("repository %s/%s not found: %w", org, name, err)
	}
	return repo, nil
}

// DeleteRepo permanently deletes a repository.
func DeleteRepo(ctx context.Context, client *github.Client, org, name string) error {
	if _, err := client.Repositories.Delete(ctx, org, name); err != nil {
		return fmt.Errorf("failed to delete repository %s/%s: %w", org, name, err)
	}
	return nil
}

// ListTeams returns every team in the organization.
func ListTeams(ctx context.Context, client *github.Client, org string) ([]*github.Team, error) {
	var teams []*github.Team
	opts := &github.ListOptions{PerPage: 100}

	for {
		page, resp, err := client.Teams.ListTeams(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list teams for %s: %w", org, err)
		}
		teams = append(teams, page...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return teams, nil
}

// ParseBranchList splits a comma-separated branch list, trimming whitespace
// and dropping empty entries.
func ParseBranchList(branches string) []string {
	var list []string
	for _, b := range strings.Split(branches, ",") {
		if b = strings.TrimSpace(b); b != "" {
			list = append(list, b)
		}
	}
	return list
}

// CreateBranches creates each requested branch from the source branch's head
// commit. Existing branches are skipped and per-branch failures are reported
// without aborting the loop.
func CreateBranches(ctx context.Context, client *github.Client, org, repo, sourceBranch string, branches []string) error {
	console.Infof("Fetching source branch '%s'...", console.Highlight(sourceBranch))

	sourceRef, _, err := client.Git.GetRef(ctx, org, repo, "heads/"+sourceBranch)
	if err != nil {
		return fmt.Errorf("source branch %q not found in repository %s/%s: %w", sourceBranch, org, repo, err)
	}
	sourceSHA := sourceRef.GetObject().GetSHA()

	console.Panel("Branch Creation", fmt.Sprintf("Creating branches in repository '%s'", console.Highlight(repo)))

	for _, branch := range branches {
		if _, _, err := client.Git.GetRef(ctx, org, repo, "heads/"+branch); err == nil {
			console.Warnf("Branch '%s' already exists, skipping...", console.Highlight(branch))
			continue
		}

		console.Infof("Creating branch '%s' from '%s'...", console.Highlight(branch), console.Highlight(sourceBranch))
		_, _, err := client.Git.CreateRef(ctx, org, repo, &github.Reference{
			Ref:    github.Ptr("refs/heads/" + branch),
			Object: &github.GitObject{SHA: github.Ptr(sourceSHA)},
		})
		if err != nil {
			console.Errorf("Error creating branch '%s': %v", console.Highlight(branch), err)
			continue
		}
		console.Successf("Branch '%s' created successfully", console.Highlight(branch))

		time.Sleep(branchCreationPause)
	}

	return nil
}
