// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/urfave/cli/v3"

	"github.com/kicksaw/sfictl/internal/config"
	"github.com/kicksaw/sfictl/internal/gh"
	"github.com/kicksaw/sfictl/internal/meta"
)

// GetMeta safely extracts the Meta from cmd.Metadata.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// newGitHubClient resolves the token from the --token flag (prompting when
// absent) and builds an authenticated client.
func newGitHubClient(cmd *cli.Command) (*github.Client, error) {
	token, err := gh.ResolveToken(cmd.String("token"))
	if err != nil {
		return nil, err
	}
	return gh.NewClient(token), nil
}

// accessOverride parses --access-config when present, otherwise returns nil
// so the default config applies.
func accessOverride(cmd *cli.Command) ([]gh.AccessEntry, error) {
	raw := cmd.String("access-config")
	if raw == "" {
		return nil, nil
	}
	return gh.ParseAccessConfig(raw)
}

// protectionOverride parses --protection-config when present, otherwise
// returns nil so the default config applies.
func protectionOverride(cmd *cli.Command) ([]gh.BranchProtection, error) {
	raw := cmd.String("protection-config")
	if raw == "" {
		return nil, nil
	}
	return gh.ParseProtectionConfig(raw)
}

// branchList resolves the branches to create: an explicit --branches value
// wins, then a "branches" list in the config file, then the flag default.
func branchList(cmd *cli.Command) []string {
	if !cmd.IsSet("branches") {
		if branches, err := config.GetStringSlice("branches"); err == nil && len(branches) > 0 {
			return gh.ParseBranchList(strings.Join(branches, ","))
		}
	}
	return gh.ParseBranchList(cmd.String("branches"))
}

// projectSlug resolves --project-slug with a "project-slug" config-file
// fallback.
func projectSlug(cmd *cli.Command) string {
	if !cmd.IsSet("project-slug") {
		if slug, err := config.GetString("project-slug"); err == nil && slug != "" {
			return slug
		}
	}
	return cmd.String("project-slug")
}

// repoVariables builds the Actions variables set on every provisioned
// repository.
func repoVariables(cmd *cli.Command) map[string]string {
	return map[string]string{
		"AWS_REGION":     cmd.String("aws-region"),
		"AWS_ACCOUNT_ID": cmd.String("aws-account-id"),
	}
}
