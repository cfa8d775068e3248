// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/kicksaw/sfictl/internal/console"
)

// BranchProtection describes the protection applied to a single branch.
type BranchProtection struct {
	Name                    string   `json:"name"`
	RequirePR               bool     `json:"require_pr"`
	AllowBypass             bool     `json:"allow_bypass"`
	RequireCodeOwnerReviews bool     `json:"require_code_owner_reviews"`
	BypassTeams             []string `json:"teams_bypass_pull_request_allowances"`
}

// DefaultProtectionConfig is the protection applied when no override is
// given: main, staging, and secure are strict, development lets admins
// bypass.
func DefaultProtectionConfig() []BranchProtection {
	strict := func(name string) BranchProtection {
		return BranchProtection{
			Name:                    name,
			RequirePR:               true,
			AllowBypass:             false,
			RequireCodeOwnerReviews: true,
			BypassTeams:             []string{"engineering"},
		}
	}

	development := strict("development")
	development.AllowBypass = true

	return []BranchProtection{
		strict("main"),
		strict("staging"),
		strict("secure"),
		development,
	}
}

// ParseProtectionConfig decodes a JSON branch protection override.
func ParseProtectionConfig(raw string) ([]BranchProtection, error) {
	var configs []BranchProtection
	if err := json.Unmarshal([]byte(raw), &configs); err != nil {
		return nil, fmt.Errorf("invalid JSON in protection config: %w", err)
	}
	return configs, nil
}

// protectionRequest maps a BranchProtection to the GitHub API request body.
func protectionRequest(bp BranchProtection) *github.ProtectionRequest {
	req := &github.ProtectionRequest{
		EnforceAdmins:        !bp.AllowBypass,
		RequireLinearHistory: github.Ptr(true),
		AllowForcePushes:     github.Ptr(false),
		AllowDeletions:       github.Ptr(false),
	}

	if bp.RequirePR {
		reviews := &github.PullRequestReviewsEnforcementRequest{
			DismissStaleReviews:     true,
			RequireCodeOwnerReviews: bp.RequireCodeOwnerReviews,
		}
		if len(bp.BypassTeams) > 0 {
			reviews.BypassPullRequestAllowancesRequest = &github.BypassPullRequestAllowancesRequest{
				Users: []string{},
				Teams: bp.BypassTeams,
				Apps:  []string{},
			}
		}
		req.RequiredPullRequestReviews = reviews
	}

	return req
}

// diffProtection renders a JSON diff between the branch's current protection
// and the desired request, or "" when they serialize identically.
func diffProtection(current *github.Protection, desired *github.ProtectionRequest) (string, error) {
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return "", fmt.Errorf("failed to marshal current protection: %w", err)
	}
	desiredJSON, err := json.Marshal(desired)
	if err != nil {
		return "", fmt.Errorf("failed to marshal desired protection: %w", err)
	}

	delta, err := gojsondiff.New().Compare(currentJSON, desiredJSON)
	if err != nil {
		return "", fmt.Errorf("failed to compare protection documents: %w", err)
	}
	if !delta.Modified() {
		return "", nil
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(currentJSON, &doc); err != nil {
		return "", fmt.Errorf("failed to unmarshal current protection: %w", err)
	}

	f := formatter.NewAsciiFormatter(doc, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       true,
	})
	return f.Format(delta)
}

// SetupBranchProtection applies the given protection configs. Branches that
// do not exist are skipped; when a branch is already protected, the diff
// between current and desired protection is shown before applying.
func SetupBranchProtection(ctx context.Context, client *github.Client, org, repo string, configs []BranchProtection) error {
	if configs == nil {
		configs = DefaultProtectionConfig()
	}

	console.Panel("Branch Protection", "Setting up branch protection rules...")

	for _, bp := range configs {
		if _, _, err := client.Repositories.GetBranch(ctx, org, repo, bp.Name, 0); err != nil {
			console.Errorf("Branch '%s' not found, skipping protection setup", console.Highlight(bp.Name))
			continue
		}

		console.Infof("Setting up protection for branch '%s'...", console.Highlight(bp.Name))
		req := protectionRequest(bp)

		if current, _, err := client.Repositories.GetBranchProtection(ctx, org, repo, bp.Name); err == nil {
			diff, diffErr := diffProtection(current, req)
			if diffErr != nil {
				console.Warnf("Could not diff existing protection for '%s': %v", bp.Name, diffErr)
			} else if diff != "" {
				console.Infof("Branch '%s' is already protected, applying changes:", console.Highlight(bp.Name))
				fmt.Fprint(console.Out, diff)
			}
		}

		if _, _, err := client.Repositories.UpdateBranchProtection(ctx, org, repo, bp.Name, req); err != nil {
			console.Errorf("Error setting up protection for branch '%s': %v", console.Highlight(bp.Name), err)
			continue
		}

		if bp.RequirePR {
			console.Successf("Branch '%s' protected: Pull request required before merging", console.Highlight(bp.Name))
			if bp.RequireCodeOwnerReviews {
				console.Successf("Branch '%s' requires code owner reviews", console.Highlight(bp.Name))
			}
			if len(bp.BypassTeams) > 0 {
				console.Infof("✓ Branch '%s' allows bypass for teams: %s", console.Highlight(bp.Name), strings.Join(bp.BypassTeams, ", "))
			}
		}
		if bp.AllowBypass {
			console.Warnf("✓ Branch '%s' allows admins to bypass restrictions", console.Highlight(bp.Name))
		} else {
			console.Successf("Branch '%s' enforces restrictions for all users including admins", console.Highlight(bp.Name))
		}
	}

	return nil
}
