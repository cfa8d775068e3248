// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package gh

import (
	"testing"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProtectionConfig(t *testing.T) {
	configs := DefaultProtectionConfig()
	require.Len(t, configs, 4)

	byName := make(map[string]BranchProtection)
	for _, bp := range configs {
		byName[bp.Name] = bp
	}

	for _, name := range []string{"main", "staging", "secure"} {
		bp := byName[name]
		assert.True(t, bp.RequirePR, name)
		assert.False(t, bp.AllowBypass, name)
		assert.True(t, bp.RequireCodeOwnerReviews, name)
		assert.Equal(t, []string{"engineering"}, bp.BypassTeams, name)
	}

	// Development is the only branch admins may bypass.
	assert.True(t, byName["development"].AllowBypass)
	assert.True(t, byName["development"].RequirePR)
}

func TestParseProtectionConfig(t *testing.T) {
	configs, err := ParseProtectionConfig(`[
		{"name": "main", "require_pr": true, "allow_bypass": false,
		 "require_code_owner_reviews": true,
		 "teams_bypass_pull_request_allowances": ["ops"]}
	]`)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "main", configs[0].Name)
	assert.Equal(t, []string{"ops"}, configs[0].BypassTeams)
}

func TestParseProtectionConfig_InvalidJSON(t *testing.T) {
	_, err := ParseProtectionConfig(`[{]`)
	require.Error(t, err)
}

func TestProtectionRequest_Strict(t *testing.T) {
	req := protectionRequest(BranchProtection{
		Name:                    "main",
		RequirePR:               true,
		AllowBypass:             false,
		RequireCodeOwnerReviews: true,
		BypassTeams:             []string{"engineering"},
	})

	assert.True(t, req.EnforceAdmins)
	assert.True(t, *req.RequireLinearHistory)
	assert.False(t, *req.AllowForcePushes)
	assert.False(t, *req.AllowDeletions)

	require.NotNil(t, req.RequiredPullRequestReviews)
	assert.True(t, req.RequiredPullRequestReviews.DismissStaleReviews)
	assert.True(t, req.RequiredPullRequestReviews.RequireCodeOwnerReviews)
	require.NotNil(t, req.RequiredPullRequestReviews.BypassPullRequestAllowancesRequest)
	assert.Equal(t, []string{"engineering"}, req.RequiredPullRequestReviews.BypassPullRequestAllowancesRequest.Teams)
}

func TestProtectionRequest_BypassDisablesEnforceAdmins(t *testing.T) {
	req := protectionRequest(BranchProtection{Name: "development", RequirePR: true, AllowBypass: true})
	assert.False(t, req.EnforceAdmins)
}

func TestProtectionRequest_NoPRReviewsWhenNotRequired(t *testing.T) {
	req := protectionRequest(BranchProtection{Name: "scratch"})
	assert.Nil(t, req.RequiredPullRequestReviews)
}

func TestDiffProtection_Modified(t *testing.T) {
	current := &github.Protection{
		EnforceAdmins: &github.AdminEnforcement{Enabled: false},
	}
	desired := protectionRequest(BranchProtection{Name: "main", RequirePR: true})

	diff, err := diffProtection(current, desired)
	require.NoError(t, err)
	assert.NotEmpty(t, diff)
}
