// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package gh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAccessConfig(t *testing.T) {
	entries := DefaultAccessConfig()
	require.Len(t, entries, 4)

	byName := make(map[string]AccessEntry)
	for _, e := range entries {
		byName[e.Name] = e
	}

	assert.Equal(t, AccessEntry{Name: "engineering", Type: "team", Permission: "maintain"}, byName["engineering"])
	assert.Equal(t, AccessEntry{Name: "kicksaw", Type: "team", Permission: "read"}, byName["kicksaw"])
	assert.Equal(t, "admin", byName["gigic31"].Permission)
	assert.Equal(t, "admin", byName["tsabat"].Permission)
}

func TestParseAccessConfig(t *testing.T) {
	entries, err := ParseAccessConfig(`[{"name": "ops", "type": "team", "permission": "push"}]`)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, AccessEntry{Name: "ops", Type: "team", Permission: "push"}, entries[0])
}

func TestParseAccessConfig_InvalidJSON(t *testing.T) {
	_, err := ParseAccessConfig(`{"name": "ops"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestNormalizePermission(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"read", "pull"},
		{"write", "push"},
		{"pull", "pull"},
		{"push", "push"},
		{"triage", "triage"},
		{"maintain", "maintain"},
		{"admin", "admin"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizePermission(tt.in))
	}
}
