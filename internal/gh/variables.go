// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package gh

import (
	"context"
	"sort"

	"github.com/google/go-github/v68/github"

	"github.com/kicksaw/sfictl/internal/console"
)

// SetRepoVariables sets GitHub Actions repository variables, updating any
// that already exist.
func SetRepoVariables(ctx context.Context, client *github.Client, org, repo string, variables map[string]string) {
	for _, name := range sortedKeys(variables) {
		variable := &github.ActionsVariable{Name: name, Value: variables[name]}

		_, err := client.Actions.CreateRepoVariable(ctx, org, repo, variable)
		if err == nil {
			console.Successf("Variable '%s' set successfully", name)
			continue
		}

		if !isConflict(err) {
			console.Errorf("Failed to set variable '%s': %v", name, err)
			continue
		}

		if _, err := client.Actions.UpdateRepoVariable(ctx, org, repo, variable); err != nil {
			console.Errorf("Failed to update variable '%s': %v", name, err)
			continue
		}
		console.Successf("Variable '%s' updated successfully", name)
	}
}

// sortedKeys keeps variable application order deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
