// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/kicksaw/sfictl/internal/config"
)

// runWithFlags runs a throwaway command so the helpers under test see real
// parsed flag state.
func runWithFlags(t *testing.T, flags []cli.Flag, args []string, fn func(cmd *cli.Command)) {
	t.Helper()
	app := &cli.Command{
		Name:  "sfictl",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fn(cmd)
			return nil
		},
	}
	require.NoError(t, app.Run(context.Background(), args))
}

func useConfig(t *testing.T, yaml string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sfictl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("SFICTL_CFG_FILE", path)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
}

func newBranchesFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "branches", Value: "staging,development,production,secure"}
}

func TestBranchList_ExplicitFlagWins(t *testing.T) {
	useConfig(t, "branches: [main, qa]\n")

	runWithFlags(t, []cli.Flag{newBranchesFlag()},
		[]string{"sfictl", "--branches", "uat,hotfix"},
		func(cmd *cli.Command) {
			assert.Equal(t, []string{"uat", "hotfix"}, branchList(cmd))
		})
}

func TestBranchList_ConfigFallback(t *testing.T) {
	useConfig(t, "branches: [main, qa]\n")

	runWithFlags(t, []cli.Flag{newBranchesFlag()},
		[]string{"sfictl"},
		func(cmd *cli.Command) {
			assert.Equal(t, []string{"main", "qa"}, branchList(cmd))
		})
}

func TestBranchList_FlagDefault(t *testing.T) {
	useConfig(t, "org: Kicksaw-Consulting\n")

	runWithFlags(t, []cli.Flag{newBranchesFlag()},
		[]string{"sfictl"},
		func(cmd *cli.Command) {
			assert.Equal(t,
				[]string{"staging", "development", "production", "secure"},
				branchList(cmd))
		})
}

func TestProjectSlug_ConfigFallback(t *testing.T) {
	useConfig(t, "project-slug: acme-integration\n")

	flags := []cli.Flag{&cli.StringFlag{Name: "project-slug", Value: "salesforce-integration"}}

	runWithFlags(t, flags, []string{"sfictl"},
		func(cmd *cli.Command) {
			assert.Equal(t, "acme-integration", projectSlug(cmd))
		})

	runWithFlags(t, flags, []string{"sfictl", "--project-slug", "explicit"},
		func(cmd *cli.Command) {
			assert.Equal(t, "explicit", projectSlug(cmd))
		})
}
