// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

const defaultOrg = "Kicksaw-Consulting"

// NewOrgFlag constructs the "org" flag, optionally namespaced to a command
// and config file. params[1] is the config file.
func NewOrgFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "org",
		Usage: "GitHub organization name",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("GITHUB_ORG"),
		),
		Value: defaultOrg,
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewTokenFlag constructs the "token" flag. An empty value triggers an
// interactive prompt at client construction time.
func NewTokenFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "token",
		Usage: "GitHub personal access token",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("GITHUB_TOKEN"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewRepoNameFlag constructs the required "repo-name" flag.
func NewRepoNameFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "repo-name",
		Usage:    "repository name",
		Required: true,
	}
}

// NewAWSRegionFlag constructs the "aws-region" flag used for repository
// variables. params[1] is the config file.
func NewAWSRegionFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "aws-region",
		Usage: "AWS region for repository variables",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWS_REGION"),
		),
		Required: true,
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
		flag.Required = false
	}

	return
}

// NewAWSAccountIDFlag constructs the "aws-account-id" flag used for
// repository variables. params[1] is the config file.
func NewAWSAccountIDFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "aws-account-id",
		Usage: "AWS account ID for repository variables",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWS_ACCOUNT_ID"),
		),
		Required: true,
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
		flag.Required = false
	}

	return
}

var accessConfigFlag *cli.StringFlag = &cli.StringFlag{
	Name:  "access-config",
	Usage: "JSON string with access configuration (overrides default)",
}

var protectionConfigFlag *cli.StringFlag = &cli.StringFlag{
	Name:  "protection-config",
	Usage: "JSON string with branch protection configuration (overrides default)",
}

var setupAccessFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:  "setup-access",
	Usage: "set up repository access rights",
	Value: true,
}

var setupProtectionFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:  "setup-protection",
	Usage: "set up branch protection rules",
	Value: true,
}

var descriptionFlag *cli.StringFlag = &cli.StringFlag{
	Name:  "description",
	Usage: "repository description",
	Value: "",
}

var sourceBranchFlag *cli.StringFlag = &cli.StringFlag{
	Name:  "source-branch",
	Usage: "source branch to create new branches from",
	Value: "main",
}

var branchesFlag *cli.StringFlag = &cli.StringFlag{
	Name:  "branches",
	Usage: "comma-separated list of branches to create",
	Value: "staging,development,production,secure",
}

var confirmFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:  "confirm",
	Usage: "require confirmation before deletion",
	Value: true,
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config
// file value sources to a flag.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
