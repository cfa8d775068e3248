// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package gh wraps the GitHub API operations behind the administrative
// commands: repository and branch creation, access grants, branch
// protection, and Actions repository variables.
package gh
