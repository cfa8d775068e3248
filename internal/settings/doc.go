// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package settings resolves the integration's scalar configuration from the
// environment and .env files, deriving AWS resource names from the project
// slug and resource suffix.
package settings
