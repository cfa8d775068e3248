// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws contains AWS SDK v2 config loading and the shared service
// client bundle used by the Lambda handler and the admin CLI.
package aws
