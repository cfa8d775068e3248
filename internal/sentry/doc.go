// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package sentry configures error tracking: DSN resolution, environment
// tagging, and event grouping for integration and outbound HTTP errors.
package sentry
