// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package console provides styled terminal output for the administrative
// commands: status lines with ✓/✗ marks, bordered panels, and tables.
package console
