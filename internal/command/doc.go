// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for sfictl. It wires flags,
// config-file value sources, and actions for the provisioning subcommands.
package command
