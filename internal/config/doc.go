// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for the project-level
// YAML configuration (S3-to-SQS connectors, admin CLI defaults). The file is
// resolved from SFICTL_CFG_FILE, then ./sfictl.yaml, then the user
// configuration directory via os.UserConfigDir.
//
// Scalar settings that vary per environment (account, region, resource names)
// live in package settings, not here.
package config
