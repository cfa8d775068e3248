// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package secrets reads Secrets Manager secret strings through an in-memory
// TTL cache and parses JSON-object secrets into string maps.
package secrets
