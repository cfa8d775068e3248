// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package xray wraps tracing so handler code can open subsegments and attach
// annotations without caring whether tracing is enabled in this environment.
package xray
