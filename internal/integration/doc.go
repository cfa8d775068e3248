// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package integration carries the handler-side primitives: the integration
// error type with its reporting metadata, and the execution record written
// to the Integration App in Salesforce after every run.
package integration
