// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package salesforce is a minimal Salesforce REST client used to write
// Integration App records. It is not a general-purpose SDK; it covers the
// client-credentials token flow, sobject creation, and single-row queries.
package salesforce
