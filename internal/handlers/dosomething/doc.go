// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package dosomething implements the do-something Lambda handler: the
// template for integration handlers that report their outcome to the Kicksaw
// Integration App.
package dosomething
