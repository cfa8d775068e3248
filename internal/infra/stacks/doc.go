// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package stacks defines the integration's CloudFormation stacks: the
// cross-environment SharedStack and the per-environment MainStack.
package stacks
