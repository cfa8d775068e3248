// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package constructs holds the reusable CDK constructs shared by the
// integration's stacks: queues with dead letter queues and operator-filled
// secrets.
package constructs
