// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"reflect"
	"testing"
)

func TestHandleNakedCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no command appends help",
			args:     []string{"sfictl"},
			expected: []string{"sfictl", "--help"},
		},
		{
			name:     "empty args append help",
			args:     []string{},
			expected: []string{"--help"},
		},
		{
			name:     "command present is untouched",
			args:     []string{"sfictl", "teams-list"},
			expected: []string{"sfictl", "teams-list"},
		},
		{
			name:     "command with flags is untouched",
			args:     []string{"sfictl", "repo-create", "--repo-name", "x"},
			expected: []string{"sfictl", "repo-create", "--repo-name", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := handleNakedCommand(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("handleNakedCommand(%v) = %v, want %v", tt.args, got, tt.expected)
			}
		})
	}
}

func TestHandleVersion(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{name: "long flag", args: []string{"sfictl", "--version"}, expected: true},
		{name: "short flag", args: []string{"sfictl", "-v"}, expected: true},
		{name: "flag after command", args: []string{"sfictl", "teams-list", "--version"}, expected: true},
		{name: "no flag", args: []string{"sfictl", "teams-list"}, expected: false},
		{name: "empty", args: []string{}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handleVersion(tt.args); got != tt.expected {
				t.Errorf("handleVersion(%v) = %v, want %v", tt.args, got, tt.expected)
			}
		})
	}
}
