// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package gh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBranchList(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []string
	}{
		{
			name:     "defaults",
			in:       "staging,development,production,secure",
			expected: []string{"staging", "development", "production", "secure"},
		},
		{
			name:     "whitespace trimmed",
			in:       " qa , dev ,prod",
			expected: []string{"qa", "dev", "prod"},
		},
		{
			name:     "empty entries dropped",
			in:       "a,,b,",
			expected: []string{"a", "b"},
		},
		{
			name:     "empty input",
			in:       "",
			expected: nil,
		},
		{
			name:     "only separators",
			in:       ", ,",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseBranchList(tt.in))
		})
	}
}
