/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logic_test.go
Description: Tests for the code-validated built-in plugins.
*/

package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLogicValidators tests each validator on accepted and rejected values
func TestLogicValidators(t *testing.T) {
	tests := []struct {
		name  string
		valid func(string) bool
		good  []string
		bad   []string
	}{
		{"email", validEmail,
			[]string{"a@example.com", "first.last+tag@sub.example.co.uk"},
			[]string{"a@localhost", "Name <a@example.com>", "@example.com", "a.example.com"}},
		{"guid", validGUID,
			[]string{"123e4567-e89b-12d3-a456-426614174000", "00000000-0000-0000-0000-000000000000"},
			[]string{"123e4567e89b12d3a456426614174000", "{123e4567-e89b-12d3-a456-426614174000}", "xyz"}},
		{"ipv4", validIPv4,
			[]string{"192.168.0.1", "8.8.8.8"},
			[]string{"256.1.1.1", "::1", "1.2.3"}},
		{"url", validURL,
			[]string{"https://example.com/a?b=c", "ftp://files.example.org"},
			[]string{"mailto:a@example.com", "example.com", "http://"}},
		{"ssn", validSSN,
			[]string{"123-45-6789", "078-05-1121"},
			[]string{"000-12-3456", "666-12-3456", "912-34-5678", "123-00-4567", "123-45-0000", "123456789"}},
		{"card", validCard,
			[]string{"4111111111111111", "4111 1111 1111 1111", "5500-0000-0000-0004"},
			[]string{"4111111111111112", "411111111111", " 4111111111111111", "4111  1111"}},
	}

	for _, tt := range tests {
		for _, v := range tt.good {
			assert.True(t, tt.valid(v), "%s should accept %q", tt.name, v)
		}
		for _, v := range tt.bad {
			assert.False(t, tt.valid(v), "%s should reject %q", tt.name, v)
		}
	}
}
