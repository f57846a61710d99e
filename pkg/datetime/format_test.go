/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: format_test.go
Description: Tests for compiling date formats into layouts and patterns.
*/

package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/columnscout/pkg/lattice"
)

// TestCompile tests layouts, patterns and base types of compiled formats
func TestCompile(t *testing.T) {
	tests := []struct {
		format  string
		layout  string
		pattern string
		base    lattice.BaseType
	}{
		{"yyyy-MM-dd", "2006-01-02", `\d{4}-\d{2}-\d{2}`, lattice.LocalDate},
		{"d/M/yy", "2/1/06", `\d{1,2}/\d{1,2}/\d{2}`, lattice.LocalDate},
		{"MMM d, yyyy", "Jan 2, 2006", `[A-Za-z]{3} \d{1,2}, \d{4}`, lattice.LocalDate},
		{"h:mm a", "3:04 PM", `\d{1,2}:\d{2} [AP]M`, lattice.LocalTime},
		{"HH:mm:ss.SSS", "15:04:05.000", `\d{2}:\d{2}:\d{2}\.\d{3}`, lattice.LocalTime},
		{"yyyy-MM-dd'T'HH:mm", "2006-01-02T15:04", `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}`, lattice.LocalDateTime},
		{"yyyy-MM-dd'T'HH:mm:ssX", "2006-01-02T15:04:05Z07:00", `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:Z|[-+]\d{2}:\d{2})`, lattice.OffsetDateTime},
		{"yyyy-MM-dd HH:mm:ss z", "2006-01-02 15:04:05 MST", `\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} [A-Z]{3,5}`, lattice.ZonedDateTime},
	}

	for _, tt := range tests {
		f, err := Compile(tt.format)
		require.NoError(t, err, tt.format)
		assert.Equal(t, tt.layout, f.Layout, tt.format)
		assert.Equal(t, tt.pattern, f.RegExp(), tt.format)
		assert.Equal(t, tt.base, f.Base, tt.format)
	}
}

// TestCompileErrors tests malformed formats
func TestCompileErrors(t *testing.T) {
	for _, format := range []string{
		"", "yyyy-MM-ddT", "yyyy'T", "yyyyy", "SSS", "HH:mm.SSSSSSSSSS", "xx", "qq",
	} {
		_, err := Compile(format)
		assert.Error(t, err, "%q", format)
	}
}

// TestCompileShared tests that formatters are cached
func TestCompileShared(t *testing.T) {
	a, err := Compile("dd.MM.yyyy")
	require.NoError(t, err)
	b, err := Compile("dd.MM.yyyy")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

// TestFormatterParse tests parsing values in a compiled format
func TestFormatterParse(t *testing.T) {
	f, err := Compile("yyyy-MM-dd")
	require.NoError(t, err)

	got, err := f.Parse("2024-06-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), got)

	// Shape matches but the calendar does not.
	_, err = f.Parse("2024-02-30")
	assert.Error(t, err)

	// Go layouts accept a single-digit day for "02"; the pattern does not.
	assert.False(t, f.Matches("2024-06-5"))
}
