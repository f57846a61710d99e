/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser_test.go
Description: Tests for single-value date format intuition.
*/

package datetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/columnscout/pkg/locale"
)

// TestDetermineFormat tests recognized date, time and date-time shapes
func TestDetermineFormat(t *testing.T) {
	p := NewParser(locale.MustGet("en-US"))

	tests := []struct {
		value  string
		format string
	}{
		{"2024-06-05", "yyyy-MM-dd"},
		{"2024-06-11", "yyyy-MM-dd"},
		{"2024/6/5", "yyyy/M/d"},
		{"25/12/2024", "dd/MM/yyyy"},
		{"12/25/24", "MM/dd/yy"},
		{"11.06.2024", "MM.dd.yyyy"},
		{"Jan 5, 2024", "MMM d, yyyy"},
		{"September 15, 2024", "MMMM dd, yyyy"},
		{"05-Jan-2024", "dd-MMM-yyyy"},
		{"5 Mar 24", "d MMM yy"},
		{"09:30", "HH:mm"},
		{"9:30 PM", "h:mm a"},
		{"13:45:07.123", "HH:mm:ss.SSS"},
		{"2024-06-05T09:30:00Z", "yyyy-MM-dd'T'HH:mm:ssX"},
		{"2024-06-05T09:30:00+01:00", "yyyy-MM-dd'T'HH:mm:ssxxx"},
		{"2024-06-05 09:30:00+0100", "yyyy-MM-dd HH:mm:ssxx"},
		{"2024-06-05 09:30:00 EST", "yyyy-MM-dd HH:mm:ss z"},
		{"2024-06-05 09:30", "yyyy-MM-dd HH:mm"},
	}

	for _, tt := range tests {
		format, ok := p.DetermineFormat(tt.value, Auto)
		require.True(t, ok, "%q", tt.value)
		assert.Equal(t, tt.format, format, "%q", tt.value)

		f, err := Compile(format)
		require.NoError(t, err, format)
		assert.True(t, f.Matches(tt.value), "%s should parse %q", format, tt.value)
	}
}

// TestDetermineFormatRejects tests values that are not dates
func TestDetermineFormatRejects(t *testing.T) {
	p := NewParser(locale.MustGet("en-US"))
	for _, v := range []string{
		"", "hello", "12", "1.5", "1-2-3", "13/13/2024", "2024-13-01",
		"32/01/2024", "Foo 5, 2024", "12:30+01:00", "25:00", "2024-06-05T25:00",
		"10:61", "13:00 PM", "-2024-01-01",
	} {
		_, ok := p.DetermineFormat(v, Auto)
		assert.False(t, ok, "%q", v)
	}
}

// TestDetermineFormatAmbiguous tests day/month resolution of ambiguous dates
func TestDetermineFormatAmbiguous(t *testing.T) {
	us := NewParser(locale.MustGet("en-US"))
	de := NewParser(locale.MustGet("de-DE"))

	format, ok := us.DetermineFormat("06/05/2024", Auto)
	require.True(t, ok)
	assert.Equal(t, "MM/dd/yyyy", format)

	format, ok = de.DetermineFormat("06/05/2024", Auto)
	require.True(t, ok)
	assert.Equal(t, "dd/MM/yyyy", format)

	format, ok = us.DetermineFormat("06/05/2024", DayFirst)
	require.True(t, ok)
	assert.Equal(t, "dd/MM/yyyy", format)

	format, ok = de.DetermineFormat("06/05/2024", MonthFirst)
	require.True(t, ok)
	assert.Equal(t, "MM/dd/yyyy", format)

	// Unambiguous values ignore the resolution mode.
	format, ok = us.DetermineFormat("25/05/2024", MonthFirst)
	require.True(t, ok)
	assert.Equal(t, "dd/MM/yyyy", format)

	// A parser without a locale reads month first.
	format, ok = NewParser(nil).DetermineFormat("06/05/2024", Auto)
	require.True(t, ok)
	assert.Equal(t, "MM/dd/yyyy", format)
}

// TestParseResolution tests resolution names
func TestParseResolution(t *testing.T) {
	for name, want := range map[string]Resolution{
		"":           Auto,
		"auto":       Auto,
		"DayFirst":   DayFirst,
		"day-first":  DayFirst,
		"monthfirst": MonthFirst,
	} {
		got, err := ParseResolution(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseResolution("yearfirst")
	assert.Error(t, err)
	assert.Equal(t, "monthfirst", MonthFirst.String())
}
