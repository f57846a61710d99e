/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: lattice_test.go
Description: Tests for the numeric lattice: promotion laws, negation, grouping and
pattern rendering across locales.
*/

package lattice

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/columnscout/pkg/locale"
)

func forTag(t *testing.T, tag string) *Lattice {
	t.Helper()
	ctx, err := locale.Get(tag)
	require.NoError(t, err)
	return ForLocale(ctx)
}

// TestPromotionLaws tests that promotion is idempotent and commutative
func TestPromotionLaws(t *testing.T) {
	for _, tag := range []string{"en-US", "de-DE", "sv-SE"} {
		l := forTag(t, tag)
		for _, a := range l.IDs() {
			id, ok := l.Promote(a, a)
			require.True(t, ok, "%s: %s with itself", tag, a)
			assert.Equal(t, a, id)

			for _, b := range l.IDs() {
				ab, okAB := l.Promote(a, b)
				ba, okBA := l.Promote(b, a)
				assert.Equal(t, okAB, okBA, "%s: %s/%s", tag, a, b)
				assert.Equal(t, ab, ba, "%s: %s/%s", tag, a, b)
			}
		}
	}
}

// TestPromotionWidens tests that a promotion result covers both inputs
func TestPromotionWidens(t *testing.T) {
	l := forTag(t, "en-US")
	for _, a := range l.IDs() {
		for _, b := range l.IDs() {
			ab, ok := l.Promote(a, b)
			if !ok {
				continue
			}
			again, ok := l.Promote(ab, a)
			require.True(t, ok)
			assert.Equal(t, ab, again, "%s absorbs %s", ab, a)
		}
	}
}

// TestPromotionTable tests specific transitions
func TestPromotionTable(t *testing.T) {
	l := forTag(t, "en-US")
	tests := []struct {
		left, right string
		want        string
		ok          bool
	}{
		{"LONG", "DOUBLE", "DOUBLE", true},
		{"LONG", "SIGNED_LONG", "SIGNED_LONG", true},
		{"SIGNED_LONG", "DOUBLE", "SIGNED_DOUBLE", true},
		{"LONG_GROUPING", "DOUBLE_EXPONENT", "DOUBLE_GROUPING_EXPONENT", true},
		{"SIGNED_LONG", "SIGNED_LONG_TRAILING", "", false},
	}
	for _, tt := range tests {
		got, ok := l.Promote(tt.left, tt.right)
		assert.Equal(t, tt.ok, ok, "%s + %s", tt.left, tt.right)
		assert.Equal(t, tt.want, got, "%s + %s", tt.left, tt.right)
	}
}

// TestNonLocalizedVariants tests the '.'-decimal variants of comma-decimal locales
func TestNonLocalizedVariants(t *testing.T) {
	us := forTag(t, "en-US")
	_, ok := us.Lookup("DOUBLE_NL")
	assert.False(t, ok)

	de := forTag(t, "de-DE")
	_, ok = de.Lookup("DOUBLE_NL")
	assert.True(t, ok)

	id, ok := de.Promote("LONG", "DOUBLE_NL")
	require.True(t, ok)
	assert.Equal(t, "DOUBLE_NL", id)

	_, ok = de.Promote("DOUBLE", "DOUBLE_NL")
	assert.False(t, ok)

	assert.Equal(t, '.', de.DecimalSeparator("DOUBLE_NL"))
	assert.Equal(t, ',', de.DecimalSeparator("DOUBLE"))
}

// TestNegateAndGroup tests the negation and grouping tables
func TestNegateAndGroup(t *testing.T) {
	l := forTag(t, "en-US")

	id, ok := l.Negate("LONG", false)
	require.True(t, ok)
	assert.Equal(t, "SIGNED_LONG", id)

	id, ok = l.Negate("DOUBLE", true)
	require.True(t, ok)
	assert.Equal(t, "SIGNED_DOUBLE_TRAILING", id)

	_, ok = l.Negate("SIGNED_LONG", true)
	assert.False(t, ok)

	id, ok = l.Group("SIGNED_LONG")
	require.True(t, ok)
	assert.Equal(t, "SIGNED_LONG_GROUPING", id)
}

// TestRegExpByLocale tests that patterns follow the locale's separators
func TestRegExpByLocale(t *testing.T) {
	tests := []struct {
		tag   string
		id    string
		min   int
		max   int
		want  string
		match []string
	}{
		{"en-US", "LONG", 6, 6, `\d{6}`, []string{"456789"}},
		{"en-US", "LONG", 0, 0, `\d+`, []string{"1", "12345"}},
		{"en-US", "SIGNED_DOUBLE", 1, 2, `-?(?:\d+\.?\d*|\.\d+)`, []string{"-99.23", "43.8", "10.", "-.5"}},
		{"de-DE", "SIGNED_DOUBLE", 1, 2, `-?(?:\d+,?\d*|,\d+)`, []string{"-99,23", "43,8", "7,"}},
		{"en-US", "LONG_GROUPING", 1, 7, `(?:\d{1,3}(?:,\d{3})+|\d+)`, []string{"1,234,567", "12", "5678"}},
		{"en-US", "DOUBLE_GROUPING", 1, 7, `(?:[\d,]+\.?\d*|\.\d+)`, []string{"1,234.5", "10.", "3"}},
		{"en-US", "SIGNED_LONG_TRAILING", 1, 3, `\d{1,3}-?`, []string{"12-", "7"}},
		{"sv-SE", "SIGNED_LONG", 1, 3, `[-\x{2212}]?\d{1,3}`, []string{"−12", "-12", "3"}},
		{"en-US", "DOUBLE_EXPONENT", 1, 1, `(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`, []string{"1.5e10", "2E-3", "1.e5"}},
	}

	for _, tt := range tests {
		l := forTag(t, tt.tag)
		got := l.RegExp(tt.id, tt.min, tt.max)
		assert.Equal(t, tt.want, got, "%s %s", tt.tag, tt.id)

		re := regexp.MustCompile("^(?:" + got + ")$")
		for _, v := range tt.match {
			assert.True(t, re.MatchString(v), "%s should match %q", got, v)
		}
	}
}

// TestRegExpUnknownID tests the fallback for an unknown variant
func TestRegExpUnknownID(t *testing.T) {
	l := forTag(t, "en-US")
	assert.Equal(t, ".+", l.RegExp("NOPE", 1, 1))
}

// TestForLocaleShared tests that lattices are built once per locale
func TestForLocaleShared(t *testing.T) {
	a := forTag(t, "fr-FR")
	b := forTag(t, "fr-FR")
	assert.Same(t, a, b)
}
