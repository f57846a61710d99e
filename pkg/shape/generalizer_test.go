/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: generalizer_test.go
Description: Tests for token stream merging and pattern generalization.
*/

package shape

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func track(g *Generalizer, values ...string) {
	for _, v := range values {
		g.Track(v, 1)
	}
}

// assertCovers checks that pattern matches every value in full
func assertCovers(t *testing.T, pattern string, values ...string) {
	t.Helper()
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	require.NoError(t, err, "pattern %q", pattern)
	for _, v := range values {
		assert.True(t, re.MatchString(v), "%q should match %q", pattern, v)
	}
}

// TestGeneralizerFixedWidthDigits tests that same-width digits merge to one class
func TestGeneralizerFixedWidthDigits(t *testing.T) {
	g := NewGeneralizer(0, 0)
	values := []string{"456789", "456089", "456700", "116789"}
	track(g, values...)

	assert.Equal(t, 1, g.Size())
	assert.Equal(t, `\d{6}`, g.RegExp(false))
	assert.Equal(t, `\d{6}`, g.RegExp(true))
	assertCovers(t, g.RegExp(false), values...)
}

// TestGeneralizerKeepsFixedLiterals tests that runs every value agrees on stay literal
func TestGeneralizerKeepsFixedLiterals(t *testing.T) {
	g := NewGeneralizer(0, 0)
	values := []string{"V12.3", "V45.6", "V99.1"}
	track(g, values...)

	assert.Equal(t, `V\d{2}\.\d`, g.RegExp(false))
	assert.Equal(t, `[A-Z]\d{2}\.\d`, g.RegExp(true))
	assertCovers(t, g.RegExp(false), values...)
}

// TestGeneralizerVariableWidth tests width ranges within one stream
func TestGeneralizerVariableWidth(t *testing.T) {
	g := NewGeneralizer(0, 0)
	values := []string{"ab-1", "ABC-22", "x-333"}
	track(g, values...)

	assert.Equal(t, `[A-Za-z]{1,3}-\d{1,3}`, g.RegExp(true))
	assertCovers(t, g.RegExp(true), values...)
	assertCovers(t, g.RegExp(false), values...)
}

// TestGeneralizerAlternation tests distinct shapes joined in lexical order
func TestGeneralizerAlternation(t *testing.T) {
	g := NewGeneralizer(0, 0)
	values := []string{"12", "34", "ab", "cd"}
	track(g, values...)

	assert.Equal(t, 2, g.Size())
	assert.Equal(t, `([a-z]{2}|\d{2})`, g.RegExp(false))
	assertCovers(t, g.RegExp(false), values...)

	details := g.Details(false)
	assert.Equal(t, int64(2), details[`\d{2}`])
	assert.Equal(t, int64(2), details[`[a-z]{2}`])
}

// TestGeneralizerOverflow tests that exceeding the cap degrades to catch-all for good
func TestGeneralizerOverflow(t *testing.T) {
	g := NewGeneralizer(3, 0)
	for _, v := range []string{"a", "1", "a1"} {
		g.Track(v, 1)
	}
	assert.False(t, g.Overflowed())
	assert.Equal(t, 3, g.Size())

	g.Track("1a", 1)
	g.Track("a-1", 2)
	assert.True(t, g.Overflowed())
	assert.Equal(t, 3, g.Size())
	assert.Equal(t, int64(3), g.Discarded())
	assert.Equal(t, CatchAll, g.RegExp(false))

	// Further known shapes do not recover a finer pattern.
	g.Track("b", 10)
	assert.Equal(t, CatchAll, g.RegExp(true))
	assert.Equal(t, 3, g.Size())
}

// TestGeneralizerTooLong tests that an untokenized value forces the catch-all pattern
func TestGeneralizerTooLong(t *testing.T) {
	g := NewGeneralizer(0, 4)
	track(g, "1234", "123456789")
	assert.False(t, g.Overflowed())
	assert.Equal(t, CatchAll, g.RegExp(false))
}

// TestGeneralizerMerge tests combining two generalizers
func TestGeneralizerMerge(t *testing.T) {
	a := NewGeneralizer(0, 0)
	b := NewGeneralizer(0, 0)
	track(a, "12", "34")
	track(b, "5678")

	a.Merge(b)
	require.Len(t, a.Streams(), 1)
	assert.Equal(t, int64(3), a.Streams()[0].Count())
	assert.Equal(t, `\d{2,4}`, a.RegExp(false))

	// The source is untouched.
	assert.Equal(t, `5678`, b.RegExp(false))
}

// TestTokenStreamMergeMismatch tests that differing keys are refused
func TestTokenStreamMergeMismatch(t *testing.T) {
	a := NewTokenStream(Tokenize("12", 0), 1)
	b := NewTokenStream(Tokenize("ab", 0), 1)
	assert.Error(t, a.Merge(b))
	assert.Equal(t, int64(1), a.Count())
}
