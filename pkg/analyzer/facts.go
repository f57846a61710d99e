/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: facts.go
Description: Accumulated column facts. Raw facts (counts, lengths, whitespace) are kept
for every non-blank value; value facts (cardinality, order statistics, moments) only for
values that matched the locked type.
*/

package analyzer

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/kleascm/columnscout/pkg/lattice"
	"github.com/kleascm/columnscout/pkg/stats"
)

// datePoint orders calendar values by instant and keeps the text they were read from
type datePoint struct {
	t   time.Time
	raw string
}

func compareDates(a, b datePoint) int {
	if c := a.t.Compare(b.t); c != 0 {
		return c
	}
	return strings.Compare(a.raw, b.raw)
}

func compareDecimals(a, b decimal.Decimal) int {
	return a.Cmp(b)
}

type facts struct {
	sampleCount      int64
	nullCount        int64
	blankCount       int64
	matchCount       int64
	outlierCount     int64
	leadingZeroCount int64
	semanticMatches  int64

	minLength int
	maxLength int
	minDigits int
	maxDigits int

	leadingWhiteSpace  bool
	trailingWhiteSpace bool
	multiLine          bool

	cardinality *stats.CappedCounter
	moments     stats.Moments
	numbers     *stats.TopBottomK[decimal.Decimal]
	texts       *stats.TopBottomK[string]
	dates       *stats.TopBottomK[datePoint]
}

func newFacts(cfg *Config) *facts {
	k := cfg.TopK
	if !cfg.CollectStatistics {
		// Min and max only.
		k = 1
	}
	return &facts{
		minLength:   -1,
		minDigits:   -1,
		cardinality: stats.NewCappedCounter(cfg.MaxCardinality),
		numbers:     stats.NewTopBottomK(k, compareDecimals),
		texts:       stats.NewTopBottomK(k, strings.Compare),
		dates:       stats.NewTopBottomK(k, compareDates),
	}
}

// observeRaw records the facts of a non-blank value before type validation
func (f *facts) observeRaw(raw, trimmed string) {
	if len(trimmed) < len(raw) {
		if !strings.HasPrefix(raw, trimmed) {
			f.leadingWhiteSpace = true
		}
		if !strings.HasSuffix(raw, trimmed) {
			f.trailingWhiteSpace = true
		}
	}
	if strings.ContainsAny(trimmed, "\r\n") {
		f.multiLine = true
	}
	n := utf8.RuneCountInString(trimmed)
	if f.minLength < 0 || n < f.minLength {
		f.minLength = n
	}
	if n > f.maxLength {
		f.maxLength = n
	}
}

// observeMatch records a value that matched the locked type
func (f *facts) observeMatch(value string, count int64) {
	f.matchCount += count
	f.cardinality.Add(value, count)
	f.texts.Observe(value)
}

func (f *facts) observeNumber(n lattice.Numeric, count int64, moments bool) {
	d, err := decimal.NewFromString(n.Normalized)
	if err != nil {
		return
	}
	f.numbers.Observe(d)
	if moments {
		f.moments.Add(d.InexactFloat64(), count)
	}
	if n.LeadingZero {
		f.leadingZeroCount += count
	}
	if f.minDigits < 0 || n.Digits < f.minDigits {
		f.minDigits = n.Digits
	}
	if n.Digits > f.maxDigits {
		f.maxDigits = n.Digits
	}
}

func (f *facts) observeDate(t time.Time, raw string) {
	f.dates.Observe(datePoint{t: t, raw: raw})
}

// nonBlank is the number of samples that were neither null nor blank
func (f *facts) nonBlank() int64 {
	return f.sampleCount - f.nullCount - f.blankCount
}

// validated is the number of non-blank samples checked against the locked type
func (f *facts) validated() int64 {
	return f.matchCount + f.outlierCount
}
