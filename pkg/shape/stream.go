/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stream.go
Description: Token streams. A TokenStream is the merged form of every shape sharing one
compressed key: per position it keeps the class, the observed width range, the letter
cases seen, and the fixed text while every merged value agreed on it.
*/

package shape

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Token is one position of a token stream
type Token struct {
	Class    Class
	Ch       rune
	MinWidth int
	MaxWidth int

	fixed   string
	isFixed bool

	upper bool
	lower bool
	other bool
}

// Fixed returns the text shared by every merged value at this position
func (t Token) Fixed() (string, bool) {
	return t.fixed, t.isFixed
}

func tokenFromRun(run Run) Token {
	t := Token{
		Class:    run.Class,
		Ch:       run.Ch,
		MinWidth: run.Width,
		MaxWidth: run.Width,
		fixed:    run.Text,
		isFixed:  true,
	}
	if run.Class == Alpha {
		for _, r := range run.Text {
			switch {
			case r <= unicode.MaxASCII && unicode.IsUpper(r):
				t.upper = true
			case r <= unicode.MaxASCII && unicode.IsLower(r):
				t.lower = true
			default:
				t.other = true
			}
		}
	}
	return t
}

func (t *Token) merge(o Token) {
	t.MinWidth = min(t.MinWidth, o.MinWidth)
	t.MaxWidth = max(t.MaxWidth, o.MaxWidth)
	if !o.isFixed || t.fixed != o.fixed {
		t.isFixed = false
		t.fixed = ""
	}
	t.upper = t.upper || o.upper
	t.lower = t.lower || o.lower
	t.other = t.other || o.other
}

// class renders the character class of a class token
func (t Token) class() string {
	if t.Class == Digit {
		return `\d`
	}
	switch {
	case t.other:
		return `\p{L}`
	case t.upper && t.lower:
		return `[A-Za-z]`
	case t.upper:
		return `[A-Z]`
	default:
		return `[a-z]`
	}
}

// regExp renders the token; fixed class runs print as literals unless compressed
func (t Token) regExp(compress bool) string {
	if t.Class == Literal {
		return regexp.QuoteMeta(string(t.Ch)) + Quantify(t.MinWidth, t.MaxWidth)
	}
	if !compress && t.isFixed {
		return regexp.QuoteMeta(t.fixed)
	}
	return t.class() + Quantify(t.MinWidth, t.MaxWidth)
}

// TokenStream is the generalized form of all shapes sharing a compressed key
type TokenStream struct {
	key      string
	tokens   []Token
	count    int64
	catchAll bool
	minLen   int
	maxLen   int
}

// NewTokenStream creates a stream from a single shape observed count times
func NewTokenStream(s Shape, count int64) *TokenStream {
	ts := &TokenStream{
		key:      s.Key,
		count:    count,
		catchAll: s.TooLong,
		minLen:   s.Length,
		maxLen:   s.Length,
	}
	if !s.TooLong {
		ts.tokens = make([]Token, len(s.Runs))
		for i, run := range s.Runs {
			ts.tokens[i] = tokenFromRun(run)
		}
	}
	return ts
}

// Key returns the compressed key shared by every merged shape
func (ts *TokenStream) Key() string { return ts.key }

// Count returns the number of values merged into the stream
func (ts *TokenStream) Count() int64 { return ts.count }

// Tokens returns a copy of the stream's tokens
func (ts *TokenStream) Tokens() []Token {
	return append([]Token(nil), ts.tokens...)
}

// IsCatchAll reports whether the stream covers values too long to tokenize
func (ts *TokenStream) IsCatchAll() bool { return ts.catchAll }

// Merge folds other into ts. Both streams must share the same key.
func (ts *TokenStream) Merge(other *TokenStream) error {
	if ts.key != other.key || len(ts.tokens) != len(other.tokens) {
		return fmt.Errorf("cannot merge token streams with keys %q and %q", ts.key, other.key)
	}
	for i := range ts.tokens {
		ts.tokens[i].merge(other.tokens[i])
	}
	ts.count += other.count
	ts.minLen = min(ts.minLen, other.minLen)
	ts.maxLen = max(ts.maxLen, other.maxLen)
	return nil
}

// Clone returns an independent copy of the stream
func (ts *TokenStream) Clone() *TokenStream {
	c := *ts
	c.tokens = ts.Tokens()
	return &c
}

// RegExp renders the stream as a regular expression
func (ts *TokenStream) RegExp(compress bool) string {
	if ts.catchAll {
		return CatchAll
	}
	var b strings.Builder
	for _, t := range ts.tokens {
		b.WriteString(t.regExp(compress))
	}
	return b.String()
}
