/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tokenizer.go
Description: Character-class tokenizer. Turns a single value into its shape: an ordered
run-length encoding of digit runs, letter runs and literal characters, plus a compressed
key used to bucket values that share the same structure.
*/

package shape

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Class is the character class of a run
type Class uint8

const (
	Digit Class = iota
	Alpha
	Literal
)

func (c Class) String() string {
	switch c {
	case Digit:
		return "digit"
	case Alpha:
		return "alpha"
	default:
		return "literal"
	}
}

// Key symbols for the class runs. Both are alphanumeric, so a literal run can never
// produce them.
const (
	digitSymbol = '9'
	alphaSymbol = 'X'
)

// CatchAllKey is the bucket for values too long to tokenize
const CatchAllKey = "\x00"

// CatchAll is the pattern matching anything
const CatchAll = ".+"

// Run is a maximal sequence of characters of one class
type Run struct {
	Class Class
	Ch    rune   // the repeated rune for literal runs
	Width int    // number of runes in the run
	Text  string // the run's text as seen in the value
}

// Shape is the character-class signature of one value
type Shape struct {
	Runs    []Run
	Key     string
	TooLong bool
	Length  int
}

func classOf(r rune) Class {
	switch {
	case r >= '0' && r <= '9':
		return Digit
	case unicode.IsLetter(r):
		return Alpha
	default:
		return Literal
	}
}

// Tokenize computes the shape of value. Values longer than maxLength runes are not
// tokenized and receive the catch-all shape; a maxLength of zero disables the cap.
func Tokenize(value string, maxLength int) Shape {
	length := utf8.RuneCountInString(value)
	if maxLength > 0 && length > maxLength {
		return Shape{Key: CatchAllKey, TooLong: true, Length: length}
	}

	s := Shape{Length: length}
	var key strings.Builder
	start := 0
	for start < len(value) {
		r, size := utf8.DecodeRuneInString(value[start:])
		class := classOf(r)
		end := start + size
		width := 1
		for end < len(value) {
			next, nsize := utf8.DecodeRuneInString(value[end:])
			if classOf(next) != class || (class == Literal && next != r) {
				break
			}
			end += nsize
			width++
		}

		run := Run{Class: class, Width: width, Text: value[start:end]}
		switch class {
		case Digit:
			key.WriteRune(digitSymbol)
		case Alpha:
			key.WriteRune(alphaSymbol)
		default:
			run.Ch = r
			key.WriteRune(r)
		}
		s.Runs = append(s.Runs, run)
		start = end
	}
	s.Key = key.String()
	return s
}

// Quantify renders a width range as a regex quantifier
func Quantify(min, max int) string {
	switch {
	case min == 1 && max == 1:
		return ""
	case min == max:
		return "{" + strconv.Itoa(min) + "}"
	case max <= 0:
		return "+"
	default:
		return "{" + strconv.Itoa(min) + "," + strconv.Itoa(max) + "}"
	}
}
