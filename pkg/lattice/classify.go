/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: classify.go
Description: Single-value classification against a locale lattice. Scans one trimmed
value into its numeric variant (sign placement, grouping, exponent, decimal mark) or its
boolean vocabulary, and renders boolean patterns.
*/

package lattice

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// maxLongDigits is the widest integer that always fits in an int64
const maxLongDigits = 18

// Numeric is the classification of one numeric value
type Numeric struct {
	ID          string
	Normalized  string // ASCII form with '.' decimals, parseable by decimal.NewFromString
	Digits      int    // integer digits, excluding sign and grouping
	LeadingZero bool
	Negative    bool
}

// ClassifyNumeric scans a trimmed value. It tries the locale's own conventions first and
// falls back to the non-localized variant when the locale has one.
func (l *Lattice) ClassifyNumeric(value string) (Numeric, bool) {
	if value == "" {
		return Numeric{}, false
	}
	if n, ok := l.scan(value, l.Locale.DecimalSeparator, l.Locale.GroupingSeparator, false); ok {
		return n, true
	}
	if l.has(numericID(Double, NonLocalized)) {
		return l.scan(value, '.', 0, true)
	}
	return Numeric{}, false
}

func (l *Lattice) scan(value string, decimal, grouping rune, nonLocalized bool) (Numeric, bool) {
	runes := []rune(value)
	i, end := 0, len(runes)
	var mod Modifier
	negative := false

	if l.Locale.IsMinus(runes[0]) {
		mod |= Signed
		negative = true
		i++
	} else if end > 1 && l.Locale.IsMinus(runes[end-1]) {
		mod |= Signed | SignedTrailing
		negative = true
		end--
	}

	var intPart, fracPart, expPart strings.Builder
	intDigits, fracDigits, sinceGroup, groups := 0, 0, 0, 0
	seenDecimal := false

	for ; i < end; i++ {
		r := runes[i]
		switch {
		case r >= '0' && r <= '9':
			if seenDecimal {
				fracPart.WriteRune(r)
				fracDigits++
			} else {
				intPart.WriteRune(r)
				intDigits++
				sinceGroup++
			}
		case grouping != 0 && r == grouping && !seenDecimal:
			if sinceGroup == 0 || (groups == 0 && sinceGroup > 3) || (groups > 0 && sinceGroup != 3) {
				return Numeric{}, false
			}
			groups++
			sinceGroup = 0
			mod |= Grouping
		case r == decimal && !seenDecimal:
			seenDecimal = true
		case (r == 'e' || r == 'E') && intDigits+fracDigits > 0:
			exp, ok := scanExponent(runes[i+1 : end])
			if !ok {
				return Numeric{}, false
			}
			expPart.WriteString(exp)
			mod |= Exponent
			i = end
		default:
			return Numeric{}, false
		}
	}

	if intDigits+fracDigits == 0 {
		return Numeric{}, false
	}
	if groups > 0 && sinceGroup != 3 {
		return Numeric{}, false
	}
	if nonLocalized {
		if !seenDecimal && mod&Exponent == 0 {
			// Integers are never non-localized, they classify as Long above.
			return Numeric{}, false
		}
		mod |= NonLocalized
	}

	base := Long
	if seenDecimal || mod&Exponent != 0 || intDigits > maxLongDigits {
		base = Double
	}
	id, ok := l.variant(base, mod)
	if !ok {
		return Numeric{}, false
	}

	digits := intPart.String()
	var norm strings.Builder
	if negative {
		norm.WriteByte('-')
	}
	if digits == "" {
		norm.WriteByte('0')
	} else {
		norm.WriteString(digits)
	}
	if fracDigits > 0 {
		norm.WriteByte('.')
		norm.WriteString(fracPart.String())
	}
	if expPart.Len() > 0 {
		norm.WriteByte('e')
		norm.WriteString(expPart.String())
	}

	return Numeric{
		ID:          id,
		Normalized:  norm.String(),
		Digits:      intDigits,
		LeadingZero: intDigits > 1 && digits[0] == '0',
		Negative:    negative,
	}, true
}

// variant resolves the scanned modifiers to a lattice ID. The plain variant is widened
// through the grouping and negation tables; a missing entry means the combination is
// not legal in this locale.
func (l *Lattice) variant(base BaseType, mod Modifier) (string, bool) {
	id := numericID(base, mod&^(signMask|Grouping))
	if !l.has(id) {
		return "", false
	}
	ok := true
	if mod&Grouping != 0 {
		if id, ok = l.Group(id); !ok {
			return "", false
		}
	}
	if mod&Signed != 0 {
		id, ok = l.Negate(id, mod&SignedTrailing != 0)
	}
	return id, ok
}

func scanExponent(runes []rune) (string, bool) {
	if len(runes) == 0 {
		return "", false
	}
	var b strings.Builder
	i := 0
	if runes[0] == '+' || runes[0] == '-' {
		b.WriteRune(runes[0])
		i++
	}
	if i == len(runes) {
		return "", false
	}
	for ; i < len(runes); i++ {
		if runes[i] < '0' || runes[i] > '9' {
			return "", false
		}
		b.WriteRune(runes[i])
	}
	return b.String(), true
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// ClassifyBoolean returns the vocabulary of a boolean value and whether it reads as true
func (l *Lattice) ClassifyBoolean(value string) (mod Modifier, truth bool, ok bool) {
	if utf8.RuneCountInString(value) > 8 {
		return 0, false, false
	}
	f := fold(value)
	switch f {
	case "true":
		return TrueFalse, true, true
	case "false":
		return TrueFalse, false, true
	case "y":
		return YN, true, true
	case "n":
		return YN, false, true
	case "yes":
		return YesNo, true, true
	case "no":
		return YesNo, false, true
	}
	if l.yes[f] {
		return YesNo | Localized, true, true
	}
	if l.no[f] {
		return YesNo | Localized, false, true
	}
	return 0, false, false
}

// BooleanRegExp renders the pattern for a boolean vocabulary
func (l *Lattice) BooleanRegExp(mod Modifier) string {
	switch mod.Vocabulary() {
	case TrueFalse:
		return "(?i)(FALSE|TRUE)"
	case YN:
		return "(?i)[NY]"
	case OneZero:
		return "[01]"
	}
	var words []string
	if mod&Localized != 0 {
		for w := range l.yes {
			words = append(words, strings.ToUpper(w))
		}
		for w := range l.no {
			words = append(words, strings.ToUpper(w))
		}
	} else {
		words = []string{"NO", "YES"}
	}
	sort.Strings(words)
	for i, w := range words {
		words[i] = quoteWord(w)
	}
	return "(?i)(" + strings.Join(words, "|") + ")"
}

func quoteWord(w string) string {
	var b strings.Builder
	for _, r := range w {
		b.WriteString(literalEscape(r))
	}
	return b.String()
}
