/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Base types, type modifier flags and the immutable TypeInfo candidate used
by the inference engine. A candidate is never mutated in place; every transition along
the lattice produces a new TypeInfo value.
*/

package lattice

import (
	"fmt"
	"strings"
)

// BaseType is the coarse classification of a column
type BaseType int

const (
	Long BaseType = iota
	Double
	Boolean
	String
	LocalDate
	LocalTime
	LocalDateTime
	OffsetDateTime
	ZonedDateTime
)

var baseTypeNames = [...]string{
	Long:           "Long",
	Double:         "Double",
	Boolean:        "Boolean",
	String:         "String",
	LocalDate:      "LocalDate",
	LocalTime:      "LocalTime",
	LocalDateTime:  "LocalDateTime",
	OffsetDateTime: "OffsetDateTime",
	ZonedDateTime:  "ZonedDateTime",
}

func (b BaseType) String() string {
	if b < 0 || int(b) >= len(baseTypeNames) {
		return fmt.Sprintf("BaseType(%d)", int(b))
	}
	return baseTypeNames[b]
}

// MarshalText renders the base type by name in JSON and YAML output
func (b BaseType) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// IsNumeric reports whether the base type is Long or Double
func (b BaseType) IsNumeric() bool {
	return b == Long || b == Double
}

// IsDateType reports whether the base type is one of the calendar variants
func (b BaseType) IsDateType() bool {
	return b >= LocalDate && b <= ZonedDateTime
}

// ParseBaseType resolves a base type name, case-insensitively
func ParseBaseType(name string) (BaseType, error) {
	for i, n := range baseTypeNames {
		if strings.EqualFold(n, name) {
			return BaseType(i), nil
		}
	}
	return String, fmt.Errorf("unknown base type: %q", name)
}

// Modifier is a bit set qualifying a numeric or boolean base type
type Modifier uint16

const (
	Signed Modifier = 1 << iota
	SignedTrailing
	Grouping
	Exponent
	NonLocalized
	TrueFalse
	YesNo
	YN
	OneZero
	Localized
)

// signMask covers both sign placements; a trailing sign also carries Signed
const signMask = Signed | SignedTrailing

// vocabularyMask covers the boolean vocabularies
const vocabularyMask = TrueFalse | YesNo | YN | OneZero

var modifierNames = []struct {
	flag Modifier
	name string
}{
	{Signed, "SIGNED"},
	{SignedTrailing, "SIGNED_TRAILING"},
	{Grouping, "GROUPING"},
	{Exponent, "EXPONENT"},
	{NonLocalized, "NON_LOCALIZED"},
	{TrueFalse, "TRUE_FALSE"},
	{YesNo, "YES_NO"},
	{YN, "Y_N"},
	{OneZero, "ONE_ZERO"},
	{Localized, "LOCALIZED"},
}

// Has reports whether every flag in f is set
func (m Modifier) Has(f Modifier) bool {
	return m&f == f
}

// Vocabulary returns the boolean vocabulary flag, if any
func (m Modifier) Vocabulary() Modifier {
	return m & vocabularyMask
}

func (m Modifier) String() string {
	var parts []string
	for _, n := range modifierNames {
		if m&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// MarshalText renders the flags by name
func (m Modifier) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// TypeInfo is the analyzer's current best guess for a column
type TypeInfo struct {
	ID       string   `json:"id"`
	Base     BaseType `json:"base_type"`
	Modifier Modifier `json:"modifier"`
	Format   string   `json:"format,omitempty"`   // date/time format for calendar types
	Semantic string   `json:"semantic,omitempty"` // plugin qualifier, if one matched
}

// StringType is the most general type, the root of the lattice
var StringType = TypeInfo{ID: "STRING", Base: String}

// IsString reports whether the candidate is the catch-all String type
func (t TypeInfo) IsString() bool {
	return t.Base == String
}

// WithSemantic returns a copy tagged with a semantic type qualifier
func (t TypeInfo) WithSemantic(qualifier string) TypeInfo {
	t.Semantic = qualifier
	return t
}

func (t TypeInfo) String() string {
	s := t.ID
	if t.Format != "" {
		s += "(" + t.Format + ")"
	}
	if t.Semantic != "" {
		s += "/" + t.Semantic
	}
	return s
}

// BooleanType returns the boolean candidate for a vocabulary
func BooleanType(mod Modifier) TypeInfo {
	id := "BOOLEAN"
	if v := mod.Vocabulary(); v != 0 {
		id += "." + v.String()
	}
	return TypeInfo{ID: id, Base: Boolean, Modifier: mod}
}

// DateType returns the calendar candidate for a format
func DateType(base BaseType, format string) TypeInfo {
	return TypeInfo{ID: strings.ToUpper(base.String()), Base: base, Format: format}
}

// numericID names a numeric variant, e.g. SIGNED_DOUBLE_GROUPING
func numericID(base BaseType, mod Modifier) string {
	var b strings.Builder
	if mod&Signed != 0 {
		b.WriteString("SIGNED_")
	}
	b.WriteString(strings.ToUpper(base.String()))
	if mod&SignedTrailing != 0 {
		b.WriteString("_TRAILING")
	}
	if mod&Grouping != 0 {
		b.WriteString("_GROUPING")
	}
	if mod&Exponent != 0 {
		b.WriteString("_EXPONENT")
	}
	if mod&NonLocalized != 0 {
		b.WriteString("_NL")
	}
	return b.String()
}
