/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: format.go
Description: Compiled date/time formats. A format string written with the y/M/d/H/h/m/s/S
/a/x/X/z pattern letters is translated once into a Go time layout, an anchored regular
expression and the calendar base type it produces. Compiled formatters are cached and
shared between analyzers.
*/

package datetime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kleascm/columnscout/pkg/lattice"
)

// Formatter parses values written in one date/time format
type Formatter struct {
	Format string
	Layout string
	Base   lattice.BaseType

	pattern string
	re      *regexp.Regexp
}

// RegExp returns the pattern matching values in this format
func (f *Formatter) RegExp() string { return f.pattern }

// Parse reads value in this format
func (f *Formatter) Parse(value string) (time.Time, error) {
	if !f.re.MatchString(value) {
		return time.Time{}, fmt.Errorf("value %q does not match format %s", value, f.Format)
	}
	return time.Parse(f.Layout, value)
}

// Matches reports whether value parses in this format
func (f *Formatter) Matches(value string) bool {
	_, err := f.Parse(value)
	return err == nil
}

type formatterEntry struct {
	once sync.Once
	f    *Formatter
	err  error
}

var formatters sync.Map

// Compile returns the shared formatter for a format string
func Compile(format string) (*Formatter, error) {
	v, _ := formatters.LoadOrStore(format, &formatterEntry{})
	e := v.(*formatterEntry)
	e.once.Do(func() {
		e.f, e.err = compile(format)
	})
	return e.f, e.err
}

type field struct {
	layout  string
	pattern string
}

var fields = map[string]field{
	"yyyy": {"2006", `\d{4}`},
	"yy":   {"06", `\d{2}`},
	"MMMM": {"January", `[A-Za-z]{3,9}`},
	"MMM":  {"Jan", `[A-Za-z]{3}`},
	"MM":   {"01", `\d{2}`},
	"M":    {"1", `\d{1,2}`},
	"dd":   {"02", `\d{2}`},
	"d":    {"2", `\d{1,2}`},
	"HH":   {"15", `\d{2}`},
	"H":    {"15", `\d{1,2}`},
	"hh":   {"03", `\d{2}`},
	"h":    {"3", `\d{1,2}`},
	"mm":   {"04", `\d{2}`},
	"ss":   {"05", `\d{2}`},
	"a":    {"PM", `[AP]M`},
	"x":    {"-07", `[-+]\d{2}`},
	"xx":   {"-0700", `[-+]\d{4}`},
	"xxx":  {"-07:00", `[-+]\d{2}:\d{2}`},
	"X":    {"Z07:00", `(?:Z|[-+]\d{2}:\d{2})`},
	"XX":   {"Z0700", `(?:Z|[-+]\d{4})`},
	"z":    {"MST", `[A-Z]{3,5}`},
}

func isPatternLetter(c byte) bool {
	return strings.IndexByte("yMdHhmsSaxXz", c) >= 0
}

func compile(format string) (*Formatter, error) {
	if format == "" {
		return nil, fmt.Errorf("empty date format")
	}

	var layout, pattern strings.Builder
	var hasDate, hasTime, hasOffset, hasZone bool

	for i := 0; i < len(format); {
		c := format[i]
		switch {
		case c == '\'':
			end := strings.IndexByte(format[i+1:], '\'')
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote in date format %q", format)
			}
			lit := format[i+1 : i+1+end]
			layout.WriteString(lit)
			pattern.WriteString(regexp.QuoteMeta(lit))
			i += end + 2

		case isPatternLetter(c):
			j := i
			for j < len(format) && format[j] == c {
				j++
			}
			run := format[i:j]
			i = j

			if c == 'S' {
				if run == "" || len(run) > 9 {
					return nil, fmt.Errorf("invalid fraction %q in date format %q", run, format)
				}
				l := layout.String()
				if l == "" || (l[len(l)-1] != '.' && l[len(l)-1] != ',') {
					return nil, fmt.Errorf("fraction must follow '.' or ',' in date format %q", format)
				}
				// The separator belongs to the Go fraction token.
				layout.WriteString(strings.Repeat("0", len(run)))
				pattern.WriteString(`\d{` + strconv.Itoa(len(run)) + `}`)
				hasTime = true
				continue
			}

			f, ok := fields[run]
			if !ok {
				return nil, fmt.Errorf("unsupported field %q in date format %q", run, format)
			}
			layout.WriteString(f.layout)
			pattern.WriteString(f.pattern)
			switch c {
			case 'y', 'M', 'd':
				hasDate = true
			case 'H', 'h', 'm', 's', 'a':
				hasTime = true
			case 'x', 'X':
				hasOffset = true
			case 'z':
				hasZone = true
			}

		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'):
			return nil, fmt.Errorf("unquoted literal %q in date format %q", c, format)

		default:
			layout.WriteByte(c)
			pattern.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}

	var base lattice.BaseType
	switch {
	case hasDate && hasTime && hasZone:
		base = lattice.ZonedDateTime
	case hasDate && hasTime && hasOffset:
		base = lattice.OffsetDateTime
	case hasDate && hasTime:
		base = lattice.LocalDateTime
	case hasDate && !hasOffset && !hasZone:
		base = lattice.LocalDate
	case hasTime && !hasOffset && !hasZone:
		base = lattice.LocalTime
	default:
		return nil, fmt.Errorf("date format %q names no supported calendar type", format)
	}

	p := pattern.String()
	re, err := regexp.Compile("^(?:" + p + ")$")
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern for %q: %w", format, err)
	}

	return &Formatter{
		Format:  format,
		Layout:  layout.String(),
		Base:    base,
		pattern: p,
		re:      re,
	}, nil
}
