/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser.go
Description: Format intuition for single date/time values. Walks the value's character
runs and recognizes numeric and textual dates, clock times, date-time joins, numeric
offsets and zone abbreviations, resolving day/month order from the digits when possible
and from the resolution mode otherwise.
*/

package datetime

import (
	"strconv"
	"strings"

	"github.com/kleascm/columnscout/pkg/locale"
	"github.com/kleascm/columnscout/pkg/shape"
)

// maxDateLength bounds the values considered for date intuition
const maxDateLength = 64

// Parser is the default Intuitor
type Parser struct {
	Locale *locale.Context
}

// NewParser creates a parser resolving ambiguous dates by ctx's conventions
func NewParser(ctx *locale.Context) *Parser {
	return &Parser{Locale: ctx}
}

var monthNames = map[string]bool{
	"jan": true, "feb": true, "mar": true, "apr": true, "may": true, "jun": true,
	"jul": true, "aug": true, "sep": true, "oct": true, "nov": true, "dec": true,
	"january": true, "february": true, "march": true, "april": true, "june": true,
	"july": true, "august": true, "september": true, "october": true, "november": true,
	"december": true,
}

// cursor walks the runs of a tokenized value
type cursor struct {
	runs []shape.Run
	i    int
}

func (c *cursor) done() bool { return c.i >= len(c.runs) }

func (c *cursor) peek() (shape.Run, bool) {
	if c.done() {
		return shape.Run{}, false
	}
	return c.runs[c.i], true
}

func (c *cursor) digits(minWidth, maxWidth int) (shape.Run, bool) {
	r, ok := c.peek()
	if !ok || r.Class != shape.Digit || r.Width < minWidth || r.Width > maxWidth {
		return shape.Run{}, false
	}
	c.i++
	return r, true
}

func (c *cursor) alpha() (shape.Run, bool) {
	r, ok := c.peek()
	if !ok || r.Class != shape.Alpha {
		return shape.Run{}, false
	}
	c.i++
	return r, true
}

// literal consumes a single-character literal run of one of chars
func (c *cursor) literal(chars string) (rune, bool) {
	r, ok := c.peek()
	if !ok || r.Class != shape.Literal || r.Width != 1 || !strings.ContainsRune(chars, r.Ch) {
		return 0, false
	}
	c.i++
	return r.Ch, true
}

func intOf(r shape.Run) int {
	n, _ := strconv.Atoi(r.Text)
	return n
}

// numericField names a one- or two-digit field, doubling the letter for two-digit runs
func numericField(letter string, r shape.Run) string {
	if r.Width == 2 {
		return letter + letter
	}
	return letter
}

func yearField(r shape.Run) string {
	if r.Width == 4 {
		return "yyyy"
	}
	return "yy"
}

func monthField(r shape.Run) (string, bool) {
	name := strings.ToLower(r.Text)
	if !monthNames[name] {
		return "", false
	}
	if r.Width == 3 {
		return "MMM", true
	}
	return "MMMM", true
}

// DetermineFormat returns the format of value, or false when value is not a
// recognizable date, time or date-time
func (p *Parser) DetermineFormat(value string, resolution Resolution) (string, bool) {
	if value == "" || len(value) > maxDateLength {
		return "", false
	}
	s := shape.Tokenize(value, maxDateLength)
	if len(s.Runs) < 3 || s.Runs[0].Class == shape.Literal {
		return "", false
	}

	c := &cursor{runs: s.Runs}
	start := c.i
	if date, ok := p.date(c, resolution); ok {
		if c.done() {
			return date, true
		}
		join := ""
		if r, ok := c.peek(); ok && r.Class == shape.Alpha && r.Text == "T" {
			c.i++
			join = "'T'"
		} else if _, ok := c.literal(" "); ok {
			join = " "
		} else {
			return "", false
		}
		clock, offset, ok := timeOfDay(c, true)
		if !ok || !c.done() {
			return "", false
		}
		return date + join + clock + offset, true
	}

	c.i = start
	clock, offset, ok := timeOfDay(c, false)
	if !ok || !c.done() || offset != "" {
		return "", false
	}
	return clock, true
}

func (p *Parser) date(c *cursor, resolution Resolution) (string, bool) {
	first, ok := c.peek()
	if !ok {
		return "", false
	}

	if first.Class == shape.Alpha {
		// MMM d, yyyy
		mon, _ := c.alpha()
		month, ok := monthField(mon)
		if !ok {
			return "", false
		}
		if _, ok := c.literal(" "); !ok {
			return "", false
		}
		day, ok := c.digits(1, 2)
		if !ok || intOf(day) < 1 || intOf(day) > 31 {
			return "", false
		}
		if _, ok := c.literal(","); !ok {
			return "", false
		}
		if _, ok := c.literal(" "); !ok {
			return "", false
		}
		year, ok := c.digits(4, 4)
		if !ok {
			return "", false
		}
		return month + " " + numericField("d", day) + ", " + yearField(year), true
	}

	a, ok := c.digits(1, 4)
	if !ok {
		return "", false
	}
	sep, ok := c.literal("-/. ")
	if !ok {
		return "", false
	}
	sepText := string(sep)

	if mon, ok := c.alpha(); ok {
		// d-MMM-yyyy, d MMM yyyy
		month, ok := monthField(mon)
		if !ok || a.Width > 2 || intOf(a) < 1 || intOf(a) > 31 {
			return "", false
		}
		if _, ok := c.literal(sepText); !ok {
			return "", false
		}
		year, ok := c.digits(2, 4)
		if !ok || year.Width == 3 {
			return "", false
		}
		return numericField("d", a) + sepText + month + sepText + yearField(year), true
	}

	if sep == ' ' {
		return "", false
	}
	b, ok := c.digits(1, 2)
	if !ok {
		return "", false
	}
	if _, ok := c.literal(sepText); !ok {
		return "", false
	}
	last, ok := c.digits(1, 4)
	if !ok {
		return "", false
	}

	if a.Width == 4 {
		// yyyy-MM-dd
		if last.Width > 2 || !validMonth(intOf(b)) || !validDay(intOf(last)) {
			return "", false
		}
		return "yyyy" + sepText + numericField("M", b) + sepText + numericField("d", last), true
	}
	if a.Width > 2 || (last.Width != 2 && last.Width != 4) {
		return "", false
	}

	av, bv := intOf(a), intOf(b)
	var readDayFirst bool
	switch {
	case !validDay(av) || !validDay(bv):
		return "", false
	case av > 12 && bv > 12:
		return "", false
	case av > 12:
		readDayFirst = true
	case bv > 12:
		readDayFirst = false
	default:
		readDayFirst = dayFirst(resolution, p.Locale)
	}

	year := yearField(last)
	if readDayFirst {
		return numericField("d", a) + sepText + numericField("M", b) + sepText + year, true
	}
	return numericField("M", a) + sepText + numericField("d", b) + sepText + year, true
}

func validMonth(m int) bool { return m >= 1 && m <= 12 }

func validDay(d int) bool { return d >= 1 && d <= 31 }

// timeOfDay reads H:mm[:ss[.S…]][ a] and, when allowZone is set, a trailing offset or
// zone abbreviation
func timeOfDay(c *cursor, allowZone bool) (clock, zone string, ok bool) {
	hour, ok := c.digits(1, 2)
	if !ok {
		return "", "", false
	}
	if _, ok := c.literal(":"); !ok {
		return "", "", false
	}
	minute, ok := c.digits(2, 2)
	if !ok || intOf(minute) > 59 {
		return "", "", false
	}

	var b strings.Builder
	hourRun := hour
	b.WriteString(":mm")

	if _, ok := c.literal(":"); ok {
		second, ok := c.digits(2, 2)
		if !ok || intOf(second) > 59 {
			return "", "", false
		}
		b.WriteString(":ss")
		if sep, ok := c.literal(".,"); ok {
			frac, ok := c.digits(1, 9)
			if !ok {
				return "", "", false
			}
			b.WriteRune(sep)
			b.WriteString(strings.Repeat("S", frac.Width))
		}
	}

	twelveHour := false
	mark := c.i
	spaced := false
	if _, ok := c.literal(" "); ok {
		spaced = true
	}
	if r, ok := c.peek(); ok && r.Class == shape.Alpha && (r.Text == "AM" || r.Text == "PM") {
		c.i++
		twelveHour = true
		if spaced {
			b.WriteString(" ")
		}
		b.WriteString("a")
	} else {
		c.i = mark
	}

	h := intOf(hourRun)
	var hourField string
	if twelveHour {
		if h < 1 || h > 12 {
			return "", "", false
		}
		hourField = numericField("h", hourRun)
	} else {
		if h > 23 {
			return "", "", false
		}
		hourField = numericField("H", hourRun)
	}
	clock = hourField + b.String()

	if !allowZone || c.done() {
		return clock, "", true
	}
	zone, ok = offset(c)
	return clock, zone, ok
}

func offset(c *cursor) (string, bool) {
	if r, ok := c.peek(); ok && r.Class == shape.Alpha && r.Text == "Z" {
		c.i++
		return "X", true
	}

	prefix := ""
	if _, ok := c.literal(" "); ok {
		prefix = " "
		if r, ok := c.peek(); ok && r.Class == shape.Alpha {
			c.i++
			if r.Width < 3 || r.Width > 5 || strings.ToUpper(r.Text) != r.Text {
				return "", false
			}
			return " z", true
		}
	}

	if _, ok := c.literal("+-"); !ok {
		return "", false
	}
	hh, ok := c.digits(2, 4)
	if !ok || hh.Width == 3 {
		return "", false
	}
	if hh.Width == 4 {
		return prefix + "xx", true
	}
	if _, ok := c.literal(":"); ok {
		if _, ok := c.digits(2, 2); !ok {
			return "", false
		}
		return prefix + "xxx", true
	}
	return prefix + "x", true
}
