/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: resolution.go
Description: Day/month resolution modes for ambiguous numeric dates and the Intuitor
interface through which the analyzer asks for a value's date format.
*/

package datetime

import (
	"fmt"
	"strings"

	"github.com/kleascm/columnscout/pkg/locale"
)

// Resolution selects how an ambiguous date such as 2/3/14 is read
type Resolution int

const (
	// Auto falls back to the locale's conventional order
	Auto Resolution = iota
	DayFirst
	MonthFirst
)

func (r Resolution) String() string {
	switch r {
	case DayFirst:
		return "dayfirst"
	case MonthFirst:
		return "monthfirst"
	default:
		return "auto"
	}
}

// ParseResolution resolves a mode name as used on the command line
func ParseResolution(name string) (Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Auto, nil
	case "dayfirst", "day_first", "day-first":
		return DayFirst, nil
	case "monthfirst", "month_first", "month-first":
		return MonthFirst, nil
	default:
		return Auto, fmt.Errorf("unknown date resolution: %q", name)
	}
}

// Intuitor derives a date/time format string from a single trimmed value
type Intuitor interface {
	DetermineFormat(value string, resolution Resolution) (string, bool)
}

// dayFirst reports whether an ambiguous date should be read day first
func dayFirst(resolution Resolution, ctx *locale.Context) bool {
	switch resolution {
	case DayFirst:
		return true
	case MonthFirst:
		return false
	}
	if ctx == nil {
		return false
	}
	return ctx.DateOrder != locale.MonthFirst
}
