/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: plugin.go
Description: Semantic type plugin contract. A plugin recognizes a finer-grained meaning
(email address, US ZIP code, GUID) on top of a column's base type and validates single
values against it.
*/

package plugins

import (
	"slices"

	"github.com/kleascm/columnscout/pkg/lattice"
	"github.com/kleascm/columnscout/pkg/locale"
)

// MatchContext describes the locked column a plugin is offered
type MatchContext struct {
	Base       lattice.BaseType
	RegExp     string
	ColumnName string
	Locale     *locale.Context
}

// Sample is one distinct buffered value and its count
type Sample struct {
	Value string
	Count int64
}

// Plugin is a semantic type recognizer
type Plugin interface {
	// Qualifier is the unique semantic type name, e.g. EMAIL
	Qualifier() string
	// BaseTypes lists the base types the plugin can qualify
	BaseTypes() []lattice.BaseType
	// Priority orders competing plugins, higher first
	Priority() int
	// Threshold is the match percentage required, zero selects the caller's default
	Threshold() int
	// RegExp is the pattern reported for a column of this type
	RegExp() string
	// Applies reports whether the plugin should be tried on a column at all
	Applies(ctx MatchContext) bool
	// IsValid validates one trimmed value
	IsValid(value string) bool
}

// base carries the descriptive fields shared by the built-in plugins
type base struct {
	qualifier string
	baseTypes []lattice.BaseType
	priority  int
	threshold int
	regexp    string
}

func (b *base) Qualifier() string              { return b.qualifier }
func (b *base) BaseTypes() []lattice.BaseType { return b.baseTypes }
func (b *base) Priority() int                  { return b.priority }
func (b *base) Threshold() int                 { return b.threshold }
func (b *base) RegExp() string                 { return b.regexp }

func (b *base) Applies(ctx MatchContext) bool {
	return slices.Contains(b.baseTypes, ctx.Base)
}
