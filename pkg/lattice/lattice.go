/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: lattice.go
Description: Per-locale numeric type lattice. Enumerates the numeric variants a locale
supports and precomputes the promotion, negation and grouping tables between them. A
Lattice is built once per locale and shared read-only between analyzers.
*/

package lattice

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/kleascm/columnscout/pkg/locale"
	"github.com/kleascm/columnscout/pkg/shape"
)

type pair struct {
	left, right string
}

// Lattice holds the numeric variants of one locale and the transitions between them
type Lattice struct {
	Locale *locale.Context

	types     map[string]TypeInfo
	ids       []string
	promotion map[pair]string
	negation  map[string]string
	trailing  map[string]string
	grouping  map[string]string

	yes map[string]bool
	no  map[string]bool
}

type latticeEntry struct {
	once    sync.Once
	lattice *Lattice
}

var lattices sync.Map

// ForLocale returns the shared lattice for ctx, building it on first use
func ForLocale(ctx *locale.Context) *Lattice {
	v, _ := lattices.LoadOrStore(ctx.Name, &latticeEntry{})
	e := v.(*latticeEntry)
	e.once.Do(func() {
		e.lattice = build(ctx)
	})
	return e.lattice
}

func build(ctx *locale.Context) *Lattice {
	l := &Lattice{
		Locale:    ctx,
		types:     make(map[string]TypeInfo),
		promotion: make(map[pair]string),
		negation:  make(map[string]string),
		trailing:  make(map[string]string),
		grouping:  make(map[string]string),
		yes:       make(map[string]bool),
		no:        make(map[string]bool),
	}

	signs := []Modifier{0, Signed, Signed | SignedTrailing}
	for _, sign := range signs {
		for _, group := range []Modifier{0, Grouping} {
			l.add(Long, sign|group)
			for _, exp := range []Modifier{0, Exponent} {
				l.add(Double, sign|group|exp)
			}
		}
	}

	// Locales whose decimal mark is not '.' still see '.'-decimals from exports and
	// machine-generated files; accept them as a separate, non-localized variant.
	if ctx.DecimalSeparator != '.' && ctx.PrefixNegative() {
		for _, sign := range []Modifier{0, Signed} {
			for _, exp := range []Modifier{0, Exponent} {
				l.add(Double, sign|exp|NonLocalized)
			}
		}
	}
	sort.Strings(l.ids)

	for _, a := range l.ids {
		for _, b := range l.ids {
			if id, ok := l.join(l.types[a], l.types[b]); ok {
				l.promotion[pair{a, b}] = id
			}
		}
		t := l.types[a]
		if id, ok := l.withSign(t, Signed); ok {
			l.negation[a] = id
		}
		if id, ok := l.withSign(t, Signed|SignedTrailing); ok {
			l.trailing[a] = id
		}
		if t.Modifier&NonLocalized == 0 {
			if id := numericID(t.Base, t.Modifier|Grouping); l.has(id) {
				l.grouping[a] = id
			}
		}
	}

	l.yes["yes"] = true
	l.no["no"] = true
	for _, w := range ctx.YesWords {
		l.yes[fold(w)] = true
	}
	for _, w := range ctx.NoWords {
		l.no[fold(w)] = true
	}
	return l
}

func (l *Lattice) add(base BaseType, mod Modifier) {
	id := numericID(base, mod)
	l.types[id] = TypeInfo{ID: id, Base: base, Modifier: mod}
	l.ids = append(l.ids, id)
}

func (l *Lattice) has(id string) bool {
	_, ok := l.types[id]
	return ok
}

// join computes the least upper bound of two numeric variants
func (l *Lattice) join(a, b TypeInfo) (string, bool) {
	base := Long
	if a.Base == Double || b.Base == Double {
		base = Double
	}

	sa, sb := a.Modifier&signMask, b.Modifier&signMask
	sign := sa
	switch {
	case sa == 0:
		sign = sb
	case sb == 0, sa == sb:
	default:
		return "", false
	}

	// A localized decimal and a '.'-decimal cannot describe the same column.
	nlA, nlB := a.Modifier&NonLocalized != 0, b.Modifier&NonLocalized != 0
	if (nlA && b.Base == Double && !nlB) || (nlB && a.Base == Double && !nlA) {
		return "", false
	}

	mod := sign | (a.Modifier|b.Modifier)&(Grouping|Exponent|NonLocalized)
	id := numericID(base, mod)
	return id, l.has(id)
}

func (l *Lattice) withSign(t TypeInfo, sign Modifier) (string, bool) {
	current := t.Modifier & signMask
	if current != 0 && current != sign {
		return "", false
	}
	id := numericID(t.Base, t.Modifier&^signMask|sign)
	return id, l.has(id)
}

// Lookup returns the numeric variant with the given ID
func (l *Lattice) Lookup(id string) (TypeInfo, bool) {
	t, ok := l.types[id]
	return t, ok
}

// IDs lists the numeric variants of the locale in lexical order
func (l *Lattice) IDs() []string {
	return append([]string(nil), l.ids...)
}

// Promote returns the most specific variant covering both left and right. A false
// result means no legal transition exists.
func (l *Lattice) Promote(left, right string) (string, bool) {
	id, ok := l.promotion[pair{left, right}]
	return id, ok
}

// Negate returns the signed counterpart of id, with a trailing sign when trailing is set
func (l *Lattice) Negate(id string, trailing bool) (string, bool) {
	table := l.negation
	if trailing {
		table = l.trailing
	}
	out, ok := table[id]
	return out, ok
}

// Group returns the grouping counterpart of id
func (l *Lattice) Group(id string) (string, bool) {
	out, ok := l.grouping[id]
	return out, ok
}

// DecimalSeparator returns the decimal mark a variant accepts
func (l *Lattice) DecimalSeparator(id string) rune {
	if t, ok := l.types[id]; ok && t.Modifier&NonLocalized != 0 {
		return '.'
	}
	return l.Locale.DecimalSeparator
}

func classEscape(r rune) string {
	switch {
	case r > 0x7e || r < 0x20:
		return `\x{` + strings.ToUpper(strconv.FormatInt(int64(r), 16)) + `}`
	case strings.ContainsRune(`\^]-[`, r):
		return `\` + string(r)
	default:
		return string(r)
	}
}

func literalEscape(r rune) string {
	if r > 0x7e || r < 0x20 {
		return `\x{` + strings.ToUpper(strconv.FormatInt(int64(r), 16)) + `}`
	}
	return regexp.QuoteMeta(string(r))
}

// RegExp renders the pattern of a numeric variant. For plain longs the digit count
// range is used as the quantifier.
func (l *Lattice) RegExp(id string, minDigits, maxDigits int) string {
	t, ok := l.types[id]
	if !ok {
		return shape.CatchAll
	}

	group := classEscape(l.Locale.GroupingSeparator)
	var body string
	switch {
	case t.Base == Long && t.Modifier&Grouping != 0:
		body = `(?:\d{1,3}(?:` + literalEscape(l.Locale.GroupingSeparator) + `\d{3})+|\d+)`
	case t.Base == Long:
		if minDigits <= 0 {
			body = `\d+`
		} else {
			body = `\d` + shape.Quantify(minDigits, maxDigits)
		}
	default:
		dec := literalEscape(l.DecimalSeparator(id))
		digits := `\d+`
		if t.Modifier&Grouping != 0 {
			digits = `[\d` + group + `]+`
		}
		// digits may end on the separator, or the separator may lead
		body = `(?:` + digits + dec + `?\d*|` + dec + `\d+)`
		if t.Modifier&Exponent != 0 {
			body += `(?:[eE][-+]?\d+)?`
		}
	}

	minus := literalEscape(l.Locale.MinusSign)
	if l.Locale.MinusSign != '-' && l.Locale.PrefixNegative() {
		minus = `[-` + classEscape(l.Locale.MinusSign) + `]`
	}
	switch {
	case t.Modifier&SignedTrailing != 0:
		return body + minus + `?`
	case t.Modifier&Signed != 0:
		return minus + `?` + body
	default:
		return body
	}
}
