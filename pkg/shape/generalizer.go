/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: generalizer.go
Description: Shape generalizer. Keeps a size-capped table of token streams keyed by
compressed shape and renders the smallest regular expression covering every value
tracked. Exceeding the cap degrades the generalizer to the catch-all pattern for good.
*/

package shape

import (
	"sort"
	"strings"
)

// DefaultMaxShapes caps the number of distinct token streams tracked
const DefaultMaxShapes = 400

// Generalizer merges value shapes into token streams
type Generalizer struct {
	streams   map[string]*TokenStream
	maxShapes int
	maxLength int
	overflow  bool
	discarded int64
}

// NewGeneralizer creates a generalizer holding at most maxShapes streams and
// tokenizing values of at most maxLength runes
func NewGeneralizer(maxShapes, maxLength int) *Generalizer {
	if maxShapes <= 0 {
		maxShapes = DefaultMaxShapes
	}
	return &Generalizer{
		streams:   make(map[string]*TokenStream),
		maxShapes: maxShapes,
		maxLength: maxLength,
	}
}

// Track records count occurrences of value
func (g *Generalizer) Track(value string, count int64) {
	if count <= 0 {
		return
	}
	g.add(NewTokenStream(Tokenize(value, g.maxLength), count))
}

func (g *Generalizer) add(ts *TokenStream) {
	if existing, ok := g.streams[ts.key]; ok {
		// Keys match, so the merge cannot fail.
		_ = existing.Merge(ts)
		return
	}
	if len(g.streams) >= g.maxShapes {
		g.overflow = true
		g.discarded += ts.count
		return
	}
	g.streams[ts.key] = ts.Clone()
}

// Merge folds every stream of other into g
func (g *Generalizer) Merge(other *Generalizer) {
	for _, key := range other.keys() {
		g.add(other.streams[key])
	}
	if other.overflow {
		g.overflow = true
		g.discarded += other.discarded
	}
}

// Overflowed reports whether more distinct shapes were seen than the cap allows
func (g *Generalizer) Overflowed() bool { return g.overflow }

// Discarded returns the number of values whose shape did not fit in the table
func (g *Generalizer) Discarded() int64 { return g.discarded }

// Size returns the number of distinct token streams
func (g *Generalizer) Size() int { return len(g.streams) }

func (g *Generalizer) keys() []string {
	keys := make([]string, 0, len(g.streams))
	for k := range g.streams {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Streams returns the token streams ordered by key
func (g *Generalizer) Streams() []*TokenStream {
	keys := g.keys()
	out := make([]*TokenStream, len(keys))
	for i, k := range keys {
		out[i] = g.streams[k]
	}
	return out
}

// RegExp renders a pattern covering every tracked value. Several streams are joined as
// an alternation in lexicographic order.
func (g *Generalizer) RegExp(compress bool) string {
	if g.overflow {
		return CatchAll
	}
	if len(g.streams) == 0 {
		return ""
	}

	seen := make(map[string]bool, len(g.streams))
	var parts []string
	for _, ts := range g.streams {
		if ts.catchAll {
			return CatchAll
		}
		re := ts.RegExp(compress)
		if !seen[re] {
			seen[re] = true
			parts = append(parts, re)
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	sort.Strings(parts)
	return "(" + strings.Join(parts, "|") + ")"
}

// Details returns the count of values per rendered stream pattern
func (g *Generalizer) Details(compress bool) map[string]int64 {
	out := make(map[string]int64, len(g.streams))
	for _, ts := range g.streams {
		out[ts.RegExp(compress)] += ts.count
	}
	return out
}
