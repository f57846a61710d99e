/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: registry.go
Description: Explicit plugin registry keyed by qualifier. Keeps registration order for
tie-breaking, selects the best qualifying plugin for a locked column, and exposes a shared
registry holding the built-in catalogue.
*/

package plugins

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultThreshold is the match percentage used when neither plugin nor caller sets one
const DefaultThreshold = 95

// Registry maps qualifiers to plugins
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds a plugin. Qualifiers must be unique.
func (r *Registry) Register(p Plugin) error {
	if p == nil || p.Qualifier() == "" {
		return fmt.Errorf("plugin has no qualifier")
	}
	if t := p.Threshold(); t < 0 || t > 100 {
		return fmt.Errorf("plugin %s: threshold %d outside 0..100", p.Qualifier(), t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.plugins[p.Qualifier()]; exists {
		return fmt.Errorf("plugin %s already registered", p.Qualifier())
	}
	r.plugins[p.Qualifier()] = p
	r.order = append(r.order, p.Qualifier())
	return nil
}

// Get returns the plugin registered under qualifier
func (r *Registry) Get(qualifier string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[qualifier]
	return p, ok
}

// Len returns the number of registered plugins
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Plugins returns every plugin in registration order
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, len(r.order))
	for i, q := range r.order {
		out[i] = r.plugins[q]
	}
	return out
}

// Candidates returns the plugins applicable to ctx, highest priority first and in
// registration order among equal priorities
func (r *Registry) Candidates(ctx MatchContext) []Plugin {
	var out []Plugin
	for _, p := range r.Plugins() {
		if p.Applies(ctx) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority() > out[j].Priority()
	})
	return out
}

// Select returns the first candidate whose match ratio over samples meets its threshold,
// along with that ratio. defaultThreshold applies to plugins that set none.
func (r *Registry) Select(ctx MatchContext, samples []Sample, defaultThreshold int) (Plugin, float64, bool) {
	var total int64
	for _, s := range samples {
		total += s.Count
	}
	if total == 0 {
		return nil, 0, false
	}
	if defaultThreshold <= 0 {
		defaultThreshold = DefaultThreshold
	}

	for _, p := range r.Candidates(ctx) {
		var matched int64
		for _, s := range samples {
			if p.IsValid(s.Value) {
				matched += s.Count
			}
		}
		ratio := float64(matched) / float64(total)
		if ratio*100 >= float64(Threshold(p, defaultThreshold)) {
			return p, ratio, true
		}
	}
	return nil, 0, false
}

// Threshold returns the effective percentage threshold of p
func Threshold(p Plugin, defaultThreshold int) int {
	if t := p.Threshold(); t > 0 {
		return t
	}
	return defaultThreshold
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the shared registry of built-in plugins
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = NewBuiltin()
	})
	return defaultRegistry, defaultErr
}

// NewBuiltin creates a fresh registry holding the built-in catalogue and logic plugins
func NewBuiltin() (*Registry, error) {
	r := NewRegistry()
	for _, p := range logicPlugins() {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	if err := r.loadEmbedded(); err != nil {
		return nil, err
	}
	return r, nil
}
