/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: analyzer.go
Description: Incremental column analyzer. Buffers the first samples of a column in a
detection window, locks a type once the window is full, then validates every further
sample against the locked type, promoting it along the numeric lattice or backing out to
a broader type when mismatches exceed tolerance. An Analyzer is not safe for concurrent
use; run one per goroutine.
*/

package analyzer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kleascm/columnscout/pkg/datetime"
	"github.com/kleascm/columnscout/pkg/lattice"
	"github.com/kleascm/columnscout/pkg/locale"
	"github.com/kleascm/columnscout/pkg/metrics"
	"github.com/kleascm/columnscout/pkg/plugins"
	"github.com/kleascm/columnscout/pkg/shape"
	"github.com/kleascm/columnscout/pkg/stats"
)

// State is the analyzer's position in its lifecycle
type State int

const (
	NoData State = iota
	Accumulating
	Locked
)

func (s State) String() string {
	switch s {
	case Accumulating:
		return "accumulating"
	case Locked:
		return "locked"
	default:
		return "nodata"
	}
}

// Analyzer infers the type, pattern and facts of one column
type Analyzer struct {
	name string
	cfg  Config

	locale         *locale.Context
	lattice        *lattice.Lattice
	intuitor       datetime.Intuitor
	customIntuitor bool
	registry       *plugins.Registry
	reporter       metrics.Reporter
	logger         logrus.FieldLogger

	state   State
	trained bool

	window       []string
	windowCounts map[string]int64
	windowSize   int64

	current   lattice.TypeInfo
	formatter *datetime.Formatter
	plugin    plugins.Plugin
	backouts  int

	facts        *facts
	shapes       *shape.Generalizer
	outliers     *stats.CappedCounter
	revalidating bool
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// New creates an analyzer for the named column. A nil cfg selects DefaultConfig.
func New(name string, cfg *Config) (*Analyzer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	a := &Analyzer{
		name:     name,
		reporter: metrics.NopReporter{},
		logger:   discardLogger(),
	}
	if err := a.apply(*cfg); err != nil {
		return nil, err
	}
	return a, nil
}

// apply validates cfg and rebuilds every piece of state derived from it
func (a *Analyzer) apply(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx, err := locale.Get(cfg.Locale)
	if err != nil {
		return err
	}

	registry := a.registry
	if cfg.SemanticTypes && registry == nil {
		if registry, err = plugins.Default(); err != nil {
			return fmt.Errorf("failed to load built-in plugins: %w", err)
		}
	}

	a.cfg = cfg
	a.locale = ctx
	a.lattice = lattice.ForLocale(ctx)
	if !a.customIntuitor {
		a.intuitor = datetime.NewParser(ctx)
	}
	a.registry = registry
	a.current = lattice.StringType
	a.windowCounts = make(map[string]int64)
	a.facts = newFacts(&a.cfg)
	a.shapes = shape.NewGeneralizer(cfg.MaxShapes, cfg.MaxInputLength)
	a.outliers = stats.NewCappedCounter(cfg.MaxOutliers)
	return nil
}

// configure applies a modified copy of the configuration if training has not started
func (a *Analyzer) configure(setting string, mutate func(*Config)) error {
	if a.trained {
		return fmt.Errorf("%w: cannot change %s of column %q after training started", ErrInvalidState, setting, a.name)
	}
	cfg := a.cfg
	mutate(&cfg)
	return a.apply(cfg)
}

// Name returns the column name
func (a *Analyzer) Name() string { return a.name }

// Config returns a copy of the current configuration
func (a *Analyzer) Config() Config { return a.cfg }

// State returns the lifecycle state
func (a *Analyzer) State() State { return a.state }

// Type returns the current type candidate
func (a *Analyzer) Type() lattice.TypeInfo { return a.current }

// SetDetectWindow sets the number of samples buffered before locking
func (a *Analyzer) SetDetectWindow(n int) error {
	return a.configure("detect window", func(c *Config) { c.DetectWindow = n })
}

// SetMaxCardinality sets the number of distinct values tracked
func (a *Analyzer) SetMaxCardinality(n int) error {
	return a.configure("max cardinality", func(c *Config) { c.MaxCardinality = n })
}

// SetMaxOutliers sets the number of distinct outliers tracked
func (a *Analyzer) SetMaxOutliers(n int) error {
	return a.configure("max outliers", func(c *Config) { c.MaxOutliers = n })
}

// SetMaxInputLength sets the longest value tokenized
func (a *Analyzer) SetMaxInputLength(n int) error {
	return a.configure("max input length", func(c *Config) { c.MaxInputLength = n })
}

// SetLocale sets the BCP 47 locale. Unknown locales return a *locale.Error.
func (a *Analyzer) SetLocale(tag string) error {
	return a.configure("locale", func(c *Config) { c.Locale = tag })
}

// SetPluginThreshold sets the default semantic match percentage
func (a *Analyzer) SetPluginThreshold(percent int) error {
	return a.configure("plugin threshold", func(c *Config) { c.PluginThreshold = percent })
}

// SetSemanticTypes enables or disables semantic type detection
func (a *Analyzer) SetSemanticTypes(enabled bool) error {
	return a.configure("semantic types", func(c *Config) { c.SemanticTypes = enabled })
}

// SetCollectStatistics enables or disables moments and top/bottom-K
func (a *Analyzer) SetCollectStatistics(enabled bool) error {
	return a.configure("statistics", func(c *Config) { c.CollectStatistics = enabled })
}

// SetResolution sets how ambiguous dates are read
func (a *Analyzer) SetResolution(r datetime.Resolution) error {
	return a.configure("date resolution", func(c *Config) { c.Resolution = r })
}

// SetRegistry replaces the semantic plugin registry
func (a *Analyzer) SetRegistry(r *plugins.Registry) error {
	if r == nil {
		return fmt.Errorf("%w: nil plugin registry", ErrInvalidArgument)
	}
	if a.trained {
		return fmt.Errorf("%w: cannot change plugin registry of column %q after training started", ErrInvalidState, a.name)
	}
	a.registry = r
	return nil
}

// SetIntuitor replaces the date format collaborator
func (a *Analyzer) SetIntuitor(i datetime.Intuitor) error {
	if i == nil {
		return fmt.Errorf("%w: nil date intuitor", ErrInvalidArgument)
	}
	if a.trained {
		return fmt.Errorf("%w: cannot change date intuitor of column %q after training started", ErrInvalidState, a.name)
	}
	a.intuitor = i
	a.customIntuitor = true
	return nil
}

// SetReporter sets the event reporter
func (a *Analyzer) SetReporter(r metrics.Reporter) {
	if r == nil {
		r = metrics.NopReporter{}
	}
	a.reporter = r
}

// SetLogger sets the logger for lock and backout decisions
func (a *Analyzer) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = discardLogger()
	}
	a.logger = l.WithField("column", a.name)
}

// Train consumes one value. It returns true exactly on the call that locks the type.
func (a *Analyzer) Train(value string) bool {
	return a.train(value, 1)
}

// TrainNull records a missing value
func (a *Analyzer) TrainNull() bool {
	a.trained = true
	a.facts.sampleCount++
	a.facts.nullCount++
	return false
}

// TrainBulk consumes each value count times, in lexical order of the values
func (a *Analyzer) TrainBulk(counts map[string]int64) {
	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Strings(values)
	for _, v := range values {
		a.train(v, counts[v])
	}
}

func (a *Analyzer) train(raw string, count int64) bool {
	if count <= 0 {
		return false
	}
	a.trained = true
	a.facts.sampleCount += count

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		a.facts.blankCount += count
		return false
	}
	a.facts.observeRaw(raw, trimmed)
	a.shapes.Track(trimmed, count)

	if a.state == Locked {
		a.validate(trimmed, count)
		return false
	}

	a.state = Accumulating
	take := min(count, int64(a.cfg.DetectWindow)-a.windowSize)
	if _, seen := a.windowCounts[trimmed]; !seen {
		a.window = append(a.window, trimmed)
	}
	a.windowCounts[trimmed] += take
	a.windowSize += take
	if a.windowSize < int64(a.cfg.DetectWindow) {
		return false
	}

	a.lock()
	if rest := count - take; rest > 0 {
		a.validate(trimmed, rest)
	}
	return true
}
