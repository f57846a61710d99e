/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: lock.go
Description: Lock decision, post-lock validation and backout. The lock decision
classifies every buffered value as numeric, boolean or date-like, folds numeric variants
through the promotion table and picks the class covering the window within tolerance.
Validation after lock only ever widens the type.
*/

package analyzer

import (
	"sort"

	"github.com/kleascm/columnscout/pkg/datetime"
	"github.com/kleascm/columnscout/pkg/lattice"
	"github.com/kleascm/columnscout/pkg/logging"
	"github.com/kleascm/columnscout/pkg/plugins"
	"github.com/kleascm/columnscout/pkg/stats"
)

// option is one class competing for the lock
type option struct {
	t       lattice.TypeInfo
	f       *datetime.Formatter
	matches int64
}

func (a *Analyzer) lock() {
	a.current, a.formatter = a.decide()
	a.state = Locked

	if a.cfg.SemanticTypes && a.registry != nil {
		a.selectPlugin()
	}

	logging.LogLock(a.logger, a.name, a.current.String(), a.windowSize)
	a.reporter.OnLock(a.name, a.current, a.windowSize)

	order, counts := a.window, a.windowCounts
	a.window, a.windowCounts = nil, nil
	for _, v := range order {
		a.validate(v, counts[v])
	}
}

// decide computes the locked type from the detection window
func (a *Analyzer) decide() (lattice.TypeInfo, *datetime.Formatter) {
	total := a.windowSize
	if total == 0 {
		return lattice.StringType, nil
	}

	idCounts := make(map[string]int64)
	oneZero := true
	var rest []string
	for _, v := range a.window {
		c := a.windowCounts[v]
		if n, ok := a.lattice.ClassifyNumeric(v); ok {
			idCounts[n.ID] += c
			if v != "0" && v != "1" {
				oneZero = false
			}
			continue
		}
		oneZero = false
		rest = append(rest, v)
	}

	numeric := a.foldNumeric(idCounts)
	if oneZero && numeric.matches == total {
		return lattice.BooleanType(lattice.OneZero), nil
	}

	// Booleans by dominant vocabulary.
	vocab := make(map[lattice.Modifier]int64)
	localized := make(map[lattice.Modifier]bool)
	var dateLike []string
	for _, v := range rest {
		mod, _, ok := a.lattice.ClassifyBoolean(v)
		if !ok {
			dateLike = append(dateLike, v)
			continue
		}
		vocab[mod.Vocabulary()] += a.windowCounts[v]
		if mod&lattice.Localized != 0 {
			localized[mod.Vocabulary()] = true
		}
	}
	boolean := option{}
	for _, m := range []lattice.Modifier{lattice.TrueFalse, lattice.YesNo, lattice.YN} {
		if vocab[m] > boolean.matches {
			mod := m
			if localized[m] {
				mod |= lattice.Localized
			}
			boolean = option{t: lattice.BooleanType(mod), matches: vocab[m]}
		}
	}

	date := a.intuitDates(dateLike)

	best := option{}
	for _, o := range []option{numeric, boolean, date} {
		if o.matches > best.matches {
			best = o
		}
	}
	if best.matches == 0 || float64(best.matches) < float64(total)*(1-a.cfg.Tolerance) {
		return lattice.StringType, nil
	}
	return best.t, best.f
}

// foldNumeric promotes the numeric variants seen, most frequent first. Variants with
// no legal promotion are left out of the match count.
func (a *Analyzer) foldNumeric(idCounts map[string]int64) option {
	if len(idCounts) == 0 {
		return option{}
	}
	ids := make([]string, 0, len(idCounts))
	for id := range idCounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if idCounts[ids[i]] != idCounts[ids[j]] {
			return idCounts[ids[i]] > idCounts[ids[j]]
		}
		return ids[i] < ids[j]
	})

	current := ids[0]
	matches := idCounts[current]
	for _, id := range ids[1:] {
		if promoted, ok := a.lattice.Promote(current, id); ok {
			current = promoted
			matches += idCounts[id]
		}
	}
	t, _ := a.lattice.Lookup(current)
	return option{t: t, matches: matches}
}

// intuitDates derives a format per distinct value and keeps the one parsing the most
// buffered samples. Ties go to the format derived from more samples.
func (a *Analyzer) intuitDates(values []string) option {
	derived := make(map[string]int64)
	for _, v := range values {
		if f, ok := a.intuitor.DetermineFormat(v, a.cfg.Resolution); ok {
			derived[f] += a.windowCounts[v]
		}
	}
	formats := make([]string, 0, len(derived))
	for f := range derived {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	best := option{}
	var bestDerived int64
	for _, format := range formats {
		f, err := datetime.Compile(format)
		if err != nil {
			a.logger.WithError(err).Debug("Skipping date format")
			continue
		}
		var parsed int64
		for _, v := range values {
			if f.Matches(v) {
				parsed += a.windowCounts[v]
			}
		}
		if parsed > best.matches || (parsed == best.matches && derived[format] > bestDerived) {
			best = option{t: lattice.DateType(f.Base, f.Format), f: f, matches: parsed}
			bestDerived = derived[format]
		}
	}
	return best
}

func (a *Analyzer) selectPlugin() {
	samples := make([]plugins.Sample, 0, len(a.window))
	for _, v := range a.window {
		samples = append(samples, plugins.Sample{Value: v, Count: a.windowCounts[v]})
	}
	ctx := plugins.MatchContext{
		Base:       a.current.Base,
		RegExp:     a.shapes.RegExp(true),
		ColumnName: a.name,
		Locale:     a.locale,
	}
	if p, _, ok := a.registry.Select(ctx, samples, a.cfg.PluginThreshold); ok {
		a.plugin = p
		a.current = a.current.WithSemantic(p.Qualifier())
	}
}

// validate checks a trimmed value against the locked type
func (a *Analyzer) validate(v string, count int64) {
	if !a.matches(v, count) {
		a.outlier(v, count)
		return
	}
	if a.plugin != nil && a.plugin.IsValid(v) {
		a.facts.semanticMatches += count
	}
	a.checkSemantic()
}

// matches records the value's facts and reports whether it fits the locked type,
// widening a numeric type when the value promotes legally
func (a *Analyzer) matches(v string, count int64) bool {
	switch {
	case a.current.Base.IsNumeric():
		n, ok := a.lattice.ClassifyNumeric(v)
		if !ok {
			return false
		}
		if n.ID != a.current.ID {
			promoted, ok := a.lattice.Promote(a.current.ID, n.ID)
			if !ok {
				return false
			}
			if promoted != a.current.ID {
				t, _ := a.lattice.Lookup(promoted)
				a.current = t.WithSemantic(a.current.Semantic)
			}
		}
		a.facts.observeMatch(v, count)
		a.facts.observeNumber(n, count, a.cfg.CollectStatistics)

	case a.current.Base == lattice.Boolean:
		vocab := a.current.Modifier.Vocabulary()
		if vocab == lattice.OneZero {
			if v != "0" && v != "1" {
				return false
			}
			n, _ := a.lattice.ClassifyNumeric(v)
			a.facts.observeMatch(v, count)
			a.facts.observeNumber(n, count, a.cfg.CollectStatistics)
			return true
		}
		mod, _, ok := a.lattice.ClassifyBoolean(v)
		if !ok || mod.Vocabulary() != vocab {
			return false
		}
		if mod&lattice.Localized != 0 && a.current.Modifier&lattice.Localized == 0 {
			a.current = lattice.BooleanType(a.current.Modifier | lattice.Localized).WithSemantic(a.current.Semantic)
		}
		a.facts.observeMatch(v, count)

	case a.current.Base.IsDateType():
		t, err := a.formatter.Parse(v)
		if err != nil {
			return false
		}
		a.facts.observeMatch(v, count)
		a.facts.observeDate(t, v)

	default:
		a.facts.observeMatch(v, count)
	}
	return true
}

func (a *Analyzer) outlier(v string, count int64) {
	a.facts.outlierCount += count
	if !a.revalidating {
		a.reporter.OnOutlier(a.name, v)
	}
	if !a.outliers.Add(v, count) {
		a.backout(v, count)
		return
	}
	if a.facts.validated() >= a.cfg.BackoutMinSamples &&
		float64(a.facts.outlierCount) > float64(a.facts.validated())*a.cfg.Tolerance {
		a.backout("", 0)
	}
}

// backout widens the locked type and re-validates every recorded outlier, plus the
// pending value that could not be recorded
func (a *Analyzer) backout(pending string, pendingCount int64) {
	from := a.current
	to := lattice.StringType
	if from.Base == lattice.Boolean && from.Modifier.Vocabulary() == lattice.OneZero {
		to, _ = a.lattice.Lookup("LONG")
	}
	a.current = to
	a.formatter = nil
	a.plugin = nil
	a.facts.semanticMatches = 0
	a.backouts++

	logging.LogBackout(a.logger, a.name, from.String(), to.String(), a.facts.outlierCount)
	a.reporter.OnBackout(a.name, from, to)

	old := a.outliers
	a.outliers = stats.NewCappedCounter(a.cfg.MaxOutliers)
	a.facts.outlierCount -= old.Total() + pendingCount

	prev := a.revalidating
	a.revalidating = true
	for _, v := range old.Keys() {
		a.validate(v, old.Count(v))
	}
	if pendingCount > 0 {
		a.validate(pending, pendingCount)
	}
	a.revalidating = prev
}

// checkSemantic drops the semantic type once enough samples show it below threshold
func (a *Analyzer) checkSemantic() {
	if a.plugin == nil || a.facts.validated() < a.cfg.BackoutMinSamples {
		return
	}
	if a.semanticRatio()*100 >= float64(plugins.Threshold(a.plugin, a.cfg.PluginThreshold)) {
		return
	}
	from := a.current
	a.plugin = nil
	a.current = a.current.WithSemantic("")
	logging.LogBackout(a.logger, a.name, from.String(), a.current.String(), a.facts.outlierCount)
	a.reporter.OnBackout(a.name, from, a.current)
}

func (a *Analyzer) semanticRatio() float64 {
	validated := a.facts.validated()
	if validated == 0 {
		return 0
	}
	return float64(a.facts.semanticMatches) / float64(validated)
}
