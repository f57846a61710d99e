/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: result.go
Description: Analysis result snapshot. Result is callable at any time; before the type
is locked it computes the lock decision on a copy of the analyzer so training can
continue unaffected.
*/

package analyzer

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/kleascm/columnscout/pkg/lattice"
	"github.com/kleascm/columnscout/pkg/metrics"
	"github.com/kleascm/columnscout/pkg/shape"
	"github.com/kleascm/columnscout/pkg/stats"
)

// maxStringStreams is the most token streams rendered as an alternation for a String
// column; beyond it the pattern falls back to a length range
const maxStringStreams = 4

// Result is an immutable snapshot of an analyzer
type Result struct {
	Name                string           `json:"name"`
	SampleCount         int64            `json:"sample_count"`
	MatchCount          int64            `json:"match_count"`
	NullCount           int64            `json:"null_count"`
	BlankCount          int64            `json:"blank_count"`
	OutlierCount        int64            `json:"outlier_count"`
	RegExp              string           `json:"regexp"`
	TypeID              string           `json:"type_id"`
	BaseType            lattice.BaseType `json:"base_type"`
	TypeModifier        string           `json:"type_modifier,omitempty"`
	SemanticType        string           `json:"semantic_type,omitempty"`
	Confidence          float64          `json:"confidence"`
	Min                 string           `json:"min,omitempty"`
	Max                 string           `json:"max,omitempty"`
	MinLength           int              `json:"min_length"`
	MaxLength           int              `json:"max_length"`
	Mean                *float64         `json:"mean,omitempty"`
	StandardDeviation   *float64         `json:"standard_deviation,omitempty"`
	TopK                []string         `json:"top_k,omitempty"`
	BottomK             []string         `json:"bottom_k,omitempty"`
	Cardinality         map[string]int64 `json:"cardinality"`
	CardinalityCapped   bool             `json:"cardinality_capped"`
	CardinalityOverflow int64            `json:"cardinality_overflow"`
	Outliers            map[string]int64 `json:"outliers"`
	ShapeCount          int              `json:"shape_count"`
	Shapes              map[string]int64 `json:"shapes"`
	LeadingZeroCount    int64            `json:"leading_zero_count"`
	DecimalSeparator    string           `json:"decimal_separator,omitempty"`
	LeadingWhiteSpace   bool             `json:"leading_white_space"`
	TrailingWhiteSpace  bool             `json:"trailing_white_space"`
	MultiLine           bool             `json:"multiline"`
	DateFormat          string           `json:"date_format,omitempty"`
	Locale              string           `json:"locale"`
	Locked              bool             `json:"locked"`
	Backouts            int              `json:"backouts"`
	StructureSignature  string           `json:"structure_signature"`
	DataSignature       string           `json:"data_signature"`
}

// Result returns a snapshot of the analysis so far
func (a *Analyzer) Result() *Result {
	if a.state != Locked {
		r := a.preview().snapshot()
		r.Locked = false
		return r
	}
	return a.snapshot()
}

// preview copies the pre-lock state and locks the copy
func (a *Analyzer) preview() *Analyzer {
	c := *a
	c.reporter = metrics.NopReporter{}
	c.logger = discardLogger()
	c.window = append([]string(nil), a.window...)
	c.windowCounts = make(map[string]int64, len(a.windowCounts))
	for k, v := range a.windowCounts {
		c.windowCounts[k] = v
	}
	f := *a.facts
	f.cardinality = stats.NewCappedCounter(a.cfg.MaxCardinality)
	f.numbers = stats.NewTopBottomK(a.facts.numbers.K(), compareDecimals)
	f.texts = stats.NewTopBottomK(a.facts.texts.K(), strings.Compare)
	f.dates = stats.NewTopBottomK(a.facts.dates.K(), compareDates)
	c.facts = &f
	c.shapes = shape.NewGeneralizer(a.cfg.MaxShapes, a.cfg.MaxInputLength)
	c.shapes.Merge(a.shapes)
	c.outliers = stats.NewCappedCounter(a.cfg.MaxOutliers)
	c.lock()
	return &c
}

func (a *Analyzer) snapshot() *Result {
	f := a.facts
	r := &Result{
		Name:                a.name,
		SampleCount:         f.sampleCount,
		MatchCount:          f.matchCount,
		NullCount:           f.nullCount,
		BlankCount:          f.blankCount,
		OutlierCount:        f.outlierCount,
		TypeID:              a.current.ID,
		BaseType:            a.current.Base,
		TypeModifier:        a.current.Modifier.String(),
		MinLength:           max(f.minLength, 0),
		MaxLength:           f.maxLength,
		Cardinality:         f.cardinality.Snapshot(),
		CardinalityCapped:   f.cardinality.Capped(),
		CardinalityOverflow: f.cardinality.Overflow(),
		Outliers:            a.outliers.Snapshot(),
		ShapeCount:          a.shapes.Size(),
		Shapes:              a.shapes.Details(true),
		LeadingZeroCount:    f.leadingZeroCount,
		LeadingWhiteSpace:   f.leadingWhiteSpace,
		TrailingWhiteSpace:  f.trailingWhiteSpace,
		MultiLine:           f.multiLine,
		Locale:              a.locale.Name,
		Locked:              a.state == Locked,
		Backouts:            a.backouts,
	}

	semantic := a.plugin != nil &&
		a.semanticRatio()*100 >= float64(pluginThreshold(a))
	if semantic {
		r.SemanticType = a.plugin.Qualifier()
	}

	a.fillValues(r)
	r.RegExp = a.regExp(semantic)
	r.Confidence = a.confidence(semantic)
	r.StructureSignature = structureSignature(r)
	r.DataSignature = dataSignature(r)
	return r
}

func pluginThreshold(a *Analyzer) int {
	if t := a.plugin.Threshold(); t > 0 {
		return t
	}
	return a.cfg.PluginThreshold
}

// fillValues sets min, max, order statistics and moments for the locked base type
func (a *Analyzer) fillValues(r *Result) {
	f := a.facts
	useNumbers := a.current.Base.IsNumeric() ||
		(a.current.Base == lattice.Boolean && a.current.Modifier.Vocabulary() == lattice.OneZero)

	switch {
	case useNumbers:
		if lo, ok := f.numbers.Min(); ok {
			r.Min = lo.String()
		}
		if hi, ok := f.numbers.Max(); ok {
			r.Max = hi.String()
		}
		if a.cfg.CollectStatistics {
			for _, d := range f.numbers.Top() {
				r.TopK = append(r.TopK, d.String())
			}
			for _, d := range f.numbers.Bottom() {
				r.BottomK = append(r.BottomK, d.String())
			}
			if f.moments.Count() > 0 {
				mean, sd := f.moments.Mean(), f.moments.StdDev()
				r.Mean, r.StandardDeviation = &mean, &sd
			}
		}
		if a.current.Base == lattice.Double {
			r.DecimalSeparator = string(a.lattice.DecimalSeparator(a.current.ID))
		}

	case a.current.Base.IsDateType():
		if lo, ok := f.dates.Min(); ok {
			r.Min = lo.raw
		}
		if hi, ok := f.dates.Max(); ok {
			r.Max = hi.raw
		}
		if a.cfg.CollectStatistics {
			for _, d := range f.dates.Top() {
				r.TopK = append(r.TopK, d.raw)
			}
			for _, d := range f.dates.Bottom() {
				r.BottomK = append(r.BottomK, d.raw)
			}
		}
		if a.formatter != nil {
			r.DateFormat = a.formatter.Format
		}

	default:
		if lo, ok := f.texts.Min(); ok {
			r.Min = lo
		}
		if hi, ok := f.texts.Max(); ok {
			r.Max = hi
		}
		if a.cfg.CollectStatistics {
			r.TopK = f.texts.Top()
			r.BottomK = f.texts.Bottom()
		}
	}
}

// regExp renders the pattern describing every value of the column
func (a *Analyzer) regExp(semantic bool) string {
	f := a.facts
	if f.nonBlank() == 0 {
		return ""
	}

	var body string
	switch {
	case semantic:
		body = a.plugin.RegExp()
	case a.current.Base.IsNumeric():
		body = a.lattice.RegExp(a.current.ID, max(f.minDigits, 0), f.maxDigits)
	case a.current.Base == lattice.Boolean:
		body = a.lattice.BooleanRegExp(a.current.Modifier)
	case a.current.Base.IsDateType() && a.formatter != nil:
		body = a.formatter.RegExp()
	case a.shapes.Overflowed():
		body = shape.CatchAll
	case a.shapes.Size() <= maxStringStreams:
		body = a.shapes.RegExp(false)
	default:
		body = "." + shape.Quantify(max(f.minLength, 1), f.maxLength)
	}

	if f.leadingWhiteSpace {
		body = `\s*` + body
	}
	if f.trailingWhiteSpace {
		body += `\s*`
	}
	return body
}

// confidence is the share of non-blank samples matching the reported type
func (a *Analyzer) confidence(semantic bool) float64 {
	n := a.facts.nonBlank()
	if n == 0 {
		return 0
	}
	matched := a.facts.matchCount
	if semantic {
		matched = a.facts.semanticMatches
	}
	return float64(matched) / float64(n)
}

func digest(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// structureSignature hashes the type and pattern only
func structureSignature(r *Result) string {
	return digest(r.BaseType.String(), r.TypeModifier, r.SemanticType, r.RegExp)
}

// dataSignature hashes the structure together with the observed values
func dataSignature(r *Result) string {
	values, _ := json.Marshal(struct {
		Cardinality map[string]int64 `json:"cardinality"`
		Outliers    map[string]int64 `json:"outliers"`
		TopK        []string         `json:"top_k"`
		BottomK     []string         `json:"bottom_k"`
	}{r.Cardinality, r.Outliers, r.TopK, r.BottomK})
	return digest(r.StructureSignature,
		strconv.FormatInt(r.SampleCount, 10),
		strconv.FormatInt(r.MatchCount, 10),
		strconv.FormatInt(r.NullCount, 10),
		strconv.FormatInt(r.BlankCount, 10),
		r.Min, r.Max, string(values))
}
