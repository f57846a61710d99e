/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: locale.go
Description: Locale numeric and date context for column inference. Loads the embedded
YAML locale resources, matches requested BCP 47 tags against them, and caches one shared,
read-only Context per locale for every analyzer that asks for it.
*/

package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed resources/*.yaml
var resources embed.FS

// DefaultTag is used when no locale is configured
const DefaultTag = "en-US"

// DateOrder is the conventional ordering of date fields for a locale
type DateOrder string

const (
	DayFirst   DateOrder = "day_first"
	MonthFirst DateOrder = "month_first"
	YearFirst  DateOrder = "year_first"
)

// ErrUnsupported is wrapped by Error when no resource matches the requested tag
var ErrUnsupported = errors.New("unsupported locale")

// Error reports a missing or malformed locale resource. It is an initialization
// failure: nothing can be analyzed for the locale.
type Error struct {
	Locale string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("locale %q: %v", e.Locale, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Context holds the numeric and date conventions of one locale.
// A Context is immutable once built and is shared between analyzers.
type Context struct {
	Tag               language.Tag
	Name              string
	DecimalSeparator  rune
	GroupingSeparator rune
	MinusSign         rune
	NegativePrefix    string
	NegativeSuffix    string
	DateOrder         DateOrder
	YesWords          []string
	NoWords           []string
}

// resource mirrors the YAML layout of a locale file
type resource struct {
	Tag               string   `yaml:"tag"`
	DecimalSeparator  string   `yaml:"decimal_separator"`
	GroupingSeparator string   `yaml:"grouping_separator"`
	MinusSign         string   `yaml:"minus_sign"`
	NegativePrefix    string   `yaml:"negative_prefix"`
	NegativeSuffix    string   `yaml:"negative_suffix"`
	DateOrder         string   `yaml:"date_order"`
	YesWords          []string `yaml:"yes_words"`
	NoWords           []string `yaml:"no_words"`
}

// PrefixNegative reports whether negatives are written with a prefix and no suffix
func (c *Context) PrefixNegative() bool {
	return c.NegativePrefix != "" && c.NegativeSuffix == ""
}

// IsMinus reports whether r may be read as a leading minus sign in this locale
func (c *Context) IsMinus(r rune) bool {
	if r == '-' || r == '−' {
		return c.PrefixNegative() || r == c.MinusSign
	}
	return r == c.MinusSign
}

// Parse builds a Context from a YAML resource
func Parse(data []byte) (*Context, error) {
	var res resource
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to decode locale resource: %w", err)
	}

	tag, err := language.Parse(res.Tag)
	if err != nil {
		return nil, fmt.Errorf("invalid tag %q: %w", res.Tag, err)
	}

	decimal, err := singleRune("decimal_separator", res.DecimalSeparator)
	if err != nil {
		return nil, err
	}
	grouping, err := singleRune("grouping_separator", res.GroupingSeparator)
	if err != nil {
		return nil, err
	}
	minus, err := singleRune("minus_sign", res.MinusSign)
	if err != nil {
		return nil, err
	}
	if decimal == grouping {
		return nil, fmt.Errorf("decimal and grouping separators must differ, both are %q", decimal)
	}

	order := DateOrder(res.DateOrder)
	switch order {
	case DayFirst, MonthFirst, YearFirst:
	default:
		return nil, fmt.Errorf("unsupported date_order: %q", res.DateOrder)
	}

	return &Context{
		Tag:               tag,
		Name:              tag.String(),
		DecimalSeparator:  decimal,
		GroupingSeparator: grouping,
		MinusSign:         minus,
		NegativePrefix:    res.NegativePrefix,
		NegativeSuffix:    res.NegativeSuffix,
		DateOrder:         order,
		YesWords:          lowerAll(res.YesWords),
		NoWords:           lowerAll(res.NoWords),
	}, nil
}

func singleRune(field, value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("%s must be exactly one character, got %q", field, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// index of the embedded resources, built once
var (
	indexOnce sync.Once
	indexTags []language.Tag
	indexFile []string
	indexErr  error
	matcher   language.Matcher
)

func buildIndex() {
	entries, err := fs.ReadDir(resources, "resources")
	if err != nil {
		indexErr = err
		return
	}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".yaml")
		tag, err := language.Parse(name)
		if err != nil {
			indexErr = fmt.Errorf("resource %s: %w", entry.Name(), err)
			return
		}
		indexTags = append(indexTags, tag)
		indexFile = append(indexFile, path.Join("resources", entry.Name()))
	}
	matcher = language.NewMatcher(indexTags)
}

// Available lists the tags of the embedded locale resources
func Available() []string {
	indexOnce.Do(buildIndex)
	names := make([]string, 0, len(indexTags))
	for _, tag := range indexTags {
		names = append(names, tag.String())
	}
	sort.Strings(names)
	return names
}

// entry is a once-initialized cache slot; whoever wins LoadOrStore may
// construct it, every other caller only reads the finished Context.
type entry struct {
	once sync.Once
	ctx  *Context
	err  error
}

var cache sync.Map

// Get returns the shared Context for a BCP 47 tag, loading it on first use.
// An empty tag selects DefaultTag.
func Get(tag string) (*Context, error) {
	if tag == "" {
		tag = DefaultTag
	}
	v, _ := cache.LoadOrStore(tag, &entry{})
	e := v.(*entry)
	e.once.Do(func() {
		e.ctx, e.err = load(tag)
	})
	return e.ctx, e.err
}

// MustGet is Get for static tags known to be embedded
func MustGet(tag string) *Context {
	ctx, err := Get(tag)
	if err != nil {
		panic(err)
	}
	return ctx
}

// exactIndex finds the resource for the tag's language and most likely region
func exactIndex(want language.Tag) int {
	base, _ := want.Base()
	region, _ := want.Region()
	for i, tag := range indexTags {
		b, _ := tag.Base()
		r, _ := tag.Region()
		if b == base && r == region {
			return i
		}
	}
	return -1
}

// matchIndex finds the closest resource sharing the tag's language. The matcher falls
// back to its first tag for unrelated languages, so only a high confidence match may
// cross languages.
func matchIndex(want language.Tag) int {
	_, idx, confidence := matcher.Match(want)
	if confidence == language.No {
		return -1
	}
	base, _ := want.Base()
	matched, _ := indexTags[idx].Base()
	if matched != base && confidence < language.High {
		return -1
	}
	return idx
}

func load(tag string) (*Context, error) {
	indexOnce.Do(buildIndex)
	if indexErr != nil {
		return nil, &Error{Locale: tag, Err: indexErr}
	}

	want, err := language.Parse(tag)
	if err != nil {
		return nil, &Error{Locale: tag, Err: err}
	}

	idx := exactIndex(want)
	if idx < 0 {
		idx = matchIndex(want)
		if idx < 0 {
			return nil, &Error{Locale: tag, Err: ErrUnsupported}
		}
	}

	data, err := resources.ReadFile(indexFile[idx])
	if err != nil {
		return nil, &Error{Locale: tag, Err: err}
	}

	ctx, err := Parse(data)
	if err != nil {
		return nil, &Error{Locale: tag, Err: err}
	}
	return ctx, nil
}
