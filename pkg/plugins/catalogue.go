/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: catalogue.go
Description: Declarative plugins loaded from YAML. Regex plugins match the whole value
against a pattern; list plugins check membership in a closed vocabulary. Both may require
the column name to match a header pattern before they are tried.
*/

package plugins

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kleascm/columnscout/pkg/lattice"
)

//go:embed catalogue/*.yaml
var catalogue embed.FS

// Definition is one catalogue entry
type Definition struct {
	Qualifier string   `yaml:"qualifier"`
	Kind      string   `yaml:"kind"`
	BaseTypes []string `yaml:"base_types"`
	Priority  int      `yaml:"priority"`
	Threshold int      `yaml:"threshold"`
	RegExp    string   `yaml:"regexp"`
	Header    string   `yaml:"header"`
	Values    []string `yaml:"values"`
}

// Catalogue is the YAML document layout
type Catalogue struct {
	Plugins []Definition `yaml:"plugins"`
}

// declarative is a regex or list plugin built from a Definition
type declarative struct {
	base
	header *regexp.Regexp
	match  *regexp.Regexp
	values map[string]bool
}

func (d *declarative) Applies(ctx MatchContext) bool {
	if !d.base.Applies(ctx) {
		return false
	}
	return d.header == nil || d.header.MatchString(ctx.ColumnName)
}

func (d *declarative) IsValid(value string) bool {
	if d.values != nil {
		return d.values[strings.ToUpper(value)]
	}
	return d.match.MatchString(value)
}

// NewDeclarative builds a plugin from a catalogue entry
func NewDeclarative(def Definition) (Plugin, error) {
	if def.Qualifier == "" {
		return nil, fmt.Errorf("catalogue entry has no qualifier")
	}
	if def.RegExp == "" {
		return nil, fmt.Errorf("plugin %s: regexp is required", def.Qualifier)
	}
	if len(def.BaseTypes) == 0 {
		return nil, fmt.Errorf("plugin %s: base_types is required", def.Qualifier)
	}

	d := &declarative{base: base{
		qualifier: def.Qualifier,
		priority:  def.Priority,
		threshold: def.Threshold,
		regexp:    def.RegExp,
	}}
	for _, name := range def.BaseTypes {
		bt, err := lattice.ParseBaseType(name)
		if err != nil {
			return nil, fmt.Errorf("plugin %s: %w", def.Qualifier, err)
		}
		d.baseTypes = append(d.baseTypes, bt)
	}

	if def.Header != "" {
		re, err := regexp.Compile(def.Header)
		if err != nil {
			return nil, fmt.Errorf("plugin %s: invalid header pattern: %w", def.Qualifier, err)
		}
		d.header = re
	}

	switch def.Kind {
	case "", "regex":
		re, err := regexp.Compile("^(?:" + def.RegExp + ")$")
		if err != nil {
			return nil, fmt.Errorf("plugin %s: invalid regexp: %w", def.Qualifier, err)
		}
		d.match = re
	case "list":
		if len(def.Values) == 0 {
			return nil, fmt.Errorf("plugin %s: list plugin has no values", def.Qualifier)
		}
		d.values = make(map[string]bool, len(def.Values))
		for _, v := range def.Values {
			d.values[strings.ToUpper(v)] = true
		}
	default:
		return nil, fmt.Errorf("plugin %s: unknown kind %q", def.Qualifier, def.Kind)
	}
	return d, nil
}

// LoadCatalogue registers every plugin of a YAML catalogue. Nothing is registered if any
// entry is invalid or already present.
func (r *Registry) LoadCatalogue(rd io.Reader) error {
	var cat Catalogue
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode plugin catalogue: %w", err)
	}

	built := make([]Plugin, 0, len(cat.Plugins))
	seen := make(map[string]bool, len(cat.Plugins))
	for _, def := range cat.Plugins {
		p, err := NewDeclarative(def)
		if err != nil {
			return err
		}
		if _, exists := r.Get(p.Qualifier()); exists || seen[p.Qualifier()] {
			return fmt.Errorf("plugin %s already registered", p.Qualifier())
		}
		seen[p.Qualifier()] = true
		built = append(built, p)
	}
	for _, p := range built {
		if err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) loadEmbedded() error {
	entries, err := catalogue.ReadDir("catalogue")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		data, err := catalogue.ReadFile("catalogue/" + entry.Name())
		if err != nil {
			return err
		}
		if err := r.LoadCatalogue(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}
	}
	return nil
}
