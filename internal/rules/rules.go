// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package rules compiles the marker alias lists into the matchers the
// primary extractor runs. The alias lists are data (embedded YAML,
// optionally overridden by a user-supplied file), compiled once at startup;
// the resulting Set is immutable and shared across workers.
package rules

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"urbar-parse/internal/normalize"

	"gopkg.in/yaml.v3"
)

//go:embed markers.yaml
var embeddedMarkers []byte

// Config holds the raw marker alias lists as loaded from YAML.
type Config struct {
	MaidenMarkers        []string `yaml:"maiden_markers"`
	SpouseHusbandMarkers []string `yaml:"spouse_husband_markers"`
	SpouseWifeMarkers    []string `yaml:"spouse_wife_markers"`
	StatusMarkers        []string `yaml:"status_markers"`
	OriginMarkers        []string `yaml:"origin_markers"`
	ResidenceMarkers     []string `yaml:"residence_markers"`
	BirthPlaceMarkers    []string `yaml:"birth_place_markers"`
	BirthKeywords        []string `yaml:"birth_keywords"`
	DeathKeywords        []string `yaml:"death_keywords"`
	NameSuffixes         []string `yaml:"name_suffixes"`
	SPFKeywords          []string `yaml:"spf_keywords"`
	SPFCanonical         string   `yaml:"spf_canonical"`
}

// Set holds the compiled matchers. Capture group 1 of each marker pattern
// is the extracted value; the full match span is used to strip the marker
// phrase before the name heuristic runs.
type Set struct {
	Maiden        *regexp.Regexp
	SpouseHusband *regexp.Regexp
	SpouseWife    *regexp.Regexp
	Status        *regexp.Regexp
	Origin        *regexp.Regexp
	Residence     *regexp.Regexp
	BirthPlace    *regexp.Regexp
	Date          *regexp.Regexp
	Suffix        *regexp.Regexp
	RomanSuffix   *regexp.Regexp
	SPFKeyword    *regexp.Regexp
	SPFCanonical  *regexp.Regexp

	// Diacritic-folded keyword lists for the windowed date classification.
	BirthKeywords []string
	DeathKeywords []string
}

// DefaultConfig returns the embedded marker configuration.
func DefaultConfig() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(embeddedMarkers, cfg); err != nil {
		return nil, fmt.Errorf("error parsing embedded marker rules: %w", err)
	}
	return cfg, nil
}

// LoadConfig returns the marker configuration, overlaying a user-supplied
// YAML file on top of the embedded defaults when path is non-empty. Lists
// present in the file replace the defaults wholesale.
func LoadConfig(path string) (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading marker rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing marker rules file: %w", err)
	}
	return cfg, nil
}

// Compile turns a marker configuration into the matcher set.
func Compile(cfg *Config) (*Set, error) {
	s := &Set{
		BirthKeywords: foldAll(cfg.BirthKeywords),
		DeathKeywords: foldAll(cfg.DeathKeywords),
	}

	var err error
	compile := func(pattern string) *regexp.Regexp {
		if err != nil {
			return nil
		}
		var re *regexp.Regexp
		re, err = regexp.Compile(pattern)
		return re
	}

	// A capitalized token: the value shape for names and places.
	const token = `\p{Lu}[\p{L}'-]*`

	s.Maiden = compile(markerValuePattern(cfg.MaidenMarkers, token))
	s.SpouseHusband = compile(markerSpousePattern(cfg.SpouseHusbandMarkers, token))
	s.SpouseWife = compile(markerSpousePattern(cfg.SpouseWifeMarkers, token))
	s.Status = compile(`(?:^|[\s,;(])(` + alternation(cfg.StatusMarkers) + `)`)
	s.Origin = compile(markerValuePattern(cfg.OriginMarkers, token))
	s.Residence = compile(markerValuePattern(cfg.ResidenceMarkers, token))
	s.BirthPlace = compile(markerValuePattern(cfg.BirthPlaceMarkers, token))
	s.Date = compile(`(\d{1,2})\s*\.\s*(\d{1,2})\s*\.\s*(\d{4})`)
	s.Suffix = compile(`(?:^|[\s,;(])(` + alternation(cfg.NameSuffixes) + `)`)
	s.RomanSuffix = compile(`(?:^|\s)([IVX]{2,4}|[IVX]{1,4}\.)\s*$`)
	s.SPFKeyword = compile(`(?i)(?:^|[\s,;(–-])(` + alternation(cfg.SPFKeywords) + `)`)
	if cfg.SPFCanonical != "" {
		s.SPFCanonical = compile(`(?i)` + strings.ReplaceAll(regexp.QuoteMeta(cfg.SPFCanonical), " ", `\s+`))
	}
	if err != nil {
		return nil, fmt.Errorf("error compiling marker rules: %w", err)
	}
	return s, nil
}

// Load builds the compiled rule set, from the embedded defaults or the
// user-supplied file at path.
func Load(path string) (*Set, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return Compile(cfg)
}

// markerValuePattern builds "marker, then one capitalized token" with the
// token as capture group 1.
func markerValuePattern(markers []string, token string) string {
	return `(?:^|[\s,;(])(?:` + alternation(markers) + `)\s*(` + token + `)`
}

// markerSpousePattern captures a given name and an optional surname after a
// spouse marker: "ž.Marta Virdzeková" yields two groups, "m.Ján" one.
func markerSpousePattern(markers []string, token string) string {
	return `(?:^|[\s,;(])(?:` + alternation(markers) + `)\s*(` + token + `)(?:\s+(` + token + `))?`
}

// alternation joins escaped aliases longest-first so that "rod." wins over
// "r." and multi-word aliases match before their prefixes.
func alternation(aliases []string) string {
	sorted := make([]string, len(aliases))
	copy(sorted, aliases)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	escaped := make([]string, 0, len(sorted))
	for _, a := range sorted {
		if a == "" {
			continue
		}
		e := regexp.QuoteMeta(a)
		// Alias lists are written with single spaces; accept any run of
		// whitespace in the input.
		e = strings.ReplaceAll(e, " ", `\s+`)
		escaped = append(escaped, e)
	}
	return strings.Join(escaped, "|")
}

func foldAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, normalize.Fold(k))
	}
	return out
}
