// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core wires the pipeline together: one raw record flows through
// the segmenting primary extractor and the legacy tagger independently, and
// the reconciler merges both tag sets. The engine is built once per process
// and is safe to share across workers; each record's processing is pure and
// independent.
package core

import (
	"strings"

	"urbar-parse/internal/extract"
	"urbar-parse/internal/legacy"
	"urbar-parse/internal/names"
	"urbar-parse/internal/observability"
	"urbar-parse/internal/reconcile"
	"urbar-parse/internal/record"
	"urbar-parse/internal/rules"
)

// Engine holds the compiled rule set, the shared dictionary and both
// parsers. Immutable after construction.
type Engine struct {
	extractor *extract.Extractor
	tagger    *legacy.Tagger
	observer  *observability.StandardObserver
}

// NewEngine compiles the marker rules (from the embedded defaults, or the
// user rules file when rulesPath is non-empty) and builds both parsers.
func NewEngine(rulesPath string, observer *observability.StandardObserver) (*Engine, error) {
	ruleSet, err := rules.Load(rulesPath)
	if err != nil {
		return nil, err
	}
	dict := names.Load()

	return &Engine{
		extractor: extract.New(ruleSet, dict),
		tagger:    legacy.New(dict),
		observer:  observer,
	}, nil
}

// Result is the complete output for one record: the structured parse, the
// legacy tags, and the reconciled tag list with its conflicts.
type Result struct {
	Record     record.Record        `json:"record"`
	Parsed     *record.ParsedRecord `json:"parsed"`
	LegacyTags []record.LegacyTag   `json:"legacy_tags,omitempty"`
	MergedTags []record.MergedTag   `json:"merged_tags,omitempty"`
	Conflicts  []record.MergedTag   `json:"conflicts,omitempty"`
}

// Process runs the full pipeline for one input record.
func (e *Engine) Process(rec record.Record) *Result {
	var finish func(bool, map[string]interface{})
	if e.observer != nil {
		finish = e.observer.StartTiming("engine", "process_record", rec.Territory)
	}

	parsed := e.extractor.Parse(rec)
	legacyTags := e.tagger.Tag(rec.RawName)
	merged := reconcile.Merge(reconcile.AdvancedTags(parsed), reconcile.SystemTags(legacyTags))

	result := &Result{
		Record:     rec,
		Parsed:     parsed,
		LegacyTags: legacyTags,
		MergedTags: merged,
		Conflicts:  reconcile.Conflicts(merged),
	}

	if finish != nil {
		finish(true, map[string]interface{}{
			"parse_score":  parsed.ParseScore,
			"merged_tags":  len(merged),
			"conflicts":    len(result.Conflicts),
			"parse_errors": len(parsed.ParseErrors),
		})
	}

	return result
}

// Parse exposes the primary extractor alone, for single-string previews.
func (e *Engine) Parse(raw string) *record.ParsedRecord {
	return e.extractor.Parse(record.Record{RawName: strings.TrimSpace(raw)})
}

// Tag exposes the legacy tagger alone.
func (e *Engine) Tag(raw string) []record.LegacyTag {
	return e.tagger.Tag(raw)
}

// Reconcile merges an already-parsed record with an independently produced
// legacy tag list.
func Reconcile(parsed *record.ParsedRecord, legacyTags []record.LegacyTag) []record.MergedTag {
	return reconcile.Merge(reconcile.AdvancedTags(parsed), reconcile.SystemTags(legacyTags))
}

// ConfidenceLevel buckets a score for output filtering.
func ConfidenceLevel(score float64) string {
	switch {
	case score >= 0.8:
		return "high"
	case score >= 0.5:
		return "medium"
	default:
		return "low"
	}
}

// ParseConfidenceLevels converts a comma-separated confidence level string
// into a map. "all" or empty string enables every level.
func ParseConfidenceLevels(levels string) map[string]bool {
	result := map[string]bool{
		"high":   false,
		"medium": false,
		"low":    false,
	}

	if levels == "all" || levels == "" {
		result["high"] = true
		result["medium"] = true
		result["low"] = true
		return result
	}

	for _, level := range strings.Split(levels, ",") {
		switch strings.ToLower(strings.TrimSpace(level)) {
		case "high", "medium", "low":
			result[strings.ToLower(strings.TrimSpace(level))] = true
		}
	}

	return result
}
