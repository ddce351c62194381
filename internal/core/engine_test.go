// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"strings"
	"testing"

	"urbar-parse/internal/record"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine("", nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func mergedValue(tags []record.MergedTag, key string) (record.MergedTag, bool) {
	for _, m := range tags {
		if m.Key == key {
			return m, true
		}
	}
	return record.MergedTag{}, false
}

func TestProcess_EndToEnd(t *testing.T) {
	engine := newTestEngine(t)
	rec := record.NewRecord("Horná Lehota", "12", "345", "Batóová Júlia r. Szivecová, (z Várkonyu, m.Ján)")

	res := engine.Process(rec)

	if res.Parsed == nil {
		t.Fatal("no parsed record")
	}
	if len(res.LegacyTags) == 0 {
		t.Fatal("no legacy tags")
	}

	// Both parsers agree on the surname; the merged set carries it once.
	surname, ok := mergedValue(res.MergedTags, "priezvisko")
	if !ok {
		t.Fatalf("priezvisko missing: %v", res.MergedTags)
	}
	if surname.Value != "Batóová" {
		t.Errorf("priezvisko = %q", surname.Value)
	}

	maiden, ok := mergedValue(res.MergedTags, "rodne_priezvisko")
	if !ok || maiden.Value != "Szivecová" {
		t.Errorf("rodne_priezvisko = %+v", maiden)
	}

	gender, ok := mergedValue(res.MergedTags, "pohlavie")
	if !ok || gender.Value != record.GenderFemale {
		t.Errorf("pohlavie = %+v", gender)
	}

	// No duplicate keys survive reconciliation.
	seen := map[string]bool{}
	for _, m := range res.MergedTags {
		if seen[m.Key] {
			t.Errorf("duplicate merged key %q", m.Key)
		}
		seen[m.Key] = true
	}

	for _, c := range res.Conflicts {
		if !c.Conflict {
			t.Errorf("non-conflict in Conflicts: %+v", c)
		}
	}
}

func TestProcess_DivergentNameSplitConflicts(t *testing.T) {
	engine := newTestEngine(t)

	// Neither token is a dictionary name: the primary extractor reads the
	// FIRST token as surname, the legacy fallback the LAST. The reconciler
	// must surface that as a conflict rather than silently picking one.
	res := engine.Process(record.Record{RawName: "Bartoš Xenofón"})

	surname, ok := mergedValue(res.MergedTags, "priezvisko")
	if !ok {
		t.Fatalf("priezvisko missing: %v", res.MergedTags)
	}
	if !surname.Conflict {
		t.Errorf("expected surname conflict: %+v", surname)
	}
	if surname.Value != "Bartoš" {
		t.Errorf("winner = %q, want the advanced split", surname.Value)
	}
	if len(res.Conflicts) == 0 {
		t.Error("Conflicts list empty")
	}
}

func TestParseAndTagPreviews(t *testing.T) {
	engine := newTestEngine(t)

	pr := engine.Parse("  Novák Ján  ")
	if f, ok := pr.Field(record.FieldSurname); !ok || f.Value != "Novák" {
		t.Errorf("Parse surname = %+v", f)
	}

	tags := engine.Tag("Novák Ján")
	if len(tags) == 0 {
		t.Fatal("Tag returned nothing")
	}
}

func TestNewEngine_BadRulesPath(t *testing.T) {
	if _, err := NewEngine("/nonexistent/markers.yaml", nil); err == nil {
		t.Error("expected error for missing rules file")
	}
}

func TestRows(t *testing.T) {
	engine := newTestEngine(t)
	rec := record.NewRecord("Horná Lehota", "7", "", "PETRIĽAK Vasiľ (maloletý)")

	owner, tags := engine.Process(rec).Rows()

	if owner.Territory != "Horná Lehota" || owner.RawName != "PETRIĽAK Vasiľ (maloletý)" {
		t.Errorf("owner = %+v", owner)
	}
	if owner.SequenceNumber == nil || *owner.SequenceNumber != 7 {
		t.Errorf("sequence = %v", owner.SequenceNumber)
	}
	if owner.OwnershipListNumber != nil {
		t.Errorf("list number = %v, want nil", owner.OwnershipListNumber)
	}
	if owner.SearchableName != "petrilak vasil" {
		t.Errorf("searchable = %q", owner.SearchableName)
	}
	if owner.Gender != record.GenderMale || !owner.Minor {
		t.Errorf("gender/minor = %q/%v", owner.Gender, owner.Minor)
	}
	if owner.ParseErrors != "" {
		t.Errorf("parse errors = %q", owner.ParseErrors)
	}
	if owner.EvidenceSpans == "" || !strings.Contains(owner.EvidenceSpans, "maloletý") {
		t.Errorf("evidence = %q", owner.EvidenceSpans)
	}

	if len(tags) == 0 {
		t.Fatal("no tag rows")
	}
	for _, tag := range tags {
		if tag.Key == "" || tag.Source == "" {
			t.Errorf("incomplete tag row: %+v", tag)
		}
	}
}

func TestConfidenceLevel(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{0.95, "high"},
		{0.8, "high"},
		{0.79, "medium"},
		{0.5, "medium"},
		{0.49, "low"},
		{0, "low"},
	}
	for _, tt := range tests {
		if got := ConfidenceLevel(tt.score); got != tt.expected {
			t.Errorf("ConfidenceLevel(%v) = %q, want %q", tt.score, got, tt.expected)
		}
	}
}

func TestParseConfidenceLevels(t *testing.T) {
	all := ParseConfidenceLevels("all")
	if !all["high"] || !all["medium"] || !all["low"] {
		t.Errorf("all = %v", all)
	}

	some := ParseConfidenceLevels("High, medium")
	if !some["high"] || !some["medium"] || some["low"] {
		t.Errorf("subset = %v", some)
	}

	empty := ParseConfidenceLevels("")
	if !empty["high"] || !empty["medium"] || !empty["low"] {
		t.Errorf("empty = %v", empty)
	}

	junk := ParseConfidenceLevels("bogus")
	if junk["high"] || junk["medium"] || junk["low"] {
		t.Errorf("junk = %v", junk)
	}
}
