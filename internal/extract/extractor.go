// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extract implements the primary ("advanced") parser: marker-rule
// extraction over the segmented raw string, windowed date disambiguation,
// the given/surname heuristic, gender inference, state-land-fund detection,
// conflict detection and record scoring.
//
// The extractor is a pure function of (compiled rules, dictionary, input
// record). It never fails on malformed input: unparseable fragments land in
// notes and unmatched-token buckets and the record is emitted regardless.
package extract

import (
	"strings"

	"urbar-parse/internal/names"
	"urbar-parse/internal/record"
	"urbar-parse/internal/rules"
	"urbar-parse/internal/segment"
)

// Extractor applies the compiled marker rule set. It is immutable after
// construction and safe for concurrent use across workers.
type Extractor struct {
	rules *rules.Set
	dict  *names.Dictionary
}

// New builds an extractor from a compiled rule set and the shared
// given-name dictionary.
func New(rs *rules.Set, dict *names.Dictionary) *Extractor {
	return &Extractor{rules: rs, dict: dict}
}

// clauseResult carries what one clause pass produced, plus the clause-local
// full-match ranges needed to strip marker phrases before the name
// heuristic runs on the head.
type clauseResult struct {
	candidates    []record.CandidateField
	matchedRanges [][2]int
	wifeMarker    bool
	husbandMarker bool
}

// Parse runs the full extraction pipeline for one input record.
func (e *Extractor) Parse(rec record.Record) *record.ParsedRecord {
	raw := rec.RawName
	pr := &record.ParsedRecord{
		Raw:    raw,
		Fields: make(map[record.FieldType]record.CandidateField),
	}

	for range rec.NumericErrors {
		pr.ParseErrors = appendUnique(pr.ParseErrors, record.ErrNumericInvalid)
	}

	if strings.TrimSpace(raw) == "" {
		pr.ParseErrors = append(pr.ParseErrors, record.ErrNoMatch)
		return pr
	}

	seg := segment.Split(raw)

	headResult := e.extractClause(seg.Head.Text, seg.Head.Span.Start)
	pr.Candidates = append(pr.Candidates, headResult.candidates...)

	wifeMarker := headResult.wifeMarker
	husbandMarker := headResult.husbandMarker

	for _, clause := range seg.Parentheticals {
		res := e.extractClause(clause.Text, clause.Span.Start)
		if len(res.candidates) == 0 {
			pr.Notes = append(pr.Notes, clause.Text)
		}
		pr.Candidates = append(pr.Candidates, res.candidates...)
		wifeMarker = wifeMarker || res.wifeMarker
		husbandMarker = husbandMarker || res.husbandMarker
	}

	if seg.Tail.Text != "" {
		res := e.extractClause(seg.Tail.Text, seg.Tail.Span.Start)
		if len(res.candidates) == 0 {
			pr.Notes = append(pr.Notes, seg.Tail.Text)
		}
		pr.Candidates = append(pr.Candidates, res.candidates...)
		wifeMarker = wifeMarker || res.wifeMarker
		husbandMarker = husbandMarker || res.husbandMarker
	}

	nameCandidates, leftover := e.splitName(seg.Head, headResult.matchedRanges)
	pr.Candidates = append(pr.Candidates, nameCandidates...)
	pr.UnmatchedTokens = leftover

	pr.Candidates = append(pr.Candidates, e.inferGender(raw, seg, pr.Candidates, wifeMarker, husbandMarker))
	pr.Candidates = append(pr.Candidates, e.detectSPF(raw, rec.FieldValues())...)

	detectConflicts(pr)
	selectFields(pr)
	pr.ParseScore = score(pr)

	for _, c := range pr.Candidates {
		pr.EvidenceSpans = append(pr.EvidenceSpans, record.Evidence{
			Type: c.Type,
			Span: c.Span,
			Text: substring(raw, c.Span),
		})
	}

	return pr
}

// extractClause applies the marker patterns to one clause in the fixed
// order: maiden, spouse-as-female, spouse-as-male, status, origin,
// residence, birth place, dates, name suffix, roman suffix.
func (e *Extractor) extractClause(text string, offset int) clauseResult {
	var res clauseResult

	add := func(t record.FieldType, value string, conf float64, ruleID string, start, end int) {
		res.candidates = append(res.candidates, record.CandidateField{
			Type:         t,
			Value:        value,
			Confidence:   conf,
			SourceRuleID: ruleID,
			Span:         record.Span{Start: offset + start, End: offset + end},
		})
	}

	// Maiden surname: "r. Szivecová", "rod. Kováčová", ...
	for _, m := range e.rules.Maiden.FindAllStringSubmatchIndex(text, -1) {
		res.matchedRanges = append(res.matchedRanges, [2]int{m[0], m[1]})
		add(record.FieldMaidenSurname, titleToken(text[m[2]:m[3]]), 1.0, "maiden.marker", m[2], m[3])
	}

	// Spouse named as wife ("ž.Marta Virdzeková") implies a male owner.
	for _, m := range e.rules.SpouseWife.FindAllStringSubmatchIndex(text, -1) {
		res.matchedRanges = append(res.matchedRanges, [2]int{m[0], m[1]})
		res.wifeMarker = true
		add(record.FieldSpouseGiven, titleToken(text[m[2]:m[3]]), 1.0, "spouse.wife", m[2], m[3])
		if m[4] >= 0 {
			add(record.FieldSpouseSurname, titleToken(text[m[4]:m[5]]), 1.0, "spouse.wife", m[4], m[5])
		}
	}

	// Spouse named as husband ("m.Ján") implies a female owner.
	for _, m := range e.rules.SpouseHusband.FindAllStringSubmatchIndex(text, -1) {
		res.matchedRanges = append(res.matchedRanges, [2]int{m[0], m[1]})
		res.husbandMarker = true
		add(record.FieldSpouseGiven, titleToken(text[m[2]:m[3]]), 1.0, "spouse.husband", m[2], m[3])
		if m[4] >= 0 {
			add(record.FieldSpouseSurname, titleToken(text[m[4]:m[5]]), 1.0, "spouse.husband", m[4], m[5])
		}
	}

	// Civil status, kept verbatim as the value.
	for _, m := range e.rules.Status.FindAllStringSubmatchIndex(text, -1) {
		res.matchedRanges = append(res.matchedRanges, [2]int{m[0], m[1]})
		add(record.FieldStatus, text[m[2]:m[3]], 1.0, "status.word", m[2], m[3])
	}

	// Origin, residence, birth place.
	for _, m := range e.rules.Origin.FindAllStringSubmatchIndex(text, -1) {
		res.matchedRanges = append(res.matchedRanges, [2]int{m[0], m[1]})
		add(record.FieldOriginPlace, text[m[2]:m[3]], 1.0, "origin.marker", m[2], m[3])
	}
	for _, m := range e.rules.Residence.FindAllStringSubmatchIndex(text, -1) {
		res.matchedRanges = append(res.matchedRanges, [2]int{m[0], m[1]})
		add(record.FieldResidence, text[m[2]:m[3]], 1.0, "residence.marker", m[2], m[3])
	}
	for _, m := range e.rules.BirthPlace.FindAllStringSubmatchIndex(text, -1) {
		res.matchedRanges = append(res.matchedRanges, [2]int{m[0], m[1]})
		add(record.FieldBirthPlace, text[m[2]:m[3]], 1.0, "birthplace.marker", m[2], m[3])
	}

	// Contextual dates.
	for _, dc := range e.classifyDates(text) {
		res.matchedRanges = append(res.matchedRanges, [2]int{dc.start, dc.end})
		add(dc.fieldType, dc.value, dc.confidence, dc.ruleID, dc.start, dc.end)
	}

	// Generational and roman-numeral suffixes.
	for _, m := range e.rules.Suffix.FindAllStringSubmatchIndex(text, -1) {
		res.matchedRanges = append(res.matchedRanges, [2]int{m[0], m[1]})
		add(record.FieldNameSuffix, text[m[2]:m[3]], 1.0, "suffix.word", m[2], m[3])
	}
	if m := e.rules.RomanSuffix.FindStringSubmatchIndex(text); m != nil {
		res.matchedRanges = append(res.matchedRanges, [2]int{m[0], m[1]})
		add(record.FieldNameSuffixRoman, strings.TrimSuffix(text[m[2]:m[3]], "."), 1.0, "suffix.roman", m[2], m[3])
	}

	return res
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func substring(raw string, sp record.Span) string {
	if !sp.IsValid(len(raw)) {
		return ""
	}
	return raw[sp.Start:sp.End]
}
