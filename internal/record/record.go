// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package record

// FieldType identifies the semantic meaning of an extracted candidate field.
type FieldType string

const (
	FieldGiven           FieldType = "given"
	FieldSurname         FieldType = "surname"
	FieldMaidenSurname   FieldType = "maiden_surname"
	FieldSpouseGiven     FieldType = "spouse_given"
	FieldSpouseSurname   FieldType = "spouse_surname"
	FieldStatus          FieldType = "status"
	FieldOriginPlace     FieldType = "origin_place"
	FieldResidence       FieldType = "residence"
	FieldBirthPlace      FieldType = "birth_place"
	FieldBirthDate       FieldType = "birth_date"
	FieldDeathDate       FieldType = "death_date"
	FieldUnknownDate     FieldType = "unknown_date"
	FieldNameSuffix      FieldType = "name_suffix"
	FieldNameSuffixRoman FieldType = "name_suffix_roman"
	FieldGender          FieldType = "gender"
	FieldIsSPF           FieldType = "is_spf"
	FieldSPFReason       FieldType = "spf_reason"
)

// Gender values emitted by the extractor. Exactly one gender candidate is
// always present in a parsed record.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// SPF detection reasons. TEXT_MATCH means the keyword was found in the raw
// name itself, FIELD_MATCH means it was found in another input field.
const (
	SPFTextMatch  = "TEXT_MATCH"
	SPFFieldMatch = "FIELD_MATCH"
)

// Parse error codes. All of these are non-fatal: they are attached to the
// record and downgrade confidence rather than aborting extraction.
const (
	ErrNoMatch        = "NO_MATCH"
	ErrNumericInvalid = "NUMERIC_INVALID"
	ErrConflictMaiden = "CONFLICT_MAIDEN"
	ErrConflictSpouse = "CONFLICT_SPOUSE"
	ErrConflictDates  = "CONFLICT_DATES"
)

// Span is a (start, end) byte offset pair into the original raw string.
// Every extracted value carries one as evidence of where it came from.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// IsValid reports whether the span addresses a non-empty substring of a
// string of the given length.
func (s Span) IsValid(length int) bool {
	return s.Start >= 0 && s.End > s.Start && s.End <= length
}

// CandidateField is one typed, confidence-scored extraction candidate.
// Multiple candidates may exist for the same field type; exactly one is
// selected as authoritative per type by maximum confidence.
type CandidateField struct {
	Type         FieldType `json:"type"`
	Value        string    `json:"value"`
	Confidence   float64   `json:"confidence"`
	SourceRuleID string    `json:"source_rule_id"`
	Span         Span      `json:"span"`
	Uncertain    bool      `json:"uncertain,omitempty"`
}

// Evidence cites the exact substring a candidate was derived from.
type Evidence struct {
	Type FieldType `json:"type"`
	Span Span      `json:"span"`
	Text string    `json:"text"`
}

// ParsedRecord is the primary extractor's final output for one raw string.
type ParsedRecord struct {
	Raw string `json:"raw"`

	// Fields holds the single selected (highest-confidence) candidate per
	// field type. Ties are broken by extraction order.
	Fields map[FieldType]CandidateField `json:"fields"`

	// Candidates holds every emitted candidate, in extraction order,
	// including the ones that lost selection. Scoring runs over this list.
	Candidates []CandidateField `json:"candidates"`

	ParseScore      float64    `json:"parse_score"`
	ParseErrors     []string   `json:"parse_errors,omitempty"`
	Notes           []string   `json:"notes,omitempty"`
	UnmatchedTokens []string   `json:"unmatched_tokens,omitempty"`
	EvidenceSpans   []Evidence `json:"evidence_spans,omitempty"`
}

// Field returns the selected candidate for a field type, if any.
func (pr *ParsedRecord) Field(t FieldType) (CandidateField, bool) {
	f, ok := pr.Fields[t]
	return f, ok
}

// HasError reports whether the given parse error code was recorded.
func (pr *ParsedRecord) HasError(code string) bool {
	for _, e := range pr.ParseErrors {
		if e == code {
			return true
		}
	}
	return false
}

// IsSPF reports whether the record was flagged as state-land-fund ownership.
func (pr *ParsedRecord) IsSPF() bool {
	f, ok := pr.Fields[FieldIsSPF]
	return ok && f.Value == "true"
}

// Minor reports whether the record carries a minor status marker.
func (pr *ParsedRecord) Minor() bool {
	f, ok := pr.Fields[FieldStatus]
	if !ok {
		return false
	}
	return f.Value == "maloletý" || f.Value == "maloletá"
}

// LegacyTag is the legacy tagger's flat output unit. It is untyped compared
// to CandidateField and uses the legacy key vocabulary.
type LegacyTag struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Uncertain bool   `json:"uncertain,omitempty"`
}

// TagSource identifies which parser produced a tag.
type TagSource string

const (
	SourceAdvanced TagSource = "advanced"
	SourceSystem   TagSource = "system"
	SourceMerged   TagSource = "merged"
)

// SourcedTag is a tag with provenance, the unit the reconciler works on.
type SourcedTag struct {
	Key        string    `json:"key"`
	Value      string    `json:"value"`
	Confidence float64   `json:"confidence"`
	Source     TagSource `json:"source"`
}

// MergedTag is the reconciler's output: one per distinct key across both
// parsers, with discarded alternatives kept for audit.
type MergedTag struct {
	Key          string       `json:"key"`
	Value        string       `json:"value"`
	Confidence   float64      `json:"confidence"`
	Source       TagSource    `json:"source"`
	Alternatives []SourcedTag `json:"alternatives,omitempty"`
	Conflict     bool         `json:"conflict,omitempty"`
	Reasoning    string       `json:"reasoning,omitempty"`
}

// Clamp bounds a confidence or score value to [0,1].
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
