// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"encoding/json"

	"urbar-parse/internal/normalize"
	"urbar-parse/internal/record"
)

// OwnerRow is the flat persistence handoff for one processed record. The
// external store receives exactly one of these per input record plus the
// accompanying tag rows; everything structured (errors, evidence) travels as
// serialized JSON so the row stays schema-stable.
type OwnerRow struct {
	Territory           string  `json:"territory"`
	SequenceNumber      *int    `json:"sequence_number,omitempty"`
	OwnershipListNumber *int    `json:"ownership_list_number,omitempty"`
	RawName             string  `json:"raw_name"`
	SearchableName      string  `json:"searchable_name"`
	Gender              string  `json:"gender,omitempty"`
	Minor               bool    `json:"minor,omitempty"`
	ParseScore          float64 `json:"parse_score"`
	ParseErrors         string  `json:"parse_errors,omitempty"`
	EvidenceSpans       string  `json:"evidence_spans,omitempty"`
}

// TagRow is one reconciled tag flattened for persistence.
type TagRow struct {
	Key        string  `json:"key"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
	Conflict   bool    `json:"conflict,omitempty"`
}

// Rows flattens a processed result into the owner row and its tag rows.
func (r *Result) Rows() (OwnerRow, []TagRow) {
	owner := OwnerRow{
		Territory:           r.Record.Territory,
		SequenceNumber:      r.Record.SequenceNumber,
		OwnershipListNumber: r.Record.OwnershipListNumber,
		RawName:             r.Record.RawName,
		SearchableName:      normalize.SearchableName(r.Record.RawName),
		ParseScore:          r.Parsed.ParseScore,
		Minor:               r.Parsed.Minor(),
	}
	if g, ok := r.Parsed.Field(record.FieldGender); ok {
		owner.Gender = g.Value
	}
	owner.ParseErrors = marshalOrEmpty(r.Parsed.ParseErrors, len(r.Parsed.ParseErrors) == 0)
	owner.EvidenceSpans = marshalOrEmpty(r.Parsed.EvidenceSpans, len(r.Parsed.EvidenceSpans) == 0)

	tags := make([]TagRow, 0, len(r.MergedTags))
	for _, m := range r.MergedTags {
		tags = append(tags, TagRow{
			Key:        m.Key,
			Value:      m.Value,
			Confidence: m.Confidence,
			Source:     string(m.Source),
			Conflict:   m.Conflict,
		})
	}
	return owner, tags
}

func marshalOrEmpty(v interface{}, empty bool) string {
	if empty {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
