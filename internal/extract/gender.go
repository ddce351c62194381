// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"urbar-parse/internal/record"
	"urbar-parse/internal/segment"
)

// inferGender emits exactly one gender candidate. The default is male at
// 0.6, reproducing the historical register's bias. Overrides, in order: a
// husband marker or female minor status forces female at 0.9; a wife marker
// or male minor status forces male at 0.9; a feminine surname suffix forces
// female at 0.8; otherwise male is confirmed at 0.6.
func (e *Extractor) inferGender(raw string, seg segment.Segment, candidates []record.CandidateField, wifeMarker, husbandMarker bool) record.CandidateField {
	span := seg.Head.Span
	if !span.IsValid(len(raw)) {
		span = record.Span{Start: 0, End: len(raw)}
	}

	gender := func(value string, conf float64, ruleID string, sp record.Span) record.CandidateField {
		if !sp.IsValid(len(raw)) {
			sp = span
		}
		return record.CandidateField{
			Type:         record.FieldGender,
			Value:        value,
			Confidence:   conf,
			SourceRuleID: ruleID,
			Span:         sp,
		}
	}

	var surname record.CandidateField
	var statusSpan record.Span
	femaleStatus, maleStatus := false, false
	for _, c := range candidates {
		switch c.Type {
		case record.FieldStatus:
			switch c.Value {
			case "maloletá":
				femaleStatus = true
				statusSpan = c.Span
			case "maloletý":
				maleStatus = true
				statusSpan = c.Span
			}
		case record.FieldSurname:
			if c.Confidence > surname.Confidence {
				surname = c
			}
		}
	}

	switch {
	case husbandMarker:
		return gender(record.GenderFemale, 0.9, "gender.spouse", span)
	case femaleStatus:
		return gender(record.GenderFemale, 0.9, "gender.status", statusSpan)
	case wifeMarker:
		return gender(record.GenderMale, 0.9, "gender.spouse", span)
	case maleStatus:
		return gender(record.GenderMale, 0.9, "gender.status", statusSpan)
	case surname.Value != "" && hasFeminineSuffix(surname.Value):
		return gender(record.GenderFemale, 0.8, "gender.surname", surname.Span)
	default:
		return gender(record.GenderMale, 0.6, "gender.default", span)
	}
}
