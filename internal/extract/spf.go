// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"urbar-parse/internal/record"
)

// detectSPF tests the raw name and every other input field for
// state-land-fund mentions. A keyword in the name text scores 0.8, the
// canonical full phrase 1.0; a match in another field scores at least 0.9
// with the FIELD_MATCH reason. When both trigger, the maximum confidence
// wins and the reason follows the winner.
func (e *Extractor) detectSPF(raw string, otherFields []string) []record.CandidateField {
	confidence := 0.0
	reason := ""
	span := record.Span{Start: 0, End: len(raw)}

	ruleID := ""
	if loc := e.canonicalIndex(raw); loc != nil {
		confidence = 1.0
		reason = record.SPFTextMatch
		ruleID = "spf.canonical"
		span = record.Span{Start: loc[0], End: loc[1]}
	} else if m := e.rules.SPFKeyword.FindStringSubmatchIndex(raw); m != nil {
		confidence = 0.8
		reason = record.SPFTextMatch
		ruleID = "spf.text"
		span = record.Span{Start: m[2], End: m[3]}
	}

	for _, field := range otherFields {
		if field == "" {
			continue
		}
		if e.canonicalIndex(field) != nil || e.rules.SPFKeyword.MatchString(field) {
			if confidence < 0.9 {
				confidence = 0.9
				reason = record.SPFFieldMatch
				ruleID = "spf.field"
				span = record.Span{Start: 0, End: len(raw)}
			}
			break
		}
	}

	if confidence == 0 {
		return nil
	}

	return []record.CandidateField{
		{
			Type:         record.FieldIsSPF,
			Value:        "true",
			Confidence:   confidence,
			SourceRuleID: ruleID,
			Span:         span,
		},
		{
			Type:         record.FieldSPFReason,
			Value:        reason,
			Confidence:   confidence,
			SourceRuleID: ruleID,
			Span:         span,
		},
	}
}

func (e *Extractor) canonicalIndex(s string) []int {
	if e.rules.SPFCanonical == nil {
		return nil
	}
	return e.rules.SPFCanonical.FindStringIndex(s)
}
