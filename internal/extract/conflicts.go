// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"urbar-parse/internal/normalize"
	"urbar-parse/internal/record"
)

// Field weights for the aggregate parse score. Dates and the maiden/spouse
// fields carry the most signal about record identity; core name fields and
// statuses are neutral; everything else is supporting detail.
var fieldWeights = map[record.FieldType]float64{
	record.FieldBirthDate:     2.0,
	record.FieldDeathDate:     2.0,
	record.FieldUnknownDate:   2.0,
	record.FieldMaidenSurname: 1.5,
	record.FieldSpouseGiven:   1.5,
	record.FieldSpouseSurname: 1.5,
	record.FieldGiven:         1.0,
	record.FieldSurname:       1.0,
	record.FieldStatus:        1.0,
}

const defaultFieldWeight = 0.5

// detectConflicts inspects the candidate set for internal contradictions
// and records the corresponding error codes. Conflicting candidates are
// demoted and marked uncertain, never dropped.
func detectConflicts(pr *record.ParsedRecord) {
	if conflictingValues(pr.Candidates, record.FieldMaidenSurname) {
		pr.ParseErrors = append(pr.ParseErrors, record.ErrConflictMaiden)
		demote(pr.Candidates, record.FieldMaidenSurname, 0.5)
	}
	if conflictingValues(pr.Candidates, record.FieldSpouseGiven) {
		pr.ParseErrors = append(pr.ParseErrors, record.ErrConflictSpouse)
		demote(pr.Candidates, record.FieldSpouseGiven, 0.5)
	}

	birth := bestOfType(pr.Candidates, record.FieldBirthDate)
	death := bestOfType(pr.Candidates, record.FieldDeathDate)
	if birth != nil && death != nil && birth.Value >= death.Value {
		// ISO dates compare correctly as strings.
		pr.ParseErrors = append(pr.ParseErrors, record.ErrConflictDates)
		markUncertain(pr.Candidates, record.FieldBirthDate)
		markUncertain(pr.Candidates, record.FieldDeathDate)
	}
}

// conflictingValues reports whether two or more candidates of the type
// carry materially different values (unequal after normalization).
func conflictingValues(candidates []record.CandidateField, t record.FieldType) bool {
	seen := ""
	for _, c := range candidates {
		if c.Type != t {
			continue
		}
		v := normalize.Value(c.Value)
		if seen == "" {
			seen = v
			continue
		}
		if v != seen {
			return true
		}
	}
	return false
}

func demote(candidates []record.CandidateField, t record.FieldType, conf float64) {
	for i := range candidates {
		if candidates[i].Type == t {
			candidates[i].Confidence = conf
			candidates[i].Uncertain = true
		}
	}
}

func markUncertain(candidates []record.CandidateField, t record.FieldType) {
	for i := range candidates {
		if candidates[i].Type == t {
			candidates[i].Uncertain = true
		}
	}
}

func bestOfType(candidates []record.CandidateField, t record.FieldType) *record.CandidateField {
	var best *record.CandidateField
	for i := range candidates {
		if candidates[i].Type != t {
			continue
		}
		if best == nil || candidates[i].Confidence > best.Confidence {
			best = &candidates[i]
		}
	}
	return best
}

// selectFields picks the authoritative candidate per field type: maximum
// confidence, ties broken by extraction order.
func selectFields(pr *record.ParsedRecord) {
	for _, c := range pr.Candidates {
		current, ok := pr.Fields[c.Type]
		if !ok || c.Confidence > current.Confidence {
			pr.Fields[c.Type] = c
		}
	}
}

// score computes the weighted-average confidence across every emitted
// candidate, minus 0.1 per conflict error, clamped to [0,1]. A record with
// zero candidates scores 0.
func score(pr *record.ParsedRecord) float64 {
	if len(pr.Candidates) == 0 {
		return 0
	}

	var weightSum, confSum float64
	for _, c := range pr.Candidates {
		w, ok := fieldWeights[c.Type]
		if !ok {
			w = defaultFieldWeight
		}
		weightSum += w
		confSum += w * c.Confidence
	}
	if weightSum == 0 {
		return 0
	}

	conflicts := 0
	for _, e := range pr.ParseErrors {
		switch e {
		case record.ErrConflictMaiden, record.ErrConflictSpouse, record.ErrConflictDates:
			conflicts++
		}
	}

	return record.Clamp(confSum/weightSum - 0.1*float64(conflicts))
}
