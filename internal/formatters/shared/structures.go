// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"urbar-parse/internal/core"
	"urbar-parse/internal/formatters"
	"urbar-parse/internal/record"
)

// Response represents the top-level response structure for JSON/YAML output
type Response struct {
	Results []RecordOutput `json:"results" yaml:"results"`
}

// RecordOutput represents one processed record in JSON/YAML format
type RecordOutput struct {
	Territory           string  `json:"territory,omitempty" yaml:"territory,omitempty"`
	SequenceNumber      *int    `json:"sequence_number,omitempty" yaml:"sequence_number,omitempty"`
	OwnershipListNumber *int    `json:"ownership_list_number,omitempty" yaml:"ownership_list_number,omitempty"`
	RawName             string  `json:"raw_name" yaml:"raw_name"`
	ParseScore          float64 `json:"parse_score" yaml:"parse_score"`
	ConfidenceLevel     string  `json:"confidence_level" yaml:"confidence_level"`
	Gender              string  `json:"gender,omitempty" yaml:"gender,omitempty"`
	Minor               bool    `json:"minor,omitempty" yaml:"minor,omitempty"`
	SPF                 bool    `json:"spf,omitempty" yaml:"spf,omitempty"`

	Tags      []TagOutput `json:"tags" yaml:"tags"`
	Conflicts []TagOutput `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`

	ParseErrors []string `json:"parse_errors,omitempty" yaml:"parse_errors,omitempty"`

	// Verbose-only detail.
	Candidates      []record.CandidateField `json:"candidates,omitempty" yaml:"candidates,omitempty"`
	Evidence        []record.Evidence       `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	Notes           []string                `json:"notes,omitempty" yaml:"notes,omitempty"`
	UnmatchedTokens []string                `json:"unmatched_tokens,omitempty" yaml:"unmatched_tokens,omitempty"`
	LegacyTags      []record.LegacyTag      `json:"legacy_tags,omitempty" yaml:"legacy_tags,omitempty"`
}

// TagOutput represents a single reconciled tag in JSON/YAML format
type TagOutput struct {
	Key             string              `json:"key" yaml:"key"`
	Value           string              `json:"value" yaml:"value"`
	Confidence      float64             `json:"confidence" yaml:"confidence"`
	ConfidenceLevel string              `json:"confidence_level" yaml:"confidence_level"`
	Source          string              `json:"source" yaml:"source"`
	Conflict        bool                `json:"conflict,omitempty" yaml:"conflict,omitempty"`
	Reasoning       string              `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	Alternatives    []record.SourcedTag `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
}

// FilterTagsByConfidence filters merged tags based on confidence level settings
func FilterTagsByConfidence(tags []record.MergedTag, options formatters.FormatterOptions) []record.MergedTag {
	var filtered []record.MergedTag
	for _, tag := range tags {
		if options.ConfidenceLevel[core.ConfidenceLevel(tag.Confidence)] {
			filtered = append(filtered, tag)
		}
	}
	return filtered
}

// ConvertResults converts processed records to the JSON/YAML response shape
func ConvertResults(results []*core.Result, options formatters.FormatterOptions) Response {
	outputs := make([]RecordOutput, 0, len(results))
	for _, res := range results {
		if res == nil {
			continue
		}
		outputs = append(outputs, convertResult(res, options))
	}
	return Response{Results: outputs}
}

func convertResult(res *core.Result, options formatters.FormatterOptions) RecordOutput {
	out := RecordOutput{
		Territory:           res.Record.Territory,
		SequenceNumber:      res.Record.SequenceNumber,
		OwnershipListNumber: res.Record.OwnershipListNumber,
		RawName:             res.Record.RawName,
		ParseScore:          res.Parsed.ParseScore,
		ConfidenceLevel:     core.ConfidenceLevel(res.Parsed.ParseScore),
		Minor:               res.Parsed.Minor(),
		SPF:                 res.Parsed.IsSPF(),
		ParseErrors:         res.Parsed.ParseErrors,
	}
	if g, ok := res.Parsed.Field(record.FieldGender); ok {
		out.Gender = g.Value
	}

	for _, tag := range FilterTagsByConfidence(res.MergedTags, options) {
		out.Tags = append(out.Tags, convertTag(tag, options))
	}
	for _, tag := range res.Conflicts {
		out.Conflicts = append(out.Conflicts, convertTag(tag, options))
	}

	if options.Verbose {
		out.Candidates = res.Parsed.Candidates
		out.Evidence = res.Parsed.EvidenceSpans
		out.Notes = res.Parsed.Notes
		out.UnmatchedTokens = res.Parsed.UnmatchedTokens
		out.LegacyTags = res.LegacyTags
	}

	return out
}

func convertTag(tag record.MergedTag, options formatters.FormatterOptions) TagOutput {
	out := TagOutput{
		Key:             tag.Key,
		Value:           tag.Value,
		Confidence:      tag.Confidence,
		ConfidenceLevel: core.ConfidenceLevel(tag.Confidence),
		Source:          string(tag.Source),
		Conflict:        tag.Conflict,
		Reasoning:       tag.Reasoning,
	}
	if options.ShowAlternatives || options.Verbose {
		out.Alternatives = tag.Alternatives
	}
	return out
}
