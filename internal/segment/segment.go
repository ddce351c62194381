// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package segment splits a raw owner-name string into its head, its
// parenthetical clauses and its tail. It only computes boundaries; all
// interpretation happens downstream. Offsets into the original string are
// tracked so extracted values can cite exact substrings as evidence.
package segment

import (
	"strings"

	"urbar-parse/internal/record"
)

// Clause is one segmented piece of the raw string with its span.
type Clause struct {
	Text string
	Span record.Span
}

// Segment is the boundary decomposition of one raw string.
type Segment struct {
	Head           Clause
	Parentheticals []Clause
	Tail           Clause
}

// Split segments a raw string. Parenthetical groups are matched non-nested,
// first "(" to the first following ")", in document order. Input without
// parentheses yields head = full text, no parentheticals, empty tail.
func Split(raw string) Segment {
	firstOpen := strings.IndexByte(raw, '(')
	if firstOpen < 0 {
		return Segment{Head: clause(raw, 0, len(raw))}
	}

	seg := Segment{Head: clause(raw, 0, firstOpen)}

	pos := firstOpen
	lastClose := firstOpen
	for pos < len(raw) {
		open := strings.IndexByte(raw[pos:], '(')
		if open < 0 {
			break
		}
		open += pos
		close := strings.IndexByte(raw[open+1:], ')')
		if close < 0 {
			// Unbalanced trailing "(": treat the remainder as one clause.
			if c := clause(raw, open+1, len(raw)); c.Text != "" {
				seg.Parentheticals = append(seg.Parentheticals, c)
			}
			lastClose = len(raw)
			break
		}
		close += open + 1

		if c := clause(raw, open+1, close); c.Text != "" {
			seg.Parentheticals = append(seg.Parentheticals, c)
		}
		lastClose = close + 1
		pos = close + 1
	}

	if lastClose < len(raw) {
		if c := clause(raw, lastClose, len(raw)); c.Text != "" {
			seg.Tail = c
		}
	}

	return seg
}

// clause builds a Clause for [start,end), with whitespace trimmed off both
// the text and the span so Text is always exactly raw[Span.Start:Span.End].
func clause(raw string, start, end int) Clause {
	sp := trimmedSpan(raw, start, end)
	return Clause{Text: raw[sp.Start:sp.End], Span: sp}
}

// trimmedSpan narrows [start,end) to exclude leading and trailing
// whitespace so spans always address the visible text.
func trimmedSpan(raw string, start, end int) record.Span {
	for start < end {
		r := raw[start]
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			start++
			continue
		}
		break
	}
	for end > start {
		r := raw[end-1]
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			end--
			continue
		}
		break
	}
	return record.Span{Start: start, End: end}
}
