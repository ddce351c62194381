// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strings"
	"unicode"

	"urbar-parse/internal/normalize"
	"urbar-parse/internal/record"
	"urbar-parse/internal/segment"
)

// headToken is a whitespace-delimited token of the marker-stripped head,
// with its span in the original raw string.
type headToken struct {
	text string
	span record.Span
}

// splitName runs the given/surname heuristic over the head after every
// marker match (including an extracted maiden-surname phrase) has been
// blanked out, so marker values cannot pollute the name split. Text after
// the first comma is auxiliary and is returned as unmatched tokens.
func (e *Extractor) splitName(head segment.Clause, matchedRanges [][2]int) ([]record.CandidateField, []string) {
	if head.Text == "" {
		return nil, nil
	}

	// Blank matched ranges with spaces; byte offsets stay valid.
	stripped := []byte(head.Text)
	for _, r := range matchedRanges {
		for i := r[0]; i < r[1] && i < len(stripped); i++ {
			stripped[i] = ' '
		}
	}

	nameText := string(stripped)
	var auxiliary string
	if comma := strings.IndexByte(nameText, ','); comma >= 0 {
		auxiliary = nameText[comma+1:]
		nameText = nameText[:comma]
	}

	tokens := tokenize(nameText, head.Span.Start)
	leftover := tokenStrings(tokenize(auxiliary, 0))

	switch len(tokens) {
	case 0:
		return nil, leftover
	case 1:
		return []record.CandidateField{
			surnameField(tokens[0], 0.4, "name.single"),
		}, leftover
	case 2:
		return e.splitTwoTokens(tokens), leftover
	default:
		return e.splitManyTokens(tokens), leftover
	}
}

// splitTwoTokens resolves the two-token case by a priority chain:
// ALL-CAPS, feminine suffix, dictionary, positional fallback.
func (e *Extractor) splitTwoTokens(tokens []headToken) []record.CandidateField {
	first, second := tokens[0], tokens[1]

	// (a) exactly one all-uppercase token is the surname.
	firstCaps, secondCaps := isAllUpper(first.text), isAllUpper(second.text)
	if firstCaps != secondCaps {
		if firstCaps {
			return namePair(first, second, 0.8, "name.allcaps")
		}
		return namePair(second, first, 0.8, "name.allcaps")
	}

	// (b) a feminine surname suffix decides.
	if hasFeminineSuffix(first.text) {
		return namePair(first, second, 0.8, "name.suffix")
	}
	if hasFeminineSuffix(second.text) {
		return namePair(second, first, 0.8, "name.suffix")
	}

	// (c) exactly one known given name.
	firstGiven, secondGiven := e.dict.IsGivenName(first.text), e.dict.IsGivenName(second.text)
	if firstGiven != secondGiven {
		if firstGiven {
			return namePair(second, first, 0.85, "name.dict")
		}
		return namePair(first, second, 0.85, "name.dict")
	}

	// (d) both known: first is the given name, second is read as surname.
	if firstGiven && secondGiven {
		return namePair(second, first, 0.7, "name.dict-both")
	}

	// (e) positional fallback encoding the "Surname Given" convention.
	return namePair(first, second, 0.6, "name.positional")
}

// splitManyTokens handles three or more tokens: the first ALL-CAPS or
// feminine-suffixed token is the surname, the rest join as the given name.
func (e *Extractor) splitManyTokens(tokens []headToken) []record.CandidateField {
	for i, tok := range tokens {
		if isAllUpper(tok.text) || hasFeminineSuffix(tok.text) {
			rest := append(append([]headToken{}, tokens[:i]...), tokens[i+1:]...)
			return nameJoined(tok, rest, 0.7, "name.multi")
		}
	}
	last := tokens[len(tokens)-1]
	return nameJoined(last, tokens[:len(tokens)-1], 0.5, "name.multi-positional")
}

func namePair(surname, given headToken, conf float64, ruleID string) []record.CandidateField {
	return []record.CandidateField{
		surnameField(surname, conf, ruleID),
		{
			Type:         record.FieldGiven,
			Value:        normalize.TitleCase(given.text),
			Confidence:   conf,
			SourceRuleID: ruleID,
			Span:         given.span,
		},
	}
}

func nameJoined(surname headToken, given []headToken, conf float64, ruleID string) []record.CandidateField {
	out := []record.CandidateField{surnameField(surname, conf, ruleID)}
	if len(given) == 0 {
		return out
	}
	span := record.Span{Start: given[0].span.Start, End: given[len(given)-1].span.End}
	return append(out, record.CandidateField{
		Type:         record.FieldGiven,
		Value:        normalize.TitleCase(strings.Join(tokenStrings(given), " ")),
		Confidence:   conf,
		SourceRuleID: ruleID,
		Span:         span,
	})
}

func surnameField(tok headToken, conf float64, ruleID string) record.CandidateField {
	return record.CandidateField{
		Type:         record.FieldSurname,
		Value:        normalize.TitleCase(tok.text),
		Confidence:   conf,
		SourceRuleID: ruleID,
		Span:         tok.span,
	}
}

// tokenize splits on whitespace, tracking spans relative to the raw string
// via the clause offset. Leading and trailing punctuation is trimmed from
// tokens but spans keep the trimmed shape.
func tokenize(text string, offset int) []headToken {
	var tokens []headToken
	i := 0
	for i < len(text) {
		if text[i] == ' ' || text[i] == '\t' {
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] != ' ' && text[j] != '\t' {
			j++
		}
		tok := text[i:j]
		start, end := i, j
		for len(tok) > 0 && isTrimByte(tok[0]) {
			tok = tok[1:]
			start++
		}
		for len(tok) > 0 && isTrimByte(tok[len(tok)-1]) {
			tok = tok[:len(tok)-1]
			end--
		}
		if tok != "" {
			tokens = append(tokens, headToken{text: tok, span: record.Span{Start: offset + start, End: offset + end}})
		}
		i = j
	}
	return tokens
}

func isTrimByte(b byte) bool {
	switch b {
	case ',', ';', '.', ':', '-', '"', '\'':
		return true
	}
	return false
}

// titleToken normalizes the casing of a single marker-captured name token.
func titleToken(tok string) string {
	return normalize.TitleCase(tok)
}

func tokenStrings(tokens []headToken) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.text
	}
	return out
}

// isAllUpper reports whether the token has at least two letters and every
// letter is uppercase: "JAROŠ" qualifies, "Novák" does not.
func isAllUpper(tok string) bool {
	letters := 0
	for _, r := range tok {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= 2
}

// hasFeminineSuffix reports the Slovak feminine surname endings.
func hasFeminineSuffix(tok string) bool {
	lower := strings.ToLower(tok)
	return strings.HasSuffix(lower, "ová") || strings.HasSuffix(lower, "ná")
}
