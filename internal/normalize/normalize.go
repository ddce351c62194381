// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package normalize holds the text normalization helpers shared by the
// extractors, the reconciler and the persistence handoff. All of them are
// pure functions of their input.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Decompose, drop combining marks, recompose. Shared and safe for
	// concurrent use via transform.String.
	diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	parentheticalRE = regexp.MustCompile(`\([^)]*\)`)
	nonWordRE       = regexp.MustCompile(`[^\pL\pN]+`)
	oneLetterRE     = regexp.MustCompile(`\b\pL\b`)
)

// StripDiacritics removes combining marks: "Ján" becomes "Jan".
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		// The chain cannot fail on valid UTF-8; fall back to the input.
		return s
	}
	return out
}

// Fold lowercases and strips diacritics, the canonical form used for
// dictionary lookups and value comparison.
func Fold(s string) string {
	return strings.ToLower(StripDiacritics(s))
}

// Value normalizes a tag value for reconciliation: lowercase,
// diacritic-stripped, punctuation collapsed to single spaces, trimmed.
func Value(s string) string {
	s = Fold(s)
	s = nonWordRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

// SearchableName produces the normalized searchable form of a raw owner
// name: lowercase, diacritic-stripped, parenthetical content removed,
// isolated one-letter markers removed, non-word runs collapsed to spaces.
func SearchableName(raw string) string {
	s := parentheticalRE.ReplaceAllString(raw, " ")
	s = Fold(s)
	s = nonWordRE.ReplaceAllString(s, " ")
	s = oneLetterRE.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// TitleCase uppercases the first letter and lowercases the remainder of
// every whitespace-delimited word: "JAROŠ" becomes "Jaroš".
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
