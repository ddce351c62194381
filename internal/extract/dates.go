// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"urbar-parse/internal/normalize"
	"urbar-parse/internal/record"
)

// Date classification windows, in characters around the date token. A
// clause can mention both a birth and a death date, so the narrow window is
// searched nearest-first before the wide one.
const (
	nearWindowBefore = 15
	wideWindowBefore = 30
	wideWindowAfter  = 15
)

type dateCandidate struct {
	fieldType  record.FieldType
	value      string
	confidence float64
	ruleID     string
	start, end int
}

// classifyDates finds every valid date-shaped token in the clause and
// assigns it to birth, death or unknown by keyword proximity.
func (e *Extractor) classifyDates(text string) []dateCandidate {
	var out []dateCandidate

	for _, m := range e.rules.Date.FindAllStringSubmatchIndex(text, -1) {
		day, _ := strconv.Atoi(text[m[2]:m[3]])
		month, _ := strconv.Atoi(text[m[4]:m[5]])
		year, _ := strconv.Atoi(text[m[6]:m[7]])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			continue
		}

		dc := dateCandidate{
			value: fmt.Sprintf("%04d-%02d-%02d", year, month, day),
			start: m[0],
			end:   m[1],
		}

		start, end := m[0], m[1]

		// Narrow window strictly before the date, nearest keyword wins.
		near := normalize.Fold(text[runesBefore(text, start, nearWindowBefore):start])
		if ft, ok := nearestKeyword(near, e.rules.BirthKeywords, e.rules.DeathKeywords); ok {
			dc.fieldType = ft
			dc.confidence = 1.0
			dc.ruleID = "date." + string(ft) + ".near"
			out = append(out, dc)
			continue
		}

		// Wide window before plus a short window after.
		wide := normalize.Fold(text[runesBefore(text, start, wideWindowBefore):start]) +
			" " + normalize.Fold(text[end:runesAfter(text, end, wideWindowAfter)])
		if ft, ok := nearestKeyword(wide, e.rules.BirthKeywords, e.rules.DeathKeywords); ok {
			dc.fieldType = ft
			dc.confidence = 0.9
			dc.ruleID = "date." + string(ft) + ".wide"
			out = append(out, dc)
			continue
		}

		dc.fieldType = record.FieldUnknownDate
		dc.confidence = 0.7
		dc.ruleID = "date.unknown"
		out = append(out, dc)
	}

	return out
}

// nearestKeyword reports which keyword set has the occurrence closest to
// the end of the window (the date follows the window text), and maps it to
// the corresponding date field type. On a tie the death set wins; death
// phrasing sits immediately before the date in the ledgers.
func nearestKeyword(window string, birth, death []string) (record.FieldType, bool) {
	birthIdx := lastIndexAny(window, birth)
	deathIdx := lastIndexAny(window, death)

	switch {
	case birthIdx < 0 && deathIdx < 0:
		return "", false
	case deathIdx >= birthIdx:
		return record.FieldDeathDate, true
	default:
		return record.FieldBirthDate, true
	}
}

func lastIndexAny(s string, keywords []string) int {
	best := -1
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if idx := strings.LastIndex(s, k); idx > best {
			best = idx
		}
	}
	return best
}

// runesBefore returns the byte offset n runes before pos. The windows are
// measured in characters, not bytes, so diacritics do not shrink them.
func runesBefore(s string, pos, n int) int {
	for pos > 0 && n > 0 {
		_, size := utf8.DecodeLastRuneInString(s[:pos])
		pos -= size
		n--
	}
	return pos
}

// runesAfter returns the byte offset n runes past pos, capped at len(s).
func runesAfter(s string, pos, n int) int {
	for pos < len(s) && n > 0 {
		_, size := utf8.DecodeRuneInString(s[pos:])
		pos += size
		n--
	}
	return pos
}
