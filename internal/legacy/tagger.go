// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package legacy is the original ("system") tagger kept for backward
// compatibility with historically tagged data. It segments and tags on its
// own rules and its own key vocabulary, and its name-split fallback order
// differs from the primary extractor's. The divergence is deliberate:
// already-stored tags must stay attributable to these exact rules, so this
// package must not be unified with the primary extractor even where the
// two disagree.
package legacy

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"urbar-parse/internal/names"
	"urbar-parse/internal/record"
)

// Legacy tag keys. Flat strings, not typed fields.
const (
	KeyGiven         = "meno"
	KeySurname       = "priezvisko"
	KeySpouseGiven   = "manzel_meno"
	KeySpouseSurname = "manzel_priezvisko"
	KeyStatus        = "stav"
	KeyOrigin        = "povod"
	KeyDeathDate     = "datum_umrtia"
	KeyNote          = "poznamka"
)

// Relation markers and their tag keys, tried in order so the compound
// grandparent forms win before their shorter spellings. The legacy rules
// record family relations the primary extractor has no field for.
var relationMarkers = []struct {
	marker string
	key    string
}{
	{"starý otec", "stary_otec"},
	{"stará mama", "stara_matka"},
	{"st.otec", "stary_otec"},
	{"st.matka", "stara_matka"},
	{"otec", "otec"},
	{"matka", "matka"},
	{"syn", "syn"},
	{"dcéra", "dcera"},
	{"dcera", "dcera"},
	{"brat", "brat"},
	{"sestra", "sestra"},
}

var statusWords = map[string]bool{
	"vdova":     true,
	"vdovec":    true,
	"maloletý":  true,
	"maloletá":  true,
	"rozvedený": true,
	"rozvedená": true,
}

var (
	spouseWifeRE    = regexp.MustCompile(`(?:^|[\s,(])(?:manželka|žena|ž\.)\s*(\p{Lu}[\p{L}'-]*)(?:\s+(\p{Lu}[\p{L}'-]*))?`)
	spouseHusbandRE = regexp.MustCompile(`(?:^|[\s,(])(?:manžel|muž|m\.)\s*(\p{Lu}[\p{L}'-]*)(?:\s+(\p{Lu}[\p{L}'-]*))?`)
	originRE        = regexp.MustCompile(`(?:^|[\s,(])(?:zo|z)\s+(\p{Lu}[\p{L}'-]*)`)
	deathRE         = regexp.MustCompile(`(?:zomrel|zomrela|umrel|umrela|†)\s*(\d{1,2})\.(\d{1,2})\.(\d{4})`)
)

// Tagger is the legacy rule engine. Stateless apart from the shared
// dictionary; safe for concurrent use.
type Tagger struct {
	dict *names.Dictionary
}

// New builds a legacy tagger over the shared given-name dictionary.
func New(dict *names.Dictionary) *Tagger {
	return &Tagger{dict: dict}
}

// Tag converts one raw string into the legacy flat tag list. It never
// fails: unrecognized clauses are retained verbatim as uncertain notes.
func (t *Tagger) Tag(raw string) []record.LegacyTag {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	head, clauses := split(raw)

	var tags []record.LegacyTag
	tags = append(tags, t.tagName(head)...)

	for _, clause := range clauses {
		clauseTags := t.tagClause(clause)
		if len(clauseTags) == 0 {
			tags = append(tags, record.LegacyTag{Key: KeyNote, Value: clause, Uncertain: true})
			continue
		}
		tags = append(tags, clauseTags...)
	}

	return tags
}

// split separates the head from the parenthetical clauses; inside
// parentheses, clauses are comma-delimited.
func split(raw string) (string, []string) {
	open := strings.IndexByte(raw, '(')
	if open < 0 {
		return strings.TrimSpace(raw), nil
	}

	head := strings.TrimSpace(raw[:open])
	var clauses []string

	rest := raw[open:]
	for {
		start := strings.IndexByte(rest, '(')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start+1:], ')')
		var interior string
		if end < 0 {
			interior = rest[start+1:]
			rest = ""
		} else {
			interior = rest[start+1 : start+1+end]
			rest = rest[start+1+end+1:]
		}
		for _, part := range strings.Split(interior, ",") {
			if p := strings.TrimSpace(part); p != "" {
				clauses = append(clauses, p)
			}
		}
		if rest == "" {
			break
		}
	}

	return head, clauses
}

// tagClause applies the legacy clause rules in order: relations, spouse,
// status, death with date, origin.
func (t *Tagger) tagClause(clause string) []record.LegacyTag {
	var tags []record.LegacyTag

	lower := strings.ToLower(clause)

	for _, rel := range relationMarkers {
		if !strings.HasPrefix(lower, rel.marker) {
			continue
		}
		value := strings.TrimSpace(clause[len(rel.marker):])
		value = strings.TrimLeft(value, ".: ")
		if value != "" {
			tags = append(tags, record.LegacyTag{Key: rel.key, Value: value})
		}
		break
	}

	if m := spouseWifeRE.FindStringSubmatch(clause); m != nil {
		tags = append(tags, record.LegacyTag{Key: KeySpouseGiven, Value: m[1]})
		if m[2] != "" {
			tags = append(tags, record.LegacyTag{Key: KeySpouseSurname, Value: m[2]})
		}
	} else if m := spouseHusbandRE.FindStringSubmatch(clause); m != nil {
		tags = append(tags, record.LegacyTag{Key: KeySpouseGiven, Value: m[1]})
		if m[2] != "" {
			tags = append(tags, record.LegacyTag{Key: KeySpouseSurname, Value: m[2]})
		}
	}

	for _, word := range strings.Fields(lower) {
		word = strings.Trim(word, ".,;")
		if statusWords[word] {
			tags = append(tags, record.LegacyTag{Key: KeyStatus, Value: word})
			break
		}
	}

	if m := deathRE.FindStringSubmatch(clause); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if day >= 1 && day <= 31 && month >= 1 && month <= 12 {
			tags = append(tags, record.LegacyTag{
				Key:   KeyDeathDate,
				Value: fmt.Sprintf("%04d-%02d-%02d", year, month, day),
			})
		}
	}

	if m := originRE.FindStringSubmatch(clause); m != nil {
		tags = append(tags, record.LegacyTag{Key: KeyOrigin, Value: m[1]})
	}

	return tags
}

// tagName splits the head into surname and given name. The fallback order
// here is not the primary extractor's: ALL-CAPS first, then the feminine
// suffix, then the dictionary, then "last token is the surname".
func (t *Tagger) tagName(head string) []record.LegacyTag {
	if comma := strings.IndexByte(head, ','); comma >= 0 {
		head = head[:comma]
	}

	tokens := strings.Fields(head)
	switch len(tokens) {
	case 0:
		return nil
	case 1:
		return []record.LegacyTag{{Key: KeySurname, Value: tokens[0], Uncertain: true}}
	}

	// ALL-CAPS test.
	for i, tok := range tokens {
		if isAllUpper(tok) {
			return nameTags(tok, others(tokens, i), false)
		}
	}

	// Feminine suffix test.
	for i, tok := range tokens {
		lower := strings.ToLower(tok)
		if strings.HasSuffix(lower, "ová") || strings.HasSuffix(lower, "ná") {
			return nameTags(tok, others(tokens, i), false)
		}
	}

	// Dictionary test: exactly one known given name.
	knownIdx := -1
	knownCount := 0
	for i, tok := range tokens {
		if t.dict.IsGivenName(tok) {
			knownIdx = i
			knownCount++
		}
	}
	if knownCount == 1 {
		given := tokens[knownIdx]
		surname := strings.Join(others(tokens, knownIdx), " ")
		return []record.LegacyTag{
			{Key: KeySurname, Value: surname},
			{Key: KeyGiven, Value: given},
		}
	}

	// Positional fallback: last token is the surname.
	last := len(tokens) - 1
	return nameTags(tokens[last], tokens[:last], true)
}

func nameTags(surname string, given []string, uncertain bool) []record.LegacyTag {
	tags := []record.LegacyTag{{Key: KeySurname, Value: surname, Uncertain: uncertain}}
	if len(given) > 0 {
		tags = append(tags, record.LegacyTag{Key: KeyGiven, Value: strings.Join(given, " "), Uncertain: uncertain})
	}
	return tags
}

func others(tokens []string, skip int) []string {
	out := make([]string, 0, len(tokens)-1)
	for i, tok := range tokens {
		if i != skip {
			out = append(out, tok)
		}
	}
	return out
}

func isAllUpper(tok string) bool {
	letters := 0
	for _, r := range tok {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r == 'á' || r == 'é' || r == 'í' || r == 'ó' || r == 'ú' || r == 'ý' ||
			r == 'č' || r == 'ď' || r == 'ľ' || r == 'ĺ' || r == 'ň' || r == 'ô' ||
			r == 'ŕ' || r == 'š' || r == 'ť' || r == 'ž' || r == 'ä' {
			return false
		}
		letters++
	}
	return letters >= 2
}
