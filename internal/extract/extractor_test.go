// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"testing"

	"urbar-parse/internal/names"
	"urbar-parse/internal/record"
	"urbar-parse/internal/rules"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	rs, err := rules.Load("")
	if err != nil {
		t.Fatalf("rules.Load: %v", err)
	}
	return New(rs, names.Load())
}

func parseRaw(t *testing.T, raw string) *record.ParsedRecord {
	t.Helper()
	e := newTestExtractor(t)
	return e.Parse(record.Record{RawName: raw})
}

func field(t *testing.T, pr *record.ParsedRecord, ft record.FieldType) record.CandidateField {
	t.Helper()
	f, ok := pr.Field(ft)
	if !ok {
		t.Fatalf("field %s missing; fields = %v", ft, pr.Fields)
	}
	return f
}

func TestParse_SimpleTwoTokenName(t *testing.T) {
	pr := parseRaw(t, "Novák Ján")

	surname := field(t, pr, record.FieldSurname)
	if surname.Value != "Novák" || surname.Confidence != 0.85 {
		t.Errorf("surname = %q (%.2f), want Novák (0.85)", surname.Value, surname.Confidence)
	}
	given := field(t, pr, record.FieldGiven)
	if given.Value != "Ján" {
		t.Errorf("given = %q, want Ján", given.Value)
	}

	gender := field(t, pr, record.FieldGender)
	if gender.Value != record.GenderMale || gender.Confidence != 0.6 {
		t.Errorf("gender = %q (%.2f), want male (0.60)", gender.Value, gender.Confidence)
	}
	if gender.SourceRuleID != "gender.default" {
		t.Errorf("gender rule = %q", gender.SourceRuleID)
	}

	if len(pr.ParseErrors) != 0 {
		t.Errorf("unexpected parse errors: %v", pr.ParseErrors)
	}
}

func TestParse_MaidenSpouseAndOrigin(t *testing.T) {
	pr := parseRaw(t, "Batóová Júlia r. Szivecová, (z Várkonyu, m.Ján)")

	if got := field(t, pr, record.FieldSurname).Value; got != "Batóová" {
		t.Errorf("surname = %q", got)
	}
	if got := field(t, pr, record.FieldGiven).Value; got != "Júlia" {
		t.Errorf("given = %q", got)
	}

	maiden := field(t, pr, record.FieldMaidenSurname)
	if maiden.Value != "Szivecová" || maiden.Confidence != 1.0 {
		t.Errorf("maiden = %q (%.2f)", maiden.Value, maiden.Confidence)
	}
	if got := field(t, pr, record.FieldOriginPlace).Value; got != "Várkonyu" {
		t.Errorf("origin = %q", got)
	}
	if got := field(t, pr, record.FieldSpouseGiven).Value; got != "Ján" {
		t.Errorf("spouse given = %q", got)
	}

	// A named husband makes the owner female.
	gender := field(t, pr, record.FieldGender)
	if gender.Value != record.GenderFemale || gender.Confidence != 0.9 {
		t.Errorf("gender = %q (%.2f), want female (0.90)", gender.Value, gender.Confidence)
	}
	if gender.SourceRuleID != "gender.spouse" {
		t.Errorf("gender rule = %q", gender.SourceRuleID)
	}
}

func TestParse_WifeMarkerAndDeathDate(t *testing.T) {
	pr := parseRaw(t, "JAROŠ Štefan (ž.Marta Virdzeková zomrel 24.04.1997)")

	if got := field(t, pr, record.FieldSurname).Value; got != "Jaroš" {
		t.Errorf("surname = %q, want Jaroš", got)
	}
	if got := field(t, pr, record.FieldGiven).Value; got != "Štefan" {
		t.Errorf("given = %q", got)
	}
	if got := field(t, pr, record.FieldSpouseGiven).Value; got != "Marta" {
		t.Errorf("spouse given = %q", got)
	}
	if got := field(t, pr, record.FieldSpouseSurname).Value; got != "Virdzeková" {
		t.Errorf("spouse surname = %q", got)
	}

	death := field(t, pr, record.FieldDeathDate)
	if death.Value != "1997-04-24" {
		t.Errorf("death date = %q, want 1997-04-24", death.Value)
	}
	if death.Confidence != 1.0 || death.SourceRuleID != "date.death_date.near" {
		t.Errorf("death date scored %.2f via %q", death.Confidence, death.SourceRuleID)
	}

	// A named wife makes the owner male.
	gender := field(t, pr, record.FieldGender)
	if gender.Value != record.GenderMale || gender.Confidence != 0.9 {
		t.Errorf("gender = %q (%.2f), want male (0.90)", gender.Value, gender.Confidence)
	}
}

func TestParse_MinorStatus(t *testing.T) {
	pr := parseRaw(t, "PETRIĽAK Vasiľ (maloletý)")

	if got := field(t, pr, record.FieldSurname).Value; got != "Petriľak" {
		t.Errorf("surname = %q", got)
	}
	if got := field(t, pr, record.FieldStatus).Value; got != "maloletý" {
		t.Errorf("status = %q", got)
	}
	if !pr.Minor() {
		t.Error("Minor() = false")
	}

	gender := field(t, pr, record.FieldGender)
	if gender.Value != record.GenderMale || gender.Confidence != 0.9 || gender.SourceRuleID != "gender.status" {
		t.Errorf("gender = %+v", gender)
	}
}

func TestParse_FeminineMinorStatus(t *testing.T) {
	pr := parseRaw(t, "Kováčová Anna (maloletá)")

	gender := field(t, pr, record.FieldGender)
	if gender.Value != record.GenderFemale || gender.Confidence != 0.9 {
		t.Errorf("gender = %q (%.2f), want female (0.90)", gender.Value, gender.Confidence)
	}
	if !pr.Minor() {
		t.Error("Minor() = false")
	}
}

func TestParse_FeminineSurnameGender(t *testing.T) {
	pr := parseRaw(t, "Kováčová Anna")

	gender := field(t, pr, record.FieldGender)
	if gender.Value != record.GenderFemale || gender.Confidence != 0.8 || gender.SourceRuleID != "gender.surname" {
		t.Errorf("gender = %+v", gender)
	}
}

func TestParse_SPFKeyword(t *testing.T) {
	pr := parseRaw(t, "Slovenská republika – v správe SPF")

	if !pr.IsSPF() {
		t.Fatal("IsSPF() = false")
	}
	reason := field(t, pr, record.FieldSPFReason)
	if reason.Value != record.SPFTextMatch {
		t.Errorf("spf reason = %q, want TEXT_MATCH", reason.Value)
	}
	spf := field(t, pr, record.FieldIsSPF)
	if spf.Confidence != 0.8 || spf.SourceRuleID != "spf.text" {
		t.Errorf("spf = %+v", spf)
	}
}

func TestParse_SPFCanonicalPhrase(t *testing.T) {
	pr := parseRaw(t, "Slovenský pozemkový fond Bratislava")

	spf := field(t, pr, record.FieldIsSPF)
	if spf.Confidence != 1.0 || spf.SourceRuleID != "spf.canonical" {
		t.Errorf("spf = %+v", spf)
	}
}

func TestParse_SPFFromOtherField(t *testing.T) {
	e := newTestExtractor(t)
	rec := record.Record{
		RawName: "Novák Ján",
		Extra:   map[string]string{"správca": "v správe SPF"},
	}
	pr := e.Parse(rec)

	spf := field(t, pr, record.FieldIsSPF)
	if spf.Confidence != 0.9 || spf.SourceRuleID != "spf.field" {
		t.Errorf("spf = %+v", spf)
	}
	if got := field(t, pr, record.FieldSPFReason).Value; got != record.SPFFieldMatch {
		t.Errorf("spf reason = %q, want FIELD_MATCH", got)
	}
}

func TestParse_EmptyRawName(t *testing.T) {
	pr := parseRaw(t, "   ")

	if !pr.HasError(record.ErrNoMatch) {
		t.Errorf("expected NO_MATCH, got %v", pr.ParseErrors)
	}
	if pr.ParseScore != 0 {
		t.Errorf("score = %.2f, want 0", pr.ParseScore)
	}
	if _, ok := pr.Field(record.FieldGender); ok {
		t.Error("empty input must not get a gender candidate")
	}
	if len(pr.Candidates) != 0 {
		t.Errorf("candidates = %v", pr.Candidates)
	}
}

func TestParse_NumericErrorsCarryOver(t *testing.T) {
	e := newTestExtractor(t)
	rec := record.NewRecord("Lehota", "12a", "", "Novák Ján")
	pr := e.Parse(rec)

	if !pr.HasError(record.ErrNumericInvalid) {
		t.Errorf("expected NUMERIC_INVALID, got %v", pr.ParseErrors)
	}
}

func TestParse_ConflictingMaidenSurnames(t *testing.T) {
	pr := parseRaw(t, "Balogová Anna r. Kissová (rod. Nagyová)")

	if !pr.HasError(record.ErrConflictMaiden) {
		t.Fatalf("expected CONFLICT_MAIDEN, got %v", pr.ParseErrors)
	}
	maiden := field(t, pr, record.FieldMaidenSurname)
	if maiden.Confidence != 0.5 || !maiden.Uncertain {
		t.Errorf("conflicting maiden not demoted: %+v", maiden)
	}
}

func TestParse_ConflictingSpouseGivenNames(t *testing.T) {
	pr := parseRaw(t, "Nováková Anna (m.Ján) (m.Peter)")

	if !pr.HasError(record.ErrConflictSpouse) {
		t.Fatalf("expected CONFLICT_SPOUSE, got %v", pr.ParseErrors)
	}

	spouses := 0
	for _, c := range pr.Candidates {
		if c.Type != record.FieldSpouseGiven {
			continue
		}
		spouses++
		if c.Confidence != 0.5 || !c.Uncertain {
			t.Errorf("conflicting spouse candidate not demoted: %+v", c)
		}
	}
	if spouses != 2 {
		t.Errorf("spouse given candidates = %d, want 2", spouses)
	}
}

func TestParse_DateOrderConflict(t *testing.T) {
	pr := parseRaw(t, "Novák Ján (nar. 1.1.1990, zomrel 1.1.1980)")

	if !pr.HasError(record.ErrConflictDates) {
		t.Fatalf("expected CONFLICT_DATES, got %v", pr.ParseErrors)
	}
	if !field(t, pr, record.FieldBirthDate).Uncertain || !field(t, pr, record.FieldDeathDate).Uncertain {
		t.Error("conflicting dates not marked uncertain")
	}
}

func TestParse_UnknownDate(t *testing.T) {
	pr := parseRaw(t, "Novák Ján (1.2.1950)")

	unknown := field(t, pr, record.FieldUnknownDate)
	if unknown.Value != "1950-02-01" || unknown.Confidence != 0.7 || unknown.SourceRuleID != "date.unknown" {
		t.Errorf("unknown date = %+v", unknown)
	}
}

func TestParse_DateWindowCountsCharacters(t *testing.T) {
	// "zomrel" sits 8 characters before the date but 14 bytes back because
	// of the diacritics in between; the narrow window must still reach it.
	pr := parseRaw(t, "Novák Ján (zomrel čľšťáž 1.5.1950)")

	death := field(t, pr, record.FieldDeathDate)
	if death.Value != "1950-05-01" {
		t.Errorf("death date = %q, want 1950-05-01", death.Value)
	}
	if death.Confidence != 1.0 || death.SourceRuleID != "date.death_date.near" {
		t.Errorf("death date scored %.2f via %q, want 1.00 via date.death_date.near",
			death.Confidence, death.SourceRuleID)
	}
}

func TestParse_InvalidDateSkipped(t *testing.T) {
	pr := parseRaw(t, "Novák Ján (zomrel 45.13.1990)")

	if _, ok := pr.Field(record.FieldDeathDate); ok {
		t.Error("invalid calendar date must not produce a death date")
	}
	if _, ok := pr.Field(record.FieldUnknownDate); ok {
		t.Error("invalid calendar date must not produce an unknown date")
	}
}

func TestParse_EvidenceSpansAddressRaw(t *testing.T) {
	raw := "Batóová Júlia r. Szivecová, (z Várkonyu, m.Ján)"
	pr := parseRaw(t, raw)

	if len(pr.EvidenceSpans) == 0 {
		t.Fatal("no evidence spans")
	}
	for _, ev := range pr.EvidenceSpans {
		if !ev.Span.IsValid(len(raw)) {
			t.Errorf("evidence %s span %+v out of range", ev.Type, ev.Span)
			continue
		}
		if ev.Text != raw[ev.Span.Start:ev.Span.End] {
			t.Errorf("evidence %s text %q != raw[%d:%d] %q",
				ev.Type, ev.Text, ev.Span.Start, ev.Span.End, raw[ev.Span.Start:ev.Span.End])
		}
	}

	// The maiden value's evidence must cite the exact substring.
	for _, ev := range pr.EvidenceSpans {
		if ev.Type == record.FieldMaidenSurname && ev.Text != "Szivecová" {
			t.Errorf("maiden evidence = %q, want Szivecová", ev.Text)
		}
	}
}

func TestParse_UnparsedClauseLandsInNotes(t *testing.T) {
	pr := parseRaw(t, "Novák Ján (nečitateľný zápis)")

	if len(pr.Notes) != 1 || pr.Notes[0] != "nečitateľný zápis" {
		t.Errorf("notes = %v", pr.Notes)
	}
}

func TestParse_ScoreRange(t *testing.T) {
	raws := []string{
		"Novák Ján",
		"Batóová Júlia r. Szivecová, (z Várkonyu, m.Ján)",
		"JAROŠ Štefan (ž.Marta Virdzeková zomrel 24.04.1997)",
		"X",
	}
	for _, raw := range raws {
		pr := parseRaw(t, raw)
		if pr.ParseScore < 0 || pr.ParseScore > 1 {
			t.Errorf("score for %q out of range: %.3f", raw, pr.ParseScore)
		}
	}
}

func TestSplitTwoTokens_PriorityChain(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		raw        string
		surname    string
		given      string
		confidence float64
		ruleID     string
	}{
		{"NOVÁK Ján", "Novák", "Ján", 0.8, "name.allcaps"},
		{"Kováčová Anna", "Kováčová", "Anna", 0.8, "name.suffix"},
		{"Novák Ján", "Novák", "Ján", 0.85, "name.dict"},
		// Both tokens in the dictionary: first read as given name.
		{"Ján Peter", "Peter", "Ján", 0.7, "name.dict-both"},
		// Neither known: positional, first is the surname.
		{"Bartoš Xenofón", "Bartoš", "Xenofón", 0.6, "name.positional"},
	}

	for _, tt := range tests {
		pr := e.Parse(record.Record{RawName: tt.raw})
		surname := field(t, pr, record.FieldSurname)
		given := field(t, pr, record.FieldGiven)

		if surname.Value != tt.surname || given.Value != tt.given {
			t.Errorf("%q split to %q/%q, want %q/%q", tt.raw, surname.Value, given.Value, tt.surname, tt.given)
		}
		if surname.Confidence != tt.confidence || surname.SourceRuleID != tt.ruleID {
			t.Errorf("%q surname scored %.2f via %q, want %.2f via %q",
				tt.raw, surname.Confidence, surname.SourceRuleID, tt.confidence, tt.ruleID)
		}
	}
}

func TestSplitName_SingleToken(t *testing.T) {
	pr := parseRaw(t, "Novák")

	surname := field(t, pr, record.FieldSurname)
	if surname.Confidence != 0.4 || surname.SourceRuleID != "name.single" {
		t.Errorf("surname = %+v", surname)
	}
	if _, ok := pr.Field(record.FieldGiven); ok {
		t.Error("single token must not yield a given name")
	}
}

func TestSplitName_ManyTokens(t *testing.T) {
	pr := parseRaw(t, "HORVÁTH Ján Jozef")

	surname := field(t, pr, record.FieldSurname)
	given := field(t, pr, record.FieldGiven)
	if surname.Value != "Horváth" || given.Value != "Ján Jozef" {
		t.Errorf("split = %q/%q", surname.Value, given.Value)
	}
	if surname.Confidence != 0.7 || surname.SourceRuleID != "name.multi" {
		t.Errorf("surname = %+v", surname)
	}
}

func TestSplitName_AfterCommaIsUnmatched(t *testing.T) {
	pr := parseRaw(t, "Novák Ján, dedičia neznámi")

	if got := field(t, pr, record.FieldSurname).Value; got != "Novák" {
		t.Errorf("surname = %q", got)
	}
	if len(pr.UnmatchedTokens) != 2 {
		t.Errorf("unmatched = %v", pr.UnmatchedTokens)
	}
}

func TestParse_NameSuffixes(t *testing.T) {
	pr := parseRaw(t, "Novák Ján ml.")
	if got := field(t, pr, record.FieldNameSuffix).Value; got != "ml." {
		t.Errorf("suffix = %q", got)
	}

	pr = parseRaw(t, "Novák Ján III")
	if got := field(t, pr, record.FieldNameSuffixRoman).Value; got != "III" {
		t.Errorf("roman suffix = %q", got)
	}
}
