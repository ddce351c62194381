// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package record

import "testing"

func TestNewRecord_LenientNumerics(t *testing.T) {
	r := NewRecord(" Horná Lehota ", "12", "345", " Novák Ján ")

	if r.Territory != "Horná Lehota" || r.RawName != "Novák Ján" {
		t.Errorf("trimming failed: %+v", r)
	}
	if r.SequenceNumber == nil || *r.SequenceNumber != 12 {
		t.Errorf("sequence = %v, want 12", r.SequenceNumber)
	}
	if r.OwnershipListNumber == nil || *r.OwnershipListNumber != 345 {
		t.Errorf("list number = %v, want 345", r.OwnershipListNumber)
	}
	if len(r.NumericErrors) != 0 {
		t.Errorf("numeric errors = %v", r.NumericErrors)
	}
}

func TestNewRecord_EmptyNumericsAreAbsent(t *testing.T) {
	r := NewRecord("Lehota", "", "  ", "Novák Ján")

	if r.SequenceNumber != nil || r.OwnershipListNumber != nil {
		t.Errorf("expected nil numerics: %+v", r)
	}
	if len(r.NumericErrors) != 0 {
		t.Errorf("numeric errors = %v", r.NumericErrors)
	}
}

func TestNewRecord_UnparsableNumericsRecorded(t *testing.T) {
	r := NewRecord("Lehota", "12a", "x", "Novák Ján")

	if r.SequenceNumber != nil || r.OwnershipListNumber != nil {
		t.Errorf("unparsable numerics should be nil: %+v", r)
	}
	if len(r.NumericErrors) != 2 {
		t.Fatalf("numeric errors = %v", r.NumericErrors)
	}
	if r.NumericErrors[0] != "sequence_number" || r.NumericErrors[1] != "ownership_list_number" {
		t.Errorf("numeric errors = %v", r.NumericErrors)
	}
}

func TestFieldValues_IncludesExtras(t *testing.T) {
	r := Record{Territory: "Lehota", Extra: map[string]string{"správca": "SPF"}}

	values := r.FieldValues()
	if len(values) != 2 || values[0] != "Lehota" {
		t.Errorf("field values = %v", values)
	}
}

func TestSpanIsValid(t *testing.T) {
	tests := []struct {
		span     Span
		length   int
		expected bool
	}{
		{Span{0, 5}, 10, true},
		{Span{5, 10}, 10, true},
		{Span{0, 0}, 10, false},  // empty
		{Span{-1, 5}, 10, false}, // negative start
		{Span{5, 11}, 10, false}, // past the end
		{Span{5, 3}, 10, false},  // inverted
	}

	for _, tt := range tests {
		if got := tt.span.IsValid(tt.length); got != tt.expected {
			t.Errorf("IsValid(%+v, %d) = %v, want %v", tt.span, tt.length, got, tt.expected)
		}
	}
}

func TestParsedRecordAccessors(t *testing.T) {
	pr := &ParsedRecord{
		Fields: map[FieldType]CandidateField{
			FieldStatus: {Type: FieldStatus, Value: "maloletá"},
			FieldIsSPF:  {Type: FieldIsSPF, Value: "true"},
		},
		ParseErrors: []string{ErrNumericInvalid},
	}

	if !pr.Minor() {
		t.Error("Minor() = false for maloletá")
	}
	if !pr.IsSPF() {
		t.Error("IsSPF() = false")
	}
	if !pr.HasError(ErrNumericInvalid) || pr.HasError(ErrNoMatch) {
		t.Errorf("HasError misreported: %v", pr.ParseErrors)
	}

	if _, ok := pr.Field(FieldGiven); ok {
		t.Error("Field returned a missing type")
	}
}

func TestMinor_OtherStatusIsNotMinor(t *testing.T) {
	pr := &ParsedRecord{
		Fields: map[FieldType]CandidateField{
			FieldStatus: {Type: FieldStatus, Value: "vdova"},
		},
	}
	if pr.Minor() {
		t.Error("Minor() = true for vdova")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, out float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.3, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.out {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.out)
		}
	}
}
