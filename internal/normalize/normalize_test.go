// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import "testing"

func TestStripDiacritics(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Ján", "Jan"},
		{"Batóová", "Batoova"},
		{"PETRIĽAK", "PETRILAK"},
		{"Szivecová", "Szivecova"},
		{"no diacritics", "no diacritics"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripDiacritics(tt.input); got != tt.expected {
			t.Errorf("StripDiacritics(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Ján", "jan"},
		{"JAROŠ", "jaros"},
		{"Júlia", "julia"},
	}

	for _, tt := range tests {
		if got := Fold(tt.input); got != tt.expected {
			t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Ján", "jan"},
		{"Jan ", "jan"},
		{"  Szivecová, ", "szivecova"},
		{"Horná  Lehota", "horna lehota"},
	}

	for _, tt := range tests {
		if got := Value(tt.input); got != tt.expected {
			t.Errorf("Value(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSearchableName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Parenthetical content disappears entirely.
		{"Batóová Júlia r. Szivecová, (z Várkonyu, m.Ján)", "batoova julia szivecova"},
		// Isolated single-letter markers are dropped with their dot.
		{"Novák Ján r. Kováč", "novak jan kovac"},
		{"JAROŠ Štefan", "jaros stefan"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SearchableName(tt.input); got != tt.expected {
			t.Errorf("SearchableName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"JAROŠ", "Jaroš"},
		{"novák", "Novák"},
		{"PETRIĽAK", "Petriľak"},
		{"anna mária", "Anna Mária"},
	}

	for _, tt := range tests {
		if got := TitleCase(tt.input); got != tt.expected {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
