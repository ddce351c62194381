// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package names

import "testing"

func TestIsGivenName(t *testing.T) {
	dict := Load()

	tests := []struct {
		token    string
		expected bool
	}{
		{"Ján", true},
		{"jan", true},    // diacritic- and case-insensitive
		{"JULIA", true},  // matches Júlia
		{"Štefan", true},
		{"Vasiľ", true},
		{"Ján.", true},   // trailing punctuation trimmed
		{"Novák", false},
		{"Batóová", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := dict.IsGivenName(tt.token); got != tt.expected {
			t.Errorf("IsGivenName(%q) = %v, want %v", tt.token, got, tt.expected)
		}
	}
}

func TestLoadIsSharedAndNonEmpty(t *testing.T) {
	a := Load()
	b := Load()
	if a != b {
		t.Error("Load should return the shared instance")
	}
	if a.Size() < 100 {
		t.Errorf("dictionary unexpectedly small: %d entries", a.Size())
	}
}
