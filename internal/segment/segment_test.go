// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package segment

import "testing"

func TestSplit_NoParentheses(t *testing.T) {
	seg := Split("Novák Ján")

	if seg.Head.Text != "Novák Ján" {
		t.Errorf("head = %q, want %q", seg.Head.Text, "Novák Ján")
	}
	if len(seg.Parentheticals) != 0 {
		t.Errorf("expected no parentheticals, got %d", len(seg.Parentheticals))
	}
	if seg.Tail.Text != "" {
		t.Errorf("expected empty tail, got %q", seg.Tail.Text)
	}
}

func TestSplit_SingleParenthetical(t *testing.T) {
	raw := "PETRIĽAK Vasiľ (maloletý)"
	seg := Split(raw)

	if seg.Head.Text != "PETRIĽAK Vasiľ" {
		t.Errorf("head = %q", seg.Head.Text)
	}
	if len(seg.Parentheticals) != 1 {
		t.Fatalf("expected 1 parenthetical, got %d", len(seg.Parentheticals))
	}
	if seg.Parentheticals[0].Text != "maloletý" {
		t.Errorf("parenthetical = %q", seg.Parentheticals[0].Text)
	}
}

func TestSplit_MultipleParentheticalsAndTail(t *testing.T) {
	raw := "Kováč Ján (vdovec) (zomrel 1.2.1950) dedičia"
	seg := Split(raw)

	if seg.Head.Text != "Kováč Ján" {
		t.Errorf("head = %q", seg.Head.Text)
	}
	if len(seg.Parentheticals) != 2 {
		t.Fatalf("expected 2 parentheticals, got %d", len(seg.Parentheticals))
	}
	if seg.Parentheticals[0].Text != "vdovec" || seg.Parentheticals[1].Text != "zomrel 1.2.1950" {
		t.Errorf("parentheticals = %q, %q", seg.Parentheticals[0].Text, seg.Parentheticals[1].Text)
	}
	if seg.Tail.Text != "dedičia" {
		t.Errorf("tail = %q", seg.Tail.Text)
	}
}

func TestSplit_UnbalancedTrailingParen(t *testing.T) {
	raw := "Novák Ján (zomrel"
	seg := Split(raw)

	if seg.Head.Text != "Novák Ján" {
		t.Errorf("head = %q", seg.Head.Text)
	}
	if len(seg.Parentheticals) != 1 || seg.Parentheticals[0].Text != "zomrel" {
		t.Fatalf("parentheticals = %+v", seg.Parentheticals)
	}
	if seg.Tail.Text != "" {
		t.Errorf("expected empty tail, got %q", seg.Tail.Text)
	}
}

func TestSplit_EmptyParentheses(t *testing.T) {
	seg := Split("Novák Ján ()")

	if len(seg.Parentheticals) != 0 {
		t.Errorf("empty parens should yield no clause, got %+v", seg.Parentheticals)
	}
}

// Every clause's span must address exactly its text in the original string.
func TestSplit_SpansMatchText(t *testing.T) {
	raws := []string{
		"Batóová Júlia r. Szivecová, (z Várkonyu, m.Ján)",
		"JAROŠ Štefan (ž.Marta Virdzeková zomrel 24.04.1997)",
		"Kováč Ján (vdovec) (zomrel 1.2.1950) dedičia",
		"  Novák Ján  ",
	}

	for _, raw := range raws {
		seg := Split(raw)

		clauses := append([]Clause{seg.Head}, seg.Parentheticals...)
		if seg.Tail.Text != "" {
			clauses = append(clauses, seg.Tail)
		}
		for _, c := range clauses {
			if c.Text == "" {
				continue
			}
			if got := raw[c.Span.Start:c.Span.End]; got != c.Text {
				t.Errorf("raw %q: span [%d:%d] addresses %q, clause text is %q",
					raw, c.Span.Start, c.Span.End, got, c.Text)
			}
		}
	}
}
