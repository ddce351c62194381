// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

import "urbar-parse/internal/record"

// Preference names which parser a key trusts by default.
type Preference int

const (
	Neutral Preference = iota
	PreferAdvanced
	PreferSystem
)

// Priority is one row of the per-key source-priority table: the preference
// plus the confidence weight applied to each source.
type Priority struct {
	Pref           Preference
	AdvancedWeight float64
	SystemWeight   float64
}

// neutralPriority applies to keys absent from the table: both sources are
// scaled by 0.5 so unvetted keys never outrank vetted ones.
var neutralPriority = Priority{Pref: Neutral, AdvancedWeight: 0.5, SystemWeight: 0.5}

// priorities is the audited source-priority table. Name and gender fields
// favor the advanced parser; spouse, family relations and addresses favor
// the legacy rules, which were tuned on exactly those clauses for years.
// Keep this a plain lookup: the reconciliation algorithm never special-cases
// individual keys.
var priorities = map[string]Priority{
	"meno":             {PreferAdvanced, 1.0, 0.6},
	"priezvisko":       {PreferAdvanced, 1.0, 0.6},
	"pohlavie":         {PreferAdvanced, 1.0, 0.6},
	"rodne_priezvisko": {PreferAdvanced, 1.0, 0.6},
	"datum_narodenia":  {PreferAdvanced, 1.0, 0.7},
	"datum_umrtia":     {PreferAdvanced, 1.0, 0.7},
	"spf":              {PreferAdvanced, 1.0, 0.6},
	"spf_dovod":        {PreferAdvanced, 1.0, 0.6},
	"dodatok":          {PreferAdvanced, 1.0, 0.6},
	"dodatok_rimsky":   {PreferAdvanced, 1.0, 0.6},
	"miesto_narodenia": {PreferAdvanced, 1.0, 0.6},

	"manzel_meno":       {PreferSystem, 0.6, 1.0},
	"manzel_priezvisko": {PreferSystem, 0.6, 1.0},
	"otec":              {PreferSystem, 0.6, 1.0},
	"matka":             {PreferSystem, 0.6, 1.0},
	"syn":               {PreferSystem, 0.6, 1.0},
	"dcera":             {PreferSystem, 0.6, 1.0},
	"brat":              {PreferSystem, 0.6, 1.0},
	"sestra":            {PreferSystem, 0.6, 1.0},
	"stary_otec":        {PreferSystem, 0.6, 1.0},
	"stara_matka":       {PreferSystem, 0.6, 1.0},
	"povod":             {PreferSystem, 0.6, 1.0},
	"bydlisko":          {PreferSystem, 0.6, 1.0},

	"stav": {Neutral, 0.8, 0.8},
}

// PriorityFor returns the table row for a key, defaulting to neutral.
func PriorityFor(key string) Priority {
	if p, ok := priorities[key]; ok {
		return p
	}
	return neutralPriority
}

// weight returns the confidence multiplier for a tag from the given source.
func (p Priority) weight(source record.TagSource) float64 {
	switch source {
	case record.SourceAdvanced:
		return p.AdvancedWeight
	case record.SourceSystem:
		return p.SystemWeight
	default:
		return neutralPriority.AdvancedWeight
	}
}
