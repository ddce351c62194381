// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package reconcile merges the outputs of the two independent parsers into
// one consistent tag set. Disagreements are resolved deterministically by
// the per-key source-priority table and a normalized edit-distance
// similarity, and every discarded value stays retrievable for audit.
package reconcile

import (
	"fmt"
	"sort"

	"urbar-parse/internal/normalize"
	"urbar-parse/internal/record"
)

// agreementThreshold separates agreement from conflict on the normalized
// similarity scale.
const agreementThreshold = 0.8

// conflictPenalty is applied to the winner's confidence when the sources
// genuinely disagree.
const conflictPenalty = 0.8

// System tags derive confidence from the legacy uncertain flag.
const (
	systemConfidence          = 0.7
	systemUncertainConfidence = 0.3
)

// advancedKeys maps primary-extractor field types onto the shared tag key
// vocabulary, so that overlapping concepts land on the same key as the
// legacy tagger's output and can be compared.
var advancedKeys = map[record.FieldType]string{
	record.FieldGiven:           "meno",
	record.FieldSurname:         "priezvisko",
	record.FieldMaidenSurname:   "rodne_priezvisko",
	record.FieldSpouseGiven:     "manzel_meno",
	record.FieldSpouseSurname:   "manzel_priezvisko",
	record.FieldStatus:          "stav",
	record.FieldOriginPlace:     "povod",
	record.FieldResidence:       "bydlisko",
	record.FieldBirthPlace:      "miesto_narodenia",
	record.FieldBirthDate:       "datum_narodenia",
	record.FieldDeathDate:       "datum_umrtia",
	record.FieldUnknownDate:     "datum",
	record.FieldNameSuffix:      "dodatok",
	record.FieldNameSuffixRoman: "dodatok_rimsky",
	record.FieldGender:          "pohlavie",
	record.FieldIsSPF:           "spf",
	record.FieldSPFReason:       "spf_dovod",
}

// AdvancedTags re-expresses a parsed record's selected fields as sourced
// tags in the shared key vocabulary.
func AdvancedTags(pr *record.ParsedRecord) []record.SourcedTag {
	if pr == nil {
		return nil
	}
	tags := make([]record.SourcedTag, 0, len(pr.Fields))
	for t, f := range pr.Fields {
		key, ok := advancedKeys[t]
		if !ok {
			key = string(t)
		}
		tags = append(tags, record.SourcedTag{
			Key:        key,
			Value:      f.Value,
			Confidence: f.Confidence,
			Source:     record.SourceAdvanced,
		})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Key < tags[j].Key })
	return tags
}

// SystemTags converts the legacy tag list into sourced tags with derived
// confidence: 0.3 when the legacy rules marked the tag uncertain, 0.7
// otherwise.
func SystemTags(tags []record.LegacyTag) []record.SourcedTag {
	out := make([]record.SourcedTag, 0, len(tags))
	for _, t := range tags {
		conf := systemConfidence
		if t.Uncertain {
			conf = systemUncertainConfidence
		}
		out = append(out, record.SourcedTag{
			Key:        t.Key,
			Value:      t.Value,
			Confidence: conf,
			Source:     record.SourceSystem,
		})
	}
	return out
}

// Merge reconciles the two tag sets into one merged list, sorted by
// descending confidence. The output never contains duplicate keys; every
// value that lost selection is kept as an alternative on the winning tag.
func Merge(advanced, system []record.SourcedTag) []record.MergedTag {
	advByKey, advExtra := groupByKey(advanced)
	sysByKey, sysExtra := groupByKey(system)

	keys := make([]string, 0, len(advByKey)+len(sysByKey))
	for k := range advByKey {
		keys = append(keys, k)
	}
	for k := range sysByKey {
		if _, dup := advByKey[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var merged []record.MergedTag
	for _, key := range keys {
		adv, hasAdv := advByKey[key]
		sys, hasSys := sysByKey[key]
		extras := append(advExtra[key], sysExtra[key]...)
		prio := PriorityFor(key)

		switch {
		case hasAdv && hasSys:
			merged = append(merged, mergeBoth(key, adv, sys, prio, extras))
		case hasAdv:
			merged = append(merged, passThrough(adv, prio, extras))
		default:
			merged = append(merged, passThrough(sys, prio, extras))
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Confidence != merged[j].Confidence {
			return merged[i].Confidence > merged[j].Confidence
		}
		return merged[i].Key < merged[j].Key
	})
	return merged
}

// Conflicts filters a merged tag list down to the conflicting entries.
func Conflicts(merged []record.MergedTag) []record.MergedTag {
	var out []record.MergedTag
	for _, m := range merged {
		if m.Conflict {
			out = append(out, m)
		}
	}
	return out
}

// groupByKey keeps the highest-confidence tag per key as the
// representative; further tags with the same key become alternatives.
func groupByKey(tags []record.SourcedTag) (map[string]record.SourcedTag, map[string][]record.SourcedTag) {
	byKey := make(map[string]record.SourcedTag, len(tags))
	extra := make(map[string][]record.SourcedTag)
	for _, t := range tags {
		current, ok := byKey[t.Key]
		if !ok {
			byKey[t.Key] = t
			continue
		}
		if t.Confidence > current.Confidence {
			byKey[t.Key] = t
			extra[t.Key] = append(extra[t.Key], current)
		} else {
			extra[t.Key] = append(extra[t.Key], t)
		}
	}
	return byKey, extra
}

// passThrough emits a single-source key scaled by its source weight.
func passThrough(tag record.SourcedTag, prio Priority, extras []record.SourcedTag) record.MergedTag {
	return record.MergedTag{
		Key:          tag.Key,
		Value:        tag.Value,
		Confidence:   record.Clamp(tag.Confidence * prio.weight(tag.Source)),
		Source:       tag.Source,
		Alternatives: extras,
	}
}

// mergeBoth resolves a key present in both sources. Values that normalize
// to near-equality agree; the weighted-confidence winner is emitted and the
// loser recorded. Genuine disagreement emits a conflict with the penalty
// applied and both values preserved in the reasoning.
func mergeBoth(key string, adv, sys record.SourcedTag, prio Priority, extras []record.SourcedTag) record.MergedTag {
	similarity := Similarity(normalize.Value(adv.Value), normalize.Value(sys.Value))

	advScore := adv.Confidence * prio.weight(adv.Source)
	sysScore := sys.Confidence * prio.weight(sys.Source)

	winner, loser := adv, sys
	winnerScore := advScore
	if sysScore > advScore {
		winner, loser = sys, adv
		winnerScore = sysScore
	}

	if similarity > agreementThreshold {
		return record.MergedTag{
			Key:          key,
			Value:        winner.Value,
			Confidence:   record.Clamp(winnerScore),
			Source:       winner.Source,
			Alternatives: append([]record.SourcedTag{loser}, extras...),
		}
	}

	return record.MergedTag{
		Key:          key,
		Value:        winner.Value,
		Confidence:   record.Clamp(winnerScore * conflictPenalty),
		Source:       record.SourceMerged,
		Alternatives: append([]record.SourcedTag{loser}, extras...),
		Conflict:     true,
		Reasoning: fmt.Sprintf("advanced=%q vs system=%q, similarity=%.2f",
			adv.Value, sys.Value, similarity),
	}
}
