// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urbar-parse/internal/core"
	"urbar-parse/internal/formatters"
	"urbar-parse/internal/formatters/shared"
	"urbar-parse/internal/record"
)

func processOne(t *testing.T, raw string) []*core.Result {
	t.Helper()
	engine, err := core.NewEngine("", nil)
	require.NoError(t, err)
	return []*core.Result{engine.Process(record.Record{Territory: "Lehota", RawName: raw})}
}

func allLevels() formatters.FormatterOptions {
	return formatters.FormatterOptions{ConfidenceLevel: core.ParseConfidenceLevels("all")}
}

func TestFormat_RoundTrips(t *testing.T) {
	results := processOne(t, "Batóová Júlia r. Szivecová, (z Várkonyu, m.Ján)")

	output, err := NewFormatter().Format(results, allLevels())
	require.NoError(t, err)

	var response shared.Response
	require.NoError(t, json.Unmarshal([]byte(output), &response))
	require.Len(t, response.Results, 1)

	rec := response.Results[0]
	assert.Equal(t, "Lehota", rec.Territory)
	assert.Equal(t, record.GenderFemale, rec.Gender)
	assert.NotEmpty(t, rec.Tags)

	keys := make(map[string]shared.TagOutput)
	for _, tag := range rec.Tags {
		keys[tag.Key] = tag
	}
	maiden, ok := keys["rodne_priezvisko"]
	require.True(t, ok, "rodne_priezvisko tag missing")
	assert.Equal(t, "Szivecová", maiden.Value)
	assert.Equal(t, "high", maiden.ConfidenceLevel)
}

func TestFormat_ConfidenceFilter(t *testing.T) {
	results := processOne(t, "Novák Ján")

	options := allLevels()
	options.ConfidenceLevel = core.ParseConfidenceLevels("high")

	output, err := NewFormatter().Format(results, options)
	require.NoError(t, err)

	var response shared.Response
	require.NoError(t, json.Unmarshal([]byte(output), &response))
	for _, tag := range response.Results[0].Tags {
		assert.Equal(t, "high", tag.ConfidenceLevel, "tag %s leaked through filter", tag.Key)
	}
}

func TestFormat_VerboseCarriesEvidence(t *testing.T) {
	results := processOne(t, "JAROŠ Štefan (ž.Marta Virdzeková zomrel 24.04.1997)")

	terse, err := NewFormatter().Format(results, allLevels())
	require.NoError(t, err)

	verboseOptions := allLevels()
	verboseOptions.Verbose = true
	verbose, err := NewFormatter().Format(results, verboseOptions)
	require.NoError(t, err)

	var terseResp, verboseResp shared.Response
	require.NoError(t, json.Unmarshal([]byte(terse), &terseResp))
	require.NoError(t, json.Unmarshal([]byte(verbose), &verboseResp))

	assert.Empty(t, terseResp.Results[0].Evidence)
	assert.Empty(t, terseResp.Results[0].LegacyTags)
	assert.NotEmpty(t, verboseResp.Results[0].Evidence)
	assert.NotEmpty(t, verboseResp.Results[0].LegacyTags)
}

func TestFormat_NilResultsSkipped(t *testing.T) {
	results := processOne(t, "Novák Ján")
	results = append(results, nil)

	output, err := NewFormatter().Format(results, allLevels())
	require.NoError(t, err)

	var response shared.Response
	require.NoError(t, json.Unmarshal([]byte(output), &response))
	assert.Len(t, response.Results, 1)
}

func TestRegistration(t *testing.T) {
	formatter, exists := formatters.Get("json")
	require.True(t, exists)
	assert.Equal(t, ".json", formatter.FileExtension())
}
