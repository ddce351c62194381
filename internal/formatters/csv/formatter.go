// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strings"

	"urbar-parse/internal/core"
	"urbar-parse/internal/formatters"
	"urbar-parse/internal/formatters/shared"
	"urbar-parse/internal/record"
)

// Formatter implements CSV output formatting. One row is emitted per
// reconciled tag with the owner-row columns repeated, so the output loads
// directly into a spreadsheet or a staging table.
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(results []*core.Result, options formatters.FormatterOptions) (string, error) {
	headers := []string{
		"Territory", "Sequence Number", "List Number", "Raw Name", "Searchable Name",
		"Gender", "Minor", "Parse Score", "Tag Key", "Tag Value", "Tag Confidence",
		"Tag Level", "Tag Source", "Conflict",
	}

	csvRows := []string{strings.Join(headers, ",")}

	for _, res := range results {
		if res == nil {
			continue
		}
		owner, _ := res.Rows()
		tags := shared.FilterTagsByConfidence(res.MergedTags, options)

		if len(tags) == 0 {
			csvRows = append(csvRows, f.createRow(owner, nil))
			continue
		}
		for i := range tags {
			csvRows = append(csvRows, f.createRow(owner, &tags[i]))
		}
	}

	return strings.Join(csvRows, "\n"), nil
}

func (f *Formatter) createRow(owner core.OwnerRow, tag *record.MergedTag) string {
	row := []string{
		f.escapeCSVField(owner.Territory),
		formatOptionalInt(owner.SequenceNumber),
		formatOptionalInt(owner.OwnershipListNumber),
		f.escapeCSVField(owner.RawName),
		f.escapeCSVField(owner.SearchableName),
		f.escapeCSVField(owner.Gender),
		fmt.Sprintf("%t", owner.Minor),
		fmt.Sprintf("%.2f", owner.ParseScore),
	}

	if tag == nil {
		row = append(row, "", "", "", "", "", "")
	} else {
		row = append(row,
			f.escapeCSVField(tag.Key),
			f.escapeCSVField(tag.Value),
			fmt.Sprintf("%.2f", tag.Confidence),
			f.escapeCSVField(core.ConfidenceLevel(tag.Confidence)),
			f.escapeCSVField(string(tag.Source)),
			fmt.Sprintf("%t", tag.Conflict),
		)
	}

	return strings.Join(row, ",")
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	field = f.sanitizeFormulaInjection(field)

	if strings.Contains(field, ",") || strings.Contains(field, "\"") || strings.Contains(field, "\n") || strings.Contains(field, "\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// sanitizeFormulaInjection prevents CSV injection attacks by sanitizing formula characters
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	firstChar := field[0]
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' {
		return "'" + field
	}

	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
