// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ingest reads batch input into records. Two shapes are supported:
// CSV with a header and a configurable column mapping, and plain text with
// one raw name per line. Numeric columns parse leniently; an unparsable
// value becomes nil and is reported on the record instead of failing the
// read.
package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"urbar-parse/internal/record"
)

// ColumnMap names the CSV header columns that feed each record field.
// Matching is case-insensitive. Columns not named here are carried through
// on the record's Extra map.
type ColumnMap struct {
	Territory      string
	SequenceNumber string
	ListNumber     string
	RawName        string
}

// DefaultColumnMap matches the export headers of the cadastral ledgers.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		Territory:      "territory",
		SequenceNumber: "sequence_number",
		ListNumber:     "ownership_list_number",
		RawName:        "raw_name",
	}
}

// ReadCSV reads a header-first CSV stream into records. The raw-name column
// must exist; every other mapped column is optional. Rows with too few
// fields are padded, never rejected.
func ReadCSV(r io.Reader, cols ColumnMap) ([]record.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx := headerIndex(header)
	nameCol, ok := lookup(idx, cols.RawName)
	if !ok {
		return nil, fmt.Errorf("raw name column %q not found in CSV header", cols.RawName)
	}
	territoryCol, _ := lookup(idx, cols.Territory)
	sequenceCol, _ := lookup(idx, cols.SequenceNumber)
	listCol, _ := lookup(idx, cols.ListNumber)
	mapped := map[int]bool{nameCol: true, territoryCol: true, sequenceCol: true, listCol: true}

	var records []record.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, fmt.Errorf("failed to read CSV row %d: %w", len(records)+2, err)
		}

		rec := record.NewRecord(cell(row, territoryCol), cell(row, sequenceCol), cell(row, listCol), cell(row, nameCol))
		for i, v := range row {
			if mapped[i] || i >= len(header) {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[header[i]] = v
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadLines reads plain input, one raw name per line. Blank lines are
// skipped. The given territory (possibly empty) is stamped on every record.
func ReadLines(r io.Reader, territory string) ([]record.Record, error) {
	var records []record.Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		records = append(records, record.Record{Territory: territory, RawName: line})
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("failed to read input: %w", err)
	}
	return records, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func lookup(idx map[string]int, name string) (int, bool) {
	if name == "" {
		return -1, false
	}
	i, ok := idx[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return -1, false
	}
	return i, true
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
