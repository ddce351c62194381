// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"strconv"
	"strings"
)

// Record is one input row from a cadastral ledger import. Numeric fields
// that fail to parse become nil rather than an error; the NUMERIC_INVALID
// code is attached to the parsed output instead.
type Record struct {
	Territory           string            `json:"territory"`
	SequenceNumber      *int              `json:"sequence_number,omitempty"`
	OwnershipListNumber *int              `json:"ownership_list_number,omitempty"`
	RawName             string            `json:"raw_name"`
	Extra               map[string]string `json:"extra,omitempty"`

	// NumericErrors records which numeric inputs were present but unparsable.
	NumericErrors []string `json:"-"`
}

// NewRecord builds a Record from raw text fields, parsing the numeric ones
// leniently. Empty numeric inputs are simply absent; non-empty inputs that
// do not parse are recorded in NumericErrors.
func NewRecord(territory, sequence, listNumber, rawName string) Record {
	r := Record{
		Territory: strings.TrimSpace(territory),
		RawName:   strings.TrimSpace(rawName),
	}
	r.SequenceNumber = r.parseOptionalInt(sequence, "sequence_number")
	r.OwnershipListNumber = r.parseOptionalInt(listNumber, "ownership_list_number")
	return r
}

func (r *Record) parseOptionalInt(s, fieldName string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		r.NumericErrors = append(r.NumericErrors, fieldName)
		return nil
	}
	return &n
}

// FieldValues returns every non-name input field value, used by the SPF
// detector to scan for state-land-fund mentions outside the name text.
func (r *Record) FieldValues() []string {
	values := []string{r.Territory}
	for _, v := range r.Extra {
		values = append(values, v)
	}
	return values
}
