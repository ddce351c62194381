// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package names provides the static given-name dictionary shared by both
// parsers. The data is embedded in the binary and loaded once; lookups are
// case- and diacritic-insensitive and safe for concurrent use.
package names

import (
	"bufio"
	"bytes"
	_ "embed"
	"strings"
	"sync"

	"urbar-parse/internal/normalize"
)

// Embedded given-name database. Slovak and Hungarian given names as they
// appear in historical cadastral ledgers, one per line.
//
//go:embed data/given_names.txt
var givenNamesData []byte

// Dictionary answers "is this token a known given name?" in O(1).
type Dictionary struct {
	given map[string]bool
}

var (
	dictionary *Dictionary
	loadOnce   sync.Once
)

// Load returns the shared dictionary instance, building it on first use.
func Load() *Dictionary {
	loadOnce.Do(func() {
		dictionary = buildDictionary(givenNamesData)
	})
	return dictionary
}

func buildDictionary(data []byte) *Dictionary {
	d := &Dictionary{
		given: make(map[string]bool, 200),
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		d.given[normalize.Fold(name)] = true
	}

	return d
}

// IsGivenName reports whether the token is a known given name. The lookup
// ignores case and diacritics, so "JULIA" matches "Júlia".
func (d *Dictionary) IsGivenName(token string) bool {
	token = strings.TrimRight(token, ".,;")
	if token == "" {
		return false
	}
	return d.given[normalize.Fold(token)]
}

// Size returns the number of entries, for diagnostics.
func (d *Dictionary) Size() int {
	return len(d.given)
}
