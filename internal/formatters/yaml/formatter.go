// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"fmt"

	"urbar-parse/internal/core"
	"urbar-parse/internal/formatters"
	"urbar-parse/internal/formatters/shared"

	"gopkg.in/yaml.v3"
)

// Formatter implements YAML output formatting
type Formatter struct{}

// NewFormatter creates a new YAML formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "yaml"
}

func (f *Formatter) Description() string {
	return "YAML format output, 100% compatible with JSON structure"
}

func (f *Formatter) FileExtension() string {
	return ".yaml"
}

func (f *Formatter) Format(results []*core.Result, options formatters.FormatterOptions) (string, error) {
	response := shared.ConvertResults(results, options)

	yamlData, err := yaml.Marshal(response)
	if err != nil {
		return "", fmt.Errorf("failed to format YAML: %w", err)
	}

	return string(yamlData), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
