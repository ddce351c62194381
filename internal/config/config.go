// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"urbar-parse/internal/paths"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format           string `yaml:"format"`
		ConfidenceLevels string `yaml:"confidence_levels"`
		Workers          int    `yaml:"workers"`
		Territory        string `yaml:"territory"`
		RulesFile        string `yaml:"rules_file"`
		Verbose          bool   `yaml:"verbose"`
		Debug            bool   `yaml:"debug"`
		NoColor          bool   `yaml:"no_color"`
		ShowAlternatives bool   `yaml:"show_alternatives"`
	} `yaml:"defaults"`

	// Profiles for different processing scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a processing profile with specific settings
type Profile struct {
	Format           string `yaml:"format"`
	ConfidenceLevels string `yaml:"confidence_levels"`
	Workers          int    `yaml:"workers"`
	Territory        string `yaml:"territory"`
	RulesFile        string `yaml:"rules_file"`
	Verbose          bool   `yaml:"verbose"`
	Debug            bool   `yaml:"debug"`
	NoColor          bool   `yaml:"no_color"`
	ShowAlternatives bool   `yaml:"show_alternatives"`
	Description      string `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	config.Defaults.Format = "text"
	config.Defaults.ConfidenceLevels = "all"
	config.Defaults.Workers = 0 // 0 means one worker per CPU

	// Default batch-import profile: machine output, every tag level kept so
	// nothing is lost before it reaches the staging table.
	config.Profiles["import"] = Profile{
		Format:           "json",
		ConfidenceLevels: "all",
		NoColor:          true,
		ShowAlternatives: true,
		Description:      "Machine-readable output for batch imports",
	}

	// Review profile: humans triaging uncertain parses.
	config.Profiles["review"] = Profile{
		Format:           "text",
		ConfidenceLevels: "medium,low",
		Verbose:          true,
		Description:      "Verbose text output of the records that need a second look",
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize config.yaml
	if fileExists("config.yaml") {
		return "config.yaml"
	}
	if fileExists("urbar.yaml") {
		return "urbar.yaml"
	}
	if fileExists("urbar.yml") {
		return "urbar.yml"
	}

	// Project-specific config
	if fileExists(".urbar-parse.yaml") {
		return ".urbar-parse.yaml"
	}
	if fileExists(".urbar-parse.yml") {
		return ".urbar-parse.yml"
	}

	// Standard per-user location
	standardConfig := paths.GetConfigFile()
	if fileExists(standardConfig) {
		return standardConfig
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return info != nil && !info.IsDir()
}

// ListProfiles returns a list of available profile names
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard
// locations when configFile is empty). If loading fails, it returns a default
// configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults — callers should not crash on a missing/bad config file.
		cfg, _ = LoadConfig("")
	}
	return cfg
}
