// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// GetConfigDir returns the urbar-parse configuration directory.
func GetConfigDir() string {
	// Explicit override wins on every platform.
	if dir := os.Getenv("URBAR_CONFIG_DIR"); dir != "" {
		return dir
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "urbar-parse")
		}
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "urbar-parse")
}

// GetConfigFile returns the path to the main config file.
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// GetRulesFile returns the path to the user marker-rules file.
func GetRulesFile() string {
	return filepath.Join(GetConfigDir(), "markers.yaml")
}

// FindRulesFile returns the user marker-rules file when one exists at the
// standard location, or "" to fall back to the embedded defaults.
func FindRulesFile() string {
	path := GetRulesFile()
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}
