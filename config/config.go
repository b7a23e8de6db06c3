/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for markercheck.
package config

// Config represents the markercheck configuration.
type Config struct {
	// Stylesheet is the path of the base marker stylesheet. Empty
	// means usfm.sty in the working directory, falling back to the
	// embedded catalog.
	Stylesheet string `yaml:"stylesheet" json:"stylesheet"`

	// ExtraStylesheets are merged over the base catalog in order,
	// later entries overriding earlier ones by marker.
	ExtraStylesheets []string `yaml:"extraStylesheets" json:"extraStylesheets"`

	// USFM2 disables USFM 3 features by default.
	USFM2 bool `yaml:"usfm2" json:"usfm2"`

	// Files lists USFM files to check when the command line names
	// none (supports globs).
	Files []string `yaml:"files" json:"files"`

	// Locale selects a message catalog by BCP-47 tag.
	Locale string `yaml:"locale" json:"locale"`

	// Messages lists message catalog files for diagnostics.
	Messages []string `yaml:"messages" json:"messages"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{}
}
