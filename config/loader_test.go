/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config_test

import (
	"testing"

	"github.com/jwickberg/MarkerCheck/config"
	"github.com/jwickberg/MarkerCheck/internal/mapfs"
)

func TestLoad_YAML(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile(".config/markercheck.yaml", `
stylesheet: custom.sty
extraStylesheets:
  - project.sty
usfm2: true
files:
  - books/*.usfm
locale: de
`, 0644)

	cfg, err := config.Load(mfs, ".")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected a config")
	}
	if cfg.Stylesheet != "custom.sty" {
		t.Errorf("stylesheet = %q", cfg.Stylesheet)
	}
	if len(cfg.ExtraStylesheets) != 1 || cfg.ExtraStylesheets[0] != "project.sty" {
		t.Errorf("extra stylesheets = %v", cfg.ExtraStylesheets)
	}
	if !cfg.USFM2 {
		t.Error("expected usfm2 true")
	}
	if cfg.Locale != "de" {
		t.Errorf("locale = %q", cfg.Locale)
	}
}

func TestLoad_JSONWithComments(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile(".config/markercheck.json", `{
  // project stylesheet
  "stylesheet": "custom.sty",
  "usfm2": false
}`, 0644)

	cfg, err := config.Load(mfs, ".")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil || cfg.Stylesheet != "custom.sty" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoad_MissingReturnsNil(t *testing.T) {
	cfg, err := config.Load(mapfs.New(), ".")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
	if def := config.LoadOrDefault(mapfs.New(), "."); def == nil {
		t.Error("LoadOrDefault must return defaults")
	}
}

func TestExpandFiles_Glob(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("books/01-GEN.usfm", `\id GEN`, 0644)
	mfs.AddFile("books/02-EXO.usfm", `\id EXO`, 0644)
	mfs.AddFile("books/readme.txt", "not usfm", 0644)

	cfg := &config.Config{Files: []string{"books/*.usfm"}}
	files, err := cfg.ExpandFiles(mfs, ".")
	if err != nil {
		t.Fatalf("ExpandFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v, want the two usfm files", files)
	}
}

func TestExpandFiles_PlainPathPassesThrough(t *testing.T) {
	cfg := &config.Config{Files: []string{"GEN.usfm"}}
	files, err := cfg.ExpandFiles(mapfs.New(), ".")
	if err != nil {
		t.Fatalf("ExpandFiles: %v", err)
	}
	if len(files) != 1 || files[0] != "GEN.usfm" {
		t.Errorf("files = %v", files)
	}
}
