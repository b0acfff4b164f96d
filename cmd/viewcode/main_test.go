package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DeusData/viewcode/internal/config"
	"github.com/DeusData/viewcode/internal/emit"
	"github.com/DeusData/viewcode/internal/pipeline"
)

const labelDump = `{
  "host": {"ref": "self"},
  "root": {
    "id": "root", "type": "UIView", "center": {"x": 0, "y": 0},
    "subviews": [
      {"id": "title", "type": "UILabel", "center": {"x": 10, "y": 10},
       "constraints": [
         {"first": "title", "first_attribute": "height", "relation": "equal",
          "multiplier": 1, "constant": 44, "active": true}
       ]}
    ]
  }
}`

func TestLoadConfigFlags(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("output_syntax: anchors\nverify: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := newGenerateCmd()
	if err := cmd.ParseFlags([]string{"--sort", "top-to-bottom", "--summary=false"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.EffectiveSyntax() != emit.Anchors {
		t.Errorf("file syntax lost: %s", cfg.EffectiveSyntax())
	}
	if cfg.SortPolicy != "top-to-bottom" || cfg.EffectiveEmitHierarchySummary() {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if !cfg.EffectiveVerify() {
		t.Error("unset --verify must keep the file value")
	}
}

func TestLoadConfigBadFlag(t *testing.T) {
	cmd := newGenerateCmd()
	if err := cmd.ParseFlags([]string{"--syntax", "xib"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(cmd, t.TempDir()); err == nil {
		t.Error("expected error for an unknown syntax")
	}
}

func TestGenerateCommandPrints(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.json")
	if err := os.WriteFile(path, []byte(labelDump), 0o600); err != nil {
		t.Fatal(err)
	}

	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"generate", path, "--syntax", "snapkit"})
	if err := root.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "// ---- Code ----") {
		t.Errorf("missing code section:\n%s", out)
	}
	if !strings.Contains(out, "make.height.equalTo(44.0)") {
		t.Errorf("missing snapkit constraint:\n%s", out)
	}
}

func TestGenerateCommandWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.json")
	if err := os.WriteFile(path, []byte(labelDump), 0o600); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "Card.swift")

	root := newRootCmd()
	root.SetArgs([]string{"generate", path, "-o", dst})
	if err := root.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if pipeline.HeaderHash(strings.SplitN(string(data), "\n", 2)[0]) == "" {
		t.Errorf("output should open with a generated header:\n%s", data)
	}
}

func TestPrintBatch(t *testing.T) {
	var buf bytes.Buffer
	printBatch(&buf, &pipeline.BatchResult{
		Project:   "screens",
		Generated: []string{"Login"},
		Skipped:   []string{"About"},
		Failed:    map[string]string{"Broken": "load dump: bad json"},
		Removed:   []string{"Old"},
		Elapsed:   1500 * time.Microsecond,
	})
	want := "screens: 1 generated, 1 unchanged, 0 empty, 1 failed in 2ms\n" +
		"  + Login\n" +
		"  - Old\n" +
		"  ! Broken: load dump: bad json\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}
