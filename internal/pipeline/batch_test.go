package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DeusData/viewcode/internal/config"
	"github.com/DeusData/viewcode/internal/store"
)

func writeDump(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

const yamlDump = `host: {ref: self}
root:
  id: root
  type: UIView
  subviews:
    - id: name
      type: UITextField
      attrs: {placeholder: Name, borderStyle: 3}
      constraints:
        - {first: name, first_attribute: height, constant: 44}
`

func TestBatchWritesAndSkips(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeDump(t, filepath.Join(root, "card.json"), cardDump)
	writeDump(t, filepath.Join(root, "forms", "name.yaml"), yamlDump)
	writeDump(t, filepath.Join(root, "broken.json"), "{not json")

	s, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	opts := BatchOptions{Root: root, OutDir: out, Store: s}
	res, err := Batch(context.Background(), opts)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(res.Generated) != 2 || len(res.Failed) != 1 {
		t.Fatalf("expected 2 generated and 1 failed, got %+v", res)
	}
	if _, ok := res.Failed["broken"]; !ok {
		t.Errorf("broken dump should be reported: %v", res.Failed)
	}

	data, err := os.ReadFile(filepath.Join(out, "forms.name.swift"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "// Generated by viewcode ") {
		t.Errorf("missing header:\n%s", text)
	}
	for _, want := range []string{
		"textField_0_0.placeholder = \"Name\"",
		"textField_0_0.borderStyle = .roundedRect",
		"attribute: .height",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}

	n, _ := s.CountScreens(res.Project)
	if n != 2 {
		t.Errorf("expected 2 archived screens, got %d", n)
	}
	run, err := s.GetRun(res.RunID)
	if err != nil || run == nil || run.Generated != 2 || run.Failed != 1 {
		t.Errorf("unexpected run row: %+v %v", run, err)
	}

	// Unchanged inputs are skipped on the next run.
	res, err = Batch(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Generated) != 0 || len(res.Skipped) != 2 {
		t.Errorf("expected everything skipped, got %+v", res)
	}

	// Force regenerates; a removed dump is pruned from the archive.
	if err := os.Remove(filepath.Join(root, "card.json")); err != nil {
		t.Fatal(err)
	}
	opts.Force = true
	res, err = Batch(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Generated) != 1 || len(res.Removed) != 1 || res.Removed[0] != "card" {
		t.Errorf("expected forced regeneration and pruning, got %+v", res)
	}
}

func TestBatchSkipsByHeaderWithoutStore(t *testing.T) {
	root := t.TempDir()
	writeDump(t, filepath.Join(root, "card.json"), cardDump)

	res, err := Batch(context.Background(), BatchOptions{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Generated) != 1 {
		t.Fatalf("expected one screen, got %+v", res)
	}
	if _, err := os.Stat(filepath.Join(root, "card.swift")); err != nil {
		t.Fatalf("output next to the dump: %v", err)
	}

	res, err = Batch(context.Background(), BatchOptions{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Skipped) != 1 {
		t.Errorf("expected skip by header hash, got %+v", res)
	}

	// A config change invalidates the recorded hash.
	writeDump(t, filepath.Join(root, config.FileName), "output_syntax: snapkit\n")
	res, err = Batch(context.Background(), BatchOptions{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Generated) != 1 {
		t.Fatalf("expected regeneration after config change, got %+v", res)
	}
	data, _ := os.ReadFile(filepath.Join(root, "card.swift"))
	if !strings.Contains(string(data), ".snp.makeConstraints") {
		t.Errorf("expected snapkit output:\n%s", data)
	}
}

func TestBatchEmptyAndNoOutput(t *testing.T) {
	root := t.TempDir()
	writeDump(t, filepath.Join(root, "blank.json"), `{"host": {}}`)
	writeDump(t, filepath.Join(root, "card.json"), cardDump)

	res, err := Batch(context.Background(), BatchOptions{Root: root, OutDir: "-"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Empty) != 1 || res.Empty[0] != "blank" {
		t.Errorf("expected blank to be empty, got %+v", res)
	}
	if len(res.Generated) != 1 {
		t.Errorf("expected card generated, got %+v", res)
	}
	if _, err := os.Stat(filepath.Join(root, "card.swift")); !os.IsNotExist(err) {
		t.Error("no file should be written when output is disabled")
	}
}

func TestBatchInvalidConfig(t *testing.T) {
	root := t.TempDir()
	writeDump(t, filepath.Join(root, config.FileName), "output_syntax: xib\n")
	if _, err := Batch(context.Background(), BatchOptions{Root: root}); err == nil {
		t.Error("expected config error")
	}
}

func TestBatchCancelled(t *testing.T) {
	root := t.TempDir()
	writeDump(t, filepath.Join(root, "card.json"), cardDump)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Batch(ctx, BatchOptions{Root: root}); err == nil {
		t.Error("expected cancellation error")
	}
}
