package discover

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DeusData/viewcode/internal/widget"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverBasic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "login.json"), "{}")
	writeFile(t, filepath.Join(dir, "settings", "profile.yml"), "root: {}")
	writeFile(t, filepath.Join(dir, "README.md"), "# screens")

	files, err := Discover(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %+v", len(files), files)
	}
	if files[0].RelPath != "login.json" || files[0].Format != widget.FormatJSON || files[0].Screen != "login" {
		t.Errorf("unexpected first file: %+v", files[0])
	}
	if files[1].RelPath != "settings/profile.yml" || files[1].Format != widget.FormatYAML || files[1].Screen != "settings.profile" {
		t.Errorf("unexpected second file: %+v", files[1])
	}
	if !filepath.IsAbs(files[0].Path) {
		t.Errorf("path should be absolute: %s", files[0].Path)
	}
}

func TestDiscoverSkipsConfigAndIgnoredDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".viewcode.yaml"), "output_syntax: snapkit\n")
	writeFile(t, filepath.Join(dir, "Pods", "dep.json"), "{}")
	writeFile(t, filepath.Join(dir, "node_modules", "x.json"), "{}")
	writeFile(t, filepath.Join(dir, "package.json"), "{}")
	writeFile(t, filepath.Join(dir, "home.json"), "{}")

	files, err := Discover(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "home.json" {
		t.Errorf("expected only home.json, got %+v", files)
	}
}

func TestDiscoverKeepsScreenNamedSettings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "settings.json"), "{}")
	writeFile(t, filepath.Join(dir, ".vscode", "settings.json"), "{}")

	files, err := Discover(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "settings.json" || files[0].Screen != "settings" {
		t.Errorf("expected the settings screen only, got %+v", files)
	}
}

func TestDiscoverIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, IgnoreFileName), "# drafts\ndrafts\n*.draft.json\n")
	writeFile(t, filepath.Join(dir, "drafts", "a.json"), "{}")
	writeFile(t, filepath.Join(dir, "b.draft.json"), "{}")
	writeFile(t, filepath.Join(dir, "c.json"), "{}")

	files, err := Discover(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "c.json" {
		t.Errorf("expected only c.json, got %+v", files)
	}

	explicit := filepath.Join(t.TempDir(), "ignore")
	writeFile(t, explicit, "c.json\n")
	files, err = Discover(context.Background(), dir, &Options{IgnoreFile: explicit})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	for _, f := range files {
		if f.RelPath == "c.json" {
			t.Error("explicit ignore file not applied")
		}
	}
}

func TestDiscoverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Discover(ctx, t.TempDir(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
