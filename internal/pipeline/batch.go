package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/DeusData/viewcode/internal/config"
	"github.com/DeusData/viewcode/internal/discover"
	"github.com/DeusData/viewcode/internal/fqn"
	"github.com/DeusData/viewcode/internal/store"
	"github.com/DeusData/viewcode/internal/widget"
)

// BatchOptions configures a directory run.
type BatchOptions struct {
	Root string
	// Config applies to every dump. Nil loads .viewcode.yaml from Root.
	Config *config.Config
	// OutDir receives <screen>.swift files. Empty means Root; "-" disables
	// file output.
	OutDir string
	// Store archives results and supplies hashes for incremental skips.
	Store *store.Store
	// Force regenerates unchanged dumps.
	Force bool
	// IgnoreFile overrides the .viewcodeignore lookup.
	IgnoreFile string
}

// BatchResult lists what happened to each discovered dump, by screen name.
type BatchResult struct {
	RunID     string            `json:"run_id"`
	Project   string            `json:"project"`
	Generated []string          `json:"generated"`
	Skipped   []string          `json:"skipped"`
	Empty     []string          `json:"empty,omitempty"`
	Failed    map[string]string `json:"failed,omitempty"`
	Removed   []string          `json:"removed,omitempty"`
	Elapsed   time.Duration     `json:"elapsed"`
}

// ProjectNameFromPath derives a project name from an absolute path by
// replacing path separators with dashes and trimming the leading dash.
func ProjectNameFromPath(absPath string) string {
	cleaned := filepath.ToSlash(filepath.Clean(absPath))
	name := strings.ReplaceAll(cleaned, "/", "-")
	name = strings.TrimLeft(name, "-")
	if name == "" {
		return "root"
	}
	return name
}

type batchItem struct {
	file   discover.DumpFile
	hash   string
	skip   bool
	result *Result
	err    error
}

// Batch generates code for every dump under opts.Root. Dumps run in
// parallel; archive writes happen afterwards in one transaction. Per-dump
// failures are collected, not returned.
func Batch(ctx context.Context, opts BatchOptions) (*BatchResult, error) {
	start := time.Now()
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	cfg := opts.Config
	if cfg == nil {
		if cfg, err = config.LoadDir(root); err != nil {
			return nil, err
		}
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = root
	}

	res := &BatchResult{
		RunID:   uuid.NewString(),
		Project: ProjectNameFromPath(root),
		Failed:  map[string]string{},
	}
	slog.Info("batch.start", "run", res.RunID, "project", res.Project, "root", root)

	var ignore *discover.Options
	if opts.IgnoreFile != "" {
		ignore = &discover.Options{IgnoreFile: opts.IgnoreFile}
	}
	files, err := discover.Discover(ctx, root, ignore)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	slog.Info("batch.discovered", "dumps", len(files))

	var stored map[string]string
	if opts.Store != nil && !opts.Force {
		if stored, err = opts.Store.ScreenHashes(res.Project); err != nil {
			return nil, fmt.Errorf("load hashes: %w", err)
		}
	}

	items := make([]*batchItem, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = runItem(gctx, f, cfg, opts, outDir, stored)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var outputs []*Output
	for _, it := range items {
		name := it.file.Screen
		switch {
		case it.err != nil:
			res.Failed[name] = it.err.Error()
			slog.Warn("batch.failed", "screen", name, "err", it.err)
		case it.skip:
			res.Skipped = append(res.Skipped, name)
		case it.result.Empty:
			res.Empty = append(res.Empty, name)
		default:
			out := &Output{Screen: name, SourcePath: it.file.RelPath, InputHash: it.hash, Result: it.result}
			if outDir != "-" {
				if err := writeFile(ctx, filepath.Join(outDir, fqn.FileName(name)), out); err != nil {
					res.Failed[name] = err.Error()
					continue
				}
			}
			outputs = append(outputs, out)
			res.Generated = append(res.Generated, name)
		}
	}

	if opts.Store != nil {
		if err := archive(ctx, opts.Store, root, res, files, outputs); err != nil {
			return nil, fmt.Errorf("archive: %w", err)
		}
	}

	res.Elapsed = time.Since(start)
	slog.Info("batch.done",
		"run", res.RunID,
		"generated", len(res.Generated),
		"skipped", len(res.Skipped),
		"failed", len(res.Failed),
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// runItem loads, hashes and generates one dump. Unchanged dumps are skipped
// when the archive or the existing output file records the same hash.
func runItem(ctx context.Context, f discover.DumpFile, cfg *config.Config, opts BatchOptions, outDir string, stored map[string]string) *batchItem {
	it := &batchItem{file: f}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		it.err = fmt.Errorf("read dump: %w", err)
		return it
	}
	it.hash = InputHash(data, cfg)
	if !opts.Force && unchanged(it.hash, f.Screen, outDir, stored, opts.Store != nil) {
		it.skip = true
		return it
	}

	dump, err := widget.Parse(data, f.Format)
	if err != nil {
		it.err = err
		return it
	}
	it.result, it.err = Generate(ctx, dump, cfg)
	return it
}

func unchanged(hash, screen, outDir string, stored map[string]string, useStore bool) bool {
	if useStore {
		if stored[screen] != hash {
			return false
		}
		if outDir == "-" {
			return true
		}
	}
	if outDir == "-" {
		return false
	}
	return readHeaderHash(filepath.Join(outDir, fqn.FileName(screen))) == hash
}

func writeFile(ctx context.Context, path string, out *Output) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("mkdir output: %w", err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	sink := &WriterSink{W: f, Document: true}
	if err := sink.Write(ctx, out); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close output: %w", err)
	}
	return os.Rename(tmp, path)
}

// archive records the run in one transaction and drops screens whose dumps
// are gone.
func archive(ctx context.Context, s *store.Store, root string, res *BatchResult, files []discover.DumpFile, outputs []*Output) error {
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f.Screen] = true
	}
	return s.WithTransaction(func(tx *store.Store) error {
		if err := tx.UpsertProject(res.Project, root); err != nil {
			return err
		}
		if err := tx.StartRun(res.RunID, res.Project); err != nil {
			return err
		}
		for _, out := range outputs {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := screenRow(res.Project, out)
			row.RunID = res.RunID
			if err := tx.UpsertScreen(row); err != nil {
				return fmt.Errorf("store %s: %w", out.Screen, err)
			}
		}
		hashes, err := tx.ScreenHashes(res.Project)
		if err != nil {
			return err
		}
		for name := range hashes {
			if present[name] {
				continue
			}
			if _, err := tx.DeleteScreen(res.Project, name); err != nil {
				return err
			}
			res.Removed = append(res.Removed, name)
		}
		sort.Strings(res.Removed)
		return tx.FinishRun(res.RunID, len(res.Generated), len(res.Skipped), len(res.Failed))
	})
}
