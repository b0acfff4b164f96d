package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/DeusData/viewcode/internal/pipeline"
	"github.com/DeusData/viewcode/internal/store"
	"github.com/DeusData/viewcode/internal/watcher"
)

func addBatchFlags(cmd *cobra.Command) {
	addConfigFlags(cmd)
	f := cmd.Flags()
	f.String("out-dir", "", "directory for generated .swift files (default: next to the dumps, \"-\" for none)")
	f.Bool("no-store", false, "do not archive results")
	f.Bool("force", false, "regenerate unchanged dumps")
	f.String("ignore-file", "", "ignore file (default: .viewcodeignore in the directory)")
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Generate layout code for every dump under a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatchCommand,
	}
	addBatchFlags(cmd)
	return cmd
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Regenerate a directory whenever its dumps change",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatchCommand,
	}
	addBatchFlags(cmd)
	return cmd
}

// batchRunner holds what a batch run needs across watch iterations.
type batchRunner struct {
	cmd   *cobra.Command
	opts  pipeline.BatchOptions
	store *store.Store
}

func newBatchRunner(cmd *cobra.Command, dir string) (*batchRunner, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve dir: %w", err)
	}
	f := cmd.Flags()
	outDir, _ := f.GetString("out-dir")
	force, _ := f.GetBool("force")
	ignore, _ := f.GetString("ignore-file")
	noStore, _ := f.GetBool("no-store")

	r := &batchRunner{cmd: cmd, opts: pipeline.BatchOptions{
		Root:       root,
		OutDir:     outDir,
		Force:      force,
		IgnoreFile: ignore,
	}}
	if !noStore {
		s, err := openStore()
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		r.store = s
		r.opts.Store = s
	}
	return r, nil
}

func (r *batchRunner) close() {
	if r.store != nil {
		r.store.Close()
	}
}

// run reloads the config so edits to .viewcode.yaml apply on the next pass.
func (r *batchRunner) run(ctx context.Context) (*pipeline.BatchResult, error) {
	cfg, err := loadConfig(r.cmd, r.opts.Root)
	if err != nil {
		return nil, err
	}
	opts := r.opts
	opts.Config = cfg
	res, err := pipeline.Batch(ctx, opts)
	if err != nil {
		return nil, err
	}
	printBatch(r.cmd.OutOrStdout(), res)
	return res, nil
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	r, err := newBatchRunner(cmd, args[0])
	if err != nil {
		return err
	}
	defer r.close()

	res, err := r.run(cmd.Context())
	if err != nil {
		return err
	}
	if len(res.Failed) > 0 {
		return fmt.Errorf("%d dump(s) failed", len(res.Failed))
	}
	return nil
}

func runWatchCommand(cmd *cobra.Command, args []string) error {
	r, err := newBatchRunner(cmd, args[0])
	if err != nil {
		return err
	}
	defer r.close()

	ctx := cmd.Context()
	if _, err := r.run(ctx); err != nil {
		return err
	}
	note("watching %s", r.opts.Root)
	w := watcher.New(r.opts.Root, func(ctx context.Context, _ string) error {
		_, err := r.run(ctx)
		return err
	})
	w.Run(ctx)
	return nil
}

func printBatch(w io.Writer, res *pipeline.BatchResult) {
	fmt.Fprintf(w, "%s: %d generated, %d unchanged, %d empty, %d failed in %s\n",
		res.Project, len(res.Generated), len(res.Skipped), len(res.Empty), len(res.Failed),
		res.Elapsed.Round(time.Millisecond))
	for _, name := range res.Generated {
		fmt.Fprintf(w, "  + %s\n", name)
	}
	for _, name := range res.Removed {
		fmt.Fprintf(w, "  - %s\n", name)
	}
	failed := make([]string, 0, len(res.Failed))
	for name := range res.Failed {
		failed = append(failed, name)
	}
	sort.Strings(failed)
	for _, name := range failed {
		fmt.Fprintf(w, "  ! %s: %s\n", name, res.Failed[name])
	}
}
