package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/DeusData/viewcode/internal/config"
	"github.com/DeusData/viewcode/internal/emit"
	"github.com/DeusData/viewcode/internal/fqn"
	"github.com/DeusData/viewcode/internal/hierarchy"
	"github.com/DeusData/viewcode/internal/model"
	"github.com/DeusData/viewcode/internal/props"
	"github.com/DeusData/viewcode/internal/resolve"
	"github.com/DeusData/viewcode/internal/verify"
	"github.com/DeusData/viewcode/internal/widget"
)

// Version is stamped into output headers. The CLI sets it at startup.
var Version = "dev"

// Result is the outcome of one generation.
type Result struct {
	RunID   string
	Syntax  emit.Syntax
	Summary string
	Code    string

	// Empty is set when there was nothing to generate (no root, unknown
	// root id). Summary and Code are then empty.
	Empty bool

	Nodes      int
	Emitted    int
	Properties int
	Calls      int
	Resolve    resolve.Stats
	Dangling   int

	// Report is set when verification ran.
	Report *verify.Report
}

// Stats flattens the counters for archiving and tool responses.
func (r *Result) Stats() map[string]any {
	m := map[string]any{
		"nodes":       r.Nodes,
		"emitted":     r.Emitted,
		"properties":  r.Properties,
		"init_calls":  r.Calls,
		"constraints": r.Resolve.Kept,
		"reversed":    r.Resolve.Reversed,
		"stale":       r.Resolve.Stale,
		"dangling":    r.Dangling,
	}
	if r.Report != nil {
		m["issues"] = len(r.Report.Issues)
	}
	return m
}

// generation carries one run through its passes.
type generation struct {
	ctx   context.Context
	dump  *widget.Dump
	cfg   *config.Config
	res   *Result
	tree  *model.Tree
	alias bool
}

func (g *generation) checkCancel() error {
	return g.ctx.Err()
}

// timed runs fn and logs its duration under pass.timing.
func (g *generation) timed(pass string, fn func() error) error {
	t := time.Now()
	err := fn()
	slog.Info("pass.timing", "run", g.res.RunID, "pass", pass, "elapsed", time.Since(t))
	if err != nil {
		return err
	}
	return g.checkCancel()
}

// Generate turns a dump into layout code. A nil config means defaults. An
// unusable dump is not an error: the result is marked Empty.
func Generate(ctx context.Context, dump *widget.Dump, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &generation{
		ctx:   ctx,
		dump:  dump,
		cfg:   cfg,
		res:   &Result{RunID: uuid.NewString(), Syntax: cfg.EffectiveSyntax()},
		alias: cfg.RootID == "",
	}
	start := time.Now()
	slog.Info("generate.start", "run", g.res.RunID, "syntax", g.res.Syntax, "root_id", cfg.RootID)

	if err := g.checkCancel(); err != nil {
		return nil, err
	}
	if err := g.run(); err != nil {
		return nil, err
	}

	slog.Info("generate.done",
		"run", g.res.RunID,
		"empty", g.res.Empty,
		"nodes", g.res.Nodes,
		"emitted", g.res.Emitted,
		"constraints", g.res.Resolve.Kept,
		"elapsed", time.Since(start),
	)
	return g.res, nil
}

func (g *generation) run() error {
	var target widget.Source
	if g.dump != nil {
		target = g.dump.Target(g.cfg.RootID)
	}
	if target == nil {
		slog.Info("generate.no_target", "run", g.res.RunID, "root_id", g.cfg.RootID)
		g.res.Empty = true
		return nil
	}

	if err := g.timed("build", g.passBuild(target)); err != nil {
		return err
	}
	if g.tree == nil || g.tree.Len() == 0 {
		g.res.Empty = true
		return nil
	}
	if err := g.timed("resolve", g.passResolve); err != nil {
		return err
	}
	if err := g.timed("extract", g.passExtract); err != nil {
		return err
	}
	if err := g.timed("emit", g.passEmit); err != nil {
		return err
	}
	if g.cfg.EffectiveVerify() {
		if err := g.timed("verify", g.passVerify); err != nil {
			return err
		}
	}
	return nil
}

func (g *generation) passBuild(target widget.Source) func() error {
	return func() error {
		g.tree = hierarchy.Build(target, g.cfg.HierarchyOptions())
		if g.tree != nil {
			g.res.Nodes = g.tree.Len()
		}
		return nil
	}
}

func (g *generation) passResolve() error {
	r := resolve.New(g.dump.Host)
	r.AliasRoot = g.alias
	g.res.Resolve = r.Resolve(g.tree)
	return nil
}

func (g *generation) passExtract() error {
	g.res.Properties, g.res.Calls = props.ExtractAll(g.tree)
	return nil
}

func (g *generation) passEmit() error {
	out, err := emit.Render(g.tree, g.cfg.EmitOptions(g.dump.Host))
	if err != nil {
		return err
	}
	if g.cfg.EffectiveEmitHierarchySummary() {
		g.res.Summary = out.Summary
	}
	g.res.Code = out.Code
	g.res.Emitted = out.Nodes
	g.res.Dangling = out.Dangling
	return nil
}

func (g *generation) passVerify() error {
	report, err := verify.Check(g.res.Code)
	if err != nil {
		// Verification never blocks output.
		slog.Warn("verify.err", "run", g.res.RunID, "err", err)
		return nil
	}
	g.res.Report = report
	return nil
}

// GenerateFile loads a dump file and generates it. The screen name is the
// file's base name without extension.
func GenerateFile(ctx context.Context, path string, cfg *config.Config) (*Output, error) {
	format, ok := widget.FormatForPath(path)
	if !ok {
		return nil, fmt.Errorf("unsupported dump extension: %s", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	dump, err := widget.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load dump: %w", err)
	}
	res, err := Generate(ctx, dump, cfg)
	if err != nil {
		return nil, err
	}
	return &Output{
		Screen:     fqn.ScreenName(filepath.Base(path)),
		SourcePath: filepath.Base(path),
		InputHash:  InputHash(data, cfg),
		Result:     res,
	}, nil
}
