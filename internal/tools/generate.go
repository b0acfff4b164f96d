package tools

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/viewcode/internal/pipeline"
	"github.com/DeusData/viewcode/internal/verify"
	"github.com/DeusData/viewcode/internal/widget"
)

// AdhocProject holds screens archived from generate_layout_code.
const AdhocProject = "adhoc"

type generateResponse struct {
	RunID   string         `json:"run_id"`
	Syntax  string         `json:"syntax"`
	Empty   bool           `json:"empty,omitempty"`
	Summary string         `json:"summary,omitempty"`
	Code    string         `json:"code"`
	Stats   map[string]any `json:"stats"`
	Issues  []verify.Issue `json:"issues,omitempty"`
	Saved   string         `json:"saved_as,omitempty"`
}

func (s *Server) handleGenerateLayoutCode(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	path := getStringArg(args, "path")
	inline := getStringArg(args, "dump")
	if path == "" && inline == "" {
		return errResult("path or dump is required"), nil
	}

	var dir string
	var out *pipeline.Output
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return errResult(fmt.Sprintf("resolve path: %v", err)), nil
		}
		dir = filepath.Dir(abs)
		cfg, err := s.configFor(dir, args)
		if err != nil {
			return errResult(fmt.Sprintf("config: %v", err)), nil
		}
		if out, err = pipeline.GenerateFile(ctx, abs, cfg); err != nil {
			return errResult(err.Error()), nil
		}
	} else {
		format := widget.Format(getStringArg(args, "format"))
		if format == "" {
			format = widget.FormatJSON
		}
		dump, err := widget.Parse([]byte(inline), format)
		if err != nil {
			return errResult(err.Error()), nil
		}
		cfg, err := s.configFor("", args)
		if err != nil {
			return errResult(fmt.Sprintf("config: %v", err)), nil
		}
		res, err := pipeline.Generate(ctx, dump, cfg)
		if err != nil {
			return errResult(err.Error()), nil
		}
		out = &pipeline.Output{
			SourcePath: "inline",
			InputHash:  pipeline.InputHash([]byte(inline), cfg),
			Result:     res,
		}
	}

	res := out.Result
	resp := generateResponse{
		RunID:   res.RunID,
		Syntax:  string(res.Syntax),
		Empty:   res.Empty,
		Summary: res.Summary,
		Code:    res.Code,
		Stats:   res.Stats(),
	}
	if res.Report != nil {
		resp.Issues = res.Report.Issues
	}

	if name := getStringArg(args, "save_as"); name != "" && !res.Empty {
		if s.store == nil {
			return errResult("no archive configured"), nil
		}
		out.Screen = name
		sink := &pipeline.StoreSink{Store: s.store, Project: AdhocProject, RootDir: dir}
		if err := sink.Write(ctx, out); err != nil {
			return errResult(fmt.Sprintf("archive: %v", err)), nil
		}
		resp.Saved = name
	}
	return jsonResult(resp), nil
}

func (s *Server) handleGenerateDirectory(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	path := getStringArg(args, "path")
	if path == "" {
		return errResult("path is required"), nil
	}

	res, err := pipeline.Batch(ctx, pipeline.BatchOptions{
		Root:   path,
		Config: s.cfg,
		OutDir: getStringArg(args, "out_dir"),
		Store:  s.store,
		Force:  getBoolArg(args, "force"),
	})
	if err != nil {
		return errResult(fmt.Sprintf("generate failed: %v", err)), nil
	}
	return jsonResult(res), nil
}
