package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/DeusData/viewcode/internal/store"
)

// Output is a generation result with the identity of its input.
type Output struct {
	Screen     string
	SourcePath string
	InputHash  string
	Result     *Result
}

// Sink receives generated output.
type Sink interface {
	Write(ctx context.Context, out *Output) error
}

// WriterSink writes output to an io.Writer. In console form (Document
// false) the summary is printed as-is followed by the code; in document form
// the text is a compilable Swift file opened by a header.
type WriterSink struct {
	W        io.Writer
	Document bool
}

func (s *WriterSink) Write(ctx context.Context, out *Output) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res := out.Result
	if res == nil || res.Empty {
		return nil
	}
	var text string
	if s.Document {
		header := ""
		if out.InputHash != "" {
			header = Header(out.SourcePath, out.InputHash)
		}
		text = Document(res, header)
	} else {
		text = res.Summary
		if text != "" && res.Code != "" {
			text += "\n"
		}
		text += res.Code
	}
	if _, err := io.WriteString(s.W, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// StoreSink archives output in the screen store under Project.
type StoreSink struct {
	Store   *store.Store
	Project string
	RootDir string
}

func (s *StoreSink) Write(ctx context.Context, out *Output) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res := out.Result
	if res == nil || res.Empty {
		return nil
	}
	if out.Screen == "" {
		return fmt.Errorf("store output: screen name required")
	}
	if err := s.Store.UpsertProject(s.Project, s.RootDir); err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}
	return s.Store.UpsertScreen(screenRow(s.Project, out))
}

func screenRow(project string, out *Output) *store.Screen {
	res := out.Result
	return &store.Screen{
		Project:    project,
		Name:       out.Screen,
		SourcePath: out.SourcePath,
		InputHash:  out.InputHash,
		Syntax:     string(res.Syntax),
		Summary:    res.Summary,
		Code:       res.Code,
		Stats:      res.Stats(),
		RunID:      res.RunID,
	}
}
