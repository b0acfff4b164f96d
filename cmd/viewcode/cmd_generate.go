package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DeusData/viewcode/internal/pipeline"
	"github.com/DeusData/viewcode/internal/verify"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <dump.json|dump.yaml>",
		Short: "Generate layout code for one dump",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerateCommand,
	}
	addConfigFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "write a Swift file instead of printing")
	return cmd
}

func runGenerateCommand(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg, err := loadConfig(cmd, filepath.Dir(path))
	if err != nil {
		return err
	}
	out, err := pipeline.GenerateFile(cmd.Context(), path, cfg)
	if err != nil {
		return err
	}
	if out.Result.Empty {
		note("%s: nothing to generate", out.SourcePath)
		return nil
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		sink := &pipeline.WriterSink{W: f, Document: true}
		if err := sink.Write(cmd.Context(), out); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
		note("wrote %s", outPath)
	} else {
		printResult(cmd, out.Result)
	}
	reportIssues(out.Result.Report)
	return nil
}

// printResult prints the summary and code as separate sections.
func printResult(cmd *cobra.Command, res *pipeline.Result) {
	w := cmd.OutOrStdout()
	tty := w == os.Stdout && styled(os.Stdout)
	if res.Summary != "" {
		section(w, tty, "Hierarchy")
		fmt.Fprint(w, res.Summary)
		if !strings.HasSuffix(res.Summary, "\n") {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}
	section(w, tty, "Code")
	fmt.Fprint(w, res.Code)
	if !strings.HasSuffix(res.Code, "\n") {
		fmt.Fprintln(w)
	}
}

func reportIssues(rep *verify.Report) {
	if rep == nil {
		return
	}
	if rep.OK() {
		note("verify: ok (%d declarations, %d calls)", rep.Declarations, rep.Calls)
		return
	}
	for _, is := range rep.Issues {
		note("verify: %s", is)
	}
}
