package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// styled reports whether f is an interactive terminal.
func styled(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func sectionStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00FFFF")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#00FFFF"))
}

func errorStyle() lipgloss.Style {
	if !styled(os.Stderr) {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF0000")).
		Bold(true)
}

func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
}

// section writes a heading. Plain output gets a comment line so the code
// below stays pasteable.
func section(w io.Writer, tty bool, title string) {
	if tty {
		fmt.Fprintln(w, sectionStyle().Render(title))
		return
	}
	fmt.Fprintf(w, "// ---- %s ----\n", title)
}

// note writes a secondary line to stderr.
func note(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if styled(os.Stderr) {
		msg = dimStyle().Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}
