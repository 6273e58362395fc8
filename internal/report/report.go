// Package report finds the newest markdown research report in a directory
// and renders it for the terminal.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumen/internal/ui/theme"
)

// ErrNoReports is returned when the directory holds no markdown files.
var ErrNoReports = errors.New("no reports found")

// Report is a markdown file read from disk.
type Report struct {
	Name     string
	Path     string
	Markdown string
}

// Latest returns the newest report in dir. Report names start with a
// date, so the newest is the last name in lexical order. A missing
// directory is treated as empty.
func Latest(dir string) (*Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read reports dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoReports, dir)
	}
	slices.Sort(names)
	name := names[len(names)-1]

	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return &Report{Name: name, Path: path, Markdown: string(raw)}, nil
}

// Render styles headings, bold lines and bullets line by line. Nothing
// else of markdown is interpreted.
func Render(md string) string {
	var (
		h1Style     = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(theme.Primary)
		h2Style     = lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
		h3Style     = lipgloss.NewStyle().Bold(true).Foreground(theme.Success)
		strongStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
		bulletStyle = lipgloss.NewStyle().Foreground(theme.Text)
		plainStyle  = lipgloss.NewStyle().Foreground(theme.TextDim)
	)
	lines := strings.Split(strings.ReplaceAll(md, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "# "):
			out = append(out, h1Style.Render(strings.TrimPrefix(line, "# ")))
		case strings.HasPrefix(line, "## "):
			out = append(out, "", h2Style.Render(strings.TrimPrefix(line, "## ")))
		case strings.HasPrefix(line, "### "):
			out = append(out, h3Style.Render(strings.TrimPrefix(line, "### ")))
		case strings.HasPrefix(line, "**"):
			out = append(out, strongStyle.Render(line))
		case strings.HasPrefix(line, "* "), strings.HasPrefix(line, "- "):
			out = append(out, bulletStyle.Render("  • "+line[2:]))
		case strings.TrimSpace(line) == "":
			out = append(out, "")
		default:
			out = append(out, plainStyle.Render(line))
		}
	}
	return strings.Join(out, "\n")
}
