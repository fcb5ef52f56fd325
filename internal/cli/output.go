package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	isatty "github.com/mattn/go-isatty"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// styles renders against the command output, so colors are dropped when
// stdout is redirected.
type styles struct {
	r      *lipgloss.Renderer
	label  lipgloss.Style
	value  lipgloss.Style
	header lipgloss.Style
	muted  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		r:      r,
		label:  r.NewStyle().Foreground(lipgloss.Color("15")),
		value:  r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		header: r.NewStyle().Bold(true).Padding(0, 1),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (s styles) table(headers []string, rows [][]string) string {
	cell := s.r.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return cell
		}).
		Render()
}

func (a *App) styles() styles {
	return newStyles(a.Stdout)
}
