package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const defaultTermWidth = 80

// palette is the colour scheme shared by all command output.
type palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

func defaultPalette() palette {
	return palette{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Error:     lipgloss.Color("#F38BA8"), // Red
	}
}

// outputStyles holds the styles for one output stream. Colours are dropped
// automatically when the stream is not a terminal.
type outputStyles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Score   lipgloss.Style
}

func newOutputStyles(w io.Writer) *outputStyles {
	r := lipgloss.NewRenderer(w)
	p := defaultPalette()

	return &outputStyles{
		Title:   r.NewStyle().Bold(true).Foreground(p.Primary),
		Heading: r.NewStyle().Bold(true).Foreground(p.Secondary),
		Label:   r.NewStyle().Foreground(p.Muted).Width(12),
		Muted:   r.NewStyle().Foreground(p.Muted),
		Success: r.NewStyle().Foreground(p.Success),
		Warning: r.NewStyle().Foreground(p.Warning),
		Score:   r.NewStyle().Foreground(p.Success).Bold(true),
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the column count of w, or defaultTermWidth when w is
// not a terminal.
func termWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}
