package display

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	// Match highlights the matched bytes of a line
	Match = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)

	// Muted is used for scores
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// ShouldColor reports whether w is a terminal that should receive colour.
// NO_COLOR disables colour everywhere.
func ShouldColor(w io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
