package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme defines the colour palette for terminal output.
type Theme struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() Theme {
	return Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains pre-configured lipgloss styles for the run summary.
type Styles struct {
	Title      lipgloss.Style
	Label      lipgloss.Style
	Muted      lipgloss.Style
	Suitable   lipgloss.Style
	Unsuitable lipgloss.Style
	Fallback   lipgloss.Style
}

// NewStyles builds styles from a theme. Plain styles are used when
// colour is false, so piped output stays free of escape codes.
func NewStyles(theme Theme, colour bool) Styles {
	if !colour {
		plain := lipgloss.NewStyle()
		return Styles{
			Title: plain, Label: plain, Muted: plain,
			Suitable: plain, Unsuitable: plain, Fallback: plain,
		}
	}
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Label:      lipgloss.NewStyle().Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(theme.Muted),
		Suitable:   lipgloss.NewStyle().Foreground(theme.Success),
		Unsuitable: lipgloss.NewStyle().Foreground(theme.Error),
		Fallback:   lipgloss.NewStyle().Foreground(theme.Warning),
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
