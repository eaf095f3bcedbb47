package text

import "github.com/charmbracelet/lipgloss"

type styles struct {
	complete lipgloss.Style
	warning  lipgloss.Style
	missing  lipgloss.Style
}

// newStyles binds styles to the output writer, so a non-terminal writer gets
// plain text.
func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		complete: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		warning:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		missing:  r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}
