package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the renderer.
type Styles struct {
	Muted  lipgloss.Style
	Header lipgloss.Style
	Pass   lipgloss.Style
	Fail   lipgloss.Style
}

// NewStyles builds styles for r. A renderer writing to a non-terminal
// produces plain text.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
		Header: r.NewStyle().Bold(true),
		Pass:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
		Fail:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("9")),
	}
}
