package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Logo         lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	Help         lipgloss.Style
	DotCurrent   lipgloss.Style
	DotOther     lipgloss.Style
	CardFill     lipgloss.Style
	CardBorder   lipgloss.Style
	CenterBorder lipgloss.Style
	CardImage    lipgloss.Style
	CardTitle    lipgloss.Style
	Badge        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	cardBg := lipgloss.Color("236")
	return &Styles{
		Logo: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:          lipgloss.NewStyle().Faint(true),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:         lipgloss.NewStyle().Faint(true),
		DotCurrent:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // blue
		DotOther:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")), // gray
		CardFill:     lipgloss.NewStyle().Background(cardBg),
		CardBorder:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(cardBg),
		CenterBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Background(cardBg),
		CardImage:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(cardBg).Italic(true),
		CardTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(cardBg).Bold(true),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("#6600CC")),
	}
}
