package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cardcarousel/internal/domain"
	"cardcarousel/internal/ui/input"
)

// catalogPagerMsg contains the result of a catalog pager command
type catalogPagerMsg struct {
	err error
}

// CatalogRenderer renders the destination catalog and key reference shown
// in the pager
type CatalogRenderer struct {
	badgeSuffix string
}

// NewCatalogRenderer creates a new catalog renderer
func NewCatalogRenderer(badgeSuffix string) *CatalogRenderer {
	return &CatalogRenderer{badgeSuffix: badgeSuffix}
}

// Render generates the catalog sheet with colors for the pager
func (r *CatalogRenderer) Render(items []domain.DestinationItem, current int, keys input.KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	var sheet strings.Builder

	sheet.WriteString(titleStyle.Render("Destinations"))
	sheet.WriteString("\n")

	if len(items) == 0 {
		sheet.WriteString(dimStyle.Render("  No destinations loaded"))
		sheet.WriteString("\n")
	}
	for i, item := range items {
		marker := "  "
		if i == current {
			marker = keyStyle.Render("▸ ")
		}
		sheet.WriteString(fmt.Sprintf("%s%2d. %s", marker, i+1, descStyle.Render(item.Title)))
		if item.BadgeText != "" {
			badge := item.BadgeText
			if r.badgeSuffix != "" {
				badge += " " + r.badgeSuffix
			}
			sheet.WriteString("  " + keyStyle.Render(badge))
		}
		sheet.WriteString("\n")
		if item.ImageRef != "" {
			sheet.WriteString("      " + dimStyle.Render(item.ImageRef))
			sheet.WriteString("\n")
		}
	}

	sheet.WriteString(sectionStyle.Render("Keys"))
	sheet.WriteString("\n")
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			sheet.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(fmt.Sprintf("%-10s", h.Key)), descStyle.Render(h.Desc)))
		}
	}
	sheet.WriteString(fmt.Sprintf("  %s %s", keyStyle.Render(fmt.Sprintf("%-10s", "drag")), descStyle.Render("Swipe between destinations")))

	return sheet.String()
}
