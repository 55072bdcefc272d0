package views

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"cardcarousel/internal/carousel"
	"cardcarousel/internal/domain"
	"cardcarousel/internal/layout"
)

const (
	logoText   = "✈ atlys"
	headerRows = 2 // logo and a blank line
	minCardW   = 8
	minCardH   = 3
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Frame         carousel.Frame // displayed frame, possibly mid-animation
	Items         []domain.DestinationItem
	Config        domain.CarouselConfig
	PointsPerCell float64
	PointsPerRow  float64
	BadgeSuffix   string
	StatusMessage string
	HelpView      string
}

// Geometry is where each part of the screen lands. Mouse hit testing uses
// the same numbers the renderer draws with.
type Geometry struct {
	Width          int
	CarouselTop    int
	CarouselRows   int
	CardCols       int
	IndicatorRow   int
	IndicatorStart int
	DotCount       int
}

// Measure computes the screen geometry for a terminal width and item count
func Measure(width, itemCount int, cfg domain.CarouselConfig, pointsPerCell, pointsPerRow float64) Geometry {
	tallest := math.Max(cfg.ItemHeight, layout.ReducedHeight)
	g := Geometry{
		Width:        width,
		CarouselTop:  headerRows,
		CarouselRows: max(minCardH, toCells(tallest, pointsPerRow)),
		CardCols:     max(minCardW, toCells(cfg.ItemWidth, pointsPerCell)),
		DotCount:     itemCount,
	}
	g.IndicatorRow = g.CarouselTop + g.CarouselRows + 1
	dotsWidth := 2*itemCount - 1
	g.IndicatorStart = max(0, (width-dotsWidth)/2)
	return g
}

// DotAt returns the indicator dot under a cell
func (g Geometry) DotAt(x, y int) (int, bool) {
	if y != g.IndicatorRow || g.DotCount == 0 {
		return 0, false
	}
	rel := x - g.IndicatorStart
	if rel < 0 || rel%2 != 0 {
		return 0, false
	}
	i := rel / 2
	if i >= g.DotCount {
		return 0, false
	}
	return i, true
}

func toCells(points, perCell float64) int {
	if perCell <= 0 {
		return 0
	}
	return int(math.Round(points / perCell))
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Width <= 0 {
		return "Loading..."
	}

	g := Measure(state.Width, len(state.Items), state.Config, state.PointsPerCell, state.PointsPerRow)
	content := &strings.Builder{}

	logo := r.styles.Logo.Render(logoText)
	content.WriteString(lipgloss.PlaceHorizontal(state.Width, lipgloss.Center, logo))
	content.WriteString("\n\n")

	if len(state.Items) == 0 {
		empty := r.styles.Dim.Render("No destinations to show")
		content.WriteString(lipgloss.Place(state.Width, g.CarouselRows, lipgloss.Center, lipgloss.Center, empty))
	} else {
		content.WriteString(r.RenderCards(state, g).Render())
	}
	content.WriteString("\n\n")

	content.WriteString(r.renderIndicator(state.Frame, g))
	content.WriteString("\n")
	content.WriteString(r.renderCaption(state))

	if state.HelpView != "" {
		// push help to the bottom of the screen
		used := strings.Count(content.String(), "\n") + 1
		helpLines := strings.Count(state.HelpView, "\n") + 1
		if pad := state.Height - used - helpLines; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		content.WriteString("\n")
		content.WriteString(state.HelpView)
	}

	return content.String()
}

// RenderCards draws the visible cards onto a canvas, centered card last
func (r *Renderer) RenderCards(state ViewState, g Geometry) *Canvas {
	cv := NewCanvas(state.Width, g.CarouselRows)
	ids := cardStyles{
		fill:   cv.AddStyle(r.styles.CardFill),
		border: cv.AddStyle(r.styles.CardBorder),
		center: cv.AddStyle(r.styles.CenterBorder),
		image:  cv.AddStyle(r.styles.CardImage),
		title:  cv.AddStyle(r.styles.CardTitle),
		badge:  cv.AddStyle(r.styles.Badge),
	}

	order := make([]int, 0, len(state.Frame.Transforms))
	for i, t := range state.Frame.Transforms {
		if t.Visible() && i < len(state.Items) {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return state.Frame.Transforms[order[a]].StackOrder < state.Frame.Transforms[order[b]].StackOrder
	})

	centerCol := state.Width / 2
	for _, i := range order {
		t := state.Frame.Transforms[i]
		rows := max(minCardH, toCells(t.Height, state.PointsPerRow))
		left := centerCol + int(math.Round(t.OffsetX/state.PointsPerCell)) - g.CardCols/2
		top := (g.CarouselRows - rows) / 2
		centered := t.StackOrder == layout.StackCentered
		r.drawCard(cv, ids, state.Items[i], state.BadgeSuffix, left, top, g.CardCols, rows, centered)
	}
	return cv
}

type cardStyles struct {
	fill, border, center, image, title, badge int
}

func (r *Renderer) drawCard(cv *Canvas, ids cardStyles, item domain.DestinationItem, suffix string, x, y, w, h int, centered bool) {
	border := ids.border
	if centered {
		border = ids.center
	}

	cv.Fill(x, y, w, h, ' ', ids.fill)
	for col := x + 1; col < x+w-1; col++ {
		cv.Set(col, y, '─', border)
		cv.Set(col, y+h-1, '─', border)
	}
	for row := y + 1; row < y+h-1; row++ {
		cv.Set(x, row, '│', border)
		cv.Set(x+w-1, row, '│', border)
	}
	cv.Set(x, y, '╭', border)
	cv.Set(x+w-1, y, '╮', border)
	cv.Set(x, y+h-1, '╰', border)
	cv.Set(x+w-1, y+h-1, '╯', border)

	inner := w - 4
	if inner <= 0 || h < 3 {
		return
	}

	if h >= 5 {
		cv.Text(x+2, y+1, ansi.Truncate(imageLabel(item.ImageRef), inner, "…"), ids.image, inner)
	}

	// labels sit bottom-left, badge on the last inner row
	badgeRow := y + h - 2
	titleRow := badgeRow - 1
	if titleRow > y {
		cv.Text(x+2, titleRow, ansi.Truncate(item.Title, inner, "…"), ids.title, inner)
	} else {
		badgeRow = y + 1
	}
	if titleRow > y && item.BadgeText != "" {
		cv.Text(x+2, badgeRow, ansi.Truncate(badgeLabel(item.BadgeText, suffix), inner, "…"), ids.badge, inner)
	}
}

// imageLabel stands in for the picture: the host the image is served from
func imageLabel(ref string) string {
	if ref == "" {
		return "▣ no image"
	}
	if u, err := url.Parse(ref); err == nil && u.Host != "" {
		return "▣ " + u.Host
	}
	return "▣ " + ref
}

func badgeLabel(badge, suffix string) string {
	if suffix == "" {
		return " " + badge + " "
	}
	return fmt.Sprintf(" %s %s ", badge, suffix)
}

func (r *Renderer) renderIndicator(f carousel.Frame, g Geometry) string {
	if g.DotCount == 0 {
		return ""
	}
	dots := make([]string, g.DotCount)
	for i := range dots {
		if i == f.CurrentIndex {
			dots[i] = r.styles.DotCurrent.Render("●")
		} else {
			dots[i] = r.styles.DotOther.Render("●")
		}
	}
	return strings.Repeat(" ", g.IndicatorStart) + strings.Join(dots, " ")
}

func (r *Renderer) renderCaption(state ViewState) string {
	text := state.StatusMessage
	if text == "" && len(state.Items) > 0 {
		i := state.Frame.CurrentIndex
		if i >= 0 && i < len(state.Items) {
			text = fmt.Sprintf("%d/%d  %s", i+1, len(state.Items), state.Items[i].Title)
		}
	}
	if text == "" {
		return ""
	}
	return lipgloss.PlaceHorizontal(state.Width, lipgloss.Center, r.styles.Status.Render(text))
}
