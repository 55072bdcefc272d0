// Package layout maps a carousel position to the visual transform of each
// card. All functions are pure; the calculator only reads its config.
package layout

import (
	"math"

	"github.com/google/uuid"

	"cardcarousel/internal/domain"
)

const (
	// OverscrollLimit bounds drag travel past the first or last card.
	// It is a fixed distance and does not scale with ItemWidth.
	OverscrollLimit = 50.0

	// ReducedHeight is the height of every card that is not centered
	ReducedHeight = 200.0

	// VisibilityRadius is how many cards either side of the centered one
	// stay visible
	VisibilityRadius = 3
)

// Stack orders
const (
	StackBehind   = 0
	StackCentered = 1
)

// Transform is the visual state of one card for a render
type Transform struct {
	ID         uuid.UUID
	OffsetX    float64
	Height     float64
	Opacity    float64
	StackOrder int
}

// Visible reports whether the card should be drawn at all
func (t Transform) Visible() bool {
	return t.Opacity > 0
}

// Calculator computes card geometry for one carousel configuration
type Calculator struct {
	cfg domain.CarouselConfig
}

// NewCalculator creates a calculator bound to cfg
func NewCalculator(cfg domain.CarouselConfig) Calculator {
	return Calculator{cfg: cfg}
}

// Config returns the configuration the calculator was built with
func (c Calculator) Config() domain.CarouselConfig {
	return c.cfg
}

// Stride is the center-to-center distance between adjacent cards
func (c Calculator) Stride() float64 {
	return c.cfg.ItemWidth * (1 - c.cfg.OverlapFraction)
}

// Offset returns the horizontal offset of the card at index.
// The drag offset is clamped only when index is a boundary card being
// pulled past its end.
func (c Calculator) Offset(index, currentIndex int, dragOffset float64, isFirst, isLast bool) float64 {
	drag := ClampDrag(dragOffset, isFirst, isLast)
	return drag + float64(index-currentIndex)*c.Stride()
}

// ClampDrag applies the rubber-band limit at the list ends
func ClampDrag(dragOffset float64, isFirst, isLast bool) float64 {
	if isFirst && dragOffset < 0 {
		dragOffset = math.Max(dragOffset, -OverscrollLimit)
	}
	if isLast && dragOffset > 0 {
		dragOffset = math.Min(dragOffset, OverscrollLimit)
	}
	return dragOffset
}

// Height is binary: full height when centered, ReducedHeight otherwise
func (c Calculator) Height(index, currentIndex int) float64 {
	if index == currentIndex {
		return c.cfg.ItemHeight
	}
	return ReducedHeight
}

// Opacity hides cards more than VisibilityRadius away from the center
func (c Calculator) Opacity(index, currentIndex int) float64 {
	if abs(index-currentIndex) <= VisibilityRadius {
		return 1
	}
	return 0
}

// StackOrder puts the centered card above all others
func (c Calculator) StackOrder(index, currentIndex int) int {
	if index == currentIndex {
		return StackCentered
	}
	return StackBehind
}

// Transform composes the per-card values for item at index in a list of
// count items.
func (c Calculator) Transform(item domain.DestinationItem, index, count, currentIndex int, dragOffset float64) Transform {
	return Transform{
		ID:         item.ID,
		OffsetX:    c.Offset(index, currentIndex, dragOffset, index == 0, index == count-1),
		Height:     c.Height(index, currentIndex),
		Opacity:    c.Opacity(index, currentIndex),
		StackOrder: c.StackOrder(index, currentIndex),
	}
}

// Transforms computes the transform of every item, in list order
func (c Calculator) Transforms(items []domain.DestinationItem, currentIndex int, dragOffset float64) []Transform {
	out := make([]Transform, len(items))
	for i, item := range items {
		out[i] = c.Transform(item, i, len(items), currentIndex, dragOffset)
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
