package domain

import "github.com/google/uuid"

// DestinationItem represents one card in the carousel
type DestinationItem struct {
	ID        uuid.UUID
	ImageRef  string
	Title     string
	BadgeText string
}

// NewDestinationItem creates an item with a fresh identifier
func NewDestinationItem(imageRef, title, badgeText string) DestinationItem {
	return DestinationItem{
		ID:        uuid.New(),
		ImageRef:  imageRef,
		Title:     title,
		BadgeText: badgeText,
	}
}

// CarouselConfig holds the geometry and paging settings of a carousel.
// Values are read-only once a carousel is built.
type CarouselConfig struct {
	ItemWidth           float64
	ItemHeight          float64
	OverlapFraction     float64 // fraction of ItemWidth by which neighbours overlap
	DragCommitThreshold float64 // drag distance needed to change page
}

// DefaultCarouselConfig returns the stock carousel geometry
func DefaultCarouselConfig() CarouselConfig {
	return CarouselConfig{
		ItemWidth:           250,
		ItemHeight:          300,
		OverlapFraction:     0.2,
		DragCommitThreshold: 200,
	}
}

// SpringConfig describes the animation used when the current index changes
type SpringConfig struct {
	Stiffness       float64
	Damping         float64
	InitialVelocity float64
}

// DefaultSpringConfig returns the stock spring parameters
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		Stiffness:       300,
		Damping:         30,
		InitialVelocity: 10,
	}
}
