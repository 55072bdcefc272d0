// Package animation interpolates displayed card positions towards the
// carousel's latest frame with a damped spring.
package animation

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/google/uuid"

	"cardcarousel/internal/carousel"
	"cardcarousel/internal/domain"
	"cardcarousel/internal/layout"
)

// FPS is the animation tick rate
const FPS = 60

// settle thresholds, in layout units
const (
	restDistance = 0.5
	restVelocity = 0.5
)

type channel struct {
	pos, vel, target float64
}

func (c *channel) step(s harmonica.Spring) {
	c.pos, c.vel = s.Update(c.pos, c.vel, c.target)
	if math.Abs(c.pos-c.target) < restDistance && math.Abs(c.vel) < restVelocity {
		c.pos, c.vel = c.target, 0
	}
}

func (c *channel) resting() bool {
	return c.pos == c.target && c.vel == 0
}

type motion struct {
	offset channel
	height channel
	// carry is how far the card sat from rest when a drag grabbed it
	carryOffset, carryHeight float64
}

// Animator tracks the displayed offset and height of every card
type Animator struct {
	spring          harmonica.Spring
	initialVelocity float64
	cards           map[uuid.UUID]*motion
}

// NewAnimator converts a mass-1 stiffness/damping spring into harmonica's
// angular frequency and damping ratio.
func NewAnimator(cfg domain.SpringConfig) *Animator {
	omega := math.Sqrt(cfg.Stiffness)
	ratio := 1.0
	if omega > 0 {
		ratio = cfg.Damping / (2 * omega)
	}
	return &Animator{
		spring:          harmonica.NewSpring(harmonica.FPS(FPS), omega, ratio),
		initialVelocity: cfg.InitialVelocity,
		cards:           make(map[uuid.UUID]*motion),
	}
}

// Snap jumps every card to the frame's values, shifted by whatever Grab
// carried over
func (a *Animator) Snap(f carousel.Frame) {
	seen := make(map[uuid.UUID]bool, len(f.Transforms))
	for _, t := range f.Transforms {
		seen[t.ID] = true
		var co, ch float64
		if m, ok := a.cards[t.ID]; ok {
			co, ch = m.carryOffset, m.carryHeight
		}
		off, h := t.OffsetX+co, t.Height+ch
		a.cards[t.ID] = &motion{
			offset:      channel{pos: off, target: off},
			height:      channel{pos: h, target: h},
			carryOffset: co,
			carryHeight: ch,
		}
	}
	a.forget(seen)
}

// Grab stops every card where it is displayed. rest is the frame the cards
// were heading to; until the next Start, Snap keeps each card's distance
// from it so a drag begun mid-animation moves cards from where they are.
func (a *Animator) Grab(rest carousel.Frame) {
	for _, t := range rest.Transforms {
		m, ok := a.cards[t.ID]
		if !ok {
			continue
		}
		m.carryOffset = m.offset.pos - t.OffsetX
		m.carryHeight = m.height.pos - t.Height
		m.offset.target, m.offset.vel = m.offset.pos, 0
		m.height.target, m.height.vel = m.height.pos, 0
	}
}

// Start animates from tr.From to tr.To. Cards already in flight keep their
// displayed position and velocity and are retargeted.
func (a *Animator) Start(tr carousel.Transition) {
	from := make(map[uuid.UUID]float64, len(tr.From.Transforms))
	fromHeight := make(map[uuid.UUID]float64, len(tr.From.Transforms))
	for _, t := range tr.From.Transforms {
		from[t.ID] = t.OffsetX
		fromHeight[t.ID] = t.Height
	}

	seen := make(map[uuid.UUID]bool, len(tr.To.Transforms))
	for _, t := range tr.To.Transforms {
		seen[t.ID] = true
		m, ok := a.cards[t.ID]
		if !ok {
			m = &motion{
				offset: channel{pos: from[t.ID]},
				height: channel{pos: fromHeight[t.ID]},
			}
			a.cards[t.ID] = m
		}
		m.carryOffset, m.carryHeight = 0, 0
		if m.offset.resting() {
			// relative velocity: a fraction of the distance per second
			m.offset.vel = a.initialVelocity * (t.OffsetX - m.offset.pos)
		}
		m.offset.target = t.OffsetX
		m.height.target = t.Height
	}
	a.forget(seen)
}

// Step advances every card by one tick and reports whether any card is
// still moving
func (a *Animator) Step() bool {
	moving := false
	for _, m := range a.cards {
		m.offset.step(a.spring)
		m.height.step(a.spring)
		if !m.offset.resting() || !m.height.resting() {
			moving = true
		}
	}
	return moving
}

// Animating reports whether any card is away from its target
func (a *Animator) Animating() bool {
	for _, m := range a.cards {
		if !m.offset.resting() || !m.height.resting() {
			return true
		}
	}
	return false
}

// Apply returns f with the displayed offsets and heights substituted
func (a *Animator) Apply(f carousel.Frame) carousel.Frame {
	out := f
	out.Transforms = make([]layout.Transform, len(f.Transforms))
	for i, t := range f.Transforms {
		if m, ok := a.cards[t.ID]; ok {
			t.OffsetX = m.offset.pos
			t.Height = m.height.pos
		}
		out.Transforms[i] = t
	}
	return out
}

func (a *Animator) forget(keep map[uuid.UUID]bool) {
	for id := range a.cards {
		if !keep[id] {
			delete(a.cards, id)
		}
	}
}
