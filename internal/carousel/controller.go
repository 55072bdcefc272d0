// Package carousel wires drag and navigation input to the paging state and
// derives the per-card transforms the presentation layer draws.
//
// A Controller is not safe for concurrent use; it is meant to be driven
// from a single event loop.
package carousel

import (
	"cardcarousel/internal/domain"
	"cardcarousel/internal/eventbus"
	"cardcarousel/internal/layout"
	"cardcarousel/internal/navigation"
)

// Frame is everything the presentation layer needs for one render
type Frame struct {
	Transforms   []layout.Transform
	CurrentIndex int
	ItemCount    int
	Dragging     bool
	// Animate is set only on the To frame of a Transition and on the frame
	// listeners receive right after a commit. Polled frames never carry it.
	Animate bool
}

// Transition is the before/after pair of an index-changing commit
type Transition struct {
	From Frame
	To   Frame
}

// Listener receives a frame after every state mutation
type Listener func(Frame)

// Controller owns the navigation state for a fixed list of items
type Controller struct {
	items     []domain.DestinationItem
	calc      layout.Calculator
	nav       *navigation.State
	bus       eventbus.EventBus
	listeners map[int]Listener
	nextID    int

	transitions []Transition
}

// New builds a controller. items and cfg are fixed for the controller's
// lifetime. bus may be nil.
func New(items []domain.DestinationItem, cfg domain.CarouselConfig, bus eventbus.EventBus) *Controller {
	owned := make([]domain.DestinationItem, len(items))
	copy(owned, items)

	return &Controller{
		items:     owned,
		calc:      layout.NewCalculator(cfg),
		nav:       navigation.New(len(owned), cfg.DragCommitThreshold),
		bus:       bus,
		listeners: make(map[int]Listener),
	}
}

// Items returns the carousel's items
func (c *Controller) Items() []domain.DestinationItem {
	out := make([]domain.DestinationItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount returns the number of items
func (c *Controller) ItemCount() int {
	return len(c.items)
}

// Calculator returns the layout calculator in use
func (c *Controller) Calculator() layout.Calculator {
	return c.calc
}

// State returns a snapshot of the navigation state
func (c *Controller) State() navigation.Snapshot {
	return c.nav.Snapshot()
}

// CurrentIndex returns the focused item's index
func (c *Controller) CurrentIndex() int {
	return c.nav.CurrentIndex()
}

// CurrentItem returns the focused item, or false for an empty carousel
func (c *Controller) CurrentItem() (domain.DestinationItem, bool) {
	return c.ItemAt(c.nav.CurrentIndex())
}

// ItemAt returns the item at index, or false when out of range
func (c *Controller) ItemAt(index int) (domain.DestinationItem, bool) {
	if index < 0 || index >= len(c.items) {
		return domain.DestinationItem{}, false
	}
	return c.items[index], true
}

// Subscribe registers a listener called synchronously after each mutation.
// It returns a function that removes the listener.
func (c *Controller) Subscribe(l Listener) func() {
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	return func() {
		delete(c.listeners, id)
	}
}

// Frame computes the transforms for the current state
func (c *Controller) Frame() Frame {
	snap := c.nav.Snapshot()
	return Frame{
		Transforms:   c.calc.Transforms(c.items, snap.CurrentIndex, snap.LiveDragOffset),
		CurrentIndex: snap.CurrentIndex,
		ItemCount:    snap.ItemCount,
		Dragging:     snap.Dragging(),
	}
}

// TakeTransitions returns and clears the transitions recorded since the
// last call.
func (c *Controller) TakeTransitions() []Transition {
	out := c.transitions
	c.transitions = nil
	return out
}

// BeginDrag starts a drag gesture
func (c *Controller) BeginDrag() {
	c.nav.BeginDrag()
	c.publish(domain.DragStartedEvent{Index: c.nav.CurrentIndex()})
	c.notify()
}

// UpdateDrag sets the live drag translation. Repeating the same value
// yields the same frame.
func (c *Controller) UpdateDrag(translation float64) {
	if c.nav.Phase() != navigation.Dragging {
		return
	}
	c.nav.UpdateDrag(translation)
	c.notify()
}

// EndDrag releases the gesture and commits a page change when either the
// raw or the predicted translation passes the threshold.
func (c *Controller) EndDrag(translation, predicted float64) bool {
	if c.nav.Phase() != navigation.Dragging {
		return false
	}
	before := c.Frame()
	old := c.nav.CurrentIndex()
	_, changed := c.nav.EndDrag(translation, predicted)

	c.publish(domain.DragEndedEvent{
		Translation: translation,
		Predicted:   predicted,
		Committed:   changed,
	})
	c.settle(before, old, changed, domain.CauseDrag)
	return changed
}

// CancelDrag abandons a gesture as if it ended with no movement
func (c *Controller) CancelDrag() {
	if c.nav.Phase() != navigation.Dragging {
		return
	}
	c.nav.CancelDrag()
	c.publish(domain.DragCancelledEvent{Index: c.nav.CurrentIndex()})
	c.notify()
}

// Advance moves to the next item. No-op at the end or during a drag.
func (c *Controller) Advance(cause domain.NavigationCause) bool {
	before := c.Frame()
	old := c.nav.CurrentIndex()
	changed := c.nav.Advance()
	if changed {
		c.settle(before, old, true, cause)
	}
	return changed
}

// Retreat moves to the previous item. No-op at the start or during a drag.
func (c *Controller) Retreat(cause domain.NavigationCause) bool {
	before := c.Frame()
	old := c.nav.CurrentIndex()
	changed := c.nav.Retreat()
	if changed {
		c.settle(before, old, true, cause)
	}
	return changed
}

// settle finishes a potential commit: it records the transition, publishes
// the index change and notifies listeners.
func (c *Controller) settle(before Frame, old int, changed bool, cause domain.NavigationCause) {
	if !changed {
		c.notify()
		return
	}

	after := c.Frame()
	after.Animate = true
	c.transitions = append(c.transitions, Transition{From: before, To: after})

	item, _ := c.CurrentItem()
	c.publish(domain.IndexChangedEvent{
		OldIndex: old,
		NewIndex: c.nav.CurrentIndex(),
		Item:     item,
		Cause:    cause,
	})
	c.send(after)
}

func (c *Controller) notify() {
	if len(c.listeners) == 0 {
		return
	}
	c.send(c.Frame())
}

func (c *Controller) send(f Frame) {
	for _, l := range c.listeners {
		l(f)
	}
}

func (c *Controller) publish(e domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}
