// Package navigation holds the carousel's paging state machine.
//
// The machine has two phases, resting and dragging. The current index
// only changes through a commit (a released drag past the threshold, or
// Advance/Retreat while resting). The live drag offset only changes during
// a drag and always returns to zero when the drag ends.
package navigation

import "fmt"

// Phase is the gesture phase of the state machine
type Phase int

const (
	Resting Phase = iota
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Resting:
		return "resting"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Direction is the outcome of a released drag
type Direction int

const (
	None Direction = iota
	Backward
	Forward
)

func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return "none"
	}
}

// Snapshot is a read-only copy of the state
type Snapshot struct {
	CurrentIndex   int
	LiveDragOffset float64
	Phase          Phase
	ItemCount      int
}

// Dragging reports whether a gesture is in progress
func (s Snapshot) Dragging() bool {
	return s.Phase == Dragging
}

// State is the navigation state machine for a list of itemCount items
type State struct {
	currentIndex   int
	liveDragOffset float64
	phase          Phase
	itemCount      int
	threshold      float64
}

// New creates a resting state at index 0. threshold is the drag distance
// required to commit a page change.
func New(itemCount int, threshold float64) *State {
	if itemCount < 0 {
		itemCount = 0
	}
	return &State{
		itemCount: itemCount,
		threshold: threshold,
	}
}

// CurrentIndex returns the focused item's index
func (s *State) CurrentIndex() int {
	return s.currentIndex
}

// LiveDragOffset returns the in-progress drag distance, 0 when resting
func (s *State) LiveDragOffset() float64 {
	return s.liveDragOffset
}

// Phase returns the gesture phase
func (s *State) Phase() Phase {
	return s.phase
}

// ItemCount returns the fixed list length
func (s *State) ItemCount() int {
	return s.itemCount
}

// Snapshot returns a copy of the state
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		CurrentIndex:   s.currentIndex,
		LiveDragOffset: s.liveDragOffset,
		Phase:          s.phase,
		ItemCount:      s.itemCount,
	}
}

// BeginDrag moves resting to dragging. Calling it mid-drag restarts the
// gesture from a zero offset.
func (s *State) BeginDrag() {
	s.phase = Dragging
	s.liveDragOffset = 0
}

// UpdateDrag records the latest live offset. Ignored unless dragging.
func (s *State) UpdateDrag(liveOffset float64) {
	if s.phase != Dragging {
		return
	}
	s.liveDragOffset = liveOffset
}

// EndDrag releases the gesture, commits at most one page change and
// returns to resting with a zero offset. A positive offset past the
// threshold (raw or predicted) goes back one item; a negative one goes
// forward. It reports the attempted direction and whether the index moved.
func (s *State) EndDrag(finalOffset, predictedOffset float64) (Direction, bool) {
	wasDragging := s.phase == Dragging
	s.phase = Resting
	s.liveDragOffset = 0

	if !wasDragging {
		return None, false
	}

	dir := s.Decide(finalOffset, predictedOffset)
	switch dir {
	case Backward:
		return dir, s.step(-1)
	case Forward:
		return dir, s.step(1)
	default:
		return None, false
	}
}

// CancelDrag abandons a gesture; it behaves like EndDrag(0, 0)
func (s *State) CancelDrag() {
	s.EndDrag(0, 0)
}

// Decide applies the commit rule without mutating the state
func (s *State) Decide(finalOffset, predictedOffset float64) Direction {
	t := s.threshold
	switch {
	case finalOffset > t || predictedOffset > t:
		return Backward
	case finalOffset < -t || predictedOffset < -t:
		return Forward
	default:
		return None
	}
}

// Advance moves to the next item. No-op at the last item or mid-drag.
func (s *State) Advance() bool {
	if s.phase != Resting {
		return false
	}
	return s.step(1)
}

// Retreat moves to the previous item. No-op at index 0 or mid-drag.
func (s *State) Retreat() bool {
	if s.phase != Resting {
		return false
	}
	return s.step(-1)
}

func (s *State) step(delta int) bool {
	next := s.currentIndex + delta
	if next < 0 || next > s.itemCount-1 {
		return false
	}
	s.currentIndex = next
	return true
}
