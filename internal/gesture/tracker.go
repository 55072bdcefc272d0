// Package gesture turns a stream of pointer positions along one axis into a
// drag translation and a velocity-projected end point.
package gesture

import "time"

const (
	// VelocityWindow is how far back samples count towards the velocity
	VelocityWindow = 100 * time.Millisecond

	// ProjectionTime is how long the release velocity is extrapolated for
	// the predicted end translation
	ProjectionTime = 250 * time.Millisecond

	maxSamples = 32
)

type sample struct {
	at          time.Time
	translation float64
}

// Tracker follows one drag gesture. The zero value is not usable; create
// one with NewTracker.
type Tracker struct {
	now     func() time.Time
	active  bool
	origin  float64
	samples []sample
}

// NewTracker creates a tracker. A nil clock uses time.Now.
func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now}
}

// Active reports whether a gesture is being tracked
func (t *Tracker) Active() bool {
	return t.active
}

// Begin starts a gesture at position
func (t *Tracker) Begin(position float64) {
	t.active = true
	t.origin = position
	t.samples = t.samples[:0]
	t.samples = append(t.samples, sample{at: t.now(), translation: 0})
}

// Move records position and returns the translation from the start
func (t *Tracker) Move(position float64) float64 {
	if !t.active {
		return 0
	}
	tr := position - t.origin
	t.samples = append(t.samples, sample{at: t.now(), translation: tr})
	if len(t.samples) > maxSamples {
		t.samples = append(t.samples[:0], t.samples[len(t.samples)-maxSamples:]...)
	}
	return tr
}

// Translation returns the latest translation
func (t *Tracker) Translation() float64 {
	if !t.active || len(t.samples) == 0 {
		return 0
	}
	return t.samples[len(t.samples)-1].translation
}

// Velocity returns distance per second over the recent samples
func (t *Tracker) Velocity() float64 {
	if len(t.samples) < 2 {
		return 0
	}
	last := t.samples[len(t.samples)-1]
	first := last
	for i := len(t.samples) - 2; i >= 0; i-- {
		if last.at.Sub(t.samples[i].at) > VelocityWindow {
			break
		}
		first = t.samples[i]
	}
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.translation - first.translation) / dt
}

// Predicted extrapolates where the drag would end if released now
func (t *Tracker) Predicted() float64 {
	return t.Translation() + t.Velocity()*ProjectionTime.Seconds()
}

// End finishes the gesture at position and returns the final and predicted
// translations
func (t *Tracker) End(position float64) (final, predicted float64) {
	if !t.active {
		return 0, 0
	}
	t.Move(position)
	final = t.Translation()
	predicted = t.Predicted()
	t.Reset()
	return final, predicted
}

// Reset drops the gesture without reporting it
func (t *Tracker) Reset() {
	t.active = false
	t.origin = 0
	t.samples = t.samples[:0]
}
