package types

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	// Dragging reports whether a drag gesture is in progress
	Dragging() bool
	// IndicatorAt returns the indicator dot under the cell, if any
	IndicatorAt(x, y int) (int, bool)
	// PointsPerCell converts terminal columns to layout units
	PointsPerCell() float64
}
