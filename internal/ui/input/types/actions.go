package types

// Navigation directions
const (
	DirectionPrevious = "previous"
	DirectionNext     = "next"
)

// NavigateAction moves the carousel one item
type NavigateAction struct {
	Direction string // DirectionPrevious or DirectionNext
}

func (a NavigateAction) Type() string { return "navigate" }

// Drag actions carry positions in layout units along the drag axis

type DragBeginAction struct {
	Position float64
}

func (a DragBeginAction) Type() string { return "drag_begin" }

type DragMoveAction struct {
	Position float64
}

func (a DragMoveAction) Type() string { return "drag_move" }

type DragEndAction struct {
	Position float64
}

func (a DragEndAction) Type() string { return "drag_end" }

type DragCancelAction struct{}

func (a DragCancelAction) Type() string { return "drag_cancel" }

// IndicatorClickAction is a click on one of the position dots
type IndicatorClickAction struct {
	Index int
}

func (a IndicatorClickAction) Type() string { return "indicator_click" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// OpenCatalogAction shows every destination in a pager
type OpenCatalogAction struct{}

func (a OpenCatalogAction) Type() string { return "open_catalog" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
