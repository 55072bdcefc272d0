package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cardcarousel/internal/ui/input/types"
)

// Handler turns keyboard and mouse messages into actions
type Handler struct {
	keys KeyMap
	// pressed is set between a left press and its release
	pressed bool
}

func New() *Handler {
	return &Handler{keys: DefaultKeyMap()}
}

// Keys returns the active bindings, for help rendering
func (h *Handler) Keys() KeyMap {
	return h.keys
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	switch {
	case key.Matches(msg, h.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}

	case key.Matches(msg, h.keys.Cancel):
		if ctx.Dragging() {
			h.pressed = false
			return []types.Action{types.DragCancelAction{}}
		}
		return nil

	case key.Matches(msg, h.keys.Previous):
		return []types.Action{types.NavigateAction{Direction: types.DirectionPrevious}}

	case key.Matches(msg, h.keys.Next):
		return []types.Action{types.NavigateAction{Direction: types.DirectionNext}}

	case key.Matches(msg, h.keys.Catalog):
		return []types.Action{types.OpenCatalogAction{}}

	case key.Matches(msg, h.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}

	case key.Matches(msg, h.keys.Quit):
		return []types.Action{types.QuitAction{}}
	}
	return nil
}

// HandleMouse maps a left-button press/motion/release sequence to a drag.
// A press on an indicator dot is a click, not a drag.
func (h *Handler) HandleMouse(msg tea.MouseMsg, ctx types.Context) []types.Action {
	pos := float64(msg.X) * ctx.PointsPerCell()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if i, ok := ctx.IndicatorAt(msg.X, msg.Y); ok {
			return []types.Action{types.IndicatorClickAction{Index: i}}
		}
		h.pressed = true
		return []types.Action{types.DragBeginAction{Position: pos}}

	case tea.MouseActionMotion:
		if !h.pressed || !ctx.Dragging() {
			return nil
		}
		return []types.Action{types.DragMoveAction{Position: pos}}

	case tea.MouseActionRelease:
		if !h.pressed {
			return nil
		}
		h.pressed = false
		if !ctx.Dragging() {
			return nil
		}
		return []types.Action{types.DragEndAction{Position: pos}}
	}
	return nil
}

// Reset forgets a pressed button, e.g. after focus loss
func (h *Handler) Reset() {
	h.pressed = false
}
