package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"cardcarousel/internal/carousel"
	"cardcarousel/internal/config"
	"cardcarousel/internal/domain"
	"cardcarousel/internal/eventbus"
	"cardcarousel/internal/gesture"
	"cardcarousel/internal/ui/animation"
	"cardcarousel/internal/ui/input"
	inputtypes "cardcarousel/internal/ui/input/types"
	"cardcarousel/internal/ui/views"
)

const statusTimeout = 3 * time.Second

// Model represents the UI state
type Model struct {
	bus        eventbus.EventBus
	config     *config.Config
	controller *carousel.Controller
	logger     *log.Logger

	// UI-specific state
	width         int
	height        int
	help          help.Model
	statusMessage string
	ticking       bool // an animation tick is scheduled
	inPagerMode   bool // tracks if we're currently in pager mode

	// Handlers
	tracker      *gesture.Tracker    // drag translation and velocity
	animator     *animation.Animator // displayed card positions
	renderer     *views.Renderer     // view renderer
	catalog      *CatalogRenderer    // pager content
	inputHandler *input.Handler      // input handling
	pager        *Pager              // ov pager
	unsubscribe  func()              // controller listener removal

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model around a carousel controller. bus and
// logger may be nil.
func NewModel(bus eventbus.EventBus, cfg *config.Config, controller *carousel.Controller, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		bus:          bus,
		config:       cfg,
		controller:   controller,
		logger:       logger,
		help:         help.New(),
		tracker:      gesture.NewTracker(nil),
		animator:     animation.NewAnimator(cfg.SpringConfig()),
		renderer:     views.NewRenderer(),
		catalog:      NewCatalogRenderer(cfg.UI.BadgeSuffix),
		inputHandler: input.New(),
		pager:        NewPager(),
	}

	m.animator.Snap(controller.Frame())

	// live drag frames are shown as they are, without easing
	m.unsubscribe = controller.Subscribe(func(f carousel.Frame) {
		if f.Dragging {
			m.animator.Snap(f)
		}
	})

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// SetClock replaces the clock used to time drag gestures
func (m *Model) SetClock(now func() time.Time) {
	m.tracker = gesture.NewTracker(now)
}

// Close detaches the model from its controller
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		actions := m.inputHandler.HandleKey(msg, m.inputContext())
		return m, m.processActions(actions)

	case tea.MouseMsg:
		if !m.config.UI.Mouse {
			return m, nil
		}
		actions := m.inputHandler.HandleMouse(msg, m.inputContext())
		return m, m.processActions(actions)

	case tea.BlurMsg:
		// losing focus mid-drag means the release will never arrive
		if m.controller.State().Dragging() {
			return m, m.processActions([]inputtypes.Action{inputtypes.DragCancelAction{}})
		}
		return m, nil

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Frame:         m.animator.Apply(m.controller.Frame()),
		Items:         m.controller.Items(),
		Config:        m.controller.Calculator().Config(),
		PointsPerCell: m.config.UI.PointsPerCell,
		PointsPerRow:  m.config.UI.PointsPerRow,
		BadgeSuffix:   m.config.UI.BadgeSuffix,
		StatusMessage: m.statusMessage,
	}
	if m.config.UI.ShowHelp {
		state.HelpView = m.help.View(m.inputHandler.Keys())
	}
	return m.renderer.Render(state)
}

// geometry returns the screen layout the renderer uses for the current size
func (m *Model) geometry() views.Geometry {
	return views.Measure(m.width, m.controller.ItemCount(), m.controller.Calculator().Config(),
		m.config.UI.PointsPerCell, m.config.UI.PointsPerRow)
}

func (m *Model) processActions(actions []inputtypes.Action) tea.Cmd {
	cmds := []tea.Cmd{}
	for _, action := range actions {
		if cmd := m.processAction(action); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if cmd := m.startAnimation(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		if a.Direction == inputtypes.DirectionPrevious {
			m.controller.Retreat(domain.CauseKeyboard)
		} else {
			m.controller.Advance(domain.CauseKeyboard)
		}

	case inputtypes.DragBeginAction:
		// a press mid-animation holds cards where they are shown
		m.animator.Grab(m.controller.Frame())
		m.tracker.Begin(a.Position)
		m.controller.BeginDrag()

	case inputtypes.DragMoveAction:
		if !m.tracker.Active() {
			return nil
		}
		m.controller.UpdateDrag(m.tracker.Move(a.Position))

	case inputtypes.DragEndAction:
		if !m.tracker.Active() {
			return nil
		}
		before := m.animator.Apply(m.controller.Frame())
		final, predicted := m.tracker.End(a.Position)
		if !m.controller.EndDrag(final, predicted) {
			m.springBack(before)
		}
		m.logger.Debug("drag released", "translation", final, "predicted", predicted)

	case inputtypes.DragCancelAction:
		before := m.animator.Apply(m.controller.Frame())
		m.tracker.Reset()
		m.inputHandler.Reset()
		m.controller.CancelDrag()
		m.springBack(before)

	case inputtypes.IndicatorClickAction:
		m.goTo(a.Index)

	case inputtypes.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll

	case inputtypes.OpenCatalogAction:
		if m.program == nil {
			m.statusMessage = "Pager unavailable"
			return clearStatusAfter(statusTimeout)
		}
		item, _ := m.controller.CurrentItem()
		m.logger.Debug("opening catalog pager", "current", item.Title)
		return m.fetchCatalogPager(m.catalog.Render(m.controller.Items(), m.controller.CurrentIndex(), m.inputHandler.Keys()))

	case inputtypes.QuitAction:
		m.Close()
		return tea.Quit
	}
	return nil
}

// goTo steps the carousel to index one page at a time
func (m *Model) goTo(index int) {
	target, ok := m.controller.ItemAt(index)
	if !ok {
		return
	}
	m.logger.Debug("jumping to destination", "index", index, "title", target.Title)
	for m.controller.CurrentIndex() < index {
		if !m.controller.Advance(domain.CauseIndicator) {
			return
		}
	}
	for m.controller.CurrentIndex() > index {
		if !m.controller.Retreat(domain.CauseIndicator) {
			return
		}
	}
}

// springBack eases cards from the displayed drag position to their resting
// offsets when a release or cancel kept the current index
func (m *Model) springBack(from carousel.Frame) {
	to := m.controller.Frame()
	m.animator.Start(carousel.Transition{From: from, To: to})
}

// startAnimation hands pending transitions to the animator and schedules
// the next tick if cards are moving
func (m *Model) startAnimation() tea.Cmd {
	if trs := m.controller.TakeTransitions(); len(trs) > 0 {
		m.animator.Start(carousel.Transition{
			From: trs[0].From,
			To:   trs[len(trs)-1].To,
		})
	}
	if m.ticking || m.inPagerMode || !m.animator.Animating() {
		return nil
	}
	m.ticking = true
	return tick()
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tickMsg:
		m.ticking = false
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		if m.animator.Step() {
			m.ticking = true
			return m, tick()
		}
		return m, nil

	case catalogPagerMsg:
		if msg.err == nil {
			return m, nil
		}
		if m.bus == nil {
			m.logger.Error("catalog pager failed", "err", msg.err)
			return m, nil
		}
		// the bus logs it and forwards it back as a status message
		m.bus.Publish(eventbus.ErrorEvent{Message: "catalog pager failed", Err: msg.err})
		return m, nil

	case pauseRenderingMsg:
		// Signal that rendering should be paused for external pager
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, m.startAnimation()

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	default:
		return m, nil
	}
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ErrorEvent:
		if e.Err != nil {
			m.statusMessage = fmt.Sprintf("%s: %v", e.Message, e.Err)
		} else {
			m.statusMessage = e.Message
		}
		return clearStatusAfter(statusTimeout)

	case eventbus.CatalogLoadedEvent:
		m.statusMessage = fmt.Sprintf("Loaded %d destinations from %s", e.Count, e.Source)
		return clearStatusAfter(statusTimeout)
	}
	return nil
}

// fetchCatalogPager returns a command that shows the catalog using ov pager
func (m *Model) fetchCatalogPager(content string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return catalogPagerMsg{err: err}
	}
}

// tick returns a command that sends a tick message after one frame
func tick() tea.Cmd {
	return tea.Tick(time.Second/animation.FPS, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// modelContext exposes the read-only view of the model the input handler
// needs
type modelContext struct {
	m *Model
}

func (m *Model) inputContext() inputtypes.Context {
	return modelContext{m: m}
}

func (c modelContext) Dragging() bool {
	return c.m.controller.State().Dragging()
}

func (c modelContext) IndicatorAt(x, y int) (int, bool) {
	return c.m.geometry().DotAt(x, y)
}

func (c modelContext) PointsPerCell() float64 {
	return c.m.config.UI.PointsPerCell
}
