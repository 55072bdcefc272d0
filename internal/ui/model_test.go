package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardcarousel/internal/carousel"
	"cardcarousel/internal/catalog"
	"cardcarousel/internal/config"
	"cardcarousel/internal/eventbus"
	inputtypes "cardcarousel/internal/ui/input/types"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time { return c.t }

func (c *stepClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestModel(t *testing.T, cfg *config.Config) (*Model, *stepClock) {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	controller := carousel.New(catalog.Samples(), cfg.CarouselConfig(), nil)
	m := NewModel(nil, cfg, controller, nil)
	clock := &stepClock{t: time.Unix(1700000000, 0)}
	m.SetClock(clock.now)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	t.Cleanup(m.Close)
	return m, clock
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

// settle runs animation ticks until the cards stop moving
func settle(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; m.animator.Animating(); i++ {
		require.Less(t, i, 1000, "animation did not settle")
		m.Update(tickMsg(time.Now()))
	}
}

func TestViewBeforeResize(t *testing.T) {
	cfg := config.DefaultConfig()
	m := NewModel(nil, cfg, carousel.New(catalog.Samples(), cfg.CarouselConfig(), nil), nil)
	defer m.Close()
	assert.Equal(t, "Loading...", m.View())
}

func TestViewShowsFirstDestination(t *testing.T) {
	m, _ := newTestModel(t, nil)
	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Dubai")
	assert.Contains(t, out, "53K+ Visas on Atlys")
	assert.Contains(t, out, "1/3")
}

func TestKeyboardNavigationAnimates(t *testing.T) {
	m, _ := newTestModel(t, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.controller.CurrentIndex())
	assert.True(t, m.animator.Animating())
	assert.True(t, m.ticking)

	settle(t, m)
	assert.False(t, m.ticking)
	assert.Contains(t, ansi.Strip(m.View()), "2/3  Malaysia")

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.controller.CurrentIndex())
}

func TestKeyboardStopsAtEnds(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.controller.CurrentIndex())
	assert.False(t, m.animator.Animating())
}

func TestDragPastThresholdCommits(t *testing.T) {
	m, clock := newTestModel(t, nil)

	m.Update(press(40, 6))
	require.True(t, m.controller.State().Dragging())

	clock.advance(time.Second)
	m.Update(motion(15, 6)) // 25 cells = 250 units left
	assert.InDelta(t, -250, m.controller.State().LiveDragOffset, 1e-9)

	// displayed offsets follow the drag without easing
	shown := m.animator.Apply(m.controller.Frame())
	assert.Equal(t, m.controller.Frame().Transforms, shown.Transforms)

	m.Update(release(15, 6))
	assert.False(t, m.controller.State().Dragging())
	assert.Equal(t, 1, m.controller.CurrentIndex())
	assert.True(t, m.animator.Animating())
}

func TestSlowShortDragSpringsBack(t *testing.T) {
	m, clock := newTestModel(t, nil)

	m.Update(press(40, 6))
	clock.advance(time.Second)
	m.Update(motion(35, 6))
	m.Update(release(35, 6))

	assert.Equal(t, 0, m.controller.CurrentIndex())
	assert.True(t, m.animator.Animating(), "cards ease back to rest")

	settle(t, m)
	assert.Equal(t, m.controller.Frame().Transforms, m.animator.Apply(m.controller.Frame()).Transforms)
}

func TestFastFlickCommits(t *testing.T) {
	m, clock := newTestModel(t, nil)

	m.Update(press(40, 6))
	clock.advance(10 * time.Millisecond)
	m.Update(motion(35, 6))
	m.Update(release(35, 6))

	assert.Equal(t, 1, m.controller.CurrentIndex(), "velocity projection passes the threshold")
}

func TestPressMidAnimationHoldsCards(t *testing.T) {
	m, clock := newTestModel(t, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tickMsg(time.Now()))
	m.Update(tickMsg(time.Now()))
	shown := m.animator.Apply(m.controller.Frame()).Transforms
	require.NotEqual(t, m.controller.Frame().Transforms[1].OffsetX, shown[1].OffsetX)

	m.Update(press(40, 6))
	require.True(t, m.controller.State().Dragging())
	assert.Equal(t, shown, m.animator.Apply(m.controller.Frame()).Transforms)
	assert.False(t, m.animator.Animating())

	clock.advance(time.Second)
	m.Update(motion(38, 6))
	moved := m.animator.Apply(m.controller.Frame()).Transforms
	assert.InDelta(t, shown[1].OffsetX-20, moved[1].OffsetX, 1e-9)
}

func TestDragActionsWithoutPressAreIgnored(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.processActions([]inputtypes.Action{
		inputtypes.DragMoveAction{Position: 100},
		inputtypes.DragEndAction{Position: 100},
	})
	assert.Equal(t, 0, m.controller.CurrentIndex())
	assert.False(t, m.controller.State().Dragging())
	assert.False(t, m.animator.Animating())
}

func TestBlurCancelsDrag(t *testing.T) {
	m, clock := newTestModel(t, nil)

	m.Update(press(40, 6))
	clock.advance(time.Second)
	m.Update(motion(10, 6))
	m.Update(tea.BlurMsg{})

	assert.False(t, m.controller.State().Dragging())
	assert.Equal(t, 0, m.controller.CurrentIndex(), "cancel never commits")

	// the release that follows is ignored
	m.Update(release(10, 6))
	assert.Equal(t, 0, m.controller.CurrentIndex())
}

func TestEscCancelsDrag(t *testing.T) {
	m, clock := newTestModel(t, nil)

	m.Update(press(40, 6))
	clock.advance(time.Second)
	m.Update(motion(10, 6))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.controller.State().Dragging())
	assert.Equal(t, 0, m.controller.CurrentIndex())
}

func TestIndicatorClickJumps(t *testing.T) {
	m, _ := newTestModel(t, nil)
	g := m.geometry()

	m.Update(press(g.IndicatorStart+4, g.IndicatorRow))
	assert.Equal(t, 2, m.controller.CurrentIndex())
	assert.False(t, m.controller.State().Dragging())
	assert.True(t, m.animator.Animating())

	m.Update(press(g.IndicatorStart, g.IndicatorRow))
	assert.Equal(t, 0, m.controller.CurrentIndex())
}

func TestMouseDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UI.Mouse = false
	m, _ := newTestModel(t, cfg)

	m.Update(press(40, 6))
	assert.False(t, m.controller.State().Dragging())
}

func TestToggleHelp(t *testing.T) {
	m, _ := newTestModel(t, nil)
	short := m.View()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, ansi.Strip(m.View()), "cancel drag")
	assert.NotEqual(t, short, m.View())
}

func TestHelpHidden(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UI.ShowHelp = false
	m, _ := newTestModel(t, cfg)
	assert.NotContains(t, ansi.Strip(m.View()), "quit")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.True(t, quits(cmd()))
	assert.Nil(t, m.unsubscribe)
}

func quits(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if c != nil && quits(c()) {
				return true
			}
		}
	}
	return false
}

func TestCatalogWithoutProgram(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")})
	assert.Contains(t, ansi.Strip(m.View()), "Pager unavailable")

	m.Update(clearStatusMsg{})
	assert.NotContains(t, ansi.Strip(m.View()), "Pager unavailable")
}

func TestPagerModePausesRendering(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.Update(pauseRenderingMsg{})
	assert.Empty(t, m.View())

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.False(t, m.ticking, "no ticks while paged out")

	m.Update(resumeRenderingMsg{})
	assert.True(t, m.ticking)
	assert.NotEmpty(t, m.View())
}

func TestErrorEventShowsStatus(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.Update(EventMsg{Event: eventbus.ErrorEvent{Message: "catalog", Err: errors.New("boom")}})
	assert.Contains(t, ansi.Strip(m.View()), "catalog: boom")
}

func TestPagerFailurePublishesError(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()

	got := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) { got <- e })

	cfg := config.DefaultConfig()
	m := NewModel(bus, cfg, carousel.New(catalog.Samples(), cfg.CarouselConfig(), nil), nil)
	defer m.Close()

	m.Update(catalogPagerMsg{err: errors.New("no tty")})

	select {
	case e := <-got:
		ev, ok := e.(eventbus.ErrorEvent)
		require.True(t, ok)
		assert.Equal(t, "catalog pager failed", ev.Message)
	case <-time.After(time.Second):
		t.Fatal("error event not published")
	}
}

func TestCatalogSheetListsDestinations(t *testing.T) {
	m, _ := newTestModel(t, nil)
	sheet := ansi.Strip(m.catalog.Render(m.controller.Items(), 1, m.inputHandler.Keys()))
	assert.Contains(t, sheet, " 1. Dubai")
	assert.Contains(t, sheet, "▸")
	assert.Contains(t, sheet, " 2. Malaysia")
	assert.Contains(t, sheet, "32K+ Visas on Atlys")
	assert.Contains(t, sheet, "list all")
}

func TestEmptyCatalogModel(t *testing.T) {
	cfg := config.DefaultConfig()
	m := NewModel(nil, cfg, carousel.New(nil, cfg.CarouselConfig(), nil), nil)
	defer m.Close()
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Contains(t, ansi.Strip(m.View()), "No destinations")
	assert.Equal(t, 0, m.controller.CurrentIndex())
}
