package ui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neural-snake/game"
	"neural-snake/game/types"
)

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen, *game.World) {
	t.Helper()
	settings := game.DefaultSettings()
	settings.Grid = types.Grid{Width: 8, Height: 6}
	settings.Start = types.Cell{X: 2, Y: 2}

	w, err := game.NewWorld(settings)
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	hud := NewHUD()
	w.Bus().Subscribe(hud.Observe)
	return NewTerminal(screen, w, hud, 10*time.Millisecond, nil), screen, w
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Command
		ok   bool
	}{
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), HeadingCommand(types.Up), true},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), HeadingCommand(types.Left), true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ToggleCommand, true},
		{"reset", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), ResetCommand, true},
		{"quit", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), QuitCommand, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), QuitCommand, true},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), Command{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyCommand(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTerminalDraw(t *testing.T) {
	term, screen, w := newTestTerminal(t)
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 24)

	w.Start()
	term.Draw()

	head := w.Body()[0]
	_, _, style, _ := screen.GetContent(1+head.X*cellWidth, gridTop+1+head.Y)
	assert.Equal(t, headStyle, style)

	goal := w.Goal()
	_, _, style, _ = screen.GetContent(1+goal.X*cellWidth, gridTop+1+goal.Y)
	assert.Equal(t, goalStyle, style)

	r, _, _, _ := screen.GetContent(0, gridTop)
	assert.Equal(t, tcell.RuneULCorner, r)
	r, _, _, _ = screen.GetContent(0, 0)
	assert.Equal(t, 'S', r)
}

func TestTerminalHandle(t *testing.T) {
	term, _, w := newTestTerminal(t)

	assert.False(t, term.handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.Equal(t, types.Running, w.State())

	assert.False(t, term.handle(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	assert.Equal(t, types.Down, w.Heading())

	assert.False(t, term.handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
	assert.True(t, term.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
}

func TestTerminalRunStopsOnCancel(t *testing.T) {
	term, _, w := newTestTerminal(t)
	w.Start()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- term.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(w.Body()) > 1 || w.Snapshot().Ticks > 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("terminal did not stop")
	}
}
