package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neural-snake/game"
	"neural-snake/game/event"
	"neural-snake/game/manager"
	"neural-snake/game/types"
)

func TestHUDTipsFollowEvents(t *testing.T) {
	hud := NewHUD()

	hud.Observe(event.Reset{})
	assert.Equal(t, manager.StartTip, hud.View().Tip)

	hud.Observe(event.Paused{})
	assert.Equal(t, manager.PauseTip, hud.View().Tip)

	hud.Observe(event.Resumed{})
	assert.Equal(t, manager.ResumeTip, hud.View().Tip)

	hud.Observe(event.GoalConsumed{Score: 1, BodyLength: 2})
	view := hud.View()
	assert.Equal(t, 2, view.LayerCount)
	assert.Equal(t, manager.Intermediate, view.Intelligence)
	assert.Equal(t, "First neural layer added!", view.Toast)
	assert.Contains(t, view.Tip, "Added a hidden layer")

	hud.Observe(event.GameOver{FinalScore: 1, FinalBodyLength: 2, Cause: types.WallCollision})
	assert.Equal(t, "Game Over! Your neural network processed 1 training examples. Final intelligence level: Intermediate", hud.View().Tip)

	hud.Observe(event.Reset{})
	view = hud.View()
	assert.Equal(t, 1, view.LayerCount)
	assert.Empty(t, view.Toast)
	assert.Equal(t, []string{"Input Layer (4 neurons)"}, view.Layers)
}

func TestHUDToastExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	hud := NewHUD()
	hud.now = func() time.Time { return now }

	hud.Observe(event.GoalConsumed{Score: 1, BodyLength: 2})
	assert.NotEmpty(t, hud.View().Toast)

	now = now.Add(ToastDuration - time.Millisecond)
	assert.NotEmpty(t, hud.View().Toast)

	now = now.Add(time.Millisecond)
	assert.Empty(t, hud.View().Toast)
}

func TestApplyCommands(t *testing.T) {
	w, err := game.NewWorld(game.DefaultSettings())
	require.NoError(t, err)

	assert.False(t, Apply(w, ToggleCommand))
	assert.Equal(t, types.Running, w.State())
	assert.Equal(t, types.Right, w.Heading())

	Apply(w, HeadingCommand(types.Up))
	assert.Equal(t, types.Up, w.Heading())

	Apply(w, ToggleCommand)
	assert.Equal(t, types.Paused, w.State())

	Apply(w, HeadingCommand(types.Down))
	assert.Equal(t, types.Up, w.Heading(), "headings are ignored while paused")

	Apply(w, ToggleCommand)
	assert.Equal(t, types.Running, w.State())

	w.Tick()
	Apply(w, ResetCommand)
	assert.Equal(t, types.Running, w.State())
	assert.Equal(t, types.None, w.Heading())
	assert.Equal(t, []types.Cell{{X: 10, Y: 10}}, w.Body())

	assert.True(t, Apply(w, QuitCommand))
}

func TestHUDWiredToWorld(t *testing.T) {
	w, err := game.NewWorld(game.DefaultSettings())
	require.NoError(t, err)

	hud := NewHUD()
	unsubscribe := w.Bus().Subscribe(hud.Observe)
	defer unsubscribe()

	Apply(w, ToggleCommand)
	assert.Equal(t, manager.StartTip, hud.View().Tip)
	Apply(w, ToggleCommand)
	assert.Equal(t, manager.PauseTip, hud.View().Tip)
}
