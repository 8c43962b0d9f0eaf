package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neural-snake/game/entity"
	"neural-snake/game/event"
	"neural-snake/game/manager"
	"neural-snake/game/types"
)

// scriptedSource replays fixed values, then repeats the last one
type scriptedSource struct {
	values []int
	calls  int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.values[min(s.calls, len(s.values)-1)]
	s.calls++
	return v % n
}

func newTestWorld(t *testing.T, settings Settings, src manager.IntSource) (*World, *event.Recorder) {
	t.Helper()
	rec := &event.Recorder{}
	bus := event.NewBus()
	bus.Subscribe(rec.Handle)

	w, err := NewWorld(settings, WithBus(bus), WithRand(src))
	require.NoError(t, err)
	return w, rec
}

// place puts a running world into an arbitrary mid-game position
func place(w *World, body []types.Cell, heading types.Heading, goal types.Cell) {
	w.snake = entity.RestoreSnake(body, heading)
	w.goal = goal
	w.state = types.Running
}

func assertBody(t *testing.T, want, got []types.Cell) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestNewWorldValidates(t *testing.T) {
	_, err := NewWorld(Settings{Grid: types.Grid{Width: 1, Height: 1}})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = NewWorld(Settings{Grid: types.Grid{Width: 20, Height: 20}, Start: types.Cell{X: 20, Y: 3}})
	assert.ErrorIs(t, err, ErrStartOutOfBounds)

	w, err := NewWorld(DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, types.Idle, w.State())
	assertBody(t, []types.Cell{{X: 10, Y: 10}}, w.Body())
	assert.NotEqual(t, types.Cell{X: 10, Y: 10}, w.Goal())
	assert.Equal(t, types.Grid{Width: 20, Height: 20}, w.Grid())
}

func TestTickIsNoOpUnlessRunning(t *testing.T) {
	w, rec := newTestWorld(t, DefaultSettings(), manager.NewRandSource(7))

	before := w.Snapshot()
	w.Tick()
	assert.Equal(t, before, w.Snapshot(), "idle")

	w.Start()
	w.Tick()
	w.Pause()
	before = w.Snapshot()
	w.Tick()
	w.Tick()
	assert.Equal(t, before, w.Snapshot(), "paused")

	place(w, []types.Cell{{X: 19, Y: 10}}, types.Right, types.Cell{X: 0, Y: 0})
	w.Tick()
	require.Equal(t, types.Over, w.State())
	before = w.Snapshot()
	rec.Clear()
	w.Tick()
	assert.Equal(t, before, w.Snapshot(), "over")
	assert.Empty(t, rec.Events())
}

func TestResetInitialisesGame(t *testing.T) {
	w, rec := newTestWorld(t, DefaultSettings(), manager.NewRandSource(3))

	w.Reset()
	assert.Equal(t, types.Running, w.State())
	assert.Equal(t, types.None, w.Heading())
	assert.Equal(t, 0, w.Score())
	assertBody(t, []types.Cell{{X: 10, Y: 10}}, w.Body())
	assert.NotContains(t, w.Body(), w.Goal())
	assert.Equal(t, []event.Kind{event.KindReset}, rec.Kinds())
}

func TestTickWithoutHeadingStaysPut(t *testing.T) {
	w, rec := newTestWorld(t, DefaultSettings(), manager.NewRandSource(3))
	w.Reset()
	rec.Clear()

	w.Tick()
	assert.Equal(t, types.Running, w.State())
	assertBody(t, []types.Cell{{X: 10, Y: 10}}, w.Body())
	assert.Equal(t, []event.Kind{event.KindTicked}, rec.Kinds())
}

func TestFirstTickMovesRight(t *testing.T) {
	w, rec := newTestWorld(t, DefaultSettings(), manager.NewRandSource(1))
	w.Reset()
	place(w, []types.Cell{{X: 10, Y: 10}, {X: 9, Y: 10}}, types.Right, types.Cell{X: 0, Y: 0})
	rec.Clear()

	w.Tick()
	assertBody(t, []types.Cell{{X: 11, Y: 10}, {X: 10, Y: 10}}, w.Body())
	assert.Equal(t, 0, w.Score())

	require.Equal(t, []event.Kind{event.KindTicked}, rec.Kinds())
	ticked := rec.Events()[0].(event.Ticked)
	assertBody(t, []types.Cell{{X: 11, Y: 10}, {X: 10, Y: 10}}, ticked.Body)
}

func TestStartMovesRightFromStartCell(t *testing.T) {
	src := &scriptedSource{values: []int{0, 0}}
	w, _ := newTestWorld(t, DefaultSettings(), src)

	w.Start()
	require.Equal(t, types.Right, w.Heading())
	w.Tick()
	assertBody(t, []types.Cell{{X: 11, Y: 10}}, w.Body())
}

func TestEatingGoalGrowsBody(t *testing.T) {
	// After eating, the next goal draw lands on (5,5) (occupied) then (9,9).
	src := &scriptedSource{values: []int{0, 0, 5, 5, 9, 9}}
	w, rec := newTestWorld(t, DefaultSettings(), src)
	place(w, []types.Cell{{X: 5, Y: 5}}, types.Right, types.Cell{X: 6, Y: 5})

	w.Tick()
	assert.Equal(t, 1, w.Score())
	assertBody(t, []types.Cell{{X: 6, Y: 5}, {X: 5, Y: 5}}, w.Body())
	assert.Equal(t, types.Cell{X: 9, Y: 9}, w.Goal())

	require.Equal(t, []event.Kind{event.KindGoalConsumed, event.KindTicked}, rec.Kinds())
	consumed := rec.Events()[0].(event.GoalConsumed)
	assert.Equal(t, 1, consumed.Score)
	assert.Equal(t, 2, consumed.BodyLength)
	assert.Equal(t, types.Cell{X: 6, Y: 5}, consumed.Goal)
}

func TestWallCollisionEndsGame(t *testing.T) {
	w, rec := newTestWorld(t, DefaultSettings(), manager.NewRandSource(9))
	place(w, []types.Cell{{X: 19, Y: 10}}, types.Right, types.Cell{X: 0, Y: 0})
	w.score = 4

	w.Tick()
	assert.Equal(t, types.Over, w.State())
	assertBody(t, []types.Cell{{X: 19, Y: 10}}, w.Body())

	require.Equal(t, []event.Kind{event.KindGameOver}, rec.Kinds())
	over := rec.Events()[0].(event.GameOver)
	assert.Equal(t, 4, over.FinalScore)
	assert.Equal(t, 1, over.FinalBodyLength)
	assert.Equal(t, types.WallCollision, over.Cause)
	assert.False(t, over.Won())
}

func TestSelfCollisionIncludesTail(t *testing.T) {
	w, rec := newTestWorld(t, DefaultSettings(), manager.NewRandSource(9))
	// A square loop: head at (5,5) moving Down re-enters the tail cell (5,6).
	body := []types.Cell{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}}
	place(w, body, types.Left, types.Cell{X: 0, Y: 0})
	require.True(t, w.SetHeading(types.Down))

	w.Tick()
	assert.Equal(t, types.Over, w.State())
	assertBody(t, body, w.Body())

	require.Equal(t, []event.Kind{event.KindGameOver}, rec.Kinds())
	assert.Equal(t, types.SelfCollision, rec.Events()[0].(event.GameOver).Cause)
}

func TestSetHeadingRejectsReversal(t *testing.T) {
	w, _ := newTestWorld(t, DefaultSettings(), manager.NewRandSource(5))
	body := []types.Cell{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}
	place(w, body, types.Up, types.Cell{X: 0, Y: 0})

	assert.False(t, w.SetHeading(types.Down))
	assert.Equal(t, types.Up, w.Heading())

	w.Tick()
	assertBody(t, []types.Cell{{X: 5, Y: 4}, {X: 5, Y: 5}, {X: 5, Y: 6}}, w.Body())
	assert.Equal(t, types.Running, w.State())

	assert.True(t, w.SetHeading(types.Left))
	assert.True(t, w.SetHeading(types.Right), "latest call before the tick wins")
	w.Tick()
	assert.Equal(t, types.Cell{X: 6, Y: 4}, w.Body()[0])
}

func TestSetHeadingCannotChainIntoReversal(t *testing.T) {
	w, _ := newTestWorld(t, DefaultSettings(), manager.NewRandSource(5))
	place(w, []types.Cell{{X: 5, Y: 5}, {X: 4, Y: 5}}, types.Right, types.Cell{X: 0, Y: 0})

	assert.True(t, w.SetHeading(types.Up))
	assert.False(t, w.SetHeading(types.Left))
	w.Tick()
	assert.Equal(t, types.Running, w.State())
	assert.Equal(t, types.Cell{X: 5, Y: 4}, w.Body()[0])
}

func TestSetHeadingIgnoredUnlessRunning(t *testing.T) {
	w, _ := newTestWorld(t, DefaultSettings(), manager.NewRandSource(5))
	assert.False(t, w.SetHeading(types.Up))

	w.Reset()
	w.Pause()
	assert.False(t, w.SetHeading(types.Up))
	assert.Equal(t, types.None, w.Heading())
}

func TestPauseResume(t *testing.T) {
	w, rec := newTestWorld(t, DefaultSettings(), manager.NewRandSource(5))

	w.Pause()
	w.Resume()
	assert.Equal(t, types.Idle, w.State())
	assert.Empty(t, rec.Events())

	w.Reset()
	w.Pause()
	once := w.Snapshot()
	w.Pause()
	assert.Equal(t, once, w.Snapshot())
	assert.Equal(t, types.Paused, w.State())

	w.Resume()
	w.Resume()
	assert.Equal(t, types.Running, w.State())
	assert.Equal(t, []event.Kind{event.KindReset, event.KindPaused, event.KindResumed}, rec.Kinds())
}

func TestStartFromEachState(t *testing.T) {
	w, rec := newTestWorld(t, DefaultSettings(), manager.NewRandSource(5))

	w.Start()
	assert.Equal(t, types.Running, w.State())
	assert.Equal(t, types.Right, w.Heading())

	w.Start()
	w.Pause()
	w.Start()
	assert.Equal(t, types.Running, w.State())

	place(w, []types.Cell{{X: 19, Y: 0}}, types.Right, types.Cell{X: 0, Y: 0})
	w.Tick()
	require.Equal(t, types.Over, w.State())
	w.Start()
	assert.Equal(t, types.Running, w.State())
	assertBody(t, []types.Cell{{X: 10, Y: 10}}, w.Body())

	assert.Equal(t, []event.Kind{
		event.KindReset,
		event.KindPaused,
		event.KindResumed,
		event.KindGameOver,
		event.KindReset,
	}, rec.Kinds())
}

func TestFillingGridWins(t *testing.T) {
	settings := Settings{Grid: types.Grid{Width: 2, Height: 2}, Start: types.Cell{X: 0, Y: 0}, InitialHeading: types.Right}
	w, rec := newTestWorld(t, settings, &scriptedSource{values: []int{0}})

	body := []types.Cell{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}}
	place(w, body, types.Down, types.Cell{X: 1, Y: 1})
	require.True(t, w.SetHeading(types.Right))

	w.Tick()
	assert.Equal(t, types.Over, w.State())
	assert.Equal(t, 1, w.Score())
	assert.Len(t, w.Body(), 4)
	assert.Equal(t, types.Cell{X: 1, Y: 1}, w.Goal(), "goal stays put when nothing is free")

	require.Equal(t, []event.Kind{event.KindGoalConsumed, event.KindTicked, event.KindGameOver}, rec.Kinds())
	over := rec.Events()[2].(event.GameOver)
	assert.True(t, over.Won())
	assert.Equal(t, 4, over.FinalBodyLength)

	assert.False(t, w.RelocateGoal())
}

func TestRelocateGoalAvoidsBody(t *testing.T) {
	w, _ := newTestWorld(t, DefaultSettings(), manager.NewRandSource(11))
	body := []types.Cell{{X: 3, Y: 3}, {X: 3, Y: 4}, {X: 3, Y: 5}, {X: 4, Y: 5}}
	place(w, body, types.Up, types.Cell{X: 0, Y: 0})

	for i := 0; i < 200; i++ {
		require.True(t, w.RelocateGoal())
		assert.NotContains(t, body, w.Goal())
	}
}

// A long random walk must never leave duplicate cells in a running body or
// a goal on the body.
func TestRandomPlayKeepsInvariants(t *testing.T) {
	w, _ := newTestWorld(t, DefaultSettings(), manager.NewRandSource(2024))
	steer := manager.NewRandSource(99)

	for game := 0; game < 20; game++ {
		w.Start()
		for i := 0; i < 500 && w.State() == types.Running; i++ {
			w.SetHeading(types.Headings[steer.Intn(4)])
			w.Tick()

			snap := w.Snapshot()
			if snap.State != types.Running {
				break
			}
			seen := make(map[types.Cell]bool, len(snap.Body))
			for _, c := range snap.Body {
				require.False(t, seen[c], "duplicate cell %s", c)
				seen[c] = true
			}
			require.False(t, seen[snap.Goal], "goal %s on body", snap.Goal)
			require.Equal(t, snap.Score+1, len(snap.Body))
		}
	}
}

func TestHandlersMayReadWorld(t *testing.T) {
	bus := event.NewBus()
	w, err := NewWorld(DefaultSettings(), WithBus(bus), WithRand(manager.NewRandSource(1)))
	require.NoError(t, err)

	var seen []types.GameState
	bus.Subscribe(func(ev event.Event) {
		seen = append(seen, w.State())
	})

	w.Reset()
	w.Pause()
	assert.Equal(t, []types.GameState{types.Running, types.Paused}, seen)
	assert.Same(t, bus, w.Bus())
}
