// Package game implements the grid world: a single actor moving one cell per
// tick, growing when it reaches the goal, and ending on a wall or on itself.
package game

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"neural-snake/game/entity"
	"neural-snake/game/event"
	"neural-snake/game/manager"
	"neural-snake/game/types"
)

var (
	ErrInvalidGrid      = errors.New("grid must be at least 2x2")
	ErrStartOutOfBounds = errors.New("start cell outside grid")
)

// Settings fixes a world's geometry at construction
type Settings struct {
	Grid           types.Grid
	Start          types.Cell
	InitialHeading types.Heading // applied by Start
}

// DefaultSettings is a 20x20 grid starting at (10,10), moving right on start
func DefaultSettings() Settings {
	return Settings{
		Grid:           types.NewSquareGrid(types.DefaultSurfaceSize, types.DefaultTileSize),
		Start:          types.DefaultStartCell,
		InitialHeading: types.Right,
	}
}

type Option func(*World)

// WithBus publishes the world's events on bus
func WithBus(bus *event.Bus) Option {
	return func(w *World) { w.bus = bus }
}

func WithLogger(logger *zap.Logger) Option {
	return func(w *World) { w.logger = logger }
}

// WithRand draws goal positions from src
func WithRand(src manager.IntSource) Option {
	return func(w *World) { w.rng = src }
}

// World is the simulation. All methods are safe for concurrent use; events
// are published after the internal lock is released, so handlers may call
// back into accessors.
type World struct {
	mu       sync.Mutex
	settings Settings
	snake    *entity.Snake
	goal     types.Cell
	score    int
	state    types.GameState
	ticks    uint64

	collisionMgr *manager.CollisionManager
	goalMgr      *manager.GoalManager
	rng          manager.IntSource
	bus          *event.Bus
	logger       *zap.Logger
}

// Snapshot is a consistent copy of the world's state
type Snapshot struct {
	Grid    types.Grid
	Body    []types.Cell
	Heading types.Heading
	Goal    types.Cell
	Score   int
	State   types.GameState
	Ticks   uint64
}

// Head returns the first body cell
func (s Snapshot) Head() types.Cell {
	return s.Body[0]
}

// NewWorld builds an Idle world with the body at the start cell and a goal
// already placed.
func NewWorld(settings Settings, opts ...Option) (*World, error) {
	if settings.Grid.Width < 2 || settings.Grid.Height < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidGrid, settings.Grid.Width, settings.Grid.Height)
	}
	if !settings.Grid.Contains(settings.Start) {
		return nil, fmt.Errorf("%w: %s in %dx%d", ErrStartOutOfBounds, settings.Start, settings.Grid.Width, settings.Grid.Height)
	}

	w := &World{
		settings: settings,
		state:    types.Idle,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.bus == nil {
		w.bus = event.NewBus()
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}

	w.collisionMgr = manager.NewCollisionManager(settings.Grid)
	w.goalMgr = manager.NewGoalManager(settings.Grid, w.rng)
	w.snake = entity.NewSnake(settings.Start)
	w.relocateGoal()

	return w, nil
}

// Bus returns the bus the world publishes on
func (w *World) Bus() *event.Bus {
	return w.bus
}

// Tick advances the actor one cell along its heading. It does nothing
// unless the world is Running.
func (w *World) Tick() {
	w.mu.Lock()
	events := w.step()
	w.mu.Unlock()

	w.publish(events)
}

func (w *World) step() []event.Event {
	if w.state != types.Running {
		return nil
	}
	w.ticks++

	if w.snake.Heading == types.None {
		return []event.Event{event.Ticked{Tick: w.ticks, Body: w.snake.CopyBody()}}
	}

	newHead := w.snake.Next()
	if collision := w.collisionMgr.CheckCollision(newHead, w.snake.Body); collision != types.NoCollision {
		return []event.Event{w.end(collision)}
	}

	w.snake.Move(newHead)

	var events []event.Event
	var filled bool
	if w.collisionMgr.IsGoalCollision(newHead, w.goal) {
		eaten := w.goal
		w.score++
		filled = !w.relocateGoal()
		events = append(events, event.GoalConsumed{
			Score:      w.score,
			BodyLength: w.snake.Len(),
			Goal:       eaten,
		})
		w.logger.Debug("goal consumed",
			zap.Int("score", w.score),
			zap.Int("length", w.snake.Len()),
			zap.Stringer("goal", eaten))
	} else {
		w.snake.RemoveTail()
	}

	events = append(events, event.Ticked{Tick: w.ticks, Body: w.snake.CopyBody()})
	if filled {
		events = append(events, w.end(types.GridFilled))
	}
	return events
}

// end moves the world to Over and builds the matching event
func (w *World) end(cause types.CollisionType) event.Event {
	w.state = types.Over
	w.logger.Info("game over",
		zap.Stringer("cause", cause),
		zap.Int("score", w.score),
		zap.Int("length", w.snake.Len()),
		zap.Uint64("ticks", w.ticks))
	return event.GameOver{
		FinalScore:      w.score,
		FinalBodyLength: w.snake.Len(),
		Cause:           cause,
	}
}

// SetHeading requests a new heading for the next tick. It reports whether
// the request was taken: it is ignored unless Running, and a direct
// reversal is refused while the body is longer than one cell.
func (w *World) SetHeading(h types.Heading) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != types.Running {
		return false
	}
	return w.snake.SetDirection(h)
}

// Reset starts a fresh game from any state
func (w *World) Reset() {
	w.mu.Lock()
	w.reset()
	w.mu.Unlock()

	w.publish([]event.Event{event.Reset{}})
}

func (w *World) reset() {
	w.snake = entity.NewSnake(w.settings.Start)
	w.score = 0
	w.ticks = 0
	w.state = types.Running
	w.relocateGoal()
	w.logger.Debug("world reset", zap.Stringer("start", w.settings.Start), zap.Stringer("goal", w.goal))
}

// Start begins play the way the start button does: a new game heading in
// the initial direction from Idle or Over, a resume from Paused.
func (w *World) Start() {
	w.mu.Lock()
	var events []event.Event
	switch w.state {
	case types.Idle, types.Over:
		w.reset()
		w.snake.SetDirection(w.settings.InitialHeading)
		events = append(events, event.Reset{})
	case types.Paused:
		w.state = types.Running
		events = append(events, event.Resumed{})
	}
	w.mu.Unlock()

	w.publish(events)
}

// Pause stops ticks from having any effect. It is a no-op unless Running.
func (w *World) Pause() {
	w.mu.Lock()
	if w.state != types.Running {
		w.mu.Unlock()
		return
	}
	w.state = types.Paused
	w.mu.Unlock()

	w.publish([]event.Event{event.Paused{}})
}

// Resume returns a paused world to Running. It is a no-op unless Paused.
func (w *World) Resume() {
	w.mu.Lock()
	if w.state != types.Paused {
		w.mu.Unlock()
		return
	}
	w.state = types.Running
	w.mu.Unlock()

	w.publish([]event.Event{event.Resumed{}})
}

// RelocateGoal moves the goal to a random free cell. It returns false,
// leaving the goal where it was, when the body fills the grid.
func (w *World) RelocateGoal() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.relocateGoal()
}

func (w *World) relocateGoal() bool {
	goal, ok := w.goalMgr.Place(w.snake.Body)
	if !ok {
		return false
	}
	w.goal = goal
	return true
}

func (w *World) publish(events []event.Event) {
	for _, ev := range events {
		w.bus.Publish(ev)
	}
}

// Body returns a head-first copy of the body
func (w *World) Body() []types.Cell {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snake.CopyBody()
}

func (w *World) Goal() types.Cell {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.goal
}

func (w *World) Score() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.score
}

func (w *World) State() types.GameState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *World) Heading() types.Heading {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snake.Heading
}

func (w *World) Grid() types.Grid {
	return w.settings.Grid
}

func (w *World) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Grid:    w.settings.Grid,
		Body:    w.snake.CopyBody(),
		Heading: w.snake.Heading,
		Goal:    w.goal,
		Score:   w.score,
		State:   w.state,
		Ticks:   w.ticks,
	}
}
