// Package event carries what a world reports to its collaborators after a
// command: renderers, the HUD, audio and session statistics subscribe to a
// Bus instead of being called by the simulation directly.
package event

import (
	"sync"

	"neural-snake/game/types"
)

// Kind identifies an event type
type Kind int

const (
	KindTicked Kind = iota
	KindGoalConsumed
	KindGameOver
	KindReset
	KindPaused
	KindResumed
)

func (k Kind) String() string {
	switch k {
	case KindTicked:
		return "ticked"
	case KindGoalConsumed:
		return "goal-consumed"
	case KindGameOver:
		return "game-over"
	case KindReset:
		return "reset"
	case KindPaused:
		return "paused"
	case KindResumed:
		return "resumed"
	default:
		return "unknown"
	}
}

type Event interface {
	Kind() Kind
}

// Ticked is published after every step taken while running
type Ticked struct {
	Tick uint64
	Body []types.Cell
}

// GoalConsumed is published when the head reaches the goal
type GoalConsumed struct {
	Score      int
	BodyLength int
	Goal       types.Cell // the goal that was eaten
}

// GameOver is published once when a running world ends
type GameOver struct {
	FinalScore      int
	FinalBodyLength int
	Cause           types.CollisionType
}

// Won reports whether the game ended by filling the grid
func (e GameOver) Won() bool {
	return e.Cause == types.GridFilled
}

type Reset struct{}

type Paused struct{}

type Resumed struct{}

func (Ticked) Kind() Kind       { return KindTicked }
func (GoalConsumed) Kind() Kind { return KindGoalConsumed }
func (GameOver) Kind() Kind     { return KindGameOver }
func (Reset) Kind() Kind        { return KindReset }
func (Paused) Kind() Kind       { return KindPaused }
func (Resumed) Kind() Kind      { return KindResumed }

// Handler receives published events
type Handler func(Event)

// Bus delivers events synchronously to subscribers in subscription order
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers []subscription
}

type subscription struct {
	id int
	fn Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it
func (b *Bus) Subscribe(fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.handlers {
			if s.id == id {
				b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every handler with ev. Handlers may subscribe or
// unsubscribe while being called; changes apply from the next Publish.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	for i, s := range b.handlers {
		handlers[i] = s.fn
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// Recorder is a handler that keeps every event it sees
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Handle(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns the recorded events in order
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of the recorded events in order
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Kind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind()
	}
	return out
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
