// Package autopilot steers a world with a fixed greedy rule. It is used by
// the demo command and as an attract mode; it does not learn.
package autopilot

import (
	"neural-snake/game"
	"neural-snake/game/manager"
	"neural-snake/game/types"
)

// Pilot picks a heading from a snapshot
type Pilot struct {
	collisionMgr *manager.CollisionManager
}

func New(grid types.Grid) *Pilot {
	return &Pilot{collisionMgr: manager.NewCollisionManager(grid)}
}

type candidate struct {
	heading  types.Heading
	distance int
	space    int
}

// Decide returns the heading to request before the next tick. Safe moves
// closer to the goal win; ties go to the move with more free neighbours,
// then to keeping the current heading. With no safe move the current
// heading is kept.
func (p *Pilot) Decide(snap game.Snapshot) types.Heading {
	head := snap.Head()
	current := snap.Heading

	var best *candidate
	for _, h := range types.Headings {
		if len(snap.Body) > 1 && h == current.Opposite() {
			continue
		}
		next := head.Add(h.Delta())
		if p.collisionMgr.IsDanger(next, snap.Body) {
			continue
		}

		c := candidate{
			heading:  h,
			distance: manhattanDistance(next, snap.Goal),
			space:    p.freeNeighbours(next, snap.Body),
		}
		if best == nil || better(c, *best, current) {
			cc := c
			best = &cc
		}
	}

	if best == nil {
		if current == types.None {
			return types.Right
		}
		return current
	}
	return best.heading
}

func better(c, best candidate, current types.Heading) bool {
	// A move into a dead end only wins if nothing else is left.
	if (c.space == 0) != (best.space == 0) {
		return best.space == 0
	}
	if c.distance != best.distance {
		return c.distance < best.distance
	}
	if c.space != best.space {
		return c.space > best.space
	}
	return c.heading == current
}

// freeNeighbours counts safe cells around pos once the head stands there
func (p *Pilot) freeNeighbours(pos types.Cell, body []types.Cell) int {
	free := 0
	for _, h := range types.Headings {
		if !p.collisionMgr.IsDanger(pos.Add(h.Delta()), body) {
			free++
		}
	}
	return free
}

func manhattanDistance(p1, p2 types.Cell) int {
	return abs(p1.X-p2.X) + abs(p1.Y-p2.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Result summarises one autopilot episode
type Result struct {
	Score  int
	Length int
	Ticks  uint64
	State  types.GameState
}

// Play resets w and steers the new game until it ends or maxTicks ticks
// have run. maxTicks <= 0 means no cap.
func (p *Pilot) Play(w *game.World, maxTicks int) Result {
	w.Reset()
	for i := 0; maxTicks <= 0 || i < maxTicks; i++ {
		snap := w.Snapshot()
		if snap.State != types.Running {
			break
		}
		w.SetHeading(p.Decide(snap))
		w.Tick()
	}

	snap := w.Snapshot()
	return Result{
		Score:  snap.Score,
		Length: len(snap.Body),
		Ticks:  snap.Ticks,
		State:  snap.State,
	}
}
