package manager

import (
	"time"

	"golang.org/x/exp/rand"

	"neural-snake/game/types"
)

// MaxPlacementAttempts bounds rejection sampling before falling back to a
// scan of the free cells.
const MaxPlacementAttempts = 64

// IntSource yields uniform integers in [0, n)
type IntSource interface {
	Intn(n int) int
}

// NewRandSource returns a seeded source. A zero seed uses the clock.
func NewRandSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

type GoalManager struct {
	grid types.Grid
	rng  IntSource
}

func NewGoalManager(grid types.Grid, rng IntSource) *GoalManager {
	if rng == nil {
		rng = NewRandSource(0)
	}
	return &GoalManager{
		grid: grid,
		rng:  rng,
	}
}

// Place picks a cell not covered by body, uniformly over the free cells.
// It returns false when the body covers the whole grid.
func (gm *GoalManager) Place(body []types.Cell) (types.Cell, bool) {
	if len(body) >= gm.grid.Area() {
		return types.Cell{}, false
	}

	occupied := make(map[types.Cell]struct{}, len(body))
	for _, part := range body {
		occupied[part] = struct{}{}
	}

	for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
		goal := types.Cell{
			X: gm.rng.Intn(gm.grid.Width),
			Y: gm.rng.Intn(gm.grid.Height),
		}
		if _, taken := occupied[goal]; !taken {
			return goal, true
		}
	}

	free := gm.freeCells(occupied)
	if len(free) == 0 {
		return types.Cell{}, false
	}
	return free[gm.rng.Intn(len(free))], true
}

// freeCells lists unoccupied cells in row-major order
func (gm *GoalManager) freeCells(occupied map[types.Cell]struct{}) []types.Cell {
	free := make([]types.Cell, 0, gm.grid.Area()-len(occupied))
	for y := 0; y < gm.grid.Height; y++ {
		for x := 0; x < gm.grid.Width; x++ {
			c := types.Cell{X: x, Y: y}
			if _, taken := occupied[c]; !taken {
				free = append(free, c)
			}
		}
	}
	return free
}
