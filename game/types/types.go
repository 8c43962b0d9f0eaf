package types

import (
	"fmt"
	"strings"
)

// Cell is a column/row coordinate on the grid
type Cell struct {
	X, Y int
}

// Add returns the cell offset by d
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// NewSquareGrid builds the N x N grid that fits a square surface of the
// given size in tiles of tileSize.
func NewSquareGrid(surfaceSize, tileSize int) Grid {
	if tileSize <= 0 {
		return Grid{}
	}
	n := surfaceSize / tileSize
	return Grid{Width: n, Height: n}
}

// Contains reports whether c lies inside [0,Width) x [0,Height)
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Area is the number of cells on the grid
func (g Grid) Area() int {
	return g.Width * g.Height
}

// Heading is the actor's direction of travel
type Heading int

const (
	None Heading = iota
	Up
	Right
	Down
	Left
)

// Delta converts a Heading into a unit displacement
func (h Heading) Delta() Cell {
	switch h {
	case Up:
		return Cell{X: 0, Y: -1}
	case Right:
		return Cell{X: 1, Y: 0}
	case Down:
		return Cell{X: 0, Y: 1}
	case Left:
		return Cell{X: -1, Y: 0}
	default:
		return Cell{}
	}
}

// Opposite returns the reverse heading on the same axis. None has no opposite.
func (h Heading) Opposite() Heading {
	switch h {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// TurnLeft returns the heading after a 90 degree counter-clockwise turn.
func (h Heading) TurnLeft() Heading {
	switch h {
	case Up:
		return Left
	case Right:
		return Up
	case Down:
		return Right
	case Left:
		return Down
	default:
		return h
	}
}

// TurnRight returns the heading after a 90 degree clockwise turn.
func (h Heading) TurnRight() Heading {
	switch h {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	default:
		return h
	}
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// Headings lists the four moving headings in clockwise order starting Up
var Headings = [4]Heading{Up, Right, Down, Left}

// ParseHeading maps a heading name (case-insensitive) to a Heading
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "right":
		return Right, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "none", "":
		return None, nil
	}
	return None, fmt.Errorf("unknown heading %q", s)
}

// GameState is the lifecycle state of a world
type GameState int

const (
	Idle GameState = iota
	Running
	Paused
	Over
)

func (s GameState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Over:
		return "over"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

// CollisionType represents the type of collision, and doubles as the cause
// carried by a game over.
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
	// GridFilled ends a game with every cell occupied by the body.
	GridFilled
)

func (c CollisionType) String() string {
	switch c {
	case NoCollision:
		return "none"
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	case GridFilled:
		return "grid-filled"
	default:
		return fmt.Sprintf("CollisionType(%d)", int(c))
	}
}

// Game constants
const (
	DefaultSurfaceSize = 400 // Drawing surface edge in pixels
	DefaultTileSize    = 20  // Tile edge in pixels
)

// DefaultStartCell is where the body is placed on reset
var DefaultStartCell = Cell{X: 10, Y: 10}
