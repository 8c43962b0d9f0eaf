package entity

import (
	"neural-snake/game/types"
)

// Snake is the actor: a head-first body and the heading it travels along.
type Snake struct {
	Body    []types.Cell
	Heading types.Heading

	// moved is the heading the last step was taken along. Reversal checks
	// use it so two requests inside one tick cannot chain into a U-turn.
	moved types.Heading
}

func NewSnake(startPos types.Cell) *Snake {
	return &Snake{
		Body:    []types.Cell{startPos},
		Heading: types.None,
		moved:   types.None,
	}
}

// RestoreSnake rebuilds a snake mid-game, as if its last step had been taken
// along heading.
func RestoreSnake(body []types.Cell, heading types.Heading) *Snake {
	return &Snake{
		Body:    append([]types.Cell(nil), body...),
		Heading: heading,
		moved:   heading,
	}
}

// Next is the cell the head would enter on the next step
func (s *Snake) Next() types.Cell {
	return s.GetHead().Add(s.Heading.Delta())
}

// Move prepends newHead and records the heading it was reached by
func (s *Snake) Move(newHead types.Cell) {
	s.Body = append(s.Body, types.Cell{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
	s.moved = s.Heading
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 0 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

func (s *Snake) GetHead() types.Cell {
	return s.Body[0]
}

func (s *Snake) GetTail() types.Cell {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Contains reports whether c is occupied by any segment
func (s *Snake) Contains(c types.Cell) bool {
	for _, part := range s.Body {
		if part == c {
			return true
		}
	}
	return false
}

// SetDirection applies a requested heading. The direct reverse of the last
// travelled heading is refused while the body is longer than one cell.
func (s *Snake) SetDirection(dir types.Heading) bool {
	if len(s.Body) > 1 && dir != types.None && dir == s.moved.Opposite() {
		return false
	}
	s.Heading = dir
	return true
}

// CopyBody returns a snapshot of the body safe to hand to other goroutines
func (s *Snake) CopyBody() []types.Cell {
	body := make([]types.Cell, len(s.Body))
	copy(body, s.Body)
	return body
}
