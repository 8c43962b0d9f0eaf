package manager

import (
	"neural-snake/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckCollision reports what the head would hit at pos. The whole body is
// checked, tail included, since the tail only leaves after the check.
func (cm *CollisionManager) CheckCollision(pos types.Cell, body []types.Cell) types.CollisionType {
	if cm.isWallCollision(pos) {
		return types.WallCollision
	}
	if cm.isSelfCollision(pos, body) {
		return types.SelfCollision
	}
	return types.NoCollision
}

// IsDanger reports whether entering pos would end the game
func (cm *CollisionManager) IsDanger(pos types.Cell, body []types.Cell) bool {
	return cm.CheckCollision(pos, body) != types.NoCollision
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Cell) bool {
	return !cm.grid.Contains(pos)
}

func (cm *CollisionManager) isSelfCollision(pos types.Cell, body []types.Cell) bool {
	for _, part := range body {
		if pos == part {
			return true
		}
	}
	return false
}

// IsGoalCollision checks if a position collides with the goal
func (cm *CollisionManager) IsGoalCollision(pos types.Cell, goal types.Cell) bool {
	return pos == goal
}
