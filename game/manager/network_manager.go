package manager

import (
	"fmt"
	"sync"

	"neural-snake/game/event"
)

// Cosmetic network labels. Nothing here computes anything; every goal just
// appends the next label so the side panel looks like a growing network.
var (
	inputLayer      = "Input Layer (4 neurons)"
	inputCapability = "Basic movement detection"

	layerTypes = []string{
		"Hidden Layer 1 (8 neurons)",
		"Hidden Layer 2 (16 neurons)",
		"Hidden Layer 3 (32 neurons)",
		"Hidden Layer 4 (16 neurons)",
		"Hidden Layer 5 (8 neurons)",
		"Output Layer (4 neurons)",
	}

	capabilityTypes = []string{
		"Pattern recognition",
		"Feature extraction",
		"Complex decision making",
		"Advanced pathfinding",
		"Predictive analysis",
		"Strategic planning",
	}

	achievements = []string{
		"First neural layer added!",
		"Building deeper networks!",
		"Advanced AI capabilities unlocked!",
		"Expert-level neural architecture!",
		"You've mastered neural networks!",
	}

	layerTips = []string{
		"Great! Added a hidden layer. Neural networks learn patterns through these hidden layers!",
		"Another layer! Deep networks can learn more complex features and patterns.",
		"Excellent! You're building a deep neural network. Each layer processes information at different levels of abstraction.",
		"Amazing! Your network is getting sophisticated. This is how modern AI systems work!",
		"Fantastic! You've built a complex neural network. This is the foundation of artificial intelligence!",
	}
)

const (
	StartTip  = "Game started! Use arrow keys to control your neural snake. Each food eaten adds a new layer to your network!"
	PauseTip  = "Game paused. The neural network is resting!"
	ResumeTip = "Game resumed! Keep feeding your neural network!"
	ResetTip  = "Neural network reset! Ready to start learning again."

	defaultAchievement = "Neural network growing!"
)

// Intelligence is the tier shown next to the layer count
type Intelligence string

const (
	Basic        Intelligence = "Basic"
	Intermediate Intelligence = "Intermediate"
	Advanced     Intelligence = "Advanced"
	Expert       Intelligence = "Expert"
)

// IntelligenceFor maps a layer count to its tier
func IntelligenceFor(layers int) Intelligence {
	switch {
	case layers >= 6:
		return Expert
	case layers >= 4:
		return Advanced
	case layers >= 2:
		return Intermediate
	default:
		return Basic
	}
}

// NetworkManager tracks the cosmetic layer list grown by scoring
type NetworkManager struct {
	mu           sync.RWMutex
	layerCount   int
	layers       []string
	capabilities []string
}

func NewNetworkManager() *NetworkManager {
	nm := &NetworkManager{}
	nm.Reset()
	return nm
}

func (nm *NetworkManager) Reset() {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	nm.layerCount = 1
	nm.layers = []string{inputLayer}
	nm.capabilities = []string{inputCapability}
}

// Grow adds one layer for a consumed goal
func (nm *NetworkManager) Grow() {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	nm.layerCount++
	idx := nm.layerCount - 2
	if idx < len(layerTypes) {
		nm.layers = append(nm.layers, layerTypes[idx])
	}
	if idx < len(capabilityTypes) {
		nm.capabilities = append(nm.capabilities, capabilityTypes[idx])
	}
}

// Observe keeps the network in step with a world's events
func (nm *NetworkManager) Observe(ev event.Event) {
	switch ev.(type) {
	case event.Reset:
		nm.Reset()
	case event.GoalConsumed:
		nm.Grow()
	}
}

func (nm *NetworkManager) LayerCount() int {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	return nm.layerCount
}

func (nm *NetworkManager) Layers() []string {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	return append([]string(nil), nm.layers...)
}

func (nm *NetworkManager) Capabilities() []string {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	return append([]string(nil), nm.capabilities...)
}

func (nm *NetworkManager) Intelligence() Intelligence {
	return IntelligenceFor(nm.LayerCount())
}

// Achievement is the toast text for the current layer count
func (nm *NetworkManager) Achievement() string {
	idx := nm.LayerCount() - 2
	if idx < 0 {
		return defaultAchievement
	}
	return achievements[min(idx, len(achievements)-1)]
}

// Tip is the learning tip for the current layer count, empty before the
// first goal.
func (nm *NetworkManager) Tip() string {
	idx := nm.LayerCount() - 2
	if idx < 0 {
		return ""
	}
	return layerTips[min(idx, len(layerTips)-1)]
}

// GameOverTip summarises a finished game
func (nm *NetworkManager) GameOverTip(score int, won bool) string {
	if won {
		return fmt.Sprintf("Grid filled! Your neural network processed %d training examples and ran out of room. Final intelligence level: %s", score, nm.Intelligence())
	}
	return fmt.Sprintf("Game Over! Your neural network processed %d training examples. Final intelligence level: %s", score, nm.Intelligence())
}
