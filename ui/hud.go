package ui

import (
	"sync"
	"time"

	"neural-snake/game/event"
	"neural-snake/game/manager"
)

// ToastDuration is how long an achievement stays on screen
const ToastDuration = 3 * time.Second

// HUD is the text shown around the grid. It follows a world's events and is
// read by the front-ends on every frame.
type HUD struct {
	mu          sync.Mutex
	network     *manager.NetworkManager
	tip         string
	toast       string
	toastExpiry time.Time
	now         func() time.Time
}

// HUDView is a point-in-time copy of the HUD for drawing
type HUDView struct {
	Tip          string
	Toast        string // empty once expired
	Layers       []string
	Capabilities []string
	LayerCount   int
	Intelligence manager.Intelligence
}

func NewHUD() *HUD {
	return &HUD{
		network: manager.NewNetworkManager(),
		tip:     "Press Space to start. Feed the snake to grow its neural network!",
		now:     time.Now,
	}
}

// Observe is an event.Handler
func (h *HUD) Observe(ev event.Event) {
	h.network.Observe(ev)

	h.mu.Lock()
	defer h.mu.Unlock()

	switch e := ev.(type) {
	case event.Reset:
		h.tip = manager.StartTip
		h.toast = ""
	case event.Paused:
		h.tip = manager.PauseTip
	case event.Resumed:
		h.tip = manager.ResumeTip
	case event.GoalConsumed:
		h.toast = h.network.Achievement()
		h.toastExpiry = h.now().Add(ToastDuration)
		if tip := h.network.Tip(); tip != "" {
			h.tip = tip
		}
	case event.GameOver:
		h.tip = h.network.GameOverTip(e.FinalScore, e.Won())
	}
}

// View returns what to draw right now
func (h *HUD) View() HUDView {
	h.mu.Lock()
	tip := h.tip
	toast := h.toast
	if toast != "" && !h.now().Before(h.toastExpiry) {
		h.toast = ""
		toast = ""
	}
	h.mu.Unlock()

	return HUDView{
		Tip:          tip,
		Toast:        toast,
		Layers:       h.network.Layers(),
		Capabilities: h.network.Capabilities(),
		LayerCount:   h.network.LayerCount(),
		Intelligence: h.network.Intelligence(),
	}
}
