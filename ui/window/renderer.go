// Package window is the raylib desktop front-end.
package window

import (
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"neural-snake/game"
	"neural-snake/game/types"
	"neural-snake/ui"
)

const borderPadding = 10 // Padding around game area

// Layout is where the grid and side panel sit in the window
type Layout struct {
	CellSize   int32
	OffsetX    int32
	OffsetY    int32
	GridWidth  int32
	GridHeight int32
	PanelX     int32
	PanelWidth int32
}

// ComputeLayout fits grid into the left part of a screen, leaving a third of
// the width for the stats panel.
func ComputeLayout(screenWidth, screenHeight int32, grid types.Grid) Layout {
	panelWidth := screenWidth / 3
	availableWidth := screenWidth - panelWidth - (borderPadding * 2)
	availableHeight := screenHeight - (borderPadding * 2)

	cellW := availableWidth / int32(grid.Width)
	cellH := availableHeight / int32(grid.Height)
	cellSize := max(min(cellW, cellH), 1)

	l := Layout{
		CellSize:   cellSize,
		GridWidth:  cellSize * int32(grid.Width),
		GridHeight: cellSize * int32(grid.Height),
		OffsetX:    borderPadding,
	}
	l.OffsetY = (screenHeight - l.GridHeight) / 2
	l.PanelX = l.OffsetX + l.GridWidth + borderPadding*2
	l.PanelWidth = screenWidth - l.PanelX - borderPadding
	return l
}

// CellRect is the pixel origin of c
func (l Layout) CellRect(c types.Cell) (x, y int32) {
	return l.OffsetX + int32(c.X)*l.CellSize, l.OffsetY + int32(c.Y)*l.CellSize
}

var windowKeys = []struct {
	key int32
	cmd ui.Command
}{
	{rl.KeyUp, ui.HeadingCommand(types.Up)},
	{rl.KeyDown, ui.HeadingCommand(types.Down)},
	{rl.KeyLeft, ui.HeadingCommand(types.Left)},
	{rl.KeyRight, ui.HeadingCommand(types.Right)},
	{rl.KeySpace, ui.ToggleCommand},
	{rl.KeyR, ui.ResetCommand},
	{rl.KeyQ, ui.QuitCommand},
}

// Renderer runs a world in a raylib window
type Renderer struct {
	world    *game.World
	hud      *ui.HUD
	interval time.Duration
	width    int32
	height   int32
	fps      int32
	logger   *zap.Logger
}

func NewRenderer(world *game.World, hud *ui.HUD, interval time.Duration, width, height, fps int32, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		world:    world,
		hud:      hud,
		interval: interval,
		width:    width,
		height:   height,
		fps:      fps,
		logger:   logger,
	}
}

// Run opens the window and plays until it is closed or Q is pressed. Ticks
// happen on the frame loop whenever the interval has elapsed.
func (r *Renderer) Run() {
	rl.InitWindow(r.width, r.height, "Neural Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(r.fps)

	lastUpdate := time.Now()
	for !rl.WindowShouldClose() {
		if r.handleKeys() {
			r.logger.Debug("quit requested")
			break
		}

		// Update game state at fixed interval
		if time.Since(lastUpdate) >= r.interval {
			r.world.Tick()
			lastUpdate = time.Now()
		}

		r.Draw()
	}
}

func (r *Renderer) handleKeys() bool {
	for _, binding := range windowKeys {
		if rl.IsKeyPressed(binding.key) && ui.Apply(r.world, binding.cmd) {
			return true
		}
	}
	return false
}

// Draw renders one frame
func (r *Renderer) Draw() {
	snap := r.world.Snapshot()
	view := r.hud.View()
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())
	l := ComputeLayout(screenWidth, screenHeight, snap.Grid)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := max(screenHeight/30, 10)
	lineHeight := fontSize + 4

	rl.DrawRectangle(l.OffsetX-1, l.OffsetY-1, l.GridWidth+2, l.GridHeight+2, rl.DarkGray)
	for x := 0; x < snap.Grid.Width; x++ {
		for y := 0; y < snap.Grid.Height; y++ {
			px, py := l.CellRect(types.Cell{X: x, Y: y})
			rl.DrawRectangleLines(px, py, l.CellSize, l.CellSize, rl.Gray)
		}
	}

	filled := len(snap.Body) == snap.Grid.Area()
	if !filled {
		gx, gy := l.CellRect(snap.Goal)
		rl.DrawRectangle(gx, gy, l.CellSize, l.CellSize, rl.Red)
	}

	for i := len(snap.Body) - 1; i >= 0; i-- {
		color := rl.Green
		if i == 0 {
			color = rl.Lime
		}
		px, py := l.CellRect(snap.Body[i])
		rl.DrawRectangle(px, py, l.CellSize, l.CellSize, color)
	}
	r.drawHeading(l, snap)

	if snap.State == types.Over {
		msg := "Game Over! Press Space"
		if filled {
			msg = "Grid filled! Press Space"
		}
		width := rl.MeasureText(msg, fontSize)
		rl.DrawText(msg, l.OffsetX+(l.GridWidth-width)/2, l.OffsetY+l.GridHeight/2, fontSize, rl.Yellow)
	}

	r.drawPanel(l, snap, view, fontSize, lineHeight)
	rl.EndDrawing()
}

// drawHeading marks the head with a triangle pointing where it travels
func (r *Renderer) drawHeading(l Layout, snap game.Snapshot) {
	if len(snap.Body) == 0 || snap.Heading == types.None {
		return
	}
	headX, headY := l.CellRect(snap.Head())
	cell := float32(l.CellSize)
	half := cell / 2
	x, y := float32(headX), float32(headY)

	var a, b, c rl.Vector2
	switch snap.Heading {
	case types.Right:
		a, b, c = rl.Vector2{X: x + cell, Y: y + half}, rl.Vector2{X: x + half, Y: y}, rl.Vector2{X: x + half, Y: y + cell}
	case types.Left:
		a, b, c = rl.Vector2{X: x, Y: y + half}, rl.Vector2{X: x + half, Y: y + cell}, rl.Vector2{X: x + half, Y: y}
	case types.Down:
		a, b, c = rl.Vector2{X: x + half, Y: y + cell}, rl.Vector2{X: x + cell, Y: y + half}, rl.Vector2{X: x, Y: y + half}
	case types.Up:
		a, b, c = rl.Vector2{X: x + half, Y: y}, rl.Vector2{X: x, Y: y + half}, rl.Vector2{X: x + cell, Y: y + half}
	}
	rl.DrawTriangle(a, b, c, rl.Yellow)
}

func (r *Renderer) drawPanel(l Layout, snap game.Snapshot, view ui.HUDView, fontSize, lineHeight int32) {
	x := l.PanelX
	y := int32(borderPadding)

	rl.DrawText(fmt.Sprintf("Score: %d", snap.Score), x, y, fontSize, rl.White)
	y += lineHeight
	rl.DrawText(fmt.Sprintf("Intelligence: %s", view.Intelligence), x, y, fontSize, rl.White)
	y += lineHeight
	rl.DrawText(fmt.Sprintf("Layers: %d", view.LayerCount), x, y, fontSize, rl.White)
	y += lineHeight
	rl.DrawText(snap.State.String(), x, y, fontSize, rl.Gray)
	y += lineHeight * 3 / 2

	rl.DrawText("Network", x, y, fontSize, rl.SkyBlue)
	y += lineHeight
	for _, layer := range view.Layers {
		rl.DrawText(layer, x+5, y, fontSize*3/4, rl.White)
		y += lineHeight * 3 / 4
	}
	y += lineHeight / 2

	rl.DrawText("Capabilities", x, y, fontSize, rl.SkyBlue)
	y += lineHeight
	for _, capability := range view.Capabilities {
		rl.DrawText(capability, x+5, y, fontSize*3/4, rl.White)
		y += lineHeight * 3 / 4
	}

	if view.Toast != "" {
		rl.DrawText(view.Toast, l.OffsetX, l.OffsetY-lineHeight, fontSize, rl.Gold)
	}

	screenHeight := int32(rl.GetScreenHeight())
	for i, line := range wrap(view.Tip, max(int(l.PanelWidth/(fontSize/2+1)), 10)) {
		rl.DrawText(line, x, screenHeight-lineHeight*int32(5-i), fontSize*3/4, rl.LightGray)
		if i == 3 {
			break
		}
	}
}

// wrap splits text into lines of at most width runes at word boundaries
func wrap(text string, width int) []string {
	var lines []string
	var line []rune
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		if len(line) > 0 && len(line)+1+len(w) > width {
			lines = append(lines, string(line))
			line = nil
		}
		if len(line) > 0 {
			line = append(line, ' ')
		}
		line = append(line, w...)
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
