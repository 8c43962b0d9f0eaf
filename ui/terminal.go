package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"neural-snake/game"
	"neural-snake/game/types"
)

const (
	frameInterval = 33 * time.Millisecond
	cellWidth     = 2 // terminal columns per grid cell
	gridTop       = 1
	helpText      = "arrows steer  space start/pause  r reset  q quit"
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	headStyle   = tcell.StyleDefault.Background(tcell.ColorLime)
	bodyStyle   = tcell.StyleDefault.Background(tcell.ColorGreen)
	goalStyle   = tcell.StyleDefault.Background(tcell.ColorRed)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	toastStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	overStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Terminal runs a world in a tcell screen
type Terminal struct {
	screen   tcell.Screen
	world    *game.World
	hud      *HUD
	interval time.Duration
	logger   *zap.Logger
}

func NewTerminal(screen tcell.Screen, world *game.World, hud *HUD, interval time.Duration, logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Terminal{
		screen:   screen,
		world:    world,
		hud:      hud,
		interval: interval,
		logger:   logger,
	}
}

// KeyCommand maps a key press to a command. ok is false for unbound keys.
func KeyCommand(ev *tcell.EventKey) (cmd Command, ok bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return HeadingCommand(types.Up), true
	case tcell.KeyDown:
		return HeadingCommand(types.Down), true
	case tcell.KeyLeft:
		return HeadingCommand(types.Left), true
	case tcell.KeyRight:
		return HeadingCommand(types.Right), true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return QuitCommand, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return ToggleCommand, true
		case 'r', 'R':
			return ResetCommand, true
		case 'q', 'Q':
			return QuitCommand, true
		}
	}
	return Command{}, false
}

// Run initialises the screen and plays until quit or ctx is done. The tick
// loop and the input/draw loop run in one errgroup.
func (t *Terminal) Run(ctx context.Context) error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer t.screen.Fini()
	t.screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	loop := game.NewLoop(t.world, t.interval, t.logger)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		frame := time.NewTicker(frameInterval)
		defer frame.Stop()

		t.Draw()
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev := <-events:
				if t.handle(ev) {
					t.logger.Debug("quit requested")
					return nil
				}
			case <-frame.C:
				t.Draw()
			}
		}
	})

	return g.Wait()
}

// handle reports whether the event asks to quit
func (t *Terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd, ok := KeyCommand(ev)
		if !ok {
			return false
		}
		return Apply(t.world, cmd)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return false
}

// Draw renders one frame
func (t *Terminal) Draw() {
	snap := t.world.Snapshot()
	view := t.hud.View()

	t.screen.Clear()

	drawText(t.screen, 0, 0, textStyle, fmt.Sprintf("Score: %d  Length: %d  Intelligence: %s  Layers: %d  [%s]",
		snap.Score, len(snap.Body), view.Intelligence, view.LayerCount, snap.State))

	right := cellWidth*snap.Grid.Width + 1
	bottom := gridTop + snap.Grid.Height + 1
	drawBox(t.screen, 0, gridTop, right, bottom)

	if snap.State != types.Over || len(snap.Body) < snap.Grid.Area() {
		t.drawCell(snap.Goal, goalStyle)
	}
	for i := len(snap.Body) - 1; i >= 0; i-- {
		style := bodyStyle
		if i == 0 {
			style = headStyle
		}
		t.drawCell(snap.Body[i], style)
	}

	if snap.State == types.Over {
		msg := " GAME OVER "
		if len(snap.Body) == snap.Grid.Area() {
			msg = " GRID FILLED "
		}
		drawText(t.screen, (right-len(msg))/2+1, gridTop+snap.Grid.Height/2, overStyle, msg)
	}

	y := bottom + 1
	drawText(t.screen, 0, y, textStyle, view.Tip)
	if view.Toast != "" {
		drawText(t.screen, 0, y+1, toastStyle, view.Toast)
	}
	drawText(t.screen, 0, y+2, borderStyle, helpText)

	panel := right + 3
	drawText(t.screen, panel, gridTop, textStyle, "Network")
	for i, layer := range view.Layers {
		drawText(t.screen, panel, gridTop+1+i, textStyle, layer)
	}

	t.screen.Show()
}

func (t *Terminal) drawCell(c types.Cell, style tcell.Style) {
	x := 1 + c.X*cellWidth
	y := gridTop + 1 + c.Y
	for dx := 0; dx < cellWidth; dx++ {
		t.screen.SetContent(x+dx, y, ' ', nil, style)
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawBox(s tcell.Screen, x1, y1, x2, y2 int) {
	for x := x1 + 1; x < x2; x++ {
		s.SetContent(x, y1, tcell.RuneHLine, nil, borderStyle)
		s.SetContent(x, y2, tcell.RuneHLine, nil, borderStyle)
	}
	for y := y1 + 1; y < y2; y++ {
		s.SetContent(x1, y, tcell.RuneVLine, nil, borderStyle)
		s.SetContent(x2, y, tcell.RuneVLine, nil, borderStyle)
	}
	s.SetContent(x1, y1, tcell.RuneULCorner, nil, borderStyle)
	s.SetContent(x2, y1, tcell.RuneURCorner, nil, borderStyle)
	s.SetContent(x1, y2, tcell.RuneLLCorner, nil, borderStyle)
	s.SetContent(x2, y2, tcell.RuneLRCorner, nil, borderStyle)
}
