package ui

import (
	"neural-snake/game"
	"neural-snake/game/types"
)

type Action int

const (
	ActionNone Action = iota
	ActionHeading
	ActionToggle
	ActionReset
	ActionQuit
)

// Command is a key press translated for the world
type Command struct {
	Action  Action
	Heading types.Heading
}

func HeadingCommand(h types.Heading) Command {
	return Command{Action: ActionHeading, Heading: h}
}

var (
	ToggleCommand = Command{Action: ActionToggle}
	ResetCommand  = Command{Action: ActionReset}
	QuitCommand   = Command{Action: ActionQuit}
)

// Apply runs cmd against w and reports whether the front-end should quit.
// Toggle behaves like the start/pause button: it starts from Idle or Over,
// pauses while Running and resumes while Paused.
func Apply(w *game.World, cmd Command) (quit bool) {
	switch cmd.Action {
	case ActionHeading:
		w.SetHeading(cmd.Heading)
	case ActionToggle:
		switch w.State() {
		case types.Idle, types.Over, types.Paused:
			w.Start()
		case types.Running:
			w.Pause()
		}
	case ActionReset:
		w.Reset()
	case ActionQuit:
		return true
	}
	return false
}
