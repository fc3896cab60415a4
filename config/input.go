package config

// Action is a named logical input, the key of the action-state map
type Action string

const (
	ActionUp    Action = "up"
	ActionDown  Action = "down"
	ActionLeft  Action = "left"
	ActionRight Action = "right"
	ActionBreak Action = "break"
	ActionPause Action = "pause"

	ActionConfirm Action = "confirm"
	ActionBack    Action = "back"
	ActionSkip    Action = "skip" // debug: advance to the next level
)

// Actions lists every action in polling order
var Actions = []Action{ActionUp, ActionDown, ActionLeft, ActionRight, ActionBreak, ActionPause, ActionConfirm, ActionBack, ActionSkip}
