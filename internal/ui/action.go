package ui

// Action is a control-surface request produced by the HUD.
type Action int

const (
	ActionNone Action = iota
	ActionStep
	ActionReset
	ActionNewSeed
	ActionTogglePlay
)

func (a Action) String() string {
	switch a {
	case ActionStep:
		return "step"
	case ActionReset:
		return "reset"
	case ActionNewSeed:
		return "new-seed"
	case ActionTogglePlay:
		return "toggle-play"
	default:
		return "none"
	}
}
