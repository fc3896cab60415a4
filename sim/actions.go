package sim

import cfg "github.com/automoto/keyrunner/config"

// Actions is the boolean action-state map produced by the input collaborator
type Actions map[cfg.Action]bool

func (a Actions) Held(action cfg.Action) bool {
	return a[action]
}
