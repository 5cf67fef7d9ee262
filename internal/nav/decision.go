// ABOUTME: Tagged decision type returned by the navigation guard
// ABOUTME: Exactly one of proceed, redirect-to-path or deny

package nav

import "fmt"

// Action discriminates the guard's verdict on a transition.
type Action int

const (
	// ActionProceed allows the transition to the requested path.
	ActionProceed Action = iota
	// ActionRedirect sends the transition to Decision.Target instead.
	ActionRedirect
	// ActionDeny blocks the transition; the current screen is retained.
	ActionDeny
)

// Decision is the guard's verdict. Target is set only for redirects.
type Decision struct {
	Action Action
	Target string
}

// Proceed allows the transition.
func Proceed() Decision {
	return Decision{Action: ActionProceed}
}

// RedirectTo sends the transition to path instead.
func RedirectTo(path string) Decision {
	return Decision{Action: ActionRedirect, Target: path}
}

// Deny blocks the transition.
func Deny() Decision {
	return Decision{Action: ActionDeny}
}

// String renders the decision for logs.
func (d Decision) String() string {
	switch d.Action {
	case ActionProceed:
		return "proceed"
	case ActionRedirect:
		return fmt.Sprintf("redirect(%s)", d.Target)
	case ActionDeny:
		return "deny"
	default:
		return fmt.Sprintf("unknown(%d)", int(d.Action))
	}
}
