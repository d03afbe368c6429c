package status

import "github.com/rs/zerolog/log"

// transitionKey pairs a current status with a user action.
type transitionKey struct {
	status Status
	action Action
}

// transitions is the complete state table. Toggle returns every settled
// non-unchecked state to unchecked, so a second press is always an undo.
// Override applied to an overridden-family state cancels the bypass. The table
// is total over statuses x actions; a missing entry is a programming defect,
// not a runtime condition.
var transitions = map[transitionKey]Status{
	{StatusUnchecked, ActionToggle}:   StatusChecked,
	{StatusUnchecked, ActionOverride}: StatusOverridden,

	{StatusChecked, ActionToggle}:   StatusUnchecked,
	{StatusChecked, ActionOverride}: StatusCheckedOverridden,

	{StatusOverridden, ActionToggle}:   StatusUnchecked,
	{StatusOverridden, ActionOverride}: StatusUnchecked,

	{StatusCheckedOverridden, ActionToggle}:   StatusUnchecked,
	{StatusCheckedOverridden, ActionOverride}: StatusUnchecked,
}

// Transition computes the next status for a user action. Inputs outside the
// table (a corrupted status value, for example) fail fast under the debug
// build tag; release builds log the anomaly and keep the current status so a
// bad stored value can never crash the session.
func Transition(current Status, action Action) Status {
	next, ok := transitions[transitionKey{current, action}]
	if !ok {
		if failFast {
			panic("status: no transition defined for (" + string(current) + ", " + string(action) + ")")
		}
		log.Error().
			Str("cmp", "status").
			Str("status", string(current)).
			Str("action", string(action)).
			Msg("no transition defined; keeping current status")
		return current
	}
	return next
}
