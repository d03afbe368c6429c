// Package status defines the completion state of a checklist item and the
// transition rules that move it between states.
package status

import "fmt"

// Status is the completion state of a single checklist item.
type Status string

const (
	// StatusUnchecked is the default state; absent entries read as unchecked.
	StatusUnchecked Status = "unchecked"
	// StatusChecked marks normal completion.
	StatusChecked Status = "checked"
	// StatusOverridden marks completion via the emergency bypass without a
	// normal check.
	StatusOverridden Status = "overridden"
	// StatusCheckedOverridden marks an item that was checked and then had the
	// bypass applied on top.
	StatusCheckedOverridden Status = "checked-overridden"
)

// Action is a user-triggered event that drives a status transition.
type Action string

const (
	// ActionToggle flips an item between unchecked and checked, and clears any
	// settled non-unchecked state.
	ActionToggle Action = "toggle"
	// ActionOverride applies the emergency bypass; applying it to an already
	// overridden item cancels the bypass.
	ActionOverride Action = "override"
)

// IsValid reports whether s is one of the four defined statuses. Anything else
// is a data-corruption condition.
func (s Status) IsValid() bool {
	switch s {
	case StatusUnchecked, StatusChecked, StatusOverridden, StatusCheckedOverridden:
		return true
	default:
		return false
	}
}

// IsComplete reports whether the item counts as done for progress purposes.
// Overridden implies complete; complete does not imply overridden.
func (s Status) IsComplete() bool {
	switch s {
	case StatusChecked, StatusOverridden, StatusCheckedOverridden:
		return true
	default:
		return false
	}
}

// IsOverridden reports whether the emergency bypass is active on the item.
func (s Status) IsOverridden() bool {
	return s == StatusOverridden || s == StatusCheckedOverridden
}

// IsValid reports whether a is a defined action.
func (a Action) IsValid() bool {
	return a == ActionToggle || a == ActionOverride
}

// Statuses returns all defined statuses in declaration order.
func Statuses() []Status {
	return []Status{StatusUnchecked, StatusChecked, StatusOverridden, StatusCheckedOverridden}
}

// Actions returns all defined actions.
func Actions() []Action {
	return []Action{ActionToggle, ActionOverride}
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return StatusUnchecked, fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}

// ParseAction converts a raw string into an Action.
func ParseAction(raw string) (Action, error) {
	a := Action(raw)
	if !a.IsValid() {
		return "", fmt.Errorf("unknown action %q", raw)
	}
	return a, nil
}
