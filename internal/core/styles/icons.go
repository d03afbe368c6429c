package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconCheckList = " " //
	IconCursor    = "❯"
	IconRequired  = "*"
	IconNotes     = "✎"
)

// Item status markers. Overridden states share the slashed-circle family so
// a bypassed item never reads as a normal check.
var (
	IconUnchecked         = "☐"
	IconChecked           = "✓"
	IconOverridden        = "⊘"
	IconCheckedOverridden = "⊗"
)
