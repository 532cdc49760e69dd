package models

// Preferences are the per-user display settings editable from the control
// panel. Values are always stored coerced to a recognized value; unknown
// inputs fall back to the defaults.
type Preferences struct {
	Limit        int
	OrderBy      string
	Sort         string
	SingleColumn bool
	ShowTeam     bool
	CloseWarning bool
	Lang         string
}
