package spellbook

import "errors"

var (
	// ErrBadConfig reports an invalid layout configuration value.
	ErrBadConfig = errors.New("invalid configuration")
	// ErrNoMetrics reports a font metrics provider failure.
	ErrNoMetrics = errors.New("font metrics unavailable")
	// ErrBadTable reports malformed table markup in a spell description.
	ErrBadTable = errors.New("malformed table")
	// ErrBadSpell reports a spell that cannot be decoded or rendered.
	ErrBadSpell = errors.New("invalid spell")
)
