package game

import "errors"

var (
	// ErrUnknownModule is returned when a task assignment names a module
	// that was never registered in the catalog.
	ErrUnknownModule = errors.New("unknown module")

	// ErrUnknownLevel is returned while restoring a saved player whose
	// level name is no longer present in the level table.
	ErrUnknownLevel = errors.New("unknown level")

	// ErrUnknownBadge is returned while restoring a saved player whose
	// badge id is no longer present in the badge catalog.
	ErrUnknownBadge = errors.New("unknown badge")
)
