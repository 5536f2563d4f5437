package race

import "errors"

// Engine errors. All of them indicate a desynchronized caller rather
// than a recoverable condition: a team that consults AvailableActions
// first never triggers any of these.
var (
	// ErrNotActive is returned when a team acts without having a turn.
	ErrNotActive = errors.New("team not active")
	// ErrIllegalAction is returned when an action is not in the
	// team's currently available set.
	ErrIllegalAction = errors.New("illegal action")
	// ErrSectionFull is returned when a start placement names a
	// section already at capacity.
	ErrSectionFull = errors.New("section full")
	// ErrInvalidCard is returned when a card selection names a card
	// the rider does not hold.
	ErrInvalidCard = errors.New("invalid card")
	// ErrRiderNotFound is returned by position queries on riders that
	// are not on the track.
	ErrRiderNotFound = errors.New("rider not found")
)
