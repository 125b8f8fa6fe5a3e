package bracket

import "errors"

var (
	// ErrNoSeeds is returned when a bracket is requested for an empty seed list
	ErrNoSeeds = errors.New("at least one seed is required")

	// ErrDuplicateAthlete is returned when the same athlete appears twice in a seed list
	ErrDuplicateAthlete = errors.New("duplicate athlete id")

	// ErrInvalidSeed is returned for non-positive, duplicate or out of range seed numbers
	ErrInvalidSeed = errors.New("invalid seed number")

	// ErrMatchNotFound is returned when a result references a match that is not in the bracket
	ErrMatchNotFound = errors.New("match not found")

	// ErrWinnerNotInMatch is returned when the winner of a result occupies neither slot
	ErrWinnerNotInMatch = errors.New("winner is not an occupant of the match")

	// ErrMatchNotReady is returned when a result is recorded before both opponents are known
	ErrMatchNotReady = errors.New("match does not have both opponents yet")

	// ErrInvalidScore is returned for negative scores
	ErrInvalidScore = errors.New("invalid score")

	// ErrMalformedBracket is returned when a decoded bracket breaks the tableau shape
	ErrMalformedBracket = errors.New("malformed bracket")
)
