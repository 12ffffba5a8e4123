package selector

import (
	"errors"

	"github.com/oklog/ulid/v2"
)

var (
	ErrEmptyName      = errors.New("participant name is empty")
	ErrNegativeWeight = errors.New("participant weight is negative")
	ErrDuplicateName  = errors.New("participant already in roster")
	ErrNegativePicks  = errors.New("number of picks is negative")
)

// State tracks a participant's progress through the current round
type State uint8

const (
	Pending  State = iota // not (yet) selected this round
	Selected              // drawn this round, weight resets afterwards
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Selected:
		return "selected"
	default:
		return "unknown"
	}
}

// Participant is one roster entry
type Participant struct {
	Name   string
	Weight int
	State  State
}

// Round describes the outcome of one call to Selector.Run
type Round struct {
	ID        ulid.ULID
	Requested int
	Selected  []string // in selection order
	Exhausted bool     // the pool ran dry before Requested picks were made
}
