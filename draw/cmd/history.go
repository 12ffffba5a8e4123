package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"go.ntppool.org/ticketdraw/selector"
)

// historyEntry is one line of the history file. The seed together with
// the roster file as it was before the round is enough to replay it.
type historyEntry struct {
	RunID     string    `json:"run_id"`
	Time      time.Time `json:"time"`
	File      string    `json:"file"`
	Seed      uint64    `json:"seed"`
	Requested int       `json:"requested"`
	Selected  []string  `json:"selected"`
	Exhausted bool      `json:"exhausted,omitempty"`
}

func appendHistory(path, rosterFile string, seed uint64, round *selector.Round) error {
	entry := historyEntry{
		RunID:     round.ID.String(),
		Time:      ulid.Time(round.ID.Time()).UTC(),
		File:      rosterFile,
		Seed:      seed,
		Requested: round.Requested,
		Selected:  round.Selected,
		Exhausted: round.Exhausted,
	}
	if entry.Selected == nil {
		entry.Selected = []string{}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	err = json.NewEncoder(f).Encode(entry)
	if err1 := f.Close(); err == nil {
		err = err1
	}
	return err
}
