package selector

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"
	"go.ntppool.org/common/logger"
)

// Selector owns the roster and the draw pool built from it. It is not
// safe for concurrent use.
type Selector struct {
	roster []Participant
	index  map[string]int
	pool   drawPool

	rnd     *rand.Rand
	seed    uint64
	log     *slog.Logger
	metrics *Metrics
}

type Option func(*Selector)

func WithLogger(log *slog.Logger) Option {
	return func(sl *Selector) {
		sl.log = log
	}
}

func WithMetrics(m *Metrics) Option {
	return func(sl *Selector) {
		sl.metrics = m
	}
}

// WithSeed makes the draws reproducible; the same roster and seed always
// produce the same selections.
func WithSeed(seed uint64) Option {
	return func(sl *Selector) {
		sl.seed = seed
		sl.rnd = newRand(seed)
	}
}

// WithRand uses r for every draw. Seed reports 0 in that case.
func WithRand(r *rand.Rand) Option {
	return func(sl *Selector) {
		sl.seed = 0
		sl.rnd = r
	}
}

func New(opts ...Option) *Selector {
	sl := &Selector{
		index: map[string]int{},
	}
	for _, opt := range opts {
		opt(sl)
	}
	if sl.log == nil {
		sl.log = logger.Setup()
	}
	if sl.rnd == nil {
		sl.seed = newSeed()
		sl.rnd = newRand(sl.seed)
	}
	return sl
}

func newSeed() uint64 {
	var b [8]byte
	// crypto/rand.Read never returns an error
	_, _ = crand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Seed returns the seed of the random generator, 0 if one was supplied
// with WithRand.
func (sl *Selector) Seed() uint64 {
	return sl.seed
}

// AddParticipant appends name to the roster and puts weight tickets for
// it into the draw pool.
func (sl *Selector) AddParticipant(name string, weight int) error {
	if len(name) == 0 {
		return ErrEmptyName
	}
	if weight < 0 {
		return fmt.Errorf("%w: %q has %d", ErrNegativeWeight, name, weight)
	}
	if _, ok := sl.index[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	idx := len(sl.roster)
	sl.roster = append(sl.roster, Participant{Name: name, Weight: weight})
	sl.index[name] = idx
	sl.pool.add(idx, weight)

	sl.metrics.trackPool(len(sl.roster), sl.pool.total)

	return nil
}

// Run selects up to picks distinct participants, each draw weighted by the
// tickets left in the pool. Afterwards selected participants drop to zero
// tickets and everyone else gains one; that pass runs even when the pool
// ran out early or picks is zero. The pool is then rebuilt from the new
// weights so the selector is ready for another round.
func (sl *Selector) Run(picks int) (*Round, error) {
	if picks < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativePicks, picks)
	}

	start := time.Now()
	round := &Round{
		ID:        ulid.Make(),
		Requested: picks,
	}
	log := sl.log.With("run_id", round.ID.String())

	log.Debug("starting round",
		"picks", picks,
		"participants", len(sl.roster),
		"tickets", sl.pool.total,
	)

	for range picks {
		if sl.pool.empty() {
			round.Exhausted = true
			log.Info("draw pool exhausted",
				"requested", picks,
				"selected", len(round.Selected),
			)
			break
		}

		idx := sl.pool.owner(sl.rnd.IntN(sl.pool.total))
		p := &sl.roster[idx]
		tickets := sl.pool.remove(idx)
		p.State = Selected
		round.Selected = append(round.Selected, p.Name)

		log.Debug("participant selected",
			"name", p.Name,
			"tickets", tickets,
			"remaining", sl.pool.total,
		)
	}

	sl.settle()

	sl.metrics.trackRound(round, time.Since(start).Seconds())
	sl.metrics.trackPool(len(sl.roster), sl.pool.total)

	log.Info("round complete",
		"requested", picks,
		"selected", len(round.Selected),
		"exhausted", round.Exhausted,
	)

	return round, nil
}

// settle applies the reset/reward pass and rebuilds the pool
func (sl *Selector) settle() {
	sl.pool.clear()
	for i := range sl.roster {
		p := &sl.roster[i]
		if p.State == Selected {
			p.Weight = 0
		} else {
			p.Weight++
		}
		p.State = Pending
		sl.pool.add(i, p.Weight)
	}
}

// Roster returns a copy of the participants in the order they were added
func (sl *Selector) Roster() []Participant {
	return slices.Clone(sl.roster)
}

func (sl *Selector) Len() int {
	return len(sl.roster)
}

// Tickets returns how many tickets name currently holds in the pool
func (sl *Selector) Tickets(name string) int {
	idx, ok := sl.index[name]
	if !ok {
		return 0
	}
	return sl.pool.count(idx)
}

func (sl *Selector) TotalTickets() int {
	return sl.pool.total
}

// Chance is the probability that name is the first participant drawn
// from the current pool.
func (sl *Selector) Chance(name string) float64 {
	if sl.pool.total == 0 {
		return 0
	}
	return float64(sl.Tickets(name)) / float64(sl.pool.total)
}
