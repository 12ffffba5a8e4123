package selector

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the prometheus metrics for the selector
type Metrics struct {
	Rounds        prometheus.Counter
	Picks         prometheus.Counter
	Exhausted     prometheus.Counter
	Selections    *prometheus.CounterVec
	Participants  prometheus.Gauge
	PoolTickets   prometheus.Gauge
	RoundDuration prometheus.Histogram
}

// NewMetrics creates and registers the selector metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Rounds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ticketdraw_rounds_total",
				Help: "Total number of selection rounds run",
			},
		),
		Picks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ticketdraw_picks_total",
				Help: "Total number of participants selected",
			},
		),
		Exhausted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ticketdraw_pool_exhausted_total",
				Help: "Rounds that ran out of tickets before all picks were made",
			},
		),
		Selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ticketdraw_selections_total",
				Help: "Number of times each participant has been selected",
			},
			[]string{"participant"},
		),
		Participants: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ticketdraw_participants",
				Help: "Number of participants in the roster",
			},
		),
		PoolTickets: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ticketdraw_pool_tickets",
				Help: "Tickets in the draw pool for the next round",
			},
		),
		RoundDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ticketdraw_round_duration_seconds",
				Help:    "Time spent running a selection round",
				Buckets: prometheus.ExponentialBuckets(0.00001, 10, 6),
			},
		),
	}

	reg.MustRegister(
		m.Rounds,
		m.Picks,
		m.Exhausted,
		m.Selections,
		m.Participants,
		m.PoolTickets,
		m.RoundDuration,
	)

	return m
}

// The tracking helpers accept a nil receiver so the selector can run
// without metrics.

func (m *Metrics) trackPool(participants, tickets int) {
	if m == nil {
		return
	}
	m.Participants.Set(float64(participants))
	m.PoolTickets.Set(float64(tickets))
}

func (m *Metrics) trackRound(round *Round, seconds float64) {
	if m == nil {
		return
	}
	m.Rounds.Inc()
	m.Picks.Add(float64(len(round.Selected)))
	if round.Exhausted {
		m.Exhausted.Inc()
	}
	for _, name := range round.Selected {
		m.Selections.WithLabelValues(name).Inc()
	}
	m.RoundDuration.Observe(seconds)
}
