package cmd

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"go.ntppool.org/common/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"go.ntppool.org/ticketdraw/roster"
	"go.ntppool.org/ticketdraw/selector"
	"go.ntppool.org/ticketdraw/version"
)

type drawCmd struct {
	RosterFlags `embed:""`

	File  string  `arg:"" optional:"" type:"path" help:"Roster file, asked for when omitted"`
	Picks *int    `short:"n" help:"Number of participants to select, asked for when omitted"`
	Seed  *uint64 `help:"Seed the random generator for a reproducible draw"`

	DryRun      bool   `help:"Show the selection without updating the roster file"`
	KeepOnError bool   `help:"Leave the roster file alone when it could not be read completely"`
	Retries     uint   `default:"3" help:"Attempts at writing the roster file"`
	History     string `type:"path" help:"Append a JSON line describing the round to this file"`
	MetricsFile string `type:"path" help:"Write metrics in prometheus text format to this file"`

	term console `kong:"-"`
}

func (cmd *drawCmd) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "draw.Run")
	defer span.End()

	out := cmd.term.stdout()
	ask := newPrompter(cmd.term.stdin(), out)

	path := cmd.File
	if len(path) == 0 {
		var err error
		path, err = ask.line("Input file name")
		if err != nil {
			return err
		}
	}
	span.SetAttributes(attribute.String("roster.path", path))

	reg := prometheus.NewRegistry()
	version.RegisterMetric("ticketdraw", reg)

	opts := []selector.Option{
		selector.WithLogger(log),
		selector.WithMetrics(selector.NewMetrics(reg)),
	}
	if cmd.Seed != nil {
		opts = append(opts, selector.WithSeed(*cmd.Seed))
	}
	sl := selector.New(opts...)

	store := &roster.Store{
		Path:      path,
		Delimiter: cmd.delimiter(),
		Retries:   cmd.Retries,
	}

	_, loadErr := store.Load(ctx, sl)
	if loadErr != nil {
		fmt.Fprintln(out, "Error while reading the file")
		fmt.Fprintln(out, loadErr)
	}

	picks, err := cmd.picks(ask)
	if err != nil {
		return err
	}

	round, err := sl.Run(picks)
	if err != nil {
		return err
	}
	span.SetAttributes(
		attribute.String("draw.run_id", round.ID.String()),
		attribute.Int("draw.selected", len(round.Selected)),
	)

	for _, name := range round.Selected {
		fmt.Fprintf(out, "%s has been selected!\n", name)
	}
	if round.Exhausted {
		fmt.Fprintln(out, "No more people can be selected from the draw")
	}

	log.InfoContext(ctx, "draw complete",
		"run_id", round.ID.String(),
		"seed", sl.Seed(),
		"path", path,
		"selected", round.Selected,
	)

	if len(cmd.History) > 0 {
		if err := appendHistory(cmd.History, path, sl.Seed(), round); err != nil {
			log.ErrorContext(ctx, "could not write history", "path", cmd.History, "err", err)
			fmt.Fprintln(out, "Error while writing the history file")
			fmt.Fprintln(out, err)
		}
	}

	cmd.save(ctx, store, sl, loadErr)

	if len(cmd.MetricsFile) > 0 {
		if err := prometheus.WriteToTextfile(cmd.MetricsFile, reg); err != nil {
			log.ErrorContext(ctx, "could not write metrics", "path", cmd.MetricsFile, "err", err)
		}
	}

	return nil
}

func (cmd *drawCmd) save(ctx context.Context, store *roster.Store, sl *selector.Selector, loadErr error) {
	out := cmd.term.stdout()
	log := logger.FromContext(ctx)

	switch {
	case cmd.DryRun:
		log.InfoContext(ctx, "dry run, roster file not updated", "path", store.Path)
		return
	case loadErr != nil && cmd.KeepOnError:
		fmt.Fprintln(out, "Roster file left unchanged")
		return
	}

	err := store.Save(ctx, records(sl.Roster()))
	if err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
		fmt.Fprintln(out, "Error while writing to the file")
		fmt.Fprintln(out, err)
	}
}

func (cmd *drawCmd) picks(ask *prompter) (int, error) {
	if cmd.Picks != nil {
		if *cmd.Picks < 0 {
			return 0, fmt.Errorf("%w: %d", selector.ErrNegativePicks, *cmd.Picks)
		}
		return *cmd.Picks, nil
	}
	return ask.count("How many people would you like to pick?")
}

func records(participants []selector.Participant) []roster.Record {
	return lo.Map(participants, func(p selector.Participant, _ int) roster.Record {
		return roster.Record{Name: p.Name, Weight: p.Weight}
	})
}
