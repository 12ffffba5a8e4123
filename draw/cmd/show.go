package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"go.ntppool.org/common/logger"

	"go.ntppool.org/ticketdraw/roster"
	"go.ntppool.org/ticketdraw/selector"
)

type showCmd struct {
	RosterFlags `embed:""`

	File string `arg:"" type:"existingfile" help:"Roster file"`

	term console `kong:"-"`
}

func (cmd *showCmd) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "show.Run")
	defer span.End()

	sl := selector.New(selector.WithLogger(logger.FromContext(ctx)))
	store := &roster.Store{Path: cmd.File, Delimiter: cmd.delimiter()}
	if _, err := store.Load(ctx, sl); err != nil {
		return err
	}

	rows := lo.Map(sl.Roster(), func(p selector.Participant, _ int) []string {
		return []string{
			p.Name,
			strconv.Itoa(p.Weight),
			fmt.Sprintf("%.1f%%", sl.Chance(p.Name)*100),
		}
	})

	table := tablewriter.NewWriter(cmd.term.stdout())
	table.SetHeader([]string{"Name", "Tickets", "Chance"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetFooter([]string{
		fmt.Sprintf("%d participants", sl.Len()),
		strconv.Itoa(sl.TotalTickets()),
		"",
	})
	table.AppendBulk(rows)
	table.Render()

	return nil
}
