package main

import (
	"github.com/MakeNowJust/heredoc"

	basecmd "go.ntppool.org/ticketdraw/cmd"
	"go.ntppool.org/ticketdraw/draw/cmd"
)

func main() {
	basecmd.Run(&cmd.DrawCmd{}, "ticketdraw",
		heredoc.Doc(`
			Weighted lottery over a roster file.

			Each line of the roster is "name|tickets". Selected participants
			drop to zero tickets, everyone else gains one for the next draw.
		`),
		cmd.Options()...,
	)
}
