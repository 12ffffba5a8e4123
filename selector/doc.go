// Package selector implements the ticket-weighted lottery used by ticketdraw.
//
// Every participant holds a number of tickets (their weight). A selection
// round draws tickets uniformly at random, so a participant's chance of
// being drawn is proportional to their ticket count. Once drawn, a
// participant's remaining tickets leave the pool; nobody is selected twice
// in a round.
//
// # Weight accrual
//
// After a round, every selected participant is reset to zero tickets and
// every other participant gains one. Participants who keep missing out
// become steadily more likely to be picked in later rounds. A participant
// with zero tickets cannot be drawn, but still gains a ticket.
//
// # Usage
//
//	sel := selector.New(selector.WithLogger(log))
//	for _, r := range records {
//	    if err := sel.AddParticipant(r.Name, r.Weight); err != nil {
//	        return err
//	    }
//	}
//	round, err := sel.Run(3)
package selector
