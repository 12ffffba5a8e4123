package selector

// drawPool holds the tickets of the current round as a count per roster
// index. A ticket number in [0, total) is mapped back to its owner by
// walking the cumulative counts, so the order tickets were added in does
// not matter.
type drawPool struct {
	tickets []int
	total   int
}

func (p *drawPool) add(idx, n int) {
	for len(p.tickets) <= idx {
		p.tickets = append(p.tickets, 0)
	}
	p.tickets[idx] += n
	p.total += n
}

// remove drops every ticket held by idx and returns how many there were
func (p *drawPool) remove(idx int) int {
	if idx >= len(p.tickets) {
		return 0
	}
	n := p.tickets[idx]
	p.tickets[idx] = 0
	p.total -= n
	return n
}

func (p *drawPool) count(idx int) int {
	if idx >= len(p.tickets) {
		return 0
	}
	return p.tickets[idx]
}

func (p *drawPool) empty() bool {
	return p.total == 0
}

// owner returns the roster index holding the given ticket number.
// ticket must be in [0, total).
func (p *drawPool) owner(ticket int) int {
	for idx, n := range p.tickets {
		if ticket < n {
			return idx
		}
		ticket -= n
	}
	panic("selector: ticket number outside of draw pool")
}

func (p *drawPool) clear() {
	p.tickets = p.tickets[:0]
	p.total = 0
}
