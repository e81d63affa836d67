package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodTicket is one resolved ticket in a period snapshot, pre-joined with
// the project fields that drive its classification and pre-classified so the
// allocation and audit passes read a single consistent answer.
type PeriodTicket struct {
	Ticket        Ticket
	Project       Project
	Capitalizable bool
}

// PeriodSnapshot is everything the allocator needs for one period, loaded
// once per run: active developers, the global fringe default, and every
// ticket resolved inside the period window. Both the allocation pass and the
// audit-trail passes compute from this snapshot, so they cannot diverge.
type PeriodSnapshot struct {
	Month             int
	Year              int
	From              time.Time
	To                time.Time
	Developers        []Developer
	Tickets           []PeriodTicket
	DefaultFringeRate decimal.Decimal
}

// TicketsByDeveloper groups the snapshot's tickets by assignee.
func (s PeriodSnapshot) TicketsByDeveloper() map[string][]PeriodTicket {
	byDev := make(map[string][]PeriodTicket)
	for _, pt := range s.Tickets {
		byDev[pt.Ticket.AssigneeID] = append(byDev[pt.Ticket.AssigneeID], pt)
	}
	return byDev
}
