package domain

// Summary holds ticket counts per status.
type Summary struct {
	New         int
	Assigned    int
	Resolved    int
	Approved    int
	Disapproved int
	Closed      int
}

// Add counts one ticket in the bucket for status. Unknown statuses are ignored.
func (s *Summary) Add(status TicketStatus) {
	switch status {
	case TicketStatusNew:
		s.New++
	case TicketStatusAssigned:
		s.Assigned++
	case TicketStatusResolved:
		s.Resolved++
	case TicketStatusApproved:
		s.Approved++
	case TicketStatusDisapproved:
		s.Disapproved++
	case TicketStatusClosed:
		s.Closed++
	}
}
