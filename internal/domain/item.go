package domain

import "time"

// Item is a task on the board. Items carry no version counter; conflict
// handling for them relies on pending-write suppression and the startup
// grace window alone.
type Item struct {
	ID      string
	GroupID *string
	Title   string
	Status  ItemStatus

	Priority Priority
	DueDate  *time.Time

	// Board position
	X float64
	Y float64

	Deleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns an independent copy with no shared pointers.
func (i Item) Clone() Item {
	c := i
	if i.GroupID != nil {
		g := *i.GroupID
		c.GroupID = &g
	}
	if i.DueDate != nil {
		d := *i.DueDate
		c.DueDate = &d
	}
	return c
}
