package domain

import "time"

// Group is a spatial container on the board. Groups may nest via ParentID
// and own items via Item.GroupID.
type Group struct {
	ID       string
	Name     string
	ParentID *string

	// Geometry
	X float64
	Y float64
	W float64
	H float64

	// PositionVersion increments on every position-bearing write and is
	// the primary key for last-writer-wins resolution; UpdatedAt breaks
	// ties between equal versions.
	PositionVersion int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns an independent copy with no shared pointers.
func (g Group) Clone() Group {
	c := g
	if g.ParentID != nil {
		p := *g.ParentID
		c.ParentID = &p
	}
	return c
}
