package domain

// Snapshot is a deep, independent copy of both collections at one instant.
// A snapshot is internally consistent except that an Item.GroupID may dangle;
// that is tolerated because groups are restored before items on undo/redo.
type Snapshot struct {
	Items  []Item
	Groups []Group
}

// Clone copies the snapshot so that no pointer is shared with the original.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		Items:  make([]Item, len(s.Items)),
		Groups: make([]Group, len(s.Groups)),
	}
	for i, it := range s.Items {
		c.Items[i] = it.Clone()
	}
	for i, g := range s.Groups {
		c.Groups[i] = g.Clone()
	}
	return c
}
