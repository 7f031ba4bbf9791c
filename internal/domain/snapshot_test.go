package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotClone_IndependentCopies(t *testing.T) {
	due := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	groupID := "g-1"
	parentID := "g-0"

	orig := Snapshot{
		Items: []Item{
			{ID: "i-1", GroupID: &groupID, Title: "Write report", DueDate: &due},
		},
		Groups: []Group{
			{ID: "g-1", Name: "Inbox", ParentID: &parentID, PositionVersion: 3},
		},
	}

	c := orig.Clone()

	// Mutating the clone must not leak into the original.
	c.Items[0].Title = "Changed"
	*c.Items[0].GroupID = "g-other"
	*c.Items[0].DueDate = due.AddDate(0, 1, 0)
	c.Groups[0].Name = "Renamed"
	*c.Groups[0].ParentID = "g-x"

	assert.Equal(t, "Write report", orig.Items[0].Title)
	assert.Equal(t, "g-1", *orig.Items[0].GroupID)
	assert.Equal(t, due, *orig.Items[0].DueDate)
	assert.Equal(t, "Inbox", orig.Groups[0].Name)
	assert.Equal(t, "g-0", *orig.Groups[0].ParentID)
}

func TestSnapshotClone_NilPointers(t *testing.T) {
	orig := Snapshot{
		Items:  []Item{{ID: "i-1", Title: "Loose task"}},
		Groups: []Group{{ID: "g-1", Name: "Root"}},
	}

	c := orig.Clone()

	assert.Nil(t, c.Items[0].GroupID)
	assert.Nil(t, c.Items[0].DueDate)
	assert.Nil(t, c.Groups[0].ParentID)
}

func TestItemChange_Union(t *testing.T) {
	var ch RemoteChange = ItemChange{Op: ChangeDelete, Item: Item{ID: "i-9"}}

	assert.Equal(t, "i-9", ch.EntityID())
	assert.Equal(t, ChangeDelete, ch.Operation())
}
