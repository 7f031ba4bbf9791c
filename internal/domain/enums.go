package domain

type ItemStatus string

const (
	ItemTodo  ItemStatus = "todo"
	ItemDoing ItemStatus = "doing"
	ItemDone  ItemStatus = "done"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ChangeOp is the operation carried by a remote change notification.
type ChangeOp string

const (
	ChangeCreate ChangeOp = "create"
	ChangeUpdate ChangeOp = "update"
	ChangeDelete ChangeOp = "delete"
)

// LockKind names one of the in-progress-gesture flags that suppress
// remote change application while set.
type LockKind string

const (
	LockDrag   LockKind = "drag"
	LockResize LockKind = "resize"
	LockSettle LockKind = "settle"
	LockBulk   LockKind = "bulk"
)
