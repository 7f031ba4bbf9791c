package domain

// RemoteChange is a change notification from another session, delivered by
// the backing-store transport. It is a closed union over
// {create, update, delete} × {item, group, collection}; consumers switch
// exhaustively on the concrete type.
type RemoteChange interface {
	EntityID() string
	Operation() ChangeOp
}

// ItemChange carries a full item payload for create/update, or just the
// identifier of the removed item for delete.
type ItemChange struct {
	Op   ChangeOp
	Item Item
}

func (c ItemChange) EntityID() string    { return c.Item.ID }
func (c ItemChange) Operation() ChangeOp { return c.Op }

// GroupChange carries a full group payload for create/update, or just the
// identifier of the removed group for delete.
type GroupChange struct {
	Op    ChangeOp
	Group Group
}

func (c GroupChange) EntityID() string    { return c.Group.ID }
func (c GroupChange) Operation() ChangeOp { return c.Op }

// CollectionChange signals that an owning collection changed shape remotely.
// There is no local per-entity state to resolve it against; accepted events
// only trigger a derived-cache refresh.
type CollectionChange struct {
	Op ChangeOp
	ID string
}

func (c CollectionChange) EntityID() string    { return c.ID }
func (c CollectionChange) Operation() ChangeOp { return c.Op }
