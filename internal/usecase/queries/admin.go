package queries

import "context"

type AdminQueries interface {
	ListClients(ctx context.Context, cursor *Cursor, limit int) ([]*ClientView, *Cursor, error)
}

type adminQueriesImpl struct {
	store MarketReadStore
}

func NewAdminQueries(store MarketReadStore) AdminQueries {
	return &adminQueriesImpl{store: store}
}

// ListClients returns client accounts newest first.
func (q *adminQueriesImpl) ListClients(ctx context.Context, cursor *Cursor, limit int) ([]*ClientView, *Cursor, error) {
	limit = ValidateLimit(limit)
	after, err := position(cursor)
	if err != nil {
		return nil, nil, err
	}
	rows, err := q.store.Clients(ctx, after, limit+1)
	if err != nil {
		return nil, nil, err
	}
	rows, next := paginate(rows, limit, func(c *ClientView) Keyset { return Keyset{CreatedAt: c.CreatedAt, ID: c.ID} })
	return rows, next, nil
}
