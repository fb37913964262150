package list_sessions

import (
	"context"
	"time"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
)

// Request contains filtering parameters for the session listing.
type Request struct {
	UpdatedSince time.Time
	Limit        int64
}

// Query handles the list cart sessions query for the ops surface.
type Query struct {
	readModel contracts.SessionReadModel
}

// NewQuery creates a new list sessions query.
func NewQuery(readModel contracts.SessionReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute retrieves recently updated cart sessions.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.CartSessionDTO, error) {
	filter := &contracts.SessionFilter{
		UpdatedSince: req.UpdatedSince,
		Limit:        req.Limit,
	}
	return q.readModel.ListSessions(ctx, filter)
}
