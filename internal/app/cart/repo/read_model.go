package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/models/m_cart"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

// ReadModelImpl implements SessionReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewSessionReadModel creates a new SessionReadModel implementation.
func NewSessionReadModel(client *spanner.Client) contracts.SessionReadModel {
	return &ReadModelImpl{
		client: client,
	}
}

// ListSessions retrieves stored cart sessions, most recently updated first.
func (rm *ReadModelImpl) ListSessions(ctx context.Context, filter *contracts.SessionFilter) ([]*contracts.CartSessionDTO, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50 // Default page size
	}
	if limit > 100 {
		limit = 100 // Max page size
	}

	builder := query.From(m_cart.TableName).
		Select(m_cart.SessionID, m_cart.LineCount, m_cart.UpdatedAt).
		OrderBy(m_cart.UpdatedAt, query.Desc).
		Limit(limit)

	if !filter.UpdatedSince.IsZero() {
		builder = builder.Where(query.Gte(m_cart.UpdatedAt, filter.UpdatedSince))
	}

	iter := rm.client.Single().Query(ctx, builder.Build())
	defer iter.Stop()

	sessions := make([]*contracts.CartSessionDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list cart sessions: %w", err)
		}

		var dto contracts.CartSessionDTO
		var lineCount int64
		if err := row.Columns(&dto.SessionID, &lineCount, &dto.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse cart session row: %w", err)
		}
		dto.LineCount = int(lineCount)
		sessions = append(sessions, &dto)
	}

	return sessions, nil
}
