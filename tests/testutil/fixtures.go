package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
	"github.com/light-bringer/storefront-service/internal/models/m_cart"
)

// NewSessionID mints a session identifier for tests.
func NewSessionID() string {
	return uuid.New().String()
}

// SeedCartRow writes a cart row directly to Spanner, bypassing the repo.
func SeedCartRow(t *testing.T, client *spanner.Client, sessionID string, lines map[string]domain.Line) {
	t.Helper()

	ctx := context.Background()

	payload, err := json.Marshal(lines)
	require.NoError(t, err, "failed to marshal cart lines")

	model := m_cart.NewModel()
	mutation := model.UpsertMut(&m_cart.Data{
		SessionID:     sessionID,
		SchemaVersion: domain.SchemaVersion,
		Lines:         string(payload),
		LineCount:     int64(len(lines)),
	})

	_, err = client.Apply(ctx, []*spanner.Mutation{mutation})
	require.NoError(t, err, "failed to seed cart row")
}

// TestLine builds a cart line with a numeric price.
func TestLine(productID string, price float64, quantity int64) domain.Line {
	return domain.Line{
		ProductID: productID,
		Price:     pricing.FromNumber(price),
		Image:     "https://huitian.serv00.net/https-img.test/" + productID + ".jpg",
		Quantity:  quantity,
	}
}

// GetCartRow reads a raw cart row for verification.
func GetCartRow(t *testing.T, client *spanner.Client, sessionID string) *m_cart.Data {
	t.Helper()

	ctx := context.Background()
	row, err := client.Single().ReadRow(ctx, m_cart.TableName, spanner.Key{sessionID}, []string{
		m_cart.SessionID,
		m_cart.SchemaVersion,
		m_cart.Lines,
		m_cart.LineCount,
		m_cart.UpdatedAt,
	})
	require.NoError(t, err, "failed to get cart row")

	var data m_cart.Data
	err = row.ToStruct(&data)
	require.NoError(t, err, "failed to parse cart row")

	return &data
}
