package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/models/m_cart"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// CartRepo implements CartStorage for Spanner. Each session's cart is a
// single row; every save rewrites the full line mapping.
type CartRepo struct {
	client    *spanner.Client
	model     *m_cart.Model
	committer *committer.Committer
	logger    *zap.Logger
}

// NewCartRepo creates a new CartRepo.
func NewCartRepo(client *spanner.Client, comm *committer.Committer, logger *zap.Logger) contracts.CartStorage {
	return &CartRepo{
		client:    client,
		model:     m_cart.NewModel(),
		committer: comm,
		logger:    logger,
	}
}

// Load reads the persisted cart for a session. A missing row, an unknown
// schema version, or corrupt line JSON all yield an empty cart; only a
// backend failure is surfaced, wrapped in ErrStorageUnavailable.
func (r *CartRepo) Load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, domain.ErrEmptySessionID
	}

	row, err := r.client.Single().ReadRow(ctx, m_cart.TableName, spanner.Key{sessionID}, m_cart.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.NewCart(sessionID), nil
		}
		return nil, fmt.Errorf("%w: read cart %s: %v", domain.ErrStorageUnavailable, sessionID, err)
	}

	var data m_cart.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("%w: parse cart row %s: %v", domain.ErrStorageUnavailable, sessionID, err)
	}

	if data.SchemaVersion != domain.SchemaVersion {
		r.logger.Warn("stored cart has unknown schema version, treating as empty",
			zap.String("session_id", sessionID),
			zap.Int64("schema_version", data.SchemaVersion))
		return domain.NewCart(sessionID), nil
	}

	var lines map[string]domain.Line
	if err := json.Unmarshal([]byte(data.Lines), &lines); err != nil {
		r.logger.Warn("stored cart is corrupt, treating as empty",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return domain.NewCart(sessionID), nil
	}

	return domain.ReconstructCart(sessionID, lines), nil
}

// Save persists the cart's full line mapping as one upsert mutation.
func (r *CartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := r.domainToData(cart)
	if err != nil {
		return err
	}

	plan := committer.NewPlan()
	plan.Add(r.model.UpsertMut(data))

	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("%w: save cart %s: %v", domain.ErrStorageUnavailable, cart.SessionID(), err)
	}
	return nil
}

// Delete removes the session's cart row.
func (r *CartRepo) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrEmptySessionID
	}

	plan := committer.NewPlan()
	plan.Add(r.model.DeleteMut(sessionID))

	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("%w: delete cart %s: %v", domain.ErrStorageUnavailable, sessionID, err)
	}
	return nil
}

// domainToData converts the aggregate to its storage row.
func (r *CartRepo) domainToData(cart *domain.Cart) (*m_cart.Data, error) {
	if cart.SessionID() == "" {
		return nil, domain.ErrEmptySessionID
	}

	lines, err := json.Marshal(cart.LineMap())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize cart lines: %w", err)
	}

	return &m_cart.Data{
		SessionID:     cart.SessionID(),
		SchemaVersion: domain.SchemaVersion,
		Lines:         string(lines),
		LineCount:     int64(cart.Len()),
	}, nil
}
