package m_cart

import (
	"time"
)

// Data represents the database model for the carts table.
// Lines holds the session's full productId -> line mapping as serialized
// JSON; the row is the single durable key for the cart.
type Data struct {
	SessionID     string    `spanner:"session_id"`
	SchemaVersion int64     `spanner:"schema_version"`
	Lines         string    `spanner:"lines"`
	LineCount     int64     `spanner:"line_count"`
	UpdatedAt     time.Time `spanner:"updated_at"`
}
