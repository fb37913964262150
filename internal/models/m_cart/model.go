package m_cart

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the carts table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a Spanner mutation that replaces the session's cart row.
// Every cart mutation is a full-row write; updated_at is stamped with the
// commit timestamp.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
			SessionID,
			SchemaVersion,
			Lines,
			LineCount,
			UpdatedAt,
		},
		[]interface{}{
			data.SessionID,
			data.SchemaVersion,
			data.Lines,
			data.LineCount,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation that removes the session's cart row.
func (m *Model) DeleteMut(sessionID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{sessionID})
}

// ReadColumns returns the columns needed to reconstruct a cart.
func ReadColumns() []string {
	return []string{SessionID, SchemaVersion, Lines}
}
