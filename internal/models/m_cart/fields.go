package m_cart

// Field name constants for the carts table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "carts"

	SessionID     = "session_id"
	SchemaVersion = "schema_version"
	Lines         = "lines"
	LineCount     = "line_count"
	UpdatedAt     = "updated_at"
)
