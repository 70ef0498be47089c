package inspector

import "database/sql"

// ColumnInfo is one row of PRAGMA table_info. Only Name and DeclaredType
// appear in the report; the rest is read so the scan matches the catalog.
type ColumnInfo struct {
	Position     int
	Name         string
	DeclaredType string
	NotNull      bool
	Default      sql.NullString
	PrimaryKey   int
}
