package orm

import (
	"context"
	"database/sql"

	"github.com/ragimov700/irs-test/clause"
	"github.com/ragimov700/irs-test/schema"
)

// Dialector adapts the statement-building core to one concrete engine. Any
// storage backend can plug in by implementing it; the core never inspects
// which engine is behind the interface.
type Dialector interface {
	Name() string
	Initialize(*DB) error
	// DataTypeOf returns the full column definition after the name,
	// including the primary key and auto increment markers when the field
	// is the key
	DataTypeOf(*schema.Field) string
	BindVarTo(writer clause.Writer, stmt *Statement, v interface{})
	QuoteTo(clause.Writer, string)
	Explain(sql string, vars ...interface{}) string
}

// ConnPool is the executor every built statement runs against. *sql.DB and
// *sql.Tx both satisfy it; generated keys come back through sql.Result.
type ConnPool interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
