// Package sqlite is the SQLite dialect, backed by mattn/go-sqlite3.
package sqlite

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	orm "github.com/ragimov700/irs-test"
	"github.com/ragimov700/irs-test/clause"
	"github.com/ragimov700/irs-test/logger"
	"github.com/ragimov700/irs-test/schema"
)

// DriverName the registered database/sql driver
const DriverName = "sqlite3"

// Dialector SQLite dialector
type Dialector struct {
	DSN string
	// Conn overrides the connection opened from DSN, mainly for tests
	Conn orm.ConnPool
}

// Open open a dialector for the given data source name
func Open(dsn string) orm.Dialector {
	return &Dialector{DSN: dsn}
}

// Name dialector name
func (dialector *Dialector) Name() string {
	return "sqlite"
}

// Initialize initialize db with the sqlite connection
func (dialector *Dialector) Initialize(db *orm.DB) (err error) {
	if dialector.Conn != nil {
		db.ConnPool = dialector.Conn
	} else {
		db.ConnPool, err = sql.Open(DriverName, dialector.DSN)
	}
	return
}

// BindVarTo sqlite uses ? placeholders
func (dialector *Dialector) BindVarTo(writer clause.Writer, stmt *orm.Statement, v interface{}) {
	writer.WriteByte('?')
}

// QuoteTo sqlite quotes identifiers with backticks
func (dialector *Dialector) QuoteTo(writer clause.Writer, str string) {
	writer.WriteByte('`')
	writer.WriteString(str)
	writer.WriteByte('`')
}

// Explain interpolate vars into sql for logging
func (dialector *Dialector) Explain(sql string, vars ...interface{}) string {
	return logger.ExplainSQL(sql, `'`, vars...)
}

// DataTypeOf returns the sqlite column definition for a field. The primary
// key marker rides along so an auto-increment key gets sqlite's required
// INTEGER PRIMARY KEY form.
func (dialector *Dialector) DataTypeOf(field *schema.Field) string {
	var sqlType string

	switch field.DataType {
	case schema.Bool:
		sqlType = "NUMERIC"
	case schema.Int, schema.Uint:
		sqlType = "INTEGER"
	case schema.Float:
		sqlType = "REAL"
	case schema.String, schema.UUID:
		sqlType = "TEXT"
	case schema.Time:
		sqlType = "DATETIME"
	case schema.Bytes:
		sqlType = "BLOB"
	default:
		sqlType = string(field.DataType)
	}

	if field.PrimaryKey {
		sqlType += " PRIMARY KEY"
		if field.AutoIncrement {
			sqlType += " AUTOINCREMENT"
		}
	}

	return sqlType
}
