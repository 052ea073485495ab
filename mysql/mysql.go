// Package mysql is the MySQL dialect, backed by go-sql-driver/mysql.
package mysql

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	orm "github.com/ragimov700/irs-test"
	"github.com/ragimov700/irs-test/clause"
	"github.com/ragimov700/irs-test/logger"
	"github.com/ragimov700/irs-test/schema"
)

// DriverName the registered database/sql driver
const DriverName = "mysql"

// Dialector MySQL dialector
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
	return "mysql"
}

// Initialize initialize db with the mysql connection
func (dialector *Dialector) Initialize(db *orm.DB) (err error) {
	if dialector.Conn != nil {
		db.ConnPool = dialector.Conn
	} else {
		db.ConnPool, err = sql.Open(DriverName, dialector.DSN)
	}
	return
}

// BindVarTo mysql uses ? placeholders
func (dialector *Dialector) BindVarTo(writer clause.Writer, stmt *orm.Statement, v interface{}) {
	writer.WriteByte('?')
}

// QuoteTo mysql quotes identifiers with backticks
func (dialector *Dialector) QuoteTo(writer clause.Writer, str string) {
	writer.WriteByte('`')
	writer.WriteString(str)
	writer.WriteByte('`')
}

// Explain interpolate vars into sql for logging
func (dialector *Dialector) Explain(sql string, vars ...interface{}) string {
	return logger.ExplainSQL(sql, `'`, vars...)
}

// DataTypeOf returns the mysql column definition for a field, including the
// key markers for the primary key.
func (dialector *Dialector) DataTypeOf(field *schema.Field) string {
	var sqlType string

	switch field.DataType {
	case schema.Bool:
		sqlType = "BOOLEAN"
	case schema.Int, schema.Uint:
		sqlType = "BIGINT"
	case schema.Float:
		sqlType = "DOUBLE"
	case schema.String:
		if field.PrimaryKey {
			// indexable prefix length for utf8mb4
			sqlType = "VARCHAR(191)"
		} else {
			sqlType = "LONGTEXT"
		}
	case schema.UUID:
		sqlType = "VARCHAR(36)"
	case schema.Time:
		sqlType = "DATETIME(3)"
	case schema.Bytes:
		sqlType = "LONGBLOB"
	default:
		sqlType = string(field.DataType)
	}

	if field.PrimaryKey {
		if field.AutoIncrement {
			sqlType += " AUTO_INCREMENT"
		}
		sqlType += " PRIMARY KEY"
	}

	return sqlType
}
