package orm

import (
	"fmt"
	"strings"

	"github.com/ragimov700/irs-test/clause"
	"github.com/ragimov700/irs-test/schema"
)

// AutoCreate issues CREATE TABLE IF NOT EXISTS for each model, mirroring the
// declared schema. It only provisions missing tables; altering existing ones
// is left to migration tooling outside this layer.
func (db *DB) AutoCreate(models ...interface{}) error {
	for _, model := range models {
		tx := db.getInstance()
		if err := tx.Statement.Parse(model); err != nil {
			return err
		}

		stmt := tx.Statement
		stmt.WriteString("CREATE TABLE IF NOT EXISTS ")
		stmt.WriteQuoted(clause.Table{Name: clause.CurrentTable})
		stmt.WriteString(" (")

		for idx, field := range stmt.Schema.Fields {
			if idx > 0 {
				stmt.WriteString(", ")
			}
			stmt.WriteQuoted(clause.Column{Name: field.DBName})
			stmt.WriteByte(' ')
			stmt.WriteString(db.Dialector.DataTypeOf(field))

			if !field.PrimaryKey {
				if field.NotNull {
					stmt.WriteString(" NOT NULL")
				}
				if field.HasDefaultValue && field.DefaultValue != "" {
					stmt.WriteString(" DEFAULT ")
					stmt.WriteString(defaultValueLiteral(field))
				}
			}
		}
		stmt.WriteByte(')')

		if tx.DryRun {
			continue
		}

		if _, err := tx.exec(); err != nil {
			return err
		}
	}
	return nil
}

// defaultValueLiteral renders a field default as a DDL literal; bind vars
// are not allowed in column definitions.
func defaultValueLiteral(field *schema.Field) string {
	switch field.DataType {
	case schema.String, schema.UUID, schema.Time:
		return "'" + strings.Replace(strings.Trim(field.DefaultValue, "'"), "'", "''", -1) + "'"
	default:
		if field.DefaultValueInterface != nil {
			return fmt.Sprint(field.DefaultValueInterface)
		}
		return field.DefaultValue
	}
}
