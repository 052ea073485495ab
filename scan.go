package orm

import (
	"database/sql"
	"reflect"

	"github.com/ragimov700/irs-test/schema"
)

// Scan materializes rows into the statement destination. Each row is zipped
// against the schema by column name and every value runs through its field's
// conversion, so the instances hold in-memory values, not raw driver ones.
// Materialized instances are marked persisted.
func Scan(rows *sql.Rows, db *DB) {
	var (
		stmt       = db.Statement
		s          = stmt.Schema
		columns, _ = rows.Columns()
		fields     = make([]*schema.Field, len(columns))
	)

	db.RowsAffected = 0

	for idx, column := range columns {
		// columns with no matching field are scanned and dropped
		fields[idx] = s.LookUpField(column)
	}

	scanRow := func(into reflect.Value) {
		values := make([]interface{}, len(columns))
		for idx := range values {
			values[idx] = new(interface{})
		}

		if err := rows.Scan(values...); err != nil {
			db.AddError(err)
			return
		}

		for idx, field := range fields {
			if field == nil {
				continue
			}
			db.AddError(field.Set(into, *(values[idx].(*interface{}))))
		}
	}

	destValue := reflect.ValueOf(stmt.Dest)
	if destValue.Kind() != reflect.Ptr || destValue.IsNil() {
		db.AddError(ErrModelValueRequired)
		return
	}
	destValue = destValue.Elem()

	switch destValue.Kind() {
	case reflect.Slice:
		var (
			elemType, elemIsPtr = destElem(destValue)
			sliceValue          = reflect.MakeSlice(destValue.Type(), 0, 8)
		)

		for rows.Next() {
			elem := reflect.New(elemType)
			scanRow(elem)
			markPersisted(elem.Interface(), true)

			if elemIsPtr {
				sliceValue = reflect.Append(sliceValue, elem)
			} else {
				sliceValue = reflect.Append(sliceValue, elem.Elem())
			}
			db.RowsAffected++
		}
		destValue.Set(sliceValue)
	case reflect.Struct:
		if rows.Next() {
			scanRow(destValue.Addr())
			markPersisted(stmt.Dest, true)
			db.RowsAffected = 1
		} else {
			db.AddError(ErrRecordNotFound)
		}
	default:
		db.AddError(ErrModelValueRequired)
	}

	db.AddError(rows.Err())
}
