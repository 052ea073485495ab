package orm

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/ragimov700/irs-test/clause"
)

// Save persists the instance: INSERT when it has never been stored, UPDATE
// keyed by the primary key otherwise. The decision comes from the instance's
// own state, storage is not consulted.
func (db *DB) Save(value interface{}) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.Dest = value

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		tx.AddError(ErrModelValueRequired)
		return
	}

	if err := tx.Statement.Parse(value); err != nil {
		tx.AddError(err)
		return
	}

	if tx.isPersisted(value, rv, tx.Statement.Schema) {
		return tx.update(value, rv)
	}
	return tx.create(value, rv)
}

// Create forces an INSERT regardless of the instance's state.
func (db *DB) Create(value interface{}) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.Dest = value

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		tx.AddError(ErrModelValueRequired)
		return
	}

	if err := tx.Statement.Parse(value); err != nil {
		tx.AddError(err)
		return
	}

	return tx.create(value, rv)
}

func (tx *DB) create(value interface{}, rv reflect.Value) *DB {
	var (
		stmt    = tx.Statement
		s       = stmt.Schema
		columns []clause.Column
		values  []interface{}
		autoKey bool
	)

	for _, field := range s.Fields {
		if field == s.PrimaryField && field.AutoIncrement {
			if _, zero := field.ValueOf(rv); zero {
				// let the backend generate the key
				autoKey = true
				continue
			}
		}

		if field.AutoCreateTime || field.AutoUpdateTime {
			if _, zero := field.ValueOf(rv); zero {
				if err := field.Set(rv, tx.NowFunc()); err != nil {
					tx.AddError(err)
					return tx
				}
			}
		}

		v, err := field.ToStorage(rv)
		if err != nil {
			tx.AddError(err)
			return tx
		}
		columns = append(columns, clause.Column{Name: field.DBName})
		values = append(values, v)
	}

	stmt.AddClauseIfNotExists(clause.Insert{})
	stmt.AddClause(clause.Values{Columns: columns, Values: [][]interface{}{values}})
	stmt.Build("INSERT", "VALUES")

	if tx.DryRun {
		return tx
	}

	result, err := tx.exec()
	if err != nil {
		tx.AddError(err)
		return tx
	}

	tx.RowsAffected, _ = result.RowsAffected()

	if autoKey {
		if id, err := result.LastInsertId(); err == nil {
			tx.AddError(s.PrimaryField.Set(rv, id))
		}
	}

	if tx.Error == nil {
		markPersisted(value, true)
	}
	return tx
}

func (tx *DB) update(value interface{}, rv reflect.Value) *DB {
	var (
		stmt        = tx.Statement
		s           = stmt.Schema
		assignments clause.Set
	)

	pkValue, zero := s.PrimaryField.ValueOf(rv)
	if zero {
		tx.AddError(fmt.Errorf("%w: %s has no primary key value", ErrMissingWhereClause, s.Name))
		return tx
	}

	pk, err := s.PrimaryField.StorageValue(pkValue)
	if err != nil {
		tx.AddError(err)
		return tx
	}

	for _, field := range s.Fields {
		if field == s.PrimaryField {
			continue
		}

		if field.AutoUpdateTime {
			if err := field.Set(rv, tx.NowFunc()); err != nil {
				tx.AddError(err)
				return tx
			}
		}

		v, err := field.ToStorage(rv)
		if err != nil {
			tx.AddError(err)
			return tx
		}
		assignments = append(assignments, clause.Assignment{Column: clause.Column{Name: field.DBName}, Value: v})
	}

	stmt.AddClauseIfNotExists(clause.Update{})
	stmt.AddClause(assignments)
	stmt.AddClause(clause.Where{Exprs: []clause.Expression{
		clause.Eq{Column: clause.Column{Name: s.PrimaryField.DBName}, Value: pk},
	}})
	stmt.Build("UPDATE", "SET", "WHERE")

	if tx.DryRun {
		return tx
	}

	result, err := tx.exec()
	if err != nil {
		tx.AddError(err)
		return tx
	}

	tx.RowsAffected, _ = result.RowsAffected()
	markPersisted(value, true)
	return tx
}

// Delete removes the row keyed by the instance's primary key and resets the
// instance to unpersisted.
func (db *DB) Delete(value interface{}) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.Dest = value

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		tx.AddError(ErrModelValueRequired)
		return
	}

	if err := tx.Statement.Parse(value); err != nil {
		tx.AddError(err)
		return
	}

	stmt, s := tx.Statement, tx.Statement.Schema

	pkValue, zero := s.PrimaryField.ValueOf(rv)
	if zero {
		tx.AddError(fmt.Errorf("%w: %s has no primary key value", ErrMissingWhereClause, s.Name))
		return
	}

	pk, err := s.PrimaryField.StorageValue(pkValue)
	if err != nil {
		tx.AddError(err)
		return
	}

	stmt.AddClauseIfNotExists(clause.Delete{})
	stmt.AddClauseIfNotExists(clause.From{})
	stmt.AddClause(clause.Where{Exprs: []clause.Expression{
		clause.Eq{Column: clause.Column{Name: s.PrimaryField.DBName}, Value: pk},
	}})
	stmt.Build("DELETE", "FROM", "WHERE")

	if tx.DryRun {
		return
	}

	result, err := tx.exec()
	if err != nil {
		tx.AddError(err)
		return
	}

	tx.RowsAffected, _ = result.RowsAffected()
	markPersisted(value, false)
	return
}

// exec runs the built statement against the conn pool and traces it.
func (tx *DB) exec() (sql.Result, error) {
	var (
		stmt   = tx.Statement
		sqlStr = strings.TrimSpace(stmt.SQL.String())
		begin  = time.Now()
	)

	result, err := stmt.ConnPool.ExecContext(stmt.Context, sqlStr, stmt.Vars...)

	tx.Logger.Trace(stmt.Context, begin, func() (string, int64) {
		rows := int64(-1)
		if result != nil {
			if affected, err := result.RowsAffected(); err == nil {
				rows = affected
			}
		}
		return tx.explain(sqlStr, stmt.Vars), rows
	}, err)

	return result, err
}
