package orm

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/ragimov700/irs-test/clause"
)

// All loads every row of dest's table, in backend return order. dest must be
// a pointer to a slice of models.
func (db *DB) All(dest interface{}) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.Dest = dest

	if err := tx.Statement.Parse(dest); err != nil {
		tx.AddError(err)
		return
	}

	return tx.query()
}

// Filter loads the rows matching every criteria pair. Criteria are equality
// tests on declared fields, AND-combined; an unknown name fails before any
// backend call.
func (db *DB) Filter(dest interface{}, criteria Values) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.Dest = dest

	if err := tx.Statement.Parse(dest); err != nil {
		tx.AddError(err)
		return
	}
	s := tx.Statement.Schema

	exprs := make([]clause.Expression, 0, len(criteria))
	for _, name := range sortedKeys(criteria) {
		field := s.LookUpField(name)
		if field == nil {
			tx.AddError(fmt.Errorf("%w: %s has no field %s", ErrUnknownField, s.Name, name))
			return
		}

		v, err := field.StorageValue(criteria[name])
		if err != nil {
			tx.AddError(err)
			return
		}
		exprs = append(exprs, clause.Eq{Column: clause.Column{Name: field.DBName}, Value: v})
	}

	if len(exprs) > 0 {
		tx.Statement.AddClause(clause.Where{Exprs: exprs})
	}

	return tx.query()
}

// First loads a single row into dest, optionally filtered, and returns
// ErrRecordNotFound when nothing matches. dest must be a pointer to a model.
func (db *DB) First(dest interface{}, criteria ...Values) (tx *DB) {
	if len(criteria) > 0 {
		return db.Filter(dest, criteria[0])
	}
	return db.All(dest)
}

func (tx *DB) query() *DB {
	stmt := tx.Statement

	stmt.AddClauseIfNotExists(clause.Select{})
	stmt.AddClauseIfNotExists(clause.From{})
	stmt.Build("SELECT", "FROM", "WHERE")

	if tx.DryRun {
		return tx
	}

	var (
		sqlStr = strings.TrimSpace(stmt.SQL.String())
		begin  = time.Now()
	)

	rows, err := stmt.ConnPool.QueryContext(stmt.Context, sqlStr, stmt.Vars...)
	if err != nil {
		tx.Logger.Trace(stmt.Context, begin, func() (string, int64) {
			return tx.explain(sqlStr, stmt.Vars), -1
		}, err)
		tx.AddError(err)
		return tx
	}

	Scan(rows, tx)
	tx.AddError(rows.Close())

	tx.Logger.Trace(stmt.Context, begin, func() (string, int64) {
		return tx.explain(sqlStr, stmt.Vars), tx.RowsAffected
	}, tx.Error)

	return tx
}

// destElem reports the slice element type of a query destination, or the
// struct itself for single-row destinations.
func destElem(destValue reflect.Value) (reflect.Type, bool) {
	t := destValue.Type()
	if t.Kind() == reflect.Slice {
		elem := t.Elem()
		if elem.Kind() == reflect.Ptr {
			return elem.Elem(), true
		}
		return elem, false
	}
	return t, false
}
