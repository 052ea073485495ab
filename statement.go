package orm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ragimov700/irs-test/clause"
	"github.com/ragimov700/irs-test/schema"
)

// Statement is one backend-agnostic statement under construction: clauses
// and bind values go in, SQL text and an ordered parameter list come out.
type Statement struct {
	Table    string
	Model    interface{}
	Dest     interface{}
	Clauses  map[string]clause.Clause
	Context  context.Context
	DB       *DB
	ConnPool ConnPool
	Schema   *schema.Schema

	// SQL Builder
	SQL  strings.Builder
	Vars []interface{}
}

// WriteString write string
func (stmt *Statement) WriteString(str string) (int, error) {
	return stmt.SQL.WriteString(str)
}

// WriteByte write byte
func (stmt *Statement) WriteByte(c byte) error {
	return stmt.SQL.WriteByte(c)
}

// WriteQuoted write quoted value
func (stmt *Statement) WriteQuoted(value interface{}) {
	stmt.QuoteTo(&stmt.SQL, value)
}

// QuoteTo write quoted value to writer
func (stmt *Statement) QuoteTo(writer clause.Writer, field interface{}) {
	switch v := field.(type) {
	case clause.Table:
		if v.Name == clause.CurrentTable {
			stmt.DB.Dialector.QuoteTo(writer, stmt.Table)
		} else if v.Raw {
			writer.WriteString(v.Name)
		} else {
			stmt.DB.Dialector.QuoteTo(writer, v.Name)
		}

		if v.Alias != "" {
			writer.WriteString(" AS ")
			stmt.DB.Dialector.QuoteTo(writer, v.Alias)
		}
	case clause.Column:
		if v.Table != "" {
			if v.Table == clause.CurrentTable {
				stmt.DB.Dialector.QuoteTo(writer, stmt.Table)
			} else {
				stmt.DB.Dialector.QuoteTo(writer, v.Table)
			}
			writer.WriteByte('.')
		}

		if v.Name == clause.PrimaryKey {
			if stmt.Schema != nil && stmt.Schema.PrimaryField != nil {
				stmt.DB.Dialector.QuoteTo(writer, stmt.Schema.PrimaryField.DBName)
			}
		} else if v.Raw {
			writer.WriteString(v.Name)
		} else {
			stmt.DB.Dialector.QuoteTo(writer, v.Name)
		}

		if v.Alias != "" {
			writer.WriteString(" AS ")
			stmt.DB.Dialector.QuoteTo(writer, v.Alias)
		}
	case string:
		stmt.DB.Dialector.QuoteTo(writer, v)
	default:
		stmt.DB.Dialector.QuoteTo(writer, fmt.Sprint(field))
	}
}

// Quote returns quoted value
func (stmt *Statement) Quote(field interface{}) string {
	var builder strings.Builder
	stmt.QuoteTo(&builder, field)
	return builder.String()
}

// AddVar add vars, writing one placeholder per value
func (stmt *Statement) AddVar(writer clause.Writer, vars ...interface{}) {
	for idx, v := range vars {
		if idx > 0 {
			writer.WriteByte(',')
		}

		switch v := v.(type) {
		case clause.Column, clause.Table:
			stmt.QuoteTo(writer, v)
		case clause.Expr:
			v.Build(stmt)
		case []interface{}:
			if len(v) > 0 {
				writer.WriteByte('(')
				stmt.AddVar(writer, v...)
				writer.WriteByte(')')
			} else {
				writer.WriteString("(NULL)")
			}
		default:
			stmt.Vars = append(stmt.Vars, v)
			stmt.DB.Dialector.BindVarTo(writer, stmt, v)
		}
	}
}

// AddClause add clause
func (stmt *Statement) AddClause(v clause.Interface) {
	name := v.Name()
	c, ok := stmt.Clauses[name]
	if !ok {
		if o, override := v.(clause.OverrideNameInterface); override {
			c.Name = o.OverrideName()
		} else {
			c.Name = name
		}
	}
	v.MergeClause(&c)
	stmt.Clauses[name] = c
}

// AddClauseIfNotExists add clause if not exists
func (stmt *Statement) AddClauseIfNotExists(v clause.Interface) {
	if _, ok := stmt.Clauses[v.Name()]; !ok {
		stmt.AddClause(v)
	}
}

// Build build sql with clauses names
func (stmt *Statement) Build(clauses ...string) {
	var firstClauseWritten bool

	for _, name := range clauses {
		if c, ok := stmt.Clauses[name]; ok {
			if firstClauseWritten {
				stmt.WriteByte(' ')
			}

			firstClauseWritten = true
			if b, ok := stmt.DB.ClauseBuilders[name]; ok {
				b.Build(c, stmt)
			} else {
				c.Build(stmt)
			}
		}
	}
}

// Parse resolves and caches the destination's schema onto the statement.
func (stmt *Statement) Parse(value interface{}) (err error) {
	if stmt.Schema, err = schema.Parse(value, stmt.DB.cacheStore, stmt.DB.NamingStrategy); err == nil && stmt.Table == "" {
		stmt.Table = stmt.Schema.Table
	}
	return err
}

// ToSQL returns the built SQL and its bind vars.
func (stmt *Statement) ToSQL(clauses ...string) (string, []interface{}) {
	if len(clauses) > 0 {
		stmt.Build(clauses...)
	}
	return strings.TrimSpace(stmt.SQL.String()), stmt.Vars
}

func (stmt *Statement) clone() *Statement {
	newStmt := &Statement{
		Table:    stmt.Table,
		Model:    stmt.Model,
		Dest:     stmt.Dest,
		Clauses:  map[string]clause.Clause{},
		Context:  stmt.Context,
		DB:       stmt.DB,
		ConnPool: stmt.ConnPool,
		Schema:   stmt.Schema,
	}
	for k, c := range stmt.Clauses {
		newStmt.Clauses[k] = c
	}
	return newStmt
}
