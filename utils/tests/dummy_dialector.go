package tests

import (
	orm "github.com/ragimov700/irs-test"
	"github.com/ragimov700/irs-test/clause"
	"github.com/ragimov700/irs-test/logger"
	"github.com/ragimov700/irs-test/schema"
)

// DummyDialector builds statements without any backend, for tests exercising
// the pure translation path.
type DummyDialector struct {
	Conn orm.ConnPool
}

func (DummyDialector) Name() string {
	return "dummy"
}

func (dialector DummyDialector) Initialize(db *orm.DB) error {
	if dialector.Conn != nil {
		db.ConnPool = dialector.Conn
	}
	return nil
}

func (DummyDialector) BindVarTo(writer clause.Writer, stmt *orm.Statement, v interface{}) {
	writer.WriteByte('?')
}

func (DummyDialector) QuoteTo(writer clause.Writer, str string) {
	writer.WriteByte('`')
	writer.WriteString(str)
	writer.WriteByte('`')
}

func (DummyDialector) Explain(sql string, vars ...interface{}) string {
	return logger.ExplainSQL(sql, `'`, vars...)
}

func (DummyDialector) DataTypeOf(field *schema.Field) string {
	sqlType := string(field.DataType)
	if field.PrimaryKey {
		sqlType += " PRIMARY KEY"
	}
	return sqlType
}
