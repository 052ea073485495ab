package clause

// Expression expression interface
type Expression interface {
	Build(builder Builder)
}

// Writer write interface
type Writer interface {
	WriteByte(byte) error
	WriteString(string) (int, error)
}

// Builder builder interface
type Builder interface {
	Writer
	WriteQuoted(field interface{})
	AddVar(Writer, ...interface{})
}

const (
	// PrimaryKey resolves to the schema's primary key column when quoted
	PrimaryKey string = "@@@primary_key@@@"
	// CurrentTable resolves to the statement's table when quoted
	CurrentTable string = "@@@table@@@"
)

var (
	currentTable = Table{Name: CurrentTable}
	// PrimaryColumn the statement's primary key column
	PrimaryColumn = Column{Table: CurrentTable, Name: PrimaryKey}
)

// Column quote with name
type Column struct {
	Table string
	Name  string
	Alias string
	Raw   bool
}

// Table quote with name
type Table struct {
	Name  string
	Alias string
	Raw   bool
}

// Expr raw expression, ? placeholders are replaced with bind vars
type Expr struct {
	SQL  string
	Vars []interface{}
}

// Build build raw expression
func (expr Expr) Build(builder Builder) {
	var idx int
	for _, v := range []byte(expr.SQL) {
		if v == '?' && len(expr.Vars) > idx {
			builder.AddVar(builder, expr.Vars[idx])
			idx++
		} else {
			builder.WriteByte(v)
		}
	}
}

// Eq equality expression
type Eq struct {
	Column interface{}
	Value  interface{}
}

// Build build equality expression
func (eq Eq) Build(builder Builder) {
	builder.WriteQuoted(eq.Column)

	if eq.Value == nil {
		builder.WriteString(" IS NULL")
	} else {
		builder.WriteString(" = ")
		builder.AddVar(builder, eq.Value)
	}
}
