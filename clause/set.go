package clause

// Set update assignments
type Set []Assignment

// Assignment assign a value to a column
type Assignment struct {
	Column Column
	Value  interface{}
}

// Name set clause name
func (set Set) Name() string {
	return "SET"
}

// Build build set clause
func (set Set) Build(builder Builder) {
	for idx, assignment := range set {
		if idx > 0 {
			builder.WriteByte(',')
		}
		builder.WriteQuoted(assignment.Column)
		builder.WriteByte('=')
		builder.AddVar(builder, assignment.Value)
	}
}

// MergeClause merge set clauses
func (set Set) MergeClause(clause *Clause) {
	if v, ok := clause.Expression.(Set); ok {
		set = append(v, set...)
	}
	clause.Expression = set
}
