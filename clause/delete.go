package clause

// Delete delete clause
type Delete struct {
	Modifier string
}

// Name delete clause name
func (d Delete) Name() string {
	return "DELETE"
}

// Build build delete clause
func (d Delete) Build(builder Builder) {
	builder.WriteString(d.Modifier)
}

// MergeClause merge delete clause. Without a modifier the clause renders as
// its bare name.
func (d Delete) MergeClause(clause *Clause) {
	if d.Modifier != "" {
		clause.Expression = d
	}
}
