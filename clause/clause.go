package clause

// Clause is one named slot of a statement, holding the merged expression
// registered under that name.
type Clause struct {
	Name       string // WHERE
	Expression Expression
	Builder    ClauseBuilder
}

// ClauseBuilder clause builder, allows to customize how to build clause
type ClauseBuilder interface {
	Build(Clause, Builder)
}

// Build build clause
func (c Clause) Build(builder Builder) {
	if c.Builder != nil {
		c.Builder.Build(c, builder)
		return
	}

	if c.Name != "" {
		builder.WriteString(c.Name)
	}

	if c.Expression != nil {
		if c.Name != "" {
			builder.WriteByte(' ')
		}
		c.Expression.Build(builder)
	}
}

// Interface clause interface
type Interface interface {
	Name() string
	Build(Builder)
	MergeClause(*Clause)
}

// OverrideNameInterface lets a clause render under a different name than the
// one it is registered with.
type OverrideNameInterface interface {
	OverrideName() string
}
