// Package query implements the intersection-query language used to select
// and combine scoring sets (spec.md §4.6): a space-separated list of
// columns, each narrowing the registry by a primary selector and
// multiplicative attribute clauses, then Cartesian-multiplied and reduced
// by intersection, with post-intersection filter clauses applied along the
// way.
package query

// Attr is one clause inside a "[...]" or "(...)" attribute list: either a
// bare "#id" reference or a "name" / "name=value" pair.
type Attr struct {
	// ID is non-empty when this attr is the "#id" shorthand.
	ID string
	// Name is the attribute name when ID is empty.
	Name string
	// Value is the attribute value when HasValue is true.
	Value    string
	HasValue bool
}

// IsIDRef reports whether this attr is a bare "#id" reference.
func (a Attr) IsIDRef() bool { return a.ID != "" }

// Primary is a selection query's optional leading selector: either "#id" or
// a bare type name.
type Primary struct {
	ID   string
	Type string
}

// IsIDRef reports whether the primary is a "#id" reference rather than a
// type name.
func (p Primary) IsIDRef() bool { return p.ID != "" }

// SelectionQuery is one space-separated column of an intersection query
// (spec.md §4.6 grammar: "selectionQuery = primary? multiplyAttr*
// filterAttr*").
type SelectionQuery struct {
	Primary *Primary
	// Multiply holds one attribute list per "[...]" clause; each list
	// contributes a multiplicative set of where-objects (spec.md §4.6
	// rule 2).
	Multiply [][]Attr
	// Filters holds one attribute list per "(...)" clause, applied after
	// intersection (spec.md §4.6 rule 3).
	Filters [][]Attr
}

// IntersectionQuery is a full parsed query: one or more columns, combined
// by Cartesian multiplication and left-to-right intersection (spec.md
// §4.6 rules 4-5).
type IntersectionQuery struct {
	Columns []SelectionQuery
}
