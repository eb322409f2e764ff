package query

import "github.com/adaptlearning/scoring"

// columnCandidates is one column's selection result (spec.md §4.6 rule 1)
// plus its retained post-intersection filter clauses (rule 3).
type columnCandidates struct {
	sets    []scoring.Set
	filters [][]Attr
}

// Evaluate runs a parsed intersection query against the registry (spec.md
// §4.6 rules 1-6): select per column, Cartesian-multiply the columns,
// fold each tuple left-to-right via Intersect while checking each
// column's retained filters against the running intermediate result, then
// de-duplicate.
func Evaluate(reg *scoring.Registry, q *IntersectionQuery) ([]scoring.Set, error) {
	cols := make([]columnCandidates, len(q.Columns))
	for i, c := range q.Columns {
		cc, err := selectColumn(reg, c)
		if err != nil {
			return nil, err
		}
		cols[i] = cc
	}

	var out []scoring.Set
	seen := make(map[scoring.SetID]bool)
	for _, tuple := range cartesianColumns(cols) {
		result, ok, err := foldIntersect(reg, cols, tuple)
		if err != nil {
			return nil, err
		}
		if !ok || result == nil {
			continue
		}
		if seen[result.ID()] {
			continue
		}
		seen[result.ID()] = true
		out = append(out, result)
	}
	return out, nil
}

// EvaluateString parses and evaluates q in one step.
func EvaluateString(reg *scoring.Registry, q string) ([]scoring.Set, error) {
	parsed, err := Parse(q)
	if err != nil {
		return nil, err
	}
	return Evaluate(reg, parsed)
}

// First returns the first element of Evaluate's result, mirroring the
// scoring root's getSubsetByQuery (spec.md §6.4).
func First(reg *scoring.Registry, q *IntersectionQuery) (scoring.Set, bool, error) {
	sets, err := Evaluate(reg, q)
	if err != nil {
		return nil, false, err
	}
	if len(sets) == 0 {
		return nil, false, nil
	}
	return sets[0], true, nil
}

// selectColumn computes a column's selection set: narrow allRegisteredSets
// by the primary selector and every [...] clause (spec.md §4.6 rules 1-2).
// Each clause's attrs are alternatives (an OR-union); the primary and
// successive clauses combine multiplicatively into a set of where-objects,
// each of which independently filters the registry; the column's
// selection set is the union of matches across all where-objects.
func selectColumn(reg *scoring.Registry, col SelectionQuery) (columnCandidates, error) {
	whereObjects := [][]Attr{{}}

	if col.Primary != nil {
		var attr Attr
		if col.Primary.IsIDRef() {
			attr = Attr{ID: col.Primary.ID}
		} else {
			attr = Attr{Name: "type", Value: col.Primary.Type, HasValue: true}
		}
		whereObjects = multiplyWhereObjects(whereObjects, []Attr{attr})
	}
	for _, clause := range col.Multiply {
		whereObjects = multiplyWhereObjects(whereObjects, clause)
	}

	all := reg.Sets()
	seen := make(map[scoring.SetID]bool)
	var matched []scoring.Set
	for _, where := range whereObjects {
		for _, s := range all {
			ok, err := matchAll(reg, s, where)
			if err != nil {
				return columnCandidates{}, err
			}
			if ok && !seen[s.ID()] {
				seen[s.ID()] = true
				matched = append(matched, s)
			}
		}
	}
	return columnCandidates{sets: matched, filters: col.Filters}, nil
}

// multiplyWhereObjects Cartesian-combines each existing where-object with
// each alternative in options, concatenating their attrs (the "Object-
// assign into single where-objects" step of spec.md §4.6 rule 2).
func multiplyWhereObjects(existing [][]Attr, options []Attr) [][]Attr {
	out := make([][]Attr, 0, len(existing)*len(options))
	for _, e := range existing {
		for _, opt := range options {
			combined := make([]Attr, 0, len(e)+1)
			combined = append(combined, e...)
			combined = append(combined, opt)
			out = append(out, combined)
		}
	}
	return out
}

// cartesianColumns builds the list of per-column tuples (spec.md §4.6
// rule 4). Any column with an empty selection set yields no tuples.
func cartesianColumns(cols []columnCandidates) [][]scoring.Set {
	if len(cols) == 0 {
		return nil
	}
	tuples := [][]scoring.Set{{}}
	for _, c := range cols {
		if len(c.sets) == 0 {
			return nil
		}
		next := make([][]scoring.Set, 0, len(tuples)*len(c.sets))
		for _, t := range tuples {
			for _, s := range c.sets {
				combo := make([]scoring.Set, 0, len(t)+1)
				combo = append(combo, t...)
				combo = append(combo, s)
				next = append(next, combo)
			}
		}
		tuples = next
	}
	return tuples
}

// foldIntersect reduces one tuple left-to-right via Intersect (spec.md
// §4.6 rule 5: "result = colₙ.intersect(colₙ₋₁.intersect(… col₁))"),
// dropping the tuple if any column's retained filters fail to match the
// intermediate result at that column's position.
func foldIntersect(reg *scoring.Registry, cols []columnCandidates, tuple []scoring.Set) (scoring.Set, bool, error) {
	var result scoring.Set
	for i, s := range tuple {
		if i == 0 {
			result = s
		} else {
			result = s.Intersect(result)
		}
		for _, filterAttrs := range cols[i].filters {
			ok, err := matchAll(reg, result, filterAttrs)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, nil
			}
		}
	}
	return result, true, nil
}
