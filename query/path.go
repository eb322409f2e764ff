package query

import (
	"fmt"
	"strings"

	"github.com/adaptlearning/scoring"
)

// ResolvePath implements the path API (spec.md §4.6 "The path API accepts
// 'a.b.c' or ['a','b','c']: look up each id in the registry in order, then
// fold via intersect"). Each id is looked up as a registered root set;
// the fold direction matches the query evaluator's: the next id's set is
// intersected against the running result, so the final concrete type is
// that of the last path element.
func ResolvePath(reg *scoring.Registry, path []string) (scoring.Set, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("query: empty path")
	}
	var result scoring.Set
	for i, id := range path {
		s, ok := reg.GetSetByID(scoring.SetID(id))
		if !ok {
			return nil, fmt.Errorf("query: no set registered with id %q", id)
		}
		if i == 0 {
			result = s
		} else {
			result = s.Intersect(result)
		}
	}
	return result, nil
}

// ResolvePathString is ResolvePath over a "."-separated path string.
func ResolvePathString(reg *scoring.Registry, path string) (scoring.Set, error) {
	return ResolvePath(reg, strings.Split(path, "."))
}
