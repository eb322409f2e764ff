package query

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/adaptlearning/scoring"
)

// methodAliases maps query attribute names to the Go method name, for the
// handful of attributes whose idiomatic Go spelling isn't a simple
// capitalize-first-letter of the spec's camelCase name (spec.md §4.6).
var methodAliases = map[string]string{
	"id": "ID",
}

// concreteSetTypes are the set types whose methods make up the attribute
// vocabulary matchAttr recognises.
var concreteSetTypes = []reflect.Type{
	reflect.TypeOf((*scoring.AdaptModelSet)(nil)),
	reflect.TypeOf((*scoring.ScoringSet)(nil)),
	reflect.TypeOf((*scoring.TotalSet)(nil)),
}

func methodNameFor(attrName string) string {
	if alias, ok := methodAliases[attrName]; ok {
		return alias
	}
	if attrName == "" {
		return ""
	}
	return strings.ToUpper(attrName[:1]) + attrName[1:]
}

// matchAttr implements spec.md §4.6's attribute matching rules: callable
// properties are invoked with the value and must return truthy; a bare
// attribute with no value must be truthy; otherwise compare via
// string-equality. modelId is special-cased per rule 1: it restricts to
// sets whose models hierarchy-intersect the named model. An attribute that
// only other concrete set types have (e.g. modelTypeGroup on a ScoringSet)
// does not match; one that no concrete set type has is an error.
func matchAttr(reg *scoring.Registry, set scoring.Set, attr Attr) (bool, error) {
	if attr.IsIDRef() {
		return string(set.ID()) == attr.ID, nil
	}
	if attr.Name == "modelId" {
		return matchModelID(reg, set, attr.Value), nil
	}

	rv := reflect.ValueOf(set)
	method := rv.MethodByName(methodNameFor(attr.Name))
	if !method.IsValid() {
		for _, t := range concreteSetTypes {
			if _, ok := t.MethodByName(methodNameFor(attr.Name)); ok {
				return false, nil
			}
		}
		return false, fmt.Errorf("unrecognised attribute %q on set %q", attr.Name, set.ID())
	}
	mtype := method.Type()

	switch {
	case mtype.NumIn() == 1 && mtype.In(0).Kind() == reflect.String:
		// Callable property (e.g. modelTypeGroup): call with the value
		// (or "" if none was given) and require a truthy result.
		out := method.Call([]reflect.Value{reflect.ValueOf(attr.Value)})
		return truthy(out[0]), nil
	case mtype.NumIn() == 0 && attr.HasValue:
		out := method.Call(nil)
		return fmt.Sprintf("%v", out[0].Interface()) == attr.Value, nil
	case mtype.NumIn() == 0:
		out := method.Call(nil)
		return truthy(out[0]), nil
	default:
		return false, fmt.Errorf("attribute %q has unsupported arity on set %q", attr.Name, set.ID())
	}
}

func truthy(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.String:
		return v.String() != ""
	default:
		return !v.IsZero()
	}
}

// matchModelID looks up the model registered under id (every content
// model has a matching AdaptModelSet whose id is the model's own id; see
// NewAdaptModelSet) and checks whether set's models hierarchy-intersect
// it.
func matchModelID(reg *scoring.Registry, set scoring.Set, id string) bool {
	anchor, ok := reg.GetSetByID(scoring.SetID(id))
	if !ok {
		return false
	}
	model, ok := anchor.Model()
	if !ok {
		return false
	}
	return len(scoring.FilterByIntersectingHierarchy(set.Models(), []scoring.ContentModel{model})) > 0
}

// matchAll requires every attr in attrs to match (spec.md §4.6 "All
// attributes in a single where-object must match (AND)").
func matchAll(reg *scoring.Registry, set scoring.Set, attrs []Attr) (bool, error) {
	for _, attr := range attrs {
		ok, err := matchAttr(reg, set, attr)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
