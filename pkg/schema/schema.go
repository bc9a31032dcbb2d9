// Package schema reflects over the pkg/element type tree to
// auto-generate structural constraints — child cardinality and
// parent-child coupling — instead of requiring every classifier to
// hand-write them. This is Go's answer to reflecting over a generic
// Candidate<T>'s type parameter: Candidate.ElementKind() plus struct
// tags on element fields, combined with each candidate's
// candidate.HasChildRefs, stand in for reified generics.
package schema

import (
	"reflect"

	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/element"
)

// cardinality identifies how many of a child element a parent field
// declares, taken from the `child:"..."` struct tag.
type cardinality int

const (
	cardinalityRequired cardinality = iota
	cardinalityOptional
	cardinalitySequence
)

// childField describes one reflected child relationship on an element
// struct: the kind of element the field holds and its cardinality.
type childField struct {
	childKind   element.Kind
	cardinality cardinality
	spatial     bool
}

// fieldsOf walks the exported fields of an element struct type and
// returns every field tagged `child:"..."`, resolving each field's Go
// type back to an element.Kind via a zero-value ElementType() call.
func fieldsOf(t reflect.Type) []childField {
	var out []childField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup("child")
		if !ok {
			continue
		}
		var card cardinality
		switch tag {
		case "required":
			card = cardinalityRequired
		case "optional":
			card = cardinalityOptional
		case "sequence":
			card = cardinalitySequence
		default:
			continue
		}

		ft := f.Type
		switch {
		case card == cardinalityOptional && ft.Kind() == reflect.Ptr:
			ft = ft.Elem()
		case card == cardinalitySequence && ft.Kind() == reflect.Slice:
			ft = ft.Elem()
		}

		zero := reflect.New(ft).Elem().Interface()
		el, ok := zero.(element.LegoPageElement)
		if !ok {
			continue
		}

		out = append(out, childField{
			childKind:   el.ElementType(),
			cardinality: card,
			spatial:     f.Tag.Get("assignment") == "spatial",
		})
	}
	return out
}

// Generate walks every candidate in result whose element kind appears
// in elementTypes, groups its HasChildRefs-declared child references
// by the referenced candidate's actual element kind, and emits an
// IfSelectedThen constraint into m matching each declared `child:"..."`
// field's cardinality. Spatial-assignment fields are skipped: their
// placement is resolved by pkg/spatial after the solve, not by a
// boolean implication.
func Generate(m *constraint.Model, result *candidate.ClassificationResult, elementTypes []element.LegoPageElement) {
	fieldsByKind := make(map[element.Kind][]childField)
	for _, sample := range elementTypes {
		fieldsByKind[sample.ElementType()] = fieldsOf(reflect.TypeOf(sample))
	}

	for _, parent := range result.AllCandidates() {
		fields, ok := fieldsByKind[parent.ElementKind()]
		if !ok {
			continue
		}
		refs := candidate.ChildRefsOf(parent)
		if len(refs) == 0 {
			continue
		}

		byKind := make(map[element.Kind][]constraint.Var)
		for _, id := range refs {
			child := result.ByID(id)
			if child == nil {
				continue
			}
			byKind[child.ElementKind()] = append(byKind[child.ElementKind()], id)
		}

		for _, f := range fields {
			if f.spatial {
				continue
			}
			matching := byKind[f.childKind]
			if len(matching) == 0 {
				continue
			}
			switch f.cardinality {
			case cardinalityRequired:
				m.IfSelectedThen(parent.ID(), matching, 1, 1)
			case cardinalityOptional:
				m.IfSelectedThen(parent.ID(), matching, 0, 1)
			case cardinalitySequence:
				m.IfSelectedThen(parent.ID(), matching, 0, len(matching))
			}
		}
	}
}

// ChildCardinality exposes a single element type's declared child
// cardinalities, used by classifiers that need to cross-check their
// own DeclareConstraints wiring against the schema at construction
// time (e.g. in tests).
func ChildCardinality(sample element.LegoPageElement) map[element.Kind]string {
	t := reflect.TypeOf(sample)
	out := make(map[element.Kind]string)
	for _, cf := range fieldsOf(t) {
		switch cf.cardinality {
		case cardinalityRequired:
			out[cf.childKind] = "required"
		case cardinalityOptional:
			out[cf.childKind] = "optional"
		case cardinalitySequence:
			out[cf.childKind] = "sequence"
		}
	}
	return out
}
