package schemacore

import (
	"strconv"

	"github.com/kaptinlin/jsonpointer"
)

// DiagnosticKind names one of §4.4's design-time sanity checks over a
// Shape.
type DiagnosticKind int

const (
	// ImpossibleMustExist marks a location whose existence is Must (it is
	// guaranteed present) but whose type set is empty, so no document
	// could ever actually satisfy the schema.
	ImpossibleMustExist DiagnosticKind = iota
	// ChildWithoutParentReduction marks a reduction-annotated shape
	// nested under a parent that carries no reduction strategy of its
	// own. Grounded on the original's Shape::inspect family (see
	// SPEC_FULL.md's SUPPLEMENTED FEATURES): a reducer needs an owning
	// strategy at every ancestor to know how to fold a conflict.
	ChildWithoutParentReduction
	// SumNotNumber marks a "sum" reduction on a shape whose type set
	// isn't exclusively numeric (integer/fractional).
	SumNotNumber
	// MergeNotObjectOrArray marks a "merge" reduction on a shape whose
	// type set isn't exclusively object or exclusively array.
	MergeNotObjectOrArray
	// SetNotObject marks a "set" reduction on a shape that isn't
	// exclusively object-typed.
	SetNotObject
	// SetInvalidProperty marks a property of a "set"-reduced object shape
	// whose name isn't one of the set-diff vocabulary "add"/"intersect"/
	// "remove".
	SetInvalidProperty
	// DigitInvalidProperty marks an object property name that looks like
	// an array index, a common schema-authoring mistake (meaning to
	// write a tuple, writing an object instead).
	DigitInvalidProperty
)

// Diagnostic is one finding from Inspect.
type Diagnostic struct {
	Kind     DiagnosticKind
	Pointer  string
	Property string // set for SetInvalidProperty and DigitInvalidProperty
}

// Inspect walks root and reports §4.4's design-time diagnostics.
//
// Grounded on §4.4's "Inspection" list; the ChildWithoutParentReduction
// rule and the concrete Sum/Merge/Set reduction-vocabulary checks are
// pinned down per SPEC_FULL.md's SUPPLEMENTED FEATURES note, since spec.md
// names the diagnostics without specifying every rule.
func Inspect(root *Shape) []Diagnostic {
	var out []Diagnostic
	inspectNode(root, nil, Must, Reduction{}, &out)
	return out
}

func inspectNode(s *Shape, tokens []string, existence Existence, parentReduction Reduction, out *[]Diagnostic) {
	if s == nil {
		return
	}
	pointer := jsonpointer.Format(tokens...)

	if existence == Must && s.isEmpty() {
		*out = append(*out, Diagnostic{Kind: ImpossibleMustExist, Pointer: pointer})
	}

	if len(tokens) > 0 && s.Reduction.Kind != ReductionKindUnset && parentReduction.Kind == ReductionKindUnset {
		*out = append(*out, Diagnostic{Kind: ChildWithoutParentReduction, Pointer: pointer})
	}

	if s.Reduction.Kind == ReductionKindConcrete {
		switch s.Reduction.Strategy {
		case ReductionSum:
			if !isNumericOnly(s) {
				*out = append(*out, Diagnostic{Kind: SumNotNumber, Pointer: pointer})
			}
		case ReductionMerge:
			if !s.onlyType(ShapeObject) && !s.onlyType(ShapeArray) {
				*out = append(*out, Diagnostic{Kind: MergeNotObjectOrArray, Pointer: pointer})
			}
		case ReductionSet:
			if !s.onlyType(ShapeObject) {
				*out = append(*out, Diagnostic{Kind: SetNotObject, Pointer: pointer})
			} else {
				for _, p := range s.Object.Properties {
					if p.Name != "add" && p.Name != "intersect" && p.Name != "remove" {
						*out = append(*out, Diagnostic{Kind: SetInvalidProperty, Pointer: pointer, Property: p.Name})
					}
				}
			}
		}
	}

	if s.Type[ShapeObject] {
		for _, p := range s.Object.Properties {
			if isArrayIndexToken(p.Name) {
				childTokens := append(append([]string(nil), tokens...), p.Name)
				*out = append(*out, Diagnostic{Kind: DigitInvalidProperty, Pointer: jsonpointer.Format(childTokens...), Property: p.Name})
			}
		}
	}

	if s.Type[ShapeArray] {
		for i, child := range s.Array.Tuple {
			childTokens := append(append([]string(nil), tokens...), strconv.Itoa(i))
			inspectNode(child, childTokens, arrayIndexExistence(s, i), s.Reduction, out)
		}
	}
	if s.Type[ShapeObject] {
		for _, p := range s.Object.Properties {
			childTokens := append(append([]string(nil), tokens...), p.Name)
			inspectNode(p.Shape, childTokens, propertyExistence(s, p.Required), s.Reduction, out)
		}
	}
}

func isNumericOnly(s *Shape) bool {
	found := false
	for t, ok := range s.Type {
		if !ok {
			continue
		}
		if t != ShapeInteger && t != ShapeFractional {
			return false
		}
		found = true
	}
	return found
}
