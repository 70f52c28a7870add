package schemacore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func stringType(s string) *Shape {
	return &Shape{Type: map[ShapeType]bool{ShapeString: true}, String: s2str(s)}
}

func s2str(minFormat string) StringShape {
	if minFormat == "" {
		return StringShape{}
	}
	return StringShape{Format: &minFormat}
}

func TestUnionNilAndEmptyIdentities(t *testing.T) {
	s := Anything()
	assert.Same(t, s, Union(nil, s))
	assert.Same(t, s, Union(s, nil))
	assert.Same(t, s, Intersect(nil, s))
	assert.Same(t, s, Intersect(s, nil))

	nothing := Nothing()
	assert.Equal(t, s, Union(nothing, s))
	assert.Equal(t, s, Union(s, nothing))
}

func TestUnionIntersectTypeSets(t *testing.T) {
	a := &Shape{Type: map[ShapeType]bool{ShapeString: true, ShapeNull: true}}
	b := &Shape{Type: map[ShapeType]bool{ShapeString: true, ShapeInteger: true}}

	union := Union(a, b)
	assert.True(t, union.Type[ShapeString])
	assert.True(t, union.Type[ShapeNull])
	assert.True(t, union.Type[ShapeInteger])

	inter := Intersect(a, b)
	assert.True(t, inter.Type[ShapeString])
	assert.False(t, inter.Type[ShapeNull])
	assert.False(t, inter.Type[ShapeInteger])
}

func TestUnionIntersectCommutative(t *testing.T) {
	a := &Shape{Type: map[ShapeType]bool{ShapeString: true}, String: StringShape{MinLength: floatPtr(2)}}
	b := &Shape{Type: map[ShapeType]bool{ShapeInteger: true}, Number: NumericShape{Minimum: NewRat(1)}}

	assert.Equal(t, Union(a, b), Union(b, a))
	assert.Equal(t, Intersect(a, b), Intersect(b, a))
}

func TestUnionIntersectNumericBounds(t *testing.T) {
	a := &Shape{Type: map[ShapeType]bool{ShapeInteger: true}, Number: NumericShape{Minimum: NewRat(1), Maximum: NewRat(10)}}
	b := &Shape{Type: map[ShapeType]bool{ShapeInteger: true}, Number: NumericShape{Minimum: NewRat(5), Maximum: NewRat(20)}}

	union := Union(a, b)
	assert.Equal(t, 0, union.Number.Minimum.Cmp(NewRat(1).Rat))
	assert.Equal(t, 0, union.Number.Maximum.Cmp(NewRat(20).Rat))

	inter := Intersect(a, b)
	assert.Equal(t, 0, inter.Number.Minimum.Cmp(NewRat(5).Rat))
	assert.Equal(t, 0, inter.Number.Maximum.Cmp(NewRat(10).Rat))
}

func TestIntersectEnumKeepsOnlyCommon(t *testing.T) {
	a := &Shape{Type: map[ShapeType]bool{ShapeString: true}, HasEnum: true, Enum: []any{"x", "y"}}
	b := &Shape{Type: map[ShapeType]bool{ShapeString: true}, HasEnum: true, Enum: []any{"y", "z"}}

	inter := Intersect(a, b)
	assert.True(t, inter.HasEnum)
	assert.Equal(t, []any{"y"}, inter.Enum)
}

func TestUnionEnumMergesDistinctValues(t *testing.T) {
	a := &Shape{Type: map[ShapeType]bool{ShapeString: true}, HasEnum: true, Enum: []any{"x"}}
	b := &Shape{Type: map[ShapeType]bool{ShapeString: true}, HasEnum: true, Enum: []any{"y"}}

	union := Union(a, b)
	assert.True(t, union.HasEnum)
	assert.ElementsMatch(t, []any{"x", "y"}, union.Enum)
}

func TestCombineReductionConflictYieldsMultiple(t *testing.T) {
	a := Reduction{Kind: ReductionKindConcrete, Strategy: ReductionSum}
	b := Reduction{Kind: ReductionKindConcrete, Strategy: ReductionMerge}

	combined := combineReduction(a, b)
	assert.Equal(t, ReductionKindMultiple, combined.Kind)

	sameAgain := combineReduction(a, a)
	assert.Equal(t, ReductionKindConcrete, sameAgain.Kind)
	assert.Equal(t, ReductionSum, sameAgain.Strategy)
}

func TestCombineProvenanceDifferingReferencesFallToInline(t *testing.T) {
	a := Provenance{Kind: ProvenanceReference, URI: "urn:a"}
	b := Provenance{Kind: ProvenanceReference, URI: "urn:b"}

	combined := combineProvenance(a, b)
	assert.Equal(t, ProvenanceInline, combined.Kind)

	same := combineProvenance(a, a)
	assert.Equal(t, ProvenanceReference, same.Kind)
	assert.Equal(t, "urn:a", same.URI)
}

func TestMultipleOfMergeAbsorbsNilAndKeepsEqual(t *testing.T) {
	assert.Nil(t, multipleOfMerge(nil, nil))
	three := NewRat(3)
	assert.Same(t, three, multipleOfMerge(nil, three))
	assert.Same(t, three, multipleOfMerge(three, nil))

	otherThree := NewRat(3)
	merged := multipleOfMerge(three, otherThree)
	assert.Equal(t, 0, merged.Cmp(three.Rat))
}

func TestUnionObjectDropsUnmatchedProperty(t *testing.T) {
	a := ObjectShape{Properties: []ObjectProperty{{Name: "a", Required: true, Shape: Anything()}}}
	b := ObjectShape{}

	union := unionObject(a, b)
	assert.Empty(t, union.Properties)
}

func TestIntersectObjectDefaultsMissingSideToAnything(t *testing.T) {
	inner := &Shape{Type: map[ShapeType]bool{ShapeString: true}}
	a := ObjectShape{Properties: []ObjectProperty{{Name: "a", Shape: inner}}}
	b := ObjectShape{}

	inter := intersectObject(a, b)
	if assert.Len(t, inter.Properties, 1) {
		assert.Equal(t, inner, inter.Properties[0].Shape)
	}
}

func TestIntersectObjectRequiredIffEither(t *testing.T) {
	a := ObjectShape{Properties: []ObjectProperty{{Name: "a", Required: true, Shape: Anything()}}}
	b := ObjectShape{Properties: []ObjectProperty{{Name: "a", Required: false, Shape: Anything()}}}

	inter := intersectObject(a, b)
	if assert.Len(t, inter.Properties, 1) {
		assert.True(t, inter.Properties[0].Required)
	}
}

func TestUnionObjectRequiredIffBoth(t *testing.T) {
	a := ObjectShape{Properties: []ObjectProperty{{Name: "a", Required: true, Shape: Anything()}}}
	b := ObjectShape{Properties: []ObjectProperty{{Name: "a", Required: false, Shape: Anything()}}}

	union := unionObject(a, b)
	if assert.Len(t, union.Properties, 1) {
		assert.False(t, union.Properties[0].Required)
	}
}

func TestUnionArrayTupleClampsToShorterWithoutAdditional(t *testing.T) {
	a := ArrayShape{Tuple: []*Shape{stringType("")}}
	b := ArrayShape{Tuple: []*Shape{stringType(""), stringType("")}}

	union := unionArray(a, b)
	assert.Len(t, union.Tuple, 1)
}

func TestUnionArrayTupleWidensWhenShorterAdmitsMore(t *testing.T) {
	a := ArrayShape{Tuple: []*Shape{stringType("")}, Additional: Anything()}
	b := ArrayShape{Tuple: []*Shape{stringType(""), stringType("")}}

	union := unionArray(a, b)
	assert.Len(t, union.Tuple, 2)
}
