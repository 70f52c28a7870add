package schemacore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func inferFromJSON(t *testing.T, src string) *Shape {
	t.Helper()
	schema, err := ParseSchema([]byte(src))
	require.NoError(t, err)
	return Infer(schema, nil, "")
}

func TestInferSimpleObject(t *testing.T) {
	shape := inferFromJSON(t, `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"age": {"type": "integer", "minimum": 0}
		},
		"required": ["name"]
	}`)

	require.True(t, shape.Type[ShapeObject])
	require.Len(t, shape.Object.Properties, 2)

	name, ok := findProperty(shape.Object.Properties, "name")
	require.True(t, ok)
	require.True(t, name.Required)
	require.True(t, name.Shape.Type[ShapeString])
	require.NotNil(t, name.Shape.String.MinLength)
	require.Equal(t, float64(1), *name.Shape.String.MinLength)

	age, ok := findProperty(shape.Object.Properties, "age")
	require.True(t, ok)
	require.False(t, age.Required)
	require.True(t, age.Shape.Type[ShapeInteger])
}

func TestInferNumberTypeAdmitsBothIntegerAndFractional(t *testing.T) {
	shape := inferFromJSON(t, `{"type": "number"}`)
	require.True(t, shape.Type[ShapeInteger])
	require.True(t, shape.Type[ShapeFractional])
	require.False(t, shape.Type[ShapeString])
}

func TestInferEnumRestrictsTypeToSurvivingVariants(t *testing.T) {
	shape := inferFromJSON(t, `{"enum": ["a", "b", 1]}`)
	require.True(t, shape.HasEnum)
	require.True(t, shape.Type[ShapeString])
	require.True(t, shape.Type[ShapeInteger])
	require.False(t, shape.Type[ShapeBoolean])
	require.False(t, shape.Type[ShapeNull])
}

func TestInferEnumFilteredByDeclaredType(t *testing.T) {
	shape := inferFromJSON(t, `{"type": "string", "enum": ["a", "b", 1]}`)
	require.True(t, shape.HasEnum)
	require.Len(t, shape.Enum, 2)
	require.True(t, shape.Type[ShapeString])
	require.False(t, shape.Type[ShapeInteger])
}

func TestInferAllOfIntersects(t *testing.T) {
	shape := inferFromJSON(t, `{
		"allOf": [
			{"type": "integer", "minimum": 1},
			{"type": "integer", "maximum": 10}
		]
	}`)
	require.True(t, shape.Type[ShapeInteger])
	require.False(t, shape.Type[ShapeString])
	require.NotNil(t, shape.Number.Minimum)
	require.NotNil(t, shape.Number.Maximum)
	require.Equal(t, 0, shape.Number.Minimum.Cmp(NewRat(1).Rat))
	require.Equal(t, 0, shape.Number.Maximum.Cmp(NewRat(10).Rat))
}

func TestInferAnyOfUnions(t *testing.T) {
	shape := inferFromJSON(t, `{
		"anyOf": [
			{"type": "string"},
			{"type": "integer"}
		]
	}`)
	require.True(t, shape.Type[ShapeString])
	require.True(t, shape.Type[ShapeInteger])
	require.False(t, shape.Type[ShapeBoolean])
}

func TestInferIfThenElseUnionsThenAndElse(t *testing.T) {
	shape := inferFromJSON(t, `{
		"if": {"type": "string"},
		"then": {"type": "string", "minLength": 1},
		"else": {"type": "integer"}
	}`)
	require.True(t, shape.Type[ShapeString])
	require.True(t, shape.Type[ShapeInteger])
}

func TestInferPrefixItemsAndItems(t *testing.T) {
	shape := inferFromJSON(t, `{
		"type": "array",
		"prefixItems": [{"type": "string"}, {"type": "integer"}],
		"items": {"type": "boolean"}
	}`)
	require.True(t, shape.Type[ShapeArray])
	require.Len(t, shape.Array.Tuple, 2)
	require.True(t, shape.Array.Tuple[0].Type[ShapeString])
	require.True(t, shape.Array.Tuple[1].Type[ShapeInteger])
	require.NotNil(t, shape.Array.Additional)
	require.True(t, shape.Array.Additional.Type[ShapeBoolean])
}

func TestInferPatternPropertiesCrossAppliesToNamedProperty(t *testing.T) {
	shape := inferFromJSON(t, `{
		"type": "object",
		"properties": {"fooBar": {"type": "string"}},
		"patternProperties": {"^foo": {"minLength": 3}}
	}`)
	prop, ok := findProperty(shape.Object.Properties, "fooBar")
	require.True(t, ok)
	require.True(t, prop.Shape.Type[ShapeString])
	require.NotNil(t, prop.Shape.String.MinLength)
	require.Equal(t, float64(3), *prop.Shape.String.MinLength)
}

func TestInferUnevaluatedPromotesWhenAdditionalUnset(t *testing.T) {
	shape := inferFromJSON(t, `{
		"type": "object",
		"properties": {"a": {"type": "string"}},
		"unevaluatedProperties": {"type": "integer"}
	}`)
	require.NotNil(t, shape.Object.Additional)
	require.True(t, shape.Object.Additional.Type[ShapeInteger])
}

func TestInferUnevaluatedDoesNotOverrideExplicitAdditional(t *testing.T) {
	shape := inferFromJSON(t, `{
		"type": "object",
		"additionalProperties": {"type": "boolean"},
		"unevaluatedProperties": {"type": "integer"}
	}`)
	require.NotNil(t, shape.Object.Additional)
	require.True(t, shape.Object.Additional.Type[ShapeBoolean])
}

func TestInferFalseSchemaIsNothing(t *testing.T) {
	shape := inferFromJSON(t, `false`)
	require.True(t, shape.isEmpty())
}

func TestInferTrueSchemaIsAnything(t *testing.T) {
	shape := inferFromJSON(t, `true`)
	for _, ty := range allShapeTypes {
		require.True(t, shape.Type[ty])
	}
}

func TestInferInlineProvenanceForNonInertSchema(t *testing.T) {
	shape := inferFromJSON(t, `{"type": "string", "minLength": 2}`)
	require.Equal(t, ProvenanceInline, shape.Provenance.Kind)
}
