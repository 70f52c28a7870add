package schemacore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInspectImpossibleMustExist(t *testing.T) {
	root := inferFromJSON(t, `{
		"type": "object",
		"properties": {
			"name": {"allOf": [{"type": "string"}, {"type": "integer"}]}
		},
		"required": ["name"]
	}`)
	diags := Inspect(root)
	found := false
	for _, d := range diags {
		if d.Kind == ImpossibleMustExist && d.Pointer == "/name" {
			found = true
		}
	}
	require.True(t, found)
}

func TestInspectChildWithoutParentReduction(t *testing.T) {
	schema, err := ParseSchema([]byte(`{
		"type": "object",
		"properties": {
			"total": {"type": "integer", "x-reduce": "sum"}
		}
	}`))
	require.NoError(t, err)
	root := Infer(schema, nil, "")
	diags := Inspect(root)

	found := false
	for _, d := range diags {
		if d.Kind == ChildWithoutParentReduction && d.Pointer == "/total" {
			found = true
		}
	}
	require.True(t, found)
}

func TestInspectSumNotNumber(t *testing.T) {
	root := &Shape{
		Type:      map[ShapeType]bool{ShapeString: true},
		Reduction: Reduction{Kind: ReductionKindConcrete, Strategy: ReductionSum},
	}
	diags := Inspect(root)
	require.Len(t, diags, 1)
	require.Equal(t, SumNotNumber, diags[0].Kind)
}

func TestInspectSetInvalidProperty(t *testing.T) {
	root := &Shape{
		Type:      map[ShapeType]bool{ShapeObject: true},
		Reduction: Reduction{Kind: ReductionKindConcrete, Strategy: ReductionSet},
		Object: ObjectShape{
			Properties: []ObjectProperty{
				{Name: "add", Shape: Anything()},
				{Name: "bogus", Shape: Anything()},
			},
		},
	}
	diags := Inspect(root)
	found := false
	for _, d := range diags {
		if d.Kind == SetInvalidProperty && d.Property == "bogus" {
			found = true
		}
	}
	require.True(t, found)
}

func TestInspectDigitInvalidProperty(t *testing.T) {
	root := inferFromJSON(t, `{
		"type": "object",
		"properties": {"0": {"type": "string"}}
	}`)
	diags := Inspect(root)
	found := false
	for _, d := range diags {
		if d.Kind == DigitInvalidProperty && d.Property == "0" {
			found = true
		}
	}
	require.True(t, found)
}

func TestInspectCleanShapeHasNoDiagnostics(t *testing.T) {
	root := inferFromJSON(t, `{
		"type": "object",
		"properties": {"name": {"type": "string"}}
	}`)
	require.Empty(t, Inspect(root))
}
