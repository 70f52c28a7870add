package schemacore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocateRootPointer(t *testing.T) {
	root := inferFromJSON(t, `{"type": "object"}`)
	shape, existence, ok := Locate(root, "")
	require.True(t, ok)
	require.Equal(t, Must, existence)
	require.Same(t, root, shape)
}

func TestLocateRequiredProperty(t *testing.T) {
	root := inferFromJSON(t, `{
		"type": "object",
		"properties": {"name": {"type": "string"}},
		"required": ["name"]
	}`)
	shape, existence, ok := Locate(root, "/name")
	require.True(t, ok)
	require.Equal(t, Must, existence)
	require.True(t, shape.Type[ShapeString])
}

func TestLocateOptionalPropertyIsMay(t *testing.T) {
	root := inferFromJSON(t, `{
		"type": "object",
		"properties": {"nickname": {"type": "string"}}
	}`)
	_, existence, ok := Locate(root, "/nickname")
	require.True(t, ok)
	require.Equal(t, May, existence)
}

func TestLocateUnknownPropertyWithAdditionalFalseIsEmptyShape(t *testing.T) {
	root := inferFromJSON(t, `{
		"type": "object",
		"properties": {"name": {"type": "string"}},
		"additionalProperties": false
	}`)
	shape, _, ok := Locate(root, "/other")
	require.True(t, ok)
	require.True(t, shape.isEmpty())
}

func TestLocateUnknownPropertyWithNoAdditionalAtAllIsCannot(t *testing.T) {
	root := inferFromJSON(t, `{
		"type": "object",
		"properties": {"name": {"type": "string"}}
	}`)
	shape, existence, ok := Locate(root, "/other")
	require.True(t, ok)
	require.Equal(t, Cannot, existence)
	require.True(t, shape.isEmpty())
}

func TestLocatePropertyOnNonObjectIsUnreachable(t *testing.T) {
	root := inferFromJSON(t, `{"type": "string"}`)
	_, _, ok := Locate(root, "/name")
	require.False(t, ok)
}

func TestLocateArrayIndexWithinTupleIsMust(t *testing.T) {
	root := inferFromJSON(t, `{
		"type": "array",
		"prefixItems": [{"type": "string"}]
	}`)
	shape, existence, ok := Locate(root, "/0")
	require.True(t, ok)
	require.Equal(t, Must, existence)
	require.True(t, shape.Type[ShapeString])
}

func TestLocateArrayEndOfArraySentinel(t *testing.T) {
	root := inferFromJSON(t, `{
		"type": "array",
		"items": {"type": "integer"}
	}`)
	shape, existence, ok := Locate(root, "/-")
	require.True(t, ok)
	require.Equal(t, Cannot, existence)
	require.True(t, shape.Type[ShapeInteger])
}

func TestLocationsIncludesSentinelWhenAdditionalSet(t *testing.T) {
	root := inferFromJSON(t, `{
		"type": "array",
		"items": {"type": "integer"}
	}`)
	entries := Locations(root)
	found := false
	for _, e := range entries {
		if e.Pointer == "/-" {
			found = true
			require.Equal(t, Cannot, e.Existence)
		}
	}
	require.True(t, found)
}

func TestLocationsEnumeratesNestedProperties(t *testing.T) {
	root := inferFromJSON(t, `{
		"type": "object",
		"properties": {
			"person": {
				"type": "object",
				"properties": {"name": {"type": "string"}},
				"required": ["name"]
			}
		},
		"required": ["person"]
	}`)
	entries := Locations(root)
	var names []string
	for _, e := range entries {
		names = append(names, e.Pointer)
	}
	require.Contains(t, names, "/person")
	require.Contains(t, names, "/person/name")
}

func TestJoinExistence(t *testing.T) {
	require.Equal(t, Cannot, joinExistence(Must, Cannot))
	require.Equal(t, Cannot, joinExistence(Cannot, May))
	require.Equal(t, May, joinExistence(Must, May))
	require.Equal(t, Must, joinExistence(Must, Must))
}
