package schemacore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnythingNothing(t *testing.T) {
	any := Anything()
	assert.Len(t, any.Type, len(allShapeTypes))
	for _, ty := range allShapeTypes {
		assert.True(t, any.Type[ty])
	}
	assert.False(t, any.isEmpty())

	nothing := Nothing()
	assert.Empty(t, nothing.Type)
	assert.True(t, nothing.isEmpty())
}

func TestOnlyType(t *testing.T) {
	s := &Shape{Type: map[ShapeType]bool{ShapeString: true}}
	assert.True(t, s.onlyType(ShapeString))
	assert.False(t, s.onlyType(ShapeInteger))

	multi := &Shape{Type: map[ShapeType]bool{ShapeString: true, ShapeInteger: true}}
	assert.False(t, multi.onlyType(ShapeString))
}

func TestCloneDoesNotAlias(t *testing.T) {
	original := Anything()
	original.Array.Tuple = []*Shape{Anything()}
	original.Object.Properties = []ObjectProperty{{Name: "a", Shape: Anything()}}

	clone := original.clone()
	clone.Type[ShapeString] = false
	clone.Array.Tuple = append(clone.Array.Tuple, Nothing())
	clone.Object.Properties[0].Name = "b"

	assert.True(t, original.Type[ShapeString])
	assert.Len(t, original.Array.Tuple, 1)
	assert.Equal(t, "a", original.Object.Properties[0].Name)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, (&Shape{Type: map[ShapeType]bool{}}).isEmpty())
	assert.False(t, (&Shape{Type: map[ShapeType]bool{ShapeNull: true}}).isEmpty())
}
