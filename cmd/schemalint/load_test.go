package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONPassesThroughJSON(t *testing.T) {
	data := []byte(`{"type":"string"}`)
	out, err := toJSON(data, "json")
	require.NoError(t, err)
	assert.Equal(t, data, out)

	out, err = toJSON(data, "")
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestToJSONConvertsYAML(t *testing.T) {
	data := []byte("type: object\nproperties:\n  name:\n    type: string\n")
	out, err := toJSON(data, "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(out), `"type":"object"`)
	assert.Contains(t, string(out), `"name"`)
}

func TestToJSONRejectsUnknownFormat(t *testing.T) {
	_, err := toJSON([]byte(`{}`), "toml")
	assert.Error(t, err)
}

func TestDisplayPath(t *testing.T) {
	assert.Equal(t, "<stdin>", displayPath(""))
	assert.Equal(t, "<stdin>", displayPath("-"))
	assert.Equal(t, "schema.json", displayPath("schema.json"))
}

func TestLoadSchemaFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"string","minLength":2}`), 0o600))

	schema, err := loadSchema(path, "json")
	require.NoError(t, err)
	require.NotNil(t, schema)
}

func TestLoadDocumentFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"alice"}`), 0o600))

	doc, err := loadDocument(path, "json")
	require.NoError(t, err)
	require.NotNil(t, doc)
}

func TestLoadSchemaRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("type: [unterminated"), 0o600))

	_, err := loadSchema(path, "yaml")
	assert.Error(t, err)
}
