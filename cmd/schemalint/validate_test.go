package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcore/schemacore/log"
)

func writeTempFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestRunValidateAcceptsValidDocument(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeTempFile(t, dir, "schema.json", `{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`)
	docPath := writeTempFile(t, dir, "doc.json", `{"name":"alice"}`)

	cfg := &validateConfig{schemaPath: schemaPath, schemaFormat: "json", docPath: docPath, docFormat: "json", locale: "en", quiet: true}
	err := runValidate(cfg, log.New(&bytes.Buffer{}, log.LevelError))
	assert.NoError(t, err)
}

func TestRunValidateRejectsInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeTempFile(t, dir, "schema.json", `{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`)
	docPath := writeTempFile(t, dir, "doc.json", `{}`)

	cfg := &validateConfig{schemaPath: schemaPath, schemaFormat: "json", docPath: docPath, docFormat: "json", locale: "en", quiet: true}
	err := runValidate(cfg, log.New(&bytes.Buffer{}, log.LevelError))
	assert.Error(t, err)
}

func TestRunShapePrintsInferredShape(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeTempFile(t, dir, "schema.json", `{"type":"object","properties":{"name":{"type":"string"}}}`)

	cfg := &shapeConfig{schemaPath: schemaPath, schemaFormat: "json"}
	err := runShape(cfg, log.New(&bytes.Buffer{}, log.LevelError))
	assert.NoError(t, err)
}

func TestRunShapeLocateUnreachablePointerErrors(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeTempFile(t, dir, "schema.json", `{"type":"string"}`)

	cfg := &shapeConfig{schemaPath: schemaPath, schemaFormat: "json", locate: "/name"}
	err := runShape(cfg, log.New(&bytes.Buffer{}, log.LevelError))
	assert.Error(t, err)
}

// A schema declaring its own top-level "$id" is registered in the index
// under that $id rather than under the CLI's fixed base URI; both
// runValidate and runShape must look it up accordingly instead of assuming
// the root always lives at the base URI.
func TestRunValidateAcceptsDocumentAgainstSchemaWithID(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeTempFile(t, dir, "schema.json", `{"$id":"https://example.test/widget","type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`)
	docPath := writeTempFile(t, dir, "doc.json", `{"name":"alice"}`)

	cfg := &validateConfig{schemaPath: schemaPath, schemaFormat: "json", docPath: docPath, docFormat: "json", locale: "en", quiet: true}
	err := runValidate(cfg, log.New(&bytes.Buffer{}, log.LevelError))
	assert.NoError(t, err)
}

func TestRunShapeLocatesPropertyOnSchemaWithIDAndSelfRef(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeTempFile(t, dir, "schema.json", `{
		"$id": "https://example.test/widget",
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"child": {"$ref": "https://example.test/widget"}
		}
	}`)

	cfg := &shapeConfig{schemaPath: schemaPath, schemaFormat: "json", locate: "/name"}
	err := runShape(cfg, log.New(&bytes.Buffer{}, log.LevelError))
	assert.NoError(t, err)
}
