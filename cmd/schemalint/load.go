package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	schemacore "github.com/flowcore/schemacore"
	"github.com/flowcore/schemacore/node"
	"github.com/flowcore/schemacore/node/anynode"
)

// readFileOrStdin reads path, treating "" or "-" as stdin.
func readFileOrStdin(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// toJSON normalizes data to JSON bytes according to format ("json" or
// "yaml"). YAML decodes through goccy/go-yaml into a plain `any` tree,
// then re-encodes with goccy/go-json, the same two-step the teacher's
// compiler.go uses for its "application/yaml" media type handler.
func toJSON(data []byte, format string) ([]byte, error) {
	switch format {
	case "", "json":
		return data, nil
	case "yaml":
		var decoded any
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		encoded, err := json.Marshal(decoded)
		if err != nil {
			return nil, fmt.Errorf("re-encode yaml as json: %w", err)
		}
		return encoded, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want json or yaml)", format)
	}
}

// loadSchema reads path (or stdin) and parses it as a Schema, accepting
// either JSON or YAML source via format.
func loadSchema(path, format string) (*schemacore.Schema, error) {
	raw, err := readFileOrStdin(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	normalized, err := toJSON(raw, format)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", displayPath(path), err)
	}
	schema, err := schemacore.ParseSchema(normalized)
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", displayPath(path), err)
	}
	return schema, nil
}

// loadDocument reads path (or stdin) and wraps it as a node.Node,
// accepting either JSON or YAML source via format. JSON decodes directly
// through anynode.Decode (UseNumber-backed, so integers stay exact);
// YAML goes through the same normalize-to-JSON path as loadSchema before
// anynode takes over, since goccy/go-yaml has no UseNumber equivalent of
// its own.
func loadDocument(path, format string) (node.Node, error) {
	raw, err := readFileOrStdin(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	normalized, err := toJSON(raw, format)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", displayPath(path), err)
	}
	doc, err := anynode.Decode(normalized)
	if err != nil {
		return nil, fmt.Errorf("parse document %s: %w", displayPath(path), err)
	}
	return doc, nil
}

// rootSchemaURI returns the URI schema was registered under by index.Add,
// honoring a top-level "$id" if schema declares one (Index.Add registers
// an "$id"-bearing root under its resolved "$id", not under baseURI).
func rootSchemaURI(index *schemacore.Index, schema *schemacore.Schema, baseURI string) string {
	if schema.ID != "" {
		return index.Resolve(baseURI, schema.ID)
	}
	return baseURI
}

func displayPath(path string) string {
	if path == "" || path == "-" {
		return "<stdin>"
	}
	return path
}
