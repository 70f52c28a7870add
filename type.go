package schemacore

import "github.com/flowcore/schemacore/node"

// evaluateType checks the node's Kind against the schema's "type" set.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-type
func evaluateType(schema *Schema, n node.Node) *Outcome {
	if len(schema.Type) == 0 {
		return nil
	}

	actual := node.TypeName(n.Kind())
	for _, want := range schema.Type {
		if want == "number" && actual == "integer" {
			return nil
		}
		if want == actual {
			return nil
		}
	}

	return &Outcome{Kind: TypeNotMet, TypeSet: schema.Type}
}
