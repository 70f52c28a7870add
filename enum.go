package schemacore

import "github.com/flowcore/schemacore/node"

// evaluateEnum checks the node against the schema's "enum" keyword.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-enum
func evaluateEnum(schema *Schema, n node.Node) *Outcome {
	if len(schema.Enum) == 0 {
		return nil
	}
	for _, v := range schema.Enum {
		if nodeEqualsLiteral(n, v) {
			return nil
		}
	}
	return &Outcome{Kind: EnumNotMatched}
}
