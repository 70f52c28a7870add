package schemacore

import "github.com/flowcore/schemacore/node"

// evaluateConst checks the node against the schema's "const" keyword.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-const
func evaluateConst(schema *Schema, n node.Node) *Outcome {
	if schema.Const == nil || !schema.Const.IsSet {
		return nil
	}
	if !nodeEqualsLiteral(n, schema.Const.Value) {
		return &Outcome{Kind: ConstNotMatched}
	}
	return nil
}
