package schemacore

import "github.com/flowcore/schemacore/node"

// evaluateUniqueItems checks pairwise equality (node.Equal) over the
// collected item nodes when the schema's "uniqueItems" is true. Per JSON
// Schema Draft 2020-12:
//   - If "uniqueItems" is false or absent, the array always validates
//     successfully regardless of duplicates.
//   - If "uniqueItems" is true, the array is valid only if no two elements
//     are equal, where equality follows the same structural rules as
//     "const"/"enum" (objects compared by key/value regardless of member
//     order, numbers compared by value regardless of literal form).
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-uniqueitems
func evaluateUniqueItems(schema *Schema, items []node.Node) *Outcome {
	if schema.UniqueItems == nil || !*schema.UniqueItems || len(items) < 2 {
		return nil
	}
	for i := 1; i < len(items); i++ {
		for j := 0; j < i; j++ {
			if node.Equal(items[i], items[j]) {
				return &Outcome{Kind: ItemsNotUnique}
			}
		}
	}
	return nil
}
