package schemacore

// evaluateMinItems checks an array's element count against "minItems".
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-minitems
func evaluateMinItems(schema *Schema, count int) *Outcome {
	if schema.MinItems == nil {
		return nil
	}
	if float64(count) < *schema.MinItems {
		o := boundOutcome(MinItemsNotMet, *schema.MinItems, float64(count))
		return &o
	}
	return nil
}
