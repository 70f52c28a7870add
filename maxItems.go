package schemacore

// evaluateMaxItems checks an array's element count against "maxItems".
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-maxitems
func evaluateMaxItems(schema *Schema, count int) *Outcome {
	if schema.MaxItems == nil {
		return nil
	}
	if float64(count) > *schema.MaxItems {
		o := boundOutcome(MaxItemsExceeded, *schema.MaxItems, float64(count))
		return &o
	}
	return nil
}
