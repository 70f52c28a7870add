package schemacore

// evaluateMinProperties checks an object's member count against "minProperties".
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-minproperties
func evaluateMinProperties(schema *Schema, count int) *Outcome {
	if schema.MinProperties == nil {
		return nil
	}
	if float64(count) < *schema.MinProperties {
		o := boundOutcome(MinPropertiesNotMet, *schema.MinProperties, float64(count))
		return &o
	}
	return nil
}
