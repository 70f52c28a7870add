package schemacore

// evaluateMaxProperties checks an object's member count against "maxProperties".
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-maxproperties
func evaluateMaxProperties(schema *Schema, count int) *Outcome {
	if schema.MaxProperties == nil {
		return nil
	}
	if float64(count) > *schema.MaxProperties {
		o := boundOutcome(MaxPropertiesExceeded, *schema.MaxProperties, float64(count))
		return &o
	}
	return nil
}
