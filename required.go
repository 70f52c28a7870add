package schemacore

// evaluateRequired reports a MissingRequiredProperty outcome for every name
// in the schema's "required" list absent from seen, in the order named by
// the keyword (not sorted — the outcome stream should read like the schema
// author wrote it).
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-required
func evaluateRequired(schema *Schema, seen map[string]struct{}) []Outcome {
	if len(schema.Required) == 0 {
		return nil
	}
	var missing []Outcome
	for _, name := range schema.Required {
		if _, ok := seen[name]; !ok {
			missing = append(missing, Outcome{Kind: MissingRequiredProperty, Property: name})
		}
	}
	return missing
}
