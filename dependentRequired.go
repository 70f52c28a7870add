package schemacore

import "sort"

// evaluateDependentRequired reports a MissingRequiredProperty outcome for
// every property named by "dependentRequired" whose trigger property is
// present in seen but which is itself absent.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-dependentrequired
func evaluateDependentRequired(schema *Schema, seen map[string]struct{}) []Outcome {
	if len(schema.DependentRequired) == 0 {
		return nil
	}

	triggers := make([]string, 0, len(schema.DependentRequired))
	for key := range schema.DependentRequired {
		triggers = append(triggers, key)
	}
	sort.Strings(triggers)

	var missing []Outcome
	for _, key := range triggers {
		if _, present := seen[key]; !present {
			continue
		}
		for _, required := range schema.DependentRequired[key] {
			if _, ok := seen[required]; !ok {
				missing = append(missing, Outcome{Kind: MissingRequiredProperty, Property: required})
			}
		}
	}
	return missing
}
