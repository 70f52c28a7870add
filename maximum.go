package schemacore

import "math/big"

// evaluateMaximum checks value against the schema's "maximum" keyword.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-maximum
func evaluateMaximum(schema *Schema, value *big.Rat) *Outcome {
	if schema.Maximum == nil {
		return nil
	}
	if value.Cmp(schema.Maximum.Rat) > 0 {
		f, _ := value.Float64()
		b, _ := schema.Maximum.Float64()
		o := boundOutcome(MaximumExceeded, b, f)
		return &o
	}
	return nil
}
