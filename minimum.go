package schemacore

import "math/big"

// evaluateMinimum checks value against the schema's "minimum" keyword.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-minimum
func evaluateMinimum(schema *Schema, value *big.Rat) *Outcome {
	if schema.Minimum == nil {
		return nil
	}
	if value.Cmp(schema.Minimum.Rat) < 0 {
		f, _ := value.Float64()
		b, _ := schema.Minimum.Float64()
		o := boundOutcome(MinimumNotMet, b, f)
		return &o
	}
	return nil
}
