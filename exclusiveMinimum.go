package schemacore

import "math/big"

// evaluateExclusiveMinimum checks value against "exclusiveMinimum".
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-exclusiveminimum
func evaluateExclusiveMinimum(schema *Schema, value *big.Rat) *Outcome {
	if schema.ExclusiveMinimum == nil {
		return nil
	}
	if value.Cmp(schema.ExclusiveMinimum.Rat) <= 0 {
		f, _ := value.Float64()
		b, _ := schema.ExclusiveMinimum.Float64()
		o := boundOutcome(ExclusiveMinimumNotMet, b, f)
		return &o
	}
	return nil
}
