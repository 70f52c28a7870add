package schemacore

import "math/big"

// evaluateExclusiveMaximum checks value against "exclusiveMaximum".
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-exclusivemaximum
func evaluateExclusiveMaximum(schema *Schema, value *big.Rat) *Outcome {
	if schema.ExclusiveMaximum == nil {
		return nil
	}
	if value.Cmp(schema.ExclusiveMaximum.Rat) >= 0 {
		f, _ := value.Float64()
		b, _ := schema.ExclusiveMaximum.Float64()
		o := boundOutcome(ExclusiveMaximumExceeded, b, f)
		return &o
	}
	return nil
}
