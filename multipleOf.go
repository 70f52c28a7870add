package schemacore

import "math/big"

// evaluateMultipleOf checks value against the schema's "multipleOf" keyword.
// Per JSON Schema Draft 2020-12:
//   - The value of "multipleOf" must be a number, strictly greater than 0;
//     a non-positive divisor disables the keyword rather than failing
//     every instance.
//   - A numeric instance is valid only if dividing it by "multipleOf"
//     yields an integer, checked here with exact big.Rat division rather
//     than a float64 remainder, so a value like 0.1 isn't spuriously
//     rejected as "not a multiple of 0.1" by rounding error.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-multipleof
func evaluateMultipleOf(schema *Schema, value *big.Rat) *Outcome {
	if schema.MultipleOf == nil || schema.MultipleOf.Sign() <= 0 {
		return nil
	}
	quotient := new(big.Rat).Quo(value, schema.MultipleOf.Rat)
	if !quotient.IsInt() {
		f, _ := value.Float64()
		b, _ := schema.MultipleOf.Float64()
		o := boundOutcome(MultipleOfNotMet, b, f)
		return &o
	}
	return nil
}
