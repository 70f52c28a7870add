package schemacore

import "unicode/utf8"

// evaluateMaxLength checks a string node's rune count against "maxLength".
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-maxlength
func evaluateMaxLength(schema *Schema, value string) *Outcome {
	if schema.MaxLength == nil {
		return nil
	}
	length := utf8.RuneCountInString(value)
	if length > int(*schema.MaxLength) {
		o := boundOutcome(MaxLengthExceeded, *schema.MaxLength, float64(length))
		return &o
	}
	return nil
}
