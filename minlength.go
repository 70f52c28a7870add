package schemacore

import "unicode/utf8"

// evaluateMinLength checks a string node's rune count against "minLength".
// Per JSON Schema Draft 2020-12, "minLength" counts Unicode code points, not
// bytes, so a single multi-byte character (e.g. an emoji) counts as one
// unit regardless of its UTF-8 encoded size.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-minlength
func evaluateMinLength(schema *Schema, value string) *Outcome {
	if schema.MinLength == nil {
		return nil
	}
	length := utf8.RuneCountInString(value)
	if length < int(*schema.MinLength) {
		o := boundOutcome(MinLengthNotMet, *schema.MinLength, float64(length))
		return &o
	}
	return nil
}
