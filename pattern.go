package schemacore

import "regexp"

// evaluatePattern checks instance against the schema's "pattern" keyword.
// Per JSON Schema Draft 2020-12:
//   - The value of "pattern" must be a string that is a valid regular
//     expression, in the ECMA-262 dialect.
//   - A string instance is valid if the regular expression matches the
//     instance successfully; the match is not implicitly anchored, so
//     "pattern" matches a substring unless the author anchors it with
//     "^"/"$" themselves.
//
// Unlike the teacher, which caches a compiled regexp on the mutable Schema
// itself, Schema here is immutable once built, so there is no field to
// cache into; compilation happens per call. A production-scale build would
// size an Index-owned regex cache instead (see DESIGN.md).
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-pattern
func evaluatePattern(schema *Schema, instance string) *Outcome {
	if schema.Pattern == nil {
		return nil
	}
	re, err := regexp.Compile(*schema.Pattern)
	if err != nil {
		return &Outcome{Kind: PatternNotMatched}
	}
	if !re.MatchString(instance) {
		return &Outcome{Kind: PatternNotMatched}
	}
	return nil
}
