package schemacore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowcore/schemacore/node/anynode"
)

// buildIndex parses schemaJSON, registers it under a fixed base URI and
// verifies references, returning the index and the schema's canonical URI.
func buildIndex(t *testing.T, schemaJSON string) (*Index, string) {
	t.Helper()
	schema, err := ParseSchema([]byte(schemaJSON))
	require.NoError(t, err)

	const base = ""
	index := NewIndex()
	require.NoError(t, index.Add(schema, base))
	require.NoError(t, index.VerifyReferences())

	schemaURI := base
	if schema.ID != "" {
		schemaURI = index.Resolve(base, schema.ID)
	}
	return index, schemaURI
}

func validateJSON(t *testing.T, schemaJSON, docJSON string) []ScopedOutcome {
	t.Helper()
	index, schemaURI := buildIndex(t, schemaJSON)
	doc, err := anynode.Decode([]byte(docJSON))
	require.NoError(t, err)

	validator := NewValidator(index, KeepAll)
	outcomes, err := validator.Validate(schemaURI, doc)
	require.NoError(t, err)
	return outcomes
}

// Scenario 1: a too-short string reports MinLengthNotMet(3, 2).
func TestE2EMinLengthNotMet(t *testing.T) {
	outcomes := validateJSON(t, `{"type":"string","minLength":3,"maxLength":5}`, `"ab"`)
	require.NotEmpty(t, outcomes)

	found := false
	for _, o := range outcomes {
		if o.Outcome.Kind == MinLengthNotMet {
			require.NotNil(t, o.Outcome.Bound)
			require.NotNil(t, o.Outcome.Actual)
			require.Equal(t, float64(3), *o.Outcome.Bound)
			require.Equal(t, float64(2), *o.Outcome.Actual)
			found = true
		}
	}
	require.True(t, found)
}

// Scenario 2: a oneOf where the document matches neither branch reports
// OneOfNotMatched.
func TestE2EOneOfNotMatched(t *testing.T) {
	outcomes := validateJSON(t, `{"oneOf":[{"const":"a"},{"const":"b"}]}`, `"c"`)
	require.NotEmpty(t, outcomes)
	requireOutcomeKind(t, outcomes, OneOfNotMatched)
}

// Scenario 3: a oneOf where both branches match reports
// OneOfMultipleMatched.
func TestE2EOneOfMultipleMatched(t *testing.T) {
	outcomes := validateJSON(t, `{"oneOf":[{"type":"string"},{"minLength":0}]}`, `"x"`)
	require.NotEmpty(t, outcomes)
	requireOutcomeKind(t, outcomes, OneOfMultipleMatched)
}

// Scenario 4: an object with an unevaluated property under
// unevaluatedProperties:false is invalid, scoped to the offending
// property.
func TestE2EUnevaluatedPropertiesFalse(t *testing.T) {
	outcomes := validateJSON(t, `{
		"properties": {"a": {"type": "integer"}},
		"unevaluatedProperties": false
	}`, `{"a":1,"b":2}`)
	require.NotEmpty(t, outcomes)
	requireOutcomeKind(t, outcomes, False)
}

// Scenario 5: a self-referential allOf chain never panics or hangs. The
// validator's frame stack has a hard depth bound (§5's "Lifecycle": 512
// frames), so an unguarded infinite $ref cycle like this one terminates by
// hitting that bound and reporting RecursionDepthExceeded rather than by
// resolving to "no constraints left" — termination, not validity, is the
// guarantee this checks.
func TestE2ERecursiveRefTerminates(t *testing.T) {
	outcomes := validateJSON(t, `{
		"$id": "r",
		"$defs": {"n": {"allOf": [{"$ref": "#/$defs/n"}]}},
		"$ref": "#/$defs/n"
	}`, `{"anything":"goes"}`)
	requireOutcomeKind(t, outcomes, RecursionDepthExceeded)
}

// Scenario 6: inferring a oneOf-of-consts yields a string type, the union
// of both consts as the enum, and Inline provenance.
func TestE2EInferOneOfConsts(t *testing.T) {
	schema, err := ParseSchema([]byte(`{"oneOf":[{"const":"a"},{"const":"b"}]}`))
	require.NoError(t, err)
	shape := Infer(schema, nil, "")

	require.True(t, shape.Type[ShapeString])
	require.False(t, shape.Type[ShapeInteger])
	require.True(t, shape.HasEnum)
	require.ElementsMatch(t, []any{"a", "b"}, shape.Enum)
	require.Equal(t, ProvenanceInline, shape.Provenance.Kind)
}

// Scenario 7: locating each index of a fixed-length tuple with a trailing
// "additionalItems"-equivalent shape reports the documented existence at
// each position, including the end-of-array sentinel.
func TestE2ELocateTupleExistence(t *testing.T) {
	schema, err := ParseSchema([]byte(`{
		"type": "array",
		"minItems": 2,
		"prefixItems": [{"const": "x"}, {"const": "y"}],
		"items": {"const": "z"}
	}`))
	require.NoError(t, err)
	shape := Infer(schema, nil, "")

	s0, e0, ok := Locate(shape, "/0")
	require.True(t, ok)
	require.Equal(t, Must, e0)
	require.Equal(t, []any{"x"}, s0.Enum)

	s1, e1, ok := Locate(shape, "/1")
	require.True(t, ok)
	require.Equal(t, Must, e1)
	require.Equal(t, []any{"y"}, s1.Enum)

	s2, e2, ok := Locate(shape, "/2")
	require.True(t, ok)
	require.Equal(t, May, e2)
	require.Equal(t, []any{"z"}, s2.Enum)

	sEnd, eEnd, ok := Locate(shape, "/-")
	require.True(t, ok)
	require.Equal(t, Cannot, eEnd)
	require.Equal(t, []any{"z"}, sEnd.Enum)
}

func requireOutcomeKind(t *testing.T, outcomes []ScopedOutcome, kind OutcomeKind) {
	t.Helper()
	for _, o := range outcomes {
		if o.Outcome.Kind == kind {
			return
		}
	}
	t.Fatalf("expected an outcome of kind %s, got %+v", kind, outcomes)
}
