package schemacore

import "errors"

// === Index and reference resolution errors ===
var (
	// ErrUnresolvedReference is returned by Index.VerifyReferences when a
	// Ref or DynamicRef application targets a URI the index does not know.
	ErrUnresolvedReference = errors.New("unresolved schema reference")

	// ErrDuplicateURI names a collision between two schemas registered under
	// the same canonical URI. Index.Add does not return it: a later
	// registration of an already-known URI replaces the earlier entry.
	ErrDuplicateURI = errors.New("duplicate schema uri")

	// ErrIndexFrozen is returned by Index.Add once VerifyReferences has run;
	// insertion is a build-phase-only operation.
	ErrIndexFrozen = errors.New("index is frozen")

	// ErrSchemaNotFound is returned by Validator.Validate when its schema URI
	// is not registered in the Index (Index.Fetch itself reports this through
	// its found result).
	ErrSchemaNotFound = errors.New("schema not found")
)

// === Format validation errors ===
var (
	// ErrIPv6AddressNotEnclosed is returned by urlParse when a URI's host is
	// an IPv6 address that is not wrapped in square brackets.
	ErrIPv6AddressNotEnclosed = errors.New("ipv6 address is not enclosed in brackets")

	// ErrInvalidIPv6Address is returned by urlParse when a URI's bracketed
	// host is not a valid IPv6 address.
	ErrInvalidIPv6Address = errors.New("invalid ipv6 address")
)

// === Schema construction errors ===
var (
	// ErrInvalidSchemaType is returned when a "type" keyword value is
	// neither a string nor a list of strings.
	ErrInvalidSchemaType = errors.New("invalid schema type")

	// ErrNilConstValue is returned when ConstValue.UnmarshalJSON is invoked
	// on a nil receiver.
	ErrNilConstValue = errors.New("cannot unmarshal into nil ConstValue")

	// ErrUnsupportedRatType is returned when a numeric keyword's literal
	// value cannot be converted to an exact rational.
	ErrUnsupportedRatType = errors.New("unsupported type for exact rational conversion")

	// ErrRatConversion is returned when a numeric literal fails to parse.
	ErrRatConversion = errors.New("rational conversion failed")
)

// RegexPatternError describes a malformed regular expression in a schema
// tree ("pattern" or a "patternProperties" key). Index.Add does not check
// patterns and nothing in this package returns this type; at validation
// time a malformed pattern simply never matches.
type RegexPatternError struct {
	Keyword  string
	Location string
	Pattern  string
	Err      error
}

func (e *RegexPatternError) Error() string {
	return e.Keyword + " at " + e.Location + ": invalid pattern " + e.Pattern + ": " + e.Err.Error()
}

func (e *RegexPatternError) Unwrap() error { return e.Err }

// UnresolvedReferenceError names the offending URI for ErrUnresolvedReference.
type UnresolvedReferenceError struct {
	URI string
}

func (e *UnresolvedReferenceError) Error() string {
	return "unresolved schema reference: " + e.URI
}

func (e *UnresolvedReferenceError) Unwrap() error { return ErrUnresolvedReference }
