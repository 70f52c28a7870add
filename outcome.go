package schemacore

// OutcomeKind enumerates every constraint violation the validator can
// produce. Validation never panics or returns a Go error for a failed
// document: a failure is always one of these values, carried inside an
// Outcome and routed through the caller's OutcomeFilter.
type OutcomeKind int

const (
	// False fires when the active schema is the literal `false` schema.
	False OutcomeKind = iota
	TypeNotMet
	ConstNotMatched
	EnumNotMatched

	MinLengthNotMet
	MaxLengthExceeded

	MinItemsNotMet
	MaxItemsExceeded
	ItemsNotUnique

	MinContainsNotMet
	MaxContainsExceeded

	MinPropertiesNotMet
	MaxPropertiesExceeded
	MissingRequiredProperty

	MinimumNotMet
	MaximumExceeded
	ExclusiveMinimumNotMet
	ExclusiveMaximumExceeded
	MultipleOfNotMet

	PatternNotMatched
	FormatNotMatched

	AnyOfNotMatched
	OneOfNotMatched
	OneOfMultipleMatched
	NotIsValid

	ReferenceNotFound
	RecursionDepthExceeded
)

// String names an OutcomeKind the way outcome_messages.go references it
// (as the suffix of each "outcome.<Kind>" key in locales/*.json).
func (k OutcomeKind) String() string {
	switch k {
	case False:
		return "False"
	case TypeNotMet:
		return "TypeNotMet"
	case ConstNotMatched:
		return "ConstNotMatched"
	case EnumNotMatched:
		return "EnumNotMatched"
	case MinLengthNotMet:
		return "MinLengthNotMet"
	case MaxLengthExceeded:
		return "MaxLengthExceeded"
	case MinItemsNotMet:
		return "MinItemsNotMet"
	case MaxItemsExceeded:
		return "MaxItemsExceeded"
	case ItemsNotUnique:
		return "ItemsNotUnique"
	case MinContainsNotMet:
		return "MinContainsNotMet"
	case MaxContainsExceeded:
		return "MaxContainsExceeded"
	case MinPropertiesNotMet:
		return "MinPropertiesNotMet"
	case MaxPropertiesExceeded:
		return "MaxPropertiesExceeded"
	case MissingRequiredProperty:
		return "MissingRequiredProperty"
	case MinimumNotMet:
		return "MinimumNotMet"
	case MaximumExceeded:
		return "MaximumExceeded"
	case ExclusiveMinimumNotMet:
		return "ExclusiveMinimumNotMet"
	case ExclusiveMaximumExceeded:
		return "ExclusiveMaximumExceeded"
	case MultipleOfNotMet:
		return "MultipleOfNotMet"
	case PatternNotMatched:
		return "PatternNotMatched"
	case FormatNotMatched:
		return "FormatNotMatched"
	case AnyOfNotMatched:
		return "AnyOfNotMatched"
	case OneOfNotMatched:
		return "OneOfNotMatched"
	case OneOfMultipleMatched:
		return "OneOfMultipleMatched"
	case NotIsValid:
		return "NotIsValid"
	case ReferenceNotFound:
		return "ReferenceNotFound"
	case RecursionDepthExceeded:
		return "RecursionDepthExceeded"
	default:
		return "Unknown"
	}
}

// Outcome is a single constraint violation, carrying whatever parameters
// its Kind needs to render a message (expected/actual bounds, a property
// name, a referenced URI, ...).
type Outcome struct {
	Kind OutcomeKind

	// Property names MissingRequiredProperty's absent field.
	Property string
	// URI names ReferenceNotFound's unresolved target.
	URI string
	// FormatName names FormatNotMatched's format.
	FormatName string
	// TypeSet names TypeNotMet's allowed types.
	TypeSet []string

	// Bound/Actual hold the relevant comparison values for length, item
	// count, property count, and numeric-bound outcomes. They are left
	// unset (nil) for outcomes that carry none.
	Bound  *float64
	Actual *float64
}

// ScopedOutcome attaches document and schema location to an Outcome, the
// unit the validator's outcome stream actually carries (§6).
type ScopedOutcome struct {
	Outcome Outcome
	// SchemaURI is the canonical URI of the schema keyword that produced
	// this outcome.
	SchemaURI string
	// TapeIndex is the document tape position the outcome is scoped to.
	TapeIndex int
}

// OutcomeFilter lets a caller select or summarize diagnostics; returning
// (_, false) drops the outcome from the stream entirely.
type OutcomeFilter func(ScopedOutcome) (ScopedOutcome, bool)

// KeepAll is the identity OutcomeFilter: every outcome passes through
// unchanged. It is the Validator's default.
func KeepAll(o ScopedOutcome) (ScopedOutcome, bool) { return o, true }

func boundOutcome(kind OutcomeKind, bound, actual float64) Outcome {
	b, a := bound, actual
	return Outcome{Kind: kind, Bound: &b, Actual: &a}
}
