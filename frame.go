package schemacore

import "github.com/flowcore/schemacore/internal/bitset"

// frameFlag packs the per-frame booleans the unwind rules in
// validator_applicators.go read and set.
type frameFlag uint8

const (
	flagInvalid frameFlag = 1 << iota
	flagValidAnyOf
	flagValidOneOf
	flagValidIfThen
	flagValidIfElse
)

func (f frameFlag) has(bit frameFlag) bool { return f&bit != 0 }

// parentKeyword names the applicator that spawned a frame, so unwind can
// dispatch to the right folding rule without re-inspecting the schema.
type parentKeyword int

const (
	keywordRoot parentKeyword = iota
	keywordAllOf
	keywordAnyOf
	keywordOneOf
	keywordNot
	keywordIf
	keywordThen
	keywordElse
	keywordDependentSchemas
	keywordRef
	keywordDynamicRef
	keywordPrefixItems
	keywordItems
	keywordContains
	keywordUnevaluatedItems
	keywordProperties
	keywordPatternProperties
	keywordAdditionalProperties
	keywordPropertyNames
	keywordUnevaluatedProperties
)

// inPlace reports whether k applies to the same document node as its
// parent (rather than spawning a frame for an actual document child).
func (k parentKeyword) inPlace() bool {
	switch k {
	case keywordAllOf, keywordAnyOf, keywordOneOf, keywordNot,
		keywordIf, keywordThen, keywordElse,
		keywordDependentSchemas, keywordRef, keywordDynamicRef:
		return true
	default:
		return false
	}
}

// viaRefEdge reports whether k is a $ref/$dynamicRef application, the only
// edges the $dynamicRef frame-stack scan follows.
func (k parentKeyword) viaRefEdge() bool {
	return k == keywordRef || k == keywordDynamicRef
}

// countsAsEvaluated reports whether k is tracked by the unevaluated-child
// speculative protocol as a "counts toward evaluated" applicator.
func (k parentKeyword) countsAsEvaluated() bool {
	switch k {
	case keywordPrefixItems, keywordItems, keywordProperties,
		keywordPatternProperties, keywordAdditionalProperties:
		return true
	default:
		return false
	}
}

// speculative is the sidecar a frame acquires when its schema carries
// unevaluatedItems or unevaluatedProperties.
type speculative struct {
	evaluated          *bitset.Set
	invalidUnevaluated *bitset.Set
	buffered           []ScopedOutcome
}

// frame is the validator's per-schema-invocation record (§3 "Validator
// Frame"). Frames live in the Validator's stack for the duration of a
// single call to walk over one document node.
type frame struct {
	schema    *Schema
	schemaURI string

	parentIdx     int // -1 for a root frame; walk passes 0 for every other frame and does not read it
	parentKeyword parentKeyword
	childIndex    int // not populated by walk (always 0)

	flags   frameFlag
	counter int // properties cursor / contains match counter

	outcomes  []ScopedOutcome
	spec      *speculative
	tapeIndex int

	// dynamicBaseURI is the base URI (fragment stripped) of the schema
	// that owns this frame, used when this frame was reached via a ref
	// edge to resolve a $dynamicRef relative to it during the frame-stack
	// scan.
	dynamicBaseURI string
}

func (f *frame) markInvalid() { f.flags |= flagInvalid }
func (f *frame) isInvalid() bool { return f.flags.has(flagInvalid) }

func (f *frame) emit(o Outcome) {
	f.outcomes = append(f.outcomes, ScopedOutcome{
		Outcome:   o,
		SchemaURI: f.schemaURI,
		TapeIndex: f.tapeIndex,
	})
}

// ensureSpeculative lazily allocates the sidecar once the schema is known
// to need it, sized to the node's child count.
func (f *frame) ensureSpeculative(childCount int) *speculative {
	if f.spec == nil {
		f.spec = &speculative{
			evaluated:          bitset.New(childCount),
			invalidUnevaluated: bitset.New(childCount),
		}
	}
	return f.spec
}
