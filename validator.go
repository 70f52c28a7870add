package schemacore

import (
	"regexp"

	"github.com/flowcore/schemacore/node"
	"github.com/flowcore/schemacore/node/anynode"
)

// maxFrameDepth bounds the validator's frame stack (§3 "Lifecycle": "a
// bounded stack (hard limit: 512 frames) guards against recursion").
const maxFrameDepth = 512

// Validator walks a document against a schema resolved through an Index,
// producing a stream of Outcomes filtered by the caller's OutcomeFilter.
// A Validator holds no per-document state between calls, so many of them
// may validate concurrently against the same Index (§3 "Lifecycle").
//
// Grounded on the teacher's Compiler/Schema pairing: the teacher resolves
// and validates in one step via Schema.Validate walking its own compiled
// tree; this splits that into an Index (URI resolution, frozen once built)
// and a Validator (pure document walk over a borrowed Index), matching the
// "compiled Schema is added to an Index, which resolves refs; the
// Validator is constructed over an Index" data flow.
type Validator struct {
	index  *Index
	filter OutcomeFilter
}

// NewValidator returns a Validator over index, keeping every outcome that
// filter lets through. A nil filter defaults to KeepAll.
func NewValidator(index *Index, filter OutcomeFilter) *Validator {
	if filter == nil {
		filter = KeepAll
	}
	return &Validator{index: index, filter: filter}
}

// Validate looks schemaURI up in the Validator's index and walks doc
// against it.
func (v *Validator) Validate(schemaURI string, doc node.Node) ([]ScopedOutcome, error) {
	schema, _, ok := v.index.Fetch(schemaURI)
	if !ok {
		return nil, ErrSchemaNotFound
	}
	return v.ValidateSchema(schema, schemaURI, doc), nil
}

// ValidateSchema walks doc against schema directly. schemaURI scopes the
// outcomes this top-level call emits; nested applicators contribute their
// own schema's URI as resolved through the index.
func (v *Validator) ValidateSchema(schema *Schema, schemaURI string, doc node.Node) []ScopedOutcome {
	w := &walk{v: v}
	f := w.newFrame(schema, schemaURI, -1, keywordRoot)
	w.visit(f, doc)
	w.flush(f)
	return w.collected
}

// walk carries the mutable state threaded through one top-level
// ValidateSchema call: the frame stack backing the $dynamicRef scope scan
// and the recursion-depth guard, the monotonic tape counter, and the
// accumulated, filtered outcome stream.
type walk struct {
	v         *Validator
	stack     []*frame
	tape      int
	collected []ScopedOutcome
}

func (w *walk) nextTape() int {
	t := w.tape
	w.tape++
	return t
}

func (w *walk) newFrame(schema *Schema, schemaURI string, parentIdx int, kw parentKeyword) *frame {
	return &frame{
		schema:        schema,
		schemaURI:     schemaURI,
		parentIdx:     parentIdx,
		parentKeyword: kw,
		tapeIndex:     w.nextTape(),
	}
}

// visit runs Wind, the leaf Visit, and Unwind for f against document node
// n, pushing f onto the frame stack for the duration so a nested
// $dynamicRef can scan back toward the root. f's outcomes stay on f for
// the applicator that created it to fold into its parent or discard;
// ValidateSchema drains the root frame's outcomes through the filter.
func (w *walk) visit(f *frame, n node.Node) {
	if len(w.stack) >= maxFrameDepth {
		f.emit(Outcome{Kind: RecursionDepthExceeded})
		return
	}
	w.stack = append(w.stack, f)
	defer func() { w.stack = w.stack[:len(w.stack)-1] }()

	if f.schema.IsFalse() {
		f.emit(Outcome{Kind: False})
		f.markInvalid()
		return
	}
	if f.schema.IsTrue() {
		return
	}

	if n.Kind() == node.KindArray || n.Kind() == node.KindObject {
		f.ensureSpeculative(childCount(n))
	}

	w.visitLeaf(f, n)
	w.windInPlace(f, n)
	switch n.Kind() {
	case node.KindArray:
		w.windArray(f, n)
	case node.KindObject:
		w.windObject(f, n)
	}
}

// flush routes the root frame's accumulated outcomes through the
// validator's filter.
func (w *walk) flush(f *frame) {
	for _, o := range f.outcomes {
		if kept, ok := w.v.filter(o); ok {
			w.collected = append(w.collected, kept)
		}
	}
}

// visitLeaf applies every keyword that evaluates against the node's scalar
// value directly, independent of its Kind's structure.
func (w *walk) visitLeaf(f *frame, n node.Node) {
	s := f.schema

	if o := evaluateType(s, n); o != nil {
		f.emit(*o)
		f.markInvalid()
	}
	if o := evaluateConst(s, n); o != nil {
		f.emit(*o)
		f.markInvalid()
	}
	if o := evaluateEnum(s, n); o != nil {
		f.emit(*o)
		f.markInvalid()
	}

	switch n.Kind() {
	case node.KindString:
		str := n.String()
		if o := evaluateMinLength(s, str); o != nil {
			f.emit(*o)
			f.markInvalid()
		}
		if o := evaluateMaxLength(s, str); o != nil {
			f.emit(*o)
			f.markInvalid()
		}
		if o := evaluatePattern(s, str); o != nil {
			f.emit(*o)
			f.markInvalid()
		}
		if o := evaluateFormat(s, str); o != nil {
			f.emit(*o)
			f.markInvalid()
		}
	case node.KindPosInt, node.KindNegInt, node.KindFloat:
		r := nodeToRat(n)
		if o := evaluateMinimum(s, r); o != nil {
			f.emit(*o)
			f.markInvalid()
		}
		if o := evaluateMaximum(s, r); o != nil {
			f.emit(*o)
			f.markInvalid()
		}
		if o := evaluateExclusiveMinimum(s, r); o != nil {
			f.emit(*o)
			f.markInvalid()
		}
		if o := evaluateExclusiveMaximum(s, r); o != nil {
			f.emit(*o)
			f.markInvalid()
		}
		if o := evaluateMultipleOf(s, r); o != nil {
			f.emit(*o)
			f.markInvalid()
		}
	}
}

// childCount returns an array's element count or an object's member count,
// the size a frame's speculative sidecar is allocated to; 0 for scalars.
func childCount(n node.Node) int {
	switch n.Kind() {
	case node.KindArray:
		count := 0
		it := n.Array()
		for it.Next() {
			count++
		}
		return count
	case node.KindObject:
		count := 0
		it := n.Fields()
		for it.Next() {
			count++
		}
		return count
	default:
		return 0
	}
}

// arrayItems materializes an array node's elements so they can be indexed
// by prefixItems/items/contains/unevaluatedItems without re-iterating.
func arrayItems(n node.Node) []node.Node {
	it := n.Array()
	items := make([]node.Node, 0, 8)
	for it.Next() {
		items = append(items, it.Node())
	}
	return items
}

type field struct {
	name string
	node node.Node
}

// objectFields materializes an object node's members in ascending key
// order, the order properties/patternProperties/required evaluation
// depends on.
func objectFields(n node.Node) []field {
	it := n.Fields()
	fields := make([]field, 0, 8)
	for it.Next() {
		fields = append(fields, field{name: it.Name(), node: it.Node()})
	}
	return fields
}

// sortedPropertyNames returns sm's keys in lexicographic order, or nil if sm is
// unset; SchemaMap.SortedNames has a value receiver, so a direct call
// through a nil *SchemaMap would panic.
func sortedPropertyNames(sm *SchemaMap) []string {
	if sm == nil {
		return nil
	}
	return sm.SortedNames()
}

func lookupProperty(sm *SchemaMap, name string) (*Schema, bool) {
	if sm == nil {
		return nil, false
	}
	s, ok := (*sm)[name]
	return s, ok
}

// compilePatternProperty compiles a "patternProperties" key, failing
// closed (never matching) on malformed regex text, matching pattern.go's
// treatment of an invalid "pattern" keyword.
func compilePatternProperty(pat string) *regexp.Regexp {
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil
	}
	return re
}

// anynodeString exposes anynode.New to validator_applicators.go for
// wrapping a property name as a synthetic node.Node for "propertyNames".
func anynodeString(s string) node.Node { return anynode.New(s) }
