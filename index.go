package schemacore

import "sync"

// entry is what Index stores per canonical URI: the schema it names and
// whether that name came from a "$dynamicAnchor" (as opposed to "$id", a
// plain "$anchor", or a JSON Pointer into the enclosing resource).
type entry struct {
	schema    *Schema
	isDynamic bool
}

// Index maps absolute schema URIs (including fragment anchors and JSON
// Pointer fragments) to the Schema resource they name. Schemas are added
// during a build phase; once VerifyReferences succeeds the index is frozen
// and Fetch becomes total over known URIs, safe for concurrent use by many
// Validators (§4.1).
//
// Grounded on the teacher's Compiler: Compiler.schemas/unresolvedRefs play
// the same role as this type's uris/pendingRef, but the teacher resolves
// references eagerly and incrementally as schemas arrive out of order. This
// index instead defers all reference resolution to a single
// VerifyReferences pass, matching the explicit build-then-freeze lifecycle.
type Index struct {
	mu         sync.RWMutex
	uris       map[string]entry
	baseOf     map[*Schema]string
	pendingRef []pendingReference
	frozen     bool
}

type pendingReference struct {
	from    *Schema
	baseURI string
	ref     string
	dynamic bool
}

// NewIndex returns an empty, unfrozen Index.
func NewIndex() *Index {
	return &Index{
		uris:   make(map[string]entry),
		baseOf: make(map[*Schema]string),
	}
}

// Add enumerates root's canonical URI, every nested "$id" base change,
// every "$anchor" / "$dynamicAnchor" fragment, and every plain JSON Pointer
// location reachable by walking the keyword tree, registering each in the
// index. It also records every "$ref" / "$dynamicRef" found so
// VerifyReferences can resolve them later. baseURI is the URI root should
// be resolved against if it declares no "$id" of its own (pass "" for a
// standalone root schema).
func (ix *Index) Add(root *Schema, baseURI string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.frozen {
		return ErrIndexFrozen
	}
	ix.addLocked(root, baseURI, "")
	return nil
}

// addLocked registers s and recurses into its children. pointer is the
// JSON Pointer path from the nearest enclosing "$id" resource root to s
// ("" at that root itself), the path a plain fragment-only "$ref" like
// "#/$defs/foo" resolves against.
func (ix *Index) addLocked(s *Schema, parentBaseURI string, pointer string) {
	if s == nil || s.IsFalse() || s.IsTrue() {
		return
	}

	base := parentBaseURI
	if s.ID != "" {
		uri := s.ID
		if !isAbsoluteURI(uri) {
			uri = resolveRelativeURI(parentBaseURI, uri)
		}
		base = getBaseURI(uri)
		if base == "" {
			base = uri
		}
		ix.uris[uri] = entry{schema: s}
		pointer = ""
	}
	ix.baseOf[s] = base

	if pointer != "" {
		ix.uris[base+"#"+pointer] = entry{schema: s}
	} else if s.ID == "" {
		// The top-level Add call reaches here with an empty pointer and no
		// "$id" of its own: it's the root resource, named by parentBaseURI
		// alone (no fragment). Without this, a schema that never declares
		// "$id" could never be Fetch'd back by the URI it was Added under.
		ix.uris[base] = entry{schema: s}
	}
	if s.Anchor != "" {
		ix.uris[base+"#"+s.Anchor] = entry{schema: s}
	}
	if s.DynamicAnchor != "" {
		ix.uris[base+"#"+s.DynamicAnchor] = entry{schema: s, isDynamic: true}
	}

	if s.Ref != "" {
		ix.pendingRef = append(ix.pendingRef, pendingReference{from: s, baseURI: base, ref: s.Ref})
	}
	if s.DynamicRef != "" {
		ix.pendingRef = append(ix.pendingRef, pendingReference{from: s, baseURI: base, ref: s.DynamicRef, dynamic: true})
	}

	for name, def := range s.Defs {
		ix.addLocked(def, base, pointer+"/$defs/"+name)
	}
	for i, child := range s.AllOf {
		ix.addLocked(child, base, pointer+"/allOf/"+itoa(i))
	}
	for i, child := range s.AnyOf {
		ix.addLocked(child, base, pointer+"/anyOf/"+itoa(i))
	}
	for i, child := range s.OneOf {
		ix.addLocked(child, base, pointer+"/oneOf/"+itoa(i))
	}
	ix.addLocked(s.Not, base, pointer+"/not")
	ix.addLocked(s.If, base, pointer+"/if")
	ix.addLocked(s.Then, base, pointer+"/then")
	ix.addLocked(s.Else, base, pointer+"/else")
	for name, child := range s.DependentSchemas {
		ix.addLocked(child, base, pointer+"/dependentSchemas/"+name)
	}
	for i, child := range s.PrefixItems {
		ix.addLocked(child, base, pointer+"/prefixItems/"+itoa(i))
	}
	ix.addLocked(s.Items, base, pointer+"/items")
	ix.addLocked(s.Contains, base, pointer+"/contains")
	ix.addLocked(s.UnevaluatedItems, base, pointer+"/unevaluatedItems")
	if s.Properties != nil {
		for _, name := range s.Properties.SortedNames() {
			ix.addLocked((*s.Properties)[name], base, pointer+"/properties/"+name)
		}
	}
	if s.PatternProperties != nil {
		for _, name := range s.PatternProperties.SortedNames() {
			ix.addLocked((*s.PatternProperties)[name], base, pointer+"/patternProperties/"+name)
		}
	}
	ix.addLocked(s.AdditionalProperties, base, pointer+"/additionalProperties")
	ix.addLocked(s.PropertyNames, base, pointer+"/propertyNames")
	ix.addLocked(s.UnevaluatedProperties, base, pointer+"/unevaluatedProperties")
	ix.addLocked(s.ContentSchema, base, pointer+"/contentSchema")
}

// itoa avoids importing strconv solely for small non-negative array indices.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := [20]byte{}
	pos := len(digits)
	for i > 0 {
		pos--
		digits[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(digits[pos:])
}

// VerifyReferences resolves every "$ref" / "$dynamicRef" recorded by Add
// against the registered URIs, failing on the first one that names nothing
// in the index. On success the index is frozen: later Add calls return
// ErrIndexFrozen, and Fetch becomes safe for concurrent readers.
func (ix *Index) VerifyReferences() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.frozen {
		return nil
	}

	for _, p := range ix.pendingRef {
		target := ix.resolveLocked(p.baseURI, p.ref)
		if _, ok := ix.uris[target]; !ok {
			return &UnresolvedReferenceError{URI: target}
		}
	}

	ix.frozen = true
	return nil
}

// resolveLocked turns a possibly-relative "$ref"/"$dynamicRef" value into
// the absolute URI it names, relative to baseURI.
func (ix *Index) resolveLocked(baseURI, ref string) string {
	target, fragment := splitRef(ref)
	base := baseURI
	if target != "" {
		if isAbsoluteURI(target) {
			base = target
		} else {
			base = resolveRelativeURI(baseURI, target)
		}
	}
	if fragment == "" {
		return base
	}
	return base + "#" + fragment
}

// Resolve is the exported form of resolveLocked the Validator uses to turn
// a schema's "$ref"/"$dynamicRef" text into an absolute URI before calling
// Fetch.
func (ix *Index) Resolve(baseURI, ref string) string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.resolveLocked(baseURI, ref)
}

// Fetch returns the schema registered under uri, and whether it was
// registered via "$dynamicAnchor". The second return is meaningless when
// found is false.
func (ix *Index) Fetch(uri string) (schema *Schema, isDynamicAnchor bool, found bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	e, ok := ix.uris[uri]
	if !ok {
		return nil, false, false
	}
	return e.schema, e.isDynamic, true
}

// BaseURI returns the canonical base URI under which s was registered by
// Add, or "" if s is unknown to the index.
func (ix *Index) BaseURI(s *Schema) string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.baseOf[s]
}

// Frozen reports whether VerifyReferences has succeeded.
func (ix *Index) Frozen() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.frozen
}
