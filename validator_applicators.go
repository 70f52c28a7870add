package schemacore

import (
	"sort"

	"github.com/flowcore/schemacore/internal/bitset"
	"github.com/flowcore/schemacore/node"
)

// windInPlace applies every applicator that targets the SAME document node
// as f (§4.2 Wind step 1's in-place rules): allOf, anyOf, oneOf, not, if/
// then/else, and $ref/$dynamicRef. dependentSchemas is handled by
// windObject since it needs the object's member-name set first.
func (w *walk) windInPlace(f *frame, n node.Node) {
	s := f.schema

	for _, sub := range s.AllOf {
		child := w.visitBranch(f, sub, w.childSchemaURI(f, sub), n, keywordAllOf)
		if child.isInvalid() {
			f.markInvalid()
		}
		f.outcomes = append(f.outcomes, child.outcomes...)
	}

	if len(s.AnyOf) > 0 {
		matched := false
		var branchOutcomes []ScopedOutcome
		for _, sub := range s.AnyOf {
			child := w.visitBranch(f, sub, w.childSchemaURI(f, sub), n, keywordAnyOf)
			if !child.isInvalid() {
				matched = true
				f.flags |= flagValidAnyOf
			}
			branchOutcomes = append(branchOutcomes, child.outcomes...)
		}
		// Failing branches' outcomes surface only when no branch matched.
		if !matched {
			f.outcomes = append(f.outcomes, branchOutcomes...)
			f.emit(Outcome{Kind: AnyOfNotMatched})
			f.markInvalid()
		}
	}

	if len(s.OneOf) > 0 {
		matches := 0
		var branchOutcomes []ScopedOutcome
		for _, sub := range s.OneOf {
			child := w.visitBranch(f, sub, w.childSchemaURI(f, sub), n, keywordOneOf)
			if !child.isInvalid() {
				matches++
				if matches == 1 {
					f.flags |= flagValidOneOf
				} else {
					f.emit(Outcome{Kind: OneOfMultipleMatched})
					f.markInvalid()
				}
			}
			branchOutcomes = append(branchOutcomes, child.outcomes...)
		}
		// Failing branches' outcomes are dropped when exactly one matched.
		if matches != 1 {
			f.outcomes = append(f.outcomes, branchOutcomes...)
		}
		if matches == 0 {
			f.emit(Outcome{Kind: OneOfNotMatched})
			f.markInvalid()
		}
	}

	if s.Not != nil {
		child := w.newFrame(s.Not, w.childSchemaURI(f, s.Not), 0, keywordNot)
		w.visit(child, n)
		if !child.isInvalid() {
			f.emit(Outcome{Kind: NotIsValid})
			f.markInvalid()
		}
		// child.outcomes and any evaluated bits it collected are discarded:
		// "not" never contributes annotations, matching or failing.
	}

	if s.If != nil {
		ifChild := w.newFrame(s.If, w.childSchemaURI(f, s.If), 0, keywordIf)
		w.visit(ifChild, n)
		if !ifChild.isInvalid() {
			f.flags |= flagValidIfThen
		} else {
			f.flags |= flagValidIfElse
		}
		// "if"'s own outcomes never surface; they only gate then/else.
	}
	if s.Then != nil && f.flags.has(flagValidIfThen) {
		child := w.visitBranch(f, s.Then, w.childSchemaURI(f, s.Then), n, keywordThen)
		if child.isInvalid() {
			f.markInvalid()
		}
		f.outcomes = append(f.outcomes, child.outcomes...)
	}
	if s.Else != nil && f.flags.has(flagValidIfElse) {
		child := w.visitBranch(f, s.Else, w.childSchemaURI(f, s.Else), n, keywordElse)
		if child.isInvalid() {
			f.markInvalid()
		}
		f.outcomes = append(f.outcomes, child.outcomes...)
	}

	if s.Ref != "" {
		target := w.v.index.Resolve(w.v.index.BaseURI(s), s.Ref)
		if targetSchema, _, ok := w.v.index.Fetch(target); ok {
			child := w.visitBranch(f, targetSchema, target, n, keywordRef)
			if child.isInvalid() {
				f.markInvalid()
			}
			f.outcomes = append(f.outcomes, child.outcomes...)
		} else {
			f.emit(Outcome{Kind: ReferenceNotFound, URI: target})
			f.markInvalid()
		}
	}
	if s.DynamicRef != "" {
		targetSchema, target, ok := w.resolveDynamicRef(f, s.DynamicRef)
		if ok {
			child := w.visitBranch(f, targetSchema, target, n, keywordDynamicRef)
			if child.isInvalid() {
				f.markInvalid()
			}
			f.outcomes = append(f.outcomes, child.outcomes...)
		} else {
			f.emit(Outcome{Kind: ReferenceNotFound, URI: target})
			f.markInvalid()
		}
	}
}

// visitBranch runs an in-place applicator's subschema against the same
// node n as parent. Per the unevaluated-child protocol, the branch
// receives a cloned copy of parent's evaluated bitset at wind and, only if
// it validates, ORs its (possibly extended) copy back into parent's on
// unwind — a failed branch never credits its internal property/item
// matches toward parent's "unevaluated" accounting.
func (w *walk) visitBranch(parent *frame, sub *Schema, schemaURI string, n node.Node, kw parentKeyword) *frame {
	child := w.newFrame(sub, schemaURI, 0, kw)
	if parent.spec != nil {
		cloned := parent.spec.evaluated.Clone()
		child.spec = &speculative{evaluated: cloned, invalidUnevaluated: bitset.New(cloned.Len())}
	}
	w.visit(child, n)
	if !child.isInvalid() && parent.spec != nil && child.spec != nil {
		parent.spec.evaluated.Or(child.spec.evaluated)
	}
	return child
}

// applyChildSchema runs sub against an actual document child n (an array
// element or object member, a different node than parent's), propagating
// invalidity and outcomes but not sharing any speculative sidecar: n's own
// "unevaluated" accounting, if it needs one, belongs to n's own frame.
func (w *walk) applyChildSchema(parent *frame, sub *Schema, n node.Node, kw parentKeyword) *frame {
	child := w.newFrame(sub, w.childSchemaURI(parent, sub), 0, kw)
	w.visit(child, n)
	if child.isInvalid() {
		parent.markInvalid()
	}
	parent.outcomes = append(parent.outcomes, child.outcomes...)
	return child
}

// childSchemaURI names the canonical URI a nested schema should be scoped
// to: its own registered base if the index knows one (it declared its own
// "$id"), else the parent's.
func (w *walk) childSchemaURI(parent *frame, sub *Schema) string {
	if b := w.v.index.BaseURI(sub); b != "" {
		return b
	}
	return parent.schemaURI
}

// resolveDynamicRef implements §4.2's $dynamicRef resolution: first fetch
// the target as a plain $ref; if it wasn't registered via a
// "$dynamicAnchor", that resolution stands. Otherwise scan the active
// frame stack from the root down, considering only the root frame and
// frames reached via a $ref/$dynamicRef edge (the schema's "dynamic
// scope" chain), looking for the root-most frame whose own base URI also
// registers a dynamic anchor with the same fragment.
func (w *walk) resolveDynamicRef(f *frame, ref string) (*Schema, string, bool) {
	base := w.v.index.BaseURI(f.schema)
	target := w.v.index.Resolve(base, ref)
	schema, isDynamic, ok := w.v.index.Fetch(target)
	if !ok || !isDynamic {
		return schema, target, ok
	}

	_, fragment := splitRef(ref)
	for i, fr := range w.stack {
		if i != 0 && !fr.parentKeyword.viaRefEdge() {
			continue
		}
		scopeBase := w.v.index.BaseURI(fr.schema)
		if scopeBase == "" {
			continue
		}
		if s2, isDyn2, ok2 := w.v.index.Fetch(scopeBase + "#" + fragment); ok2 && isDyn2 {
			return s2, scopeBase + "#" + fragment, true
		}
	}
	return schema, target, true
}

// windArray applies prefixItems/items/contains/unevaluatedItems and the
// array-shaped validations (minItems, maxItems, uniqueItems) to an array
// document node.
func (w *walk) windArray(f *frame, n node.Node) {
	s := f.schema
	items := arrayItems(n)
	count := len(items)

	if o := evaluateMinItems(s, count); o != nil {
		f.emit(*o)
		f.markInvalid()
	}
	if o := evaluateMaxItems(s, count); o != nil {
		f.emit(*o)
		f.markInvalid()
	}
	if o := evaluateUniqueItems(s, items); o != nil {
		f.emit(*o)
		f.markInvalid()
	}

	containsMatches := 0
	for i, item := range items {
		evaluated := false
		switch {
		case i < len(s.PrefixItems):
			w.applyChildSchema(f, s.PrefixItems[i], item, keywordPrefixItems)
			evaluated = true
		case s.Items != nil:
			w.applyChildSchema(f, s.Items, item, keywordItems)
			evaluated = true
		}
		if s.Contains != nil {
			child := w.newFrame(s.Contains, w.childSchemaURI(f, s.Contains), 0, keywordContains)
			w.visit(child, item)
			if !child.isInvalid() {
				containsMatches++
				evaluated = true
			}
			// contains never propagates a non-matching item's invalidity,
			// and per-item contains outcomes aren't surfaced individually.
		}
		if evaluated && f.spec != nil {
			f.spec.evaluated.SetBit(i)
		}
	}

	if s.Contains != nil {
		min := 1.0
		if s.MinContains != nil {
			min = *s.MinContains
		}
		if float64(containsMatches) < min {
			o := boundOutcome(MinContainsNotMet, min, float64(containsMatches))
			f.emit(o)
			f.markInvalid()
		}
		if s.MaxContains != nil && float64(containsMatches) > *s.MaxContains {
			o := boundOutcome(MaxContainsExceeded, *s.MaxContains, float64(containsMatches))
			f.emit(o)
			f.markInvalid()
		}
	}

	if s.UnevaluatedItems != nil && f.spec != nil {
		schemaURI := w.childSchemaURI(f, s.UnevaluatedItems)
		for i, item := range items {
			if f.spec.evaluated.Has(i) {
				continue
			}
			child := w.newFrame(s.UnevaluatedItems, schemaURI, 0, keywordUnevaluatedItems)
			w.visit(child, item)
			if child.isInvalid() {
				f.spec.invalidUnevaluated.SetBit(i)
				f.markInvalid()
				f.outcomes = append(f.outcomes, child.outcomes...)
			} else {
				f.spec.evaluated.SetBit(i)
			}
		}
	}
}

// windObject applies properties/patternProperties/additionalProperties/
// propertyNames/unevaluatedProperties, dependentSchemas, and the
// object-shaped validations (minProperties, maxProperties, required,
// dependentRequired) to an object document node.
func (w *walk) windObject(f *frame, n node.Node) {
	s := f.schema
	fields := objectFields(n)
	count := len(fields)

	if o := evaluateMinProperties(s, count); o != nil {
		f.emit(*o)
		f.markInvalid()
	}
	if o := evaluateMaxProperties(s, count); o != nil {
		f.emit(*o)
		f.markInvalid()
	}

	seen := make(map[string]struct{}, count)
	for _, fl := range fields {
		seen[fl.name] = struct{}{}
	}

	for _, o := range evaluateRequired(s, seen) {
		f.emit(o)
		f.markInvalid()
	}
	for _, o := range evaluateDependentRequired(s, seen) {
		f.emit(o)
		f.markInvalid()
	}

	if len(s.DependentSchemas) > 0 {
		triggers := make([]string, 0, len(s.DependentSchemas))
		for key := range s.DependentSchemas {
			triggers = append(triggers, key)
		}
		sort.Strings(triggers)
		for _, key := range triggers {
			if _, ok := seen[key]; !ok {
				continue
			}
			sub := s.DependentSchemas[key]
			child := w.visitBranch(f, sub, w.childSchemaURI(f, sub), n, keywordDependentSchemas)
			if child.isInvalid() {
				f.markInvalid()
			}
			f.outcomes = append(f.outcomes, child.outcomes...)
		}
	}

	if s.PropertyNames != nil {
		schemaURI := w.childSchemaURI(f, s.PropertyNames)
		for _, fl := range fields {
			child := w.newFrame(s.PropertyNames, schemaURI, 0, keywordPropertyNames)
			w.visit(child, anynodeString(fl.name))
			if child.isInvalid() {
				f.markInvalid()
				f.outcomes = append(f.outcomes, child.outcomes...)
			}
		}
	}

	for i, fl := range fields {
		matched := false
		if sub, ok := lookupProperty(s.Properties, fl.name); ok {
			w.applyChildSchema(f, sub, fl.node, keywordProperties)
			matched = true
		}
		for _, pat := range sortedPropertyNames(s.PatternProperties) {
			re := compilePatternProperty(pat)
			if re == nil || !re.MatchString(fl.name) {
				continue
			}
			sub, _ := lookupProperty(s.PatternProperties, pat)
			w.applyChildSchema(f, sub, fl.node, keywordPatternProperties)
			matched = true
		}
		if !matched && s.AdditionalProperties != nil {
			w.applyChildSchema(f, s.AdditionalProperties, fl.node, keywordAdditionalProperties)
			matched = true
		}
		if matched && f.spec != nil {
			f.spec.evaluated.SetBit(i)
		}
	}

	if s.UnevaluatedProperties != nil && f.spec != nil {
		schemaURI := w.childSchemaURI(f, s.UnevaluatedProperties)
		for i, fl := range fields {
			if f.spec.evaluated.Has(i) {
				continue
			}
			child := w.newFrame(s.UnevaluatedProperties, schemaURI, 0, keywordUnevaluatedProperties)
			w.visit(child, fl.node)
			if child.isInvalid() {
				f.spec.invalidUnevaluated.SetBit(i)
				f.markInvalid()
				f.outcomes = append(f.outcomes, child.outcomes...)
			} else {
				f.spec.evaluated.SetBit(i)
			}
		}
	}
}
