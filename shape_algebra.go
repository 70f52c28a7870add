package schemacore

// Union and Intersect implement the lattice operations of §3/§4.3: both are
// commutative and associative up to the canonical orderings (sorted enum
// values, sorted property names, sorted pattern sources) Shape already
// maintains, so no extra normalization pass is needed after combining two
// already-canonical shapes.
//
// Grounded entirely on §4.3's "Lattice operations" prose; there is no
// teacher analogue (schemacore's validator is the only part of this module
// with a direct teacher ancestor — the shape lattice is a pure data-algebra
// type built from the spec's description of the algebra's laws).

// Union returns the loosest Shape admitting every document either a or b
// admits.
func Union(a, b *Shape) *Shape {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.isEmpty() {
		return b
	}
	if b.isEmpty() {
		return a
	}

	out := Nothing()
	for t := range a.Type {
		if a.Type[t] || b.Type[t] {
			out.Type[t] = true
		}
	}
	for t := range b.Type {
		if b.Type[t] {
			out.Type[t] = true
		}
	}

	out.HasEnum, out.Enum = unionEnum(a.HasEnum, a.Enum, b.HasEnum, b.Enum)
	out.Provenance = combineProvenance(a.Provenance, b.Provenance)
	out.Reduction = combineReduction(a.Reduction, b.Reduction)
	out.String = unionString(a.String, b.String)
	out.Number = unionNumber(a.Number, b.Number)
	out.Array = unionArray(a.Array, b.Array)
	out.Object = unionObject(a.Object, b.Object)
	return out
}

// Intersect returns the tightest Shape admitting only documents both a and
// b admit.
func Intersect(a, b *Shape) *Shape {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	out := Nothing()
	for t := range a.Type {
		if a.Type[t] && b.Type[t] {
			out.Type[t] = true
		}
	}

	out.HasEnum, out.Enum = intersectEnum(a.HasEnum, a.Enum, b.HasEnum, b.Enum)
	out.Provenance = combineProvenance(a.Provenance, b.Provenance)
	out.Reduction = combineReduction(a.Reduction, b.Reduction)
	out.String = intersectString(a.String, b.String)
	out.Number = intersectNumber(a.Number, b.Number)
	out.Array = intersectArray(a.Array, b.Array)
	out.Object = intersectObject(a.Object, b.Object)
	return out
}

func unionEnum(aHas bool, aVals []any, bHas bool, bVals []any) (bool, []any) {
	if !aHas || !bHas {
		return false, nil
	}
	if len(aVals) == 1 && len(bVals) == 1 && literalEqual(aVals[0], bVals[0]) {
		return true, aVals
	}
	merged := append([]any(nil), aVals...)
	for _, v := range bVals {
		found := false
		for _, existing := range merged {
			if literalEqual(existing, v) {
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, v)
		}
	}
	return true, sortAnySlice(merged)
}

func intersectEnum(aHas bool, aVals []any, bHas bool, bVals []any) (bool, []any) {
	if !aHas {
		return bHas, bVals
	}
	if !bHas {
		return true, aVals
	}
	var kept []any
	for _, v := range aVals {
		for _, w := range bVals {
			if literalEqual(v, w) {
				kept = append(kept, v)
				break
			}
		}
	}
	return true, sortAnySlice(kept)
}

func combineProvenance(a, b Provenance) Provenance {
	if a.Kind == ProvenanceUnset {
		return b
	}
	if b.Kind == ProvenanceUnset {
		return a
	}
	if a.Kind == b.Kind && a.URI == b.URI {
		return a
	}
	return Provenance{Kind: ProvenanceInline}
}

func combineReduction(a, b Reduction) Reduction {
	if a.Kind == ReductionKindUnset {
		return b
	}
	if b.Kind == ReductionKindUnset {
		return a
	}
	if a.Kind == b.Kind && a.Strategy == b.Strategy {
		return a
	}
	return Reduction{Kind: ReductionKindMultiple}
}

func unionMinFloat(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	if *a < *b {
		return a
	}
	return b
}

func unionMaxFloat(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	if *a > *b {
		return a
	}
	return b
}

func intersectMinFloat(a, b *float64) *float64 {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if *a > *b {
		return a
	}
	return b
}

func intersectMaxFloat(a, b *float64) *float64 {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if *a < *b {
		return a
	}
	return b
}

func unionMinRat(a, b *Rat) *Rat {
	if a == nil || b == nil {
		return nil
	}
	if a.Cmp(b.Rat) < 0 {
		return a
	}
	return b
}

func unionMaxRat(a, b *Rat) *Rat {
	if a == nil || b == nil {
		return nil
	}
	if a.Cmp(b.Rat) > 0 {
		return a
	}
	return b
}

func intersectMinRat(a, b *Rat) *Rat {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Cmp(b.Rat) > 0 {
		return a
	}
	return b
}

func intersectMaxRat(a, b *Rat) *Rat {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Cmp(b.Rat) < 0 {
		return a
	}
	return b
}

// multipleOfMerge is intersect's multipleOf rule. JSON Schema's exact
// combination of two multipleOf constraints is their least common multiple,
// which would need an arbitrary-precision LCM over rationals; this keeps
// the simpler, still-sound rule the spec's "ranges" language doesn't cover:
// equal values merge, an absent side is absorbed, and two different
// concrete values keep the larger rather than computing an LCM (the result
// Shape is still a valid over-approximation, since every document multiple
// of the true LCM is also a multiple of either factor alone).
func multipleOfMerge(a, b *Rat) *Rat {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Cmp(b.Rat) >= 0 {
		return a
	}
	return b
}

// unionMultipleOf is union's multipleOf rule: a divisor survives only when
// both sides carry the same one. Otherwise a document either side admits
// need not be a multiple of any single value, so the result is
// unconstrained.
func unionMultipleOf(a, b *Rat) *Rat {
	if a != nil && b != nil && a.Cmp(b.Rat) == 0 {
		return a
	}
	return nil
}

func equalOrUnconstrainedStr(a, b *string) *string {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if *a == *b {
		return a
	}
	return nil
}

func unionString(a, b StringShape) StringShape {
	return StringShape{
		MinLength:        unionMinFloat(a.MinLength, b.MinLength),
		MaxLength:        unionMaxFloat(a.MaxLength, b.MaxLength),
		Format:           equalOrUnconstrainedStr(a.Format, b.Format),
		ContentEncoding:  equalOrUnconstrainedStr(a.ContentEncoding, b.ContentEncoding),
		ContentMediaType: equalOrUnconstrainedStr(a.ContentMediaType, b.ContentMediaType),
	}
}

func intersectString(a, b StringShape) StringShape {
	return StringShape{
		MinLength:        intersectMinFloat(a.MinLength, b.MinLength),
		MaxLength:        intersectMaxFloat(a.MaxLength, b.MaxLength),
		Format:           equalOrUnconstrainedStr(a.Format, b.Format),
		ContentEncoding:  equalOrUnconstrainedStr(a.ContentEncoding, b.ContentEncoding),
		ContentMediaType: equalOrUnconstrainedStr(a.ContentMediaType, b.ContentMediaType),
	}
}

func unionNumber(a, b NumericShape) NumericShape {
	return NumericShape{
		Minimum:          unionMinRat(a.Minimum, b.Minimum),
		Maximum:          unionMaxRat(a.Maximum, b.Maximum),
		ExclusiveMinimum: unionMinRat(a.ExclusiveMinimum, b.ExclusiveMinimum),
		ExclusiveMaximum: unionMaxRat(a.ExclusiveMaximum, b.ExclusiveMaximum),
		MultipleOf:       unionMultipleOf(a.MultipleOf, b.MultipleOf),
	}
}

func intersectNumber(a, b NumericShape) NumericShape {
	return NumericShape{
		Minimum:          intersectMinRat(a.Minimum, b.Minimum),
		Maximum:          intersectMaxRat(a.Maximum, b.Maximum),
		ExclusiveMinimum: intersectMinRat(a.ExclusiveMinimum, b.ExclusiveMinimum),
		ExclusiveMaximum: intersectMaxRat(a.ExclusiveMaximum, b.ExclusiveMaximum),
		MultipleOf:       multipleOfMerge(a.MultipleOf, b.MultipleOf),
	}
}

func shapeUnionPtr(a, b *Shape) *Shape {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return Union(a, b)
}

func shapeIntersectPtr(a, b *Shape) *Shape {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return Intersect(a, b)
}

// tupleSlotUnion returns x's tuple element or pad shape at i, used once the
// caller has already established i is within the union's result length.
func tupleSlotUnion(x ArrayShape, i int) *Shape {
	if i < len(x.Tuple) {
		return x.Tuple[i]
	}
	if x.Additional != nil {
		return x.Additional
	}
	return Anything()
}

// tupleSlotIntersect returns x's tuple element at i, or its additional
// shape (defaulting to "anything" when x says nothing about index i at
// all), used by intersect where every index either side constrains must be
// represented.
func tupleSlotIntersect(x ArrayShape, i int) *Shape {
	if i < len(x.Tuple) {
		return x.Tuple[i]
	}
	if x.Additional != nil {
		return x.Additional
	}
	return Anything()
}

func unionArray(a, b ArrayShape) ArrayShape {
	resultLen := len(a.Tuple)
	if len(b.Tuple) < resultLen {
		resultLen = len(b.Tuple)
	}
	longer, shorter := a, b
	if len(b.Tuple) > len(a.Tuple) {
		longer, shorter = b, a
	}
	if len(longer.Tuple) > resultLen && shorter.Additional != nil {
		resultLen = len(longer.Tuple)
	}

	tuple := make([]*Shape, resultLen)
	for i := 0; i < resultLen; i++ {
		tuple[i] = Union(tupleSlotUnion(a, i), tupleSlotUnion(b, i))
	}

	return ArrayShape{
		MinItems:   unionMinFloat(a.MinItems, b.MinItems),
		MaxItems:   unionMaxFloat(a.MaxItems, b.MaxItems),
		Tuple:      tuple,
		Additional: shapeUnionPtr(a.Additional, b.Additional),
	}
}

func intersectArray(a, b ArrayShape) ArrayShape {
	resultLen := len(a.Tuple)
	if len(b.Tuple) > resultLen {
		resultLen = len(b.Tuple)
	}

	var tuple []*Shape
	if resultLen > 0 {
		tuple = make([]*Shape, resultLen)
	}
	for i := 0; i < resultLen; i++ {
		tuple[i] = Intersect(tupleSlotIntersect(a, i), tupleSlotIntersect(b, i))
	}

	return ArrayShape{
		MinItems:   intersectMinFloat(a.MinItems, b.MinItems),
		MaxItems:   intersectMaxFloat(a.MaxItems, b.MaxItems),
		Tuple:      tuple,
		Additional: shapeIntersectPtr(a.Additional, b.Additional),
	}
}

func findProperty(props []ObjectProperty, name string) (ObjectProperty, bool) {
	for _, p := range props {
		if p.Name == name {
			return p, true
		}
	}
	return ObjectProperty{}, false
}

// imputeProperty finds what an object shape says about a property it does
// not explicitly list: the union of every matching "patternProperties"
// shape, falling back to "additionalProperties", per §4.3's union rule for
// one-sided object properties. Returns nil when the other side says
// nothing at all about the name.
func imputeProperty(o ObjectShape, name string) *Shape {
	var matched *Shape
	for _, pat := range o.Patterns {
		re := compilePatternProperty(pat.Pattern)
		if re == nil || !re.MatchString(name) {
			continue
		}
		matched = shapeUnionPtr(matched, pat.Shape)
	}
	if matched != nil {
		return matched
	}
	return o.Additional
}

func mergedPropertyNames(a, b []ObjectProperty) []string {
	seen := map[string]bool{}
	var names []string
	for _, p := range a {
		if !seen[p.Name] {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	for _, p := range b {
		if !seen[p.Name] {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	sortStrings(names)
	return names
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func unionObject(a, b ObjectShape) ObjectShape {
	var props []ObjectProperty
	for _, name := range mergedPropertyNames(a.Properties, b.Properties) {
		pa, inA := findProperty(a.Properties, name)
		pb, inB := findProperty(b.Properties, name)
		switch {
		case inA && inB:
			props = append(props, ObjectProperty{Name: name, Required: pa.Required && pb.Required, Shape: Union(pa.Shape, pb.Shape)})
		case inA && !inB:
			imputed := imputeProperty(b, name)
			if imputed == nil {
				continue
			}
			props = append(props, ObjectProperty{Name: name, Required: false, Shape: Union(pa.Shape, imputed)})
		case inB && !inA:
			imputed := imputeProperty(a, name)
			if imputed == nil {
				continue
			}
			props = append(props, ObjectProperty{Name: name, Required: false, Shape: Union(imputed, pb.Shape)})
		}
	}

	var patterns []ObjectPattern
	for _, pa := range a.Patterns {
		for _, pb := range b.Patterns {
			if pa.Pattern == pb.Pattern {
				patterns = append(patterns, ObjectPattern{Pattern: pa.Pattern, Shape: Union(pa.Shape, pb.Shape)})
			}
		}
	}

	return ObjectShape{
		MinProperties: unionMinFloat(a.MinProperties, b.MinProperties),
		MaxProperties: unionMaxFloat(a.MaxProperties, b.MaxProperties),
		Properties:    props,
		Patterns:      patterns,
		Additional:    shapeUnionPtr(a.Additional, b.Additional),
	}
}

func intersectObject(a, b ObjectShape) ObjectShape {
	var props []ObjectProperty
	for _, name := range mergedPropertyNames(a.Properties, b.Properties) {
		pa, inA := findProperty(a.Properties, name)
		pb, inB := findProperty(b.Properties, name)
		switch {
		case inA && inB:
			props = append(props, ObjectProperty{Name: name, Required: pa.Required || pb.Required, Shape: Intersect(pa.Shape, pb.Shape)})
		case inA && !inB:
			imputed := imputeProperty(b, name)
			if imputed == nil {
				imputed = Anything()
			}
			props = append(props, ObjectProperty{Name: name, Required: pa.Required, Shape: Intersect(pa.Shape, imputed)})
		case inB && !inA:
			imputed := imputeProperty(a, name)
			if imputed == nil {
				imputed = Anything()
			}
			props = append(props, ObjectProperty{Name: name, Required: pb.Required, Shape: Intersect(imputed, pb.Shape)})
		}
	}

	patterns := append([]ObjectPattern(nil), a.Patterns...)
	for _, pb := range b.Patterns {
		merged := false
		for i, pa := range patterns {
			if pa.Pattern == pb.Pattern {
				patterns[i].Shape = Intersect(pa.Shape, pb.Shape)
				merged = true
				break
			}
		}
		if !merged {
			patterns = append(patterns, pb)
		}
	}
	for i := 1; i < len(patterns); i++ {
		for j := i; j > 0 && patterns[j].Pattern < patterns[j-1].Pattern; j-- {
			patterns[j], patterns[j-1] = patterns[j-1], patterns[j]
		}
	}

	return ObjectShape{
		MinProperties: intersectMinFloat(a.MinProperties, b.MinProperties),
		MaxProperties: intersectMaxFloat(a.MaxProperties, b.MaxProperties),
		Properties:    props,
		Patterns:      patterns,
		Additional:    shapeIntersectPtr(a.Additional, b.Additional),
	}
}
