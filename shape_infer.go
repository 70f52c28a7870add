package schemacore

import "math"

// Infer folds schema into a Shape by the six-step algorithm of §4.3: direct
// keyword effects, pattern-to-property cross application, enum/type mutual
// restriction, in-place applicator composition, then promotion of stashed
// unevaluated shapes. index resolves any "$ref"/"$dynamicRef" encountered;
// pass nil only for schemas known to contain neither. baseURI is the URI
// relative "$ref" values in schema resolve against.
//
// Grounded on §4.3's numbered algorithm; no teacher analogue exists (see
// shape_algebra.go).
func Infer(schema *Schema, index *Index, baseURI string) *Shape {
	return inferVisited(schema, index, baseURI, map[string]bool{})
}

func inferVisited(schema *Schema, index *Index, baseURI string, visited map[string]bool) *Shape {
	if schema == nil {
		return Anything()
	}
	if schema.IsFalse() {
		return Nothing()
	}
	if schema.IsTrue() {
		return Anything()
	}

	shape := Anything()
	if !schema.hasOnlyInertKeywords() {
		shape.Provenance = Provenance{Kind: ProvenanceInline}
	}

	if schema.Type != nil {
		types := map[ShapeType]bool{}
		for _, t := range schema.Type {
			for _, st := range schemaTypeToShapeTypes(t) {
				types[st] = true
			}
		}
		shape.Type = types
	}

	switch {
	case schema.Const != nil && schema.Const.IsSet:
		shape.HasEnum = true
		shape.Enum = sortAnySlice([]any{schema.Const.Value})
	case schema.Enum != nil:
		shape.HasEnum = true
		shape.Enum = sortAnySlice(schema.Enum)
	}

	shape.Title = schema.Title
	shape.Description = schema.Description
	if schema.Default != nil {
		shape.Default = schema.Default
		shape.HasDefault = true
	}
	shape.Secret = schema.Secret
	if schema.Reduction != ReductionUnset {
		shape.Reduction = Reduction{Kind: ReductionKindConcrete, Strategy: schema.Reduction}
	}
	if len(schema.Extra) > 0 {
		shape.Extra = make(map[string]any, len(schema.Extra))
		for k, v := range schema.Extra {
			shape.Extra[k] = v
		}
	}

	shape.String = StringShape{
		MinLength:        schema.MinLength,
		MaxLength:        schema.MaxLength,
		Format:           schema.Format,
		ContentEncoding:  schema.ContentEncoding,
		ContentMediaType: schema.ContentMediaType,
	}
	shape.Number = NumericShape{
		Minimum:          schema.Minimum,
		Maximum:          schema.Maximum,
		ExclusiveMinimum: schema.ExclusiveMinimum,
		ExclusiveMaximum: schema.ExclusiveMaximum,
		MultipleOf:       schema.MultipleOf,
	}
	shape.Array.MinItems = schema.MinItems
	shape.Array.MaxItems = schema.MaxItems

	var unevaluatedItemsShape *Shape
	if schema.UnevaluatedItems != nil {
		unevaluatedItemsShape = inferVisited(schema.UnevaluatedItems, index, baseURI, visited)
	}
	if len(schema.PrefixItems) > 0 {
		tuple := make([]*Shape, len(schema.PrefixItems))
		for i, child := range schema.PrefixItems {
			tuple[i] = inferVisited(child, index, baseURI, visited)
		}
		shape.Array.Tuple = tuple
	}
	if schema.Items != nil {
		shape.Array.Additional = inferVisited(schema.Items, index, baseURI, visited)
	}

	isolated := ObjectShape{
		MinProperties: schema.MinProperties,
		MaxProperties: schema.MaxProperties,
	}
	required := map[string]bool{}
	for _, name := range schema.Required {
		required[name] = true
	}
	for _, name := range sortedPropertyNames(schema.Properties) {
		child, _ := lookupProperty(schema.Properties, name)
		isolated.Properties = append(isolated.Properties, ObjectProperty{
			Name:     name,
			Required: required[name],
			Shape:    inferVisited(child, index, baseURI, visited),
		})
	}
	for _, pat := range sortedPropertyNames(schema.PatternProperties) {
		child, _ := lookupProperty(schema.PatternProperties, pat)
		isolated.Patterns = append(isolated.Patterns, ObjectPattern{
			Pattern: pat,
			Shape:   inferVisited(child, index, baseURI, visited),
		})
	}
	if schema.AdditionalProperties != nil {
		isolated.Additional = inferVisited(schema.AdditionalProperties, index, baseURI, visited)
	}

	for i, p := range isolated.Properties {
		for _, pat := range isolated.Patterns {
			re := compilePatternProperty(pat.Pattern)
			if re != nil && re.MatchString(p.Name) {
				isolated.Properties[i].Shape = Intersect(isolated.Properties[i].Shape, pat.Shape)
			}
		}
	}

	shape.Object = intersectObject(shape.Object, isolated)

	var unevaluatedPropsShape *Shape
	if schema.UnevaluatedProperties != nil {
		unevaluatedPropsShape = inferVisited(schema.UnevaluatedProperties, index, baseURI, visited)
	}

	if shape.HasEnum {
		var kept []any
		for _, v := range shape.Enum {
			if literalMatchesType(v, shape.Type) {
				kept = append(kept, v)
			}
		}
		shape.Enum = kept
		if len(kept) > 0 {
			types := map[ShapeType]bool{}
			for _, v := range kept {
				types[literalShapeType(v)] = true
			}
			shape.Type = types
		}
	}

	for _, child := range schema.AllOf {
		shape = Intersect(shape, inferVisited(child, index, baseURI, visited))
	}
	if schema.Ref != "" {
		shape = Intersect(shape, inferRef(schema.Ref, index, baseURI, visited))
	}
	if schema.DynamicRef != "" {
		shape = Intersect(shape, inferRef(schema.DynamicRef, index, baseURI, visited))
	}
	if len(schema.AnyOf) > 0 {
		var acc *Shape
		for _, child := range schema.AnyOf {
			acc = shapeUnionPtr(acc, inferVisited(child, index, baseURI, visited))
		}
		shape = Intersect(shape, acc)
	}
	if len(schema.OneOf) > 0 {
		var acc *Shape
		for _, child := range schema.OneOf {
			acc = shapeUnionPtr(acc, inferVisited(child, index, baseURI, visited))
		}
		shape = Intersect(shape, acc)
	}
	if schema.If != nil && schema.Then != nil && schema.Else != nil {
		thenShape := inferVisited(schema.Then, index, baseURI, visited)
		elseShape := inferVisited(schema.Else, index, baseURI, visited)
		shape = Intersect(shape, Union(thenShape, elseShape))
	}
	// "not" is not modeled (§4.3 step 5): omitting its constraint keeps
	// the result a sound over-approximation, just a looser one.

	if shape.Array.Additional == nil {
		shape.Array.Additional = unevaluatedItemsShape
	}
	if shape.Object.Additional == nil {
		shape.Object.Additional = unevaluatedPropsShape
	}

	return shape
}

// inferRef resolves ref against index and infers the target's shape,
// short-circuiting a revisit to "anything" (§4.3's cycle guard) and
// stamping Reference provenance on first return unless a deeper $ref
// already claimed it.
func inferRef(ref string, index *Index, baseURI string, visited map[string]bool) *Shape {
	if index == nil {
		return Anything()
	}
	uri := index.Resolve(baseURI, ref)
	if visited[uri] {
		return Anything()
	}
	target, _, ok := index.Fetch(uri)
	if !ok {
		return Anything()
	}
	visited[uri] = true
	defer delete(visited, uri)

	targetBase := index.BaseURI(target)
	if targetBase == "" {
		targetBase = uri
	}
	s := inferVisited(target, index, targetBase, visited).clone()
	if s.Provenance.Kind != ProvenanceReference {
		s.Provenance = Provenance{Kind: ProvenanceReference, URI: uri}
	}
	return s
}

func schemaTypeToShapeTypes(name string) []ShapeType {
	switch name {
	case "null":
		return []ShapeType{ShapeNull}
	case "boolean":
		return []ShapeType{ShapeBoolean}
	case "integer":
		return []ShapeType{ShapeInteger}
	case "number":
		return []ShapeType{ShapeInteger, ShapeFractional}
	case "string":
		return []ShapeType{ShapeString}
	case "array":
		return []ShapeType{ShapeArray}
	case "object":
		return []ShapeType{ShapeObject}
	default:
		return nil
	}
}

func literalShapeType(v any) ShapeType {
	switch val := v.(type) {
	case nil:
		return ShapeNull
	case bool:
		return ShapeBoolean
	case string:
		return ShapeString
	case float64:
		if val == math.Trunc(val) {
			return ShapeInteger
		}
		return ShapeFractional
	case []any:
		return ShapeArray
	case map[string]any:
		return ShapeObject
	default:
		return ShapeInvalid
	}
}

func literalMatchesType(v any, types map[ShapeType]bool) bool {
	return types[literalShapeType(v)]
}
