// Package schemacore implements the core of a JSON Schema 2020-12 validator
// with annotation propagation and unevaluated-location tracking, alongside a
// static shape-inference engine over the same schema keyword tree.
//
// The package deliberately does not compile schemas from source text: a
// Schema here is already a built, immutable keyword tree (see Schema and
// SchemaMap below). Callers construct one either by decoding JSON Schema
// text with ParseSchema, or programmatically with the Keyword option
// functions in keywords.go.
package schemacore

import (
	"maps"
	"sort"

	"github.com/goccy/go-json"
)

// ReductionStrategy names a domain-specific document-reduction annotation
// carried alongside a schema location, independent of validation.
type ReductionStrategy string

const (
	ReductionUnset      ReductionStrategy = ""
	ReductionAppend     ReductionStrategy = "append"
	ReductionFirstWrite ReductionStrategy = "firstWriteWins"
	ReductionLastWrite  ReductionStrategy = "lastWriteWins"
	ReductionMerge      ReductionStrategy = "merge"
	ReductionMinimize   ReductionStrategy = "minimize"
	ReductionMaximize   ReductionStrategy = "maximize"
	ReductionSet        ReductionStrategy = "set"
	ReductionSum        ReductionStrategy = "sum"
)

// Schema is an immutable JSON Schema 2020-12 keyword tree. It is the public
// boundary described in §6: a consumer (Index, Validator, shape inference)
// never parses schema text itself, only this already-built structure.
type Schema struct {
	// Boolean holds the value of a boolean schema ("true"/"false"); when
	// non-nil every other field is meaningless.
	Boolean *bool `json:"-"`

	// Identity.
	ID            string `json:"$id,omitempty"`
	SchemaDialect string `json:"$schema,omitempty"`
	Anchor        string `json:"$anchor,omitempty"`
	DynamicAnchor string `json:"$dynamicAnchor,omitempty"`

	// References.
	Ref        string `json:"$ref,omitempty"`
	DynamicRef string `json:"$dynamicRef,omitempty"`

	Defs map[string]*Schema `json:"$defs,omitempty"`

	// In-place applicators.
	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`

	If               *Schema            `json:"if,omitempty"`
	Then             *Schema            `json:"then,omitempty"`
	Else             *Schema            `json:"else,omitempty"`
	DependentSchemas map[string]*Schema `json:"dependentSchemas,omitempty"`

	// Array applicators.
	PrefixItems      []*Schema `json:"prefixItems,omitempty"`
	Items            *Schema   `json:"items,omitempty"`
	Contains         *Schema   `json:"contains,omitempty"`
	UnevaluatedItems *Schema   `json:"unevaluatedItems,omitempty"`

	// Object applicators.
	Properties            *SchemaMap `json:"properties,omitempty"`
	PatternProperties     *SchemaMap `json:"patternProperties,omitempty"`
	AdditionalProperties  *Schema    `json:"additionalProperties,omitempty"`
	PropertyNames         *Schema    `json:"propertyNames,omitempty"`
	UnevaluatedProperties *Schema    `json:"unevaluatedProperties,omitempty"`

	// Validations applicable to any instance type.
	Type  SchemaType  `json:"type,omitempty"`
	Enum  []any       `json:"enum,omitempty"`
	Const *ConstValue `json:"const,omitempty"`

	// Numeric validations.
	MultipleOf       *Rat `json:"multipleOf,omitempty"`
	Maximum          *Rat `json:"maximum,omitempty"`
	ExclusiveMaximum *Rat `json:"exclusiveMaximum,omitempty"`
	Minimum          *Rat `json:"minimum,omitempty"`
	ExclusiveMinimum *Rat `json:"exclusiveMinimum,omitempty"`

	// String validations.
	MaxLength *float64 `json:"maxLength,omitempty"`
	MinLength *float64 `json:"minLength,omitempty"`
	Pattern   *string  `json:"pattern,omitempty"`

	// Array validations.
	MaxItems    *float64 `json:"maxItems,omitempty"`
	MinItems    *float64 `json:"minItems,omitempty"`
	UniqueItems *bool    `json:"uniqueItems,omitempty"`
	MaxContains *float64 `json:"maxContains,omitempty"`
	MinContains *float64 `json:"minContains,omitempty"`

	// Object validations.
	MaxProperties     *float64            `json:"maxProperties,omitempty"`
	MinProperties     *float64            `json:"minProperties,omitempty"`
	Required          []string            `json:"required,omitempty"`
	DependentRequired map[string][]string `json:"dependentRequired,omitempty"`

	// Content.
	ContentEncoding  *string `json:"contentEncoding,omitempty"`
	ContentMediaType *string `json:"contentMediaType,omitempty"`
	ContentSchema    *Schema `json:"contentSchema,omitempty"`

	// Core annotations.
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Default     any     `json:"default,omitempty"`
	Examples    []any   `json:"examples,omitempty"`
	Format      *string `json:"format,omitempty"`

	// Domain-specific annotations.
	Reduction ReductionStrategy `json:"x-reduce,omitempty"`
	Secret    *bool             `json:"x-secret,omitempty"`

	// Extra carries every other top-level key verbatim.
	Extra map[string]any `json:"-"`
}

// IsFalse reports whether this is the literal `false` schema.
func (s *Schema) IsFalse() bool {
	return s != nil && s.Boolean != nil && !*s.Boolean
}

// IsTrue reports whether this is the literal `true` schema.
func (s *Schema) IsTrue() bool {
	return s != nil && s.Boolean != nil && *s.Boolean
}

// hasOnlyInertKeywords reports whether, aside from in-place applicators and
// the purely descriptive keywords, the schema carries no other keyword. Used
// by Shape.Infer to decide Inline provenance.
func (s *Schema) hasOnlyInertKeywords() bool {
	if s.Boolean != nil {
		return false
	}
	return s.Type == nil &&
		s.Enum == nil &&
		s.Const == nil &&
		s.MultipleOf == nil && s.Maximum == nil && s.ExclusiveMaximum == nil &&
		s.Minimum == nil && s.ExclusiveMinimum == nil &&
		s.MaxLength == nil && s.MinLength == nil && s.Pattern == nil &&
		s.MaxItems == nil && s.MinItems == nil && s.UniqueItems == nil &&
		s.MaxContains == nil && s.MinContains == nil &&
		s.MaxProperties == nil && s.MinProperties == nil &&
		len(s.Required) == 0 && s.DependentRequired == nil &&
		s.ContentEncoding == nil && s.ContentMediaType == nil && s.ContentSchema == nil &&
		s.Format == nil &&
		s.Reduction == ReductionUnset && s.Secret == nil &&
		s.PrefixItems == nil && s.Items == nil && s.Contains == nil && s.UnevaluatedItems == nil &&
		s.Properties == nil && s.PatternProperties == nil &&
		s.AdditionalProperties == nil && s.PropertyNames == nil && s.UnevaluatedProperties == nil &&
		len(s.Extra) == 0
}

// SchemaMap is a name -> Schema map used for "properties" and
// "patternProperties". Evaluation order over its entries is lexicographic
// over the key; SortedNames returns that order.
type SchemaMap map[string]*Schema

// SortedNames returns the map's keys in lexicographic order.
func (sm SchemaMap) SortedNames() []string {
	names := make([]string, 0, len(sm))
	for name := range sm {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy of the map.
func (sm SchemaMap) Clone() SchemaMap {
	out := make(SchemaMap, len(sm))
	maps.Copy(out, sm)
	return out
}

// SchemaType holds the value of the "type" keyword, which may be a single
// string or an array of strings in source JSON.
type SchemaType []string

// Has reports whether t names the given primitive type name.
func (t SchemaType) Has(name string) bool {
	for _, v := range t {
		if v == name {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts either a bare string or an array of strings.
func (t *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = SchemaType{single}
		return nil
	}

	var multi []string
	if err := json.Unmarshal(data, &multi); err == nil {
		*t = SchemaType(multi)
		return nil
	}

	return ErrInvalidSchemaType
}

// MarshalJSON renders a single-element type as a bare string, matching how
// most hand-written schemas spell it.
func (t SchemaType) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// ConstValue distinguishes an absent "const" keyword from a present one
// whose value happens to be JSON null.
type ConstValue struct {
	Value any
	IsSet bool
}

// NewConstValue wraps a literal value as a set ConstValue.
func NewConstValue(v any) *ConstValue {
	return &ConstValue{Value: v, IsSet: true}
}

func (cv *ConstValue) UnmarshalJSON(data []byte) error {
	if cv == nil {
		return ErrNilConstValue
	}
	cv.IsSet = true
	if string(data) == "null" {
		cv.Value = nil
		return nil
	}
	return json.Unmarshal(data, &cv.Value)
}

func (cv ConstValue) MarshalJSON() ([]byte, error) {
	if cv.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(cv.Value)
}

// ParseSchema decodes JSON Schema text into a Schema tree. This is a plain
// structural decode, not keyword compilation: it performs no URI resolution,
// anchor registration, or $ref verification. Those are Index's
// responsibility once the tree is handed to Index.Add.
func ParseSchema(data []byte) (*Schema, error) {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return &Schema{Boolean: &b}, nil
	}

	s := &Schema{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// UnmarshalJSON implements keyword decoding, including the "definitions"
// vs. "$defs" polymorphism and the catch-all Extra bucket.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		s.Boolean = &b
		return nil
	}

	type alias Schema
	aux := &struct {
		*alias
	}{alias: (*alias)(s)}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if defsData, ok := raw["definitions"]; ok && s.Defs == nil {
		var defs map[string]*Schema
		if err := json.Unmarshal(defsData, &defs); err != nil {
			return err
		}
		s.Defs = defs
	}

	for key := range raw {
		if _, known := knownSchemaFields[key]; known {
			continue
		}
		if s.Extra == nil {
			s.Extra = make(map[string]any)
		}
		var v any
		if err := json.Unmarshal(raw[key], &v); err != nil {
			return err
		}
		s.Extra[key] = v
	}

	return nil
}

var knownSchemaFields = map[string]struct{}{
	"$id": {}, "$schema": {}, "$ref": {}, "$dynamicRef": {}, "$anchor": {}, "$dynamicAnchor": {},
	"$defs": {}, "definitions": {}, "$comment": {},
	"allOf": {}, "anyOf": {}, "oneOf": {}, "not": {}, "if": {}, "then": {}, "else": {},
	"dependentSchemas": {}, "prefixItems": {}, "items": {}, "contains": {},
	"properties": {}, "patternProperties": {}, "additionalProperties": {}, "propertyNames": {},
	"unevaluatedItems": {}, "unevaluatedProperties": {},
	"type": {}, "enum": {}, "const": {}, "multipleOf": {}, "maximum": {}, "exclusiveMaximum": {},
	"minimum": {}, "exclusiveMinimum": {}, "maxLength": {}, "minLength": {}, "pattern": {},
	"maxItems": {}, "minItems": {}, "uniqueItems": {}, "maxContains": {}, "minContains": {},
	"maxProperties": {}, "minProperties": {}, "required": {}, "dependentRequired": {},
	"format": {}, "contentEncoding": {}, "contentMediaType": {}, "contentSchema": {},
	"title": {}, "description": {}, "default": {}, "deprecated": {}, "readOnly": {}, "writeOnly": {}, "examples": {},
	"x-reduce": {}, "x-secret": {},
}
