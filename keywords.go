package schemacore

// Keyword configures a Schema under construction. Combined with the type
// constructors below, it gives programmatic schema assembly the same shape
// as the teacher's functional-option style, without a source-text compiler.
type Keyword func(*Schema)

// ===============================
// String keywords
// ===============================

func MinLen(min int) Keyword {
	return func(s *Schema) { f := float64(min); s.MinLength = &f }
}

func MaxLen(max int) Keyword {
	return func(s *Schema) { f := float64(max); s.MaxLength = &f }
}

func Pattern(pattern string) Keyword {
	return func(s *Schema) { s.Pattern = &pattern }
}

func Format(format string) Keyword {
	return func(s *Schema) { s.Format = &format }
}

// ===============================
// Number keywords
// ===============================

func Min(min float64) Keyword {
	return func(s *Schema) { s.Minimum = NewRat(min) }
}

func Max(max float64) Keyword {
	return func(s *Schema) { s.Maximum = NewRat(max) }
}

func ExclusiveMin(min float64) Keyword {
	return func(s *Schema) { s.ExclusiveMinimum = NewRat(min) }
}

func ExclusiveMax(max float64) Keyword {
	return func(s *Schema) { s.ExclusiveMaximum = NewRat(max) }
}

func MultipleOf(multiple float64) Keyword {
	return func(s *Schema) { s.MultipleOf = NewRat(multiple) }
}

// ===============================
// Array keywords
// ===============================

func ItemSchema(itemSchema *Schema) Keyword {
	return func(s *Schema) { s.Items = itemSchema }
}

func MinItems(min int) Keyword {
	return func(s *Schema) { f := float64(min); s.MinItems = &f }
}

func MaxItems(max int) Keyword {
	return func(s *Schema) { f := float64(max); s.MaxItems = &f }
}

func UniqueItems(unique bool) Keyword {
	return func(s *Schema) { s.UniqueItems = &unique }
}

func ContainsSchema(schema *Schema) Keyword {
	return func(s *Schema) { s.Contains = schema }
}

func MinContains(min int) Keyword {
	return func(s *Schema) { f := float64(min); s.MinContains = &f }
}

func MaxContains(max int) Keyword {
	return func(s *Schema) { f := float64(max); s.MaxContains = &f }
}

func PrefixItemSchemas(schemas ...*Schema) Keyword {
	return func(s *Schema) { s.PrefixItems = schemas }
}

func UnevaluatedItemsSchema(schema *Schema) Keyword {
	return func(s *Schema) { s.UnevaluatedItems = schema }
}

// ===============================
// Object keywords
// ===============================

func Required(fields ...string) Keyword {
	return func(s *Schema) { s.Required = fields }
}

func AdditionalProps(allowed bool) Keyword {
	return func(s *Schema) { s.AdditionalProperties = &Schema{Boolean: &allowed} }
}

func AdditionalPropsSchema(schema *Schema) Keyword {
	return func(s *Schema) { s.AdditionalProperties = schema }
}

func MinProps(min int) Keyword {
	return func(s *Schema) { f := float64(min); s.MinProperties = &f }
}

func MaxProps(max int) Keyword {
	return func(s *Schema) { f := float64(max); s.MaxProperties = &f }
}

func PatternProps(patterns map[string]*Schema) Keyword {
	return func(s *Schema) { s.PatternProperties = (*SchemaMap)(&patterns) }
}

func PropertyNamesSchema(schema *Schema) Keyword {
	return func(s *Schema) { s.PropertyNames = schema }
}

func UnevaluatedPropsSchema(schema *Schema) Keyword {
	return func(s *Schema) { s.UnevaluatedProperties = schema }
}

func DependentRequiredKeyword(dependencies map[string][]string) Keyword {
	return func(s *Schema) { s.DependentRequired = dependencies }
}

func DependentSchemasKeyword(dependencies map[string]*Schema) Keyword {
	return func(s *Schema) { s.DependentSchemas = dependencies }
}

// ===============================
// Annotation keywords
// ===============================

func Title(title string) Keyword {
	return func(s *Schema) { s.Title = &title }
}

func Description(desc string) Keyword {
	return func(s *Schema) { s.Description = &desc }
}

func Default(value any) Keyword {
	return func(s *Schema) { s.Default = value }
}

func Examples(examples ...any) Keyword {
	return func(s *Schema) { s.Examples = examples }
}

// ===============================
// Domain annotation keywords
// ===============================

func Reduce(strategy ReductionStrategy) Keyword {
	return func(s *Schema) { s.Reduction = strategy }
}

func Secret(secret bool) Keyword {
	return func(s *Schema) { s.Secret = &secret }
}

// ===============================
// Content keywords
// ===============================

func ContentEncoding(encoding string) Keyword {
	return func(s *Schema) { s.ContentEncoding = &encoding }
}

func ContentMediaType(mediaType string) Keyword {
	return func(s *Schema) { s.ContentMediaType = &mediaType }
}

func ContentSchemaKeyword(schema *Schema) Keyword {
	return func(s *Schema) { s.ContentSchema = schema }
}

// ===============================
// Core identifier keywords
// ===============================

func ID(id string) Keyword {
	return func(s *Schema) { s.ID = id }
}

func SchemaURI(schemaURI string) Keyword {
	return func(s *Schema) { s.SchemaDialect = schemaURI }
}

func Anchor(anchor string) Keyword {
	return func(s *Schema) { s.Anchor = anchor }
}

func DynamicAnchor(anchor string) Keyword {
	return func(s *Schema) { s.DynamicAnchor = anchor }
}

func Defs(defs map[string]*Schema) Keyword {
	return func(s *Schema) { s.Defs = defs }
}

// ===============================
// Format constants
// ===============================

const (
	FormatEmail               = "email"
	FormatDateTime            = "date-time"
	FormatDate                = "date"
	FormatTime                = "time"
	FormatURI                 = "uri"
	FormatURIRef              = "uri-reference"
	FormatUUID                = "uuid"
	FormatHostname            = "hostname"
	FormatIPv4                = "ipv4"
	FormatIPv6                = "ipv6"
	FormatRegex               = "regex"
	FormatIdnEmail            = "idn-email"
	FormatIdnHostname         = "idn-hostname"
	FormatIRI                 = "iri"
	FormatIRIRef              = "iri-reference"
	FormatURITemplate         = "uri-template"
	FormatJSONPointer         = "json-pointer"
	FormatRelativeJSONPointer = "relative-json-pointer"
	FormatDuration            = "duration"
)

// ===============================
// Type constructors
// ===============================
//
// These build a Schema tree directly in memory; there is no source-text
// compiler step (see Index for what happens once a tree like this needs to
// be resolved against other schemas).

// Property pairs a name with its Schema for Object.
type Property struct {
	Name   string
	Schema *Schema
}

func Prop(name string, schema *Schema) Property {
	return Property{Name: name, Schema: schema}
}

// Object creates an object Schema from a mix of Property and Keyword values.
func Object(items ...any) *Schema {
	schema := &Schema{Type: SchemaType{"object"}}

	var properties []Property
	var keywords []Keyword
	for _, item := range items {
		switch v := item.(type) {
		case Property:
			properties = append(properties, v)
		case Keyword:
			keywords = append(keywords, v)
		}
	}

	if len(properties) > 0 {
		props := make(SchemaMap)
		for _, prop := range properties {
			props[prop.Name] = prop.Schema
		}
		schema.Properties = &props
	}

	for _, keyword := range keywords {
		keyword(schema)
	}
	return schema
}

func String(keywords ...Keyword) *Schema {
	schema := &Schema{Type: SchemaType{"string"}}
	for _, k := range keywords {
		k(schema)
	}
	return schema
}

func Integer(keywords ...Keyword) *Schema {
	schema := &Schema{Type: SchemaType{"integer"}}
	for _, k := range keywords {
		k(schema)
	}
	return schema
}

func Number(keywords ...Keyword) *Schema {
	schema := &Schema{Type: SchemaType{"number"}}
	for _, k := range keywords {
		k(schema)
	}
	return schema
}

func BooleanSchema(keywords ...Keyword) *Schema {
	schema := &Schema{Type: SchemaType{"boolean"}}
	for _, k := range keywords {
		k(schema)
	}
	return schema
}

func Null(keywords ...Keyword) *Schema {
	schema := &Schema{Type: SchemaType{"null"}}
	for _, k := range keywords {
		k(schema)
	}
	return schema
}

func ArraySchema(keywords ...Keyword) *Schema {
	schema := &Schema{Type: SchemaType{"array"}}
	for _, k := range keywords {
		k(schema)
	}
	return schema
}

// Any creates a Schema without a type restriction.
func Any(keywords ...Keyword) *Schema {
	schema := &Schema{}
	for _, k := range keywords {
		k(schema)
	}
	return schema
}

func ConstSchema(value any) *Schema {
	return &Schema{Const: NewConstValue(value)}
}

func EnumSchema(values ...any) *Schema {
	return &Schema{Enum: values}
}

func OneOfSchema(schemas ...*Schema) *Schema {
	return &Schema{OneOf: schemas}
}

func AnyOfSchema(schemas ...*Schema) *Schema {
	return &Schema{AnyOf: schemas}
}

func AllOfSchema(schemas ...*Schema) *Schema {
	return &Schema{AllOf: schemas}
}

func NotSchema(schema *Schema) *Schema {
	return &Schema{Not: schema}
}

// ConditionalSchema builds an if/then/else Schema with a fluent chain:
// If(cond).Then(a).Else(b).
type ConditionalSchema struct {
	condition *Schema
	then      *Schema
	otherwise *Schema
}

func If(condition *Schema) *ConditionalSchema {
	return &ConditionalSchema{condition: condition}
}

func (cs *ConditionalSchema) Then(then *Schema) *ConditionalSchema {
	cs.then = then
	return cs
}

func (cs *ConditionalSchema) Else(otherwise *Schema) *Schema {
	cs.otherwise = otherwise
	return cs.ToSchema()
}

func (cs *ConditionalSchema) ToSchema() *Schema {
	return &Schema{If: cs.condition, Then: cs.then, Else: cs.otherwise}
}

// RefSchema creates a Schema whose only keyword is $ref.
func RefSchema(ref string) *Schema {
	return &Schema{Ref: ref}
}

// DynamicRefSchema creates a Schema whose only keyword is $dynamicRef.
func DynamicRefSchema(ref string) *Schema {
	return &Schema{DynamicRef: ref}
}

// ===============================
// Convenience format schemas
// ===============================

func Email() *Schema               { return String(Format(FormatEmail)) }
func DateTime() *Schema            { return String(Format(FormatDateTime)) }
func Date() *Schema                { return String(Format(FormatDate)) }
func Time() *Schema                { return String(Format(FormatTime)) }
func URI() *Schema                 { return String(Format(FormatURI)) }
func URIRef() *Schema              { return String(Format(FormatURIRef)) }
func UUID() *Schema                { return String(Format(FormatUUID)) }
func Hostname() *Schema            { return String(Format(FormatHostname)) }
func IPv4() *Schema                { return String(Format(FormatIPv4)) }
func IPv6() *Schema                { return String(Format(FormatIPv6)) }
func IdnEmail() *Schema            { return String(Format(FormatIdnEmail)) }
func IdnHostname() *Schema         { return String(Format(FormatIdnHostname)) }
func IRI() *Schema                 { return String(Format(FormatIRI)) }
func IRIRef() *Schema              { return String(Format(FormatIRIRef)) }
func URITemplate() *Schema         { return String(Format(FormatURITemplate)) }
func JSONPointerFormat() *Schema   { return String(Format(FormatJSONPointer)) }
func RelativeJSONPointer() *Schema { return String(Format(FormatRelativeJSONPointer)) }
func DurationFormat() *Schema      { return String(Format(FormatDuration)) }
func RegexFormat() *Schema         { return String(Format(FormatRegex)) }

func PositiveInt() *Schema     { return Integer(Min(1)) }
func NonNegativeInt() *Schema  { return Integer(Min(0)) }
func NegativeInt() *Schema     { return Integer(Max(-1)) }
func NonPositiveInt() *Schema  { return Integer(Max(0)) }
