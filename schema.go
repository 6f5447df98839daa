package avro

import (
	"errors"
	"fmt"
	"strings"
)

// Type is the Avro type as defined in the Avro specification.
type Type string

// Schema type constants.
const (
	Null    Type = "null"
	Boolean Type = "boolean"
	Int     Type = "int"
	Long    Type = "long"
	Float   Type = "float"
	Double  Type = "double"
	Bytes   Type = "bytes"
	String  Type = "string"
	Record  Type = "record"
	Enum    Type = "enum"
	Array   Type = "array"
	Map     Type = "map"
	Union   Type = "union"
	Fixed   Type = "fixed"
)

// Schema represents an Avro schema.
//
// Schema parsing from JSON is out of scope for this package; callers build
// schemas with the constructors below (as a test harness or an upstream
// schema-parsing library would).
type Schema interface {
	// Type returns the type of the schema.
	Type() Type

	// String returns the canonical string representation of the schema.
	String() string
}

// SchemaOption is a function used to customize a schema during construction.
type SchemaOption func(*schemaConfig)

type schemaConfig struct {
	doc    string
	hasDef bool
	def    any
}

// WithDoc sets the documentation string of a schema or field.
func WithDoc(doc string) SchemaOption {
	return func(cfg *schemaConfig) {
		cfg.doc = doc
	}
}

// WithDefault sets the default literal of a field or enum.
func WithDefault(def any) SchemaOption {
	return func(cfg *schemaConfig) {
		cfg.hasDef = true
		cfg.def = def
	}
}

// name carries the name/namespace bookkeeping shared by all named schemas.
type name struct {
	full string
	doc  string
}

func newName(n, namespace string) (name, error) {
	if n == "" {
		return name{}, errors.New("avro: name must be a non-empty string")
	}
	if strings.ContainsRune(n, '.') || namespace == "" {
		return name{full: n}, nil
	}
	return name{full: namespace + "." + n}, nil
}

// FullName returns the fully qualified name of the schema.
func (n name) FullName() string {
	return n.full
}

// Name returns the base name of the schema, without its namespace.
func (n name) Name() string {
	idx := strings.LastIndexByte(n.full, '.')
	if idx < 0 {
		return n.full
	}
	return n.full[idx+1:]
}

// Doc returns the schema's documentation string, if any.
func (n name) Doc() string {
	return n.doc
}

// PrimitiveSchema is an Avro primitive schema: null, boolean, int, long,
// float, double, bytes or string.
type PrimitiveSchema struct {
	typ Type
}

// NewPrimitiveSchema creates a new primitive schema instance.
func NewPrimitiveSchema(typ Type) *PrimitiveSchema {
	return &PrimitiveSchema{typ: typ}
}

// Type returns the type of the schema.
func (s *PrimitiveSchema) Type() Type { return s.typ }

// String returns the canonical string representation of the schema.
func (s *PrimitiveSchema) String() string { return string(s.typ) }

// Field is a schema field of a RecordSchema.
type Field struct {
	name   string
	typ    Schema
	doc    string
	hasDef bool
	def    any
}

// NewField creates a new record field instance.
func NewField(name string, typ Schema, opts ...SchemaOption) (*Field, error) {
	if name == "" {
		return nil, errors.New("avro: field name must be a non-empty string")
	}
	if typ == nil {
		return nil, fmt.Errorf("avro: field %q must have a non-nil type", name)
	}

	var cfg schemaConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Field{
		name:   name,
		typ:    typ,
		doc:    cfg.doc,
		hasDef: cfg.hasDef,
		def:    cfg.def,
	}, nil
}

// Name returns the name of the field.
func (f *Field) Name() string { return f.name }

// Type returns the schema of the field.
func (f *Field) Type() Schema { return f.typ }

// Doc returns the field's documentation string, if any.
func (f *Field) Doc() string { return f.doc }

// HasDefault determines if the field has a default value.
func (f *Field) HasDefault() bool { return f.hasDef }

// Default returns the default literal of the field. The caller must check
// HasDefault first; a nil default is indistinguishable from an explicit
// "null" default via this accessor alone.
func (f *Field) Default() any { return f.def }

// RecordSchema is an Avro record schema, an ordered, named sequence of
// fields.
type RecordSchema struct {
	name
	fields []*Field
}

// NewRecordSchema creates a new record schema instance.
func NewRecordSchema(n, namespace string, fields []*Field, opts ...SchemaOption) (*RecordSchema, error) {
	nm, err := newName(n, namespace)
	if err != nil {
		return nil, err
	}

	var cfg schemaConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	nm.doc = cfg.doc

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f.Name()]; ok {
			return nil, fmt.Errorf("avro: record %q has duplicate field %q", nm.FullName(), f.Name())
		}
		seen[f.Name()] = struct{}{}
	}

	return &RecordSchema{name: nm, fields: fields}, nil
}

// Type returns the type of the schema.
func (s *RecordSchema) Type() Type { return Record }

// Fields returns the ordered fields of the record.
func (s *RecordSchema) Fields() []*Field { return s.fields }

// FieldByName returns the field with the given logical name, and whether
// one was found. Lookup is by name only; this package does not implement
// alias-based field matching.
func (s *RecordSchema) FieldByName(name string) (*Field, bool) {
	for _, f := range s.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// String returns the canonical string representation of the schema.
func (s *RecordSchema) String() string {
	return fmt.Sprintf("record(%s)", s.FullName())
}

// EnumSchema is an Avro enum schema, a named list of symbols.
type EnumSchema struct {
	name
	symbols []string
	def     string
}

// NewEnumSchema creates a new enum schema instance.
func NewEnumSchema(n, namespace string, symbols []string, opts ...SchemaOption) (*EnumSchema, error) {
	nm, err := newName(n, namespace)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("avro: enum %q must have a non-empty array of symbols", nm.FullName())
	}

	var cfg schemaConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	nm.doc = cfg.doc

	var def string
	if cfg.hasDef {
		d, ok := cfg.def.(string)
		if !ok || !hasSymbol(symbols, d) {
			return nil, fmt.Errorf("avro: enum %q symbol default %v must be one of its symbols", nm.FullName(), cfg.def)
		}
		def = d
	}

	return &EnumSchema{name: nm, symbols: symbols, def: def}, nil
}

func hasSymbol(symbols []string, sym string) bool {
	for _, s := range symbols {
		if s == sym {
			return true
		}
	}
	return false
}

// Type returns the type of the schema.
func (s *EnumSchema) Type() Type { return Enum }

// Symbols returns the symbols of the enum, in declaration order.
func (s *EnumSchema) Symbols() []string { return s.symbols }

// Symbol returns the symbol at index i, and whether i is in range.
func (s *EnumSchema) Symbol(i int) (string, bool) {
	if i < 0 || i >= len(s.symbols) {
		return "", false
	}
	return s.symbols[i], true
}

// HasDefault determines if the enum has a default symbol.
func (s *EnumSchema) HasDefault() bool { return s.def != "" }

// Default returns the enum's default symbol, or "" if it has none.
func (s *EnumSchema) Default() string { return s.def }

// String returns the canonical string representation of the schema.
func (s *EnumSchema) String() string {
	return fmt.Sprintf("enum(%s)", s.FullName())
}

// FixedSchema is an Avro fixed schema, a named, fixed-size byte sequence.
type FixedSchema struct {
	name
	size int
}

// NewFixedSchema creates a new fixed schema instance.
func NewFixedSchema(n, namespace string, size int, opts ...SchemaOption) (*FixedSchema, error) {
	nm, err := newName(n, namespace)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("avro: fixed %q must have a positive size", nm.FullName())
	}

	var cfg schemaConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	nm.doc = cfg.doc

	return &FixedSchema{name: nm, size: size}, nil
}

// Type returns the type of the schema.
func (s *FixedSchema) Type() Type { return Fixed }

// Size returns the number of bytes of the fixed schema.
func (s *FixedSchema) Size() int { return s.size }

// String returns the canonical string representation of the schema.
func (s *FixedSchema) String() string {
	return fmt.Sprintf("fixed(%s,%d)", s.FullName(), s.size)
}

// ArraySchema is an Avro array schema.
type ArraySchema struct {
	items Schema
}

// NewArraySchema creates a new array schema instance.
func NewArraySchema(items Schema) *ArraySchema {
	return &ArraySchema{items: items}
}

// Type returns the type of the schema.
func (s *ArraySchema) Type() Type { return Array }

// Items returns the schema of the array's items.
func (s *ArraySchema) Items() Schema { return s.items }

// String returns the canonical string representation of the schema.
func (s *ArraySchema) String() string {
	return fmt.Sprintf("array(%s)", s.items.String())
}

// MapSchema is an Avro map schema. Map keys are always strings.
type MapSchema struct {
	values Schema
}

// NewMapSchema creates a new map schema instance.
func NewMapSchema(values Schema) *MapSchema {
	return &MapSchema{values: values}
}

// Type returns the type of the schema.
func (s *MapSchema) Type() Type { return Map }

// Values returns the schema of the map's values.
func (s *MapSchema) Values() Schema { return s.values }

// String returns the canonical string representation of the schema.
func (s *MapSchema) String() string {
	return fmt.Sprintf("map(%s)", s.values.String())
}

// UnionSchema is an Avro union schema, an ordered list of branch schemas.
type UnionSchema struct {
	types []Schema
}

// NewUnionSchema creates a new union schema instance. It rejects nested
// unions and duplicate branch type names, matching Avro's published
// constraints on unions.
func NewUnionSchema(types []Schema) (*UnionSchema, error) {
	seen := make(map[string]struct{}, len(types))
	for _, t := range types {
		if t.Type() == Union {
			return nil, errors.New("avro: union schema cannot have a union as a direct branch")
		}

		key := string(t.Type())
		if n, ok := t.(interface{ FullName() string }); ok {
			key = n.FullName()
		}
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("avro: union schema has duplicate branch type %q", key)
		}
		seen[key] = struct{}{}
	}

	return &UnionSchema{types: types}, nil
}

// Type returns the type of the schema.
func (s *UnionSchema) Type() Type { return Union }

// Types returns the branches of the union, in declaration order.
func (s *UnionSchema) Types() []Schema { return s.types }

// Nullable reports whether this is a two-branch union with null as one of
// the branches, and returns the other branch.
func (s *UnionSchema) Nullable() (Schema, bool) {
	if len(s.types) != 2 {
		return nil, false
	}
	if s.types[0].Type() == Null {
		return s.types[1], true
	}
	if s.types[1].Type() == Null {
		return s.types[0], true
	}
	return nil, false
}

// String returns the canonical string representation of the schema.
func (s *UnionSchema) String() string {
	parts := make([]string, len(s.types))
	for i, t := range s.types {
		parts[i] = t.String()
	}
	return "union(" + strings.Join(parts, ",") + ")"
}
