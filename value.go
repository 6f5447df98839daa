package avro

import "fmt"

// Value is a schema-typed, in-memory container, the generic value
// abstraction spec.md §3/§6 treats as an external collaborator. A Value's
// shape is dictated by the Schema it was constructed from: scalar fields
// for primitives, a child slice for arrays/maps/records, and a selected
// branch for unions.
type Value struct {
	schema Schema

	boolVal   bool
	intVal    int32
	longVal   int64
	floatVal  float32
	doubleVal float64
	bytesVal  []byte
	stringVal string
	enumIdx   int

	// children and keys back Array (keys unused), Map (keys parallel to
	// children) and Record (keys hold the field name at construction, used
	// for name-indexed lookup).
	children []*Value
	keys     []string

	// unionIdx/unionVal back Union: -1 / nil until a branch is selected.
	unionIdx int
	unionVal *Value
}

// NewValue builds an empty Value shaped by schema. For records, every field
// slot is pre-built (recursively) in declaration order so RecordResolver can
// fetch a child by name without constructing it lazily; for arrays and maps
// children are appended on demand via Append/Add.
func NewValue(schema Schema) *Value {
	v := &Value{schema: schema, unionIdx: -1}

	switch s := schema.(type) {
	case *RecordSchema:
		fields := s.Fields()
		v.children = make([]*Value, len(fields))
		v.keys = make([]string, len(fields))
		for i, f := range fields {
			v.children[i] = NewValue(f.Type())
			v.keys[i] = f.Name()
		}
	}

	return v
}

// Type returns the Avro type of the value, as dictated by its schema.
func (v *Value) Type() Type { return v.schema.Type() }

// Schema returns the schema this value was constructed from.
func (v *Value) Schema() Schema { return v.schema }

// SetNull marks the value as the null value. There is nothing else to do;
// null carries no payload.
func (v *Value) SetNull() {}

// SetBoolean sets a boolean value.
func (v *Value) SetBoolean(b bool) { v.boolVal = b }

// Boolean returns the stored boolean value.
func (v *Value) Boolean() bool { return v.boolVal }

// SetInt sets an int32 value.
func (v *Value) SetInt(n int32) { v.intVal = n }

// Int returns the stored int32 value.
func (v *Value) Int() int32 { return v.intVal }

// SetLong sets an int64 value.
func (v *Value) SetLong(n int64) { v.longVal = n }

// Long returns the stored int64 value.
func (v *Value) Long() int64 { return v.longVal }

// SetFloat sets a float32 value.
func (v *Value) SetFloat(f float32) { v.floatVal = f }

// Float returns the stored float32 value.
func (v *Value) Float() float32 { return v.floatVal }

// SetDouble sets a float64 value.
func (v *Value) SetDouble(f float64) { v.doubleVal = f }

// Double returns the stored float64 value.
func (v *Value) Double() float64 { return v.doubleVal }

// GiveBytes takes ownership of b as the value's bytes payload.
func (v *Value) GiveBytes(b []byte) { v.bytesVal = b }

// Bytes returns the stored bytes payload.
func (v *Value) Bytes() []byte { return v.bytesVal }

// GiveString takes ownership of s as the value's string payload.
func (v *Value) GiveString(s string) { v.stringVal = s }

// String returns the stored string payload.
func (v *Value) String() string { return v.stringVal }

// GiveFixed takes ownership of b as the value's fixed-size payload. The
// caller is responsible for ensuring len(b) matches the fixed schema's size.
func (v *Value) GiveFixed(b []byte) { v.bytesVal = b }

// Fixed returns the stored fixed-size payload.
func (v *Value) Fixed() []byte { return v.bytesVal }

// SetEnum sets the enum value by symbol index into the destination's own
// enum schema.
func (v *Value) SetEnum(index int) { v.enumIdx = index }

// EnumIndex returns the stored enum symbol index.
func (v *Value) EnumIndex() int { return v.enumIdx }

// EnumSymbol resolves the stored index against the value's enum schema.
func (v *Value) EnumSymbol() (string, bool) {
	return v.schema.(*EnumSchema).Symbol(v.enumIdx)
}

// SetBranch selects union branch i, (re)constructing its value fresh, and
// returns it for the caller to populate.
func (v *Value) SetBranch(i int) *Value {
	branches := v.schema.(*UnionSchema).Types()
	v.unionIdx = i
	v.unionVal = NewValue(branches[i])
	return v.unionVal
}

// CurrentBranch returns the currently selected union branch value, or nil
// if no branch has been selected since construction or the last Reset.
func (v *Value) CurrentBranch() *Value { return v.unionVal }

// CurrentBranchIndex returns the currently selected union branch index, or
// -1 if none has been selected.
func (v *Value) CurrentBranchIndex() int { return v.unionIdx }

// Size returns the number of children: array length, map entry count, or
// record field count.
func (v *Value) Size() int { return len(v.children) }

// ChildAt returns the i'th child of an array or record value.
func (v *Value) ChildAt(i int) *Value { return v.children[i] }

// ChildByName returns the named child of a record or map value, and whether
// it was found.
func (v *Value) ChildByName(name string) (*Value, bool) {
	for i := len(v.keys) - 1; i >= 0; i-- {
		if v.keys[i] == name {
			return v.children[i], true
		}
	}
	return nil, false
}

// Append grows an array value by one element, typed by the array schema's
// item schema, and returns it for the caller to populate.
func (v *Value) Append() *Value {
	child := NewValue(v.schema.(*ArraySchema).Items())
	v.children = append(v.children, child)
	v.keys = append(v.keys, "")
	return child
}

// Add grows a map value by one entry under name, typed by the map schema's
// value schema, and returns it for the caller to populate. Key collisions
// are not checked; a later Add with the same name simply appends another
// entry and Native/ChildByName observe last-write-wins (ChildByName scans
// from the newest entry back), matching §4.5's "last write wins at the value layer".
func (v *Value) Add(name string) *Value {
	child := NewValue(v.schema.(*MapSchema).Values())
	v.children = append(v.children, child)
	v.keys = append(v.keys, name)
	return child
}

// Reset structurally clears the value back to the empty state matching its
// schema: array/map children are dropped (capacity retained), record fields
// are recursively reset, and union selection is cleared. Scalars revert to
// their zero value.
func (v *Value) Reset() {
	v.boolVal = false
	v.intVal = 0
	v.longVal = 0
	v.floatVal = 0
	v.doubleVal = 0
	v.bytesVal = nil
	v.stringVal = ""
	v.enumIdx = 0
	v.unionIdx = -1
	v.unionVal = nil

	switch v.schema.(type) {
	case *RecordSchema:
		for _, c := range v.children {
			c.Reset()
		}
	case *ArraySchema, *MapSchema:
		v.children = v.children[:0]
		v.keys = v.keys[:0]
	}
}

// Native converts the value into a plain Go representation built from
// map[string]any, []any and scalar types, suitable for JSON marshaling or
// as the intermediate shape mapstructure.Decode walks in govalue.go.
func (v *Value) Native() any {
	switch s := v.schema.(type) {
	case *PrimitiveSchema:
		switch s.Type() {
		case Null:
			return nil
		case Boolean:
			return v.boolVal
		case Int:
			return v.intVal
		case Long:
			return v.longVal
		case Float:
			return v.floatVal
		case Double:
			return v.doubleVal
		case Bytes:
			return v.bytesVal
		case String:
			return v.stringVal
		}
	case *EnumSchema:
		sym, _ := v.EnumSymbol()
		return sym
	case *FixedSchema:
		return v.bytesVal
	case *ArraySchema:
		out := make([]any, len(v.children))
		for i, c := range v.children {
			out[i] = c.Native()
		}
		return out
	case *MapSchema:
		out := make(map[string]any, len(v.children))
		for i, c := range v.children {
			out[v.keys[i]] = c.Native()
		}
		return out
	case *RecordSchema:
		out := make(map[string]any, len(v.children))
		for i, c := range v.children {
			out[v.keys[i]] = c.Native()
		}
		return out
	case *UnionSchema:
		if v.unionVal == nil {
			return nil
		}
		return v.unionVal.Native()
	}

	panic(fmt.Sprintf("avro: unreachable schema type %T in Native", v.schema))
}

// MarshalJSON renders the value's Native representation as JSON via
// jsoniter, matching the encoding the teacher's own Config uses elsewhere
// in the ecosystem.
func (v *Value) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal(v.Native())
}
