package avro

import (
	"fmt"
	"reflect"

	"github.com/modern-go/reflect2"
)

// injectDefault materializes field's parsed default literal into dst
// without consuming any bytes from the wire (§4.8). dst must have been
// constructed from field.Type().
func injectDefault(field *Field, dst *Value) error {
	if !field.HasDefault() {
		return fmt.Errorf("avro: field %q: %w", field.Name(), ErrMissingDefaultForReaderField)
	}
	return injectDefaultValue(field.Type(), field.Default(), dst)
}

// injectDefaultValue recurses the default literal according to the
// destination schema's type, per the table in §4.8. Union defaults are
// applied to the union's first branch (the Avro spec rule), regardless of
// which branch the literal would naturally match.
func injectDefaultValue(schema Schema, literal any, dst *Value) error {
	switch s := schema.(type) {
	case *PrimitiveSchema:
		return injectPrimitiveDefault(s.Type(), literal, dst)

	case *EnumSchema:
		sym, ok := literal.(string)
		if !ok || !hasSymbol(s.Symbols(), sym) {
			return fmt.Errorf("avro: default %v is not a valid symbol of enum %s: %w", literal, s.FullName(), ErrInvalidDefault)
		}
		for i, sy := range s.Symbols() {
			if sy == sym {
				dst.SetEnum(i)
				return nil
			}
		}
		return fmt.Errorf("avro: default %v is not a valid symbol of enum %s: %w", literal, s.FullName(), ErrInvalidDefault)

	case *FixedSchema:
		str, err := asString(literal)
		if err != nil || len(str) != s.Size() {
			return fmt.Errorf("avro: fixed default must be exactly %d bytes: %w", s.Size(), ErrInvalidDefault)
		}
		dst.GiveFixed([]byte(str))
		return nil

	case *ArraySchema:
		items, ok := literal.([]any)
		if !ok {
			return fmt.Errorf("avro: array default must be a JSON array: %w", ErrInvalidDefault)
		}
		for _, item := range items {
			child := dst.Append()
			if err := injectDefaultValue(s.Items(), item, child); err != nil {
				return err
			}
		}
		return nil

	case *MapSchema:
		entries, ok := literal.(map[string]any)
		if !ok {
			return fmt.Errorf("avro: map default must be a JSON object: %w", ErrInvalidDefault)
		}
		for k, v := range entries {
			child := dst.Add(k)
			if err := injectDefaultValue(s.Values(), v, child); err != nil {
				return fmt.Errorf("avro: map default key %q: %w", k, err)
			}
		}
		return nil

	case *RecordSchema:
		entries, ok := literal.(map[string]any)
		if !ok {
			return fmt.Errorf("avro: record default must be a JSON object: %w", ErrInvalidDefault)
		}
		for _, f := range s.Fields() {
			v, present := entries[f.Name()]
			child, _ := dst.ChildByName(f.Name())
			if !present {
				if err := injectDefault(f, child); err != nil {
					return err
				}
				continue
			}
			if err := injectDefaultValue(f.Type(), v, child); err != nil {
				return fmt.Errorf("avro: record default field %q: %w", f.Name(), err)
			}
		}
		return nil

	case *UnionSchema:
		branches := s.Types()
		branchVal := dst.SetBranch(0)
		return injectDefaultValue(branches[0], literal, branchVal)

	default:
		return fmt.Errorf("avro: %T: %w", schema, ErrUnknownType)
	}
}

func injectPrimitiveDefault(typ Type, literal any, dst *Value) error {
	switch typ {
	case Null:
		if literal != nil {
			return fmt.Errorf("avro: null default must be literal null: %w", ErrInvalidDefault)
		}
		dst.SetNull()
		return nil

	case Boolean:
		b, err := asBool(literal)
		if err != nil {
			return err
		}
		dst.SetBoolean(b)
		return nil

	case Int:
		n, err := asInt64(literal)
		if err != nil {
			return err
		}
		dst.SetInt(int32(n))
		return nil

	case Long:
		n, err := asInt64(literal)
		if err != nil {
			return err
		}
		dst.SetLong(n)
		return nil

	case Float:
		f, err := asFloat64(literal)
		if err != nil {
			return err
		}
		dst.SetFloat(float32(f))
		return nil

	case Double:
		f, err := asFloat64(literal)
		if err != nil {
			return err
		}
		dst.SetDouble(f)
		return nil

	case String, Bytes:
		str, err := asString(literal)
		if err != nil {
			return err
		}
		if typ == String {
			dst.GiveString(str)
		} else {
			dst.GiveBytes([]byte(str))
		}
		return nil

	default:
		return fmt.Errorf("avro: %s: %w", typ, ErrUnknownType)
	}
}

// asInt64, asFloat64, asBool and asString coerce a parsed default literal
// (typically produced by encoding/json or jsoniter, where every JSON number
// decodes as float64) into the Go kind the destination primitive needs,
// using reflect2 to inspect the literal's dynamic kind the same way the
// teacher's int/long/float/double default decoders do.
func asInt64(literal any) (int64, error) {
	switch reflect2.TypeOf(literal).Kind() {
	case reflect.Float64:
		return int64(literal.(float64)), nil
	case reflect.Float32:
		return int64(literal.(float32)), nil
	case reflect.Int:
		return int64(literal.(int)), nil
	case reflect.Int32:
		return int64(literal.(int32)), nil
	case reflect.Int64:
		return literal.(int64), nil
	default:
		return 0, fmt.Errorf("avro: default %v is not a number: %w", literal, ErrInvalidDefault)
	}
}

func asFloat64(literal any) (float64, error) {
	switch reflect2.TypeOf(literal).Kind() {
	case reflect.Float64:
		return literal.(float64), nil
	case reflect.Float32:
		return float64(literal.(float32)), nil
	case reflect.Int:
		return float64(literal.(int)), nil
	case reflect.Int32:
		return float64(literal.(int32)), nil
	case reflect.Int64:
		return float64(literal.(int64)), nil
	default:
		return 0, fmt.Errorf("avro: default %v is not a number: %w", literal, ErrInvalidDefault)
	}
}

func asBool(literal any) (bool, error) {
	b, ok := literal.(bool)
	if !ok {
		return false, fmt.Errorf("avro: default %v is not a boolean: %w", literal, ErrInvalidDefault)
	}
	return b, nil
}

func asString(literal any) (string, error) {
	s, ok := literal.(string)
	if !ok {
		return "", fmt.Errorf("avro: default %v is not a string: %w", literal, ErrInvalidDefault)
	}
	return s, nil
}

// ParseDefaultLiteral parses a JSON-text default (as it would appear in an
// Avro schema's "default" field) into the any shape injectDefaultValue
// consumes, via jsoniter rather than encoding/json.
func ParseDefaultLiteral(jsonText string) (any, error) {
	var v any
	if err := jsonAPI.UnmarshalFromString(jsonText, &v); err != nil {
		return nil, fmt.Errorf("avro: parsing default literal: %w", err)
	}
	return v, nil
}
