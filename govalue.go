package avro

import (
	"fmt"

	"github.com/ettle/strcase"
	"github.com/mitchellh/mapstructure"
)

// Decode walks a resolved Value into dst, a pointer to a caller-supplied Go
// struct (or map, or slice of either), via mapstructure. This is a
// convenience layer on top of resolution proper: spec.md's Value
// abstraction only promises schema-driven accessors, not a Go-struct
// decode path, so this adapter goes through Value.Native() and then
// mapstructure.Decode rather than resolving directly into reflect-visited
// struct fields.
//
// Avro field names are conventionally snake_case; MatchName uses strcase to
// line that up with idiomatic Go field names (UserId, CreatedAt, ...)
// without requiring the caller to tag every field with `mapstructure:"..."`.
func Decode(v *Value, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
		MatchName:        matchAvroFieldName,
	})
	if err != nil {
		return fmt.Errorf("avro: building struct decoder: %w", err)
	}

	if err := dec.Decode(v.Native()); err != nil {
		return fmt.Errorf("avro: decoding into %T: %w", dst, err)
	}
	return nil
}

func matchAvroFieldName(mapKey, fieldName string) bool {
	if mapKey == fieldName {
		return true
	}
	return strcase.ToSnake(fieldName) == strcase.ToSnake(mapKey)
}
