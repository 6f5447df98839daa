package avro

import (
	"fmt"
	"sync"
)

// recursionSentinel marks a (reader, writer) pair that is currently being
// checked, so a self-referential pair resolves to "compatible" instead of
// recursing forever.
type recursionSentinel struct{}

func (recursionSentinel) Error() string { return "" }

type compatKey struct {
	reader Schema
	writer Schema
}

// Compatibility determines schema compatibility per the promotion table in
// §4.1: it decides, for a (reader, writer) schema pair, whether a resolver
// can legally reconcile writer-encoded bytes into a reader-shaped value.
//
// A zero-value Compatibility is ready to use. Results are memoized per
// (reader, writer) pair, so a long-lived consumer resolving the same schema
// pair on every message does not re-walk both schema trees each time.
type Compatibility struct {
	cache sync.Map // map[compatKey]error
}

// Match reports whether writer can be resolved into reader.
func (c *Compatibility) Match(reader, writer Schema) bool {
	return c.Check(reader, writer) == nil
}

// Check returns nil if writer can be resolved into reader, or a descriptive
// error identifying the first incompatibility found, wrapping
// ErrIncompatibleSchema.
func (c *Compatibility) Check(reader, writer Schema) error {
	return c.check(reader, writer)
}

func (c *Compatibility) check(reader, writer Schema) error {
	key := compatKey{reader: reader, writer: writer}
	if v, ok := c.cache.Load(key); ok {
		if _, ok := v.(recursionSentinel); ok {
			return nil
		}
		if v == nil {
			return nil
		}
		return v.(error)
	}

	c.cache.Store(key, recursionSentinel{})
	err := c.match(reader, writer)
	if err != nil {
		// Strip the dynamic %w chain before caching; errors.Is against
		// ErrIncompatibleSchema remains true on the re-wrapped copy.
		err = fmt.Errorf("%w: %s", ErrIncompatibleSchema, err.Error())
	}
	c.cache.Store(key, err)
	return err
}

func (c *Compatibility) match(reader, writer Schema) error {
	if reader.Type() != writer.Type() {
		if writer.Type() == Union {
			// Reader must be compatible with every writer branch.
			for _, branch := range writer.(*UnionSchema).Types() {
				if err := c.check(reader, branch); err != nil {
					return err
				}
			}
			return nil
		}

		if reader.Type() == Union {
			// Writer must be compatible with at least one reader branch.
			for _, branch := range reader.(*UnionSchema).Types() {
				if c.check(branch, writer) == nil {
					return nil
				}
			}
			return fmt.Errorf("reader union has no branch compatible with writer %s", writer.Type())
		}

		if isPromotable(reader.Type(), writer.Type()) {
			return nil
		}

		return fmt.Errorf("reader %s is not compatible with writer %s", reader.Type(), writer.Type())
	}

	switch reader.Type() {
	case Array:
		return c.check(reader.(*ArraySchema).Items(), writer.(*ArraySchema).Items())

	case Map:
		return c.check(reader.(*MapSchema).Values(), writer.(*MapSchema).Values())

	case Fixed:
		r, w := reader.(*FixedSchema), writer.(*FixedSchema)
		if err := checkSchemaName(r.FullName(), w.FullName()); err != nil {
			return err
		}
		if r.Size() != w.Size() {
			return fmt.Errorf("fixed %s has size %d, writer has size %d", r.FullName(), r.Size(), w.Size())
		}
		return nil

	case Enum:
		r, w := reader.(*EnumSchema), writer.(*EnumSchema)
		return checkSchemaName(r.FullName(), w.FullName())

	case Record:
		r, w := reader.(*RecordSchema), writer.(*RecordSchema)
		if err := checkSchemaName(r.FullName(), w.FullName()); err != nil {
			return err
		}
		return c.checkRecordFields(r, w)

	case Union:
		r, w := reader.(*UnionSchema), writer.(*UnionSchema)
		for _, wt := range w.Types() {
			matched := false
			for _, rt := range r.Types() {
				if c.check(rt, wt) == nil {
					matched = true
					break
				}
			}
			if !matched {
				return fmt.Errorf("writer union branch %s has no compatible reader branch", wt.Type())
			}
		}
		return nil
	}

	return nil
}

func (c *Compatibility) checkRecordFields(reader, writer *RecordSchema) error {
	for _, rf := range reader.Fields() {
		wf, ok := writer.FieldByName(rf.Name())
		if !ok {
			if !rf.HasDefault() {
				return fmt.Errorf("reader field %q has no default and is missing from writer", rf.Name())
			}
			continue
		}
		if err := c.check(rf.Type(), wf.Type()); err != nil {
			return fmt.Errorf("field %q: %w", rf.Name(), err)
		}
	}
	return nil
}

func checkSchemaName(reader, writer string) error {
	if reader != writer {
		return fmt.Errorf("name %q does not match writer name %q", reader, writer)
	}
	return nil
}

// isPromotable reports whether a writer primitive can be losslessly widened
// into reader, per the table in §4.1. Caller has already excluded the
// reader.Type() == writer.Type() and union cases.
func isPromotable(reader, writer Type) bool {
	switch writer {
	case Int:
		return reader == Long || reader == Float || reader == Double
	case Long:
		return reader == Float || reader == Double
	case Float:
		return reader == Double
	case String:
		return reader == Bytes
	case Bytes:
		return reader == String
	default:
		return false
	}
}
