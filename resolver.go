package avro

import "fmt"

// Resolver walks a writer schema and a binary payload produced under it,
// populating a reader-schema-shaped Value — performing type promotion,
// union branch reselection, default-field injection and field skipping
// along the way. This is the recursive descent spec.md §2 describes as the
// library's core.
//
// A Resolver is safe to use concurrently as long as each call operates on
// disjoint (Reader, Value) pairs; there is no mutable state here beyond the
// schema-compatibility memoization cache, which is itself concurrency-safe.
type Resolver struct {
	compat Compatibility
}

// NewResolver creates a new Resolver with an empty compatibility cache.
func NewResolver() *Resolver {
	return &Resolver{}
}

var defaultResolver = NewResolver()

// Resolve is the package-level entry point, delegating to a shared default
// Resolver whose compatibility cache is reused by every call to Resolve for
// the life of the process. Callers that want a cache of their own can
// construct a separate Resolver with NewResolver.
func Resolve(r *Reader, writer, reader Schema, dst *Value) error {
	return defaultResolver.Resolve(r, writer, reader, dst)
}

// Resolve decodes bytes from r, produced under writer, into dst, which must
// have been constructed from reader (dst.Schema() == reader). dst is reset
// before anything is read, per §4.7 step 1.
func (res *Resolver) Resolve(r *Reader, writer, reader Schema, dst *Value) error {
	dst.Reset()

	if err := res.compat.Check(reader, writer); err != nil {
		return err
	}

	return res.resolveValue(r, writer, dst)
}

// resolveValue is the per-node dispatch. The writer's type drives which
// byte-stream shape is on the wire; dst's type (which may itself be a
// union) drives the destination-side cross-case per §4.3.
func (res *Resolver) resolveValue(r *Reader, writer Schema, dst *Value) error {
	if writer.Type() == Union {
		return res.resolveUnion(r, writer.(*UnionSchema), dst)
	}
	if dst.Type() == Union {
		// Case 3 (§4.3): writer=T, reader=U. No discriminant on the wire.
		return res.resolveTtoU(r, writer, dst)
	}

	switch writer.Type() {
	case Array:
		return res.resolveArray(r, writer.(*ArraySchema), dst)
	case Map:
		return res.resolveMap(r, writer.(*MapSchema), dst)
	case Record:
		return res.resolveRecord(r, writer.(*RecordSchema), dst)
	default:
		return res.resolvePrimitive(r, writer, dst)
	}
}

// resolveUnion handles §4.3 cases 1 and 2: the writer is a union, so a
// discriminant is always read off the wire first.
func (res *Resolver) resolveUnion(r *Reader, writer *UnionSchema, dst *Value) error {
	d := r.ReadLong()
	if r.Error != nil {
		return fmt.Errorf("avro: reading union discriminant: %w", r.Error)
	}

	branches := writer.Types()
	if d < 0 || int(d) >= len(branches) {
		return fmt.Errorf("avro: discriminant %d out of range for %d writer branches: %w", d, len(branches), ErrInvalidDiscriminant)
	}
	wBranch := branches[d]

	if dst.Type() == Union {
		return res.resolveUnionUtoU(r, wBranch, dst)
	}

	// Case 2: U -> T. Recurse directly into dst using the selected writer
	// branch; no reader-union branch selection is involved.
	return res.resolveValue(r, wBranch, dst)
}

// resolveUnionUtoU is the specialization of resolveUnion for §4.3 case 1
// (writer=U, reader=U): find the first reader branch compatible with the
// already-selected writer branch, select it, and recurse.
func (res *Resolver) resolveUnionUtoU(r *Reader, wBranch Schema, dst *Value) error {
	readerBranches := dst.Schema().(*UnionSchema).Types()

	for i, rBranch := range readerBranches {
		if res.compat.Match(rBranch, wBranch) {
			branchVal := dst.SetBranch(i)
			return res.resolveValue(r, wBranch, branchVal)
		}
	}

	// §9: the source implementation this library is modeled on returns
	// success with no branch selected here; that is a bug. This resolver
	// always fails NoCompatibleBranch when no reader branch matches,
	// consistent with the T->U case below.
	return fmt.Errorf("avro: no reader union branch compatible with writer branch %s: %w", wBranch.Type(), ErrNoCompatibleBranch)
}

// resolveTtoU handles §4.3 case 3: the writer is not a union but the reader
// is. No discriminant is read; the first compatible reader branch is
// selected by schema matching alone.
func (res *Resolver) resolveTtoU(r *Reader, writer Schema, dst *Value) error {
	readerBranches := dst.Schema().(*UnionSchema).Types()

	for i, rBranch := range readerBranches {
		if res.compat.Match(rBranch, writer) {
			branchVal := dst.SetBranch(i)
			return res.resolveValue(r, writer, branchVal)
		}
	}

	return fmt.Errorf("avro: no reader union branch compatible with writer schema %s: %w", writer.Type(), ErrNoCompatibleBranch)
}

// resolveArray decodes a block-framed array (§4.4). block_size is consumed
// when present but not relied upon here: every item must be decoded and
// recursed into regardless, since the destination needs the materialized
// values. Reader.Skip's skip path (reader_skip.go) is where block_size
// actually saves work.
func (res *Resolver) resolveArray(r *Reader, writer *ArraySchema, dst *Value) error {
	for {
		l, _ := r.ReadBlockHeader()
		if r.Error != nil {
			return fmt.Errorf("avro: reading array block header: %w", r.Error)
		}
		if l == 0 {
			return nil
		}

		for i := int64(0); i < l; i++ {
			child := dst.Append()
			if err := res.resolveValue(r, writer.Items(), child); err != nil {
				return fmt.Errorf("avro: array item %d: %w", i, err)
			}
		}
	}
}

// resolveMap decodes a block-framed map (§4.5). Per item: read a
// length-prefixed string key, add a named child, recurse.
func (res *Resolver) resolveMap(r *Reader, writer *MapSchema, dst *Value) error {
	for {
		l, _ := r.ReadBlockHeader()
		if r.Error != nil {
			return fmt.Errorf("avro: reading map block header: %w", r.Error)
		}
		if l == 0 {
			return nil
		}

		for i := int64(0); i < l; i++ {
			key := r.ReadString()
			if r.Error != nil {
				return fmt.Errorf("avro: reading map key: %w", r.Error)
			}

			child := dst.Add(key)
			if err := res.resolveValue(r, writer.Values(), child); err != nil {
				return fmt.Errorf("avro: map value %q: %w", key, err)
			}
		}
	}
}

// resolveRecord aligns writer and reader fields by name (§4.6): writer
// fields are consumed in writer declaration order (matching reader fields
// are decoded into the corresponding destination child; unmatched fields
// are skipped), then any reader-only field not yet populated is defaulted.
func (res *Resolver) resolveRecord(r *Reader, writer *RecordSchema, dst *Value) error {
	readerSchema := dst.Schema().(*RecordSchema)
	populated := make(map[string]bool, len(writer.Fields()))

	for _, wf := range writer.Fields() {
		rf, ok := readerSchema.FieldByName(wf.Name())
		if !ok {
			r.Skip(wf.Type())
			if r.Error != nil {
				return fmt.Errorf("avro: skipping writer-only field %q: %w", wf.Name(), r.Error)
			}
			continue
		}

		child, _ := dst.ChildByName(rf.Name())
		if err := res.resolveValue(r, wf.Type(), child); err != nil {
			return fmt.Errorf("avro: field %q: %w", wf.Name(), err)
		}
		populated[wf.Name()] = true
	}

	for _, rf := range readerSchema.Fields() {
		if populated[rf.Name()] {
			continue
		}
		if !rf.HasDefault() {
			return fmt.Errorf("avro: field %q: %w", rf.Name(), ErrMissingDefaultForReaderField)
		}

		child, _ := dst.ChildByName(rf.Name())
		if err := injectDefault(rf, child); err != nil {
			return fmt.Errorf("avro: field %q default: %w", rf.Name(), err)
		}
	}

	return nil
}

// resolvePrimitive consumes one primitive per the writer type and stores it
// into dst using dst's own (reader) type, applying promotion by cast
// (§4.2). The compatibility check in Resolve already guarantees writer and
// dst are a legal pairing; the default arms below are defensive.
func (res *Resolver) resolvePrimitive(r *Reader, writer Schema, dst *Value) error {
	switch writer.Type() {
	case Null:
		r.ReadNull()
		dst.SetNull()

	case Boolean:
		b := r.ReadBool()
		if r.Error != nil {
			break
		}
		dst.SetBoolean(b)

	case Int:
		n := r.ReadInt()
		if r.Error != nil {
			break
		}
		switch dst.Type() {
		case Int:
			dst.SetInt(n)
		case Long:
			dst.SetLong(int64(n))
		case Float:
			dst.SetFloat(float32(n))
		case Double:
			dst.SetDouble(float64(n))
		default:
			return fmt.Errorf("avro: cannot promote int to %s: %w", dst.Type(), ErrIncompatibleSchema)
		}

	case Long:
		n := r.ReadLong()
		if r.Error != nil {
			break
		}
		switch dst.Type() {
		case Long:
			dst.SetLong(n)
		case Float:
			dst.SetFloat(float32(n))
		case Double:
			dst.SetDouble(float64(n))
		default:
			return fmt.Errorf("avro: cannot promote long to %s: %w", dst.Type(), ErrIncompatibleSchema)
		}

	case Float:
		f := r.ReadFloat()
		if r.Error != nil {
			break
		}
		switch dst.Type() {
		case Float:
			dst.SetFloat(f)
		case Double:
			dst.SetDouble(float64(f))
		default:
			return fmt.Errorf("avro: cannot promote float to %s: %w", dst.Type(), ErrIncompatibleSchema)
		}

	case Double:
		d := r.ReadDouble()
		if r.Error != nil {
			break
		}
		if dst.Type() != Double {
			return fmt.Errorf("avro: cannot promote double to %s: %w", dst.Type(), ErrIncompatibleSchema)
		}
		dst.SetDouble(d)

	case Bytes:
		b := r.ReadBytes()
		if r.Error != nil {
			break
		}
		switch dst.Type() {
		case Bytes:
			dst.GiveBytes(b)
		case String:
			dst.GiveString(string(b))
		default:
			return fmt.Errorf("avro: cannot promote bytes to %s: %w", dst.Type(), ErrIncompatibleSchema)
		}

	case String:
		s := r.ReadString()
		if r.Error != nil {
			break
		}
		switch dst.Type() {
		case String:
			dst.GiveString(s)
		case Bytes:
			dst.GiveBytes([]byte(s))
		default:
			return fmt.Errorf("avro: cannot promote string to %s: %w", dst.Type(), ErrIncompatibleSchema)
		}

	case Enum:
		idx := int(r.ReadLong())
		if r.Error != nil {
			break
		}
		if dst.Type() != Enum {
			return fmt.Errorf("avro: cannot resolve enum to %s: %w", dst.Type(), ErrIncompatibleSchema)
		}
		// §9 open question, decided: reject an out-of-range symbol index
		// rather than silently accepting it.
		if _, ok := dst.Schema().(*EnumSchema).Symbol(idx); !ok {
			return fmt.Errorf("avro: enum index %d out of range for reader symbols: %w", idx, ErrIncompatibleSchema)
		}
		dst.SetEnum(idx)

	case Fixed:
		if dst.Type() != Fixed {
			return fmt.Errorf("avro: cannot resolve fixed to %s: %w", dst.Type(), ErrIncompatibleSchema)
		}
		size := dst.Schema().(*FixedSchema).Size()
		buf := make([]byte, size)
		r.Read(buf)
		if r.Error != nil {
			break
		}
		dst.GiveFixed(buf)

	default:
		return fmt.Errorf("avro: %s: %w", writer.Type(), ErrUnknownType)
	}

	if r.Error != nil {
		return fmt.Errorf("avro: reading %s: %w", writer.Type(), r.Error)
	}
	return nil
}
