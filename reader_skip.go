package avro

// SkipNBytes skips the given number of bytes in the reader.
func (r *Reader) SkipNBytes(n int) {
	read := 0
	for read < n {
		if r.head == r.tail {
			if !r.loadMore() {
				return
			}
		}

		if read+r.tail-r.head < n {
			read += r.tail - r.head
			r.head = r.tail
			continue
		}

		r.head += n - read
		read += n - read
	}
}

// SkipBool skips a Bool in the reader.
func (r *Reader) SkipBool() {
	_ = r.readByte()
}

// skipVarint discards a LEB128 varint's continuation bytes without
// accumulating its value, stopping at the first byte with the continuation
// bit clear or after limit bytes, whichever comes first.
func (r *Reader) skipVarint(limit int) {
	for i := 0; r.Error == nil && i < limit; i++ {
		if r.readByte()&0x80 == 0 {
			return
		}
	}
}

// SkipInt skips an Int in the reader.
func (r *Reader) SkipInt() { r.skipVarint(maxIntBufSize) }

// SkipLong skips a Long in the reader.
func (r *Reader) SkipLong() { r.skipVarint(maxLongBufSize) }

// SkipFloat skips a Float in the reader.
func (r *Reader) SkipFloat() {
	r.SkipNBytes(4)
}

// SkipDouble skips a Double in the reader.
func (r *Reader) SkipDouble() {
	r.SkipNBytes(8)
}

// SkipString skips a String in the reader.
func (r *Reader) SkipString() {
	size := r.ReadLong()
	if size <= 0 {
		return
	}
	r.SkipNBytes(int(size))
}

// SkipBytes skips Bytes in the reader.
func (r *Reader) SkipBytes() {
	size := r.ReadLong()
	if size <= 0 {
		return
	}
	r.SkipNBytes(int(size))
}

// Skip discards an entire value described by schema without materializing
// it, the schema-driven skip_value(schema) operation spec.md §3/§6 names on
// the byte reader. Dispatch mirrors resolveValue's writer-type switch, but
// every arm is a pure byte-stream skip with no destination value involved.
func (r *Reader) Skip(schema Schema) {
	if r.Error != nil {
		return
	}

	switch schema.Type() {
	case Null:
		// nothing on the wire
	case Boolean:
		r.SkipBool()
	case Int:
		r.SkipInt()
	case Long:
		r.SkipLong()
	case Float:
		r.SkipFloat()
	case Double:
		r.SkipDouble()
	case Bytes:
		r.SkipBytes()
	case String:
		r.SkipString()
	case Enum:
		r.SkipInt()
	case Fixed:
		r.SkipNBytes(schema.(*FixedSchema).Size())
	case Array:
		r.skipArray(schema.(*ArraySchema))
	case Map:
		r.skipMap(schema.(*MapSchema))
	case Record:
		r.skipRecord(schema.(*RecordSchema))
	case Union:
		r.skipUnion(schema.(*UnionSchema))
	default:
		r.ReportError("Skip", "unknown schema type "+string(schema.Type()))
	}
}

// skipArray and skipMap exploit the block_size hint that resolveArray and
// resolveMap only consume but never rely on (§4.4/§4.5): for a
// negative-count block, the following block_size byte count lets the skip
// discard the whole block in one SkipNBytes call instead of decoding and
// discarding every item in it.
func (r *Reader) skipArray(schema *ArraySchema) {
	for {
		l, size := r.ReadBlockHeader()
		if r.Error != nil || l == 0 {
			return
		}
		if size > 0 {
			r.SkipNBytes(int(size))
			continue
		}
		for i := int64(0); i < l; i++ {
			r.Skip(schema.Items())
		}
	}
}

func (r *Reader) skipMap(schema *MapSchema) {
	for {
		l, size := r.ReadBlockHeader()
		if r.Error != nil || l == 0 {
			return
		}
		if size > 0 {
			r.SkipNBytes(int(size))
			continue
		}
		for i := int64(0); i < l; i++ {
			r.SkipString()
			r.Skip(schema.Values())
		}
	}
}

func (r *Reader) skipRecord(schema *RecordSchema) {
	for _, f := range schema.Fields() {
		r.Skip(f.Type())
	}
}

func (r *Reader) skipUnion(schema *UnionSchema) {
	d := r.ReadLong()
	if r.Error != nil {
		return
	}
	branches := schema.Types()
	if d < 0 || int(d) >= len(branches) {
		r.ReportError("Skip", "invalid union discriminant")
		return
	}
	r.Skip(branches[d])
}
