package avro

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unsafe"

	"github.com/relayavro/avro/internal/bytesx"
)

const (
	maxIntBufSize  = 5
	maxLongBufSize = 10

	defaultMaxByteSliceSize = 1 << 20
)

// ReaderConfig customizes how a Reader behaves.
type ReaderConfig struct {
	maxByteSliceSize int
}

// ReaderOption is a function used to customize a Reader.
type ReaderOption func(*ReaderConfig)

// WithMaxByteSliceSize caps the size accepted for a single bytes/string
// payload, guarding against a corrupt or hostile length prefix forcing an
// enormous allocation. The default is 1MiB.
func WithMaxByteSliceSize(n int) ReaderOption {
	return func(cfg *ReaderConfig) {
		cfg.maxByteSliceSize = n
	}
}

// Reader is a buffered, Avro-aware byte-stream decoder. It exposes the
// primitive decoders spec.md §3/§6 names as "consumed interfaces", plus
// ReadBlockHeader for the array/map block-framing convention and Skip (in
// reader_skip.go) for discarding a value described by a schema without
// materializing it.
type Reader struct {
	cfg ReaderConfig

	reader  io.Reader
	resetRd *bytesx.ResetReader

	slab []byte
	buf  []byte
	head int
	tail int

	// Error records a failure seen by this Reader. ReportError keeps an
	// earlier non-EOF error, but running out of input in the middle of a
	// value always sets io.ErrUnexpectedEOF. Once Error is set, ReadInt and
	// ReadLong (and so the length prefix of ReadBytes and ReadString) return
	// a zero value without consuming input; ReadBool, ReadFloat, ReadDouble
	// and Read do not check Error and may still consume bytes left in the
	// buffer. The caller must check Error (or rely on Resolve propagating
	// it) before trusting any value produced after a failure.
	Error error
}

// NewReader creates a new Reader sourcing bytes from r, buffering bufSize
// bytes at a time.
func NewReader(r io.Reader, bufSize int, opts ...ReaderOption) *Reader {
	cfg := ReaderConfig{maxByteSliceSize: defaultMaxByteSliceSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Reader{
		cfg:    cfg,
		reader: r,
		buf:    make([]byte, bufSize),
	}
}

// NewReaderFromBytes creates a new Reader reading directly from b, with no
// further allocation on Reset.
func NewReaderFromBytes(b []byte, opts ...ReaderOption) *Reader {
	cfg := ReaderConfig{maxByteSliceSize: defaultMaxByteSliceSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	rr := bytesx.NewResetReader(b)
	return &Reader{
		cfg:     cfg,
		reader:  rr,
		resetRd: rr,
		buf:     make([]byte, len(b)),
	}
}

// Reset rebinds the Reader to a new byte slice, reusing its existing
// scratch buffer and its bytesx.ResetReader where possible instead of
// allocating a fresh Reader for every message.
func (r *Reader) Reset(b []byte) *Reader {
	r.Error = nil
	if r.resetRd != nil {
		r.resetRd.Reset(b)
	} else {
		r.resetRd = bytesx.NewResetReader(b)
		r.reader = r.resetRd
	}
	if cap(r.buf) < len(b) {
		r.buf = make([]byte, len(b))
	}
	r.buf = r.buf[:len(b)]
	r.head = 0
	r.tail = 0
	return r
}

// ReportError records an error in the Reader along with the failing
// operation's name, unless a non-EOF error has already been recorded.
func (r *Reader) ReportError(operation, msg string) {
	if r.Error != nil && !errors.Is(r.Error, io.EOF) {
		return
	}
	r.Error = fmt.Errorf("avro: %s: %s", operation, msg)
}

func (r *Reader) loadMore() bool {
	if r.reader == nil {
		if r.Error == nil {
			r.head = r.tail
			r.Error = io.EOF
		}
		return false
	}

	for {
		n, err := r.reader.Read(r.buf)
		if n == 0 {
			if err != nil {
				if r.Error == nil {
					r.Error = err
				}
				return false
			}
			continue
		}

		r.head = 0
		r.tail = n
		return true
	}
}

func (r *Reader) readByte() byte {
	if r.head == r.tail {
		if !r.loadMore() {
			r.Error = io.ErrUnexpectedEOF
			return 0
		}
	}

	b := r.buf[r.head]
	r.head++
	return b
}

// Peek returns the next byte without consuming it. If no next byte exists,
// Error is set and 0 is returned.
func (r *Reader) Peek() byte {
	if r.head == r.tail {
		if !r.loadMore() {
			return 0
		}
	}
	return r.buf[r.head]
}

// Read fills b entirely from the stream, the raw `read(buf, n)` primitive
// spec.md §3 names.
func (r *Reader) Read(b []byte) {
	size := len(b)
	read := 0

	for read < size {
		if r.head == r.tail {
			if !r.loadMore() {
				r.Error = io.ErrUnexpectedEOF
				return
			}
		}

		n := copy(b[read:], r.buf[r.head:r.tail])
		r.head += n
		read += n
	}
}

// ReadNull consumes nothing; null values have no wire representation.
func (r *Reader) ReadNull() {}

// ReadBool reads a boolean from the Reader.
func (r *Reader) ReadBool() bool {
	b := r.readByte()
	if b != 0 && b != 1 {
		r.ReportError("ReadBool", "invalid bool")
	}
	return b == 1
}

// readVarint accumulates an unsigned LEB128 varint one byte at a time via
// readByte, capping at limit bytes (5 for a 32-bit value, 10 for 64-bit).
// readByte already pulls fresh bytes from the underlying reader through
// loadMore when the scratch buffer runs dry, so there is no separate
// buffer-refill branch here: running out mid-varint just surfaces as
// r.Error from readByte itself, and the loop below notices it and bails.
func (r *Reader) readVarint(op string, limit int) uint64 {
	if r.Error != nil {
		return 0
	}

	var out uint64
	for shift := uint(0); shift < uint(limit)*7; shift += 7 {
		b := r.readByte()
		if r.Error != nil {
			return 0
		}
		if b < 0x80 {
			return out | uint64(b)<<shift
		}
		out |= uint64(b&0x7f) << shift
	}

	r.ReportError(op, "varint overflow")
	return 0
}

func zigzagDecode(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// ReadInt reads a zigzag-varint int32 from the Reader.
func (r *Reader) ReadInt() int32 {
	v := r.readVarint("ReadInt", maxIntBufSize)
	if r.Error != nil {
		return 0
	}
	return int32(zigzagDecode(v))
}

// ReadLong reads a zigzag-varint int64 from the Reader.
func (r *Reader) ReadLong() int64 {
	v := r.readVarint("ReadLong", maxLongBufSize)
	if r.Error != nil {
		return 0
	}
	return zigzagDecode(v)
}

// ReadFloat reads a 4-byte little-endian IEEE-754 float from the Reader.
func (r *Reader) ReadFloat() float32 {
	var buf [4]byte
	r.Read(buf[:])
	return *(*float32)(unsafe.Pointer(&buf[0]))
}

// ReadDouble reads an 8-byte little-endian IEEE-754 double from the Reader.
func (r *Reader) ReadDouble() float64 {
	var buf [8]byte
	r.Read(buf[:])
	return *(*float64)(unsafe.Pointer(&buf[0]))
}

// ReadBytes reads a length-prefixed byte payload from the Reader.
func (r *Reader) ReadBytes() []byte {
	return r.readBytes("bytes")
}

// ReadString reads a length-prefixed UTF-8 string from the Reader.
func (r *Reader) ReadString() string {
	b := r.readBytes("string")
	if len(b) == 0 {
		return ""
	}
	return *(*string)(unsafe.Pointer(&b))
}

func (r *Reader) readBytes(op string) []byte {
	size := int(r.ReadLong())
	if r.Error != nil {
		return nil
	}
	if size < 0 {
		r.ReportError("Read"+strings.ToTitle(op), "invalid "+op+" length")
		return nil
	}
	if size == 0 {
		return []byte{}
	}
	if max := r.cfg.maxByteSliceSize; max > 0 && size > max {
		r.ReportError("Read"+strings.ToTitle(op), "size is greater than ReaderConfig.maxByteSliceSize")
		return nil
	}

	// Entirely buffered and small: carve it out of a reusable slab instead
	// of allocating per value.
	if r.head+size <= r.tail && size <= 1024 {
		if cap(r.slab) < size {
			r.slab = make([]byte, 1024)
		}
		dst := r.slab[:size]
		r.slab = r.slab[size:]
		copy(dst, r.buf[r.head:r.head+size])
		r.head += size
		return dst
	}

	buf := make([]byte, size)
	r.Read(buf)
	return buf
}

// ReadBlockHeader reads one Avro block-framing header: a signed long
// item count, and, when negative, a following signed long block byte-size.
// It returns (|count|, size), with size == 0 when the writer omitted it
// (count was non-negative).
func (r *Reader) ReadBlockHeader() (int64, int64) {
	length := r.ReadLong()
	if length < 0 {
		if length == minInt64 {
			r.ReportError("ReadBlockHeader", "block count overflows on negation")
			return 0, 0
		}
		size := r.ReadLong()
		return -length, size
	}
	return length, 0
}

const minInt64 = -1 << 63
