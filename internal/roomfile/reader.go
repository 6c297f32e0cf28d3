package roomfile

import (
	"encoding/binary"
	"fmt"
	"math"
)

// reader decodes little-endian primitives from a byte slice. The first
// failure is sticky: later reads return zero values and err keeps the cause.
type reader struct {
	buf []byte
	off int
	err error
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

// take returns the next n bytes, or nil once the stream is exhausted.
func (r *reader) take(n int, what string) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > r.remaining() {
		r.err = fmt.Errorf("%w: %s needs %d bytes at offset %d, %d left", ErrTruncated, what, n, r.off, r.remaining())
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8(what string) uint8 {
	b := r.take(1, what)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) boolean(what string) bool {
	return r.u8(what) != 0
}

func (r *reader) i32(what string) int32 {
	b := r.take(4, what)
	if b == nil {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(b))
}

func (r *reader) u64(what string) uint64 {
	b := r.take(8, what)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) f32(what string) float64 {
	b := r.take(4, what)
	if b == nil {
		return 0
	}
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

// str reads an int32 length followed by that many bytes.
func (r *reader) str(what string) string {
	n := r.i32(what + " length")
	if r.err != nil {
		return ""
	}
	if n < 0 {
		r.err = fmt.Errorf("%w: %s has negative length %d at offset %d", ErrMalformed, what, n, r.off)
		return ""
	}
	return string(r.take(int(n), what))
}

// count reads a size_t element count and checks that size bytes per element
// fit in what is left of the stream.
func (r *reader) count(size int, what string) int {
	n := r.u64(what + " count")
	if r.err != nil {
		return 0
	}
	if n > uint64(r.remaining()/size) {
		r.err = fmt.Errorf("%w: %s declares %d elements, %d bytes left", ErrTruncated, what, n, r.remaining())
		return 0
	}
	return int(n)
}

// i32s reads n consecutive int32 values.
func (r *reader) i32s(n int, what string) []int32 {
	b := r.take(n*4, what)
	if b == nil {
		return nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}
