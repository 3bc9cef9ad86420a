package gff

import (
	"encoding/binary"
	"math"
)

// arena is a growable section buffer. Writes append at the end; patchU32
// rewrites an earlier reserved slot without moving the append cursor.
type arena struct {
	buf []byte
}

func (a *arena) offset() uint32 {
	return uint32(len(a.buf))
}

func (a *arena) bytes() []byte { return a.buf }

func (a *arena) u8(v uint8) {
	a.buf = append(a.buf, v)
}

func (a *arena) u32(v uint32) {
	a.buf = binary.LittleEndian.AppendUint32(a.buf, v)
}

func (a *arena) u64(v uint64) {
	a.buf = binary.LittleEndian.AppendUint64(a.buf, v)
}

func (a *arena) f32(v float32) {
	a.u32(math.Float32bits(v))
}

func (a *arena) raw(p []byte) {
	a.buf = append(a.buf, p...)
}

// reserveU32 appends n zeroed u32 slots and returns the offset of the first.
func (a *arena) reserveU32(n int) uint32 {
	off := a.offset()
	a.buf = append(a.buf, make([]byte, 4*n)...)
	return off
}

// patchU32 overwrites slot i of a block reserved at base.
func (a *arena) patchU32(base uint32, i int, v uint32) {
	pos := int(base) + 4*i
	binary.LittleEndian.PutUint32(a.buf[pos:pos+4], v)
}

// fits reports whether the arena can grow by n bytes without its offsets
// overflowing the u32 fields that address it.
func (a *arena) fits(n int) bool {
	return uint64(len(a.buf))+uint64(n) <= math.MaxUint32
}
