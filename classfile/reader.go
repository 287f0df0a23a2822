package classfile

import (
	"encoding/binary"
	"io"
)

// reader is a forward-only cursor over the class file bytes. All multi-byte
// reads are big-endian. The first failed read sticks in err; subsequent reads
// return zero values, so callers only need to check err at record boundaries.
type reader struct {
	r    io.Reader
	file string
	err  error
}

func newReader(r io.Reader, file string) *reader {
	return &reader{r: r, file: file}
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return buf
}
