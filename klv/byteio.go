/*
NAME
  byteio.go

DESCRIPTION
  byteio.go provides a minimal growing byte-field writer/reader for the
  byte-aligned portions of local tag payloads (string tables, repeat
  counts, container config); bit-packed fields (coordinates, gains, sizes)
  use the bitio package instead.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package klv

import "encoding/binary"

// byteWriter appends fixed-width big-endian fields to a growing buffer.
type byteWriter struct {
	bytes_ []byte
}

func newByteWriter() *byteWriter { return &byteWriter{} }

func (w *byteWriter) u8(v byte)  { w.bytes_ = append(w.bytes_, v) }
func (w *byteWriter) u16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.bytes_ = append(w.bytes_, b[:]...)
}
func (w *byteWriter) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.bytes_ = append(w.bytes_, b[:]...)
}
func (w *byteWriter) u64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.bytes_ = append(w.bytes_, b[:]...)
}
func (w *byteWriter) f64AsMilli(v float64) { w.u32(uint32(int32(v * 1000))) }
func (w *byteWriter) bytes(p []byte)       { w.bytes_ = append(w.bytes_, p...) }

// str writes a length-prefixed (1-byte length) UTF-8 string, truncating
// silently at 255 bytes; callers validate length limits beforehand.
func (w *byteWriter) str(s string) {
	b := []byte(s)
	if len(b) > 255 {
		b = b[:255]
	}
	w.u8(byte(len(b)))
	w.bytes(b)
}

// byteReader reads fixed-width big-endian fields from a fixed buffer.
type byteReader struct {
	buf []byte
	off int
}

func newByteReader(buf []byte) *byteReader { return &byteReader{buf: buf} }

func (r *byteReader) u8() (byte, bool) {
	if r.off+1 > len(r.buf) {
		return 0, false
	}
	v := r.buf[r.off]
	r.off++
	return v, true
}

func (r *byteReader) u16() (uint16, bool) {
	if r.off+2 > len(r.buf) {
		return 0, false
	}
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, true
}

func (r *byteReader) u32() (uint32, bool) {
	if r.off+4 > len(r.buf) {
		return 0, false
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, true
}

func (r *byteReader) u64() (uint64, bool) {
	if r.off+8 > len(r.buf) {
		return 0, false
	}
	v := binary.BigEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v, true
}

func (r *byteReader) f64FromMilli() (float64, bool) {
	v, ok := r.u32()
	if !ok {
		return 0, false
	}
	return float64(int32(v)) / 1000, true
}

func (r *byteReader) take(n int) ([]byte, bool) {
	if r.off+n > len(r.buf) {
		return nil, false
	}
	v := r.buf[r.off : r.off+n]
	r.off += n
	return v, true
}

// str reads a length-prefixed (1-byte length) string.
func (r *byteReader) str() (string, bool) {
	n, ok := r.u8()
	if !ok {
		return "", false
	}
	b, ok := r.take(int(n))
	if !ok {
		return "", false
	}
	return string(b), true
}

func (r *byteReader) remaining() int { return len(r.buf) - r.off }
