/*
NAME
  byteio.go

DESCRIPTION
  byteio.go is a growing byte-field writer/reader for the metadata-set
  snapshot format, grounded on the KLV codec's byteio.go but widened to
  8-byte floats and 4-byte length prefixes: a snapshot must round-trip a
  Model exactly, so it cannot use the KLV wire format's quantized
  fixed-point fields or 1-byte string lengths.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package mdset

import (
	"encoding/binary"
	"math"
)

type byteWriter struct {
	buf []byte
}

func (w *byteWriter) u8(v byte)  { w.buf = append(w.buf, v) }
func (w *byteWriter) bool(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *byteWriter) u16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *byteWriter) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *byteWriter) u64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *byteWriter) f64(v float64) { w.u64(math.Float64bits(v)) }

func (w *byteWriter) bytes(p []byte) {
	w.u32(uint32(len(p)))
	w.buf = append(w.buf, p...)
}

func (w *byteWriter) str(s string) { w.bytes([]byte(s)) }

// len returns the number of bytes written so far.
func (w *byteWriter) len() int { return len(w.buf) }

type byteReader struct {
	buf []byte
	off int
}

var errShortBuffer = errShortBufferErr{}

type errShortBufferErr struct{}

func (errShortBufferErr) Error() string { return "mdset: truncated snapshot" }

func (r *byteReader) u8() (byte, error) {
	if r.off+1 > len(r.buf) {
		return 0, errShortBuffer
	}
	v := r.buf[r.off]
	r.off++
	return v, nil
}

func (r *byteReader) boolean() (bool, error) {
	v, err := r.u8()
	return v != 0, err
}

func (r *byteReader) u16() (uint16, error) {
	if r.off+2 > len(r.buf) {
		return 0, errShortBuffer
	}
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

func (r *byteReader) u32() (uint32, error) {
	if r.off+4 > len(r.buf) {
		return 0, errShortBuffer
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *byteReader) u64() (uint64, error) {
	if r.off+8 > len(r.buf) {
		return 0, errShortBuffer
	}
	v := binary.BigEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v, nil
}

func (r *byteReader) f64() (float64, error) {
	v, err := r.u64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (r *byteReader) take(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.buf) {
		return nil, errShortBuffer
	}
	v := r.buf[r.off : r.off+n]
	r.off += n
	return v, nil
}

func (r *byteReader) bytes() ([]byte, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return r.take(int(n))
}

func (r *byteReader) str() (string, error) {
	b, err := r.bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
