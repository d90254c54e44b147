/*
NAME
  bitio.go

DESCRIPTION
  bitio provides big-endian, variable-width bitfield accessors over a caller
  supplied byte buffer. Unlike an io.Reader based bit reader, Writer and
  Reader operate directly on a []byte and track an absolute bit offset, so
  callers can size and reuse buffers without allocation.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bitio provides big-endian, variable-width (1-64 bit) bitfield
// read/write access over a byte buffer supplied by the caller.
package bitio

import "errors"

// ErrShortBuffer is returned when an operation would read or write past the
// end of the underlying buffer.
var ErrShortBuffer = errors.New("bitio: short buffer")

// ErrWidth is returned when a requested bit width is outside 1-64.
var ErrWidth = errors.New("bitio: width must be between 1 and 64")

// Writer writes big-endian bitfields into a caller-supplied buffer. Bit 0 of
// each byte is the most significant bit. Writer never allocates.
type Writer struct {
	buf []byte
	pos int // absolute bit offset of the next bit to write
}

// NewWriter returns a Writer that writes into buf starting at bit 0.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// BitsWritten returns the number of bits written so far.
func (w *Writer) BitsWritten() int { return w.pos }

// BytesWritten returns the number of whole bytes touched so far, rounding up.
func (w *Writer) BytesWritten() int { return (w.pos + 7) / 8 }

// ByteAligned reports whether the writer is positioned at a byte boundary.
func (w *Writer) ByteAligned() bool { return w.pos%8 == 0 }

// WriteBits writes the n least-significant bits of v, most significant bit
// first. n must be between 1 and 64.
func (w *Writer) WriteBits(v uint64, n int) error {
	if n < 1 || n > 64 {
		return ErrWidth
	}
	if (w.pos+n+7)/8 > len(w.buf) {
		return ErrShortBuffer
	}
	for n > 0 {
		byteIdx := w.pos / 8
		bitOff := w.pos % 8      // bits already used in this byte
		free := 8 - bitOff       // bits free in this byte
		take := n
		if take > free {
			take = free
		}
		shift := free - take
		mask := byte((1 << uint(take)) - 1)
		chunk := byte((v >> uint(n-take)) & uint64(mask))
		w.buf[byteIdx] &^= mask << uint(shift)
		w.buf[byteIdx] |= chunk << uint(shift)
		n -= take
		w.pos += take
	}
	return nil
}

// WriteBytes writes the full contents of p at the current bit position. If
// the writer is not byte-aligned, p is written bit by bit (MSB first of each
// byte); if it is aligned, a direct copy is used.
func (w *Writer) WriteBytes(p []byte) error {
	if w.ByteAligned() {
		if w.pos/8+len(p) > len(w.buf) {
			return ErrShortBuffer
		}
		copy(w.buf[w.pos/8:], p)
		w.pos += len(p) * 8
		return nil
	}
	for _, b := range p {
		if err := w.WriteBits(uint64(b), 8); err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns the slice the writer is writing into.
func (w *Writer) Bytes() []byte { return w.buf }

// Reader reads big-endian bitfields from a byte buffer. It never allocates
// and never mutates buf.
type Reader struct {
	buf []byte
	pos int // absolute bit offset of the next bit to read
}

// NewReader returns a Reader over buf starting at bit 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// BitsRead returns the number of bits consumed so far.
func (r *Reader) BitsRead() int { return r.pos }

// BytesRead returns the number of whole bytes consumed so far, rounding up.
func (r *Reader) BytesRead() int { return (r.pos + 7) / 8 }

// Remaining returns the number of unread bits left in the buffer.
func (r *Reader) Remaining() int { return len(r.buf)*8 - r.pos }

// ByteAligned reports whether the reader is positioned at a byte boundary.
func (r *Reader) ByteAligned() bool { return r.pos%8 == 0 }

// ReadBits reads the next n bits (1-64) and returns them right-justified in
// a uint64.
func (r *Reader) ReadBits(n int) (uint64, error) {
	if n < 1 || n > 64 {
		return 0, ErrWidth
	}
	if r.Remaining() < n {
		return 0, ErrShortBuffer
	}
	var v uint64
	for n > 0 {
		byteIdx := r.pos / 8
		bitOff := r.pos % 8
		free := 8 - bitOff
		take := n
		if take > free {
			take = free
		}
		shift := free - take
		mask := byte((1 << uint(take)) - 1)
		chunk := (r.buf[byteIdx] >> uint(shift)) & mask
		v = (v << uint(take)) | uint64(chunk)
		n -= take
		r.pos += take
	}
	return v, nil
}

// PeekBits behaves like ReadBits but does not advance the read position.
func (r *Reader) PeekBits(n int) (uint64, error) {
	save := r.pos
	v, err := r.ReadBits(n)
	r.pos = save
	return v, err
}

// ReadBytes reads len(p) bytes into p.
func (r *Reader) ReadBytes(p []byte) error {
	if r.ByteAligned() {
		if r.pos/8+len(p) > len(r.buf) {
			return ErrShortBuffer
		}
		copy(p, r.buf[r.pos/8:])
		r.pos += len(p) * 8
		return nil
	}
	for i := range p {
		v, err := r.ReadBits(8)
		if err != nil {
			return err
		}
		p[i] = byte(v)
	}
	return nil
}

// Skip advances the reader by n bits without returning them.
func (r *Reader) Skip(n int) error {
	if r.Remaining() < n {
		return ErrShortBuffer
	}
	r.pos += n
	return nil
}

// Seek repositions the reader to an absolute bit offset.
func (r *Reader) Seek(bitOffset int) error {
	if bitOffset < 0 || bitOffset > len(r.buf)*8 {
		return ErrShortBuffer
	}
	r.pos = bitOffset
	return nil
}
