package bitio

import (
	"bytes"
	"testing"
)

func TestWriteReadBits(t *testing.T) {
	buf := make([]byte, 2)
	w := NewWriter(buf)
	if err := w.WriteBits(0x8, 4); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBits(0x3, 2); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBits(0xf, 4); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBits(0x23, 6); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x8f, 0xe3}
	if !bytes.Equal(buf, want) {
		t.Fatalf("got %x, want %x", buf, want)
	}

	r := NewReader(buf)
	for _, tc := range []struct {
		n    int
		want uint64
	}{
		{4, 0x8},
		{2, 0x3},
		{4, 0xf},
		{6, 0x23},
	} {
		got, err := r.ReadBits(tc.n)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("ReadBits(%d) = %#x, want %#x", tc.n, got, tc.want)
		}
	}
}

func TestPeekBitsDoesNotAdvance(t *testing.T) {
	buf := []byte{0x8f, 0xe3}
	r := NewReader(buf)
	peek, err := r.PeekBits(8)
	if err != nil {
		t.Fatal(err)
	}
	if peek != 0x8f {
		t.Fatalf("PeekBits = %#x, want 0x8f", peek)
	}
	got, err := r.ReadBits(8)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x8f {
		t.Fatalf("ReadBits after peek = %#x, want 0x8f", got)
	}
}

func TestShortBuffer(t *testing.T) {
	buf := make([]byte, 1)
	w := NewWriter(buf)
	if err := w.WriteBits(0xff, 8); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBits(0x1, 1); err != ErrShortBuffer {
		t.Fatalf("got %v, want ErrShortBuffer", err)
	}

	r := NewReader(buf)
	if _, err := r.ReadBits(8); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadBits(1); err != ErrShortBuffer {
		t.Fatalf("got %v, want ErrShortBuffer", err)
	}
}

func TestWriteReadBytesUnaligned(t *testing.T) {
	buf := make([]byte, 3)
	w := NewWriter(buf)
	if err := w.WriteBits(0x1, 4); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBytes([]byte{0xAB}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBits(0x2, 4); err != nil {
		t.Fatal(err)
	}

	r := NewReader(buf)
	if _, err := r.ReadBits(4); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, 1)
	if err := r.ReadBytes(got); err != nil {
		t.Fatal(err)
	}
	if got[0] != 0xAB {
		t.Fatalf("ReadBytes = %x, want ab", got[0])
	}
}

func TestRoundTrip64(t *testing.T) {
	buf := make([]byte, 8)
	w := NewWriter(buf)
	const v = uint64(0x0123456789ABCDEF)
	if err := w.WriteBits(v, 64); err != nil {
		t.Fatal(err)
	}
	r := NewReader(buf)
	got, err := r.ReadBits(64)
	if err != nil {
		t.Fatal(err)
	}
	if got != v {
		t.Fatalf("got %#x, want %#x", got, v)
	}
}

func TestInvalidWidth(t *testing.T) {
	buf := make([]byte, 8)
	w := NewWriter(buf)
	if err := w.WriteBits(0, 0); err != ErrWidth {
		t.Fatalf("got %v, want ErrWidth", err)
	}
	if err := w.WriteBits(0, 65); err != ErrWidth {
		t.Fatalf("got %v, want ErrWidth", err)
	}
}
