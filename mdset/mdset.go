/*
NAME
  mdset.go

DESCRIPTION
  mdset.go implements the metadata-set snapshot: a versioned, opaque blob
  capturing a Model's complete entity state for transport between
  process boundaries, exactly round-tripping every entity except the
  strictly-volatile last-error message and lock state the Model itself
  never exposes.

  query_memory/create/ingest mirror the C library's buffer-sizing calling
  convention: QueryMemory lets a caller size a reusable buffer before
  Create fills it, the same shape as the KLV encoder/writer's
  buffer-then-fill pattern (klv/frame.go Encode).

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package mdset implements the PMD metadata-set: a versioned snapshot
// format that serializes a model.Model's complete entity state to an
// opaque byte blob and back, exactly, for sharing across process
// boundaries.
package mdset

import (
	"github.com/pkg/errors"

	"github.com/ausocean/pmd/model"
)

// formatVersion is the snapshot format's own version, independent of the
// bitstream version carried inside the model's container config.
const formatVersion = 1

// magic identifies an mdset blob, rejecting anything else outright.
var magic = [4]byte{'P', 'M', 'D', 'S'}

var (
	// ErrBadMagic indicates the blob does not start with the mdset magic.
	ErrBadMagic = errors.New("mdset: not a metadata-set blob")
	// ErrUnsupportedVersion indicates the blob's format version is newer
	// than this package understands.
	ErrUnsupportedVersion = errors.New("mdset: unsupported snapshot format version")
	// ErrTruncated indicates the blob ended before a complete snapshot was
	// read.
	ErrTruncated = errors.New("mdset: truncated snapshot")
	// ErrBufferTooSmall indicates the caller-supplied buffer returned by
	// QueryMemory is smaller than the snapshot requires.
	ErrBufferTooSmall = errors.New("mdset: supplied buffer is smaller than QueryMemory reported")
)

// MDSet is an opaque, versioned serialization of a Model.
type MDSet struct {
	data []byte
}

// Bytes returns the snapshot's opaque wire representation.
func (s MDSet) Bytes() []byte { return append([]byte(nil), s.data...) }

// FromBytes wraps an externally-obtained blob (e.g. read from disk or a
// socket) as an MDSet, without yet validating or ingesting it.
func FromBytes(b []byte) MDSet { return MDSet{data: append([]byte(nil), b...)} }

// QueryMemory returns the exact number of bytes Create will need to
// serialize m, so a caller can size a buffer up front.
func QueryMemory(m *model.Model) int {
	w := &byteWriter{}
	encode(w, m)
	return w.len()
}

// Create serializes m into a new MDSet. mem, if non-nil, is reused as the
// backing buffer when it is large enough (mirroring the C library's
// buffer-reuse convention); a nil or undersized mem is ignored in favor of
// a freshly allocated one rather than failing, since Go buffers grow
// safely.
func Create(m *model.Model, mem []byte) (MDSet, error) {
	w := &byteWriter{buf: mem[:0]}
	w.buf = append(w.buf[:0], magic[:]...)
	w.u8(formatVersion)
	encode(w, m)
	return MDSet{data: w.buf}, nil
}

// Ingest decodes s into m, replacing m's entire state. m's capacity
// envelope must be able to hold the snapshot's counts.
func Ingest(s MDSet, m *model.Model) error {
	r := &byteReader{buf: s.data}
	if len(r.buf) < 5 || !bytesEqual(r.buf[0:4], magic[:]) {
		return ErrBadMagic
	}
	r.off = 4
	version, err := r.u8()
	if err != nil {
		return ErrTruncated
	}
	if version != formatVersion {
		return ErrUnsupportedVersion
	}
	return decode(r, m)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
