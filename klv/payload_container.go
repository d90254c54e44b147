/*
NAME
  payload_container.go

DESCRIPTION
  payload_container.go encodes and decodes the container config (tag 0x01)
  and bitstream version (tag 0x04) payloads.

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

import (
	"github.com/pkg/errors"

	"github.com/ausocean/pmd/model"
)

// ErrShortPayload is returned when a local tag's value is shorter than its
// fixed-width layout requires.
var ErrShortPayload = errors.New("klv: payload too short for its fixed layout")

func encodeContainerConfig(m *model.Model) []byte {
	c := m.Container()
	w := newByteWriter()
	w.u32(c.SampleOffset)
	w.u8(byte(len(c.DynamicTags)))
	for _, r := range c.DynamicTags {
		w.u8(r.LocalTag)
		w.bytes(r.UniversalLabel[:])
	}
	return w.bytes_
}

func decodeContainerConfig(m *model.Model, v []byte) error {
	r := newByteReader(v)
	offset, ok := r.u32()
	if !ok {
		return ErrShortPayload
	}
	m.SetSampleOffset(offset)
	n, ok := r.u8()
	if !ok {
		return ErrShortPayload
	}
	for i := 0; i < int(n); i++ {
		tag, ok := r.u8()
		if !ok {
			return ErrShortPayload
		}
		lbl, ok := r.take(16)
		if !ok {
			return ErrShortPayload
		}
		var remap model.DynamicTagRemap
		remap.LocalTag = tag
		copy(remap.UniversalLabel[:], lbl)
		if err := m.SetDynamicTagRemap(remap); err != nil {
			return err
		}
	}
	return nil
}

func encodeVersion(m *model.Model) []byte {
	c := m.Container()
	return []byte{c.Version.Major, c.Version.Minor}
}

func decodeVersion(m *model.Model, v []byte) error {
	if len(v) < 2 {
		return ErrShortPayload
	}
	m.SetBitstreamVersion(model.BitstreamVersion{Major: v[0], Minor: v[1]})
	return nil
}
