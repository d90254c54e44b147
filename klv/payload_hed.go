/*
NAME
  payload_hed.go

DESCRIPTION
  payload_hed.go encodes and decodes the Headphone Element Description
  payload (tag 0x11): a binaural-rendering annotation for one bed or
  object.

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

import "github.com/ausocean/pmd/model"

func encodeHED(h model.HED) []byte {
	w := newByteWriter()
	w.u16(uint16(h.Element))
	w.u8(boolByte(h.HeadTracking))
	w.u8(h.RenderMode)
	w.u16(h.ChannelExclMask)
	return w.bytes_
}

func decodeHED(v []byte) (model.HED, error) {
	var h model.HED
	r := newByteReader(v)
	id, ok := r.u16()
	if !ok {
		return h, ErrShortPayload
	}
	ht, ok := r.u8()
	if !ok {
		return h, ErrShortPayload
	}
	rm, ok := r.u8()
	if !ok {
		return h, ErrShortPayload
	}
	mask, ok := r.u16()
	if !ok {
		return h, ErrShortPayload
	}
	h.Element = model.ElementID(id)
	h.HeadTracking = ht == 1
	h.RenderMode = rm
	h.ChannelExclMask = mask
	return h, nil
}
