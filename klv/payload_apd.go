/*
NAME
  payload_apd.go

DESCRIPTION
  payload_apd.go encodes and decodes the Audio Presentation Description
  payload (tag 0x07): a presentation's language, speaker config, and
  element list. Names travel separately on tag 0x08.

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
	"github.com/ausocean/pmd/langcode"
	"github.com/ausocean/pmd/model"
)

func encodeAPD(m *model.Model, p model.Presentation) []byte {
	w := newByteWriter()
	w.u16(uint16(p.ID))
	var lc langcode.LangCode
	if p.Language != "" {
		if code, err := langcode.Decode(p.Language); err == nil {
			lc = code
		}
	}
	w.u32(uint32(lc))
	w.u8(byte(p.Config))
	w.u8(byte(len(p.Elements)))
	for _, eid := range p.Elements {
		w.u16(uint16(eid))
	}
	return w.bytes_
}

func decodeAPD(v []byte) (model.Presentation, error) {
	var p model.Presentation
	r := newByteReader(v)
	id, ok := r.u16()
	if !ok {
		return p, ErrShortPayload
	}
	lc, ok := r.u32()
	if !ok {
		return p, ErrShortPayload
	}
	cfg, ok := r.u8()
	if !ok {
		return p, ErrShortPayload
	}
	n, ok := r.u8()
	if !ok {
		return p, ErrShortPayload
	}
	p.ID = model.PresentationID(id)
	if lc != 0 {
		p.Language = langcode.LangCode(lc).String()
	}
	p.Config = model.Config(cfg)
	p.Elements = make([]model.ElementID, n)
	for i := range p.Elements {
		eid, ok := r.u16()
		if !ok {
			return p, ErrShortPayload
		}
		p.Elements[i] = model.ElementID(eid)
	}
	// Names are carried by tag 0x08 and merged in by the decoder pipeline;
	// SetPresentation requires at least one, so the caller must apply a
	// default before committing a bare APD to the model.
	return p, nil
}
