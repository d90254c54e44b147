/*
NAME
  payload_names.go

DESCRIPTION
  payload_names.go encodes and decodes the Audio Presentation Names (tag
  0x08) and Audio Element Names (tag 0x09) payloads: the per-language name
  table for a presentation, and the single name for a bed or object. Both
  rotate across frames.

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

func encodeAPN(p model.Presentation) []byte {
	w := newByteWriter()
	w.u16(uint16(p.ID))
	w.u8(byte(len(p.Names)))
	for _, n := range p.Names {
		var lc langcode.LangCode
		if n.Language != "" {
			if code, err := langcode.Decode(n.Language); err == nil {
				lc = code
			}
		}
		w.u32(uint32(lc))
		w.str(n.Name)
	}
	return w.bytes_
}

// decodeAPNEntry decodes a tag-0x08 payload into its presentation id and
// name table.
func decodeAPNEntry(v []byte) (model.PresentationID, []model.PresentationName, error) {
	r := newByteReader(v)
	id, ok := r.u16()
	if !ok {
		return 0, nil, ErrShortPayload
	}
	n, ok := r.u8()
	if !ok {
		return 0, nil, ErrShortPayload
	}
	names := make([]model.PresentationName, n)
	for i := range names {
		lc, ok := r.u32()
		if !ok {
			return 0, nil, ErrShortPayload
		}
		s, ok := r.str()
		if !ok {
			return 0, nil, ErrShortPayload
		}
		lang := ""
		if lc != 0 {
			lang = langcode.LangCode(lc).String()
		}
		names[i] = model.PresentationName{Language: lang, Name: s}
	}
	return model.PresentationID(id), names, nil
}

// encodeAEN encodes the single name of a bed or object.
func encodeAEN(id model.ElementID, name string) []byte {
	w := newByteWriter()
	w.u16(uint16(id))
	w.str(name)
	return w.bytes_
}

// decodeAEN decodes a tag-0x09 payload into its element id and name.
func decodeAEN(v []byte) (model.ElementID, string, error) {
	r := newByteReader(v)
	id, ok := r.u16()
	if !ok {
		return 0, "", ErrShortPayload
	}
	s, ok := r.str()
	if !ok {
		return 0, "", ErrShortPayload
	}
	return model.ElementID(id), s, nil
}
