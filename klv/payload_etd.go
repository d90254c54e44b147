/*
NAME
  payload_etd.go

DESCRIPTION
  payload_etd.go encodes and decodes the ED2 Turnaround Description payload
  (tag 0x10): the optional ED2 and DE re-encode declarations, each naming a
  frame rate and the presentation/EEP pairs it re-encodes.

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

func encodePairs(w *byteWriter, pairs []model.PresentationEEPPair) {
	w.u8(byte(len(pairs)))
	for _, p := range pairs {
		w.u16(uint16(p.Presentation))
		w.u8(byte(p.EEP))
	}
}

func decodePairs(r *byteReader) ([]model.PresentationEEPPair, error) {
	n, ok := r.u8()
	if !ok {
		return nil, ErrShortPayload
	}
	pairs := make([]model.PresentationEEPPair, n)
	for i := range pairs {
		pres, ok := r.u16()
		if !ok {
			return nil, ErrShortPayload
		}
		eep, ok := r.u8()
		if !ok {
			return nil, ErrShortPayload
		}
		pairs[i] = model.PresentationEEPPair{Presentation: model.PresentationID(pres), EEP: model.EEPID(eep)}
	}
	return pairs, nil
}

func encodeETD(e model.ETD) []byte {
	w := newByteWriter()
	w.u8(byte(e.ID))
	w.u8(boolByte(e.HasED2))
	w.u8(boolByte(e.HasDE))
	if e.HasED2 {
		w.u8(byte(e.ED2FrameRate))
		encodePairs(w, e.ED2Pairs)
	}
	if e.HasDE {
		w.u8(byte(e.DEFrameRate))
		w.u8(byte(e.DEProgramConfig))
		encodePairs(w, e.DEPairs)
	}
	return w.bytes_
}

func decodeETD(v []byte) (model.ETD, error) {
	var e model.ETD
	r := newByteReader(v)
	id, ok := r.u8()
	if !ok {
		return e, ErrShortPayload
	}
	e.ID = model.ETDID(id)
	hasED2, ok := r.u8()
	if !ok {
		return e, ErrShortPayload
	}
	hasDE, ok := r.u8()
	if !ok {
		return e, ErrShortPayload
	}
	e.HasED2 = hasED2 == 1
	e.HasDE = hasDE == 1

	if e.HasED2 {
		fr, ok := r.u8()
		if !ok {
			return e, ErrShortPayload
		}
		e.ED2FrameRate = model.FrameRate(fr)
		pairs, err := decodePairs(r)
		if err != nil {
			return e, err
		}
		e.ED2Pairs = pairs
	}
	if e.HasDE {
		fr, ok := r.u8()
		if !ok {
			return e, ErrShortPayload
		}
		e.DEFrameRate = model.FrameRate(fr)
		pc, ok := r.u8()
		if !ok {
			return e, ErrShortPayload
		}
		e.DEProgramConfig = model.DEProgramConfig(pc)
		pairs, err := decodePairs(r)
		if err != nil {
			return e, err
		}
		e.DEPairs = pairs
	}
	return e, nil
}
