/*
NAME
  payload_eep.go

DESCRIPTION
  payload_eep.go encodes and decodes the EAC3 Encoding Parameters payload
  (tag 0x0C): encoder, bitstream, and DRC tuning plus the presentations an
  EEP record applies to.

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

func encodeEEP(e model.EAC3) []byte {
	w := newByteWriter()
	w.u8(byte(e.ID))

	w.u8(boolByte(e.Encoder != nil))
	if e.Encoder != nil {
		w.u32(e.Encoder.DataRateKbps)
		w.u8(byte(e.Encoder.SurroundMode))
		w.u8(byte(int8(e.Encoder.DialnormDB)))
		w.u8(byte(e.Encoder.BsMod))
		w.u8(byte(e.Encoder.PreferredDownmix))
	}

	w.u8(boolByte(e.Bitstream != nil))
	if e.Bitstream != nil {
		w.u8(byte(e.Bitstream.CompressionMode))
		w.f64AsMilli(e.Bitstream.LtRtCenterDownmixLevel)
		w.f64AsMilli(e.Bitstream.LtRtSurroundDownmixLevel)
		w.f64AsMilli(e.Bitstream.LoRoCenterDownmixLevel)
		w.f64AsMilli(e.Bitstream.LoRoSurroundDownmixLevel)
	}

	w.u8(boolByte(e.DRC != nil))
	if e.DRC != nil {
		w.u8(byte(e.DRC.LineMode))
		w.u8(byte(e.DRC.RFMode))
	}

	w.u8(byte(len(e.Presentations)))
	for _, pid := range e.Presentations {
		w.u16(uint16(pid))
	}
	return w.bytes_
}

func decodeEEP(v []byte) (model.EAC3, error) {
	var e model.EAC3
	r := newByteReader(v)
	id, ok := r.u8()
	if !ok {
		return e, ErrShortPayload
	}
	e.ID = model.EEPID(id)

	hasEnc, ok := r.u8()
	if !ok {
		return e, ErrShortPayload
	}
	if hasEnc == 1 {
		var enc model.EncoderParams
		var ok1, ok2, ok3, ok4 bool
		enc.DataRateKbps, ok1 = r.u32()
		var sm, dn, bm, pd byte
		sm, ok2 = r.u8()
		dn, ok3 = r.u8()
		bm, ok4 = r.u8()
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return e, ErrShortPayload
		}
		enc.SurroundMode = model.SurroundMode(sm)
		enc.DialnormDB = int(int8(dn))
		enc.BsMod = model.BsMod(bm)
		pd, ok = r.u8()
		if !ok {
			return e, ErrShortPayload
		}
		enc.PreferredDownmix = model.PreferredDownmix(pd)
		e.Encoder = &enc
	}

	hasBs, ok := r.u8()
	if !ok {
		return e, ErrShortPayload
	}
	if hasBs == 1 {
		var bs model.BitstreamParams
		cm, ok1 := r.u8()
		a, ok2 := r.f64FromMilli()
		b, ok3 := r.f64FromMilli()
		c, ok4 := r.f64FromMilli()
		d, ok5 := r.f64FromMilli()
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
			return e, ErrShortPayload
		}
		bs.CompressionMode = model.CompressionMode(cm)
		bs.LtRtCenterDownmixLevel = a
		bs.LtRtSurroundDownmixLevel = b
		bs.LoRoCenterDownmixLevel = c
		bs.LoRoSurroundDownmixLevel = d
		e.Bitstream = &bs
	}

	hasDRC, ok := r.u8()
	if !ok {
		return e, ErrShortPayload
	}
	if hasDRC == 1 {
		var drc model.DRCParams
		lm, ok1 := r.u8()
		rf, ok2 := r.u8()
		if !ok1 || !ok2 {
			return e, ErrShortPayload
		}
		drc.LineMode = int(lm)
		drc.RFMode = int(rf)
		e.DRC = &drc
	}

	n, ok := r.u8()
	if !ok {
		return e, ErrShortPayload
	}
	e.Presentations = make([]model.PresentationID, n)
	for i := range e.Presentations {
		pid, ok := r.u16()
		if !ok {
			return e, ErrShortPayload
		}
		e.Presentations[i] = model.PresentationID(pid)
	}
	return e, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
