/*
NAME
  payload_pld.go

DESCRIPTION
  payload_pld.go encodes and decodes the Presentation Loudness Description
  payload (tag 0x0F): the optional loudness descriptors attached to a
  presentation, each gated by its own presence flag.

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

// pld presence-bitmask bit positions.
const (
	pldRelativeGated = 1 << iota
	pldSpeechGated
	pldShortTerm3s
	pldShortTerm3sMax
	pldTruePeak
	pldTruePeakMax
	pldMomentary
	pldMomentaryMax
	pldLRA
	pldProgramBoundary
	pldDialgate
)

func encodePLD(l model.Loudness) []byte {
	w := newByteWriter()
	w.u16(uint16(l.Presentation))
	w.u8(byte(l.Practice))

	var mask uint16
	if l.HasRelativeGated {
		mask |= pldRelativeGated
	}
	if l.HasSpeechGated {
		mask |= pldSpeechGated
	}
	if l.HasShortTerm3s {
		mask |= pldShortTerm3s
	}
	if l.HasShortTerm3sMax {
		mask |= pldShortTerm3sMax
	}
	if l.HasTruePeak {
		mask |= pldTruePeak
	}
	if l.HasTruePeakMax {
		mask |= pldTruePeakMax
	}
	if l.HasMomentary {
		mask |= pldMomentary
	}
	if l.HasMomentaryMax {
		mask |= pldMomentaryMax
	}
	if l.HasLRA {
		mask |= pldLRA
	}
	if l.HasProgramBoundary {
		mask |= pldProgramBoundary
	}
	if l.HasDialgate {
		mask |= pldDialgate
	}
	w.u16(mask)
	w.u8(byte(l.Correction))

	if l.HasRelativeGated {
		w.f64AsMilli(l.RelativeGatedLU)
	}
	if l.HasSpeechGated {
		w.f64AsMilli(l.SpeechGatedLU)
	}
	if l.HasShortTerm3s {
		w.f64AsMilli(l.ShortTerm3sLU)
	}
	if l.HasShortTerm3sMax {
		w.f64AsMilli(l.ShortTerm3sMaxLU)
	}
	if l.HasTruePeak {
		w.f64AsMilli(l.TruePeakDB)
	}
	if l.HasTruePeakMax {
		w.f64AsMilli(l.TruePeakMaxDB)
	}
	if l.HasMomentary {
		w.f64AsMilli(l.MomentaryLU)
	}
	if l.HasMomentaryMax {
		w.f64AsMilli(l.MomentaryMaxLU)
	}
	if l.HasLRA {
		w.f64AsMilli(l.LRA)
	}
	if l.HasProgramBoundary {
		w.u8(boolByte(l.ProgramBoundary))
	}
	if l.HasDialgate {
		w.u8(boolByte(l.Dialgate))
	}

	w.u16(uint16(len(l.Extension)))
	w.bytes(l.Extension)
	return w.bytes_
}

func decodePLD(v []byte) (model.Loudness, error) {
	var l model.Loudness
	r := newByteReader(v)

	pres, ok := r.u16()
	if !ok {
		return l, ErrShortPayload
	}
	l.Presentation = model.PresentationID(pres)
	practice, ok := r.u8()
	if !ok {
		return l, ErrShortPayload
	}
	l.Practice = model.LoudnessPractice(practice)

	mask, ok := r.u16()
	if !ok {
		return l, ErrShortPayload
	}
	correction, ok := r.u8()
	if !ok {
		return l, ErrShortPayload
	}
	l.Correction = model.CorrectionType(correction)

	var err error
	if mask&pldRelativeGated != 0 {
		l.HasRelativeGated = true
		if l.RelativeGatedLU, err = readMilli(r); err != nil {
			return l, err
		}
	}
	if mask&pldSpeechGated != 0 {
		l.HasSpeechGated = true
		if l.SpeechGatedLU, err = readMilli(r); err != nil {
			return l, err
		}
	}
	if mask&pldShortTerm3s != 0 {
		l.HasShortTerm3s = true
		if l.ShortTerm3sLU, err = readMilli(r); err != nil {
			return l, err
		}
	}
	if mask&pldShortTerm3sMax != 0 {
		l.HasShortTerm3sMax = true
		if l.ShortTerm3sMaxLU, err = readMilli(r); err != nil {
			return l, err
		}
	}
	if mask&pldTruePeak != 0 {
		l.HasTruePeak = true
		if l.TruePeakDB, err = readMilli(r); err != nil {
			return l, err
		}
	}
	if mask&pldTruePeakMax != 0 {
		l.HasTruePeakMax = true
		if l.TruePeakMaxDB, err = readMilli(r); err != nil {
			return l, err
		}
	}
	if mask&pldMomentary != 0 {
		l.HasMomentary = true
		if l.MomentaryLU, err = readMilli(r); err != nil {
			return l, err
		}
	}
	if mask&pldMomentaryMax != 0 {
		l.HasMomentaryMax = true
		if l.MomentaryMaxLU, err = readMilli(r); err != nil {
			return l, err
		}
	}
	if mask&pldLRA != 0 {
		l.HasLRA = true
		if l.LRA, err = readMilli(r); err != nil {
			return l, err
		}
	}
	if mask&pldProgramBoundary != 0 {
		l.HasProgramBoundary = true
		b, ok := r.u8()
		if !ok {
			return l, ErrShortPayload
		}
		l.ProgramBoundary = b == 1
	}
	if mask&pldDialgate != 0 {
		l.HasDialgate = true
		b, ok := r.u8()
		if !ok {
			return l, ErrShortPayload
		}
		l.Dialgate = b == 1
	}

	elen, ok := r.u16()
	if !ok {
		return l, ErrShortPayload
	}
	eb, ok := r.take(int(elen))
	if !ok {
		return l, ErrShortPayload
	}
	l.Extension = append([]byte(nil), eb...)
	return l, nil
}

func readMilli(r *byteReader) (float64, error) {
	v, ok := r.f64FromMilli()
	if !ok {
		return 0, ErrShortPayload
	}
	return v, nil
}
