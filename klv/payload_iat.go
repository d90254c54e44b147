/*
NAME
  payload_iat.go

DESCRIPTION
  payload_iat.go encodes and decodes the Identity And Timing payload (tag
  0x0E): the content and distribution identifier tagged unions, the
  program timestamp, and the optional offset/validity window.

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

func encodeIAT(iat model.IAT) []byte {
	w := newByteWriter()

	w.u8(byte(iat.ContentID.Kind))
	switch iat.ContentID.Kind {
	case model.ContentIDUUID:
		w.bytes(iat.ContentID.UUID[:])
	case model.ContentIDEIDR:
		w.bytes(iat.ContentID.EIDR[:])
	case model.ContentIDAdID:
		w.bytes(iat.ContentID.AdID[:])
	case model.ContentIDRaw:
		w.u16(uint16(len(iat.ContentID.Raw)))
		w.bytes(iat.ContentID.Raw)
	}

	w.u8(byte(iat.DistributionID.Kind))
	switch iat.DistributionID.Kind {
	case model.DistributionIDATSC3:
		d := iat.DistributionID.ATSC3
		w.u16(d.BSID)
		// A reserved 1111 nibble, then the 10-bit major and minor channels.
		v := uint32(0xF)<<20 | uint32(d.Major&0x3FF)<<10 | uint32(d.Minor&0x3FF)
		w.u8(byte(v >> 16))
		w.u8(byte(v >> 8))
		w.u8(byte(v))
	case model.DistributionIDRaw:
		w.u16(uint16(len(iat.DistributionID.Raw)))
		w.bytes(iat.DistributionID.Raw)
	}

	w.u64(iat.Timestamp)
	w.u8(boolByte(iat.HasOffset))
	w.u16(iat.Offset)
	w.u8(boolByte(iat.HasValidity))
	w.u16(iat.ValidityDur)
	w.u16(uint16(len(iat.UserData)))
	w.bytes(iat.UserData)
	w.u16(uint16(len(iat.Extension)))
	w.bytes(iat.Extension)
	return w.bytes_
}

func decodeIAT(v []byte) (model.IAT, error) {
	var iat model.IAT
	r := newByteReader(v)

	kind, ok := r.u8()
	if !ok {
		return iat, ErrShortPayload
	}
	iat.ContentID.Kind = model.ContentIDKind(kind)
	switch iat.ContentID.Kind {
	case model.ContentIDUUID:
		b, ok := r.take(16)
		if !ok {
			return iat, ErrShortPayload
		}
		copy(iat.ContentID.UUID[:], b)
	case model.ContentIDEIDR:
		b, ok := r.take(12)
		if !ok {
			return iat, ErrShortPayload
		}
		copy(iat.ContentID.EIDR[:], b)
	case model.ContentIDAdID:
		b, ok := r.take(11)
		if !ok {
			return iat, ErrShortPayload
		}
		copy(iat.ContentID.AdID[:], b)
	case model.ContentIDRaw:
		n, ok := r.u16()
		if !ok {
			return iat, ErrShortPayload
		}
		b, ok := r.take(int(n))
		if !ok {
			return iat, ErrShortPayload
		}
		iat.ContentID.Raw = append([]byte(nil), b...)
	}

	dkind, ok := r.u8()
	if !ok {
		return iat, ErrShortPayload
	}
	iat.DistributionID.Kind = model.DistributionIDKind(dkind)
	switch iat.DistributionID.Kind {
	case model.DistributionIDATSC3:
		bsid, ok1 := r.u16()
		b, ok2 := r.take(3)
		if !ok1 || !ok2 {
			return iat, ErrShortPayload
		}
		v := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
		iat.DistributionID.ATSC3 = model.ATSC3Distribution{
			BSID: bsid, Major: uint16(v>>10) & 0x3FF, Minor: uint16(v) & 0x3FF,
		}
	case model.DistributionIDRaw:
		n, ok := r.u16()
		if !ok {
			return iat, ErrShortPayload
		}
		b, ok := r.take(int(n))
		if !ok {
			return iat, ErrShortPayload
		}
		iat.DistributionID.Raw = append([]byte(nil), b...)
	}

	ts, ok := r.u64()
	if !ok {
		return iat, ErrShortPayload
	}
	iat.Timestamp = ts
	hasOffset, ok := r.u8()
	if !ok {
		return iat, ErrShortPayload
	}
	offset, ok := r.u16()
	if !ok {
		return iat, ErrShortPayload
	}
	iat.HasOffset = hasOffset == 1
	iat.Offset = offset
	hasValidity, ok := r.u8()
	if !ok {
		return iat, ErrShortPayload
	}
	validity, ok := r.u16()
	if !ok {
		return iat, ErrShortPayload
	}
	iat.HasValidity = hasValidity == 1
	iat.ValidityDur = validity

	ulen, ok := r.u16()
	if !ok {
		return iat, ErrShortPayload
	}
	ub, ok := r.take(int(ulen))
	if !ok {
		return iat, ErrShortPayload
	}
	iat.UserData = append([]byte(nil), ub...)

	elen, ok := r.u16()
	if !ok {
		return iat, ErrShortPayload
	}
	eb, ok := r.take(int(elen))
	if !ok {
		return iat, ErrShortPayload
	}
	iat.Extension = append([]byte(nil), eb...)
	return iat, nil
}
