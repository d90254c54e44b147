/*
NAME
  payload_abd.go

DESCRIPTION
  payload_abd.go encodes and decodes the Audio Bed Description payload
  (tag 0x05): a bed's configuration, derivation, and source-to-speaker
  gain map, bit-packed to exact widths: 12-bit element-id, 4-bit config,
  1-bit derived flag, a 12-bit source-element-id present only when
  derived, 4-bit source count, then per source a 5-bit speaker, 8-bit
  signal, and 6-bit gain.

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
	"github.com/ausocean/pmd/bitio"
	"github.com/ausocean/pmd/model"
)

const (
	elementIDBits = 12
	bedConfigBits = 4
	sourceCountBits = 4
	speakerBits   = 5
	signalBits    = 8
)

func encodeBed(b model.Bed) []byte {
	// Worst case: 12+4+1+12+4 header bits plus up to 15 sources at 19 bits.
	buf := make([]byte, (elementIDBits+bedConfigBits+1+elementIDBits+sourceCountBits+len(b.Sources)*(speakerBits+signalBits+model.GainBits)+7)/8+1)
	w := bitio.NewWriter(buf)
	w.WriteBits(uint64(b.ID), elementIDBits)
	w.WriteBits(uint64(b.Config), bedConfigBits)
	derived := b.Type == model.BedDerived
	w.WriteBits(boolBit(derived), 1)
	if derived {
		w.WriteBits(uint64(b.DerivedSource), elementIDBits)
	}
	w.WriteBits(uint64(len(b.Sources)), sourceCountBits)
	for _, s := range b.Sources {
		w.WriteBits(uint64(s.Target), speakerBits)
		w.WriteBits(uint64(s.Signal), signalBits)
		w.WriteBits(uint64(model.QuantizeGain(s.GainDB)), model.GainBits)
	}
	return buf[:w.BytesWritten()]
}

func decodeBed(v []byte) (model.Bed, error) {
	var b model.Bed
	r := bitio.NewReader(v)

	id, err := r.ReadBits(elementIDBits)
	if err != nil {
		return b, ErrShortPayload
	}
	cfg, err := r.ReadBits(bedConfigBits)
	if err != nil {
		return b, ErrShortPayload
	}
	derivedBit, err := r.ReadBits(1)
	if err != nil {
		return b, ErrShortPayload
	}

	b.ID = model.ElementID(id)
	b.Config = model.Config(cfg)
	if derivedBit == 1 {
		b.Type = model.BedDerived
		src, err := r.ReadBits(elementIDBits)
		if err != nil {
			return b, ErrShortPayload
		}
		b.DerivedSource = model.ElementID(src)
	} else {
		b.Type = model.BedOriginal
	}

	n, err := r.ReadBits(sourceCountBits)
	if err != nil {
		return b, ErrShortPayload
	}
	b.Sources = make([]model.BedSource, n)
	for i := range b.Sources {
		target, err := r.ReadBits(speakerBits)
		if err != nil {
			return b, ErrShortPayload
		}
		signal, err := r.ReadBits(signalBits)
		if err != nil {
			return b, ErrShortPayload
		}
		gain, err := r.ReadBits(model.GainBits)
		if err != nil {
			return b, ErrShortPayload
		}
		b.Sources[i] = model.BedSource{
			Target: model.Speaker(target),
			Signal: model.SignalID(signal),
			GainDB: model.DequantizeGain(uint32(gain)),
		}
	}
	return b, nil
}
