/*
NAME
  payload_aod.go

DESCRIPTION
  payload_aod.go encodes and decodes the Audio Object Description payload
  (tag 0x06): a dynamic object's class, source, quantized position/size,
  and flags, bit-packed to the same fixed-point coordinate, size, and
  gain widths used throughout the codec.

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

// aodBits is the fixed bit width of an AOD payload: ElementID(16) +
// Class(8) + Source(8) + SourceGain(6) + X,Y,Z(10 each) + Size(5) +
// Size3D(1) + Diverge(1) + DynamicUpdates(1) = 76 bits, padded to 10 bytes.
const aodBits = 16 + 8 + 8 + model.GainBits + 3*model.CoordBits + model.SizeBits + 1 + 1 + 1

func encodeObject(o model.Object) []byte {
	buf := make([]byte, (aodBits+7)/8)
	w := bitio.NewWriter(buf)
	w.WriteBits(uint64(o.ID), 16)
	w.WriteBits(uint64(o.Class), 8)
	w.WriteBits(uint64(o.Source), 8)
	w.WriteBits(uint64(model.QuantizeGain(o.SourceGainDB)), model.GainBits)
	w.WriteBits(uint64(model.QuantizeCoord(o.X)), model.CoordBits)
	w.WriteBits(uint64(model.QuantizeCoord(o.Y)), model.CoordBits)
	w.WriteBits(uint64(model.QuantizeCoord(o.Z)), model.CoordBits)
	w.WriteBits(uint64(model.QuantizeSize(o.Size)), model.SizeBits)
	w.WriteBits(boolBit(o.Size3D), 1)
	w.WriteBits(boolBit(o.Diverge), 1)
	w.WriteBits(boolBit(o.DynamicUpdates), 1)
	return buf[:w.BytesWritten()]
}

func decodeObject(v []byte) (model.Object, error) {
	var o model.Object
	if len(v) < (aodBits+7)/8 {
		return o, ErrShortPayload
	}
	r := bitio.NewReader(v)
	id, _ := r.ReadBits(16)
	class, _ := r.ReadBits(8)
	source, _ := r.ReadBits(8)
	gain, _ := r.ReadBits(model.GainBits)
	x, _ := r.ReadBits(model.CoordBits)
	y, _ := r.ReadBits(model.CoordBits)
	z, _ := r.ReadBits(model.CoordBits)
	size, _ := r.ReadBits(model.SizeBits)
	size3d, _ := r.ReadBits(1)
	diverge, _ := r.ReadBits(1)
	dynamic, _ := r.ReadBits(1)

	o.ID = model.ElementID(id)
	o.Class = model.ObjectClass(class)
	o.Source = model.SignalID(source)
	o.SourceGainDB = model.DequantizeGain(uint32(gain))
	o.X = model.DequantizeCoord(uint32(x))
	o.Y = model.DequantizeCoord(uint32(y))
	o.Z = model.DequantizeCoord(uint32(z))
	o.Size = model.DequantizeSize(uint32(size))
	o.Size3D = size3d == 1
	o.Diverge = diverge == 1
	o.DynamicUpdates = dynamic == 1
	return o, nil
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
