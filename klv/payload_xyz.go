/*
NAME
  payload_xyz.go

DESCRIPTION
  payload_xyz.go encodes and decodes the Dynamic Updates payload (tag
  0x0D): a tightly bit-packed list of per-object position updates, each
  timestamped to a 32-sample time block.

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

// timeBlockBits is the bit width of a time-block index (0..63).
const timeBlockBits = 6

// updateBits is the per-entry bit width: ElementID(16) + TimeBlock(6) +
// X,Y,Z(10 each).
const updateBits = 16 + timeBlockBits + 3*model.CoordBits

func encodeUpdates(updates []model.DynamicUpdate) []byte {
	countBuf := []byte{byte(len(updates))}
	bodyBytes := (len(updates)*updateBits + 7) / 8
	buf := make([]byte, bodyBytes)
	w := bitio.NewWriter(buf)
	for _, u := range updates {
		w.WriteBits(uint64(u.Object), 16)
		w.WriteBits(uint64(u.TimeBlock), timeBlockBits)
		w.WriteBits(uint64(model.QuantizeCoord(u.X)), model.CoordBits)
		w.WriteBits(uint64(model.QuantizeCoord(u.Y)), model.CoordBits)
		w.WriteBits(uint64(model.QuantizeCoord(u.Z)), model.CoordBits)
	}
	return append(countBuf, buf[:w.BytesWritten()]...)
}

func decodeUpdates(m *model.Model, v []byte) error {
	if len(v) < 1 {
		return ErrShortPayload
	}
	n := int(v[0])
	body := v[1:]
	need := (n*updateBits + 7) / 8
	if len(body) < need {
		return ErrShortPayload
	}
	r := bitio.NewReader(body)
	for i := 0; i < n; i++ {
		id, err := r.ReadBits(16)
		if err != nil {
			return ErrShortPayload
		}
		tb, err := r.ReadBits(timeBlockBits)
		if err != nil {
			return ErrShortPayload
		}
		x, err := r.ReadBits(model.CoordBits)
		if err != nil {
			return ErrShortPayload
		}
		y, err := r.ReadBits(model.CoordBits)
		if err != nil {
			return ErrShortPayload
		}
		z, err := r.ReadBits(model.CoordBits)
		if err != nil {
			return ErrShortPayload
		}
		if err := m.AddUpdate(
			model.ElementID(id), uint8(tb),
			model.DequantizeCoord(uint32(x)),
			model.DequantizeCoord(uint32(y)),
			model.DequantizeCoord(uint32(z)),
		); err != nil {
			return err
		}
	}
	return nil
}
