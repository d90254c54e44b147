/*
NAME
  updates.go

DESCRIPTION
  updates.go implements the dynamic-update queue: AddUpdate enqueues a
  position update for a dynamic object, and ApplyUpdates materializes the
  latest update per object onto its current (x, y, z) before clearing the
  queue.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package model

// MaxTimeBlock is the highest legal time-block index: a 2002-sample frame
// holds 63 32-sample blocks.
const MaxTimeBlock = 63

// AddUpdate enqueues a position update for a dynamic object. The object
// must exist and have DynamicUpdates set.
func (m *Model) AddUpdate(id ElementID, timeBlock uint8, x, y, z float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.objects[id]
	if !ok {
		return m.setErr(ErrUnknownReference)
	}
	if !o.DynamicUpdates {
		return m.setErr(ErrNotDynamic)
	}
	if timeBlock > MaxTimeBlock {
		return m.setErr(ErrInvalidValue)
	}
	for _, v := range []float64{x, y, z} {
		if v < -1 || v > 1 {
			return m.setErr(ErrInvalidValue)
		}
	}
	m.updates = append(m.updates, DynamicUpdate{TimeBlock: timeBlock, Object: id, X: x, Y: y, Z: z})
	m.lastErr = ""
	return nil
}

// PendingUpdates returns the queued updates, in the order they were added.
func (m *Model) PendingUpdates() []DynamicUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]DynamicUpdate, len(m.updates))
	copy(out, m.updates)
	return out
}

// ApplyUpdates materializes each object's latest queued update (by
// TimeBlock order, last write wins) onto its current position, then clears
// the queue.
func (m *Model) ApplyUpdates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	latest := make(map[ElementID]DynamicUpdate)
	for _, u := range m.updates {
		cur, ok := latest[u.Object]
		if !ok || u.TimeBlock >= cur.TimeBlock {
			latest[u.Object] = u
		}
	}
	for id, u := range latest {
		o, ok := m.objects[id]
		if !ok {
			continue
		}
		o.X, o.Y, o.Z = u.X, u.Y, u.Z
		m.objects[id] = o
	}
	m.updates = nil
}
