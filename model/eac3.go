package model

import "sort"

// SetEAC3 inserts or replaces an EAC3 encoding-parameters record,
// deduplicating its presentation list.
func (m *Model) SetEAC3(e EAC3) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID < 1 {
		return m.setErr(ErrOutOfRange)
	}
	seen := make(map[PresentationID]bool, len(e.Presentations))
	deduped := e.Presentations[:0:0]
	for _, pid := range e.Presentations {
		if seen[pid] {
			continue
		}
		seen[pid] = true
		if _, ok := m.presentations[pid]; !ok {
			return m.setErr(ErrUnknownReference)
		}
		deduped = append(deduped, pid)
	}
	if len(deduped) > 8 {
		return m.setErr(ErrCapacityExceeded)
	}
	e.Presentations = deduped
	if _, exists := m.eeps[e.ID]; !exists && len(m.eeps) >= m.constraints.MaxEEP {
		return m.setErr(ErrCapacityExceeded)
	}
	m.eeps[e.ID] = e
	m.lastErr = ""
	return nil
}

// EAC3 returns the EAC3 record with the given id.
func (m *Model) EAC3(id EEPID) (EAC3, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.eeps[id]
	return e, ok
}

// EAC3Records returns every EAC3 record, ordered by id.
func (m *Model) EAC3Records() []EAC3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EAC3, 0, len(m.eeps))
	for _, e := range m.eeps {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
