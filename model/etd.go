package model

import "sort"

const maxTurnaroundPairs = 8

func (m *Model) validatePairs(pairs []PresentationEEPPair) error {
	if len(pairs) > maxTurnaroundPairs {
		return ErrCapacityExceeded
	}
	for _, p := range pairs {
		if _, ok := m.presentations[p.Presentation]; !ok {
			return ErrUnknownReference
		}
		if _, ok := m.eeps[p.EEP]; !ok {
			return ErrUnknownReference
		}
	}
	return nil
}

// SetETD inserts or replaces an ED2 turnaround record.
func (m *Model) SetETD(e ETD) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID < 1 {
		return m.setErr(ErrOutOfRange)
	}
	if e.HasED2 {
		if !validFrameRate(e.ED2FrameRate) {
			return m.setErr(ErrInvalidValue)
		}
		if err := m.validatePairs(e.ED2Pairs); err != nil {
			return m.setErr(err)
		}
	}
	if e.HasDE {
		if !validFrameRate(e.DEFrameRate) {
			return m.setErr(ErrInvalidValue)
		}
		if err := m.validatePairs(e.DEPairs); err != nil {
			return m.setErr(err)
		}
	}
	if _, exists := m.etds[e.ID]; !exists && len(m.etds) >= m.constraints.MaxETD {
		return m.setErr(ErrCapacityExceeded)
	}
	m.etds[e.ID] = e
	m.lastErr = ""
	return nil
}

func validFrameRate(f FrameRate) bool {
	return f >= FrameRate23_98 && f <= FrameRate30
}

// ETD returns the turnaround record with the given id.
func (m *Model) ETD(id ETDID) (ETD, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.etds[id]
	return e, ok
}

// ETDRecords returns every turnaround record, ordered by id.
func (m *Model) ETDRecords() []ETD {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ETD, 0, len(m.etds))
	for _, e := range m.etds {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
