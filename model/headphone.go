package model

import "sort"

// SetHeadphoneElement inserts or replaces the headphone-rendering
// annotation for an element. One HED record may exist per element.
func (m *Model) SetHeadphoneElement(h HED) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, okBed := m.beds[h.Element]; !okBed {
		if _, okObj := m.objects[h.Element]; !okObj {
			return m.setErr(ErrUnknownReference)
		}
	}
	if h.RenderMode > 127 {
		return m.setErr(ErrInvalidValue)
	}
	m.hed[h.Element] = h
	m.lastErr = ""
	return nil
}

// HeadphoneElement returns the HED record for an element, if any.
func (m *Model) HeadphoneElement(id ElementID) (HED, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hed[id]
	return h, ok
}

// HeadphoneElements returns every HED record, ordered by element id.
func (m *Model) HeadphoneElements() []HED {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]HED, 0, len(m.hed))
	for _, h := range m.hed {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Element < out[j].Element })
	return out
}
