/*
NAME
  presentation.go

DESCRIPTION
  presentation.go implements Presentation mutation and lookup, enforcing
  element-reference, name-count, and per-language name-uniqueness
  invariants.

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

import "sort"

func (m *Model) validatePresentation(p *Presentation) error {
	if p.ID < 1 || int(p.ID) > m.constraints.MaxPresentations {
		return ErrOutOfRange
	}
	if len(p.Names) < 1 {
		return ErrNoNames
	}
	if len(p.Names) > m.constraints.MaxNamesPerPres {
		return ErrCapacityExceeded
	}
	seen := make(map[string]bool, len(p.Names))
	for _, n := range p.Names {
		if seen[n.Language] {
			return ErrDuplicateName
		}
		seen[n.Language] = true
	}
	for _, eid := range p.Elements {
		if _, ok := m.beds[eid]; ok {
			continue
		}
		if _, ok := m.objects[eid]; ok {
			continue
		}
		return ErrUnknownReference
	}
	return nil
}

// SetPresentation inserts or replaces a presentation.
func (m *Model) SetPresentation(p Presentation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.validatePresentation(&p); err != nil {
		return m.setErr(err)
	}
	if _, exists := m.presentations[p.ID]; !exists {
		if len(m.presentations) >= m.presentationCap() {
			return m.setErr(ErrCapacityExceeded)
		}
	}
	m.presentations[p.ID] = p
	m.lastErr = ""
	return nil
}

// Presentation returns the presentation with the given id.
func (m *Model) Presentation(id PresentationID) (Presentation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.presentations[id]
	return p, ok
}

// Presentations returns all presentations, ordered by id.
func (m *Model) Presentations() []Presentation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Presentation, 0, len(m.presentations))
	for _, p := range m.presentations {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ClassCounts returns the number of objects of each class referenced by
// presentation p's element list, plus whether any bed is present. Used by
// the XML writer to synthesize the Presentation Config string and by the
// reader to cross-check it.
func (m *Model) ClassCounts(p Presentation) (counts map[ObjectClass]int, hasBed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts = make(map[ObjectClass]int)
	for _, eid := range p.Elements {
		if _, ok := m.beds[eid]; ok {
			hasBed = true
			continue
		}
		if o, ok := m.objects[eid]; ok {
			counts[o.Class]++
		}
	}
	return counts, hasBed
}

// OrphanElements returns the ids of every bed and object not referenced by
// any presentation, used by the sADM projection.
func (m *Model) OrphanElements() []ElementID {
	m.mu.Lock()
	defer m.mu.Unlock()
	referenced := make(map[ElementID]bool)
	for _, p := range m.presentations {
		for _, eid := range p.Elements {
			referenced[eid] = true
		}
	}
	var out []ElementID
	for id := range m.beds {
		if !referenced[id] {
			out = append(out, id)
		}
	}
	for id := range m.objects {
		if !referenced[id] {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
