/*
NAME
  model.go

DESCRIPTION
  model.go implements Model, the aggregate entity store: a closed,
  mutable, coarsely-locked collection of signals, beds, objects,
  presentations, and the associated descriptor records, with referential
  integrity enforced on every mutation.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package model implements the PMD in-memory entity store: signals, beds,
// objects, presentations, loudness, EAC3 and ED2 turnaround parameters,
// identity-and-timing, headphone annotations, and container configuration,
// with the referential-integrity and capacity invariants the format
// requires.
package model

import (
	"sort"
	"sync"

	"github.com/ausocean/utils/logging"
)

// Model is the aggregate PMD entity store. It is safe for concurrent use:
// all public methods are serialized by a single mutex.
type Model struct {
	mu          sync.Mutex
	constraints ModelConstraints
	log         logging.Logger

	signals       map[SignalID]struct{}
	beds          map[ElementID]Bed
	objects       map[ElementID]Object
	presentations map[PresentationID]Presentation
	loudness      map[PresentationID]Loudness
	updates       []DynamicUpdate
	eeps          map[EEPID]EAC3
	etds          map[ETDID]ETD
	iat           *IAT
	hed           map[ElementID]HED
	container     ContainerConfig
	title         string

	lastErr string
}

// Option configures a Model at construction time.
type Option func(*Model)

// WithLogger attaches an optional logger, mirroring the teacher's
// logging.Logger injection pattern (codec/jpeg, revid/config).
func WithLogger(l logging.Logger) Option {
	return func(m *Model) { m.log = l }
}

// New returns an empty Model with the given capacity envelope.
func New(c ModelConstraints, opts ...Option) *Model {
	m := &Model{
		constraints:   c,
		signals:       make(map[SignalID]struct{}),
		beds:          make(map[ElementID]Bed),
		objects:       make(map[ElementID]Object),
		presentations: make(map[PresentationID]Presentation),
		loudness:      make(map[PresentationID]Loudness),
		eeps:          make(map[EEPID]EAC3),
		etds:          make(map[ETDID]ETD),
		hed:           make(map[ElementID]HED),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Reset re-initializes the model in place, discarding all entities. There
// is no partial tear-down.
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signals = make(map[SignalID]struct{})
	m.beds = make(map[ElementID]Bed)
	m.objects = make(map[ElementID]Object)
	m.presentations = make(map[PresentationID]Presentation)
	m.loudness = make(map[PresentationID]Loudness)
	m.updates = nil
	m.eeps = make(map[EEPID]EAC3)
	m.etds = make(map[ETDID]ETD)
	m.iat = nil
	m.hed = make(map[ElementID]HED)
	m.container = ContainerConfig{}
	m.title = ""
	m.lastErr = ""
}

// SetTitle sets the program title carried in the XML document's <Title>
// element. There is no length or charset restriction beyond the XML
// codec's usual UTF-8 and entity-escape handling.
func (m *Model) SetTitle(title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.title = title
}

// Title returns the program title.
func (m *Model) Title() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.title
}

// Constraints returns the model's capacity envelope.
func (m *Model) Constraints() ModelConstraints {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.constraints
}

// elementCap returns the effective element count cap, which is the tighter
// of the construction-time constraint and any declared profile envelope.
func (m *Model) elementCap() int {
	cap := m.constraints.MaxElements
	if env, ok := lookupProfile(m.container.ProfileNumber, m.container.ProfileLevel); ok {
		if env.maxElements < cap {
			cap = env.maxElements
		}
	}
	return cap
}

func (m *Model) signalCap() int {
	cap := m.constraints.MaxSignals
	if env, ok := lookupProfile(m.container.ProfileNumber, m.container.ProfileLevel); ok {
		if env.maxSignals < cap {
			cap = env.maxSignals
		}
	}
	return cap
}

func (m *Model) presentationCap() int {
	cap := m.constraints.MaxPresentations
	if env, ok := lookupProfile(m.container.ProfileNumber, m.container.ProfileLevel); ok {
		if env.maxPresentations < cap {
			cap = env.maxPresentations
		}
	}
	return cap
}

func (m *Model) elementCount() int { return len(m.beds) + len(m.objects) }

// AddSignal inserts signal id if absent. Idempotent: re-adding an existing
// id succeeds without effect.
func (m *Model) AddSignal(id SignalID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id < 1 {
		return m.setErr(ErrOutOfRange)
	}
	if _, ok := m.signals[id]; ok {
		m.lastErr = ""
		return nil
	}
	if len(m.signals) >= m.signalCap() {
		return m.setErr(ErrCapacityExceeded)
	}
	m.signals[id] = struct{}{}
	m.lastErr = ""
	return nil
}

// HasSignal reports whether id has been added.
func (m *Model) HasSignal(id SignalID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.signals[id]
	return ok
}

// Signals returns all added signal ids, ascending.
func (m *Model) Signals() []SignalID {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SignalID, 0, len(m.signals))
	for id := range m.signals {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// validateBed checks a Bed's internal and referential invariants, without
// mutating the model.
func (m *Model) validateBed(b *Bed) error {
	if b.ID < 1 || int(b.ID) > m.constraints.MaxElements {
		return ErrOutOfRange
	}
	if len(b.Name) > 31 {
		return ErrInvalidValue
	}
	if _, ok := speakerSets[b.Config]; !ok {
		return ErrInvalidValue
	}
	if b.Type == BedDerived {
		src, ok := m.beds[b.DerivedSource]
		if !ok {
			return ErrUnknownReference
		}
		if wouldCycle(m.beds, b.ID, src.ID) {
			return ErrCyclicDerivation
		}
	}
	for _, s := range b.Sources {
		if _, ok := m.signals[s.Signal]; !ok {
			return ErrUnknownReference
		}
		if !ValidSpeaker(b.Config, s.Target) {
			return ErrInvalidValue
		}
	}
	return nil
}

// wouldCycle reports whether setting child's derived-source to parent would
// introduce a cycle in the derivation DAG.
func wouldCycle(beds map[ElementID]Bed, child, parent ElementID) bool {
	visited := map[ElementID]bool{}
	cur := parent
	for {
		if cur == child {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true
		b, ok := beds[cur]
		if !ok || b.Type != BedDerived {
			return false
		}
		cur = b.DerivedSource
	}
}

// SetBed inserts or replaces a bed.
func (m *Model) SetBed(b Bed) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.validateBed(&b); err != nil {
		return m.setErr(err)
	}
	if _, exists := m.beds[b.ID]; !exists {
		if m.elementCount() >= m.elementCap() || len(m.beds) >= m.constraints.MaxBeds {
			return m.setErr(ErrCapacityExceeded)
		}
	}
	m.beds[b.ID] = b
	m.lastErr = ""
	return nil
}

// Bed returns the bed with the given id.
func (m *Model) Bed(id ElementID) (Bed, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.beds[id]
	return b, ok
}

// Beds returns all beds, ordered by id.
func (m *Model) Beds() []Bed {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Bed, 0, len(m.beds))
	for _, b := range m.beds {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *Model) validateObject(o *Object) error {
	if o.ID < 1 || int(o.ID) > m.constraints.MaxElements {
		return ErrOutOfRange
	}
	if _, ok := m.signals[o.Source]; !ok {
		return ErrUnknownReference
	}
	for _, v := range []float64{o.X, o.Y, o.Z} {
		if v < -1 || v > 1 {
			return ErrInvalidValue
		}
	}
	if o.Size < 0 || o.Size > 1 {
		return ErrInvalidValue
	}
	return nil
}

// SetObject inserts or replaces a dynamic object.
func (m *Model) SetObject(o Object) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.validateObject(&o); err != nil {
		return m.setErr(err)
	}
	if _, exists := m.objects[o.ID]; !exists {
		if m.elementCount() >= m.elementCap() || len(m.objects) >= m.constraints.MaxObjects {
			return m.setErr(ErrCapacityExceeded)
		}
	}
	m.objects[o.ID] = o
	m.lastErr = ""
	return nil
}

// Object returns the object with the given id.
func (m *Model) Object(id ElementID) (Object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.objects[id]
	return o, ok
}

// Objects returns all objects, ordered by id.
func (m *Model) Objects() []Object {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Object, 0, len(m.objects))
	for _, o := range m.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ElementExists reports whether id names either a bed or an object.
func (m *Model) ElementExists(id ElementID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.beds[id]; ok {
		return true
	}
	_, ok := m.objects[id]
	return ok
}
