/*
NAME
  project.go

DESCRIPTION
  project.go implements Project, the PMD-to-sADM translation: it walks a
  model.Model's beds, objects, and presentations and builds the
  finer-grained core model defined in types.go, rejecting PMD constructs
  the sADM profile has no equivalent for.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sadm

import (
	"fmt"
	"sort"

	"github.com/ausocean/pmd/identifiers"
	"github.com/ausocean/pmd/model"
)

// sevenZeroFourCode is a sentinel configuration code distinct from every
// real model.Config byte value, used to key the collapsed 7.0.4
// target-group id so it never collides with a genuine 7.1.4 group.
const sevenZeroFourCode = 0x7F

// projector accumulates translation state across Project's single pass.
type projector struct {
	m *model.Model

	sources      map[model.SignalID]uint32 // signal -> source id, in first-seen order.
	sourceOrder  []model.SignalID
	targetGroups map[uint64]*TargetGroup // keyed by (kind, config-or-element) composite.
	groupOrder   []uint64

	out CoreModel
}

// Project translates m into the sADM core model, or returns
// ErrNotRepresentable (wrapped with the offending restriction) if m
// contains a construct the sADM profile forbids.
func Project(m *model.Model) (CoreModel, error) {
	p := &projector{
		m:            m,
		sources:      make(map[model.SignalID]uint32),
		targetGroups: make(map[uint64]*TargetGroup),
	}

	beds := m.Beds()
	objects := m.Objects()

	for _, b := range beds {
		if err := p.addBed(b); err != nil {
			return CoreModel{}, err
		}
	}
	for _, o := range objects {
		if err := p.addObject(o); err != nil {
			return CoreModel{}, err
		}
	}

	for _, key := range p.groupOrder {
		p.out.TargetGroups = append(p.out.TargetGroups, *p.targetGroups[key])
	}

	p.out.SourceGroup = SourceGroup{Name: sourceGroupName}
	for _, sig := range p.sourceOrder {
		p.out.SourceGroup.Sources = append(p.out.SourceGroup.Sources, Source{
			ID:     p.sources[sig],
			Name:   sourceGroupName,
			Signal: sig,
			Track:  p.sources[sig],
		})
		p.out.AudioTracks = append(p.out.AudioTracks, AudioTrack{ID: p.sources[sig], Source: p.sources[sig]})
	}

	for _, pres := range m.Presentations() {
		p.out.ContentGroups = append(p.out.ContentGroups, ContentGroup{
			ID:       pres.ID,
			Language: pres.Language,
			Elements: append([]model.ElementID(nil), pres.Elements...),
		})
	}
	if orphans := m.OrphanElements(); len(orphans) > 0 {
		p.out.ContentGroups = append(p.out.ContentGroups, ContentGroup{
			ID:       NullPresentation,
			Elements: orphans,
		})
	}

	p.out.FrameFormat = buildFrameFormat(m)

	return p.out, nil
}

func buildFrameFormat(m *model.Model) FrameFormat {
	ff := FrameFormat{Start: "00:00:00.00000", Duration: frameDuration}
	iat, ok := m.IAT()
	if ok && iat.ContentID.Kind == model.ContentIDUUID {
		ff.FlowID = identifiers.FormatUUID(iat.ContentID.UUID)
	}
	return ff
}

// sourceFor returns the source id for signal sig, allocating one on first
// use: each used signal maps to a single source.
func (p *projector) sourceFor(sig model.SignalID) uint32 {
	if id, ok := p.sources[sig]; ok {
		return id
	}
	id := uint32(len(p.sourceOrder) + 1)
	p.sources[sig] = id
	p.sourceOrder = append(p.sourceOrder, sig)
	return id
}

func groupKey(kind TargetGroupKind, disambiguator uint32) uint64 {
	return uint64(kind)<<32 | uint64(disambiguator)
}

func (p *projector) addBed(b model.Bed) error {
	if b.Type == model.BedDerived {
		return fmt.Errorf("%w: derived bed %d", ErrNotRepresentable, b.ID)
	}
	if b.Config == model.ConfigPortable || b.Config == model.ConfigHeadphone {
		return fmt.Errorf("%w: portable/headphone bed %d", ErrNotRepresentable, b.ID)
	}
	if len(b.Sources) == 0 {
		return fmt.Errorf("%w: bed %d has no sources", ErrNotRepresentable, b.ID)
	}

	gain := b.Sources[0].GainDB
	for _, s := range b.Sources[1:] {
		if s.GainDB != gain {
			return fmt.Errorf("%w: bed %d", ErrMixedGain, b.ID)
		}
	}

	code := uint32(b.Config)
	if is7014CollapsedTo704(b) {
		code = sevenZeroFourCode
	}
	key := groupKey(TargetGroupDirectSpeakers, code)
	tg, ok := p.targetGroups[key]
	if !ok {
		tg = &TargetGroup{
			ID:     targetGroupDirectSpeakersBase + code,
			Kind:   TargetGroupDirectSpeakers,
			Config: b.Config,
		}
		for _, src := range sortedBySpeaker(b.Sources) {
			tg.Targets = append(tg.Targets, Target{
				ID:      tg.ID<<8 | uint32(src.Target),
				Speaker: src.Target,
				GainDB:  gain,
			})
		}
		p.targetGroups[key] = tg
		p.groupOrder = append(p.groupOrder, key)
	}

	for _, src := range b.Sources {
		p.sourceFor(src.Signal)
	}

	p.out.AudioElements = append(p.out.AudioElements, AudioElement{
		ID:          b.ID,
		Name:        b.Name,
		TargetGroup: tg.ID,
	})
	return nil
}

func (p *projector) addObject(o model.Object) error {
	if o.Size != 0 {
		return fmt.Errorf("%w: non-point-size object %d", ErrNotRepresentable, o.ID)
	}
	if o.Size3D {
		return fmt.Errorf("%w: 3D-size object %d", ErrNotRepresentable, o.ID)
	}
	if o.Diverge {
		return fmt.Errorf("%w: divergent object %d", ErrNotRepresentable, o.ID)
	}
	if o.DynamicUpdates {
		return fmt.Errorf("%w: dynamic-update object %d", ErrNotRepresentable, o.ID)
	}

	key := groupKey(TargetGroupObjects, uint32(o.ID))
	tg := &TargetGroup{
		ID:   targetGroupObjectsBase + uint32(o.ID),
		Kind: TargetGroupObjects,
		Targets: []Target{{
			ID:     targetGroupObjectsBase + uint32(o.ID),
			GainDB: o.SourceGainDB,
		}},
	}
	p.targetGroups[key] = tg
	p.groupOrder = append(p.groupOrder, key)

	p.sourceFor(o.Source)

	p.out.AudioElements = append(p.out.AudioElements, AudioElement{
		ID:          o.ID,
		Name:        o.Name,
		TargetGroup: tg.ID,
		IsObject:    true,
		X:           o.X,
		Y:           o.Y,
		Z:           o.Z,
		Size:        o.Size,
	})
	return nil
}

// is7014CollapsedTo704 detects the PMD convention of declaring a bed as
// 7.1.4 but omitting its LFE source: exactly the 11 non-LFE speakers of
// 7.1.4 are present and none targets LFE. This is the only documented
// signal for the convention, fragile as it is; preserved as-is rather
// than generalized.
func is7014CollapsedTo704(b model.Bed) bool {
	if b.Config != model.Config7_1_4 || len(b.Sources) != 11 {
		return false
	}
	want := make(map[model.Speaker]bool)
	for _, sp := range model.SevenOneFourNonLFE() {
		want[sp] = true
	}
	seen := make(map[model.Speaker]bool, 11)
	for _, s := range b.Sources {
		if s.Target == model.SpeakerLFE {
			return false
		}
		if !want[s.Target] {
			return false
		}
		seen[s.Target] = true
	}
	return len(seen) == 11
}

func sortedBySpeaker(sources []model.BedSource) []model.BedSource {
	out := append([]model.BedSource(nil), sources...)
	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out
}
