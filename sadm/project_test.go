/*
NAME
  project_test.go

DESCRIPTION
  project_test.go exercises Project's target-group mapping, the 7.0.4
  collapse heuristic, the translation restrictions, and orphan-element
  attachment.

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
	"errors"
	"testing"

	"github.com/ausocean/pmd/identifiers"
	"github.com/ausocean/pmd/model"
)

func newModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New(model.DefaultConstraints())
	for _, id := range []model.SignalID{1, 2, 3, 4, 5, 6} {
		if err := m.AddSignal(id); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

func TestProjectBedAndOrphan(t *testing.T) {
	m := newModel(t)
	bed := model.Bed{ID: 1, Name: "Main", Config: model.Config5_1}
	for i, sp := range model.Speakers(model.Config5_1) {
		bed.Sources = append(bed.Sources, model.BedSource{Target: sp, Signal: model.SignalID(i + 1), GainDB: -3})
	}
	if err := m.SetBed(bed); err != nil {
		t.Fatal(err)
	}

	core, err := Project(m)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(core.TargetGroups) != 1 {
		t.Fatalf("expected 1 target group, got %d", len(core.TargetGroups))
	}
	tg := core.TargetGroups[0]
	if tg.ID != targetGroupDirectSpeakersBase+uint32(model.Config5_1) {
		t.Errorf("unexpected target group id %#x", tg.ID)
	}
	if len(tg.Targets) != 6 {
		t.Errorf("expected 6 targets, got %d", len(tg.Targets))
	}
	if len(core.SourceGroup.Sources) != 6 {
		t.Errorf("expected 6 sources, got %d", len(core.SourceGroup.Sources))
	}

	// The bed is not referenced by any presentation: it must appear as an
	// orphan under the NULL presentation.
	if len(core.ContentGroups) != 1 || core.ContentGroups[0].ID != NullPresentation {
		t.Fatalf("expected one orphan content group, got %+v", core.ContentGroups)
	}
	if len(core.ContentGroups[0].Elements) != 1 || core.ContentGroups[0].Elements[0] != 1 {
		t.Errorf("unexpected orphan elements %+v", core.ContentGroups[0].Elements)
	}
}

func TestProject704Collapse(t *testing.T) {
	m := newModel(t)
	for _, id := range []model.SignalID{7, 8, 9, 10, 11} {
		if err := m.AddSignal(id); err != nil {
			t.Fatal(err)
		}
	}
	bed := model.Bed{ID: 1, Config: model.Config7_1_4}
	for i, sp := range model.SevenOneFourNonLFE() {
		bed.Sources = append(bed.Sources, model.BedSource{Target: sp, Signal: model.SignalID(i + 1), GainDB: 0})
	}
	if err := m.SetBed(bed); err != nil {
		t.Fatal(err)
	}

	core, err := Project(m)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(core.TargetGroups) != 1 {
		t.Fatalf("expected 1 target group, got %d", len(core.TargetGroups))
	}
	if got, want := core.TargetGroups[0].ID, targetGroupDirectSpeakersBase+sevenZeroFourCode; got != want {
		t.Errorf("collapsed target group id = %#x, want %#x", got, want)
	}
}

func TestProjectRejectsDerivedBed(t *testing.T) {
	m := newModel(t)
	bed := model.Bed{ID: 1, Config: model.Config2_0, Sources: []model.BedSource{
		{Target: model.SpeakerL, Signal: 1}, {Target: model.SpeakerR, Signal: 2},
	}}
	if err := m.SetBed(bed); err != nil {
		t.Fatal(err)
	}
	derived := model.Bed{ID: 2, Type: model.BedDerived, DerivedSource: 1, Config: model.Config2_0, Sources: []model.BedSource{
		{Target: model.SpeakerL, Signal: 1}, {Target: model.SpeakerR, Signal: 2},
	}}
	if err := m.SetBed(derived); err != nil {
		t.Fatal(err)
	}

	if _, err := Project(m); !errors.Is(err, ErrNotRepresentable) {
		t.Fatalf("expected ErrNotRepresentable, got %v", err)
	}
}

func TestProjectRejectsMixedGain(t *testing.T) {
	m := newModel(t)
	bed := model.Bed{ID: 1, Config: model.Config2_0, Sources: []model.BedSource{
		{Target: model.SpeakerL, Signal: 1, GainDB: 0},
		{Target: model.SpeakerR, Signal: 2, GainDB: -3},
	}}
	if err := m.SetBed(bed); err != nil {
		t.Fatal(err)
	}
	if _, err := Project(m); !errors.Is(err, ErrMixedGain) {
		t.Fatalf("expected ErrMixedGain, got %v", err)
	}
}

func TestProjectRejectsDynamicUpdateObject(t *testing.T) {
	m := newModel(t)
	if err := m.SetObject(model.Object{ID: 1, Class: model.ClassD, Source: 1, DynamicUpdates: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := Project(m); !errors.Is(err, ErrNotRepresentable) {
		t.Fatalf("expected ErrNotRepresentable, got %v", err)
	}
}

func TestProjectRejectsNonPointObject(t *testing.T) {
	m := newModel(t)
	if err := m.SetObject(model.Object{ID: 1, Class: model.ClassD, Source: 1, Size: 0.2}); err != nil {
		t.Fatal(err)
	}
	if _, err := Project(m); !errors.Is(err, ErrNotRepresentable) {
		t.Fatalf("expected ErrNotRepresentable, got %v", err)
	}
}

func TestProjectFrameFormat(t *testing.T) {
	m := newModel(t)
	uuid, err := identifiers.ParseUUID("01234567-89ab-cdef-0123-456789abcdef")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetIAT(model.IAT{ContentID: model.ContentID{Kind: model.ContentIDUUID, UUID: uuid}}); err != nil {
		t.Fatal(err)
	}

	core, err := Project(m)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if core.FrameFormat.Duration != frameDuration {
		t.Errorf("duration = %q, want %q", core.FrameFormat.Duration, frameDuration)
	}
	if core.FrameFormat.FlowID != identifiers.FormatUUID(uuid) {
		t.Errorf("flow id = %q, want %q", core.FrameFormat.FlowID, identifiers.FormatUUID(uuid))
	}
}
