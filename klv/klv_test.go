/*
NAME
  klv_test.go

DESCRIPTION
  klv_test.go exercises the KLV codec's round-trip property against a
  minimal 2.0 bed and presentation, and against a broader model exercising
  rotation, updates, and every payload kind.

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
	"testing"

	"github.com/ausocean/pmd/model"
)

func newTestModel(t *testing.T) *model.Model {
	t.Helper()
	return model.New(model.DefaultConstraints())
}

// TestRoundTripS1 covers the minimal case: a single 2.0 bed and a
// presentation naming it, round-tripped through Encode/Decode.
func TestRoundTripS1(t *testing.T) {
	m := newTestModel(t)
	if err := m.AddSignal(1); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSignal(2); err != nil {
		t.Fatal(err)
	}
	bed := model.Bed{
		ID:     1,
		Config: model.Config2_0,
		Sources: []model.BedSource{
			{Target: model.SpeakerL, Signal: 1, GainDB: 0},
			{Target: model.SpeakerR, Signal: 2, GainDB: 0},
		},
	}
	if err := m.SetBed(bed); err != nil {
		t.Fatal(err)
	}
	pres := model.Presentation{
		ID:       1,
		Language: "eng",
		Config:   model.Config2_0,
		Elements: []model.ElementID{1},
		Names:    []model.PresentationName{{Language: "eng", Name: "TESTPREZ"}},
	}
	if err := m.SetPresentation(pres); err != nil {
		t.Fatal(err)
	}

	packet := Encode(m, NewRotator(), EncodeOptions{Label: LabelST2109})

	got := newTestModel(t)
	if err := Decode(packet, got); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	gotBed, ok := got.Bed(1)
	if !ok {
		t.Fatal("decoded model missing bed 1")
	}
	if gotBed.Config != model.Config2_0 || len(gotBed.Sources) != 2 {
		t.Fatalf("decoded bed mismatch: %+v", gotBed)
	}
	gotPres, ok := got.Presentation(1)
	if !ok {
		t.Fatal("decoded model missing presentation 1")
	}
	if gotPres.Language != "eng" || len(gotPres.Names) != 1 || gotPres.Names[0].Name != "TESTPREZ" {
		t.Fatalf("decoded presentation mismatch: %+v", gotPres)
	}
}

// TestRoundTripEverything builds a model exercising every payload kind in
// one encode/decode cycle (no rotation pressure, so every item appears in
// a single frame).
func TestRoundTripEverything(t *testing.T) {
	m := newTestModel(t)
	for _, id := range []model.SignalID{1, 2, 3} {
		if err := m.AddSignal(id); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.SetBed(model.Bed{
		ID: 1, Name: "MAIN BED", Config: model.Config2_0,
		Sources: []model.BedSource{
			{Target: model.SpeakerL, Signal: 1, GainDB: model.NegInfGain},
			{Target: model.SpeakerR, Signal: 2, GainDB: -3},
		},
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetObject(model.Object{
		ID: 2, Name: "GUNSHOT", Class: model.ClassD, Source: 3,
		X: 0.5, Y: -0.25, Z: 0, Size: 0.1, DynamicUpdates: true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetPresentation(model.Presentation{
		ID: 1, Language: "eng", Config: model.Config2_0,
		Elements: []model.ElementID{1, 2},
		Names:    []model.PresentationName{{Language: "eng", Name: "MAIN"}},
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetLoudness(model.Loudness{
		Presentation: 1, Practice: model.PracticeBS1770_4,
		HasRelativeGated: true, RelativeGatedLU: -23,
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetEAC3(model.EAC3{
		ID:            1,
		Encoder:       &model.EncoderParams{DataRateKbps: 192, DialnormDB: -27},
		Presentations: []model.PresentationID{1},
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetETD(model.ETD{
		ID: 1, HasED2: true, ED2FrameRate: model.FrameRate24,
		ED2Pairs: []model.PresentationEEPPair{{Presentation: 1, EEP: 1}},
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetHeadphoneElement(model.HED{Element: 1, RenderMode: 3}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetIAT(model.IAT{
		ContentID: model.ContentID{Kind: model.ContentIDUUID},
		Timestamp: 12345,
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddUpdate(2, 0, 0.1, 0.2, 0.3); err != nil {
		t.Fatal(err)
	}

	r := NewRotator()
	opts := EncodeOptions{Label: LabelST2109, NamesPerFrame: 16, PLDPerFrame: 16, EEPPerFrame: 16, ETDPerFrame: 16, HEDPerFrame: 16}
	packet := Encode(m, r, opts)

	if !MatchUniversalLabel(packet) {
		t.Fatal("encoded packet does not match universal label")
	}

	got := newTestModel(t)
	if err := Decode(packet, got); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if b, ok := got.Bed(1); !ok || b.Name != "MAIN BED" {
		t.Errorf("bed mismatch: %+v ok=%v", b, ok)
	}
	if o, ok := got.Object(2); !ok || o.Class != model.ClassD || o.Name != "GUNSHOT" {
		t.Errorf("object mismatch: %+v ok=%v", o, ok)
	}
	if p, ok := got.Presentation(1); !ok || len(p.Names) != 1 || p.Names[0].Name != "MAIN" {
		t.Errorf("presentation mismatch: %+v ok=%v", p, ok)
	}
	if l, ok := got.Loudness(1); !ok || !l.HasRelativeGated || l.RelativeGatedLU != -23 {
		t.Errorf("loudness mismatch: %+v ok=%v", l, ok)
	}
	if e, ok := got.EAC3(1); !ok || e.Encoder == nil || e.Encoder.DataRateKbps != 192 {
		t.Errorf("eac3 mismatch: %+v ok=%v", e, ok)
	}
	if etd, ok := got.ETD(1); !ok || !etd.HasED2 || etd.ED2FrameRate != model.FrameRate24 {
		t.Errorf("etd mismatch: %+v ok=%v", etd, ok)
	}
	if h, ok := got.HeadphoneElement(1); !ok || h.RenderMode != 3 {
		t.Errorf("hed mismatch: %+v ok=%v", h, ok)
	}
	if iat, ok := got.IAT(); !ok || iat.Timestamp != 12345 {
		t.Errorf("iat mismatch: %+v ok=%v", iat, ok)
	}
}

// TestDecodeRejectsCRCMismatch exercises the mandatory CRC check.
func TestDecodeRejectsCRCMismatch(t *testing.T) {
	m := newTestModel(t)
	packet := Encode(m, NewRotator(), EncodeOptions{Label: LabelST2109})
	packet[len(packet)-1] ^= 0xFF // corrupt the CRC's low byte.
	if err := Decode(packet, newTestModel(t)); err != ErrCRCMismatch {
		t.Fatalf("got %v, want ErrCRCMismatch", err)
	}
}

// TestDecodeRejectsUnknownKey exercises MatchUniversalLabel's
// rejection path via Decode.
func TestDecodeRejectsUnknownKey(t *testing.T) {
	buf := make([]byte, 32)
	if err := Decode(buf, newTestModel(t)); err != ErrUnknownKey {
		t.Fatalf("got %v, want ErrUnknownKey", err)
	}
}

// TestRotatorCyclesAcrossFrames verifies the rotation mechanism eventually
// visits every presentation name over enough frames, without requiring an
// exact per-frame schedule.
func TestRotatorCyclesAcrossFrames(t *testing.T) {
	m := newTestModel(t)
	for i := model.PresentationID(1); i <= 5; i++ {
		if err := m.SetPresentation(model.Presentation{
			ID: i, Language: "eng", Config: model.Config2_0,
			Names: []model.PresentationName{{Language: "eng", Name: "P"}},
		}); err != nil {
			t.Fatal(err)
		}
	}
	r := NewRotator()
	seen := map[model.PresentationID]bool{}
	for frame := 0; frame < 10; frame++ {
		packet := Encode(m, r, EncodeOptions{Label: LabelST2109, NamesPerFrame: 2})
		got := newTestModel(t)
		for i := model.PresentationID(1); i <= 5; i++ {
			got.SetPresentation(model.Presentation{ID: i, Names: []model.PresentationName{{Name: "placeholder"}}})
		}
		if err := Decode(packet, got); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		for i := model.PresentationID(1); i <= 5; i++ {
			if p, ok := got.Presentation(i); ok && p.Names[0].Name == "P" {
				seen[i] = true
			}
		}
	}
	if len(seen) != 5 {
		t.Fatalf("rotation did not cover all presentations over 10 frames: saw %d/5", len(seen))
	}
}

// TestElementNameRotation exercises the AEN rotation across both beds and
// objects: over enough frames, every named element's name must survive a
// decode, not just the first one encountered.
func TestElementNameRotation(t *testing.T) {
	m := newTestModel(t)
	for _, id := range []model.SignalID{1, 2, 3, 4} {
		if err := m.AddSignal(id); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.SetBed(model.Bed{
		ID: 1, Name: "BED ONE", Config: model.Config2_0,
		Sources: []model.BedSource{
			{Target: model.SpeakerL, Signal: 1}, {Target: model.SpeakerR, Signal: 2},
		},
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetBed(model.Bed{
		ID: 2, Name: "BED TWO", Config: model.Config2_0,
		Sources: []model.BedSource{
			{Target: model.SpeakerL, Signal: 3}, {Target: model.SpeakerR, Signal: 4},
		},
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetObject(model.Object{ID: 3, Name: "OBJECT ONE", Class: model.ClassD, Source: 1}); err != nil {
		t.Fatal(err)
	}

	r := NewRotator()
	wantNames := map[model.ElementID]string{1: "BED ONE", 2: "BED TWO", 3: "OBJECT ONE"}
	seen := map[model.ElementID]bool{}
	for frame := 0; frame < 10; frame++ {
		packet := Encode(m, r, EncodeOptions{Label: LabelST2109, NamesPerFrame: 1})
		got := newTestModel(t)
		for _, id := range []model.SignalID{1, 2, 3, 4} {
			if err := got.AddSignal(id); err != nil {
				t.Fatal(err)
			}
		}
		if err := got.SetBed(model.Bed{ID: 1, Config: model.Config2_0, Sources: []model.BedSource{
			{Target: model.SpeakerL, Signal: 1}, {Target: model.SpeakerR, Signal: 2},
		}}); err != nil {
			t.Fatal(err)
		}
		if err := got.SetBed(model.Bed{ID: 2, Config: model.Config2_0, Sources: []model.BedSource{
			{Target: model.SpeakerL, Signal: 3}, {Target: model.SpeakerR, Signal: 4},
		}}); err != nil {
			t.Fatal(err)
		}
		if err := got.SetObject(model.Object{ID: 3, Class: model.ClassD, Source: 1}); err != nil {
			t.Fatal(err)
		}
		if err := Decode(packet, got); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		for id, want := range wantNames {
			if b, ok := got.Bed(id); ok && b.Name == want {
				seen[id] = true
			}
			if o, ok := got.Object(id); ok && o.Name == want {
				seen[id] = true
			}
		}
	}
	if len(seen) != len(wantNames) {
		t.Fatalf("element-name rotation did not cover all names over 10 frames: saw %d/%d", len(seen), len(wantNames))
	}
}
