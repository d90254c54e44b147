/*
NAME
  mdset_test.go

DESCRIPTION
  mdset_test.go exercises the metadata-set round trip: ingest(create(M))
  = M, exactly, for a model touching every entity kind.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package mdset

import (
	"testing"

	"github.com/ausocean/pmd/identifiers"
	"github.com/ausocean/pmd/model"
)

func buildFullModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New(model.DefaultConstraints())
	m.SetTitle("Test Program")
	m.SetSampleOffset(12345)
	m.SetBitstreamVersion(model.BitstreamVersion{Major: 1, Minor: 2})
	if err := m.SetDynamicTagRemap(model.DynamicTagRemap{LocalTag: 0x20, UniversalLabel: [16]byte{1, 2, 3}}); err != nil {
		t.Fatal(err)
	}

	for _, id := range []model.SignalID{1, 2, 3, 4, 5, 6, 7} {
		if err := m.AddSignal(id); err != nil {
			t.Fatal(err)
		}
	}

	bed := model.Bed{ID: 1, Name: "Main", Config: model.Config5_1}
	for i, sp := range model.Speakers(model.Config5_1) {
		bed.Sources = append(bed.Sources, model.BedSource{Target: sp, Signal: model.SignalID(i + 1), GainDB: -3.0})
	}
	if err := m.SetBed(bed); err != nil {
		t.Fatal(err)
	}

	if err := m.SetObject(model.Object{
		ID: 2, Name: "Narrator", Class: model.ClassD, Source: 7, SourceGainDB: -6.0,
		X: 0.5, Y: -0.25, Z: 0.0, Size: 0.1, DynamicUpdates: true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddUpdate(2, 0, 0.1, 0.2, 0.3); err != nil {
		t.Fatal(err)
	}
	if err := m.AddUpdate(2, 5, -0.1, -0.2, -0.3); err != nil {
		t.Fatal(err)
	}

	if err := m.SetPresentation(model.Presentation{
		ID: 1, Language: "eng", Config: model.Config5_1,
		Elements: []model.ElementID{1, 2},
		Names:    []model.PresentationName{{Language: "eng", Name: "English"}, {Language: "spa", Name: "Español"}},
	}); err != nil {
		t.Fatal(err)
	}

	if err := m.SetLoudness(model.Loudness{
		Presentation: 1, Practice: model.PracticeEBUR128,
		HasRelativeGated: true, RelativeGatedLU: -23.0,
		HasTruePeak: true, TruePeakDB: -1.0,
		HasProgramBoundary: true, ProgramBoundary: true,
		Correction: model.CorrectionFileBased,
	}); err != nil {
		t.Fatal(err)
	}

	if err := m.SetEAC3(model.EAC3{
		ID: 1,
		Encoder: &model.EncoderParams{
			DataRateKbps: 192, SurroundMode: model.SurroundEncoded,
			DialnormDB: -27, BsMod: model.BsModCM, PreferredDownmix: model.DownmixLtRt,
		},
		Bitstream: &model.BitstreamParams{CompressionMode: model.CompressionFilmStandard},
		DRC:       &model.DRCParams{LineMode: 2, RFMode: 1},
		Presentations: []model.PresentationID{1},
	}); err != nil {
		t.Fatal(err)
	}

	if err := m.SetETD(model.ETD{
		ID: 1, HasED2: true, ED2FrameRate: model.FrameRate23_98,
		ED2Pairs: []model.PresentationEEPPair{{Presentation: 1, EEP: 1}},
	}); err != nil {
		t.Fatal(err)
	}

	uuid, err := identifiers.ParseUUID("01234567-89ab-cdef-0123-456789abcdef")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetIAT(model.IAT{
		ContentID:      model.ContentID{Kind: model.ContentIDUUID, UUID: uuid},
		DistributionID: model.DistributionID{Kind: model.DistributionIDATSC3, ATSC3: model.ATSC3Distribution{BSID: 0x1234, Major: 0x123, Minor: 0x234}},
		Timestamp:      0x7FFFFFFFF,
		HasOffset:      true, Offset: 100,
		UserData: []byte("hello"),
	}); err != nil {
		t.Fatal(err)
	}

	if err := m.SetHeadphoneElement(model.HED{Element: 2, HeadTracking: true, RenderMode: 3, ChannelExclMask: 0x0F}); err != nil {
		t.Fatal(err)
	}

	return m
}

func TestRoundTrip(t *testing.T) {
	m := buildFullModel(t)

	size := QueryMemory(m)
	if size <= 0 {
		t.Fatalf("QueryMemory returned %d", size)
	}

	set, err := Create(m, make([]byte, 0, size))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(set.Bytes()) != size+5 {
		// +5 for the 4-byte magic and 1-byte format version header.
		t.Fatalf("Create produced %d bytes, QueryMemory said %d (+5 header)", len(set.Bytes()), size)
	}

	m2 := model.New(model.DefaultConstraints())
	if err := Ingest(set, m2); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if !model.Equal(m, m2, model.EqualOptions{}) {
		t.Fatal("ingest(create(m)) != m")
	}
}

func TestBadMagicRejected(t *testing.T) {
	if err := Ingest(FromBytes([]byte("not an mdset blob")), model.New(model.DefaultConstraints())); err != ErrBadMagic {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestUnsupportedVersionRejected(t *testing.T) {
	m := model.New(model.DefaultConstraints())
	set, err := Create(m, nil)
	if err != nil {
		t.Fatal(err)
	}
	raw := set.Bytes()
	raw[4] = 0xFF
	if err := Ingest(FromBytes(raw), model.New(model.DefaultConstraints())); err != ErrUnsupportedVersion {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}
