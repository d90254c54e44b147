package model

import "testing"

func newTestModel() *Model {
	return New(DefaultConstraints())
}

func simpleBed(id ElementID, cfg Config, signals ...SignalID) Bed {
	var sources []BedSource
	speakers := Speakers(cfg)
	for i, sig := range signals {
		sources = append(sources, BedSource{Target: speakers[i%len(speakers)], Signal: sig, GainDB: 0})
	}
	return Bed{ID: id, Name: "BED", Config: cfg, Type: BedOriginal, Sources: sources}
}

func TestAddSignalRangeAndCapacity(t *testing.T) {
	m := New(ModelConstraints{MaxSignals: 2, MaxElements: 10, MaxBeds: 10, MaxObjects: 10, MaxPresentations: 10, MaxNamesPerPres: 16, MaxEEP: 10, MaxETD: 10})
	if err := m.AddSignal(0); err != ErrOutOfRange {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
	if err := m.AddSignal(1); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSignal(1); err != nil {
		t.Fatalf("idempotent re-add failed: %v", err)
	}
	if err := m.AddSignal(2); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSignal(3); err != ErrCapacityExceeded {
		t.Fatalf("got %v, want ErrCapacityExceeded", err)
	}
}

func TestSetBedValidatesSignalsAndSpeakers(t *testing.T) {
	m := newTestModel()
	m.AddSignal(1)
	m.AddSignal(2)
	b := simpleBed(1, Config2_0, 1, 2)
	if err := m.SetBed(b); err != nil {
		t.Fatal(err)
	}
	got, ok := m.Bed(1)
	if !ok || got.Config != Config2_0 {
		t.Fatal("bed not stored correctly")
	}

	bad := Bed{ID: 2, Config: Config2_0, Sources: []BedSource{{Target: SpeakerLFE, Signal: 1}}}
	if err := m.SetBed(bad); err != ErrInvalidValue {
		t.Fatalf("got %v, want ErrInvalidValue for speaker not in 2.0", err)
	}

	missingSig := Bed{ID: 3, Config: Config2_0, Sources: []BedSource{{Target: SpeakerL, Signal: 99}}}
	if err := m.SetBed(missingSig); err != ErrUnknownReference {
		t.Fatalf("got %v, want ErrUnknownReference", err)
	}
}

func TestDerivedBedCycleDetection(t *testing.T) {
	m := newTestModel()
	m.AddSignal(1)
	b1 := simpleBed(1, Config2_0, 1)
	if err := m.SetBed(b1); err != nil {
		t.Fatal(err)
	}
	b2 := Bed{ID: 2, Config: Config2_0, Type: BedDerived, DerivedSource: 1}
	if err := m.SetBed(b2); err != nil {
		t.Fatal(err)
	}
	// Attempting to make bed 1 derived from bed 2 would create a cycle.
	cyclic := Bed{ID: 1, Config: Config2_0, Type: BedDerived, DerivedSource: 2}
	if err := m.SetBed(cyclic); err != ErrCyclicDerivation {
		t.Fatalf("got %v, want ErrCyclicDerivation", err)
	}
}

func TestSetPresentationInvariants(t *testing.T) {
	m := newTestModel()
	m.AddSignal(1)
	m.AddSignal(2)
	m.SetBed(simpleBed(1, Config2_0, 1, 2))

	noNames := Presentation{ID: 1, Language: "eng", Config: Config2_0, Elements: []ElementID{1}}
	if err := m.SetPresentation(noNames); err != ErrNoNames {
		t.Fatalf("got %v, want ErrNoNames", err)
	}

	dupNames := Presentation{
		ID: 1, Language: "eng", Config: Config2_0, Elements: []ElementID{1},
		Names: []PresentationName{{Language: "eng", Name: "A"}, {Language: "eng", Name: "B"}},
	}
	if err := m.SetPresentation(dupNames); err != ErrDuplicateName {
		t.Fatalf("got %v, want ErrDuplicateName", err)
	}

	missingElem := Presentation{
		ID: 1, Language: "eng", Config: Config2_0, Elements: []ElementID{99},
		Names: []PresentationName{{Language: "eng", Name: "A"}},
	}
	if err := m.SetPresentation(missingElem); err != ErrUnknownReference {
		t.Fatalf("got %v, want ErrUnknownReference", err)
	}

	good := Presentation{
		ID: 1, Language: "eng", Config: Config2_0, Elements: []ElementID{1},
		Names: []PresentationName{{Language: "eng", Name: "TESTPREZ"}},
	}
	if err := m.SetPresentation(good); err != nil {
		t.Fatal(err)
	}
}

func TestApplyUpdatesUsesLatestByTimeBlock(t *testing.T) {
	m := newTestModel()
	m.AddSignal(1)
	obj := Object{ID: 1, Source: 1, DynamicUpdates: true}
	if err := m.SetObject(obj); err != nil {
		t.Fatal(err)
	}
	if err := m.AddUpdate(1, 0, 0.1, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := m.AddUpdate(1, 5, 0.5, 0.5, 0.5); err != nil {
		t.Fatal(err)
	}
	m.ApplyUpdates()
	got, _ := m.Object(1)
	if got.X != 0.5 || got.Y != 0.5 || got.Z != 0.5 {
		t.Fatalf("got %+v, want last update applied", got)
	}
	if len(m.PendingUpdates()) != 0 {
		t.Fatal("update queue not cleared")
	}
}

func TestAddUpdateRequiresDynamicObject(t *testing.T) {
	m := newTestModel()
	m.AddSignal(1)
	m.SetObject(Object{ID: 1, Source: 1, DynamicUpdates: false})
	if err := m.AddUpdate(1, 0, 0, 0, 0); err != ErrNotDynamic {
		t.Fatalf("got %v, want ErrNotDynamic", err)
	}
}

func TestSetProfileCapacityEnforcement(t *testing.T) {
	m := newTestModel()
	for i := SignalID(1); i <= 20; i++ {
		m.AddSignal(i)
	}
	if err := m.SetProfile(1, 1); err != ErrProfileViolation {
		t.Fatalf("got %v, want ErrProfileViolation (20 signals > 16 cap)", err)
	}

	m2 := newTestModel()
	for i := SignalID(1); i <= 10; i++ {
		m2.AddSignal(i)
	}
	if err := m2.SetProfile(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := m2.AddSignal(11); err != nil {
		t.Fatal(err)
	}
	for i := SignalID(12); i <= 16; i++ {
		if err := m2.AddSignal(i); err != nil {
			t.Fatal(err)
		}
	}
	if err := m2.AddSignal(17); err != ErrCapacityExceeded {
		t.Fatalf("got %v, want ErrCapacityExceeded under profile 1 level 1", err)
	}
}

func TestCopyAndEqual(t *testing.T) {
	src := newTestModel()
	src.AddSignal(1)
	src.AddSignal(2)
	src.SetBed(simpleBed(1, Config2_0, 1, 2))
	src.SetPresentation(Presentation{
		ID: 1, Language: "eng", Config: Config2_0, Elements: []ElementID{1},
		Names: []PresentationName{{Language: "eng", Name: "TESTPREZ"}},
	})

	dst := newTestModel()
	if err := Copy(dst, src); err != nil {
		t.Fatal(err)
	}
	if !Equal(src, dst, EqualOptions{}) {
		t.Fatal("copied model not equal to source")
	}

	p, _ := dst.Presentation(1)
	p.Names[0].Name = "OTHER"
	dst.SetPresentation(p)
	if Equal(src, dst, EqualOptions{}) {
		t.Fatal("models should differ after mutating copy")
	}
	if !Equal(src, dst, EqualOptions{IgnoreNames: true}) {
		t.Fatal("models should be equal ignoring names")
	}
}

func TestLastErrorOneMessageDeep(t *testing.T) {
	m := newTestModel()
	m.AddSignal(0)
	if m.LastError() == "" {
		t.Fatal("expected an attached error message")
	}
	m.AddSignal(1)
	if m.LastError() != "" {
		t.Fatal("successful mutation should clear last error")
	}
}
