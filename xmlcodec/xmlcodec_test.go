/*
NAME
  xmlcodec_test.go

DESCRIPTION
  xmlcodec_test.go exercises the writer/reader round trip, the Presentation
  Config string scenarios, and the entity-escaping behavior.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package xmlcodec

import (
	"strings"
	"testing"

	"github.com/ausocean/pmd/model"
)

func newTestModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New(model.DefaultConstraints())
	m.SetBitstreamVersion(model.BitstreamVersion{Major: 1, Minor: 0})
	return m
}

// TestWriteReadRoundTrip builds a model with a 2.0 bed, one dialog object,
// and one presentation, writes it, reads it back into a fresh model, and
// checks the config string synthesized on the second write matches (S2/S3).
func TestWriteReadRoundTrip(t *testing.T) {
	m := newTestModel(t)
	if err := m.AddSignal(1); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSignal(2); err != nil {
		t.Fatal(err)
	}
	if err := m.SetBed(model.Bed{
		ID:     1,
		Config: model.Config2_0,
		Sources: []model.BedSource{
			{Target: model.SpeakerL, Signal: 1, GainDB: 0},
			{Target: model.SpeakerR, Signal: 2, GainDB: 0},
		},
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetPresentation(model.Presentation{
		ID:       1,
		Language: "eng",
		Config:   model.Config2_0,
		Elements: []model.ElementID{1},
		Names:    []model.PresentationName{{Language: "eng", Name: "English"}},
	}); err != nil {
		t.Fatal(err)
	}

	doc := Write(m, WriteOptions{})
	if !strings.Contains(string(doc), `config="2.0 CM"`) {
		t.Fatalf("expected synthesized config \"2.0 CM\", got:\n%s", doc)
	}

	m2 := model.New(model.DefaultConstraints())
	if err := Read(doc, m2, ReadOptions{Strict: true, BitstreamMajor: 1}); err != nil {
		t.Fatalf("Read: %v", err)
	}
	doc2 := Write(m2, WriteOptions{})
	if string(doc) != string(doc2) {
		t.Fatalf("round trip not byte-identical:\n--- first ---\n%s\n--- second ---\n%s", doc, doc2)
	}
}

// TestConfigStringMixed covers a 5.1 bed plus a dialog object, expecting
// "5.1 ME + 1D" (S3-equivalent; the dialog object forces ME).
func TestConfigStringMixed(t *testing.T) {
	m := newTestModel(t)
	for i := model.SignalID(1); i <= 7; i++ {
		if err := m.AddSignal(i); err != nil {
			t.Fatal(err)
		}
	}
	bed := model.Bed{ID: 1, Config: model.Config5_1}
	for i, sp := range model.Speakers(model.Config5_1) {
		bed.Sources = append(bed.Sources, model.BedSource{Target: sp, Signal: model.SignalID(i + 1), GainDB: 0})
	}
	if err := m.SetBed(bed); err != nil {
		t.Fatal(err)
	}
	if err := m.SetObject(model.Object{ID: 2, Class: model.ClassD, Source: 7, Size: 0}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetPresentation(model.Presentation{
		ID:       1,
		Language: "eng",
		Config:   model.Config5_1,
		Elements: []model.ElementID{1, 2},
		Names:    []model.PresentationName{{Language: "eng", Name: "English"}},
	}); err != nil {
		t.Fatal(err)
	}

	doc := Write(m, WriteOptions{})
	if !strings.Contains(string(doc), `config="5.1 ME + 1D"`) {
		t.Fatalf("expected synthesized config \"5.1 ME + 1D\", got:\n%s", doc)
	}

	m2 := model.New(model.DefaultConstraints())
	if err := Read(doc, m2, ReadOptions{Strict: true, BitstreamMajor: 1}); err != nil {
		t.Fatalf("Read: %v", err)
	}
}

// TestConfigMismatchLenientVsStrict hand-edits a written document's config
// string to drop the object-count suffix, then checks strict mode rejects
// it while lenient mode reports a warning and proceeds.
func TestConfigMismatchLenientVsStrict(t *testing.T) {
	m := newTestModel(t)
	if err := m.AddSignal(1); err != nil {
		t.Fatal(err)
	}
	if err := m.SetObject(model.Object{ID: 1, Class: model.ClassD, Source: 1, Size: 0}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetPresentation(model.Presentation{
		ID:       1,
		Language: "eng",
		Config:   model.Config5_1,
		Elements: []model.ElementID{1},
		Names:    []model.PresentationName{{Language: "eng", Name: "English"}},
	}); err != nil {
		t.Fatal(err)
	}
	doc := Write(m, WriteOptions{})
	bad := strings.Replace(string(doc), `config="5.1 ME + 1D"`, `config="5.1 ME"`, 1)
	if bad == string(doc) {
		t.Fatal("test setup did not find the config string to corrupt")
	}

	if err := Read([]byte(bad), model.New(model.DefaultConstraints()), ReadOptions{Strict: true, BitstreamMajor: 1}); err == nil {
		t.Fatal("expected strict mode to reject the mismatched config string")
	}

	var warned error
	m2 := model.New(model.DefaultConstraints())
	err := Read([]byte(bad), m2, ReadOptions{
		Strict:         false,
		BitstreamMajor: 1,
		ErrorCallback: func(line int, path string, e error) {
			warned = e
		},
	})
	if err != nil {
		t.Fatalf("lenient mode should not fail: %v", err)
	}
	if warned != ErrConfigMismatch {
		t.Fatalf("expected a ErrConfigMismatch warning, got %v", warned)
	}
}

// TestEscapeSkipsQuotes verifies the writer escapes only &, <, > in
// element text, leaving quotes untouched, and the reader recovers the
// exact original string.
func TestEscapeSkipsQuotes(t *testing.T) {
	const want = `A & B < C > "D" 'E'`
	got := EscapeText(want)
	const wantEscaped = `A &amp; B &lt; C &gt; "D" 'E'`
	if got != wantEscaped {
		t.Fatalf("EscapeText(%q) = %q, want %q", want, got, wantEscaped)
	}
	back, err := UnescapeText(got)
	if err != nil {
		t.Fatal(err)
	}
	if back != want {
		t.Fatalf("UnescapeText round trip = %q, want %q", back, want)
	}
}

func TestTitleRoundTrip(t *testing.T) {
	m := newTestModel(t)
	m.SetTitle(`A & B < C > "D" 'E'`)
	doc := Write(m, WriteOptions{})
	if !strings.Contains(string(doc), `<Title>A &amp; B &lt; C &gt; "D" 'E'</Title>`) {
		t.Fatalf("unexpected Title rendering:\n%s", doc)
	}
	m2 := model.New(model.DefaultConstraints())
	if err := Read(doc, m2, ReadOptions{BitstreamMajor: 1}); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if m2.Title() != `A & B < C > "D" 'E'` {
		t.Fatalf("Title round-trip = %q", m2.Title())
	}
}

func TestIllegalUTF8Rejected(t *testing.T) {
	if err := ValidateUTF8("￾"); err == nil {
		t.Fatal("expected noncharacter U+FFFE to be rejected")
	}
	if err := ValidateUTF8("hello"); err != nil {
		t.Fatalf("plain ASCII should validate: %v", err)
	}
}

func TestVersionMismatchRejected(t *testing.T) {
	m := newTestModel(t)
	doc := Write(m, WriteOptions{})
	err := Read(doc, model.New(model.DefaultConstraints()), ReadOptions{BitstreamMajor: 2})
	if err != ErrVersionMismatch {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
	if err := Read(doc, model.New(model.DefaultConstraints()), ReadOptions{SkipVersionCheck: true}); err != nil {
		t.Fatalf("SkipVersionCheck should bypass the gate: %v", err)
	}
}
