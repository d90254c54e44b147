package langcode

import "testing"

func TestDecodeToStringRoundTrip(t *testing.T) {
	for i := uint32(0); i < Count(); i++ {
		s := all[i]
		c, err := Decode(s)
		if err != nil {
			t.Fatalf("Decode(%q): %v", s, err)
		}
		if got := c.String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
	}
}

func TestDecodeCaseInsensitive(t *testing.T) {
	c, err := Decode("ENG")
	if err != nil {
		t.Fatal(err)
	}
	if c.String() != "eng" {
		t.Fatalf("got %q, want eng", c.String())
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, s := range []string{"", "e", "engl", "12", "e1", "zzz", "\x00\x00"} {
		if _, err := Decode(s); err != ErrInvalidCode {
			t.Errorf("Decode(%q) = %v, want ErrInvalidCode", s, err)
		}
	}
}

func TestSelectEnumeration(t *testing.T) {
	if Count() == 0 {
		t.Fatal("expected non-empty enumeration")
	}
	prev := ""
	for i := uint32(0); i < Count(); i++ {
		c, err := Select(i)
		if err != nil {
			t.Fatal(err)
		}
		s := c.String()
		if s <= prev {
			t.Fatalf("enumeration not strictly increasing at %d: %q <= %q", i, s, prev)
		}
		prev = s
	}
	if _, err := Select(Count()); err != ErrOutOfRange {
		t.Fatalf("Select(Count()) = %v, want ErrOutOfRange", err)
	}
}

func TestFrenchBibliographicAndTerminology(t *testing.T) {
	fre, err := Decode("fre")
	if err != nil {
		t.Fatal(err)
	}
	fra, err := Decode("fra")
	if err != nil {
		t.Fatal(err)
	}
	if fre == fra {
		t.Fatal("fre and fra should pack to distinct codes")
	}
}
