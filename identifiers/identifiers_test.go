package identifiers

import "testing"

func TestUUIDRoundTrip(t *testing.T) {
	const s = "01234567-89ab-cdef-0123-456789abcdef"
	b, err := ParseUUID(s)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatUUID(b); got != s {
		t.Fatalf("FormatUUID = %q, want %q", got, s)
	}
}

func TestUUIDInvalid(t *testing.T) {
	for _, s := range []string{"", "not-a-uuid", "{01234567-89ab-cdef-0123-456789abcdef}", "urn:uuid:01234567-89ab-cdef-0123-456789abcdef"} {
		if _, err := ParseUUID(s); err == nil {
			t.Errorf("ParseUUID(%q) succeeded, want error", s)
		}
	}
}

func TestEIDRRoundTrip(t *testing.T) {
	b, err := ParseEIDR("10.5240/7FC1-CAE4-2C07-8683-3FB1")
	if err != nil {
		t.Fatal(err)
	}
	if b[0] != 0x52 || b[1] != 0x40 {
		t.Fatalf("subprefix wrong: %x %x", b[0], b[1])
	}
	got := FormatEIDR(b)
	want := "10.5240/7FC1-CAE4-2C07-8683-3FB1"
	if got != want {
		t.Fatalf("FormatEIDR = %q, want %q", got, want)
	}
}

func TestEIDRAcceptsVariants(t *testing.T) {
	for _, s := range []string{
		"5240/7FC1-CAE4-2C07-8683-3FB1",
		"10.5240/7FC1-CAE4-2C07-8683-3FB1-C",
		"10.52407FC1-CAE4-2C07-8683-3FB1",
	} {
		if _, err := ParseEIDR(s); err != nil {
			t.Errorf("ParseEIDR(%q): %v", s, err)
		}
	}
}

func TestAdIDRoundTrip(t *testing.T) {
	const s = "ABC1234567D"
	b, err := ParseAdID(s)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatAdID(b); got != s {
		t.Fatalf("got %q, want %q", got, s)
	}
}

func TestAdIDInvalid(t *testing.T) {
	for _, s := range []string{"", "tooshort", "ABC1234567D2", "ABC12345-7D"} {
		if _, err := ParseAdID(s); err == nil {
			t.Errorf("ParseAdID(%q) succeeded, want error", s)
		}
	}
}

func TestRawCdataAsciiRoundTrip(t *testing.T) {
	in := []byte(`A & B < C > "D" 'E' \`)
	enc, s := EncodeRawCdata(in)
	if enc != EncodingASCII {
		t.Fatalf("got encoding %v, want ascii", enc)
	}
	out, err := DecodeRawCdata(enc, s)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != string(in) {
		t.Fatalf("got %q, want %q", out, in)
	}
}

func TestRawCdataBase16Fallback(t *testing.T) {
	in := []byte{0x00, 0x01, 0xff, 0x80}
	enc, s := EncodeRawCdata(in)
	if enc != EncodingBase16 {
		t.Fatalf("got encoding %v, want base16", enc)
	}
	out, err := DecodeRawCdata(enc, s)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != string(in) {
		t.Fatalf("got %x, want %x", out, in)
	}
}
