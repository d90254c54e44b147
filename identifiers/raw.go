/*
NAME
  raw.go

DESCRIPTION
  raw.go provides escape encoding and decoding of generic byte strings used
  by identity records: printable byte arrays are carried as escaped ASCII,
  anything else falls back to lowercase hex ("base16").

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package identifiers

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// Encoding names the wire representation chosen for a raw cdata value.
type Encoding int

const (
	// EncodingASCII is escaped printable ASCII.
	EncodingASCII Encoding = iota
	// EncodingBase16 is lowercase hex.
	EncodingBase16
)

// ErrInvalidBase16 is returned when base16 content is not valid hex.
var ErrInvalidBase16 = errors.New("identifiers: invalid base16 content")

var asciiEscaper = strings.NewReplacer(
	`&`, `&amp;`,
	`<`, `&lt;`,
	`>`, `&gt;`,
	`"`, `&quot;`,
	`\`, `&#92;`,
)

var asciiUnescaper = strings.NewReplacer(
	`&amp;`, `&`,
	`&lt;`, `<`,
	`&gt;`, `>`,
	`&quot;`, `"`,
	`&#92;`, `\`,
)

// allPrintable reports whether every byte of b is in the printable ASCII
// range [0x20, 0x7e].
func allPrintable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// EncodeRawCdata chooses ascii or base16 encoding for b and returns the
// chosen Encoding along with the encoded string.
func EncodeRawCdata(b []byte) (Encoding, string) {
	if allPrintable(b) {
		return EncodingASCII, asciiEscaper.Replace(string(b))
	}
	return EncodingBase16, hex.EncodeToString(b)
}

// DecodeRawCdata decodes s according to enc back into raw bytes.
func DecodeRawCdata(enc Encoding, s string) ([]byte, error) {
	switch enc {
	case EncodingASCII:
		return []byte(asciiUnescaper.Replace(s)), nil
	case EncodingBase16:
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidBase16, err.Error())
		}
		return b, nil
	default:
		return nil, errors.New("identifiers: unknown raw cdata encoding")
	}
}
