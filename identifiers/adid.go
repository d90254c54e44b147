/*
NAME
  adid.go

DESCRIPTION
  adid.go provides parsing and formatting of Ad-ID identifiers, an 11
  character alphanumeric code carried verbatim as bytes.

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

import "github.com/pkg/errors"

// AdIDLen is the fixed length, in characters and bytes, of an Ad-ID.
const AdIDLen = 11

// ErrInvalidAdID is returned when a string is not exactly 11 alphanumeric
// characters.
var ErrInvalidAdID = errors.New("identifiers: invalid Ad-ID")

// ParseAdID validates s as 11 alphanumeric ASCII characters and returns it
// as bytes, verbatim.
func ParseAdID(s string) ([AdIDLen]byte, error) {
	var out [AdIDLen]byte
	if len(s) != AdIDLen {
		return out, ErrInvalidAdID
	}
	for i := 0; i < AdIDLen; i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		default:
			return out, ErrInvalidAdID
		}
		out[i] = c
	}
	return out, nil
}

// FormatAdID returns the Ad-ID bytes as a string, verbatim.
func FormatAdID(b [AdIDLen]byte) string {
	return string(b[:])
}
