/*
NAME
  eidr.go

DESCRIPTION
  eidr.go provides parsing and canonical formatting of EIDR content
  identifiers (Entertainment Identifier Registry).

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
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidEIDR is returned when a string does not match the EIDR form.
var ErrInvalidEIDR = errors.New("identifiers: invalid EIDR")

// eidrSubprefix is the fixed 2-byte EIDR registry subprefix, "5240".
const eidrSubprefix = 0x5240

// eidrPattern matches "[10.]5240[/]XXXX-XXXX-XXXX-XXXX-XXXX[-C]" with an
// optional leading "10." prefix, an optional "/" separator, five groups of
// four hex digits, and an optional trailing "-C" check character (accepted
// but never recomputed).
var eidrPattern = regexp.MustCompile(`^(?:10\.)?5240[/]?([0-9a-fA-F]{4})-([0-9a-fA-F]{4})-([0-9a-fA-F]{4})-([0-9a-fA-F]{4})-([0-9a-fA-F]{4})(?:-[0-9a-zA-Z])?$`)

// ParseEIDR parses s and returns its 12-byte representation: the 2-byte
// subprefix 5240 in big-endian followed by the 10 hex-decoded bytes of the
// five dashed groups.
func ParseEIDR(s string) ([12]byte, error) {
	var out [12]byte
	m := eidrPattern.FindStringSubmatch(s)
	if m == nil {
		return out, ErrInvalidEIDR
	}
	out[0] = byte(eidrSubprefix >> 8)
	out[1] = byte(eidrSubprefix)
	hexDigits := strings.Join(m[1:6], "")
	b, err := hex.DecodeString(hexDigits)
	if err != nil || len(b) != 10 {
		return out, errors.Wrap(ErrInvalidEIDR, "bad hex payload")
	}
	copy(out[2:], b)
	return out, nil
}

// FormatEIDR formats b (as produced by ParseEIDR, or any 12-byte EIDR value
// whose first two bytes equal the 5240 subprefix) as a canonical
// "10.5240/XXXX-XXXX-XXXX-XXXX-XXXX" string. The check character is never
// emitted, since it is not recomputed on decode.
func FormatEIDR(b [12]byte) string {
	h := strings.ToUpper(hex.EncodeToString(b[2:]))
	return fmt.Sprintf("10.5240/%s-%s-%s-%s-%s", h[0:4], h[4:8], h[8:12], h[12:16], h[16:20])
}
