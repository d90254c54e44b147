/*
NAME
  utf8.go

DESCRIPTION
  utf8.go validates decoded strings against the legal Unicode code-point
  ranges: below the surrogate range, within the BMP excluding
  noncharacters, or within the supplementary planes.

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

import "unicode/utf8"

// validateCodePoint reports an error if r falls outside the legal ranges:
// < 0xD800, 0xE000..0xFFFD, or 0x10000..0x10FFFF, excluding the
// noncharacters U+FDD0..U+FDEF and every code point ending in FFFE or FFFF.
func validateCodePoint(r rune) error {
	switch {
	case r >= 0xFDD0 && r <= 0xFDEF, r&0xFFFE == 0xFFFE:
		return ErrIllegalUTF8
	case r < 0xD800:
		return nil
	case r >= 0xE000 && r <= 0xFFFD:
		return nil
	case r >= 0x10000 && r <= 0x10FFFF:
		return nil
	default:
		return ErrIllegalUTF8
	}
}

// ValidateUTF8 reports whether s is valid UTF-8 and every decoded code point
// falls within the legal ranges above.
func ValidateUTF8(s string) error {
	if !utf8.ValidString(s) {
		return ErrIllegalUTF8
	}
	for _, r := range s {
		if r == utf8.RuneError {
			return ErrIllegalUTF8
		}
		if err := validateCodePoint(r); err != nil {
			return err
		}
	}
	return nil
}
