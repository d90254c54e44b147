/*
NAME
  langcode.go

DESCRIPTION
  langcode encodes and decodes 2- or 3-letter ISO 639-1/639-2B/639-2T
  language codes into a compact 32-bit representation.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package langcode provides a compact 32-bit encoding of ISO 639-1,
// 639-2B, and 639-2T language codes, with validation against the known
// set and a stable alphabetical enumeration of that set.
package langcode

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// LangCode is a NUL-terminated 2- or 3-letter lowercase ASCII language code
// packed big-endian into a uint32: "xx\0\0" for a 2-letter code, "xxx\0" for
// a 3-letter code.
type LangCode uint32

// ErrInvalidCode is returned when a string does not match a known ISO 639-1,
// 639-2B, or 639-2T code.
var ErrInvalidCode = errors.New("langcode: invalid language code")

// ErrOutOfRange is returned by Select when n is outside [0, Count()).
var ErrOutOfRange = errors.New("langcode: index out of range")

// all is the alphabetically sorted, deduplicated enumeration of every known
// code string across the three standards. Built once at init time.
var all []string

func init() {
	set := make(map[string]struct{})
	for a2 := range alpha2to3T {
		set[a2] = struct{}{}
	}
	for _, a3 := range alpha2to3T {
		set[a3] = struct{}{}
	}
	for _, a3 := range alpha2to3B {
		set[a3] = struct{}{}
	}
	all = make([]string, 0, len(set))
	for s := range set {
		all = append(all, s)
	}
	sort.Strings(all)
}

// pack encodes a validated, lowercase 2- or 3-letter code into a LangCode.
func pack(s string) LangCode {
	var b [4]byte
	copy(b[:], s)
	return LangCode(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// isKnown reports whether the lowercase string s is a valid code under any
// of ISO 639-1, 639-2B, or 639-2T.
func isKnown(s string) bool {
	if _, ok := alpha2to3T[s]; ok {
		return true
	}
	for _, a3 := range alpha2to3T {
		if a3 == s {
			return true
		}
	}
	for _, a3 := range alpha2to3B {
		if a3 == s {
			return true
		}
	}
	return false
}

// Decode parses s as a 2- or 3-letter ASCII language code, case-insensitive,
// and returns its packed LangCode. It returns ErrInvalidCode if s is not
// exactly 2 or 3 ASCII letters, or does not match a known code.
func Decode(s string) (LangCode, error) {
	if len(s) != 2 && len(s) != 3 {
		return 0, ErrInvalidCode
	}
	lower := strings.ToLower(s)
	for _, c := range lower {
		if c < 'a' || c > 'z' {
			return 0, ErrInvalidCode
		}
	}
	if !isKnown(lower) {
		return 0, ErrInvalidCode
	}
	return pack(lower), nil
}

// String4 returns the NUL-terminated 4-byte representation of c, e.g. for
// "eng" this is {'e','n','g',0}.
func (c LangCode) String4() [4]byte {
	v := uint32(c)
	return [4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// String returns the printable (non-NUL-terminated) code string, e.g. "eng"
// or "en".
func (c LangCode) String() string {
	b := c.String4()
	n := 4
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return string(b[:n])
}

// Count returns the number of distinct codes in the full enumeration across
// ISO 639-1, 639-2B, and 639-2T.
func Count() uint32 {
	return uint32(len(all))
}

// Select returns the n-th code (0-indexed) in the alphabetically sorted,
// deduplicated enumeration across the three standards.
func Select(n uint32) (LangCode, error) {
	if n >= uint32(len(all)) {
		return 0, ErrOutOfRange
	}
	return pack(all[n]), nil
}
