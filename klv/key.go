/*
NAME
  key.go

DESCRIPTION
  key.go builds and matches the 16-byte KLV universal key that frames a PMD
  metadata set: an 8-byte SMPTE UL prefix common to both accepted local-set
  designators, followed by one of two caller-selectable 8-byte local-set
  patterns.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package klv implements the SMPTE ST2109 Key-Length-Value wire codec that
// transports a PMD model: framing over a 16-byte universal key and a set of
// local tags, one encoder/decoder pair per tag kind, a CRC trailer, and
// per-frame rotation of low-priority payloads.
package klv

// KeyLen is the fixed length of a KLV universal key.
const KeyLen = 16

// ulPrefix is the first 8 bytes common to every PMD universal key: the
// SMPTE UL registry prefix (OID 0x06, length 0x0E, UL code 0x2B, SMPTE
// designator 0x34) followed by the groups/sets/packs category, defined
// length pack subcategory, and major/structure version bytes.
var ulPrefix = [8]byte{0x06, 0x0E, 0x2B, 0x34, 0x02, 0x01, 0x01, 0x01}

// UniversalLabel selects which local-set designator an encoder writes.
// Decoders accept either, regardless of which this selects.
type UniversalLabel int

const (
	// LabelST2109 is the SMPTE ST2109 "Audio Metadata Set" designator.
	LabelST2109 UniversalLabel = iota
	// LabelDolby is the Dolby private local-set designator.
	LabelDolby
)

// localSetPattern returns the trailing 8 bytes of the universal key for l.
func localSetPattern(l UniversalLabel) [8]byte {
	switch l {
	case LabelDolby:
		return [8]byte{0x0E, 0x09, 0x07, 0x01, 0x00, 0x00, 0x00, 0x00}
	default:
		return [8]byte{0x0C, 0x04, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}
	}
}

// BuildUniversalKey returns the 16-byte universal key for the given label.
func BuildUniversalKey(l UniversalLabel) [KeyLen]byte {
	var k [KeyLen]byte
	copy(k[:8], ulPrefix[:])
	p := localSetPattern(l)
	copy(k[8:], p[:])
	return k
}

// MatchUniversalLabel reports whether buf's first 16 bytes form a valid PMD
// universal key: the fixed 8-byte prefix followed by either accepted
// 8-byte local-set pattern.
func MatchUniversalLabel(buf []byte) bool {
	if len(buf) < KeyLen {
		return false
	}
	for i := 0; i < 8; i++ {
		if buf[i] != ulPrefix[i] {
			return false
		}
	}
	st2109 := localSetPattern(LabelST2109)
	dolby := localSetPattern(LabelDolby)
	matchesST2109, matchesDolby := true, true
	for i := 0; i < 8; i++ {
		if buf[8+i] != st2109[i] {
			matchesST2109 = false
		}
		if buf[8+i] != dolby[i] {
			matchesDolby = false
		}
	}
	return matchesST2109 || matchesDolby
}
