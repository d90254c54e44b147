/*
NAME
  ber.go

DESCRIPTION
  ber.go implements ASN.1 BER length field encoding and decoding: short
  form for lengths under 128, long form (0x80 | k, followed by k big-endian
  length bytes) otherwise.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package klv

import "github.com/pkg/errors"

// ErrBERTruncated is returned when a BER length field runs past the end of
// the buffer.
var ErrBERTruncated = errors.New("klv: truncated BER length field")

// ErrBEROverflow is returned when a long-form BER length would overflow an
// int, or declares more long-form bytes than this implementation supports.
var ErrBEROverflow = errors.New("klv: BER length field overflow")

// maxBERLongBytes bounds the long-form byte count we will decode, enough
// for any length representable in this implementation (up to 4 bytes, i.e.
// lengths up to 2^32-1).
const maxBERLongBytes = 4

// encodeBERLength appends the BER encoding of n to buf and returns the
// result.
func encodeBERLength(buf []byte, n int) []byte {
	if n < 128 {
		return append(buf, byte(n))
	}
	var tmp [8]byte
	k := 0
	for v := n; v > 0; v >>= 8 {
		tmp[k] = byte(v)
		k++
	}
	buf = append(buf, 0x80|byte(k))
	for i := k - 1; i >= 0; i-- {
		buf = append(buf, tmp[i])
	}
	return buf
}

// berLengthSize returns the number of bytes encodeBERLength would emit for
// n, without allocating.
func berLengthSize(n int) int {
	if n < 128 {
		return 1
	}
	k := 0
	for v := n; v > 0; v >>= 8 {
		k++
	}
	return 1 + k
}

// decodeBERLength parses a BER length field at the start of buf, returning
// the decoded length and the number of bytes consumed.
func decodeBERLength(buf []byte) (n int, consumed int, err error) {
	if len(buf) < 1 {
		return 0, 0, ErrBERTruncated
	}
	first := buf[0]
	if first&0x80 == 0 {
		return int(first), 1, nil
	}
	k := int(first &^ 0x80)
	if k == 0 || k > maxBERLongBytes {
		return 0, 0, ErrBEROverflow
	}
	if len(buf) < 1+k {
		return 0, 0, ErrBERTruncated
	}
	n = 0
	for i := 0; i < k; i++ {
		n = n<<8 | int(buf[1+i])
	}
	return n, 1 + k, nil
}
