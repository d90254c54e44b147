/*
NAME
  crc.go

DESCRIPTION
  crc.go computes the 16-bit CRC trailer that covers an entire KLV packet,
  following the table-driven construction style of container/mts/psi's
  crc32 helpers, but for the CRC-16/CCITT-FALSE polynomial this codec uses.

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

// crc16Poly is the CRC-16/CCITT-FALSE polynomial (x^16+x^12+x^5+1).
const crc16Poly = 0x1021

// crc16Init is the CRC-16/CCITT-FALSE initial register value.
const crc16Init = 0xFFFF

var crc16Table = makeCRC16Table(crc16Poly)

func makeCRC16Table(poly uint16) *[256]uint16 {
	var t [256]uint16
	for i := range t {
		crc := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return &t
}

// crc16 computes the CRC-16/CCITT-FALSE checksum of b.
func crc16(b []byte) uint16 {
	crc := uint16(crc16Init)
	for _, v := range b {
		crc = (crc << 8) ^ crc16Table[byte(crc>>8)^v]
	}
	return crc
}
