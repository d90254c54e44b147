/*
NAME
  quant.go

DESCRIPTION
  quant.go provides the fixed-point quantization schemes shared by the model
  and the KLV codec: coordinates over 10 bits, size over 5 bits, and gain
  over 6 bits with a distinguished code for negative infinity.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package model

import "math"

// CoordBits is the bit width of a quantized (x, y, or z) coordinate.
const CoordBits = 10

// coordLevels is the highest quantized coordinate code (codes run 0..1023).
const coordLevels = (1 << CoordBits) - 1 // 1023

// SizeBits is the bit width of a quantized object size.
const SizeBits = 5

// sizeLevels is the highest quantized size code (codes run 0..31).
const sizeLevels = (1 << SizeBits) - 1 // 31

// GainBits is the bit width of a quantized gain, including the -inf code.
const GainBits = 6

// gainMinDB and gainMaxDB bound the non-infinite gain range.
const (
	gainMinDB  = -25.0
	gainMaxDB  = 6.0
	gainStepDB = 0.5
)

// NegInfGain is the sentinel gain value representing -infinity dB.
var NegInfGain = math.Inf(-1)

// QuantizeCoord maps v in [-1, 1] to a CoordBits-wide code.
func QuantizeCoord(v float64) uint32 {
	v = clamp(v, -1, 1)
	return uint32(math.Round((v + 1) * float64(coordLevels) / 2))
}

// DequantizeCoord maps a CoordBits-wide code back to [-1, 1].
func DequantizeCoord(code uint32) float64 {
	if code > coordLevels {
		code = coordLevels
	}
	return -1 + float64(code)*2/float64(coordLevels)
}

// QuantizeSize maps v in [0, 1] to a SizeBits-wide code.
func QuantizeSize(v float64) uint32 {
	v = clamp(v, 0, 1)
	return uint32(math.Round(v * float64(sizeLevels)))
}

// DequantizeSize maps a SizeBits-wide code back to [0, 1].
func DequantizeSize(code uint32) float64 {
	if code > sizeLevels {
		code = sizeLevels
	}
	return float64(code) / float64(sizeLevels)
}

// QuantizeGain maps g (NegInfGain, or in [gainMinDB, gainMaxDB] on a 0.5dB
// grid) to a GainBits-wide code, with 0 reserved for -infinity.
func QuantizeGain(g float64) uint32 {
	if math.IsInf(g, -1) {
		return 0
	}
	g = clamp(g, gainMinDB, gainMaxDB)
	steps := math.Round((g - gainMinDB) / gainStepDB)
	return uint32(steps) + 1
}

// DequantizeGain maps a GainBits-wide code back to dB, or NegInfGain for
// code 0.
func DequantizeGain(code uint32) float64 {
	if code == 0 {
		return NegInfGain
	}
	return gainMinDB + float64(code-1)*gainStepDB
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
