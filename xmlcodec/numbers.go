/*
NAME
  numbers.go

DESCRIPTION
  numbers.go formats and parses the two numeric conventions the XML dialect
  uses beyond plain decimals: gains ("-infdB" or a one-decimal "-3.0dB"
  reading) and coordinates at a configurable fractional precision.

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

import (
	"math"
	"strconv"
	"strings"

	"github.com/ausocean/pmd/model"
)

// formatGain renders a gain in dB as "-infdB" for negative infinity, else a
// one-decimal-digit reading with a "dB" suffix.
func formatGain(db float64) string {
	if math.IsInf(db, -1) {
		return "-infdB"
	}
	return strconv.FormatFloat(db, 'f', 1, 64) + "dB"
}

// parseGain parses a string produced by formatGain.
func parseGain(s string) (float64, error) {
	if s == "-infdB" {
		return model.NegInfGain, nil
	}
	trimmed := strings.TrimSuffix(s, "dB")
	if trimmed == s {
		return 0, ErrMalformedXML
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, ErrMalformedXML
	}
	return v, nil
}

// formatCoord renders v at the given fractional-digit precision.
func formatCoord(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// parseCoord parses a string produced by formatCoord.
func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrMalformedXML
	}
	return v, nil
}
