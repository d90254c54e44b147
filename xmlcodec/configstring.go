/*
NAME
  configstring.go

DESCRIPTION
  configstring.go synthesizes and parses the human-readable Presentation
  Config string ("CM" / "ME" complete main / music-and-effects):
  "<speaker-config> [CM|ME] [+ N<code>]*", and cross-checks a parsed
  string against a presentation's actual element mix once every element
  has been linked.

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
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ausocean/pmd/model"
)

// classOrder fixes the emission order of object-class terms in a synthesized
// Presentation Config string: D VDS VO O SS EA EI.
var classOrder = []model.ObjectClass{
	model.ClassD, model.ClassVDS, model.ClassVO, model.ClassO,
	model.ClassSS, model.ClassEA, model.ClassEI,
}

// SynthesizeConfigString builds the Presentation Config string for a
// presentation's speaker configuration and element mix: CM if no dialog
// (ClassD) objects are present, ME otherwise, followed by a "+ N<code>" term
// for every object class with at least one member, in classOrder.
func SynthesizeConfigString(speakerConfig model.Config, counts map[model.ObjectClass]int) string {
	var b strings.Builder
	b.WriteString(speakerConfig.String())
	if counts[model.ClassD] > 0 {
		b.WriteString(" ME")
	} else {
		b.WriteString(" CM")
	}
	for _, c := range classOrder {
		if n := counts[c]; n > 0 {
			fmt.Fprintf(&b, " + %d%s", n, c.String())
		}
	}
	return b.String()
}

// parsedConfigString is a Presentation Config string broken into its parts.
type parsedConfigString struct {
	SpeakerConfig model.Config
	IsME          bool
	Counts        map[model.ObjectClass]int
}

var configTermPattern = regexp.MustCompile(`^(\d+)([A-Za-z]+)$`)

// ParseConfigString parses a Presentation Config string of the form
// "<speaker-config> [CM|ME] [+ N<code>]*".
func ParseConfigString(s string) (parsedConfigString, error) {
	var out parsedConfigString
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return out, ErrMalformedXML
	}
	cfg, ok := model.ConfigFromString(fields[0])
	if !ok {
		return out, ErrInvalidEnum
	}
	out.SpeakerConfig = cfg

	switch fields[1] {
	case "CM":
		out.IsME = false
	case "ME":
		out.IsME = true
	default:
		return out, ErrInvalidEnum
	}

	out.Counts = make(map[model.ObjectClass]int)
	rest := fields[2:]
	for i := 0; i < len(rest); i++ {
		if rest[i] == "+" {
			continue
		}
		m := configTermPattern.FindStringSubmatch(rest[i])
		if m == nil {
			return out, ErrMalformedXML
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return out, ErrMalformedXML
		}
		class, ok := model.ObjectClassFromString(m[2])
		if !ok {
			return out, ErrInvalidEnum
		}
		out.Counts[class] = n
	}
	return out, nil
}

// CrossCheckConfigString verifies that a parsed config string matches a
// presentation's actual element mix: per-class object counts must be exact,
// and the presence of any ClassD object must match CM/ME. It returns
// ErrConfigMismatch on any discrepancy.
func CrossCheckConfigString(parsed parsedConfigString, speakerConfig model.Config, counts map[model.ObjectClass]int) error {
	if parsed.SpeakerConfig != speakerConfig {
		return ErrConfigMismatch
	}
	if parsed.IsME != (counts[model.ClassD] > 0) {
		return ErrConfigMismatch
	}
	seen := make(map[model.ObjectClass]bool)
	for class, n := range counts {
		if n == 0 {
			continue
		}
		seen[class] = true
		if parsed.Counts[class] != n {
			return ErrConfigMismatch
		}
	}
	for class, n := range parsed.Counts {
		if n > 0 && !seen[class] {
			return ErrConfigMismatch
		}
	}
	return nil
}
