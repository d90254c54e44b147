/*
NAME
  speaker.go

DESCRIPTION
  speaker.go defines loudspeaker targets and the fixed speaker set permitted
  by each bed configuration.

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

// Speaker identifies a loudspeaker target position. It is carried on the
// wire as a 5-bit field, giving a range of 0-31.
type Speaker uint8

// Speaker targets. Values below 16 make up the 9.1.6 superset, of which all
// narrower speaker configs use a subset; 16-19 are the headphone and
// portable targets.
const (
	SpeakerL Speaker = iota
	SpeakerR
	SpeakerC
	SpeakerLFE
	SpeakerLs
	SpeakerRs
	SpeakerLrs
	SpeakerRrs
	SpeakerLw
	SpeakerRw
	SpeakerLtf
	SpeakerRtf
	SpeakerLtm
	SpeakerRtm
	SpeakerLtr
	SpeakerRtr
	SpeakerHeadphoneL
	SpeakerHeadphoneR
	SpeakerPortableL
	SpeakerPortableR
)

// speakerNames is the fixed name table Speaker is validated against on XML
// decode.
var speakerNames = [...]string{
	"L", "R", "C", "LFE", "Ls", "Rs", "Lrs", "Rrs", "Lw", "Rw",
	"Ltf", "Rtf", "Ltm", "Rtm", "Ltr", "Rtr",
	"HeadphoneL", "HeadphoneR", "PortableL", "PortableR",
}

// String returns the XML name for speaker target s.
func (s Speaker) String() string {
	if int(s) < 0 || int(s) >= len(speakerNames) {
		return "?"
	}
	return speakerNames[s]
}

// SpeakerFromString parses a speaker name as produced by Speaker.String.
func SpeakerFromString(v string) (Speaker, bool) {
	for i, name := range speakerNames {
		if name == v {
			return Speaker(i), true
		}
	}
	return 0, false
}

// Config is a bed's fixed loudspeaker configuration.
type Config uint8

const (
	Config2_0 Config = iota
	Config3_0
	Config5_1
	Config5_1_2
	Config5_1_4
	Config7_1_4
	Config9_1_6
	ConfigPortable
	ConfigHeadphone
)

// String returns the human-readable configuration name as used in the
// XML Presentation Config string.
func (c Config) String() string {
	switch c {
	case Config2_0:
		return "2.0"
	case Config3_0:
		return "3.0"
	case Config5_1:
		return "5.1"
	case Config5_1_2:
		return "5.1.2"
	case Config5_1_4:
		return "5.1.4"
	case Config7_1_4:
		return "7.1.4"
	case Config9_1_6:
		return "9.1.6"
	case ConfigPortable:
		return "Portable"
	case ConfigHeadphone:
		return "Headphone"
	default:
		return "unknown"
	}
}

// ConfigFromString parses a config name as produced by Config.String.
func ConfigFromString(s string) (Config, bool) {
	for c := Config2_0; c <= ConfigHeadphone; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// speakerSets enumerates the speakers permitted under each configuration.
var speakerSets = map[Config][]Speaker{
	Config2_0: {SpeakerL, SpeakerR},
	Config3_0: {SpeakerL, SpeakerR, SpeakerC},
	Config5_1: {SpeakerL, SpeakerR, SpeakerC, SpeakerLFE, SpeakerLs, SpeakerRs},
	Config5_1_2: {
		SpeakerL, SpeakerR, SpeakerC, SpeakerLFE, SpeakerLs, SpeakerRs,
		SpeakerLtf, SpeakerRtf,
	},
	Config5_1_4: {
		SpeakerL, SpeakerR, SpeakerC, SpeakerLFE, SpeakerLs, SpeakerRs,
		SpeakerLtf, SpeakerRtf, SpeakerLtr, SpeakerRtr,
	},
	Config7_1_4: {
		SpeakerL, SpeakerR, SpeakerC, SpeakerLFE, SpeakerLs, SpeakerRs,
		SpeakerLrs, SpeakerRrs, SpeakerLtf, SpeakerRtf, SpeakerLtr, SpeakerRtr,
	},
	Config9_1_6: {
		SpeakerL, SpeakerR, SpeakerC, SpeakerLFE, SpeakerLs, SpeakerRs,
		SpeakerLrs, SpeakerRrs, SpeakerLw, SpeakerRw,
		SpeakerLtf, SpeakerRtf, SpeakerLtm, SpeakerRtm, SpeakerLtr, SpeakerRtr,
	},
	ConfigPortable:  {SpeakerPortableL, SpeakerPortableR},
	ConfigHeadphone: {SpeakerHeadphoneL, SpeakerHeadphoneR},
}

// ValidSpeaker reports whether sp is a permitted target for config c.
func ValidSpeaker(c Config, sp Speaker) bool {
	for _, s := range speakerSets[c] {
		if s == sp {
			return true
		}
	}
	return false
}

// Speakers returns the ordered, fixed speaker set for config c.
func Speakers(c Config) []Speaker {
	return speakerSets[c]
}

// sevenOneFourNonLFE are the 11 non-LFE speakers of a 7.1.4 bed; used by the
// sADM projection's 7.0.4-collapse detection heuristic.
var sevenOneFourNonLFE = []Speaker{
	SpeakerL, SpeakerR, SpeakerC, SpeakerLs, SpeakerRs,
	SpeakerLrs, SpeakerRrs, SpeakerLtf, SpeakerRtf, SpeakerLtr, SpeakerRtr,
}

// SevenOneFourNonLFE returns the 11 non-LFE speakers of a 7.1.4 bed, in
// fixed order. Exported for the sADM projection's 7.0.4-collapse heuristic,
// which must check a bed's sources against exactly this set.
func SevenOneFourNonLFE() []Speaker {
	return append([]Speaker(nil), sevenOneFourNonLFE...)
}
