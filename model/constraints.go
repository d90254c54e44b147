/*
NAME
  constraints.go

DESCRIPTION
  constraints.go defines ModelConstraints, the capacity envelope a Model is
  constructed with, and the profile/level table that further restricts that
  envelope once a profile is declared.

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

// ModelConstraints bounds the capacity of every variable-length collection
// in a Model. Construction values follow revid/config's flat,
// named-tunable-struct style.
type ModelConstraints struct {
	MaxSignals       int
	MaxElements      int // overall bed+object cap.
	MaxBeds          int
	MaxObjects       int
	MaxPresentations int
	MaxNamesPerPres  int
	MaxEEP           int
	MaxETD           int
}

// DefaultConstraints returns the widest envelope the wire formats support.
func DefaultConstraints() ModelConstraints {
	return ModelConstraints{
		MaxSignals:       255,
		MaxElements:      4095,
		MaxBeds:          4095,
		MaxObjects:       4095,
		MaxPresentations: 511,
		MaxNamesPerPres:  16,
		MaxEEP:           255,
		MaxETD:           255,
	}
}

// profileEnvelope names the per-entity caps a profile/level imposes, on top
// of (never beyond) ModelConstraints.
type profileEnvelope struct {
	maxSignals       int
	maxElements      int
	maxPresentations int
}

// profileTable holds the profile/level capacity table: profile 1 levels
// 1..3 limit signals to 16; elements to 10/20/50; presentations to
// 8/16/48.
var profileTable = map[int]map[int]profileEnvelope{
	1: {
		1: {maxSignals: 16, maxElements: 10, maxPresentations: 8},
		2: {maxSignals: 16, maxElements: 20, maxPresentations: 16},
		3: {maxSignals: 16, maxElements: 50, maxPresentations: 48},
	},
}

// lookupProfile returns the envelope for (number, level), and whether it is
// a known profile/level pair.
func lookupProfile(number, level int) (profileEnvelope, bool) {
	levels, ok := profileTable[number]
	if !ok {
		return profileEnvelope{}, false
	}
	env, ok := levels[level]
	return env, ok
}
