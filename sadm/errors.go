/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel errors Project returns when a PMD
  construct falls outside the sADM profile's restrictions.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sadm

import "github.com/pkg/errors"

var (
	// ErrNotRepresentable indicates a PMD construct the sADM profile has no
	// equivalent for.
	ErrNotRepresentable = errors.New("sadm: construct not representable in sADM profile")

	// ErrMixedGain indicates a bed's sources do not share a single gain,
	// which the sADM target-group model requires.
	ErrMixedGain = errors.New("sadm: bed sources do not share a single gain")

	// ErrUnknownConfig indicates a bed declares a configuration the
	// projection has no target-group mapping for.
	ErrUnknownConfig = errors.New("sadm: no target-group mapping for configuration")
)
