/*
NAME
  copy_equal.go

DESCRIPTION
  copy_equal.go implements deep Model cloning and structural equality,
  modulo optional name and update-resolution differences.

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

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Copy deep-clones src into dst. dst's capacity envelope must be able to
// hold src's current entity counts.
func Copy(dst, src *Model) error {
	src.mu.Lock()
	defer src.mu.Unlock()

	if src.elementCount() > dst.constraints.MaxElements ||
		len(src.signals) > dst.constraints.MaxSignals ||
		len(src.presentations) > dst.constraints.MaxPresentations {
		return dst.setErr(ErrIncompatibleConstraints)
	}

	dst.mu.Lock()
	defer dst.mu.Unlock()

	dst.signals = make(map[SignalID]struct{}, len(src.signals))
	for k := range src.signals {
		dst.signals[k] = struct{}{}
	}
	dst.beds = make(map[ElementID]Bed, len(src.beds))
	for k, v := range src.beds {
		v.Sources = append([]BedSource(nil), v.Sources...)
		dst.beds[k] = v
	}
	dst.objects = make(map[ElementID]Object, len(src.objects))
	for k, v := range src.objects {
		dst.objects[k] = v
	}
	dst.presentations = make(map[PresentationID]Presentation, len(src.presentations))
	for k, v := range src.presentations {
		v.Elements = append([]ElementID(nil), v.Elements...)
		v.Names = append([]PresentationName(nil), v.Names...)
		dst.presentations[k] = v
	}
	dst.loudness = make(map[PresentationID]Loudness, len(src.loudness))
	for k, v := range src.loudness {
		v.Extension = append([]byte(nil), v.Extension...)
		dst.loudness[k] = v
	}
	dst.updates = append([]DynamicUpdate(nil), src.updates...)
	dst.eeps = make(map[EEPID]EAC3, len(src.eeps))
	for k, v := range src.eeps {
		v.Presentations = append([]PresentationID(nil), v.Presentations...)
		dst.eeps[k] = v
	}
	dst.etds = make(map[ETDID]ETD, len(src.etds))
	for k, v := range src.etds {
		v.ED2Pairs = append([]PresentationEEPPair(nil), v.ED2Pairs...)
		v.DEPairs = append([]PresentationEEPPair(nil), v.DEPairs...)
		dst.etds[k] = v
	}
	if src.iat != nil {
		cp := *src.iat
		cp.UserData = append([]byte(nil), src.iat.UserData...)
		cp.Extension = append([]byte(nil), src.iat.Extension...)
		cp.ContentID.Raw = append([]byte(nil), src.iat.ContentID.Raw...)
		cp.DistributionID.Raw = append([]byte(nil), src.iat.DistributionID.Raw...)
		dst.iat = &cp
	} else {
		dst.iat = nil
	}
	dst.hed = make(map[ElementID]HED, len(src.hed))
	for k, v := range src.hed {
		dst.hed[k] = v
	}
	dst.container = src.container
	dst.container.DynamicTags = append([]DynamicTagRemap(nil), src.container.DynamicTags...)
	dst.title = src.title
	dst.lastErr = ""
	return nil
}

// EqualOptions controls which differences Equal tolerates.
type EqualOptions struct {
	// IgnoreNames ignores Presentation.Names and Bed.Name differences.
	IgnoreNames bool
	// IgnoreUpdateResolution ignores the pending-update queue and the
	// coordinates it would otherwise have resolved onto objects, since
	// decoding followed by ApplyUpdates is only required to match to
	// within one LSB of quantization.
	IgnoreUpdateResolution bool
}

// Equal reports whether a and b are structurally equal, modulo the
// tolerances named in opts. The attached error message and internal lock
// state are always ignored, as they are strictly volatile.
func Equal(a, b *Model, opts EqualOptions) bool {
	a.mu.Lock()
	b.mu.Lock()
	defer a.mu.Unlock()
	defer b.mu.Unlock()

	var cmpOpts []cmp.Option
	if opts.IgnoreNames {
		cmpOpts = append(cmpOpts,
			cmpopts.IgnoreFields(Presentation{}, "Names"),
			cmpopts.IgnoreFields(Bed{}, "Name"),
		)
	}
	if opts.IgnoreUpdateResolution {
		cmpOpts = append(cmpOpts, cmpopts.IgnoreFields(Object{}, "X", "Y", "Z"))
	}

	eq := cmp.Equal(a.signals, b.signals) &&
		cmp.Equal(a.beds, b.beds, cmpOpts...) &&
		cmp.Equal(a.objects, b.objects, cmpOpts...) &&
		cmp.Equal(a.presentations, b.presentations, cmpOpts...) &&
		cmp.Equal(a.loudness, b.loudness) &&
		cmp.Equal(a.eeps, b.eeps) &&
		cmp.Equal(a.etds, b.etds) &&
		cmp.Equal(a.iat, b.iat) &&
		cmp.Equal(a.hed, b.hed) &&
		cmp.Equal(a.container, b.container) &&
		a.title == b.title
	if !opts.IgnoreUpdateResolution {
		eq = eq && cmp.Equal(a.updates, b.updates)
	}
	return eq
}
