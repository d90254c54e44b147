/*
NAME
  decode.go

DESCRIPTION
  decode.go is the mirror of entities.go: it reads a snapshot back and
  replays it onto a Model through the model package's own mutators, so
  every referential-integrity and capacity invariant the Model already
  enforces on live construction is enforced identically on ingest.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package mdset

import "github.com/ausocean/pmd/model"

func decode(r *byteReader, m *model.Model) error {
	m.Reset()

	sampleOffset, err := r.u32()
	if err != nil {
		return ErrTruncated
	}
	m.SetSampleOffset(sampleOffset)

	major, err := r.u8()
	if err != nil {
		return ErrTruncated
	}
	minor, err := r.u8()
	if err != nil {
		return ErrTruncated
	}
	m.SetBitstreamVersion(model.BitstreamVersion{Major: major, Minor: minor})

	numberRaw, err := r.u32()
	if err != nil {
		return ErrTruncated
	}
	levelRaw, err := r.u32()
	if err != nil {
		return ErrTruncated
	}
	if number, level := int(int32(numberRaw)), int(int32(levelRaw)); number != 0 || level != 0 {
		if err := m.SetProfile(number, level); err != nil {
			return err
		}
	}

	nTags, err := r.u16()
	if err != nil {
		return ErrTruncated
	}
	for i := uint16(0); i < nTags; i++ {
		localTag, err := r.u8()
		if err != nil {
			return ErrTruncated
		}
		label, err := r.take(16)
		if err != nil {
			return ErrTruncated
		}
		var remap model.DynamicTagRemap
		remap.LocalTag = localTag
		copy(remap.UniversalLabel[:], label)
		if err := m.SetDynamicTagRemap(remap); err != nil {
			return err
		}
	}

	title, err := r.str()
	if err != nil {
		return ErrTruncated
	}
	m.SetTitle(title)

	nSignals, err := r.u16()
	if err != nil {
		return ErrTruncated
	}
	for i := uint16(0); i < nSignals; i++ {
		id, err := r.u8()
		if err != nil {
			return ErrTruncated
		}
		if err := m.AddSignal(model.SignalID(id)); err != nil {
			return err
		}
	}

	nBeds, err := r.u16()
	if err != nil {
		return ErrTruncated
	}
	for i := uint16(0); i < nBeds; i++ {
		b, err := decodeBed(r)
		if err != nil {
			return err
		}
		if err := m.SetBed(b); err != nil {
			return err
		}
	}

	nObjects, err := r.u16()
	if err != nil {
		return ErrTruncated
	}
	for i := uint16(0); i < nObjects; i++ {
		o, err := decodeObject(r)
		if err != nil {
			return err
		}
		if err := m.SetObject(o); err != nil {
			return err
		}
	}

	nPres, err := r.u16()
	if err != nil {
		return ErrTruncated
	}
	for i := uint16(0); i < nPres; i++ {
		p, err := decodePresentation(r)
		if err != nil {
			return err
		}
		if err := m.SetPresentation(p); err != nil {
			return err
		}
	}

	nLoudness, err := r.u16()
	if err != nil {
		return ErrTruncated
	}
	for i := uint16(0); i < nLoudness; i++ {
		l, err := decodeLoudness(r)
		if err != nil {
			return err
		}
		if err := m.SetLoudness(l); err != nil {
			return err
		}
	}

	nUpdates, err := r.u32()
	if err != nil {
		return ErrTruncated
	}
	for i := uint32(0); i < nUpdates; i++ {
		timeBlock, err := r.u8()
		if err != nil {
			return ErrTruncated
		}
		obj, err := r.u16()
		if err != nil {
			return ErrTruncated
		}
		x, err := r.f64()
		if err != nil {
			return ErrTruncated
		}
		y, err := r.f64()
		if err != nil {
			return ErrTruncated
		}
		z, err := r.f64()
		if err != nil {
			return ErrTruncated
		}
		if err := m.AddUpdate(model.ElementID(obj), timeBlock, x, y, z); err != nil {
			return err
		}
	}

	nEEP, err := r.u16()
	if err != nil {
		return ErrTruncated
	}
	for i := uint16(0); i < nEEP; i++ {
		e, err := decodeEAC3(r)
		if err != nil {
			return err
		}
		if err := m.SetEAC3(e); err != nil {
			return err
		}
	}

	nETD, err := r.u16()
	if err != nil {
		return ErrTruncated
	}
	for i := uint16(0); i < nETD; i++ {
		e, err := decodeETD(r)
		if err != nil {
			return err
		}
		if err := m.SetETD(e); err != nil {
			return err
		}
	}

	hasIAT, err := r.boolean()
	if err != nil {
		return ErrTruncated
	}
	if hasIAT {
		iat, err := decodeIAT(r)
		if err != nil {
			return err
		}
		if err := m.SetIAT(iat); err != nil {
			return err
		}
	}

	nHED, err := r.u16()
	if err != nil {
		return ErrTruncated
	}
	for i := uint16(0); i < nHED; i++ {
		elem, err := r.u16()
		if err != nil {
			return ErrTruncated
		}
		headTracking, err := r.boolean()
		if err != nil {
			return ErrTruncated
		}
		renderMode, err := r.u8()
		if err != nil {
			return ErrTruncated
		}
		mask, err := r.u16()
		if err != nil {
			return ErrTruncated
		}
		h := model.HED{
			Element:         model.ElementID(elem),
			HeadTracking:    headTracking,
			RenderMode:      renderMode,
			ChannelExclMask: mask,
		}
		if err := m.SetHeadphoneElement(h); err != nil {
			return err
		}
	}

	return nil
}

func decodeBed(r *byteReader) (model.Bed, error) {
	var b model.Bed
	id, err := r.u16()
	if err != nil {
		return b, ErrTruncated
	}
	b.ID = model.ElementID(id)
	if b.Name, err = r.str(); err != nil {
		return b, ErrTruncated
	}
	config, err := r.u8()
	if err != nil {
		return b, ErrTruncated
	}
	b.Config = model.Config(config)
	bedType, err := r.u8()
	if err != nil {
		return b, ErrTruncated
	}
	b.Type = model.BedType(bedType)
	derived, err := r.u16()
	if err != nil {
		return b, ErrTruncated
	}
	b.DerivedSource = model.ElementID(derived)
	nSources, err := r.u16()
	if err != nil {
		return b, ErrTruncated
	}
	for i := uint16(0); i < nSources; i++ {
		target, err := r.u8()
		if err != nil {
			return b, ErrTruncated
		}
		signal, err := r.u8()
		if err != nil {
			return b, ErrTruncated
		}
		gain, err := r.f64()
		if err != nil {
			return b, ErrTruncated
		}
		b.Sources = append(b.Sources, model.BedSource{
			Target: model.Speaker(target), Signal: model.SignalID(signal), GainDB: gain,
		})
	}
	return b, nil
}

func decodeObject(r *byteReader) (model.Object, error) {
	var o model.Object
	id, err := r.u16()
	if err != nil {
		return o, ErrTruncated
	}
	o.ID = model.ElementID(id)
	if o.Name, err = r.str(); err != nil {
		return o, ErrTruncated
	}
	class, err := r.u8()
	if err != nil {
		return o, ErrTruncated
	}
	o.Class = model.ObjectClass(class)
	source, err := r.u8()
	if err != nil {
		return o, ErrTruncated
	}
	o.Source = model.SignalID(source)
	if o.SourceGainDB, err = r.f64(); err != nil {
		return o, ErrTruncated
	}
	if o.X, err = r.f64(); err != nil {
		return o, ErrTruncated
	}
	if o.Y, err = r.f64(); err != nil {
		return o, ErrTruncated
	}
	if o.Z, err = r.f64(); err != nil {
		return o, ErrTruncated
	}
	if o.Size, err = r.f64(); err != nil {
		return o, ErrTruncated
	}
	if o.Size3D, err = r.boolean(); err != nil {
		return o, ErrTruncated
	}
	if o.Diverge, err = r.boolean(); err != nil {
		return o, ErrTruncated
	}
	if o.DynamicUpdates, err = r.boolean(); err != nil {
		return o, ErrTruncated
	}
	return o, nil
}

func decodePresentation(r *byteReader) (model.Presentation, error) {
	var p model.Presentation
	id, err := r.u16()
	if err != nil {
		return p, ErrTruncated
	}
	p.ID = model.PresentationID(id)
	if p.Language, err = r.str(); err != nil {
		return p, ErrTruncated
	}
	config, err := r.u8()
	if err != nil {
		return p, ErrTruncated
	}
	p.Config = model.Config(config)
	nElems, err := r.u16()
	if err != nil {
		return p, ErrTruncated
	}
	for i := uint16(0); i < nElems; i++ {
		e, err := r.u16()
		if err != nil {
			return p, ErrTruncated
		}
		p.Elements = append(p.Elements, model.ElementID(e))
	}
	nNames, err := r.u8()
	if err != nil {
		return p, ErrTruncated
	}
	for i := byte(0); i < nNames; i++ {
		var n model.PresentationName
		if n.Language, err = r.str(); err != nil {
			return p, ErrTruncated
		}
		if n.Name, err = r.str(); err != nil {
			return p, ErrTruncated
		}
		p.Names = append(p.Names, n)
	}
	return p, nil
}

func decodeLoudness(r *byteReader) (model.Loudness, error) {
	var l model.Loudness
	pid, err := r.u16()
	if err != nil {
		return l, ErrTruncated
	}
	l.Presentation = model.PresentationID(pid)
	practice, err := r.u8()
	if err != nil {
		return l, ErrTruncated
	}
	l.Practice = model.LoudnessPractice(practice)
	var decErr error
	decodeField := func(has *bool, v *float64) {
		if decErr != nil {
			return
		}
		*has, decErr = r.boolean()
		if decErr != nil {
			return
		}
		*v, decErr = r.f64()
	}
	decodeField(&l.HasRelativeGated, &l.RelativeGatedLU)
	decodeField(&l.HasSpeechGated, &l.SpeechGatedLU)
	decodeField(&l.HasShortTerm3s, &l.ShortTerm3sLU)
	decodeField(&l.HasShortTerm3sMax, &l.ShortTerm3sMaxLU)
	decodeField(&l.HasTruePeak, &l.TruePeakDB)
	decodeField(&l.HasTruePeakMax, &l.TruePeakMaxDB)
	decodeField(&l.HasMomentary, &l.MomentaryLU)
	decodeField(&l.HasMomentaryMax, &l.MomentaryMaxLU)
	decodeField(&l.HasLRA, &l.LRA)
	if decErr != nil {
		return l, ErrTruncated
	}
	if l.HasProgramBoundary, err = r.boolean(); err != nil {
		return l, ErrTruncated
	}
	if l.ProgramBoundary, err = r.boolean(); err != nil {
		return l, ErrTruncated
	}
	correction, err := r.u8()
	if err != nil {
		return l, ErrTruncated
	}
	l.Correction = model.CorrectionType(correction)
	if l.HasDialgate, err = r.boolean(); err != nil {
		return l, ErrTruncated
	}
	if l.Dialgate, err = r.boolean(); err != nil {
		return l, ErrTruncated
	}
	if l.Extension, err = r.bytes(); err != nil {
		return l, ErrTruncated
	}
	return l, nil
}

func decodeEAC3(r *byteReader) (model.EAC3, error) {
	var e model.EAC3
	id, err := r.u8()
	if err != nil {
		return e, ErrTruncated
	}
	e.ID = model.EEPID(id)

	hasEnc, err := r.boolean()
	if err != nil {
		return e, ErrTruncated
	}
	if hasEnc {
		var enc model.EncoderParams
		if enc.DataRateKbps, err = r.u32(); err != nil {
			return e, ErrTruncated
		}
		sm, err := r.u8()
		if err != nil {
			return e, ErrTruncated
		}
		enc.SurroundMode = model.SurroundMode(sm)
		dn, err := r.u32()
		if err != nil {
			return e, ErrTruncated
		}
		enc.DialnormDB = int(int32(dn))
		bm, err := r.u8()
		if err != nil {
			return e, ErrTruncated
		}
		enc.BsMod = model.BsMod(bm)
		pd, err := r.u8()
		if err != nil {
			return e, ErrTruncated
		}
		enc.PreferredDownmix = model.PreferredDownmix(pd)
		e.Encoder = &enc
	}

	hasBS, err := r.boolean()
	if err != nil {
		return e, ErrTruncated
	}
	if hasBS {
		var bs model.BitstreamParams
		cm, err := r.u8()
		if err != nil {
			return e, ErrTruncated
		}
		bs.CompressionMode = model.CompressionMode(cm)
		if bs.LtRtCenterDownmixLevel, err = r.f64(); err != nil {
			return e, ErrTruncated
		}
		if bs.LtRtSurroundDownmixLevel, err = r.f64(); err != nil {
			return e, ErrTruncated
		}
		if bs.LoRoCenterDownmixLevel, err = r.f64(); err != nil {
			return e, ErrTruncated
		}
		if bs.LoRoSurroundDownmixLevel, err = r.f64(); err != nil {
			return e, ErrTruncated
		}
		e.Bitstream = &bs
	}

	hasDRC, err := r.boolean()
	if err != nil {
		return e, ErrTruncated
	}
	if hasDRC {
		var drc model.DRCParams
		lm, err := r.u32()
		if err != nil {
			return e, ErrTruncated
		}
		drc.LineMode = int(int32(lm))
		rf, err := r.u32()
		if err != nil {
			return e, ErrTruncated
		}
		drc.RFMode = int(int32(rf))
		e.DRC = &drc
	}

	nPres, err := r.u8()
	if err != nil {
		return e, ErrTruncated
	}
	for i := byte(0); i < nPres; i++ {
		p, err := r.u16()
		if err != nil {
			return e, ErrTruncated
		}
		e.Presentations = append(e.Presentations, model.PresentationID(p))
	}
	return e, nil
}

func decodeETD(r *byteReader) (model.ETD, error) {
	var e model.ETD
	id, err := r.u8()
	if err != nil {
		return e, ErrTruncated
	}
	e.ID = model.ETDID(id)

	if e.HasED2, err = r.boolean(); err != nil {
		return e, ErrTruncated
	}
	if e.HasED2 {
		fr, err := r.u8()
		if err != nil {
			return e, ErrTruncated
		}
		e.ED2FrameRate = model.FrameRate(fr)
		if e.ED2Pairs, err = decodePairs(r); err != nil {
			return e, err
		}
	}

	if e.HasDE, err = r.boolean(); err != nil {
		return e, ErrTruncated
	}
	if e.HasDE {
		fr, err := r.u8()
		if err != nil {
			return e, ErrTruncated
		}
		e.DEFrameRate = model.FrameRate(fr)
		pc, err := r.u8()
		if err != nil {
			return e, ErrTruncated
		}
		e.DEProgramConfig = model.DEProgramConfig(pc)
		if e.DEPairs, err = decodePairs(r); err != nil {
			return e, err
		}
	}
	return e, nil
}

func decodePairs(r *byteReader) ([]model.PresentationEEPPair, error) {
	n, err := r.u8()
	if err != nil {
		return nil, ErrTruncated
	}
	var out []model.PresentationEEPPair
	for i := byte(0); i < n; i++ {
		pid, err := r.u16()
		if err != nil {
			return nil, ErrTruncated
		}
		eep, err := r.u8()
		if err != nil {
			return nil, ErrTruncated
		}
		out = append(out, model.PresentationEEPPair{Presentation: model.PresentationID(pid), EEP: model.EEPID(eep)})
	}
	return out, nil
}

func decodeIAT(r *byteReader) (model.IAT, error) {
	var iat model.IAT
	kind, err := r.u8()
	if err != nil {
		return iat, ErrTruncated
	}
	iat.ContentID.Kind = model.ContentIDKind(kind)
	switch iat.ContentID.Kind {
	case model.ContentIDUUID:
		b, err := r.take(16)
		if err != nil {
			return iat, ErrTruncated
		}
		copy(iat.ContentID.UUID[:], b)
	case model.ContentIDEIDR:
		b, err := r.take(12)
		if err != nil {
			return iat, ErrTruncated
		}
		copy(iat.ContentID.EIDR[:], b)
	case model.ContentIDAdID:
		b, err := r.take(11)
		if err != nil {
			return iat, ErrTruncated
		}
		copy(iat.ContentID.AdID[:], b)
	case model.ContentIDRaw:
		if iat.ContentID.Raw, err = r.bytes(); err != nil {
			return iat, ErrTruncated
		}
	}

	dkind, err := r.u8()
	if err != nil {
		return iat, ErrTruncated
	}
	iat.DistributionID.Kind = model.DistributionIDKind(dkind)
	switch iat.DistributionID.Kind {
	case model.DistributionIDATSC3:
		if iat.DistributionID.ATSC3.BSID, err = r.u16(); err != nil {
			return iat, ErrTruncated
		}
		if iat.DistributionID.ATSC3.Major, err = r.u16(); err != nil {
			return iat, ErrTruncated
		}
		if iat.DistributionID.ATSC3.Minor, err = r.u16(); err != nil {
			return iat, ErrTruncated
		}
	case model.DistributionIDRaw:
		if iat.DistributionID.Raw, err = r.bytes(); err != nil {
			return iat, ErrTruncated
		}
	}

	if iat.Timestamp, err = r.u64(); err != nil {
		return iat, ErrTruncated
	}
	if iat.HasOffset, err = r.boolean(); err != nil {
		return iat, ErrTruncated
	}
	if iat.Offset, err = r.u16(); err != nil {
		return iat, ErrTruncated
	}
	if iat.HasValidity, err = r.boolean(); err != nil {
		return iat, ErrTruncated
	}
	if iat.ValidityDur, err = r.u16(); err != nil {
		return iat, ErrTruncated
	}
	if iat.UserData, err = r.bytes(); err != nil {
		return iat, ErrTruncated
	}
	if iat.Extension, err = r.bytes(); err != nil {
		return iat, ErrTruncated
	}
	return iat, nil
}
