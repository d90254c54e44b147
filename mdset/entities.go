/*
NAME
  entities.go

DESCRIPTION
  entities.go implements the field-by-field encode/decode of every entity
  kind a Model holds, used by mdset.go's Create/Ingest. The ordering
  (container, title, signals, beds, objects, presentations, loudness,
  pending updates, EAC3, ETD, IAT, headphone elements) sets up every
  referential dependency (signals before beds/objects, objects before
  pending updates) before the entity that references it.

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

func encode(w *byteWriter, m *model.Model) {
	cc := m.Container()
	w.u32(cc.SampleOffset)
	w.u8(cc.Version.Major)
	w.u8(cc.Version.Minor)
	number, level := m.Profile()
	w.u32(uint32(int32(number)))
	w.u32(uint32(int32(level)))
	w.u16(uint16(len(cc.DynamicTags)))
	for _, t := range cc.DynamicTags {
		w.u8(t.LocalTag)
		w.buf = append(w.buf, t.UniversalLabel[:]...)
	}
	w.str(m.Title())

	signals := m.Signals()
	w.u16(uint16(len(signals)))
	for _, s := range signals {
		w.u8(byte(s))
	}

	beds := m.Beds()
	w.u16(uint16(len(beds)))
	for _, b := range beds {
		encodeBed(w, b)
	}

	objects := m.Objects()
	w.u16(uint16(len(objects)))
	for _, o := range objects {
		encodeObject(w, o)
	}

	presentations := m.Presentations()
	w.u16(uint16(len(presentations)))
	for _, p := range presentations {
		encodePresentation(w, p)
	}

	loudness := m.LoudnessRecords()
	w.u16(uint16(len(loudness)))
	for _, l := range loudness {
		encodeLoudness(w, l)
	}

	updates := m.PendingUpdates()
	w.u32(uint32(len(updates)))
	for _, u := range updates {
		w.u8(u.TimeBlock)
		w.u16(uint16(u.Object))
		w.f64(u.X)
		w.f64(u.Y)
		w.f64(u.Z)
	}

	eeps := m.EAC3Records()
	w.u16(uint16(len(eeps)))
	for _, e := range eeps {
		encodeEAC3(w, e)
	}

	etds := m.ETDRecords()
	w.u16(uint16(len(etds)))
	for _, e := range etds {
		encodeETD(w, e)
	}

	if iat, ok := m.IAT(); ok {
		w.bool(true)
		encodeIAT(w, iat)
	} else {
		w.bool(false)
	}

	hed := m.HeadphoneElements()
	w.u16(uint16(len(hed)))
	for _, h := range hed {
		w.u16(uint16(h.Element))
		w.bool(h.HeadTracking)
		w.u8(h.RenderMode)
		w.u16(h.ChannelExclMask)
	}
}

func encodeBed(w *byteWriter, b model.Bed) {
	w.u16(uint16(b.ID))
	w.str(b.Name)
	w.u8(byte(b.Config))
	w.u8(byte(b.Type))
	w.u16(uint16(b.DerivedSource))
	w.u16(uint16(len(b.Sources)))
	for _, s := range b.Sources {
		w.u8(byte(s.Target))
		w.u8(byte(s.Signal))
		w.f64(s.GainDB)
	}
}

func encodeObject(w *byteWriter, o model.Object) {
	w.u16(uint16(o.ID))
	w.str(o.Name)
	w.u8(byte(o.Class))
	w.u8(byte(o.Source))
	w.f64(o.SourceGainDB)
	w.f64(o.X)
	w.f64(o.Y)
	w.f64(o.Z)
	w.f64(o.Size)
	w.bool(o.Size3D)
	w.bool(o.Diverge)
	w.bool(o.DynamicUpdates)
}

func encodePresentation(w *byteWriter, p model.Presentation) {
	w.u16(uint16(p.ID))
	w.str(p.Language)
	w.u8(byte(p.Config))
	w.u16(uint16(len(p.Elements)))
	for _, e := range p.Elements {
		w.u16(uint16(e))
	}
	w.u8(byte(len(p.Names)))
	for _, n := range p.Names {
		w.str(n.Language)
		w.str(n.Name)
	}
}

func encodeLoudness(w *byteWriter, l model.Loudness) {
	w.u16(uint16(l.Presentation))
	w.u8(byte(l.Practice))
	encodeOptFloat(w, l.HasRelativeGated, l.RelativeGatedLU)
	encodeOptFloat(w, l.HasSpeechGated, l.SpeechGatedLU)
	encodeOptFloat(w, l.HasShortTerm3s, l.ShortTerm3sLU)
	encodeOptFloat(w, l.HasShortTerm3sMax, l.ShortTerm3sMaxLU)
	encodeOptFloat(w, l.HasTruePeak, l.TruePeakDB)
	encodeOptFloat(w, l.HasTruePeakMax, l.TruePeakMaxDB)
	encodeOptFloat(w, l.HasMomentary, l.MomentaryLU)
	encodeOptFloat(w, l.HasMomentaryMax, l.MomentaryMaxLU)
	encodeOptFloat(w, l.HasLRA, l.LRA)
	w.bool(l.HasProgramBoundary)
	w.bool(l.ProgramBoundary)
	w.u8(byte(l.Correction))
	w.bool(l.HasDialgate)
	w.bool(l.Dialgate)
	w.bytes(l.Extension)
}

func encodeOptFloat(w *byteWriter, has bool, v float64) {
	w.bool(has)
	w.f64(v)
}

func encodeEAC3(w *byteWriter, e model.EAC3) {
	w.u8(byte(e.ID))
	if enc := e.Encoder; enc != nil {
		w.bool(true)
		w.u32(enc.DataRateKbps)
		w.u8(byte(enc.SurroundMode))
		w.u32(uint32(int32(enc.DialnormDB)))
		w.u8(byte(enc.BsMod))
		w.u8(byte(enc.PreferredDownmix))
	} else {
		w.bool(false)
	}
	if bs := e.Bitstream; bs != nil {
		w.bool(true)
		w.u8(byte(bs.CompressionMode))
		w.f64(bs.LtRtCenterDownmixLevel)
		w.f64(bs.LtRtSurroundDownmixLevel)
		w.f64(bs.LoRoCenterDownmixLevel)
		w.f64(bs.LoRoSurroundDownmixLevel)
	} else {
		w.bool(false)
	}
	if drc := e.DRC; drc != nil {
		w.bool(true)
		w.u32(uint32(int32(drc.LineMode)))
		w.u32(uint32(int32(drc.RFMode)))
	} else {
		w.bool(false)
	}
	w.u8(byte(len(e.Presentations)))
	for _, p := range e.Presentations {
		w.u16(uint16(p))
	}
}

func encodeETD(w *byteWriter, e model.ETD) {
	w.u8(byte(e.ID))
	w.bool(e.HasED2)
	if e.HasED2 {
		w.u8(byte(e.ED2FrameRate))
		encodePairs(w, e.ED2Pairs)
	}
	w.bool(e.HasDE)
	if e.HasDE {
		w.u8(byte(e.DEFrameRate))
		w.u8(byte(e.DEProgramConfig))
		encodePairs(w, e.DEPairs)
	}
}

func encodePairs(w *byteWriter, pairs []model.PresentationEEPPair) {
	w.u8(byte(len(pairs)))
	for _, p := range pairs {
		w.u16(uint16(p.Presentation))
		w.u8(byte(p.EEP))
	}
}

func encodeIAT(w *byteWriter, iat model.IAT) {
	w.u8(byte(iat.ContentID.Kind))
	switch iat.ContentID.Kind {
	case model.ContentIDUUID:
		w.buf = append(w.buf, iat.ContentID.UUID[:]...)
	case model.ContentIDEIDR:
		w.buf = append(w.buf, iat.ContentID.EIDR[:]...)
	case model.ContentIDAdID:
		w.buf = append(w.buf, iat.ContentID.AdID[:]...)
	case model.ContentIDRaw:
		w.bytes(iat.ContentID.Raw)
	}
	w.u8(byte(iat.DistributionID.Kind))
	switch iat.DistributionID.Kind {
	case model.DistributionIDATSC3:
		w.u16(iat.DistributionID.ATSC3.BSID)
		w.u16(iat.DistributionID.ATSC3.Major)
		w.u16(iat.DistributionID.ATSC3.Minor)
	case model.DistributionIDRaw:
		w.bytes(iat.DistributionID.Raw)
	}
	w.u64(iat.Timestamp)
	w.bool(iat.HasOffset)
	w.u16(iat.Offset)
	w.bool(iat.HasValidity)
	w.u16(iat.ValidityDur)
	w.bytes(iat.UserData)
	w.bytes(iat.Extension)
}
