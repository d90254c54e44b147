/*
NAME
  writer.go

DESCRIPTION
  writer.go emits a Model as an XML document equivalent to the KLV wire
  form: two-space indentation, a leading <?xml ...?> only at the
  document root, synthesized Presentation Config strings, XML-safe string
  escaping, and ascii/base16 cdata for raw byte identifiers.

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
	"bytes"
	"fmt"
	"strconv"

	"github.com/ausocean/pmd/identifiers"
	"github.com/ausocean/pmd/model"
)

// WriteOptions configures the writer's rendering choices that are not
// dictated by the model's own state.
type WriteOptions struct {
	// CoordPrecision is the number of fractional digits written for x/y/z
	// coordinates and sizes. Zero selects the default of 3.
	CoordPrecision int
}

func (o WriteOptions) precision() int {
	if o.CoordPrecision <= 0 {
		return 3
	}
	return o.CoordPrecision
}

// attr is one XML attribute.
type attr struct {
	name, value string
}

func a(name, value string) attr { return attr{name, value} }

// docWriter accumulates an indented XML document.
type docWriter struct {
	buf   bytes.Buffer
	depth int
}

func (w *docWriter) indent() {
	for i := 0; i < w.depth; i++ {
		w.buf.WriteString("  ")
	}
}

func (w *docWriter) writeAttrs(attrs []attr) {
	for _, at := range attrs {
		fmt.Fprintf(&w.buf, ` %s="%s"`, at.name, EscapeText(at.value))
	}
}

// open writes an opening tag and increases the indent depth.
func (w *docWriter) open(name string, attrs ...attr) {
	w.indent()
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.writeAttrs(attrs)
	w.buf.WriteString(">\n")
	w.depth++
}

// close decreases the indent depth and writes a closing tag.
func (w *docWriter) close(name string) {
	w.depth--
	w.indent()
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteString(">\n")
}

// selfClosing writes a single self-closed element with no children.
func (w *docWriter) selfClosing(name string, attrs ...attr) {
	w.indent()
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.writeAttrs(attrs)
	w.buf.WriteString("/>\n")
}

// textElement writes a one-line element with attributes and escaped text
// content.
func (w *docWriter) textElement(name, text string, attrs ...attr) {
	w.indent()
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.writeAttrs(attrs)
	w.buf.WriteString(">")
	w.buf.WriteString(EscapeText(text))
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteString(">\n")
}

// cdata writes a raw byte value as <Name><ascii>...</ascii></Name> or
// <Name><base16>...</base16></Name>.
func (w *docWriter) cdata(name string, data []byte) {
	enc, s := identifiers.EncodeRawCdata(data)
	w.open(name)
	if enc == identifiers.EncodingASCII {
		w.textElement("ascii", s)
	} else {
		w.textElement("base16", s)
	}
	w.close(name)
}

// Write renders m as a complete XML document.
func Write(m *model.Model, opts WriteOptions) []byte {
	var out []byte
	withCLocale(func() {
		w := &docWriter{}
		w.buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
		w.open("Smpte2109")
		writeContainerConfig(w, m)
		writeProfessionalMetadata(w, m, opts)
		w.close("Smpte2109")
		out = append([]byte(nil), w.buf.Bytes()...)
	})
	return out
}

func writeContainerConfig(w *docWriter, m *model.Model) {
	cc := m.Container()
	w.open("ContainerConfig", a("sampleOffset", strconv.FormatUint(uint64(cc.SampleOffset), 10)))
	for _, rm := range cc.DynamicTags {
		w.selfClosing("DynamicTag",
			a("localTag", strconv.Itoa(int(rm.LocalTag))),
			a("universalLabel", hexString(rm.UniversalLabel[:])),
		)
	}
	w.close("ContainerConfig")
}

func writeProfessionalMetadata(w *docWriter, m *model.Model, opts WriteOptions) {
	cc := m.Container()
	version := fmt.Sprintf("%d.%d", cc.Version.Major, cc.Version.Minor)
	attrs := []attr{a("version", version)}
	if cc.ProfileNumber != 0 || cc.ProfileLevel != 0 {
		attrs = append(attrs,
			a("profileNumber", strconv.Itoa(cc.ProfileNumber)),
			a("profileLevel", strconv.Itoa(cc.ProfileLevel)),
		)
	}
	w.open("ProfessionalMetadata", attrs...)

	if title := m.Title(); title != "" {
		w.textElement("Title", title)
	}
	writeSignals(w, m)
	writeElements(w, m, opts.precision())
	writePresentations(w, m)
	writeLoudness(w, m)
	writeEncoderConfigurations(w, m)
	writeDynamicUpdates(w, m, opts.precision())
	writeIAT(w, m)
	writeHeadphoneElements(w, m)

	w.close("ProfessionalMetadata")
}

func writeSignals(w *docWriter, m *model.Model) {
	w.open("AudioSignals")
	for _, id := range m.Signals() {
		w.selfClosing("Signal", a("id", strconv.Itoa(int(id))))
	}
	w.close("AudioSignals")
}

func writeElements(w *docWriter, m *model.Model, precision int) {
	w.open("AudioElements")
	for _, b := range m.Beds() {
		writeBed(w, b)
	}
	for _, o := range m.Objects() {
		writeObject(w, o, precision)
	}
	w.close("AudioElements")
}

func writeBed(w *docWriter, b model.Bed) {
	attrs := []attr{
		a("id", strconv.Itoa(int(b.ID))),
		a("config", b.Config.String()),
	}
	if b.Name != "" {
		attrs = append(attrs, a("name", b.Name))
	}
	if b.Type == model.BedDerived {
		attrs = append(attrs, a("derivedSource", strconv.Itoa(int(b.DerivedSource))))
	}
	w.open("AudioBed", attrs...)
	for _, s := range b.Sources {
		w.selfClosing("Source",
			a("speaker", s.Target.String()),
			a("signal", strconv.Itoa(int(s.Signal))),
			a("gain", formatGain(s.GainDB)),
		)
	}
	w.close("AudioBed")
}

func writeObject(w *docWriter, o model.Object, precisions ...int) {
	precision := 3
	if len(precisions) > 0 {
		precision = precisions[0]
	}
	attrs := []attr{
		a("id", strconv.Itoa(int(o.ID))),
		a("class", o.Class.String()),
		a("source", strconv.Itoa(int(o.Source))),
		a("sourceGain", formatGain(o.SourceGainDB)),
		a("x", formatCoord(o.X, precision)),
		a("y", formatCoord(o.Y, precision)),
		a("z", formatCoord(o.Z, precision)),
		a("size", formatCoord(o.Size, precision)),
		a("size3D", strconv.FormatBool(o.Size3D)),
		a("diverge", strconv.FormatBool(o.Diverge)),
		a("dynamicUpdates", strconv.FormatBool(o.DynamicUpdates)),
	}
	if o.Name != "" {
		attrs = append(attrs, a("name", o.Name))
	}
	w.selfClosing("AudioObject", attrs...)
}

func writePresentations(w *docWriter, m *model.Model) {
	w.open("Presentations")
	for _, p := range m.Presentations() {
		counts, _ := m.ClassCounts(p)
		config := SynthesizeConfigString(p.Config, counts)
		w.open("Presentation",
			a("id", strconv.Itoa(int(p.ID))),
			a("language", p.Language),
			a("config", config),
		)
		for _, eid := range p.Elements {
			w.selfClosing("Element", a("id", strconv.Itoa(int(eid))))
		}
		for _, n := range p.Names {
			w.textElement("Name", n.Name, a("language", n.Language))
		}
		w.close("Presentation")
	}
	w.close("Presentations")
}

func writeLoudness(w *docWriter, m *model.Model) {
	records := m.LoudnessRecords()
	if len(records) == 0 {
		return
	}
	w.open("PresentationLoudness")
	for _, l := range records {
		attrs := []attr{
			a("presentation", strconv.Itoa(int(l.Presentation))),
			a("practice", l.Practice.String()),
		}
		if l.Correction != model.CorrectionNotIndicated {
			attrs = append(attrs, a("correction", correctionName(l.Correction)))
		}
		w.open("Loudness", attrs...)
		writeLoudnessField(w, "RelativeGated", l.HasRelativeGated, l.RelativeGatedLU)
		writeLoudnessField(w, "SpeechGated", l.HasSpeechGated, l.SpeechGatedLU)
		writeLoudnessField(w, "ShortTerm3s", l.HasShortTerm3s, l.ShortTerm3sLU)
		writeLoudnessField(w, "ShortTerm3sMax", l.HasShortTerm3sMax, l.ShortTerm3sMaxLU)
		writeLoudnessField(w, "TruePeak", l.HasTruePeak, l.TruePeakDB)
		writeLoudnessField(w, "TruePeakMax", l.HasTruePeakMax, l.TruePeakMaxDB)
		writeLoudnessField(w, "Momentary", l.HasMomentary, l.MomentaryLU)
		writeLoudnessField(w, "MomentaryMax", l.HasMomentaryMax, l.MomentaryMaxLU)
		writeLoudnessField(w, "LRA", l.HasLRA, l.LRA)
		if l.HasProgramBoundary {
			w.textElement("ProgramBoundary", strconv.FormatBool(l.ProgramBoundary))
		}
		if l.HasDialgate {
			w.textElement("Dialgate", strconv.FormatBool(l.Dialgate))
		}
		if len(l.Extension) > 0 {
			w.cdata("Extension", l.Extension)
		}
		w.close("Loudness")
	}
	w.close("PresentationLoudness")
}

func writeLoudnessField(w *docWriter, name string, has bool, v float64) {
	if !has {
		return
	}
	w.textElement(name, strconv.FormatFloat(v, 'f', 1, 64))
}

func correctionName(c model.CorrectionType) string {
	switch c {
	case model.CorrectionFileBased:
		return "FileBased"
	case model.CorrectionRealtime:
		return "Realtime"
	default:
		return "NotIndicated"
	}
}

func writeEncoderConfigurations(w *docWriter, m *model.Model) {
	eeps := m.EAC3Records()
	etds := m.ETDRecords()
	if len(eeps) == 0 && len(etds) == 0 {
		return
	}
	w.open("EncoderConfigurations")
	for _, e := range eeps {
		writeEAC3(w, e)
	}
	for _, e := range etds {
		writeETD(w, e)
	}
	w.close("EncoderConfigurations")
}

func writeEAC3(w *docWriter, e model.EAC3) {
	w.open("Eac3EncodingParameters", a("id", strconv.Itoa(int(e.ID))))
	if enc := e.Encoder; enc != nil {
		w.selfClosing("Encoder",
			a("dataRateKbps", strconv.FormatUint(uint64(enc.DataRateKbps), 10)),
			a("surroundMode", enc.SurroundMode.String()),
			a("dialnorm", strconv.Itoa(enc.DialnormDB)),
			a("bsMod", enc.BsMod.String()),
			a("preferredDownmix", enc.PreferredDownmix.String()),
		)
	}
	if bs := e.Bitstream; bs != nil {
		w.selfClosing("Bitstream",
			a("compressionMode", bs.CompressionMode.String()),
			a("ltRtCenter", formatGain(bs.LtRtCenterDownmixLevel)),
			a("ltRtSurround", formatGain(bs.LtRtSurroundDownmixLevel)),
			a("loRoCenter", formatGain(bs.LoRoCenterDownmixLevel)),
			a("loRoSurround", formatGain(bs.LoRoSurroundDownmixLevel)),
		)
	}
	if drc := e.DRC; drc != nil {
		w.selfClosing("DRC",
			a("lineMode", strconv.Itoa(drc.LineMode)),
			a("rfMode", strconv.Itoa(drc.RFMode)),
		)
	}
	for _, pid := range e.Presentations {
		w.selfClosing("Presentation", a("id", strconv.Itoa(int(pid))))
	}
	w.close("Eac3EncodingParameters")
}

func writeETD(w *docWriter, e model.ETD) {
	w.open("ED2Turnaround", a("id", strconv.Itoa(int(e.ID))))
	if e.HasED2 {
		w.open("ED2", a("frameRate", e.ED2FrameRate.String()))
		writePairs(w, e.ED2Pairs)
		w.close("ED2")
	}
	if e.HasDE {
		w.open("DE",
			a("frameRate", e.DEFrameRate.String()),
			a("programConfig", e.DEProgramConfig.String()),
		)
		writePairs(w, e.DEPairs)
		w.close("DE")
	}
	w.close("ED2Turnaround")
}

func writePairs(w *docWriter, pairs []model.PresentationEEPPair) {
	for _, p := range pairs {
		w.selfClosing("Pair",
			a("presentation", strconv.Itoa(int(p.Presentation))),
			a("eep", strconv.Itoa(int(p.EEP))),
		)
	}
}

func writeDynamicUpdates(w *docWriter, m *model.Model, precision int) {
	updates := m.PendingUpdates()
	if len(updates) == 0 {
		return
	}
	w.open("DynamicUpdate")
	for _, u := range updates {
		w.selfClosing("Update",
			a("object", strconv.Itoa(int(u.Object))),
			a("timeBlock", strconv.Itoa(int(u.TimeBlock))),
			a("x", formatCoord(u.X, precision)),
			a("y", formatCoord(u.Y, precision)),
			a("z", formatCoord(u.Z, precision)),
		)
	}
	w.close("DynamicUpdate")
}

func writeIAT(w *docWriter, m *model.Model) {
	iat, ok := m.IAT()
	if !ok {
		return
	}
	attrs := []attr{a("timestamp", strconv.FormatUint(iat.Timestamp, 10))}
	if iat.HasOffset {
		attrs = append(attrs, a("offset", strconv.Itoa(int(iat.Offset))))
	}
	if iat.HasValidity {
		attrs = append(attrs, a("validityDuration", strconv.Itoa(int(iat.ValidityDur))))
	}
	w.open("IAT", attrs...)
	writeContentID(w, iat.ContentID)
	writeDistributionID(w, iat.DistributionID)
	if len(iat.UserData) > 0 {
		w.cdata("UserData", iat.UserData)
	}
	if len(iat.Extension) > 0 {
		w.cdata("Extension", iat.Extension)
	}
	w.close("IAT")
}

func writeContentID(w *docWriter, c model.ContentID) {
	switch c.Kind {
	case model.ContentIDUUID:
		w.textElement("ContentID", identifiers.FormatUUID(c.UUID), a("kind", "uuid"))
	case model.ContentIDEIDR:
		w.textElement("ContentID", identifiers.FormatEIDR(c.EIDR), a("kind", "eidr"))
	case model.ContentIDAdID:
		w.textElement("ContentID", identifiers.FormatAdID(c.AdID), a("kind", "adid"))
	case model.ContentIDRaw:
		w.open("ContentID", a("kind", "raw"))
		w.cdata("Raw", c.Raw)
		w.close("ContentID")
	}
}

func writeDistributionID(w *docWriter, d model.DistributionID) {
	switch d.Kind {
	case model.DistributionIDATSC3:
		w.selfClosing("DistributionID",
			a("kind", "atsc3"),
			a("bsid", strconv.Itoa(int(d.ATSC3.BSID))),
			a("major", strconv.Itoa(int(d.ATSC3.Major))),
			a("minor", strconv.Itoa(int(d.ATSC3.Minor))),
		)
	case model.DistributionIDRaw:
		w.open("DistributionID", a("kind", "raw"))
		w.cdata("Raw", d.Raw)
		w.close("DistributionID")
	}
}

func writeHeadphoneElements(w *docWriter, m *model.Model) {
	hed := m.HeadphoneElements()
	if len(hed) == 0 {
		return
	}
	w.open("HeadphoneElements")
	for _, h := range hed {
		w.selfClosing("HeadphoneElement",
			a("element", strconv.Itoa(int(h.Element))),
			a("headTracking", strconv.FormatBool(h.HeadTracking)),
			a("renderMode", strconv.Itoa(int(h.RenderMode))),
			a("channelExclMask", strconv.Itoa(int(h.ChannelExclMask))),
		)
	}
	w.close("HeadphoneElements")
}

func hexString(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0xf]
	}
	return string(out)
}
