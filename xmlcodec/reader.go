/*
NAME
  reader.go

DESCRIPTION
  reader.go implements a streaming reader for the sADM-like XML dialect:
  a recursive-descent walker over Go's standard streaming XML tokenizer
  (no third-party streaming XML tokenizer appears anywhere in the example
  pack, so this is the one concern left on the standard library -- see
  DESIGN.md), with an explicit tag stack bounding nesting depth,
  entity/UTF-8 validated strings, enumerated-field validation, and the
  Presentation Config cross-check.

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
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/ausocean/pmd/identifiers"
	"github.com/ausocean/pmd/model"
)

// ReadOptions configures the reader's validation behavior.
type ReadOptions struct {
	// Strict, when true, makes a Presentation Config mismatch fatal.
	// When false, the mismatch is reported through ErrorCallback (if set)
	// and decoding continues using the actual element mix.
	Strict bool

	// BitstreamMajor is the expected bitstream major version. A document
	// declaring a different major version is rejected, unless
	// SkipVersionCheck is set.
	BitstreamMajor byte

	// SkipVersionCheck disables the bitstream version gate. Intended for
	// test code only.
	SkipVersionCheck bool

	// ErrorCallback, if set, receives one call per warning or error.
	ErrorCallback ErrorCallback
}

// reader holds the state of one Read call.
type reader struct {
	dec   *xml.Decoder
	data  []byte
	opts  ReadOptions
	m     *model.Model
	stack []string

	// pendingConfig defers the cross-check of each presentation's config
	// string until every element has been linked, mirroring the KLV
	// codec's APD/APN buffering.
	pendingConfig []pendingPresentationConfig
}

type pendingPresentationConfig struct {
	presentation model.Presentation
	parsed       parsedConfigString
}

// Read parses an XML document into m, replacing m's current state entity by
// entity as each element is decoded (existing entities not touched by the
// document are left alone, mirroring the KLV decoder's merge semantics).
func Read(data []byte, m *model.Model, opts ReadOptions) error {
	r := &reader{
		dec:  xml.NewDecoder(bytes.NewReader(data)),
		data: data,
		opts: opts,
		m:    m,
	}
	se, err := r.expectStart()
	if err != nil {
		return err
	}
	if se.Name.Local != "Smpte2109" {
		return r.fail(ErrMalformedXML)
	}
	if err := r.pushTag("Smpte2109"); err != nil {
		return err
	}
	if err := r.readSmpte2109(); err != nil {
		return err
	}
	r.popTag()
	return r.resolvePresentationConfigs()
}

// line returns the 1-indexed line number of the reader's current position.
func (r *reader) line() int {
	off := int(r.dec.InputOffset())
	if off > len(r.data) {
		off = len(r.data)
	}
	return 1 + bytes.Count(r.data[:off], []byte{'\n'})
}

// path returns the current tag-stack path, e.g. "Smpte2109/ProfessionalMetadata".
func (r *reader) path() string {
	return strings.Join(r.stack, "/")
}

// fail reports err through ErrorCallback (if set) and returns it.
func (r *reader) fail(err error) error {
	if r.opts.ErrorCallback != nil {
		r.opts.ErrorCallback(r.line(), r.path(), err)
	}
	return err
}

// warn reports err through ErrorCallback without failing the read.
func (r *reader) warn(err error) {
	if r.opts.ErrorCallback != nil {
		r.opts.ErrorCallback(r.line(), r.path(), err)
	}
}

func (r *reader) pushTag(name string) error {
	if len(r.stack) >= maxTagDepth {
		return r.fail(ErrTagStackOverflow)
	}
	r.stack = append(r.stack, name)
	return nil
}

func (r *reader) popTag() {
	r.stack = r.stack[:len(r.stack)-1]
}

// expectStart reads the next token, skipping non-semantic tokens
// (processing instructions, comments, whitespace chardata), and requires it
// to be a StartElement.
func (r *reader) expectStart() (xml.StartElement, error) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return xml.StartElement{}, r.fail(ErrMalformedXML)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t.Copy(), nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return xml.StartElement{}, r.fail(ErrMalformedXML)
			}
		case xml.EndElement:
			return xml.StartElement{}, r.fail(ErrMalformedXML)
		}
	}
}

// childDispatch maps a local element name to a handler invoked with that
// element's StartElement token; the handler must consume exactly through
// the matching EndElement.
type childDispatch map[string]func(xml.StartElement) error

// readChildren reads tokens until the EndElement matching the currently
// open tag (the caller must have already pushTag'd it), dispatching
// StartElements via dispatch. Unrecognized elements are skipped.
func (r *reader) readChildren(dispatch childDispatch) error {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return r.fail(ErrMalformedXML)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			se := t.Copy()
			fn, ok := dispatch[se.Name.Local]
			if !ok {
				if err := r.skipElement(); err != nil {
					return err
				}
				continue
			}
			if err := r.pushTag(se.Name.Local); err != nil {
				return err
			}
			if err := fn(se); err != nil {
				return err
			}
			r.popTag()
		case xml.EndElement:
			return nil
		case xml.CharData:
			// Ignore inter-element whitespace at container levels.
		}
	}
}

// skipElement discards an entire unrecognized element (already consumed as
// a StartElement) through its matching EndElement.
func (r *reader) skipElement() error {
	depth := 1
	for depth > 0 {
		tok, err := r.dec.Token()
		if err != nil {
			return r.fail(ErrMalformedXML)
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// readText reads character data up to the matching EndElement and returns
// it, UTF-8-range-validated. The element must have no child elements.
func (r *reader) readText() (string, error) {
	var b strings.Builder
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return "", r.fail(ErrMalformedXML)
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			s := b.String()
			if err := ValidateUTF8(s); err != nil {
				return "", r.fail(err)
			}
			return s, nil
		case xml.StartElement:
			return "", r.fail(ErrMalformedXML)
		}
	}
}

func attrVal(se xml.StartElement, name string) (string, bool) {
	for _, at := range se.Attr {
		if at.Name.Local == name {
			return at.Value, true
		}
	}
	return "", false
}

func (r *reader) requireAttr(se xml.StartElement, name string) (string, error) {
	v, ok := attrVal(se, name)
	if !ok {
		return "", r.fail(ErrMissingAttribute)
	}
	return v, nil
}

func (r *reader) attrUint(se xml.StartElement, name string) (uint64, error) {
	s, err := r.requireAttr(se, name)
	if err != nil {
		return 0, err
	}
	v, perr := strconv.ParseUint(s, 10, 64)
	if perr != nil {
		return 0, r.fail(ErrMalformedXML)
	}
	return v, nil
}

func (r *reader) attrInt(se xml.StartElement, name string) (int64, error) {
	s, err := r.requireAttr(se, name)
	if err != nil {
		return 0, err
	}
	v, perr := strconv.ParseInt(s, 10, 64)
	if perr != nil {
		return 0, r.fail(ErrMalformedXML)
	}
	return v, nil
}

func (r *reader) attrBool(se xml.StartElement, name string, def bool) (bool, error) {
	s, ok := attrVal(se, name)
	if !ok {
		return def, nil
	}
	v, perr := strconv.ParseBool(s)
	if perr != nil {
		return false, r.fail(ErrMalformedXML)
	}
	return v, nil
}

func (r *reader) readSmpte2109() error {
	return r.readChildren(childDispatch{
		"ContainerConfig":       r.readContainerConfig,
		"ProfessionalMetadata":  r.readProfessionalMetadata,
	})
}

func (r *reader) readContainerConfig(se xml.StartElement) error {
	if s, ok := attrVal(se, "sampleOffset"); ok {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return r.fail(ErrMalformedXML)
		}
		r.m.SetSampleOffset(uint32(v))
	}
	return r.readChildren(childDispatch{
		"DynamicTag": func(se xml.StartElement) error {
			tagStr, err := r.requireAttr(se, "localTag")
			if err != nil {
				return err
			}
			tagVal, perr := strconv.ParseUint(tagStr, 10, 8)
			if perr != nil {
				return r.fail(ErrMalformedXML)
			}
			labelStr, err := r.requireAttr(se, "universalLabel")
			if err != nil {
				return err
			}
			label, err := decodeHexLabel(labelStr)
			if err != nil {
				return r.fail(err)
			}
			if err := r.m.SetDynamicTagRemap(model.DynamicTagRemap{
				LocalTag:       byte(tagVal),
				UniversalLabel: label,
			}); err != nil {
				return r.fail(err)
			}
			return r.skipElement()
		},
	})
}

func decodeHexLabel(s string) ([16]byte, error) {
	var out [16]byte
	if len(s) != 32 {
		return out, ErrMalformedXML
	}
	for i := 0; i < 16; i++ {
		hi, ok1 := hexDigit(s[i*2])
		lo, ok2 := hexDigit(s[i*2+1])
		if !ok1 || !ok2 {
			return out, ErrMalformedXML
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

func (r *reader) readProfessionalMetadata(se xml.StartElement) error {
	version, err := r.requireAttr(se, "version")
	if err != nil {
		return err
	}
	major, minor, err := parseVersion(version)
	if err != nil {
		return r.fail(err)
	}
	if !r.opts.SkipVersionCheck && major != r.opts.BitstreamMajor {
		return r.fail(ErrVersionMismatch)
	}
	r.m.SetBitstreamVersion(model.BitstreamVersion{Major: major, Minor: minor})

	if pn, ok := attrVal(se, "profileNumber"); ok {
		if pl, ok2 := attrVal(se, "profileLevel"); ok2 {
			number, e1 := strconv.Atoi(pn)
			level, e2 := strconv.Atoi(pl)
			if e1 != nil || e2 != nil {
				return r.fail(ErrMalformedXML)
			}
			if err := r.m.SetProfile(number, level); err != nil {
				return r.fail(err)
			}
		}
	}

	return r.readChildren(childDispatch{
		"Title": func(se xml.StartElement) error {
			s, err := r.readText()
			if err != nil {
				return err
			}
			r.m.SetTitle(s)
			return nil
		},
		"AudioSignals":           r.readAudioSignals,
		"AudioElements":          r.readAudioElements,
		"Presentations":          r.readPresentations,
		"PresentationLoudness":   r.readPresentationLoudness,
		"EncoderConfigurations":  r.readEncoderConfigurations,
		"DynamicUpdate":          r.readDynamicUpdate,
		"IAT":                    r.readIAT,
		"HeadphoneElements":      r.readHeadphoneElements,
	})
}

func parseVersion(s string) (major, minor byte, err error) {
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return 0, 0, ErrMalformedXML
	}
	maj, e1 := strconv.ParseUint(parts[0], 10, 8)
	min, e2 := strconv.ParseUint(parts[1], 10, 8)
	if e1 != nil || e2 != nil {
		return 0, 0, ErrMalformedXML
	}
	return byte(maj), byte(min), nil
}

func (r *reader) readAudioSignals(se xml.StartElement) error {
	return r.readChildren(childDispatch{
		"Signal": func(se xml.StartElement) error {
			id, err := r.attrUint(se, "id")
			if err != nil {
				return err
			}
			if err := r.m.AddSignal(model.SignalID(id)); err != nil {
				return r.fail(err)
			}
			return r.skipElement()
		},
	})
}

func (r *reader) readAudioElements(se xml.StartElement) error {
	return r.readChildren(childDispatch{
		"AudioBed":    r.readAudioBed,
		"AudioObject": r.readAudioObject,
	})
}

func (r *reader) readAudioBed(se xml.StartElement) error {
	id, err := r.attrUint(se, "id")
	if err != nil {
		return err
	}
	configStr, err := r.requireAttr(se, "config")
	if err != nil {
		return err
	}
	config, ok := model.ConfigFromString(configStr)
	if !ok {
		return r.fail(ErrInvalidEnum)
	}
	b := model.Bed{ID: model.ElementID(id), Config: config}
	if name, ok := attrVal(se, "name"); ok {
		b.Name = name
	}
	if src, ok := attrVal(se, "derivedSource"); ok {
		v, perr := strconv.ParseUint(src, 10, 16)
		if perr != nil {
			return r.fail(ErrMalformedXML)
		}
		b.Type = model.BedDerived
		b.DerivedSource = model.ElementID(v)
	}
	err = r.readChildren(childDispatch{
		"Source": func(se xml.StartElement) error {
			spStr, err := r.requireAttr(se, "speaker")
			if err != nil {
				return err
			}
			sp, ok := model.SpeakerFromString(spStr)
			if !ok {
				return r.fail(ErrInvalidEnum)
			}
			sig, err := r.attrUint(se, "signal")
			if err != nil {
				return err
			}
			gainStr, err := r.requireAttr(se, "gain")
			if err != nil {
				return err
			}
			gain, perr := parseGain(gainStr)
			if perr != nil {
				return r.fail(perr)
			}
			b.Sources = append(b.Sources, model.BedSource{
				Target: sp, Signal: model.SignalID(sig), GainDB: gain,
			})
			return r.skipElement()
		},
	})
	if err != nil {
		return err
	}
	if err := r.m.SetBed(b); err != nil {
		return r.fail(err)
	}
	return nil
}

func (r *reader) readAudioObject(se xml.StartElement) error {
	id, err := r.attrUint(se, "id")
	if err != nil {
		return err
	}
	classStr, err := r.requireAttr(se, "class")
	if err != nil {
		return err
	}
	class, ok := model.ObjectClassFromString(classStr)
	if !ok {
		return r.fail(ErrInvalidEnum)
	}
	source, err := r.attrUint(se, "source")
	if err != nil {
		return err
	}
	o := model.Object{ID: model.ElementID(id), Class: class, Source: model.SignalID(source)}
	if name, ok := attrVal(se, "name"); ok {
		o.Name = name
	}
	if s, ok := attrVal(se, "sourceGain"); ok {
		g, perr := parseGain(s)
		if perr != nil {
			return r.fail(perr)
		}
		o.SourceGainDB = g
	}
	if o.X, err = r.attrCoord(se, "x"); err != nil {
		return err
	}
	if o.Y, err = r.attrCoord(se, "y"); err != nil {
		return err
	}
	if o.Z, err = r.attrCoord(se, "z"); err != nil {
		return err
	}
	if o.Size, err = r.attrCoord(se, "size"); err != nil {
		return err
	}
	if o.Size3D, err = r.attrBool(se, "size3D", false); err != nil {
		return err
	}
	if o.Diverge, err = r.attrBool(se, "diverge", false); err != nil {
		return err
	}
	if o.DynamicUpdates, err = r.attrBool(se, "dynamicUpdates", false); err != nil {
		return err
	}
	if err := r.m.SetObject(o); err != nil {
		return r.fail(err)
	}
	return r.skipElement()
}

func (r *reader) attrCoord(se xml.StartElement, name string) (float64, error) {
	s, err := r.requireAttr(se, name)
	if err != nil {
		return 0, err
	}
	v, perr := parseCoord(s)
	if perr != nil {
		return 0, r.fail(perr)
	}
	return v, nil
}

func (r *reader) readPresentations(se xml.StartElement) error {
	return r.readChildren(childDispatch{
		"Presentation": r.readPresentation,
	})
}

func (r *reader) readPresentation(se xml.StartElement) error {
	id, err := r.attrUint(se, "id")
	if err != nil {
		return err
	}
	lang, err := r.requireAttr(se, "language")
	if err != nil {
		return err
	}
	configStr, err := r.requireAttr(se, "config")
	if err != nil {
		return err
	}
	parsed, perr := ParseConfigString(configStr)
	if perr != nil {
		return r.fail(perr)
	}

	p := model.Presentation{
		ID:       model.PresentationID(id),
		Language: lang,
		Config:   parsed.SpeakerConfig,
	}
	err = r.readChildren(childDispatch{
		"Element": func(se xml.StartElement) error {
			eid, err := r.attrUint(se, "id")
			if err != nil {
				return err
			}
			p.Elements = append(p.Elements, model.ElementID(eid))
			return r.skipElement()
		},
		"Name": func(se xml.StartElement) error {
			lang, err := r.requireAttr(se, "language")
			if err != nil {
				return err
			}
			text, err := r.readText()
			if err != nil {
				return err
			}
			p.Names = append(p.Names, model.PresentationName{Language: lang, Name: text})
			return nil
		},
	})
	if err != nil {
		return err
	}
	r.pendingConfig = append(r.pendingConfig, pendingPresentationConfig{presentation: p, parsed: parsed})
	return nil
}

// resolvePresentationConfigs commits every buffered presentation, cross-
// checking its Presentation Config string against the element mix now that
// every element referenced anywhere in the document has been linked to it.
func (r *reader) resolvePresentationConfigs() error {
	for _, pc := range r.pendingConfig {
		if err := r.m.SetPresentation(pc.presentation); err != nil {
			return r.fail(err)
		}
		counts, _ := r.m.ClassCounts(pc.presentation) // hasBed unused here
		if err := CrossCheckConfigString(pc.parsed, pc.presentation.Config, counts); err != nil {
			if r.opts.Strict {
				return r.fail(err)
			}
			r.warn(err)
		}
	}
	return nil
}

func (r *reader) readPresentationLoudness(se xml.StartElement) error {
	return r.readChildren(childDispatch{
		"Loudness": r.readLoudness,
	})
}

func (r *reader) readLoudness(se xml.StartElement) error {
	pid, err := r.attrUint(se, "presentation")
	if err != nil {
		return err
	}
	practiceStr, err := r.requireAttr(se, "practice")
	if err != nil {
		return err
	}
	practice, ok := model.LoudnessPracticeFromString(practiceStr)
	if !ok {
		return r.fail(ErrInvalidEnum)
	}
	l := model.Loudness{Presentation: model.PresentationID(pid), Practice: practice}
	if s, ok := attrVal(se, "correction"); ok {
		switch s {
		case "FileBased":
			l.Correction = model.CorrectionFileBased
		case "Realtime":
			l.Correction = model.CorrectionRealtime
		case "NotIndicated":
			l.Correction = model.CorrectionNotIndicated
		default:
			return r.fail(ErrInvalidEnum)
		}
	}
	err = r.readChildren(childDispatch{
		"RelativeGated":    loudnessFieldReader(r, &l.HasRelativeGated, &l.RelativeGatedLU),
		"SpeechGated":      loudnessFieldReader(r, &l.HasSpeechGated, &l.SpeechGatedLU),
		"ShortTerm3s":      loudnessFieldReader(r, &l.HasShortTerm3s, &l.ShortTerm3sLU),
		"ShortTerm3sMax":   loudnessFieldReader(r, &l.HasShortTerm3sMax, &l.ShortTerm3sMaxLU),
		"TruePeak":         loudnessFieldReader(r, &l.HasTruePeak, &l.TruePeakDB),
		"TruePeakMax":      loudnessFieldReader(r, &l.HasTruePeakMax, &l.TruePeakMaxDB),
		"Momentary":        loudnessFieldReader(r, &l.HasMomentary, &l.MomentaryLU),
		"MomentaryMax":     loudnessFieldReader(r, &l.HasMomentaryMax, &l.MomentaryMaxLU),
		"LRA":              loudnessFieldReader(r, &l.HasLRA, &l.LRA),
		"ProgramBoundary": func(se xml.StartElement) error {
			s, err := r.readText()
			if err != nil {
				return err
			}
			v, perr := strconv.ParseBool(s)
			if perr != nil {
				return r.fail(ErrMalformedXML)
			}
			l.HasProgramBoundary = true
			l.ProgramBoundary = v
			return nil
		},
		"Dialgate": func(se xml.StartElement) error {
			s, err := r.readText()
			if err != nil {
				return err
			}
			v, perr := strconv.ParseBool(s)
			if perr != nil {
				return r.fail(ErrMalformedXML)
			}
			l.HasDialgate = true
			l.Dialgate = v
			return nil
		},
		"Extension": func(se xml.StartElement) error {
			b, err := r.readCdata()
			if err != nil {
				return err
			}
			l.Extension = b
			return nil
		},
	})
	if err != nil {
		return err
	}
	if err := r.m.SetLoudness(l); err != nil {
		return r.fail(err)
	}
	return nil
}

// loudnessFieldReader returns a childDispatch handler that parses a decimal
// text element into *has/*val.
func loudnessFieldReader(r *reader, has *bool, val *float64) func(xml.StartElement) error {
	return func(se xml.StartElement) error {
		s, err := r.readText()
		if err != nil {
			return err
		}
		v, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return r.fail(ErrMalformedXML)
		}
		*has = true
		*val = v
		return nil
	}
}

// readCdata reads a <ascii>...</ascii> or <base16>...</base16> child and
// decodes it to raw bytes.
func (r *reader) readCdata() ([]byte, error) {
	var out []byte
	err := r.readChildren(childDispatch{
		"ascii": func(se xml.StartElement) error {
			s, err := r.readText()
			if err != nil {
				return err
			}
			b, derr := identifiers.DecodeRawCdata(identifiers.EncodingASCII, s)
			if derr != nil {
				return r.fail(derr)
			}
			out = b
			return nil
		},
		"base16": func(se xml.StartElement) error {
			s, err := r.readText()
			if err != nil {
				return err
			}
			b, derr := identifiers.DecodeRawCdata(identifiers.EncodingBase16, s)
			if derr != nil {
				return r.fail(derr)
			}
			out = b
			return nil
		},
	})
	return out, err
}

func (r *reader) readEncoderConfigurations(se xml.StartElement) error {
	return r.readChildren(childDispatch{
		"Eac3EncodingParameters": r.readEAC3,
		"ED2Turnaround":          r.readETD,
	})
}

func (r *reader) readEAC3(se xml.StartElement) error {
	id, err := r.attrUint(se, "id")
	if err != nil {
		return err
	}
	e := model.EAC3{ID: model.EEPID(id)}
	err = r.readChildren(childDispatch{
		"Encoder": func(se xml.StartElement) error {
			var enc model.EncoderParams
			rate, err := r.attrUint(se, "dataRateKbps")
			if err != nil {
				return err
			}
			enc.DataRateKbps = uint32(rate)
			smStr, err := r.requireAttr(se, "surroundMode")
			if err != nil {
				return err
			}
			sm, ok := model.SurroundModeFromString(smStr)
			if !ok {
				return r.fail(ErrInvalidEnum)
			}
			enc.SurroundMode = sm
			dn, err := r.attrInt(se, "dialnorm")
			if err != nil {
				return err
			}
			enc.DialnormDB = int(dn)
			bmStr, err := r.requireAttr(se, "bsMod")
			if err != nil {
				return err
			}
			bm, ok := model.BsModFromString(bmStr)
			if !ok {
				return r.fail(ErrInvalidEnum)
			}
			enc.BsMod = bm
			pdStr, err := r.requireAttr(se, "preferredDownmix")
			if err != nil {
				return err
			}
			pd, ok := model.PreferredDownmixFromString(pdStr)
			if !ok {
				return r.fail(ErrInvalidEnum)
			}
			enc.PreferredDownmix = pd
			e.Encoder = &enc
			return r.skipElement()
		},
		"Bitstream": func(se xml.StartElement) error {
			var bs model.BitstreamParams
			cmStr, err := r.requireAttr(se, "compressionMode")
			if err != nil {
				return err
			}
			cm, ok := model.CompressionModeFromString(cmStr)
			if !ok {
				return r.fail(ErrInvalidEnum)
			}
			bs.CompressionMode = cm
			for attrName, dst := range map[string]*float64{
				"ltRtCenter":   &bs.LtRtCenterDownmixLevel,
				"ltRtSurround": &bs.LtRtSurroundDownmixLevel,
				"loRoCenter":   &bs.LoRoCenterDownmixLevel,
				"loRoSurround": &bs.LoRoSurroundDownmixLevel,
			} {
				s, err := r.requireAttr(se, attrName)
				if err != nil {
					return err
				}
				v, perr := parseGain(s)
				if perr != nil {
					return r.fail(perr)
				}
				*dst = v
			}
			e.Bitstream = &bs
			return r.skipElement()
		},
		"DRC": func(se xml.StartElement) error {
			var drc model.DRCParams
			lm, err := r.attrInt(se, "lineMode")
			if err != nil {
				return err
			}
			rf, err := r.attrInt(se, "rfMode")
			if err != nil {
				return err
			}
			drc.LineMode, drc.RFMode = int(lm), int(rf)
			e.DRC = &drc
			return r.skipElement()
		},
		"Presentation": func(se xml.StartElement) error {
			pid, err := r.attrUint(se, "id")
			if err != nil {
				return err
			}
			e.Presentations = append(e.Presentations, model.PresentationID(pid))
			return r.skipElement()
		},
	})
	if err != nil {
		return err
	}
	if err := r.m.SetEAC3(e); err != nil {
		return r.fail(err)
	}
	return nil
}

func (r *reader) readETD(se xml.StartElement) error {
	id, err := r.attrUint(se, "id")
	if err != nil {
		return err
	}
	e := model.ETD{ID: model.ETDID(id)}
	err = r.readChildren(childDispatch{
		"ED2": func(se xml.StartElement) error {
			frStr, err := r.requireAttr(se, "frameRate")
			if err != nil {
				return err
			}
			fr, ok := model.FrameRateFromString(frStr)
			if !ok {
				return r.fail(ErrInvalidEnum)
			}
			e.HasED2 = true
			e.ED2FrameRate = fr
			return r.readPairs(&e.ED2Pairs)
		},
		"DE": func(se xml.StartElement) error {
			frStr, err := r.requireAttr(se, "frameRate")
			if err != nil {
				return err
			}
			fr, ok := model.FrameRateFromString(frStr)
			if !ok {
				return r.fail(ErrInvalidEnum)
			}
			pcStr, err := r.requireAttr(se, "programConfig")
			if err != nil {
				return err
			}
			pc, ok := model.DEProgramConfigFromString(pcStr)
			if !ok {
				return r.fail(ErrInvalidEnum)
			}
			e.HasDE = true
			e.DEFrameRate = fr
			e.DEProgramConfig = pc
			return r.readPairs(&e.DEPairs)
		},
	})
	if err != nil {
		return err
	}
	if err := r.m.SetETD(e); err != nil {
		return r.fail(err)
	}
	return nil
}

func (r *reader) readPairs(out *[]model.PresentationEEPPair) error {
	return r.readChildren(childDispatch{
		"Pair": func(se xml.StartElement) error {
			pid, err := r.attrUint(se, "presentation")
			if err != nil {
				return err
			}
			eep, err := r.attrUint(se, "eep")
			if err != nil {
				return err
			}
			*out = append(*out, model.PresentationEEPPair{
				Presentation: model.PresentationID(pid),
				EEP:          model.EEPID(eep),
			})
			return r.skipElement()
		},
	})
}

func (r *reader) readDynamicUpdate(se xml.StartElement) error {
	return r.readChildren(childDispatch{
		"Update": func(se xml.StartElement) error {
			obj, err := r.attrUint(se, "object")
			if err != nil {
				return err
			}
			tb, err := r.attrUint(se, "timeBlock")
			if err != nil {
				return err
			}
			x, err := r.attrCoord(se, "x")
			if err != nil {
				return err
			}
			y, err := r.attrCoord(se, "y")
			if err != nil {
				return err
			}
			z, err := r.attrCoord(se, "z")
			if err != nil {
				return err
			}
			if err := r.m.AddUpdate(model.ElementID(obj), uint8(tb), x, y, z); err != nil {
				return r.fail(err)
			}
			return r.skipElement()
		},
	})
}

func (r *reader) readIAT(se xml.StartElement) error {
	var iat model.IAT
	ts, err := r.attrUint(se, "timestamp")
	if err != nil {
		return err
	}
	iat.Timestamp = ts
	if s, ok := attrVal(se, "offset"); ok {
		v, perr := strconv.ParseUint(s, 10, 16)
		if perr != nil {
			return r.fail(ErrMalformedXML)
		}
		iat.HasOffset = true
		iat.Offset = uint16(v)
	}
	if s, ok := attrVal(se, "validityDuration"); ok {
		v, perr := strconv.ParseUint(s, 10, 16)
		if perr != nil {
			return r.fail(ErrMalformedXML)
		}
		iat.HasValidity = true
		iat.ValidityDur = uint16(v)
	}
	err = r.readChildren(childDispatch{
		"ContentID": func(se xml.StartElement) error {
			kind, err := r.requireAttr(se, "kind")
			if err != nil {
				return err
			}
			switch kind {
			case "uuid":
				s, err := r.readText()
				if err != nil {
					return err
				}
				b, perr := identifiers.ParseUUID(s)
				if perr != nil {
					return r.fail(perr)
				}
				iat.ContentID = model.ContentID{Kind: model.ContentIDUUID, UUID: b}
				return nil
			case "eidr":
				s, err := r.readText()
				if err != nil {
					return err
				}
				b, perr := identifiers.ParseEIDR(s)
				if perr != nil {
					return r.fail(perr)
				}
				iat.ContentID = model.ContentID{Kind: model.ContentIDEIDR, EIDR: b}
				return nil
			case "adid":
				s, err := r.readText()
				if err != nil {
					return err
				}
				b, perr := identifiers.ParseAdID(s)
				if perr != nil {
					return r.fail(perr)
				}
				iat.ContentID = model.ContentID{Kind: model.ContentIDAdID, AdID: b}
				return nil
			case "raw":
				var b []byte
				err := r.readChildren(childDispatch{
					"Raw": func(se xml.StartElement) error {
						v, err := r.readCdata()
						if err != nil {
							return err
						}
						b = v
						return nil
					},
				})
				if err != nil {
					return err
				}
				iat.ContentID = model.ContentID{Kind: model.ContentIDRaw, Raw: b}
				return nil
			default:
				return r.fail(ErrInvalidEnum)
			}
		},
		"DistributionID": func(se xml.StartElement) error {
			kind, err := r.requireAttr(se, "kind")
			if err != nil {
				return err
			}
			switch kind {
			case "atsc3":
				bsid, err := r.attrUint(se, "bsid")
				if err != nil {
					return err
				}
				major, err := r.attrUint(se, "major")
				if err != nil {
					return err
				}
				minor, err := r.attrUint(se, "minor")
				if err != nil {
					return err
				}
				iat.DistributionID = model.DistributionID{
					Kind: model.DistributionIDATSC3,
					ATSC3: model.ATSC3Distribution{
						BSID: uint16(bsid), Major: uint16(major), Minor: uint16(minor),
					},
				}
				return r.skipElement()
			case "raw":
				var b []byte
				err := r.readChildren(childDispatch{
					"Raw": func(se xml.StartElement) error {
						v, err := r.readCdata()
						if err != nil {
							return err
						}
						b = v
						return nil
					},
				})
				if err != nil {
					return err
				}
				iat.DistributionID = model.DistributionID{Kind: model.DistributionIDRaw, Raw: b}
				return nil
			default:
				return r.fail(ErrInvalidEnum)
			}
		},
		"UserData": func(se xml.StartElement) error {
			b, err := r.readCdata()
			if err != nil {
				return err
			}
			iat.UserData = b
			return nil
		},
		"Extension": func(se xml.StartElement) error {
			b, err := r.readCdata()
			if err != nil {
				return err
			}
			iat.Extension = b
			return nil
		},
	})
	if err != nil {
		return err
	}
	if err := r.m.SetIAT(iat); err != nil {
		return r.fail(err)
	}
	return nil
}

func (r *reader) readHeadphoneElements(se xml.StartElement) error {
	return r.readChildren(childDispatch{
		"HeadphoneElement": func(se xml.StartElement) error {
			elem, err := r.attrUint(se, "element")
			if err != nil {
				return err
			}
			ht, err := r.attrBool(se, "headTracking", false)
			if err != nil {
				return err
			}
			rm, err := r.attrUint(se, "renderMode")
			if err != nil {
				return err
			}
			mask, err := r.attrUint(se, "channelExclMask")
			if err != nil {
				return err
			}
			h := model.HED{
				Element:         model.ElementID(elem),
				HeadTracking:    ht,
				RenderMode:      uint8(rm),
				ChannelExclMask: uint16(mask),
			}
			if err := r.m.SetHeadphoneElement(h); err != nil {
				return r.fail(err)
			}
			return r.skipElement()
		},
	})
}
