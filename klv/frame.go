/*
NAME
  frame.go

DESCRIPTION
  frame.go implements the top-level Encode/Decode entry points: wrapping a
  model snapshot in the universal key, the tag/length/value sequence for
  each payload class, the CRC trailer, and the per-frame rotation of
  low-priority payload classes.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package klv

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/ausocean/pmd/model"
)

// ErrUnknownKey is returned when a decoded buffer does not begin with a
// recognised universal key.
var ErrUnknownKey = errors.New("klv: unknown universal key")

// ErrCRCMismatch is returned when a decoded packet's trailing CRC does not
// match the computed checksum of the preceding bytes.
var ErrCRCMismatch = errors.New("klv: CRC mismatch")

// ErrTagTruncated is returned when a local tag's declared length runs past
// the end of the buffer.
var ErrTagTruncated = errors.New("klv: truncated local set entry")

// tlv is one decoded local tag/length/value entry.
type tlv struct {
	tag   byte
	value []byte
}

// Encode serializes m's current state into a single KLV packet, rotating
// the low-priority payload classes (presentation/element names, HED, PLD,
// EEP, ETD) across successive calls via r so that each item of every class
// is eventually transmitted. The IAT singleton, when set, is sent in every
// packet. The exact per-frame schedule is an implementation detail left to
// Rotator.
func Encode(m *model.Model, r *Rotator, opts EncodeOptions) []byte {
	if r == nil {
		r = NewRotator()
	}
	var body []byte

	body = appendTLV(body, TagContainerConfig, encodeContainerConfig(m))
	body = appendTLV(body, TagVersion, encodeVersion(m))

	for _, b := range m.Beds() {
		body = appendTLV(body, TagABD, encodeBed(b))
	}
	for _, o := range m.Objects() {
		body = appendTLV(body, TagAOD, encodeObject(o))
	}
	for _, p := range m.Presentations() {
		body = appendTLV(body, TagAPD, encodeAPD(m, p))
	}

	names := m.Presentations()
	for _, i := range r.window(classAPN, len(names), opts.perFrame(opts.NamesPerFrame)) {
		body = appendTLV(body, TagAPN, encodeAPN(names[i]))
	}

	// Element names ride the same rotation class as presentation names,
	// since both are low-priority text payloads.
	elemNames := elementsWithNames(m)
	for _, i := range r.window(classAEN, len(elemNames), opts.perFrame(opts.NamesPerFrame)) {
		body = appendTLV(body, TagAEN, encodeAEN(elemNames[i].ID, elemNames[i].Name))
	}

	eeps := m.EAC3Records()
	for _, i := range r.window(classEEP, len(eeps), opts.perFrame(opts.EEPPerFrame)) {
		body = appendTLV(body, TagEEP, encodeEEP(eeps[i]))
	}

	updates := m.PendingUpdates()
	if len(updates) > 0 {
		body = appendTLV(body, TagXYZ, encodeUpdates(updates))
	}

	// IAT is a singleton, so there is nothing to rotate across: it is
	// either present this frame or it isn't.
	if iat, ok := m.IAT(); ok {
		body = appendTLV(body, TagIAT, encodeIAT(iat))
	}

	loudness := m.LoudnessRecords()
	for _, i := range r.window(classPLD, len(loudness), opts.perFrame(opts.PLDPerFrame)) {
		body = appendTLV(body, TagPLD, encodePLD(loudness[i]))
	}

	etds := m.ETDRecords()
	for _, i := range r.window(classETD, len(etds), opts.perFrame(opts.ETDPerFrame)) {
		body = appendTLV(body, TagETD, encodeETD(etds[i]))
	}

	hed := m.HeadphoneElements()
	for _, i := range r.window(classHED, len(hed), opts.perFrame(opts.HEDPerFrame)) {
		body = appendTLV(body, TagHED, encodeHED(hed[i]))
	}

	key := BuildUniversalKey(opts.Label)
	out := make([]byte, 0, KeyLen+berLengthSize(len(body))+len(body)+berLengthSize(2)+3)
	out = append(out, key[:]...)
	out = encodeBERLength(out, len(body))
	out = append(out, body...)

	sum := crc16(out)
	crcPayload := []byte{byte(sum >> 8), byte(sum)}
	out = appendTLV(out, TagCRC, crcPayload)
	return out
}

// namedElement is one bed or object carrying a non-empty name, for the AEN
// rotation to cycle over.
type namedElement struct {
	ID   model.ElementID
	Name string
}

// elementsWithNames returns every bed and object that carries a non-empty
// name, in id order. Beds and objects share the element-id space, so a
// single rotation class covers both.
func elementsWithNames(m *model.Model) []namedElement {
	var out []namedElement
	for _, b := range m.Beds() {
		if b.Name != "" {
			out = append(out, namedElement{ID: b.ID, Name: b.Name})
		}
	}
	for _, o := range m.Objects() {
		if o.Name != "" {
			out = append(out, namedElement{ID: o.ID, Name: o.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// appendTLV appends a local tag/length/value entry to buf.
func appendTLV(buf []byte, tag byte, value []byte) []byte {
	buf = append(buf, tag)
	buf = encodeBERLength(buf, len(value))
	buf = append(buf, value...)
	return buf
}

// Decode parses a single KLV packet, verifying its universal key and CRC,
// and applies every recognised local tag entry to m. ESD/ESN entries (ED2
// substream description/names) describe ED2 PCM channel arrangement, which
// this library does not carry, so Decode tolerates them on the wire without
// modeling them: they are skipped without error.
func Decode(buf []byte, m *model.Model) error {
	if !MatchUniversalLabel(buf) {
		return ErrUnknownKey
	}
	rest := buf[KeyLen:]
	bodyLen, n, err := decodeBERLength(rest)
	if err != nil {
		return err
	}
	rest = rest[n:]
	if len(rest) < bodyLen {
		return ErrTagTruncated
	}
	packetLen := KeyLen + n + bodyLen
	entries, crcOK, err := parseEntries(rest[:bodyLen], buf[:packetLen])
	if err != nil {
		return err
	}
	if !crcOK {
		return ErrCRCMismatch
	}

	// Presentations need their name table before SetPresentation will accept
	// them (at least one name is required), but names travel on a
	// separately rotated tag (0x08) that may land in the same packet, an
	// earlier one, or a later one. Buffer APD/APN pairs across this whole
	// packet and resolve them against the model's existing record (if any)
	// once every entry has been seen. Beds and objects carry their name the
	// same way, on the separately rotated AEN tag (0x09), so ABD/AOD/AEN are
	// buffered and merged the same way.
	pending := map[model.PresentationID]model.Presentation{}
	pendingNames := map[model.PresentationID][]model.PresentationName{}
	pendingBeds := map[model.ElementID]model.Bed{}
	pendingObjects := map[model.ElementID]model.Object{}
	pendingElementNames := map[model.ElementID]string{}

	for _, e := range entries {
		switch e.tag {
		case TagAPD:
			p, err := decodeAPD(e.value)
			if err != nil {
				return err
			}
			pending[p.ID] = p
		case TagAPN:
			id, names, err := decodeAPNEntry(e.value)
			if err != nil {
				return err
			}
			pendingNames[id] = names
		case TagABD:
			b, err := decodeBed(e.value)
			if err != nil {
				return err
			}
			pendingBeds[b.ID] = b
		case TagAOD:
			o, err := decodeObject(e.value)
			if err != nil {
				return err
			}
			pendingObjects[o.ID] = o
		case TagAEN:
			id, name, err := decodeAEN(e.value)
			if err != nil {
				return err
			}
			pendingElementNames[id] = name
		default:
			if err := applyEntry(m, e); err != nil {
				return err
			}
		}
	}

	for id, p := range pending {
		if names, ok := pendingNames[id]; ok {
			p.Names = names
		} else if existing, ok := m.Presentation(id); ok {
			p.Names = existing.Names
		} else {
			p.Names = []model.PresentationName{{Language: "", Name: ""}}
		}
		if err := m.SetPresentation(p); err != nil {
			return err
		}
	}
	// An APN entry may arrive for a presentation whose APD was sent in an
	// earlier packet (rotation again): refresh its name table in place.
	for id, names := range pendingNames {
		if _, justSet := pending[id]; justSet {
			continue
		}
		existing, ok := m.Presentation(id)
		if !ok {
			continue
		}
		existing.Names = names
		if err := m.SetPresentation(existing); err != nil {
			return err
		}
	}

	for id, b := range pendingBeds {
		if name, ok := pendingElementNames[id]; ok {
			b.Name = name
		} else if existing, ok := m.Bed(id); ok {
			b.Name = existing.Name
		}
		if err := m.SetBed(b); err != nil {
			return err
		}
	}
	for id, o := range pendingObjects {
		if name, ok := pendingElementNames[id]; ok {
			o.Name = name
		} else if existing, ok := m.Object(id); ok {
			o.Name = existing.Name
		}
		if err := m.SetObject(o); err != nil {
			return err
		}
	}
	// An AEN entry may arrive for an element whose ABD/AOD was sent in an
	// earlier packet (rotation again): refresh its name in place, on
	// whichever of the bed/object maps actually holds this id.
	for id, name := range pendingElementNames {
		if _, justSet := pendingBeds[id]; justSet {
			continue
		}
		if _, justSet := pendingObjects[id]; justSet {
			continue
		}
		if b, ok := m.Bed(id); ok {
			b.Name = name
			if err := m.SetBed(b); err != nil {
				return err
			}
			continue
		}
		if o, ok := m.Object(id); ok {
			o.Name = name
			if err := m.SetObject(o); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseEntries walks body's tag/length/value entries, verifying the CRC
// entry (if present) against full, the packet bytes up to but excluding
// the CRC entry itself.
func parseEntries(body, full []byte) (entries []tlv, crcOK bool, err error) {
	crcOK = true // absent CRC is tolerated; present CRC must match.
	headerLen := len(full) - len(body)
	off := 0
	for off < len(body) {
		entryStart := off
		tag := body[off]
		off++
		length, n, err := decodeBERLength(body[off:])
		if err != nil {
			return nil, false, err
		}
		off += n
		if off+length > len(body) {
			return nil, false, ErrTagTruncated
		}
		value := body[off : off+length]
		off += length

		if tag == TagCRC {
			if len(value) != 2 {
				return nil, false, ErrTagTruncated
			}
			want := uint16(value[0])<<8 | uint16(value[1])
			got := crc16(full[:headerLen+entryStart])
			crcOK = got == want
			continue
		}
		entries = append(entries, tlv{tag: tag, value: value})
	}
	return entries, crcOK, nil
}

// applyEntry decodes one local tag's value and applies it to m.
func applyEntry(m *model.Model, e tlv) error {
	switch e.tag {
	case TagContainerConfig:
		return decodeContainerConfig(m, e.value)
	case TagVersion:
		return decodeVersion(m, e.value)
	case TagESD, TagESN:
		// ED2 substream description/names describe PCM channel arrangement
		// across ED2 streams; this library carries no PCM essence, so these
		// entries are tolerated on the wire and otherwise ignored.
		return nil
	case TagEEP:
		eep, err := decodeEEP(e.value)
		if err != nil {
			return err
		}
		return m.SetEAC3(eep)
	case TagXYZ:
		return decodeUpdates(m, e.value)
	case TagIAT:
		iat, err := decodeIAT(e.value)
		if err != nil {
			return err
		}
		return m.SetIAT(iat)
	case TagPLD:
		l, err := decodePLD(e.value)
		if err != nil {
			return err
		}
		return m.SetLoudness(l)
	case TagETD:
		etd, err := decodeETD(e.value)
		if err != nil {
			return err
		}
		return m.SetETD(etd)
	case TagHED:
		h, err := decodeHED(e.value)
		if err != nil {
			return err
		}
		return m.SetHeadphoneElement(h)
	default:
		return nil // forward-compatible: unknown tags are ignored.
	}
}
