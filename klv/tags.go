/*
NAME
  tags.go

DESCRIPTION
  tags.go enumerates the local tags carried within a KLV payload and the
  caller-facing options that govern encode/decode.

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

// Local tags carried within a KLV payload.
const (
	TagContainerConfig byte = 0x01
	TagCRC             byte = 0x03
	TagVersion         byte = 0x04
	TagABD             byte = 0x05 // Audio Bed Description.
	TagAOD             byte = 0x06 // Audio Object Description.
	TagAPD             byte = 0x07 // Audio Presentation Description.
	TagAPN             byte = 0x08 // Audio Presentation Names.
	TagAEN             byte = 0x09 // Audio Element Names.
	TagESD             byte = 0x0A // ED2 Substream Description.
	TagESN             byte = 0x0B // ED2 Substream Names.
	TagEEP             byte = 0x0C // EAC3 Encoding Parameters.
	TagXYZ             byte = 0x0D // Dynamic Updates.
	TagIAT             byte = 0x0E // Identity And Timing.
	TagPLD             byte = 0x0F // Presentation Loudness Description.
	TagETD             byte = 0x10 // ED2 Turnaround Description.
	TagHED             byte = 0x11 // Headphone Element Description.
)

// EncodeOptions configures a single Encode call.
type EncodeOptions struct {
	Label UniversalLabel

	// NamesPerFrame, HEDPerFrame, PLDPerFrame, EEPPerFrame, ETDPerFrame cap
	// how many items of each rotated payload class are emitted per frame;
	// 0 (or a negative value) selects the default of 4 per frame.
	NamesPerFrame int
	HEDPerFrame   int
	PLDPerFrame   int
	EEPPerFrame   int
	ETDPerFrame   int
}

func (o EncodeOptions) perFrame(v int) int {
	if v <= 0 {
		return 4
	}
	return v
}
