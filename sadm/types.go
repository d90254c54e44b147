/*
NAME
  types.go

DESCRIPTION
  types.go defines the sADM core model: a finer-grained ADM-style entity
  graph (source groups, sources, audio tracks, target groups, targets,
  block updates, content groups, audio elements, presentation/element
  relations, frame format) that Project builds from a model.Model. It is
  a translation target, not a wire format: the package produces and
  holds this graph in memory, it does not serialize it.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package sadm implements the PMD-to-sADM projection: a translator from
// the PMD model to a finer-grained ADM-style core model, used by
// downstream tooling that speaks in source/target groups rather than
// PMD's beds and objects. The package does not implement the sADM XML
// format itself, only the intermediate data model.
package sadm

import "github.com/ausocean/pmd/model"

// TargetGroupKind distinguishes the three target-group families the
// projection assigns fixed id ranges to.
type TargetGroupKind int

const (
	TargetGroupDirectSpeakers TargetGroupKind = iota
	TargetGroupMatrix
	TargetGroupObjects
)

// Target-group id base per kind: 0x0001xxxx direct-speakers, 0x0002xxxx
// matrix, 0x0003xxxx objects.
const (
	targetGroupDirectSpeakersBase uint32 = 0x00010000
	targetGroupMatrixBase         uint32 = 0x00020000
	targetGroupObjectsBase        uint32 = 0x00030000
)

// NullPresentation is the reserved presentation id orphan elements are
// attached under.
const NullPresentation model.PresentationID = 0

// sourceGroupName is the PMD projection's single, fixed source group.
const sourceGroupName = "PMD Audio Interface"

// Source is one signal, exposed as an ADM source within the PMD Audio
// Interface source group.
type Source struct {
	ID     uint32
	Name   string
	Signal model.SignalID
	Track  uint32 // the AudioTrack carrying this source.
}

// AudioTrack is a single-channel track carrying one source's samples.
type AudioTrack struct {
	ID     uint32
	Source uint32
}

// SourceGroup collects every source the projection produced.
type SourceGroup struct {
	Name    string
	Sources []Source
}

// Target is one loudspeaker or object position within a target group.
type Target struct {
	ID      uint32
	Speaker model.Speaker // meaningful only for direct-speakers/matrix groups.
	GainDB  float64
}

// TargetGroup is a fixed-id group of targets derived from a bed's
// configuration, or from a single object (one group per object id).
type TargetGroup struct {
	ID      uint32
	Kind    TargetGroupKind
	Config  model.Config // zero value for object target groups.
	Targets []Target
}

// BlockUpdate is one dynamic-object position update, carried over from the
// PMD model's pending updates (mirrors model.DynamicUpdate).
type BlockUpdate struct {
	Element   model.ElementID
	TimeBlock uint8
	X, Y, Z   float64
}

// AudioElement is one bed or object, translated into a reference onto a
// target group plus (for objects) its static position.
type AudioElement struct {
	ID          model.ElementID
	Name        string
	TargetGroup uint32
	IsObject    bool
	X, Y, Z     float64 // meaningful only when IsObject.
	Size        float64 // meaningful only when IsObject.
}

// ContentGroup is a presentation's translated form: a grouping of audio
// elements carrying the presentation's id and language. Presentation names
// and loudness are not carried.
type ContentGroup struct {
	ID       model.PresentationID
	Language string
	Elements []model.ElementID
}

// FrameFormat is the fixed-duration frame descriptor every sADM projection
// emits: a constant 20ms duration, and a flow-id derived from the
// model's IAT UUID when present.
type FrameFormat struct {
	Start    string
	Duration string
	FlowID   string
}

// frameDuration is the fixed frame duration every projection emits.
const frameDuration = "00:00:00.02000"

// CoreModel is the complete translated graph Project produces.
type CoreModel struct {
	SourceGroup   SourceGroup
	AudioTracks   []AudioTrack
	TargetGroups  []TargetGroup
	AudioElements []AudioElement
	BlockUpdates  []BlockUpdate
	ContentGroups []ContentGroup
	FrameFormat   FrameFormat
}
