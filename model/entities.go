/*
NAME
  entities.go

DESCRIPTION
  entities.go defines the entity types held by the Model: signals, beds,
  objects, presentations, loudness records, dynamic updates, EAC3 encoding
  parameters, ED2 turnaround records, identity-and-timing, headphone
  elements, and container configuration.

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

// SignalID identifies an audio signal, 1..255.
type SignalID uint8

// ElementID identifies a bed or object, 1..4095.
type ElementID uint16

// PresentationID identifies a presentation, 1..511.
type PresentationID uint16

// EEPID identifies an EAC3 encoding parameters record, 1..255.
type EEPID uint8

// ETDID identifies an ED2 turnaround record, 1..255.
type ETDID uint8

// BedType distinguishes an originally-authored bed from one derived from
// another bed by a static downmix.
type BedType int

const (
	BedOriginal BedType = iota
	BedDerived
)

// BedSource maps one source signal onto one loudspeaker target at a gain.
type BedSource struct {
	Target Speaker
	Signal SignalID
	GainDB float64 // NegInfGain or in [-25, +6] on a 0.5dB grid.
}

// Bed is a channel-based audio element with a fixed loudspeaker
// configuration.
type Bed struct {
	ID              ElementID
	Name            string // UTF-8, <= 31 bytes.
	Config          Config
	Type            BedType
	DerivedSource   ElementID // valid only when Type == BedDerived.
	Sources         []BedSource
}

// ObjectClass categorizes a dynamic object for presentation-config
// cross-checking against the config string's CM/ME terms.
type ObjectClass int

const (
	ClassD   ObjectClass = iota // Dialog.
	ClassVDS                    // Visually-impaired descriptive service.
	ClassVO                     // Voice-over.
	ClassO                      // Other / generic object.
	ClassSS                     // Subtitle / sign-script speech.
	ClassEA                     // Emergency alert.
	ClassEI                     // Emergency information.
)

// classCodes is the ordered set of presentation-config class codes:
// D VDS VO O SS EA EI.
var classCodes = [...]string{"D", "VDS", "VO", "O", "SS", "EA", "EI"}

// String returns the presentation-config class code for c.
func (c ObjectClass) String() string {
	if int(c) < 0 || int(c) >= len(classCodes) {
		return "?"
	}
	return classCodes[c]
}

// ObjectClassFromString parses a presentation-config class code.
func ObjectClassFromString(s string) (ObjectClass, bool) {
	for i, code := range classCodes {
		if code == s {
			return ObjectClass(i), true
		}
	}
	return 0, false
}

// Object is a positional audio element, optionally updated over time.
type Object struct {
	ID              ElementID
	Name            string
	Class           ObjectClass
	Source          SignalID
	SourceGainDB    float64
	X, Y, Z         float64 // each in [-1, +1].
	Size            float64 // in [0, 1].
	Size3D          bool
	Diverge         bool
	DynamicUpdates  bool
}

// PresentationName is a presentation's name in one language.
type PresentationName struct {
	Language string // ISO 639 code, validated via the langcode package.
	Name     string
}

// Presentation is a selectable combination of beds and objects.
type Presentation struct {
	ID         PresentationID
	Language   string // audio language, ISO 639 code.
	Config     Config
	Elements   []ElementID
	Names      []PresentationName // <= 16, one per language, per-language unique.
}

// LoudnessPractice names the loudness measurement practice a presentation
// was authored to.
type LoudnessPractice int

const (
	PracticeNotIndicated LoudnessPractice = iota
	PracticeConsumerLeveller
	PracticeCorrectedForLtRLbR
	PracticeManual
	PracticeAGARD
	PracticeBS1770_1
	PracticeBS1770_2
	PracticeBS1770_3
	PracticeBS1770_4
	PracticeATSCA85
	PracticeEBUR128
	PracticeARIBTR_B32
	PracticeFreeTV
	PracticeReserved05
	PracticeReserved06
	PracticePrivate
)

// practiceNames is the fixed name table LoudnessPractice is validated
// against on XML decode.
var practiceNames = [...]string{
	"NotIndicated", "ConsumerLeveler", "CorrectedForLtRtLbRt", "Manual",
	"AGARD_AR_321", "ITU_R_BS1770_1", "ITU_R_BS1770_2", "ITU_R_BS1770_3",
	"ITU_R_BS1770_4", "ATSC_A85", "EBU_R128", "ARIB_TR_B32", "FreeTV_OP59",
	"Reserved05", "Reserved06", "Private",
}

// String returns the XML name for the loudness practice p.
func (p LoudnessPractice) String() string {
	if int(p) < 0 || int(p) >= len(practiceNames) {
		return "?"
	}
	return practiceNames[p]
}

// LoudnessPracticeFromString parses a practice name as produced by
// LoudnessPractice.String.
func LoudnessPracticeFromString(s string) (LoudnessPractice, bool) {
	for i, name := range practiceNames {
		if name == s {
			return LoudnessPractice(i), true
		}
	}
	return 0, false
}

// CorrectionType identifies the kind of loudness correction that was
// applied, if any.
type CorrectionType int

const (
	CorrectionNotIndicated CorrectionType = iota
	CorrectionFileBased
	CorrectionRealtime
)

// Loudness holds a single presentation's optional loudness descriptors.
// Each numeric field has a companion Has* flag; only fields whose flag is
// set are "present".
type Loudness struct {
	Presentation PresentationID
	Practice     LoudnessPractice

	HasRelativeGated bool
	RelativeGatedLU  float64

	HasSpeechGated bool
	SpeechGatedLU  float64

	HasShortTerm3s bool
	ShortTerm3sLU  float64

	HasShortTerm3sMax bool
	ShortTerm3sMaxLU  float64

	HasTruePeak bool
	TruePeakDB  float64

	HasTruePeakMax bool
	TruePeakMaxDB  float64

	HasMomentary bool
	MomentaryLU  float64

	HasMomentaryMax bool
	MomentaryMaxLU  float64

	HasLRA bool
	LRA    float64

	HasProgramBoundary bool
	ProgramBoundary    bool

	Correction CorrectionType

	HasDialgate bool
	Dialgate    bool

	Extension []byte // extension bitstring, opaque.
}

// DynamicUpdate is a single queued position update for a dynamic object,
// timestamped to a 32-sample block.
type DynamicUpdate struct {
	TimeBlock uint8 // 0..63.
	Object    ElementID
	X, Y, Z   float64
}

// SurroundMode enumerates the A/52 Dolby Surround encoding indication.
type SurroundMode int

const (
	SurroundNotIndicated SurroundMode = iota
	SurroundEncoded
	SurroundNotEncoded
)

var surroundModeNames = [...]string{"NotIndicated", "DolbySurroundEncoded", "NotDolbySurroundEncoded"}

// String returns the XML name for surround mode s.
func (s SurroundMode) String() string {
	if int(s) < 0 || int(s) >= len(surroundModeNames) {
		return "?"
	}
	return surroundModeNames[s]
}

// SurroundModeFromString parses a surround mode name as produced by
// SurroundMode.String.
func SurroundModeFromString(v string) (SurroundMode, bool) {
	for i, name := range surroundModeNames {
		if name == v {
			return SurroundMode(i), true
		}
	}
	return 0, false
}

// BsMod enumerates the A/52 bit stream mode, naming the kind of service an
// EAC3 encoding carries.
type BsMod int

const (
	BsModCM BsMod = iota // Complete main.
	BsModME               // Music and effects.
	BsModVI               // Visually impaired.
	BsModHI               // Hearing impaired.
	BsModD                // Dialogue.
	BsModC                // Commentary.
	BsModE                // Emergency.
	BsModVO               // Voice-over/karaoke.
)

var bsModNames = [...]string{"CM", "ME", "VI", "HI", "D", "C", "E", "VO"}

// String returns the XML name for bit stream mode b.
func (b BsMod) String() string {
	if int(b) < 0 || int(b) >= len(bsModNames) {
		return "?"
	}
	return bsModNames[b]
}

// BsModFromString parses a bit stream mode name as produced by BsMod.String.
func BsModFromString(v string) (BsMod, bool) {
	for i, name := range bsModNames {
		if name == v {
			return BsMod(i), true
		}
	}
	return 0, false
}

// PreferredDownmix enumerates the A/52 preferred 2-channel downmix method.
type PreferredDownmix int

const (
	DownmixNotIndicated PreferredDownmix = iota
	DownmixLoRo
	DownmixLtRt
	DownmixProLogicIIx
)

var preferredDownmixNames = [...]string{"NotIndicated", "LoRo", "LtRt", "ProLogicIIx"}

// String returns the XML name for preferred downmix p.
func (p PreferredDownmix) String() string {
	if int(p) < 0 || int(p) >= len(preferredDownmixNames) {
		return "?"
	}
	return preferredDownmixNames[p]
}

// PreferredDownmixFromString parses a preferred downmix name as produced by
// PreferredDownmix.String.
func PreferredDownmixFromString(v string) (PreferredDownmix, bool) {
	for i, name := range preferredDownmixNames {
		if name == v {
			return PreferredDownmix(i), true
		}
	}
	return 0, false
}

// EncoderParams are generic EAC3 encoder tuning parameters.
type EncoderParams struct {
	DataRateKbps     uint32
	SurroundMode     SurroundMode
	DialnormDB       int
	BsMod            BsMod
	PreferredDownmix PreferredDownmix
}

// CompressionMode enumerates the A/52 dynamic range compression word
// profile.
type CompressionMode int

const (
	CompressionNone CompressionMode = iota
	CompressionFilmStandard
	CompressionFilmLight
	CompressionMusicStandard
	CompressionMusicLight
	CompressionSpeech
)

var compressionModeNames = [...]string{
	"None", "FilmStandard", "FilmLight", "MusicStandard", "MusicLight", "Speech",
}

// String returns the XML name for compression mode c.
func (c CompressionMode) String() string {
	if int(c) < 0 || int(c) >= len(compressionModeNames) {
		return "?"
	}
	return compressionModeNames[c]
}

// CompressionModeFromString parses a compression mode name as produced by
// CompressionMode.String.
func CompressionModeFromString(v string) (CompressionMode, bool) {
	for i, name := range compressionModeNames {
		if name == v {
			return CompressionMode(i), true
		}
	}
	return 0, false
}

// BitstreamParams are EAC3 bitstream-level parameters.
type BitstreamParams struct {
	CompressionMode          CompressionMode
	LtRtCenterDownmixLevel   float64
	LtRtSurroundDownmixLevel float64
	LoRoCenterDownmixLevel   float64
	LoRoSurroundDownmixLevel float64
}

// DRCParams are dynamic range control profile parameters.
type DRCParams struct {
	LineMode int
	RFMode   int
}

// EAC3 is an EAC3 encoding-parameters record (EEP), referenced by the
// presentations it applies encoding settings to.
type EAC3 struct {
	ID              EEPID
	Encoder         *EncoderParams
	Bitstream       *BitstreamParams
	DRC             *DRCParams
	Presentations   []PresentationID // <= 8, deduplicated.
}

// FrameRate enumerates the frame rates a turnaround record may declare.
type FrameRate int

const (
	FrameRate23_98 FrameRate = iota
	FrameRate24
	FrameRate25
	FrameRate29_97
	FrameRate30
)

// frameRateNames is the fixed name table FrameRate is validated against on
// XML decode.
var frameRateNames = [...]string{"23.98", "24", "25", "29.97", "30"}

// String returns the XML name for the frame rate f.
func (f FrameRate) String() string {
	if int(f) < 0 || int(f) >= len(frameRateNames) {
		return "?"
	}
	return frameRateNames[f]
}

// FrameRateFromString parses a frame rate name as produced by
// FrameRate.String.
func FrameRateFromString(s string) (FrameRate, bool) {
	for i, name := range frameRateNames {
		if name == s {
			return FrameRate(i), true
		}
	}
	return 0, false
}

// PresentationEEPPair links a presentation to the EAC3 parameters used to
// re-encode it.
type PresentationEEPPair struct {
	Presentation PresentationID
	EEP          EEPID
}

// DEProgramConfig enumerates the Dolby Digital (DE) program configurations
// a turnaround record may declare.
type DEProgramConfig int

const (
	DEProgramConfigNotIndicated DEProgramConfig = iota
	DEProgramConfig1_0
	DEProgramConfig2_0
	DEProgramConfig3_0
	DEProgramConfig2_1
	DEProgramConfig3_1
	DEProgramConfig2_2
	DEProgramConfig3_2
)

// deProgramConfigNames is the fixed name table DEProgramConfig is validated
// against on XML decode.
var deProgramConfigNames = [...]string{
	"NotIndicated", "1/0", "2/0", "3/0", "2/1", "3/1", "2/2", "3/2",
}

// String returns the XML name for the DE program configuration c.
func (c DEProgramConfig) String() string {
	if int(c) < 0 || int(c) >= len(deProgramConfigNames) {
		return "?"
	}
	return deProgramConfigNames[c]
}

// DEProgramConfigFromString parses a DE program configuration name as
// produced by DEProgramConfig.String.
func DEProgramConfigFromString(s string) (DEProgramConfig, bool) {
	for i, name := range deProgramConfigNames {
		if name == s {
			return DEProgramConfig(i), true
		}
	}
	return 0, false
}

// ETD is an ED2 turnaround (re-encoding) descriptor.
type ETD struct {
	ID ETDID

	HasED2       bool
	ED2FrameRate FrameRate
	ED2Pairs     []PresentationEEPPair

	HasDE          bool
	DEFrameRate    FrameRate
	DEProgramConfig DEProgramConfig
	DEPairs        []PresentationEEPPair
}

// ContentIDKind identifies the form of an IAT content identifier.
type ContentIDKind int

const (
	ContentIDNone ContentIDKind = iota
	ContentIDUUID
	ContentIDEIDR
	ContentIDAdID
	ContentIDRaw
)

// ContentID is a tagged union over the identifier forms a content ID may
// take.
type ContentID struct {
	Kind ContentIDKind
	UUID [16]byte
	EIDR [12]byte
	AdID [11]byte
	Raw  []byte
}

// DistributionIDKind identifies the form of an IAT distribution identifier.
type DistributionIDKind int

const (
	DistributionIDNone DistributionIDKind = iota
	DistributionIDATSC3
	DistributionIDRaw
)

// ATSC3Distribution is the fixed 5-byte ATSC3 distribution ID layout:
// 16-bit broadcaster ID, a 4-bit reserved nibble (always 1111 on the wire),
// a 10-bit major channel, and a 10-bit minor channel.
type ATSC3Distribution struct {
	BSID  uint16
	Major uint16 // 10 bits.
	Minor uint16 // 10 bits.
}

// DistributionID is a tagged union over the distribution identifier forms.
type DistributionID struct {
	Kind  DistributionIDKind
	ATSC3 ATSC3Distribution
	Raw   []byte
}

// IAT is the singleton identity-and-timing record.
type IAT struct {
	ContentID      ContentID
	DistributionID DistributionID
	Timestamp      uint64 // 35 bits.
	HasOffset      bool
	Offset         uint16 // 11 bits.
	HasValidity    bool
	ValidityDur    uint16 // 11 bits.
	UserData       []byte
	Extension      []byte
}

// HED is a headphone-rendering annotation for one audio element.
type HED struct {
	Element         ElementID
	HeadTracking    bool
	RenderMode      uint8  // 0..127.
	ChannelExclMask uint16 // meaningful only when Element refers to a bed.
}

// DynamicTagRemap maps a KLV local tag to an alternate 16-byte universal
// label.
type DynamicTagRemap struct {
	LocalTag       byte
	UniversalLabel [16]byte
}

// BitstreamVersion is a (major, minor) version pair.
type BitstreamVersion struct {
	Major byte
	Minor byte
}

// ContainerConfig holds container-level settings that apply to the whole
// model rather than to any one entity.
type ContainerConfig struct {
	SampleOffset    uint32
	DynamicTags     []DynamicTagRemap
	Version         BitstreamVersion
	ProfileNumber   int
	ProfileLevel    int
}
