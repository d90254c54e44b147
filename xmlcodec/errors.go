/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel errors the XML reader and writer return, and
  the line-tagged error type the reader attaches to every failure.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package xmlcodec implements a streaming reader and writer for the textual
// equivalent of the KLV wire form: a strict nested dialect rooted at
// <Smpte2109>, with entity-escaped strings, enumerated field validation,
// and a human-readable Presentation Config string cross-checked against
// the actual element mix.
package xmlcodec

import "github.com/pkg/errors"

var (
	// ErrMalformedXML indicates the underlying token stream is not
	// well-formed (mismatched tags, unterminated elements, bad escapes).
	ErrMalformedXML = errors.New("xmlcodec: malformed XML")

	// ErrIllegalUTF8 indicates a string contains an illegal code point
	// (a surrogate, a noncharacter, or an invalid byte sequence).
	ErrIllegalUTF8 = errors.New("xmlcodec: illegal UTF-8 code point")

	// ErrUnknownElement indicates an element name not in the grammar.
	ErrUnknownElement = errors.New("xmlcodec: unknown element")

	// ErrTagStackOverflow indicates nesting exceeded the fixed stack depth.
	ErrTagStackOverflow = errors.New("xmlcodec: tag stack overflow")

	// ErrInvalidEnum indicates a string did not match a known enumerated
	// value's fixed name table.
	ErrInvalidEnum = errors.New("xmlcodec: invalid enumerated value")

	// ErrVersionMismatch indicates the declared bitstream version does not
	// match the reader's expected major version.
	ErrVersionMismatch = errors.New("xmlcodec: bitstream version mismatch")

	// ErrConfigMismatch indicates the Presentation Config string does not
	// match the presentation's actual element mix. Fatal in strict mode,
	// a warning otherwise.
	ErrConfigMismatch = errors.New("xmlcodec: presentation config does not match element mix")

	// ErrMissingAttribute indicates a required attribute was absent.
	ErrMissingAttribute = errors.New("xmlcodec: missing required attribute")
)

// maxTagDepth is the fixed tag-stack depth the reader enforces.
const maxTagDepth = 32

// ErrorCallback receives one formatted message per reader error, tagged
// with the current line number and tag-stack path.
type ErrorCallback func(line int, path string, err error)
