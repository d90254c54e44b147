/*
NAME
  uuid.go

DESCRIPTION
  uuid.go provides strict parsing and canonical formatting of the UUID
  identity form used by Identity & Timing content IDs.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package identifiers

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrInvalidUUID is returned when a string does not match the strict
// "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
var ErrInvalidUUID = errors.New("identifiers: invalid UUID")

// uuidPattern matches exactly the canonical dashed hex form. google/uuid's
// own Parse accepts a much wider set of forms (braces, urn:uuid: prefixes,
// no dashes); we gate with this pattern first so only the strict wire form
// is ever accepted, then hand the already-validated string to google/uuid
// for byte decoding and canonical re-formatting.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ParseUUID parses s as a strict canonical UUID string and returns its 16
// raw bytes.
func ParseUUID(s string) ([16]byte, error) {
	var out [16]byte
	if !uuidPattern.MatchString(s) {
		return out, ErrInvalidUUID
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return out, errors.Wrap(ErrInvalidUUID, err.Error())
	}
	return [16]byte(u), nil
}

// FormatUUID formats b as a lowercase canonical UUID string.
func FormatUUID(b [16]byte) string {
	return uuid.UUID(b).String()
}
