/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel errors mutators return, composable via
  errors.Is, alongside the model's one-message-deep attached error
  string.

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

import "github.com/pkg/errors"

var (
	// ErrCapacityExceeded indicates a collection is already at its
	// configured or profile-imposed cap.
	ErrCapacityExceeded = errors.New("model: capacity exceeded")

	// ErrOutOfRange indicates an identifier is outside its legal range.
	ErrOutOfRange = errors.New("model: identifier out of range")

	// ErrUnknownReference indicates a referenced entity does not exist.
	ErrUnknownReference = errors.New("model: referenced entity does not exist")

	// ErrInvalidValue indicates a field value fails a range or enum check.
	ErrInvalidValue = errors.New("model: invalid value")

	// ErrDuplicateID indicates an id was already present where uniqueness
	// is required.
	ErrDuplicateID = errors.New("model: duplicate identifier")

	// ErrNoNames indicates a presentation was given zero per-language
	// names.
	ErrNoNames = errors.New("model: presentation must have at least one name")

	// ErrDuplicateName indicates two names for the same language within a
	// presentation.
	ErrDuplicateName = errors.New("model: duplicate name for language")

	// ErrCyclicDerivation indicates a derived bed would create a cycle.
	ErrCyclicDerivation = errors.New("model: cyclic bed derivation")

	// ErrNotDynamic indicates an update was queued against an object that
	// does not allow dynamic updates.
	ErrNotDynamic = errors.New("model: object does not allow dynamic updates")

	// ErrUnknownProfile indicates an unrecognized profile/level pair.
	ErrUnknownProfile = errors.New("model: unknown profile/level")

	// ErrProfileViolation indicates current entity counts exceed the
	// requested profile's envelope.
	ErrProfileViolation = errors.New("model: current counts exceed profile envelope")

	// ErrIncompatibleConstraints indicates Copy's destination model has a
	// narrower capacity than is needed to hold the source.
	ErrIncompatibleConstraints = errors.New("model: destination constraints incompatible with source")
)

// setErr records err as the model's single attached error message and
// returns err unchanged, for use as `return m.setErr(err)`.
func (m *Model) setErr(err error) error {
	if err != nil {
		m.lastErr = err.Error()
	}
	return err
}

// LastError returns the most recently attached error message, or "" if the
// last mutator succeeded or none has run.
func (m *Model) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}
