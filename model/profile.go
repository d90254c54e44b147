/*
NAME
  profile.go

DESCRIPTION
  profile.go implements SetProfile: declaring a profile/level narrows the
  model's effective capacity envelope, but only if current entity counts
  already fit within it.

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

// SetProfile declares a profile number and level, narrowing the model's
// effective capacity envelope. It fails if current signal, element, or
// presentation counts already exceed the requested envelope.
func (m *Model) SetProfile(number, level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	env, ok := lookupProfile(number, level)
	if !ok {
		return m.setErr(ErrUnknownProfile)
	}
	if len(m.signals) > env.maxSignals ||
		m.elementCount() > env.maxElements ||
		len(m.presentations) > env.maxPresentations {
		return m.setErr(ErrProfileViolation)
	}
	m.container.ProfileNumber = number
	m.container.ProfileLevel = level
	m.lastErr = ""
	return nil
}

// Profile returns the currently declared profile number and level, or
// (0, 0) if none has been set.
func (m *Model) Profile() (number, level int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.container.ProfileNumber, m.container.ProfileLevel
}

// ClearProfile removes any declared profile, reverting to the construction
// time capacity envelope.
func (m *Model) ClearProfile() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.container.ProfileNumber = 0
	m.container.ProfileLevel = 0
}
