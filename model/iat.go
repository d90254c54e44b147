package model

// SetIAT replaces the singleton identity-and-timing record.
func (m *Model) SetIAT(iat IAT) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if iat.Timestamp >= 1<<35 {
		return m.setErr(ErrInvalidValue)
	}
	if iat.HasOffset && iat.Offset >= 1<<11 {
		return m.setErr(ErrInvalidValue)
	}
	if iat.HasValidity && iat.ValidityDur >= 1<<11 {
		return m.setErr(ErrInvalidValue)
	}
	if iat.DistributionID.Kind == DistributionIDATSC3 {
		d := iat.DistributionID.ATSC3
		if d.Major >= 1<<10 || d.Minor >= 1<<10 {
			return m.setErr(ErrInvalidValue)
		}
	}
	cp := iat
	m.iat = &cp
	m.lastErr = ""
	return nil
}

// IAT returns the identity-and-timing record, if one has been set.
func (m *Model) IAT() (IAT, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.iat == nil {
		return IAT{}, false
	}
	return *m.iat, true
}

// ClearIAT removes the identity-and-timing record.
func (m *Model) ClearIAT() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.iat = nil
}
