/*
NAME
  container.go

DESCRIPTION
  container.go holds container-level settings: the SMPTE2109 sample offset,
  the bitstream version, and the dynamic local-tag remap table, excluding
  tag 0x01 (container config itself), which is never remappable.

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

// ContainerConfigTag is the local tag of the container config payload
// itself; it can never be remapped to an alternate universal label.
const ContainerConfigTag byte = 0x01

// SetSampleOffset sets the SMPTE2109 sample offset.
func (m *Model) SetSampleOffset(offset uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.container.SampleOffset = offset
}

// SetBitstreamVersion sets the container's declared bitstream version.
func (m *Model) SetBitstreamVersion(v BitstreamVersion) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.container.Version = v
}

// SetDynamicTagRemap inserts or replaces a local-tag-to-universal-label
// remap. Remapping tag 0x01 is rejected.
func (m *Model) SetDynamicTagRemap(r DynamicTagRemap) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.LocalTag == ContainerConfigTag {
		return m.setErr(ErrInvalidValue)
	}
	for i, existing := range m.container.DynamicTags {
		if existing.LocalTag == r.LocalTag {
			m.container.DynamicTags[i] = r
			m.lastErr = ""
			return nil
		}
	}
	m.container.DynamicTags = append(m.container.DynamicTags, r)
	m.lastErr = ""
	return nil
}

// Container returns a copy of the current container configuration.
func (m *Model) Container() ContainerConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := m.container
	cp.DynamicTags = append([]DynamicTagRemap(nil), m.container.DynamicTags...)
	return cp
}
