/*
NAME
  rotation.go

DESCRIPTION
  rotation.go implements per-payload-class round-robin scheduling so that
  low-priority payloads (names, HED, IAT, PLD, EEP, ETD) that do not fit in
  a single frame are each transmitted at least once over a bounded number
  of frames. The exact per-frame schedule is an implementation detail,
  verified by the round-trip property rather than a byte-exact order.

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

// rotationClass names an independently scheduled low-priority payload
// class.
type rotationClass int

const (
	classAPN rotationClass = iota
	classAEN
	classHED
	classIAT
	classPLD
	classEEP
	classETD
)

// Rotator holds the per-class cursor an Encoder advances across successive
// calls, so repeated encode calls over an unchanging model eventually cycle
// through every item of every class.
type Rotator struct {
	cursor map[rotationClass]int
}

// NewRotator returns a Rotator with every class cursor at zero.
func NewRotator() *Rotator {
	return &Rotator{cursor: make(map[rotationClass]int)}
}

// window selects up to perFrame indices from [0, n) starting at the class's
// stored cursor, wrapping around, and advances the cursor by the number of
// indices selected.
func (r *Rotator) window(c rotationClass, n, perFrame int) []int {
	if n == 0 {
		return nil
	}
	if perFrame <= 0 || perFrame > n {
		perFrame = n
	}
	start := r.cursor[c] % n
	out := make([]int, 0, perFrame)
	for i := 0; i < perFrame; i++ {
		out = append(out, (start+i)%n)
	}
	r.cursor[c] = (start + perFrame) % n
	return out
}
