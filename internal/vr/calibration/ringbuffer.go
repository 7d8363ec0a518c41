package calibration

import (
	vmath "github.com/Faultbox/riftdemo/pkg/math"
)

// LagCapacity is the fixed capacity of a LagBuffer and the exclusive
// upper bound on usable lag values.
const LagCapacity = 30

// LagBuffer is a fixed-capacity ring of recent hand positions, used to
// delay the visual feedback of the tracked hand by a configurable
// number of frames. The caller pushes the live sample and pops the
// delayed one, once each per frame, push first: Pop(0) returns the
// value pushed this frame, Pop(k) the value pushed k frames ago.
type LagBuffer struct {
	positions [LagCapacity]vmath.Vec3
	read      int
	write     int
	count     int
}

// NewLagBuffer returns an empty buffer.
func NewLagBuffer() *LagBuffer {
	// The read cursor trails the first full-occupancy write cursor by
	// one slot, so that after a push, read lands on the slot just
	// written and Pop(0) reflects the live sample.
	return &LagBuffer{read: LagCapacity - 1}
}

// Push stores a sample at the write cursor.
func (b *LagBuffer) Push(p vmath.Vec3) {
	b.positions[b.write] = p
	b.write = (b.write + 1) % LagCapacity
	if b.count < LagCapacity {
		b.count++
	}
}

// Pop returns the sample lag slots behind the read cursor and advances
// the read cursor. Until the buffer has filled once it returns the
// first-ever pushed sample instead, so a fresh buffer never yields an
// unwritten slot. lag must be in [0, LagCapacity-1]; the caller clamps.
func (b *LagBuffer) Pop(lag int) vmath.Vec3 {
	if b.count < LagCapacity {
		return b.positions[0]
	}
	i := (b.read - lag + LagCapacity) % LagCapacity
	b.read = (b.read + 1) % LagCapacity
	return b.positions[i]
}
