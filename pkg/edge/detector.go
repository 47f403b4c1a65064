// Package edge turns continuously polled boolean signals into discrete
// "just activated" / "just deactivated" events.
//
// A Detector must be polled exactly once per logical tick before its edge
// queries are read. The first poll seeds the previous value with the observed
// value, so a signal that is already held when polling starts never reports a
// spurious activation.
package edge

import "sync/atomic"

// Source reports the current value of a boolean signal.
type Source func() bool

// Detector tracks the previous and current value of one Source.
type Detector struct {
	src      Source
	tracking bool
	previous bool
	current  bool
}

// New constructs a Detector over src. A nil src always reads false.
func New(src Source) *Detector {
	if src == nil {
		src = func() bool { return false }
	}
	return &Detector{src: src}
}

// Poll reads the source and shifts the current value into previous. It returns
// the newly observed value.
func (d *Detector) Poll() bool {
	value := d.src()
	if !d.tracking {
		d.tracking = true
		d.previous = value
		d.current = value
		return value
	}
	d.previous = d.current
	d.current = value
	return value
}

// Active reports the value observed by the last Poll.
func (d *Detector) Active() bool {
	return d.current
}

// JustActivated reports a false to true transition on the last Poll.
func (d *Detector) JustActivated() bool {
	return d.current && !d.previous
}

// JustDeactivated reports a true to false transition on the last Poll.
func (d *Detector) JustDeactivated() bool {
	return !d.current && d.previous
}

// Latch is a settable signal for hosts that receive discrete input events
// (key presses, remote messages) rather than a pollable device. It is safe to
// Set from one goroutine while another polls it.
type Latch struct {
	v atomic.Bool
}

// Set stores the signal value.
func (l *Latch) Set(v bool) {
	l.v.Store(v)
}

// Value returns the stored signal value. It satisfies Source.
func (l *Latch) Value() bool {
	return l.v.Load()
}
