// SPDX-License-Identifier: Unlicense OR MIT

/*
Package router arbitrates the host pointer stream between the overlay
layer and the active underlay surface.

Every pointer event passes through an Arbiter exactly once. The
overlay layer always sees the event; the Arbiter decides whether the
underlay target sees it too. The overlay takes exclusive ownership of
a pointer by claiming it, after which no event containing that pointer
reaches the target for the rest of the touch sequence. A claim made in
the middle of a forwarded gesture sends the target a synthetic Cancel
so its gesture state never dangles.
*/
package router

import (
	"sync"

	"gioui.org/x/underlay/io/pointer"
)

// Receiver is the underlay content forwarded events are delivered to.
type Receiver interface {
	DispatchPointer(e pointer.Event)
}

// Arbiter decides, event by event, whether the underlay target
// receives pointer input. The zero value is not usable; use
// NewArbiter.
//
// All methods are safe for concurrent use. Receivers are called with
// the Arbiter's lock held and must not call back into it.
type Arbiter struct {
	mu      sync.Mutex
	enabled bool
	target  Receiver
	claims  map[pointer.ID]struct{}

	// cancelOnDisable sends the target a Cancel when arbitration
	// is disabled in the middle of a forwarded sequence.
	cancelOnDisable bool

	// last is the most recent event forwarded to the target
	// in the current sequence.
	last    pointer.Event
	hasLast bool
}

// Option configures an Arbiter.
type Option func(a *Arbiter)

// CancelOnDisable controls whether SetEnabled(false) cancels a
// sequence the target is in the middle of. The default leaves the
// target's gesture as it is.
func CancelOnDisable(enable bool) Option {
	return func(a *Arbiter) {
		a.cancelOnDisable = enable
	}
}

// NewArbiter returns an enabled Arbiter without a target.
func NewArbiter(options ...Option) *Arbiter {
	a := &Arbiter{
		enabled: true,
		claims:  make(map[pointer.ID]struct{}),
	}
	for _, o := range options {
		o(a)
	}
	return a
}

// Dispatch processes one event from the host stream and reports
// whether it was forwarded to the target. Events that are not
// forwarded are dropped silently. The target receives its own copy
// of e.
func (a *Arbiter) Dispatch(e pointer.Event) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case e.EndsSequence():
		a.resetSequence()
	case e.Kind == pointer.SecondaryRelease:
		if id, ok := e.ActionID(); ok {
			delete(a.claims, id)
		}
	}
	if !a.enabled || a.target == nil || a.blocked(e) {
		return false
	}
	a.last = e.Clone()
	a.hasLast = true
	a.target.DispatchPointer(e.Clone())
	return true
}

// blocked reports whether any pointer of e is claimed. A single
// claimed pointer blocks the whole event so the target never sees a
// partial multi-touch event.
func (a *Arbiter) blocked(e pointer.Event) bool {
	if len(a.claims) == 0 {
		return false
	}
	for _, p := range e.Pointers {
		if _, claimed := a.claims[p.ID]; claimed {
			return true
		}
	}
	return false
}

// Claim reserves the pointer for the overlay layer. If the target
// has received events in the current sequence, it is sent a single
// Cancel shaped like the last of them.
func (a *Arbiter) Claim(id pointer.ID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.claims[id] = struct{}{}
	a.cancelTarget()
}

// Release removes the claim on the pointer. Events containing the
// pointer are forwarded again once no other claimed pointer is part
// of them; the target does not get the cancelled gesture back.
func (a *Arbiter) Release(id pointer.ID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.claims, id)
}

// Claimed reports whether the pointer is claimed.
func (a *Arbiter) Claimed(id pointer.ID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.claims[id]
	return ok
}

// SetEnabled enables or disables forwarding to the target.
func (a *Arbiter) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
	if !enabled && a.cancelOnDisable {
		a.cancelTarget()
	}
}

// Enabled reports whether forwarding is enabled.
func (a *Arbiter) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// SetTarget replaces the target, or clears it if r is nil. The
// previous target is not sent a Cancel.
func (a *Arbiter) SetTarget(r Receiver) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.target = r
}

// Target returns the current target, or nil.
func (a *Arbiter) Target() Receiver {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.target
}

// Close clears the claims, the retained event and the target.
func (a *Arbiter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetSequence()
	a.target = nil
}

func (a *Arbiter) cancelTarget() {
	if !a.hasLast {
		return
	}
	if a.target != nil {
		e := a.last.Clone()
		e.Kind = pointer.Cancel
		a.target.DispatchPointer(e)
	}
	a.dropLast()
}

func (a *Arbiter) resetSequence() {
	for id := range a.claims {
		delete(a.claims, id)
	}
	a.dropLast()
}

func (a *Arbiter) dropLast() {
	a.last = pointer.Event{}
	a.hasLast = false
}
