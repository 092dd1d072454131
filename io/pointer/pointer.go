// SPDX-License-Identifier: Unlicense OR MIT

/*
Package pointer implements the pointer events delivered by the host.

Unlike a per-pointer stream, every Event describes the complete set of
pointers in contact when it was generated. Kind describes what changed
and ActionIndex points at the pointer in Pointers that caused the
change.

A touch sequence starts with a Press of the first pointer and ends
with the Release of the last pointer or a Cancel. Additional pointers
joining and leaving in between are reported as SecondaryPress and
SecondaryRelease.
*/
package pointer

import (
	"strings"
	"time"

	"gioui.org/x/underlay/f32"
)

// Event is a multi-pointer event.
type Event struct {
	Kind   Kind
	Source Source
	// ActionIndex is the index into Pointers of the pointer
	// that caused the event.
	ActionIndex int
	// Pointers lists every pointer in contact, including the
	// action pointer.
	Pointers []Pointer
	// Time is when the event was received. The
	// timestamp is relative to an undefined base.
	Time time.Duration
	// Buttons are the set of pressed mouse buttons for this event.
	Buttons Buttons
}

// Pointer is one contact of an Event.
type Pointer struct {
	// ID tracks a particular pointer from Press or
	// SecondaryPress to Release, SecondaryRelease or Cancel.
	ID       ID
	Position f32.Point
	Pressure float32
}

// ID is the identifier of a pointer.
type ID uint16

// Kind of an Event.
type Kind uint8

// Source of an Event.
type Source uint8

// Buttons is a set of mouse buttons
type Buttons uint8

const (
	// A Cancel event is generated when the current sequence is
	// interrupted, either by the host or because another layer
	// took ownership of its pointers.
	Cancel Kind = 1 << iota
	// Press of the first pointer in a sequence.
	Press
	// Release of the last pointer in a sequence.
	Release
	// Move of one or more pointers.
	Move
	// SecondaryPress of a pointer while others are down.
	SecondaryPress
	// SecondaryRelease of a pointer while others remain down.
	SecondaryRelease
)

// SequenceEnd is the set of kinds that end a touch sequence.
const SequenceEnd = Release | Cancel

const (
	// Mouse generated event.
	Mouse Source = iota
	// Touch generated event.
	Touch
	// Stylus generated event.
	Stylus
)

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
)

// ActionID returns the id of the pointer that caused the event. It
// returns false if ActionIndex is out of range.
func (e Event) ActionID() (ID, bool) {
	if e.ActionIndex < 0 || e.ActionIndex >= len(e.Pointers) {
		return 0, false
	}
	return e.Pointers[e.ActionIndex].ID, true
}

// Clone returns a copy of e that shares no memory with it.
func (e Event) Clone() Event {
	if e.Pointers != nil {
		e.Pointers = append([]Pointer(nil), e.Pointers...)
	}
	return e
}

// EndsSequence reports whether e is the last event of its touch
// sequence.
func (e Event) EndsSequence() bool {
	return e.Kind&SequenceEnd != 0
}

func (t Kind) String() string {
	if t == Cancel {
		return "Cancel"
	}
	var buf strings.Builder
	for tt := Kind(1); tt > 0; tt <<= 1 {
		if t&tt > 0 {
			if buf.Len() > 0 {
				buf.WriteByte('|')
			}
			buf.WriteString((t & tt).string())
		}
	}
	return buf.String()
}

func (t Kind) string() string {
	switch t {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Cancel:
		return "Cancel"
	case Move:
		return "Move"
	case SecondaryPress:
		return "SecondaryPress"
	case SecondaryRelease:
		return "SecondaryRelease"
	default:
		panic("unknown Kind")
	}
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	case Stylus:
		return "Stylus"
	default:
		panic("unknown source")
	}
}

// Contain reports whether the set b contains
// all of the buttons.
func (b Buttons) Contain(buttons Buttons) bool {
	return b&buttons == buttons
}

func (b Buttons) String() string {
	var strs []string
	if b.Contain(ButtonPrimary) {
		strs = append(strs, "ButtonPrimary")
	}
	if b.Contain(ButtonSecondary) {
		strs = append(strs, "ButtonSecondary")
	}
	if b.Contain(ButtonTertiary) {
		strs = append(strs, "ButtonTertiary")
	}
	return strings.Join(strs, "|")
}

func (Event) ImplementsEvent() {}
