// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains the marker types shared by the pointer and
// lifecycle streams.
package event

// Tag is an opaque handle owned by the host, such as the rendering
// context underlay views are created in. The core never inspects a
// Tag; it only passes it along.
type Tag interface{}

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}
