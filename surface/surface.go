// SPDX-License-Identifier: Unlicense OR MIT

/*
Package surface manages the underlay surfaces composited beneath the
overlay layer.

A Registry creates surfaces lazily from registered factories, keeps
at most one of them active and reports the active surface's content
to the Arbiter that forwards pointer input to it. Applications supply
one View implementation per kind of surface; the Registry drives its
hooks.
*/
package surface

import (
	"gioui.org/x/underlay/io/event"
	"gioui.org/x/underlay/io/pointer"
	"gioui.org/x/underlay/io/system"
)

// View is the application side of an underlay surface. The Registry
// calls its methods with the registry lock held; they must not call
// back into the Registry.
type View interface {
	// CreateContent builds the content attached to the
	// underlay container.
	CreateContent(ctx Context) (Content, error)
	// Created is called after the content is attached.
	Created()
	// Show is called when the surface becomes visible.
	Show()
	// Hide is called when a visible surface is hidden.
	Hide()
	// Lifecycle is called for every host lifecycle event,
	// whether or not the surface is visible.
	Lifecycle(e system.Event)
	// Dispose is called once, when the surface is removed.
	Dispose()
}

// BaseView implements the View hooks as no-ops. Embed it to
// implement only the hooks you need.
type BaseView struct{}

// Content is the natively rendered part of a surface. It receives the
// pointer events the Arbiter forwards while the surface is active.
type Content interface {
	DispatchPointer(e pointer.Event)
}

// Container is the host's underlay child list. The Registry is its
// only writer.
type Container interface {
	// Attach adds c on top of the underlay stack.
	Attach(c Content)
	// Detach removes c.
	Detach(c Content)
	// Raise moves c to the top of the underlay stack.
	Raise(c Content)
	// SetVisible shows or hides c.
	SetVisible(c Content, visible bool)
}

// Context is passed to View.CreateContent.
type Context struct {
	// Key is the registry key of the surface.
	Key string
	// Host is the host rendering context given to
	// Registry.Attach.
	Host event.Tag
}

// Factory returns a new View. It is called once per created surface.
type Factory func() View

// State is the lifecycle state of a surface.
type State uint8

const (
	// Created surfaces have content but have not been shown
	// or hidden yet.
	Created State = iota
	Visible
	Hidden
	// Disposed is terminal.
	Disposed
)

func (BaseView) Created()                 {}
func (BaseView) Show()                    {}
func (BaseView) Hide()                    {}
func (BaseView) Lifecycle(e system.Event) {}
func (BaseView) Dispose()                 {}

func (s State) String() string {
	switch s {
	case Created:
		return "Created"
	case Visible:
		return "Visible"
	case Hidden:
		return "Hidden"
	case Disposed:
		return "Disposed"
	default:
		panic("unknown State")
	}
}
