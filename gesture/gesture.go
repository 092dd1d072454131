// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements common pointer gestures for the overlay
layer.

Gestures accept low level pointer Events and detect higher level
actions such as clicks and drags. Overlay clicks are the usual trigger
for claiming a pointer away from the underlay surface; Scroll serves
underlay content that must undo a drag the overlay cancelled.
*/
package gesture

import (
	"math"
	"time"

	"gioui.org/x/underlay/f32"
	"gioui.org/x/underlay/io/pointer"
)

// The duration is somewhat arbitrary.
const doubleClickDuration = 200 * time.Millisecond

// Click detects click gestures in the form
// of ClickEvents.
type Click struct {
	// state tracks the gesture state.
	state ClickState
	// pid is the pointer that pressed.
	pid pointer.ID
	// clicks is incremented for each click, and reset
	// when the next press comes too late.
	clicks    int
	clickedAt time.Duration
}

type ClickState uint8

// ClickEvent represent a click action, either a
// KindPress for the beginning of a click, a KindClick
// for a completed click or a KindCancel for an
// abandoned one.
type ClickEvent struct {
	Kind      ClickKind
	Position  f32.Point
	Source    pointer.Source
	PointerID pointer.ID
	// NumClicks records successive clicks occurring
	// within a short duration of each other.
	NumClicks int
}

type ClickKind uint8

// Scroll detects drag gestures and reduces them to
// scroll distances along one axis.
type Scroll struct {
	dragging bool
	// moved is set once the drag passes touchSlop, and
	// kept until the next press.
	moved bool
	axis  Axis
	pid   pointer.ID
	start int
	last  int
}

type ScrollState uint8

type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

const (
	// StateNormal is the default click state.
	StateNormal ClickState = iota
	// StatePressed is then a pointer is pressed.
	StatePressed
)

const (
	// StateIdle is the default scroll state.
	StateIdle ScrollState = iota
	// StateDragging is reported during drag gestures.
	StateDragging
)

// touchSlop is the distance a drag must travel before it
// scrolls.
const touchSlop = 1

const (
	// KindPress is reported for the first pointer
	// press.
	KindPress ClickKind = iota
	// KindClick is reported when a click action
	// is complete.
	KindClick
	// KindCancel is reported when the gesture is
	// cancelled or the pointer leaves the area.
	KindCancel
)

// State reports the click state.
func (c *Click) State() ClickState {
	return c.state
}

// Pressed reports whether a pointer is pressing.
func (c *Click) Pressed() bool {
	return c.state == StatePressed
}

// Update processes one event. The hit function reports whether a
// position is inside the clickable area.
func (c *Click) Update(e pointer.Event, hit func(f32.Point) bool) (ClickEvent, bool) {
	switch e.Kind {
	case pointer.Press, pointer.SecondaryPress:
		if c.state == StatePressed || e.ActionIndex < 0 || e.ActionIndex >= len(e.Pointers) {
			break
		}
		p := e.Pointers[e.ActionIndex]
		if !hit(p.Position) {
			break
		}
		if e.Source == pointer.Mouse && e.Buttons != pointer.ButtonPrimary {
			break
		}
		if e.Time-c.clickedAt > doubleClickDuration {
			c.clicks = 0
		}
		c.clickedAt = e.Time
		c.state = StatePressed
		c.pid = p.ID
		return ClickEvent{Kind: KindPress, Position: p.Position, Source: e.Source, PointerID: p.ID}, true
	case pointer.Move:
		p, ok := c.tracked(e)
		if !ok || hit(p.Position) {
			break
		}
		c.state = StateNormal
		return ClickEvent{Kind: KindCancel, Position: p.Position, Source: e.Source, PointerID: p.ID}, true
	case pointer.Release, pointer.SecondaryRelease:
		p, ok := c.tracked(e)
		if !ok {
			break
		}
		if id, _ := e.ActionID(); e.Kind == pointer.SecondaryRelease && id != c.pid {
			break
		}
		c.state = StateNormal
		c.clicks++
		return ClickEvent{Kind: KindClick, Position: p.Position, Source: e.Source, PointerID: p.ID, NumClicks: c.clicks}, true
	case pointer.Cancel:
		if c.state != StatePressed {
			break
		}
		c.state = StateNormal
		return ClickEvent{Kind: KindCancel, Source: e.Source, PointerID: c.pid}, true
	}
	return ClickEvent{}, false
}

// tracked returns the pressing pointer in e, if the click is
// pressed.
func (c *Click) tracked(e pointer.Event) (pointer.Pointer, bool) {
	if c.state != StatePressed {
		return pointer.Pointer{}, false
	}
	for _, p := range e.Pointers {
		if p.ID == c.pid {
			return p, true
		}
	}
	return pointer.Pointer{}, false
}

// Update processes one event and returns the distance to scroll
// along axis. Positive distances move the content towards the start
// of the axis, following the pointer. A Cancel ends the drag; undoing
// the distance already scrolled is up to the caller.
func (s *Scroll) Update(e pointer.Event, axis Axis) int {
	if s.axis != axis {
		// A drag along the old axis doesn't carry over.
		s.axis = axis
		s.dragging = false
	}
	switch e.Kind {
	case pointer.Press, pointer.SecondaryPress:
		if s.dragging || e.ActionIndex < 0 || e.ActionIndex >= len(e.Pointers) {
			break
		}
		if e.Source == pointer.Mouse && e.Buttons != pointer.ButtonPrimary {
			break
		}
		p := e.Pointers[e.ActionIndex]
		v := s.val(p.Position)
		s.start, s.last = v, v
		s.dragging, s.moved = true, false
		s.pid = p.ID
	case pointer.Move:
		p, ok := s.tracked(e)
		if !ok {
			break
		}
		v := s.val(p.Position)
		if !s.moved {
			if d := s.start - v; d < touchSlop && d > -touchSlop {
				break
			}
			s.moved = true
		}
		dist := s.last - v
		s.last = v
		return dist
	case pointer.SecondaryRelease:
		if id, ok := e.ActionID(); !ok || id != s.pid {
			break
		}
		s.dragging = false
	case pointer.Release, pointer.Cancel:
		s.dragging = false
	}
	return 0
}

// tracked returns the dragging pointer in e, if any.
func (s *Scroll) tracked(e pointer.Event) (pointer.Pointer, bool) {
	if !s.dragging {
		return pointer.Pointer{}, false
	}
	for _, p := range e.Pointers {
		if p.ID == s.pid {
			return p, true
		}
	}
	return pointer.Pointer{}, false
}

func (s *Scroll) val(p f32.Point) int {
	v := p.Y
	if s.axis == Horizontal {
		v = p.X
	}
	return int(math.Round(float64(v)))
}

// State reports the scroll state.
func (s *Scroll) State() ScrollState {
	if s.dragging {
		return StateDragging
	}
	return StateIdle
}

// Moved reports whether the current or most recent drag travelled
// far enough to scroll.
func (s *Scroll) Moved() bool {
	return s.moved
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		panic("invalid Axis")
	}
}

func (s ScrollState) String() string {
	switch s {
	case StateIdle:
		return "StateIdle"
	case StateDragging:
		return "StateDragging"
	default:
		panic("invalid ScrollState")
	}
}

func (ck ClickKind) String() string {
	switch ck {
	case KindPress:
		return "KindPress"
	case KindClick:
		return "KindClick"
	case KindCancel:
		return "KindCancel"
	default:
		panic("invalid ClickKind")
	}
}

func (cs ClickState) String() string {
	switch cs {
	case StateNormal:
		return "StateNormal"
	case StatePressed:
		return "StatePressed"
	default:
		panic("invalid ClickState")
	}
}
