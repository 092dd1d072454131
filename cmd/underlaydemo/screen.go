// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"gioui.org/x/underlay/f32"
	"gioui.org/x/underlay/io/pointer"
	"gioui.org/x/underlay/surface"
)

// stack is the underlay container of the terminal host. The last
// visible child is drawn.
type stack struct {
	children []surface.Content
	visible  map[surface.Content]bool
}

func newStack() *stack {
	return &stack{visible: make(map[surface.Content]bool)}
}

func (s *stack) Attach(c surface.Content) {
	s.children = append(s.children, c)
}

func (s *stack) Detach(c surface.Content) {
	for i, ch := range s.children {
		if ch == c {
			s.children = append(s.children[:i], s.children[i+1:]...)
			break
		}
	}
	delete(s.visible, c)
}

func (s *stack) Raise(c surface.Content) {
	for i, ch := range s.children {
		if ch == c {
			s.children = append(append(s.children[:i], s.children[i+1:]...), c)
			return
		}
	}
}

func (s *stack) SetVisible(c surface.Content, visible bool) {
	s.visible[c] = visible
}

// top returns the topmost visible list, or nil.
func (s *stack) top() *list {
	for i := len(s.children) - 1; i >= 0; i-- {
		c := s.children[i]
		if !s.visible[c] {
			continue
		}
		if l, ok := c.(*list); ok {
			return l
		}
	}
	return nil
}

// mouse converts tcell mouse reports into pointer events. The
// terminal reports a single pointer, so every sequence has one
// pointer with id 0.
type mouse struct {
	start   time.Time
	pressed bool
}

// convert returns the pointer event for ev and whether there is one.
// Motion without a pressed button is not a touch and is ignored.
func (m *mouse) convert(ev *tcell.EventMouse) (pointer.Event, bool) {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0
	var kind pointer.Kind
	switch {
	case down && !m.pressed:
		kind = pointer.Press
	case down:
		kind = pointer.Move
	case m.pressed:
		kind = pointer.Release
	default:
		return pointer.Event{}, false
	}
	m.pressed = down
	e := pointer.Event{
		Kind:   kind,
		Source: pointer.Mouse,
		Pointers: []pointer.Pointer{{
			ID:       0,
			Position: f32.Pt(float32(x), float32(y)),
		}},
	}
	if !m.start.IsZero() {
		e.Time = ev.When().Sub(m.start)
	}
	if down {
		e.Buttons = pointer.ButtonPrimary
	}
	return e, true
}
