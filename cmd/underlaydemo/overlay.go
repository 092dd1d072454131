// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"gioui.org/x/underlay/f32"
	"gioui.org/x/underlay/gesture"
	"gioui.org/x/underlay/io/command"
	"gioui.org/x/underlay/io/pointer"
)

// tabBar is the overlay layer: a row of tabs, one per surface. A
// press on a tab claims the pointer so the surface below stops
// scrolling; releasing on the same tab shows its surface.
type tabBar struct {
	invoke  func(command.Call) (interface{}, error)
	logger  *log.Logger
	tabs    []surfaceConfig
	// rects are the hit areas of tabs, left to right.
	rects   []f32.Rectangle
	click   gesture.Click
	pressed int
}

// tabPadding is the blank space on either side of a tab title.
const tabPadding = 2

func newTabBar(tabs []surfaceConfig, invoke func(command.Call) (interface{}, error), logger *log.Logger) *tabBar {
	t := &tabBar{invoke: invoke, logger: logger, tabs: tabs, pressed: -1}
	var left float32
	for _, tab := range tabs {
		w := float32(len(tab.Title) + 2*tabPadding)
		r := f32.Rect(left, 0, left+w, headerRows)
		t.rects = append(t.rects, r)
		left += r.Dx()
	}
	return t
}

func (t *tabBar) DispatchPointer(e pointer.Event) {
	ce, ok := t.click.Update(e, t.hit)
	if !ok {
		return
	}
	tab := t.tabAt(ce.Position)
	switch ce.Kind {
	case gesture.KindPress:
		t.pressed = tab
		t.call(command.ClaimPointer, command.ArgPointerID, int(ce.PointerID))
	case gesture.KindClick:
		if tab != -1 && tab == t.pressed {
			t.show(t.tabs[tab].Key)
		}
		t.pressed = -1
	case gesture.KindCancel:
		t.pressed = -1
	}
}

func (t *tabBar) hit(p f32.Point) bool {
	return t.tabAt(p) != -1
}

// show creates the surface on first use and makes it active.
func (t *tabBar) show(key string) {
	if ok, _ := t.call(command.AddSurface, command.ArgKey, key).(bool); !ok {
		return
	}
	t.call(command.ShowSurface, command.ArgKey, key)
}

func (t *tabBar) call(method string, args ...interface{}) interface{} {
	c := command.Call{Method: method}
	if len(args) == 2 {
		c.Args = map[string]interface{}{args[0].(string): args[1]}
	}
	res, err := t.invoke(c)
	if err != nil {
		t.logger.Printf("%s: %v", method, err)
	}
	return res
}

// tabAt returns the index of the tab under p, or -1.
func (t *tabBar) tabAt(p f32.Point) int {
	for i, r := range t.rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

func (t *tabBar) draw(s tcell.Screen, width int, active string) {
	bar := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	for x := 0; x < width; x++ {
		s.SetContent(x, 0, ' ', nil, bar)
	}
	for i, tab := range t.tabs {
		style := bar
		if tab.Key == active {
			style = style.Bold(true).Underline(true)
		}
		if i == t.pressed {
			style = style.Reverse(true)
		}
		r := t.rects[i]
		for x := int(r.Min.X); x < int(r.Max.X); x++ {
			s.SetContent(x, int(r.Min.Y), ' ', nil, style)
		}
		at := r.Min.Add(f32.Pt(tabPadding, 0))
		drawText(s, int(at.X), int(at.Y), style, tab.Title)
	}
}
