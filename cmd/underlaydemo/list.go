// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"image/color"
	"log"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"gioui.org/x/underlay/f32"
	"gioui.org/x/underlay/gesture"
	"gioui.org/x/underlay/io/pointer"
	"gioui.org/x/underlay/io/system"
	"gioui.org/x/underlay/surface"
)

// listView is an underlay surface showing a scrollable list of cards
// in a single color.
type listView struct {
	cfg    surfaceConfig
	logger *log.Logger
	list   *list
}

// list is the content of a listView. It scrolls while dragged and
// selects the item under a tap.
type list struct {
	title  string
	base   color.RGBA
	items  int
	offset int

	scroll gesture.Scroll
	// startOff is the offset when the current drag began.
	startOff int
	selected int
}

const cardHeight = 3

func newListView(cfg surfaceConfig, logger *log.Logger) surface.Factory {
	return func() surface.View {
		return &listView{cfg: cfg, logger: logger}
	}
}

func (v *listView) CreateContent(ctx surface.Context) (surface.Content, error) {
	c, err := parseColor(v.cfg.Color)
	if err != nil {
		return nil, err
	}
	v.list = &list{title: v.cfg.Title, base: c, items: v.cfg.Items, selected: -1}
	return v.list, nil
}

func (v *listView) Created() {
	v.logger.Printf("%s: created", v.cfg.Key)
}

func (v *listView) Show() {
	v.logger.Printf("%s: shown", v.cfg.Key)
}

func (v *listView) Hide() {
	v.logger.Printf("%s: hidden", v.cfg.Key)
}

func (v *listView) Lifecycle(e system.Event) {
	switch e := e.(type) {
	case system.SaveStateEvent:
		if e.State == nil || v.list == nil {
			return
		}
		e.State[v.cfg.Key] = []byte(strconv.Itoa(v.list.offset))
	case system.LowMemoryEvent:
		v.logger.Printf("%s: low memory", v.cfg.Key)
	case system.StageEvent:
		v.logger.Printf("%s: %v", v.cfg.Key, e.Stage)
	}
}

func (v *listView) Dispose() {
	v.logger.Printf("%s: disposed", v.cfg.Key)
	v.list = nil
}

func (l *list) DispatchPointer(e pointer.Event) {
	wasDragging := l.scroll.State() == gesture.StateDragging
	d := l.scroll.Update(e, gesture.Vertical)
	dragging := l.scroll.State() == gesture.StateDragging
	switch {
	case e.Kind == pointer.Cancel:
		// The overlay took the pointer; undo the drag.
		if wasDragging {
			l.scrollTo(l.startOff)
		}
	case dragging && !wasDragging:
		l.startOff = l.offset
	case d != 0:
		l.scrollTo(l.offset + d)
	case e.Kind == pointer.Release && wasDragging && !l.scroll.Moved():
		if len(e.Pointers) == 0 {
			return
		}
		p := e.Pointers[0].Position.Sub(f32.Pt(0, headerRows))
		row := int(p.Y) + l.offset
		l.selected = row / cardHeight
		if row < 0 || l.selected >= l.items {
			l.selected = -1
		}
	}
}

func (l *list) scrollTo(off int) {
	limit := l.items*cardHeight - cardHeight
	if off > limit {
		off = limit
	}
	if off < 0 {
		off = 0
	}
	l.offset = off
}

// headerRows is the height of the tab bar drawn by the overlay.
const headerRows = 1

func (l *list) draw(s tcell.Screen, width, height int) {
	bg := tcell.NewRGBColor(int32(l.base.R), int32(l.base.G), int32(l.base.B))
	light := tcell.NewRGBColor(lighten(l.base.R), lighten(l.base.G), lighten(l.base.B))
	back := tcell.StyleDefault.Background(light).Foreground(tcell.ColorBlack)
	for y := headerRows; y < height; y++ {
		for x := 0; x < width; x++ {
			s.SetContent(x, y, ' ', nil, back)
		}
	}
	for i := 0; i < l.items; i++ {
		top := headerRows + i*cardHeight - l.offset
		if top+cardHeight <= headerRows || top >= height {
			continue
		}
		card := tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
		if i == l.selected {
			card = card.Reverse(true)
		}
		for row := 0; row < cardHeight-1; row++ {
			y := top + row
			if y < headerRows || y >= height {
				continue
			}
			for x := 2; x < width-2; x++ {
				s.SetContent(x, y, ' ', nil, card)
			}
		}
		if top >= headerRows {
			s.SetContent(2, top, ' ', nil, card.Background(bg))
			drawText(s, 4, top, card.Bold(true), fmt.Sprintf("%s item #%d", l.title, i+1))
		}
		if y := top + 1; y >= headerRows && y < height {
			drawText(s, 4, y, card, "Drag to scroll, tap to select")
		}
	}
}

func lighten(v uint8) int32 {
	return int32(float32(v)*0.15 + 255*0.85)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
