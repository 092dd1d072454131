// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"

	"gioui.org/x/underlay/app"
	"gioui.org/x/underlay/f32"
	"gioui.org/x/underlay/io/command"
	"gioui.org/x/underlay/io/pointer"
)

var discard = log.New(io.Discard, "", 0)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"red", color.RGBA{R: 0xff, A: 0xff}, true},
		{" DarkOrange ", color.RGBA{R: 0xff, G: 0x8c, A: 0xff}, true},
		{"#1e88e5", color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}, true},
		{"#12345", color.RGBA{}, false},
		{"#gggggg", color.RGBA{}, false},
		{"nocolor", color.RGBA{}, false},
	}
	for _, tc := range tests {
		got, err := parseColor(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("parseColor(%q) error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadConfig(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Surfaces) != 3 || cfg.Surfaces[0].Key != "red_view" {
		t.Errorf("unexpected default surfaces %+v", cfg.Surfaces)
	}

	path := filepath.Join(dir, "surfaces.toml")
	data := `
cancel_on_disable = true

[[surface]]
key = "map"
color = "teal"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []surfaceConfig{{Key: "map", Title: "map", Color: "teal", Items: 20}}
	if !cfg.CancelOnDisable || !reflect.DeepEqual(cfg.Surfaces, want) {
		t.Errorf("got %+v", cfg)
	}

	for name, data := range map[string]string{
		"empty":     ``,
		"nokey":     "[[surface]]\ncolor = \"red\"\n",
		"duplicate": "[[surface]]\nkey = \"a\"\ncolor = \"red\"\n[[surface]]\nkey = \"a\"\ncolor = \"red\"\n",
		"badcolor":  "[[surface]]\nkey = \"a\"\ncolor = \"sparkly\"\n",
		"syntax":    "[[surface]\n",
	} {
		path := filepath.Join(dir, name+".toml")
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := loadConfig(path); err == nil {
			t.Errorf("%s: loadConfig succeeded", name)
		}
	}
}

func TestMouseConvert(t *testing.T) {
	var m mouse
	var kinds []pointer.Kind
	for _, ev := range []*tcell.EventMouse{
		tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(3, 6, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(3, 6, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(5, 6, tcell.ButtonNone, tcell.ModNone),
	} {
		if e, ok := m.convert(ev); ok {
			kinds = append(kinds, e.Kind)
			if e.Pointers[0].ID != 0 {
				t.Errorf("pointer id %d, want 0", e.Pointers[0].ID)
			}
		}
	}
	want := []pointer.Kind{pointer.Press, pointer.Move, pointer.Release}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("got %v, want %v", kinds, want)
	}
}

func touchAt(kind pointer.Kind, x, y float32) pointer.Event {
	e := pointer.Event{
		Kind:     kind,
		Source:   pointer.Mouse,
		Pointers: []pointer.Pointer{{Position: f32.Pt(x, y)}},
	}
	if kind != pointer.Release {
		e.Buttons = pointer.ButtonPrimary
	}
	return e
}

func TestListScroll(t *testing.T) {
	l := &list{items: 10, selected: -1}
	l.DispatchPointer(touchAt(pointer.Press, 5, 10))
	l.DispatchPointer(touchAt(pointer.Move, 5, 4))
	if l.offset != 6 {
		t.Fatalf("offset %d after drag, want 6", l.offset)
	}
	l.DispatchPointer(touchAt(pointer.Cancel, 5, 4))
	if l.offset != 0 {
		t.Errorf("offset %d after cancel, want 0", l.offset)
	}
	// Tap selects the item under the pointer.
	l.DispatchPointer(touchAt(pointer.Press, 5, 4))
	l.DispatchPointer(touchAt(pointer.Release, 5, 4))
	if l.selected != 1 {
		t.Errorf("selected %d, want 1", l.selected)
	}
	l.DispatchPointer(touchAt(pointer.Press, 5, 100))
	l.DispatchPointer(touchAt(pointer.Move, 5, 0))
	if limit := 9 * cardHeight; l.offset != limit {
		t.Errorf("offset %d, want clamped to %d", l.offset, limit)
	}
}

// TestTabClaimsPointer drives the demo's host the way the terminal
// does: a drag on the surface scrolls it until the tab bar claims the
// pointer.
func TestTabClaimsPointer(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatal(err)
	}
	st := newStack()
	var tabs *tabBar
	var h *app.Host
	tabs = newTabBar(cfg.Surfaces, func(c command.Call) (interface{}, error) {
		return h.Invoke(c)
	}, discard)
	h = app.NewHost(app.Overlay(tabs))
	for _, s := range cfg.Surfaces {
		h.RegisterFactory(s.Key, newListView(s, discard))
	}
	h.Attach(nil, st)
	tabs.show("green_view")
	l := st.top()
	if l == nil || l.title != "Green" {
		t.Fatalf("green surface not on top: %+v", l)
	}

	h.DispatchPointer(touchAt(pointer.Press, 5, 10))
	h.DispatchPointer(touchAt(pointer.Move, 5, 7))
	if l.offset != 3 {
		t.Fatalf("offset %d, want 3", l.offset)
	}
	h.DispatchPointer(touchAt(pointer.Release, 5, 7))

	// Press on the first tab: the surface sees the press, then the
	// claim cancels it.
	h.DispatchPointer(touchAt(pointer.Press, 1, 0))
	if !h.Arbiter().Claimed(0) {
		t.Fatal("tab press did not claim the pointer")
	}
	if h.DispatchPointer(touchAt(pointer.Move, 2, 0)) {
		t.Error("claimed move reached the surface")
	}
	h.DispatchPointer(touchAt(pointer.Release, 2, 0))
	if k, _ := h.Registry().ActiveKey(); k != "red_view" {
		t.Errorf("active %q, want red_view", k)
	}
	if st.top().title != "Red" {
		t.Error("red surface not raised")
	}
	if l.offset != 3 {
		t.Errorf("green offset %d changed by the tab gesture", l.offset)
	}
}

func TestTabAt(t *testing.T) {
	tabs := newTabBar([]surfaceConfig{{Key: "a", Title: "Red"}, {Key: "b", Title: "Green"}}, nil, discard)
	tests := []struct {
		p    f32.Point
		want int
	}{
		{f32.Pt(0, 0), 0},
		{f32.Pt(6.5, 0.5), 0},
		{f32.Pt(7, 0), 1},
		{f32.Pt(15, 0), 1},
		{f32.Pt(16, 0), -1},
		{f32.Pt(3, 1), -1},
	}
	for _, tc := range tests {
		if got := tabs.tabAt(tc.p); got != tc.want {
			t.Errorf("tabAt(%v) = %d, want %d", tc.p, got, tc.want)
		}
	}
}

func TestListTapBelowHeader(t *testing.T) {
	l := &list{items: 2, selected: -1}
	l.DispatchPointer(touchAt(pointer.Press, 5, 7))
	l.DispatchPointer(touchAt(pointer.Release, 5, 7))
	if l.selected != -1 {
		t.Errorf("tap past the last item selected %d", l.selected)
	}
	l.DispatchPointer(touchAt(pointer.Press, 5, 1))
	l.DispatchPointer(touchAt(pointer.Release, 5, 1))
	if l.selected != 0 {
		t.Errorf("selected %d, want 0", l.selected)
	}
}
