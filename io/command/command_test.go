// SPDX-License-Identifier: Unlicense OR MIT

package command

import (
	"errors"
	"testing"

	"gioui.org/x/underlay/io/pointer"
	"gioui.org/x/underlay/io/router"
	"gioui.org/x/underlay/surface"
)

type nopContent struct {
	events int
}

func (c *nopContent) DispatchPointer(pointer.Event) { c.events++ }

type nopView struct {
	surface.BaseView
	content *nopContent
}

func (v *nopView) CreateContent(surface.Context) (surface.Content, error) {
	v.content = new(nopContent)
	return v.content, nil
}

type nopContainer struct{}

func (nopContainer) Attach(surface.Content)           {}
func (nopContainer) Detach(surface.Content)           {}
func (nopContainer) Raise(surface.Content)            {}
func (nopContainer) SetVisible(surface.Content, bool) {}

func newDispatcher(attached bool) *Dispatcher {
	a := router.NewArbiter()
	r := surface.NewRegistry(a)
	r.RegisterFactory("a", func() surface.View { return new(nopView) })
	if attached {
		r.Attach(nil, nopContainer{})
	}
	return &Dispatcher{Registry: r, Arbiter: a}
}

func key(k string) map[string]interface{} {
	return map[string]interface{}{ArgKey: k}
}

func invoke(t *testing.T, d *Dispatcher, method string, args map[string]interface{}) interface{} {
	t.Helper()
	res, err := d.Invoke(Call{Method: method, Args: args})
	if err != nil {
		t.Fatalf("%s: %v", method, err)
	}
	return res
}

func TestDispatcherSurfaces(t *testing.T) {
	d := newDispatcher(true)
	steps := []struct {
		method string
		args   map[string]interface{}
		want   interface{}
	}{
		{HasSurface, key("a"), false},
		{ShowSurface, key("a"), false},
		{AddSurface, key("a"), true},
		{HasSurface, key("a"), true},
		{GetActiveKey, nil, nil},
		{ShowSurface, key("a"), true},
		{GetActiveKey, nil, "a"},
		{HideSurface, key("a"), true},
		{GetActiveKey, nil, nil},
		{RemoveSurface, key("a"), true},
		{RemoveSurface, key("a"), false},
		{AddSurface, key("missing"), false},
	}
	for i, s := range steps {
		if got := invoke(t, d, s.method, s.args); got != s.want {
			t.Errorf("step %d: %s = %v, want %v", i, s.method, got, s.want)
		}
	}
}

func TestDispatcherNoHostContext(t *testing.T) {
	d := newDispatcher(false)
	if got := invoke(t, d, AddSurface, key("a")); got != false {
		t.Errorf("addSurface before attach = %v, want false", got)
	}
	d.Registry.Attach(nil, nopContainer{})
	if got := invoke(t, d, AddSurface, key("a")); got != true {
		t.Errorf("addSurface after attach = %v, want true", got)
	}
}

func TestDispatcherArbitration(t *testing.T) {
	d := newDispatcher(true)
	invoke(t, d, SetArbitrationEnabled, map[string]interface{}{ArgEnabled: false})
	if got := invoke(t, d, IsArbitrationEnabled, nil); got != false {
		t.Errorf("isArbitrationEnabled = %v, want false", got)
	}
	invoke(t, d, ClaimPointer, map[string]interface{}{ArgPointerID: 3})
	if !d.Arbiter.Claimed(3) {
		t.Error("pointer 3 not claimed")
	}
	// JSON numbers decode to float64.
	invoke(t, d, ReleasePointer, map[string]interface{}{ArgPointerID: float64(3)})
	if d.Arbiter.Claimed(3) {
		t.Error("pointer 3 still claimed")
	}
}

func TestDispatcherErrors(t *testing.T) {
	d := newDispatcher(true)
	tests := []struct {
		call Call
		code Code
	}{
		{Call{Method: AddSurface}, InvalidArgument},
		{Call{Method: RemoveSurface, Args: map[string]interface{}{}}, InvalidArgument},
		{Call{Method: ShowSurface, Args: map[string]interface{}{ArgKey: nil}}, InvalidArgument},
		{Call{Method: HideSurface, Args: map[string]interface{}{ArgKey: 1}}, InvalidArgument},
		{Call{Method: HasSurface}, InvalidArgument},
		{Call{Method: SetArbitrationEnabled}, InvalidArgument},
		{Call{Method: SetArbitrationEnabled, Args: map[string]interface{}{ArgEnabled: "yes"}}, InvalidArgument},
		{Call{Method: ClaimPointer}, InvalidArgument},
		{Call{Method: ClaimPointer, Args: map[string]interface{}{ArgPointerID: 1.5}}, InvalidArgument},
		{Call{Method: ReleasePointer, Args: map[string]interface{}{ArgPointerID: -1}}, InvalidArgument},
		{Call{Method: ReleasePointer, Args: map[string]interface{}{ArgPointerID: "1"}}, InvalidArgument},
		{Call{Method: "setGesturesEnabled"}, NotImplemented},
	}
	for _, tc := range tests {
		_, err := d.Invoke(tc.call)
		var cerr *Error
		if !errors.As(err, &cerr) {
			t.Errorf("%s: error %v is not a command error", tc.call.Method, err)
			continue
		}
		if cerr.Code != tc.code {
			t.Errorf("%s: code %v, want %v", tc.call.Method, cerr.Code, tc.code)
		}
	}
	if d.Registry.Has("a") {
		t.Error("failed call changed the registry")
	}
}
