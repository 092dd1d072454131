// SPDX-License-Identifier: Unlicense OR MIT

package surface

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"gioui.org/x/underlay/io/event"
	"gioui.org/x/underlay/io/router"
	"gioui.org/x/underlay/io/system"
)

var (
	// ErrUnknownKey is returned for operations on keys without a
	// live surface.
	ErrUnknownKey = errors.New("surface: unknown key")
	// ErrNoFactory is returned by Add for keys without a
	// registered factory.
	ErrNoFactory = errors.New("surface: no factory")
	// ErrNoHostContext is returned by Add before Attach. It is
	// expected during startup; retry once the host is attached.
	ErrNoHostContext = errors.New("surface: host context not attached")
	// ErrNoContent is returned by Add when a factory or view
	// fails to produce content.
	ErrNoContent = errors.New("surface: no content")
	// ErrDuplicateFactory is returned by RegisterFactory for keys
	// that already have a factory.
	ErrDuplicateFactory = errors.New("surface: factory already registered")
	// ErrInvalidArgument is returned for empty keys and nil
	// factories.
	ErrInvalidArgument = errors.New("surface: invalid argument")
)

// Target is told the content of the active surface, or nil when no
// surface is active. *router.Arbiter implements Target.
type Target interface {
	SetTarget(r router.Receiver)
}

// Registry owns the underlay surfaces of one host session. It is safe
// for concurrent use.
type Registry struct {
	mu        sync.Mutex
	factories map[string]Factory
	surfaces  map[string]*entry
	active    string
	hasActive bool
	host      event.Tag
	container Container
	target    Target
}

type entry struct {
	view    View
	content Content
	state   State

	// container is the container the content was attached to.
	container Container
}

// NewRegistry returns an empty Registry that reports the active
// surface to target. A nil target is allowed.
func NewRegistry(target Target) *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		surfaces:  make(map[string]*entry),
		target:    target,
	}
}

// RegisterFactory records the factory for key. No surface is created
// until Add. The first factory registered for a key wins.
func (r *Registry) RegisterFactory(key string, f Factory) error {
	if key == "" || f == nil {
		return ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFactory, key)
	}
	r.factories[key] = f
	return nil
}

// HasFactory reports whether a factory is registered for key.
func (r *Registry) HasFactory(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.factories[key]
	return ok
}

// Attach records the host rendering context and the underlay
// container surfaces are created in. Add fails with ErrNoHostContext
// until Attach is called with a non-nil container.
func (r *Registry) Attach(host event.Tag, c Container) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.host = host
	r.container = c
}

// Add creates the surface for key, attaches it to the container and
// leaves it hidden. Adding a live surface succeeds without effect.
func (r *Registry) Add(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.surfaces[key]; exists {
		return nil
	}
	f, ok := r.factories[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoFactory, key)
	}
	if r.container == nil {
		return ErrNoHostContext
	}
	v := f()
	if v == nil {
		return fmt.Errorf("%w: factory for %q returned nil", ErrNoContent, key)
	}
	c, err := v.CreateContent(Context{Key: key, Host: r.host})
	if err != nil || c == nil {
		// Release whatever the view acquired before failing.
		v.Dispose()
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrNoContent, key, err)
		}
		return fmt.Errorf("%w: %q", ErrNoContent, key)
	}
	e := &entry{view: v, content: c, state: Created, container: r.container}
	e.container.Attach(c)
	r.surfaces[key] = e
	v.Created()
	e.state = Hidden
	e.container.SetVisible(c, false)
	return nil
}

// Show makes the surface visible, raises it above the other surfaces
// and makes it the active surface.
func (r *Registry) Show(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.surfaces[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if e.state != Visible {
		e.state = Visible
		e.container.SetVisible(e.content, true)
		e.container.Raise(e.content)
		e.view.Show()
	}
	r.setActive(key, e.content)
	return nil
}

// Hide hides the surface. Hiding the active surface leaves no surface
// active.
func (r *Registry) Hide(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.surfaces[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if e.state == Visible {
		e.state = Hidden
		e.container.SetVisible(e.content, false)
		e.view.Hide()
	}
	if r.hasActive && r.active == key {
		r.clearActive()
	}
	return nil
}

// Remove detaches and disposes the surface. The key can be added
// again afterwards, creating a new surface.
func (r *Registry) Remove(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.surfaces[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	r.dispose(key, e)
	return nil
}

// ActiveKey returns the key of the active surface, if any.
func (r *Registry) ActiveKey() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active, r.hasActive
}

// Has reports whether a live surface exists for key.
func (r *Registry) Has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.surfaces[key]
	return ok
}

// State returns the state of the live surface for key.
func (r *Registry) State(key string) (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.surfaces[key]
	if !ok {
		return 0, false
	}
	return e.state, true
}

// Keys returns the keys of the live surfaces in sorted order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedKeys()
}

// Broadcast delivers a host lifecycle event to every live surface,
// visible or not, in key order.
func (r *Registry) Broadcast(e system.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.sortedKeys() {
		r.surfaces[k].view.Lifecycle(e)
	}
}

// Close disposes every live surface. Factories stay registered.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.sortedKeys() {
		r.dispose(k, r.surfaces[k])
	}
	r.clearActive()
}

func (r *Registry) dispose(key string, e *entry) {
	delete(r.surfaces, key)
	if r.hasActive && r.active == key {
		r.clearActive()
	}
	e.container.Detach(e.content)
	e.view.Dispose()
	e.state = Disposed
}

func (r *Registry) sortedKeys() []string {
	keys := maps.Keys(r.surfaces)
	slices.Sort(keys)
	return keys
}

func (r *Registry) setActive(key string, c Content) {
	r.active, r.hasActive = key, true
	if r.target != nil {
		r.target.SetTarget(c)
	}
}

func (r *Registry) clearActive() {
	r.active, r.hasActive = "", false
	if r.target != nil {
		r.target.SetTarget(nil)
	}
}
