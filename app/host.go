// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"io"
	"log"

	"gioui.org/x/underlay/io/command"
	"gioui.org/x/underlay/io/event"
	"gioui.org/x/underlay/io/pointer"
	"gioui.org/x/underlay/io/router"
	"gioui.org/x/underlay/io/system"
	"gioui.org/x/underlay/surface"
)

// Option configures a Host.
type Option func(h *Host)

// Host binds a surface registry and a pointer arbiter to one host
// session.
type Host struct {
	registry   *surface.Registry
	arbiter    *router.Arbiter
	dispatcher command.Dispatcher
	overlay    router.Receiver
	logger     *log.Logger
	arbOpts    []router.Option
}

// NewHost creates a Host. Surfaces cannot be added until Attach.
func NewHost(options ...Option) *Host {
	h := &Host{
		logger: log.New(io.Discard, "", 0),
	}
	for _, o := range options {
		o(h)
	}
	h.arbiter = router.NewArbiter(h.arbOpts...)
	h.registry = surface.NewRegistry(h.arbiter)
	h.dispatcher = command.Dispatcher{Registry: h.registry, Arbiter: h.arbiter}
	return h
}

// Overlay sets the receiver of the overlay layer. It is sent every
// pointer event after the arbiter has processed it.
func Overlay(r router.Receiver) Option {
	return func(h *Host) {
		h.overlay = r
	}
}

// Logger sets the logger for surface creation failures and
// lifecycle changes. The default discards everything.
func Logger(l *log.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// CancelOnDisable is passed to the arbiter; see router.CancelOnDisable.
func CancelOnDisable(enable bool) Option {
	return func(h *Host) {
		h.arbOpts = append(h.arbOpts, router.CancelOnDisable(enable))
	}
}

// RegisterFactory registers a surface factory. Duplicate
// registrations are logged and ignored.
func (h *Host) RegisterFactory(key string, f surface.Factory) {
	if err := h.registry.RegisterFactory(key, f); err != nil {
		h.logger.Printf("register %q: %v", key, err)
	}
}

// Attach signals that the host rendering context is available.
func (h *Host) Attach(ctx event.Tag, c surface.Container) {
	h.registry.Attach(ctx, c)
	h.logger.Printf("host context attached")
}

// DispatchPointer delivers an event from the host pointer stream and
// reports whether the active surface received it.
func (h *Host) DispatchPointer(e pointer.Event) bool {
	fwd := h.arbiter.Dispatch(e)
	if h.overlay != nil {
		h.overlay.DispatchPointer(e)
	}
	return fwd
}

// Broadcast forwards a host lifecycle event to every live surface.
func (h *Host) Broadcast(e system.Event) {
	h.logger.Printf("lifecycle %T %+v", e, e)
	h.registry.Broadcast(e)
}

// Invoke runs a call from the overlay layer.
func (h *Host) Invoke(c command.Call) (interface{}, error) {
	if c.Method == command.AddSurface {
		return h.add(c)
	}
	return h.dispatcher.Invoke(c)
}

// add logs why a surface could not be created before reporting it
// as a false result.
func (h *Host) add(c command.Call) (interface{}, error) {
	key, _ := c.Args[command.ArgKey].(string)
	if key == "" {
		return h.dispatcher.Invoke(c)
	}
	err := h.registry.Add(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, surface.ErrNoHostContext):
		h.logger.Printf("add %q: host context not attached yet, retry later", key)
	default:
		h.logger.Printf("add %q: %v", key, err)
	}
	return false, nil
}

// Registry returns the surface registry.
func (h *Host) Registry() *surface.Registry {
	return h.registry
}

// Arbiter returns the pointer arbiter.
func (h *Host) Arbiter() *router.Arbiter {
	return h.arbiter
}

// Destroy disposes every surface and clears the arbiter. The Host
// must not be used afterwards.
func (h *Host) Destroy() {
	h.arbiter.Close()
	h.registry.Close()
	h.logger.Printf("host destroyed")
}
