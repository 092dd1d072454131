// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app connects a host window to the underlay surfaces composited
beneath its overlay layer.

A Host owns one surface.Registry and one router.Arbiter for the
lifetime of a host session. The platform glue calls into it:

	h := app.NewHost(app.Overlay(overlay))
	h.RegisterFactory("map", newMapView)
	...
	// Once the rendering context exists.
	h.Attach(ctx, container)
	...
	// For every pointer event, before the overlay sees it.
	h.DispatchPointer(e)
	...
	// For every host lifecycle change.
	h.Broadcast(system.StageEvent{Stage: system.StagePaused})
	...
	h.Destroy()

The overlay layer drives the Host through Invoke, which accepts the
calls described in package command.
*/
package app
