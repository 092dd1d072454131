// SPDX-License-Identifier: Unlicense OR MIT

// Package system contains the host lifecycle events broadcast to
// every live underlay surface.
package system

import "gioui.org/x/underlay/io/event"

// A StageEvent is generated whenever the stage of the host
// changes.
type StageEvent struct {
	Stage Stage
}

// SaveStateEvent asks surfaces to record the state they need to
// restore themselves. Surfaces write into State under keys of their
// own choosing.
type SaveStateEvent struct {
	State map[string][]byte
}

// LowMemoryEvent is sent when the host is running low on memory.
// Surfaces should release caches they can rebuild.
type LowMemoryEvent struct{}

// Stage of the host.
type Stage uint8

const (
	// StageStarted is for hosts that became visible.
	StageStarted Stage = iota
	// StageResumed is for hosts that gained input focus.
	StageResumed
	// StagePaused is for hosts that lost input focus.
	StagePaused
	// StageStopped is for hosts that are no longer visible.
	StageStopped
)

func (l Stage) String() string {
	switch l {
	case StageStarted:
		return "StageStarted"
	case StageResumed:
		return "StageResumed"
	case StagePaused:
		return "StagePaused"
	case StageStopped:
		return "StageStopped"
	default:
		panic("unexpected Stage value")
	}
}

// Event is the interface of lifecycle events.
type Event interface {
	event.Event
	ImplementsLifecycle()
}

func (StageEvent) ImplementsEvent()     {}
func (SaveStateEvent) ImplementsEvent() {}
func (LowMemoryEvent) ImplementsEvent() {}

func (StageEvent) ImplementsLifecycle()     {}
func (SaveStateEvent) ImplementsLifecycle() {}
func (LowMemoryEvent) ImplementsLifecycle() {}
