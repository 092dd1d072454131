// SPDX-License-Identifier: Unlicense OR MIT

/*
Package command exposes the surface registry and the pointer arbiter
to the overlay layer as a set of named method calls.

Calls are synchronous. Registry failures are reported as a false
result, not as errors; errors are reserved for malformed calls.
*/
package command

import (
	"fmt"
	"math"

	"gioui.org/x/underlay/io/pointer"
	"gioui.org/x/underlay/io/router"
	"gioui.org/x/underlay/surface"
)

// Call is a method invocation from the overlay layer.
type Call struct {
	Method string
	Args   map[string]interface{}
}

// Error is returned for calls that cannot be dispatched.
type Error struct {
	Code    Code
	Message string
}

// Code classifies an Error.
type Code uint8

const (
	// InvalidArgument is for calls missing a required argument
	// or carrying one of the wrong type.
	InvalidArgument Code = iota
	// NotImplemented is for unknown methods.
	NotImplemented
)

// Method names.
const (
	AddSurface            = "addSurface"
	RemoveSurface         = "removeSurface"
	ShowSurface           = "showSurface"
	HideSurface           = "hideSurface"
	GetActiveKey          = "getActiveKey"
	HasSurface            = "hasSurface"
	SetArbitrationEnabled = "setArbitrationEnabled"
	IsArbitrationEnabled  = "isArbitrationEnabled"
	ClaimPointer          = "claimPointer"
	ReleasePointer        = "releasePointer"
)

// Argument names.
const (
	ArgKey       = "key"
	ArgEnabled   = "enabled"
	ArgPointerID = "pointerId"
)

// Dispatcher maps calls onto a Registry and an Arbiter.
type Dispatcher struct {
	Registry *surface.Registry
	Arbiter  *router.Arbiter
}

// Invoke runs the call and returns its result. The result is a bool
// for the registry methods and isArbitrationEnabled, a string or nil
// for getActiveKey and nil otherwise.
func (d *Dispatcher) Invoke(c Call) (interface{}, error) {
	switch c.Method {
	case AddSurface, RemoveSurface, ShowSurface, HideSurface, HasSurface:
		key, err := stringArg(c, ArgKey)
		if err != nil {
			return nil, err
		}
		return d.invokeKey(c.Method, key), nil
	case GetActiveKey:
		if k, ok := d.Registry.ActiveKey(); ok {
			return k, nil
		}
		return nil, nil
	case SetArbitrationEnabled:
		enabled, err := boolArg(c, ArgEnabled)
		if err != nil {
			return nil, err
		}
		d.Arbiter.SetEnabled(enabled)
		return nil, nil
	case IsArbitrationEnabled:
		return d.Arbiter.Enabled(), nil
	case ClaimPointer, ReleasePointer:
		id, err := pointerArg(c, ArgPointerID)
		if err != nil {
			return nil, err
		}
		if c.Method == ClaimPointer {
			d.Arbiter.Claim(id)
		} else {
			d.Arbiter.Release(id)
		}
		return nil, nil
	default:
		return nil, &Error{Code: NotImplemented, Message: fmt.Sprintf("unknown method %q", c.Method)}
	}
}

func (d *Dispatcher) invokeKey(method, key string) bool {
	var err error
	switch method {
	case AddSurface:
		err = d.Registry.Add(key)
	case RemoveSurface:
		err = d.Registry.Remove(key)
	case ShowSurface:
		err = d.Registry.Show(key)
	case HideSurface:
		err = d.Registry.Hide(key)
	case HasSurface:
		return d.Registry.Has(key)
	}
	return err == nil
}

func stringArg(c Call, name string) (string, error) {
	v, ok := c.Args[name]
	if !ok || v == nil {
		return "", missing(c, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", mistyped(c, name, v)
	}
	return s, nil
}

func boolArg(c Call, name string) (bool, error) {
	v, ok := c.Args[name]
	if !ok || v == nil {
		return false, missing(c, name)
	}
	b, ok := v.(bool)
	if !ok {
		return false, mistyped(c, name, v)
	}
	return b, nil
}

// pointerArg accepts any integer type and integral float64 values,
// the representation JSON numbers decode to.
func pointerArg(c Call, name string) (pointer.ID, error) {
	v, ok := c.Args[name]
	if !ok || v == nil {
		return 0, missing(c, name)
	}
	var n int64
	switch v := v.(type) {
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint:
		n = int64(v)
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	case pointer.ID:
		n = int64(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, mistyped(c, name, v)
		}
		n = int64(v)
	default:
		return 0, mistyped(c, name, v)
	}
	if n < 0 || n > math.MaxUint16 {
		return 0, &Error{Code: InvalidArgument, Message: fmt.Sprintf("%s: %s %d out of range", c.Method, name, n)}
	}
	return pointer.ID(n), nil
}

func missing(c Call, name string) error {
	return &Error{Code: InvalidArgument, Message: fmt.Sprintf("%s: %s is required", c.Method, name)}
}

func mistyped(c Call, name string, v interface{}) error {
	return &Error{Code: InvalidArgument, Message: fmt.Sprintf("%s: %s has type %T", c.Method, name, v)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("command: %v: %s", e.Code, e.Message)
}

func (c Code) String() string {
	switch c {
	case InvalidArgument:
		return "INVALID_ARGUMENT"
	case NotImplemented:
		return "NOT_IMPLEMENTED"
	default:
		panic("unknown Code")
	}
}
