package domain

import (
	"time"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Mode      Mode      `json:"mode"`   // Mode the action was dispatched in
	Action    string    `json:"action"` // Dispatched action type
}

// DispatchEvent is emitted after a dispatch succeeded.
type DispatchEvent struct {
	EventBase
	Kind HandlerKind `json:"kind"`
	Next Mode        `json:"next"`
}

// ModeChangeEvent is emitted when a transition changed the active mode.
type ModeChangeEvent struct {
	EventBase
	To Mode `json:"to"`
}

// ErrorEvent is emitted when a dispatch failed. The error is still returned
// to the caller.
type ErrorEvent struct {
	EventBase
	Err error `json:"-"`
}

// LifecycleHooks defines callbacks for binder observability.
type LifecycleHooks struct {
	OnDispatch   func(*DispatchEvent)
	OnModeChange func(*ModeChangeEvent)
	OnError      func(*ErrorEvent)
}

// CombineHooks returns hooks that call every non-nil callback in order.
func CombineHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range hooks {
		if h.OnDispatch != nil {
			prev := out.OnDispatch
			out.OnDispatch = func(e *DispatchEvent) {
				if prev != nil {
					prev(e)
				}
				h.OnDispatch(e)
			}
		}
		if h.OnModeChange != nil {
			prev := out.OnModeChange
			out.OnModeChange = func(e *ModeChangeEvent) {
				if prev != nil {
					prev(e)
				}
				h.OnModeChange(e)
			}
		}
		if h.OnError != nil {
			prev := out.OnError
			out.OnError = func(e *ErrorEvent) {
				if prev != nil {
					prev(e)
				}
				h.OnError(e)
			}
		}
	}
	return out
}
