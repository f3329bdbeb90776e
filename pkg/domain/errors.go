package domain

import (
	"errors"
	"fmt"
)

// ErrUnhandledAction is matched by every UnhandledActionError.
var ErrUnhandledAction = errors.New("unhandled action")

// ErrInvalidInput is matched by every InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidConfig is matched by errors caused by a defective Config.
var ErrInvalidConfig = errors.New("invalid config")

// ErrSessionNotFound is returned when a session ID cannot be found.
var ErrSessionNotFound = errors.New("session not found")

// UnhandledActionError is returned when the current mode declares neither an
// action nor a transition for the dispatched type. It is a configuration or
// programming error and must not be retried.
type UnhandledActionError struct {
	Mode       Mode
	ActionType string
}

func (e *UnhandledActionError) Error() string {
	return fmt.Sprintf("mode %q does not handle %q", e.Mode, e.ActionType)
}

func (e *UnhandledActionError) Is(target error) bool {
	return target == ErrUnhandledAction
}

// InvalidInputError reports a value of a shape an operation does not accept.
type InvalidInputError struct {
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid input of type %T", e.Value)
	}
	return fmt.Sprintf("invalid input of type %T: %s", e.Value, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConfigError describes one defect found while validating a Config.
type ConfigError struct {
	Mode   Mode
	Name   string // Action or transition name, if any
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("mode %q, %q: %s", e.Mode, e.Name, e.Reason)
	}
	if e.Mode != "" {
		return fmt.Sprintf("mode %q: %s", e.Mode, e.Reason)
	}
	return e.Reason
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// UnknownModeError is returned when a transition produces a mode that is not
// declared in the Config.
type UnknownModeError struct {
	From       Mode
	Transition string
	Mode       Mode
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("transition %q from %q leads to undeclared mode %q", e.Transition, e.From, e.Mode)
}

func (e *UnknownModeError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// DataContractError is returned when the data of a mode violates its Schema.
type DataContractError struct {
	Mode Mode
	Err  error
}

func (e *DataContractError) Error() string {
	return fmt.Sprintf("mode %q has invalid data: %s", e.Mode, e.Err.Error())
}

func (e *DataContractError) Unwrap() error {
	return e.Err
}

func (e *DataContractError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// MutationError is returned in strict mode when a handler changed the data it
// received instead of returning a new value.
type MutationError struct {
	Mode       Mode
	ActionType string
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("handler %q in mode %q mutated its input data", e.ActionType, e.Mode)
}

func (e *MutationError) Is(target error) bool {
	return target == ErrInvalidConfig
}
