package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a parameter rejected a value
type ErrorKind string

const (
	// KindFormat indicates malformed text input
	KindFormat ErrorKind = "format"
	// KindRange indicates a numeric component outside its domain
	KindRange ErrorKind = "range"
	// KindTypeMismatch indicates a serialized form of an incompatible type
	KindTypeMismatch ErrorKind = "type_mismatch"
	// KindConnection indicates a database engine was absent or failed
	KindConnection ErrorKind = "connection"
)

// Sentinels for errors.Is matching on the kind of a ParamError.
var (
	ErrFormat       = errors.New("malformed value")
	ErrRange        = errors.New("value out of range")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrConnection   = errors.New("connection failed")
)

// ParamError describes a rejected assignment or a failed connector operation.
// The receiving value keeps its prior state unless its documentation says otherwise.
type ParamError struct {
	Kind   ErrorKind
	Param  string // parameter type, e.g. "ipv4"
	Input  string // offending input, may be empty
	Reason string
	Err    error // underlying cause, may be nil
}

func (e *ParamError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Param)
	if e.Input != "" {
		msg += fmt.Sprintf(" %q", e.Input)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels so callers can write errors.Is(err, ErrRange).
func (e *ParamError) Is(target error) bool {
	return target == kindSentinel(e.Kind)
}

func kindSentinel(k ErrorKind) error {
	switch k {
	case KindFormat:
		return ErrFormat
	case KindRange:
		return ErrRange
	case KindTypeMismatch:
		return ErrTypeMismatch
	case KindConnection:
		return ErrConnection
	}
	return nil
}

// FormatError reports malformed text input for param.
func FormatError(param, input, reason string) error {
	return &ParamError{Kind: KindFormat, Param: param, Input: input, Reason: reason}
}

// RangeError reports a component of input outside the domain of param.
func RangeError(param, input, reason string) error {
	return &ParamError{Kind: KindRange, Param: param, Input: input, Reason: reason}
}

// TypeMismatchError reports a serialized form that does not belong to param.
func TypeMismatchError(param, reason string) error {
	return &ParamError{Kind: KindTypeMismatch, Param: param, Reason: reason}
}

// ConnectionError reports a connector failure, wrapping the backend error when there is one.
func ConnectionError(param, reason string, err error) error {
	return &ParamError{Kind: KindConnection, Param: param, Reason: reason, Err: err}
}

// KindOf returns the kind of the first ParamError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var pe *ParamError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
