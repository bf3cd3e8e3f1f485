// Package api
// Author: momentics <momentics@gmail.com>
//
// Error taxonomy for parameter buffers. Every condition is a programmer error:
// raised synchronously, never retried, and never leaves a buffer half mutated.

package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors, one per ErrorCode.
var (
	ErrCapacityExceeded       = errors.New("capacity exceeded")
	ErrIndexOutOfRange        = errors.New("index out of range")
	ErrArgumentInvalid        = errors.New("invalid argument")
	ErrValueIsNull            = errors.New("value is null")
	ErrNameInvalid            = errors.New("invalid parameter name")
	ErrUseAfterDispose        = errors.New("buffer used after dispose")
	ErrMutatedDuringIteration = errors.New("buffer mutated during iteration")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeCapacityExceeded
	ErrCodeIndexOutOfRange
	ErrCodeArgumentInvalid
	ErrCodeValueIsNull
	ErrCodeNameInvalid
	ErrCodeUseAfterDispose
	ErrCodeMutatedDuringIteration
)

func (c ErrorCode) sentinel() error {
	switch c {
	case ErrCodeCapacityExceeded:
		return ErrCapacityExceeded
	case ErrCodeIndexOutOfRange:
		return ErrIndexOutOfRange
	case ErrCodeArgumentInvalid:
		return ErrArgumentInvalid
	case ErrCodeValueIsNull:
		return ErrValueIsNull
	case ErrCodeNameInvalid:
		return ErrNameInvalid
	case ErrCodeUseAfterDispose:
		return ErrUseAfterDispose
	case ErrCodeMutatedDuringIteration:
		return ErrMutatedDuringIteration
	default:
		return nil
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if s := e.Code.sentinel(); s != nil && msg != s.Error() {
		msg = s.Error() + ": " + msg
	}
	if len(e.Context) == 0 {
		return msg
	}
	return msg + " " + formatContext(e.Context)
}

// Unwrap exposes the sentinel matching Code so errors.Is works.
func (e *Error) Unwrap() error {
	return e.Code.sentinel()
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// CodeOf extracts the ErrorCode carried by err, or ErrCodeOK.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeOK
}

func formatContext(ctx map[string]any) string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString("(")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s=%v", k, ctx[k])
	}
	sb.WriteString(")")
	return sb.String()
}
