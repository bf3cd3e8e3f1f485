// File: buffer/scope.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Scoped acquisition: the buffer lives exactly as long as fn and is disposed
// on every exit path, panics included.

package buffer

import (
	"github.com/momentics/parambuf/api"
)

// UseArray runs fn with a fresh ArrayBuffer and disposes it afterwards.
func UseArray(p ParameterPool, f api.ParameterFactory, capacity int, fn func(*ArrayBuffer) error, opts ...Option) error {
	b, err := NewArrayBuffer(p, f, capacity, opts...)
	if err != nil {
		return err
	}
	defer b.Dispose()
	return fn(b)
}

// UseSlice runs fn with a fresh SliceBuffer and disposes it afterwards.
func UseSlice(p ParameterPool, f api.ParameterFactory, capacity int, fn func(*SliceBuffer) error, opts ...Option) error {
	b, err := NewSliceBuffer(p, f, capacity, opts...)
	if err != nil {
		return err
	}
	defer b.Dispose()
	return fn(b)
}

// UseList runs fn with a fresh ListBuffer and disposes it afterwards.
func UseList(p ParameterPool, f api.ParameterFactory, capacity int, fn func(*ListBuffer) error, opts ...Option) error {
	b, err := NewListBuffer(p, f, capacity, opts...)
	if err != nil {
		return err
	}
	defer b.Dispose()
	return fn(b)
}
