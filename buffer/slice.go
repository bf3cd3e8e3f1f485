// File: buffer/slice.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import (
	"github.com/momentics/parambuf/api"
)

// SliceBuffer exposes only the bounded prefix [0, Len()) of its storage.
// Since the slice length marks the end, no foreign slot is ever touched
// for presentation.
type SliceBuffer struct {
	core
}

// NewSliceBuffer rents storage for capacity parameters.
func NewSliceBuffer(p ParameterPool, f api.ParameterFactory, capacity int, opts ...Option) (*SliceBuffer, error) {
	b := &SliceBuffer{}
	if err := b.init("slice", p, f, capacity, opts); err != nil {
		return nil, err
	}
	return b, nil
}

// Append stores p at the logical end.
func (b *SliceBuffer) Append(p *api.Parameter) error {
	b.checkLive("Append")
	if err := b.checkAppend(p); err != nil {
		return err
	}
	b.storage[b.length] = p
	b.length++
	return nil
}

// AppendValue builds a parameter through the factory, reusing the slot's
// current object when there is one.
func (b *SliceBuffer) AppendValue(name string, value any, dbType api.DbType, size int, dir api.Direction) error {
	b.checkLive("AppendValue")
	if b.length == b.capacity {
		return b.capacityError()
	}
	b.storage[b.length] = b.factory.ResetOrBuild(b.storage[b.length], name, value, dbType, size, dir)
	b.length++
	return nil
}

// Slice returns the filled prefix. Its capacity equals its length, so an
// append by the caller reallocates instead of writing into pooled storage.
func (b *SliceBuffer) Slice() []*api.Parameter {
	b.checkLive("Slice")
	return b.storage[:b.length:b.length]
}

// Reset empties the buffer without returning storage.
func (b *SliceBuffer) Reset() {
	b.checkLive("Reset")
	b.length = 0
}

// Dispose returns storage to the pool. Safe to call more than once.
func (b *SliceBuffer) Dispose() {
	b.release()
}
