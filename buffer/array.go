// File: buffer/array.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Array view: hands out the raw backing array and marks the logical end with
// a nil sentinel for consumers that scan instead of trusting a count.

package buffer

import (
	"github.com/momentics/parambuf/api"
)

const noShadow = -1

// ArrayBuffer exposes its rented array directly. Array() may write a nil
// into the first slot past the logical end; the value it replaces is kept
// as a shadow and put back before that slot is needed again.
type ArrayBuffer struct {
	core
	shadow   *api.Parameter
	shadowAt int
}

// NewArrayBuffer rents storage for capacity parameters.
func NewArrayBuffer(p ParameterPool, f api.ParameterFactory, capacity int, opts ...Option) (*ArrayBuffer, error) {
	b := &ArrayBuffer{shadowAt: noShadow}
	if err := b.init("array", p, f, capacity, opts); err != nil {
		return nil, err
	}
	return b, nil
}

// Append stores p at the logical end.
func (b *ArrayBuffer) Append(p *api.Parameter) error {
	b.checkLive("Append")
	if err := b.checkAppend(p); err != nil {
		return err
	}
	b.restoreShadow()
	b.storage[b.length] = p
	b.length++
	return nil
}

// AppendValue builds a parameter through the factory, offering it whatever
// object currently sits in the target slot for reuse.
func (b *ArrayBuffer) AppendValue(name string, value any, dbType api.DbType, size int, dir api.Direction) error {
	b.checkLive("AppendValue")
	if b.length == b.capacity {
		return b.capacityError()
	}
	b.restoreShadow()
	b.storage[b.length] = b.factory.ResetOrBuild(b.storage[b.length], name, value, dbType, size, dir)
	b.length++
	return nil
}

// Array returns the backing array, len >= Cap(). Entries [0, Len()) are the
// parameters; when the array is longer than Len() the entry at Len() is nil.
// The result is valid until the next mutating call.
func (b *ArrayBuffer) Array() []*api.Parameter {
	b.checkLive("Array")
	if b.length < len(b.storage) {
		if cur := b.storage[b.length]; cur != nil {
			b.restoreShadow()
			b.shadow = cur
			b.shadowAt = b.length
			b.storage[b.length] = nil
		}
	}
	return b.storage
}

// Reset empties the buffer without returning storage.
func (b *ArrayBuffer) Reset() {
	b.checkLive("Reset")
	b.restoreShadow()
	b.length = 0
}

// Dispose puts back the sentinel slot and returns storage to the pool.
// Safe to call more than once.
func (b *ArrayBuffer) Dispose() {
	if b.disposed {
		return
	}
	b.restoreShadow()
	b.release()
}

func (b *ArrayBuffer) restoreShadow() {
	if b.shadowAt == noShadow {
		return
	}
	b.storage[b.shadowAt] = b.shadow
	b.shadow = nil
	b.shadowAt = noShadow
}
