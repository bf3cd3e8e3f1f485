// File: buffer/list.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Indexed list view: positional and by-name access, truncation for prefix
// reuse, and restoration of every slot overwritten during the borrow.

package buffer

import (
	"iter"

	"github.com/momentics/parambuf/api"
)

// ListBuffer keeps the first value observed in every slot it overwrites and
// writes those values back on Reset and Dispose. Later overwrites of the same
// slot never replace the recorded original.
type ListBuffer struct {
	core
	originals map[int]*api.Parameter
	version   uint64 // bumped on every mutation; checked by All in debug mode
}

// NewListBuffer rents storage for capacity parameters.
func NewListBuffer(p ParameterPool, f api.ParameterFactory, capacity int, opts ...Option) (*ListBuffer, error) {
	b := &ListBuffer{}
	if err := b.init("list", p, f, capacity, opts); err != nil {
		return nil, err
	}
	return b, nil
}

// SetLen truncates the buffer to n. Growing is only possible through Append.
// Slots beyond n keep their contents until overwritten or restored.
func (b *ListBuffer) SetLen(n int) error {
	b.checkLive("SetLen")
	if n < 0 || n > b.length {
		return api.NewError(api.ErrCodeIndexOutOfRange, "length can only shrink").
			WithContext("length", b.length).
			WithContext("requested", n)
	}
	if n == b.length {
		return nil
	}
	b.length = n
	b.version++
	return nil
}

// At returns the parameter at index i.
func (b *ListBuffer) At(i int) (*api.Parameter, error) {
	b.checkLive("At")
	if err := b.checkIndex(i); err != nil {
		return nil, err
	}
	return b.storage[i], nil
}

// Set overwrites index i with p.
func (b *ListBuffer) Set(i int, p *api.Parameter) error {
	b.checkLive("Set")
	if err := b.checkIndex(i); err != nil {
		return err
	}
	if p == nil {
		return api.NewError(api.ErrCodeValueIsNull, "cannot store nil parameter; truncate instead").
			WithContext("index", i)
	}
	b.overwrite(i, p)
	return nil
}

// IndexOf returns the first index in [0, Len()) whose parameter is named
// name, or -1.
func (b *ListBuffer) IndexOf(name string) int {
	b.checkLive("IndexOf")
	for i := 0; i < b.length; i++ {
		if p := b.storage[i]; p != nil && p.Name == name {
			return i
		}
	}
	return -1
}

// ByName returns the first parameter named name, or nil when absent.
func (b *ListBuffer) ByName(name string) (*api.Parameter, error) {
	if name == "" {
		return nil, api.NewError(api.ErrCodeNameInvalid, "name is empty")
	}
	if i := b.IndexOf(name); i >= 0 {
		return b.storage[i], nil
	}
	return nil, nil
}

// SetByName replaces the first parameter named name in place, or appends p
// when no such parameter exists.
func (b *ListBuffer) SetByName(name string, p *api.Parameter) error {
	if name == "" {
		return api.NewError(api.ErrCodeNameInvalid, "name is empty")
	}
	if p == nil {
		return api.NewError(api.ErrCodeValueIsNull, "cannot store nil parameter; truncate instead").
			WithContext("name", name)
	}
	if i := b.IndexOf(name); i >= 0 {
		b.overwrite(i, p)
		return nil
	}
	return b.Append(p)
}

// Append stores p at the logical end.
func (b *ListBuffer) Append(p *api.Parameter) error {
	b.checkLive("Append")
	if err := b.checkAppend(p); err != nil {
		return err
	}
	b.overwrite(b.length, p)
	b.length++
	return nil
}

// AppendValue builds a parameter through the factory, reusing the slot's
// current object when there is one.
func (b *ListBuffer) AppendValue(name string, value any, dbType api.DbType, size int, dir api.Direction) error {
	b.checkLive("AppendValue")
	if b.length == b.capacity {
		return b.capacityError()
	}
	b.record(b.length)
	b.storage[b.length] = b.factory.ResetOrBuild(b.storage[b.length], name, value, dbType, size, dir)
	b.length++
	b.version++
	return nil
}

// All yields (index, parameter) pairs over [0, Len()). The sequence can be
// ranged over repeatedly. Mutating the buffer while ranging is undefined;
// with WithDebug(true) it panics.
func (b *ListBuffer) All() iter.Seq2[int, *api.Parameter] {
	return func(yield func(int, *api.Parameter) bool) {
		b.checkLive("All")
		n, v := b.length, b.version
		for i := 0; i < n; i++ {
			if b.debug && b.version != v {
				panic(api.NewError(api.ErrCodeMutatedDuringIteration, "All").
					WithContext("index", i))
			}
			if !yield(i, b.storage[i]) {
				return
			}
		}
	}
}

// Reset restores every overwritten slot and empties the buffer.
func (b *ListBuffer) Reset() {
	b.checkLive("Reset")
	b.restore()
	b.length = 0
	b.version++
}

// Dispose restores every overwritten slot and returns storage to the pool.
// Safe to call more than once.
func (b *ListBuffer) Dispose() {
	if b.disposed {
		return
	}
	b.restore()
	b.release()
}

func (b *ListBuffer) checkIndex(i int) error {
	if i < 0 || i >= b.length {
		return api.NewError(api.ErrCodeIndexOutOfRange, "index out of range").
			WithContext("index", i).
			WithContext("length", b.length)
	}
	return nil
}

func (b *ListBuffer) overwrite(i int, p *api.Parameter) {
	b.record(i)
	b.storage[i] = p
	b.version++
}

// record snapshots slot i unless it already has an original this window.
func (b *ListBuffer) record(i int) {
	if b.originals == nil {
		b.originals = make(map[int]*api.Parameter, b.capacity)
	}
	if _, ok := b.originals[i]; !ok {
		b.originals[i] = b.storage[i]
	}
}

func (b *ListBuffer) restore() {
	for i, p := range b.originals {
		b.storage[i] = p
	}
	clear(b.originals)
}
