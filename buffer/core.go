// File: buffer/core.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Rent/return bookkeeping shared by every buffer variant.

package buffer

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momentics/parambuf/api"
)

// ParameterPool is the array pool flavour buffers rent from.
type ParameterPool = api.ArrayPool[*api.Parameter]

type core struct {
	pool    ParameterPool
	factory api.ParameterFactory
	storage []*api.Parameter

	capacity int
	length   int
	disposed bool

	variant string
	debug   bool
	tracker *Tracker
	borrow  uuid.UUID
	logger  *zap.Logger
}

func (c *core) init(variant string, p ParameterPool, f api.ParameterFactory, capacity int, opts []Option) error {
	if p == nil {
		return api.NewError(api.ErrCodeArgumentInvalid, "pool is nil").WithContext("variant", variant)
	}
	if f == nil {
		return api.NewError(api.ErrCodeArgumentInvalid, "factory is nil").WithContext("variant", variant)
	}
	if capacity < 1 {
		return api.NewError(api.ErrCodeArgumentInvalid, "capacity must be positive").
			WithContext("variant", variant).
			WithContext("capacity", capacity)
	}

	storage := p.Rent(capacity)
	if len(storage) < capacity {
		p.Return(storage)
		return api.NewError(api.ErrCodeArgumentInvalid, "pool returned undersized storage").
			WithContext("variant", variant).
			WithContext("capacity", capacity).
			WithContext("rented", len(storage))
	}

	o := buildOptions(opts)
	c.pool = p
	c.factory = f
	c.storage = storage
	c.capacity = capacity
	c.variant = variant
	c.debug = o.debug
	c.logger = o.logger
	if o.tracker != nil {
		c.tracker = o.tracker
		c.borrow = o.tracker.track(variant, capacity, 3)
	}
	if c.debug {
		c.logger.Debug("parameter buffer rented",
			zap.String("variant", variant),
			zap.Int("capacity", capacity),
			zap.Int("storage", len(storage)))
	}
	return nil
}

// Len returns the logical length.
func (c *core) Len() int {
	c.checkLive("Len")
	return c.length
}

// Cap returns the capacity fixed at construction.
func (c *core) Cap() int {
	return c.capacity
}

// Disposed reports whether the storage went back to the pool.
func (c *core) Disposed() bool {
	return c.disposed
}

func (c *core) checkLive(op string) {
	if c.debug && c.disposed {
		panic(api.NewError(api.ErrCodeUseAfterDispose, op).
			WithContext("variant", c.variant))
	}
}

func (c *core) checkAppend(p *api.Parameter) error {
	if c.length == c.capacity {
		return c.capacityError()
	}
	if p == nil {
		return api.NewError(api.ErrCodeValueIsNull, "cannot append nil parameter").
			WithContext("index", c.length)
	}
	return nil
}

func (c *core) capacityError() error {
	return api.NewError(api.ErrCodeCapacityExceeded, "buffer is full").
		WithContext("variant", c.variant).
		WithContext("capacity", c.capacity)
}

// release returns storage exactly once. Slot restoration is the caller's job.
func (c *core) release() {
	if c.disposed {
		return
	}
	c.disposed = true
	if c.tracker != nil {
		c.tracker.forget(c.borrow)
	}
	if c.debug {
		c.logger.Debug("parameter buffer released",
			zap.String("variant", c.variant),
			zap.Int("capacity", c.capacity),
			zap.Int("length", c.length))
	}
	storage := c.storage
	c.storage = nil
	c.pool.Return(storage)
}
