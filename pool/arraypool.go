// File: pool/arraypool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared, thread-safe array pool with power-of-two size classes.
// Arrays are never cleared on return: renters must assume stale contents.

package pool

import (
	"math/bits"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"go.uber.org/zap"
	"golang.org/x/sys/cpu"

	"github.com/momentics/parambuf/api"
	"github.com/momentics/parambuf/control"
)

var _ api.ArrayPool[int] = (*ArrayPool[int])(nil)

// bucket retains arrays of exactly one length in FIFO order.
type bucket struct {
	_      cpu.CacheLinePad
	mu     sync.Mutex
	items  *queue.Queue
	length int
}

// ArrayPool over-allocates requests to the next size class and keeps a
// bounded number of returned arrays per class.
type ArrayPool[T any] struct {
	buckets      []*bucket
	minLen       int
	maxLen       int
	maxPerBucket int

	rents   atomic.Int64
	returns atomic.Int64
	misses  atomic.Int64
	dropped atomic.Int64
}

// Stats is a point-in-time copy of pool counters.
type Stats struct {
	Rents    int64
	Returns  int64
	Misses   int64 // rents that had to allocate
	Dropped  int64 // returns that were not retained
	Retained int   // arrays currently parked in buckets
}

// NewArrayPool creates a pool sized by cfg. Zero fields take control defaults.
func NewArrayPool[T any](cfg control.PoolConfig) *ArrayPool[T] {
	if cfg.MinArrayLength <= 0 {
		cfg.MinArrayLength = control.DefaultMinArrayLength
	}
	if cfg.MaxArrayLength <= 0 {
		cfg.MaxArrayLength = control.DefaultMaxArrayLength
	}
	if cfg.MaxPerBucket <= 0 {
		cfg.MaxPerBucket = control.DefaultMaxPerBucket
	}
	minLen := roundUpPow2(cfg.MinArrayLength)
	maxLen := roundUpPow2(cfg.MaxArrayLength)
	if maxLen < minLen {
		maxLen = minLen
	}

	n := bits.Len(uint(maxLen)) - bits.Len(uint(minLen)) + 1
	p := &ArrayPool[T]{
		buckets:      make([]*bucket, n),
		minLen:       minLen,
		maxLen:       maxLen,
		maxPerBucket: cfg.MaxPerBucket,
	}
	for i := range p.buckets {
		p.buckets[i] = &bucket{items: queue.New(), length: minLen << i}
	}
	return p
}

// Rent returns an array with len >= minCapacity, rounded up to a size class.
// Requests above the largest class are allocated exactly and never retained.
func (p *ArrayPool[T]) Rent(minCapacity int) []T {
	if minCapacity < 1 {
		return []T{}
	}
	p.rents.Add(1)

	idx := p.bucketIndex(minCapacity)
	if idx < 0 {
		p.misses.Add(1)
		return make([]T, minCapacity)
	}

	b := p.buckets[idx]
	b.mu.Lock()
	if b.items.Length() > 0 {
		arr := b.items.Remove().([]T)
		b.mu.Unlock()
		return arr
	}
	b.mu.Unlock()

	p.misses.Add(1)
	return make([]T, b.length)
}

// Return parks storage for reuse. Arrays whose length is not a size class
// of this pool are dropped.
func (p *ArrayPool[T]) Return(storage []T) {
	if len(storage) == 0 {
		return
	}
	p.returns.Add(1)

	idx := p.bucketIndex(len(storage))
	if idx < 0 || p.buckets[idx].length != len(storage) {
		p.dropped.Add(1)
		control.Logger().Debug("array pool: dropping foreign array",
			zap.Int("length", len(storage)))
		return
	}

	b := p.buckets[idx]
	b.mu.Lock()
	if b.items.Length() >= p.maxPerBucket {
		b.mu.Unlock()
		p.dropped.Add(1)
		return
	}
	b.items.Add(storage)
	b.mu.Unlock()
}

// Stats snapshots the counters.
func (p *ArrayPool[T]) Stats() Stats {
	s := Stats{
		Rents:   p.rents.Load(),
		Returns: p.returns.Load(),
		Misses:  p.misses.Load(),
		Dropped: p.dropped.Load(),
	}
	for _, b := range p.buckets {
		b.mu.Lock()
		s.Retained += b.items.Length()
		b.mu.Unlock()
	}
	return s
}

// Publish copies the counters into reg under prefix (e.g. "pool.params").
func (p *ArrayPool[T]) Publish(reg *control.MetricsRegistry, prefix string) {
	s := p.Stats()
	reg.Set(prefix+".rents", s.Rents)
	reg.Set(prefix+".returns", s.Returns)
	reg.Set(prefix+".misses", s.Misses)
	reg.Set(prefix+".dropped", s.Dropped)
	reg.Set(prefix+".retained", s.Retained)
	for _, b := range p.buckets {
		b.mu.Lock()
		n := b.items.Length()
		b.mu.Unlock()
		if n > 0 {
			reg.Set(prefix+".bucket."+strconv.Itoa(b.length), n)
		}
	}
}

// SizeClass reports the array length Rent(n) would produce.
func (p *ArrayPool[T]) SizeClass(n int) int {
	if idx := p.bucketIndex(n); idx >= 0 {
		return p.buckets[idx].length
	}
	return n
}

// bucketIndex returns -1 when n exceeds the largest class.
func (p *ArrayPool[T]) bucketIndex(n int) int {
	if n > p.maxLen {
		return -1
	}
	if n <= p.minLen {
		return 0
	}
	return bits.Len(uint(n-1)) - bits.Len(uint(p.minLen)) + 1
}

func roundUpPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
