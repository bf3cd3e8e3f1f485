// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package fake provides deterministic test doubles for parambuf components.
package fake

import (
	"fmt"
	"sync"

	"github.com/momentics/parambuf/api"
)

var _ api.ArrayPool[*api.Parameter] = (*RecordingPool)(nil)

// Rental is one Rent/Return pair observed by RecordingPool.
type Rental struct {
	ID       int
	Storage  []*api.Parameter
	Snapshot []*api.Parameter // contents at Rent
	Final    []*api.Parameter // contents at first Return; nil until then
	Returns  int
}

// Changed lists indices whose content at Return differs from Rent.
func (r *Rental) Changed() []int {
	if r.Final == nil {
		return nil
	}
	var out []int
	for i := range r.Snapshot {
		if r.Final[i] != r.Snapshot[i] {
			out = append(out, i)
		}
	}
	return out
}

// IntactFrom reports whether every slot from index from onwards was returned
// holding its pre-rent value.
func (r *Rental) IntactFrom(from int) bool {
	for _, i := range r.Changed() {
		if i >= from {
			return false
		}
	}
	return r.Final != nil
}

// RecordingPool hands out arrays pre-filled with distinct stale parameters,
// snapshots them at Rent and captures them again at Return.
//
// Slack is added to every requested length; a negative Slack makes the pool
// return undersized arrays.
type RecordingPool struct {
	Slack int

	mu      sync.Mutex
	rentals []*Rental
	rents   int
	returns int
	doubles int
	foreign int
}

// NewRecordingPool creates a pool that over-allocates by slack slots.
func NewRecordingPool(slack int) *RecordingPool {
	return &RecordingPool{Slack: slack}
}

// Rent returns minCapacity+Slack slots, each holding a unique stale parameter.
func (p *RecordingPool) Rent(minCapacity int) []*api.Parameter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rents++
	n := minCapacity + p.Slack
	if n <= 0 {
		return []*api.Parameter{}
	}
	id := len(p.rentals)
	storage := make([]*api.Parameter, n)
	for i := range storage {
		storage[i] = &api.Parameter{Name: fmt.Sprintf("@stale%d_%d", id, i), Value: i}
	}
	r := &Rental{
		ID:       id,
		Storage:  storage,
		Snapshot: append([]*api.Parameter(nil), storage...),
	}
	p.rentals = append(p.rentals, r)
	return storage
}

// Return records the storage contents. Repeat returns of the same storage
// are counted as doubles; unknown storage as foreign.
func (p *RecordingPool) Return(storage []*api.Parameter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.returns++
	if len(storage) == 0 {
		p.foreign++
		return
	}
	r := p.lookup(storage)
	if r == nil {
		p.foreign++
		return
	}
	r.Returns++
	if r.Returns > 1 {
		p.doubles++
		return
	}
	r.Final = append([]*api.Parameter(nil), storage...)
}

// lookup matches storage by backing array identity, not contents.
func (p *RecordingPool) lookup(storage []*api.Parameter) *Rental {
	for _, r := range p.rentals {
		if len(r.Storage) > 0 && &r.Storage[0] == &storage[0] {
			return r
		}
	}
	return nil
}

// Rents returns the number of Rent calls.
func (p *RecordingPool) Rents() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rents
}

// Returns returns the number of Return calls.
func (p *RecordingPool) Returns() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.returns
}

// DoubleReturns counts returns of storage that was already returned.
func (p *RecordingPool) DoubleReturns() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doubles
}

// ForeignReturns counts returns of storage this pool never rented.
func (p *RecordingPool) ForeignReturns() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.foreign
}

// Outstanding counts rentals that were never returned.
func (p *RecordingPool) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, r := range p.rentals {
		if r.Returns == 0 {
			n++
		}
	}
	return n
}

// Last returns the most recent rental, or nil.
func (p *RecordingPool) Last() *Rental {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.rentals) == 0 {
		return nil
	}
	return p.rentals[len(p.rentals)-1]
}

// Rentals returns all rentals in Rent order.
func (p *RecordingPool) Rentals() []*Rental {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Rental(nil), p.rentals...)
}
