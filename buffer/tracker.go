// File: buffer/tracker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Explicit leak tracker for debug builds and tests. Buffers register on
// construction and deregister on Dispose; whatever remains was never released.

package buffer

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momentics/parambuf/control"
)

// Borrow describes a buffer that still owns pooled storage.
type Borrow struct {
	ID       uuid.UUID
	Variant  string
	Capacity int
	Site     string // file:line of the constructor call
	Since    time.Time
}

// Tracker is safe for concurrent use by many buffers.
type Tracker struct {
	mu   sync.Mutex
	live map[uuid.UUID]Borrow
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{live: make(map[uuid.UUID]Borrow)}
}

func (t *Tracker) track(variant string, capacity int, skip int) uuid.UUID {
	site := "unknown"
	if _, file, line, ok := runtime.Caller(skip); ok {
		site = fmt.Sprintf("%s:%d", file, line)
	}
	b := Borrow{
		ID:       uuid.New(),
		Variant:  variant,
		Capacity: capacity,
		Site:     site,
		Since:    time.Now(),
	}
	t.mu.Lock()
	t.live[b.ID] = b
	t.mu.Unlock()
	return b.ID
}

func (t *Tracker) forget(id uuid.UUID) {
	t.mu.Lock()
	delete(t.live, id)
	t.mu.Unlock()
}

// Len returns the number of outstanding borrows.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Outstanding lists live borrows, oldest first.
func (t *Tracker) Outstanding() []Borrow {
	t.mu.Lock()
	out := make([]Borrow, 0, len(t.live))
	for _, b := range t.live {
		out = append(out, b)
	}
	t.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Since.Before(out[j].Since) })
	return out
}

// Report logs every outstanding borrow at warn level and returns their count.
func (t *Tracker) Report() int {
	leaks := t.Outstanding()
	log := control.Logger()
	for _, b := range leaks {
		log.Warn("parameter buffer not disposed",
			zap.Stringer("id", b.ID),
			zap.String("variant", b.Variant),
			zap.Int("capacity", b.Capacity),
			zap.String("site", b.Site),
			zap.Duration("age", time.Since(b.Since)))
	}
	return len(leaks)
}

// Probe adapts the tracker to control.DebugProbes.RegisterProbe.
func (t *Tracker) Probe() func() any {
	return func() any {
		leaks := t.Outstanding()
		sites := make([]string, len(leaks))
		for i, b := range leaks {
			sites[i] = b.Variant + "@" + b.Site
		}
		return map[string]any{
			"outstanding": len(leaks),
			"sites":       sites,
		}
	}
}
