package pool

import (
	"sync"

	"github.com/momentics/parambuf/api"
	"github.com/momentics/parambuf/control"
)

var (
	defaultOnce sync.Once
	defaultPool *ArrayPool[*api.Parameter]
)

// DefaultParameterPool returns a process-wide parameter array pool so
// unrelated command builders share retained storage instead of fragmenting it.
// Buffers never reach for it implicitly; callers pass it in.
func DefaultParameterPool() *ArrayPool[*api.Parameter] {
	defaultOnce.Do(func() {
		defaultPool = NewArrayPool[*api.Parameter](control.DefaultConfig().Pool)
	})
	return defaultPool
}

// NewParameterPool builds a dedicated parameter array pool from configuration.
func NewParameterPool(cfg *control.Config) *ArrayPool[*api.Parameter] {
	if cfg == nil {
		cfg = control.DefaultConfig()
	}
	return NewArrayPool[*api.Parameter](cfg.Pool)
}
