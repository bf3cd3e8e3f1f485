// File: buffer/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import (
	"go.uber.org/zap"

	"github.com/momentics/parambuf/control"
)

// Option customizes buffer construction.
type Option func(*options)

type options struct {
	debug   bool
	tracker *Tracker
	logger  *zap.Logger
}

// WithDebug enables use-after-dispose assertions and, for ListBuffer,
// detection of mutation during iteration. Violations panic.
func WithDebug(on bool) Option {
	return func(o *options) {
		o.debug = on
	}
}

// WithTracker records the borrow in t until Dispose.
func WithTracker(t *Tracker) Option {
	return func(o *options) {
		o.tracker = t
	}
}

// WithLogger overrides the package logger for this buffer.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// FromConfig maps buffer configuration onto options. A non-nil tracker is
// attached only when cfg.TrackLeaks is set.
func FromConfig(cfg control.BufferConfig, t *Tracker) []Option {
	opts := []Option{WithDebug(cfg.Debug)}
	if cfg.TrackLeaks && t != nil {
		opts = append(opts, WithTracker(t))
	}
	return opts
}

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = control.Logger()
	}
	return o
}
