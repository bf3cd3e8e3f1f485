// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, logging, runtime metrics and debug introspection for parambuf.
//
// Provides concurrent-safe primitives including:
//   - YAML configuration with defaults and validation
//   - A process-wide zap logger, no-op until installed
//   - Metrics registry fed by pool statistics
//   - Debug probe registration (leak tracker and friends)
package control
