// Package pool
// Author: momentics <momentics@gmail.com>
//
// Shared array pooling for parambuf.
// ArrayPool hands out power-of-two sized arrays and retains returned ones
// per size class; contents are never cleared, so borrowers see whatever the
// previous owner left behind. SyncPool is a typed sync.Pool used for
// individual parameter objects.
// See arraypool.go, default.go, objpool.go for implementation details.
package pool
