// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines abstract pooling APIs: the shared array pool consumed by parameter
// buffers and the factory that builds or recycles parameter objects.

package api

// ArrayPool hands out reusable arrays of T to unrelated callers.
// Implementations must be safe for concurrent Rent/Return pairs.
type ArrayPool[T any] interface {
	// Rent returns an array with len >= minCapacity. Contents are arbitrary
	// and may hold references left by previous borrowers.
	Rent(minCapacity int) []T

	// Return relinquishes ownership; the caller must not touch storage afterwards.
	Return(storage []T)
}

// ParameterFactory builds parameter objects, reusing existing ones when possible.
type ParameterFactory interface {
	// ResetOrBuild overwrites and returns existing when it is non-nil,
	// otherwise it allocates a new parameter.
	ResetOrBuild(existing *Parameter, name string, value any, dbType DbType, size int, dir Direction) *Parameter
}

// ObjectPool provides generic pooling of Go objects allocated transiently
type ObjectPool[T any] interface {
	// Get returns an available instance from pool
	Get() T

	// Put returns an instance for reuse
	Put(obj T)
}
