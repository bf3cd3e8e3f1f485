// Package buffer
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity parameter buffers backed by arrays rented from a shared
// api.ArrayPool. The rented array is usually longer than requested and holds
// references left by earlier borrowers; a buffer exposes only the prefix the
// caller filled and puts every foreign slot it touched back before the array
// returns to the pool.
//
// Three presentations share that bookkeeping:
//
//	ArrayBuffer  raw backing array, nil sentinel one past the last parameter
//	SliceBuffer  bounded slice [0, Len)
//	ListBuffer   positional and by-name access, truncation, full restoration
//
// A buffer belongs to one goroutine for one unit of work (typically building
// and executing a single command). Release it with Dispose, preferably via
// defer or one of the Use* helpers. Operations after Dispose are not checked
// unless the buffer was built WithDebug(true).
package buffer
