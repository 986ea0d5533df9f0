// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmheap

// Addr is a byte offset into a Region. It is the allocator's notion of an
// "address": opaque to callers, meaningful only when handed back to the
// same Allocator. Addr 0 is reserved - it always falls inside a Region's
// leading alignment pad and so is never a valid header or payload offset -
// and doubles as the free-list's null sentinel.
type Addr uintptr

// Null is the address returned in place of a C-style NULL: by Malloc when
// the request cannot be satisfied, and used internally as the free-list
// "no such link" value.
const Null Addr = 0

// Region is the heap-extension capability spec.md §6 calls the "heap
// extender": an abstraction over a single, contiguously growing byte range
// that the Allocator lays blocks out in. A Region never shrinks; there is
// no operation to return bytes to whatever backs it, matching spec.md's
// Non-goal that the heap only grows.
//
// A Region is not safe for concurrent use, same as the Allocator built on
// top of it.
type Region interface {
	// Size reports the current size of the region in bytes.
	Size() uintptr

	// Grow extends the region by exactly n bytes (n must be a multiple
	// of 8) and returns the offset of the first new byte, which is
	// always equal to the region's size before the call. If the
	// underlying storage cannot be extended, Grow returns a non-nil
	// error and leaves the region's size unchanged.
	Grow(n uintptr) (uintptr, error)

	// ReadAt copies len(b) bytes starting at off into b. off+len(b) must
	// not exceed Size().
	ReadAt(b []byte, off uintptr)

	// WriteAt copies len(b) bytes from b to the region starting at off.
	// off+len(b) must not exceed Size().
	WriteAt(b []byte, off uintptr)
}
