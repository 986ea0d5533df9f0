// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmheap

import "fmt"

// ErrConfig reports an invalid Config value passed to New, such as a
// threshold that violates the ordering spec.md §4 requires.
type ErrConfig struct {
	Field  string
	Reason string
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("mmheap: invalid Config.%s: %s", e.Field, e.Reason)
}

// OutOfMemoryError reports that the Region could not be grown to satisfy a
// request. It is the only recoverable error condition this package defines
// (spec.md §7.1): the allocator's own state remains valid, and a smaller
// request, or the same request after other blocks are freed, may still
// succeed.
type OutOfMemoryError struct {
	// Requested is the number of additional bytes that Grow was asked
	// for and could not provide.
	Requested uintptr
	// Err is the underlying Region error, if any.
	Err error
}

func (e *OutOfMemoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mmheap: heap exhausted growing by %d bytes: %v", e.Requested, e.Err)
	}
	return fmt.Sprintf("mmheap: heap exhausted growing by %d bytes", e.Requested)
}

func (e *OutOfMemoryError) Unwrap() error { return e.Err }

// ErrInvalidAddr is returned by the optional debug-mode validation (see
// the mmheap_debug build tag in alloc_debug.go) when Free or Realloc is
// handed an address that does not name a currently allocated block. Outside
// of that build tag this case is undefined behavior, per spec.md §7.2 -
// "Implementations MAY optionally detect" is the only license this spec
// gives for the check to exist at all.
type ErrInvalidAddr struct {
	Addr Addr
}

func (e *ErrInvalidAddr) Error() string {
	return fmt.Sprintf("mmheap: %d does not refer to an allocated block", e.Addr)
}
