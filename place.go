// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmheap

// place converts the free block b (of size >= r) into an allocated block of
// size r, splitting off a free remainder when the leftover is large enough
// to host one, and returns the header address of the allocated block
// (spec.md §4.4).
//
// Grounded on lldb.falloc.go's alloc method: remove the candidate from its
// free structure first, then decide split vs. no-split, then (if splitting)
// decide which half the caller gets.
func (a *Allocator) place(b Addr, r uintptr) Addr {
	a.listRemove(b)

	s := a.size(b)
	remainder := s - r
	if remainder <= blockOverhead {
		// Too small to host a valid free block (header+footer+links);
		// the slack becomes internal fragmentation of the allocation.
		a.setBlock(b, s, true)
		return b
	}

	if r <= a.cfg.SplitLowThreshold {
		// Very small allocation: carve it from the low address so it
		// clusters with other short-lived small blocks, leaving the
		// high remainder free.
		a.setBlock(b, r, true)
		free := b + Addr(r)
		a.setBlock(free, remainder, false)
		a.coalesce(free)
		return b
	}

	// Larger allocation: carve it from the high address, leaving the
	// low remainder free and the front of the original block reusable.
	a.setBlock(b, remainder, false)
	alloc := b + Addr(remainder)
	a.setBlock(alloc, r, true)
	a.coalesce(b)
	return alloc
}
