// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmheap

// findFit returns the header address of a free block of size >= r, or Null
// if none exists (spec.md §4.5).
//
// The search is size-class directed: requests above FitSizeClassThreshold
// walk the free list from the tail backward, requests at or below it walk
// from the head forward. This pairs with the bimodal insertion policy of
// listInsert so each search starts in the region densest with candidates
// of its own class. Either direction applies the same one-step
// "better-fit" refinement: having found the first adequate block, look one
// more step in the walk direction and take that neighbour instead if it
// also fits and is smaller - a cheap improvement over pure first-fit that
// stops well short of a full best-fit scan.
//
// Grounded on lldb.flt.go's find/head, generalized from table-indexed size
// slots to direct traversal of the single list spec.md specifies.
func (a *Allocator) findFit(r uintptr) Addr {
	if r > a.cfg.FitSizeClassThreshold {
		return a.findFitFrom(a.tail, r, a.freePrev)
	}
	return a.findFitFrom(a.head, r, a.freeNext)
}

func (a *Allocator) findFitFrom(start Addr, r uintptr, step func(Addr) Addr) Addr {
	for node := start; node != Null; node = step(node) {
		if a.size(node) < r {
			continue
		}

		candidate := node
		if look := step(node); look != Null {
			if lookSize := a.size(look); lookSize >= r && lookSize < a.size(candidate) {
				return look
			}
		}
		return candidate
	}
	return Null
}
