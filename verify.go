// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmheap

import "fmt"

// VerifyError reports a structural problem found by Verify.
type VerifyError struct {
	Reason string
	Addr   Addr
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("mmheap: invariant violated at %d: %s", e.Addr, e.Reason)
}

// prologue is always at offset wordSize: New requires a fresh (empty)
// Region and lays the pad down as the first wordSize bytes of it.
func (a *Allocator) prologue() Addr { return Addr(wordSize) }

func (a *Allocator) epilogue() Addr { return Addr(a.region.Size() - wordSize) }

// Verify walks the heap from prologue to epilogue and the free list from
// head and from tail, checking every invariant spec.md §3 and §8 require to
// hold after any public operation returns. It is not part of the hot path -
// no public method calls it - and exists for this package's own tests and
// for embedders that want a consistency check available without
// duplicating it.
//
// Grounded on lldb.Allocator.Verify's shape (sequential scan building
// ground truth, then cross-checking the free structure against it), cut
// down from that function's multi-phase disk-verification problem (no
// "lost space" bitmap is needed here - walking an in-memory free list
// twice is cheap enough to just do directly).
func (a *Allocator) Verify() error {
	freeByWalk := map[Addr]bool{}

	h := a.prologue()
	prevAllocated := true
	for h != a.epilogue() {
		size, allocated := a.header(h)
		footSize, footAllocated := a.header(footerAddr(h, size))

		if size != footSize || allocated != footAllocated {
			return &VerifyError{"header does not equal footer", h}
		}
		if size%alignment != 0 {
			return &VerifyError{"size is not a multiple of 8", h}
		}
		if size < minBlockSize && h != a.prologue() {
			return &VerifyError{"block smaller than the minimum", h}
		}
		if !allocated {
			if !prevAllocated {
				return &VerifyError{"two adjacent blocks are both free", h}
			}
			freeByWalk[h] = true
		}

		prevAllocated = allocated
		h = a.next(h)
	}

	freeByList := map[Addr]bool{}
	for n := a.head; n != Null; n = a.freeNext(n) {
		if freeByList[n] {
			return &VerifyError{"free list forward walk cycles", n}
		}
		freeByList[n] = true
		if next := a.freeNext(n); next != Null && a.freePrev(next) != n {
			return &VerifyError{"next.prev does not point back", n}
		}
	}

	freeByListBack := map[Addr]bool{}
	for n := a.tail; n != Null; n = a.freePrev(n) {
		if freeByListBack[n] {
			return &VerifyError{"free list backward walk cycles", n}
		}
		freeByListBack[n] = true
		if prev := a.freePrev(n); prev != Null && a.freeNext(prev) != n {
			return &VerifyError{"prev.next does not point back", n}
		}
	}

	if (a.head == Null) != (a.tail == Null) {
		return &VerifyError{"head and tail disagree on emptiness", a.head}
	}

	if len(freeByList) != len(freeByWalk) || len(freeByListBack) != len(freeByWalk) {
		return &VerifyError{"free list membership does not match the heap walk", a.head}
	}
	for b := range freeByWalk {
		if !freeByList[b] || !freeByListBack[b] {
			return &VerifyError{"free block missing from the free list", b}
		}
	}

	return nil
}
