// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmheap

import "github.com/cznic/mathutil"

// Allocator is a boundary-tag heap allocator over a Region. Its zero value
// is not usable; construct one with New.
//
// An Allocator is not safe for concurrent use - all process-wide mutable
// state (the free-list head/tail, the region itself) lives in struct
// fields rather than package globals, a legitimate alternative spec.md §9's
// Design Notes call out explicitly, which also means independent
// Allocators over independent Regions never interfere.
type Allocator struct {
	region Region
	cfg    Config

	// head, tail are the header addresses of the first and last blocks
	// on the doubly linked free list, or Null if the list is empty.
	// Invariant: head == Null iff tail == Null (spec.md §3 invariant 6,
	// tightened per the Open Question in DESIGN.md).
	head, tail Addr
}

// New lays down the heap sentinels (spec.md §4.6, "mm_init") on region and
// seeds the free list with one InitialExtension-byte block. region must be
// empty (Size() == 0); New is the only operation that may be called on a
// fresh Region.
func New(region Region, opts ...Option) (*Allocator, error) {
	cfg := NewConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	a := &Allocator{region: region, cfg: cfg}

	// 4-byte pad, 8-byte prologue, 4-byte epilogue.
	const bootstrap = wordSize + 2*wordSize + wordSize
	base, err := region.Grow(bootstrap)
	if err != nil {
		return nil, &OutOfMemoryError{Requested: bootstrap, Err: err}
	}

	prologue := Addr(base) + wordSize
	a.setBlock(prologue, 2*wordSize, true)
	epilogue := prologue + 2*wordSize
	a.setHeader(epilogue, 0, true)

	if _, err := a.extend(cfg.InitialExtension); err != nil {
		return nil, err
	}

	return a, nil
}

// Config reports the thresholds this Allocator was constructed with.
func (a *Allocator) Config() Config { return a.cfg }

// extend grows the region by s bytes, folds the new space in as a free
// block and coalesces it with the physically preceding block if that one
// happens to be free, returning the resulting free block's header address
// (spec.md §4.7, "extend_heap").
//
// The region guarantees (by construction, since it only ever grows by
// exactly what New/extend ask for) that the byte immediately preceding the
// newly granted range is the old epilogue's header: extend overwrites it as
// the new block's header, exactly as spec.md's extend_heap requires.
func (a *Allocator) extend(s uintptr) (Addr, error) {
	oldEpilogue := Addr(a.region.Size() - wordSize)

	if _, err := a.region.Grow(s); err != nil {
		return Null, &OutOfMemoryError{Requested: s, Err: err}
	}

	newBlock := oldEpilogue
	a.setBlock(newBlock, s, false)

	newEpilogue := Addr(a.region.Size() - wordSize)
	a.setHeader(newEpilogue, 0, true)

	return a.coalesce(newBlock), nil
}

// Malloc allocates a block able to hold n bytes and returns its payload
// address, or Null if n is 0 or the heap could not be grown further
// (spec.md §4.8, "mm_malloc").
func (a *Allocator) Malloc(n uintptr) (Addr, error) {
	if n == 0 {
		return Null, nil
	}

	r := requiredBlockSize(n)
	for {
		if b := a.findFit(r); b != Null {
			return payload(a.place(b, r)), nil
		}

		// The source this spec is drawn from loops forever here if
		// extend fails; spec.md §9 flags that as a bug. This breaks
		// out and surfaces the failure instead.
		if _, err := a.extend(r); err != nil {
			return Null, err
		}
	}
}

// Free deallocates the block at payload address p, coalescing it with any
// free physical neighbours (spec.md §4.9, "mm_free"). p must have been
// returned by Malloc or Realloc and not yet freed; passing any other value
// is undefined behavior per spec.md §7.2, except under the mmheap_debug
// build tag, which validates it.
func (a *Allocator) Free(p Addr) error {
	h := headerFromPayload(p)
	if err := a.checkAllocated(h); err != nil {
		return err
	}
	a.coalesce(h)
	return nil
}

// Realloc resizes the block at payload address p to hold n bytes, per the
// shrink/grow/relocate policy of spec.md §4.10 ("mm_realloc"), and returns
// the (possibly new) payload address.
func (a *Allocator) Realloc(p Addr, n uintptr) (Addr, error) {
	if p == Null {
		return a.Malloc(n)
	}
	if n == 0 {
		return Null, a.Free(p)
	}

	h := headerFromPayload(p)
	if err := a.checkAllocated(h); err != nil {
		return Null, err
	}

	s := a.size(h)
	r := requiredBlockSize(n)

	switch {
	case s >= r:
		return p, a.reallocShrink(h, s, r)
	default:
		if ok := a.reallocGrowInPlace(h, s, r); ok {
			return p, nil
		}
		return a.reallocRelocate(h, s, p, n)
	}
}

// reallocShrink implements the shrink path: split off a free tail only if
// it would be big enough to be worth the bookkeeping.
func (a *Allocator) reallocShrink(h Addr, s, r uintptr) error {
	if s-r <= a.cfg.ShrinkGrowThreshold {
		return nil
	}

	a.setBlock(h, r, true)
	tail := h + Addr(r)
	a.setBlock(tail, s-r, false)
	a.coalesce(tail)
	return nil
}

// reallocGrowInPlace attempts to satisfy a grow by absorbing a free
// physical right neighbour, reporting whether it succeeded.
func (a *Allocator) reallocGrowInPlace(h Addr, s, r uintptr) bool {
	next := a.next(h)
	if a.allocated(next) {
		return false
	}

	nextSize := a.size(next)
	combined := s + nextSize
	if combined < r {
		return false
	}

	a.listRemove(next)
	if combined-r <= a.cfg.ShrinkGrowThreshold {
		a.setBlock(h, combined, true)
		return true
	}

	a.setBlock(h, r, true)
	tail := h + Addr(r)
	a.setBlock(tail, combined-r, false)
	a.coalesce(tail)
	return true
}

// reallocRelocate is the fallback path: allocate fresh, copy the live
// payload, free the old block.
func (a *Allocator) reallocRelocate(h Addr, s uintptr, p Addr, n uintptr) (Addr, error) {
	newP, err := a.Malloc(n)
	if err != nil {
		return Null, err
	}

	// Old payload size is size(header) - 8, not n - this path is only
	// reached on a grow, where n exceeds the old payload, so copying n
	// bytes would read past the old block. Per the Open
	// Question in spec.md §9, this must be computed from the header,
	// not assumed to equal the original request.
	oldPayload := s - blockOverhead
	n2 := uintptr(mathutil.MinInt64(int64(n), int64(oldPayload)))

	a.copyBytes(newP, p, n2)
	return newP, a.Free(p)
}

// copyBytes copies n bytes from src to dst within the region, chunked the
// way lldb.falloc.go's relocation loop chunks its copy via mathutil.MinInt64.
func (a *Allocator) copyBytes(dst, src Addr, n uintptr) {
	const chunk = 4096
	buf := make([]byte, chunk)
	for n > 0 {
		k := uintptr(mathutil.MinInt64(chunk, int64(n)))
		b := buf[:k]
		a.region.ReadAt(b, uintptr(src))
		a.region.WriteAt(b, uintptr(dst))
		src += Addr(k)
		dst += Addr(k)
		n -= k
	}
}
