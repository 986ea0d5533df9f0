// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmheap

import "encoding/binary"

// A free block overlays its prev/next free-list links on the first 8 bytes
// of its payload (spec.md §3, "Free block"). prevFreeOff/nextFreeOff are
// offsets from the block's header, not its payload, purely so the two
// helpers below read/write in one call each.
const (
	prevFreeOff = wordSize
	nextFreeOff = wordSize + wordSize
)

func (a *Allocator) freePrev(h Addr) Addr {
	var buf [wordSize]byte
	a.region.ReadAt(buf[:], uintptr(h)+prevFreeOff)
	return Addr(binary.BigEndian.Uint32(buf[:]))
}

func (a *Allocator) freeNext(h Addr) Addr {
	var buf [wordSize]byte
	a.region.ReadAt(buf[:], uintptr(h)+nextFreeOff)
	return Addr(binary.BigEndian.Uint32(buf[:]))
}

func (a *Allocator) setFreePrev(h, prev Addr) {
	var buf [wordSize]byte
	binary.BigEndian.PutUint32(buf[:], uint32(prev))
	a.region.WriteAt(buf[:], uintptr(h)+prevFreeOff)
}

func (a *Allocator) setFreeNext(h, next Addr) {
	var buf [wordSize]byte
	binary.BigEndian.PutUint32(buf[:], uint32(next))
	a.region.WriteAt(buf[:], uintptr(h)+nextFreeOff)
}

// listPrepend inserts b as the new head of the free list (spec.md §4.2).
// It touches only link fields, never a block's allocated bit.
func (a *Allocator) listPrepend(b Addr) {
	if a.head == Null {
		a.head, a.tail = b, b
		a.setFreePrev(b, Null)
		a.setFreeNext(b, Null)
		return
	}

	a.setFreeNext(b, a.head)
	a.setFreePrev(a.head, b)
	a.setFreePrev(b, Null)
	a.head = b
}

// listAppend inserts b as the new tail of the free list, symmetric to
// listPrepend (spec.md §4.2).
func (a *Allocator) listAppend(b Addr) {
	if a.tail == Null {
		a.head, a.tail = b, b
		a.setFreePrev(b, Null)
		a.setFreeNext(b, Null)
		return
	}

	a.setFreePrev(b, a.tail)
	a.setFreeNext(a.tail, b)
	a.setFreeNext(b, Null)
	a.tail = b
}

// listRemove splices b out of the free list. The four cases are disjoint
// on (prev, next) being the null sentinel (spec.md §4.2); b's own link
// fields are cleared on the way out so a stale, no-longer-free block can
// never be mistaken for one still on the list.
func (a *Allocator) listRemove(b Addr) {
	prev, next := a.freePrev(b), a.freeNext(b)

	switch {
	case prev == Null && next == Null:
		// singleton
		a.head, a.tail = Null, Null
	case prev == Null:
		// head of a longer list
		a.head = next
		a.setFreePrev(next, Null)
	case next == Null:
		// tail of a longer list
		a.tail = prev
		a.setFreeNext(prev, Null)
	default:
		// interior
		a.setFreeNext(prev, next)
		a.setFreePrev(next, prev)
	}

	a.setFreePrev(b, Null)
	a.setFreeNext(b, Null)
}

// listInsert places a newly-freed block of the given size on the free list
// per the bimodal policy of spec.md §4.3: blocks smaller than
// SmallBlockThreshold are prepended (clustering small, frequently reused
// blocks near the head that a small find_fit visits first), larger blocks
// are appended.
func (a *Allocator) listInsert(b Addr, size uintptr) {
	if size < a.cfg.SmallBlockThreshold {
		a.listPrepend(b)
		return
	}
	a.listAppend(b)
}
