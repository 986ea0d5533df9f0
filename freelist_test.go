// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmheap

import "testing"

// freeListForward returns the free list as seen walking head->tail via
// freeNext, and freeListBackward as seen walking tail->head via freePrev.
func freeListForward(a *Allocator) []Addr {
	var out []Addr
	for n := a.head; n != Null; n = a.freeNext(n) {
		out = append(out, n)
	}
	return out
}

func freeListBackward(a *Allocator) []Addr {
	var out []Addr
	for n := a.tail; n != Null; n = a.freePrev(n) {
		out = append(out, n)
	}
	return out
}

func reversed(xs []Addr) []Addr {
	out := make([]Addr, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}

func equalAddrs(a, b []Addr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListPrependOrder(t *testing.T) {
	a := newTestAllocator(t)
	a.head, a.tail = Null, Null

	blocks := []Addr{800, 400, 200}
	for _, b := range blocks {
		a.setFreePrev(b, Null)
		a.setFreeNext(b, Null)
		a.listPrepend(b)
	}

	want := []Addr{200, 400, 800}
	if got := freeListForward(a); !equalAddrs(got, want) {
		t.Fatalf("forward walk = %v, want %v", got, want)
	}
	if got := freeListBackward(a); !equalAddrs(got, reversed(want)) {
		t.Fatalf("backward walk = %v, want %v", got, reversed(want))
	}
}

func TestListAppendOrder(t *testing.T) {
	a := newTestAllocator(t)
	a.head, a.tail = Null, Null

	blocks := []Addr{200, 400, 800}
	for _, b := range blocks {
		a.setFreePrev(b, Null)
		a.setFreeNext(b, Null)
		a.listAppend(b)
	}

	if got := freeListForward(a); !equalAddrs(got, blocks) {
		t.Fatalf("forward walk = %v, want %v", got, blocks)
	}
	if got := freeListBackward(a); !equalAddrs(got, reversed(blocks)) {
		t.Fatalf("backward walk = %v, want %v", got, reversed(blocks))
	}
}

func TestListRemoveAllPositions(t *testing.T) {
	a := newTestAllocator(t)
	a.head, a.tail = Null, Null

	for _, b := range []Addr{100, 200, 300, 400} {
		a.setFreePrev(b, Null)
		a.setFreeNext(b, Null)
		a.listAppend(b)
	}
	// list is now 100 -> 200 -> 300 -> 400

	a.listRemove(200) // interior
	if got, want := freeListForward(a), []Addr{100, 300, 400}; !equalAddrs(got, want) {
		t.Fatalf("after removing interior: %v, want %v", got, want)
	}

	a.listRemove(100) // head
	if got, want := freeListForward(a), []Addr{300, 400}; !equalAddrs(got, want) {
		t.Fatalf("after removing head: %v, want %v", got, want)
	}

	a.listRemove(400) // tail
	if got, want := freeListForward(a), []Addr{300}; !equalAddrs(got, want) {
		t.Fatalf("after removing tail: %v, want %v", got, want)
	}

	a.listRemove(300) // singleton
	if a.head != Null || a.tail != Null {
		t.Fatalf("after removing the only node: head=%d tail=%d, want Null, Null", a.head, a.tail)
	}
}

func TestListInsertBimodalPolicy(t *testing.T) {
	a := newTestAllocator(t)
	a.head, a.tail = Null, Null

	small := Addr(500) // block size is under SmallBlockThreshold
	a.setFreePrev(small, Null)
	a.setFreeNext(small, Null)
	a.listInsert(small, a.cfg.SmallBlockThreshold-8)
	if a.head != small {
		t.Fatalf("small block was not prepended: head = %d, want %d", a.head, small)
	}

	large := Addr(900)
	a.setFreePrev(large, Null)
	a.setFreeNext(large, Null)
	a.listInsert(large, a.cfg.SmallBlockThreshold+8)
	if a.tail != large {
		t.Fatalf("large block was not appended: tail = %d, want %d", a.tail, large)
	}
}
