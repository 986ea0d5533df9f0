// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmheap

// coalesce marks the block at b free and merges it with whichever of its
// physical neighbours are also free, per the four-case table of spec.md
// §4.3. It returns the header address of the resulting free block, which
// may be b itself (cases 1-2) or a neighbour that absorbed b (cases 3-4).
//
// Grounded directly on lldb.falloc.go's free2: that function already
// implements the isolated / right-join / left-join / middle-join four-way
// split this spec documents, there applied to file offsets and atom
// counts; here applied to in-memory header/footer words.
func (a *Allocator) coalesce(b Addr) Addr {
	size := a.size(b)
	a.setBlock(b, size, false)

	prev := a.prev(b)
	next := a.next(b)
	prevFree := !a.allocated(prev)
	nextFree := !a.allocated(next)

	switch {
	case !prevFree && !nextFree:
		// Case 1: isolated. Just register b.
		a.listInsert(b, size)
		return b

	case !prevFree && nextFree:
		// Case 2: right join. Absorb next into b.
		nextSize := a.size(next)
		a.listRemove(next)
		combined := size + nextSize
		a.setBlock(b, combined, false)
		a.listInsert(b, combined)
		return b

	case prevFree && !nextFree:
		// Case 3: left join. Extend prev to cover b; prev keeps its
		// free-list position.
		prevSize := a.size(prev)
		combined := prevSize + size
		a.setBlock(prev, combined, false)
		return prev

	default:
		// Case 4: middle join. Absorb both neighbours into prev.
		prevSize := a.size(prev)
		nextSize := a.size(next)
		a.listRemove(next)
		combined := prevSize + size + nextSize
		a.setBlock(prev, combined, false)
		return prev
	}
}
