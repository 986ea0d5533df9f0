// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package mmheap implements a boundary-tag dynamic memory allocator over a
single, contiguously growing Region (see region.go for the heap-extension
capability).

The allocator exposes the four classical operations: New (init), Malloc,
Free and Realloc. Returned addresses are byte offsets into the Region and
are opaque to callers - they carry no meaning outside this package other
than "the payload starts here".

Heap layout

A Region managed by an Allocator always looks like:

	+------+-----------+------+-- ... --+------+----------+
	| pad  | prologue  | blk0 |   ...   | blkN | epilogue |
	| 4B   | 8B, alloc |      |         |      | 4B, sz=0 |
	+------+-----------+------+-- ... --+------+----------+

The pad keeps every real block's payload 8-byte aligned (each header sits
4 bytes below an 8-byte boundary). The prologue and
epilogue are permanently allocated sentinels so that boundary-tag
navigation at either end of the heap never has to special-case "there is no
neighbour here" - next() and prev() always land on some block, and that
block's allocated bit happens to be 1.

Block format

Every block, the prologue included, carries a 4-byte header at its lowest
address and a 4-byte footer at its highest address; the epilogue is a lone
header word with no footer. Both words encode the
same thing: the block size (a multiple of 8) in the high 29 bits and the
allocated flag in bit 0.

	+--------+- ... -+--------+
	| header | ...   | footer |
	| 4B     |       | 4B     |
	+--------+- ... -+--------+

	bits 31..3: size / 8 * 8  (size is always a multiple of 8)
	bit     0 : allocated

When a block is free, the first 8 bytes of what would be its payload are
overlaid with two 4-byte links - the header offsets of the previous and
next free block on the allocator's doubly linked free list, or 0 (the null
sentinel, which is never a valid header offset since it falls inside the
Region's leading pad).

	+--------+-----------+-----------+- ... -+--------+
	| header | prev-free | next-free |  ...  | footer |
	+--------+-----------+-----------+- ... -+--------+

These links are meaningless once the block is allocated; the caller then
owns every payload byte.
*/
package mmheap
