// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmheap

import "github.com/cznic/mathutil"

// A memory-only Region, grounded on lldb.MemFiler: storage is split into
// fixed-size pages kept in a map, allocated lazily as Grow advances the
// region's size. Because pages are never moved or reallocated once
// created, growing the region never invalidates a previously returned
// Addr - exactly the property a heap extender needs and the one a single
// growable []byte (which may need to move on reallocation) would not give
// for free.
var _ Region = (*MemRegion)(nil)

const (
	memPageBits = 12
	memPageSize = 1 << memPageBits
	memPageMask = memPageSize - 1
)

// MemRegion is an in-process Region backed by a page map. It is the
// default Region - every test in this package uses one - and is
// appropriate for any embedder that does not specifically need a real
// OS-backed arena (see SysRegion for that).
type MemRegion struct {
	pages map[uintptr]*[memPageSize]byte
	size  uintptr
}

// NewMemRegion returns an empty MemRegion.
func NewMemRegion() *MemRegion {
	return &MemRegion{pages: map[uintptr]*[memPageSize]byte{}}
}

// Size implements Region.
func (r *MemRegion) Size() uintptr { return r.size }

// Grow implements Region. A MemRegion never fails to grow; it has no
// intrinsic capacity limit other than process memory.
func (r *MemRegion) Grow(n uintptr) (uintptr, error) {
	off := r.size
	r.size += n
	return off, nil
}

// ReadAt implements Region.
func (r *MemRegion) ReadAt(b []byte, off uintptr) {
	pgI := off >> memPageBits
	pgO := off & memPageMask
	for len(b) > 0 {
		pg := r.pages[pgI]
		nc := mathutil.Min(len(b), memPageSize-int(pgO))
		var n int
		if pg == nil {
			n = copy(b[:nc], zeroMemPage[pgO:])
		} else {
			n = copy(b[:nc], pg[pgO:])
		}
		b = b[n:]
		pgI++
		pgO = 0
	}
}

// WriteAt implements Region.
func (r *MemRegion) WriteAt(b []byte, off uintptr) {
	pgI := off >> memPageBits
	pgO := off & memPageMask
	for len(b) > 0 {
		pg := r.pages[pgI]
		if pg == nil {
			pg = new([memPageSize]byte)
			r.pages[pgI] = pg
		}
		nc := mathutil.Min(len(b), memPageSize-int(pgO))
		n := copy(pg[pgO:], b[:nc])
		b = b[n:]
		pgI++
		pgO = 0
	}
}

var zeroMemPage [memPageSize]byte
