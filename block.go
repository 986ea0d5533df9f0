// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmheap

import "encoding/binary"

// sizeMask clears the allocated bit (bit 0) and the two always-zero bits
// above it out of a header/footer word, leaving just the size.
const sizeMask = ^uint32(alignment - 1)

// header reads the 4-byte word at h and splits it into (size, allocated).
// Grounded on lldb.falloc.go's nfo, generalized from that function's 7-byte
// handle codec down to a plain 4-byte header word (spec.md §4.1).
func (a *Allocator) header(h Addr) (size uintptr, allocated bool) {
	var buf [wordSize]byte
	a.region.ReadAt(buf[:], uintptr(h))
	word := binary.BigEndian.Uint32(buf[:])
	return uintptr(word & sizeMask), word&1 != 0
}

// setHeader writes size|allocated as the header word at h.
func (a *Allocator) setHeader(h Addr, size uintptr, allocated bool) {
	a.writeTag(h, size, allocated)
}

// footerAddr returns the address of the footer word of a block of the
// given size starting at h.
func footerAddr(h Addr, size uintptr) Addr {
	return h + Addr(size) - wordSize
}

// setFooter writes size|allocated as the footer word of a block of the
// given size starting at h.
func (a *Allocator) setFooter(h Addr, size uintptr, allocated bool) {
	a.writeTag(footerAddr(h, size), size, allocated)
}

// writeTag encodes size|allocated and writes it at off.
func (a *Allocator) writeTag(off Addr, size uintptr, allocated bool) {
	word := uint32(size) & sizeMask
	if allocated {
		word |= 1
	}
	var buf [wordSize]byte
	binary.BigEndian.PutUint32(buf[:], word)
	a.region.WriteAt(buf[:], uintptr(off))
}

// setBlock writes matching header and footer for a block of size starting
// at h - the operation every state transition in this package (free,
// coalesce, place) ultimately reduces to.
func (a *Allocator) setBlock(h Addr, size uintptr, allocated bool) {
	a.setHeader(h, size, allocated)
	a.setFooter(h, size, allocated)
}

// payload returns the payload address of the block whose header is at h.
func payload(h Addr) Addr { return h + wordSize }

// headerFromPayload inverts payload: recovers a block's header address
// from an address previously handed to a caller.
func headerFromPayload(p Addr) Addr { return p - wordSize }

// next returns the header address of the block physically following the
// one whose header is at h. Callers must never call next on the epilogue.
func (a *Allocator) next(h Addr) Addr {
	size, _ := a.header(h)
	return h + Addr(size)
}

// prev returns the header address of the block physically preceding the
// one whose header is at h, by reading the 4 bytes immediately before h as
// that block's footer. Callers must never call prev on the prologue.
func (a *Allocator) prev(h Addr) Addr {
	var buf [wordSize]byte
	a.region.ReadAt(buf[:], uintptr(h-wordSize))
	word := binary.BigEndian.Uint32(buf[:])
	size := uintptr(word & sizeMask)
	return h - Addr(size)
}

// allocated reports the allocated bit of the block whose header is at h.
func (a *Allocator) allocated(h Addr) bool {
	_, alloc := a.header(h)
	return alloc
}

// size reports the size in bytes of the block whose header is at h.
func (a *Allocator) size(h Addr) uintptr {
	s, _ := a.header(h)
	return s
}
