// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2017 The Memory Authors, adapted 2026 for mmheap.

//go:build darwin || dragonfly || freebsd || linux || openbsd || netbsd || solaris

package mmheap

import (
	"fmt"

	"golang.org/x/sys/unix"
)

var _ Region = (*SysRegion)(nil)

// SysRegion is a real OS-backed Region: it reserves a single large virtual
// range up front with mmap and grows into it by committing pages as the
// region's logical size advances, so the returned base address never
// moves. Grounded on cznic/memory's mmap_unix.go (the reservation and
// page-mask bookkeeping) and on lldb's simpleFileFiler (the "grow by
// extending, never relocating" contract a Filer/Region both need).
//
// SysRegion exists for embedders that want this allocator to actually own
// OS memory rather than a Go-managed page map (MemRegion); most callers,
// and every test in this package, use MemRegion instead.
type SysRegion struct {
	mem  []byte
	size uintptr
}

// NewSysRegion reserves reserveBytes of address space for the region to
// grow into. reserveBytes bounds the maximum size the region can ever
// reach; Grow fails once that reservation is exhausted.
func NewSysRegion(reserveBytes uintptr) (*SysRegion, error) {
	b, err := unix.Mmap(-1, 0, int(reserveBytes), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mmheap: reserving %d bytes: %w", reserveBytes, err)
	}
	return &SysRegion{mem: b}, nil
}

// Size implements Region.
func (r *SysRegion) Size() uintptr { return r.size }

// Grow implements Region. It commits the next n bytes of the reservation
// as read/write memory.
func (r *SysRegion) Grow(n uintptr) (uintptr, error) {
	off := r.size
	if off+n > uintptr(len(r.mem)) {
		return 0, fmt.Errorf("mmheap: region reservation of %d bytes exhausted (requested %d more at offset %d)", len(r.mem), n, off)
	}

	if err := unix.Mprotect(r.mem[off:off+n], unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return 0, fmt.Errorf("mmheap: committing %d bytes: %w", n, err)
	}

	r.size += n
	return off, nil
}

// ReadAt implements Region.
func (r *SysRegion) ReadAt(b []byte, off uintptr) { copy(b, r.mem[off:]) }

// WriteAt implements Region.
func (r *SysRegion) WriteAt(b []byte, off uintptr) { copy(r.mem[off:], b) }

// Close releases the reserved address space. It is not part of the Region
// interface - the allocator's heap lives for the process, per spec.md §5 -
// but is useful for tests and for embedders that create many short-lived
// Allocators (e.g. benchmarks).
func (r *SysRegion) Close() error {
	if r.mem == nil {
		return nil
	}
	err := unix.Munmap(r.mem)
	r.mem = nil
	return err
}
