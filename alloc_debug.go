// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build mmheap_debug

package mmheap

// checkAllocated validates that h names a header currently inside the
// region and marked allocated. Built only under the mmheap_debug tag; the
// default build never pays for this check, matching spec.md §7.2's "no
// validation required" contract while still offering the "MAY optionally
// detect" escape hatch it allows.
func (a *Allocator) checkAllocated(h Addr) error {
	if h < wordSize || uintptr(h)+wordSize > a.region.Size() {
		return &ErrInvalidAddr{Addr: h + wordSize}
	}
	if !a.allocated(h) {
		return &ErrInvalidAddr{Addr: h + wordSize}
	}
	return nil
}
