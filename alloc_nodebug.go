// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !mmheap_debug

package mmheap

// checkAllocated is a no-op in the default build: spec.md §7.2 defines
// misuse (double-free, freeing a non-allocator pointer, use-after-free) as
// undefined behavior and does not mandate detection.
func (a *Allocator) checkAllocated(h Addr) error { return nil }
