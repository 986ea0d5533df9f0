// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmheap

import (
	"bytes"
	"testing"
)

func TestMemRegionGrowReadWrite(t *testing.T) {
	r := NewMemRegion()
	if r.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", r.Size())
	}

	off, err := r.Grow(32)
	if err != nil {
		t.Fatal(err)
	}
	if off != 0 {
		t.Fatalf("Grow offset = %d, want 0", off)
	}
	if r.Size() != 32 {
		t.Fatalf("Size() = %d, want 32", r.Size())
	}

	want := []byte("0123456789abcdef")
	r.WriteAt(want, 8)
	got := make([]byte, len(want))
	r.ReadAt(got, 8)
	if !bytes.Equal(got, want) {
		t.Fatalf("ReadAt = %q, want %q", got, want)
	}

	off2, err := r.Grow(memPageSize * 3)
	if err != nil {
		t.Fatal(err)
	}
	if off2 != 32 {
		t.Fatalf("Grow offset = %d, want 32", off2)
	}

	// Growth must not disturb previously written bytes, even across a
	// page boundary.
	got2 := make([]byte, len(want))
	r.ReadAt(got2, 8)
	if !bytes.Equal(got2, want) {
		t.Fatalf("after growth ReadAt = %q, want %q", got2, want)
	}
}

func TestMemRegionZeroedOnFirstRead(t *testing.T) {
	r := NewMemRegion()
	if _, err := r.Grow(memPageSize + 16); err != nil {
		t.Fatal(err)
	}

	got := make([]byte, 16)
	r.ReadAt(got, memPageSize-8)
	for i, b := range got {
		if b != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, b)
		}
	}
}

func TestMemRegionWriteSpanningPages(t *testing.T) {
	r := NewMemRegion()
	n := uintptr(memPageSize*2 + 64)
	if _, err := r.Grow(n); err != nil {
		t.Fatal(err)
	}

	want := bytes.Repeat([]byte{0xAB}, 200)
	off := uintptr(memPageSize - 50)
	r.WriteAt(want, off)

	got := make([]byte, len(want))
	r.ReadAt(got, off)
	if !bytes.Equal(got, want) {
		t.Fatal("data written across a page boundary was not read back intact")
	}
}
