// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmheap

import "fmt"

// Structural constants. These are not tunable: they fall out of the block
// format itself (spec.md §3) and the Non-goals explicitly exclude stricter
// alignment.
const (
	// wordSize is the size of a header or footer word.
	wordSize = 4

	// alignment all payload addresses are guaranteed to satisfy.
	alignment = 8

	// minBlockSize is the smallest legal block: header + footer + room
	// for the two free-list link fields.
	minBlockSize = 16

	// blockOverhead is the header+footer bookkeeping cost of every block.
	blockOverhead = 2 * wordSize
)

// Config holds the tunable thresholds of the placement, coalescing and fit
// policies (spec.md §4.3-4.5, §4.10). Their absolute values are empirically
// tuned trade-offs between fragmentation and search speed; this type exists
// so a host process can retune them without forking the package, while
// preserving the orderings the algorithm depends on.
//
// The zero Config is not valid; build one with NewConfig.
type Config struct {
	// SplitLowThreshold: requests at or below this many bytes are carved
	// from the low address of a split free block (they tend to be
	// short-lived and this keeps them clustered at the front of the
	// heap, near other small blocks).
	SplitLowThreshold uintptr

	// ShrinkGrowThreshold: in Realloc, a shrink only splits off a free
	// tail if it would be more than this many bytes; a grow-in-place only
	// splits the absorbed neighbour if the leftover is more than this
	// many bytes. At or below it, the slack is left inside the allocation
	// rather than paying for a tiny free block.
	ShrinkGrowThreshold uintptr

	// FitSizeClassThreshold: find_fit walks the free list from the head
	// forward for requests at or below this size, and from the tail
	// backward for requests above it. This pairs with the free-list
	// insertion policy below so each search starts where blocks of its
	// own size class congregate.
	FitSizeClassThreshold uintptr

	// SmallBlockThreshold: a block being freed (or a coalesced result)
	// smaller than this is prepended to the free list; at or above it,
	// the block is appended. Clusters small, frequently reused blocks
	// near the head, which FitSizeClassThreshold-directed small searches
	// visit first.
	SmallBlockThreshold uintptr

	// InitialExtension is the size of the slab New() requests right
	// after laying down the sentinels, seeding the free list with one
	// block so the first Malloc need not itself call Grow.
	InitialExtension uintptr
}

// NewConfig returns the default Config, the same thresholds spec.md §4
// prescribes (25, 250, 270, 1000 bytes, 200-byte initial slab).
func NewConfig() Config {
	return Config{
		SplitLowThreshold:     25,
		ShrinkGrowThreshold:   250,
		FitSizeClassThreshold: 270,
		SmallBlockThreshold:   1000,
		InitialExtension:      200,
	}
}

// Option configures an Allocator at construction time.
type Option func(*Config)

// WithSplitLowThreshold overrides Config.SplitLowThreshold.
func WithSplitLowThreshold(n uintptr) Option {
	return func(c *Config) { c.SplitLowThreshold = n }
}

// WithShrinkGrowThreshold overrides Config.ShrinkGrowThreshold.
func WithShrinkGrowThreshold(n uintptr) Option {
	return func(c *Config) { c.ShrinkGrowThreshold = n }
}

// WithFitSizeClassThreshold overrides Config.FitSizeClassThreshold.
func WithFitSizeClassThreshold(n uintptr) Option {
	return func(c *Config) { c.FitSizeClassThreshold = n }
}

// WithSmallBlockThreshold overrides Config.SmallBlockThreshold.
func WithSmallBlockThreshold(n uintptr) Option {
	return func(c *Config) { c.SmallBlockThreshold = n }
}

// WithInitialExtension overrides Config.InitialExtension.
func WithInitialExtension(n uintptr) Option {
	return func(c *Config) { c.InitialExtension = n }
}

// validate enforces the ordering spec.md §4's closing paragraph requires
// implementations preserve among the four tuning thresholds, plus the
// basic sanity every threshold needs to be a meaningful block-size cutoff.
func (c Config) validate() error {
	switch {
	case c.SplitLowThreshold < minBlockSize-blockOverhead:
		return &ErrConfig{"SplitLowThreshold", fmt.Sprintf("must be >= %d", minBlockSize-blockOverhead)}
	case c.SplitLowThreshold >= c.ShrinkGrowThreshold:
		return &ErrConfig{"SplitLowThreshold", "must be < ShrinkGrowThreshold"}
	case c.ShrinkGrowThreshold >= c.FitSizeClassThreshold:
		return &ErrConfig{"ShrinkGrowThreshold", "must be < FitSizeClassThreshold"}
	case c.FitSizeClassThreshold >= c.SmallBlockThreshold:
		return &ErrConfig{"FitSizeClassThreshold", "must be < SmallBlockThreshold"}
	case c.InitialExtension%alignment != 0 || c.InitialExtension < minBlockSize:
		return &ErrConfig{"InitialExtension", fmt.Sprintf("must be a multiple of %d and >= %d", alignment, minBlockSize)}
	}
	return nil
}

// roundup returns the smallest multiple of m that is >= n. m must be a
// power of two. A two-line bit trick, not a concern worth a dependency for.
func roundup(n, m uintptr) uintptr {
	return (n + m - 1) &^ (m - 1)
}

// requiredBlockSize computes R = round-up(n+8, 8), the block size (header +
// payload + footer) needed to satisfy a Malloc(n) request (spec.md §4.8).
func requiredBlockSize(n uintptr) uintptr {
	return roundup(n+blockOverhead, alignment)
}
