// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package bus provides the register access layer for memory mapped
// peripherals: ordered 32-bit read/write primitives and physical to
// virtual address translation with on-demand mapping.
package bus

import (
	"math/bits"
)

// Unmapped is the translation sentinel returned by PhysToVirt for
// addresses without an accessible mapping.
const Unmapped = 0

// Bus represents an MMIO access path to the SoC register space.
//
// All accesses are 32-bit, aligned and issued in program order with
// respect to Barrier.
type Bus interface {
	// Read32 returns the register at the accessible address va.
	Read32(va uint32) uint32

	// Write32 sets the register at the accessible address va.
	Write32(va uint32, val uint32)

	// PhysToVirt translates a physical address to an accessible one,
	// returning Unmapped when no mapping exists.
	PhysToVirt(pa uint32) uint32

	// Map attempts an on-demand mapping of size bytes at pa, it
	// returns false when the mapping cannot be established.
	Map(pa uint32, size int) bool

	// Barrier orders all previously issued writes before any
	// subsequent access.
	Barrier()
}

// MustMap translates pa, attempting a single on-demand mapping of size
// bytes when the address is not yet accessible. A translation failure
// after the mapping attempt halts, as proceeding with an unmapped
// register would corrupt unrelated state.
func MustMap(b Bus, pa uint32, size int) uint32 {
	va := b.PhysToVirt(pa)

	if va != Unmapped {
		return va
	}

	b.Map(pa, size)

	if va = b.PhysToVirt(pa); va == Unmapped {
		panic("bus: unmapped register")
	}

	return va
}

// Read32BE reads a 32-bit big-endian register, such as the Layerscape
// CCSR configuration space, returning its value in host order.
func Read32BE(b Bus, va uint32) uint32 {
	return bits.ReverseBytes32(b.Read32(va))
}

// Write32BE writes val, given in host order, to a 32-bit big-endian
// register.
func Write32BE(b Bus, va uint32, val uint32) {
	b.Write32(va, bits.ReverseBytes32(val))
}
