// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package bus

import (
	"unsafe"
)

// IO is the hardware Bus. The secure world runs on a flat mapping, so
// translation is the identity function over the CCSR window and Map is
// satisfied trivially.
type IO struct {
	// CCSRStart and CCSRSize bound the accessible register window.
	CCSRStart uint32
	CCSRSize  int
}

// Read32 implements Bus.
func (io *IO) Read32(va uint32) uint32 {
	return *(*uint32)(unsafe.Pointer(uintptr(va)))
}

// Write32 implements Bus.
func (io *IO) Write32(va uint32, val uint32) {
	*(*uint32)(unsafe.Pointer(uintptr(va))) = val
}

// PhysToVirt implements Bus.
func (io *IO) PhysToVirt(pa uint32) uint32 {
	if pa < io.CCSRStart || uint64(pa) >= uint64(io.CCSRStart)+uint64(io.CCSRSize) {
		return Unmapped
	}

	return pa
}

// Map implements Bus.
func (io *IO) Map(pa uint32, size int) bool {
	return io.PhysToVirt(pa) != Unmapped
}

// Barrier implements Bus with a full data synchronization barrier.
func (io *IO) Barrier() {
	dsb()
}

// SendEvent wakes cores parked in WFE.
func (io *IO) SendEvent() {
	sev()
}

// defined in io_arm.s
func dsb()
func sev()
