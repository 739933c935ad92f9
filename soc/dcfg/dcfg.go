// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package dcfg implements a driver for the NXP Layerscape Device
// Configuration (DCFG) block: chip identification and secondary core
// release. All DCFG registers are 32-bit big-endian CCSR registers.
package dcfg

import (
	"github.com/lsfoundry/lstee/bus"
)

// DCFG registers
const (
	DCFG_SVR        = 0x0a4
	DCFG_CCSR_BRR   = 0x0e4
	DCFG_SCRATCHRW1 = 0x200
)

// DCFG represents the Device Configuration block instance.
type DCFG struct {
	// Base is the physical base address of the DCFG block.
	Base uint32
	// Bus is the register access path.
	Bus bus.Bus
}

// SVR returns the System Version Register, resolving its mapping on
// demand. An unmappable SVR halts.
func (hw *DCFG) SVR() uint32 {
	return bus.Read32BE(hw.Bus, bus.MustMap(hw.Bus, hw.Base+DCFG_SVR, 4))
}

// Revision returns the chip revision identifier, the low byte of the
// SVR. The value is read from hardware on every call and never cached.
func (hw *DCFG) Revision() uint8 {
	return uint8(hw.SVR() & 0xff)
}

// ReleaseSecondaries publishes the shared entry address through the
// boot scratch register and releases the cores selected by mask from
// their boot hold-off. A barrier orders both writes before the caller
// signals the wake event.
//
// Primary core only, and strictly before peripherals the released
// cores depend on are locked down.
func (hw *DCFG) ReleaseSecondaries(entry uint32, mask uint32) {
	scratch := bus.MustMap(hw.Bus, hw.Base+DCFG_SCRATCHRW1, 4)
	brr := bus.MustMap(hw.Bus, hw.Base+DCFG_CCSR_BRR, 4)

	bus.Write32BE(hw.Bus, scratch, entry)
	bus.Write32BE(hw.Bus, brr, mask)

	hw.Bus.Barrier()
}
