// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package scfg implements a driver for the NXP Layerscape Supplemental
// Configuration (SCFG) block, limited to the GIC400 address alignment
// register. SCFG registers are 32-bit big-endian CCSR registers.
package scfg

import (
	"github.com/usbarmory/tamago/bits"

	"github.com/lsfoundry/lstee/bus"
)

// SCFG registers
const (
	SCFG_GIC400_ALIGN = 0x188

	GIC_ADDR_BIT = 31
)

// SCFG represents the Supplemental Configuration block instance.
type SCFG struct {
	// Base is the physical base address of the SCFG block.
	Base uint32
	// Bus is the register access path.
	Bus bus.Bus
}

// GIC4KAlign returns whether the interrupt controller blocks are laid
// out on 4 KiB aligned offsets, resolving the alignment register
// mapping on demand. An unmappable register halts.
func (hw *SCFG) GIC4KAlign() bool {
	val := bus.Read32BE(hw.Bus, bus.MustMap(hw.Bus, hw.Base+SCFG_GIC400_ALIGN, 4))

	return bits.Get(&val, GIC_ADDR_BIT)
}
