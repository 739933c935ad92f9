// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package gic implements a driver for the ARM Generic Interrupt
// Controller (GICv2), split in the shared distributor and the banked
// per-core CPU interfaces.
package gic

import (
	"github.com/usbarmory/tamago/bits"

	"github.com/lsfoundry/lstee/bus"
)

// GIC distributor registers
const (
	GICD_CTLR  = 0x000
	GICD_TYPER = 0x004

	GICD_IGROUPR   = 0x080
	GICD_ISENABLER = 0x100
	GICD_ICENABLER = 0x180
)

// GICD_CTLR bits
const (
	GICD_CTLR_ENABLEGRP1 = 1
	GICD_CTLR_ENABLEGRP0 = 0
)

// GIC CPU interface registers
const (
	GICC_CTLR = 0x000
	GICC_PMR  = 0x004
	GICC_IAR  = 0x00c
	GICC_EOIR = 0x010
)

// GICC_CTLR bits
const (
	GICC_CTLR_FIQEN      = 3
	GICC_CTLR_ENABLEGRP1 = 1
	GICC_CTLR_ENABLEGRP0 = 0
)

// Spurious interrupt identifier
const Spurious = 1023

// GIC represents a GICv2 instance.
type GIC struct {
	// dist is the accessible distributor base
	dist uint32
	// cpu is the accessible CPU interface base
	cpu uint32
	// b is the register access path
	b bus.Bus

	// implemented interrupt lines, set by Init
	lines int
}

// New returns a GIC instance over resolved distributor and CPU
// interface bases. A missing distributor base halts; a missing CPU
// interface base halts as well, as this GIC architecture version has
// no system register interface to fall back on.
func New(b bus.Bus, dist uint32, cpu uint32) *GIC {
	if dist == bus.Unmapped {
		panic("gic: missing distributor base")
	}

	if cpu == bus.Unmapped {
		panic("gic: missing CPU interface base")
	}

	return &GIC{
		dist: dist,
		cpu:  cpu,
		b:    b,
	}
}

// Init performs the one-time distributor initialization, disabling all
// interrupt forwarding, assigning every implemented interrupt to Group
// 1 when secure is set (secure interrupts are then opted in through
// EnableInterrupt) or Group 0 otherwise, and re-enabling forwarding
// for both groups.
//
// It must run exactly once, on the primary core, before any core
// invokes InitCPU.
func (hw *GIC) Init(secure bool) {
	hw.b.Write32(hw.dist+GICD_CTLR, 0)

	// ITLinesNumber is encoded as 32(N+1) implemented lines
	hw.lines = 32 * (int(hw.b.Read32(hw.dist+GICD_TYPER)&0x1f) + 1)

	var group uint32

	if secure {
		group = 0xffffffff
	}

	// SGIs and PPIs (0-31) are banked per core, their grouping and
	// enable state belong to InitCPU.
	for i := 32; i < hw.lines; i += 32 {
		off := uint32(i / 8)

		hw.b.Write32(hw.dist+GICD_IGROUPR+off, group)
		hw.b.Write32(hw.dist+GICD_ICENABLER+off, 0xffffffff)
	}

	ctlr := uint32(0)
	bits.Set(&ctlr, GICD_CTLR_ENABLEGRP0)
	bits.Set(&ctlr, GICD_CTLR_ENABLEGRP1)

	hw.b.Write32(hw.dist+GICD_CTLR, ctlr)
}

// InitCPU initializes the invoking core's CPU interface: the priority
// mask is fully opened, Group 0 interrupts are signaled as FIQ and
// forwarding is enabled for both groups.
//
// Each core invokes it once during its own bring-up, after the
// primary core completed Init. Distinct cores may invoke it
// concurrently as each access lands in the invoking core's banked
// register file, but a core must not repeat it without an intervening
// reset.
func (hw *GIC) InitCPU() {
	hw.b.Write32(hw.cpu+GICC_PMR, 0xff)

	ctlr := uint32(0)
	bits.Set(&ctlr, GICC_CTLR_FIQEN)
	bits.Set(&ctlr, GICC_CTLR_ENABLEGRP0)
	bits.Set(&ctlr, GICC_CTLR_ENABLEGRP1)

	hw.b.Write32(hw.cpu+GICC_CTLR, ctlr)
}

// EnableInterrupt forwards the argument interrupt, assigning it to
// Group 0 (secure, signaled as FIQ) or Group 1.
func (hw *GIC) EnableInterrupt(id int, secure bool) {
	if id < 0 || id >= hw.lines {
		panic("gic: invalid interrupt")
	}

	off := uint32(id/32) * 4
	addr := hw.dist + GICD_IGROUPR + off

	group := hw.b.Read32(addr)
	bits.SetTo(&group, id%32, !secure)
	hw.b.Write32(addr, group)

	hw.b.Write32(hw.dist+GICD_ISENABLER+off, 1<<(id%32))
}

// GetInterrupt acknowledges and completes the highest priority pending
// interrupt on the invoking core, returning its identifier, or
// Spurious when none is pending.
func (hw *GIC) GetInterrupt() int {
	iar := hw.b.Read32(hw.cpu + GICC_IAR)

	if id := iar & 0x3ff; id != Spurious {
		hw.b.Write32(hw.cpu+GICC_EOIR, iar)
		return int(id)
	}

	return Spurious
}
