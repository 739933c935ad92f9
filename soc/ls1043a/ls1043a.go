// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package ls1043a provides secure world support for the NXP LS1043A
// application processor: security domain lockdown, revision-aware
// interrupt controller discovery and secondary core release.
//
// The SoC instance owns its hardware blocks for the lifetime of the
// boot session, it is constructed once during boot and passed by
// reference, there is no reinitialization contract.
package ls1043a

import (
	"github.com/lsfoundry/lstee/arm/gic"
	"github.com/lsfoundry/lstee/bus"
	"github.com/lsfoundry/lstee/soc/csu"
	"github.com/lsfoundry/lstee/soc/dcfg"
	"github.com/lsfoundry/lstee/soc/scfg"
)

// Block base addresses
const (
	GIC_BASE  = 0x01400000
	CSU_BASE  = 0x01510000
	SCFG_BASE = 0x01570000
	DCFG_BASE = 0x01ee0000
)

// GIC400 block offsets, depending on the discovered address alignment
const (
	GICD_4K_OFFSET  = 0x1000
	GICC_4K_OFFSET  = 0x2000
	GICD_64K_OFFSET = 0x10000
	GICC_64K_OFFSET = 0x20000
)

// REV1_1 is the chip revision whose GIC400 alignment is configurable
// through the SCFG alignment register. All other revisions use the
// 4 KiB aligned layout.
const REV1_1 = 0x11

// PrimaryCore is the position of the core performing one-time boot
// setup.
const PrimaryCore = 0

// Config selects the platform bring-up variant, resolved once at
// construction.
type Config struct {
	// SecondaryRelease enables releasing parked secondary cores
	// during primary bring-up, required when no external trusted
	// firmware performs it.
	SecondaryRelease bool

	// SecondaryEntry is the shared entry address published to
	// released cores.
	SecondaryEntry uint32

	// SecondaryMask selects the cores to release.
	SecondaryMask uint32

	// WakeEvent signals cores parked in a low-power wait state,
	// SEV on hardware. Invoked after the release registers are
	// written and ordered by a barrier.
	WakeEvent func()
}

// SoC is the LS1043A instance.
type SoC struct {
	// Bus is the register access path shared by all blocks.
	Bus bus.Bus

	// CSU is the Central Security Unit.
	CSU *csu.CSU
	// DCFG is the Device Configuration block.
	DCFG *dcfg.DCFG
	// SCFG is the Supplemental Configuration block.
	SCFG *scfg.SCFG
	// GIC is the interrupt controller, resolved and initialized by
	// primary core bring-up.
	GIC *gic.GIC

	cfg Config
}

// New returns an LS1043A instance over the argument register access
// path.
func New(b bus.Bus, cfg Config) *SoC {
	return &SoC{
		Bus:  b,
		CSU:  &csu.CSU{Base: CSU_BASE, Bus: b},
		DCFG: &dcfg.DCFG{Base: DCFG_BASE, Bus: b},
		SCFG: &scfg.SCFG{Base: SCFG_BASE, Bus: b},
		cfg:  cfg,
	}
}

// GICBase resolves the accessible CPU interface and distributor base
// addresses of the GIC400 block.
//
// On revision 1.1 parts the block alignment is configurable: the SCFG
// alignment bit selects the 4 KiB layout when set and the 64 KiB
// layout when clear. Every other revision uses the 4 KiB layout,
// regardless of the alignment register contents. The revision is the
// sole discriminator.
//
// An unreadable revision halts rather than defaulting, wrong offsets
// would silently corrupt unrelated hardware state.
func (soc *SoC) GICBase() (gicc uint32, gicd uint32) {
	giccOffset := uint32(GICC_4K_OFFSET)
	gicdOffset := uint32(GICD_4K_OFFSET)

	if soc.DCFG.Revision() == REV1_1 && !soc.SCFG.GIC4KAlign() {
		giccOffset = GICC_64K_OFFSET
		gicdOffset = GICD_64K_OFFSET
	}

	gicc = soc.Bus.PhysToVirt(GIC_BASE + giccOffset)
	gicd = soc.Bus.PhysToVirt(GIC_BASE + gicdOffset)

	return
}

// InitGIC resolves the interrupt controller bases and performs the
// one-time distributor initialization followed by the invoking
// (primary) core's CPU interface initialization. An unresolvable base
// halts.
func (soc *SoC) InitGIC() {
	gicc, gicd := soc.GICBase()

	soc.GIC = gic.New(soc.Bus, gicd, gicc)
	soc.GIC.Init(true)
	soc.GIC.InitCPU()
}

// Init performs secure world bring-up for the invoking core.
//
// The primary core, and only the primary core, releases parked
// secondary cores when configured, applies the one-time CSU lockdown
// and brings the interrupt controller online. The release strictly
// precedes the CSU lock step, released cores may still need
// peripherals the lockdown restricts. The ordering between primary
// and secondary bring-up is structural, primary bring-up completes
// before secondaries run, no locking is involved.
//
// Secondary cores only initialize their own banked GIC CPU interface.
func (soc *SoC) Init(core int) error {
	if core != PrimaryCore {
		if soc.GIC == nil {
			panic("ls1043a: secondary bring-up before primary")
		}

		soc.GIC.InitCPU()

		return nil
	}

	if soc.cfg.SecondaryRelease {
		soc.DCFG.ReleaseSecondaries(soc.cfg.SecondaryEntry, soc.cfg.SecondaryMask)

		if soc.cfg.WakeEvent != nil {
			soc.cfg.WakeEvent()
		}
	}

	soc.CSU.Init()

	if err := soc.CSU.Configure(csu.CSL30, csu.CSL37); err != nil {
		return err
	}

	soc.InitGIC()

	return nil
}
