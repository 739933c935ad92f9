// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package ls1043a

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lsfoundry/lstee/arm/gic"
	"github.com/lsfoundry/lstee/bus"
	"github.com/lsfoundry/lstee/soc/csu"
	"github.com/lsfoundry/lstee/soc/dcfg"
	"github.com/lsfoundry/lstee/soc/scfg"
)

func testBus(revision uint32, align4K bool) *bus.MemMap {
	m := bus.NewMemMap()

	m.MapRegion(GIC_BASE, 0x30000)
	m.MapRegion(CSU_BASE, (csu.SlotMax+1)*4)
	m.MapRegion(DCFG_BASE, 0x1000)
	m.MapRegion(SCFG_BASE, 0x1000)

	bus.Write32BE(m, DCFG_BASE+dcfg.DCFG_SVR, revision)

	var alignReg uint32

	if align4K {
		alignReg = 1 << scfg.GIC_ADDR_BIT
	}

	bus.Write32BE(m, SCFG_BASE+scfg.SCFG_GIC400_ALIGN, alignReg)

	return m
}

func TestGICBaseRevisionMatrix(t *testing.T) {
	for _, tt := range []struct {
		name     string
		revision uint32
		align4K  bool
		gicc     uint32
		gicd     uint32
	}{
		{"rev 1.1, 4K alignment", 0x87920011, true, GIC_BASE + GICC_4K_OFFSET, GIC_BASE + GICD_4K_OFFSET},
		{"rev 1.1, 64K alignment", 0x87920011, false, GIC_BASE + GICC_64K_OFFSET, GIC_BASE + GICD_64K_OFFSET},
		{"rev 1.0", 0x87920010, false, GIC_BASE + GICC_4K_OFFSET, GIC_BASE + GICD_4K_OFFSET},
		{"rev 2.0", 0x87920020, false, GIC_BASE + GICC_4K_OFFSET, GIC_BASE + GICD_4K_OFFSET},
	} {
		t.Run(tt.name, func(t *testing.T) {
			soc := New(testBus(tt.revision, tt.align4K), Config{})

			gicc, gicd := soc.GICBase()
			require.Equal(t, tt.gicc, gicc)
			require.Equal(t, tt.gicd, gicd)
		})
	}
}

// The revision is the sole discriminator: on non-1.1 parts the
// alignment register must never be consulted, its mapping may not even
// exist.
func TestGICBaseIgnoresAlignmentOffRev11(t *testing.T) {
	m := bus.NewMemMap()

	m.MapRegion(GIC_BASE, 0x30000)
	m.MapRegion(DCFG_BASE, 0x1000)
	m.RefuseMapping(SCFG_BASE, 0x1000)

	bus.Write32BE(m, DCFG_BASE+dcfg.DCFG_SVR, 0x87920010)

	soc := New(m, Config{})

	gicc, gicd := soc.GICBase()
	require.EqualValues(t, GIC_BASE+GICC_4K_OFFSET, gicc)
	require.EqualValues(t, GIC_BASE+GICD_4K_OFFSET, gicd)
}

func TestGICBaseMapsRevisionOnDemand(t *testing.T) {
	m := bus.NewMemMap()

	// DCFG not mapped up front, the locator must map it on demand
	m.MapRegion(GIC_BASE, 0x30000)
	bus.Write32BE(m, DCFG_BASE+dcfg.DCFG_SVR, 0x87920010)

	soc := New(m, Config{})

	_, gicd := soc.GICBase()
	require.EqualValues(t, GIC_BASE+GICD_4K_OFFSET, gicd)
}

func TestGICBaseUnmappedRevisionHalts(t *testing.T) {
	m := bus.NewMemMap()

	m.MapRegion(GIC_BASE, 0x30000)
	m.RefuseMapping(DCFG_BASE, 0x1000)

	soc := New(m, Config{})

	require.Panics(t, func() {
		soc.GICBase()
	})
}

func TestPrimaryInit(t *testing.T) {
	m := testBus(0x87920011, true)

	woken := false

	soc := New(m, Config{
		SecondaryRelease: true,
		SecondaryEntry:   0xfc000000,
		SecondaryMask:    1 << 1,
		WakeEvent: func() {
			woken = true
		},
	})

	require.NoError(t, soc.Init(PrimaryCore))

	// secondary release published
	require.True(t, woken)
	require.EqualValues(t, 0xfc000000, bus.Read32BE(m, DCFG_BASE+dcfg.DCFG_SCRATCHRW1))
	require.EqualValues(t, 1<<1, bus.Read32BE(m, DCFG_BASE+dcfg.DCFG_CCSR_BRR))

	// CSU locked down
	level, locked, err := soc.CSU.SecurityLevel(csu.CSL30)
	require.NoError(t, err)
	require.True(t, locked)
	require.EqualValues(t, csu.ACCESS_SEC_ONLY, level)

	// interrupt controller online
	require.NotNil(t, soc.GIC)
	require.EqualValues(t, 0x3, m.Read32(GIC_BASE+GICD_4K_OFFSET+gic.GICD_CTLR))
	require.EqualValues(t, 0xff, m.Read32(GIC_BASE+GICC_4K_OFFSET+gic.GICC_PMR))
}

// Secondary cores must be released strictly before the lockdown
// freezes peripherals they may still need.
func TestReleasePrecedesLock(t *testing.T) {
	m := testBus(0x87920010, false)

	var sequence []uint32

	log := func(va, old, val uint32) uint32 {
		sequence = append(sequence, va)
		return val
	}

	m.HookRegion(CSU_BASE, (csu.SlotMax+1)*4, log)
	m.HookRegion(DCFG_BASE, 0x1000, log)

	soc := New(m, Config{
		SecondaryRelease: true,
		SecondaryEntry:   0xfc000000,
		SecondaryMask:    1 << 1,
	})

	require.NoError(t, soc.Init(PrimaryCore))

	release := -1
	firstCSU := -1

	for i, va := range sequence {
		switch {
		case va == DCFG_BASE+dcfg.DCFG_CCSR_BRR:
			release = i
		case va >= CSU_BASE && va < CSU_BASE+(csu.SlotMax+1)*4 && firstCSU == -1:
			firstCSU = i
		}
	}

	require.NotEqual(t, -1, release)
	require.NotEqual(t, -1, firstCSU)
	require.Less(t, release, firstCSU)
}

func TestSecondaryInit(t *testing.T) {
	m := testBus(0x87920011, true)
	soc := New(m, Config{})

	// secondary bring-up before primary completed is a programming
	// error, not a recoverable condition
	require.Panics(t, func() {
		soc.Init(1)
	})

	require.NoError(t, soc.Init(PrimaryCore))

	m.Write32(GIC_BASE+GICC_4K_OFFSET+gic.GICC_CTLR, 0)
	require.NoError(t, soc.Init(1))

	// the banked CPU interface was brought up again for the
	// invoking core
	require.EqualValues(t, 0xb, m.Read32(GIC_BASE+GICC_4K_OFFSET+gic.GICC_CTLR))
}
