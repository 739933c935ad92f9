// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package csu

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lsfoundry/lstee/bus"
)

const testBase = 0x01510000

// rawLock is SETTING_LOCK as stored by the big-endian register file
const rawLock = 0x00010001

// testCSU returns a CSU over a simulated register file modeling the
// hardware lock semantics: once a slot's lock bits are set, permission
// bits no longer accept writes.
func testCSU() (*CSU, *bus.MemMap) {
	m := bus.NewMemMap()
	m.MapRegion(testBase, (SlotMax+1)*4)

	m.HookRegion(testBase, (SlotMax+1)*4, func(va, old, val uint32) uint32 {
		if old&rawLock == rawLock {
			return old
		}

		return val
	})

	hw := &CSU{
		Base: testBase,
		Bus:  m,
	}
	hw.Init()

	return hw, m
}

func TestConfigure(t *testing.T) {
	hw, _ := testCSU()

	require.NoError(t, hw.Configure(CSL30, CSL37))

	for slot := SlotMin; slot <= SlotMax; slot++ {
		level, locked, err := hw.SecurityLevel(slot)
		require.NoError(t, err)
		require.True(t, locked, "slot %d must be locked", slot)

		switch slot {
		case CSL30, CSL37:
			require.EqualValues(t, ACCESS_SEC_ONLY, level, "slot %d", slot)
		default:
			require.EqualValues(t, ACCESS_ALL, level, "slot %d", slot)
		}
	}
}

func TestConfigureSecondRunIsInert(t *testing.T) {
	hw, m := testCSU()

	require.NoError(t, hw.Configure(CSL30, CSL37))

	var before [SlotMax + 1]uint32

	for slot := SlotMin; slot <= SlotMax; slot++ {
		before[slot] = m.Read32(testBase + uint32(slot)*4)
	}

	// a second run must not error and, with lock bits set, must not
	// change any permission value
	require.NoError(t, hw.Configure(CSL30, CSL37))

	for slot := SlotMin; slot <= SlotMax; slot++ {
		require.Equal(t, before[slot], m.Read32(testBase+uint32(slot)*4), "slot %d", slot)
	}
}

func TestNoSlotLockedBeforeFinalPermission(t *testing.T) {
	m := bus.NewMemMap()
	m.MapRegion(testBase, (SlotMax+1)*4)

	type write struct {
		va  uint32
		val uint32
	}

	var writes []write

	m.HookRegion(testBase, (SlotMax+1)*4, func(va, old, val uint32) uint32 {
		writes = append(writes, write{va, val})
		return val
	})

	hw := &CSU{
		Base: testBase,
		Bus:  m,
	}
	hw.Init()

	require.NoError(t, hw.Configure(CSL30, CSL37))

	final := make(map[uint32]uint32)

	for _, w := range writes {
		val := bits.ReverseBytes32(w.val)

		if val&SETTING_LOCK == SETTING_LOCK {
			// the permission accompanying a lock write must
			// already be the slot's final value
			require.Equal(t, final[w.va], val&^SETTING_LOCK, "slot at %#x locked before final permission", w.va)
		} else {
			final[w.va] = val
		}
	}

	require.NotEmpty(t, final)
}

func TestSlotRange(t *testing.T) {
	hw, _ := testCSU()

	require.Error(t, hw.SetSecurityLevel(-1, ACCESS_ALL))
	require.Error(t, hw.SetSecurityLevel(SlotMax+1, ACCESS_ALL))

	_, _, err := hw.SecurityLevel(SlotMax + 1)
	require.Error(t, err)
}
