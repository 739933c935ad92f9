// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package csu implements a driver for the NXP Layerscape Central
// Security Unit (CSU), the block gating secure/non-secure world access
// to SoC peripherals.
//
// Each Config Security Level (CSL) slot is a 32-bit big-endian CCSR
// register holding two 16-bit access-permission fields. Once a slot's
// lock bits are set its permission fields are immutable until the next
// power-on reset.
package csu

import (
	"fmt"

	"github.com/lsfoundry/lstee/bus"
)

// CSL slot indexes
const (
	SlotMin = 0
	SlotMax = 57

	// CSL30 gates the security fuse controller
	CSL30 = 30
	// CSL37 gates the secure debug controller
	CSL37 = 37
)

// CSL access permissions
const (
	// ACCESS_ALL grants both worlds read/write access
	ACCESS_ALL = 0x00ff00ff
	// ACCESS_SEC_ONLY restricts read/write access to the secure world
	ACCESS_SEC_ONLY = 0x003f003f
	// SETTING_LOCK freezes both permission fields until reset
	SETTING_LOCK = 0x01000100
)

// CSU represents the Central Security Unit instance.
type CSU struct {
	// Base is the physical base address of the CSU block.
	Base uint32
	// Bus is the register access path.
	Bus bus.Bus

	// accessible base, set by Init
	csl uint32
}

// Init resolves the CSL register range, it must be invoked before any
// other method.
func (hw *CSU) Init() {
	if hw.Base == 0 || hw.Bus == nil {
		panic("csu: invalid instance")
	}

	hw.csl = bus.MustMap(hw.Bus, hw.Base, (SlotMax+1)*4)
}

func (hw *CSU) slotAddr(slot int) (uint32, error) {
	if slot < SlotMin || slot > SlotMax {
		return 0, fmt.Errorf("invalid slot index %d", slot)
	}

	if hw.csl == 0 {
		panic("csu: not initialized")
	}

	return hw.csl + uint32(slot)*4, nil
}

// SetSecurityLevel writes the access permission of a single CSL slot.
// The write has no effect on hardware once the slot is locked.
func (hw *CSU) SetSecurityLevel(slot int, level uint32) error {
	addr, err := hw.slotAddr(slot)

	if err != nil {
		return err
	}

	bus.Write32BE(hw.Bus, addr, level)

	return nil
}

// SecurityLevel returns the access permission of a single CSL slot and
// whether the slot is locked.
func (hw *CSU) SecurityLevel(slot int) (level uint32, locked bool, err error) {
	addr, err := hw.slotAddr(slot)

	if err != nil {
		return
	}

	val := bus.Read32BE(hw.Bus, addr)

	return val &^ SETTING_LOCK, val&SETTING_LOCK == SETTING_LOCK, nil
}

// SetAll writes the same access permission to every CSL slot.
func (hw *CSU) SetAll(level uint32) {
	for slot := SlotMin; slot <= SlotMax; slot++ {
		// slot range is valid by construction
		_ = hw.SetSecurityLevel(slot, level)
	}
}

// Lock sets the lock bits on every CSL slot, preserving the permission
// fields last written. Locking is irreversible until power-on reset.
func (hw *CSU) Lock() {
	for slot := SlotMin; slot <= SlotMax; slot++ {
		addr, _ := hw.slotAddr(slot)
		bus.Write32BE(hw.Bus, addr, bus.Read32BE(hw.Bus, addr)|SETTING_LOCK)
	}
}

// Configure applies the one-time boot security policy: every slot is
// granted ACCESS_ALL, the given slots are then restricted to
// ACCESS_SEC_ONLY and finally all slots are locked.
//
// The sequence must run on the primary core only, before secondary
// cores are given access to restricted peripherals. Grant and restrict
// strictly precede locking, a locked slot can no longer receive its
// intended permission. There is no rollback, a partial run leaves the
// security posture undefined until reset.
func (hw *CSU) Configure(secureOnly ...int) error {
	hw.SetAll(ACCESS_ALL)

	for _, slot := range secureOnly {
		if err := hw.SetSecurityLevel(slot, ACCESS_SEC_ONLY); err != nil {
			return err
		}
	}

	hw.Lock()

	return nil
}
