// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package boot supplies the contents of the secure monitor dispatch
// table: the standard and fast call entries, the interrupt
// notification hook and the power management hooks. The dispatch
// machinery invoking the table belongs to the surrounding TEE core.
package boot

import (
	"github.com/lsfoundry/lstee/smc"
)

// Handler services a monitor call, receiving and returning the call
// registers.
type Handler func(args *smc.Args)

// Hook services a power management request.
type Hook func() error

// Panic is the fatal-stop hook wired to unsupported power management
// entries.
func Panic() error {
	panic("unsupported power management request")
}

// Nothing is the no-op hook wired to power management entries handled
// entirely by the external trusted firmware layer.
func Nothing() error {
	return nil
}

// Handlers is the dispatch surface invoked by the TEE core on world
// switches. It is built once during boot and never mutated.
type Handlers struct {
	// StdCall services standard (yielding) monitor calls.
	StdCall Handler
	// FastCall services fast (atomic) monitor calls.
	FastCall Handler
	// Interrupt services foreign interrupt notifications.
	Interrupt func()

	// power management hooks
	CPUOn       Hook
	CPUOff      Hook
	CPUSuspend  Hook
	CPUResume   Hook
	SystemOff   Hook
	SystemReset Hook
}

// Config selects the dispatch table variant, resolved once at
// construction.
type Config struct {
	// TrustedFirmware indicates an external trusted firmware layer
	// owns power management, all hooks except CPUOn then resolve to
	// no-ops.
	TrustedFirmware bool

	// SecondaryRelease indicates secondary core release support,
	// allowing CPUOn without trusted firmware.
	SecondaryRelease bool

	// StdCall and FastCall are the TEE core monitor call entries,
	// fatal-stop handlers when nil.
	StdCall  Handler
	FastCall Handler

	// Interrupt is the foreign interrupt notification hook, a
	// fatal-stop handler when nil.
	Interrupt func()

	// CPUOn is the secondary core boot hook, consulted only for
	// variants supporting it.
	CPUOn Hook
}

// New builds the dispatch table for the argument variant.
func New(cfg Config) *Handlers {
	h := &Handlers{
		StdCall:  cfg.StdCall,
		FastCall: cfg.FastCall,

		CPUOn:       Panic,
		CPUOff:      Panic,
		CPUSuspend:  Panic,
		CPUResume:   Panic,
		SystemOff:   Panic,
		SystemReset: Panic,
	}

	if h.Interrupt = cfg.Interrupt; h.Interrupt == nil {
		h.Interrupt = func() { panic("unexpected foreign interrupt") }
	}

	if h.StdCall == nil {
		h.StdCall = func(*smc.Args) { panic("unexpected standard monitor call") }
	}

	if h.FastCall == nil {
		h.FastCall = func(*smc.Args) { panic("unexpected fast monitor call") }
	}

	switch {
	case cfg.TrustedFirmware:
		h.CPUOn = cfg.CPUOn
		h.CPUOff = Nothing
		h.CPUSuspend = Nothing
		h.CPUResume = Nothing
		h.SystemOff = Nothing
		h.SystemReset = Nothing
	case cfg.SecondaryRelease:
		h.CPUOn = cfg.CPUOn
	}

	if h.CPUOn == nil {
		h.CPUOn = Panic
	}

	return h
}
