// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package boot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lsfoundry/lstee/smc"
)

func noopHandler(_ *smc.Args) {}

func TestStandaloneVariant(t *testing.T) {
	h := New(Config{
		StdCall:  noopHandler,
		FastCall: noopHandler,
	})

	// without trusted firmware nor secondary release support every
	// power management entry is a fatal stop
	for _, hook := range []Hook{h.CPUOn, h.CPUOff, h.CPUSuspend, h.CPUResume, h.SystemOff, h.SystemReset} {
		require.Panics(t, func() {
			hook()
		})
	}

	require.Panics(t, h.Interrupt)
}

func TestStandaloneVariantWithRelease(t *testing.T) {
	released := false

	h := New(Config{
		SecondaryRelease: true,
		StdCall:          noopHandler,
		FastCall:         noopHandler,
		CPUOn: func() error {
			released = true
			return nil
		},
	})

	require.NoError(t, h.CPUOn())
	require.True(t, released)

	require.Panics(t, func() {
		h.CPUOff()
	})
}

func TestTrustedFirmwareVariant(t *testing.T) {
	resumed := false

	h := New(Config{
		TrustedFirmware: true,
		StdCall:         noopHandler,
		FastCall:        noopHandler,
		CPUOn: func() error {
			resumed = true
			return nil
		},
	})

	require.NoError(t, h.CPUOn())
	require.True(t, resumed)

	// trusted firmware owns the remaining power management entries
	for _, hook := range []Hook{h.CPUOff, h.CPUSuspend, h.CPUResume, h.SystemOff, h.SystemReset} {
		require.NoError(t, hook())
	}
}

func TestOmittedCallEntries(t *testing.T) {
	h := New(Config{})

	// omitted monitor call entries resolve to fatal stops, never nil
	require.NotNil(t, h.StdCall)
	require.NotNil(t, h.FastCall)

	require.Panics(t, func() {
		h.StdCall(&smc.Args{})
	})

	require.Panics(t, func() {
		h.FastCall(&smc.Args{})
	})
}

func TestInterruptHook(t *testing.T) {
	notified := false

	h := New(Config{
		StdCall:  noopHandler,
		FastCall: noopHandler,
		Interrupt: func() {
			notified = true
		},
	})

	h.Interrupt()
	require.True(t, notified)
}
