// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package smc provides the secure monitor call (SMC) surface towards
// the underlying secure firmware layer: SMC Calling Convention
// identifier construction and the call seam used to issue SiP service
// calls.
package smc

import (
	"errors"
)

// SMC Calling Convention fields
const (
	// FAST_CALL qualifies an atomic fast call
	FAST_CALL = 0x80000000
	// SMC_64 qualifies the 64-bit calling convention
	SMC_64 = 0x40000000
	// SMC_32 qualifies the 32-bit calling convention
	SMC_32 = 0

	// OWNER_MASK extracts the owning entity number
	OWNER_MASK  = 0x3f
	OWNER_SHIFT = 24

	// OWNER_SIP identifies SoC implementor (SiP) services
	OWNER_SIP = 2

	// FUNC_MASK extracts the function number
	FUNC_MASK = 0xffff
)

// SiP service function numbers
const (
	// FUNCID_SIP_HW_UNIQUE_KEY requests the per-device hardware
	// unique key, arguments are the physical address of a scratch
	// buffer and its length.
	FUNCID_SIP_HW_UNIQUE_KEY = 0xff14
)

// ErrSecurity is reported on security class failures, such as secure
// firmware refusing a service call.
var ErrSecurity = errors.New("security violation")

// CallValue builds an SMC function identifier from its calling
// convention, owning entity and function number.
func CallValue(fast bool, convention uint32, owner uint32, fn uint32) uint32 {
	id := convention | (owner&OWNER_MASK)<<OWNER_SHIFT | fn&FUNC_MASK

	if fast {
		id |= FAST_CALL
	}

	return id
}

// FastCallSIPHWUniqueKey is the function identifier of the hardware
// unique key SiP fast call.
var FastCallSIPHWUniqueKey = CallValue(true, SMC_32, OWNER_SIP, FUNCID_SIP_HW_UNIQUE_KEY)

// Caller issues secure monitor calls towards the secure firmware layer.
type Caller interface {
	// Call issues a single synchronous SMC, passing the physical
	// address and length of buf per the SiP convention. Negative
	// return values indicate failure. The firmware layer may fill
	// buf before the call returns.
	Call(id uint32, buf []byte) int64
}

// Args holds the general purpose registers of a monitor call as
// received from the dispatch machinery and returned to the caller.
type Args struct {
	A0, A1, A2, A3, A4, A5, A6, A7 uint32
}

// Fast returns whether the call identifier in A0 carries the fast call
// qualifier.
func (a *Args) Fast() bool {
	return a.A0&FAST_CALL != 0
}
