// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package otp brokers access to one-time programmable device secrets
// held by the secure firmware layer.
package otp

import (
	"fmt"
	"unsafe"

	"github.com/lsfoundry/lstee/smc"
)

// KeySize is the hardware unique key length in bytes.
const KeySize = 16

// scratch buffer alignment required by the firmware DMA path
const scratchAlign = 64

// Broker retrieves per-device secrets through SiP service calls. Calls
// are independent, no state is cached between them.
type Broker struct {
	// Caller issues the secure monitor calls.
	Caller smc.Caller
}

// UniqueKey fetches the hardware unique key fused into the device into
// key. On failure the destination is left untouched and a security
// class error is returned.
//
// The key transits through an aligned scratch buffer which is wiped
// before returning, on success and failure alike.
func (b *Broker) UniqueKey(key *[KeySize]byte) error {
	scratch := alignedBuffer(KeySize, scratchAlign)
	defer wipe(scratch)

	if ret := b.Caller.Call(smc.FastCallSIPHWUniqueKey, scratch); ret < 0 {
		return fmt.Errorf("hardware unique key not fetched (%d): %w", ret, smc.ErrSecurity)
	}

	copy(key[:], scratch)

	return nil
}

// alignedBuffer returns a size bytes slice whose backing array starts
// on an align bytes boundary.
func alignedBuffer(size int, align int) []byte {
	buf := make([]byte, size+align-1)
	off := align - int(uintptr(unsafe.Pointer(&buf[0]))&uintptr(align-1))

	if off == align {
		off = 0
	}

	return buf[off : off+size : off+size]
}

func wipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
