// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package main

import (
	"unsafe"
)

// secureCaller issues secure monitor calls towards the underlying
// firmware layer (PPA/BL31), implementing smc.Caller. The secure world
// runs on a flat mapping, the buffer's physical address is its virtual
// one.
type secureCaller struct{}

func (secureCaller) Call(id uint32, buf []byte) int64 {
	return int64(smcCall(id, uint32(uintptr(unsafe.Pointer(&buf[0]))), uint32(len(buf))))
}

// defined in smc.s
func smcCall(id uint32, a1 uint32, a2 uint32) int32

// defined in smc.s
func corePos() int
