// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package mem defines the LS1043A secure world memory layout.
package mem

import (
	"github.com/usbarmory/tamago/dma"
)

const (
	// Secure World OS, top of DDR, doubles as the entry address
	// published to released secondary cores
	SecureStart = 0xfc000000
	SecureSize  = 0x02f00000 // 47MB

	// Secure World DMA
	SecureDMAStart = 0xfef00000
	SecureDMASize  = 0x00100000 // 1MB

	// NonSecure World OS
	NonSecureStart = 0x80000000
	NonSecureSize  = 0x7c000000 // 1984MB
)

// NonSecureRegion tracks the DDR range left to the non-secure world,
// reserved up front so secure allocations can never land in it.
var NonSecureRegion *dma.Region

// Init builds the memory regions, once, during the boot phase.
func Init() {
	NonSecureRegion, _ = dma.NewRegion(NonSecureStart, NonSecureSize, false)
	NonSecureRegion.Reserve(NonSecureSize, 0)
}
