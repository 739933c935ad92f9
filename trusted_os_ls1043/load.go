// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package main

import (
	"fmt"
	"log"

	"github.com/usbarmory/GoTEE/monitor"

	"github.com/lsfoundry/lstee/mem"
)

// bootNormalWorld hands over execution to the Normal World OS, placed
// in non-secure DRAM by the previous boot stage with its entry point
// at the region start.
func bootNormalWorld() (err error) {
	var os *monitor.ExecCtx

	if os, err = monitor.Load(mem.NonSecureStart, mem.NonSecureRegion, false); err != nil {
		return fmt.Errorf("SM could not load kernel, %v", err)
	}

	// set stack pointer to the end of available memory
	os.R13 = uint32(os.Memory.End())

	os.Handler = monitorHandler

	log.Printf("SM starting kernel sp:%#.8x pc:%#.8x ns:%v", os.R13, os.R15, os.NonSecure())

	err = os.Run()

	log.Printf("SM stopped kernel sp:%#.8x lr:%#.8x pc:%#.8x ns:%v err:%v", os.R13, os.R14, os.R15, os.NonSecure(), err)

	return
}
