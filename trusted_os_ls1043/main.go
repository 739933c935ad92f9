// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	_ "unsafe"

	"github.com/usbarmory/tamago/arm"
	"github.com/usbarmory/tamago/dma"

	"github.com/lsfoundry/lstee/boot"
	"github.com/lsfoundry/lstee/bus"
	"github.com/lsfoundry/lstee/mem"
	"github.com/lsfoundry/lstee/otp"
	"github.com/lsfoundry/lstee/soc/ls1043a"
	"github.com/lsfoundry/lstee/trusted_os_ls1043/cmd"
	"github.com/lsfoundry/lstee/util"
)

//go:linkname ramStart runtime.ramStart
var ramStart uint32 = mem.SecureStart

//go:linkname ramSize runtime.ramSize
var ramSize uint32 = mem.SecureSize

// CCSR register window
const (
	ccsrStart = 0x01000000
	ccsrSize  = 0x0f000000
)

// released secondary cores
const secondaryMask = 1 << 1 // cpu1

// ARM is the processor instance.
var ARM = &arm.CPU{}

var handlers *boot.Handlers

func init() {
	log.SetFlags(log.Ltime)
	log.SetOutput(os.Stdout)

	mem.Init()
	dma.Init(mem.SecureDMAStart, mem.SecureDMASize)

	cmd.Banner = fmt.Sprintf("%s/%s (%s) • TEE security monitor (LS1043A)", runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func main() {
	io := &bus.IO{
		CCSRStart: ccsrStart,
		CCSRSize:  ccsrSize,
	}

	soc := ls1043a.New(io, ls1043a.Config{
		SecondaryRelease: true,
		SecondaryEntry:   mem.SecureStart,
		SecondaryMask:    secondaryMask,
		WakeEvent:        io.SendEvent,
	})

	// grant NonSecure access to CP10 and CP11
	ARM.NonSecureAccessControl(1<<11 | 1<<10)

	if err := soc.Init(corePos()); err != nil {
		panic(fmt.Sprintf("SM bring-up error, %v", err))
	}

	handlers = boot.New(boot.Config{
		SecondaryRelease: true,
		StdCall:          stdCall,
		FastCall:         fastCall,
		Interrupt: func() {
			panic(fmt.Sprintf("SM unexpected FIQ %d", soc.GIC.GetInterrupt()))
		},
		CPUOn: func() error {
			soc.DCFG.ReleaseSecondaries(mem.SecureStart, secondaryMask)
			io.SendEvent()

			return nil
		},
	})

	cmd.SoC = soc
	cmd.HUK = &otp.Broker{Caller: &secureCaller{}}
	cmd.BootNormalWorld = bootNormalWorld

	console = util.NewScreenConsole()
	cmd.SerialConsole(console)

	log.Printf("SM says goodbye")
}
