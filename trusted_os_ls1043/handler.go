// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package main

import (
	"errors"
	"log"

	"github.com/usbarmory/tamago/arm"

	"github.com/usbarmory/GoTEE/monitor"
	"github.com/usbarmory/GoTEE/syscall"

	"github.com/lsfoundry/lstee/smc"
	"github.com/lsfoundry/lstee/util"
)

// SMCCC return value for an unimplemented function identifier
const returnUnknownFunction = 0xffffffff

var wlog = &util.WorldLog{}
var console *util.Console

// monitorHandler bridges GoTEE execution contexts to the boot handler
// table: foreign interrupts reach the notification hook, Normal World
// monitor calls reach the standard/fast call entries, write and exit
// syscalls are serviced locally to keep per-world output from
// interleaving.
func monitorHandler(ctx *monitor.ExecCtx) (err error) {
	if ctx.ExceptionVector == arm.FIQ {
		handlers.Interrupt()
		return
	}

	if ctx.ExceptionVector != arm.SUPERVISOR {
		if ctx.NonSecure() {
			log.Print(ctx)
			ctx.Stop()

			return
		}

		return errors.New("unhandled exception")
	}

	switch {
	case ctx.A0() == syscall.SYS_WRITE:
		if console != nil {
			wlog.PushTerm(byte(ctx.A1()), !ctx.NonSecure(), console.Term)
		} else {
			wlog.Push(byte(ctx.A1()), !ctx.NonSecure())
		}
	case ctx.NonSecure() && ctx.A0() == syscall.SYS_EXIT:
		return errors.New("exit")
	case ctx.NonSecure():
		args := &smc.Args{
			A0: ctx.R0,
			A1: ctx.R1,
			A2: ctx.R2,
			A3: ctx.R3,
			A4: ctx.R4,
			A5: ctx.R5,
			A6: ctx.R6,
			A7: ctx.R7,
		}

		if args.Fast() {
			handlers.FastCall(args)
		} else {
			handlers.StdCall(args)
		}

		ctx.R0 = args.A0
		ctx.R1 = args.A1
		ctx.R2 = args.A2
		ctx.R3 = args.A3
	default:
		return monitor.SecureHandler(ctx)
	}

	return
}

// stdCall is the standard (yielding) monitor call entry. No resident
// TEE services are scheduled by this platform build.
func stdCall(args *smc.Args) {
	args.A0 = returnUnknownFunction
}

// fastCall is the fast (atomic) monitor call entry.
func fastCall(args *smc.Args) {
	args.A0 = returnUnknownFunction
}
