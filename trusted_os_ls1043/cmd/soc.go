// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"

	"golang.org/x/term"
)

func init() {
	Add(Cmd{
		Name: "svr",
		Help: "show system version register (SVR)",
		Fn:   svrCmd,
	})

	Add(Cmd{
		Name: "gic",
		Help: "show resolved interrupt controller bases",
		Fn:   gicCmd,
	})
}

func svrCmd(_ *term.Terminal, _ []string) (string, error) {
	if SoC == nil {
		return "", errors.New("platform not initialized")
	}

	svr := SoC.DCFG.SVR()

	return fmt.Sprintf("SVR %#.8x (revision %#.2x)", svr, svr&0xff), nil
}

func gicCmd(_ *term.Terminal, _ []string) (string, error) {
	if SoC == nil {
		return "", errors.New("platform not initialized")
	}

	gicc, gicd := SoC.GICBase()

	return fmt.Sprintf("GICC %#.8x GICD %#.8x", gicc, gicd), nil
}
