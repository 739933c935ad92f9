// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/term"

	"github.com/lsfoundry/lstee/bus"
)

func init() {
	Add(Cmd{
		Name:    "peek",
		Args:    1,
		Pattern: regexp.MustCompile(`^peek ([[:xdigit:]]+)$`),
		Syntax:  "<hex addr>",
		Help:    "32-bit register display (use with caution)",
		Fn:      peekCmd,
	})

	Add(Cmd{
		Name:    "poke",
		Args:    2,
		Pattern: regexp.MustCompile(`^poke ([[:xdigit:]]+) ([[:xdigit:]]+)$`),
		Syntax:  "<hex addr> <hex value>",
		Help:    "32-bit register write   (use with caution)",
		Fn:      pokeCmd,
	})
}

func busAddr(arg string) (uint32, error) {
	addr, err := strconv.ParseUint(arg, 16, 32)

	if err != nil {
		return 0, fmt.Errorf("invalid address, %v", err)
	}

	if addr%4 != 0 {
		return 0, errors.New("only 32-bit aligned accesses are supported")
	}

	if SoC == nil {
		return 0, errors.New("platform not initialized")
	}

	va := SoC.Bus.PhysToVirt(uint32(addr))

	if va == bus.Unmapped {
		return 0, fmt.Errorf("address %#.8x is not mapped", addr)
	}

	return va, nil
}

func peekCmd(_ *term.Terminal, arg []string) (string, error) {
	va, err := busAddr(arg[0])

	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%#.8x: %#.8x", va, SoC.Bus.Read32(va)), nil
}

func pokeCmd(_ *term.Terminal, arg []string) (string, error) {
	va, err := busAddr(arg[0])

	if err != nil {
		return "", err
	}

	val, err := strconv.ParseUint(arg[1], 16, 32)

	if err != nil {
		return "", fmt.Errorf("invalid data, %v", err)
	}

	SoC.Bus.Write32(va, uint32(val))

	return "", nil
}
