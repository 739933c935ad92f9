// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/term"

	"github.com/lsfoundry/lstee/soc/csu"
)

func init() {
	Add(Cmd{
		Name: "csl",
		Help: "show config security levels (CSL)",
		Fn:   cslCmd,
	})

	Add(Cmd{
		Name:    "csl ",
		Args:    2,
		Pattern: regexp.MustCompile(`^csl (\d+) ([[:xdigit:]]+)$`),
		Syntax:  "<slot> <hex level>",
		Help:    "set config security level (CSL)",
		Fn:      cslSetCmd,
	})
}

func cslCmd(_ *term.Terminal, _ []string) (string, error) {
	var buf bytes.Buffer

	if SoC == nil {
		return "", errors.New("platform not initialized")
	}

	for slot := csu.SlotMin; slot <= csu.SlotMax; slot++ {
		level, locked, err := SoC.CSU.SecurityLevel(slot)

		if err != nil {
			return "", err
		}

		tag := ""

		if locked {
			tag = " (locked)"
		}

		fmt.Fprintf(&buf, "CSL%.2d %#.8x%s\n", slot, level, tag)
	}

	return buf.String(), nil
}

func cslSetCmd(_ *term.Terminal, arg []string) (res string, err error) {
	if SoC == nil {
		return "", errors.New("platform not initialized")
	}

	slot, err := strconv.ParseUint(arg[0], 10, 8)

	if err != nil {
		return "", fmt.Errorf("invalid slot index: %v", err)
	}

	level, err := strconv.ParseUint(arg[1], 16, 32)

	if err != nil {
		return "", fmt.Errorf("invalid level: %v", err)
	}

	return "", SoC.CSU.SetSecurityLevel(int(slot), uint32(level))
}
