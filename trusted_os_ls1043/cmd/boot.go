// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"errors"

	"golang.org/x/term"
)

func init() {
	Add(Cmd{
		Name: "ns",
		Help: "boot Normal World OS",
		Fn:   nsCmd,
	})
}

func nsCmd(_ *term.Terminal, _ []string) (string, error) {
	if BootNormalWorld == nil {
		return "", errors.New("unsupported on this build")
	}

	return "", BootNormalWorld()
}
