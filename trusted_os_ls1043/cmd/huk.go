// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/term"

	"github.com/lsfoundry/lstee/otp"
)

func init() {
	Add(Cmd{
		Name: "huk",
		Help: "fetch hardware unique key, show fingerprint",
		Fn:   hukCmd,
	})
}

// hukCmd verifies key retrieval from the secure firmware layer. Only a
// fingerprint is shown, the key itself never reaches the console.
func hukCmd(_ *term.Terminal, _ []string) (string, error) {
	var key [otp.KeySize]byte

	if HUK == nil {
		return "", errors.New("platform not initialized")
	}

	if err := HUK.UniqueKey(&key); err != nil {
		return "", err
	}

	defer func() {
		for i := range key {
			key[i] = 0
		}
	}()

	return fmt.Sprintf("HUK fingerprint %x", sha256.Sum256(key[:])), nil
}
