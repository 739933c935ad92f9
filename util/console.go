// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Console represents an interactive console instance.
type Console struct {
	// Term is the terminal instance
	Term *term.Terminal
}

type stdio struct{}

func (stdio) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdio) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

// NewScreenConsole returns a Console instance over the serial console
// standard input/output.
func NewScreenConsole() *Console {
	return NewConsole(stdio{})
}

// NewConsole returns a Console instance over the argument terminal
// transport.
func NewConsole(rw io.ReadWriter) *Console {
	t := term.NewTerminal(rw, "")
	t.SetPrompt(string(t.Escape.Red) + "> " + string(t.Escape.Reset))

	return &Console{Term: t}
}
