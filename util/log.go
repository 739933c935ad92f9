// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package util provides console helpers for the trusted OS: world
// aware buffered logging and terminal handling.
package util

import (
	"bytes"
	"os"

	"golang.org/x/term"
)

const logLimit = 1024
const flushChr = 0x0a // \n

// WorldLog accumulates single byte writes from the secure and
// non-secure worlds in separate line buffers, flushing on newline, so
// that output from concurrently executing worlds is not interleaved
// mid-line.
type WorldLog struct {
	secure    bytes.Buffer
	nonSecure bytes.Buffer
}

func (l *WorldLog) buffer(secure bool) *bytes.Buffer {
	if secure {
		return &l.secure
	}

	return &l.nonSecure
}

// Push appends one console byte from the argument world, flushing the
// world's buffer to standard output on newline or overflow.
func (l *WorldLog) Push(c byte, secure bool) {
	buf := l.buffer(secure)
	buf.WriteByte(c)

	if c == flushChr || buf.Len() > logLimit {
		os.Stdout.Write(buf.Bytes())
		buf.Reset()
	}
}

// PushTerm appends one console byte from the argument world, flushing
// the world's buffer to the argument terminal on newline or overflow,
// color coded by world (green secure, red non-secure).
func (l *WorldLog) PushTerm(c byte, secure bool, t *term.Terminal) {
	var color []byte

	buf := l.buffer(secure)
	buf.WriteByte(c)

	if secure {
		color = t.Escape.Green
	} else {
		color = t.Escape.Red
	}

	if c == flushChr || buf.Len() > logLimit {
		t.Write(color)
		t.Write(buf.Bytes())
		t.Write(t.Escape.Reset)

		buf.Reset()
	}
}
