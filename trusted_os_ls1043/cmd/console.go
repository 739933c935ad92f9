// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package cmd implements the trusted OS interactive console.
package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"runtime/debug"
	"runtime/pprof"
	"sort"
	"sync"

	"golang.org/x/term"

	"github.com/lsfoundry/lstee/otp"
	"github.com/lsfoundry/lstee/soc/ls1043a"
	"github.com/lsfoundry/lstee/util"
)

// Banner is the console welcome banner.
var Banner string

// SoC is the platform instance commands operate on, set during boot.
var SoC *ls1043a.SoC

// HUK is the hardware unique key broker, set during boot.
var HUK *otp.Broker

// BootNormalWorld hands over execution to the Normal World OS, nil
// when unsupported.
var BootNormalWorld func() error

// CmdFn services a console command.
type CmdFn func(term *term.Terminal, arg []string) (res string, err error)

// Cmd represents a console command.
type Cmd struct {
	Name    string
	Args    int
	Pattern *regexp.Regexp
	Syntax  string
	Help    string
	Fn      CmdFn
}

var cmds = make(map[string]*Cmd)
var mutex sync.Mutex

// Add registers a console command.
func Add(cmd Cmd) {
	mutex.Lock()
	defer mutex.Unlock()

	cmds[cmd.Name] = &cmd
}

// Help returns the formatted command list.
func Help(term *term.Terminal) string {
	var buf bytes.Buffer
	var names []string

	mutex.Lock()
	defer mutex.Unlock()

	for name := range cmds {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		cmd := cmds[name]
		fmt.Fprintf(&buf, "%-21s # %s\n", cmd.Name+" "+cmd.Syntax, cmd.Help)
	}

	return string(term.Escape.Cyan) + buf.String() + string(term.Escape.Reset)
}

// Handle matches and executes a single console line.
func Handle(term *term.Terminal, line string) (string, error) {
	mutex.Lock()
	defer mutex.Unlock()

	for _, cmd := range cmds {
		if cmd.Pattern == nil {
			if line == cmd.Name {
				return cmd.Fn(term, nil)
			}

			continue
		}

		if m := cmd.Pattern.FindStringSubmatch(line); len(m) == cmd.Args+1 {
			return cmd.Fn(term, m[1:])
		}
	}

	return "", errors.New("unknown command, type `help`")
}

// SerialConsole runs the interactive console over the argument
// console instance until exit or read error.
func SerialConsole(console *util.Console) {
	t := console.Term

	fmt.Fprintf(t, "%s\n\n", Banner)
	fmt.Fprintf(t, "%s\n", Help(t))

	for {
		line, err := t.ReadLine()

		if err != nil {
			break
		}

		res, err := Handle(t, line)

		if err != nil {
			if err == io.EOF {
				break
			}

			fmt.Fprintf(t, "command error, %v\n", err)
			continue
		}

		if res != "" {
			fmt.Fprintln(t, res)
		}
	}
}

func init() {
	Add(Cmd{
		Name: "help",
		Help: "this help",
		Fn: func(term *term.Terminal, _ []string) (string, error) {
			return Help(term), nil
		},
	})

	Add(Cmd{
		Name:    "exit, quit",
		Args:    1,
		Pattern: regexp.MustCompile(`^(exit|quit)$`),
		Help:    "close session",
		Fn: func(_ *term.Terminal, _ []string) (string, error) {
			return "logout", io.EOF
		},
	})

	Add(Cmd{
		Name: "stack",
		Help: "stack trace of current goroutine",
		Fn: func(_ *term.Terminal, _ []string) (string, error) {
			return string(debug.Stack()), nil
		},
	})

	Add(Cmd{
		Name: "stackall",
		Help: "stack trace of all goroutines",
		Fn: func(_ *term.Terminal, _ []string) (string, error) {
			buf := new(bytes.Buffer)
			pprof.Lookup("goroutine").WriteTo(buf, 1)

			return buf.String(), nil
		},
	})
}
