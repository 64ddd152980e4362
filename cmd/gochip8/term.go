// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

var termRestore unix.Termios
var termRawActive bool

// Puts the controlling terminal into a raw non-blocking mode: no echo, no
// line buffering, reads return immediately with whatever input is pending
// (VMIN and VTIME both zero). ISIG stays enabled so Ctrl-C still raises
// SIGINT for the debugger hook.
func enterRawTerm() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal")
	}

	var termstate unix.Termios

	if err := termios.Tcgetattr(os.Stdin.Fd(), &termstate); err != nil {
		return err
	}

	termRestore = termstate

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	termstate.Cc[unix.VMIN] = 0
	termstate.Cc[unix.VTIME] = 0

	if err := termios.Tcsetattr(
		os.Stdin.Fd(), termios.TCSANOW, &termstate,
	); err != nil {
		return err
	}

	termRawActive = true

	return nil
}

func exitRawTerm() {
	if !termRawActive {
		return
	}

	termRawActive = false

	if err := termios.Tcsetattr(
		os.Stdin.Fd(), termios.TCSANOW, &termRestore,
	); err != nil {
		panic(err)
	}
}
