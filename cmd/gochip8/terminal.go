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
	"fmt"
	"io"
	"os"

	"github.com/lassandro/gochip8/pkg/clock"
	"github.com/lassandro/gochip8/pkg/display"
	"github.com/lassandro/gochip8/pkg/keyboard"
	"github.com/lassandro/gochip8/pkg/machine"

	"golang.org/x/term"
)

// Physical key layout mirroring the left side of a QWERTY keyboard:
//
//	1 2 3 4        1 2 3 C
//	q w e r   ->   4 5 6 D
//	a s d f        7 8 9 E
//	z x c v        A 0 B F
var terminalKeys = map[byte]keyboard.Key{
	'1': keyboard.Key1,
	'2': keyboard.Key2,
	'3': keyboard.Key3,
	'q': keyboard.Key4,
	'w': keyboard.Key5,
	'e': keyboard.Key6,
	'a': keyboard.Key7,
	's': keyboard.Key8,
	'd': keyboard.Key9,
	'x': keyboard.Key0,
	'z': keyboard.KeyA,
	'c': keyboard.KeyB,
	'4': keyboard.KeyC,
	'r': keyboard.KeyD,
	'f': keyboard.KeyE,
	'v': keyboard.KeyF,
}

const keyEscape = 0x1b

// terminalWindow renders the display with ANSI cursor addressing and feeds
// the keyboard from raw non-blocking stdin reads
type terminalWindow struct {
	mc *machine.Machine
}

func newTerminalWindow(mc *machine.Machine) (*terminalWindow, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, fmt.Errorf("stdout is not a terminal")
	}

	columns, lines, err := term.GetSize(int(os.Stdout.Fd()))

	if err != nil {
		return nil, err
	}

	width := mc.Display.Width()
	height := mc.Display.Height()

	if columns < width || lines < height+1 {
		return nil, fmt.Errorf(
			"small terminal (%dx%d), minimum %dx%d",
			columns, lines, width, height+1,
		)
	}

	w := &terminalWindow{mc: mc}

	mc.Display.SetUpdatePixelCallback(w.setPixel)
	mc.Display.SetClearCallback(w.clear)

	return w, nil
}

func (w *terminalWindow) clear() {
	fmt.Print("\033[H\033[2J")
}

func (w *terminalWindow) setPixel(x, y int, value bool) {
	glyph := display.PixelOff

	if value {
		glyph = display.PixelOn
	}

	// Terminal rows and columns are 1-based
	fmt.Printf("\033[%d;%dH%c", y+1, x+1, glyph)
}

func (w *terminalWindow) Run(hz int) error {
	if err := enterRawTerm(); err != nil {
		return err
	}

	defer exitRawTerm()

	w.clear()
	w.mc.Display.Refresh()

	cpuClock := clock.New(hz)
	input := make([]byte, 64)

	for !shouldexit {
		if err := cpuClock.Tick(w.mc); err != nil {
			return err
		}

		// Terminals deliver no release events: drop every key each
		// iteration and rely on auto-repeat to hold them down
		for key := keyboard.Key(0); key < keyboard.NumKeys; key++ {
			w.mc.Keyboard.Set(key, false)
		}

		n, err := os.Stdin.Read(input)

		if err != nil && err != io.EOF {
			return err
		}

		for _, c := range input[:n] {
			if c == keyEscape {
				return nil
			}

			if key, ok := terminalKeys[c]; ok {
				w.mc.Keyboard.Set(key, true)
			}
		}
	}

	return nil
}

func (w *terminalWindow) Close() {
	w.mc.Display.SetUpdatePixelCallback(nil)
	w.mc.Display.SetClearCallback(nil)
	w.mc.Close()

	// Leave the cursor below the rendered frame
	fmt.Printf("\033[%d;1H\n", w.mc.Display.Height()+1)
}
