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

package machine

import (
	"math/rand"

	"github.com/lassandro/gochip8/pkg/bus"
	"github.com/lassandro/gochip8/pkg/display"
	"github.com/lassandro/gochip8/pkg/keyboard"
)

// CoreDebugger observes a core's execution: Step after every executed
// instruction, Read/Write around every bus access the core performs.
type CoreDebugger interface {
	Step(core *Core)
	Read(addr uint16, core *Core)
	Write(addr uint16, core *Core)
}

// Core is one CHIP-8 execution engine. Several cores may share a bus,
// display and keyboard; each core owns only its register file, program
// counter, stack pointer and timers.
type Core struct {
	Bus      *bus.Bus
	Display  *display.Display
	Keyboard *keyboard.Keyboard
	Debugger CoreDebugger

	// Source for the random instruction, replaceable for deterministic tests
	Rand *rand.Rand

	V  [16]uint8 // V[15] doubles as the carry/borrow/collision flag
	I  uint16
	PC uint16
	SP uint16

	DelayTimer uint8
	SoundTimer uint8

	waitingKeyboard       *keyboard.Request
	instructionsPerUpdate int
	instructionsExecuted  int
	tickCallback          func()
	updateCallback        func()
}

// Machine bundles the shared devices with the cores driving them and fans a
// single external tick out to every core in round-robin order.
type Machine struct {
	Cores    []*Core
	Bus      *bus.Bus
	Display  *display.Display
	Keyboard *keyboard.Keyboard

	instructionsPerUpdate int
	instructionsExecuted  int
	tickCallback          func()
	updateCallback        func()
}
