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
	"io"

	"github.com/lassandro/gochip8/pkg/bus"
	"github.com/lassandro/gochip8/pkg/display"
	"github.com/lassandro/gochip8/pkg/keyboard"
)

// NewCosmacVIP wires up the canonical single-core configuration: 512 bytes
// of character rom, 3328 bytes of ram from the 0x200 entrypoint, and the
// 64x32 display mapped as a byte-addressable device at 0xF00.
func NewCosmacVIP(instructionsPerUpdate int) *Machine {
	var b bus.Bus

	b.Map(MEMSPACE_ROM, bus.NewRom(ROM_SIZE))
	b.Map(MEMSPACE_PROGRAM, bus.NewRam(RAM_SIZE))

	d := display.New(DISPLAY_WIDTH, DISPLAY_HEIGHT)
	b.Map(MEMSPACE_DISPLAY, display.NewAddressable(d))

	k := keyboard.New()

	core := NewCore(
		&b, d, k, RESERVED_STACK, MEMSPACE_PROGRAM, instructionsPerUpdate,
	)

	return &Machine{
		Cores:    []*Core{core},
		Bus:      &b,
		Display:  d,
		Keyboard: k,

		instructionsPerUpdate: instructionsPerUpdate,
	}
}

// Number of cores
func (m *Machine) Len() int {
	return len(m.Cores)
}

// Loads a program at the canonical 0x200 entrypoint. Other load addresses go
// through Bus.LoadProgram directly.
func (m *Machine) LoadProgram(program io.Reader) error {
	return m.Bus.LoadProgram(program, MEMSPACE_PROGRAM)
}

func (m *Machine) SetTickCallback(callback func()) {
	m.tickCallback = callback
}

func (m *Machine) SetUpdateCallback(callback func()) {
	m.updateCallback = callback
}

// Ticks every core once in round-robin order, then fires the machine-level
// tick callback and, every instructionsPerUpdate ticks, the update callback
func (m *Machine) Tick() error {
	for _, core := range m.Cores {
		if err := core.Tick(); err != nil {
			return err
		}
	}

	if m.tickCallback != nil {
		m.tickCallback()
	}

	m.instructionsExecuted++

	if m.instructionsExecuted >= m.instructionsPerUpdate {
		m.instructionsExecuted = 0

		if m.updateCallback != nil {
			m.updateCallback()
		}
	}

	return nil
}

// Cancels any outstanding key-wait requests across all cores
func (m *Machine) Close() {
	for _, core := range m.Cores {
		core.Close()
	}
}
