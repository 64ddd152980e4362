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

package debugger

import (
	"fmt"

	"github.com/lassandro/gochip8/pkg/disasm"
	"github.com/lassandro/gochip8/pkg/encoding"
	"github.com/lassandro/gochip8/pkg/machine"
)

func (dbg *Debugger) Step(core *machine.Core) {
	if dbg.Break {
		dbg.HandleBreak(dbg, core)
		return
	}

	for _, breakpoint := range dbg.Breakpoints {
		if core.PC == breakpoint.Addr {
			dbg.HandleBreak(dbg, core)
			break
		}
	}
}

func (dbg *Debugger) Read(addr uint16, core *machine.Core) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == WriteWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleRead(addr, dbg, core)
			break
		}
	}
}

func (dbg *Debugger) Write(addr uint16, core *machine.Core) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == ReadWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleWrite(addr, dbg, core)
			break
		}
	}
}

func (dbg *Debugger) PrintRegisters(core *machine.Core) {
	for i, value := range core.V {
		if i > 0 && i%4 == 0 {
			fmt.Println()
		}

		fmt.Printf("\033[1mV%-2X\033[0m %#02x  ", i, value)
	}

	fmt.Println()
	fmt.Printf(
		"\033[1mPC\033[0m %#04x  \033[1mSP\033[0m %#04x  \033[1mI\033[0m"+
			" %#03x  \033[1mDT\033[0m %#02x  \033[1mST\033[0m %#02x\n",
		core.PC, core.SP, core.I, core.DelayTimer, core.SoundTimer,
	)
}

func (dbg *Debugger) PrintMem(core *machine.Core, addr, count uint16) {
	for i := addr; i < addr+count; i++ {
		if i == addr || (i-addr)%8 == 0 {
			if i != addr {
				fmt.Println()
			}

			fmt.Printf("\033[1m[%#04x]\033[0m ", i)
		}

		result, err := core.Bus.Read(i)

		if err != nil {
			fmt.Printf("\033[1;30m????\033[0m ")
			continue
		}

		if result == 0 {
			fmt.Printf("\033[1;30m%#02x\033[0m ", result)
		} else {
			fmt.Printf("%#02x ", result)
		}
	}

	fmt.Println()
}

// Disassembles count instruction words starting at addr, marking the
// current program counter
func (dbg *Debugger) PrintCode(core *machine.Core, addr, count uint16) {
	for i := uint16(0); i < count; i++ {
		position := addr + i*2

		high, err := core.Bus.Read(position)

		if err != nil {
			fmt.Printf("No instruction found at %#04x\n", position)
			return
		}

		low, err := core.Bus.Read(position + 1)

		if err != nil {
			fmt.Printf("No instruction found at %#04x\n", position+1)
			return
		}

		marker := "  "

		if position == core.PC {
			marker = "=>"
		}

		fmt.Printf(
			"%s \033[1m[%#04x]\033[0m %s\n",
			marker,
			position,
			disasm.Instruction(encoding.Word(high, low)),
		)
	}
}
