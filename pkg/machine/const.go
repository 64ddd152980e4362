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

// COSMAC VIP memory layout: character rom in low memory, program entrypoint
// at 0x200, display-mapped I/O at the top of the address space. The call
// stack lives in ram below the display region, two bytes per frame.
const (
	MEMSPACE_ROM     uint16 = 0x0000
	MEMSPACE_PROGRAM        = 0x0200
	MEMSPACE_DISPLAY        = 0x0F00
)

const (
	ROM_SIZE = 512
	RAM_SIZE = 3328

	DISPLAY_WIDTH  = 64
	DISPLAY_HEIGHT = 32

	// Address span kept free above the stack pointer's initial position
	RESERVED_STACK = 352

	DEFAULT_INSTRUCTIONS_PER_UPDATE = 16
)

// Opcode groups, bits 15-12 of the instruction word. Groups 0, 5, 8, 9, E
// and F are refined by further nibbles during dispatch.
const (
	OP_SYS     uint16 = 0x0
	OP_JUMP           = 0x1
	OP_CALL           = 0x2
	OP_SKEI           = 0x3
	OP_SKNEI          = 0x4
	OP_SKER           = 0x5
	OP_MOVI           = 0x6
	OP_ADDI           = 0x7
	OP_MATH           = 0x8
	OP_SKNER          = 0x9
	OP_MOVTOI         = 0xA
	OP_JUMPV0         = 0xB
	OP_RND            = 0xC
	OP_SPRITE         = 0xD
	OP_KEY            = 0xE
	OP_MISC           = 0xF
)
