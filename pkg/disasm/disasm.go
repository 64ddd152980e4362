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

// Package disasm renders single CHIP-8 instruction words in the classic
// assembler syntax. Words that match no documented opcode pattern render as
// raw data.
package disasm

import (
	"fmt"

	"github.com/lassandro/gochip8/pkg/encoding"
)

func Instruction(word uint16) string {
	nnn := encoding.Addr(word)
	nn := encoding.Imm8(word)
	n := encoding.Imm4(word)
	x := encoding.X(word)
	y := encoding.Y(word)

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		default:
			return fmt.Sprintf("SYS %#03x", nnn)
		}
	case 0x1:
		return fmt.Sprintf("JP %#03x", nnn)
	case 0x2:
		return fmt.Sprintf("CALL %#03x", nnn)
	case 0x3:
		return fmt.Sprintf("SE V%X, %#02x", x, nn)
	case 0x4:
		return fmt.Sprintf("SNE V%X, %#02x", x, nn)
	case 0x5:
		if n == 0 {
			return fmt.Sprintf("SE V%X, V%X", x, y)
		}
	case 0x6:
		return fmt.Sprintf("LD V%X, %#02x", x, nn)
	case 0x7:
		return fmt.Sprintf("ADD V%X, %#02x", x, nn)
	case 0x8:
		switch n {
		case 0x0:
			return fmt.Sprintf("LD V%X, V%X", x, y)
		case 0x1:
			return fmt.Sprintf("OR V%X, V%X", x, y)
		case 0x2:
			return fmt.Sprintf("AND V%X, V%X", x, y)
		case 0x3:
			return fmt.Sprintf("XOR V%X, V%X", x, y)
		case 0x4:
			return fmt.Sprintf("ADD V%X, V%X", x, y)
		case 0x5:
			return fmt.Sprintf("SUB V%X, V%X", x, y)
		case 0x6:
			return fmt.Sprintf("SHR V%X, V%X", x, y)
		case 0x7:
			return fmt.Sprintf("SUBN V%X, V%X", x, y)
		case 0xE:
			return fmt.Sprintf("SHL V%X, V%X", x, y)
		}
	case 0x9:
		if n == 0 {
			return fmt.Sprintf("SNE V%X, V%X", x, y)
		}
	case 0xA:
		return fmt.Sprintf("LD I, %#03x", nnn)
	case 0xB:
		return fmt.Sprintf("JP V0, %#03x", nnn)
	case 0xC:
		return fmt.Sprintf("RND V%X, %#02x", x, nn)
	case 0xD:
		return fmt.Sprintf("DRW V%X, V%X, %#x", x, y, n)
	case 0xE:
		switch nn {
		case 0x9E:
			return fmt.Sprintf("SKP V%X", x)
		case 0xA1:
			return fmt.Sprintf("SKNP V%X", x)
		}
	case 0xF:
		switch nn {
		case 0x07:
			return fmt.Sprintf("LD V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("LD V%X, K", x)
		case 0x15:
			return fmt.Sprintf("LD DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("LD ST, V%X", x)
		case 0x1E:
			return fmt.Sprintf("ADD I, V%X", x)
		case 0x29:
			return fmt.Sprintf("LD F, V%X", x)
		case 0x33:
			return fmt.Sprintf("LD B, V%X", x)
		case 0x55:
			return fmt.Sprintf("LD [I], V%X", x)
		case 0x65:
			return fmt.Sprintf("LD V%X, [I]", x)
		}
	}

	return fmt.Sprintf(".word %#04x", word)
}
