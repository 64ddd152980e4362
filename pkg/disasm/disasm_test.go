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

package disasm_test

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/lassandro/gochip8/pkg/disasm"
)

func TestInstruction(t *testing.T) {
	tests := []struct {
		word uint16
		want string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x0123, "SYS 0x123"},
		{0x1234, "JP 0x234"},
		{0x2345, "CALL 0x345"},
		{0x3A42, "SE VA, 0x42"},
		{0x4A42, "SNE VA, 0x42"},
		{0x5AB0, "SE VA, VB"},
		{0x6A42, "LD VA, 0x42"},
		{0x7A42, "ADD VA, 0x42"},
		{0x8AB0, "LD VA, VB"},
		{0x8AB1, "OR VA, VB"},
		{0x8AB2, "AND VA, VB"},
		{0x8AB3, "XOR VA, VB"},
		{0x8AB4, "ADD VA, VB"},
		{0x8AB5, "SUB VA, VB"},
		{0x8AB6, "SHR VA, VB"},
		{0x8AB7, "SUBN VA, VB"},
		{0x8ABE, "SHL VA, VB"},
		{0x9AB0, "SNE VA, VB"},
		{0xA123, "LD I, 0x123"},
		{0xB123, "JP V0, 0x123"},
		{0xCA42, "RND VA, 0x42"},
		{0xDAB5, "DRW VA, VB, 0x5"},
		{0xEA9E, "SKP VA"},
		{0xEAA1, "SKNP VA"},
		{0xFA07, "LD VA, DT"},
		{0xFA0A, "LD VA, K"},
		{0xFA15, "LD DT, VA"},
		{0xFA18, "LD ST, VA"},
		{0xFA1E, "ADD I, VA"},
		{0xFA29, "LD F, VA"},
		{0xFA33, "LD B, VA"},
		{0xFA55, "LD [I], VA"},
		{0xFA65, "LD VA, [I]"},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, disasm.Instruction(test.word))
	}
}

func TestInstructionUndefined(t *testing.T) {
	tests := map[uint16]string{
		0x5AB1: ".word 0x5ab1",
		0x8AB8: ".word 0x8ab8",
		0x9AB9: ".word 0x9ab9",
		0xEAFF: ".word 0xeaff",
		0xFAFF: ".word 0xfaff",
	}

	for word, want := range tests {
		assert.Equal(t, want, disasm.Instruction(word))
	}
}
