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

package bus

import (
	"errors"
	"fmt"
)

var ErrRomWrite = errors.New("writing on rom")

// SpriteSize is the height in bytes of one built-in character glyph.
const SpriteSize = 5

// Sprites holds the built-in glyphs for the hexadecimal digits 0-F.
var Sprites = [16][SpriteSize]byte{
	{0xF0, 0x90, 0x90, 0x90, 0xF0}, // 0
	{0x20, 0x60, 0x20, 0x20, 0x70}, // 1
	{0xF0, 0x10, 0xF0, 0x80, 0xF0}, // 2
	{0xF0, 0x10, 0xF0, 0x10, 0xF0}, // 3
	{0x90, 0x90, 0xF0, 0x10, 0x10}, // 4
	{0xF0, 0x80, 0xF0, 0x10, 0xF0}, // 5
	{0xF0, 0x80, 0xF0, 0x90, 0xF0}, // 6
	{0xF0, 0x10, 0x20, 0x40, 0x40}, // 7
	{0xF0, 0x90, 0xF0, 0x90, 0xF0}, // 8
	{0xF0, 0x90, 0xF0, 0x10, 0xF0}, // 9
	{0xF0, 0x90, 0xF0, 0x90, 0x90}, // A
	{0xE0, 0x90, 0xE0, 0x90, 0xE0}, // B
	{0xF0, 0x80, 0x80, 0x80, 0xF0}, // C
	{0xE0, 0x90, 0x90, 0x90, 0xE0}, // D
	{0xF0, 0x80, 0xF0, 0x80, 0xF0}, // E
	{0xF0, 0x80, 0xF0, 0x80, 0x80}, // F
}

// Rom is read-only memory preloaded with the character sprites at offset 0.
// Sizes smaller than the sprite table are raised to fit it.
type Rom struct {
	memory []byte
}

func NewRom(size int) *Rom {
	if minimum := len(Sprites) * SpriteSize; size < minimum {
		size = minimum
	}

	rom := &Rom{memory: make([]byte, size)}

	for i, sprite := range Sprites {
		copy(rom.memory[i*SpriteSize:], sprite[:])
	}

	return rom
}

func (r *Rom) Len() int {
	return len(r.memory)
}

func (r *Rom) Read(address uint16) byte {
	return r.memory[address]
}

func (r *Rom) Write(address uint16, value byte) error {
	return fmt.Errorf("%w: %#04x", ErrRomWrite, address)
}
