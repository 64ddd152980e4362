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

package bus_test

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/lassandro/gochip8/pkg/bus"
)

func TestRomSprites(t *testing.T) {
	rom := bus.NewRom(512)

	assert.Equal(t, 512, rom.Len())

	for i, sprite := range bus.Sprites {
		for j, want := range sprite {
			addr := uint16(i*bus.SpriteSize + j)
			assert.Equal(t, want, rom.Read(addr))
		}
	}

	// Bytes past the sprite table stay zero
	assert.Equal(t, byte(0x00), rom.Read(uint16(len(bus.Sprites)*bus.SpriteSize)))
}

func TestRomMinimumSize(t *testing.T) {
	rom := bus.NewRom(1)

	assert.Equal(t, len(bus.Sprites)*bus.SpriteSize, rom.Len())
}

func TestRomWrite(t *testing.T) {
	rom := bus.NewRom(512)

	err := rom.Write(0x0000, 0xAA)
	assert.True(t, errors.Is(err, bus.ErrRomWrite))

	// The write left the contents untouched
	assert.Equal(t, bus.Sprites[0][0], rom.Read(0x0000))
}

func TestRam(t *testing.T) {
	ram := bus.NewRam(16)

	assert.Equal(t, 16, ram.Len())
	assert.Equal(t, byte(0x00), ram.Read(0x0005))

	assert.NoError(t, ram.Write(0x0005, 0xAA))
	assert.Equal(t, byte(0xAA), ram.Read(0x0005))
}
