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

package display

// Addressable exposes a Display as a byte-addressable bus device. Byte n
// packs pixels 8n..8n+7 in raster order, most significant bit first. Writes
// unpack through SetPixel one pixel at a time, so XOR/collision semantics
// and the update callback apply per pixel.
type Addressable struct {
	display *Display
}

func NewAddressable(display *Display) *Addressable {
	return &Addressable{display: display}
}

func (a *Addressable) Len() int {
	return (a.display.width*a.display.height + 7) / 8
}

func (a *Addressable) pixelPosition(pixel int) (x, y int) {
	return pixel % a.display.width, pixel / a.display.width
}

func (a *Addressable) Read(address uint16) byte {
	var value byte

	for pixel := int(address) * 8; pixel < (int(address)+1)*8; pixel++ {
		value <<= 1

		if a.display.GetPixel(a.pixelPosition(pixel)) {
			value |= 1
		}
	}

	return value
}

func (a *Addressable) Write(address uint16, value byte) error {
	for i := 0; i < 8; i++ {
		x, y := a.pixelPosition(int(address)*8 + i)
		a.display.SetPixel(x, y, (value>>(7-i))&1 == 1)
	}

	return nil
}
