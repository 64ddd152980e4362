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

import (
	"strings"
)

const (
	PixelOn  = '█'
	PixelOff = ' '
)

// Display is a monochrome framebuffer with toroidal addressing: coordinates
// wrap modulo width/height, no out-of-bounds position is representable.
//
// Front-ends observe mutations through two single-slot callbacks, invoked
// synchronously at the point of mutation. Setting a callback replaces the
// previous one, nil clears it.
type Display struct {
	width  int
	height int
	frame  [][]bool

	clearCallback       func()
	updatePixelCallback func(x, y int, value bool)
}

func New(width, height int) *Display {
	display := &Display{
		width:  width,
		height: height,
	}

	display.frame = newFrame(width, height)

	return display
}

func newFrame(width, height int) [][]bool {
	frame := make([][]bool, height)

	for y := range frame {
		frame[y] = make([]bool, width)
	}

	return frame
}

func (d *Display) Width() int {
	return d.width
}

func (d *Display) Height() int {
	return d.height
}

func (d *Display) Clear() {
	d.frame = newFrame(d.width, d.height)

	if d.clearCallback != nil {
		d.clearCallback()
	}
}

// Replays the whole frame through the update pixel callback
func (d *Display) Refresh() {
	if d.updatePixelCallback == nil {
		return
	}

	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			d.updatePixelCallback(x, y, d.frame[y][x])
		}
	}
}

func (d *Display) GetPixel(x, y int) bool {
	x = wrap(x, d.width)
	y = wrap(y, d.height)

	return d.frame[y][x]
}

// Writes one pixel with XOR semantics and reports whether it collided.
// Writing true over a lit pixel turns it off and counts as a collision;
// writing false never flips anything. Sprites only ever assert 1-bits, so
// the draw routine must skip 0-bits rather than write false through here.
func (d *Display) SetPixel(x, y int, value bool) bool {
	x = wrap(x, d.width)
	y = wrap(y, d.height)

	flipped := false

	if value && d.frame[y][x] {
		flipped = true
		value = false
	}

	d.frame[y][x] = value

	if d.updatePixelCallback != nil {
		d.updatePixelCallback(x, y, value)
	}

	return flipped
}

// Draws an 8-bit wide sprite at (x, y), one byte per row with the most
// significant bit leftmost, and reports whether any pixel collided
func (d *Display) DrawSprite(x, y int, sprite []byte) bool {
	flipped := false

	for y2, line := range sprite {
		for x2 := 0; x2 < 8; x2++ {
			if (line>>(7-x2))&1 == 1 && d.SetPixel(x+x2, y+y2, true) {
				flipped = true
			}
		}
	}

	return flipped
}

func (d *Display) SetClearCallback(callback func()) {
	d.clearCallback = callback
}

func (d *Display) SetUpdatePixelCallback(callback func(x, y int, value bool)) {
	d.updatePixelCallback = callback
}

// Textual dump of the frame, one line per row, lit pixels as block glyphs
func (d *Display) String() string {
	var sb strings.Builder

	for y, line := range d.frame {
		if y > 0 {
			sb.WriteByte('\n')
		}

		for _, pixel := range line {
			if pixel {
				sb.WriteRune(PixelOn)
			} else {
				sb.WriteRune(PixelOff)
			}
		}
	}

	return sb.String()
}

func wrap(value, limit int) int {
	value %= limit

	if value < 0 {
		value += limit
	}

	return value
}
