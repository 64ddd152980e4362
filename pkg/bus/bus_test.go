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
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/lassandro/gochip8/pkg/bus"
)

// recordingDevice remembers the order writes arrive in
type recordingDevice struct {
	size   int
	writes []uint16
	values []byte
}

func (d *recordingDevice) Len() int {
	return d.size
}

func (d *recordingDevice) Read(address uint16) byte {
	return 0
}

func (d *recordingDevice) Write(address uint16, value byte) error {
	d.writes = append(d.writes, address)
	d.values = append(d.values, value)
	return nil
}

func TestBusLen(t *testing.T) {
	var b bus.Bus

	assert.Equal(t, 0, b.Len())

	b.Map(0x0000, bus.NewRam(16))
	assert.Equal(t, 16, b.Len())

	b.Map(0x0100, bus.NewRam(16))
	assert.Equal(t, 0x0110, b.Len())

	// A device mapped inside the existing span does not extend it
	b.Map(0x0008, bus.NewRam(8))
	assert.Equal(t, 0x0110, b.Len())
}

func TestBusReadWrite(t *testing.T) {
	var b bus.Bus

	b.Map(0x0100, bus.NewRam(16))

	assert.NoError(t, b.Write(0x0105, 0xAA))

	value, err := b.Read(0x0105)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xAA), value)

	// Device addresses are relative to the mapping start
	value, err = b.Read(0x0100)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x00), value)
}

func TestBusFirstMatchWins(t *testing.T) {
	var b bus.Bus

	front := bus.NewRam(16)
	back := bus.NewRam(16)

	b.Map(0x0000, front)
	b.Map(0x0008, back)

	assert.NoError(t, b.Write(0x0008, 0xAA))

	// The write landed in the earlier mapping, not the overlapping one
	assert.Equal(t, byte(0xAA), front.Read(0x0008))
	assert.Equal(t, byte(0x00), back.Read(0x0000))
}

func TestBusNotFound(t *testing.T) {
	var b bus.Bus

	b.Map(0x0000, bus.NewRam(16))

	_, err := b.Read(0x0010)
	assert.True(t, errors.Is(err, bus.ErrDeviceNotFound))

	err = b.Write(0x0010, 0xAA)
	assert.True(t, errors.Is(err, bus.ErrDeviceNotFound))
}

func TestBusUnmap(t *testing.T) {
	var b bus.Bus

	ram := bus.NewRam(16)

	b.Map(0x0000, ram)
	b.UnmapDevice(ram)

	_, err := b.Read(0x0000)
	assert.True(t, errors.Is(err, bus.ErrDeviceNotFound))

	b.Map(0x0000, ram)
	b.UnmapAddress(0x0000)

	_, err = b.Read(0x0000)
	assert.True(t, errors.Is(err, bus.ErrDeviceNotFound))
}

func TestLoadProgram(t *testing.T) {
	var b bus.Bus

	device := &recordingDevice{size: 16}
	b.Map(0x0200, device)

	program := []byte{0x12, 0x34, 0x56}

	err := b.LoadProgram(bytes.NewReader(program), 0x0202)
	assert.NoError(t, err)

	// One write per byte, in ascending address order
	assert.Equal(t, []uint16{0x02, 0x03, 0x04}, device.writes)
	assert.Equal(t, program, device.values)
}

func TestLoadProgramUnmapped(t *testing.T) {
	var b bus.Bus

	b.Map(0x0000, bus.NewRam(2))

	err := b.LoadProgram(bytes.NewReader([]byte{0x12, 0x34, 0x56}), 0x0000)
	assert.True(t, errors.Is(err, bus.ErrDeviceNotFound))
}
