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
	"io"
)

var ErrDeviceNotFound = errors.New("device not found for this address")

// Device is any byte-addressable peripheral that can be mapped onto the bus.
// Addresses handed to a device are offsets relative to its mapping start.
type Device interface {
	Len() int
	Read(address uint16) byte
	Write(address uint16, value byte) error
}

type mapping struct {
	start  uint16
	end    uint16 // inclusive
	device Device
}

// Bus routes reads and writes to devices by address range. Ranges are
// searched in mapping order and the first containing range wins, so a device
// mapped earlier shadows any later overlapping one.
type Bus struct {
	devices []mapping
}

// Total mapped span, i.e. one past the highest mapped address
func (b *Bus) Len() int {
	result := 0

	for _, m := range b.devices {
		if span := int(m.end) + 1; span > result {
			result = span
		}
	}

	return result
}

func (b *Bus) Read(address uint16) (byte, error) {
	for _, m := range b.devices {
		if m.start <= address && address <= m.end {
			return m.device.Read(address - m.start), nil
		}
	}

	return 0, fmt.Errorf("%w: %#04x", ErrDeviceNotFound, address)
}

func (b *Bus) Write(address uint16, value byte) error {
	for _, m := range b.devices {
		if m.start <= address && address <= m.end {
			return m.device.Write(address-m.start, value)
		}
	}

	return fmt.Errorf("%w: %#04x", ErrDeviceNotFound, address)
}

func (b *Bus) Map(start uint16, device Device) {
	b.devices = append(b.devices, mapping{
		start:  start,
		end:    start + uint16(device.Len()) - 1,
		device: device,
	})
}

func (b *Bus) UnmapDevice(device Device) {
	for i, m := range b.devices {
		if m.device == device {
			b.devices = append(b.devices[:i], b.devices[i+1:]...)
			return
		}
	}
}

func (b *Bus) UnmapAddress(start uint16) {
	for i, m := range b.devices {
		if m.start == start {
			b.devices = append(b.devices[:i], b.devices[i+1:]...)
			return
		}
	}
}

// Writes the program byte by byte starting at loadAt. Single-byte writes in
// ascending address order are part of the contract: a mapped device may have
// write side effects that depend on sequencing.
func (b *Bus) LoadProgram(program io.Reader, loadAt uint16) error {
	bytes, err := io.ReadAll(program)

	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}

	for i, value := range bytes {
		if err := b.Write(loadAt+uint16(i), value); err != nil {
			return err
		}
	}

	return nil
}
