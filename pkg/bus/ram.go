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

type Ram struct {
	memory []byte
}

func NewRam(size int) *Ram {
	return &Ram{memory: make([]byte, size)}
}

func (r *Ram) Len() int {
	return len(r.memory)
}

func (r *Ram) Read(address uint16) byte {
	return r.memory[address]
}

func (r *Ram) Write(address uint16, value byte) error {
	r.memory[address] = value
	return nil
}
