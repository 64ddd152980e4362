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

package encoding

import (
	"errors"
	"strconv"
	"strings"
)

// Decodes a hexidecimal string in the formats: 0xFFFF, xFFFF, 0xFF, xFF
func DecodeHex(s string) (uint16, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = "0" + s
	} else if i == -1 || i != 1 {
		return 0, errors.New("Invalid hex string")
	}

	result, err := strconv.ParseUint(s, 0, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes a base-10 string in the formats: #123, 123
func DecodeInt(s string) (int16, error) {
	if i := strings.Index(s, "#"); i == 0 {
		s = s[1:]
	}

	result, err := strconv.ParseInt(s, 10, 16)

	if err != nil {
		return 0, err
	}

	return int16(result), nil
}

// Assembles an instruction word from two consecutive memory bytes, high byte
// at the lower address
func Word(high, low byte) uint16 {
	return (uint16(high) << 8) | uint16(low)
}

// NNN |____ nnnn nnnn nnnn| 12-bit address field
func Addr(word uint16) uint16 {
	return word & 0x0FFF
}

// NN  |____ ____ nnnn nnnn| 8-bit immediate field
func Imm8(word uint16) uint8 {
	return uint8(word & 0xFF)
}

// N   |____ ____ ____ nnnn| 4-bit immediate field
func Imm4(word uint16) uint8 {
	return uint8(word & 0xF)
}

// X   |____ xxxx ____ ____| first register index
func X(word uint16) uint8 {
	return uint8(word>>8) & 0xF
}

// Y   |____ ____ yyyy ____| second register index
func Y(word uint16) uint8 {
	return uint8(word>>4) & 0xF
}
