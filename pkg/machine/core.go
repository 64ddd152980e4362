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

package machine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/lassandro/gochip8/pkg/bus"
	"github.com/lassandro/gochip8/pkg/display"
	"github.com/lassandro/gochip8/pkg/encoding"
	"github.com/lassandro/gochip8/pkg/keyboard"
)

var (
	ErrUndefinedInstruction     = errors.New("undefined instruction")
	ErrUnimplementedInstruction = errors.New("unimplemented instruction")
)

func NewCore(
	b *bus.Bus,
	d *display.Display,
	k *keyboard.Keyboard,
	reservedAddress int,
	entrypoint uint16,
	instructionsPerUpdate int,
) *Core {
	return &Core{
		Bus:      b,
		Display:  d,
		Keyboard: k,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		PC:       entrypoint,
		SP:       uint16(b.Len() - reservedAddress - 2),

		instructionsPerUpdate: instructionsPerUpdate,
	}
}

func (c *Core) SetTickCallback(callback func()) {
	c.tickCallback = callback
}

func (c *Core) SetUpdateCallback(callback func()) {
	c.updateCallback = callback
}

// Cancels an outstanding key-wait request, if any. Safe to call from outside
// the tick loop when the core is being discarded; other requests pending on
// the shared keyboard are unaffected.
func (c *Core) Close() {
	if c.waitingKeyboard != nil {
		c.waitingKeyboard.Cancel()
		c.waitingKeyboard = nil
	}
}

// Advances the core by exactly one fetch-decode-execute pass. Every
// instructionsPerUpdate ticks both timers decrement once and the update
// callback fires. Unmapped addresses and unrecognized opcode patterns are
// fatal and propagate to the caller; nothing is retried.
func (c *Core) Tick() error {
	if err := c.execute(); err != nil {
		return err
	}

	if c.tickCallback != nil {
		c.tickCallback()
	}

	c.instructionsExecuted++

	if c.instructionsExecuted >= c.instructionsPerUpdate {
		c.instructionsExecuted = 0
		c.decrementTimers()

		if c.updateCallback != nil {
			c.updateCallback()
		}
	}

	if c.Debugger != nil {
		c.Debugger.Step(c)
	}

	return nil
}

// Timers saturate at zero, they never wrap
func (c *Core) decrementTimers() {
	if c.DelayTimer > 0 {
		c.DelayTimer--
	}

	if c.SoundTimer > 0 {
		c.SoundTimer--
	}
}

func (c *Core) read(addr uint16) (byte, error) {
	value, err := c.Bus.Read(addr)

	if err != nil {
		return 0, err
	}

	if c.Debugger != nil {
		c.Debugger.Read(addr, c)
	}

	return value, nil
}

func (c *Core) write(addr uint16, value byte) error {
	if err := c.Bus.Write(addr, value); err != nil {
		return err
	}

	if c.Debugger != nil {
		c.Debugger.Write(addr, c)
	}

	return nil
}

func (c *Core) execute() error {
	high, err := c.read(c.PC)

	if err != nil {
		return err
	}

	low, err := c.read(c.PC + 1)

	if err != nil {
		return err
	}

	instruction := encoding.Word(high, low)

	op := instruction >> 12
	nnn := encoding.Addr(instruction)
	nn := encoding.Imm8(instruction)
	n := encoding.Imm4(instruction)
	x := encoding.X(instruction)
	y := encoding.Y(instruction)

	// The program counter advances before dispatch: jump and call targets
	// are absolute, branch skips add a further +2 on top
	c.PC += 2

	switch op {
	// CLS  |00E0          | Clear display
	// RTS  |00EE          | Return from subroutine
	// SYS  |0   |nnn      | Machine language call (unimplemented)
	case OP_SYS:
		switch instruction {
		case 0x00E0:
			c.Display.Clear()
		case 0x00EE:
			return c.rts()
		default:
			return fmt.Errorf(
				"%w: sys %#03x", ErrUnimplementedInstruction, nnn,
			)
		}

	// JMP  |1   |nnn      | Jump to address
	case OP_JUMP:
		c.PC = nnn

	// CALL |2   |nnn      | Call subroutine
	case OP_CALL:
		return c.call(nnn)

	// SKE  |3   |x  |nn   | Skip next if V[x] == nn
	case OP_SKEI:
		if c.V[x] == nn {
			c.PC += 2
		}

	// SKNE |4   |x  |nn   | Skip next if V[x] != nn
	case OP_SKNEI:
		if c.V[x] != nn {
			c.PC += 2
		}

	// SKE  |5   |x  |y |0 | Skip next if V[x] == V[y]
	case OP_SKER:
		if n != 0 {
			return fmt.Errorf(
				"%w: %#04x", ErrUndefinedInstruction, instruction,
			)
		}

		if c.V[x] == c.V[y] {
			c.PC += 2
		}

	// MOV  |6   |x  |nn   | V[x] = nn
	case OP_MOVI:
		c.V[x] = nn

	// ADD  |7   |x  |nn   | V[x] += nn, no carry flag
	case OP_ADDI:
		c.V[x] += nn

	// MOV  |8   |x  |y |0 | V[x] = V[y]
	// OR   |8   |x  |y |1 | V[x] |= V[y]
	// AND  |8   |x  |y |2 | V[x] &= V[y]
	// XOR  |8   |x  |y |3 | V[x] ^= V[y]
	// ADD  |8   |x  |y |4 | V[x] += V[y], V[15] = carry
	// SUB  |8   |x  |y |5 | V[x] -= V[y], V[15] = no borrow
	// SHR  |8   |x  |y |6 | V[x] = V[y] >> 1, V[15] = shifted out bit
	// SUBB |8   |x  |y |7 | V[x] = V[y] - V[x], V[15] = no borrow
	// SHL  |8   |x  |y |E | V[x] = V[y] << 1, V[15] = shifted out bit
	case OP_MATH:
		switch n {
		case 0x0:
			c.V[x] = c.V[y]
		case 0x1:
			c.V[x] |= c.V[y]
		case 0x2:
			c.V[x] &= c.V[y]
		case 0x3:
			c.V[x] ^= c.V[y]
		case 0x4:
			total := uint16(c.V[x]) + uint16(c.V[y])
			c.V[x] = uint8(total)
			c.V[15] = uint8(total >> 8)
		case 0x5:
			flag := c.V[x] > c.V[y]
			c.setFlag(flag)
			c.V[x] -= c.V[y]
		case 0x6:
			c.V[15] = c.V[y] & 1
			c.V[x] = c.V[y] >> 1
		case 0x7:
			flag := c.V[y] > c.V[x]
			c.setFlag(flag)
			c.V[x] = c.V[y] - c.V[x]
		case 0xE:
			c.V[15] = c.V[y] >> 7
			c.V[x] = c.V[y] << 1
		default:
			return fmt.Errorf(
				"%w: %#04x", ErrUndefinedInstruction, instruction,
			)
		}

	// SKNE |9   |x  |y |0 | Skip next if V[x] != V[y]
	case OP_SKNER:
		if n != 0 {
			return fmt.Errorf(
				"%w: %#04x", ErrUndefinedInstruction, instruction,
			)
		}

		if c.V[x] != c.V[y] {
			c.PC += 2
		}

	// MOV  |A   |nnn      | I = nnn
	case OP_MOVTOI:
		c.I = nnn

	// JMP  |B   |nnn      | Jump to nnn + V[0]
	case OP_JUMPV0:
		c.PC = nnn + uint16(c.V[0])

	// RND  |C   |x  |nn   | V[x] = random byte AND nn
	case OP_RND:
		c.V[x] = uint8(c.Rand.Intn(256)) & nn

	// SPR  |D   |x  |y |n | Draw n-byte sprite at (V[x], V[y]), V[15] = hit
	case OP_SPRITE:
		sprite := make([]byte, n)

		for i := range sprite {
			value, err := c.read(c.I + uint16(i))

			if err != nil {
				return err
			}

			sprite[i] = value
		}

		flipped := c.Display.DrawSprite(int(c.V[x]), int(c.V[y]), sprite)
		c.setFlag(flipped)

	// SKK  |E   |x  |9E   | Skip next if key V[x] pressed
	// SKNK |E   |x  |A1   | Skip next if key V[x] not pressed
	case OP_KEY:
		switch nn {
		case 0x9E:
			if c.Keyboard.Pressed(keyboard.Key(c.V[x] & 0xF)) {
				c.PC += 2
			}
		case 0xA1:
			if !c.Keyboard.Pressed(keyboard.Key(c.V[x] & 0xF)) {
				c.PC += 2
			}
		default:
			return fmt.Errorf(
				"%w: %#04x", ErrUndefinedInstruction, instruction,
			)
		}

	// MOV  |F   |x  |07   | V[x] = delay timer
	// WAIT |F   |x  |0A   | Wait for next key press, V[x] = key
	// MOV  |F   |x  |15   | Delay timer = V[x]
	// MOV  |F   |x  |18   | Sound timer = V[x]
	// ADD  |F   |x  |1E   | I += V[x], masked to 12 bits
	// CHAR |F   |x  |29   | I = address of character sprite for V[x]
	// BCD  |F   |x  |33   | Memory[I..I+2] = digits of V[x]
	// MOVM |F   |x  |55   | Memory[I..I+x] = V[0..x], I += x + 1
	// MOVM |F   |x  |65   | V[0..x] = Memory[I..I+x], I += x + 1
	case OP_MISC:
		switch nn {
		case 0x07:
			c.V[x] = c.DelayTimer
		case 0x0A:
			c.waitKey(x)
		case 0x15:
			c.DelayTimer = c.V[x]
		case 0x18:
			c.SoundTimer = c.V[x]
		case 0x1E:
			c.I = (c.I + uint16(c.V[x])) & 0xFFF
		case 0x29:
			c.I = uint16(c.V[x]) * bus.SpriteSize
		case 0x33:
			return c.movbcd(x)
		case 0x55:
			for i := uint8(0); i <= x; i++ {
				if err := c.write(c.I, c.V[i]); err != nil {
					return err
				}

				c.I++
			}

			c.I &= 0xFFF
		case 0x65:
			for i := uint8(0); i <= x; i++ {
				value, err := c.read(c.I)

				if err != nil {
					return err
				}

				c.V[i] = value
				c.I++
			}

			c.I &= 0xFFF
		default:
			return fmt.Errorf(
				"%w: %#04x", ErrUndefinedInstruction, instruction,
			)
		}
	}

	return nil
}

// Pushes the already-advanced program counter big-endian onto the call stack
// and jumps. The stack pointer moves before the write, so SP always
// addresses the topmost frame.
func (c *Core) call(nnn uint16) error {
	c.SP += 2

	if err := c.write(c.SP, byte(c.PC>>8)); err != nil {
		return err
	}

	if err := c.write(c.SP+1, byte(c.PC)); err != nil {
		return err
	}

	c.PC = nnn

	return nil
}

func (c *Core) rts() error {
	high, err := c.read(c.SP)

	if err != nil {
		return err
	}

	low, err := c.read(c.SP + 1)

	if err != nil {
		return err
	}

	c.PC = encoding.Word(high, low)
	c.SP -= 2

	return nil
}

// Busy-wait suspension: the first execution registers a one-shot request
// with the keyboard; while it is unresolved the program counter rewinds by
// two so the same instruction re-executes next tick. Once resolved the key
// lands in V[x] and the program counter advances normally.
func (c *Core) waitKey(x uint8) {
	if c.waitingKeyboard == nil {
		c.waitingKeyboard = c.Keyboard.NextKeyPressed()
	}

	if !c.waitingKeyboard.Done() {
		c.PC -= 2
		return
	}

	key, err := c.waitingKeyboard.Result()

	if err != nil {
		// Done() precludes pending and cancelled states
		panic(err)
	}

	c.V[x] = uint8(key)
	c.waitingKeyboard = nil
}

func (c *Core) movbcd(x uint8) error {
	value := c.V[x]

	if err := c.write(c.I+2, value%10); err != nil {
		return err
	}

	value /= 10

	if err := c.write(c.I+1, value%10); err != nil {
		return err
	}

	return c.write(c.I, value/10)
}

func (c *Core) setFlag(value bool) {
	if value {
		c.V[15] = 1
	} else {
		c.V[15] = 0
	}
}
