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

package main

import (
	"fmt"

	"github.com/lassandro/gochip8/pkg/clock"
	"github.com/lassandro/gochip8/pkg/keyboard"
	"github.com/lassandro/gochip8/pkg/machine"

	"github.com/veandco/go-sdl2/sdl"
)

var sdlKeys = map[sdl.Keycode]keyboard.Key{
	sdl.K_1: keyboard.Key1,
	sdl.K_2: keyboard.Key2,
	sdl.K_3: keyboard.Key3,
	sdl.K_q: keyboard.Key4,
	sdl.K_w: keyboard.Key5,
	sdl.K_e: keyboard.Key6,
	sdl.K_a: keyboard.Key7,
	sdl.K_s: keyboard.Key8,
	sdl.K_d: keyboard.Key9,
	sdl.K_x: keyboard.Key0,
	sdl.K_z: keyboard.KeyA,
	sdl.K_c: keyboard.KeyB,
	sdl.K_4: keyboard.KeyC,
	sdl.K_r: keyboard.KeyD,
	sdl.K_f: keyboard.KeyE,
	sdl.K_v: keyboard.KeyF,
}

// sdlWindow mirrors display mutations into a shadow frame and presents it
// through the renderer once per machine update, so pixel churn between
// updates costs no draw calls
type sdlWindow struct {
	mc *machine.Machine

	window   *sdl.Window
	renderer *sdl.Renderer

	frame      [][]bool
	needUpdate bool
}

func newSdlWindow(mc *machine.Machine, width, height int32) (*sdlWindow, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("initializing sdl: %w", err)
	}

	window, err := sdl.CreateWindow(
		"gochip8",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		width, height,
		sdl.WINDOW_SHOWN,
	)

	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)

	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	if err := renderer.SetLogicalSize(
		int32(mc.Display.Width()), int32(mc.Display.Height()),
	); err != nil {
		return nil, fmt.Errorf("setting logical size: %w", err)
	}

	w := &sdlWindow{
		mc:       mc,
		window:   window,
		renderer: renderer,
		frame:    newFrame(mc.Display.Width(), mc.Display.Height()),
	}

	w.renderer.SetDrawColor(0, 0, 0, 255)
	w.renderer.Clear()
	w.renderer.Present()

	mc.Display.SetUpdatePixelCallback(w.setPixel)
	mc.Display.SetClearCallback(w.clear)
	mc.SetUpdateCallback(w.showFrame)

	return w, nil
}

func newFrame(width, height int) [][]bool {
	frame := make([][]bool, height)

	for y := range frame {
		frame[y] = make([]bool, width)
	}

	return frame
}

func (w *sdlWindow) clear() {
	w.frame = newFrame(w.mc.Display.Width(), w.mc.Display.Height())
	w.needUpdate = true
}

func (w *sdlWindow) setPixel(x, y int, value bool) {
	w.frame[y][x] = value
	w.needUpdate = true
}

func (w *sdlWindow) showFrame() {
	if !w.needUpdate {
		return
	}

	w.needUpdate = false

	for y, line := range w.frame {
		for x, pixel := range line {
			if pixel {
				w.renderer.SetDrawColor(255, 255, 255, 255)
			} else {
				w.renderer.SetDrawColor(0, 0, 0, 255)
			}

			w.renderer.DrawPoint(int32(x), int32(y))
		}
	}

	w.renderer.Present()
}

func (w *sdlWindow) Run(hz int) error {
	cpuClock := clock.New(hz)

	for !shouldexit {
		if err := cpuClock.Tick(w.mc); err != nil {
			return err
		}

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil

			case *sdl.KeyboardEvent:
				if e.Keysym.Sym == sdl.K_ESCAPE {
					return nil
				}

				if key, ok := sdlKeys[e.Keysym.Sym]; ok {
					w.mc.Keyboard.Set(key, e.Type == sdl.KEYDOWN)
				}
			}
		}
	}

	return nil
}

func (w *sdlWindow) Close() {
	w.mc.Display.SetUpdatePixelCallback(nil)
	w.mc.Display.SetClearCallback(nil)
	w.mc.SetUpdateCallback(nil)
	w.mc.Close()

	w.renderer.Destroy()
	w.window.Destroy()
	sdl.Quit()
}
