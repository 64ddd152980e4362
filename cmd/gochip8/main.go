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
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/lassandro/gochip8/pkg/debugger"
	"github.com/lassandro/gochip8/pkg/machine"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

var helpvar bool
var debugvar bool
var quietvar bool
var verbosevar bool
var clockvar int
var ipuvar int
var interfacevar string
var sizevar string

var shouldexit bool

const usage = "gochip8 [options] filename"

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&debugvar, "debug", false, "Runs the machine in a debug CLI")
	flag.BoolVar(&quietvar, "quiet", false, "Only logs errors")
	flag.BoolVar(&verbosevar, "verbose", false, "Enables debug logging")
	flag.IntVar(&clockvar, "clock", 960, "Clock of the CPU in Hertz")
	flag.IntVar(
		&ipuvar, "ipu", machine.DEFAULT_INSTRUCTIONS_PER_UPDATE,
		"Number of instructions executed per update",
	)
	flag.StringVar(
		&interfacevar, "interface", "terminal",
		"Selects the interface (terminal|sdl)",
	)
	flag.StringVar(&sizevar, "size", "800x400", "Size of the SDL window")
	flag.Parse()
}

func createLogger() *log.Logger {
	cfg := log.DefaultConfig()

	if verbosevar {
		cfg.Level = log.DebugLevel
	} else if quietvar {
		cfg.Level = log.ErrorLevel
	}

	return log.NewWithConfig(cfg)
}

// Decodes a window geometry argument in the format 800x400
func parseSize(s string) (width, height int32, err error) {
	parts := strings.Split(s, "x")

	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size: %s", s)
	}

	w, err := strconv.ParseInt(parts[0], 10, 32)

	if err != nil {
		return 0, 0, fmt.Errorf("invalid size: %s", s)
	}

	h, err := strconv.ParseInt(parts[1], 10, 32)

	if err != nil {
		return 0, 0, fmt.Errorf("invalid size: %s", s)
	}

	return int32(w), int32(h), nil
}

// A front-end drives the machine clock and translates between the physical
// input/output and the display/keyboard contracts
type window interface {
	Run(hz int) error
	Close()
}

func gochip8() int {
	logger := createLogger()

	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	if len(args) != 1 {
		fmt.Println(usage)
		return 1
	}

	if !quietvar {
		fmt.Printf("gochip8 %s\n", buildinfo.Version(version, commit, date))
	}

	file, err := os.Open(args[0])

	if err != nil {
		logger.Error("Opening program failed", log.Err(err))
		return 1
	}

	defer file.Close()

	mc := machine.NewCosmacVIP(ipuvar)

	if err := mc.LoadProgram(file); err != nil {
		logger.Error("Loading program failed", log.Err(err))
		return 1
	}

	logger.Debug(
		"Program loaded",
		log.String("file", args[0]),
		log.Int("clock", clockvar),
		log.Int("instructions_per_update", ipuvar),
	)

	if debugvar {
		var dbg debugger.Debugger
		dbg.HandleBreak = handleBreak
		dbg.HandleRead = handleRead
		dbg.HandleWrite = handleWrite
		mc.Cores[0].Debugger = &dbg

		c := make(chan os.Signal, 1)
		defer close(c)

		signal.Notify(c, os.Interrupt)
		go func() {
			for range c {
				fmt.Println()
				dbg.Break = true
			}
		}()
	}

	var win window

	switch interfacevar {
	case "terminal":
		win, err = newTerminalWindow(mc)
	case "sdl":
		width, height, sizeErr := parseSize(sizevar)

		if sizeErr != nil {
			logger.Error("Invalid window size", log.Err(sizeErr))
			return 1
		}

		win, err = newSdlWindow(mc, width, height)
	default:
		logger.Error(
			"Unknown interface", log.String("interface", interfacevar),
		)
		return 1
	}

	if err != nil {
		logger.Error("Opening interface failed", log.Err(err))
		return 1
	}

	defer win.Close()

	if debugvar {
		debugREPL(mc.Cores[0].Debugger.(*debugger.Debugger), mc.Cores[0])
	}

	if err := win.Run(clockvar); err != nil {
		logger.Error("Execution failed", log.Err(err))
		return 1
	}

	return 0
}

func main() {
	os.Exit(gochip8())
}
