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

package clock

import (
	"errors"
	"testing"
	"time"
)

// fakeTime drives the clock deterministically: sleeping advances the
// simulated instant exactly, Advance models time spent in the tickable
type fakeTime struct {
	current time.Duration
	slept   []time.Duration
}

func (f *fakeTime) now() time.Duration {
	return f.current
}

func (f *fakeTime) sleep(d time.Duration) {
	f.slept = append(f.slept, d)
	f.current += d
}

func (f *fakeTime) Advance(d time.Duration) {
	f.current += d
}

type countingTickable struct {
	ticks int
	err   error
}

func (c *countingTickable) Tick() error {
	c.ticks++
	return c.err
}

func newTestClock(hz int) (*Clock, *fakeTime) {
	ft := &fakeTime{}

	c := New(hz)
	c.now = ft.now
	c.sleep = ft.sleep

	return c, ft
}

func TestTickPaces(t *testing.T) {
	c, ft := newTestClock(100)

	tickable := &countingTickable{}

	// Fast ticks sleep out the remainder of each 10ms period
	for i := 0; i < 3; i++ {
		if err := c.Tick(tickable); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}

	if tickable.ticks != 3 {
		t.Errorf("Tick count mismatch\nwant:3\nhave:%d", tickable.ticks)
	}

	want := []time.Duration{
		10 * time.Millisecond,
		10 * time.Millisecond,
		10 * time.Millisecond,
	}

	if len(ft.slept) != len(want) {
		t.Fatalf("Sleep count mismatch\nwant:%d\nhave:%d",
			len(want), len(ft.slept))
	}

	for i, d := range want {
		if ft.slept[i] != d {
			t.Errorf(
				"Sleep %d mismatch\nwant:%v\nhave:%v", i, d, ft.slept[i],
			)
		}
	}
}

func TestTickSkipsSleepWhenLate(t *testing.T) {
	c, ft := newTestClock(100)

	tickable := &countingTickable{}

	if err := c.Tick(tickable); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	sleeps := len(ft.slept)

	// The tickable overran the period, the next tick owes no sleep
	ft.Advance(25 * time.Millisecond)

	if err := c.Tick(tickable); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if len(ft.slept) != sleeps {
		t.Errorf("Unexpected sleep after missed deadline: %v", ft.slept)
	}
}

func TestTickSelfCorrects(t *testing.T) {
	c, ft := newTestClock(100)

	tickable := &countingTickable{}

	if err := c.Tick(tickable); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	// Half a period late: the next deadline is one period from the observed
	// time, not two ticks crammed together to catch up
	ft.Advance(15 * time.Millisecond)

	if err := c.Tick(tickable); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	sleeps := len(ft.slept)

	if err := c.Tick(tickable); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if len(ft.slept) != sleeps+1 {
		t.Fatalf("Expected a sleep after recovery: %v", ft.slept)
	}

	if have := ft.slept[len(ft.slept)-1]; have != 10*time.Millisecond {
		t.Errorf("Sleep mismatch\nwant:%v\nhave:%v", 10*time.Millisecond, have)
	}
}

func TestTickPropagatesError(t *testing.T) {
	c, _ := newTestClock(100)

	wantErr := errors.New("boom")
	tickable := &countingTickable{err: wantErr}

	if err := c.Tick(tickable); !errors.Is(err, wantErr) {
		t.Errorf("Error mismatch\nwant:%v\nhave:%v", wantErr, err)
	}
}
