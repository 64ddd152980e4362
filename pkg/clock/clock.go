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
	"time"
)

type Tickable interface {
	Tick() error
}

// Clock paces a tickable at a fixed frequency. Each Tick call blocks until
// one period has elapsed since the previous call, then ticks exactly once.
// Missed deadlines are never coalesced: the baseline for the next deadline
// is the time observed after the sleep, not the ideal deadline, so the clock
// self-corrects instead of accumulating a virtual backlog.
type Clock struct {
	period time.Duration
	last   time.Duration

	// Monotonic time and sleep, replaceable in tests
	now   func() time.Duration
	sleep func(time.Duration)
}

func New(hz int) *Clock {
	start := time.Now()

	return &Clock{
		period: time.Second / time.Duration(hz),
		now:    func() time.Duration { return time.Since(start) },
		sleep:  time.Sleep,
	}
}

func (c *Clock) Tick(tickable Tickable) error {
	now := c.now()

	if wait := c.last + c.period - now; wait > 0 {
		c.sleep(wait)
		now = c.now()
	}

	c.last = now

	return tickable.Tick()
}
