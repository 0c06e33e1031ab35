// Package scheduler drives the instruction and timer clocks of the emulator
// from wall clock time. The host polls Due as often as it likes, each clock
// reports how many of its fixed intervals elapsed since the last poll.
package scheduler

import (
	"errors"
	"fmt"
	"time"
)

// catchUpWindow limits the work a single poll can return after the host stalled.
const catchUpWindow = time.Second / 4

var errInvalidRate = errors.New("invalid clock rate")

// Scheduler holds the instruction clock and the timer clock.
type Scheduler struct {
	cycles clock
	timers clock
}

// New returns a scheduler running the instruction clock at cycleHz and
// the timer clock at timerHz, both starting at the given time.
func New(cycleHz, timerHz int, start time.Time) (*Scheduler, error) {
	cycles, err := newClock(cycleHz, start)
	if err != nil {
		return nil, fmt.Errorf("instruction clock: %w", err)
	}
	timers, err := newClock(timerHz, start)
	if err != nil {
		return nil, fmt.Errorf("timer clock: %w", err)
	}

	return &Scheduler{
		cycles: cycles,
		timers: timers,
	}, nil
}

// Due returns the number of instruction cycles and timer ticks that became due
// since the previous call.
func (s *Scheduler) Due(now time.Time) (cycles, ticks int) {
	return s.cycles.due(now), s.timers.due(now)
}

type clock struct {
	interval   time.Duration
	last       time.Time
	maxCatchUp int
}

func newClock(hz int, start time.Time) (clock, error) {
	if hz <= 0 || hz > int(time.Second) {
		return clock{}, fmt.Errorf("%w: %d Hz", errInvalidRate, hz)
	}

	interval := time.Second / time.Duration(hz)
	return clock{
		interval:   interval,
		last:       start,
		maxCatchUp: max(1, int(catchUpWindow/interval)),
	}, nil
}

// due returns the number of whole intervals elapsed since the last accounted
// instant. The remainder carries over to the next call. After a stall longer
// than the catch up window the clock skips ahead instead of bursting.
func (c *clock) due(now time.Time) int {
	elapsed := now.Sub(c.last)
	if elapsed < c.interval {
		return 0
	}

	n := int(elapsed / c.interval)
	if n > c.maxCatchUp {
		c.last = now
		return c.maxCatchUp
	}

	c.last = c.last.Add(time.Duration(n) * c.interval)
	return n
}
