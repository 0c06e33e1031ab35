package scheduler

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew_InvalidRate(t *testing.T) {
	start := time.Now()

	_, err := New(0, 60, start)
	assert.Error(t, err)

	_, err = New(700, -1, start)
	assert.Error(t, err)
}

func TestDue(t *testing.T) {
	start := time.Unix(0, 0)
	s, err := New(1000, 60, start)
	assert.NoError(t, err)

	cycles, ticks := s.Due(start.Add(500 * time.Microsecond))
	assert.Equal(t, 0, cycles)
	assert.Equal(t, 0, ticks)

	cycles, ticks = s.Due(start.Add(10 * time.Millisecond))
	assert.Equal(t, 10, cycles)
	assert.Equal(t, 0, ticks)

	cycles, ticks = s.Due(start.Add(20 * time.Millisecond))
	assert.Equal(t, 10, cycles)
	assert.Equal(t, 1, ticks)
}

func TestDue_CarriesRemainder(t *testing.T) {
	start := time.Unix(0, 0)
	s, err := New(1000, 60, start)
	assert.NoError(t, err)

	cycles, _ := s.Due(start.Add(1500 * time.Microsecond))
	assert.Equal(t, 1, cycles)

	cycles, _ = s.Due(start.Add(2000 * time.Microsecond))
	assert.Equal(t, 1, cycles)
}

func TestDue_TimerRate(t *testing.T) {
	start := time.Unix(0, 0)
	s, err := New(700, 60, start)
	assert.NoError(t, err)

	total := 0
	for ms := 1; ms <= 1000; ms++ {
		_, ticks := s.Due(start.Add(time.Duration(ms) * time.Millisecond))
		total += ticks
	}
	assert.Equal(t, 60, total)
}

func TestDue_CatchUpLimit(t *testing.T) {
	start := time.Unix(0, 0)
	s, err := New(1000, 60, start)
	assert.NoError(t, err)

	cycles, ticks := s.Due(start.Add(10 * time.Second))
	assert.Equal(t, 250, cycles)
	assert.Equal(t, 15, ticks)

	// the clock skipped ahead, nothing else is due
	cycles, ticks = s.Due(start.Add(10 * time.Second))
	assert.Equal(t, 0, cycles)
	assert.Equal(t, 0, ticks)
}
