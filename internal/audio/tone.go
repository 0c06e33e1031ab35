// Package audio plays the beep of the CHIP-8 sound timer.
package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

// Tone parameters.
const (
	SampleRate = 44100
	Frequency  = 440
	Amplitude  = 0.25

	bytesPerSample = 4 // mono float32
)

// Tone is an endless sine wave that is audible while active.
// It implements io.Reader producing little-endian float32 mono samples
// and is safe to toggle from another goroutine than the one reading.
type Tone struct {
	active atomic.Bool
	table  []float32
	phase  int
}

// NewTone returns an inactive tone with one second of precomputed samples.
func NewTone() *Tone {
	table := make([]float32, SampleRate)
	for i := range table {
		t := float64(i) / SampleRate
		table[i] = float32(Amplitude * math.Sin(2*math.Pi*Frequency*t))
	}
	return &Tone{table: table}
}

// SetActive switches the tone on or off.
func (t *Tone) SetActive(active bool) {
	t.active.Store(active)
}

// Active returns whether the tone is playing.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// Read fills p with samples, silence while the tone is inactive.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) / bytesPerSample * bytesPerSample
	active := t.active.Load()

	for i := 0; i < n; i += bytesPerSample {
		var sample float32
		if active {
			sample = t.table[t.phase]
			t.phase = (t.phase + 1) % len(t.table)
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(sample))
	}
	return n, nil
}
