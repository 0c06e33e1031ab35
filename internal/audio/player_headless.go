//go:build headless

package audio

import "errors"

// Player is not available in headless builds.
type Player struct{}

// NewPlayer always fails in headless builds.
func NewPlayer(*Tone) (*Player, error) {
	return nil, errors.New("audio output is not supported in headless builds")
}

// Close does nothing.
func (p *Player) Close() error {
	return nil
}
