// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Loader handles loading ROM files from disk.
type Loader struct {
	maxSize int
}

// New creates a new ROM loader that accepts files fitting into the program area.
func New() *Loader {
	return &Loader{maxSize: chip8.MaxROMSize}
}

// Load reads a raw CHIP-8 ROM file. Files that do not fit into the memory
// after the program start address are rejected with chip8.ErrROMTooLarge.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	// read one byte more than allowed to detect oversized files
	data, err := io.ReadAll(io.LimitReader(file, int64(l.maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	if len(data) > l.maxSize {
		return nil, fmt.Errorf("file %s exceeds %d bytes: %w", path, l.maxSize, chip8.ErrROMTooLarge)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file %s is empty", path)
	}
	return data, nil
}
