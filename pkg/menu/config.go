package menu

import (
	"errors"
	"fmt"
)

const (
	// DefaultWindow is the number of lines rendered per frame.
	DefaultWindow = 11
	// DefaultWidth is the line width the value column is centered in.
	DefaultWidth = 80
)

var (
	// ErrInvalidWindow reports a window size that is not an odd number >= 1.
	ErrInvalidWindow = errors.New("menu: window must be an odd number >= 1")
	// ErrInvalidWidth reports a non-positive line width.
	ErrInvalidWidth = errors.New("menu: width must be >= 1")
)

// Config controls the render contract. Zero fields take the defaults.
type Config struct {
	Window int
	Width  int
}

func (c Config) withDefaults() Config {
	if c.Window == 0 {
		c.Window = DefaultWindow
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	return c
}

func (c Config) validate() error {
	if c.Window < 1 || c.Window%2 == 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWindow, c.Window)
	}
	if c.Width < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWidth, c.Width)
	}
	return nil
}
