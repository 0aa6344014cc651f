package config

import (
	"fmt"
	"net"
	"os"
)

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if c.Addr == "" {
		return fmt.Errorf("%w: addr cannot be empty", ErrInvalidAddr)
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("%w: must be host:port, got %q", ErrInvalidAddr, c.Addr)
	}

	if c.DataDir != "" {
		info, err := os.Stat(c.DataDir)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidDataDir, c.DataDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %q is not a directory", ErrInvalidDataDir, c.DataDir)
		}
	}

	if c.KeepAliveSeconds < 1 || c.KeepAliveSeconds > MaxKeepAliveSeconds {
		return fmt.Errorf("%w: must be between 1 and %d seconds, got %d",
			ErrInvalidKeepAlive, MaxKeepAliveSeconds, c.KeepAliveSeconds)
	}

	if c.RateBurst < 0 || c.RateBurst > MaxRateBurst {
		return fmt.Errorf("%w: must be between 0 and %d, got %d",
			ErrInvalidRateBurst, MaxRateBurst, c.RateBurst)
	}

	return nil
}
