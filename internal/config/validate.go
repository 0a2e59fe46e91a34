package config

import (
	"fmt"

	"comicconv/internal/imaging"
)

// Validate checks values that cannot be normalized away.
func (c *Config) Validate() error {
	if _, err := imaging.ParseFormat(c.Conversion.Format); err != nil {
		return fmt.Errorf("conversion.format: %w", err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
