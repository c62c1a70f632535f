package config

import (
	"fmt"
	"strings"
)

var validOutputs = map[string]bool{
	"auto":     true,
	"text":     true,
	"markdown": true,
	"json":     true,
}

// Validate checks the resolved configuration for values no command could
// act on.
func (c *Config) Validate() error {
	if !validOutputs[c.Output] {
		return fmt.Errorf("invalid output mode %q (expected auto, text, markdown, or json)", c.Output)
	}
	if len(c.Libraries) == 0 {
		return fmt.Errorf("at least one standard-cell library must be configured")
	}
	for _, lib := range c.Libraries {
		if strings.TrimSpace(lib) == "" {
			return fmt.Errorf("library names must not be empty")
		}
	}
	for _, v := range []float64{
		c.DRC.ViaSize, c.DRC.ViaSpacing, c.DRC.ViaEnclosure,
		c.DRC.M5Width, c.DRC.M5Spacing, c.DRC.MTWidth, c.DRC.MTSpacing,
	} {
		if v < 0 {
			return fmt.Errorf("design rule overrides must not be negative, got %g", v)
		}
	}
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("invalid design rules: %w", err)
	}
	return nil
}
