package interpreter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

const DefaultMaxCallDepth = 10000

type Config struct {
	// Stdout receives the output of the default print and write natives.
	Stdout io.Writer

	// Natives replaces the default native table when non-nil.
	Natives map[string]NativeFunc

	// MaxCallDepth bounds nested calls. Zero selects DefaultMaxCallDepth.
	MaxCallDepth int

	// StrictAssignment makes assignment to an undeclared name an error
	// instead of declaring it in the current scope.
	StrictAssignment bool
}

func (c *Config) Validate(logger *slog.Logger) error {
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}

	if c.MaxCallDepth < 0 {
		return fmt.Errorf("max call depth must not be negative, got %d", c.MaxCallDepth)
	}

	if c.MaxCallDepth == 0 {
		logger.Debug("using default max call depth", slog.Int("max_call_depth", DefaultMaxCallDepth))
		c.MaxCallDepth = DefaultMaxCallDepth
	}

	if c.Natives == nil {
		c.Natives = DefaultNatives(c.Stdout)
	}

	for name, fn := range c.Natives {
		if name == "" {
			return fmt.Errorf("native function with empty name")
		}

		if fn == nil {
			return fmt.Errorf("native function %s is nil", name)
		}
	}

	return nil
}
