package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rhino1998/rhexia/pkg/interpreter"
	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration read by the rhexia command.
type File struct {
	MaxCallDepth     int    `yaml:"max_call_depth"`
	StrictAssignment bool   `yaml:"strict_assignment"`
	LogLevel         string `yaml:"log_level"`
}

func Default() File {
	return File{
		MaxCallDepth: interpreter.DefaultMaxCallDepth,
		LogLevel:     "info",
	}
}

// Load reads a configuration file. Keys that are absent keep their default
// values; unknown keys are an error.
func Load(path string) (File, error) {
	if path == "" {
		return File{}, fmt.Errorf("config: empty path")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return File{}, fmt.Errorf("config: resolve %s: %w", path, err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return File{}, err
	}
	defer f.Close()

	file, err := Parse(f)
	if err != nil {
		return File{}, fmt.Errorf("config: parse %s: %w", abs, err)
	}

	return file, nil
}

func Parse(r io.Reader) (File, error) {
	file := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	err := decoder.Decode(&file)
	if err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}

	err = file.Validate()
	if err != nil {
		return File{}, err
	}

	return file, nil
}

func (f File) Validate() error {
	if f.MaxCallDepth < 0 {
		return fmt.Errorf("max_call_depth must not be negative, got %d", f.MaxCallDepth)
	}

	_, err := f.Level()
	return err
}

func (f File) Level() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(f.LogLevel) == "" {
		return slog.LevelInfo, nil
	}

	err := level.UnmarshalText([]byte(f.LogLevel))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", f.LogLevel, err)
	}

	return level, nil
}

// Interpreter converts the file into an interpreter configuration writing to
// stdout.
func (f File) Interpreter(stdout io.Writer) interpreter.Config {
	return interpreter.Config{
		Stdout:           stdout,
		MaxCallDepth:     f.MaxCallDepth,
		StrictAssignment: f.StrictAssignment,
	}
}
