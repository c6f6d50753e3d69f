package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rhino1998/rhexia/pkg/config"
	"github.com/rhino1998/rhexia/pkg/interpreter"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "rhexia.yaml")
	err := os.WriteFile(path, []byte("max_call_depth: 64\nstrict_assignment: true\nlog_level: debug\n"), 0o644)
	r.NoError(err)

	file, err := config.Load(path)
	r.NoError(err)
	r.Equal(config.File{MaxCallDepth: 64, StrictAssignment: true, LogLevel: "debug"}, file)

	level, err := file.Level()
	r.NoError(err)
	r.Equal(slog.LevelDebug, level)

	var out bytes.Buffer
	ic := file.Interpreter(&out)
	r.Equal(64, ic.MaxCallDepth)
	r.True(ic.StrictAssignment)
	r.Same(&out, ic.Stdout)
}

func TestParse_Defaults(t *testing.T) {
	r := require.New(t)

	file, err := config.Parse(strings.NewReader(""))
	r.NoError(err)
	r.Equal(config.Default(), file)
	r.Equal(interpreter.DefaultMaxCallDepth, file.MaxCallDepth)

	file, err = config.Parse(strings.NewReader("strict_assignment: true\n"))
	r.NoError(err)
	r.True(file.StrictAssignment)
	r.Equal(interpreter.DefaultMaxCallDepth, file.MaxCallDepth)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "max_depth: 3\n"},
		{"negative depth", "max_call_depth: -1\n"},
		{"bad level", "log_level: loud\n"},
		{"wrong type", "strict_assignment: [1]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse(strings.NewReader(tt.src))
			require.Error(t, err)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
