package interpreter_test

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/rhino1998/rhexia/pkg/interpreter"
	"github.com/rhino1998/rhexia/pkg/parser"
	"github.com/stretchr/testify/require"
)

// TestPrograms runs each testdata/*.txt program and compares its output with
// the expected text after the "---" separator.
func TestPrograms(t *testing.T) {
	ctx := context.Background()
	t.Parallel()

	dir := os.DirFS("./testdata/")
	testFiles, err := fs.Glob(dir, "*.txt")
	if err != nil {
		t.Fatal(err)
	}

	for _, testFile := range testFiles {
		name := strings.Split(testFile, ".")[0]
		t.Run(name, func(t *testing.T) {
			r := require.New(t)

			testData, err := fs.ReadFile(dir, testFile)
			r.NoError(err)

			parts := bytes.SplitN(testData, []byte("\n---\n"), 2)
			r.Len(parts, 2, "missing --- separator")

			source := bytes.TrimSpace(parts[0])
			expected := strings.TrimSpace(string(parts[1]))

			prog, err := parser.ParseReader(testFile, bytes.NewReader(source))
			r.NoError(err)

			var output bytes.Buffer
			i, err := interpreter.New(slogt.New(t), interpreter.Config{Stdout: &output})
			r.NoError(err)

			_, err = i.Execute(ctx, prog)
			r.NoError(err)

			r.Equal(expected, strings.TrimSpace(output.String()))
		})
	}
}
