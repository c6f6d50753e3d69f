package interpreter

import (
	"fmt"
	"io"
	"strings"
)

// DefaultNatives returns the built-in host functions print and write, both
// writing to w. Multiple arguments are separated by a single space.
func DefaultNatives(w io.Writer) map[string]NativeFunc {
	return map[string]NativeFunc{
		"print": func(args []Value) (Value, error) {
			_, err := fmt.Fprintln(w, joinText(args))
			if err != nil {
				return nil, err
			}

			return Null{}, nil
		},
		"write": func(args []Value) (Value, error) {
			_, err := io.WriteString(w, joinText(args))
			if err != nil {
				return nil, err
			}

			return Null{}, nil
		},
	}
}

func joinText(args []Value) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, arg.String())
	}

	return strings.Join(parts, " ")
}

func nativeValues(table map[string]NativeFunc) map[string]Value {
	values := make(map[string]Value, len(table))
	for name, fn := range table {
		values[name] = &Native{Name: name, Call: fn}
	}

	return values
}
