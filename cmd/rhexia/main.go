package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/rhino1998/rhexia/pkg/ast"
	"github.com/rhino1998/rhexia/pkg/config"
	"github.com/rhino1998/rhexia/pkg/interpreter"
	"github.com/rhino1998/rhexia/pkg/lexer"
	"github.com/rhino1998/rhexia/pkg/parser"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := &cli.Command{
		Name:  "rhexia",
		Usage: "The Rhexia scripting language",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Execute a Rhexia source file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "path to a YAML configuration file",
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "make assignment to an undeclared variable an error",
					},
					&cli.IntFlag{
						Name:  "max-depth",
						Usage: "maximum number of nested calls",
					},
					&cli.BoolFlag{
						Name:    "debug",
						Aliases: []string{"d"},
					},
				},
				Action: runAction,
			},
			{
				Name:      "parse",
				Usage:     "Parse a Rhexia source file and print its syntax tree",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "output format, text or yaml",
						Value:   "text",
					},
				},
				Action: parseAction,
			},
			{
				Name:      "tokens",
				Usage:     "Print the token stream of a Rhexia source file",
				ArgsUsage: "<file>",
				Action:    tokensAction,
			},
		},
	}

	err := cmd.Run(ctx, os.Args)
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed)
	_, _ = red.Fprintf(w, "error: %v\n", err)

	var rtErr *interpreter.RuntimeError
	if errors.As(err, &rtErr) && len(rtErr.Trace) > 0 {
		_, _ = color.New(color.Faint).Fprint(w, rtErr.FormatTrace())
	}
}

func sourcePath(c *cli.Command) (string, error) {
	if c.Args().Len() != 1 {
		return "", fmt.Errorf("must provide exactly one rhexia source file as argument")
	}

	return c.Args().First(), nil
}

func loadConfig(c *cli.Command) (config.File, error) {
	file := config.Default()

	if path := c.String("config"); path != "" {
		var err error
		file, err = config.Load(path)
		if err != nil {
			return config.File{}, err
		}
	}

	if c.IsSet("strict") {
		file.StrictAssignment = c.Bool("strict")
	}

	if c.IsSet("max-depth") {
		file.MaxCallDepth = int(c.Int("max-depth"))
	}

	if c.Bool("debug") {
		file.LogLevel = "debug"
	}

	return file, file.Validate()
}

func parseFile(path string) (*ast.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return parser.ParseReader(path, f)
}

func runAction(ctx context.Context, c *cli.Command) error {
	path, err := sourcePath(c)
	if err != nil {
		return err
	}

	file, err := loadConfig(c)
	if err != nil {
		return err
	}

	level, err := file.Level()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	prog, err := parseFile(path)
	if err != nil {
		return err
	}

	interp, err := interpreter.New(logger, file.Interpreter(os.Stdout))
	if err != nil {
		return fmt.Errorf("failed to initialize interpreter: %w", err)
	}

	_, err = interp.Execute(ctx, prog)
	return err
}

func parseAction(ctx context.Context, c *cli.Command) error {
	path, err := sourcePath(c)
	if err != nil {
		return err
	}

	prog, err := parseFile(path)
	if err != nil {
		return err
	}

	switch format := c.String("format"); format {
	case "text":
		_, err = fmt.Fprint(os.Stdout, prog.String())
		return err
	case "yaml":
		return ast.Dump(os.Stdout, prog)
	default:
		return fmt.Errorf("unknown format %q, expected text or yaml", format)
	}
}

func tokensAction(ctx context.Context, c *cli.Command) error {
	path, err := sourcePath(c)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	l, err := lexer.New(path, f)
	if err != nil {
		return err
	}

	for {
		tok, err := l.Next()
		if err != nil {
			return err
		}

		fmt.Printf("%s\t%s\n", l.Pos(), tok)

		if tok.Kind == lexer.EOF {
			return nil
		}
	}
}
