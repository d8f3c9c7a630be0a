// Package main implements the kiric command line tool.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kiri-lang/kiri/internal/syntax"
	"github.com/urfave/cli/v2"
)

// Version information
const Version = "0.1.0-dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp builds the kiric command tree.
func newApp() *cli.App {
	return &cli.App{
		Name:    "kiric",
		Usage:   "parse and inspect Kiri source files",
		Version: Version,
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "parse a file and print its syntax tree",
				ArgsUsage: "<file.kiri>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "tree",
						Usage:   "output format: tree, json, or source",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("error: expected exactly one input file", 1)
					}
					if code := runParse(c.Args().First(), c.String("format")); code != 0 {
						return cli.Exit("", code)
					}
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "scan a file and print its token stream",
				ArgsUsage: "<file.kiri>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("error: expected exactly one input file", 1)
					}
					if code := runTokens(c.Args().First()); code != 0 {
						return cli.Exit("", code)
					}
					return nil
				},
			},
			{
				Name:      "trace",
				Usage:     "print the parser's derivation event stream",
				ArgsUsage: "<file.kiri>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("error: expected exactly one input file", 1)
					}
					if code := runTrace(c.Args().First()); code != 0 {
						return cli.Exit("", code)
					}
					return nil
				},
			},
		},
	}
}

// runParse parses the input file and prints the syntax tree in the
// requested format.
func runParse(filename, format string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	prog, err := syntax.Parse(filename, f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	switch format {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, prog); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	case "source":
		syntax.FprintSource(os.Stdout, prog)
	default:
		syntax.Fprint(os.Stdout, prog)
	}
	return 0
}

// runTokens scans the input file and prints all tokens with positions.
func runTokens(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	var errs []string
	errh := func(line, col uint32, msg string) {
		errs = append(errs, fmt.Sprintf("%s:%d:%d: %s", filename, line, col, msg))
	}

	s := syntax.NewScanner(filename, f, errh)

	// Print header
	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		s.Next()
		tok := s.Token()
		fmt.Printf("%-20s %-12s %s\n", s.Pos().String(), tok.String(), formatLiteral(s.Literal()))

		// A lexical error is fatal to the scan, so the error row is the
		// last one.
		if tok.IsEOF() || len(errs) > 0 {
			break
		}
	}

	if len(errs) > 0 {
		fmt.Println()
		fmt.Println("Errors:")
		for _, e := range errs {
			fmt.Printf("  %s\n", e)
		}
		return 1
	}

	return 0
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		case 0:
			b.WriteString("\\0")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}

// runTrace parses the input file and prints each derivation event the
// parser emits, one per line.
func runTrace(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	m := syntax.NewMachine(filename, f)
	for {
		ev, err := m.Next()
		if err == io.EOF {
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("%-20s %s\n", ev.Pos.String(), ev.String())
	}
}
