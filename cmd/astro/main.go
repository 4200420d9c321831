// Command astro is the CLI entry point for the Astro interpreter.
//
// Usage:
//
//	astro tokens <file> [--json]   Print tokens
//	astro parse  <file>            Print AST as JSON
//	astro run    <file>            Run a source file
//	astro eval   <program>         Run program text given on the command line
//	astro repl                     Start interactive REPL
//
// Flags (any command):
//
//	--config <path>   settings file (default ./.astro.yaml if present)
//	--context         show the offending source line on errors
//	--trace           log each executed statement to stderr
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/rtoal/astro-interpreter/internal/config"
	"github.com/rtoal/astro-interpreter/internal/lexer"
	"github.com/rtoal/astro-interpreter/internal/session"
)

// options are the flags shared by all commands.
type options struct {
	json       bool
	context    bool
	trace      bool
	configPath string
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	command := os.Args[1]
	opts, args, err := parseArgs(os.Args[2:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		usage()
		os.Exit(1)
	}
	cfg := loadConfig(opts)

	switch command {
	case "tokens":
		filename := requireArg(args, "file")
		cmdTokens(readFile(filename), opts.json)
	case "parse":
		filename := requireArg(args, "file")
		cmdParse(readFile(filename), cfg)
	case "run":
		filename := requireArg(args, "file")
		cmdRun(readFile(filename), filename, cfg, opts)
	case "eval":
		program := requireArg(args, "program")
		cmdRun(program, "<eval>", cfg, opts)
	case "repl":
		cmdRepl(cfg, opts)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command '%s'\n", command)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  astro tokens <file> [--json]   Tokenize and print tokens")
	fmt.Fprintln(os.Stderr, "  astro parse  <file>            Parse and print AST (JSON)")
	fmt.Fprintln(os.Stderr, "  astro run    <file>            Run a source file")
	fmt.Fprintln(os.Stderr, "  astro eval   <program>         Run program text")
	fmt.Fprintln(os.Stderr, "  astro repl                     Start interactive REPL")
	fmt.Fprintln(os.Stderr, "Flags: --config <path>  --context  --trace")
}

// parseArgs separates flags from positional arguments.
func parseArgs(argv []string) (options, []string, error) {
	var opts options
	var rest []string
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--json":
			opts.json = true
		case arg == "--context":
			opts.context = true
		case arg == "--trace":
			opts.trace = true
		case arg == "--config":
			if i+1 >= len(argv) {
				return opts, nil, fmt.Errorf("--config needs a path")
			}
			i++
			opts.configPath = argv[i]
		case strings.HasPrefix(arg, "--config="):
			opts.configPath = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "--") && len(arg) > 2:
			return opts, nil, fmt.Errorf("unknown flag '%s'", arg)
		default:
			rest = append(rest, arg)
		}
	}
	return opts, rest, nil
}

func requireArg(args []string, what string) string {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "error: missing %s argument\n", what)
		os.Exit(1)
	}
	return args[0]
}

func loadConfig(opts options) config.Config {
	var cfg config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func readFile(filename string) string {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot read file %s: %v\n", filename, err)
		os.Exit(1)
	}
	return string(source)
}

// useColor decides whether diagnostics on stderr get ANSI colors.
func useColor(cfg config.Config) bool {
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		fd := os.Stderr.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
}

// ---- tokens command ----

func cmdTokens(source string, jsonMode bool) {
	l := lexer.New(source)
	tokens, diags := l.Tokenize()

	if jsonMode {
		printTokensJSON(tokens, diags)
	} else {
		printTokensText(tokens, diags)
	}

	if len(diags) > 0 {
		os.Exit(1)
	}
}

// ---- parse command ----

func cmdParse(source string, cfg config.Config) {
	file, diags := session.ParseAll(source, cfg.Dialect)

	output := map[string]interface{}{
		"ast":         astToMap(file),
		"diagnostics": diagsToSlice(diags),
	}
	printJSON(output)

	if len(diags) > 0 {
		os.Exit(1)
	}
}

// ---- run / eval commands ----

func cmdRun(source, filename string, cfg config.Config, opts options) {
	sess := session.New(os.Stdout, cfg.Dialect)
	if opts.trace {
		sess.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if err := sess.Exec(source); err != nil {
		printError(os.Stderr, err, source, filename, opts.context, useColor(cfg))
		os.Exit(1)
	}
}
