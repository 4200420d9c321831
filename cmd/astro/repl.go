package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/rtoal/astro-interpreter/internal/config"
	"github.com/rtoal/astro-interpreter/internal/session"
)

const (
	prompt     = "astro> "
	contPrompt = "...    "
)

// ---- repl command ----

func cmdRepl(cfg config.Config, opts options) {
	// Determine history file path (~/.astro_history)
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".astro_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            colorGreen + prompt + colorReset,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init failed: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	// Welcome banner
	fmt.Fprintf(rl.Stdout(), "%s%sAstro REPL%s %s(type 'exit' or Ctrl+D to quit, ':symbols' to list bindings)%s\n\n",
		colorBold, colorCyan, colorReset, colorGray, colorReset)

	// One session for the whole REPL: assignments persist between inputs.
	sess := session.New(rl.Stdout(), cfg.Dialect)
	if opts.trace {
		sess.SetLogger(slog.New(slog.NewTextHandler(rl.Stderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	color := useColor(cfg)
	var accumulated strings.Builder

	for {
		if accumulated.Len() > 0 {
			rl.SetPrompt(colorGray + contPrompt + colorReset)
		} else {
			rl.SetPrompt(colorGreen + prompt + colorReset)
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if accumulated.Len() > 0 {
					// Cancel multi-line input
					accumulated.Reset()
					continue
				}
				fmt.Fprintf(rl.Stdout(), "\n%s(use 'exit' or Ctrl+D to quit)%s\n", colorGray, colorReset)
				continue
			}
			// EOF (Ctrl+D) or other error → exit
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if accumulated.Len() == 0 {
			switch strings.TrimSpace(line) {
			case "exit":
				return
			case ":symbols":
				printSymbols(rl.Stdout(), sess)
				continue
			case "":
				continue
			}
		}

		accumulated.WriteString(line)
		accumulated.WriteString("\n")

		// Keep reading until the input ends a statement.
		if !endsStatement(accumulated.String()) {
			continue
		}

		source := accumulated.String()
		accumulated.Reset()

		if err := sess.Exec(source); err != nil {
			printError(rl.Stderr(), err, source, "<repl>", true, color)
		}
	}
}

// endsStatement reports whether the last non-comment text in source is ';'.
func endsStatement(source string) bool {
	lines := strings.Split(strings.TrimRight(source, "\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		text := lines[i]
		if idx := strings.Index(text, "//"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return strings.HasSuffix(text, ";")
		}
	}
	return false
}

func printSymbols(w io.Writer, sess *session.Session) {
	table := sess.Table()
	for _, name := range table.Names() {
		b, _ := table.Lookup(name)
		fmt.Fprintf(w, "  %-8s %s\n", name, b)
	}
}
