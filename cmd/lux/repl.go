package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Luxbin-labs/luxbin-lang/internal/diag"
	"github.com/Luxbin-labs/luxbin-lang/internal/lexer"
	"github.com/Luxbin-labs/luxbin-lang/internal/loader"
	"github.com/Luxbin-labs/luxbin-lang/internal/parser"
	"github.com/Luxbin-labs/luxbin-lang/internal/runtime"
	"github.com/Luxbin-labs/luxbin-lang/internal/stdlib"

	"github.com/chzyer/readline"
)

// ---- ANSI colors ----

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// blockOpeners are keywords that each require a matching "end".
var blockOpeners = map[string]bool{
	"if":   true,
	"while": true,
	"for":  true,
	"func": true,
	"try":  true,
}

// blockDelta scans a line's words and returns the net change in open-block
// depth: +1 per opener keyword, -1 per "end", matching the then/do/end
// block grammar rather than the teacher's brace counting.
func blockDelta(line string) int {
	delta := 0
	for _, word := range strings.Fields(line) {
		word = strings.Trim(word, "()[]{}.,;:")
		switch {
		case blockOpeners[word]:
			delta++
		case word == "end":
			delta--
		}
	}
	return delta
}

// ---- repl command ----

func cmdRepl() {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".lux_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            colorGreen + "lux> " + colorReset,
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

	fmt.Fprintf(rl.Stdout(), "%s%slux REPL%s %s(type 'exit' or Ctrl+D to quit)%s\n\n",
		colorBold, colorCyan, colorReset, colorGray, colorReset)

	output := runtime.NewOutputBuffer()
	global := runtime.NewEnvironment(nil)
	runtime.InstallBuiltins(global, stdlib.New(output))
	ld := loader.New(global, output, runtime.DefaultStepBudget)

	printed := 0
	flushOutput := func() {
		lines := output.Lines()
		for _, line := range lines[printed:] {
			fmt.Fprintln(rl.Stdout(), line)
		}
		printed = len(lines)
	}

	var accumulated strings.Builder
	depth := 0

	for {
		if depth > 0 {
			rl.SetPrompt(colorGray + "...   " + colorReset)
		} else {
			rl.SetPrompt(colorGreen + "lux> " + colorReset)
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if depth > 0 {
					accumulated.Reset()
					depth = 0
					continue
				}
				fmt.Fprintf(rl.Stdout(), "\n%s(use 'exit' or Ctrl+D to quit)%s\n", colorGray, colorReset)
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if depth == 0 && strings.TrimSpace(line) == "exit" {
			break
		}

		depth += blockDelta(line)
		accumulated.WriteString(line)
		accumulated.WriteString("\n")

		if depth > 0 {
			continue
		}
		depth = 0

		source := accumulated.String()
		accumulated.Reset()

		if strings.TrimSpace(source) == "" {
			continue
		}

		l := lexer.New(source, "<repl>")
		tokens, lexDiags := l.Tokenize()
		if len(lexDiags) > 0 {
			printDiagsColored(rl.Stderr(), lexDiags)
			continue
		}

		p := parser.New(tokens)
		file, parseDiags := p.ParseFile()
		if len(parseDiags) > 0 {
			printDiagsColored(rl.Stderr(), parseDiags)
			continue
		}

		eval := runtime.NewEvaluator(output,
			runtime.WithGlobalEnv(global),
			runtime.WithImportFn(ld.Import),
		)
		runErr := eval.Run("<repl>", file)
		flushOutput()
		if runErr != nil {
			fmt.Fprintf(rl.Stderr(), "%serror: %s%s\n", colorRed, runErr, colorReset)
			continue
		}
	}
}

// printDiagsColored prints diagnostics with red color for REPL display.
func printDiagsColored(w io.Writer, diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s%s%s\n", colorRed, d.String(), colorReset)
	}
}
