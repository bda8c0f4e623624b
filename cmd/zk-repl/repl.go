/*
Package main implements zk-repl, a supplemental interactive read-eval-
print loop for the zk language, built on readline for line editing and
history and fatih/color for its banner and diagnostics.

This binary is a convenience addition alongside cmd/zk, not a
replacement for it: zk-repl never gates or changes cmd/zk's own
documented command-line behavior.
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/zk-lang/zk/internal/eval"
	"github.com/zk-lang/zk/internal/lexer"
	"github.com/zk-lang/zk/internal/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const (
	version = "1.0.0"
	prompt  = "zk >>> "
	line    = "----------------------------------------------------------------"
	banner  = "zk — a small statically-typed, dynamically-scoped scripting language"
)

func main() {
	printBanner(os.Stdout)

	rl, err := readline.New(prompt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()

	ev := eval.New(os.Stdout, bufio.NewReader(os.Stdin))
	ev.Env.EnterBlock(false) // one persistent top-level block for the whole session

	for {
		input, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(os.Stdout, "Good bye!")
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == ".exit" {
			fmt.Fprintln(os.Stdout, "Good bye!")
			return
		}
		rl.SaveHistory(input)

		evalLine(ev, input, os.Stdout)
	}
}

// evalLine lexes and parses one REPL line, then runs its statements in
// the session's persistent top-level block, printing either the
// produced output or a red diagnostic.
// Unlike zk's file mode, a failing line does not end the session.
func evalLine(ev *eval.Evaluator, input string, out io.Writer) {
	defer func() {
		if r := recover(); r != nil {
			redColor.Fprintf(out, "[panic] %v\n", r)
		}
	}()

	prog, perr := parser.Parse(lexer.Tokenize(input))
	if perr != nil {
		redColor.Fprintln(out, perr)
		return
	}
	if _, err := ev.RunStatements(prog.Statements); err != nil {
		redColor.Fprintln(out, err)
		return
	}
}

func printBanner(out io.Writer) {
	blueColor.Fprintln(out, line)
	greenColor.Fprintln(out, banner)
	blueColor.Fprintln(out, line)
	yellowColor.Fprintf(out, "Version: %s\n", version)
	blueColor.Fprintln(out, line)
	cyanColor.Fprintln(out, "Type zk statements and press enter.")
	cyanColor.Fprintln(out, "Type '.exit' to quit.")
	blueColor.Fprintln(out, line)
}
