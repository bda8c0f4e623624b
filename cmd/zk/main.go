/*
Command zk interprets .zk scripts.

Usage:

	zk script.zk
	zk help
	zk version
	zk init

Banners and help text use fatih/color (cyan for information, green for
banners); the one diagnostic line ("Error[<Kind>]: At line: <N>.
<message>") is always written plain, with no colour codes mixed in, so
its format can never drift.
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/zk-lang/zk/internal/interpreter"
	"github.com/zk-lang/zk/internal/zkerror"
)

const version = "1.0.0"

const initTemplate = "def main() -> null {\n    println(\"Hello Pimpki!\");\n}\nmain();"

const banner = `
 ▄████  ██ ▄█
██   █  ██▐██
▀███▄  ▄█▀▐█▀
    ▀█ ▄█  ██
▀████▀ ██  ▀▀
`

var (
	cyanColor  = color.New(color.FgCyan)
	greenColor = color.New(color.FgGreen)
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Stdin))
}

func run(args []string, stdout, stderr *os.File, stdin *os.File) int {
	c, cliErr := classify(args)
	if cliErr != nil {
		report(stderr, cliErr)
		return -1
	}

	switch {
	case c.help:
		printHelp(stdout)
		return 0
	case c.version:
		cyanColor.Fprintf(stdout, "Version: %s\n", version)
		return 0
	case c.init:
		return runInit(stdout, stderr)
	default:
		return runFile(c.arg, stdout, stderr, stdin)
	}
}

func runFile(path string, stdout, stderr *os.File, stdin *os.File) int {
	if _, err := interpreter.RunFile(path, stdout, stdin); err != nil {
		report(stderr, err)
		return -1
	}
	return 0
}

func runInit(stdout, stderr *os.File) int {
	if err := os.WriteFile("main.zk", []byte(initTemplate), 0o644); err != nil {
		report(stderr, zkerror.Lineless(zkerror.FileOpenError, "Failed to open a file main.zk"))
		return -1
	}
	cyanColor.Fprintln(stdout, "Wrote main.zk")
	return 0
}

func printHelp(stdout *os.File) {
	greenColor.Fprintln(stdout, banner)
	cyanColor.Fprintln(stdout, "zk — an interpreter for the zk scripting language")
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintln(stdout, "  zk <script.zk>   interpret a script")
	fmt.Fprintln(stdout, "  zk help          show this help text")
	fmt.Fprintln(stdout, "  zk version       show the interpreter version")
	fmt.Fprintln(stdout, "  zk init          write a starter main.zk in the current directory")
}

// report prints the canonical diagnostic line to stderr. It is always
// plain text — colour is reserved for banners and help text, never for
// this line, so the format is never perturbed.
func report(stderr *os.File, err *zkerror.Error) {
	fmt.Fprintln(stderr, err)
}
