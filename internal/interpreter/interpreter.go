/*
Package interpreter wires the lexer, parser, and evaluator into the
single entry point for running zk source: lexer, then parser, then
evaluator.
*/
package interpreter

import (
	"io"
	"os"

	"github.com/zk-lang/zk/internal/eval"
	"github.com/zk-lang/zk/internal/lexer"
	"github.com/zk-lang/zk/internal/parser"
	"github.com/zk-lang/zk/internal/zkerror"
)

// Run lexes, parses, and evaluates src, writing program output to out
// and reading readInput() lines from in. It returns the number of
// variables the top-level program block held just before it was
// popped.
func Run(src string, out io.Writer, in io.Reader) (int, *zkerror.Error) {
	tokens := lexer.Tokenize(src)
	prog, err := parser.Parse(tokens)
	if err != nil {
		return 0, err
	}
	ev := eval.New(out, in)
	return ev.RunProgram(prog)
}

// RunFile reads path and interprets it, raising FileOpenError if the
// file cannot be opened.
func RunFile(path string, out io.Writer, in io.Reader) (int, *zkerror.Error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, zkerror.Lineless(zkerror.FileOpenError, "Failed to open a file "+path)
	}
	return Run(string(data), out, in)
}
