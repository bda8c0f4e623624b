/*
Command zk is the primary entry point for the zk interpreter: a single
positional argument naming a .zk script, plus three substring-matched
flags (help, version, init). It deliberately does not reach for a
flag-parsing library (cobra, urfave/cli, pflag) since the documented
behavior is a fixed substring matcher over one argument, not a
conventional flag grammar.
*/
package main

import (
	"strings"

	"github.com/zk-lang/zk/internal/zkerror"
)

// classification is the result of inspecting the program's single
// command-line argument.
type classification struct {
	arg     string
	help    bool
	version bool
	init    bool
}

// classify implements zk's CLI contract: zero arguments or more than
// one argument is always an error; a lone argument is carried as arg
// and independently inspected for the substrings "help", "version",
// and "init" — more than one may match (e.g. "help.zk" sets both arg
// and help, and is not treated as a conflict).
func classify(args []string) (classification, *zkerror.Error) {
	switch {
	case len(args) == 0:
		return classification{}, zkerror.Lineless(zkerror.CLIError, "No argument was given.")
	case len(args) > 1:
		return classification{}, zkerror.Lineless(zkerror.CLIError, "Too many arguments.")
	}

	arg := args[0]
	return classification{
		arg:     arg,
		help:    strings.Contains(arg, "help"),
		version: strings.Contains(arg, "version"),
		init:    strings.Contains(arg, "init"),
	}, nil
}
