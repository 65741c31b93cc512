package main

import (
	"fmt"
)

// sugarFlags are the parameters that must never appear after the
// --options/--cmd separators.
var sugarFlags = []string{
	"--verbose",
	"--version",
	"--dry-run",
	"--service-group",
	"--group",
	"--services",
	"--service",
	"--all",
	"--config-file",
}

// extractTrailingArgs splits the --options and --cmd token groups out of the
// command line before the parser sees it. Everything after --options up to
// --cmd (or the end) is forwarded to the backend verbatim, and everything
// after --cmd becomes the command argument list.
func extractTrailingArgs(args []string) (rest, options, cmdArgs []string, err error) {
	optionsIdx := indexOf(args, "--options")
	cmdIdx := indexOf(args, "--cmd")

	if optionsIdx < 0 && cmdIdx < 0 {
		return args, nil, nil, nil
	}

	firstSep := len(args)
	if optionsIdx >= 0 && optionsIdx < firstSep {
		firstSep = optionsIdx
	}
	if cmdIdx >= 0 && cmdIdx < firstSep {
		firstSep = cmdIdx
	}

	for _, flag := range sugarFlags {
		idx := indexOf(args, flag)
		if idx >= 0 && idx > firstSep {
			return nil, nil, nil, fmt.Errorf(
				"The parameters --options/--cmd should be the last ones in the command line.")
		}
	}

	if optionsIdx < 0 {
		optionsIdx = len(args)
	}
	if cmdIdx < 0 {
		cmdIdx = len(args)
	}

	if optionsIdx < cmdIdx {
		options = args[optionsIdx+1 : cmdIdx]
		if cmdIdx < len(args) {
			cmdArgs = args[cmdIdx+1:]
		}
	} else {
		cmdArgs = args[cmdIdx+1 : optionsIdx]
		if optionsIdx < len(args) {
			options = args[optionsIdx+1:]
		}
	}
	return args[:firstSep], options, cmdArgs, nil
}

func indexOf(args []string, flag string) int {
	for i, a := range args {
		if a == flag {
			return i
		}
	}
	return -1
}
