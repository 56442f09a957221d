// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"strings"
)

// options is the process-wide configuration parsed once from argv, owned
// by main and threaded explicitly into the engine (§9 "Global mutable
// state" — the engine itself never reads ambient state).
type options struct {
	renameMap   map[string]string
	output      string
	files       []string
	debug       bool
	noSort      bool
	noClobber   bool
	pageSize    uint64
	alwaysWrite bool

	printNeeded bool
	printRPath  bool
}

func parseArgs(argv []string) (*options, error) {
	opts := &options{renameMap: make(map[string]string)}

	i := 0
	next := func(flag string) (string, error) {
		i++
		if i >= len(argv) {
			return "", fmt.Errorf("%s requires an argument", flag)
		}
		return argv[i], nil
	}

	for ; i < len(argv); i++ {
		arg := argv[i]
		switch arg {
		case "--replace-needed":
			old, err := next(arg)
			if err != nil {
				return nil, err
			}
			newName, err := next(arg)
			if err != nil {
				return nil, err
			}
			opts.renameMap[old] = newName
		case "--output":
			val, err := next(arg)
			if err != nil {
				return nil, err
			}
			resolved, err := resolveArgfile(val)
			if err != nil {
				return nil, err
			}
			opts.output = resolved
		case "--debug":
			opts.debug = true
		case "--no-sort":
			opts.noSort = true
		case "--no-clobber":
			opts.noClobber = true
		case "--page-size":
			val, err := next(arg)
			if err != nil {
				return nil, err
			}
			var pageSize uint64
			if _, err := fmt.Sscanf(val, "0x%x", &pageSize); err != nil {
				if _, err := fmt.Sscanf(val, "%d", &pageSize); err != nil {
					return nil, fmt.Errorf("--page-size: invalid value %q", val)
				}
			}
			opts.pageSize = pageSize
		case "--always-write":
			opts.alwaysWrite = true
		case "--print-needed":
			opts.printNeeded = true
		case "--print-rpath":
			opts.printRPath = true
		default:
			if strings.HasPrefix(arg, "--") {
				return nil, fmt.Errorf("unrecognized option %q", arg)
			}
			opts.files = append(opts.files, arg)
		}
	}

	if opts.output != "" && len(opts.files) != 1 {
		return nil, fmt.Errorf("--output is only permitted with a single input file")
	}
	if len(opts.files) == 0 {
		return nil, fmt.Errorf("no input files given")
	}

	return opts, nil
}

// resolveArgfile implements the @PATH convention: an --output value of the
// form @PATH reads the actual option value from file PATH.
func resolveArgfile(val string) (string, error) {
	if !strings.HasPrefix(val, "@") {
		return val, nil
	}
	content, err := os.ReadFile(val[1:])
	if err != nil {
		return "", fmt.Errorf("reading argfile %s: %w", val, err)
	}
	return strings.TrimSpace(string(content)), nil
}
