package main

import (
	"errors"

	"github.com/google/shlex"
)

var errBadQuoting = errors.New("unterminated quote or escape")

// splitArgs splits an input line into words with shell quoting and escaping rules.
// A word starting with # comments out the rest of the line.
func splitArgs(line string) ([]string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, errBadQuoting
	}
	if len(args) == 0 {
		return nil, nil
	}
	return args, nil
}
