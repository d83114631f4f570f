package cmd

import (
	"errors"
	"fmt"
)

// exitError is returned by commands to signal a specific exit code without
// printing anything. 1 = a declaration reached the error limit.
type exitError struct{ code int }

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// ExitCode extracts the exit code from an exitError.
// Returns -1 if the error is not an exitError.
func ExitCode(err error) int {
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return -1
}
