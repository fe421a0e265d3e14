package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes. "Findings exist" is distinct from operational failure so CI
// can tell a dirty tree from a broken invocation.
const (
	exitOK       = 0
	exitFindings = 1
	exitError    = 2
)

func main() {
	err := Execute()
	switch {
	case err == nil:
		os.Exit(exitOK)
	case errors.Is(err, errFindings):
		os.Exit(exitFindings)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitError)
	}
}
