package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/avask-dev/pgdoc/internal/cli"
	"github.com/avask-dev/pgdoc/pkg/pgdoc"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(pgdoc.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(pgdoc.ExitCodeForError(err))
	}
}
