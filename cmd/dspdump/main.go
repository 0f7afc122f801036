// Command dspdump runs a single dsp operation on a seeded test signal or a
// WAV file and prints the result.
//
// Usage:
//
//	dspdump [flags] <command> [command flags]
//
// Numeric output is line-per-sample in text mode; complex values print as
// re,im. Exit status is 0 on success, 1 on a runtime failure and 2 on an
// argument error.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/dspcore/cmd/dspdump/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}
