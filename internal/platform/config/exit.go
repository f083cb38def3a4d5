package config

import (
	"fmt"
	"os"
)

// Exitf reports a command startup failure on stderr and exits with status 1.
// Commands call it when flags or PORTFOLIO_* variables leave nothing valid to
// run, before any log prefix is configured.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
