//go:build !windows

package main

import (
	"os/signal"
	"syscall"
)

// ignoreStop keeps Ctrl-Z from suspending the monitor mid-run.
func ignoreStop() {
	signal.Ignore(syscall.SIGTSTP)
}
