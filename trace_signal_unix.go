//go:build unix

package utrace

import (
	"os"

	"golang.org/x/sys/unix"
)

var toggleSignals = []os.Signal{unix.SIGUSR2}
