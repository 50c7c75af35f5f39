//go:build unix

package utrace

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func errnoName(e syscall.Errno) string {
	return unix.ErrnoName(e)
}

func signalName(s syscall.Signal) string {
	return unix.SignalName(s)
}
