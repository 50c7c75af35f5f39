//go:build unix

package main

import "golang.org/x/sys/unix"

func sendToggle(pid int) error {
	return unix.Kill(pid, unix.SIGUSR2)
}
