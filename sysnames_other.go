//go:build !unix

package utrace

import "syscall"

func errnoName(syscall.Errno) string { return "" }

func signalName(syscall.Signal) string { return "" }
