//go:build linux

package utrace

import "golang.org/x/sys/unix"

func currentWriterID() uint64 { return uint64(unix.Gettid()) }
