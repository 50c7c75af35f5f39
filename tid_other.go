//go:build !linux

package utrace

func currentWriterID() uint64 { return 0 }
