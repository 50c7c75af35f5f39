//go:build !unix

package main

import "errors"

func sendToggle(int) error {
	return errors.New("trace toggle signal is not supported on this platform")
}
