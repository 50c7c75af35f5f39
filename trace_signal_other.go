//go:build !unix

package utrace

import "os"

var toggleSignals []os.Signal
