//go:build unix

package utrace

import (
	"os"

	"golang.org/x/sys/unix"
)

// writev issues one gathered write, retrying on EINTR and finishing short
// writes segment by segment.
func writev(f *os.File, bufs [][]byte) (int, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return 0, err
	}
	total := 0
	for len(bufs) > 0 {
		var (
			n    int
			werr error
		)
		cerr := rc.Write(func(fd uintptr) bool {
			n, werr = unix.Writev(int(fd), bufs)
			return werr != unix.EAGAIN
		})
		if werr == unix.EINTR {
			continue
		}
		if cerr != nil {
			return total, cerr
		}
		if werr != nil {
			return total, werr
		}
		if n == 0 {
			return total, nil
		}
		total += n
		for n > 0 && len(bufs) > 0 {
			if n < len(bufs[0]) {
				bufs[0] = bufs[0][n:]
				n = 0
				break
			}
			n -= len(bufs[0])
			bufs = bufs[1:]
		}
		for len(bufs) > 0 && len(bufs[0]) == 0 {
			bufs = bufs[1:]
		}
	}
	return total, nil
}
