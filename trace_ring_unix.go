//go:build unix

package utrace

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"golang.org/x/sys/unix"
)

// mmapRing keeps the ring inside a MAP_SHARED mapping of the trace file so
// the content survives a crash of the writing process.
type mmapRing struct {
	ring
	f *os.File
}

// openRing sizes f to capacity and maps it. When resume is set the cursor
// continues after the bytes already in the file.
func openRing(f *os.File, capacity int, resume bool) (ringStore, error) {
	var existing int64
	if resume {
		st, err := f.Stat()
		if err != nil {
			return nil, err
		}
		existing = st.Size()
	}
	if err := f.Truncate(int64(capacity)); err != nil {
		return nil, fmt.Errorf("truncate %s: %w", f.Name(), err)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, capacity, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", f.Name(), err)
	}
	r := &mmapRing{ring: ring{data: data}, f: f}
	r.resume(existing)
	return r, nil
}

func (r *mmapRing) close() error {
	if r.data == nil {
		return nil
	}
	r.linearize()
	size := int64(r.length())
	err := unix.Msync(r.data, unix.MS_SYNC)
	err = multierr.Append(err, unix.Munmap(r.data))
	r.data = nil
	err = multierr.Append(err, r.f.Truncate(size))
	err = multierr.Append(err, r.f.Sync())
	err = multierr.Append(err, r.f.Close())
	return err
}

func (r *mmapRing) detach() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	return multierr.Append(err, r.f.Close())
}
