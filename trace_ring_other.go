//go:build !unix

package utrace

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
)

// memRing keeps the ring in memory and writes it to the trace file on
// close.
type memRing struct {
	ring
	f *os.File
}

func openRing(f *os.File, capacity int, resume bool) (ringStore, error) {
	r := &memRing{ring: ring{data: make([]byte, capacity)}, f: f}
	if resume {
		if _, err := io.ReadFull(f, r.data); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("read %s: %w", f.Name(), err)
		}
		st, err := f.Stat()
		if err != nil {
			return nil, err
		}
		r.resume(st.Size())
	}
	return r, nil
}

func (r *memRing) close() error {
	if r.data == nil {
		return nil
	}
	r.linearize()
	size := r.length()
	_, err := r.f.WriteAt(r.data[:size], 0)
	r.data = nil
	err = multierr.Append(err, r.f.Truncate(int64(size)))
	err = multierr.Append(err, r.f.Sync())
	err = multierr.Append(err, r.f.Close())
	return err
}

func (r *memRing) detach() error {
	if r.data == nil {
		return nil
	}
	r.data = nil
	return r.f.Close()
}
