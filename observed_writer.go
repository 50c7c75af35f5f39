package utrace

import (
	"io"
	"os"
	"sync/atomic"
)

// WriteFailure describes one failed write observed by ObservedWriter.
type WriteFailure struct {
	Err       error
	Written   int
	Attempted int
}

// ObservedWriterStats captures aggregated failure counters for ObservedWriter.
type ObservedWriterStats struct {
	Writes      uint64
	Failures    uint64
	ShortWrites uint64
}

// ObservedWriter wraps an io.Writer and records write failures so dropped
// trace output can be observed without changing the fire-and-forget write
// path. When dst is an *os.File, Writev issues a single gathered write.
type ObservedWriter struct {
	dst        io.Writer
	onFailure  func(WriteFailure)
	writes     atomic.Uint64
	failures   atomic.Uint64
	shortWrite atomic.Uint64
}

// NewObservedWriter wraps dst with failure observation hooks.
func NewObservedWriter(dst io.Writer, onFailure func(WriteFailure)) *ObservedWriter {
	if dst == nil {
		dst = io.Discard
	}
	return &ObservedWriter{
		dst:       dst,
		onFailure: onFailure,
	}
}

func (w *ObservedWriter) Write(p []byte) (int, error) {
	if w == nil || w.dst == nil {
		return len(p), nil
	}
	n, err := w.dst.Write(p)
	return n, w.observe(n, len(p), err)
}

// Writev writes bufs in order as one gathered write where the platform
// allows it.
func (w *ObservedWriter) Writev(bufs [][]byte) (int, error) {
	if w == nil || w.dst == nil {
		return 0, nil
	}
	total := 0
	for _, b := range bufs {
		total += len(b)
	}
	var (
		n   int
		err error
	)
	if f, ok := w.dst.(*os.File); ok {
		n, err = writev(f, bufs)
	} else {
		for _, b := range bufs {
			var m int
			m, err = w.dst.Write(b)
			n += m
			if err != nil {
				break
			}
		}
	}
	return n, w.observe(n, total, err)
}

func (w *ObservedWriter) observe(n, attempted int, err error) error {
	w.writes.Add(1)
	if n != attempted {
		w.shortWrite.Add(1)
		if err == nil {
			err = io.ErrShortWrite
		}
	}
	if err != nil {
		w.failures.Add(1)
		if w.onFailure != nil {
			w.onFailure(WriteFailure{
				Err:       err,
				Written:   n,
				Attempted: attempted,
			})
		}
	}
	return err
}

// Stats returns cumulative counters.
func (w *ObservedWriter) Stats() ObservedWriterStats {
	if w == nil {
		return ObservedWriterStats{}
	}
	return ObservedWriterStats{
		Writes:      w.writes.Load(),
		Failures:    w.failures.Load(),
		ShortWrites: w.shortWrite.Load(),
	}
}

// Close closes the wrapped destination unless it is stdout or stderr.
func (w *ObservedWriter) Close() error {
	if w == nil || w.dst == nil || w.dst == os.Stdout || w.dst == os.Stderr {
		return nil
	}
	if c, ok := w.dst.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
