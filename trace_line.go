package utrace

import (
	"sync"

	"go.uber.org/multierr"
)

const (
	lineBufferDefaultCap = 1024
	lineBufferMaxCap     = 64 << 10
)

// lineBuffer holds one rendered trace line. Buffers are pooled; oversized
// ones are dropped on release.
type lineBuffer struct {
	buf []byte
}

var lineBufferPool = sync.Pool{
	New: func() any {
		return &lineBuffer{buf: make([]byte, 0, lineBufferDefaultCap)}
	},
}

func acquireLineBuffer() *lineBuffer {
	lb := lineBufferPool.Get().(*lineBuffer)
	lb.buf = lb.buf[:0]
	return lb
}

func releaseLineBuffer(lb *lineBuffer) {
	if cap(lb.buf) > lineBufferMaxCap {
		lb.buf = make([]byte, 0, lineBufferDefaultCap)
	} else {
		lb.buf = lb.buf[:0]
	}
	lineBufferPool.Put(lb)
}

// Line renders format at the current indentation depth, appends a newline
// and writes it when level is active. A rendering error still writes the
// part rendered so far.
func (t *TraceLog) Line(level int, format string, args ...Arg) error {
	if !t.ActiveFor(level) {
		return nil
	}
	d := t.settings.diag
	lb := acquireLineBuffer()
	defer releaseLineBuffer(lb)
	lb.buf = append(lb.buf, d.indentPrefix()...)
	var err error
	lb.buf, err = d.Append(lb.buf, format, args...)
	lb.buf = append(lb.buf, '\n')
	return multierr.Append(err, t.Write(lb.buf))
}

var (
	defaultTraceOnce sync.Once
	defaultTrace     *TraceLog
)

// DefaultTrace returns the process-wide trace log, configured from UTRACE
// and UTRACE_SIGNAL on first use.
func DefaultTrace() *TraceLog {
	defaultTraceOnce.Do(func() {
		defaultTrace = NewTraceLog()
	})
	return defaultTrace
}

// TraceLine writes one line to DefaultTrace.
func TraceLine(level int, format string, args ...Arg) error {
	return DefaultTrace().Line(level, format, args...)
}
