package utrace

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
)

// TraceState is the lifecycle state of a TraceLog.
type TraceState int32

const (
	TraceUninitialized TraceState = iota
	TraceDisabled
	TraceFile
	TraceRing
	TraceClosed
)

func (s TraceState) String() string {
	switch s {
	case TraceUninitialized:
		return "uninitialized"
	case TraceDisabled:
		return "disabled"
	case TraceFile:
		return "file"
	case TraceRing:
		return "ring"
	case TraceClosed:
		return "closed"
	default:
		return "TraceState(" + strconv.Itoa(int(s)) + ")"
	}
}

func (s TraceState) enabled() bool { return s == TraceFile || s == TraceRing }

const threadMarkerFormat = "[tid %lu]<--\n[tid %lu]-->\n"

// TraceStats reports cumulative TraceLog counters.
type TraceStats struct {
	Writes        uint64
	Bytes         uint64
	Markers       uint64
	Dropped       uint64
	Toggles       uint64
	WriteFailures uint64
}

// TraceOption customises a TraceLog.
type TraceOption func(*traceSettings)

type traceSettings struct {
	dir      string
	diag     *Diagnostics
	logger   Logger
	writerID func() uint64
	lookup   func(string) (string, bool)
	config   *TraceConfig
	signal   bool
}

// WithTraceDir places trace files in dir instead of the working directory.
func WithTraceDir(dir string) TraceOption {
	return func(s *traceSettings) {
		s.dir = dir
	}
}

// WithTraceDiagnostics renders markers and trace lines through d.
func WithTraceDiagnostics(d *Diagnostics) TraceOption {
	return func(s *traceSettings) {
		if d != nil {
			s.diag = d
		}
	}
}

// WithTraceLogger reports the log's own warnings to l.
func WithTraceLogger(l Logger) TraceOption {
	return func(s *traceSettings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWriterID overrides how the current writer is identified for thread
// markers.
func WithWriterID(fn func() uint64) TraceOption {
	return func(s *traceSettings) {
		if fn != nil {
			s.writerID = fn
		}
	}
}

// WithEnvLookup replaces os.LookupEnv when resolving UTRACE and
// UTRACE_SIGNAL.
func WithEnvLookup(fn func(string) (string, bool)) TraceOption {
	return func(s *traceSettings) {
		if fn != nil {
			s.lookup = fn
		}
	}
}

// WithTraceConfig uses cfg instead of the environment.
func WithTraceConfig(cfg TraceConfig) TraceOption {
	return func(s *traceSettings) {
		s.config = &cfg
	}
}

// WithoutSignal disables the SIGUSR2 watcher. Toggle still works.
func WithoutSignal() TraceOption {
	return func(s *traceSettings) {
		s.signal = false
	}
}

// TraceLog is a trace sink that writes either a plain file, stderr or a
// fixed-size byte ring mapped from a file. All state changes happen under
// one mutex; the toggle signal only raises a flag that the next ActiveFor
// or Write consumes.
type TraceLog struct {
	mu       sync.Mutex
	settings traceSettings
	cfg      TraceConfig
	state    TraceState
	path     string
	pid      int
	out      *ObservedWriter
	ring     ringStore
	watcher  *signalWatcher
	closed   bool
	masked   bool

	lastWriter uint64
	hasWriter  bool
	marker     [96]byte
	segs       [8][]byte

	toggleRequested atomic.Bool
	suspended       atomic.Bool

	writes   uint64
	bytes    uint64
	markers  uint64
	dropped  uint64
	toggles  uint64
	failures uint64
}

// NewTraceLog returns an uninitialised log. Configuration is read on Init,
// or lazily on the first ActiveFor or Write.
func NewTraceLog(opts ...TraceOption) *TraceLog {
	s := traceSettings{
		signal:   true,
		writerID: currentWriterID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.diag == nil {
		s.diag = Default()
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return &TraceLog{settings: s}
}

// Init reads the configuration and opens the trace output. Calling it on
// an initialised log is a no-op.
func (t *TraceLog) Init() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == TraceUninitialized {
		t.initLocked(false)
	}
}

func (t *TraceLog) resolveConfig() (TraceConfig, bool, error) {
	if t.settings.config != nil {
		return *t.settings.config, true, nil
	}
	return traceConfigFromEnv(t.settings.lookup)
}

// initLocked moves the log out of Uninitialized, Disabled or Closed. A
// forced init opens the output even for a signal-armed configuration and
// continues an existing trace file instead of truncating it.
func (t *TraceLog) initLocked(force bool) {
	cfg, ok, err := t.resolveConfig()
	if err != nil {
		t.settings.logger.Warn("utrace.config.invalid", "error", err)
		t.state = TraceDisabled
		return
	}
	if !ok {
		if !force {
			t.state = TraceDisabled
			return
		}
		cfg = TraceConfig{}
	}
	t.cfg = cfg
	if t.settings.signal && t.watcher == nil && ok {
		t.watcher = startSignalWatcher(&t.toggleRequested)
	}
	if cfg.Signal && !force {
		t.state = TraceDisabled
		return
	}
	t.openLocked(force)
}

func (t *TraceLog) openLocked(resume bool) {
	id := t.settings.diag.Identity()
	t.pid = id.Pid()
	t.hasWriter = false
	if t.cfg.Stderr {
		t.path = ""
		t.out = NewObservedWriter(os.Stderr, t.onWriteFailure)
		t.state = TraceFile
		return
	}
	name := "trace." + id.Progname() + "." + strconv.Itoa(t.pid)
	t.path = filepath.Join(t.settings.dir, name)
	flags := os.O_CREATE | os.O_RDWR
	if !resume {
		flags |= os.O_TRUNC
	}
	if t.cfg.MaxSize > 0 {
		f, err := os.OpenFile(t.path, flags, 0o644)
		if err == nil {
			var r ringStore
			if r, err = openRing(f, int(t.cfg.MaxSize), resume); err == nil {
				t.ring = r
				t.state = TraceRing
				return
			}
			_ = f.Close()
		}
		t.settings.logger.Warn("utrace.ring.unavailable", "path", t.path, "size", t.cfg.MaxSize, "error", err)
	}
	f, err := os.OpenFile(t.path, flags|os.O_APPEND, 0o644)
	if err != nil {
		t.settings.logger.Warn("utrace.file.unavailable", "path", t.path, "error", err)
		t.path = ""
		t.state = TraceDisabled
		return
	}
	t.out = NewObservedWriter(f, t.onWriteFailure)
	t.state = TraceFile
}

func (t *TraceLog) onWriteFailure(WriteFailure) {
	t.failures++
}

// teardownLocked releases the current output. The file is flushed and
// truncated to its logical length.
func (t *TraceLog) teardownLocked() error {
	var err error
	if t.ring != nil {
		err = multierr.Append(err, t.ring.close())
		t.ring = nil
	}
	if t.out != nil {
		err = multierr.Append(err, t.out.Close())
		t.out = nil
	}
	t.state = TraceClosed
	return err
}

// pollLocked applies a pending toggle, reopens after a fork and performs
// the lazy first init.
func (t *TraceLog) pollLocked() {
	if t.toggleRequested.Swap(false) {
		t.toggleLocked()
	}
	if t.state == TraceUninitialized {
		t.initLocked(false)
		return
	}
	if t.state.enabled() && t.settings.diag.Identity().Pid() != t.pid {
		t.afterForkLocked()
	}
}

// Toggle closes an enabled log, or opens a disabled or closed one.
func (t *TraceLog) Toggle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toggleLocked()
}

// RequestToggle schedules a toggle for the next ActiveFor or Write, the
// same way SIGUSR2 does.
func (t *TraceLog) RequestToggle() {
	t.toggleRequested.Store(true)
}

func (t *TraceLog) toggleLocked() {
	if t.closed {
		return
	}
	t.toggles++
	if t.state.enabled() {
		if err := t.teardownLocked(); err != nil {
			t.settings.logger.Warn("utrace.close.failed", "path", t.path, "error", err)
		}
		return
	}
	t.initLocked(true)
}

// ActiveFor reports whether a line at level would be recorded. Level -1
// is the top-level channel, active only when the threshold is zero.
func (t *TraceLog) ActiveFor(level int) bool {
	if t.suspended.Load() {
		return false
	}
	t.mu.Lock()
	t.pollLocked()
	state, threshold, masked := t.state, t.cfg.Level, t.masked
	t.mu.Unlock()
	if !state.enabled() {
		return false
	}
	if level == -1 {
		return threshold == 0
	}
	return !masked && level&0xFF >= threshold
}

// Write records segs as one unit from the calling writer.
func (t *TraceLog) Write(segs ...[]byte) error {
	return t.WriteFrom(t.settings.writerID(), segs...)
}

// WriteFrom records segs as one unit from writer id. A change of writer
// since the previous write is recorded with a single thread marker.
func (t *TraceLog) WriteFrom(id uint64, segs ...[]byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pollLocked()
	if !t.state.enabled() || t.suspended.Load() {
		t.dropped++
		return nil
	}

	bufs := t.segs[:0]
	if len(segs)+1 > len(t.segs) {
		bufs = make([][]byte, 0, len(segs)+1)
	}
	if t.hasWriter && id != t.lastWriter {
		n, err := t.settings.diag.Render(t.marker[:], threadMarkerFormat, Uint(t.lastWriter), Uint(id))
		if err == nil {
			bufs = append(bufs, t.marker[:n])
			t.markers++
		}
	}
	t.lastWriter = id
	t.hasWriter = true
	bufs = append(bufs, segs...)

	total := 0
	for _, b := range bufs {
		total += len(b)
	}
	var err error
	switch t.state {
	case TraceRing:
		for _, b := range bufs {
			t.ring.write(b)
		}
	case TraceFile:
		_, err = t.out.Writev(bufs)
	}
	clear(t.segs[:])
	t.writes++
	if err == nil {
		t.bytes += uint64(total)
		return nil
	}
	if t.forceContinueLocked() {
		return err
	}
	t.settings.logger.Warn("utrace.write.failed", "path", t.path, "error", err)
	if cerr := t.teardownLocked(); cerr != nil {
		t.settings.logger.Warn("utrace.close.failed", "path", t.path, "error", cerr)
	}
	return err
}

// ForceContinue consumes one unit of a negative test budget. It reports
// whether a failure should be ignored.
func (t *TraceLog) ForceContinue() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.forceContinueLocked()
}

func (t *TraceLog) forceContinueLocked() bool {
	if t.cfg.TestBudget >= 0 {
		return false
	}
	t.cfg.TestBudget++
	return true
}

// AfterFork releases the parent's output without modifying it and opens a
// file qualified with the current pid.
func (t *TraceLog) AfterFork() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.afterForkLocked()
}

func (t *TraceLog) afterForkLocked() {
	if !t.state.enabled() {
		return
	}
	var err error
	if t.ring != nil {
		err = t.ring.detach()
		t.ring = nil
	}
	if t.out != nil {
		err = multierr.Append(err, t.out.Close())
		t.out = nil
	}
	if err != nil {
		t.settings.logger.Warn("utrace.fork.detach.failed", "path", t.path, "error", err)
	}
	t.openLocked(true)
}

// Suspend stops recording without closing the output.
func (t *TraceLog) Suspend() { t.suspended.Store(true) }

// Resume undoes Suspend.
func (t *TraceLog) Resume() { t.suspended.Store(false) }

// SetMask masks every level except the top-level channel.
func (t *TraceLog) SetMask(masked bool) {
	t.mu.Lock()
	t.masked = masked
	t.mu.Unlock()
}

// State returns the current lifecycle state.
func (t *TraceLog) State() TraceState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Path returns the trace file path, or "" for stderr and disabled logs.
func (t *TraceLog) Path() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.path
}

// Config returns the active configuration.
func (t *TraceLog) Config() TraceConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cfg
}

// Stats returns cumulative counters.
func (t *TraceLog) Stats() TraceStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TraceStats{
		Writes:        t.writes,
		Bytes:         t.bytes,
		Markers:       t.markers,
		Dropped:       t.dropped,
		Toggles:       t.toggles,
		WriteFailures: t.failures,
	}
}

// Close flushes and closes the output and stops the signal watcher. It is
// idempotent; toggles after Close are ignored.
func (t *TraceLog) Close() error {
	t.mu.Lock()
	var err error
	if t.state.enabled() {
		err = t.teardownLocked()
	}
	t.state = TraceClosed
	t.closed = true
	w := t.watcher
	t.watcher = nil
	t.mu.Unlock()
	w.stop()
	return err
}
