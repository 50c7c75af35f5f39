package utrace

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultStringMax bounds quoted string conversions when no global
	// maximum has been set.
	DefaultStringMax = 128
	// DefaultTempStringMax bounds the %O temp-string conversion.
	DefaultTempStringMax = 4096
	// MaxIndent is the deepest indentation TraceLine renders.
	MaxIndent = 256
)

var tabs = strings.Repeat("\t", MaxIndent)

// Diagnostics is the process context shared by the renderers and the trace
// log: process identity, locale, the string length cap, the deferred exit
// code set by %Q, colour capability and the indentation depth. All methods
// are safe for concurrent use.
type Diagnostics struct {
	identity ProcessIdentity
	locale   Locale
	clock    *clock

	stringMax atomic.Int32
	exitCode  atomic.Int32
	exitSet   atomic.Bool
	color     atomic.Bool
	depth     atomic.Int32
}

// Option customises a Diagnostics built by New.
type Option func(*diagnosticsConfig)

type diagnosticsConfig struct {
	identity ProcessIdentity
	locale   Locale
	location *time.Location
	color    *bool
}

// WithIdentity overrides the process identity. Defaults to SystemIdentity.
func WithIdentity(id ProcessIdentity) Option {
	return func(cfg *diagnosticsConfig) {
		cfg.identity = id
	}
}

// WithLocale selects the month and day names used by %D and the date
// renderer.
func WithLocale(l Locale) Option {
	return func(cfg *diagnosticsConfig) {
		cfg.locale = l
	}
}

// WithLocation sets the zone used for the cached now. Defaults to
// time.Local.
func WithLocation(loc *time.Location) Option {
	return func(cfg *diagnosticsConfig) {
		cfg.location = loc
	}
}

// WithColor forces %W on or off regardless of terminal detection.
func WithColor(enabled bool) Option {
	return func(cfg *diagnosticsConfig) {
		cfg.color = &enabled
	}
}

// New builds a Diagnostics context.
func New(opts ...Option) *Diagnostics {
	cfg := diagnosticsConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.identity == nil {
		cfg.identity = SystemIdentity()
	}
	d := &Diagnostics{
		identity: cfg.identity,
		locale:   cfg.locale,
		clock:    newClock(cfg.identity.Now, cfg.location),
	}
	if cfg.color != nil {
		d.color.Store(*cfg.color)
	} else {
		d.color.Store(colorCapable(cfg.identity.IsTty()))
	}
	return d
}

var (
	defaultOnce sync.Once
	defaultDiag *Diagnostics
)

// Default returns the lazily built process-wide Diagnostics.
func Default() *Diagnostics {
	defaultOnce.Do(func() {
		defaultDiag = New()
	})
	return defaultDiag
}

// Identity returns the process identity the context renders.
func (d *Diagnostics) Identity() ProcessIdentity { return d.identity }

// Locale returns the configured locale.
func (d *Diagnostics) Locale() Locale { return d.locale }

// SetStringMax sets the global cap for quoted string conversions. Zero or a
// negative value restores the defaults.
func (d *Diagnostics) SetStringMax(n int) {
	if n < 0 {
		n = 0
	}
	d.stringMax.Store(int32(min(n, 1<<30)))
}

func (d *Diagnostics) stringLimit(temp bool) int {
	if n := int(d.stringMax.Load()); n > 0 {
		return n
	}
	if temp {
		return DefaultTempStringMax
	}
	return DefaultStringMax
}

// ExitCode returns the exit code deferred by a %Q conversion and whether
// one was set.
func (d *Diagnostics) ExitCode() (int, bool) {
	return int(d.exitCode.Load()), d.exitSet.Load()
}

func (d *Diagnostics) setExitCode(code int) {
	d.exitCode.Store(int32(code))
	d.exitSet.Store(true)
}

// SetColor toggles %W output.
func (d *Diagnostics) SetColor(enabled bool) { d.color.Store(enabled) }

// ColorEnabled reports whether %W emits escapes.
func (d *Diagnostics) ColorEnabled() bool { return d.color.Load() }

// Indent increments the nesting depth prepended by TraceLine and returns
// the new depth.
func (d *Diagnostics) Indent() int {
	for {
		cur := d.depth.Load()
		if cur >= MaxIndent {
			return MaxIndent
		}
		if d.depth.CompareAndSwap(cur, cur+1) {
			return int(cur + 1)
		}
	}
}

// Dedent decrements the nesting depth and returns the new depth.
func (d *Diagnostics) Dedent() int {
	for {
		cur := d.depth.Load()
		if cur <= 0 {
			return 0
		}
		if d.depth.CompareAndSwap(cur, cur-1) {
			return int(cur - 1)
		}
	}
}

// Depth returns the current nesting depth.
func (d *Diagnostics) Depth() int { return int(d.depth.Load()) }

func (d *Diagnostics) indentPrefix() string {
	return tabs[:d.Depth()]
}

// Now returns the cached wall clock in broken-down form.
func (d *Diagnostics) Now() BrokenDownTime {
	return d.clock.current().tm
}

func (d *Diagnostics) nowTime() time.Time {
	return d.clock.current().t
}

// Close stops the clock refresher.
func (d *Diagnostics) Close() {
	d.clock.close()
}
