package utrace

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	// EnvTrace enables tracing from process start.
	EnvTrace = "UTRACE"
	// EnvTraceSignal arms tracing; SIGUSR2 turns it on and off.
	EnvTraceSignal = "UTRACE_SIGNAL"
)

// TraceConfig is the parsed form of "[-]<level> <size>[K|M|G] <test_count>".
type TraceConfig struct {
	// Active is set when the log starts capturing without a toggle.
	Active bool
	// Level is the threshold compared against the low byte of a level.
	Level int
	// MaxSize is the ring capacity in bytes; zero selects plain file mode.
	MaxSize uint32
	// TestBudget lets a negative count force continuation past write
	// failures.
	TestBudget int
	// Stderr routes output to stderr with no ring.
	Stderr bool
	// Signal marks a configuration armed through UTRACE_SIGNAL.
	Signal bool
}

// ParseTraceConfig parses the UTRACE grammar. Fields after the level are
// optional and default to zero.
func ParseTraceConfig(value string) (TraceConfig, error) {
	var cfg TraceConfig
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "-") {
		cfg.Stderr = true
		v = strings.TrimSpace(v[1:])
	}
	fields := strings.Fields(v)
	if len(fields) == 0 || len(fields) > 3 {
		return TraceConfig{}, fmt.Errorf("%w: %q: want \"<level> <size>[K|M|G] <test_count>\"", ErrBadConfig, value)
	}
	level, err := strconv.Atoi(fields[0])
	if err != nil {
		return TraceConfig{}, fmt.Errorf("%w: level %q", ErrBadConfig, fields[0])
	}
	cfg.Level = level
	if len(fields) > 1 {
		size, ok := parseTraceSize(fields[1])
		if !ok {
			return TraceConfig{}, fmt.Errorf("%w: size %q", ErrBadConfig, fields[1])
		}
		cfg.MaxSize = size
	}
	if len(fields) > 2 {
		budget, err := strconv.Atoi(fields[2])
		if err != nil {
			return TraceConfig{}, fmt.Errorf("%w: test count %q", ErrBadConfig, fields[2])
		}
		cfg.TestBudget = budget
	}
	if cfg.Stderr {
		cfg.MaxSize = 0
	}
	return cfg, nil
}

func parseTraceSize(value string) (uint32, bool) {
	mult := uint64(1)
	switch value[len(value)-1] {
	case 'k', 'K':
		mult = 1 << 10
	case 'm', 'M':
		mult = 1 << 20
	case 'g', 'G':
		mult = 1 << 30
	}
	if mult != 1 {
		value = value[:len(value)-1]
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, false
	}
	n *= mult
	if n > math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}

// traceConfigFromEnv resolves UTRACE then UTRACE_SIGNAL. ok is false when
// neither is set to a non-blank value.
func traceConfigFromEnv(lookup func(string) (string, bool)) (cfg TraceConfig, ok bool, err error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if value, found := lookup(EnvTrace); found && strings.TrimSpace(value) != "" {
		cfg, err = ParseTraceConfig(value)
		if err != nil {
			return TraceConfig{}, true, err
		}
		cfg.Active = true
		return cfg, true, nil
	}
	if value, found := lookup(EnvTraceSignal); found && strings.TrimSpace(value) != "" {
		cfg, err = ParseTraceConfig(value)
		if err != nil {
			return TraceConfig{}, true, err
		}
		cfg.Signal = true
		return cfg, true, nil
	}
	return TraceConfig{}, false, nil
}
