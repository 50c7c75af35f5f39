package utrace

import (
	"errors"
	"strconv"
	"strings"
	"syscall"
	"time"

	"pkt.systems/utrace/ansi"
)

// dateLayouts are the fixed layouts selected by the width of %D.
var dateLayouts = [...]string{
	0:  "%d/%m/%y",
	1:  "%d/%m/%y %T",
	2:  "%T",
	3:  "%d/%m/%Y %T",
	4:  "%a, %d %b %Y %T GMT",
	5:  "%Y/%m/%d",
	6:  "%Y/%m/%d %T",
	7:  "%d%m%y",
	8:  "%a, %d-%b-%Y %T GMT",
	9:  "%Y%m%d%H%M%S",
	10: "%d/%b/%Y:%T %z",
}

func (r *renderer) dateArg() error {
	layout := r.spec.Width
	if layout < 0 || layout >= len(dateLayouts) {
		layout = 0
	}
	format := dateLayouts[layout]
	utc := strings.HasSuffix(format, "GMT")

	var tm BrokenDownTime
	switch {
	case r.spec.Flags&FlagAlt != 0:
		a, err := r.arg()
		if err != nil {
			return err
		}
		raw, ok := integerValue(a)
		if !ok {
			return ErrArgKind
		}
		t := time.Unix(int64(raw), 0)
		if utc {
			t = t.UTC()
		} else {
			t = t.In(r.d.clock.loc)
		}
		tm = BrokenDown(t)
	case utc:
		tm = BrokenDown(r.d.nowTime().UTC())
	default:
		tm = r.d.Now()
	}
	return r.out.date(r.d.locale, &tm, format)
}

func (r *renderer) exitCodeArg() error {
	a, err := r.arg()
	if err != nil {
		return err
	}
	raw, ok := integerValue(a)
	if !ok {
		return ErrArgKind
	}
	r.d.setExitCode(int(int32(raw)))
	return nil
}

// errnoArg renders "[msg - ]ENAME (errno, text)". The message is optional:
// when the next argument is already an error it is used directly.
func (r *renderer) errnoArg() error {
	a, err := r.arg()
	if err != nil {
		return err
	}
	var msg string
	if a.kind != KindError {
		switch a.kind {
		case KindString, KindBytes:
			msg = a.str
		case KindNil:
		default:
			return ErrArgKind
		}
		if a, err = r.arg(); err != nil {
			return err
		}
		if a.kind != KindError && a.kind != KindNil {
			return ErrArgKind
		}
	}
	start := r.out.pos
	if msg != "" {
		if err := r.out.writeString(msg); err != nil {
			return err
		}
		if r.spec.Flags&FlagAlt == 0 {
			if err := r.out.writeString(" - "); err != nil {
				return err
			}
		}
	}
	if err := r.errText(a.err); err != nil {
		return err
	}
	return r.padFrom(start)
}

func (r *renderer) errText(err error) error {
	if err == nil {
		return r.out.writeString("(no error)")
	}
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return r.out.writeString(err.Error())
	}
	name := errnoName(errno)
	if name == "" {
		name = "ERRNO"
	}
	return r.describe(name, int64(errno), errno.Error())
}

// describe writes "NAME (code, text)".
func (r *renderer) describe(name string, code int64, text string) error {
	var scratch [20]byte
	out := r.out
	if err := out.writeString(name); err != nil {
		return err
	}
	if err := out.writeString(" ("); err != nil {
		return err
	}
	if err := out.writeBytes(strconv.AppendInt(scratch[:0], code, 10)); err != nil {
		return err
	}
	if err := out.writeString(", "); err != nil {
		return err
	}
	if err := out.writeString(text); err != nil {
		return err
	}
	return out.writeByte(')')
}

type exitStatus struct {
	name string
	text string
}

var exitStatuses = map[int]exitStatus{
	0:  {"EXIT_SUCCESS", "success"},
	1:  {"EXIT_FAILURE", "failure"},
	64: {"EX_USAGE", "command line usage error"},
	65: {"EX_DATAERR", "data format error"},
	66: {"EX_NOINPUT", "cannot open input"},
	67: {"EX_NOUSER", "addressee unknown"},
	68: {"EX_NOHOST", "host name unknown"},
	69: {"EX_UNAVAILABLE", "service unavailable"},
	70: {"EX_SOFTWARE", "internal software error"},
	71: {"EX_OSERR", "system error"},
	72: {"EX_OSFILE", "critical OS file missing"},
	73: {"EX_CANTCREAT", "can't create output file"},
	74: {"EX_IOERR", "input/output error"},
	75: {"EX_TEMPFAIL", "temporary failure"},
	76: {"EX_PROTOCOL", "remote error in protocol"},
	77: {"EX_NOPERM", "permission denied"},
	78: {"EX_CONFIG", "configuration error"},
}

// ExitStatusName returns the symbolic name and description of a process
// exit status.
func ExitStatusName(status int) (string, string) {
	if st, ok := exitStatuses[status]; ok {
		return st.name, st.text
	}
	if status > 128 && status < 128+65 {
		name, text := SignalName(status - 128)
		return "KILLED_BY_" + name, text
	}
	return "EXIT_UNKNOWN", "unknown status"
}

// SignalName returns the symbolic name and description of a signal number.
func SignalName(sig int) (string, string) {
	name := signalName(syscall.Signal(sig))
	if name == "" {
		name = "SIG" + strconv.Itoa(sig)
	}
	return name, syscall.Signal(sig).String()
}

func (r *renderer) exitStatusArg() error {
	a, err := r.arg()
	if err != nil {
		return err
	}
	raw, ok := integerValue(a)
	if !ok {
		return ErrArgKind
	}
	status := int(int32(raw))
	name, text := ExitStatusName(status)
	start := r.out.pos
	if err := r.describe(name, int64(status), text); err != nil {
		return err
	}
	return r.padFrom(start)
}

func (r *renderer) signalArg() error {
	a, err := r.arg()
	if err != nil {
		return err
	}
	raw, ok := integerValue(a)
	if !ok {
		return ErrArgKind
	}
	sig := int(int32(raw))
	name, text := SignalName(sig)
	start := r.out.pos
	if err := r.describe(name, int64(sig), text); err != nil {
		return err
	}
	return r.padFrom(start)
}

func (r *renderer) colorArg() error {
	a, err := r.arg()
	if err != nil {
		return err
	}
	raw, ok := integerValue(a)
	if !ok {
		return ErrArgKind
	}
	if !r.d.ColorEnabled() {
		return nil
	}
	seq, ok := ansi.ByIndex(int(int32(raw)))
	if !ok {
		return nil
	}
	return r.out.writeString(seq)
}
