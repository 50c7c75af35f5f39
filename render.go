package utrace

import (
	"errors"
	"strings"
)

// Render formats args according to format into dst using the Default
// context and returns the number of bytes written.
func Render(dst []byte, format string, args ...Arg) (int, error) {
	return Default().Render(dst, format, args...)
}

// Format renders into the first capacity bytes of dst.
func Format(dst []byte, capacity int, format string, args ...Arg) (int, error) {
	if capacity < len(dst) {
		dst = dst[:max(capacity, 0)]
	}
	return Default().Render(dst, format, args...)
}

// Render formats args according to format into dst and returns the number
// of bytes written. Output never extends past len(dst); when it would, the
// written prefix is kept and the error wraps ErrOverflow.
func (d *Diagnostics) Render(dst []byte, format string, args ...Arg) (int, error) {
	c := Cursor{buf: dst}
	err := d.RenderTo(&c, format, args...)
	return c.pos, err
}

// Append renders onto the end of dst, growing it as needed.
func (d *Diagnostics) Append(dst []byte, format string, args ...Arg) ([]byte, error) {
	need := len(format) + 64*len(args) + 16
	for {
		start := len(dst)
		if cap(dst)-start < need {
			grown := make([]byte, start, start+need)
			copy(grown, dst)
			dst = grown
		}
		c := Cursor{buf: dst[start:cap(dst)]}
		err := d.RenderTo(&c, format, args...)
		if err == nil || !errors.Is(err, ErrOverflow) || need >= 1<<24 {
			return dst[:start+c.pos], err
		}
		need *= 2
	}
}

// Sprintf is a convenience that returns the rendering as a string.
func (d *Diagnostics) Sprintf(format string, args ...Arg) string {
	var scratch [256]byte
	out, _ := d.Append(scratch[:0], format, args...)
	return string(out)
}

// RenderTo formats into an existing cursor.
func (d *Diagnostics) RenderTo(c *Cursor, format string, args ...Arg) error {
	r := renderer{d: d, out: c, args: args}
	return r.run(format)
}

type renderer struct {
	d    *Diagnostics
	out  *Cursor
	args []Arg
	next int
	spec ConversionSpec
}

func (r *renderer) run(format string) error {
	p := parser{format: format}
	for p.i < len(format) {
		j := strings.IndexByte(format[p.i:], '%')
		if j < 0 {
			if err := r.out.writeString(format[p.i:]); err != nil {
				return &RenderError{Offset: p.i, Err: err}
			}
			return nil
		}
		if err := r.out.writeString(format[p.i : p.i+j]); err != nil {
			return &RenderError{Offset: p.i, Err: err}
		}
		start := p.i + j
		p.i = start + 1
		if !p.parse(r.starArg) {
			if p.err != nil {
				return &RenderError{Offset: start, Err: p.err}
			}
			// Dangling conversion at the end of the format.
			if err := r.out.writeString(format[start:]); err != nil {
				return &RenderError{Offset: start, Err: err}
			}
			return nil
		}
		r.spec = p.spec
		if err := r.convert(format[start:p.i]); err != nil {
			return &RenderError{Offset: start, Verb: r.spec.Verb, Err: err}
		}
	}
	return nil
}

func (r *renderer) convert(raw string) error {
	switch r.spec.Verb {
	case '%':
		return r.out.writeByte('%')
	case 'd', 'i':
		return r.signedArg()
	case 'I', 'T':
		r.spec.Length = LengthLongLong
		return r.signedArg()
	case 'u':
		return r.unsignedArg(10, false)
	case 'o':
		return r.unsignedArg(8, false)
	case 'x':
		return r.unsignedArg(16, false)
	case 'X':
		return r.unsignedArg(16, true)
	case 'B':
		return r.unsignedArg(2, false)
	case 'p':
		return r.pointerArg()
	case 'c':
		return r.charArg(false)
	case 'C':
		return r.charArg(true)
	case 's':
		return r.stringArg(false, -1)
	case 'S':
		return r.stringArg(true, r.d.stringLimit(false))
	case 'O':
		return r.stringArg(true, r.d.stringLimit(true))
	case 'v':
		return r.bytesArg(false)
	case 'V', 'J':
		return r.bytesArg(true)
	case 'e', 'E', 'f', 'F', 'g', 'G', 'a', 'A':
		return r.floatArg()
	case 'b':
		return r.boolArg()
	case 'D':
		return r.dateArg()
	case 'H':
		return r.identity(r.d.identity.Hostname())
	case 'N':
		return r.identity(r.d.identity.Progname())
	case 'U':
		return r.identity(r.d.identity.Username())
	case 'w':
		return r.identity(r.d.identity.Cwd())
	case 'P':
		return r.pid()
	case 'Q':
		return r.exitCodeArg()
	case 'R':
		return r.errnoArg()
	case 'r':
		return r.exitStatusArg()
	case 'Y':
		return r.signalArg()
	case 'W':
		return r.colorArg()
	case 'M':
		return r.dumpArg()
	default:
		// %n is deliberately unsupported; it and unknown verbs are copied
		// through unchanged without consuming an argument.
		return r.out.writeString(raw)
	}
}

func (r *renderer) arg() (Arg, error) {
	if r.next >= len(r.args) {
		return Arg{}, ErrMissingArg
	}
	a := r.args[r.next]
	r.next++
	return a, nil
}

func (r *renderer) peek() (Arg, bool) {
	if r.next >= len(r.args) {
		return Arg{}, false
	}
	return r.args[r.next], true
}

func (r *renderer) starArg() (int, error) {
	a, err := r.arg()
	if err != nil {
		return 0, err
	}
	v, ok := integerValue(a)
	if !ok {
		return 0, ErrArgKind
	}
	n := int(int32(v))
	if n > 1<<20 {
		n = 1 << 20
	} else if n < -(1 << 20) {
		n = -(1 << 20)
	}
	return n, nil
}

// integerValue returns the raw 64-bit pattern of any integer-like argument.
func integerValue(a Arg) (uint64, bool) {
	switch a.kind {
	case KindInt, KindUint, KindChar, KindPointer, KindColor, KindTime, KindBool:
		return a.num, true
	case KindNil:
		return 0, true
	default:
		return 0, false
	}
}

// emit writes prefix, dpad zeros and content padded to the field width.
func (r *renderer) emit(prefix []byte, dpad int, content []byte, zeroOK bool) error {
	spec := &r.spec
	fieldsz := len(prefix) + dpad + len(content)
	pads := max(0, spec.Width-fieldsz)
	out := r.out
	switch {
	case spec.Flags&FlagLeft != 0:
		if err := out.writeBytes(prefix); err != nil {
			return err
		}
		if err := out.fill('0', dpad); err != nil {
			return err
		}
		if err := out.writeBytes(content); err != nil {
			return err
		}
		return out.fill(' ', pads)
	case zeroOK && spec.Flags&FlagZero != 0:
		if err := out.writeBytes(prefix); err != nil {
			return err
		}
		if err := out.fill('0', pads+dpad); err != nil {
			return err
		}
		return out.writeBytes(content)
	default:
		if err := out.fill(' ', pads); err != nil {
			return err
		}
		if err := out.writeBytes(prefix); err != nil {
			return err
		}
		if err := out.fill('0', dpad); err != nil {
			return err
		}
		return out.writeBytes(content)
	}
}

// padFrom pads everything written since start to the field width with
// blanks, on the left unless left-adjusted.
func (r *renderer) padFrom(start int) error {
	pads := r.spec.Width - (r.out.pos - start)
	if pads <= 0 {
		return nil
	}
	if r.spec.Flags&FlagLeft != 0 {
		return r.out.fill(' ', pads)
	}
	return r.out.insert(start, pads, ' ')
}
