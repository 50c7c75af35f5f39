package utrace

import "strconv"

// cEscapes maps every byte to its C-escaped spelling inside a quoted
// string. Printable ASCII maps to itself.
var cEscapes = func() [256]string {
	var table [256]string
	for i := range 256 {
		c := byte(i)
		switch {
		case c == '"':
			table[i] = `\"`
		case c == '\\':
			table[i] = `\\`
		case c == '\n':
			table[i] = `\n`
		case c == '\t':
			table[i] = `\t`
		case c == '\r':
			table[i] = `\r`
		case c == '\b':
			table[i] = `\b`
		case c == '\f':
			table[i] = `\f`
		case c == '\v':
			table[i] = `\v`
		case c == '\a':
			table[i] = `\a`
		case c < 0x20 || c >= 0x7f:
			table[i] = string([]byte{'\\', '0' + c>>6, '0' + (c>>3)&7, '0' + c&7})
		default:
			table[i] = string([]byte{c})
		}
	}
	return table
}()

func isPrint(c byte) bool {
	return c >= 0x20 && c < 0x7f
}

const (
	ellipsis = "..."
	// stringTailReserve is the headroom kept free in the destination while
	// escaping so the ellipsis and closing quote always fit.
	stringTailReserve = 60
)

func (r *renderer) stringArg(quoted bool, limit int) error {
	a, err := r.arg()
	if err != nil {
		return err
	}
	switch a.kind {
	case KindString, KindBytes:
		return r.str(a.str, quoted, limit)
	case KindNil:
		return r.str("(null)", false, -1)
	case KindError:
		if a.err == nil {
			return r.str("(null)", false, -1)
		}
		return r.str(a.err.Error(), quoted, limit)
	default:
		return ErrArgKind
	}
}

func (r *renderer) bytesArg(quoted bool) error {
	limit := -1
	if quoted {
		limit = r.d.stringLimit(false)
	}
	return r.stringArg(quoted, limit)
}

func (r *renderer) identity(s string) error {
	return r.str(s, false, -1)
}

func (r *renderer) pid() error {
	var scratch [20]byte
	b := strconv.AppendInt(scratch[:0], int64(r.d.identity.Pid()), 10)
	return r.str(bytesToString(b), false, -1)
}

// str is the shared string core. Unquoted output is a raw copy bounded by
// the precision; quoted output is C-escaped, capped at limit and the
// precision, and marks truncation with an ellipsis before the closing
// quote.
func (r *renderer) str(s string, quoted bool, limit int) error {
	spec := &r.spec
	n := len(s)
	truncated := false
	if quoted && limit >= 0 && n > limit {
		n = limit
		truncated = true
	}
	if spec.HasPrec && spec.Prec < n {
		n = spec.Prec
		truncated = true
	}
	start := r.out.pos
	if !quoted {
		if err := r.out.writeString(s[:n]); err != nil {
			return err
		}
		return r.padFrom(start)
	}

	out := r.out
	reserve := stringTailReserve
	if out.Cap() < 2*stringTailReserve {
		reserve = len(ellipsis) + 1
	}
	if err := out.writeByte('"'); err != nil {
		return err
	}
	if spec.Flags&FlagAlt != 0 && n > 0 && !isPrint(s[0]) {
		for i := range n {
			if out.Remaining() < 2+reserve {
				truncated = true
				break
			}
			c := s[i]
			out.buf[out.pos] = lowerDigits[c>>4]
			out.buf[out.pos+1] = lowerDigits[c&0x0f]
			out.pos += 2
		}
	} else {
		for i := 0; i < n; {
			if safe := firstEscapeIndex(s[i:n]); safe > 0 {
				room := out.Remaining() - reserve
				if room < safe {
					if room > 0 {
						out.pos += copy(out.buf[out.pos:], s[i:i+room])
					}
					truncated = true
					break
				}
				out.pos += copy(out.buf[out.pos:], s[i:i+safe])
				i += safe
				continue
			}
			esc := cEscapes[s[i]]
			if out.Remaining() < len(esc)+reserve {
				truncated = true
				break
			}
			out.pos += copy(out.buf[out.pos:], esc)
			i++
		}
	}
	if truncated {
		if err := out.writeString(ellipsis); err != nil {
			return err
		}
	}
	if err := out.writeByte('"'); err != nil {
		return err
	}
	return r.padFrom(start)
}

// dumpArg renders a bounded hex dump of a byte blob, sixteen bytes per row.
func (r *renderer) dumpArg() error {
	a, err := r.arg()
	if err != nil {
		return err
	}
	if a.kind != KindBytes && a.kind != KindString {
		return ErrArgKind
	}
	s := a.str
	limit := r.d.stringLimit(false)
	if r.spec.HasPrec {
		limit = r.spec.Prec
	}
	if len(s) > limit {
		s = s[:limit]
	}
	out := r.out
	for off := 0; off < len(s); off += 16 {
		row := s[off:min(off+16, len(s))]
		if off > 0 {
			if err := out.writeByte('\n'); err != nil {
				return err
			}
		}
		if err := r.hex4(off); err != nil {
			return err
		}
		if err := out.writeString("  "); err != nil {
			return err
		}
		for i := range 16 {
			if i < len(row) {
				if err := out.writeByte(lowerDigits[row[i]>>4]); err != nil {
					return err
				}
				if err := out.writeByte(lowerDigits[row[i]&0x0f]); err != nil {
					return err
				}
			} else if err := out.writeString("  "); err != nil {
				return err
			}
			if err := out.writeByte(' '); err != nil {
				return err
			}
		}
		if err := out.writeByte('|'); err != nil {
			return err
		}
		for i := range len(row) {
			c := row[i]
			if !isPrint(c) {
				c = '.'
			}
			if err := out.writeByte(c); err != nil {
				return err
			}
		}
		if err := out.writeByte('|'); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) hex4(v int) error {
	for shift := 12; shift >= 0; shift -= 4 {
		if err := r.out.writeByte(lowerDigits[(v>>shift)&0x0f]); err != nil {
			return err
		}
	}
	return nil
}
