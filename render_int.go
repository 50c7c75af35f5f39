package utrace

import "unicode/utf8"

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)

func (r *renderer) signedArg() error {
	a, err := r.arg()
	if err != nil {
		return err
	}
	raw, ok := integerValue(a)
	if !ok {
		return ErrArgKind
	}
	var v int64
	switch r.spec.Length {
	case LengthChar:
		v = int64(int8(raw))
	case LengthShort:
		v = int64(int16(raw))
	case LengthLong, LengthLongLong, LengthLongDouble:
		v = int64(raw)
	default:
		v = int64(int32(raw))
	}
	if v < 0 {
		return r.integer(uint64(^v)+1, true, 10, false, true)
	}
	return r.integer(uint64(v), false, 10, false, true)
}

func (r *renderer) unsignedArg(base uint64, upper bool) error {
	a, err := r.arg()
	if err != nil {
		return err
	}
	raw, ok := integerValue(a)
	if !ok {
		return ErrArgKind
	}
	switch r.spec.Length {
	case LengthChar:
		raw = uint64(uint8(raw))
	case LengthShort:
		raw = uint64(uint16(raw))
	case LengthLong, LengthLongLong, LengthLongDouble:
	default:
		raw = uint64(uint32(raw))
	}
	return r.integer(raw, false, base, upper, false)
}

func (r *renderer) pointerArg() error {
	a, err := r.arg()
	if err != nil {
		return err
	}
	raw, ok := integerValue(a)
	if !ok {
		return ErrArgKind
	}
	if raw == 0 {
		start := r.out.pos
		if err := r.out.writeString("(nil)"); err != nil {
			return err
		}
		return r.padFrom(start)
	}
	r.spec.Flags |= FlagAlt
	return r.integer(raw, false, 16, false, false)
}

// integer is the shared integer core. Digits are built backwards into a
// scratch buffer from the least significant one; neg carries the sign of
// a value already reduced to its magnitude.
func (r *renderer) integer(u uint64, neg bool, base uint64, upper bool, signed bool) error {
	var scratch [96]byte
	spec := &r.spec
	digits := lowerDigits
	if upper {
		digits = upperDigits
	}
	nonzero := u != 0
	i := len(scratch)
	if nonzero || !spec.HasPrec || spec.Prec != 0 {
		group := spec.Flags&FlagGroup != 0 && base == 10
		n := 0
		for {
			if group && n > 0 && n%3 == 0 {
				i--
				scratch[i] = ','
			}
			i--
			scratch[i] = digits[u%base]
			u /= base
			n++
			if u == 0 {
				break
			}
		}
	}
	content := scratch[i:]

	var prefixBuf [3]byte
	prefix := prefixBuf[:0]
	if signed {
		switch {
		case neg:
			prefix = append(prefix, '-')
		case spec.Flags&FlagPlus != 0:
			prefix = append(prefix, '+')
		case spec.Flags&FlagSpace != 0:
			prefix = append(prefix, ' ')
		}
	}

	dpad := 0
	if spec.HasPrec && spec.Prec > len(content) {
		dpad = spec.Prec - len(content)
	}
	if spec.Flags&FlagAlt != 0 {
		switch base {
		case 8:
			if dpad == 0 && (len(content) == 0 || content[0] != '0') {
				dpad = 1
			}
		case 16:
			if nonzero {
				r.spec.Flags |= FlagHexPrefix
				if upper {
					prefix = append(prefix, '0', 'X')
				} else {
					prefix = append(prefix, '0', 'x')
				}
			}
		case 2:
			if nonzero {
				prefix = append(prefix, '0', 'b')
			}
		}
	}
	// An explicit precision disables zero padding, as in C.
	return r.emit(prefix, dpad, content, !spec.HasPrec)
}

func (r *renderer) charArg(quoted bool) error {
	a, err := r.arg()
	if err != nil {
		return err
	}
	raw, ok := integerValue(a)
	if !ok {
		return ErrArgKind
	}
	var scratch [utf8.UTFMax + 6]byte
	var content []byte
	ch := rune(int32(raw))
	switch {
	case quoted:
		content = append(scratch[:0], '\'')
		if ch >= 0 && ch < 0x100 {
			if ch == '\'' {
				content = append(content, '\\', '\'')
			} else {
				content = append(content, cEscapes[byte(ch)]...)
			}
		} else {
			content = utf8.AppendRune(content, ch)
		}
		content = append(content, '\'')
	case a.kind == KindChar && ch >= utf8.RuneSelf:
		content = utf8.AppendRune(scratch[:0], ch)
	default:
		content = append(scratch[:0], byte(raw))
	}
	return r.emit(nil, 0, content, false)
}

func (r *renderer) boolArg() error {
	a, err := r.arg()
	if err != nil {
		return err
	}
	raw, ok := integerValue(a)
	if !ok {
		return ErrArgKind
	}
	s := "false"
	if raw != 0 {
		s = "true"
	}
	start := r.out.pos
	if err := r.out.writeString(s); err != nil {
		return err
	}
	return r.padFrom(start)
}
