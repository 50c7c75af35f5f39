package utrace

import (
	"fmt"
	"math"
	"strconv"
)

const defaultFloatPrec = 6

func (r *renderer) floatArg() error {
	a, err := r.arg()
	if err != nil {
		return err
	}
	var f float64
	switch a.kind {
	case KindFloat, KindLongDouble:
		f = a.float()
	case KindInt:
		f = float64(int64(a.num))
	case KindUint:
		f = float64(a.num)
	default:
		return ErrArgKind
	}
	verb := r.spec.Verb
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return r.nonFinite(f, verb)
	}
	switch verb {
	case 'a', 'A':
		return r.hexFloat(f, verb == 'A')
	}

	var scratch [64]byte
	spec := &r.spec
	fmtVerb := verb
	if fmtVerb == 'F' {
		fmtVerb = 'f'
	}
	if spec.Flags&^FlagGroup == 0 && spec.Width == 0 && !spec.HasPrec {
		return r.out.writeBytes(strconv.AppendFloat(scratch[:0], f, fmtVerb, defaultFloatPrec, 64))
	}

	// Everything else goes through a synthesised verb such as
	// "%#0-+ *.*g" so flag, width and precision handling stays exact.
	var verbBuf [12]byte
	v := append(verbBuf[:0], '%')
	if spec.Flags&FlagAlt != 0 {
		v = append(v, '#')
	}
	if spec.Flags&FlagZero != 0 {
		v = append(v, '0')
	}
	if spec.Flags&FlagLeft != 0 {
		v = append(v, '-')
	}
	if spec.Flags&FlagPlus != 0 {
		v = append(v, '+')
	}
	if spec.Flags&FlagSpace != 0 {
		v = append(v, ' ')
	}
	v = append(v, '*', '.', '*', fmtVerb)
	prec := defaultFloatPrec
	if spec.HasPrec {
		prec = spec.Prec
	}
	return r.out.writeBytes(fmt.Appendf(scratch[:0], string(v), spec.Width, prec, f))
}

// nonFinite renders inf and nan the C way: lower case for e f g a, upper
// case for E F G A, never zero padded.
func (r *renderer) nonFinite(f float64, verb byte) error {
	upper := verb == 'E' || verb == 'F' || verb == 'G' || verb == 'A'
	var prefix []byte
	switch {
	case math.Signbit(f) && !math.IsNaN(f):
		prefix = []byte{'-'}
	case r.spec.Flags&FlagPlus != 0:
		prefix = []byte{'+'}
	case r.spec.Flags&FlagSpace != 0:
		prefix = []byte{' '}
	}
	var word string
	switch {
	case math.IsNaN(f) && upper:
		word = "NAN"
	case math.IsNaN(f):
		word = "nan"
	case upper:
		word = "INF"
	default:
		word = "inf"
	}
	var scratch [3]byte
	return r.emit(prefix, 0, append(scratch[:0], word...), false)
}

// hexFloat renders %a and %A. strconv spells the exponent with at least two
// digits; C uses as few as needed.
func (r *renderer) hexFloat(f float64, upper bool) error {
	var scratch [64]byte
	prec := -1
	if r.spec.HasPrec {
		prec = r.spec.Prec
	}
	var b []byte
	if a := math.Abs(f); a != 0 && a < 0x1p-1022 {
		b = appendSubnormalHex(scratch[:0], math.Float64bits(a)&(1<<52-1), prec)
	} else {
		b = strconv.AppendFloat(scratch[:0], a, 'x', prec, 64)
		// b is "0x" mantissa "p" sign exponent.
		if p := indexByte(b, 'p'); p >= 0 && p+3 < len(b) && b[p+2] == '0' {
			b = append(b[:p+2], b[p+3:]...)
		}
	}
	if r.spec.Flags&FlagAlt != 0 && indexByte(b, '.') < 0 {
		if p := indexByte(b, 'p'); p >= 0 {
			b = append(b[:p+1], b[p:]...)
			b[p] = '.'
		}
	}
	if upper {
		for i, c := range b {
			if c >= 'a' && c <= 'z' {
				b[i] = c - 'a' + 'A'
			}
		}
	}
	var prefixBuf [3]byte
	prefix := prefixBuf[:0]
	switch {
	case math.Signbit(f):
		prefix = append(prefix, '-')
	case r.spec.Flags&FlagPlus != 0:
		prefix = append(prefix, '+')
	case r.spec.Flags&FlagSpace != 0:
		prefix = append(prefix, ' ')
	}
	prefix = append(prefix, b[0], b[1])
	return r.emit(prefix, 0, b[2:], true)
}

// appendSubnormalHex spells a denormal the way C does: a "0x0." mantissa
// over the fixed exponent p-1022 instead of a normalised one. prec < 0
// keeps every significant digit.
func appendSubnormalHex(b []byte, mant uint64, prec int) []byte {
	const digits = 13
	n := digits
	lead := byte('0')
	if prec >= 0 && prec < digits {
		shift := uint(4 * (digits - prec))
		half := uint64(1) << (shift - 1)
		rem := mant & (1<<shift - 1)
		mant >>= shift
		if rem > half || (rem == half && mant&1 == 1) {
			mant++
		}
		n = prec
		if mant>>(4*uint(n)) != 0 {
			lead = '1'
			mant &= 1<<(4*uint(n)) - 1
		}
	}
	var frac [digits]byte
	for i := range n {
		frac[i] = "0123456789abcdef"[mant>>(4*uint(n-1-i))&0xf]
	}
	end := n
	if prec < 0 {
		for end > 0 && frac[end-1] == '0' {
			end--
		}
	}
	b = append(b, '0', 'x', lead)
	if end > 0 || prec > digits {
		b = append(b, '.')
		b = append(b, frac[:end]...)
		for i := digits; i < prec; i++ {
			b = append(b, '0')
		}
	}
	return append(b, "p-1022"...)
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}
