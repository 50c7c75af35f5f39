package utrace

// FlagSet holds the flag characters seen in one conversion.
type FlagSet uint8

const (
	FlagSpace FlagSet = 1 << iota
	FlagPlus
	FlagAlt
	FlagLeft
	FlagZero
	FlagHexPrefix
	FlagGroup
)

// Has reports whether every flag in f is set.
func (s FlagSet) Has(f FlagSet) bool { return s&f == f }

// LengthMod records the C length modifier that adjusts how the next integer
// or float argument is read.
type LengthMod uint8

const (
	LengthNone LengthMod = iota
	LengthChar
	LengthShort
	LengthLong
	LengthLongLong
	LengthLongDouble
)

// ConversionSpec is one parsed %...verb unit.
type ConversionSpec struct {
	Flags   FlagSet
	Width   int
	Prec    int
	HasPrec bool
	Length  LengthMod
	Verb    byte
}

// ParseConversion parses the conversion starting right after a '%' in
// format. Width and precision given as '*' are reported as -1 and left to
// the caller to resolve. It returns the spec and the number of bytes
// consumed, or ok=false when format ends before a verb.
func ParseConversion(format string) (spec ConversionSpec, n int, ok bool) {
	var p parser
	p.format = format
	if !p.parse(nil) {
		return spec, p.i, false
	}
	return p.spec, p.i, true
}

type parser struct {
	format string
	i      int
	spec   ConversionSpec
	err    error
}

// parse fills p.spec from p.format[p.i:]; star resolves '*' width and
// precision arguments. A nil star leaves them as -1.
func (p *parser) parse(star func() (int, error)) bool {
	p.spec = ConversionSpec{}
	f := p.format
flags:
	for p.i < len(f) {
		switch f[p.i] {
		case ' ':
			p.spec.Flags |= FlagSpace
		case '#':
			p.spec.Flags |= FlagAlt
		case '\'':
			p.spec.Flags |= FlagGroup
		case '-':
			p.spec.Flags |= FlagLeft
			p.spec.Flags &^= FlagZero
		case '+':
			p.spec.Flags |= FlagPlus
		case '0':
			if p.spec.Flags&FlagLeft == 0 {
				p.spec.Flags |= FlagZero
			}
		default:
			break flags
		}
		p.i++
	}
	if p.spec.Flags&FlagPlus != 0 {
		p.spec.Flags &^= FlagSpace
	}

	if p.i < len(f) && f[p.i] == '*' {
		p.i++
		w := -1
		if star != nil {
			var err error
			if w, err = star(); err != nil {
				p.err = err
				return false
			}
			if w < 0 {
				p.spec.Flags |= FlagLeft
				p.spec.Flags &^= FlagZero
				w = -w
			}
		}
		p.spec.Width = w
	} else {
		p.spec.Width = p.number()
	}

	if p.i < len(f) && f[p.i] == '.' {
		p.i++
		p.spec.HasPrec = true
		if p.i < len(f) && f[p.i] == '*' {
			p.i++
			prec := -1
			if star != nil {
				var err error
				if prec, err = star(); err != nil {
					p.err = err
					return false
				}
				if prec < 0 {
					p.spec.HasPrec = false
					prec = 0
				}
			}
			p.spec.Prec = prec
		} else {
			p.spec.Prec = p.number()
		}
	}

length:
	for p.i < len(f) {
		switch f[p.i] {
		case 'h':
			if p.spec.Length == LengthShort {
				p.spec.Length = LengthChar
			} else {
				p.spec.Length = LengthShort
			}
		case 'l':
			if p.spec.Length == LengthLong {
				p.spec.Length = LengthLongLong
			} else {
				p.spec.Length = LengthLong
			}
		case 'q', 'j', 'z', 't':
			p.spec.Length = LengthLongLong
		case 'L':
			p.spec.Length = LengthLongDouble
		default:
			break length
		}
		p.i++
	}

	if p.i >= len(f) {
		return false
	}
	p.spec.Verb = f[p.i]
	p.i++
	return true
}

func (p *parser) number() int {
	n := 0
	for p.i < len(p.format) {
		c := p.format[p.i]
		if c < '0' || c > '9' {
			break
		}
		if n < 1<<20 {
			n = n*10 + int(c-'0')
		}
		p.i++
	}
	return n
}
