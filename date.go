package utrace

import "time"

// BrokenDownTime is a calendar time split into fields, the input of the
// date renderer.
type BrokenDownTime struct {
	Year   int
	Month  int // 1..12
	Day    int // 1..31
	Hour   int
	Min    int
	Sec    int
	Wday   int // 0 = Sunday
	Yday   int // 0..365
	Offset int // seconds east of UTC
	Zone   string
}

// BrokenDown splits t in its own location.
func BrokenDown(t time.Time) BrokenDownTime {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	zone, offset := t.Zone()
	return BrokenDownTime{
		Year:   year,
		Month:  int(month),
		Day:    day,
		Hour:   hour,
		Min:    minute,
		Sec:    sec,
		Wday:   int(t.Weekday()),
		Yday:   t.YearDay() - 1,
		Offset: offset,
		Zone:   zone,
	}
}

// Locale selects the month and day names.
type Locale uint8

const (
	LocaleEnglish Locale = iota
	LocaleItalian
)

var (
	dayNames = [2][7]string{
		{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		{"Domenica", "Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato"},
	}
	dayAbbr = [2][7]string{
		{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		{"Dom", "Lun", "Mar", "Mer", "Gio", "Ven", "Sab"},
	}
	monthNames = [2][12]string{
		{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		{"Gennaio", "Febbraio", "Marzo", "Aprile", "Maggio", "Giugno", "Luglio", "Agosto", "Settembre", "Ottobre", "Novembre", "Dicembre"},
	}
	monthAbbr = [2][12]string{
		{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		{"Gen", "Feb", "Mar", "Apr", "Mag", "Giu", "Lug", "Ago", "Set", "Ott", "Nov", "Dic"},
	}
)

func (l Locale) index() int {
	if l == LocaleItalian {
		return 1
	}
	return 0
}

// RenderDate renders tm into dst following the strftime-like format and
// returns the number of bytes written.
func RenderDate(dst []byte, tm BrokenDownTime, format string) (int, error) {
	return RenderDateLocale(dst, LocaleEnglish, tm, format)
}

// RenderDateLocale is RenderDate with explicit month and day names.
func RenderDateLocale(dst []byte, loc Locale, tm BrokenDownTime, format string) (int, error) {
	c := Cursor{buf: dst}
	err := c.date(loc, &tm, format)
	return c.pos, err
}

// AppendDate appends the rendering of tm to dst, growing it as needed.
func AppendDate(dst []byte, loc Locale, tm BrokenDownTime, format string) []byte {
	need := len(format)*4 + 32
	for {
		start := len(dst)
		if cap(dst)-start < need {
			grown := make([]byte, start, start+need)
			copy(grown, dst)
			dst = grown
		}
		c := Cursor{buf: dst[start:cap(dst)]}
		if err := c.date(loc, &tm, format); err == nil {
			return dst[:start+c.pos]
		}
		need *= 2
	}
}

func (c *Cursor) date(loc Locale, tm *BrokenDownTime, format string) error {
	li := loc.index()
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' || i+1 == len(format) {
			if err := c.writeByte(ch); err != nil {
				return err
			}
			continue
		}
		i++
		if err := c.dateVerb(li, tm, format[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cursor) dateVerb(li int, tm *BrokenDownTime, verb byte) error {
	switch verb {
	case 'a':
		return c.writeString(dayAbbr[li][clampIndex(tm.Wday, 7)])
	case 'A':
		return c.writeString(dayNames[li][clampIndex(tm.Wday, 7)])
	case 'b', 'h':
		return c.writeString(monthAbbr[li][clampIndex(tm.Month-1, 12)])
	case 'B':
		return c.writeString(monthNames[li][clampIndex(tm.Month-1, 12)])
	case 'c':
		return c.date(Locale(li), tm, "%a %b %e %H:%M:%S %Y")
	case 'd':
		return c.appendTwoDigits(tm.Day)
	case 'e':
		if tm.Day < 10 {
			if err := c.writeByte(' '); err != nil {
				return err
			}
			return c.writeByte(byte('0' + tm.Day))
		}
		return c.appendTwoDigits(tm.Day)
	case 'H':
		return c.appendTwoDigits(tm.Hour)
	case 'I':
		h := tm.Hour % 12
		if h == 0 {
			h = 12
		}
		return c.appendTwoDigits(h)
	case 'j':
		return c.appendDigits(tm.Yday+1, 3, '0')
	case 'm':
		return c.appendTwoDigits(tm.Month)
	case 'M':
		return c.appendTwoDigits(tm.Min)
	case 'p':
		if tm.Hour < 12 {
			return c.writeString("AM")
		}
		return c.writeString("PM")
	case 'S':
		return c.appendTwoDigits(tm.Sec)
	case 'T', 'X':
		if err := c.appendTwoDigits(tm.Hour); err != nil {
			return err
		}
		if err := c.writeByte(':'); err != nil {
			return err
		}
		if err := c.appendTwoDigits(tm.Min); err != nil {
			return err
		}
		if err := c.writeByte(':'); err != nil {
			return err
		}
		return c.appendTwoDigits(tm.Sec)
	case 'U':
		return c.appendTwoDigits((tm.Yday + 7 - tm.Wday) / 7)
	case 'W':
		return c.appendTwoDigits((tm.Yday + 7 - (tm.Wday+6)%7) / 7)
	case 'w':
		return c.writeByte(byte('0' + clampIndex(tm.Wday, 7)))
	case 'x':
		return c.date(Locale(li), tm, "%m/%d/%y")
	case 'y':
		return c.appendTwoDigits(((tm.Year % 100) + 100) % 100)
	case 'Y':
		return c.appendDigits(tm.Year, 4, '0')
	case 'z':
		off := tm.Offset
		sign := byte('+')
		if off < 0 {
			sign = '-'
			off = -off
		}
		if err := c.writeByte(sign); err != nil {
			return err
		}
		if err := c.appendTwoDigits(off / 3600); err != nil {
			return err
		}
		return c.appendTwoDigits(off % 3600 / 60)
	case 'Z':
		return c.writeString(tm.Zone)
	case '%':
		return c.writeByte('%')
	default:
		if err := c.writeByte('%'); err != nil {
			return err
		}
		return c.writeByte(verb)
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
