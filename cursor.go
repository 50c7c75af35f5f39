package utrace

// Cursor is a bounded write position over a caller supplied buffer. Writes
// never extend past len(buf); a write that does not fit copies what it can
// and reports ErrOverflow.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor writing into buf from offset zero.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the number of bytes written so far.
func (c *Cursor) Len() int { return c.pos }

// Cap returns the total capacity of the destination.
func (c *Cursor) Cap() int { return len(c.buf) }

// Remaining returns the number of bytes that can still be written.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Bytes returns the written prefix of the destination.
func (c *Cursor) Bytes() []byte { return c.buf[:c.pos] }

// Reset rewinds the cursor to the start of the destination.
func (c *Cursor) Reset() { c.pos = 0 }

func (c *Cursor) writeByte(b byte) error {
	if c.pos >= len(c.buf) {
		return ErrOverflow
	}
	c.buf[c.pos] = b
	c.pos++
	return nil
}

func (c *Cursor) writeString(s string) error {
	n := copy(c.buf[c.pos:], s)
	c.pos += n
	if n < len(s) {
		return ErrOverflow
	}
	return nil
}

func (c *Cursor) writeBytes(b []byte) error {
	n := copy(c.buf[c.pos:], b)
	c.pos += n
	if n < len(b) {
		return ErrOverflow
	}
	return nil
}

func (c *Cursor) fill(b byte, n int) error {
	if n <= 0 {
		return nil
	}
	var err error
	if n > c.Remaining() {
		n = c.Remaining()
		err = ErrOverflow
	}
	dst := c.buf[c.pos : c.pos+n]
	for i := range dst {
		dst[i] = b
	}
	c.pos += n
	return err
}

// insert shifts the bytes written since start right by n and fills the gap
// with b. Used to right-align content whose width is only known after it
// has been rendered.
func (c *Cursor) insert(start, n int, b byte) error {
	if n <= 0 {
		return nil
	}
	var err error
	if n > c.Remaining() {
		n = c.Remaining()
		err = ErrOverflow
	}
	copy(c.buf[start+n:c.pos+n], c.buf[start:c.pos])
	gap := c.buf[start : start+n]
	for i := range gap {
		gap[i] = b
	}
	c.pos += n
	return err
}

func (c *Cursor) appendTwoDigits(value int) error {
	if c.Remaining() < 2 {
		return ErrOverflow
	}
	c.buf[c.pos] = byte('0' + value/10%10)
	c.buf[c.pos+1] = byte('0' + value%10)
	c.pos += 2
	return nil
}

func (c *Cursor) appendDigits(value, width int, pad byte) error {
	var scratch [20]byte
	neg := value < 0
	u := uint64(value)
	if neg {
		u = uint64(-value)
	}
	i := len(scratch)
	for {
		i--
		scratch[i] = byte('0' + u%10)
		u /= 10
		if u == 0 {
			break
		}
	}
	if neg {
		i--
		scratch[i] = '-'
	}
	if err := c.fill(pad, width-(len(scratch)-i)); err != nil {
		return err
	}
	return c.writeBytes(scratch[i:])
}
