package utrace

// ring is a raw byte ring over a fixed arena. Records carry no framing; a
// write that crosses the end of the arena continues at offset zero.
type ring struct {
	data    []byte
	cursor  int
	wrapped bool
}

// resume positions the cursor for a file that already holds size bytes.
func (r *ring) resume(size int64) {
	c := int64(len(r.data))
	if c == 0 {
		return
	}
	if size >= c {
		r.cursor = int(size % c)
		r.wrapped = true
		return
	}
	r.cursor = int(max(size, 0))
}

func (r *ring) write(p []byte) {
	c := len(r.data)
	if c == 0 || len(p) == 0 {
		return
	}
	// Only the last c bytes of an oversized segment can survive; they land
	// where a byte-by-byte copy would have put them.
	if n := len(p); n > c {
		r.cursor = (r.cursor + n - c) % c
		p = p[n-c:]
		r.wrapped = true
	}
	n := copy(r.data[r.cursor:], p)
	if n < len(p) {
		r.cursor = copy(r.data, p[n:])
		r.wrapped = true
		return
	}
	r.cursor += n
	if r.cursor == c {
		r.cursor = 0
		r.wrapped = true
	}
}

// linearize rotates a wrapped arena in place so the oldest byte sits at
// offset zero and the cursor is back at the start.
func (r *ring) linearize() {
	if !r.wrapped || r.cursor == 0 {
		return
	}
	reverseBytes(r.data[:r.cursor])
	reverseBytes(r.data[r.cursor:])
	reverseBytes(r.data)
	r.cursor = 0
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// length is the logical size of the ring content: the cursor until the
// first wrap, the whole arena afterwards.
func (r *ring) length() int {
	if r.wrapped {
		return len(r.data)
	}
	return r.cursor
}

// ringStore persists a ring into its backing file.
type ringStore interface {
	write(p []byte)
	length() int
	// close flushes the ring in stream order, truncates the file to the
	// logical length and closes it.
	close() error
	// detach releases the ring without touching the file content.
	detach() error
}
