package utrace

import (
	"errors"
	"testing"
)

func TestCursorWritesWithinCapacity(t *testing.T) {
	c := NewCursor(make([]byte, 5))
	if err := c.writeString("abc"); err != nil {
		t.Fatalf("writeString: %v", err)
	}
	if c.Len() != 3 || c.Remaining() != 2 || c.Cap() != 5 {
		t.Fatalf("unexpected cursor state len=%d remaining=%d", c.Len(), c.Remaining())
	}
	if err := c.writeString("def"); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	if got := string(c.Bytes()); got != "abcde" {
		t.Fatalf("partial write: got %q", got)
	}
	if err := c.writeByte('x'); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow on full cursor, got %v", err)
	}
	c.Reset()
	if c.Len() != 0 {
		t.Fatalf("Reset did not rewind")
	}
}

func TestCursorFillAndInsert(t *testing.T) {
	c := NewCursor(make([]byte, 8))
	_ = c.writeString("ab")
	start := c.Len()
	_ = c.writeString("cd")
	if err := c.insert(start, 3, ' '); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := string(c.Bytes()); got != "ab   cd" {
		t.Fatalf("insert: got %q", got)
	}
	if err := c.fill('-', 4); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected fill overflow, got %v", err)
	}
	if got := string(c.Bytes()); got != "ab   cd-" {
		t.Fatalf("fill: got %q", got)
	}
}

func TestCursorDigits(t *testing.T) {
	c := NewCursor(make([]byte, 16))
	_ = c.appendTwoDigits(7)
	_ = c.appendDigits(42, 4, '0')
	_ = c.appendDigits(-5, 3, ' ')
	if got := string(c.Bytes()); got != "070042 -5" {
		t.Fatalf("digits: got %q", got)
	}
}
