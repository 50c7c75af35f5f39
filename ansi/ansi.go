// Package ansi holds the terminal escape sequences selected by the %W
// conversion. Index 0 resets styling; the remaining slots cover the eight
// normal and eight bright foreground colours plus bold and faint. The table
// can be swapped with SetTable, for example to map the slots onto a
// 256-colour scheme.
package ansi

import (
	"strings"
	"sync"
)

// Reset is the ANSI escape code that clears all terminal styling; the
// remaining constants expose the sequences of the default table.
const (
	Reset         = "\x1b[0m"
	Black         = "\x1b[30m"
	Red           = "\x1b[31m"
	Green         = "\x1b[32m"
	Yellow        = "\x1b[33m"
	Blue          = "\x1b[34m"
	Magenta       = "\x1b[35m"
	Cyan          = "\x1b[36m"
	White         = "\x1b[37m"
	BrightBlack   = "\x1b[1;30m"
	BrightRed     = "\x1b[1;31m"
	BrightGreen   = "\x1b[1;32m"
	BrightYellow  = "\x1b[1;33m"
	BrightBlue    = "\x1b[1;34m"
	BrightMagenta = "\x1b[1;35m"
	BrightCyan    = "\x1b[1;36m"
	BrightWhite   = "\x1b[1;37m"
	Bold          = "\x1b[1m"
	Faint         = "\x1b[90m"
)

// Slot indexes of the table, in %W argument order.
const (
	IndexReset = iota
	IndexBlack
	IndexRed
	IndexGreen
	IndexYellow
	IndexBlue
	IndexMagenta
	IndexCyan
	IndexWhite
	IndexBrightBlack
	IndexBrightRed
	IndexBrightGreen
	IndexBrightYellow
	IndexBrightBlue
	IndexBrightMagenta
	IndexBrightCyan
	IndexBrightWhite
	IndexBold
	IndexFaint
	Slots
)

// Table is the input type to SetTable.
type Table [Slots]string

// Default is the table in effect at start-up.
var Default = Table{
	Reset, Black, Red, Green, Yellow, Blue, Magenta, Cyan, White,
	BrightBlack, BrightRed, BrightGreen, BrightYellow, BrightBlue,
	BrightMagenta, BrightCyan, BrightWhite, Bold, Faint,
}

var names = [Slots]string{
	"reset", "black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-black", "bright-red", "bright-green", "bright-yellow", "bright-blue",
	"bright-magenta", "bright-cyan", "bright-white", "bold", "faint",
}

var (
	tableMu sync.RWMutex
	current = Default
)

// SetTable replaces the active table. Empty entries keep their current
// value.
//
//	before := ansi.Snapshot()
//	defer ansi.SetTable(before)
func SetTable(t Table) {
	tableMu.Lock()
	defer tableMu.Unlock()
	for i, seq := range t {
		if seq != "" {
			current[i] = seq
		}
	}
}

// Snapshot returns the active table.
func Snapshot() Table {
	tableMu.RLock()
	defer tableMu.RUnlock()
	return current
}

// ByIndex returns the sequence in slot i.
func ByIndex(i int) (string, bool) {
	if i < 0 || i >= Slots {
		return "", false
	}
	tableMu.RLock()
	seq := current[i]
	tableMu.RUnlock()
	return seq, true
}

// IndexByName resolves a colour name such as "red", "bright_red" or
// "Bright Red" to its slot.
func IndexByName(name string) (int, bool) {
	s := strings.TrimSpace(strings.ToLower(name))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	for i, n := range names {
		if n == s {
			return i, true
		}
	}
	return 0, false
}
