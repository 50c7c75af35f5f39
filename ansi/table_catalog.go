package ansi

import (
	"sort"
	"strings"
)

// Xterm256 maps the colour slots onto the xterm 256-colour cube.
var Xterm256 = Table{
	Reset,
	"\x1b[38;5;0m", "\x1b[38;5;1m", "\x1b[38;5;2m", "\x1b[38;5;3m",
	"\x1b[38;5;4m", "\x1b[38;5;5m", "\x1b[38;5;6m", "\x1b[38;5;7m",
	"\x1b[38;5;8m", "\x1b[38;5;9m", "\x1b[38;5;10m", "\x1b[38;5;11m",
	"\x1b[38;5;12m", "\x1b[38;5;13m", "\x1b[38;5;14m", "\x1b[38;5;15m",
	Bold, "\x1b[38;5;244m",
}

// Aixterm spells the bright slots with the 90-97 codes instead of bold.
var Aixterm = Table{
	Reset, Black, Red, Green, Yellow, Blue, Magenta, Cyan, White,
	"\x1b[90m", "\x1b[91m", "\x1b[92m", "\x1b[93m",
	"\x1b[94m", "\x1b[95m", "\x1b[96m", "\x1b[97m",
	Bold, "\x1b[2m",
}

var namedTables = map[string]*Table{
	"default":  &Default,
	"xterm256": &Xterm256,
	"aixterm":  &Aixterm,
}

var tableAliases = map[string]string{
	"xterm-256":       "xterm256",
	"xterm-256color":  "xterm256",
	"256":             "xterm256",
	"256color":        "xterm256",
	"bright":          "aixterm",
	"ansi":            "default",
	"ansi16":          "default",
	"16":              "default",
	"16color":         "default",
	"xterm-16color":   "default",
	"aixterm-16color": "aixterm",
}

// TableByName resolves a built-in table by name. Names are
// case-insensitive; unknown names report false.
func TableByName(name string) (Table, bool) {
	s := normalizeTableName(name)
	if s == "" {
		return Default, true
	}
	if canonical, ok := tableAliases[s]; ok {
		s = canonical
	}
	if t, ok := namedTables[s]; ok {
		return *t, true
	}
	return Table{}, false
}

// AvailableTableNames returns the canonical built-in table names in sorted
// order.
func AvailableTableNames() []string {
	out := make([]string, 0, len(namedTables))
	for name := range namedTables {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normalizeTableName(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}
