package utrace

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"pkt.systems/utrace/ansi"
)

var testIdentity = StaticIdentity{
	PID:     4242,
	Host:    "box",
	User:    "ops",
	Dir:     "/srv/app",
	Program: "app",
	Clock: func() time.Time {
		return time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	},
}

func testDiagnostics(t *testing.T, opts ...Option) *Diagnostics {
	t.Helper()
	base := []Option{WithIdentity(testIdentity), WithLocation(time.UTC), WithColor(false)}
	d := New(append(base, opts...)...)
	t.Cleanup(d.Close)
	return d
}

func renderString(t *testing.T, d *Diagnostics, format string, args ...Arg) string {
	t.Helper()
	var buf [512]byte
	n, err := d.Render(buf[:], format, args...)
	if err != nil {
		t.Fatalf("Render(%q): %v", format, err)
	}
	return string(buf[:n])
}

type renderCase struct {
	name   string
	format string
	args   []Arg
	want   string
}

func runRenderCases(t *testing.T, d *Diagnostics, cases []renderCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderString(t, d, tc.format, tc.args...); got != tc.want {
				t.Fatalf("Render(%q) = %q, want %q", tc.format, got, tc.want)
			}
		})
	}
}

func TestRenderGoldens(t *testing.T) {
	var buf [256]byte
	cases := []struct {
		format string
		args   []Arg
		want   string
	}{
		{"%'d", []Arg{Int(1000000)}, "1,000,000"},
		{"%5.2f|%-5d|", []Arg{Float(3.14159), Int(7)}, " 3.14|7    |"},
		{"%b %b", []Arg{Bool(true), Bool(false)}, "true false"},
		{"%.*S", []Arg{Int(3), Str("hello")}, `"hel..."`},
	}
	for _, tc := range cases {
		n, err := Render(buf[:], tc.format, tc.args...)
		if err != nil {
			t.Fatalf("Render(%q): %v", tc.format, err)
		}
		if got := string(buf[:n]); got != tc.want {
			t.Fatalf("Render(%q) = %q, want %q", tc.format, got, tc.want)
		}
	}
}

func TestRenderIntegers(t *testing.T) {
	d := testDiagnostics(t)
	runRenderCases(t, d, []renderCase{
		{"plain", "%d", []Arg{Int(-42)}, "-42"},
		{"alias i", "%i", []Arg{Int(17)}, "17"},
		{"width", "%5d", []Arg{Int(42)}, "   42"},
		{"left", "%-5d|", []Arg{Int(42)}, "42   |"},
		{"zero pad negative", "%05d", []Arg{Int(-42)}, "-0042"},
		{"plus", "%+d", []Arg{Int(42)}, "+42"},
		{"space", "% d", []Arg{Int(42)}, " 42"},
		{"plus beats space", "%+ d", []Arg{Int(42)}, "+42"},
		{"precision", "%.3d", []Arg{Int(7)}, "007"},
		{"width and precision", "%8.3d", []Arg{Int(-7)}, "    -007"},
		{"precision disables zero", "%08.3d", []Arg{Int(7)}, "     007"},
		{"zero precision zero value", "%.0d|", []Arg{Int(0)}, "|"},
		{"zero precision with width", "%5.0d|", []Arg{Int(0)}, "     |"},
		{"left ignores zero", "%-05d|", []Arg{Int(3)}, "3    |"},
		{"hex", "%x", []Arg{Int(255)}, "ff"},
		{"hex upper", "%X", []Arg{Int(255)}, "FF"},
		{"hex alt", "%#x", []Arg{Int(255)}, "0xff"},
		{"hex alt upper", "%#X", []Arg{Int(255)}, "0XFF"},
		{"hex alt zero", "%#x", []Arg{Int(0)}, "0"},
		{"hex alt zero pad", "%#08x", []Arg{Int(255)}, "0x0000ff"},
		{"hex alt left", "%-#8x|", []Arg{Int(255)}, "0xff    |"},
		{"octal", "%o", []Arg{Int(8)}, "10"},
		{"octal alt", "%#o", []Arg{Int(8)}, "010"},
		{"octal alt zero", "%#o", []Arg{Int(0)}, "0"},
		{"octal alt precision", "%#.3o", []Arg{Int(8)}, "010"},
		{"unsigned wraps int", "%u", []Arg{Int(-1)}, "4294967295"},
		{"unsigned long", "%lu", []Arg{Int(-1)}, "18446744073709551615"},
		{"hh narrows", "%hhd", []Arg{Int(255)}, "-1"},
		{"h narrows", "%hd", []Arg{Int(65535)}, "-1"},
		{"hhu narrows", "%hhu", []Arg{Int(256)}, "0"},
		{"int truncates", "%d", []Arg{Int(1 << 32)}, "0"},
		{"long long min", "%lld", []Arg{Int(math.MinInt64)}, "-9223372036854775808"},
		{"j z t q", "%jd %zd %td %qd", []Arg{Int(1 << 33), Int(1 << 33), Int(1 << 33), Int(1 << 33)}, "8589934592 8589934592 8589934592 8589934592"},
		{"star width", "%*d", []Arg{Int(6), Int(42)}, "    42"},
		{"negative star width", "%*d|", []Arg{Int(-6), Int(42)}, "42    |"},
		{"negative star precision", "%.*d", []Arg{Int(-1), Int(5)}, "5"},
		{"grouping negative", "%'d", []Arg{Int(-1234567)}, "-1,234,567"},
		{"grouping small", "%'d", []Arg{Int(999)}, "999"},
		{"grouping width", "%'10d|", []Arg{Int(1234567)}, " 1,234,567|"},
		{"grouping unsigned", "%'lu", []Arg{Uint(18446744073709551615)}, "18,446,744,073,709,551,615"},
		{"grouping ignores hex", "%'x", []Arg{Int(0x123456)}, "123456"},
		{"binary", "%B", []Arg{Int(5)}, "101"},
		{"binary alt", "%#B", []Arg{Int(5)}, "0b101"},
		{"off_t", "%I", []Arg{Int(1 << 40)}, "1099511627776"},
		{"time_t", "%T", []Arg{Int(-(1 << 40))}, "-1099511627776"},
		{"pointer", "%p", []Arg{Pointer(0x1000)}, "0x1000"},
		{"nil pointer", "%8p|", []Arg{Pointer(0)}, "   (nil)|"},
		{"bool as int", "%d", []Arg{Bool(true)}, "1"},
		{"uint arg", "%d", []Arg{Uint(7)}, "7"},
	})
}

func TestRenderStrings(t *testing.T) {
	d := testDiagnostics(t)
	long := strings.Repeat("x", 200)
	runRenderCases(t, d, []renderCase{
		{"plain", "%s", []Arg{Str("hi")}, "hi"},
		{"width", "%5s|", []Arg{Str("hi")}, "   hi|"},
		{"left", "%-5s|", []Arg{Str("hi")}, "hi   |"},
		{"precision", "%.1s", []Arg{Str("hi")}, "h"},
		{"unquoted is raw", "%s", []Arg{Str("a\n\"b")}, "a\n\"b"},
		{"unquoted is not capped", "%s", []Arg{Str(long)}, long},
		{"null", "%s", []Arg{Nil()}, "(null)"},
		{"error", "%s", []Arg{Err(errors.New("boom"))}, "boom"},
		{"quoted", "%S", []Arg{Str("a\"b\n")}, `"a\"b\n"`},
		{"quoted control", "%S", []Arg{Str("\x01\x7f")}, `"\001\177"`},
		{"quoted capped", "%S", []Arg{Str(long)}, `"` + strings.Repeat("x", DefaultStringMax) + `..."`},
		{"quoted width", "%8S|", []Arg{Str("ab")}, `    "ab"|`},
		{"temp string", "%O", []Arg{Str(long)}, `"` + long + `"`},
		{"hex bytes", "%#S", []Arg{Bytes([]byte{0, 1, 0xff})}, `"0001ff"`},
		{"alt printable stays escaped", "%#S", []Arg{Str("ok")}, `"ok"`},
		{"bytes raw", "%v", []Arg{Bytes([]byte("raw\n"))}, "raw\n"},
		{"bytes quoted", "%V", []Arg{Bytes([]byte("raw\n"))}, `"raw\n"`},
		{"blob", "%J", []Arg{Bytes([]byte("a\tb"))}, `"a\tb"`},
		{"char", "%c", []Arg{Char('A')}, "A"},
		{"char width", "%3c|", []Arg{Char('A')}, "  A|"},
		{"char utf8", "%c", []Arg{Char('é')}, "é"},
		{"char from int", "%c", []Arg{Int('z')}, "z"},
		{"quoted char", "%C", []Arg{Char('\n')}, `'\n'`},
		{"quoted quote", "%C", []Arg{Char('\'')}, `'\''`},
		{"percent", "100%%", nil, "100%"},
		{"n is literal", "%n%d", []Arg{Int(5)}, "%n5"},
		{"unknown verb", "%k|%d", []Arg{Int(1)}, "%k|1"},
		{"dangling percent", "abc%", nil, "abc%"},
		{"dangling flags", "abc%-", nil, "abc%-"},
	})
}

func TestRenderStringMax(t *testing.T) {
	d := testDiagnostics(t)
	d.SetStringMax(4)
	if got := renderString(t, d, "%S", Str("abcdefgh")); got != `"abcd..."` {
		t.Fatalf("capped quoted string: got %q", got)
	}
	if got := renderString(t, d, "%s", Str("abcdefgh")); got != "abcdefgh" {
		t.Fatalf("unquoted string must ignore the cap: got %q", got)
	}
	d.SetStringMax(0)
	if got := renderString(t, d, "%S", Str("abcdefgh")); got != `"abcdefgh"` {
		t.Fatalf("default cap: got %q", got)
	}
}

func TestRenderQuotedTruncatesNearEnd(t *testing.T) {
	d := testDiagnostics(t)
	buf := make([]byte, 200)
	n, err := d.Render(buf, "%O", Str(strings.Repeat("y", 400)))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := string(buf[:n])
	if !strings.HasSuffix(got, `..."`) {
		t.Fatalf("expected ellipsis before closing quote, got %q", got)
	}
	if n > len(buf)-stringTailReserve+len(ellipsis)+1 {
		t.Fatalf("tail reserve not kept: wrote %d of %d", n, len(buf))
	}
}

func TestRenderFloats(t *testing.T) {
	d := testDiagnostics(t)
	runRenderCases(t, d, []renderCase{
		{"default f", "%f", []Arg{Float(3.14159)}, "3.141590"},
		{"default e", "%e", []Arg{Float(1234.56)}, "1.234560e+03"},
		{"default E", "%E", []Arg{Float(1234.56)}, "1.234560E+03"},
		{"default g", "%g", []Arg{Float(0.0001)}, "0.0001"},
		{"g exponent", "%g", []Arg{Float(1e6)}, "1e+06"},
		{"F", "%F", []Arg{Float(2.5)}, "2.500000"},
		{"precision e", "%.3e", []Arg{Float(1234.56)}, "1.235e+03"},
		{"plus", "%+.1f", []Arg{Float(2)}, "+2.0"},
		{"zero pad", "%08.2f", []Arg{Float(-3.14159)}, "-0003.14"},
		{"left", "%-8.2f|", []Arg{Float(3.14159)}, "3.14    |"},
		{"long double", "%Lf", []Arg{LongDouble(0.5)}, "0.500000"},
		{"int as float", "%.1f", []Arg{Int(3)}, "3.0"},
		{"grouping ignored", "%'f", []Arg{Float(1234.5)}, "1234.500000"},
		{"inf", "%f", []Arg{Float(math.Inf(1))}, "inf"},
		{"INF", "%F", []Arg{Float(math.Inf(1))}, "INF"},
		{"nan width", "%5f|", []Arg{Float(math.NaN())}, "  nan|"},
		{"nan zero pad", "%05f|", []Arg{Float(math.NaN())}, "  nan|"},
		{"neg inf left", "%-6f|", []Arg{Float(math.Inf(-1))}, "-inf  |"},
		{"plus inf", "%+e", []Arg{Float(math.Inf(1))}, "+inf"},
		{"hex float", "%a", []Arg{Float(1)}, "0x1p+0"},
		{"hex float upper", "%A", []Arg{Float(1)}, "0X1P+0"},
		{"hex float negative", "%a", []Arg{Float(-0.5)}, "-0x1p-1"},
		{"hex float fraction", "%a", []Arg{Float(1.5)}, "0x1.8p+0"},
		{"hex float subnormal", "%a", []Arg{Float(2.5e-310)}, "0x0.02e055c9a3f6cp-1022"},
		{"hex float smallest", "%a", []Arg{Float(math.SmallestNonzeroFloat64)}, "0x0.0000000000001p-1022"},
		{"hex float subnormal upper", "%A", []Arg{Float(-math.SmallestNonzeroFloat64)}, "-0X0.0000000000001P-1022"},
		{"hex float subnormal precision", "%.1a", []Arg{Float(2.5e-310)}, "0x0.0p-1022"},
		{"hex float subnormal rounds up", "%.0a", []Arg{Float(0x1.8p-1023)}, "0x1p-1022"},
	})
}

func TestRenderIdentityConversions(t *testing.T) {
	d := testDiagnostics(t)
	runRenderCases(t, d, []renderCase{
		{"host", "%H", nil, "box"},
		{"prog", "%N", nil, "app"},
		{"user", "%U", nil, "ops"},
		{"cwd", "%w", nil, "/srv/app"},
		{"pid", "%P", nil, "4242"},
		{"pid width", "%6P|", nil, "  4242|"},
		{"pid left", "%-6P|", nil, "4242  |"},
		{"line prefix", "[%P %N] ", nil, "[4242 app] "},
	})
}

func TestRenderDates(t *testing.T) {
	d := testDiagnostics(t)
	runRenderCases(t, d, []renderCase{
		{"layout 0", "%D", nil, "05/03/24"},
		{"layout 1", "%1D", nil, "05/03/24 14:07:09"},
		{"layout 2", "%2D", nil, "14:07:09"},
		{"layout 3", "%3D", nil, "05/03/2024 14:07:09"},
		{"layout 4", "%4D", nil, "Tue, 05 Mar 2024 14:07:09 GMT"},
		{"layout 5", "%5D", nil, "2024/03/05"},
		{"layout 6", "%6D", nil, "2024/03/05 14:07:09"},
		{"layout 7", "%7D", nil, "050324"},
		{"layout 8", "%8D", nil, "Tue, 05-Mar-2024 14:07:09 GMT"},
		{"layout 9", "%9D", nil, "20240305140709"},
		{"layout 10", "%10D", nil, "05/Mar/2024:14:07:09 +0000"},
		{"out of range", "%11D", nil, "05/03/24"},
		{"explicit time", "%#4D", []Arg{Time(0)}, "Thu, 01 Jan 1970 00:00:00 GMT"},
		{"explicit time int", "%#9D", []Arg{Int(86400)}, "19700102000000"},
	})

	it := testDiagnostics(t, WithLocale(LocaleItalian))
	if got := renderString(t, it, "%#4D", Time(0)); got != "Gio, 01 Gen 1970 00:00:00 GMT" {
		t.Fatalf("italian layout 4: got %q", got)
	}
}

func TestRenderGMTLayoutsUseUTC(t *testing.T) {
	zone := time.FixedZone("CET", 3600)
	d := testDiagnostics(t, WithLocation(zone))
	if got := renderString(t, d, "%4D"); got != "Tue, 05 Mar 2024 14:07:09 GMT" {
		t.Fatalf("GMT layout: got %q", got)
	}
	if got := renderString(t, d, "%2D"); got != "15:07:09" {
		t.Fatalf("local layout: got %q", got)
	}
	if got := renderString(t, d, "%#10D", Time(0)); got != "01/Jan/1970:01:00:00 +0100" {
		t.Fatalf("explicit local time: got %q", got)
	}
}

func TestRenderExitCode(t *testing.T) {
	d := testDiagnostics(t)
	if _, ok := d.ExitCode(); ok {
		t.Fatalf("exit code set before any %%Q")
	}
	if got := renderString(t, d, "fatal%Q.", Int(3)); got != "fatal." {
		t.Fatalf("%%Q must render nothing, got %q", got)
	}
	code, ok := d.ExitCode()
	if !ok || code != 3 {
		t.Fatalf("exit code: got %d,%v want 3,true", code, ok)
	}
}

func TestRenderErrors(t *testing.T) {
	d := testDiagnostics(t)
	runRenderCases(t, d, []renderCase{
		{"plain error", "%R", []Arg{Err(errors.New("boom"))}, "boom"},
		{"message and error", "%R", []Arg{Str("open"), Err(errors.New("boom"))}, "open - boom"},
		{"alt drops separator", "%#R", []Arg{Str("open: "), Err(errors.New("boom"))}, "open: boom"},
		{"nil error", "%R", []Arg{Err(nil)}, "(no error)"},
		{"exit success", "%r", []Arg{Int(0)}, "EXIT_SUCCESS (0, success)"},
		{"exit failure", "%r", []Arg{Int(1)}, "EXIT_FAILURE (1, failure)"},
		{"sysexits", "%r", []Arg{Int(64)}, "EX_USAGE (64, command line usage error)"},
		{"unknown status", "%r", []Arg{Int(5)}, "EXIT_UNKNOWN (5, unknown status)"},
	})
}

func TestRenderColor(t *testing.T) {
	off := testDiagnostics(t)
	if got := renderString(t, off, "%Wred%W", Color(ansi.IndexRed), Color(ansi.IndexReset)); got != "red" {
		t.Fatalf("colour disabled: got %q", got)
	}
	on := testDiagnostics(t, WithColor(true))
	want := ansi.Red + "red" + ansi.Reset
	if got := renderString(t, on, "%Wred%W", Color(ansi.IndexRed), Color(ansi.IndexReset)); got != want {
		t.Fatalf("colour enabled: got %q want %q", got, want)
	}
	if got := renderString(t, on, "%Wx", Color(ansi.Slots)); got != "x" {
		t.Fatalf("out of range colour: got %q", got)
	}
	on.SetColor(false)
	if got := renderString(t, on, "%Wx", Color(ansi.IndexRed)); got != "x" {
		t.Fatalf("SetColor(false): got %q", got)
	}
}

func TestRenderHexDump(t *testing.T) {
	d := testDiagnostics(t)
	want := "0000  41 42 43 " + strings.Repeat("   ", 13) + "|ABC|"
	if got := renderString(t, d, "%M", Bytes([]byte("ABC"))); got != want {
		t.Fatalf("dump: got %q want %q", got, want)
	}
	blob := []byte("0123456789abcdef\x00")
	got := renderString(t, d, "%M", Bytes(blob))
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two rows, got %q", got)
	}
	if !strings.HasPrefix(lines[1], "0010  00 ") || !strings.HasSuffix(lines[1], "|.|") {
		t.Fatalf("second row: got %q", lines[1])
	}
	if got := renderString(t, d, "%.2M", Bytes([]byte("ABC"))); !strings.HasSuffix(got, "|AB|") {
		t.Fatalf("precision bound: got %q", got)
	}
}

func TestRenderArgumentErrors(t *testing.T) {
	d := testDiagnostics(t)
	var buf [64]byte

	n, err := d.Render(buf[:], "ab%d")
	if !errors.Is(err, ErrMissingArg) {
		t.Fatalf("expected ErrMissingArg, got %v", err)
	}
	var rerr *RenderError
	if !errors.As(err, &rerr) || rerr.Offset != 2 || rerr.Verb != 'd' {
		t.Fatalf("unexpected RenderError: %#v", err)
	}
	if string(buf[:n]) != "ab" {
		t.Fatalf("prefix before the failure must stay, got %q", buf[:n])
	}

	if _, err := d.Render(buf[:], "%d", Str("x")); !errors.Is(err, ErrArgKind) {
		t.Fatalf("expected ErrArgKind, got %v", err)
	}
	if _, err := d.Render(buf[:], "%*d", Int(3)); !errors.Is(err, ErrMissingArg) {
		t.Fatalf("expected ErrMissingArg for star, got %v", err)
	}
	if _, err := d.Render(buf[:], "%s", Float(1)); !errors.Is(err, ErrArgKind) {
		t.Fatalf("expected ErrArgKind for float string, got %v", err)
	}
}

func TestRenderOverflow(t *testing.T) {
	d := testDiagnostics(t)
	buf := make([]byte, 4)
	n, err := d.Render(buf, "hello")
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	if n != 4 || string(buf) != "hell" {
		t.Fatalf("unexpected partial output %q (%d)", buf[:n], n)
	}

	n, err = Format(make([]byte, 16), 3, "%5d", Int(42))
	if !errors.Is(err, ErrOverflow) || n != 3 {
		t.Fatalf("Format capacity: n=%d err=%v", n, err)
	}
}

func TestRenderNeverWritesPastCapacity(t *testing.T) {
	d := testDiagnostics(t, WithColor(true))
	formats := []struct {
		format string
		args   []Arg
	}{
		{"%'d|%-8x|%#o", []Arg{Int(-1234567), Int(255), Int(8)}},
		{"%08.3d%+5d", []Arg{Int(7), Int(9)}},
		{"%10s|%-10s|%.2s", []Arg{Str("abc"), Str("def"), Str("ghi")}},
		{"%S %C", []Arg{Str("quote\"me\n"), Char('\t')}},
		{"%5.2f %e %a", []Arg{Float(3.14159), Float(1e10), Float(0.25)}},
		{"%3D %H %P %W", []Arg{Color(ansi.IndexBlue)}},
		{"%R %r %b", []Arg{Str("m"), Err(errors.New("e")), Int(64), Bool(true)}},
		{"%M", []Arg{Bytes([]byte("0123456789abcdefXYZ"))}},
	}
	const guard = 0xAA
	for _, tc := range formats {
		full := renderString(t, d, tc.format, tc.args...)
		for capacity := 0; capacity <= len(full)+1; capacity++ {
			buf := bytes.Repeat([]byte{guard}, capacity+8)
			n, err := d.Render(buf[:capacity], tc.format, tc.args...)
			if n > capacity {
				t.Fatalf("%q cap %d: wrote %d bytes", tc.format, capacity, n)
			}
			for i, b := range buf[capacity:] {
				if b != guard {
					t.Fatalf("%q cap %d: guard byte %d clobbered", tc.format, capacity, i)
				}
			}
			if capacity >= len(full) {
				if err != nil {
					t.Fatalf("%q cap %d: unexpected error %v", tc.format, capacity, err)
				}
				continue
			}
			if !errors.Is(err, ErrOverflow) {
				t.Fatalf("%q cap %d: expected ErrOverflow, got %v", tc.format, capacity, err)
			}
		}
	}
}

func TestAppendGrows(t *testing.T) {
	d := testDiagnostics(t)
	long := strings.Repeat("z", 5000)
	out, err := d.Append([]byte("> "), "%s<", Str(long))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if string(out) != "> "+long+"<" {
		t.Fatalf("Append lost data: len %d", len(out))
	}
	if got := d.Sprintf("%d-%s", Int(1), Str("a")); got != "1-a" {
		t.Fatalf("Sprintf: got %q", got)
	}
}

func TestArgsAdapter(t *testing.T) {
	d := testDiagnostics(t)
	got := d.Sprintf("%d %u %s %b %.1f %s %v", Args(-1, uint8(7), "s", true, 2.5, errors.New("e"), []byte("raw"))...)
	if got != "-1 7 s true 2.5 e raw" {
		t.Fatalf("Args: got %q", got)
	}
	if k := Args(nil)[0].Kind(); k != KindNil {
		t.Fatalf("nil kind: got %v", k)
	}
	if k := Args(time.Unix(5, 0))[0].Kind(); k != KindTime {
		t.Fatalf("time kind: got %v", k)
	}
}

func TestRenderConcurrent(t *testing.T) {
	d := testDiagnostics(t)
	done := make(chan string, 8)
	for i := range 8 {
		go func() {
			var buf [64]byte
			var out string
			for range 200 {
				n, err := d.Render(buf[:], "%03d|%'d|%S", Int(int64(i)), Int(1000), Str("x"))
				if err != nil {
					done <- err.Error()
					return
				}
				out = string(buf[:n])
			}
			done <- out
		}()
	}
	for range 8 {
		if got := <-done; !strings.HasSuffix(got, `|1,000|"x"`) {
			t.Fatalf("concurrent render: got %q", got)
		}
	}
}
