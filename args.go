package utrace

import (
	"math"
	"syscall"
	"time"
	"unsafe"
)

// ArgKind tags the variant held by an Arg.
type ArgKind uint8

const (
	KindNil ArgKind = iota
	KindInt
	KindUint
	KindFloat
	KindLongDouble
	KindString
	KindBytes
	KindBool
	KindChar
	KindPointer
	KindColor
	KindTime
	KindError
)

var kindNames = [...]string{
	KindNil:        "nil",
	KindInt:        "int",
	KindUint:       "uint",
	KindFloat:      "float",
	KindLongDouble: "long double",
	KindString:     "string",
	KindBytes:      "bytes",
	KindBool:       "bool",
	KindChar:       "char",
	KindPointer:    "pointer",
	KindColor:      "color",
	KindTime:       "time",
	KindError:      "error",
}

func (k ArgKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Arg is one positional argument consumed by a conversion. Args only borrow
// the strings and byte slices they carry; they must stay valid for the
// duration of the render call.
type Arg struct {
	kind ArgKind
	num  uint64
	str  string
	err  error
}

func Int(v int64) Arg           { return Arg{kind: KindInt, num: uint64(v)} }
func Uint(v uint64) Arg         { return Arg{kind: KindUint, num: v} }
func Float(v float64) Arg       { return Arg{kind: KindFloat, num: math.Float64bits(v)} }
func LongDouble(v float64) Arg  { return Arg{kind: KindLongDouble, num: math.Float64bits(v)} }
func Str(s string) Arg          { return Arg{kind: KindString, str: s} }
func Char(r rune) Arg           { return Arg{kind: KindChar, num: uint64(r)} }
func Pointer(p uintptr) Arg     { return Arg{kind: KindPointer, num: uint64(p)} }
func Color(index int) Arg       { return Arg{kind: KindColor, num: uint64(index)} }
func Time(unix int64) Arg       { return Arg{kind: KindTime, num: uint64(unix)} }
func Err(err error) Arg         { return Arg{kind: KindError, err: err} }
func Nil() Arg                  { return Arg{} }
func Errno(e syscall.Errno) Arg { return Arg{kind: KindError, err: e} }

// Bytes wraps a length-delimited byte blob without copying it.
func Bytes(b []byte) Arg {
	return Arg{kind: KindBytes, str: bytesToString(b)}
}

// Bool wraps a boolean rendered by %b.
func Bool(v bool) Arg {
	if v {
		return Arg{kind: KindBool, num: 1}
	}
	return Arg{kind: KindBool}
}

// Kind reports the variant held by a.
func (a Arg) Kind() ArgKind { return a.kind }

func (a Arg) float() float64 { return math.Float64frombits(a.num) }

// Args converts native Go values into Args. Unsupported types become
// KindNil and render as "(null)" for string conversions.
func Args(values ...any) []Arg {
	if len(values) == 0 {
		return nil
	}
	out := make([]Arg, len(values))
	for i, v := range values {
		out[i] = argFromAny(v)
	}
	return out
}

func argFromAny(v any) Arg {
	switch val := v.(type) {
	case nil:
		return Nil()
	case Arg:
		return val
	case string:
		return Str(val)
	case []byte:
		return Bytes(val)
	case bool:
		return Bool(val)
	case int:
		return Int(int64(val))
	case int8:
		return Int(int64(val))
	case int16:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case int64:
		return Int(val)
	case uint:
		return Uint(uint64(val))
	case uint8:
		return Uint(uint64(val))
	case uint16:
		return Uint(uint64(val))
	case uint32:
		return Uint(uint64(val))
	case uint64:
		return Uint(val)
	case uintptr:
		return Pointer(val)
	case float32:
		return Float(float64(val))
	case float64:
		return Float(val)
	case time.Time:
		return Time(val.Unix())
	case time.Duration:
		return Int(int64(val))
	case error:
		return Err(val)
	case interface{ String() string }:
		return Str(val.String())
	default:
		return Nil()
	}
}

func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
