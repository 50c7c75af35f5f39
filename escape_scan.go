package utrace

import (
	"encoding/binary"
	"unsafe"
)

const (
	asciiHighBitsMask uint64 = 0x8080808080808080
	repeatOnes        uint64 = 0x0101010101010101
	controlThreshold  uint64 = 0x2020202020202020
	quoteMask         uint64 = 0x2222222222222222
	backslashMask     uint64 = 0x5c5c5c5c5c5c5c5c
	delMask           uint64 = 0x7f7f7f7f7f7f7f7f
)

func chunkEqualMask(chunk, target uint64) uint64 {
	x := chunk ^ target
	return (x - repeatOnes) & ^x & asciiHighBitsMask
}

// chunkHasEscape reports whether any of the eight bytes in chunk needs a C
// escape inside a quoted string.
func chunkHasEscape(chunk uint64) bool {
	if chunk&asciiHighBitsMask != 0 {
		return true
	}
	mask := (chunk - controlThreshold) & ^chunk & asciiHighBitsMask
	mask |= chunkEqualMask(chunk, quoteMask)
	mask |= chunkEqualMask(chunk, backslashMask)
	mask |= chunkEqualMask(chunk, delMask)
	return mask != 0
}

// firstEscapeIndex returns the length of the leading run of s that can be
// copied into a quoted string unchanged.
func firstEscapeIndex(s string) int {
	n := len(s)
	if n == 0 {
		return 0
	}

	bytes := unsafe.Slice(unsafe.StringData(s), n)
	i := 0
	for i+8 <= n {
		chunk := binary.LittleEndian.Uint64(bytes[i:])
		if chunkHasEscape(chunk) {
			for j := range 8 {
				if byteNeedsEscape(bytes[i+j]) {
					return i + j
				}
			}
		}
		i += 8
	}
	for ; i < n; i++ {
		if byteNeedsEscape(bytes[i]) {
			return i
		}
	}
	return n
}

func byteNeedsEscape(b byte) bool {
	return b < 0x20 || b >= 0x7f || b == '"' || b == '\\'
}
