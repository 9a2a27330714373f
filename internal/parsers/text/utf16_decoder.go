package text

import "unicode/utf16"

// DecodeHFSUniStr255 converts the big-endian UTF-16 code units an HFS+
// catalog key or thread record carries into a Go string. Callers pass the
// []uint16 already byte-swapped by the record parser.
func DecodeHFSUniStr255(units []uint16) string {
	return string(utf16.Decode(units))
}

// EncodeHFSUniStr255 is the inverse of DecodeHFSUniStr255, used to build
// quarry keys for HFS+ catalog descent.
func EncodeHFSUniStr255(s string) []uint16 {
	return utf16.Encode([]rune(s))
}
