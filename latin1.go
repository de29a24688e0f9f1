package id3

import (
	"golang.org/x/text/encoding/charmap"
)

// ID3v2 text frames use a restricted subset of ISO-8859-1: the
// printable ranges 0x20-0x7E and 0xA0-0xFF. C0/C1 control bytes and
// 0x7F never appear in well-formed text payloads.

func isLatin1Byte(b byte) bool {
	return (b >= 0x20 && b <= 0x7E) || b >= 0xA0
}

func isLatin1Rune(r rune) bool {
	return (r >= 0x20 && r < 0x7F) || (r >= 0xA0 && r <= 0xFF)
}

// IsValidLatin1 reports whether buf contains only bytes from the
// valid ISO-8859-1 text subset. Null bytes are tolerated since frame
// payloads may carry terminators.
func IsValidLatin1(buf []byte) bool {
	for _, b := range buf {
		if b != 0 && !isLatin1Byte(b) {
			return false
		}
	}
	return true
}

// DecodeLatin1 decodes buf as ISO-8859-1 text. It fails if any byte,
// including 0x00, lies outside the valid text subset; callers use
// this as an encoding heuristic, not as a hard parse failure.
func DecodeLatin1(buf []byte) (string, bool) {
	for _, b := range buf {
		if !isLatin1Byte(b) {
			return "", false
		}
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(buf)
	if err != nil {
		return "", false
	}
	return string(s), true
}

// EncodeLatin1 encodes s as ISO-8859-1. It fails if s contains any
// rune outside the valid text subset; in particular control
// characters and anything beyond U+00FF cannot be represented.
func EncodeLatin1(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if !isLatin1Rune(r) {
			return nil, false
		}
		out = append(out, byte(r))
	}
	return out, true
}
