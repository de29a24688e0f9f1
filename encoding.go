package id3

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Encoding is the text encoding of one frame payload, chosen at parse
// time by looking for a byte order mark.
type Encoding int

const (
	EncodingLatin1 Encoding = iota
	EncodingUTF16BE
	EncodingUTF16LE
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF16BE:
		return "UTF-16BE"
	case EncodingUTF16LE:
		return "UTF-16LE"
	default:
		return "ISO-8859-1"
	}
}

// detectEncoding sniffs the payload for a byte order mark. Payloads
// without one are ISO-8859-1; if they are not even valid ISO-8859-1
// text the caller warns and decodes them as ISO-8859-1 anyway.
//
// A leading 0x0000 pair before the BOM is skipped: some writers pad
// UTF-16 payloads that way. The returned slice is the payload with
// any such padding removed.
func detectEncoding(data []byte) (Encoding, []byte) {
	if len(data) >= 4 && data[0] == 0 && data[1] == 0 && hasBOM(data[2:]) {
		data = data[2:]
	}
	if len(data) >= 2 {
		if data[0] == 0xFE && data[1] == 0xFF {
			return EncodingUTF16BE, data
		}
		if data[0] == 0xFF && data[1] == 0xFE {
			return EncodingUTF16LE, data
		}
	}
	return EncodingLatin1, data
}

func hasBOM(data []byte) bool {
	return len(data) >= 2 &&
		((data[0] == 0xFE && data[1] == 0xFF) || (data[0] == 0xFF && data[1] == 0xFE))
}

// decodeText decodes a payload in the given encoding. For ISO-8859-1
// the decode is lossy for out-of-range bytes and never fails; for
// UTF-16 the BOM must still be present at the front of data.
func decodeText(data []byte, enc Encoding) (string, error) {
	switch enc {
	case EncodingUTF16BE:
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(out), "\x00"), nil
	case EncodingUTF16LE:
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(out), "\x00"), nil
	default:
		buf := trimTrailingNull(data)
		if s, ok := DecodeLatin1(buf); ok {
			return s, nil
		}
		// Lossy fallback for payloads that failed the subset check:
		// map bytes straight to code points.
		runes := make([]rune, len(buf))
		for i, b := range buf {
			runes[i] = rune(b)
		}
		return string(runes), nil
	}
}

// encodeUTF16 serializes s as UTF-16 with a big-endian BOM and a null
// terminator, the layout used when a payload cannot be ISO-8859-1.
func encodeUTF16(s string) []byte {
	if s == "" {
		// The encoder only emits a BOM when there is input.
		return []byte{0xFE, 0xFF, 0x00, 0x00}
	}
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		// UTF-16 can represent any valid string; unpaired
		// surrogates get replaced by the encoder.
		out = []byte{0xFE, 0xFF}
	}
	return append(out, 0x00, 0x00)
}

func trimTrailingNull(data []byte) []byte {
	for len(data) > 0 && data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}
	return data
}
