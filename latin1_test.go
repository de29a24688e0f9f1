package id3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidLatin1(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsValidLatin1([]byte("Hello, World!")))
	assert.True(IsValidLatin1([]byte("Ein k\xFCrzerer Text: \xE4\xF6\xFC\xDF")))
	assert.True(IsValidLatin1([]byte{'a', 0x00, 'b'}), "null bytes are tolerated")
	assert.True(IsValidLatin1(nil))

	assert.False(IsValidLatin1([]byte{0x01}), "C0 controls are invalid")
	assert.False(IsValidLatin1([]byte{'a', 0x1F}))
	assert.False(IsValidLatin1([]byte{0x7F}))
	assert.False(IsValidLatin1([]byte{0x80}), "C1 range is invalid")
	assert.False(IsValidLatin1([]byte{0x9F}))
}

func TestDecodeLatin1(t *testing.T) {
	assert := assert.New(t)

	s, ok := DecodeLatin1([]byte("Ein k\xFCrzerer Text: \xE4\xF6\xFC\xDF"))
	assert.True(ok)
	assert.Equal("Ein kürzerer Text: äöüß", s)

	// Unlike IsValidLatin1, the full decode rejects null bytes.
	_, ok = DecodeLatin1([]byte{'a', 0x00})
	assert.False(ok)
	_, ok = DecodeLatin1([]byte{0x85})
	assert.False(ok)
}

func TestEncodeLatin1(t *testing.T) {
	assert := assert.New(t)

	b, ok := EncodeLatin1("Ein kürzerer Text: äöüß")
	assert.True(ok)
	assert.Equal([]byte("Ein k\xFCrzerer Text: \xE4\xF6\xFC\xDF"), b)

	_, ok = EncodeLatin1("日本語")
	assert.False(ok, "non-Latin-1 text cannot be encoded")
	_, ok = EncodeLatin1("a\x00b")
	assert.False(ok, "control characters cannot be encoded")
	_, ok = EncodeLatin1("")
	assert.False(ok, "C1 range cannot be encoded")
}

func TestLatin1RoundTrip(t *testing.T) {
	assert := assert.New(t)

	in := []byte("V\xE9ronique \xA1 \xFF")
	s, ok := DecodeLatin1(in)
	assert.True(ok)
	out, ok := EncodeLatin1(s)
	assert.True(ok)
	assert.Equal(in, out)
}
