package id3

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tagFixture assembles a tag byte blob: a v2.4 header with the given
// flags byte, then the frame records, then trailing audio bytes.
func tagFixture(flags byte, frames [][]byte, audio []byte) []byte {
	var framesSize uint32
	for _, f := range frames {
		framesSize += uint32(len(f))
	}

	var buf bytes.Buffer
	buf.Write([]byte{'I', 'D', '3', 4, 0, flags})
	size := EncodeSyncsafe(framesSize)
	buf.Write(size[:])
	for _, f := range frames {
		buf.Write(f)
	}
	buf.Write(audio)
	return buf.Bytes()
}

// latin1Frame assembles one frame record with a syncsafe size field
// and the given flag bytes.
func latin1Frame(id string, flags [2]byte, data string) []byte {
	var buf bytes.Buffer
	buf.WriteString(id)
	size := EncodeSyncsafe(uint32(len(data)))
	buf.Write(size[:])
	buf.Write(flags[:])
	buf.WriteString(data)
	return buf.Bytes()
}

func TestReadHeader(t *testing.T) {
	assert := assert.New(t)

	blob := tagFixture(0, nil, nil)
	d := NewDecoder(bytes.NewReader(blob), Options{})
	header, err := d.ReadHeader()
	require.NoError(t, err)

	assert.Equal(Version(4), header.Version)
	assert.Equal("ID3v2.4.0", header.Version.String())
	assert.False(header.Flags.ExtendedHeader)
	assert.Equal(uint32(0), header.Size)
}

func TestReadHeaderBadMagic(t *testing.T) {
	d := NewDecoder(bytes.NewReader([]byte("MP3junkdata")), Options{})
	_, err := d.ReadHeader()

	var notATag NotATagError
	require.ErrorAs(t, err, &notATag)
	assert.Equal(t, [3]byte{'M', 'P', '3'}, notATag.Magic)
}

func TestReadHeaderShortRead(t *testing.T) {
	d := NewDecoder(bytes.NewReader([]byte("ID3")), Options{})
	_, err := d.ReadHeader()

	var corrupt CorruptTagError
	require.ErrorAs(t, err, &corrupt)
}

func TestReadHeaderWarnings(t *testing.T) {
	assert := assert.New(t)

	var log bytes.Buffer
	opts := Options{Logger: NewLogger(&log, LevelWarn, false)}

	// Version 3, unofficial flag bit, non-syncsafe size.
	blob := []byte{'I', 'D', '3', 3, 0, 0x01, 0x80, 0, 0, 0}
	d := NewDecoder(bytes.NewReader(blob), opts)
	header, err := d.ReadHeader()
	require.NoError(t, err)

	assert.Equal(Version(3), header.Version)
	assert.Contains(log.String(), "only ID3v2.4.0 is fully supported")
	assert.Contains(log.String(), "unofficial flag bits")
	assert.Contains(log.String(), "syncsafe")
}

func TestReadHeaderSkipsExtendedHeader(t *testing.T) {
	assert := assert.New(t)

	frame := latin1Frame("TIT2", [2]byte{0, 0}, "Hello")
	extSize := EncodeSyncsafe(6)
	ext := append(extSize[:], 1, 2, 3, 4, 5, 6)
	blob := tagFixture(0x40, [][]byte{ext, frame}, nil)

	d := NewDecoder(bytes.NewReader(blob), Options{})
	header, err := d.ReadHeader()
	require.NoError(t, err)
	assert.True(header.Flags.ExtendedHeader)

	// The decoder must now sit right at the first frame.
	require.True(t, d.HasFrame())
	f, err := d.ReadFrame()
	require.NoError(t, err)
	assert.Equal("TIT2", f.ID)
	assert.Equal("Hello", f.Text)
}

func TestReadFrameLatin1(t *testing.T) {
	assert := assert.New(t)

	blob := tagFixture(0, [][]byte{latin1Frame("TALB", [2]byte{0x20, 0}, "My Album")}, nil)
	d := NewDecoder(bytes.NewReader(blob), Options{})
	_, err := d.ReadHeader()
	require.NoError(t, err)

	require.True(t, d.HasFrame())
	f, err := d.ReadFrame()
	require.NoError(t, err)

	assert.Equal("TALB", f.ID)
	assert.Equal(EncodingLatin1, f.Encoding)
	assert.Equal("My Album", f.Text)
	assert.True(f.Flags.ReadOnly)
	assert.False(d.HasFrame())
}

func TestReadFrameUTF16(t *testing.T) {
	assert := assert.New(t)

	payload := []byte{0xFE, 0xFF, 0, 'H', 0, 'i'}
	var rec bytes.Buffer
	rec.WriteString("TIT2")
	size := EncodeSyncsafe(uint32(len(payload)))
	rec.Write(size[:])
	rec.Write([]byte{0, 0})
	rec.Write(payload)

	blob := tagFixture(0, [][]byte{rec.Bytes()}, nil)
	d := NewDecoder(bytes.NewReader(blob), Options{})
	_, err := d.ReadHeader()
	require.NoError(t, err)

	f, err := d.ReadFrame()
	require.NoError(t, err)
	assert.Equal(EncodingUTF16BE, f.Encoding)
	assert.Equal("Hi", f.Text)
}

func TestReadFrameUnknownID(t *testing.T) {
	var log bytes.Buffer
	opts := Options{Logger: NewLogger(&log, LevelWarn, false)}

	blob := tagFixture(0, [][]byte{latin1Frame("ZZZZ", [2]byte{0, 0}, "data")}, nil)
	d := NewDecoder(bytes.NewReader(blob), opts)
	_, err := d.ReadHeader()
	require.NoError(t, err)

	f, err := d.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, "ZZZZ", f.ID)
	assert.Contains(t, log.String(), "not a known frame ID")
}

func TestReadFrameInvalidLatin1Warns(t *testing.T) {
	var log bytes.Buffer
	opts := Options{Logger: NewLogger(&log, LevelWarn, false)}

	blob := tagFixture(0, [][]byte{latin1Frame("TIT2", [2]byte{0, 0}, "bad\x01byte")}, nil)
	d := NewDecoder(bytes.NewReader(blob), opts)
	_, err := d.ReadHeader()
	require.NoError(t, err)

	f, err := d.ReadFrame()
	require.NoError(t, err, "lossy fallback never hard-fails")
	assert.Equal(t, EncodingLatin1, f.Encoding)
	assert.Contains(t, log.String(), "treating it as ISO-8859-1")
}

func TestReadFrameShortPayload(t *testing.T) {
	var rec bytes.Buffer
	rec.WriteString("TIT2")
	size := EncodeSyncsafe(100)
	rec.Write(size[:])
	rec.Write([]byte{0, 0})
	rec.WriteString("way too short")

	blob := tagFixture(0, [][]byte{rec.Bytes()}, nil)
	d := NewDecoder(bytes.NewReader(blob), Options{})
	_, err := d.ReadHeader()
	require.NoError(t, err)

	_, err = d.ReadFrame()
	var corrupt CorruptTagError
	require.ErrorAs(t, err, &corrupt)
}

func TestHasFrameStopsAtAudio(t *testing.T) {
	assert := assert.New(t)

	frame := latin1Frame("TIT2", [2]byte{0, 0}, "Hello")
	audio := []byte{0xFF, 0xFB, 0x90, 0x00}
	blob := tagFixture(0, [][]byte{frame}, audio)

	d := NewDecoder(bytes.NewReader(blob), Options{})
	_, err := d.ReadHeader()
	require.NoError(t, err)

	assert.True(d.HasFrame())
	_, err = d.ReadFrame()
	require.NoError(t, err)
	assert.False(d.HasFrame(), "MPEG sync bytes fail the frame ID test")
}

func TestHasFrameStopsAtPadding(t *testing.T) {
	frame := latin1Frame("TIT2", [2]byte{0, 0}, "Hello")
	blob := tagFixture(0, [][]byte{frame}, []byte{0, 0, 0, 0, 0, 0})

	d := NewDecoder(bytes.NewReader(blob), Options{})
	_, err := d.ReadHeader()
	require.NoError(t, err)

	require.True(t, d.HasFrame())
	_, err = d.ReadFrame()
	require.NoError(t, err)
	assert.False(t, d.HasFrame())
}

func TestReadFrameBE32SizeField(t *testing.T) {
	// 257 encodes differently under the two conventions, so a tag
	// using big-endian sizes only parses with SizeFieldBE32.
	data := bytes.Repeat([]byte{'x'}, 257)
	var frame bytes.Buffer
	frame.WriteString("TIT2")
	size := EncodeBE32(257)
	frame.Write(size[:])
	frame.Write([]byte{0, 0})
	frame.Write(data)

	blob := tagFixture(0, [][]byte{frame.Bytes()}, nil)
	d := NewDecoder(bytes.NewReader(blob), Options{SizeField: SizeFieldBE32})
	_, err := d.ReadHeader()
	require.NoError(t, err)

	f, err := d.ReadFrame()
	require.NoError(t, err)
	assert.Len(t, f.Text, 257)
}
