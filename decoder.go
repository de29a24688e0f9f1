package id3

import (
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// TagHeader is the 10-byte header at the start of every tag.
type TagHeader struct {
	Version Version
	Flags   HeaderFlags

	// Size is the total tag size as stored in the header: frames
	// plus extended header, excluding the header itself.
	Size uint32
}

// Decoder reads a tag from a seekable byte source. The reader is left
// positioned at the first byte after the last frame, which is where
// the audio data starts.
type Decoder struct {
	r         io.ReadSeeker
	log       *Logger
	sizeField SizeField
}

// NewDecoder returns a decoder reading from r. The size field
// convention stays unresolved until ReadHeader has seen the tag
// version.
func NewDecoder(r io.ReadSeeker, opts Options) *Decoder {
	return &Decoder{
		r:         r,
		log:       opts.Logger,
		sizeField: opts.SizeField,
	}
}

// ReadHeader parses the tag header and, when present, skips over the
// extended header. A missing ID3 magic is a NotATagError; a short
// read anywhere is fatal for the whole tag.
func (d *Decoder) ReadHeader() (TagHeader, error) {
	var buf [tagHeaderSize]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return TagHeader{}, corrupt("file ended inside the tag header", err)
	}

	if buf[0] != Magic[0] || buf[1] != Magic[1] || buf[2] != Magic[2] {
		return TagHeader{}, NotATagError{Magic: [3]byte{buf[0], buf[1], buf[2]}}
	}

	header := TagHeader{
		Version: Version(buf[4])<<8 | Version(buf[3]),
		Flags:   parseHeaderFlags(buf[5]),
	}
	if header.Version != SupportedVersion {
		d.log.Warnf("tag version is %s, only ID3v2.4.0 is fully supported", header.Version)
	}
	if header.Flags.undefinedSet() {
		d.log.Warnf("tag header has unofficial flag bits set")
	}

	var size [4]byte
	copy(size[:], buf[6:10])
	if !IsValidSyncsafe(size) {
		d.log.Warnf("tag size is not a well-formed syncsafe integer")
	}
	header.Size = DecodeSyncsafe(size)

	d.sizeField = d.sizeField.resolve(header.Version)

	if header.Flags.ExtendedHeader {
		if err := d.skipExtendedHeader(); err != nil {
			return TagHeader{}, err
		}
	}

	return header, nil
}

// skipExtendedHeader reads the extended header's size and seeks past
// its body. The contents are not modeled.
func (d *Decoder) skipExtendedHeader() error {
	var buf [4]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return corrupt("file ended inside the extended header", err)
	}
	size := DecodeSyncsafe(buf)
	if _, err := d.r.Seek(int64(size), io.SeekCurrent); err != nil {
		return errors.Wrap(err, "skipping extended header")
	}
	return nil
}

// HasFrame peeks at the next four bytes and reports whether they look
// like a frame ID. This is how the frame sequence ends: the format
// has no frame count, so parsing stops at the first four bytes that
// fail the ID test, which also catches padding and the start of the
// audio data.
func (d *Decoder) HasFrame() bool {
	var buf [4]byte
	n, err := io.ReadFull(d.r, buf[:])
	if n > 0 {
		if _, serr := d.r.Seek(int64(-n), io.SeekCurrent); serr != nil {
			return false
		}
	}
	if err != nil {
		return false
	}
	for _, b := range buf {
		if !isFrameIDByte(b) {
			return false
		}
	}
	return true
}

// ReadFrame parses one frame record. Malformed frame IDs and unknown
// frame types are warnings; short reads and frame IDs that are not
// valid UTF-8 abort the whole read.
func (d *Decoder) ReadFrame() (*Frame, error) {
	var buf [frameHeaderSize]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return nil, corrupt("file ended inside a frame header", err)
	}

	if !utf8.Valid(buf[0:4]) {
		return nil, CorruptTagError{"frame ID is not valid UTF-8"}
	}
	id := string(buf[0:4])
	if !IsValidFrameID(id) {
		d.log.Warnf("frame ID %q is not a valid frame ID", id)
	} else if !IsKnownFrameID(id) {
		d.log.Warnf("frame ID %q is valid, but not a known frame ID", id)
	}

	var sizeBytes [4]byte
	copy(sizeBytes[:], buf[4:8])
	var size uint32
	if d.sizeField == SizeFieldBE32 {
		size = DecodeBE32(sizeBytes)
	} else {
		size = DecodeSyncsafe(sizeBytes)
	}

	flags := parseFrameFlags([2]byte{buf[8], buf[9]})
	if flags.undefinedSet() {
		d.log.Warnf("frame %s has unofficial flag bits set", id)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(d.r, payload); err != nil {
		return nil, corrupt("file ended inside a frame payload", err)
	}

	encoding, textBytes := detectEncoding(payload)
	if encoding == EncodingLatin1 && !IsValidLatin1(payload) {
		d.log.Warnf("payload of frame %s is neither valid ISO-8859-1 nor BOM-marked UTF-16; treating it as ISO-8859-1", id)
	}
	text, err := decodeText(textBytes, encoding)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding payload of frame %s", id)
	}

	return &Frame{
		ID:       id,
		Flags:    flags,
		Encoding: encoding,
		Text:     text,
		raw:      payload,
	}, nil
}
