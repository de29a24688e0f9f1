package id3

import (
	"fmt"
)

// Magic is the byte sequence every ID3v2 tag starts with.
var Magic = [3]byte{'I', 'D', '3'}

const (
	tagHeaderSize   = 10
	frameHeaderSize = 10
	extHeaderSize   = 10

	// SupportedVersion is the only tag version this package fully
	// understands. Other versions are read with a warning.
	SupportedVersion Version = 4
)

// Version is the tag version as packed by the header parser:
// revision byte shifted into the high byte, major version in the low
// byte. A plain ID3v2.4.0 tag therefore has Version 4.
type Version int16

func (v Version) String() string {
	return fmt.Sprintf("ID3v2.%d.%d", v&0xFF, v>>8)
}

// SizeField selects how the 4-byte frame size field is interpreted.
// The format's revisions disagree on this: ID3v2.4 uses syncsafe
// integers, older tags use plain big-endian ones. The two must never
// be mixed within one tag.
type SizeField int

const (
	// SizeFieldAuto picks SizeFieldSyncsafe for version 4 tags and
	// SizeFieldBE32 for everything else.
	SizeFieldAuto SizeField = iota
	SizeFieldSyncsafe
	SizeFieldBE32
)

func (s SizeField) String() string {
	switch s {
	case SizeFieldSyncsafe:
		return "syncsafe"
	case SizeFieldBE32:
		return "be32"
	default:
		return "auto"
	}
}

// resolve maps SizeFieldAuto to a concrete convention for the given
// tag version.
func (s SizeField) resolve(v Version) SizeField {
	if s != SizeFieldAuto {
		return s
	}
	if v == SupportedVersion {
		return SizeFieldSyncsafe
	}
	return SizeFieldBE32
}

// WriteText selects how text payloads are serialized on Save.
type WriteText int

const (
	// WriteTextPreserve keeps untouched frames byte-identical and
	// writes edited or added text as ISO-8859-1 when it fits,
	// UTF-16 otherwise.
	WriteTextPreserve WriteText = iota

	// WriteTextUTF16 re-encodes every text payload as UTF-16 with a
	// big-endian byte order mark, regardless of how it was stored.
	WriteTextUTF16
)

// Options configures parsing and serialization. The zero value is
// ready to use: no logging, automatic size field convention, and
// encoding-preserving writes.
type Options struct {
	// Logger receives warnings emitted during parsing. A nil Logger
	// discards them.
	Logger *Logger

	// SizeField overrides the frame size field convention.
	SizeField SizeField

	// WriteText is the text serialization policy used by Save.
	WriteText WriteText
}

// NotATagError is returned when the first three bytes of a file are
// not the ID3 magic.
type NotATagError struct {
	Magic [3]byte
}

func (err NotATagError) Error() string {
	return fmt.Sprintf("not an ID3v2 tag: file starts with %q", err.Magic)
}

// CorruptTagError is returned for tags that cannot be parsed at all:
// truncated headers, truncated frames, or frame IDs that are not
// valid UTF-8.
type CorruptTagError struct {
	Reason string
}

func (err CorruptTagError) Error() string {
	return "corrupt tag: " + err.Reason
}

func corrupt(reason string, cause error) error {
	if cause != nil {
		reason = fmt.Sprintf("%s (%v)", reason, cause)
	}
	return CorruptTagError{Reason: reason}
}

// FrameNotFoundError is returned by lookups for a frame ID and
// occurrence that does not exist. Found carries the number of frames
// with that ID that do exist, so callers can tell "no such frame"
// apart from "fewer than n such frames".
type FrameNotFoundError struct {
	ID    string
	Found int
}

func (err FrameNotFoundError) Error() string {
	if err.Found == 0 {
		return fmt.Sprintf("no frame with ID %q", err.ID)
	}
	return fmt.Sprintf("only %d frame(s) with ID %q", err.Found, err.ID)
}
