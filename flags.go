package id3

import (
	"strings"
)

// HeaderFlags is the decoded flags byte of the tag header. The raw
// byte is kept so that unofficial bits survive a rewrite untouched.
type HeaderFlags struct {
	Experimental      bool
	ExtendedHeader    bool
	Unsynchronisation bool

	raw byte
}

func parseHeaderFlags(b byte) HeaderFlags {
	return HeaderFlags{
		Experimental:      checkBit(b, 7),
		ExtendedHeader:    checkBit(b, 6),
		Unsynchronisation: checkBit(b, 5),
		raw:               b,
	}
}

// Raw returns the flags byte exactly as it appeared in the file.
func (f HeaderFlags) Raw() byte { return f.raw }

// undefinedSet reports whether any of the low five bits, which the
// format leaves undefined, are set.
func (f HeaderFlags) undefinedSet() bool { return f.raw<<3 != 0 }

// FrameFlags is the decoded two-byte flags field of a frame. Like
// HeaderFlags it keeps the raw bytes: flags are copied through on
// write, never reconstructed from the booleans.
type FrameFlags struct {
	TagAlterPreservation  bool
	FileAlterPreservation bool
	ReadOnly              bool
	Compression           bool
	Encryption            bool
	GroupingIdentity      bool

	raw [2]byte
}

func parseFrameFlags(b [2]byte) FrameFlags {
	return FrameFlags{
		TagAlterPreservation:  checkBit(b[0], 7),
		FileAlterPreservation: checkBit(b[0], 6),
		ReadOnly:              checkBit(b[0], 5),
		Compression:           checkBit(b[1], 7),
		Encryption:            checkBit(b[1], 6),
		GroupingIdentity:      checkBit(b[1], 5),
		raw:                   b,
	}
}

// Raw returns the flag bytes exactly as they appeared in the file.
func (f FrameFlags) Raw() [2]byte { return f.raw }

func (f FrameFlags) undefinedSet() bool { return (f.raw[0]|f.raw[1])<<3 != 0 }

// String renders the set flags as a comma-joined, parenthesized list,
// or the empty string when no flag is set.
func (f FrameFlags) String() string {
	var names []string
	if f.ReadOnly {
		names = append(names, "read-only")
	}
	if f.Compression {
		names = append(names, "compression")
	}
	if f.Encryption {
		names = append(names, "encryption")
	}
	if f.FileAlterPreservation {
		names = append(names, "file-alter-preservation")
	}
	if f.TagAlterPreservation {
		names = append(names, "tag-alter-preservation")
	}
	if f.GroupingIdentity {
		names = append(names, "grouping-identity")
	}
	if len(names) == 0 {
		return ""
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// Compact renders the flags as a fixed six-character code, one letter
// per flag, '.' where unset. Read-only and tag-alter-preservation
// share the letter 'r'.
func (f FrameFlags) Compact() string {
	code := []byte("......")
	if f.ReadOnly {
		code[0] = 'r'
	}
	if f.Compression {
		code[1] = 'c'
	}
	if f.Encryption {
		code[2] = 'e'
	}
	if f.FileAlterPreservation {
		code[3] = 'f'
	}
	if f.TagAlterPreservation {
		code[4] = 'r'
	}
	if f.GroupingIdentity {
		code[5] = 'g'
	}
	return string(code)
}
