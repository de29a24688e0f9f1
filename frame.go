package id3

// Frame is one metadata record of a tag. Frames keep their insertion
// order; IDs are not unique, so repeated frames of the same type are
// addressed by a 0-based occurrence index.
type Frame struct {
	ID       string
	Flags    FrameFlags
	Encoding Encoding
	Text     string

	// raw is the payload exactly as read from the file. It is nil
	// for frames created or edited in memory, which forces them to
	// be re-encoded on write.
	raw []byte
}

// NewFrame builds a frame from user input. The encoding starts out as
// ISO-8859-1 and all flags are clear.
func NewFrame(id, text string) *Frame {
	return &Frame{
		ID:       id,
		Encoding: EncodingLatin1,
		Text:     text,
	}
}

// SetText replaces the frame's text. The original payload bytes are
// discarded, so the frame is re-encoded on the next Save.
func (f *Frame) SetText(text string) {
	f.Text = text
	f.raw = nil
}

// Size returns the byte length of the payload as it would be written
// under the given policy.
func (f *Frame) Size(policy WriteText) int {
	return len(f.payload(policy))
}

// Description returns the human-readable name of the frame's type, or
// the empty string for unknown IDs.
func (f *Frame) Description() string {
	return FrameNames[f.ID]
}

// payload returns the bytes to write for this frame. Untouched frames
// round-trip their original bytes under WriteTextPreserve; everything
// else is re-encoded, as ISO-8859-1 when the text fits and as UTF-16
// otherwise.
func (f *Frame) payload(policy WriteText) []byte {
	if policy == WriteTextUTF16 {
		return encodeUTF16(f.Text)
	}
	if f.raw != nil {
		return f.raw
	}
	if b, ok := EncodeLatin1(f.Text); ok {
		return b
	}
	return encodeUTF16(f.Text)
}
