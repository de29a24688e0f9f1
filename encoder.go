package id3

import (
	"io"

	"github.com/pkg/errors"
)

// Encoder serializes a tag header and frames into the ID3v2 wire
// layout.
type Encoder struct {
	w         io.Writer
	sizeField SizeField
	policy    WriteText
}

// NewEncoder returns an encoder writing to w. The size field
// convention must already be resolved to a concrete one; use the
// convention the tag was parsed with so the two are never mixed.
func NewEncoder(w io.Writer, sizeField SizeField, policy WriteText) *Encoder {
	return &Encoder{w: w, sizeField: sizeField, policy: policy}
}

// WriteHeader serializes the tag header. size is the recomputed total
// tag size, not the one the header was parsed with; the caller must
// derive it from the current frame contents.
func (e *Encoder) WriteHeader(h TagHeader, size uint32) error {
	sizeBytes := EncodeSyncsafe(size)
	buf := []byte{
		Magic[0], Magic[1], Magic[2],
		byte(h.Version),      // major
		byte(h.Version >> 8), // revision
		h.Flags.Raw(),
		sizeBytes[0], sizeBytes[1], sizeBytes[2], sizeBytes[3],
	}
	_, err := e.w.Write(buf)
	return errors.Wrap(err, "writing tag header")
}

// WriteFrame serializes one frame: ID, size field, the raw flag
// bytes, then the payload.
func (e *Encoder) WriteFrame(f *Frame) error {
	if len(f.ID) != 4 {
		return errors.Errorf("frame ID %q is not 4 bytes long", f.ID)
	}
	payload := f.payload(e.policy)

	var sizeBytes [4]byte
	if e.sizeField == SizeFieldBE32 {
		sizeBytes = EncodeBE32(uint32(len(payload)))
	} else {
		sizeBytes = EncodeSyncsafe(uint32(len(payload)))
	}

	header := make([]byte, 0, frameHeaderSize)
	header = append(header, f.ID...)
	header = append(header, sizeBytes[:]...)
	flags := f.Flags.Raw()
	header = append(header, flags[0], flags[1])

	if _, err := e.w.Write(header); err != nil {
		return errors.Wrapf(err, "writing header of frame %s", f.ID)
	}
	if _, err := e.w.Write(payload); err != nil {
		return errors.Wrapf(err, "writing payload of frame %s", f.ID)
	}
	return nil
}
