package id3

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// File is one MP3 file with its parsed tag: the header, the ordered
// frame sequence, and the open source file positioned at the first
// audio byte. The source handle doubles as the origin of the audio
// bytes copied through on Save, so it must not be repositioned
// between Open and Save.
type File struct {
	Header TagHeader
	Frames []*Frame

	path        string
	src         *os.File
	audioOffset int64
	opts        Options
	sizeField   SizeField
}

// Open opens the file at path and parses its tag: the header first,
// then frames until the byte stream no longer looks like a frame
// header. Any failure while opening or parsing makes the whole open
// fail.
func Open(path string, opts Options) (*File, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}

	d := NewDecoder(src, opts)
	header, err := d.ReadHeader()
	if err != nil {
		src.Close()
		return nil, err
	}

	var frames []*Frame
	for d.HasFrame() {
		frame, err := d.ReadFrame()
		if err != nil {
			src.Close()
			return nil, err
		}
		frames = append(frames, frame)
	}

	audioOffset, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		src.Close()
		return nil, errors.Wrap(err, "locating audio data")
	}

	return &File{
		Header:      header,
		Frames:      frames,
		path:        path,
		src:         src,
		audioOffset: audioOffset,
		opts:        opts,
		sizeField:   opts.SizeField.resolve(header.Version),
	}, nil
}

// Close closes the underlying file handle. The in-memory tag stays
// usable, but Save will fail.
func (f *File) Close() error {
	return f.src.Close()
}

// Lookup returns the occurrence-th frame (0-based) with the given ID,
// scanning frames in file order. The returned FrameNotFoundError
// carries how many frames with that ID exist.
func (f *File) Lookup(id string, occurrence int) (*Frame, error) {
	i, err := f.lookupIndex(id, occurrence)
	if err != nil {
		return nil, err
	}
	return f.Frames[i], nil
}

func (f *File) lookupIndex(id string, occurrence int) (int, error) {
	found := 0
	for i, frame := range f.Frames {
		if frame.ID == id {
			if found == occurrence {
				return i, nil
			}
			found++
		}
	}
	return 0, FrameNotFoundError{ID: id, Found: found}
}

// Add appends a new frame with the given ID and text to the end of
// the frame sequence.
func (f *File) Add(id, text string) {
	f.Frames = append(f.Frames, NewFrame(id, text))
}

// Edit replaces the text of the occurrence-th frame with the given
// ID.
func (f *File) Edit(id string, occurrence int, text string) error {
	frame, err := f.Lookup(id, occurrence)
	if err != nil {
		return err
	}
	frame.SetText(text)
	return nil
}

// Remove deletes the occurrence-th frame with the given ID from the
// sequence. Occurrence indices of later frames with the same ID shift
// down by one.
func (f *File) Remove(id string, occurrence int) error {
	i, err := f.lookupIndex(id, occurrence)
	if err != nil {
		return err
	}
	f.Frames = append(f.Frames[:i], f.Frames[i+1:]...)
	return nil
}

// Render formats the frames one per line as "ID DATA". With showFlags
// the frame flags are inserted between ID and data, rendered as named
// flags when humanReadable is set and as the compact six-letter code
// otherwise. An empty tag renders as a placeholder line.
func (f *File) Render(showFlags, humanReadable bool) string {
	if len(f.Frames) == 0 {
		return "(no frames)"
	}

	lines := make([]string, len(f.Frames))
	for i, frame := range f.Frames {
		switch {
		case !showFlags:
			lines[i] = frame.ID + " " + frame.Text
		case humanReadable:
			flags := frame.Flags.String()
			if flags != "" {
				flags += " "
			}
			lines[i] = frame.ID + " " + flags + frame.Text
		default:
			lines[i] = frame.ID + " " + frame.Flags.Compact() + " " + frame.Text
		}
	}
	return strings.Join(lines, "\n")
}

// TagSize returns the recomputed total tag size for the current frame
// contents: each frame's header and payload, plus the extended header
// when the tag has one.
func (f *File) TagSize() uint32 {
	var size uint32
	for _, frame := range f.Frames {
		size += frameHeaderSize + uint32(frame.Size(f.opts.WriteText))
	}
	if f.Header.Flags.ExtendedHeader {
		size += extHeaderSize
	}
	return size
}

// AudioOffset returns the byte offset where the audio data starts.
func (f *File) AudioOffset() int64 {
	return f.audioOffset
}

// Save rewrites the file: the header with a recomputed size, every
// frame in its current order, then the audio bytes copied verbatim
// from the original file. The new contents go to a temporary file
// first and replace the original atomically, so a failed write never
// leaves a half-written file behind.
func (f *File) Save() error {
	tmpPath := f.path + ".tmp"
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return errors.Wrap(err, "creating temporary file")
	}

	err = f.writeTo(tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "replacing original file")
	}
	return nil
}

func (f *File) writeTo(w io.Writer) error {
	enc := NewEncoder(w, f.sizeField, f.opts.WriteText)
	if err := enc.WriteHeader(f.Header, f.TagSize()); err != nil {
		return err
	}
	for _, frame := range f.Frames {
		if err := enc.WriteFrame(frame); err != nil {
			return err
		}
	}

	// The audio data must survive byte for byte. The source handle
	// sits at the audio boundary after parsing; reset it there in
	// case a previous Save already consumed it.
	if _, err := f.src.Seek(f.audioOffset, io.SeekStart); err != nil {
		return errors.Wrap(err, "seeking to audio data")
	}
	if _, err := io.Copy(w, f.src); err != nil {
		return errors.Wrap(err, "copying audio data")
	}
	return nil
}
